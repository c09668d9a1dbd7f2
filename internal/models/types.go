package models

import (
	"context"
	"time"
)

// RunOutput captures everything a finished subprocess left behind
type RunOutput struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner interface defines subprocess execution operations
type Runner interface {
	Run(ctx context.Context, name string, args []string, timeout time.Duration) (RunOutput, error)
}

// Prober interface defines the probe orchestration operations
type Prober interface {
	Ping(ctx context.Context, host string, count int) (PingResult, error)
	Traceroute(ctx context.Context, host string, maxHops int) (TracerouteResult, error)
	PingSeries(ctx context.Context, host string, count int) ([]float64, error)
	BulkPing(ctx context.Context, hosts []string, count int) (BulkPingResult, error)
	AllowedHosts() []string
}
