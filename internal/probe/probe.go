// Package probe orchestrates validated probe requests: it checks the
// host policy, invokes the OS utility through the runner, and parses
// the output into result records.
package probe

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"connectivity-api/internal/config"
	"connectivity-api/internal/models"
	"connectivity-api/internal/parse"
	"connectivity-api/internal/policy"
)

// Prober implements the Prober interface
type Prober struct {
	cfg    config.Config
	policy *policy.Policy
	runner models.Runner
	log    *zap.Logger
}

// New creates a new Prober
func New(cfg config.Config, pol *policy.Policy, run models.Runner, log *zap.Logger) *Prober {
	if log == nil {
		log = zap.NewNop()
	}
	return &Prober{cfg: cfg, policy: pol, runner: run, log: log}
}

// Ping validates the request, runs the ping utility and parses its
// summary. No subprocess is spawned when validation fails.
func (p *Prober) Ping(ctx context.Context, host string, count int) (models.PingResult, error) {
	if !p.policy.IsAllowed(host) {
		return models.PingResult{}, fmt.Errorf("%w: %q", policy.ErrHostNotAllowed, host)
	}
	n, err := p.policy.ClampCount(count)
	if err != nil {
		return models.PingResult{}, err
	}

	out, err := p.runner.Run(ctx, "ping", pingArgs(n, host), p.cfg.PingTimeout)
	if err != nil {
		return models.PingResult{}, err
	}

	stats, err := parse.Ping(out.Stdout)
	if err != nil {
		p.log.Warn("unparseable ping output",
			zap.String("host", host),
			zap.Int("exit_code", out.ExitCode),
			zap.String("stderr", out.Stderr))
		return models.PingResult{}, err
	}

	p.log.Info("ping finished",
		zap.String("host", host),
		zap.Int("transmitted", stats.Transmitted),
		zap.Int("received", stats.Received),
		zap.Float64("loss", stats.Loss))

	return models.PingResult{
		Host:               host,
		PacketsTransmitted: stats.Transmitted,
		PacketsReceived:    stats.Received,
		PacketLoss:         stats.Loss,
		MinMs:              stats.MinMs,
		AvgMs:              stats.AvgMs,
		MaxMs:              stats.MaxMs,
		Timestamp:          time.Now(),
	}, nil
}

// PingSeries runs a ping and returns the per-reply RTT series, used for
// chart rendering. Validation mirrors Ping.
func (p *Prober) PingSeries(ctx context.Context, host string, count int) ([]float64, error) {
	if !p.policy.IsAllowed(host) {
		return nil, fmt.Errorf("%w: %q", policy.ErrHostNotAllowed, host)
	}
	n, err := p.policy.ClampCount(count)
	if err != nil {
		return nil, err
	}

	out, err := p.runner.Run(ctx, "ping", pingArgs(n, host), p.cfg.PingTimeout)
	if err != nil {
		return nil, err
	}

	if _, err := parse.Ping(out.Stdout); err != nil {
		return nil, err
	}
	return parse.PingReplyTimes(out.Stdout), nil
}

// Traceroute validates the request, runs the traceroute utility under
// the fixed timeout and parses the hop sequence.
func (p *Prober) Traceroute(ctx context.Context, host string, maxHops int) (models.TracerouteResult, error) {
	if !p.policy.IsAllowed(host) {
		return models.TracerouteResult{}, fmt.Errorf("%w: %q", policy.ErrHostNotAllowed, host)
	}
	hops, err := p.policy.ClampHops(maxHops)
	if err != nil {
		return models.TracerouteResult{}, err
	}

	args := []string{"-n", "-q", "1", "-m", strconv.Itoa(hops), host}
	out, err := p.runner.Run(ctx, "traceroute", args, p.cfg.TracerouteTimeout)
	if err != nil {
		return models.TracerouteResult{}, err
	}

	parsed, err := parse.Traceroute(out.Stdout)
	if err != nil {
		p.log.Warn("unparseable traceroute output",
			zap.String("host", host),
			zap.Int("exit_code", out.ExitCode),
			zap.String("stderr", out.Stderr))
		return models.TracerouteResult{}, err
	}

	p.log.Info("traceroute finished",
		zap.String("host", host),
		zap.Int("hops", len(parsed)))

	return models.TracerouteResult{
		Host:      host,
		Hops:      parsed,
		Timestamp: time.Now(),
	}, nil
}

// AllowedHosts returns the sorted allow-list
func (p *Prober) AllowedHosts() []string {
	return p.policy.AllowedHosts()
}

func pingArgs(count int, host string) []string {
	// -W 2 bounds each probe; the wall-clock timeout in the runner is
	// the backstop.
	return []string{"-c", strconv.Itoa(count), "-W", "2", host}
}
