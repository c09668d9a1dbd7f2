package models

import "time"

// PingResult represents the parsed outcome of one ping run
type PingResult struct {
	Host               string    `json:"host"`
	PacketsTransmitted int       `json:"packets_transmitted"`
	PacketsReceived    int       `json:"packets_received"`
	PacketLoss         float64   `json:"packet_loss"` // percentage, 0-100
	MinMs              *float64  `json:"min_ms,omitempty"`
	AvgMs              *float64  `json:"avg_ms,omitempty"`
	MaxMs              *float64  `json:"max_ms,omitempty"`
	Timestamp          time.Time `json:"timestamp"`
}

// TracerouteHop represents one router on the path, 1-based
type TracerouteHop struct {
	Hop   int      `json:"hop"`
	Host  string   `json:"host"` // "*" when the hop did not answer
	RTTMs *float64 `json:"rtt_ms"`
}

// TracerouteResult represents the parsed outcome of one traceroute run
type TracerouteResult struct {
	Host      string          `json:"host"`
	Hops      []TracerouteHop `json:"hops"`
	Timestamp time.Time       `json:"timestamp"`
}

// BulkPingEntry holds the outcome for a single host within a bulk request.
// Exactly one of Result and Error is set.
type BulkPingEntry struct {
	Host   string      `json:"host"`
	Result *PingResult `json:"result,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// BulkPingResult aggregates per-host outcomes in input order
type BulkPingResult struct {
	Results   []BulkPingEntry `json:"results"`
	Timestamp time.Time       `json:"timestamp"`
}
