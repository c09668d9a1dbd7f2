package parse

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

const linuxPingOutput = `PING 8.8.8.8 (8.8.8.8) 56(84) bytes of data.
64 bytes from 8.8.8.8: icmp_seq=1 ttl=118 time=11.9 ms
64 bytes from 8.8.8.8: icmp_seq=2 ttl=118 time=12.3 ms
64 bytes from 8.8.8.8: icmp_seq=3 ttl=118 time=11.7 ms
64 bytes from 8.8.8.8: icmp_seq=4 ttl=118 time=12.1 ms

--- 8.8.8.8 ping statistics ---
4 packets transmitted, 4 received, 0% packet loss, time 3005ms
rtt min/avg/max/mdev = 11.712/12.010/12.334/0.229 ms
`

const macPingOutput = `PING 8.8.8.8 (8.8.8.8): 56 data bytes
64 bytes from 8.8.8.8: icmp_seq=0 ttl=118 time=44.347 ms
64 bytes from 8.8.8.8: icmp_seq=1 ttl=118 time=45.102 ms

--- 8.8.8.8 ping statistics ---
2 packets transmitted, 2 packets received, 0.0% packet loss
round-trip min/avg/max/stddev = 44.347/44.724/45.102/0.378 ms
`

const lossyPingOutput = `PING 1.0.0.1 (1.0.0.1) 56(84) bytes of data.
64 bytes from 1.0.0.1: icmp_seq=1 ttl=57 time=8.31 ms
64 bytes from 1.0.0.1: icmp_seq=3 ttl=57 time=8.70 ms

--- 1.0.0.1 ping statistics ---
4 packets transmitted, 2 received, 50% packet loss, time 3012ms
rtt min/avg/max/mdev = 8.310/8.505/8.700/0.195 ms
`

const allLostPingOutput = `PING 10.255.255.1 (10.255.255.1) 56(84) bytes of data.

--- 10.255.255.1 ping statistics ---
4 packets transmitted, 0 received, 100% packet loss, time 3054ms
`

func TestPing(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		transmitted int
		received    int
		loss        float64
		avg         float64 // NaN means the timing triple must be absent
	}{
		{"linux output", linuxPingOutput, 4, 4, 0, 12.010},
		{"macos output", macPingOutput, 2, 2, 0, 44.724},
		{"partial loss", lossyPingOutput, 4, 2, 50, 8.505},
		{"total loss", allLostPingOutput, 4, 0, 100, math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats, err := Ping(tt.raw)
			if err != nil {
				t.Fatalf("Ping() unexpected error: %v", err)
			}
			if stats.Transmitted != tt.transmitted || stats.Received != tt.received {
				t.Errorf("counts = %d/%d, want %d/%d",
					stats.Transmitted, stats.Received, tt.transmitted, tt.received)
			}
			if stats.Loss != tt.loss {
				t.Errorf("loss = %v, want %v", stats.Loss, tt.loss)
			}
			if math.IsNaN(tt.avg) {
				if stats.MinMs != nil || stats.AvgMs != nil || stats.MaxMs != nil {
					t.Errorf("timing triple should be absent, got %v/%v/%v",
						stats.MinMs, stats.AvgMs, stats.MaxMs)
				}
				return
			}
			if stats.AvgMs == nil || *stats.AvgMs != tt.avg {
				t.Errorf("avg = %v, want %v", stats.AvgMs, tt.avg)
			}
			if stats.MinMs == nil || stats.MaxMs == nil {
				t.Fatalf("min/max missing: %v/%v", stats.MinMs, stats.MaxMs)
			}
			if *stats.MinMs > *stats.AvgMs || *stats.AvgMs > *stats.MaxMs {
				t.Errorf("timing triple not ordered: %v/%v/%v", *stats.MinMs, *stats.AvgMs, *stats.MaxMs)
			}
		})
	}
}

func TestPingLossInvariant(t *testing.T) {
	for _, raw := range []string{linuxPingOutput, macPingOutput, lossyPingOutput, allLostPingOutput} {
		stats, err := Ping(raw)
		if err != nil {
			t.Fatalf("Ping() unexpected error: %v", err)
		}
		want := 100 * (1 - float64(stats.Received)/float64(stats.Transmitted))
		if stats.Loss != want {
			t.Errorf("loss = %v, want 100*(1-%d/%d) = %v",
				stats.Loss, stats.Received, stats.Transmitted, want)
		}
		if stats.Received > stats.Transmitted {
			t.Errorf("received %d exceeds transmitted %d", stats.Received, stats.Transmitted)
		}
	}
}

func TestPingIsIdempotent(t *testing.T) {
	first, err := Ping(linuxPingOutput)
	if err != nil {
		t.Fatalf("first parse: %v", err)
	}
	second, err := Ping(linuxPingOutput)
	if err != nil {
		t.Fatalf("second parse: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("reparsing produced different results: %#v vs %#v", first, second)
	}
}

func TestPingRejectsBadOutput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"error message only", "ping: unknown host example.invalid\n"},
		{"received exceeds transmitted", "2 packets transmitted, 4 received, 0% packet loss\n"},
		{"replies but no rtt line", "4 packets transmitted, 4 received, 0% packet loss\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Ping(tt.raw); !errors.Is(err, ErrParse) {
				t.Errorf("Ping(%q) error = %v, want ErrParse", tt.raw, err)
			}
		})
	}
}

func TestPingReplyTimes(t *testing.T) {
	times := PingReplyTimes(linuxPingOutput)
	want := []float64{11.9, 12.3, 11.7, 12.1}
	if !reflect.DeepEqual(times, want) {
		t.Errorf("PingReplyTimes() = %v, want %v", times, want)
	}

	if times := PingReplyTimes(allLostPingOutput); len(times) != 0 {
		t.Errorf("PingReplyTimes() on lossy output = %v, want empty", times)
	}
}

const linuxTracerouteOutput = `traceroute to google.com (142.250.74.110), 30 hops max, 60 byte packets
 1  192.168.1.1  0.419 ms
 2  10.71.0.1  8.712 ms
 3  *
 4  142.250.74.110  12.223 ms
`

func TestTraceroute(t *testing.T) {
	hops, err := Traceroute(linuxTracerouteOutput)
	if err != nil {
		t.Fatalf("Traceroute() unexpected error: %v", err)
	}
	if len(hops) != 4 {
		t.Fatalf("got %d hops, want 4", len(hops))
	}

	if hops[0].Host != "192.168.1.1" || hops[0].RTTMs == nil || *hops[0].RTTMs != 0.419 {
		t.Errorf("hop 1 = %+v, want 192.168.1.1 / 0.419ms", hops[0])
	}
	if hops[2].Host != "*" || hops[2].RTTMs != nil {
		t.Errorf("hop 3 = %+v, want unresolved marker with absent rtt", hops[2])
	}
	if hops[3].Host != "142.250.74.110" {
		t.Errorf("hop 4 host = %q, want 142.250.74.110", hops[3].Host)
	}
}

func TestTracerouteHopIndices(t *testing.T) {
	hops, err := Traceroute(linuxTracerouteOutput)
	if err != nil {
		t.Fatalf("Traceroute() unexpected error: %v", err)
	}
	for i, hop := range hops {
		if hop.Hop != i+1 {
			t.Errorf("hop at position %d has index %d, want %d", i, hop.Hop, i+1)
		}
	}
}

func TestTracerouteSkipsNonHopLines(t *testing.T) {
	raw := `traceroute to 8.8.8.8 (8.8.8.8), 30 hops max, 60 byte packets
 1  192.168.1.1  0.312 ms
    10.0.0.9  1.021 ms
 2  8.8.8.8  9.870 ms
`
	hops, err := Traceroute(raw)
	if err != nil {
		t.Fatalf("Traceroute() unexpected error: %v", err)
	}
	if len(hops) != 2 {
		t.Fatalf("got %d hops, want 2 (continuation line must be skipped)", len(hops))
	}
	if hops[1].Hop != 2 || hops[1].Host != "8.8.8.8" {
		t.Errorf("hop 2 = %+v", hops[1])
	}
}

func TestTracerouteRejectsBadOutput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"header only", "traceroute to 8.8.8.8 (8.8.8.8), 30 hops max, 60 byte packets\n"},
		{"error message", "traceroute: unknown host example.invalid\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Traceroute(tt.raw); !errors.Is(err, ErrParse) {
				t.Errorf("Traceroute(%q) error = %v, want ErrParse", tt.raw, err)
			}
		})
	}
}
