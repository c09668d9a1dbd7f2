// Package parse extracts structured results from the text output of the
// ping and traceroute utilities. The target grammar is Linux iputils
// ping and Linux traceroute run with -n -q 1; the BSD/macOS ping summary
// line is accepted as well since it only costs an extra pattern.
package parse

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"connectivity-api/internal/models"
)

// ErrParse signals output that does not match the expected format.
var ErrParse = errors.New("unrecognized output")

var (
	// "4 packets transmitted, 4 received, ..." (Linux)
	// "4 packets transmitted, 4 packets received, ..." (macOS/BSD)
	packetsRe = regexp.MustCompile(`(\d+) packets transmitted, (\d+)(?: packets)? received`)

	// "rtt min/avg/max/mdev = 11.2/13.4/15.9/1.8 ms" (Linux)
	// "round-trip min/avg/max/stddev = 44.3/44.3/44.3/0.0 ms" (macOS/BSD)
	rttRe = regexp.MustCompile(`(?:rtt|round-trip) min/avg/max(?:/(?:mdev|stddev))? = ([0-9.]+)/([0-9.]+)/([0-9.]+)`)

	// "64 bytes from 8.8.8.8: icmp_seq=1 ttl=118 time=12.3 ms"
	replyRe = regexp.MustCompile(`time[=<]([0-9.]+)\s*ms`)
)

// PingStats holds the fields extracted from a ping summary. The timing
// triple is nil when no packets came back.
type PingStats struct {
	Transmitted int
	Received    int
	Loss        float64
	MinMs       *float64
	AvgMs       *float64
	MaxMs       *float64
}

// Ping parses the summary of a ping run. It fails with ErrParse when the
// packet summary line cannot be located rather than returning zeros.
func Ping(raw string) (PingStats, error) {
	var stats PingStats

	m := packetsRe.FindStringSubmatch(raw)
	if m == nil {
		return stats, fmt.Errorf("%w: no ping packet summary found", ErrParse)
	}

	transmitted, err := strconv.Atoi(m[1])
	if err != nil {
		return stats, fmt.Errorf("%w: transmitted count %q: %v", ErrParse, m[1], err)
	}
	received, err := strconv.Atoi(m[2])
	if err != nil {
		return stats, fmt.Errorf("%w: received count %q: %v", ErrParse, m[2], err)
	}
	if transmitted <= 0 {
		return stats, fmt.Errorf("%w: no packets transmitted", ErrParse)
	}
	if received > transmitted {
		return stats, fmt.Errorf("%w: received %d exceeds transmitted %d", ErrParse, received, transmitted)
	}

	stats.Transmitted = transmitted
	stats.Received = received
	// Derived from the counts so the loss/count invariant always holds,
	// instead of trusting the utility's rounded percentage.
	stats.Loss = 100 * (1 - float64(received)/float64(transmitted))

	if tm := rttRe.FindStringSubmatch(raw); tm != nil {
		min, err := parseMs(tm[1])
		if err != nil {
			return PingStats{}, err
		}
		avg, err := parseMs(tm[2])
		if err != nil {
			return PingStats{}, err
		}
		max, err := parseMs(tm[3])
		if err != nil {
			return PingStats{}, err
		}
		stats.MinMs, stats.AvgMs, stats.MaxMs = &min, &avg, &max
	} else if received > 0 {
		return PingStats{}, fmt.Errorf("%w: replies received but no rtt summary found", ErrParse)
	}

	return stats, nil
}

// PingReplyTimes extracts the per-reply RTT series in reply order.
// Missing replies simply do not appear; an empty series is not an error
// here since the summary parser decides whether the run was usable.
func PingReplyTimes(raw string) []float64 {
	matches := replyRe.FindAllStringSubmatch(raw, -1)
	times := make([]float64, 0, len(matches))
	for _, m := range matches {
		if rtt, err := strconv.ParseFloat(m[1], 64); err == nil {
			times = append(times, rtt)
		}
	}
	return times
}

// Traceroute parses traceroute output into an ordered hop sequence.
// One hop per line; a hop whose probe got no answer is reported with
// the "*" marker and no RTT. Lines that do not continue the 1-based
// consecutive hop numbering (the header, probe continuation lines) are
// skipped. Output with no recognizable hops at all fails with ErrParse.
func Traceroute(raw string) ([]models.TracerouteHop, error) {
	var hops []models.TracerouteHop

	for _, line := range strings.Split(raw, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}

		num, err := strconv.Atoi(fields[0])
		if err != nil || num != len(hops)+1 {
			continue
		}

		hop := models.TracerouteHop{Hop: num, Host: fields[1]}
		if fields[1] != "*" && len(fields) >= 3 {
			if rtt, err := strconv.ParseFloat(fields[2], 64); err == nil {
				hop.RTTMs = &rtt
			}
		}
		hops = append(hops, hop)
	}

	if len(hops) == 0 {
		return nil, fmt.Errorf("%w: no traceroute hops found", ErrParse)
	}
	return hops, nil
}

// parseMs parses one timing field, accepting only "." as the decimal
// separator so a locale-formatted value fails loudly instead of
// misparsing.
func parseMs(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: timing value %q: %v", ErrParse, s, err)
	}
	return v, nil
}
