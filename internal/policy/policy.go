package policy

import (
	"errors"
	"fmt"
	"sort"

	"connectivity-api/internal/config"
)

// Validation failures, checked by callers with errors.Is.
var (
	ErrHostNotAllowed   = errors.New("host not allowed")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrTooManyHosts     = errors.New("too many hosts")
)

// Policy answers whether a request may run and clamps its numeric
// parameters to the configured limits. It holds no mutable state.
type Policy struct {
	cfg     config.Config
	allowed map[string]struct{}
}

// New creates a new Policy from the service configuration
func New(cfg config.Config) *Policy {
	allowed := make(map[string]struct{}, len(cfg.AllowedHosts))
	for _, host := range cfg.AllowedHosts {
		allowed[host] = struct{}{}
	}
	return &Policy{cfg: cfg, allowed: allowed}
}

// IsAllowed reports whether host is on the allow-list. Matching is
// exact and case-sensitive.
func (p *Policy) IsAllowed(host string) bool {
	_, ok := p.allowed[host]
	return ok
}

// ClampCount validates a requested ping count and caps it at the maximum
func (p *Policy) ClampCount(requested int) (int, error) {
	if requested <= 0 {
		return 0, fmt.Errorf("%w: count must be positive, got %d", ErrInvalidParameter, requested)
	}
	if requested > p.cfg.MaxPingCount {
		return p.cfg.MaxPingCount, nil
	}
	return requested, nil
}

// ClampHops validates a requested hop limit and caps it at the maximum
func (p *Policy) ClampHops(requested int) (int, error) {
	if requested <= 0 {
		return 0, fmt.Errorf("%w: max_hops must be positive, got %d", ErrInvalidParameter, requested)
	}
	if requested > p.cfg.MaxHops {
		return p.cfg.MaxHops, nil
	}
	return requested, nil
}

// ValidateBulkSize rejects bulk requests exceeding the host cap
func (p *Policy) ValidateBulkSize(hosts []string) error {
	if len(hosts) > p.cfg.MaxBulkHosts {
		return fmt.Errorf("%w: got %d hosts, maximum is %d", ErrTooManyHosts, len(hosts), p.cfg.MaxBulkHosts)
	}
	return nil
}

// AllowedHosts returns a sorted copy of the allow-list
func (p *Policy) AllowedHosts() []string {
	hosts := make([]string, 0, len(p.allowed))
	for host := range p.allowed {
		hosts = append(hosts, host)
	}
	sort.Strings(hosts)
	return hosts
}
