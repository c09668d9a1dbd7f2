package policy

import (
	"errors"
	"sort"
	"testing"

	"connectivity-api/internal/config"
)

func TestIsAllowed(t *testing.T) {
	p := New(config.Default())

	tests := []struct {
		name     string
		host     string
		expected bool
	}{
		{"allowed IP", "8.8.8.8", true},
		{"allowed domain", "google.com", true},
		{"unknown host", "evil.example.com", false},
		{"case sensitive", "Google.com", false},
		{"substring does not match", "8.8.8", false},
		{"empty host", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.IsAllowed(tt.host); got != tt.expected {
				t.Errorf("IsAllowed(%q) = %v, want %v", tt.host, got, tt.expected)
			}
		})
	}
}

func TestClampCount(t *testing.T) {
	p := New(config.Default())

	tests := []struct {
		name      string
		requested int
		expected  int
		wantErr   bool
	}{
		{"minimum", 1, 1, false},
		{"within range", 4, 4, false},
		{"at maximum", 10, 10, false},
		{"above maximum", 11, 10, false},
		{"far above maximum", 1000, 10, false},
		{"zero", 0, 0, true},
		{"negative", -3, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.ClampCount(tt.requested)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidParameter) {
					t.Fatalf("ClampCount(%d) error = %v, want ErrInvalidParameter", tt.requested, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ClampCount(%d) unexpected error: %v", tt.requested, err)
			}
			if got != tt.expected {
				t.Errorf("ClampCount(%d) = %d, want %d", tt.requested, got, tt.expected)
			}
			if got < 1 {
				t.Errorf("ClampCount(%d) = %d, result must be >= 1", tt.requested, got)
			}
		})
	}
}

func TestClampHops(t *testing.T) {
	p := New(config.Default())

	if _, err := p.ClampHops(0); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("ClampHops(0) error = %v, want ErrInvalidParameter", err)
	}

	got, err := p.ClampHops(30)
	if err != nil || got != 30 {
		t.Errorf("ClampHops(30) = %d, %v, want 30, nil", got, err)
	}

	got, err = p.ClampHops(80)
	if err != nil || got != 50 {
		t.Errorf("ClampHops(80) = %d, %v, want 50, nil", got, err)
	}
}

func TestValidateBulkSize(t *testing.T) {
	p := New(config.Default())

	five := []string{"a", "b", "c", "d", "e"}
	if err := p.ValidateBulkSize(five); err != nil {
		t.Errorf("ValidateBulkSize(5 hosts) = %v, want nil", err)
	}

	if err := p.ValidateBulkSize(nil); err != nil {
		t.Errorf("ValidateBulkSize(no hosts) = %v, want nil", err)
	}

	six := append(five, "f")
	if err := p.ValidateBulkSize(six); !errors.Is(err, ErrTooManyHosts) {
		t.Errorf("ValidateBulkSize(6 hosts) = %v, want ErrTooManyHosts", err)
	}
}

func TestAllowedHosts(t *testing.T) {
	cfg := config.Default()
	p := New(cfg)

	hosts := p.AllowedHosts()
	if len(hosts) != len(cfg.AllowedHosts) {
		t.Fatalf("AllowedHosts() returned %d hosts, want %d", len(hosts), len(cfg.AllowedHosts))
	}
	if !sort.StringsAreSorted(hosts) {
		t.Errorf("AllowedHosts() not sorted: %v", hosts)
	}

	// Mutating the returned slice must not affect the policy
	hosts[0] = "mutated.example.com"
	if p.IsAllowed("mutated.example.com") {
		t.Error("mutating the returned slice leaked into the policy")
	}
}
