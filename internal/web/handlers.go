package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"connectivity-api/internal/parse"
	"connectivity-api/internal/policy"
	"connectivity-api/internal/report"
	"connectivity-api/internal/runner"
)

// handleRoot serves the same payload as /health for the bare path only
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.writeError(w, http.StatusNotFound, "NOT_FOUND", "no such route")
		return
	}
	s.handleHealth(w, r)
}

// handleHealth handles /health requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "use GET")
		return
	}
	s.writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   Version,
	})
}

// handlePing handles /ping requests
func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "use GET")
		return
	}

	host := r.URL.Query().Get("host")
	if host == "" {
		s.writeError(w, http.StatusBadRequest, "INVALID_PARAMETER", "host parameter required")
		return
	}
	count, ok := s.queryInt(w, r, "count", s.cfg.DefaultPingCount)
	if !ok {
		return
	}

	result, err := s.prober.Ping(r.Context(), host, count)
	if err != nil {
		s.writeProbeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

// handleTraceroute handles /traceroute requests
func (s *Server) handleTraceroute(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "use GET")
		return
	}

	host := r.URL.Query().Get("host")
	if host == "" {
		s.writeError(w, http.StatusBadRequest, "INVALID_PARAMETER", "host parameter required")
		return
	}
	maxHops, ok := s.queryInt(w, r, "max_hops", s.cfg.DefaultHops)
	if !ok {
		return
	}

	result, err := s.prober.Traceroute(r.Context(), host, maxHops)
	if err != nil {
		s.writeProbeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

// handleBulkPing handles /ping/bulk requests
func (s *Server) handleBulkPing(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "use POST")
		return
	}

	var req bulkPingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "INVALID_PARAMETER", "invalid request body: "+err.Error())
		return
	}
	if len(req.Hosts) == 0 {
		s.writeError(w, http.StatusBadRequest, "INVALID_PARAMETER", "hosts list required")
		return
	}
	if req.Count == 0 {
		req.Count = s.cfg.DefaultPingCount
	}

	result, err := s.prober.BulkPing(r.Context(), req.Hosts, req.Count)
	if err != nil {
		s.writeProbeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

// handleAllowedHosts handles /allowed-hosts requests
func (s *Server) handleAllowedHosts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "use GET")
		return
	}

	hosts := s.prober.AllowedHosts()
	s.writeJSON(w, http.StatusOK, allowedHostsResponse{
		AllowedHosts: hosts,
		Count:        len(hosts),
		Timestamp:    time.Now(),
	})
}

// handlePingChart handles /ping/chart requests, returning a PNG of the
// per-reply RTT series for one ping run
func (s *Server) handlePingChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "use GET")
		return
	}

	host := r.URL.Query().Get("host")
	if host == "" {
		s.writeError(w, http.StatusBadRequest, "INVALID_PARAMETER", "host parameter required")
		return
	}
	count, ok := s.queryInt(w, r, "count", s.cfg.DefaultPingCount)
	if !ok {
		return
	}

	series, err := s.prober.PingSeries(r.Context(), host, count)
	if err != nil {
		s.writeProbeError(w, err)
		return
	}
	if len(series) < 2 {
		s.writeError(w, http.StatusInternalServerError, "PARSE_FAILED",
			fmt.Sprintf("not enough replies to chart (%d)", len(series)))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err := report.RTTChart(w, host, series); err != nil {
		s.log.Error("chart render failed", zap.String("host", host), zap.Error(err))
	}
}

// queryInt reads an optional integer query parameter, writing a 400 on
// garbage. The range itself is the policy's business, not the handler's.
func (s *Server) queryInt(w http.ResponseWriter, r *http.Request, name string, def int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "INVALID_PARAMETER",
			fmt.Sprintf("%s must be an integer, got %q", name, raw))
		return 0, false
	}
	return v, true
}

// writeProbeError maps the probe error taxonomy onto HTTP statuses:
// validation failures are the caller's fault, timeouts are gateway
// errors, everything else is a server-side failure.
func (s *Server) writeProbeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, policy.ErrHostNotAllowed):
		s.writeError(w, http.StatusBadRequest, "HOST_NOT_ALLOWED", err.Error())
	case errors.Is(err, policy.ErrInvalidParameter):
		s.writeError(w, http.StatusBadRequest, "INVALID_PARAMETER", err.Error())
	case errors.Is(err, policy.ErrTooManyHosts):
		s.writeError(w, http.StatusBadRequest, "TOO_MANY_HOSTS", err.Error())
	case errors.Is(err, runner.ErrTimeout):
		s.writeError(w, http.StatusGatewayTimeout, "TIMEOUT", err.Error())
	case errors.Is(err, runner.ErrExecution):
		s.writeError(w, http.StatusInternalServerError, "EXECUTION_FAILED", err.Error())
	case errors.Is(err, parse.ErrParse):
		s.writeError(w, http.StatusInternalServerError, "PARSE_FAILED", err.Error())
	default:
		s.writeError(w, http.StatusInternalServerError, "INTERNAL", err.Error())
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, code, detail string) {
	s.writeJSON(w, status, errorResponse{
		Detail:    detail,
		ErrorCode: code,
		Timestamp: time.Now(),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("response encode failed", zap.Error(err))
	}
}
