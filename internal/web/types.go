package web

import "time"

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

type allowedHostsResponse struct {
	AllowedHosts []string  `json:"allowed_hosts"`
	Count        int       `json:"count"`
	Timestamp    time.Time `json:"timestamp"`
}

type errorResponse struct {
	Detail    string    `json:"detail"`
	ErrorCode string    `json:"error_code"`
	Timestamp time.Time `json:"timestamp"`
}

type bulkPingRequest struct {
	Hosts []string `json:"hosts"`
	Count int      `json:"count"`
}
