package models

import "time"

// ErrorResponse is the body written for any failed API call.
type ErrorResponse struct {
	Success bool         `json:"success"`
	Error   *ErrorDetail `json:"error"`
}

// SnapshotStats describes the cached club snapshot.
type SnapshotStats struct {
	Records     int       `json:"records"`
	RefreshedAt time.Time `json:"refreshed_at"`
	Age         string    `json:"age"`
	Stale       bool      `json:"stale"`
	Refreshing  bool      `json:"refreshing"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status   string        `json:"status"`
	Uptime   string        `json:"uptime"`
	Snapshot SnapshotStats `json:"snapshot"`
	Version  string        `json:"version"`
}
