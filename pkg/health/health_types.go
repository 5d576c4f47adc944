package health

import (
	"context"
	"sync"
	"time"
)

// Status represents the health status of a dependency
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// Check is the result of probing one dependency
type Check struct {
	Name        string         `json:"name"`
	Status      Status         `json:"status"`
	Message     string         `json:"message,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
	LastChecked time.Time      `json:"last_checked"`
	Duration    time.Duration  `json:"duration_ns"`
}

// CheckFunc probes one dependency
type CheckFunc func(ctx context.Context) Check

// Checker runs preflight checks against the inputs and outputs of a run
type Checker struct {
	mu     sync.RWMutex
	checks map[string]CheckFunc
	order  []string
}

// Response is the combined result of all checks
type Response struct {
	Status    Status           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Checks    map[string]Check `json:"checks"`
}
