package api

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5/middleware"
)

const readinessTimeout = 2 * time.Second

// HealthStatus represents the overall health status
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// HealthCheck represents an individual health check
type HealthCheck struct {
	Status      HealthStatus `json:"status"`
	Message     string       `json:"message,omitempty"`
	LastChecked string       `json:"last_checked"`
	Duration    string       `json:"duration,omitempty"`
}

// SystemInfo contains system information
type SystemInfo struct {
	GoVersion     string `json:"go_version"`
	NumGoroutines int    `json:"num_goroutines"`
	GOMAXPROCS    int    `json:"gomaxprocs"`
	MemoryAlloc   string `json:"memory_alloc"`
	MemorySys     string `json:"memory_sys"`
	GCCycles      uint32 `json:"gc_cycles"`
}

// ReadinessResponse reports whether the server can take traffic
type ReadinessResponse struct {
	OK        bool                   `json:"ok"`
	Status    HealthStatus           `json:"status"`
	Version   string                 `json:"version"`
	Started   string                 `json:"started"`
	Uptime    string                 `json:"uptime"`
	Checks    map[string]HealthCheck `json:"checks"`
	System    SystemInfo             `json:"system"`
	RequestID string                 `json:"request_id,omitempty"`
}

// handleHealth is the plain liveness answer the game client polls
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{OK: true})
}

// handleReadiness pings storage and reports process information
func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	dbCheck := s.checkDatabaseHealth(r.Context())

	status := HealthStatusHealthy
	statusCode := http.StatusOK
	if dbCheck.Status != HealthStatusHealthy {
		status = HealthStatusUnhealthy
		statusCode = http.StatusServiceUnavailable
	}

	response := ReadinessResponse{
		OK:        status == HealthStatusHealthy,
		Status:    status,
		Version:   Version,
		Started:   humanize.Time(s.startTime),
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
		Checks:    map[string]HealthCheck{"database": dbCheck},
		System:    s.getSystemInfo(),
		RequestID: middleware.GetReqID(r.Context()),
	}

	s.writeJSON(w, statusCode, response)
}

// handleLiveness provides liveness probe endpoint
func (s *Server) handleLiveness(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"ok":         true,
		"alive":      true,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"uptime":     time.Since(s.startTime).Round(time.Second).String(),
		"request_id": middleware.GetReqID(r.Context()),
	})
}

// checkDatabaseHealth pings the store and counts recorded runs
func (s *Server) checkDatabaseHealth(ctx context.Context) HealthCheck {
	start := time.Now()
	check := HealthCheck{Status: HealthStatusHealthy}

	ctx, cancel := context.WithTimeout(ctx, readinessTimeout)
	defer cancel()

	switch {
	case s.db == nil:
		check.Status = HealthStatusUnhealthy
		check.Message = "Database not initialized"
	default:
		if err := s.db.Ping(ctx); err != nil {
			s.logger.WithError(err).Warn("readiness ping failed")
			check.Status = HealthStatusUnhealthy
			check.Message = "Database unreachable"
			break
		}
		total, err := s.db.CountScores(ctx, "")
		if err != nil {
			s.logger.WithError(err).Warn("readiness count failed")
			check.Status = HealthStatusUnhealthy
			check.Message = "Database query failed"
			break
		}
		check.Message = humanize.Comma(total) + " scores recorded"
	}

	check.LastChecked = time.Now().UTC().Format(time.RFC3339)
	check.Duration = time.Since(start).String()
	return check
}

// getSystemInfo collects system information
func (s *Server) getSystemInfo() SystemInfo {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return SystemInfo{
		GoVersion:     runtime.Version(),
		NumGoroutines: runtime.NumGoroutine(),
		GOMAXPROCS:    runtime.GOMAXPROCS(0),
		MemoryAlloc:   humanize.Bytes(m.Alloc),
		MemorySys:     humanize.Bytes(m.Sys),
		GCCycles:      m.NumGC,
	}
}
