package api

import (
	"github.com/MJE43/maze-arcade-go/internal/maze"
	"github.com/MJE43/maze-arcade-go/internal/service"
)

// APIError represents a structured error response with context
type APIError struct {
	OK        bool                   `json:"ok"`
	Type      string                 `json:"type"`
	Message   string                 `json:"message"`
	Context   map[string]interface{} `json:"context,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
	Timestamp string                 `json:"timestamp,omitempty"`
}

// Error implements the error interface
func (e APIError) Error() string {
	return e.Message
}

// Error types with proper categorization
const (
	// Input validation errors
	ErrTypeInvalidParams = "invalid_params"
	ErrTypeInvalidJSON   = "invalid_json"
	ErrTypeValidation    = "validation_error"

	// Storage errors
	ErrTypeStorage = "storage_error"

	// System errors
	ErrTypeTimeout            = "timeout"
	ErrTypeInternal           = "internal_error"
	ErrTypeServiceUnavailable = "service_unavailable"
)

// ErrorCategory represents error categories for monitoring
type ErrorCategory string

const (
	CategoryValidation ErrorCategory = "validation"
	CategoryStorage    ErrorCategory = "storage"
	CategorySystem     ErrorCategory = "system"
	CategoryTimeout    ErrorCategory = "timeout"
)

// GetErrorCategory returns the category for an error type
func GetErrorCategory(errType string) ErrorCategory {
	switch errType {
	case ErrTypeInvalidParams, ErrTypeInvalidJSON, ErrTypeValidation:
		return CategoryValidation
	case ErrTypeStorage:
		return CategoryStorage
	case ErrTypeTimeout:
		return CategoryTimeout
	default:
		return CategorySystem
	}
}

// VersionInfo contains service version information
type VersionInfo struct {
	OK        bool   `json:"ok"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
}

// MazeResponse is a generated maze in the ok envelope.
type MazeResponse struct {
	OK bool `json:"ok"`
	*maze.Maze
}

// SeedResponse carries a freshly issued seed.
type SeedResponse struct {
	OK   bool   `json:"ok"`
	Seed string `json:"seed"`
}

// ScoreRequest is the body of POST /score. Steps and Elapsed are pointers so
// a missing field can be told apart from zero.
type ScoreRequest struct {
	Seed    string   `json:"seed"`
	Steps   *float64 `json:"steps"`
	Elapsed *float64 `json:"elapsed"`
	Name    *string  `json:"name,omitempty"`
}

// ScoreResponse returns the id assigned to a recorded run.
type ScoreResponse struct {
	OK bool  `json:"ok"`
	ID int64 `json:"id"`
}

// LeaderboardResponse is an ordered ranking.
type LeaderboardResponse struct {
	OK    bool                       `json:"ok"`
	Items []service.LeaderboardEntry `json:"items"`
}

// HealthResponse represents a basic health check response
type HealthResponse struct {
	OK bool `json:"ok"`
}
