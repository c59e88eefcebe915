package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/MJE43/maze-arcade-go/internal/service"
)

// queryInt reads an optional integer query parameter. An absent or empty
// value yields nil; anything else must parse as a base-10 integer.
func queryInt(q url.Values, key string) (*int, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &service.ValidationError{Field: key, Message: fmt.Sprintf("must be an integer, got %q", raw)}
	}
	return &n, nil
}

// ValidateScoreRequest checks that the required numeric fields are present.
// Range and integrality checks belong to the leaderboard service.
func ValidateScoreRequest(req *ScoreRequest) error {
	if req.Steps == nil {
		return &service.ValidationError{Field: "steps", Message: "is required"}
	}
	if req.Elapsed == nil {
		return &service.ValidationError{Field: "elapsed", Message: "is required"}
	}
	return nil
}

// toSubmission converts the request body into a service submission
func toSubmission(req *ScoreRequest) service.ScoreSubmission {
	sub := service.ScoreSubmission{
		Seed:    req.Seed,
		Steps:   *req.Steps,
		Elapsed: *req.Elapsed,
	}
	if req.Name != nil {
		sub.Name = *req.Name
	}
	return sub
}
