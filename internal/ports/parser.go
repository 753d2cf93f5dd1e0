package ports

import (
	"context"
	"errors"
	"fmt"

	"itinerary-planner-service/internal/domain"
)

// Structured decomposition of a free-text request.
// Fixed entries carry explicit clock times; flexible entries are ordered by
// mention sequence and record their nearest preceding fixed anchor in
// AfterFixed.
type ParsedRequest struct {
	FixedTimeEntries    []domain.ActivityEntry
	FlexibleTimeEntries []domain.ActivityEntry
}

// Contract for decomposing a natural-language request into activity entries.
// An input with no extractable activity yields an empty result, not an error.
type RequestParser interface {
	Parse(ctx context.Context, text string, city domain.CityConfig) (ParsedRequest, error)
}

// ParseError signals that the parse layer was unreachable or returned an
// unusable structure. Callers treat it as zero entries rather than a crash.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return fmt.Sprintf("parse request: %v", e.Err) }

func (e *ParseError) Unwrap() error { return e.Err }

// IsParseError reports whether err is (or wraps) a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
