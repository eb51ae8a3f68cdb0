package search

import (
	"fmt"

	"medibook/models"
)

// minutesPerDay bounds slot and window times, which count minutes from midnight.
const minutesPerDay = 24 * 60

// Criteria is the set of optional filters a directory search applies. All set
// filters must hold at once; an unset filter excludes nobody. Empty strings
// and nil pointers mean unset, so the zero Criteria matches every doctor.
type Criteria struct {
	Name           string                     `json:"name,omitempty"`           // case-insensitive substring of the doctor's name
	Specialization string                     `json:"specialization,omitempty"` // case-insensitive exact match
	Location       string                     `json:"location,omitempty"`       // case-insensitive exact match
	MinExperience  *int                       `json:"minExperience,omitempty"`  // inclusive lower bound, years
	MinRating      *float64                   `json:"minRating,omitempty"`      // inclusive lower bound, 0 through 5
	Availability   *models.AvailabilityWindow `json:"availability,omitempty"`   // window an open slot must fully contain
}

// Validate rejects out-of-range filters before any scan happens. The first
// offending field wins.
func (c Criteria) Validate() error {
	if c.MinExperience != nil && *c.MinExperience < 0 {
		return &ValidationError{Field: "minExperience", Reason: "must not be negative"}
	}
	if c.MinRating != nil && (*c.MinRating < 0 || *c.MinRating > 5) {
		return &ValidationError{Field: "minRating", Reason: "must be between 0 and 5"}
	}
	if w := c.Availability; w != nil {
		if !w.Day.Valid() {
			return &ValidationError{Field: "availability.day", Reason: fmt.Sprintf("unknown weekday %q", w.Day)}
		}
		if w.Start < 0 || w.End > minutesPerDay {
			return &ValidationError{Field: "availability", Reason: "window must lie within a single day"}
		}
		if w.Start >= w.End {
			return &ValidationError{Field: "availability", Reason: "window start must be before its end"}
		}
	}
	return nil
}

// Page addresses one page of a ranked result. Pages are zero-based.
type Page struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

func (p Page) Validate() error {
	if p.Page < 0 {
		return &ValidationError{Field: "page", Reason: "must not be negative"}
	}
	if p.PageSize <= 0 {
		return &ValidationError{Field: "pageSize", Reason: "must be greater than zero"}
	}
	return nil
}
