// Package search implements the doctor directory's filter and ranking engine.
// It is pure computation over a snapshot of doctors supplied by the caller:
// no I/O, no shared state, safe for concurrent use over independent snapshots.
package search

import (
	"math"
	"sort"
	"strings"

	"medibook/models"
)

// Match is one search hit. AverageRating is nil for doctors with no reviews.
// Slots lists the open slots that fully contain the requested window and is
// only populated when the criteria carried an availability filter.
type Match struct {
	ID              string                    `json:"id"`
	Name            string                    `json:"name"`
	Specialization  string                    `json:"specialization"`
	Location        string                    `json:"location"`
	YearsExperience int                       `json:"yearsExperience"`
	AverageRating   *float64                  `json:"averageRating"`
	ReviewCount     int                       `json:"reviewCount"`
	Slots           []models.AvailabilitySlot `json:"slots,omitempty"`
}

// Result is one page of a ranked search. TotalMatched counts every doctor
// that passed the filters, not just the ones on this page.
type Result struct {
	Matches      []Match `json:"matches"`
	TotalMatched int     `json:"totalMatched"`
	Page         int     `json:"page"`
	PageSize     int     `json:"pageSize"`
	HasMore      bool    `json:"hasMore"`
}

// Search evaluates the criteria over the snapshot and returns every match
// ranked by average rating, best first. Doctors without reviews rank below
// every rated doctor; ties break on ascending ID, so the order is total and
// reproducible. The snapshot is never mutated.
func Search(criteria Criteria, doctors []models.Doctor) []Match {
	matched := make([]Match, 0, len(doctors))
	for i := range doctors {
		doc := &doctors[i]
		ok, slots := matches(criteria, doc)
		if !ok {
			continue
		}
		matched = append(matched, newMatch(doc, slots))
	}

	sort.Slice(matched, func(i, j int) bool {
		ri, rj := rankScore(matched[i]), rankScore(matched[j])
		if ri != rj {
			return ri > rj
		}
		return matched[i].ID < matched[j].ID
	})

	return matched
}

// Paginate slices one zero-based page out of a ranked match list. A page
// starting beyond the end yields an empty slice, never an error. The second
// result reports whether more matches follow the returned page.
func Paginate(matched []Match, page Page) ([]Match, bool) {
	total := len(matched)
	start := page.Page * page.PageSize
	if start >= total {
		return []Match{}, false
	}
	end := start + page.PageSize
	if end > total {
		end = total
	}
	return matched[start:end], end < total
}

// Run is the composition callers use: validate both inputs, filter, rank,
// then slice the requested page.
func Run(criteria Criteria, page Page, doctors []models.Doctor) (*Result, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}

	found := Search(criteria, doctors)
	pageMatches, hasMore := Paginate(found, page)

	return &Result{
		Matches:      pageMatches,
		TotalMatched: len(found),
		Page:         page.Page,
		PageSize:     page.PageSize,
		HasMore:      hasMore,
	}, nil
}

// matches applies every set filter to one doctor. The returned slots are the
// open slots containing the requested window, nil when no window was asked for.
func matches(c Criteria, doc *models.Doctor) (bool, []models.AvailabilitySlot) {
	if c.Name != "" && !strings.Contains(strings.ToLower(doc.Name), strings.ToLower(c.Name)) {
		return false, nil
	}
	if c.Specialization != "" && !strings.EqualFold(doc.Specialization, c.Specialization) {
		return false, nil
	}
	if c.Location != "" && !strings.EqualFold(doc.Location, c.Location) {
		return false, nil
	}
	if c.MinExperience != nil && doc.YearsExperience < *c.MinExperience {
		return false, nil
	}
	// A doctor with no reviews has no rating at all, so any set threshold
	// excludes them, including an explicit zero.
	if c.MinRating != nil && (!doc.Rated() || doc.AverageRating < *c.MinRating) {
		return false, nil
	}
	if c.Availability != nil {
		slots := openSlotsContaining(doc.Availability, *c.Availability)
		if len(slots) == 0 {
			return false, nil
		}
		return true, slots
	}
	return true, nil
}

// openSlotsContaining collects the slots that are open and fully contain the
// window. Partial overlap does not count.
func openSlotsContaining(slots []models.AvailabilitySlot, window models.AvailabilityWindow) []models.AvailabilitySlot {
	var out []models.AvailabilitySlot
	for _, slot := range slots {
		if slot.Status != models.SlotOpen {
			continue
		}
		if window.ContainedBy(slot) {
			out = append(out, slot)
		}
	}
	return out
}

// rankScore is the descending sort key. Unrated doctors score negative
// infinity so they always trail rated ones without ever being dropped.
func rankScore(m Match) float64 {
	if m.AverageRating == nil {
		return math.Inf(-1)
	}
	return *m.AverageRating
}

func newMatch(doc *models.Doctor, slots []models.AvailabilitySlot) Match {
	m := Match{
		ID:              doc.ID,
		Name:            doc.Name,
		Specialization:  doc.Specialization,
		Location:        doc.Location,
		YearsExperience: doc.YearsExperience,
		ReviewCount:     doc.ReviewCount,
		Slots:           slots,
	}
	if doc.Rated() {
		rating := doc.AverageRating
		m.AverageRating = &rating
	}
	return m
}
