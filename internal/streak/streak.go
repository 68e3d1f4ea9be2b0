// Package streak computes the consecutive-day activity streak from the two
// independently recorded activity sources.
package streak

import (
	"context"
	"log"
	"time"

	"github.com/example/tenkanji/pkg/models"
)

const dateLayout = "2006-01-02"

// DateSet is a set of calendar dates in YYYY-MM-DD form.
type DateSet map[string]bool

// NewDateSet builds a DateSet from date strings, deduplicating as it goes.
func NewDateSet(dates ...string) DateSet {
	set := make(DateSet, len(dates))
	for _, d := range dates {
		set[d] = true
	}
	return set
}

// Add inserts a date into the set.
func (s DateSet) Add(date string) {
	s[date] = true
}

// Contains reports whether the date is in the set.
func (s DateSet) Contains(date string) bool {
	return s[date]
}

// Count walks the streak ending at today. The anchor is today when present,
// otherwise yesterday: a user who acted yesterday but not yet today keeps
// the streak. When neither day is in the set the streak is 0. From the
// anchor the walk steps back one day at a time until the first gap.
func Count(set DateSet, today time.Time) int {
	anchor := today.UTC().Truncate(24 * time.Hour)
	if !set.Contains(anchor.Format(dateLayout)) {
		anchor = anchor.AddDate(0, 0, -1)
	}
	count := 0
	for set.Contains(anchor.Format(dateLayout)) {
		count++
		anchor = anchor.AddDate(0, 0, -1)
	}
	return count
}

// ChallengeDates lists the dates a user completed the daily challenge.
type ChallengeDates interface {
	Dates(ctx context.Context, initials string) ([]string, error)
}

// ActivityDates lists the distinct activity dates of one kind for a user.
type ActivityDates interface {
	Dates(ctx context.Context, initials string, kind models.ActivityKind) ([]string, error)
}

// Calculator merges the daily challenge and normal session date sources.
type Calculator struct {
	challenges ChallengeDates
	activity   ActivityDates
}

// NewCalculator creates a streak calculator over the two date sources.
func NewCalculator(challenges ChallengeDates, activity ActivityDates) *Calculator {
	return &Calculator{challenges: challenges, activity: activity}
}

// Current returns the user's streak as of today. The streak is an advisory
// statistic: when one source cannot be read it is skipped (and logged)
// rather than failing the caller, and when both fail the streak is 0.
func (c *Calculator) Current(ctx context.Context, initials string, today time.Time) int {
	set := make(DateSet)

	challengeDates, err := c.challenges.Dates(ctx, initials)
	if err != nil {
		log.Printf("[streak] skipping daily challenge dates for %s: %v", initials, err)
	}
	for _, d := range challengeDates {
		set.Add(d)
	}

	sessionDates, err := c.activity.Dates(ctx, initials, models.ActivityNormalSession)
	if err != nil {
		log.Printf("[streak] skipping activity dates for %s: %v", initials, err)
	}
	for _, d := range sessionDates {
		set.Add(d)
	}

	return Count(set, today)
}
