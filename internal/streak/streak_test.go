package streak

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/tenkanji/pkg/models"
)

var today = time.Date(2024, 3, 10, 18, 30, 0, 0, time.UTC)

func day(offset int) string {
	return today.AddDate(0, 0, offset).Format("2006-01-02")
}

func TestCountEmptySet(t *testing.T) {
	assert.Equal(t, 0, Count(NewDateSet(), today))
}

func TestCountAnchorsOnToday(t *testing.T) {
	set := NewDateSet(day(0), day(-1), day(-2))
	assert.Equal(t, 3, Count(set, today))
}

func TestCountGracePeriod(t *testing.T) {
	// Yesterday only: the streak survives until the end of today.
	assert.Equal(t, 1, Count(NewDateSet(day(-1)), today))
	// Two days ago only: the streak is gone.
	assert.Equal(t, 0, Count(NewDateSet(day(-2)), today))
}

func TestCountStopsAtGap(t *testing.T) {
	set := NewDateSet(day(0), day(-1), day(-3), day(-4))
	assert.Equal(t, 2, Count(set, today))
}

func TestCountDeduplicatesDates(t *testing.T) {
	set := NewDateSet(day(0), day(0), day(-1), day(-1))
	assert.Equal(t, 2, Count(set, today))
}

type fakeChallengeDates struct {
	dates []string
	err   error
}

func (f *fakeChallengeDates) Dates(context.Context, string) ([]string, error) {
	return f.dates, f.err
}

type fakeActivityDates struct {
	dates []string
	err   error
}

func (f *fakeActivityDates) Dates(_ context.Context, _ string, kind models.ActivityKind) ([]string, error) {
	if kind != models.ActivityNormalSession {
		return nil, nil
	}
	return f.dates, f.err
}

func TestCurrentMergesBothSources(t *testing.T) {
	// Alternating days split across the two sources still form one streak.
	challenges := &fakeChallengeDates{dates: []string{day(0), day(-2), day(-4)}}
	activity := &fakeActivityDates{dates: []string{day(-1), day(-3)}}
	calc := NewCalculator(challenges, activity)

	assert.Equal(t, 5, calc.Current(context.Background(), "ABC", today))
}

func TestCurrentDegradesWithoutActivitySource(t *testing.T) {
	challenges := &fakeChallengeDates{dates: []string{day(0), day(-1)}}
	activity := &fakeActivityDates{err: errors.New("activity source unreadable")}
	calc := NewCalculator(challenges, activity)

	assert.Equal(t, 2, calc.Current(context.Background(), "ABC", today))
}

func TestCurrentBothSourcesFailing(t *testing.T) {
	calc := NewCalculator(
		&fakeChallengeDates{err: errors.New("down")},
		&fakeActivityDates{err: errors.New("down")},
	)

	assert.Equal(t, 0, calc.Current(context.Background(), "ABC", today))
}

func TestCurrentIgnoresSameDayDuplicates(t *testing.T) {
	challenges := &fakeChallengeDates{dates: []string{day(0)}}
	activity := &fakeActivityDates{dates: []string{day(0), day(0), day(-1)}}
	calc := NewCalculator(challenges, activity)

	require.Equal(t, 2, calc.Current(context.Background(), "ABC", today))
}
