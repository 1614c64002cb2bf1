// Package period resolves calendar windows used to scope rankings.
package period

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mauv0809/war-scoreboard/internal/league"
)

// Year bounds accepted by ForMonth and ForYear.
const (
	MinYear = 2000
	MaxYear = 9999
)

// ErrInvalidPeriod is returned for out-of-range or malformed period requests.
var ErrInvalidPeriod = errors.New("invalid period")

// Kind tells which calendar window a Period covers.
type Kind string

const (
	KindMonth   Kind = "month"
	KindYear    Kind = "year"
	KindAllTime Kind = "all-time"
)

// Names accepted by Resolve.
const (
	NameThisMonth = "this-month"
	NameLastMonth = "last-month"
	NameThisYear  = "this-year"
	NameAllTime   = "all-time"
)

// Period is a calendar window. Start and End are dates at midnight UTC and
// both are inclusive. They are zero for KindAllTime.
type Period struct {
	Kind  Kind
	Year  int
	Month int
	Start time.Time
	End   time.Time
}

// periodJSON is the wire shape of Period. Open bounds are omitted.
type periodJSON struct {
	Kind  Kind       `json:"kind"`
	Year  int        `json:"year,omitempty"`
	Month int        `json:"month,omitempty"`
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

func (p Period) MarshalJSON() ([]byte, error) {
	out := periodJSON{Kind: p.Kind, Year: p.Year, Month: p.Month}
	if !p.Start.IsZero() {
		out.Start = &p.Start
	}
	if !p.End.IsZero() {
		out.End = &p.End
	}
	return json.Marshal(out)
}

func (p *Period) UnmarshalJSON(data []byte) error {
	var in periodJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*p = Period{Kind: in.Kind, Year: in.Year, Month: in.Month}
	if in.Start != nil {
		p.Start = *in.Start
	}
	if in.End != nil {
		p.End = *in.End
	}
	return nil
}

// Clock supplies the wall-clock time relative periods are anchored to.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// ForMonth returns the calendar month window.
func ForMonth(year, month int) (Period, error) {
	if err := validateYear(year); err != nil {
		return Period{}, err
	}
	if month < 1 || month > 12 {
		return Period{}, fmt.Errorf("%w: month %d is not between 1 and 12", ErrInvalidPeriod, month)
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return Period{
		Kind:  KindMonth,
		Year:  year,
		Month: month,
		Start: start,
		End:   start.AddDate(0, 1, -1),
	}, nil
}

// ForYear returns the calendar year window.
func ForYear(year int) (Period, error) {
	if err := validateYear(year); err != nil {
		return Period{}, err
	}
	return Period{
		Kind:  KindYear,
		Year:  year,
		Start: time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
	}, nil
}

// AllTime returns the unbounded window.
func AllTime() Period {
	return Period{Kind: KindAllTime}
}

// CurrentMonth returns the month containing now.
func CurrentMonth(now time.Time) Period {
	p, _ := ForMonth(clampYear(now.Year()), int(now.Month()))
	return p
}

// PreviousMonth returns the month before the one containing now. January
// rolls back to December of the previous year.
func PreviousMonth(now time.Time) Period {
	year, month := now.Year(), int(now.Month())-1
	if month == 0 {
		year, month = year-1, 12
	}
	p, _ := ForMonth(clampYear(year), month)
	return p
}

// CurrentYear returns the year containing now.
func CurrentYear(now time.Time) Period {
	p, _ := ForYear(clampYear(now.Year()))
	return p
}

// Resolve maps a named relative period to a concrete window.
func Resolve(name string, now time.Time) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameThisMonth:
		return CurrentMonth(now), nil
	case NameLastMonth:
		return PreviousMonth(now), nil
	case NameThisYear:
		return CurrentYear(now), nil
	case NameAllTime:
		return AllTime(), nil
	}
	return Period{}, fmt.Errorf("%w: unknown period %q", ErrInvalidPeriod, name)
}

// Parse builds a month window from raw year and month strings, as they come
// from a request path.
func Parse(yearStr, monthStr string) (Period, error) {
	year, err := strconv.Atoi(strings.TrimSpace(yearStr))
	if err != nil {
		return Period{}, fmt.Errorf("%w: malformed year %q", ErrInvalidPeriod, yearStr)
	}
	month, err := strconv.Atoi(strings.TrimSpace(monthStr))
	if err != nil {
		return Period{}, fmt.Errorf("%w: malformed month %q", ErrInvalidPeriod, monthStr)
	}
	return ForMonth(year, month)
}

// ParseYear builds a year window from a raw year string.
func ParseYear(yearStr string) (Period, error) {
	year, err := strconv.Atoi(strings.TrimSpace(yearStr))
	if err != nil {
		return Period{}, fmt.Errorf("%w: malformed year %q", ErrInvalidPeriod, yearStr)
	}
	return ForYear(year)
}

// Contains reports whether the calendar date of t falls inside the window.
func (p Period) Contains(t time.Time) bool {
	if p.Kind == KindAllTime {
		return true
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(p.Start) && !d.After(p.End)
}

// MatchFilter converts the window into a store filter.
func (p Period) MatchFilter() league.MatchFilter {
	return league.MatchFilter{DateFrom: p.Start, DateTo: p.End}
}

// Label is a short human name such as "2024-03", "2024" or "all-time".
func (p Period) Label() string {
	switch p.Kind {
	case KindMonth:
		return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
	case KindYear:
		return strconv.Itoa(p.Year)
	}
	return NameAllTime
}

func validateYear(year int) error {
	if year < MinYear || year > MaxYear {
		return fmt.Errorf("%w: year %d is not between %d and %d", ErrInvalidPeriod, year, MinYear, MaxYear)
	}
	return nil
}

func clampYear(year int) int {
	switch {
	case year < MinYear:
		return MinYear
	case year > MaxYear:
		return MaxYear
	}
	return year
}
