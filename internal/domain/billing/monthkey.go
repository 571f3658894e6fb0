package billing

import (
	"fmt"
	"regexp"
	"time"

	"github.com/ljwebdevelopment/booth-rent-pro/internal/domain/shared"
)

// MonthKey is the canonical YYYY-MM identifier for a billing period
type MonthKey string

var monthKeyPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// MonthKeyOf returns the month key for the given instant in the given location
func MonthKeyOf(t time.Time, loc *time.Location) MonthKey {
	if loc != nil {
		t = t.In(loc)
	}
	return MonthKey(t.Format("2006-01"))
}

// ParseMonthKey validates and returns a month key from its string form
func ParseMonthKey(s string) (MonthKey, error) {
	if !monthKeyPattern.MatchString(s) {
		return "", shared.NewDomainError("INVALID_MONTH_KEY",
			fmt.Sprintf("Month key must be in YYYY-MM format, got %q", s))
	}
	return MonthKey(s), nil
}

// String returns the YYYY-MM string form
func (k MonthKey) String() string {
	return string(k)
}

// IsValid reports whether the month key has the canonical YYYY-MM shape
func (k MonthKey) IsValid() bool {
	return monthKeyPattern.MatchString(string(k))
}

// Date returns the first instant of the billing month in the given location
func (k MonthKey) Date(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation("2006-01", string(k), loc)
	if err != nil {
		return time.Time{}, shared.NewDomainError("INVALID_MONTH_KEY",
			fmt.Sprintf("Month key must be in YYYY-MM format, got %q", k))
	}
	return t, nil
}

// DueDate returns midnight of the due day within this billing month.
// The day is clamped to [1,28] so every month has a valid due date.
func (k MonthKey) DueDate(dueDay int, loc *time.Location) (time.Time, error) {
	start, err := k.Date(loc)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(start.Year(), start.Month(), ClampDueDay(dueDay), 0, 0, 0, 0, start.Location()), nil
}

// ClampDueDay clamps a due day of month into the supported [1,28] range
func ClampDueDay(day int) int {
	if day < 1 {
		return 1
	}
	if day > 28 {
		return 28
	}
	return day
}

// ValidateDueDay rejects due days outside the supported [1,28] range
func ValidateDueDay(day int) error {
	if day < 1 || day > 28 {
		return shared.NewDomainError("INVALID_DUE_DAY",
			fmt.Sprintf("Due day of month must be between 1 and 28, got %d", day))
	}
	return nil
}

// Due-date comparisons are calendar-day granular: the due date itself still
// counts as due, not overdue, regardless of the time of day.

// AfterDueDate reports whether now falls on a later calendar day than due
func AfterDueDate(now, due time.Time) bool {
	return dayOf(now, due.Location()).After(dayOf(due, due.Location()))
}

// BeforeDueDate reports whether now falls on an earlier calendar day than due
func BeforeDueDate(now, due time.Time) bool {
	return dayOf(now, due.Location()).Before(dayOf(due, due.Location()))
}

func dayOf(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
