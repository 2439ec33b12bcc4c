package services

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the format of HTML date inputs and the ?date= query parameter
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD value as a UTC calendar day.
// Surrounding whitespace is ignored.
func ParseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date format: expected YYYY-MM-DD", ErrInvalidInput)
	}
	return parsed, nil
}

// DayStart truncates t to midnight UTC; appointment dates are stored this way
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
