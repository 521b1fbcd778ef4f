package utils

import (
	"fmt"
	"time"
)

// DateLayout is the canonical calendar date format of daily logs
const DateLayout = "2006-01-02"

// NormalizeDate parses an ISO-8601 calendar date and returns it in canonical form
func NormalizeDate(value string) (string, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return "", fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return t.Format(DateLayout), nil
}
