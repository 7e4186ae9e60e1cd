package validators

import (
	"time"

	"github.com/BruksfildServices01/barber-sales/internal/httperr"
)

const DateLayout = "2006-01-02"

// ParseDate accepts a calendar date in YYYY-MM-DD form only.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, httperr.Validation("invalid_date", "Dates must be YYYY-MM-DD.")
	}
	return d, nil
}

// DateRange validates optional inclusive bounds. Empty strings mean open ends.
func DateRange(from, to string) error {
	var f, t time.Time
	var err error
	if from != "" {
		if f, err = ParseDate(from); err != nil {
			return err
		}
	}
	if to != "" {
		if t, err = ParseDate(to); err != nil {
			return err
		}
	}
	if from != "" && to != "" && t.Before(f) {
		return httperr.Validation("invalid_range", "'from' must not be after 'to'.")
	}
	return nil
}
