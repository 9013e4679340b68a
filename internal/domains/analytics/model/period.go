package model

import (
	"errors"
	"time"
)

var ErrInvalidPeriod = errors.New("period must be 7d, 30d or all")

// Period is a dashboard lookback window.
type Period string

const (
	Period7d  Period = "7d"
	Period30d Period = "30d"
	PeriodAll Period = "all"
)

// ParsePeriod validates the query value, defaulting empty to 7d.
func ParsePeriod(s string) (Period, error) {
	switch s {
	case "", string(Period7d):
		return Period7d, nil
	case string(Period30d):
		return Period30d, nil
	case string(PeriodAll):
		return PeriodAll, nil
	}
	return "", ErrInvalidPeriod
}

// Since returns the window start, or the zero time for all-time queries.
func (p Period) Since(now time.Time) time.Time {
	switch p {
	case Period7d:
		return now.AddDate(0, 0, -7)
	case Period30d:
		return now.AddDate(0, 0, -30)
	default:
		return time.Time{}
	}
}
