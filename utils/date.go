package utils

import (
	"fmt"
	"time"
)

var VenueTZ = loadVenueTZ()

func loadVenueTZ() *time.Location {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		return time.FixedZone("CET", 1*60*60) // Fallback to CET if timezone load fails
	}
	return loc
}

func VenueNow() time.Time {
	return time.Now().In(VenueTZ)
}

func MustParseDate(dateStr string) time.Time {
	t, _ := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
	return t
}

func ParseISOTime(s string) (*time.Time, error) {
	if s == "" {
		return nil, fmt.Errorf("empty time string")
	}

	// Try standard RFC3339 format (ISO 8601)
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return &t, nil
	}

	// Try with nanoseconds (e.g. 2025-10-13T09:30:00.123Z)
	t, err = time.Parse(time.RFC3339Nano, s)
	if err == nil {
		return &t, nil
	}

	// Try fallback common formats
	layouts := []string{
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if tt, e := time.ParseInLocation(layout, s, time.UTC); e == nil {
			return &tt, nil
		}
	}

	return nil, fmt.Errorf("failed to parse time: %v", s)
}

// ParseClockOnDate combines a date with a wall-clock value such as "14:30"
// or "14:30:00" in the venue timezone. POS exports carry date and time in
// separate columns.
func ParseClockOnDate(date time.Time, clock string) (time.Time, error) {
	if clock == "" {
		return time.Time{}, fmt.Errorf("empty clock string")
	}

	layouts := []string{"15:04:05", "15:04"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, clock); err == nil {
			return time.Date(date.Year(), date.Month(), date.Day(),
				t.Hour(), t.Minute(), t.Second(), 0, VenueTZ), nil
		}
	}

	return time.Time{}, fmt.Errorf("failed to parse clock: %v", clock)
}
