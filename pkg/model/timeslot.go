package model

import "fmt"

// TimeSlot is a candidate or booked time window on one rotation day.
// Start and End are minutes from midnight.
type TimeSlot struct {
	Day   int
	Start int
	End   int
}

// Duration returns the slot length in minutes.
func (t TimeSlot) Duration() int {
	return t.End - t.Start
}

// Overlaps reports whether two slots are on the same day with intersecting
// intervals.
func (t TimeSlot) Overlaps(other TimeSlot) bool {
	if t.Day != other.Day {
		return false
	}
	return max(t.Start, other.Start) < min(t.End, other.End)
}

func (t TimeSlot) String() string {
	return fmt.Sprintf("day %d %s-%s", t.Day+1, FormatClock(t.Start), FormatClock(t.End))
}

// FormatClock renders minutes from midnight as HH:MM.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ParseClock parses an HH:MM string into minutes from midnight.
func ParseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	return h*60 + m, nil
}
