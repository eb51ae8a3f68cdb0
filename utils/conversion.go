package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// MinutesToClock renders a minutes-from-midnight value as an HH:MM label,
// e.g. 540 becomes "09:00".
func MinutesToClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// ClockToMinutes parses either a bare minute count ("540") or an HH:MM label
// ("09:00") into minutes from midnight.
func ClockToMinutes(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty time value")
	}

	if !strings.Contains(value, ":") {
		minutes, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid minute value %q: %w", value, err)
		}
		return minutes, nil
	}

	parts := strings.SplitN(value, ":", 2)
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", value, err)
	}
	mins, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", value, err)
	}
	if hours < 0 || hours > 24 || mins < 0 || mins > 59 {
		return 0, fmt.Errorf("time %q out of range", value)
	}
	return hours*60 + mins, nil
}
