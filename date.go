package fatinspect

import (
	"time"
)

// ParseDate decodes a DOS date stamp of a directory entry.
//
//	Bits 0-4:  day of month (1-31)
//	Bits 5-8:  month (1-12)
//	Bits 9-15: years since 1980 (0-127)
//
// The result is always at midnight UTC. A day or month of 0 is invalid and
// yields time.Time{} so that IsZero() can be used by callers.
// A month above 12 rolls over into the following year, as time.Date does.
func ParseDate(input uint16) time.Time {
	day := input & 0x1F
	month := input & 0x1E0 >> 5
	years := input & 0xFE00 >> 9

	if day == 0 || month == 0 {
		return time.Time{}
	}

	return time.Date(1980+int(years), time.Month(month), int(day), 0, 0, 0, 0, time.UTC)
}

// ParseTime decodes a DOS time stamp of a directory entry.
//
//	Bits 0-4:   seconds / 2 (0-29)
//	Bits 5-10:  minutes (0-59)
//	Bits 11-15: hours (0-23)
//
// The result is on January 1 of year 1, so midnight IsZero().
// Out of range values are clamped to 23:59:59.
func ParseTime(input uint16) time.Time {
	seconds := int(input&0x1F) * 2
	minutes := input & 0x7E0 >> 5
	hours := input & 0xF800 >> 11

	result := time.Date(1, 1, 1, int(hours), int(minutes), seconds, 0, time.UTC)
	if result.Day() > 1 {
		return time.Date(1, 1, 1, 23, 59, 59, 0, time.UTC)
	}

	return result
}

// dosTimestamp combines a DOS date and time stamp.
// It returns time.Time{} if the date is invalid. The time alone cannot be
// checked as 00:00:00 is a valid value.
func dosTimestamp(date, clock uint16) time.Time {
	d := ParseDate(date)
	if d.IsZero() {
		return time.Time{}
	}

	t := ParseTime(clock)
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}
