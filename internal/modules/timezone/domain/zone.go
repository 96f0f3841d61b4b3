package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Offset bounds in minutes.
const (
	MinOffsetMinutes = -12 * 60
	MaxOffsetMinutes = 14 * 60
)

// Zone is a user's standard UTC offset and daylight saving region.
type Zone struct {
	OffsetMinutes int
	Region        Region
}

// NewZone validates and creates a Zone.
func NewZone(offsetMinutes int, region Region) (Zone, error) {
	if offsetMinutes < MinOffsetMinutes || offsetMinutes > MaxOffsetMinutes {
		return Zone{}, ErrOffsetRange
	}
	if region < RegionNone || region > RegionSouthernHemisphere {
		return Zone{}, fmt.Errorf("%w: %d", ErrUnknownRegion, int(region))
	}
	return Zone{OffsetMinutes: offsetMinutes, Region: region}, nil
}

// ParseOffset parses "+5", "-4", "+05:30", "5:45" or "UTC+2" into minutes.
func ParseOffset(s string) (int, error) {
	s = strings.TrimSpace(strings.ToUpper(s))
	if s == "" {
		return 0, ErrInvalidOffset
	}
	s = strings.TrimPrefix(s, "UTC")
	s = strings.TrimPrefix(s, "GMT")
	if s == "" {
		return 0, nil
	}

	sign := 1
	switch s[0] {
	case '+':
		s = s[1:]
	case '-':
		sign = -1
		s = s[1:]
	}

	hoursPart, minutesPart, hasMinutes := strings.Cut(s, ":")
	hours, err := strconv.Atoi(hoursPart)
	if err != nil || hours < 0 {
		return 0, ErrInvalidOffset
	}
	// Checked before scaling to minutes so huge inputs cannot wrap around.
	if hours > MaxOffsetMinutes/60 {
		return 0, ErrOffsetRange
	}

	minutes := 0
	if hasMinutes {
		minutes, err = strconv.Atoi(minutesPart)
		if err != nil || len(minutesPart) != 2 || minutes < 0 || minutes%15 != 0 || minutes >= 60 {
			return 0, ErrInvalidOffset
		}
	}

	total := sign * (hours*60 + minutes)
	if total < MinOffsetMinutes || total > MaxOffsetMinutes {
		return 0, ErrOffsetRange
	}
	return total, nil
}

// FormatOffset renders minutes as "UTC+05:30".
func FormatOffset(minutes int) string {
	sign := '+'
	if minutes < 0 {
		sign = '-'
		minutes = -minutes
	}
	return fmt.Sprintf("UTC%c%02d:%02d", sign, minutes/60, minutes%60)
}

// InDST reports whether the zone observes daylight saving at t.
func (z Zone) InDST(t time.Time) bool {
	// Wall clock in local standard time, expressed with UTC fields.
	std := t.UTC().Add(time.Duration(z.OffsetMinutes) * time.Minute)
	year := std.Year()

	switch z.Region {
	case RegionNorthAmerica:
		start := at(year, time.March, nthSunday(year, time.March, 2), 2)
		// 02:00 daylight is 01:00 standard.
		end := at(year, time.November, nthSunday(year, time.November, 1), 1)
		return !std.Before(start) && std.Before(end)

	case RegionEurope:
		u := t.UTC()
		start := at(u.Year(), time.March, lastSunday(u.Year(), time.March), 1)
		end := at(u.Year(), time.October, lastSunday(u.Year(), time.October), 1)
		return !u.Before(start) && u.Before(end)

	case RegionSouthernHemisphere:
		// 03:00 daylight is 02:00 standard.
		end := at(year, time.April, nthSunday(year, time.April, 1), 2)
		start := at(year, time.October, nthSunday(year, time.October, 1), 2)
		return std.Before(end) || !std.Before(start)

	default:
		return false
	}
}

// CurrentOffset returns the effective offset in minutes at t.
func (z Zone) CurrentOffset(t time.Time) int {
	if z.InDST(t) {
		return z.OffsetMinutes + 60
	}
	return z.OffsetMinutes
}

// Local returns t in the zone's effective offset.
func (z Zone) Local(t time.Time) time.Time {
	offset := z.CurrentOffset(t)
	return t.In(time.FixedZone(FormatOffset(offset), offset*60))
}

func at(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
}

// nthSunday returns the day of month of the n-th Sunday.
func nthSunday(year int, month time.Month, n int) int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	shift := (int(time.Sunday) - int(first.Weekday()) + 7) % 7
	return 1 + shift + (n-1)*7
}

// lastSunday returns the day of month of the last Sunday.
func lastSunday(year int, month time.Month) int {
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
	back := (int(last.Weekday()) - int(time.Sunday) + 7) % 7
	return last.Day() - back
}
