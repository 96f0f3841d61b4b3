package domain

import "fmt"

// Region is the daylight saving rule set a user follows.
type Region int

// Daylight saving regions. The values are persisted.
const (
	RegionNone Region = iota
	RegionNorthAmerica
	RegionEurope
	RegionSouthernHemisphere
)

// Regions lists every region in display order.
func Regions() []Region {
	return []Region{RegionNone, RegionNorthAmerica, RegionEurope, RegionSouthernHemisphere}
}

// String returns the option value naming the region.
func (r Region) String() string {
	switch r {
	case RegionNone:
		return "none"
	case RegionNorthAmerica:
		return "north-america"
	case RegionEurope:
		return "europe"
	case RegionSouthernHemisphere:
		return "southern-hemisphere"
	default:
		return fmt.Sprintf("region(%d)", int(r))
	}
}

// Label returns a human-readable region name.
func (r Region) Label() string {
	switch r {
	case RegionNorthAmerica:
		return "North America"
	case RegionEurope:
		return "Europe"
	case RegionSouthernHemisphere:
		return "Southern Hemisphere"
	default:
		return "No daylight saving"
	}
}

// Rule describes when the region observes daylight saving.
func (r Region) Rule() string {
	switch r {
	case RegionNorthAmerica:
		return "Second Sunday of March, 02:00 local, until the first Sunday of November, 02:00 local."
	case RegionEurope:
		return "Last Sunday of March, 01:00 UTC, until the last Sunday of October, 01:00 UTC."
	case RegionSouthernHemisphere:
		return "First Sunday of October, 02:00 local, until the first Sunday of April, 03:00 local."
	default:
		return "Your offset never changes."
	}
}

// ParseRegion maps an option value back to its Region.
func ParseRegion(s string) (Region, error) {
	for _, r := range Regions() {
		if r.String() == s {
			return r, nil
		}
	}
	return RegionNone, fmt.Errorf("%w: %q", ErrUnknownRegion, s)
}
