// utils/timezone.go
package utils

import (
	"strings"
	"time"
)

// DefaultZone is used when a city cannot be resolved at all.
const DefaultZone = "America/New_York"

// DefaultLocalTime is returned when no preferred time is stored yet.
const DefaultLocalTime = "09:00"

// cityZones maps common city names to IANA zone identifiers. Lookup is
// case-insensitive; unknown cities fall through to a substring scan and
// finally to DefaultZone.
var cityZones = map[string]string{
	"new york":      "America/New_York",
	"brooklyn":      "America/New_York",
	"boston":        "America/New_York",
	"philadelphia":  "America/New_York",
	"atlanta":       "America/New_York",
	"miami":         "America/New_York",
	"washington":    "America/New_York",
	"detroit":       "America/Detroit",
	"toronto":       "America/Toronto",
	"montreal":      "America/Toronto",
	"chicago":       "America/Chicago",
	"houston":       "America/Chicago",
	"dallas":        "America/Chicago",
	"austin":        "America/Chicago",
	"san antonio":   "America/Chicago",
	"minneapolis":   "America/Chicago",
	"new orleans":   "America/Chicago",
	"denver":        "America/Denver",
	"salt lake":     "America/Denver",
	"phoenix":       "America/Phoenix",
	"los angeles":   "America/Los_Angeles",
	"san francisco": "America/Los_Angeles",
	"san diego":     "America/Los_Angeles",
	"seattle":       "America/Los_Angeles",
	"portland":      "America/Los_Angeles",
	"las vegas":     "America/Los_Angeles",
	"anchorage":     "America/Anchorage",
	"honolulu":      "Pacific/Honolulu",
	"london":        "Europe/London",
	"dublin":        "Europe/Dublin",
	"paris":         "Europe/Paris",
	"berlin":        "Europe/Berlin",
	"madrid":        "Europe/Madrid",
	"rome":          "Europe/Rome",
	"amsterdam":     "Europe/Amsterdam",
	"lisbon":        "Europe/Lisbon",
	"sydney":        "Australia/Sydney",
	"melbourne":     "Australia/Melbourne",
	"auckland":      "Pacific/Auckland",
	"tokyo":         "Asia/Tokyo",
	"singapore":     "Asia/Singapore",
	"hong kong":     "Asia/Hong_Kong",
	"manila":        "Asia/Manila",
	"dubai":         "Asia/Dubai",
	"mumbai":        "Asia/Kolkata",
	"delhi":         "Asia/Kolkata",
	"lagos":         "Africa/Lagos",
	"nairobi":       "Africa/Nairobi",
	"johannesburg":  "Africa/Johannesburg",
	"mexico city":   "America/Mexico_City",
	"sao paulo":     "America/Sao_Paulo",
	"buenos aires":  "America/Argentina/Buenos_Aires",
}

// ResolveTimeZone maps a free-text city name to an IANA zone identifier.
// It never fails: exact match first, then a substring scan over the table
// keys, then DefaultZone.
func ResolveTimeZone(city string) string {
	normalized := strings.ToLower(strings.TrimSpace(city))
	if normalized == "" {
		return DefaultZone
	}

	if zone, ok := cityZones[normalized]; ok {
		return zone
	}

	// "New York City", "downtown Chicago" and similar still resolve.
	for key, zone := range cityZones {
		if strings.Contains(normalized, key) {
			return zone
		}
	}

	return DefaultZone
}

func loadZone(city string) *time.Location {
	loc, err := time.LoadLocation(ResolveTimeZone(city))
	if err != nil {
		return time.UTC
	}
	return loc
}

// ValidWallClock reports whether hhmm is a well-formed 24-hour "HH:MM".
func ValidWallClock(hhmm string) bool {
	_, err := time.Parse("15:04", hhmm)
	return err == nil
}

// LocalToUTC converts a wall-clock "HH:MM" in the city's zone to UTC "HH:MM".
// The conversion goes through real timestamp arithmetic so offsets that cross
// a day boundary still produce a correct wall-clock value; the date component
// is discarded on purpose. A malformed input falls back to DefaultLocalTime
// in the city's zone, not in UTC.
func LocalToUTC(hhmm, city string, today time.Time) string {
	parsed, err := time.Parse("15:04", hhmm)
	if err != nil {
		parsed, _ = time.Parse("15:04", DefaultLocalTime)
	}

	loc := loadZone(city)
	local := time.Date(today.Year(), today.Month(), today.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, loc)
	return local.UTC().Format("15:04")
}

// UTCToLocal is the inverse of LocalToUTC. An empty or malformed input yields
// DefaultLocalTime rather than an error.
func UTCToLocal(hhmm, city string, today time.Time) string {
	if hhmm == "" {
		return DefaultLocalTime
	}
	parsed, err := time.Parse("15:04", hhmm)
	if err != nil {
		return DefaultLocalTime
	}

	loc := loadZone(city)
	utc := time.Date(today.Year(), today.Month(), today.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, time.UTC)
	return utc.In(loc).Format("15:04")
}
