package worldtime

import (
	"sort"
	"strings"
)

// cityTimezones maps supported city names to IANA timezone identifiers
var cityTimezones = map[string]string{
	"london":       "Europe/London",
	"paris":        "Europe/Paris",
	"new york":     "America/New_York",
	"los angeles":  "America/Los_Angeles",
	"tokyo":        "Asia/Tokyo",
	"sydney":       "Australia/Sydney",
	"dubai":        "Asia/Dubai",
	"singapore":    "Asia/Singapore",
	"mumbai":       "Asia/Kolkata",
	"toronto":      "America/Toronto",
	"berlin":       "Europe/Berlin",
	"moscow":       "Europe/Moscow",
	"beijing":      "Asia/Shanghai",
	"hong kong":    "Asia/Hong_Kong",
	"chicago":      "America/Chicago",
	"mexico city":  "America/Mexico_City",
	"sao paulo":    "America/Sao_Paulo",
	"cairo":        "Africa/Cairo",
	"lagos":        "Africa/Lagos",
	"johannesburg": "Africa/Johannesburg",
}

// TimezoneForCity resolves a city name to its IANA timezone identifier
func TimezoneForCity(city string) (string, bool) {
	tz, ok := cityTimezones[strings.ToLower(strings.TrimSpace(city))]
	return tz, ok
}

// SupportedCities returns the supported city names in sorted order
func SupportedCities() []string {
	cities := make([]string, 0, len(cityTimezones))
	for city := range cityTimezones {
		cities = append(cities, city)
	}
	sort.Strings(cities)
	return cities
}
