package locale

import (
	"strings"
)

const (
	DefaultTimezone = "America/Argentina/Buenos_Aires"
)

type Country struct {
	Code            string   // ISO 3166-1 alpha-2 country code (e.g., "AR", "ES")
	Name            string   // Human-readable country name
	PhonePrefixes   []string // Valid phone number prefixes (e.g., ["+54", "54"])
	DefaultTimezone string   // IANA timezone identifier (e.g., "America/Argentina/Buenos_Aires")
}

var (
	Countries = map[string]Country{
		"AR": {
			Code:            "AR",
			Name:            "Argentina",
			PhonePrefixes:   []string{"+54", "54"},
			DefaultTimezone: "America/Argentina/Buenos_Aires",
		},
		"ES": {
			Code:            "ES",
			Name:            "Spain",
			PhonePrefixes:   []string{"+34", "34"},
			DefaultTimezone: "Europe/Madrid",
		},
		"US": {
			Code:            "US",
			Name:            "United States",
			PhonePrefixes:   []string{"+1", "1"},
			DefaultTimezone: "America/New_York",
		},
	}

	TimeZoneTags = map[string][]string{
		"AR": {"America/Argentina/Buenos_Aires", "America/Argentina/Cordoba", "America/Argentina/Mendoza", "America/Buenos_Aires"},
		"ES": {"Europe/Madrid", "Atlantic/Canary"},
		"US": {"America/New_York", "America/Chicago", "America/Los_Angeles", "US/Eastern", "US/Pacific"},
	}
)

func DetectRegion(tz string) string {
	for region, zones := range TimeZoneTags {
		for _, z := range zones {
			if strings.EqualFold(tz, z) {
				return region
			}
		}
	}
	return "AR"
}
