package sanitizer

import (
	"strings"

	"github.com/nyaruka/phonenumbers"

	"courtops/pkg/locale"
)

var supportedRegions = []string{
	"AR",
	"ES",
	"US",
}

// NormalizePhone converts a raw phone string to E.164, trying each supported
// region in order. Returns "" when no region can parse the input.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)

	if phone == "" {
		return ""
	}

	for _, region := range supportedRegions {
		parsedNumber, err := phonenumbers.Parse(phone, region)
		if err == nil && phonenumbers.IsValidNumber(parsedNumber) {
			return phonenumbers.Format(parsedNumber, phonenumbers.E164)
		}
	}
	return ""
}

// NormalizePhoneForZone parses national numbers against the region the club's
// timezone maps to, so "11 2345-6789" entered at a Buenos Aires club resolves
// as an Argentine number.
func NormalizePhoneForZone(phone, tz string) string {
	phone = strings.TrimSpace(phone)

	if phone == "" {
		return ""
	}

	region := locale.DetectRegion(tz)
	parsedNumber, err := phonenumbers.Parse(phone, region)
	if err == nil && phonenumbers.IsValidNumber(parsedNumber) {
		return phonenumbers.Format(parsedNumber, phonenumbers.E164)
	}

	return NormalizePhone(phone)
}
