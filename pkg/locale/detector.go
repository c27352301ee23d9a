package locale

import "strings"

// InferTimezoneFromPhone maps an international phone prefix to the default
// time zone of its market. Unknown prefixes fall back to the primary
// market's zone; callers that need a hard answer use InferCountryFromPhone.
func InferTimezoneFromPhone(phone string) string {
	normalized := strings.TrimSpace(phone)

	for _, country := range Countries {
		for _, prefix := range country.PhonePrefixes {
			if strings.HasPrefix(normalized, prefix) {
				return country.DefaultTimezone
			}
		}
	}

	return DefaultTimezone
}

// InferCountryFromPhone returns the supported market a phone number belongs
// to, or nil when the prefix matches none of them.
func InferCountryFromPhone(phone string) *Country {
	normalized := strings.TrimSpace(phone)

	for _, country := range Countries {
		for _, prefix := range country.PhonePrefixes {
			if strings.HasPrefix(normalized, prefix) {
				return &country
			}
		}
	}

	return nil
}
