// Package phone converts free-text phone strings into dialable,
// country-code-qualified digit strings for messaging deep links.
package phone

import (
	"strings"

	"github.com/nyaruka/phonenumbers"

	"github.com/leadpilot/leadpilot/pkg/models"
)

// Placeholder markers scrapers leave in the phone column when no number was
// found. Any of these makes the lead unreachable by phone.
var placeholderMarkers = []string{"SEARCH", "REQUIRED", "N/A"}

// IsReachable reports whether the lead can be contacted through a messaging
// deep link. It fails on absent numbers, scraper placeholders and numbers
// whose digit-only form is shorter than 10 digits.
func IsReachable(phone string) bool {
	if phone == "" {
		return false
	}
	for _, marker := range placeholderMarkers {
		if strings.Contains(phone, marker) {
			return false
		}
	}
	return len(digitsOnly(phone)) >= 10
}

// Normalize converts a free-text phone string into international digit form.
// It is total: every input produces some output. Unrecognized formats pass
// through as bare digits; the resulting link may be invalid, which is
// accepted rather than treated as an error.
//
// Rules, in order:
//   - leading "+": already qualified, return the digits after it
//   - "05…" / "04…": UAE mobile/landline trunk form, "0" becomes "971"
//   - exactly 10 digits starting 6-9: Indian mobile, prefix "91"
//   - exactly 9 digits starting 5: UAE missing its trunk zero, prefix "971"
func Normalize(phone string) string {
	cleaned := strings.TrimSpace(phone)
	hasPlus := strings.HasPrefix(cleaned, "+")
	digits := digitsOnly(cleaned)

	if hasPlus {
		return digits
	}
	if strings.HasPrefix(digits, "05") || strings.HasPrefix(digits, "04") {
		return "971" + digits[1:]
	}
	if len(digits) == 10 && digits[0] >= '6' && digits[0] <= '9' {
		return "91" + digits
	}
	if len(digits) == 9 && digits[0] == '5' {
		return "971" + digits
	}
	return digits
}

// InferType classifies a normalized number as MOBILE or LANDLINE, backfilling
// the lead's phone_type when the scraper left it empty. Parse failures and
// ambiguous numbers yield the empty string, never an error.
func InferType(normalized string) string {
	if normalized == "" {
		return ""
	}
	parsed, err := phonenumbers.Parse("+"+normalized, "")
	if err != nil {
		return ""
	}
	switch phonenumbers.GetNumberType(parsed) {
	case phonenumbers.MOBILE:
		return models.PhoneTypeMobile
	case phonenumbers.FIXED_LINE:
		return models.PhoneTypeLandline
	default:
		return ""
	}
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
