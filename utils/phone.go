package utils

import (
	"regexp"
	"strings"
)

// NormalizePhoneNumber formats a phone number to a standard format.
// Removes all non-digit characters and ensures it starts with the
// Algerian country code (+213).
func NormalizePhoneNumber(phoneNumber string) string {
	re := regexp.MustCompile(`\D`)
	digits := re.ReplaceAllString(phoneNumber, "")

	if len(digits) > 0 && !strings.HasPrefix(digits, "213") {
		// Remove the trunk prefix before adding the country code
		digits = strings.TrimLeft(digits, "0")
		digits = "213" + digits
	}

	return digits
}

// ValidatePhoneNumber validates an Algerian mobile number: 9 digits
// starting with 5, 6 or 7 (a leading 0 or +213 prefix is tolerated).
func ValidatePhoneNumber(phoneNumber string) bool {
	re := regexp.MustCompile(`\D`)
	cleaned := re.ReplaceAllString(phoneNumber, "")

	cleaned = strings.TrimPrefix(cleaned, "213")
	cleaned = strings.TrimPrefix(cleaned, "0")

	if len(cleaned) != 9 {
		return false
	}

	switch cleaned[0] {
	case '5', '6', '7':
		return true
	}
	return false
}
