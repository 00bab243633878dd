// utils/validator.go - Input validation
package utils

import (
	"regexp"
	"strings"
)

// InstitutionalDomain is the only mail domain accepted for accounts.
const InstitutionalDomain = "ur.ac.rw"

// ValidateEmail checks if email is valid
func ValidateEmail(email string) bool {
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRegex.MatchString(email)
}

// ValidateInstitutionalEmail checks the address belongs to the university domain.
func ValidateInstitutionalEmail(email string) bool {
	if !ValidateEmail(email) {
		return false
	}
	parts := strings.Split(email, "@")
	return parts[len(parts)-1] == InstitutionalDomain
}

// ValidatePassword checks password strength
func ValidatePassword(password string) (bool, string) {
	if len(password) < 8 {
		return false, "Password must be at least 8 characters"
	}

	return true, ""
}

// ValidatePhoneNumber checks a phone number starts with the country code
// (without '+') and is exactly 12 digits long.
func ValidatePhoneNumber(phone string) bool {
	if len(phone) != 12 {
		return false
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// SanitizeInput removes potentially harmful characters
func SanitizeInput(input string) string {
	// Remove leading/trailing spaces
	input = strings.TrimSpace(input)

	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	return input
}
