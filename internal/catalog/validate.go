package catalog

import (
	"net/mail"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"
)

// phonePattern matches international phone numbers after separator
// stripping: optional leading +, first digit nonzero, at most 16 digits.
var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)

// ValidateEmail reports whether value is a syntactically valid address.
func ValidateEmail(value string) bool {
	if value == "" {
		return false
	}
	addr, err := mail.ParseAddress(value)
	// Reject "Name <addr>" forms - we want a bare address.
	return err == nil && addr.Address == value
}

// ValidatePhone reports whether value is an acceptable phone number.
// Phone is optional: the empty string is valid. Spaces and hyphens are
// stripped before matching.
func ValidatePhone(value string) bool {
	if value == "" {
		return true
	}
	stripped := strings.NewReplacer(" ", "", "-", "").Replace(value)
	return phonePattern.MatchString(stripped)
}

// ValidatePrice reports whether value is strictly positive.
func ValidatePrice(value decimal.Decimal) bool {
	return value.IsPositive()
}

// ValidateStock reports whether value is non-negative.
func ValidateStock(value int) bool {
	return value >= 0
}

// NormalizeEmail canonicalizes an email for storage and uniqueness
// comparison: trimmed, NFC-normalized, lower-cased. Two addresses that
// normalize equal are the same customer.
func NormalizeEmail(value string) string {
	return strings.ToLower(norm.NFC.String(strings.TrimSpace(value)))
}
