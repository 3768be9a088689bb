// Package phone normalizes Indian phone numbers.
package phone

import (
	"errors"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is applied to numbers written without a country code.
const DefaultRegion = "IN"

// ErrInvalid is returned by Parse for input that is not a valid number.
var ErrInvalid = errors.New("invalid phone number")

// Parse formats input to E.164 or returns ErrInvalid.
func Parse(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", ErrInvalid
	}

	number, err := phonenumbers.Parse(trimmed, DefaultRegion)
	if err != nil || !phonenumbers.IsValidNumber(number) {
		return "", ErrInvalid
	}

	return phonenumbers.Format(number, phonenumbers.E164), nil
}

// NormalizeE164 formats a phone number to E.164. If parsing fails, it returns the trimmed input.
func NormalizeE164(input string) string {
	formatted, err := Parse(input)
	if err != nil {
		return strings.TrimSpace(input)
	}
	return formatted
}
