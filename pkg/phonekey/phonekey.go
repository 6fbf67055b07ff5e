package phonekey

import (
	"errors"
	"strings"
)

var (
	// ErrEmptyPhone indicates the phone number is empty
	ErrEmptyPhone = errors.New("phone number cannot be empty")

	// ErrTooShort indicates the phone number has fewer than KeyLength digits
	ErrTooShort = errors.New("phone number must contain at least 11 digits")

	// ErrInvalidFormat indicates the phone number contains no digits at all
	ErrInvalidFormat = errors.New("phone number must contain digits")
)

// KeyLength is the number of trailing digits that form a phone-key.
// Korean mobile numbers are 11 digits (010-XXXX-XXXX); numbers arriving
// with a +82 country code keep only their national trailing digits.
const KeyLength = 11

// Sanitize removes all non-digit characters from a phone number.
func Sanitize(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Normalize derives the canonical phone-key used as the document ID across
// all participant collections: separators stripped, last 11 digits kept.
// Callers must treat an error as fatal for the record — a document can
// never be written without a key.
func Normalize(phone string) (string, error) {
	if phone == "" {
		return "", ErrEmptyPhone
	}

	digits := Sanitize(phone)
	if digits == "" {
		return "", ErrInvalidFormat
	}

	// +82 numbers drop the leading zero of the national number; restore it
	// so the key matches the domestic form of the same number.
	if len(digits) > KeyLength && strings.HasPrefix(digits, "82") {
		digits = "0" + digits[2:]
	}

	if len(digits) < KeyLength {
		return "", ErrTooShort
	}

	return digits[len(digits)-KeyLength:], nil
}

// LastFour returns the final 4 digits of a phone number after separator
// removal, or the empty string when fewer than 4 digits exist. The result
// is never longer than 4 characters.
func LastFour(phone string) string {
	digits := Sanitize(phone)
	if len(digits) < 4 {
		return ""
	}
	return digits[len(digits)-4:]
}

// IsSuffix reports whether s is a valid 4-digit search suffix.
func IsSuffix(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
