package util

import (
	"net/mail"
	"strings"
	"unicode"
)

// NormalizeEmail validates a hinted free-text answer as an email address and
// returns the canonical lowercase form.
func NormalizeEmail(text string) (string, bool) {
	addr, err := mail.ParseAddress(strings.TrimSpace(text))
	if err != nil {
		return "", false
	}
	return strings.ToLower(addr.Address), true
}

// NormalizePhoneNumber strips formatting characters and validates length.
// A leading + is preserved; everything else must be a digit after common
// punctuation (spaces, dots, dashes, parentheses) is removed.
func NormalizePhoneNumber(text string) (string, bool) {
	var b strings.Builder
	for i, r := range strings.TrimSpace(text) {
		switch {
		case r == '+' && i == 0:
			b.WriteRune(r)
		case unicode.IsDigit(r):
			b.WriteRune(r)
		case r == ' ' || r == '.' || r == '-' || r == '(' || r == ')':
			// formatting only
		default:
			return "", false
		}
	}
	normalized := b.String()
	digits := strings.TrimPrefix(normalized, "+")
	if len(digits) < 7 || len(digits) > 15 {
		return "", false
	}
	return normalized, true
}
