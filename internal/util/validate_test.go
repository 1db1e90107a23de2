package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	normalized, ok := NormalizeEmail("  Sam.Lee@Example.COM ")
	assert.True(t, ok)
	assert.Equal(t, "sam.lee@example.com", normalized)

	_, ok = NormalizeEmail("not-an-email")
	assert.False(t, ok)

	_, ok = NormalizeEmail("")
	assert.False(t, ok)
}

func TestNormalizePhoneNumber(t *testing.T) {
	normalized, ok := NormalizePhoneNumber("+1 (555) 867-5309")
	assert.True(t, ok)
	assert.Equal(t, "+15558675309", normalized)

	normalized, ok = NormalizePhoneNumber("555.867.5309")
	assert.True(t, ok)
	assert.Equal(t, "5558675309", normalized)

	_, ok = NormalizePhoneNumber("555-abcd")
	assert.False(t, ok)

	// Too short and too long.
	_, ok = NormalizePhoneNumber("123456")
	assert.False(t, ok)
	_, ok = NormalizePhoneNumber("+1234567890123456")
	assert.False(t, ok)
}
