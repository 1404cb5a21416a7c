package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "fan@example.com", normalizeEmail("  Fan@Example.COM "))
}

func TestNormalizeUsername(t *testing.T) {
	assert.Equal(t, "big fan", normalizeUsername(" big \t  fan "))
}

func TestValidEmail(t *testing.T) {
	for email, want := range map[string]bool{
		"fan@example.com":       true,
		"admin@worldsporta.com": true,
		"not-an-email":          false,
		"a@b":                   false,
		"two@@example.com":      false,
		"sp ace@example.com":    false,
	} {
		assert.Equal(t, want, validEmail(email), email)
	}
}
