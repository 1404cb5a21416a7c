package service

import (
	"regexp"
	"strings"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	emailRegex      = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// normalizeEmail lowercases and trims the provided email.
func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

// normalizeUsername trims and collapses inner whitespace runs to one space.
func normalizeUsername(username string) string {
	return whitespaceRegex.ReplaceAllString(strings.TrimSpace(username), " ")
}

func validEmail(email string) bool {
	return emailRegex.MatchString(email)
}
