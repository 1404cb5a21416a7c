package kv

import (
	"fmt"
	"strings"
)

// validateKey rejects keys that cannot be mapped onto every backend. File names
// are the most restrictive mapping, so separators and dot-prefixed names are out.
func validateKey(key string) error {
	switch {
	case strings.TrimSpace(key) == "":
		return fmt.Errorf("%w: empty", ErrInvalidKey)
	case strings.ContainsAny(key, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidKey, key)
	case strings.HasPrefix(key, "."):
		return fmt.Errorf("%w: %q starts with a dot", ErrInvalidKey, key)
	}
	return nil
}
