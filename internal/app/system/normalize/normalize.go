// internal/app/system/normalize/normalize.go

// Package normalize holds the small canonicalization helpers applied to user
// input before it is persisted or matched against unique indexes.
package normalize

import "strings"

// Email lowercases and trims an email address so the unique index on
// users.email is effectively case-insensitive.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Phone strips spaces, dashes, and parentheses, keeping digits and a single
// leading "+". Two renderings of the same number must collide on the phone
// uniqueness check.
func Phone(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}
