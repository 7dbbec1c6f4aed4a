// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize cleans client-supplied text before it is persisted.
//
// Profile fields (about, profession, location) and message bodies accept
// arbitrary text from clients and are later rendered by web and mobile
// frontends, so markup is scrubbed on the way in rather than on every read.
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	ugcPolicy    = bluemonday.UGCPolicy()
	strictPolicy = bluemonday.StrictPolicy()
)

// Sanitize removes dangerous markup while keeping user-generated-content
// basics (paragraphs, emphasis, links, lists). Used for long-form fields
// such as the profile "about" section.
func Sanitize(input string) string {
	if input == "" {
		return ""
	}
	return ugcPolicy.Sanitize(input)
}

// StripTags removes all markup, returning plain text. Used for short fields
// (names, profession, location) where any tag is noise at best.
func StripTags(input string) string {
	if input == "" {
		return ""
	}
	return strings.TrimSpace(strictPolicy.Sanitize(input))
}
