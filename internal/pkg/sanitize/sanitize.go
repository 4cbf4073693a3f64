// Package sanitize strips markup from user supplied question, answer and
// comment text before it is stored.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strict = bluemonday.StrictPolicy()
	ugc    = bluemonday.UGCPolicy()
)

// Line cleans single-line fields such as titles and locations
func Line(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}

// Body cleans free text, keeping safe formatting tags
func Body(s string) string {
	return strings.TrimSpace(ugc.Sanitize(s))
}
