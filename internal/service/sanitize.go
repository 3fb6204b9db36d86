package service

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// textPolicy strips all HTML from user-supplied text before it is persisted
// or relayed to other clients.
var textPolicy = bluemonday.StrictPolicy()

func sanitizeText(s string) string {
	return strings.TrimSpace(textPolicy.Sanitize(s))
}
