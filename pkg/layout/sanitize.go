package layout

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	prosePolicyOnce sync.Once
	prosePolicy     *bluemonday.Policy

	stripPolicyOnce sync.Once
	stripPolicy     *bluemonday.Policy
)

// sanitizeProse keeps the inline markup allowed around inputs and drops the
// rest. Surrounding whitespace is significant (it spaces prose from inputs)
// and is preserved.
func sanitizeProse(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return raw
	}
	return proseSanitizer().Sanitize(raw)
}

func stripMarkup(raw string) string {
	if raw == "" {
		return ""
	}
	return html.UnescapeString(markupStripper().Sanitize(raw))
}

func proseSanitizer() *bluemonday.Policy {
	prosePolicyOnce.Do(func() {
		policy := bluemonday.NewPolicy()
		policy.AllowElements("b", "strong", "em", "i", "span", "br")
		policy.AllowAttrs("class").OnElements("span", "b", "strong", "em", "i")
		prosePolicy = policy
	})
	return prosePolicy
}

func markupStripper() *bluemonday.Policy {
	stripPolicyOnce.Do(func() {
		stripPolicy = bluemonday.StrictPolicy()
	})
	return stripPolicy
}
