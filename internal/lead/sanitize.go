package lead

import (
	"html"
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// maxTextLength bounds free-text fields in runes. It matches the max=200
// tags on Form.
const maxTextLength = 200

// markupPattern matches something shaped like an HTML tag or comment.
// A bare "<" as in "A<B Dental" or "<3" is plain text.
var markupPattern = regexp.MustCompile(`<(/?[A-Za-z][^<>]*|!--.*?--)>`)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// sanitizeText strips markup from visitor-supplied text, collapses
// whitespace and clips the result to maxTextLength runes. Text without tags
// skips the HTML policy so stray angle brackets survive.
func sanitizeText(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return ""
	}
	if markupPattern.MatchString(cleaned) {
		// The policy escapes entities, which the email template would
		// escape again, so they are undone.
		cleaned = html.UnescapeString(textSanitizer().Sanitize(cleaned))
	}
	return clipText(strings.Join(strings.Fields(cleaned), " "), maxTextLength)
}

// clipText truncates s to at most n runes.
func clipText(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return strings.TrimSpace(s[:i])
		}
		count++
	}
	return s
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
