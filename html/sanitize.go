package html

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// Sanitize strips everything from rendered type markup that is not a link
// or span produced by this package. Links must have parseable URLs.
func Sanitize(markup string) string {
	return sanitizer().Sanitize(markup)
}

func sanitizer() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.StrictPolicy()
		p.RequireParseableURLs(true)
		p.AllowURLSchemes("http", "https")
		p.AllowRelativeURLs(true)
		p.AllowAttrs("href", "title", "class").OnElements("a")
		p.AllowAttrs("id", "class").OnElements("span")
		p.AllowElements("code")
		policy = p
	})
	return policy
}
