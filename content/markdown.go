package content

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Emphasis never spans a tag, so running MarkdownLite on its own output
// cannot pair up stray asterisks across former line breaks.
var (
	h3Pattern     = regexp.MustCompile(`(?m)^### (.*)$`)
	h2Pattern     = regexp.MustCompile(`(?m)^## (.*)$`)
	h1Pattern     = regexp.MustCompile(`(?m)^# (.*)$`)
	strongPattern = regexp.MustCompile(`\*\*([^<\n]*?)\*\*`)
	emPattern     = regexp.MustCompile(`\*([^<\n]*?)\*`)

	markdownPolicy = newMarkdownPolicy()
)

func newMarkdownPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("h1", "h2", "h3", "strong", "em", "br")
	return p
}

// MarkdownLite renders headings (levels 1-3), bold, italic and line breaks.
// Lists, links, code and everything else stay literal text. Input HTML is
// sanitised down to the same six elements first, which also makes the
// transform idempotent.
func MarkdownLite(src string) string {
	s := strings.ReplaceAll(src, "\r\n", "\n")
	s = markdownPolicy.Sanitize(s)
	s = h3Pattern.ReplaceAllString(s, "<h3>$1</h3>")
	s = h2Pattern.ReplaceAllString(s, "<h2>$1</h2>")
	s = h1Pattern.ReplaceAllString(s, "<h1>$1</h1>")
	s = strongPattern.ReplaceAllString(s, "<strong>$1</strong>")
	s = emPattern.ReplaceAllString(s, "<em>$1</em>")
	return strings.ReplaceAll(s, "\n", "<br/>")
}
