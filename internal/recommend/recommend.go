// Package recommend holds the static equity recommendations shown under
// every audit, plus their HTML rendering.
package recommend

import (
	"html/template"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

const suggestedActions = `- Standardize referrals using universal screening.
- Use multiple measures (nonverbal tests, rating scales, portfolios).
- Monitor cut-scores for subgroup disparities.
- Review each pipeline step: referred -> tested -> qualified -> placed.
- Strengthen family outreach and communication.
- Re-audit each semester to track improvement.
`

// Markdown returns the suggested actions as markdown source
func Markdown() string {
	return suggestedActions
}

// HTML renders the suggested actions for embedding in the dashboard
func HTML() template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	out := markdown.ToHTML([]byte(suggestedActions), p, renderer)
	return template.HTML(out)
}
