// Package markup renders catalog-provided text (biographies, overviews) into
// safe HTML fragments.
package markup

import (
	"bytes"
	"html/template"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	rendererOnce sync.Once
	md           goldmark.Markdown
	policy       *bluemonday.Policy
	strict       *bluemonday.Policy
)

func setup() {
	md = goldmark.New(goldmark.WithExtensions(extension.Linkify))

	policy = bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)

	strict = bluemonday.StrictPolicy()
}

// Biography converts markdown-ish catalog text to sanitized HTML. Blank
// lines separate paragraphs. Empty input yields "".
func Biography(text string) template.HTML {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	rendererOnce.Do(setup)

	var buf bytes.Buffer
	if err := md.Convert([]byte(text), &buf); err != nil {
		// Fall back to escaped plain text.
		return template.HTML("<p>" + template.HTMLEscapeString(text) + "</p>") //#nosec G203 -- escaped above
	}

	return template.HTML(strings.TrimSpace(policy.Sanitize(buf.String()))) //#nosec G203 -- sanitized by bluemonday
}

// Plain strips all markup from text, leaving readable plain text.
func Plain(text string) string {
	rendererOnce.Do(setup)
	return strings.TrimSpace(strict.Sanitize(text))
}
