// Package markdown renders prompt templates and generated copy to HTML for
// the preview pane.
package markdown

import (
	"bytes"
	"html"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Placeholders the backend substitutes into prompt templates.
var Placeholders = []string{"{analysis_context}", "{adapted_text}"}

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(
		gmhtml.WithHardWraps(), // single newlines are line breaks in prompts
		gmhtml.WithUnsafe(),    // allowed tags pass through; the rest is escaped first
	),
)

var (
	tagRe     = regexp.MustCompile(`<[^>]*>`)
	tagNameRe = regexp.MustCompile(`^</?([A-Za-z][A-Za-z0-9]*)`)
)

var allowedTags = map[string]bool{
	"p": true, "br": true, "em": true, "strong": true, "a": true,
	"ul": true, "ol": true, "li": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "code": true, "pre": true,
	"table": true, "thead": true, "tbody": true, "tr": true, "th": true, "td": true,
	"hr": true, "del": true, "input": true,
}

// EscapeCustomTags turns every angle-bracket tag that is not a known
// formatting tag into literal text, so template markers such as <product>
// stay visible.
func EscapeCustomTags(text string) string {
	return tagRe.ReplaceAllStringFunc(text, func(tag string) string {
		if m := tagNameRe.FindStringSubmatch(tag); m != nil && allowedTags[strings.ToLower(m[1])] {
			return tag
		}
		return strings.NewReplacer("<", "&lt;", ">", "&gt;").Replace(tag)
	})
}

// HighlightPlaceholders renders substitution placeholders as bold code.
func HighlightPlaceholders(text string) string {
	for _, p := range Placeholders {
		text = strings.ReplaceAll(text, p, "**`"+p+"`**")
	}
	return text
}

// ToHTML converts Markdown source into HTML.
func ToHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Preview renders content for the preview pane. Empty content shows the
// placeholder text instead.
func Preview(content, placeholder string) (string, error) {
	if content == "" {
		return `<p class="placeholder"><em>` + html.EscapeString(placeholder) + `</em></p>`, nil
	}
	return ToHTML(HighlightPlaceholders(EscapeCustomTags(content)))
}
