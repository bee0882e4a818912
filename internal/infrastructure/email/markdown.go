package email

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// htmlRenderer turns a markdown body into sanitized HTML. Ticket text is
// user supplied, so raw HTML in it never survives.
type htmlRenderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func newHTMLRenderer() *htmlRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Linkify,
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)

	return &htmlRenderer{
		md:     md,
		policy: bluemonday.UGCPolicy(),
	}
}

func (r *htmlRenderer) Render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown to HTML: %w", err)
	}
	return r.policy.Sanitize(buf.String()), nil
}
