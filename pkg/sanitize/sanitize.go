// Package sanitize strips dangerous content from HTML fragments before
// they reach a render target. The policy is allowlist-based: unknown tags
// are dropped, script and style-active elements are removed along with
// their content, event-handler attributes are discarded, and URL
// attributes are restricted to safe schemes. The sanitizer's output is
// authoritative even when it strips content the author intended.
package sanitize

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// Sanitizer turns an untrusted HTML fragment into one safe to render.
type Sanitizer interface {
	Sanitize(fragment string) string
}

// Policy is an allowlist-based Sanitizer.
type Policy struct {
	tags     map[string]struct{}
	attrs    map[string]struct{}
	urlAttrs map[string]struct{}
	schemes  map[string]struct{}

	// rawContent elements have their entire content removed, not just
	// their tags.
	rawContent map[string]struct{}
}

// NewPolicy returns the default policy: common formatting and structural
// tags, presentation attributes, and http/https/mailto URLs.
func NewPolicy() *Policy {
	return &Policy{
		tags: toSet(
			"a", "abbr", "b", "blockquote", "br", "caption", "code", "dd",
			"del", "details", "div", "dl", "dt", "em", "figcaption", "figure",
			"h1", "h2", "h3", "h4", "h5", "h6", "hr", "i", "img", "ins",
			"kbd", "li", "mark", "ol", "p", "pre", "q", "s", "samp", "small",
			"span", "strong", "sub", "summary", "sup", "table", "tbody",
			"td", "tfoot", "th", "thead", "tr", "u", "ul",
		),
		attrs: toSet(
			"alt", "class", "colspan", "height", "id", "rowspan", "style",
			"title", "width",
		),
		urlAttrs:   toSet("href", "src"),
		schemes:    toSet("http", "https", "mailto"),
		rawContent: toSet("script", "style", "iframe", "object", "embed"),
	}
}

func toSet(items ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

// Sanitize rewrites the fragment keeping only allowlisted markup.
// Text content of disallowed non-raw elements is preserved; raw-content
// elements (script, style, iframe) are removed entirely.
func (p *Policy) Sanitize(fragment string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(fragment))

	var out strings.Builder
	skipDepth := 0

	for {
		tokenType := tokenizer.Next()
		if tokenType == html.ErrorToken {
			// io.EOF ends the fragment; any other error means malformed
			// input, for which the already-sanitized prefix is returned.
			return out.String()
		}

		token := tokenizer.Token()
		name := strings.ToLower(token.Data)

		switch tokenType {
		case html.StartTagToken:
			if p.isRawContent(name) {
				skipDepth++
				continue
			}
			if skipDepth > 0 {
				continue
			}
			p.writeTag(&out, token, false)

		case html.SelfClosingTagToken:
			if skipDepth > 0 || p.isRawContent(name) {
				continue
			}
			p.writeTag(&out, token, true)

		case html.EndTagToken:
			if p.isRawContent(name) {
				if skipDepth > 0 {
					skipDepth--
				}
				continue
			}
			if skipDepth > 0 {
				continue
			}
			if p.tagAllowed(name) {
				out.WriteString("</" + name + ">")
			}

		case html.TextToken:
			if skipDepth > 0 {
				continue
			}
			out.WriteString(html.EscapeString(token.Data))

		case html.CommentToken, html.DoctypeToken:
			// Dropped.
		}
	}
}

func (p *Policy) tagAllowed(name string) bool {
	_, ok := p.tags[name]
	return ok
}

func (p *Policy) isRawContent(name string) bool {
	_, ok := p.rawContent[name]
	return ok
}

// writeTag emits an allowed tag with its attributes filtered. Disallowed
// tags are dropped while their inner content is kept.
func (p *Policy) writeTag(out *strings.Builder, token html.Token, selfClosing bool) {
	name := strings.ToLower(token.Data)
	if !p.tagAllowed(name) {
		return
	}

	out.WriteString("<" + name)
	for _, attr := range token.Attr {
		key := strings.ToLower(attr.Key)
		if !p.attrAllowed(key, attr.Val) {
			continue
		}
		out.WriteString(" " + key + `="` + html.EscapeString(attr.Val) + `"`)
	}
	if selfClosing {
		out.WriteString("/>")
	} else {
		out.WriteString(">")
	}
}

// attrAllowed reports whether an attribute survives sanitization. Event
// handlers never do; URL attributes must carry a safe scheme.
func (p *Policy) attrAllowed(key, value string) bool {
	if strings.HasPrefix(key, "on") {
		return false
	}
	if _, ok := p.urlAttrs[key]; ok {
		return p.urlAllowed(value)
	}
	_, ok := p.attrs[key]
	return ok
}

// urlAllowed permits relative URLs and absolute URLs with an allowed
// scheme. Unparseable URLs and scheme tricks (javascript:, data:) are
// rejected.
func (p *Policy) urlAllowed(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	if u.Scheme == "" {
		return true
	}
	_, ok := p.schemes[strings.ToLower(u.Scheme)]
	return ok
}
