// Package htmlmin collapses an HTML fragment into a compact single-line
// form suitable for inline rendering. The output is whitespace-minimized
// but NOT safe: sanitization is a mandatory separate step applied after
// minification and before insertion into any render target.
package htmlmin

import (
	"regexp"
	"strings"
)

// The transform is order-sensitive; each regexp below corresponds to one
// step of the pipeline in Minify.
var (
	reComment     = regexp.MustCompile(`(?s)<!--.*?-->`)
	reCondComment = regexp.MustCompile(`<!\[[^\]]*\]>`)
	reInterTag    = regexp.MustCompile(`>\s+<`)
	reMultiSpace  = regexp.MustCompile(` {2,}`)
	reEquals      = regexp.MustCompile(`\s*=\s*`)
	reOpenBracket = regexp.MustCompile(`\s*<\s*`)
	reCloseBrack  = regexp.MustCompile(`\s*>\s*`)
	reStyleBlock  = regexp.MustCompile(`(?s)(<style[^>]*>)(.*?)(</style>)`)
	reStyleAttr   = regexp.MustCompile(`style="([^"]*)"`)
	reSimpleAttr  = regexp.MustCompile(`([a-zA-Z][a-zA-Z0-9-]*)=["']([a-zA-Z0-9_-]+)["']`)
	reSelfClose   = regexp.MustCompile(`\s+/>`)

	reCSSComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
	reCSSPunct   = regexp.MustCompile(`\s*([{};:,])\s*`)

	reAttrSemi  = regexp.MustCompile(`\s*;\s*`)
	reAttrColon = regexp.MustCompile(`\s*:\s*`)
)

// Minify collapses an HTML fragment to a single-line, whitespace-minimized
// equivalent. The transform is deterministic and idempotent:
// Minify(Minify(x)) == Minify(x).
func Minify(html string) string {
	out := html

	// 1. Strip comments, including conditional-comment syntax.
	out = reComment.ReplaceAllString(out, "")
	out = reCondComment.ReplaceAllString(out, "")

	// 2. Strip newlines, carriage returns, and tabs.
	out = stripLineBreaks(out)

	// 3. Collapse whitespace between adjacent tags.
	out = reInterTag.ReplaceAllString(out, "><")

	// 4. Trim the whole fragment.
	out = strings.TrimSpace(out)

	// 5. Collapse runs of spaces.
	out = reMultiSpace.ReplaceAllString(out, " ")

	// 6. Remove whitespace around '=' and around tag brackets.
	out = reEquals.ReplaceAllString(out, "=")
	out = reOpenBracket.ReplaceAllString(out, "<")
	out = reCloseBrack.ReplaceAllString(out, ">")

	// 7. Minify embedded <style> blocks.
	out = reStyleBlock.ReplaceAllStringFunc(out, minifyStyleBlock)

	// 8. Minify inline style="..." attribute values.
	out = reStyleAttr.ReplaceAllStringFunc(out, minifyStyleAttr)

	// 9. Drop quotes around simple attribute values.
	out = reSimpleAttr.ReplaceAllString(out, "$1=$2")

	// 10. Remove whitespace before self-closing syntax.
	out = reSelfClose.ReplaceAllString(out, "/>")

	// 11. Final trim.
	return strings.TrimSpace(out)
}

func stripLineBreaks(s string) string {
	return strings.NewReplacer("\n", "", "\r", "", "\t", "").Replace(s)
}

// minifyStyleBlock minifies the CSS body of a <style>...</style> match.
func minifyStyleBlock(block string) string {
	m := reStyleBlock.FindStringSubmatch(block)
	if m == nil {
		return block
	}
	open, css, closing := m[1], m[2], m[3]

	css = reCSSComment.ReplaceAllString(css, "")
	css = reCSSPunct.ReplaceAllString(css, "$1")
	css = strings.ReplaceAll(css, ";}", "}")
	css = stripLineBreaks(css)
	css = reMultiSpace.ReplaceAllString(css, " ")
	css = strings.TrimSpace(css)

	return open + css + closing
}

// minifyStyleAttr minifies the value of a style="..." attribute match.
func minifyStyleAttr(attr string) string {
	m := reStyleAttr.FindStringSubmatch(attr)
	if m == nil {
		return attr
	}
	value := m[1]

	value = reAttrSemi.ReplaceAllString(value, ";")
	value = reAttrColon.ReplaceAllString(value, ":")
	value = strings.TrimSuffix(value, ";")
	value = reMultiSpace.ReplaceAllString(value, " ")
	value = strings.TrimSpace(value)

	return `style="` + value + `"`
}
