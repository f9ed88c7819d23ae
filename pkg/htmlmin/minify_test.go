package htmlmin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/livemark/pkg/htmlmin"
)

func TestMinify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
		{
			name:     "already minimal",
			input:    `<div class=note><b>hi</b></div>`,
			expected: `<div class=note><b>hi</b></div>`,
		},
		{
			name:     "strips comments",
			input:    "<div><!-- a comment --><b>x</b></div>",
			expected: "<div><b>x</b></div>",
		},
		{
			name:     "strips conditional comments",
			input:    `<![if !IE]><p>x</p><![endif]>`,
			expected: "<p>x</p>",
		},
		{
			name:     "strips newlines and tabs",
			input:    "<div>\n\t<span>a</span>\r\n</div>",
			expected: "<div><span>a</span></div>",
		},
		{
			name:     "collapses whitespace between tags",
			input:    "<ul>   <li>one</li>   <li>two</li>   </ul>",
			expected: "<ul><li>one</li><li>two</li></ul>",
		},
		{
			name:     "trims and collapses multi spaces",
			input:    "   <p>a    b</p>   ",
			expected: "<p>a b</p>",
		},
		{
			name:     "whitespace around equals",
			input:    `<a href = "http://x/y">link</a>`,
			expected: `<a href="http://x/y">link</a>`,
		},
		{
			name:     "whitespace inside brackets",
			input:    `< div >text< /div >`,
			expected: `<div>text</div>`,
		},
		{
			name:     "style block minified",
			input:    "<style>\n  .a {\n    color : red ;\n  }\n</style>",
			expected: "<style>.a{color:red}</style>",
		},
		{
			name:     "style block comment stripped",
			input:    "<style>/* note */ .a { x: 1; }</style>",
			expected: "<style>.a{x:1}</style>",
		},
		{
			name:     "inline style attribute minified",
			input:    `<p style="color : red ; margin : 0 ;">x</p>`,
			expected: `<p style="color:red;margin:0">x</p>`,
		},
		{
			name:     "quotes removed from simple attribute values",
			input:    `<div class="note" id='main-1'>x</div>`,
			expected: `<div class=note id=main-1>x</div>`,
		},
		{
			name:     "quotes kept for complex attribute values",
			input:    `<a href="http://x/y?a=1">x</a>`,
			expected: `<a href="http://x/y?a=1">x</a>`,
		},
		{
			name:     "whitespace before self-close removed",
			input:    `<br />`,
			expected: `<br/>`,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, htmlmin.Minify(testCase.input))
		})
	}
}

func TestMinifyIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"<div>\n\t<span>a   b</span>\n</div>",
		`<p style="color : red ;">x</p>`,
		"<style>/* c */ .a { x : 1 ; }</style>",
		`<a href = "http://x/y?a=1" class="note">   link   </a>`,
		`<img src="http://x/a.png" alt='pic' />`,
		"<!-- gone --><b>keep</b>",
	}

	for _, input := range inputs {
		once := htmlmin.Minify(input)
		twice := htmlmin.Minify(once)
		assert.Equal(t, once, twice, "input: %q", input)
	}
}
