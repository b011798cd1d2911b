package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit_RoundTrip(t *testing.T) {
	cases := []struct {
		name    string
		content string
		opts    SplitOptions
	}{
		{
			name:    "markdown blockquote run",
			content: "before\n> quoted @bob\n> more\nafter",
			opts:    SplitOptions{Markdown: true, Blockquote: true},
		},
		{
			name:    "markdown inline code",
			content: "run `npm install @scope/pkg` first",
			opts:    SplitOptions{Markdown: true, Code: true},
		},
		{
			name:    "markdown fenced block",
			content: "intro\n```\n@alice inside\n```\noutro",
			opts:    SplitOptions{Markdown: true, Code: true},
		},
		{
			name:    "html code and blockquote",
			content: `<blockquote>@old</blockquote><p>hi <code>@cmd</code></p>`,
			opts:    SplitOptions{Blockquote: true, Code: true},
		},
		{
			name:    "content ends inside protected region",
			content: "text <code>@x</code>",
			opts:    SplitOptions{Code: true},
		},
		{
			name:    "no protected regions",
			content: "plain @alice text",
			opts:    SplitOptions{Markdown: true, Blockquote: true, Code: true},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			spans := Split(tc.content, tc.opts)
			assert.Equal(t, tc.content, Join(spans))
		})
	}
}

func TestSplit_AlternatesStartingUnprotected(t *testing.T) {
	spans := Split("a <code>b</code> c <code>d</code> e", SplitOptions{Code: true})
	require.Len(t, spans, 5)
	for i, s := range spans {
		assert.Equal(t, i%2 == 1, s.Protected, "span %d", i)
	}
	assert.Equal(t, "<code>b</code>", spans[1].Text)
	assert.Equal(t, "<code>d</code>", spans[3].Text)
}

func TestSplit_LeadingProtectedRegion(t *testing.T) {
	spans := Split("<code>x</code> tail", SplitOptions{Code: true})
	require.Len(t, spans, 3)
	assert.Equal(t, Span{Text: ""}, spans[0])
	assert.True(t, spans[1].Protected)
	assert.Equal(t, " tail", spans[2].Text)
}

func TestSplit_EmptyContent(t *testing.T) {
	assert.Nil(t, Split("", SplitOptions{Markdown: true, Code: true}))
}

func TestSplit_NoOptionsIsSingleSpan(t *testing.T) {
	spans := Split("> looks like a quote with <code>@x</code>", SplitOptions{})
	require.Len(t, spans, 1)
	assert.False(t, spans[0].Protected)
}

func TestSplit_MarkdownBlockquoteStopsAtPlainLine(t *testing.T) {
	spans := Split("> one\n> two\nplain\n> three", SplitOptions{Markdown: true, Blockquote: true})
	require.Len(t, spans, 4)
	assert.Equal(t, "> one\n> two", spans[1].Text)
	assert.Equal(t, "\nplain\n", spans[2].Text)
	assert.Equal(t, "> three", spans[3].Text)
}

func TestClean_DropsProtectedRegions(t *testing.T) {
	got := Clean("keep <code>drop</code> keep2", SplitOptions{Code: true})
	assert.Equal(t, "keep  keep2", got)

	got = Clean("> gone\nstays", SplitOptions{Markdown: true, Blockquote: true})
	assert.Equal(t, "\nstays", got)
}
