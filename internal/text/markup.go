package text

import (
	"strings"

	"golang.org/x/net/html"
)

// Plain strips HTML markup and decodes entities, then collapses runs of
// whitespace. Recommendation strings occasionally arrive with inline tags
// or escaped ampersands; the canvas only draws plain runs.
func Plain(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return collapse(s)
	}

	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return collapse(b.String())
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if string(name) == "br" || string(name) == "p" || string(name) == "li" {
				b.WriteByte(' ')
			}
		}
	}
}

// PlainAll applies Plain to every element. The result has the same length
// as in; elements that end up empty are kept as "".
func PlainAll(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = Plain(s)
	}
	return out
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
