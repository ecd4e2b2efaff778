// Package tagger assigns coarse part-of-speech tags to cleaned review text.
package tagger

import "strings"

// Token is one tagged word.
type Token struct {
	Text string
	Tag  POS
}

// Tagger splits text into tokens and tags each one, left to right.
type Tagger interface {
	Tag(text string) ([]Token, error)
}

// Func adapts a plain function to the Tagger interface.
type Func func(text string) ([]Token, error)

// Tag implements Tagger.
func (f Func) Tag(text string) ([]Token, error) {
	return f(text)
}

// Format serializes tokens as text<pairSep>tag joined by tokenSep.
func Format(tokens []Token, pairSep, tokenSep string) string {
	var b strings.Builder
	for i, tok := range tokens {
		if i > 0 {
			b.WriteString(tokenSep)
		}
		b.WriteString(tok.Text)
		b.WriteString(pairSep)
		b.WriteString(string(tok.Tag))
	}
	return b.String()
}
