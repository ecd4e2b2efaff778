// Package clean normalizes raw review text before tagging.
package clean

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// quotArtifact is how double quotes were mangled in the scraped review dumps.
const quotArtifact = " and quot;"

// Cleaner turns raw review text into a single line of space-separated words.
// Clean is deterministic and defined for every input string.
type Cleaner struct {
	// PairSeparator is removed from the text so it can later join a token to
	// its tag without ambiguity.
	PairSeparator string
	// TokenSeparator joins the words of the cleaned text.
	TokenSeparator string
}

// New creates a Cleaner for the given separators.
func New(pairSeparator, tokenSeparator string) *Cleaner {
	return &Cleaner{
		PairSeparator:  pairSeparator,
		TokenSeparator: tokenSeparator,
	}
}

// Clean normalizes raw review text:
//  1. invalid UTF-8 is replaced with U+FFFD
//  2. the " and quot;" artifact becomes a double quote
//  3. HTML markup is dropped and entities decoded
//  4. the pair separator is removed
//  5. whitespace runs collapse to the token separator, ends trimmed
func (c *Cleaner) Clean(raw string) string {
	text := strings.ToValidUTF8(raw, "\uFFFD")
	text = strings.ReplaceAll(text, quotArtifact, `"`)
	text = stripMarkup(text)
	if c.PairSeparator != "" {
		text = strings.ReplaceAll(text, c.PairSeparator, "")
	}

	sep := c.TokenSeparator
	if sep == "" {
		sep = " "
	}
	return strings.Join(strings.Fields(text), sep)
}

// stripMarkup keeps only the text content of s. Tags naming a known HTML
// element, such as <br />, become whitespace so the words around them stay
// apart. Anything else that merely looks like a tag is kept verbatim.
func stripMarkup(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}

	var buf strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF is the only error a strings.Reader can produce
			return buf.String()
		case html.TextToken:
			buf.Write(z.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			// TagName lower-cases the token buffer in place
			raw := string(z.Raw())
			name, _ := z.TagName()
			if atom.Lookup(name) == 0 {
				buf.WriteString(raw)
				continue
			}
			buf.WriteByte(' ')
		}
	}
}
