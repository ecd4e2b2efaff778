// Package extract reads raw review text out of corpus XML files.
package extract

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"os"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/cognicore/sentitag/pkg/sentitag/internalerr"
)

// ReviewElement is the element name whose text is yielded.
const ReviewElement = "review"

// Reviews yields the text of every <review> element in r, in document order.
//
// The text of an element is the character data that precedes its first child
// element. Reviews nested inside other reviews are yielded in the order their
// start tags appear. A decode error is yielded once and ends the sequence.
func Reviews(r io.Reader) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		dec := xml.NewDecoder(r)
		dec.CharsetReader = charset.NewReaderLabel

		// open holds one builder per <review> still waiting for its text;
		// nil once the text is complete (a child element started).
		var open []*strings.Builder
		// stack holds, per open element, its index into open or -1.
		var stack []int
		sawRoot := false
		rootClosed := false

		for {
			tok, err := dec.Token()
			if err == io.EOF {
				if !sawRoot {
					yield("", fmt.Errorf("%w: no root element", internalerr.ErrParse))
				}
				return
			}
			if err != nil {
				yield("", fmt.Errorf("%w: %v", internalerr.ErrParse, err))
				return
			}

			switch t := tok.(type) {
			case xml.StartElement:
				if rootClosed {
					yield("", fmt.Errorf("%w: junk after document element <%s>", internalerr.ErrParse, t.Name.Local))
					return
				}
				sawRoot = true
				// A child element ends the leading text of its parent
				if n := len(stack); n > 0 && stack[n-1] >= 0 {
					if !flush(open, stack[n-1], yield) {
						return
					}
				}
				if t.Name.Local == ReviewElement {
					open = append(open, &strings.Builder{})
					stack = append(stack, len(open)-1)
				} else {
					stack = append(stack, -1)
				}

			case xml.CharData:
				if len(stack) == 0 {
					if len(strings.TrimSpace(string(t))) > 0 {
						yield("", fmt.Errorf("%w: text outside document element", internalerr.ErrParse))
						return
					}
					continue
				}
				if n := len(stack); stack[n-1] >= 0 {
					if b := open[stack[n-1]]; b != nil {
						b.Write(t)
					}
				}

			case xml.EndElement:
				n := len(stack)
				if n == 0 {
					continue
				}
				idx := stack[n-1]
				stack = stack[:n-1]
				if len(stack) == 0 {
					rootClosed = true
				}
				if idx >= 0 && !flush(open, idx, yield) {
					return
				}
			}
		}
	}
}

// flush yields the review at idx if it has not been yielded yet.
func flush(open []*strings.Builder, idx int, yield func(string, error) bool) bool {
	b := open[idx]
	if b == nil {
		return true
	}
	open[idx] = nil
	return yield(b.String(), nil)
}

// File yields the reviews of the XML file at path. The file is opened when the
// sequence is iterated and closed when iteration ends, so ranging over the
// result again re-reads the file from the start.
func File(path string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		f, err := os.Open(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				err = fmt.Errorf("%w: %s", internalerr.ErrNotFound, path)
			}
			yield("", err)
			return
		}
		defer f.Close()

		for text, err := range Reviews(f) {
			if !yield(text, err) {
				return
			}
			if err != nil {
				return
			}
		}
	}
}
