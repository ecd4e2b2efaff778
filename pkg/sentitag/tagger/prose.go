package tagger

import (
	"fmt"
	"unicode/utf8"

	"github.com/jdkato/prose/v2"

	"github.com/cognicore/sentitag/pkg/sentitag/internalerr"
)

// ModelName is the name given to the bundled English model.
const ModelName = "en"

// Prose tags text with the averaged perceptron model shipped with prose.
// The model is loaded once and only read afterwards.
type Prose struct {
	model *prose.Model
}

// NewProse loads the bundled English model. Loading decodes the embedded
// weights, so create one Prose per process and share it.
func NewProse() *Prose {
	return &Prose{model: prose.ModelFromData(ModelName)}
}

// Tag tokenizes and tags one review. Sentence segmentation and entity
// extraction are disabled; only tokenization and tagging run.
func (p *Prose) Tag(text string) ([]Token, error) {
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("%w: input is not valid UTF-8", internalerr.ErrTagger)
	}

	doc, err := prose.NewDocument(text,
		prose.UsingModel(p.model),
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrTagger, err)
	}

	raw := doc.Tokens()
	tokens := make([]Token, 0, len(raw))
	for _, tok := range raw {
		tokens = append(tokens, Token{Text: tok.Text, Tag: FromPenn(tok.Tag)})
	}
	return tokens, nil
}
