// Package corpus runs the tagging pipeline over one corpus file:
// XML → reviews → cleaned text → tagged tokens → statistics and artifacts.
package corpus

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/cognicore/sentitag/pkg/sentitag/extract"
	"github.com/cognicore/sentitag/pkg/sentitag/internalerr"
	"github.com/cognicore/sentitag/pkg/sentitag/stats"
	"github.com/cognicore/sentitag/pkg/sentitag/tagger"
)

// Default artifact separators.
const (
	DefaultPairSeparator  = "_"
	DefaultTokenSeparator = " "
)

// entrySeparator joins review-level entries in both artifacts.
const entrySeparator = "\n"

// Cleaner normalizes raw review text. Implementations must be deterministic.
type Cleaner interface {
	Clean(raw string) string
}

// Options configures an Aggregator
type Options struct {
	Tagger         tagger.Tagger
	Cleaner        Cleaner
	PairSeparator  string
	TokenSeparator string
	ProgressEvery  int // log progress every N reviews; 0 disables
	Logger         *log.Logger
}

// Aggregator tags corpus files and writes their clean and tagged artifacts.
type Aggregator struct {
	tagger        tagger.Tagger
	cleaner       Cleaner
	pairSep       string
	tokenSep      string
	progressEvery int
	logger        *log.Logger
}

// New creates an Aggregator. Tagger and Cleaner are required; empty
// separators fall back to the defaults and a nil Logger discards output.
func New(opts Options) (*Aggregator, error) {
	if opts.Tagger == nil || opts.Cleaner == nil {
		return nil, fmt.Errorf("%w: aggregator needs a tagger and a cleaner", internalerr.ErrInvalidConfig)
	}

	a := &Aggregator{
		tagger:        opts.Tagger,
		cleaner:       opts.Cleaner,
		pairSep:       opts.PairSeparator,
		tokenSep:      opts.TokenSeparator,
		progressEvery: opts.ProgressEvery,
		logger:        opts.Logger,
	}
	if a.pairSep == "" {
		a.pairSep = DefaultPairSeparator
	}
	if a.tokenSep == "" {
		a.tokenSep = DefaultTokenSeparator
	}
	if a.logger == nil {
		a.logger = log.New(io.Discard, "", 0)
	}
	return a, nil
}

// Result describes one processed corpus file.
type Result struct {
	Path       string
	CleanPath  string
	TaggedPath string
	Stats      stats.Stats
}

// Process tags every review in the XML file at path, writes the two
// artifacts and logs the statistics report.
//
// Extraction and tagging errors abort before anything is written. A corpus
// with no tokens still gets its artifacts written, but Process returns an
// error wrapping internalerr.ErrEmptyCorpus alongside the result.
func (a *Aggregator) Process(ctx context.Context, path string) (Result, error) {
	res := Result{Path: path}
	a.logger.Printf("Tagging %s", path)

	collector := stats.NewCollector()
	var cleaned, tagged []string

	for raw, err := range extract.File(path) {
		if err != nil {
			return res, fmt.Errorf("extract %s: %w", path, err)
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}

		text := a.cleaner.Clean(raw)
		cleaned = append(cleaned, text)

		tokens, err := a.tagger.Tag(text)
		if err != nil {
			return res, fmt.Errorf("tag review %d of %s: %w", len(cleaned), path, err)
		}
		collector.Process(tokens)
		tagged = append(tagged, tagger.Format(tokens, a.pairSep, a.tokenSep))

		if a.progressEvery > 0 && len(cleaned)%a.progressEvery == 0 {
			a.logger.Printf("Tagged %d reviews...", len(cleaned))
		}
	}

	res.Stats = collector.Snapshot()
	res.CleanPath, res.TaggedPath = OutputPaths(path)

	if err := writeEntries(res.CleanPath, cleaned); err != nil {
		return res, err
	}
	if err := writeEntries(res.TaggedPath, tagged); err != nil {
		return res, err
	}

	LogReport(a.logger, res.Stats)

	if res.Stats.Empty() {
		return res, fmt.Errorf("%s: %w", path, internalerr.ErrEmptyCorpus)
	}
	return res, nil
}

// writeEntries overwrites path with the newline-joined entries.
func writeEntries(path string, entries []string) error {
	data := strings.Join(entries, entrySeparator)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// LogReport writes the human-readable statistics report.
func LogReport(logger *log.Logger, s stats.Stats) {
	logger.Printf("Number of reviews: %d", s.Reviews)
	logger.Printf("Number of words: %d", s.Words)
	logger.Printf("Maximum number of words per review: %d", s.MaxLen)
	logger.Printf("Minimum number of words per review: %d", s.MinLen)
	logger.Printf("Average number of words per review: %g", s.MeanLen)
	logger.Printf("Median number of words per review: %g", s.MedianLen)
	logger.Printf("Number of adjectives: %d", s.Adjectives)
	logger.Printf("Number of adverbs: %d", s.Adverbs)
	if s.Empty() {
		logger.Printf("Adjective and adverb ratios undefined: corpus has no words")
		return
	}
	logger.Printf("Total Adjectives ratio: %g", s.AdjRatio)
	logger.Printf("Total Adverbs ratio: %g", s.AdvRatio)
	logger.Printf("Total Adverbs + Adjectives ratio: %g", s.AdjAdvRatio)
}
