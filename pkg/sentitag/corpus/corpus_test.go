package corpus

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cognicore/sentitag/pkg/sentitag/clean"
	"github.com/cognicore/sentitag/pkg/sentitag/internalerr"
	"github.com/cognicore/sentitag/pkg/sentitag/tagger"
)

// lexiconTagger splits on whitespace and tags from a fixed word list.
func lexiconTagger(lex map[string]tagger.POS) tagger.Tagger {
	return tagger.Func(func(text string) ([]tagger.Token, error) {
		var tokens []tagger.Token
		for _, w := range strings.Fields(text) {
			tag, ok := lex[strings.ToLower(w)]
			if !ok {
				tag = tagger.NOUN
			}
			tokens = append(tokens, tagger.Token{Text: w, Tag: tag})
		}
		return tokens, nil
	})
}

var testLexicon = map[string]tagger.POS{
	"the":    tagger.DET,
	"a":      tagger.DET,
	"quick":  tagger.ADJ,
	"great":  tagger.ADJ,
	"bad":    tagger.ADJ,
	"runs":   tagger.VERB,
	"is":     tagger.AUX,
	"really": tagger.ADV,
	"very":   tagger.ADV,
}

func newTestAggregator(t *testing.T, buf *bytes.Buffer) *Aggregator {
	t.Helper()
	var logger *log.Logger
	if buf != nil {
		logger = log.New(buf, "", 0)
	}
	agg, err := New(Options{
		Tagger:  lexiconTagger(testLexicon),
		Cleaner: clean.New(DefaultPairSeparator, DefaultTokenSeparator),
		Logger:  logger,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return agg
}

func writeCorpus(t *testing.T, name string, reviews ...string) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("<reviews>\n")
	for _, r := range reviews {
		fmt.Fprintf(&b, "<review>%s</review>\n", r)
	}
	b.WriteString("</reviews>\n")

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return strings.Split(string(data), "\n")
}

func TestProcessSingleReview(t *testing.T) {
	agg := newTestAggregator(t, nil)
	path := writeCorpus(t, "positive.parsed", "The quick fox runs")

	res, err := agg.Process(context.Background(), path)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if res.Stats.Words != 4 || res.Stats.Adjectives != 1 || res.Stats.Adverbs != 0 {
		t.Errorf("Unexpected stats: %+v", res.Stats)
	}
	if res.Stats.MaxLen != 4 {
		t.Errorf("Expected review length 4, got %d", res.Stats.MaxLen)
	}

	tagged := readLines(t, res.TaggedPath)
	if len(tagged) != 1 || tagged[0] != "The_DET quick_ADJ fox_NOUN runs_VERB" {
		t.Errorf("Unexpected tagged output %q", tagged)
	}
	cleaned := readLines(t, res.CleanPath)
	if len(cleaned) != 1 || cleaned[0] != "The quick fox runs" {
		t.Errorf("Unexpected clean output %q", cleaned)
	}
}

func TestProcessPreservesOrderAndCount(t *testing.T) {
	agg := newTestAggregator(t, nil)
	reviews := []string{
		"A great  book",
		"really bad&lt;br /&gt;plot",
		"the end",
		"is very great",
	}
	path := writeCorpus(t, "booksUN.txt", reviews...)

	res, err := agg.Process(context.Background(), path)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if res.CleanPath != strings.TrimSuffix(path, ".txt")+"_clean.txt" {
		t.Errorf("Unexpected clean path %s", res.CleanPath)
	}
	if res.TaggedPath != strings.TrimSuffix(path, ".txt")+"_tagged.txt" {
		t.Errorf("Unexpected tagged path %s", res.TaggedPath)
	}

	cleaned := readLines(t, res.CleanPath)
	tagged := readLines(t, res.TaggedPath)
	if len(cleaned) != len(reviews) || len(tagged) != len(reviews) {
		t.Fatalf("Expected %d entries, got clean=%d tagged=%d", len(reviews), len(cleaned), len(tagged))
	}

	expectedClean := []string{"A great book", "really bad plot", "the end", "is very great"}
	expectedTagged := []string{
		"A_DET great_ADJ book_NOUN",
		"really_ADV bad_ADJ plot_NOUN",
		"the_DET end_NOUN",
		"is_AUX very_ADV great_ADJ",
	}
	for i := range reviews {
		if cleaned[i] != expectedClean[i] {
			t.Errorf("clean[%d] = %q, want %q", i, cleaned[i], expectedClean[i])
		}
		if tagged[i] != expectedTagged[i] {
			t.Errorf("tagged[%d] = %q, want %q", i, tagged[i], expectedTagged[i])
		}
	}

	s := res.Stats
	if s.Reviews != 4 || s.Words != 11 {
		t.Errorf("Expected 4 reviews / 11 words, got %d / %d", s.Reviews, s.Words)
	}
	if s.Adjectives != 3 || s.Adverbs != 2 {
		t.Errorf("Expected 3 adjectives / 2 adverbs, got %d / %d", s.Adjectives, s.Adverbs)
	}
	if s.MaxLen != 3 || s.MinLen != 2 || s.MedianLen != 3 {
		t.Errorf("Unexpected length distribution: %+v", s)
	}
	if s.AdjAdvRatio < 0 || s.AdjAdvRatio > 1 {
		t.Errorf("Ratio out of range: %f", s.AdjAdvRatio)
	}
}

func TestProcessIdempotent(t *testing.T) {
	agg := newTestAggregator(t, nil)
	path := writeCorpus(t, "negative.parsed", "bad bad product", "the quick one", "very very bad")

	res1, err := agg.Process(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	clean1, _ := os.ReadFile(res1.CleanPath)
	tagged1, _ := os.ReadFile(res1.TaggedPath)

	res2, err := agg.Process(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	clean2, _ := os.ReadFile(res2.CleanPath)
	tagged2, _ := os.ReadFile(res2.TaggedPath)

	if !bytes.Equal(clean1, clean2) || !bytes.Equal(tagged1, tagged2) {
		t.Error("Second run produced different artifacts")
	}
	if res1.Stats != res2.Stats {
		t.Errorf("Stats differ between runs: %+v vs %+v", res1.Stats, res2.Stats)
	}
}

func TestProcessNoReviews(t *testing.T) {
	agg := newTestAggregator(t, nil)
	path := writeCorpus(t, "empty.parsed")

	res, err := agg.Process(context.Background(), path)
	if !errors.Is(err, internalerr.ErrEmptyCorpus) {
		t.Fatalf("Expected ErrEmptyCorpus, got %v", err)
	}

	for _, p := range []string{res.CleanPath, res.TaggedPath} {
		data, readErr := os.ReadFile(p)
		if readErr != nil {
			t.Fatalf("artifact %s should exist: %v", p, readErr)
		}
		if len(data) != 0 {
			t.Errorf("artifact %s should be empty, got %q", p, data)
		}
	}
	if res.Stats.Reviews != 0 || res.Stats.AdjRatio != 0 {
		t.Errorf("Unexpected stats for empty corpus: %+v", res.Stats)
	}
}

func TestProcessMissingFile(t *testing.T) {
	agg := newTestAggregator(t, nil)
	path := filepath.Join(t.TempDir(), "missing.txt")

	_, err := agg.Process(context.Background(), path)
	if !errors.Is(err, internalerr.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}

	cleanPath, taggedPath := OutputPaths(path)
	for _, p := range []string{cleanPath, taggedPath} {
		if _, statErr := os.Stat(p); !os.IsNotExist(statErr) {
			t.Errorf("%s should not be written on failure", p)
		}
	}
}

func TestProcessMalformedWritesNothing(t *testing.T) {
	agg := newTestAggregator(t, nil)
	path := filepath.Join(t.TempDir(), "positive.parsed")
	doc := "<reviews><review>great</review><review>cut off"
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := agg.Process(context.Background(), path)
	if !errors.Is(err, internalerr.ErrParse) {
		t.Fatalf("Expected ErrParse, got %v", err)
	}

	cleanPath, _ := OutputPaths(path)
	if _, statErr := os.Stat(cleanPath); !os.IsNotExist(statErr) {
		t.Error("No partial artifact should be written for malformed XML")
	}
}

func TestProcessTaggerFailure(t *testing.T) {
	failing := tagger.Func(func(text string) ([]tagger.Token, error) {
		if strings.Contains(text, "boom") {
			return nil, fmt.Errorf("%w: cannot tag", internalerr.ErrTagger)
		}
		return []tagger.Token{{Text: text, Tag: tagger.X}}, nil
	})
	agg, err := New(Options{Tagger: failing, Cleaner: clean.New("_", " ")})
	if err != nil {
		t.Fatal(err)
	}
	path := writeCorpus(t, "positive.parsed", "fine", "boom", "never reached")

	_, err = agg.Process(context.Background(), path)
	if !errors.Is(err, internalerr.ErrTagger) {
		t.Fatalf("Expected ErrTagger, got %v", err)
	}
	if !strings.Contains(err.Error(), "review 2") {
		t.Errorf("Error should name the failing review: %v", err)
	}
}

func TestProcessCancelled(t *testing.T) {
	agg := newTestAggregator(t, nil)
	path := writeCorpus(t, "positive.parsed", "one", "two")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := agg.Process(ctx, path); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestProcessLogsReport(t *testing.T) {
	var buf bytes.Buffer
	agg := newTestAggregator(t, &buf)
	path := writeCorpus(t, "positive.parsed", "really great", "bad")

	if _, err := agg.Process(context.Background(), path); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{
		"Tagging " + path,
		"Number of reviews: 2",
		"Number of words: 3",
		"Median number of words per review: 1.5",
		"Number of adjectives: 2",
		"Total Adverbs ratio: 0.333",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestProcessCustomSeparators(t *testing.T) {
	agg, err := New(Options{
		Tagger:         lexiconTagger(testLexicon),
		Cleaner:        clean.New("/", "\t"),
		PairSeparator:  "/",
		TokenSeparator: "\t",
	})
	if err != nil {
		t.Fatal(err)
	}
	path := writeCorpus(t, "positive.parsed", "great and/or bad")

	res, err := agg.Process(context.Background(), path)
	if err != nil {
		t.Fatal(err)
	}
	tagged := readLines(t, res.TaggedPath)
	if tagged[0] != "great/ADJ\tandor/NOUN\tbad/ADJ" {
		t.Errorf("Unexpected tagged line %q", tagged[0])
	}
}

func TestNewRequiresCollaborators(t *testing.T) {
	if _, err := New(Options{Cleaner: clean.New("_", " ")}); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig without tagger, got %v", err)
	}
	if _, err := New(Options{Tagger: lexiconTagger(nil)}); !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig without cleaner, got %v", err)
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		in, clean, tagged string
	}{
		{"/data/books/booksUN.txt", "/data/books/booksUN_clean.txt", "/data/books/booksUN_tagged.txt"},
		{"/data/books/negative.parsed", "/data/books/negative_clean.parsed", "/data/books/negative_tagged.parsed"},
		{"/data/x.txt/booksUN.txt", "/data/x.txt/booksUN_clean.txt", "/data/x.txt/booksUN_tagged.txt"},
		{"/data/a.txt.txt", "/data/a.txt_clean.txt", "/data/a.txt_tagged.txt"},
		{"/data/noext", "/data/noext_clean", "/data/noext_tagged"},
		{"/data/.reviews", "/data/.reviews_clean", "/data/.reviews_tagged"},
		{"relative.xml", "relative_clean.xml", "relative_tagged.xml"},
	}

	for _, tt := range tests {
		c, tg := OutputPaths(tt.in)
		if c != tt.clean || tg != tt.tagged {
			t.Errorf("OutputPaths(%q) = (%q, %q), want (%q, %q)", tt.in, c, tg, tt.clean, tt.tagged)
		}
	}
}
