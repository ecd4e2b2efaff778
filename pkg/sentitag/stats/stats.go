// Package stats accumulates token and review-length statistics for a corpus.
package stats

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cognicore/sentitag/pkg/sentitag/tagger"
)

// Collector aggregates per-review tag counts.
type Collector struct {
	reviews    int64
	words      int64
	adjectives int64
	adverbs    int64
	lengths    []float64
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Process consumes the tagged tokens of one review.
func (c *Collector) Process(tokens []tagger.Token) {
	c.reviews++
	c.words += int64(len(tokens))
	c.lengths = append(c.lengths, float64(len(tokens)))

	for _, tok := range tokens {
		switch tok.Tag {
		case tagger.ADJ:
			c.adjectives++
		case tagger.ADV:
			c.adverbs++
		}
	}
}

// Stats summarizes a corpus.
type Stats struct {
	Reviews    int64
	Words      int64
	Adjectives int64
	Adverbs    int64

	// Review length distribution, in tokens. All zero for an empty corpus.
	MaxLen    int
	MinLen    int
	MeanLen   float64
	MedianLen float64

	// Ratios over Words. Zero when Words is zero.
	AdjRatio    float64
	AdvRatio    float64
	AdjAdvRatio float64
}

// Empty reports whether the corpus had no tokens at all, in which case the
// ratios are undefined.
func (s Stats) Empty() bool {
	return s.Words == 0
}

// Snapshot computes the statistics over everything processed so far.
func (c *Collector) Snapshot() Stats {
	s := Stats{
		Reviews:    c.reviews,
		Words:      c.words,
		Adjectives: c.adjectives,
		Adverbs:    c.adverbs,
	}

	if len(c.lengths) > 0 {
		s.MaxLen = int(floats.Max(c.lengths))
		s.MinLen = int(floats.Min(c.lengths))
		s.MeanLen = stat.Mean(c.lengths, nil)
		s.MedianLen = Median(c.lengths)
	}

	if c.words > 0 {
		total := float64(c.words)
		s.AdjRatio = float64(c.adjectives) / total
		s.AdvRatio = float64(c.adverbs) / total
		s.AdjAdvRatio = float64(c.adjectives+c.adverbs) / total
	}

	return s
}

// Median returns the middle value of x, averaging the two middle values when
// len(x) is even. x is not modified. Returns 0 for an empty slice.
func Median(x []float64) float64 {
	n := len(x)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, x)
	sort.Float64s(sorted)

	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
