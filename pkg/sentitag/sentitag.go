// Package sentitag drives the review tagging pipeline over every configured
// domain and corpus file, recording one report per file.
package sentitag

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"log"

	"github.com/oklog/ulid/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cognicore/sentitag/pkg/sentitag/config"
	"github.com/cognicore/sentitag/pkg/sentitag/corpus"
	"github.com/cognicore/sentitag/pkg/sentitag/internalerr"
	"github.com/cognicore/sentitag/pkg/sentitag/store"
)

// Processor tags a single corpus file. *corpus.Aggregator implements it.
type Processor interface {
	Process(ctx context.Context, path string) (corpus.Result, error)
}

// Options configures a Driver
type Options struct {
	Config    *config.Config
	Processor Processor
	Store     store.Store // optional; reports are only logged when nil
	Logger    *log.Logger
}

// Driver walks the configured domains and files and tags each one.
type Driver struct {
	cfg     *config.Config
	proc    Processor
	store   store.Store
	logger  *log.Logger
	entropy *ulid.MonotonicEntropy
	title   cases.Caser
}

// New creates a Driver with the given dependencies
func New(opts Options) (*Driver, error) {
	if opts.Config == nil || opts.Processor == nil {
		return nil, fmt.Errorf("%w: driver needs a config and a processor", internalerr.ErrInvalidConfig)
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &Driver{
		cfg:     opts.Config,
		proc:    opts.Processor,
		store:   opts.Store,
		logger:  logger,
		entropy: ulid.Monotonic(rand.Reader, 0),
		title:   cases.Title(language.English),
	}, nil
}

// Summary describes one run over the corpus.
type Summary struct {
	RunID     string
	Processed int
	Failed    int
	Reports   []store.Report
}

// Run processes every (domain, file) pair in configuration order.
//
// A file that fails is logged and recorded. With ContinueOnError the run moves
// on to the next file; otherwise Run stops and returns the failure.
func (d *Driver) Run(ctx context.Context) (Summary, error) {
	sum := Summary{RunID: ulid.MustNew(ulid.Now(), d.entropy).String()}

	for _, domain := range d.cfg.Domains {
		d.logger.Printf("%s Dataset", d.title.String(domain))

		for _, file := range d.cfg.FilesFor(domain) {
			if err := ctx.Err(); err != nil {
				return sum, err
			}

			path := d.cfg.Path(domain, file)
			res, err := d.proc.Process(ctx, path)

			report := store.Report{
				RunID:      sum.RunID,
				Domain:     domain,
				Path:       path,
				CleanPath:  res.CleanPath,
				TaggedPath: res.TaggedPath,
				Stats:      res.Stats,
			}
			sum.Processed++
			if err != nil {
				report.Err = err.Error()
				sum.Failed++
				d.logger.Printf("Failed to tag %s: %v", path, err)
			}
			d.record(ctx, &report)
			sum.Reports = append(sum.Reports, report)

			if err != nil && !d.cfg.ContinueOnError {
				return sum, fmt.Errorf("process %s: %w", path, err)
			}
		}
	}

	d.logger.Printf("Run %s: processed %d files, %d failed", sum.RunID, sum.Processed, sum.Failed)
	return sum, nil
}

// record persists a report. Store failures are logged and do not abort the run.
func (d *Driver) record(ctx context.Context, r *store.Report) {
	if d.store == nil {
		return
	}
	id, err := d.store.SaveReport(ctx, *r)
	if err != nil {
		d.logger.Printf("WARNING: failed to store report for %s: %v", r.Path, err)
		return
	}
	r.ID = id
}
