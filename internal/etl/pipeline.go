// Package etl loads the Sparkify song and event-log datasets into the star
// schema, one file per transaction.
package etl

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
)

// DefaultPattern matches the dataset files.
const DefaultPattern = "*.json"

// LoadResult counts what a loader did with one file.
type LoadResult struct {
	Records  int // records decoded
	Plays    int // songplay rows inserted
	Resolved int // songplays matched to a known song
}

// Summary totals load results across files.
type Summary struct {
	Files int
	LoadResult
}

// Add folds one file's result into the summary.
func (s *Summary) Add(r LoadResult) {
	s.Files++
	s.Records += r.Records
	s.Plays += r.Plays
	s.Resolved += r.Resolved
}

// Loader loads one file through store.
type Loader func(ctx context.Context, store Store, path string) (LoadResult, error)

// Pipeline walks dataset directories and hands each file to a Loader.
type Pipeline struct {
	tx      Transactor
	log     logrus.FieldLogger
	pattern string
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger used for progress output.
func WithLogger(log logrus.FieldLogger) Option {
	return func(p *Pipeline) {
		p.log = log
	}
}

// WithPattern sets the file name glob used during discovery.
func WithPattern(pattern string) Option {
	return func(p *Pipeline) {
		if pattern != "" {
			p.pattern = pattern
		}
	}
}

// New creates a new pipeline.
func New(tx Transactor, opts ...Option) *Pipeline {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	p := &Pipeline{
		tx:      tx,
		log:     discard,
		pattern: DefaultPattern,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProcessData discovers the files under root and loads each with loader.
func (p *Pipeline) ProcessData(ctx context.Context, root string, loader Loader) (*Summary, error) {
	paths, err := DiscoverFiles(root, p.pattern)
	if err != nil {
		return nil, err
	}
	p.log.Infof("%d files found in %s", len(paths), root)
	return p.ProcessAll(ctx, paths, loader)
}
