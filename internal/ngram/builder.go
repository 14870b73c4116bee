// Package ngram builds corpus-wide bigram and trigram frequency
// dictionaries from the tokenized lines of a log file.
//
// Lines are partitioned into one chunk per worker. Chunks borrow a carry
// line from each neighbour so that n-grams crossing a chunk boundary are
// counted exactly as a single sequential sweep would count them: the result
// does not depend on the number of workers or on the merge strategy.
package ngram

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/sourcegraph/conc/iter"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is the worker count used when none is configured.
const DefaultWorkers = 8

// ErrInvalidWorkers is returned for a worker count below one.
var ErrInvalidWorkers = errors.New("worker count must be at least 1")

// Tokenizer splits a raw log line into tokens. Implementations must be safe
// for concurrent use.
type Tokenizer interface {
	Tokenize(line string) []string
}

// Strategy selects how worker counts are combined.
type Strategy int

const (
	// SharedMap has every worker increment one concurrent map.
	SharedMap Strategy = iota
	// LocalMerge gives every worker private maps that are summed once all
	// workers are done.
	LocalMerge
)

// StrategyFor maps the single_map setting to a Strategy.
func StrategyFor(singleMap bool) Strategy {
	if singleMap {
		return LocalMerge
	}
	return SharedMap
}

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case SharedMap:
		return "shared-map"
	case LocalMerge:
		return "local-merge"
	default:
		return fmt.Sprintf("strategy(%d)", int(s))
	}
}

// Result holds the dictionaries of one build.
type Result struct {
	Bigrams  Dict
	Trigrams Dict
	// Tokens lists distinct tokens per worker in first-seen order,
	// concatenated in chunk order. A token may repeat across workers.
	Tokens []string

	Lines    int
	Empty    int // lines that produced no tokens
	Workers  int
	Strategy Strategy
	Elapsed  time.Duration
}

// Builder builds frequency dictionaries.
type Builder struct {
	tok      Tokenizer
	workers  int
	strategy Strategy
	log      hclog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithWorkers sets the number of workers.
// Default is DefaultWorkers.
func WithWorkers(n int) Option {
	return func(b *Builder) {
		b.workers = n
	}
}

// WithStrategy sets the merge strategy.
// Default is SharedMap.
func WithStrategy(s Strategy) Option {
	return func(b *Builder) {
		b.strategy = s
	}
}

// WithLogger sets the logger.
func WithLogger(log hclog.Logger) Option {
	return func(b *Builder) {
		if log != nil {
			b.log = log
		}
	}
}

// New creates a Builder tokenizing lines with tok.
func New(tok Tokenizer, opts ...Option) *Builder {
	b := &Builder{
		tok:      tok,
		workers:  DefaultWorkers,
		strategy: SharedMap,
		log:      hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build is a convenience wrapper around New(...).Build.
func Build(ctx context.Context, lines []string, tok Tokenizer, workers int, strategy Strategy) (*Result, error) {
	return New(tok, WithWorkers(workers), WithStrategy(strategy)).Build(ctx, lines)
}

// Build counts every bigram and trigram of lines. It blocks until all
// workers are done.
func (b *Builder) Build(ctx context.Context, lines []string) (*Result, error) {
	if b.workers < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWorkers, b.workers)
	}

	start := time.Now()
	chunks := Partition(lines, b.workers)
	b.log.Debug("partitioned lines",
		"lines", len(lines),
		"workers", b.workers,
		"chunk_size", len(lines)/b.workers,
		"strategy", b.strategy.String())

	var (
		res *Result
		err error
	)
	switch b.strategy {
	case LocalMerge:
		res, err = b.buildLocal(ctx, chunks)
	case SharedMap:
		res, err = b.buildShared(ctx, chunks)
	default:
		return nil, fmt.Errorf("unknown strategy: %s", b.strategy)
	}
	if err != nil {
		return nil, err
	}

	res.Lines = len(lines)
	res.Workers = b.workers
	res.Strategy = b.strategy
	res.Elapsed = time.Since(start)

	b.log.Info("dictionaries built",
		"lines", res.Lines,
		"empty", res.Empty,
		"bigrams", len(res.Bigrams),
		"trigrams", len(res.Trigrams),
		"tokens", len(res.Tokens),
		"duration", res.Elapsed.String())

	return res, nil
}

type partial struct {
	bigrams  Dict
	trigrams Dict
	tokens   []string
	empty    int
}

// buildLocal gives each worker private dictionaries and sums them.
func (b *Builder) buildLocal(ctx context.Context, chunks []Chunk) (*Result, error) {
	mapper := iter.Mapper[Chunk, partial]{MaxGoroutines: b.workers}
	parts, err := mapper.MapErr(chunks, func(c *Chunk) (partial, error) {
		bigrams, trigrams := make(Dict), make(Dict)
		w := newWorker(b.tok, localTally(bigrams), localTally(trigrams))
		if err := w.run(ctx, *c); err != nil {
			return partial{}, err
		}
		b.logWorker(c, w)
		return partial{bigrams: bigrams, trigrams: trigrams, tokens: w.tokens(), empty: w.empty}, nil
	})
	if err != nil {
		return nil, err
	}

	res := &Result{Bigrams: make(Dict), Trigrams: make(Dict)}
	for _, p := range parts {
		res.Bigrams.Merge(p.bigrams)
		res.Trigrams.Merge(p.trigrams)
		res.Tokens = append(res.Tokens, p.tokens...)
		res.Empty += p.empty
	}
	return res, nil
}

// buildShared has every worker increment the same concurrent maps.
func (b *Builder) buildShared(ctx context.Context, chunks []Chunk) (*Result, error) {
	bigrams, trigrams := newSharedTally(), newSharedTally()
	tokens := make([][]string, len(chunks))
	empty := make([]int, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)
	for i := range chunks {
		c := &chunks[i]
		g.Go(func() error {
			w := newWorker(b.tok, bigrams, trigrams)
			if err := w.run(gctx, *c); err != nil {
				return err
			}
			b.logWorker(c, w)
			tokens[c.Index] = w.tokens()
			empty[c.Index] = w.empty
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{Bigrams: bigrams.snapshot(), Trigrams: trigrams.snapshot()}
	for i := range chunks {
		res.Tokens = append(res.Tokens, tokens[i]...)
		res.Empty += empty[i]
	}
	return res, nil
}

func (b *Builder) logWorker(c *Chunk, w *worker) {
	b.log.Debug("worker done",
		"chunk", c.Index,
		"start", c.Start,
		"lines", len(c.Lines),
		"empty", w.empty,
		"lead", c.HasLead,
		"trail", c.HasTrail)
}
