package ngram

import (
	"context"

	"github.com/puzpuzpuz/xsync/v3"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ctxCheckInterval is how many lines a worker sweeps between context checks.
const ctxCheckInterval = 1024

// tally accumulates n-gram occurrences.
type tally interface {
	inc(key string)
}

// localTally is owned by a single worker.
type localTally Dict

func (t localTally) inc(key string) {
	t[key]++
}

// sharedTally is incremented by all workers at once.
type sharedTally struct {
	m *xsync.MapOf[string, int]
}

func newSharedTally() sharedTally {
	return sharedTally{m: xsync.NewMapOf[string, int]()}
}

func (t sharedTally) inc(key string) {
	t.m.Compute(key, func(old int, _ bool) (int, bool) {
		return old + 1, false
	})
}

func (t sharedTally) snapshot() Dict {
	d := make(Dict, t.m.Size())
	t.m.Range(func(key string, count int) bool {
		d[key] = count
		return true
	})
	return d
}

// worker sweeps the owned lines of one chunk in order.
type worker struct {
	tok      Tokenizer
	bigrams  tally
	trigrams tally
	seen     *orderedmap.OrderedMap[string, struct{}]
	empty    int
}

func newWorker(tok Tokenizer, bigrams, trigrams tally) *worker {
	return &worker{
		tok:      tok,
		bigrams:  bigrams,
		trigrams: trigrams,
		seen:     orderedmap.New[string, struct{}](),
	}
}

// run counts every n-gram of the chunk's owned lines.
//
// Each line is counted together with the last two tokens of the line before
// it and the first two tokens of the line after it, so n-grams crossing a
// line break are seen as in one sequential pass over the file. A line with
// no tokens breaks that chain: neither neighbour sees across it.
func (w *worker) run(ctx context.Context, c Chunk) error {
	var prev []string
	if c.HasLead {
		prev = tail(w.tok.Tokenize(c.Lead), 2)
	}

	var cur []string
	if len(c.Lines) > 0 {
		cur = w.tok.Tokenize(c.Lines[0])
	}

	for i := range c.Lines {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		var next []string
		switch {
		case i+1 < len(c.Lines):
			next = w.tok.Tokenize(c.Lines[i+1])
		case c.HasTrail:
			next = w.tok.Tokenize(c.Trail)
		}

		if len(cur) == 0 {
			w.empty++
			prev = nil
		} else {
			w.count(prev, cur, next)
			w.remember(cur)
			prev = tail(cur, 2)
		}
		cur = next
	}

	return nil
}

func (w *worker) count(prev, cur, next []string) {
	window := make([]string, 0, len(cur)+4)

	window = append(window, tail(prev, 1)...)
	window = append(window, cur...)
	window = append(window, head(next, 1)...)
	for i := 0; i+2 <= len(window); i++ {
		w.bigrams.inc(Key(window[i : i+2]...))
	}

	window = window[:0]
	window = append(window, tail(prev, 2)...)
	window = append(window, cur...)
	window = append(window, head(next, 2)...)
	for i := 0; i+3 <= len(window); i++ {
		w.trigrams.inc(Key(window[i : i+3]...))
	}
}

func (w *worker) remember(tokens []string) {
	for _, t := range tokens {
		if _, ok := w.seen.Get(t); !ok {
			w.seen.Set(t, struct{}{})
		}
	}
}

// tokens returns the distinct tokens in first-seen order.
func (w *worker) tokens() []string {
	out := make([]string, 0, w.seen.Len())
	for pair := w.seen.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

func head(tokens []string, n int) []string {
	if len(tokens) < n {
		return tokens
	}
	return tokens[:n]
}

func tail(tokens []string, n int) []string {
	if len(tokens) < n {
		return tokens
	}
	return tokens[len(tokens)-n:]
}
