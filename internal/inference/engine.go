// Package inference classifies the tokens of a sample log line as dynamic
// (template variables) or fixed, using the bigram and trigram frequencies
// of the corpus the line came from.
//
// A token is dynamic when the bigrams on both of its sides are rare in the
// corpus. Rare bigrams are only looked for inside rare trigrams, so a token
// needs two rare neighbours that were also seen together rarely.
package inference

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/bimmerbailey/logmine/internal/ngram"
)

// DefaultCutoff is the rarity threshold used when none is configured.
const DefaultCutoff = 3

var (
	// ErrInconsistentDictionary is returned when a bigram derived from a
	// known trigram is missing from the bigram dictionary. It means the
	// sample and the dictionaries come from different corpora or formats.
	ErrInconsistentDictionary = errors.New("bigram missing from dictionary")

	// ErrMalformedKey is returned for a trigram key without three tokens.
	ErrMalformedKey = errors.New("malformed trigram key")
)

// Token is a token of the classified sequence with its position.
type Token struct {
	Position int    `json:"position" yaml:"position"`
	Value    string `json:"value" yaml:"value"`
}

// Classification is the outcome of classifying one token sequence.
type Classification struct {
	// Tokens is the classified sequence, context included.
	Tokens []string `json:"tokens" yaml:"tokens"`
	// UncommonTrigrams lists the rare trigrams in window order.
	UncommonTrigrams []string `json:"uncommon_trigrams" yaml:"uncommon_trigrams"`
	// UncommonBigrams lists the rare bigrams in the order they were derived.
	UncommonBigrams []string `json:"uncommon_bigrams" yaml:"uncommon_bigrams"`
	// Dynamic lists the dynamic tokens in position order.
	Dynamic []Token `json:"dynamic" yaml:"dynamic"`
}

// DynamicTokens returns the values of the dynamic tokens in position order.
func (c *Classification) DynamicTokens() []string {
	out := make([]string, len(c.Dynamic))
	for i, t := range c.Dynamic {
		out[i] = t.Value
	}
	return out
}

// Positions returns the positions of the dynamic tokens.
func (c *Classification) Positions() []int {
	out := make([]int, len(c.Dynamic))
	for i, t := range c.Dynamic {
		out[i] = t.Position
	}
	return out
}

// Engine classifies tokens against a pair of frequency dictionaries. It
// only reads the dictionaries and is safe for concurrent use.
type Engine struct {
	bigrams  ngram.Dict
	trigrams ngram.Dict
	cutoff   int
	log      hclog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(log hclog.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// New creates an Engine. N-grams seen fewer than cutoff times are rare.
func New(bigrams, trigrams ngram.Dict, cutoff int, opts ...Option) *Engine {
	e := &Engine{
		bigrams:  bigrams,
		trigrams: trigrams,
		cutoff:   cutoff,
		log:      hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Cutoff returns the rarity threshold.
func (e *Engine) Cutoff() int {
	return e.cutoff
}

// Classify finds the dynamic tokens of tokens. The first and last tokens
// are never classified since they are never the center of a window.
func (e *Engine) Classify(tokens []string) (*Classification, error) {
	res := &Classification{
		Tokens:           tokens,
		UncommonTrigrams: []string{},
		UncommonBigrams:  []string{},
		Dynamic:          []Token{},
	}

	// Trigrams missing from the dictionary were never seen and say nothing
	// about rarity.
	seen := make(map[string]bool)
	for i := 0; i+3 <= len(tokens); i++ {
		key := ngram.Key(tokens[i : i+3]...)
		if count, ok := e.trigrams.Count(key); ok && count < e.cutoff && !seen[key] {
			seen[key] = true
			res.UncommonTrigrams = append(res.UncommonTrigrams, key)
		}
	}

	candidates := orderedmap.New[string, struct{}]()
	for _, key := range res.UncommonTrigrams {
		pair, err := DeriveBigrams(key)
		if err != nil {
			return nil, err
		}
		for _, bigram := range pair {
			candidates.Set(bigram, struct{}{})
		}
	}

	uncommon := make(map[string]bool, candidates.Len())
	for pair := candidates.Oldest(); pair != nil; pair = pair.Next() {
		count, ok := e.bigrams.Count(pair.Key)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInconsistentDictionary, pair.Key)
		}
		e.log.Trace("candidate bigram", "key", pair.Key, "count", count)
		if count < e.cutoff {
			uncommon[pair.Key] = true
			res.UncommonBigrams = append(res.UncommonBigrams, pair.Key)
		}
	}

	for i := 1; i+1 < len(tokens); i++ {
		left := ngram.Key(tokens[i-1], tokens[i])
		right := ngram.Key(tokens[i], tokens[i+1])
		if uncommon[left] && uncommon[right] {
			res.Dynamic = append(res.Dynamic, Token{Position: i, Value: tokens[i]})
		}
	}

	e.log.Debug("classified sample",
		"tokens", len(tokens),
		"uncommon_trigrams", len(res.UncommonTrigrams),
		"uncommon_bigrams", len(res.UncommonBigrams),
		"dynamic", len(res.Dynamic))

	return res, nil
}

// DeriveBigrams returns the two bigrams overlapping inside a trigram key.
func DeriveBigrams(trigram string) ([]string, error) {
	t := ngram.Split(trigram)
	if len(t) != 3 {
		return nil, fmt.Errorf("%w: %q has %d tokens", ErrMalformedKey, trigram, len(t))
	}
	return []string{ngram.Key(t[0], t[1]), ngram.Key(t[1], t[2])}, nil
}
