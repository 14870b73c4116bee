package inference

import (
	"strings"

	"github.com/bimmerbailey/logmine/internal/ngram"
)

// contextTokens is how many tokens a neighbouring line contributes.
const contextTokens = 2

// Side says which side of the sample line a Context sits on.
type Side int

const (
	Before Side = iota
	After
)

func (s Side) String() string {
	if s == After {
		return "after"
	}
	return "before"
}

type contextKind int

const (
	noContext contextKind = iota
	literalContext
	lineContext
)

// Context is the text surrounding a sample line. It is either a literal
// list of whitespace separated tokens or a full neighbouring log line that
// is tokenized like any other. The zero value is no context.
type Context struct {
	kind contextKind
	text string
}

// Literal returns a Context made of the whitespace separated tokens of s.
func Literal(s string) Context {
	return Context{kind: literalContext, text: s}
}

// FromLine returns a Context taken from a full neighbouring log line.
func FromLine(line string) Context {
	return Context{kind: lineContext, text: line}
}

// Choose picks the context for one side from its two flag values. A full
// line wins over literal tokens; both empty means no context.
func Choose(literal, line string) Context {
	switch {
	case line != "":
		return FromLine(line)
	case literal != "":
		return Literal(literal)
	default:
		return Context{}
	}
}

// IsZero reports whether c carries no context.
func (c Context) IsZero() bool {
	return c.kind == noContext
}

// String describes the context for logs and reports.
func (c Context) String() string {
	switch c.kind {
	case literalContext:
		return "literal " + c.text
	case lineContext:
		return "line " + c.text
	default:
		return "none"
	}
}

// Resolve turns c into tokens. A line before the sample gives its last two
// tokens, a line after it gives its first two; shorter lines give what they
// have and lines the tokenizer rejects give nothing.
func (c Context) Resolve(tok ngram.Tokenizer, side Side) []string {
	switch c.kind {
	case literalContext:
		return strings.Fields(c.text)
	case lineContext:
		tokens := tok.Tokenize(c.text)
		if len(tokens) <= contextTokens {
			return tokens
		}
		if side == Before {
			return tokens[len(tokens)-contextTokens:]
		}
		return tokens[:contextTokens]
	default:
		return nil
	}
}

// Extend joins the context tokens and the sample tokens into the sequence
// that gets classified.
func Extend(before, sample, after []string) []string {
	out := make([]string, 0, len(before)+len(sample)+len(after))
	out = append(out, before...)
	out = append(out, sample...)
	out = append(out, after...)
	return out
}
