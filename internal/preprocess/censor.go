package preprocess

import (
	"regexp"
)

// Placeholder replaces every censored substring.
const Placeholder = "<*>"

// Censor replaces substrings that are already known to vary (addresses,
// block ids, timestamps, sizes, durations) with Placeholder, so that template
// mining only has to discover the variability censoring cannot see.
//
// Patterns are applied in order, each to the output of the previous one, so
// order matters when patterns overlap. A Censor is immutable and safe for
// concurrent use.
type Censor struct {
	patterns []*regexp.Regexp
}

// NewCensor creates a Censor from the given patterns. A nil or empty list
// yields a Censor that only performs the leading-space normalization.
func NewCensor(patterns []CensorPattern) *Censor {
	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		res = append(res, p.Regex)
	}
	return &Censor{patterns: res}
}

// NewCensorFromRegexps creates a Censor from raw regexps.
func NewCensorFromRegexps(patterns ...*regexp.Regexp) *Censor {
	return &Censor{patterns: append([]*regexp.Regexp(nil), patterns...)}
}

// Apply censors text.
//
// A single space is prepended before any pattern runs, so patterns that
// expect a separator in front of the match also fire at the start of the
// payload.
//
//	" q2.34.4.5 check pass; Fri Jun 17 20:55:07 2005 user unknown"
//	→ " q<*> check pass; <*> user unknown"
func (c *Censor) Apply(text string) string {
	result, _ := c.ApplyAndCount(text)
	return result
}

// ApplyAndCount censors text and returns the number of substitutions made.
func (c *Censor) ApplyAndCount(text string) (string, int) {
	result := " " + text
	count := 0
	for _, re := range c.patterns {
		result = re.ReplaceAllStringFunc(result, func(string) string {
			count++
			return Placeholder
		})
	}
	return result, count
}

// Len returns the number of patterns.
func (c *Censor) Len() int {
	return len(c.patterns)
}

// Patterns returns the source text of every pattern, in application order.
func (c *Censor) Patterns() []string {
	out := make([]string, len(c.patterns))
	for i, re := range c.patterns {
		out[i] = re.String()
	}
	return out
}
