package ngram

import (
	"strings"
)

// Separator joins the tokens of an n-gram key. Censored log tokens never
// contain it in the supported formats.
const Separator = "^"

// Key joins tokens into an n-gram key.
func Key(tokens ...string) string {
	return strings.Join(tokens, Separator)
}

// Split splits an n-gram key back into its tokens.
func Split(key string) []string {
	return strings.Split(key, Separator)
}

// Dict maps n-gram keys to occurrence counts.
type Dict map[string]int

// Merge adds every count of other into d.
func (d Dict) Merge(other Dict) {
	for k, v := range other {
		d[k] += v
	}
}

// Count returns the count for key and whether the key is present.
func (d Dict) Count(key string) (int, bool) {
	v, ok := d[key]
	return v, ok
}

// Total returns the sum of all counts.
func (d Dict) Total() int {
	total := 0
	for _, v := range d {
		total += v
	}
	return total
}
