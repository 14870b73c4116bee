// Package analyzer summarizes n-gram frequency dictionaries for reporting,
// grouping keys by how often they were seen.
package analyzer

import (
	"sort"

	"github.com/bimmerbailey/logmine/internal/ngram"
)

// Bucket holds every key seen exactly Count times.
type Bucket struct {
	Count int      `json:"count" yaml:"count"`
	Keys  []string `json:"keys" yaml:"keys"`
}

// DictSummary describes one frequency dictionary.
type DictSummary struct {
	Name    string   `json:"name" yaml:"name"`
	Entries int      `json:"entries" yaml:"entries"`
	Total   int      `json:"total" yaml:"total"`
	Buckets []Bucket `json:"buckets" yaml:"buckets"`
}

// KeyCount pairs an n-gram key with its count.
type KeyCount struct {
	Key   string `json:"key" yaml:"key"`
	Count int    `json:"count" yaml:"count"`
}

// Invert groups the keys of d by count. Buckets are sorted by count
// ascending and keys are sorted within each bucket.
func Invert(d ngram.Dict) []Bucket {
	byCount := make(map[int][]string)
	for key, count := range d {
		byCount[count] = append(byCount[count], key)
	}

	buckets := make([]Bucket, 0, len(byCount))
	for count, keys := range byCount {
		sort.Strings(keys)
		buckets = append(buckets, Bucket{Count: count, Keys: keys})
	}

	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].Count < buckets[j].Count
	})

	return buckets
}

// Summarize builds the summary of dictionary d under name.
func Summarize(name string, d ngram.Dict) DictSummary {
	return DictSummary{
		Name:    name,
		Entries: len(d),
		Total:   d.Total(),
		Buckets: Invert(d),
	}
}

// Rarest returns the keys seen fewer than cutoff times, rarest first and
// alphabetically among equal counts.
func Rarest(d ngram.Dict, cutoff int) []KeyCount {
	var result []KeyCount
	for key, count := range d {
		if count < cutoff {
			result = append(result, KeyCount{Key: key, Count: count})
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count < result[j].Count
		}
		return result[i].Key < result[j].Key
	})

	return result
}
