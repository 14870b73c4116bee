package ngram

// Chunk is the contiguous range of lines owned by one worker.
//
// Lead is the last line of the preceding chunk and Trail the first line of
// the following one. They only provide boundary context and are never
// counted themselves.
type Chunk struct {
	Index int
	Start int
	Lines []string

	Lead     string
	HasLead  bool
	Trail    string
	HasTrail bool
}

// End returns the index one past the last owned line.
func (c Chunk) End() int {
	return c.Start + len(c.Lines)
}

// Partition splits lines into exactly workers chunks.
//
// Every chunk owns len(lines)/workers lines except the last, which also
// takes the remainder. When workers exceeds the line count the leading
// chunks own nothing and the last chunk owns everything. The layout depends
// only on the line count and workers. workers below 1 is treated as 1.
func Partition(lines []string, workers int) []Chunk {
	if workers < 1 {
		workers = 1
	}

	n := len(lines)
	size := n / workers
	chunks := make([]Chunk, workers)

	for i := range chunks {
		start := i * size
		end := start + size
		if i == workers-1 {
			end = n
		}

		c := Chunk{Index: i, Start: start, Lines: lines[start:end]}
		if len(c.Lines) > 0 {
			if start > 0 {
				c.Lead, c.HasLead = lines[start-1], true
			}
			if end < n {
				c.Trail, c.HasTrail = lines[end], true
			}
		}
		chunks[i] = c
	}

	return chunks
}
