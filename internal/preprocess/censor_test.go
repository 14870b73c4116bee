package preprocess

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuiltInPatterns(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		text    string
		want    bool
	}{
		{
			name:    "IPv4 address",
			pattern: "ipv4",
			text:    "Connection from 192.168.1.1 to server",
			want:    true,
		},
		{
			name:    "ctime date",
			pattern: "ctime",
			text:    "check pass; Fri Jun 17 20:55:07 2005 user unknown",
			want:    true,
		},
		{
			name:    "HDFS block id",
			pattern: "block_id",
			text:    "Receiving block blk_-1608999687919862906 src",
			want:    true,
		},
		{
			name:    "Proxifier duration",
			pattern: "duration",
			text:    "close, 0 bytes sent, lifetime <1 sec",
			want:    true,
		},
		{
			name:    "HPC assignment",
			pattern: "assign",
			text:    "boot (command 2365) Error: Unable to allocate, pid=1024",
			want:    true,
		},
		{
			name:    "No clock time",
			pattern: "clock",
			text:    "This is a normal log message",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pattern, ok := BuiltInPatterns[tt.pattern]
			if !ok {
				t.Fatalf("Pattern %s not found", tt.pattern)
			}

			got := pattern.Regex.MatchString(tt.text)
			if got != tt.want {
				t.Errorf("MatchString() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetPatterns(t *testing.T) {
	patterns := GetPatterns([]string{"ctime", "ipv4", "nonexistent"})
	if assert.Len(t, patterns, 2) {
		assert.Equal(t, "ctime", patterns[0].Name)
		assert.Equal(t, "ipv4", patterns[1].Name)
	}
}

func TestCensorLinux(t *testing.T) {
	censor := NewCensor(GetPatterns([]string{"ipv4", "ctime", "clock"}))

	line := "q2.34.4.5 Jun 14 15:16:02 combo sshd(pam_unix)[19937]: check pass; Fri Jun 17 20:55:07 2005 user unknown"
	got, count := censor.ApplyAndCount(line)

	assert.Equal(t, " q<*> Jun 14 <*> combo sshd(pam_unix)[19937]: check pass; <*> user unknown", got)
	assert.Equal(t, 3, count)
}

func TestCensorEmptyList(t *testing.T) {
	censor := NewCensor(nil)

	assert.Equal(t, " a b  c", censor.Apply("a b  c"))
	assert.Equal(t, 0, censor.Len())
}

func TestCensorOrderMatters(t *testing.T) {
	full := regexp.MustCompile(`\d{2}:\d{2}:\d{2}`)
	partial := regexp.MustCompile(`\d{2}:\d{2}`)

	fullFirst := NewCensorFromRegexps(full, partial)
	partialFirst := NewCensorFromRegexps(partial, full)

	assert.Equal(t, " at <*>", fullFirst.Apply("at 20:55:07"))
	assert.Equal(t, " at <*>:07", partialFirst.Apply("at 20:55:07"))
}

func TestCensorSpark(t *testing.T) {
	censor := NewCensor(GetPatterns([]string{"ipv4", "byte_unit", "dotted_name"}))

	got := censor.Apply("Block broadcast_0 stored as values in memory (estimated size 384.0 B, free 317.5 KB)")
	assert.Equal(t, " Block broadcast_0 stored as values in memory (estimated size 384.0 <*>, free 317.5 <*>)", got)

	got = censor.Apply("Registered executor on spark.worker.node:4040")
	assert.Equal(t, " Registered executor on <*>:4040", got)
}

func TestCensorPatterns(t *testing.T) {
	censor := NewCensor(GetPatterns([]string{"assign"}))
	assert.Equal(t, []string{`=\d+`}, censor.Patterns())
}
