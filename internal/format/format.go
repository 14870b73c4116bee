// Package format is the registry of supported log sources.
//
// Each Format carries a line template and an ordered list of censoring
// patterns. Both are fixed data: the registry never learns or changes them.
package format

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bimmerbailey/logmine/internal/preprocess"
)

// ErrUnknownFormat is returned when a format name is not in the registry.
var ErrUnknownFormat = errors.New("unknown log format")

// Format identifies one of the supported log sources.
type Format int

const (
	Linux Format = iota
	OpenStack
	Spark
	HDFS
	HPC
	Proxifier
	Android
	HealthApp
)

type entry struct {
	name     string
	template string
	censors  []string
}

// Templates use <FieldName> placeholders; everything else is regexp text.
// Runs of spaces between fields match any amount of whitespace.
var registry = map[Format]entry{
	Linux: {
		name:     "linux",
		template: `<Month> <Date> <Time> <Level> <Component>(\[<PID>\])?: <Content>`,
		censors:  []string{"ipv4", "ctime", "clock"},
	},
	OpenStack: {
		name:     "openstack",
		template: `<Logrecord> <Date> <Time> <Pid> <Level> <Component> \[<ADDR>\] <Content>`,
		censors:  []string{"ipv4_list", "url_path"},
	},
	Spark: {
		name:     "spark",
		template: `<Date> <Time> <Level> <Component>: <Content>`,
		censors:  []string{"ipv4", "byte_unit", "dotted_name"},
	},
	HDFS: {
		name:     "hdfs",
		template: `<Date> <Time> <Pid> <Level> <Component>: <Content>`,
		censors:  []string{"block_id", "hdfs_addr"},
	},
	HPC: {
		name:     "hpc",
		template: `<LogId> <Node> <Component> <State> <Time> <Flag> <Content>`,
		censors:  []string{"assign"},
	},
	Proxifier: {
		name:     "proxifier",
		template: `\[<Time>\] <Program> - <Content>`,
		censors:  []string{"duration", "host_port", "short_clock", "byte_suffix"},
	},
	Android: {
		name:     "android",
		template: `<Date> <Time>  <Pid>  <Tid> <Level> <Component>: <Content>`,
		censors:  []string{"fs_path", "dotted_name", "number"},
	},
	HealthApp: {
		name:     "healthapp",
		template: `<Time>\|<Component>\|<Pid>\|<Content>`,
	},
}

// All returns every registered format in declaration order.
func All() []Format {
	return []Format{Linux, OpenStack, Spark, HDFS, HPC, Proxifier, Android, HealthApp}
}

// Parse converts a format name to a Format. Matching is case-insensitive.
func Parse(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, f := range All() {
		if registry[f].name == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// String returns the canonical lowercase name of the format.
func (f Format) String() string {
	if e, ok := registry[f]; ok {
		return e.name
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// Template returns the line template.
func (f Format) Template() string {
	return registry[f].template
}

// CensorNames returns the names of the censoring patterns, in order.
func (f Format) CensorNames() []string {
	return append([]string(nil), registry[f].censors...)
}

// Censors returns the ordered censoring patterns. The list may be empty.
func (f Format) Censors() []preprocess.CensorPattern {
	return preprocess.GetPatterns(registry[f].censors)
}

// Censor returns a Censor applying the format's patterns.
func (f Format) Censor() *preprocess.Censor {
	return preprocess.NewCensor(f.Censors())
}
