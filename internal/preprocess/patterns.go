package preprocess

import (
	"regexp"
)

// CensorPattern defines a substring class that is already known to vary
// between log lines and is replaced before tokenization.
type CensorPattern struct {
	Name        string
	Regex       *regexp.Regexp
	Description string
}

// Built-in censoring regexps. Several formats share a pattern, others carry
// their own variant because their logs render the same data differently.
var (
	// Dotted quads: 192.168.1.1, also matches inside longer tokens (q2.34.4.5)
	ipv4Regex = regexp.MustCompile(`(\d+\.){3}\d+`)

	// Comma separated IP lists as printed by OpenStack: 10.11.10.1,10.11.10.2
	ipv4ListRegex = regexp.MustCompile(`((\d+\.){3}\d+,?)+`)

	// HDFS addresses with optional leading slash and port: /10.250.19.102:54106
	hdfsAddrRegex = regexp.MustCompile(`(/|)([0-9]+\.){3}[0-9]+(:[0-9]+|)(:|)`)

	// HDFS block identifiers: blk_-1608999687919862906
	blockIDRegex = regexp.MustCompile(`blk_(|-)[0-9]+`)

	// Full ctime dates: Fri Jun 17 20:55:07 2005
	ctimeRegex = regexp.MustCompile(`\w{3} \w{3} \d{2} \d{2}:\d{2}:\d{2} \d{4}`)

	// Clock times: 20:55:07
	clockRegex = regexp.MustCompile(`\d{2}:\d{2}:\d{2}`)

	// Clock times with optional seconds: 00:01, 16:49:06
	shortClockRegex = regexp.MustCompile(`\d{2}:\d{2}(:\d{2})*`)

	// URL paths up to the next whitespace
	urlPathRegex = regexp.MustCompile(`/.+?\s`)

	// Byte size suffixes standing alone: 12 KB, B
	byteUnitRegex = regexp.MustCompile(`\b[KGTM]?B\b`)

	// Byte size suffixes anywhere: 1.23 MB
	byteSuffixRegex = regexp.MustCompile(`[KGTM]B`)

	// Dotted names with at least three parts: org.apache.spark.SparkEnv
	dottedNameRegex = regexp.MustCompile(`([\w-]+\.){2,}[\w-]+`)

	// Host names with optional port: proxy.cse.cuhk.edu.hk:5070
	hostPortRegex = regexp.MustCompile(`([\w-]+\.)+[\w-]+(:\d+)?`)

	// Proxifier durations: <1 sec
	durationRegex = regexp.MustCompile(`<\d+\ssec`)

	// Absolute file system paths: /data/app/com.tencent
	fsPathRegex = regexp.MustCompile(`(/[\w-]+)+`)

	// Signed decimals, hex literals and long hex runs
	numberRegex = regexp.MustCompile(`\b(\-?\+?\d+)\b|\b0[Xx][a-fA-F\d]+\b|\b[a-fA-F\d]{4,}\b`)

	// HPC key=value numeric assignments: =1024
	assignRegex = regexp.MustCompile(`=\d+`)
)

// BuiltInPatterns contains every censoring pattern, keyed by name.
var BuiltInPatterns = map[string]CensorPattern{
	"ipv4": {
		Name:        "ipv4",
		Regex:       ipv4Regex,
		Description: "IPv4 addresses",
	},
	"ipv4_list": {
		Name:        "ipv4_list",
		Regex:       ipv4ListRegex,
		Description: "Comma separated IPv4 lists",
	},
	"hdfs_addr": {
		Name:        "hdfs_addr",
		Regex:       hdfsAddrRegex,
		Description: "HDFS IPv4 addresses with port",
	},
	"block_id": {
		Name:        "block_id",
		Regex:       blockIDRegex,
		Description: "HDFS block identifiers",
	},
	"ctime": {
		Name:        "ctime",
		Regex:       ctimeRegex,
		Description: "Full ctime style date-times",
	},
	"clock": {
		Name:        "clock",
		Regex:       clockRegex,
		Description: "HH:MM:SS clock times",
	},
	"short_clock": {
		Name:        "short_clock",
		Regex:       shortClockRegex,
		Description: "HH:MM clock times with optional seconds",
	},
	"url_path": {
		Name:        "url_path",
		Regex:       urlPathRegex,
		Description: "URL paths",
	},
	"byte_unit": {
		Name:        "byte_unit",
		Regex:       byteUnitRegex,
		Description: "Standalone byte size units",
	},
	"byte_suffix": {
		Name:        "byte_suffix",
		Regex:       byteSuffixRegex,
		Description: "Byte size suffixes",
	},
	"dotted_name": {
		Name:        "dotted_name",
		Regex:       dottedNameRegex,
		Description: "Dotted names with three or more parts",
	},
	"host_port": {
		Name:        "host_port",
		Regex:       hostPortRegex,
		Description: "Host names with optional port",
	},
	"duration": {
		Name:        "duration",
		Regex:       durationRegex,
		Description: "Second durations",
	},
	"fs_path": {
		Name:        "fs_path",
		Regex:       fsPathRegex,
		Description: "File system paths",
	},
	"number": {
		Name:        "number",
		Regex:       numberRegex,
		Description: "Numbers, hex literals and hex runs",
	},
	"assign": {
		Name:        "assign",
		Regex:       assignRegex,
		Description: "Numeric assignments",
	},
}

// GetPatterns returns the patterns matching the given names, in the order
// the names are given. Unknown pattern names are silently ignored.
func GetPatterns(names []string) []CensorPattern {
	patterns := make([]CensorPattern, 0, len(names))
	for _, name := range names {
		if pattern, ok := BuiltInPatterns[name]; ok {
			patterns = append(patterns, pattern)
		}
	}
	return patterns
}
