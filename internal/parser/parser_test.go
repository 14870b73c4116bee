package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bimmerbailey/logmine/internal/format"
	"github.com/bimmerbailey/logmine/internal/preprocess"
)

func TestExpand(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     string
	}{
		{
			name:     "linux",
			template: `<Month> <Date> <Time> <Level> <Component>(\[<PID>\])?: <Content>`,
			want:     `(?P<Month>.*?)\s+(?P<Date>.*?)\s+(?P<Time>.*?)\s+(?P<Level>.*?)\s+(?P<Component>.*?)(\[(?P<PID>.*?)\])?:\s+(?P<Content>.*?)`,
		},
		{
			name:     "openstack optional address",
			template: `<Logrecord> <Date> <Time> <Pid> <Level> <Component> (\[<ADDR>\])? <Content>`,
			want:     `(?P<Logrecord>.*?)\s+(?P<Date>.*?)\s+(?P<Time>.*?)\s+(?P<Pid>.*?)\s+(?P<Level>.*?)\s+(?P<Component>.*?)\s+(\[(?P<ADDR>.*?)\])?\s+(?P<Content>.*?)`,
		},
		{
			name:     "double spaces collapse",
			template: `<Date> <Time>  <Pid>`,
			want:     `(?P<Date>.*?)\s+(?P<Time>.*?)\s+(?P<Pid>.*?)`,
		},
		{
			name:     "leading and trailing literals",
			template: `\[<Time>\] <Content>;`,
			want:     `\[(?P<Time>.*?)\]\s+(?P<Content>.*?);`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Expand(tt.template))
		})
	}
}

func TestCompileBindsFields(t *testing.T) {
	re, err := Compile("<A> <B>")
	require.NoError(t, err)

	for _, line := range []string{"x y", "x     y", "x \t y"} {
		m := re.FindStringSubmatch(line)
		require.NotNil(t, m, "line %q should match", line)
		assert.Equal(t, "x", m[re.SubexpIndex("A")], "line %q", line)
		assert.Equal(t, "y", m[re.SubexpIndex("B")], "line %q", line)
	}

	assert.False(t, re.MatchString("xy"), "a separator is required")
}

func TestCompileInvalid(t *testing.T) {
	_, err := Compile("<A> (<Content>")
	if !errors.Is(err, ErrInvalidTemplate) {
		t.Fatalf("Compile() error = %v, want ErrInvalidTemplate", err)
	}
}

func TestNewWithTemplateRequiresContent(t *testing.T) {
	_, err := NewWithTemplate("<A> <B>", nil)
	if !errors.Is(err, ErrInvalidTemplate) {
		t.Fatalf("NewWithTemplate() error = %v, want ErrInvalidTemplate", err)
	}
}

func TestMustCompilePanics(t *testing.T) {
	assert.Panics(t, func() { MustCompile("<A> <B>") })
	assert.Panics(t, func() { MustCompile("(<Content>") })
}

func TestBuiltInTemplatesCompile(t *testing.T) {
	for _, f := range format.All() {
		t.Run(f.String(), func(t *testing.T) {
			assert.NotPanics(t, func() { New(f) })
		})
	}
}

func TestTokenizeLinux(t *testing.T) {
	p := New(format.Linux)

	got := p.Tokenize("Jun 14 15:16:02 combo sshd(pam_unix)[19937]: check pass; user unknown")
	assert.Equal(t, []string{"check", "pass;", "user", "unknown"}, got)

	got = p.Tokenize("  Jun 14 15:16:02 combo sshd(pam_unix)[19937]: check pass; Fri Jun 17 20:55:07 2005 user unknown  ")
	assert.Equal(t, []string{"check", "pass;", "<*>", "user", "unknown"}, got)
}

func TestFieldsLinux(t *testing.T) {
	p := New(format.Linux)

	fields := p.Fields("Jun 14 15:16:02 combo sshd(pam_unix)[19937]: check pass; user unknown")
	require.NotNil(t, fields)
	assert.Equal(t, "Jun", fields["Month"])
	assert.Equal(t, "14", fields["Date"])
	assert.Equal(t, "15:16:02", fields["Time"])
	assert.Equal(t, "combo", fields["Level"])
	assert.Equal(t, "sshd(pam_unix)", fields["Component"])
	assert.Equal(t, "19937", fields["PID"])
	assert.Equal(t, "check pass; user unknown", fields["Content"])
}

func TestTokenizeFormats(t *testing.T) {
	tests := []struct {
		format format.Format
		line   string
		want   []string
	}{
		{
			format: format.HDFS,
			line:   "081109 203615 148 INFO dfs.DataNode$PacketResponder: PacketResponder 1 for block blk_38865049064139660 terminating",
			want:   []string{"PacketResponder", "1", "for", "block", "<*>", "terminating"},
		},
		{
			format: format.Proxifier,
			line:   "[10.30 16:49:06] chrome.exe - proxy.cse.cuhk.edu.hk:5070 open through proxy proxy.cse.cuhk.edu.hk:5070 HTTPS",
			want:   []string{"<*>", "open", "through", "proxy", "<*>", "HTTPS"},
		},
		{
			format: format.HealthApp,
			line:   "20171223-22:15:29:606|Step_LSC|30002312|onStandStepChanged 3579",
			want:   []string{"onStandStepChanged", "3579"},
		},
		{
			format: format.Spark,
			line:   "17/06/09 20:10:40 INFO spark.SecurityManager: Changing view acls to: yarn,curi",
			want:   []string{"Changing", "view", "acls", "to:", "yarn,curi"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.format).Tokenize(tt.line))
		})
	}
}

func TestTokenizeNoMatch(t *testing.T) {
	p := New(format.Linux)
	assert.Empty(t, p.Tokenize("garbage"))
	assert.Empty(t, p.Tokenize(""))
}

func TestTokenizeWithoutCensorsIsFieldSplit(t *testing.T) {
	p, err := NewWithTemplate("<Level>: <Content>", nil)
	require.NoError(t, err)

	line := "INFO: 10.0.0.1   connected  at 12:00:01"
	content, ok := p.Content(line)
	require.True(t, ok)
	assert.Equal(t, strings.Fields(content), p.Tokenize(line))
}

func TestTokenizeCustomCensor(t *testing.T) {
	censor := preprocess.NewCensor(preprocess.GetPatterns([]string{"ipv4"}))
	p, err := NewWithTemplate("<Level>: <Content>", censor)
	require.NoError(t, err)

	assert.Equal(t, []string{"connected", "from", "<*>"}, p.Tokenize("WARN: connected from 10.0.0.1"))
}
