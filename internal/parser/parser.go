// Package parser turns raw log lines into token sequences.
//
// A format template such as "<Date> <Time> <Level> <Component>: <Content>"
// is compiled into an anchored regexp with one named group per field. The
// Content group is censored and split on whitespace; every other field is
// discarded.
package parser

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/bimmerbailey/logmine/internal/format"
	"github.com/bimmerbailey/logmine/internal/preprocess"
)

// ContentField is the template field holding the free-text payload.
const ContentField = "Content"

// ErrInvalidTemplate is returned when a template cannot be compiled.
var ErrInvalidTemplate = errors.New("invalid format template")

var (
	fieldPattern = regexp.MustCompile(`<[^<>]+>`)
	spacePattern = regexp.MustCompile(` +`)
)

// Parser tokenizes lines of one log format. It is immutable after
// construction and safe for concurrent use.
type Parser struct {
	template string
	line     *regexp.Regexp
	content  int
	censor   *preprocess.Censor
}

// New creates a Parser for a registry format. The built-in templates are
// constants, so a compile failure here is a defect and panics.
func New(f format.Format) *Parser {
	re := MustCompile(f.Template())
	return &Parser{
		template: f.Template(),
		line:     re,
		content:  re.SubexpIndex(ContentField),
		censor:   f.Censor(),
	}
}

// NewWithTemplate creates a Parser for an arbitrary template. A nil censor
// performs no substitutions.
func NewWithTemplate(template string, censor *preprocess.Censor) (*Parser, error) {
	re, err := Compile(template)
	if err != nil {
		return nil, err
	}
	if re.SubexpIndex(ContentField) < 0 {
		return nil, fmt.Errorf("%w: %q has no <%s> field", ErrInvalidTemplate, template, ContentField)
	}
	if censor == nil {
		censor = preprocess.NewCensor(nil)
	}
	return &Parser{
		template: template,
		line:     re,
		content:  re.SubexpIndex(ContentField),
		censor:   censor,
	}, nil
}

// Expand converts a template into regexp source without anchors.
//
// Each <Field> becomes a non-greedy named group and each run of spaces in the
// literal text between fields becomes \s+, so templates tolerate irregular
// spacing. Literal text keeps its regexp meaning, which lets templates carry
// optional segments like (\[<PID>\])?.
func Expand(template string) string {
	var b strings.Builder
	prev := 0
	for _, loc := range fieldPattern.FindAllStringIndex(template, -1) {
		b.WriteString(spacePattern.ReplaceAllString(template[prev:loc[0]], `\s+`))
		name := strings.Trim(template[loc[0]:loc[1]], "<>")
		fmt.Fprintf(&b, "(?P<%s>.*?)", name)
		prev = loc[1]
	}
	b.WriteString(spacePattern.ReplaceAllString(template[prev:], `\s+`))
	return b.String()
}

// Compile compiles a template into a regexp matching a whole line.
func Compile(template string) (*regexp.Regexp, error) {
	re, err := regexp.Compile("^" + Expand(template) + "$")
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidTemplate, template, err)
	}
	return re, nil
}

// MustCompile is like Compile but panics on error or when the template has
// no Content field.
func MustCompile(template string) *regexp.Regexp {
	re, err := Compile(template)
	if err != nil {
		panic(err)
	}
	if re.SubexpIndex(ContentField) < 0 {
		panic(fmt.Errorf("%w: %q has no <%s> field", ErrInvalidTemplate, template, ContentField))
	}
	return re
}

// Template returns the template the parser was built from.
func (p *Parser) Template() string {
	return p.template
}

// Regexp returns the compiled line pattern.
func (p *Parser) Regexp() *regexp.Regexp {
	return p.line
}

// Fields returns every named field of a line, or nil if the line does not
// match the template.
func (p *Parser) Fields(line string) map[string]string {
	m := p.line.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return nil
	}
	fields := make(map[string]string)
	for i, name := range p.line.SubexpNames() {
		if name != "" {
			fields[name] = m[i]
		}
	}
	return fields
}

// Content returns the free-text payload of a line.
func (p *Parser) Content(line string) (string, bool) {
	m := p.line.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", false
	}
	return m[p.content], true
}

// Tokenize returns the censored tokens of a line's Content field. Lines that
// do not match the template yield no tokens.
func (p *Parser) Tokenize(line string) []string {
	content, ok := p.Content(line)
	if !ok {
		return nil
	}
	return strings.Fields(p.censor.Apply(content))
}
