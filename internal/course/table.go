// Package course holds the static course rule table.
//
// The table is loaded once at startup and is read-only afterwards, so a single
// *Table can be shared by every request without locking.
package course

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"admissions/pkg/platform/sentinel"
	pkgstrings "admissions/pkg/platform/strings"
)

//go:embed rules.yaml
var defaultRules []byte

type document struct {
	Courses []Rule `yaml:"courses"`
}

// Table is an ordered, immutable set of course rules keyed by course name.
type Table struct {
	rules []Rule
	index map[string]int
}

// Default returns the table built into the binary.
func Default() (*Table, error) {
	return Parse(defaultRules)
}

// Load reads a rule document from path. An empty path selects the built-in table.
func Load(path string) (*Table, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML rule document.
func Parse(data []byte) (*Table, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode rules: %w", err)
	}
	return New(doc.Courses)
}

// New builds a table from rules in declaration order. Course and exam names
// are normalized to upper case; subject names are trimmed and deduplicated.
func New(rules []Rule) (*Table, error) {
	if len(rules) == 0 {
		return nil, fmt.Errorf("%w: rule table is empty", sentinel.ErrInvalidState)
	}

	t := &Table{
		rules: make([]Rule, 0, len(rules)),
		index: make(map[string]int, len(rules)),
	}
	for i, r := range rules {
		r.Course = NormalizeName(r.Course)
		r.RequiredExam = NormalizeName(r.RequiredExam)
		r.MandatorySubjects = pkgstrings.DedupeAndTrim(r.MandatorySubjects)

		switch {
		case r.Course == "":
			return nil, fmt.Errorf("%w: rule %d has no course name", sentinel.ErrInvalidState, i)
		case len(r.MandatorySubjects) == 0:
			return nil, fmt.Errorf("%w: course %s has no mandatory subjects", sentinel.ErrInvalidState, r.Course)
		case r.Cutoff < 0 || r.Cutoff > 100:
			return nil, fmt.Errorf("%w: course %s cutoff %d outside 0-100", sentinel.ErrInvalidState, r.Course, r.Cutoff)
		}
		if _, dup := t.index[r.Course]; dup {
			return nil, fmt.Errorf("%w: course %s declared twice", sentinel.ErrInvalidState, r.Course)
		}

		t.index[r.Course] = len(t.rules)
		t.rules = append(t.rules, r)
	}
	return t, nil
}

// NormalizeName canonicalizes a course or exam name for table lookups.
func NormalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// Lookup returns the rule for name.
func (t *Table) Lookup(name string) (Rule, error) {
	i, ok := t.index[NormalizeName(name)]
	if !ok {
		return Rule{}, &UnknownCourseError{Course: name}
	}
	return t.rules[i].clone(), nil
}

// Has reports whether name is a configured course.
func (t *Table) Has(name string) bool {
	_, ok := t.index[NormalizeName(name)]
	return ok
}

// Rules returns a copy of every rule in declaration order.
func (t *Table) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	for i, r := range t.rules {
		out[i] = r.clone()
	}
	return out
}

// Names returns course names in declaration order.
func (t *Table) Names() []string {
	out := make([]string, len(t.rules))
	for i, r := range t.rules {
		out[i] = r.Course
	}
	return out
}

// Len returns the number of courses.
func (t *Table) Len() int {
	return len(t.rules)
}
