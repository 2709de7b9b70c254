package eligibility

import (
	"fmt"

	"github.com/google/uuid"

	"admissions/internal/course"
)

// RuleSource is the read-only view of the rule table the engine needs.
type RuleSource interface {
	Lookup(name string) (course.Rule, error)
	Rules() []course.Rule
}

// Engine decides eligibility for a validated profile against the rule table.
// It holds no mutable state, so one Engine serves concurrent requests.
type Engine struct {
	rules RuleSource
	newID func() string
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithIDGenerator replaces the student ID source. Tests use it to pin IDs.
func WithIDGenerator(fn func() string) EngineOption {
	return func(e *Engine) {
		e.newID = fn
	}
}

// NewEngine builds an engine over rules. Student IDs default to random UUIDv4.
func NewEngine(rules RuleSource, opts ...EngineOption) *Engine {
	e := &Engine{
		rules: rules,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate decides eligibility for p.DesiredCourse and, when the student is
// not eligible, recommends every other course they independently qualify for
// in rule-table order. Apart from the fresh StudentID the result depends only
// on p and the rule table.
//
// A *course.UnknownCourseError means the validator and rule table disagree.
func (e *Engine) Evaluate(p StudentProfile) (Result, error) {
	rule, err := e.rules.Lookup(p.DesiredCourse)
	if err != nil {
		return Result{}, fmt.Errorf("resolve desired course: %w", err)
	}

	result := Result{
		Course:          rule.Course,
		Reason:          checkRule(rule, p),
		Recommendations: []string{},
		Percentage:      Percentage(p.Marks),
	}
	result.Eligible = result.Reason == ReasonAllChecksPassed

	if !result.Eligible {
		result.Recommendations = e.recommend(rule.Course, p)
	}

	result.StudentID = e.newID()
	return result, nil
}

func (e *Engine) recommend(desired string, p StudentProfile) []string {
	recs := []string{}
	for _, rule := range e.rules.Rules() {
		if rule.Course == desired {
			continue
		}
		if checkRule(rule, p) == ReasonAllChecksPassed {
			recs = append(recs, rule.Course)
		}
	}
	return recs
}
