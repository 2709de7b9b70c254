package course

import (
	"fmt"
	"slices"

	"admissions/pkg/platform/sentinel"
)

// Rule is the eligibility rule for a single course.
//
// Marks policy: the mean of the student's marks across MandatorySubjects must
// be at least Cutoff. Subjects outside MandatorySubjects never count toward
// the mean. A zero Cutoff disables the marks check.
type Rule struct {
	Course            string   `yaml:"name" json:"course"`
	MandatorySubjects []string `yaml:"mandatory_subjects" json:"mandatory_subjects"`
	Cutoff            int      `yaml:"cutoff" json:"cutoff"`
	RequiredExam      string   `yaml:"required_exam" json:"required_exam,omitempty"`
}

// RequiresExam reports whether the course accepts only students who qualified
// in RequiredExam.
func (r Rule) RequiresExam() bool {
	return r.RequiredExam != ""
}

func (r Rule) clone() Rule {
	r.MandatorySubjects = slices.Clone(r.MandatorySubjects)
	return r
}

// UnknownCourseError is returned by Table.Lookup for names the table does not hold.
type UnknownCourseError struct {
	Course string
}

func (e *UnknownCourseError) Error() string {
	return fmt.Sprintf("unknown course %q", e.Course)
}

func (e *UnknownCourseError) Unwrap() error {
	return sentinel.ErrNotFound
}
