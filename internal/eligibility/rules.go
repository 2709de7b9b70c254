package eligibility

import (
	"math"

	"admissions/internal/course"
)

// checkRule applies one course rule to a profile.
// This is pure domain logic - no I/O, no side effects.
// Rule priority (fail-fast):
//  1. Mandatory subjects present
//  2. Mean of mandatory-subject marks meets the cutoff
//  3. Required exam matches and was qualified
func checkRule(rule course.Rule, p StudentProfile) Reason {
	for _, subject := range rule.MandatorySubjects {
		if _, ok := p.Marks[subject]; !ok {
			return ReasonMissingSubject
		}
	}

	if rule.Cutoff > 0 && subjectMean(p.Marks, rule.MandatorySubjects) < float64(rule.Cutoff) {
		return ReasonMarksBelowCutoff
	}

	if rule.RequiresExam() {
		if p.Qualification.Exam != rule.RequiredExam || !p.Qualification.Qualified {
			return ReasonExamNotQualified
		}
	}

	return ReasonAllChecksPassed
}

// subjectMean averages marks over subjects. Callers guarantee every subject
// is present and the list is non-empty.
func subjectMean(marks map[string]int, subjects []string) float64 {
	total := 0
	for _, s := range subjects {
		total += marks[s]
	}
	return float64(total) / float64(len(subjects))
}

// Percentage is the mean of all supplied marks rounded to two decimals.
func Percentage(marks map[string]int) float64 {
	if len(marks) == 0 {
		return 0
	}
	total := 0
	for _, m := range marks {
		total += m
	}
	return math.Round(float64(total)/float64(len(marks))*100) / 100
}
