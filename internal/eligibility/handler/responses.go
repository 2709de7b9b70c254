package handler

import (
	"admissions/internal/course"
	"admissions/internal/eligibility"
)

// CheckResponse is the HTTP response for POST /eligibility/check.
type CheckResponse struct {
	StudentID       string   `json:"student_id"`
	Course          string   `json:"course"`
	Eligible        bool     `json:"eligible"`
	Reason          string   `json:"reason"`
	Recommendations []string `json:"recommendations"`
	Percentage      float64  `json:"percentage"`
}

// CourseResponse describes one course rule for GET /courses.
type CourseResponse struct {
	Course            string   `json:"course"`
	MandatorySubjects []string `json:"mandatory_subjects"`
	Cutoff            int      `json:"cutoff"`
	RequiredExam      string   `json:"required_exam,omitempty"`
}

// CourseListResponse is the HTTP response for GET /courses.
type CourseListResponse struct {
	Courses []CourseResponse `json:"courses"`
}

// FromResult converts a domain Result to an HTTP response.
func FromResult(result *eligibility.Result) *CheckResponse {
	recs := result.Recommendations
	if recs == nil {
		recs = []string{}
	}
	return &CheckResponse{
		StudentID:       result.StudentID,
		Course:          result.Course,
		Eligible:        result.Eligible,
		Reason:          string(result.Reason),
		Recommendations: recs,
		Percentage:      result.Percentage,
	}
}

// FromRules converts the rule table to an HTTP response.
func FromRules(rules []course.Rule) *CourseListResponse {
	out := make([]CourseResponse, len(rules))
	for i, r := range rules {
		out[i] = CourseResponse{
			Course:            r.Course,
			MandatorySubjects: r.MandatorySubjects,
			Cutoff:            r.Cutoff,
			RequiredExam:      r.RequiredExam,
		}
	}
	return &CourseListResponse{Courses: out}
}
