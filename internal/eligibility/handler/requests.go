package handler

import "admissions/internal/eligibility"

// CheckRequest is the HTTP request body for POST /eligibility/check.
type CheckRequest struct {
	Name          string               `json:"name"`
	Age           int                  `json:"age"`
	Gender        string               `json:"gender"`
	Marks         map[string]int       `json:"marks"`
	Qualification QualificationRequest `json:"qualification"`
	DesiredCourse string               `json:"desired_course"`
}

// QualificationRequest is the exam block of CheckRequest. Qualified is a
// pointer so an absent flag can be told apart from false.
type QualificationRequest struct {
	Exam      string `json:"exam"`
	Qualified *bool  `json:"qualified"`
}

// ToRaw converts the transport shape into the domain's unvalidated profile.
func (r *CheckRequest) ToRaw() eligibility.RawProfile {
	return eligibility.RawProfile{
		Name:   r.Name,
		Age:    r.Age,
		Gender: r.Gender,
		Marks:  r.Marks,
		Qualification: eligibility.RawQualification{
			Exam:      r.Qualification.Exam,
			Qualified: r.Qualification.Qualified,
		},
		DesiredCourse: r.DesiredCourse,
	}
}
