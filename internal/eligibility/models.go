package eligibility

// Gender values accepted by the validator. Matching is case-sensitive.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// MinSubjects is the minimum number of subject marks a profile must carry.
const MinSubjects = 3

// RawProfile is an unvalidated profile as submitted by a caller.
// JSON names double as the field names reported in validation errors.
type RawProfile struct {
	Name          string           `json:"name" validate:"required,alphaspace"`
	Age           int              `json:"age" validate:"gte=17,lte=25"`
	Gender        string           `json:"gender" validate:"required,oneof=Male Female Other"`
	Marks         map[string]int   `json:"marks" validate:"required,min=3,dive,keys,required,endkeys,gte=0,lte=100"`
	Qualification RawQualification `json:"qualification"`
	DesiredCourse string           `json:"desired_course" validate:"required,course"`
}

// RawQualification is the unvalidated exam qualification block.
type RawQualification struct {
	Exam      string `json:"exam" validate:"required"`
	Qualified *bool  `json:"qualified" validate:"required"`
}

// StudentProfile is a validated, normalized profile. Only the Validator
// constructs one; the engine trusts its invariants.
type StudentProfile struct {
	Name          string         `json:"name"`
	Age           int            `json:"age"`
	Gender        string         `json:"gender"`
	Marks         map[string]int `json:"marks"`
	Qualification Qualification  `json:"qualification"`
	DesiredCourse string         `json:"desired_course"`
}

// Qualification records the exam a student sat and whether they qualified.
type Qualification struct {
	Exam      string `json:"exam"`
	Qualified bool   `json:"qualified"`
}

// Reason explains the outcome for the desired course.
type Reason string

const (
	ReasonAllChecksPassed  Reason = "all_checks_passed"
	ReasonMissingSubject   Reason = "missing_subject"
	ReasonMarksBelowCutoff Reason = "marks_below_cutoff"
	ReasonExamNotQualified Reason = "exam_not_qualified"
)

// Result is the decision for one request. Its JSON form is the response body
// and the payload written to the response audit log.
type Result struct {
	StudentID       string   `json:"student_id"`
	Course          string   `json:"course"`
	Eligible        bool     `json:"eligible"`
	Reason          Reason   `json:"reason"`
	Recommendations []string `json:"recommendations"`
	Percentage      float64  `json:"percentage"`
}
