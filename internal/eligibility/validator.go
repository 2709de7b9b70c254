package eligibility

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"admissions/internal/course"
	dErrors "admissions/pkg/domain-errors"
	pkgstrings "admissions/pkg/platform/strings"
)

// CourseCatalog answers course membership for the validator.
type CourseCatalog interface {
	Has(name string) bool
}

// Validator turns untrusted RawProfiles into StudentProfiles. Every violation
// is collected into one validation error so callers get full feedback in a
// single round trip.
type Validator struct {
	validate *validator.Validate
}

// NewValidator builds a Validator that accepts only courses present in catalog.
func NewValidator(catalog CourseCatalog) (*Validator, error) {
	if catalog == nil {
		return nil, errors.New("course catalog is required")
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("alphaspace", isAlphaSpace); err != nil {
		return nil, fmt.Errorf("register alphaspace: %w", err)
	}
	if err := v.RegisterValidation("course", func(fl validator.FieldLevel) bool {
		return catalog.Has(fl.Field().String())
	}); err != nil {
		return nil, fmt.Errorf("register course: %w", err)
	}

	return &Validator{validate: v}, nil
}

// Validate normalizes raw and checks every field. It returns either a
// complete StudentProfile or a CodeValidation error, never both.
func (v *Validator) Validate(raw RawProfile) (StudentProfile, error) {
	normalized, violations := normalize(raw)

	if err := v.validate.Struct(normalized); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return StudentProfile{}, dErrors.Wrap(err, dErrors.CodeInternal, "profile validation failed")
		}
		for _, fe := range verrs {
			violations = append(violations, toFieldError(fe))
		}
	}

	if len(violations) > 0 {
		sort.SliceStable(violations, func(i, j int) bool {
			return violations[i].Field < violations[j].Field
		})
		return StudentProfile{}, dErrors.Validation("invalid student profile", violations)
	}

	return StudentProfile{
		Name:   normalized.Name,
		Age:    normalized.Age,
		Gender: normalized.Gender,
		Marks:  normalized.Marks,
		Qualification: Qualification{
			Exam:      normalized.Qualification.Exam,
			Qualified: *normalized.Qualification.Qualified,
		},
		DesiredCourse: normalized.DesiredCourse,
	}, nil
}

// normalize trims free-text fields and canonicalizes course, exam and subject
// names. Subjects that collide after normalization are reported as violations.
func normalize(raw RawProfile) (RawProfile, []dErrors.FieldError) {
	var violations []dErrors.FieldError

	out := raw
	out.Name = collapseBlanks(raw.Name)
	out.DesiredCourse = course.NormalizeName(raw.DesiredCourse)
	out.Qualification.Exam = course.NormalizeName(raw.Qualification.Exam)

	if raw.Marks != nil {
		out.Marks = make(map[string]int, len(raw.Marks))
		for subject, mark := range raw.Marks {
			key := pkgstrings.CollapseSpace(subject)
			if _, dup := out.Marks[key]; dup && key != "" {
				violations = append(violations, dErrors.FieldError{
					Field:   "marks",
					Message: fmt.Sprintf("subject %q is listed more than once", key),
				})
				continue
			}
			out.Marks[key] = mark
		}
	}

	return out, violations
}

// collapseBlanks trims and collapses runs of ASCII spaces only. Tabs,
// newlines and other Unicode spaces are left in place for alphaspace to reject.
func collapseBlanks(s string) string {
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool { return r == ' ' }), " ")
}

// isAlphaSpace accepts non-empty strings of ASCII letters and spaces.
func isAlphaSpace(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != ' ' && (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') {
			return false
		}
	}
	return s != ""
}

func toFieldError(fe validator.FieldError) dErrors.FieldError {
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}
	return dErrors.FieldError{Field: field, Message: fieldMessage(fe, field)}
}

func fieldMessage(fe validator.FieldError, field string) string {
	isMark := strings.HasPrefix(field, "marks[")
	switch fe.Tag() {
	case "required":
		if isMark {
			return "subject names must not be empty"
		}
		return field + " is required"
	case "alphaspace":
		return field + " must contain only letters and spaces"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "gte", "lte":
		if isMark {
			return field + " must be between 0 and 100"
		}
		if fe.Tag() == "gte" {
			return fmt.Sprintf("%s must be at least %s", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must contain at least %s subjects", field, fe.Param())
	case "course":
		return fmt.Sprintf("%s %q is not an offered course", field, fe.Value())
	default:
		return field + " is invalid"
	}
}
