package eligibility

import (
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"admissions/internal/course"
)

// =============================================================================
// Engine Test Suite
// =============================================================================
// The engine is pure apart from ID generation, so every rule path is exercised
// here directly against the built-in rule table without a server.

type EngineSuite struct {
	suite.Suite
	table  *course.Table
	engine *Engine
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) SetupTest() {
	table, err := course.Default()
	s.Require().NoError(err)
	s.table = table
	s.engine = NewEngine(table)
}

func engineeringProfile() StudentProfile {
	return StudentProfile{
		Name:   "Rudra Kanwar",
		Age:    19,
		Gender: GenderMale,
		Marks: map[string]int{
			"Physics": 85, "Chemistry": 80, "Mathematics": 90, "English": 75,
		},
		Qualification: Qualification{Exam: "JEE", Qualified: true},
		DesiredCourse: "CSE",
	}
}

func medicalProfile() StudentProfile {
	return StudentProfile{
		Name:   "Rahul Verma",
		Age:    20,
		Gender: GenderMale,
		Marks: map[string]int{
			"Physics": 78, "Chemistry": 82, "Biology": 85, "English": 75,
		},
		Qualification: Qualification{Exam: "NEET", Qualified: true},
		DesiredCourse: "MBBS",
	}
}

func commerceProfile() StudentProfile {
	return StudentProfile{
		Name:   "Asha Rao",
		Age:    18,
		Gender: GenderFemale,
		Marks: map[string]int{
			"Accountancy": 40, "Business Studies": 50, "Economics": 45,
		},
		Qualification: Qualification{Exam: "NONE", Qualified: false},
		DesiredCourse: "BCOM",
	}
}

func (s *EngineSuite) TestScenarios() {
	s.Run("qualified engineering student is eligible for CSE", func() {
		result, err := s.engine.Evaluate(engineeringProfile())
		s.Require().NoError(err)

		s.True(result.Eligible)
		s.Equal(ReasonAllChecksPassed, result.Reason)
		s.Equal("CSE", result.Course)
		s.NotNil(result.Recommendations)
		s.Empty(result.Recommendations)
		s.Equal(82.5, result.Percentage)
	})

	s.Run("medical student below MBBS cutoff gets NEET alternatives", func() {
		result, err := s.engine.Evaluate(medicalProfile())
		s.Require().NoError(err)

		s.False(result.Eligible)
		s.Equal(ReasonMarksBelowCutoff, result.Reason)
		s.Equal([]string{"BDS", "BAMS", "BHMS", "BPT"}, result.Recommendations)
	})

	s.Run("commerce course needs no exam", func() {
		result, err := s.engine.Evaluate(commerceProfile())
		s.Require().NoError(err)
		s.True(result.Eligible)
	})
}

func (s *EngineSuite) TestRuleChecks() {
	s.Run("missing mandatory subject makes the course ineligible", func() {
		p := engineeringProfile()
		p.DesiredCourse = "MBBS"

		result, err := s.engine.Evaluate(p)
		s.Require().NoError(err)
		s.False(result.Eligible)
		s.Equal(ReasonMissingSubject, result.Reason)
		s.Equal([]string{"CSE", "ME", "EE", "CIVIL", "ECE"}, result.Recommendations)
	})

	s.Run("missing subject is reported before marks and exam", func() {
		p := engineeringProfile()
		delete(p.Marks, "Mathematics")
		p.Qualification.Qualified = false

		result, err := s.engine.Evaluate(p)
		s.Require().NoError(err)
		s.Equal(ReasonMissingSubject, result.Reason)
	})

	s.Run("mean exactly at cutoff passes", func() {
		p := engineeringProfile()
		p.Marks = map[string]int{"Physics": 75, "Chemistry": 75, "Mathematics": 75}

		result, err := s.engine.Evaluate(p)
		s.Require().NoError(err)
		s.True(result.Eligible)
	})

	s.Run("non-mandatory subjects do not count toward the cutoff", func() {
		p := engineeringProfile()
		p.Marks = map[string]int{"Physics": 70, "Chemistry": 70, "Mathematics": 70, "English": 100}

		result, err := s.engine.Evaluate(p)
		s.Require().NoError(err)
		s.Equal(ReasonMarksBelowCutoff, result.Reason)
		s.Equal([]string{"ME", "EE", "CIVIL", "ECE"}, result.Recommendations)
	})

	s.Run("unqualified exam fails and leaves no alternatives", func() {
		p := engineeringProfile()
		p.Qualification.Qualified = false

		result, err := s.engine.Evaluate(p)
		s.Require().NoError(err)
		s.False(result.Eligible)
		s.Equal(ReasonExamNotQualified, result.Reason)
		s.NotNil(result.Recommendations)
		s.Empty(result.Recommendations)
	})

	s.Run("wrong exam fails even when qualified", func() {
		p := engineeringProfile()
		p.Qualification.Exam = "NEET"

		result, err := s.engine.Evaluate(p)
		s.Require().NoError(err)
		s.Equal(ReasonExamNotQualified, result.Reason)
	})
}

func (s *EngineSuite) TestRecommendationInvariants() {
	profiles := []StudentProfile{engineeringProfile(), medicalProfile(), commerceProfile()}
	for _, base := range profiles {
		for _, name := range s.table.Names() {
			p := base
			p.DesiredCourse = name

			result, err := s.engine.Evaluate(p)
			s.Require().NoError(err)

			if result.Eligible {
				s.Empty(result.Recommendations, "%s/%s", base.Name, name)
				continue
			}
			s.NotContains(result.Recommendations, name, "%s/%s", base.Name, name)
			for _, rec := range result.Recommendations {
				rule, err := s.table.Lookup(rec)
				s.Require().NoError(err)
				s.Equal(ReasonAllChecksPassed, checkRule(rule, p), "%s recommended %s", base.Name, rec)
			}
		}
	}
}

func (s *EngineSuite) TestIdempotence() {
	first, err := s.engine.Evaluate(medicalProfile())
	s.Require().NoError(err)
	second, err := s.engine.Evaluate(medicalProfile())
	s.Require().NoError(err)

	s.Equal(first.Eligible, second.Eligible)
	s.Equal(first.Recommendations, second.Recommendations)
	s.NotEqual(first.StudentID, second.StudentID)
}

func (s *EngineSuite) TestStudentIDs() {
	s.Run("default IDs are random UUIDv4", func() {
		result, err := s.engine.Evaluate(engineeringProfile())
		s.Require().NoError(err)

		s.Len(result.StudentID, 36)
		parsed, err := uuid.Parse(result.StudentID)
		s.Require().NoError(err)
		s.Equal(uuid.Version(4), parsed.Version())
	})

	s.Run("ID generator can be injected", func() {
		engine := NewEngine(s.table, WithIDGenerator(func() string { return "fixed-id" }))
		result, err := engine.Evaluate(engineeringProfile())
		s.Require().NoError(err)
		s.Equal("fixed-id", result.StudentID)
	})
}

func (s *EngineSuite) TestUnknownCourse() {
	p := engineeringProfile()
	p.DesiredCourse = "ASTRONAUT"

	_, err := s.engine.Evaluate(p)
	s.Require().Error(err)

	var unknown *course.UnknownCourseError
	s.True(errors.As(err, &unknown))
}

func (s *EngineSuite) TestConcurrentEvaluationsDoNotCrossContaminate() {
	profiles := []StudentProfile{engineeringProfile(), medicalProfile(), commerceProfile()}
	want := make([]Result, len(profiles))
	for i, p := range profiles {
		r, err := s.engine.Evaluate(p)
		s.Require().NoError(err)
		want[i] = r
	}

	const rounds = 50
	type outcome struct {
		idx    int
		result Result
		err    error
	}
	out := make(chan outcome, rounds*len(profiles))

	var wg sync.WaitGroup
	for r := 0; r < rounds; r++ {
		for i, p := range profiles {
			wg.Add(1)
			go func(i int, p StudentProfile) {
				defer wg.Done()
				res, err := s.engine.Evaluate(p)
				out <- outcome{idx: i, result: res, err: err}
			}(i, p)
		}
	}
	wg.Wait()
	close(out)

	for o := range out {
		s.Require().NoError(o.err)
		s.Equal(want[o.idx].Eligible, o.result.Eligible)
		s.Equal(want[o.idx].Recommendations, o.result.Recommendations)
	}
}

func TestPercentage(t *testing.T) {
	cases := []struct {
		name  string
		marks map[string]int
		want  float64
	}{
		{name: "empty", marks: nil, want: 0},
		{name: "whole number", marks: map[string]int{"a": 80, "b": 90}, want: 85},
		{name: "rounds to two decimals", marks: map[string]int{"a": 78, "b": 82, "c": 85}, want: 81.67},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Percentage(tc.marks); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
