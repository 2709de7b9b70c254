package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"bytes"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"admissions/internal/course"
	"admissions/internal/eligibility"
	"admissions/internal/eligibility/handler/mocks"
	dErrors "admissions/pkg/domain-errors"
	"admissions/pkg/testutil"
)

type HandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  http.Handler
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)

	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	r := chi.NewRouter()
	New(s.service, logger).Register(r)
	s.router = r
}

func qualified(b bool) *bool { return &b }

func validRequest() CheckRequest {
	return CheckRequest{
		Name:          "Rudra Kanwar",
		Age:           19,
		Gender:        "Male",
		Marks:         map[string]int{"Physics": 85, "Chemistry": 80, "Mathematics": 90, "English": 75},
		Qualification: QualificationRequest{Exam: "JEE", Qualified: qualified(true)},
		DesiredCourse: "CSE",
	}
}

func (s *HandlerSuite) TestCheckReturnsDecision() {
	req := validRequest()
	s.service.EXPECT().
		Check(gomock.Any(), req.ToRaw()).
		Return(&eligibility.Result{
			StudentID:  "3f1c2a7e-0b7d-4a53-9d0e-6f3f1b2a9c11",
			Course:     "CSE",
			Eligible:   true,
			Reason:     eligibility.ReasonAllChecksPassed,
			Percentage: 82.5,
		}, nil)

	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/eligibility/check", validRequest()))
	s.Require().Equal(http.StatusOK, rr.Code)

	resp := testutil.UnmarshalResponse[CheckResponse](s.T(), rr)
	s.Equal("3f1c2a7e-0b7d-4a53-9d0e-6f3f1b2a9c11", resp.StudentID)
	s.True(resp.Eligible)
	s.Equal("all_checks_passed", resp.Reason)
	s.NotNil(resp.Recommendations, "recommendations must serialize as [] not null")
	s.Empty(resp.Recommendations)
	s.Equal(82.5, resp.Percentage)
}

func (s *HandlerSuite) TestLegacyPathIsServed() {
	s.service.EXPECT().Check(gomock.Any(), gomock.Any()).Return(&eligibility.Result{
		StudentID:       "id",
		Course:          "MBBS",
		Reason:          eligibility.ReasonMarksBelowCutoff,
		Recommendations: []string{"BDS"},
	}, nil)

	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/check-eligibility", validRequest()))
	s.Require().Equal(http.StatusOK, rr.Code)
	resp := testutil.UnmarshalResponse[CheckResponse](s.T(), rr)
	s.Equal([]string{"BDS"}, resp.Recommendations)
}

func (s *HandlerSuite) TestValidationErrorReturns400WithFields() {
	s.service.EXPECT().Check(gomock.Any(), gomock.Any()).Return(nil, dErrors.Validation("invalid student profile", []dErrors.FieldError{
		{Field: "age", Message: "age must be at most 25"},
	}))

	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/eligibility/check", validRequest()))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")

	body := testutil.UnmarshalErrorResponse(s.T(), rr)
	s.Equal("invalid student profile", body.ErrorDescription)
	s.Require().Len(body.Fields, 1)
	s.Equal("age", body.Fields[0].Field)
}

func (s *HandlerSuite) TestInternalErrorHidesDetails() {
	s.service.EXPECT().Check(gomock.Any(), gomock.Any()).
		Return(nil, dErrors.Wrap(&course.UnknownCourseError{Course: "CSE"}, dErrors.CodeInternal, "eligibility evaluation failed"))

	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/eligibility/check", validRequest()))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusInternalServerError, "internal_error")
	s.NotContains(rr.Body.String(), "unknown course")
	s.NotContains(rr.Body.String(), "eligibility evaluation failed")
}

func (s *HandlerSuite) TestMalformedBodiesNeverReachService() {
	cases := map[string]string{
		"invalid json":            `{"name": "Rudra"`,
		"empty body":              ``,
		"qualified not a boolean": `{"name":"Rudra","qualification":{"exam":"JEE","qualified":"yes"}}`,
		"fractional mark":         `{"marks":{"Physics":85.5}}`,
		"age as string":           `{"age":"nineteen"}`,
	}
	for name, body := range cases {
		s.Run(name, func() {
			rr := testutil.DoRequest(s.router, testutil.NewRequestWithBody(s.T(), http.MethodPost, "/eligibility/check", body))
			testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
		})
	}
}

func (s *HandlerSuite) TestListCourses() {
	s.service.EXPECT().Courses().Return([]course.Rule{
		{Course: "CSE", MandatorySubjects: []string{"Physics", "Chemistry", "Mathematics"}, Cutoff: 75, RequiredExam: "JEE"},
		{Course: "BCOM", MandatorySubjects: []string{"Accountancy", "Business Studies", "Economics"}},
	})

	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/courses", nil))
	s.Require().Equal(http.StatusOK, rr.Code)

	resp := testutil.UnmarshalResponse[CourseListResponse](s.T(), rr)
	s.Require().Len(resp.Courses, 2)
	s.Equal("JEE", resp.Courses[0].RequiredExam)
	s.Empty(resp.Courses[1].RequiredExam)
	s.NotContains(rr.Body.String(), `"required_exam":""`)
}
