package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"admissions/internal/course"
	"admissions/internal/eligibility"
	dErrors "admissions/pkg/domain-errors"
	"admissions/pkg/platform/httputil"
	"admissions/pkg/requestcontext"
)

// Service defines the interface for eligibility operations.
type Service interface {
	Check(ctx context.Context, raw eligibility.RawProfile) (*eligibility.Result, error)
	Courses() []course.Rule
}

// Handler wires eligibility endpoints to the eligibility service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an eligibility handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts eligibility endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/eligibility/check", h.HandleCheck)
	// Path used by earlier clients of the service.
	r.Post("/check-eligibility", h.HandleCheck)
	r.Get("/courses", h.HandleListCourses)
}

// HandleCheck handles POST /eligibility/check requests.
func (h *Handler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.Decode[CheckRequest](w, r, h.logger)
	if !ok {
		return
	}

	result, err := h.service.Check(ctx, req.ToRaw())
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeValidation) {
			h.logger.InfoContext(ctx, "eligibility request rejected",
				"request_id", requestID,
				"error", err,
			)
		} else {
			h.logger.ErrorContext(ctx, "eligibility check failed",
				"request_id", requestID,
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "eligibility evaluated",
		"request_id", requestID,
		"student_id", result.StudentID,
		"course", result.Course,
		"eligible", result.Eligible,
		"reason", result.Reason,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromResult(result))
}

// HandleListCourses handles GET /courses requests.
func (h *Handler) HandleListCourses(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, FromRules(h.service.Courses()))
}
