package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"placementportal/internal/delivery/http/helpers"
	"placementportal/internal/delivery/http/middleware"
	"placementportal/internal/domain"
)

// CreateInterviewRequest is the request body for POST /interviews.
type CreateInterviewRequest struct {
	Topic            string    `json:"topic"`
	Details          string    `json:"details"`
	MeetingReference string    `json:"meeting_reference"`
	StartTime        time.Time `json:"start_time"`
	DurationMinutes  int       `json:"duration_minutes"`
}

// Validate implements Validator. Interval rules are checked by the booking service.
func (c CreateInterviewRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Topic) == "" {
		errs = append(errs, "topic is required")
	}
	if strings.TrimSpace(c.MeetingReference) == "" {
		errs = append(errs, "meeting_reference is required")
	}
	return errs
}

// SlotSuccessResponse is the success envelope for endpoints returning one slot.
type SlotSuccessResponse struct {
	Data  *domain.Slot      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// SlotListSuccessResponse is the success envelope for GET /interviews/mine.
type SlotListSuccessResponse struct {
	Data  []*domain.Slot    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// AvailableSlotsResponse is the data of GET /interviews/available.
type AvailableSlotsResponse struct {
	Slots      []*domain.Slot         `json:"slots"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// AvailableSlotsSuccessResponse is the success envelope for GET /interviews/available.
type AvailableSlotsSuccessResponse struct {
	Data  AvailableSlotsResponse `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

type InterviewController struct {
	Logger  *slog.Logger
	Service domain.BookingService
}

func NewInterviewController(logger *slog.Logger, svc domain.BookingService) *InterviewController {
	return &InterviewController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateInterview godoc
// @Summary Create an interview slot
// @Description Offer a mock interview. The caller becomes the owner. start_time must be in the future and within the booking horizon; duration_minutes is 30, 45 or 60. Fails when the slot overlaps any non-cancelled slot the caller owns or has accepted.
// @Tags interviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateInterviewRequest true "Slot data"
// @Success 201 {object} controllers.SlotSuccessResponse "data contains the created slot"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or invalid_interval"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: scheduling_conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /interviews [post]
func (c *InterviewController) CreateInterview(w http.ResponseWriter, r *http.Request) {
	var req CreateInterviewRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	slot, err := c.Service.CreateSlot(r.Context(), userID, domain.CreateSlotInput{
		Topic:            req.Topic,
		Details:          req.Details,
		MeetingReference: req.MeetingReference,
		Interval:         domain.NewInterval(req.StartTime, req.DurationMinutes),
	})
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, slot)
}

// ListAvailable godoc
// @Summary List open interview slots
// @Description Slots that are open, not cancelled, not owned by the caller and start in the future, soonest first.
// @Tags interviews
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.AvailableSlotsSuccessResponse "data contains slots and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /interviews/available [get]
func (c *InterviewController) ListAvailable(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	params := helpers.ParsePagination(r)
	slots, total, err := c.Service.ListAvailable(r.Context(), userID, params)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, AvailableSlotsResponse{
		Slots:      slots,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// ListMine godoc
// @Summary List my interview slots
// @Description Slots the caller owns or has accepted, including cancelled ones, latest first.
// @Tags interviews
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.SlotListSuccessResponse "data is an array of slots"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /interviews/mine [get]
func (c *InterviewController) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	slots, err := c.Service.ListMine(r.Context(), userID)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, slots)
}

// GetInterview godoc
// @Summary Get an interview slot
// @Tags interviews
// @Produce json
// @Security BearerAuth
// @Param slotID path string true "Slot ID (UUID)"
// @Success 200 {object} controllers.SlotSuccessResponse "data contains the slot"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /interviews/{slotID} [get]
func (c *InterviewController) GetInterview(w http.ResponseWriter, r *http.Request) {
	slotID, _, ok := c.slotRequest(w, r)
	if !ok {
		return
	}
	slot, err := c.Service.GetSlot(r.Context(), slotID)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, slot)
}

// AcceptInterview godoc
// @Summary Accept an interview slot
// @Description Become the assignee of an open slot. Fails when the slot is the caller's own, already taken, cancelled, started, or overlaps the caller's schedule. When two participants race, exactly one wins.
// @Tags interviews
// @Produce json
// @Security BearerAuth
// @Param slotID path string true "Slot ID (UUID)"
// @Success 200 {object} controllers.SlotSuccessResponse "data contains the accepted slot"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: self_assignment"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: already_assigned, slot_cancelled, too_late or scheduling_conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /interviews/{slotID}/accept [post]
func (c *InterviewController) AcceptInterview(w http.ResponseWriter, r *http.Request) {
	slotID, userID, ok := c.slotRequest(w, r)
	if !ok {
		return
	}
	slot, err := c.Service.AcceptSlot(r.Context(), userID, slotID)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, slot)
}

// CancelInterview godoc
// @Summary Cancel an interview slot
// @Description Owner cancels a slot before it starts. The slot stays visible as cancelled and frees both participants' time.
// @Tags interviews
// @Produce json
// @Security BearerAuth
// @Param slotID path string true "Slot ID (UUID)"
// @Success 200 {object} controllers.SlotSuccessResponse "data contains the cancelled slot"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: slot_cancelled or too_late"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /interviews/{slotID}/cancel [post]
func (c *InterviewController) CancelInterview(w http.ResponseWriter, r *http.Request) {
	slotID, userID, ok := c.slotRequest(w, r)
	if !ok {
		return
	}
	slot, err := c.Service.CancelAsOwner(r.Context(), userID, slotID)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, slot)
}

// ReleaseInterview godoc
// @Summary Release an accepted interview slot
// @Description Assignee withdraws before the slot starts; the slot becomes open again.
// @Tags interviews
// @Produce json
// @Security BearerAuth
// @Param slotID path string true "Slot ID (UUID)"
// @Success 200 {object} controllers.SlotSuccessResponse "data contains the reopened slot"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: slot_cancelled or too_late"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /interviews/{slotID}/release [post]
func (c *InterviewController) ReleaseInterview(w http.ResponseWriter, r *http.Request) {
	slotID, userID, ok := c.slotRequest(w, r)
	if !ok {
		return
	}
	slot, err := c.Service.ReleaseAsAssignee(r.Context(), userID, slotID)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, slot)
}

// DeleteInterview godoc
// @Summary Delete an interview slot
// @Description Owner removes an open slot before it starts. An accepted slot has to be cancelled instead.
// @Tags interviews
// @Security BearerAuth
// @Param slotID path string true "Slot ID (UUID)"
// @Success 204 "No Content"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: already_assigned, slot_cancelled or too_late"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /interviews/{slotID} [delete]
func (c *InterviewController) DeleteInterview(w http.ResponseWriter, r *http.Request) {
	slotID, userID, ok := c.slotRequest(w, r)
	if !ok {
		return
	}
	if err := c.Service.DeleteSlot(r.Context(), userID, slotID); err != nil {
		c.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// slotRequest reads the slotID path value and the authenticated participant.
// It writes the error response and returns ok=false when either is missing or malformed.
func (c *InterviewController) slotRequest(w http.ResponseWriter, r *http.Request) (slotID, userID string, ok bool) {
	userID, ok = middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return "", "", false
	}
	id, err := uuid.Parse(r.PathValue("slotID"))
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid slotID")
		return "", "", false
	}
	return id.String(), userID, true
}

// writeError maps booking errors to status codes. Anything unrecognised is
// logged and reported as a generic internal error.
func (c *InterviewController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var conflict *domain.ConflictError
	switch {
	case errors.As(err, &conflict):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeSchedulingConflict, conflict.Error())
	case errors.Is(err, domain.ErrInvalidInterval):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeInvalidInterval, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "interview slot not found")
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "not allowed to modify this interview slot")
	case errors.Is(err, domain.ErrSelfAssignment):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeSelfAssignment, "cannot accept your own interview slot")
	case errors.Is(err, domain.ErrSchedulingConflict):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeSchedulingConflict, err.Error())
	case errors.Is(err, domain.ErrAlreadyAssigned):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeAlreadyAssigned, "interview slot already assigned")
	case errors.Is(err, domain.ErrSlotCancelled):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeSlotCancelled, "interview slot is cancelled")
	case errors.Is(err, domain.ErrTooLate):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeTooLate, "interview slot has already started")
	case errors.Is(err, domain.ErrConcurrentUpdate):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConcurrentUpdate, "interview slot changed, retry the request")
	default:
		c.Logger.ErrorContext(r.Context(), "request failed",
			"path", r.URL.Path,
			"method", r.Method,
			"request_id", middleware.RequestIDFromContext(r.Context()),
			"err", err,
		)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal server error")
	}
}
