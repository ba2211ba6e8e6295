package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/executive-scheduler/internal/application"
)

type leaveService interface {
	CreateLeave(ctx context.Context, params application.CreatePeriodParams) (application.Leave, error)
	RescheduleLeave(ctx context.Context, params application.ReschedulePeriodParams) (application.Leave, error)
	DeleteLeave(ctx context.Context, params application.DeletePeriodParams) error
	GetLeave(ctx context.Context, principal application.Principal, id string) (application.Leave, error)
}

type engagementService interface {
	CreateEngagement(ctx context.Context, params application.CreatePeriodParams) (application.Engagement, error)
	RescheduleEngagement(ctx context.Context, params application.ReschedulePeriodParams) (application.Engagement, error)
	DeleteEngagement(ctx context.Context, params application.DeletePeriodParams) error
}

// LeaveHandler exposes leave period management.
type LeaveHandler struct {
	service   leaveService
	responder responder
}

func NewLeaveHandler(service leaveService, logger *slog.Logger) *LeaveHandler {
	return &LeaveHandler{service: service, responder: newResponder(logger)}
}

func (h *LeaveHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	params, ok := decodeCreatePeriod(h.responder, w, r)
	if !ok {
		return
	}

	leave, err := h.service.CreateLeave(r.Context(), params)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, toLeaveDTO(leave))
}

func (h *LeaveHandler) Get(w http.ResponseWriter, r *http.Request, id string) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidLeaveID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	leave, err := h.service.GetLeave(r.Context(), principal, id)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toLeaveDTO(leave))
}

func (h *LeaveHandler) Update(w http.ResponseWriter, r *http.Request, id string) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidLeaveID)
		return
	}

	params, ok := decodeReschedulePeriod(h.responder, w, r, id)
	if !ok {
		return
	}

	leave, err := h.service.RescheduleLeave(r.Context(), params)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toLeaveDTO(leave))
}

func (h *LeaveHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidLeaveID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	if err := h.service.DeleteLeave(r.Context(), application.DeletePeriodParams{Principal: principal, ID: id}); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

// EngagementHandler exposes engagement period management.
type EngagementHandler struct {
	service   engagementService
	responder responder
}

func NewEngagementHandler(service engagementService, logger *slog.Logger) *EngagementHandler {
	return &EngagementHandler{service: service, responder: newResponder(logger)}
}

func (h *EngagementHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	params, ok := decodeCreatePeriod(h.responder, w, r)
	if !ok {
		return
	}

	engagement, err := h.service.CreateEngagement(r.Context(), params)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, toEngagementDTO(engagement))
}

func (h *EngagementHandler) Update(w http.ResponseWriter, r *http.Request, id string) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEngagementID)
		return
	}

	params, ok := decodeReschedulePeriod(h.responder, w, r, id)
	if !ok {
		return
	}

	engagement, err := h.service.RescheduleEngagement(r.Context(), params)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toEngagementDTO(engagement))
}

func (h *EngagementHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEngagementID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	if err := h.service.DeleteEngagement(r.Context(), application.DeletePeriodParams{Principal: principal, ID: id}); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

type periodRequest struct {
	ExecutiveID string `json:"executive_id,omitempty"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Note        string `json:"note,omitempty"`
	Notify      bool   `json:"notify,omitempty"`
}

func decodeCreatePeriod(resp responder, w http.ResponseWriter, r *http.Request) (application.CreatePeriodParams, bool) {
	var req periodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return application.CreatePeriodParams{}, false
	}

	start, err := parseTimestamp(req.Start)
	if err != nil {
		resp.writeError(r.Context(), w, http.StatusBadRequest, errors.New("start must be a datetime"))
		return application.CreatePeriodParams{}, false
	}
	end, err := parseTimestamp(req.End)
	if err != nil {
		resp.writeError(r.Context(), w, http.StatusBadRequest, errors.New("end must be a datetime"))
		return application.CreatePeriodParams{}, false
	}

	principal, _ := PrincipalFromContext(r.Context())
	return application.CreatePeriodParams{
		Principal: principal,
		Input: application.PeriodInput{
			ExecutiveID: req.ExecutiveID,
			Start:       start,
			End:         end,
			Note:        req.Note,
		},
		Notify: req.Notify,
	}, true
}

func decodeReschedulePeriod(resp responder, w http.ResponseWriter, r *http.Request, id string) (application.ReschedulePeriodParams, bool) {
	var req periodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		resp.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return application.ReschedulePeriodParams{}, false
	}

	start, err := parseTimestamp(req.Start)
	if err != nil {
		resp.writeError(r.Context(), w, http.StatusBadRequest, errors.New("start must be a datetime"))
		return application.ReschedulePeriodParams{}, false
	}
	end, err := parseTimestamp(req.End)
	if err != nil {
		resp.writeError(r.Context(), w, http.StatusBadRequest, errors.New("end must be a datetime"))
		return application.ReschedulePeriodParams{}, false
	}

	principal, _ := PrincipalFromContext(r.Context())
	return application.ReschedulePeriodParams{
		Principal: principal,
		ID:        id,
		Start:     start,
		End:       end,
		Note:      req.Note,
	}, true
}

type leaveDTO struct {
	ID          string `json:"id"`
	ExecutiveID string `json:"executive_id"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Reason      string `json:"reason,omitempty"`
}

type engagementDTO struct {
	ID          string `json:"id"`
	ExecutiveID string `json:"executive_id"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Description string `json:"description,omitempty"`
}

func toLeaveDTO(leave application.Leave) leaveDTO {
	return leaveDTO{
		ID:          leave.ID,
		ExecutiveID: leave.ExecutiveID,
		Start:       formatTimestamp(leave.Start),
		End:         formatTimestamp(leave.End),
		Reason:      leave.Reason,
	}
}

func toEngagementDTO(engagement application.Engagement) engagementDTO {
	return engagementDTO{
		ID:          engagement.ID,
		ExecutiveID: engagement.ExecutiveID,
		Start:       formatTimestamp(engagement.Start),
		End:         formatTimestamp(engagement.End),
		Description: engagement.Description,
	}
}
