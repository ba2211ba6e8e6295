package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/executive-scheduler/internal/application"
	"github.com/example/executive-scheduler/internal/interval"
)

type availabilityService interface {
	FreeSlots(ctx context.Context, params application.FreeSlotsParams) ([]interval.Slot, error)
	CommonSlots(ctx context.Context, params application.CommonSlotsParams) (application.CommonSlotsResult, error)
}

type blockingService interface {
	CreateEngagement(ctx context.Context, params application.CreatePeriodParams) (application.Engagement, error)
}

type AvailabilityHandler struct {
	availability availabilityService
	blocking     blockingService
	responder    responder
}

func NewAvailabilityHandler(availability availabilityService, blocking blockingService, logger *slog.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability, blocking: blocking, responder: newResponder(logger)}
}

func (h *AvailabilityHandler) FreeSlots(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.availability == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	date, err := parseDate(query.Get("date"))
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidDateParameter)
		return
	}

	participantID := strings.TrimSpace(query.Get("participant_id"))
	if participantID == "" {
		if principal, ok := PrincipalFromContext(r.Context()); ok {
			participantID = principal.UserID
		}
	}

	slots, err := h.availability.FreeSlots(r.Context(), application.FreeSlotsParams{
		ParticipantID: participantID,
		Date:          date,
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, slotsResponse{Slots: toSlotDTOs(slots)})
}

func (h *AvailabilityHandler) CommonSlots(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.availability == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	date, err := parseDate(query.Get("date"))
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidDateParameter)
		return
	}

	organizerID := strings.TrimSpace(query.Get("organizer_id"))
	if organizerID == "" {
		if principal, ok := PrincipalFromContext(r.Context()); ok {
			organizerID = principal.UserID
		}
	}

	result, err := h.availability.CommonSlots(r.Context(), application.CommonSlotsParams{
		OrganizerID: organizerID,
		AttendeeIDs: splitIDList(query.Get("attendee_ids")),
		Date:        date,
	})
	if err != nil {
		if errors.Is(err, application.ErrNoAvailability) {
			h.responder.writeJSON(r.Context(), w, http.StatusNotFound, commonSlotsResponse{
				ErrorCode:  "NO_AVAILABILITY",
				Message:    "no common slot remains on the requested day",
				Escalation: toEscalationDTOPtr(result.Escalation),
			})
			return
		}
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, commonSlotsResponse{Slots: toSlotDTOs(result.Slots)})
}

// Block records a busy period as an engagement on behalf of an executive and
// notifies them. Restricted to secretaries by the router.
func (h *AvailabilityHandler) Block(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.blocking == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req blockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	input, err := req.toInput()
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	engagement, err := h.blocking.CreateEngagement(r.Context(), application.CreatePeriodParams{
		Principal: principal,
		Input:     input,
		Notify:    true,
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, toEngagementDTO(engagement))
}

type blockRequest struct {
	ExecutiveID string `json:"executive_id"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Note        string `json:"note,omitempty"`
}

func (req blockRequest) toInput() (application.PeriodInput, error) {
	start, err := parseTimestamp(req.Start)
	if err != nil {
		return application.PeriodInput{}, errors.New("start must be a datetime")
	}
	end, err := parseTimestamp(req.End)
	if err != nil {
		return application.PeriodInput{}, errors.New("end must be a datetime")
	}
	note := strings.TrimSpace(req.Note)
	if note == "" {
		note = "blocked by secretary"
	}
	return application.PeriodInput{
		ExecutiveID: req.ExecutiveID,
		Start:       start,
		End:         end,
		Note:        note,
	}, nil
}

type slotDTO struct {
	Start      string `json:"start"`
	End        string `json:"end"`
	Label      string `json:"label"`
	EndLabel   string `json:"end_label"`
	StartValue string `json:"start_value"`
	EndValue   string `json:"end_value"`
}

type slotsResponse struct {
	Slots []slotDTO `json:"slots"`
}

type commonSlotsResponse struct {
	Slots      []slotDTO      `json:"slots,omitempty"`
	ErrorCode  string         `json:"error_code,omitempty"`
	Message    string         `json:"message,omitempty"`
	Escalation *escalationDTO `json:"escalation,omitempty"`
}

func toSlotDTOs(slots []interval.Slot) []slotDTO {
	dtos := make([]slotDTO, 0, len(slots))
	for _, slot := range slots {
		dtos = append(dtos, slotDTO{
			Start:      formatTimestamp(slot.Start),
			End:        formatTimestamp(slot.End),
			Label:      slot.Label,
			EndLabel:   slot.EndLabel,
			StartValue: slot.StartISO,
			EndValue:   slot.EndISO,
		})
	}
	return dtos
}

func splitIDList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	return ids
}
