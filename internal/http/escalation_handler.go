package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/executive-scheduler/internal/application"
)

type escalationService interface {
	ListEscalations(ctx context.Context, principal application.Principal) ([]application.Escalation, error)
	ResolveEscalation(ctx context.Context, principal application.Principal, id string) error
}

type EscalationHandler struct {
	service   escalationService
	responder responder
}

func NewEscalationHandler(service escalationService, logger *slog.Logger) *EscalationHandler {
	return &EscalationHandler{service: service, responder: newResponder(logger)}
}

func (h *EscalationHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	escalations, err := h.service.ListEscalations(r.Context(), principal)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listEscalationsResponse{Escalations: toEscalationDTOs(escalations)})
}

func (h *EscalationHandler) Resolve(w http.ResponseWriter, r *http.Request, id string) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidEscalationID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	if err := h.service.ResolveEscalation(r.Context(), principal, id); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

type escalationDTO struct {
	ID          string               `json:"id"`
	MeetingDate string               `json:"meeting_date"`
	Executives  []executiveContactDTO `json:"executives"`
	CreatedAt   string               `json:"created_at"`
}

type executiveContactDTO struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type listEscalationsResponse struct {
	Escalations []escalationDTO `json:"escalations"`
}

func toEscalationDTO(escalation application.Escalation) escalationDTO {
	contacts := make([]executiveContactDTO, 0, len(escalation.Executives))
	for _, contact := range escalation.Executives {
		contacts = append(contacts, executiveContactDTO{Name: contact.Name, Email: contact.Email})
	}
	return escalationDTO{
		ID:          escalation.ID,
		MeetingDate: escalation.MeetingDate.Format("2006-01-02"),
		Executives:  contacts,
		CreatedAt:   formatTimestamp(escalation.CreatedAt),
	}
}

func toEscalationDTOPtr(escalation *application.Escalation) *escalationDTO {
	if escalation == nil {
		return nil
	}
	dto := toEscalationDTO(*escalation)
	return &dto
}

func toEscalationDTOs(escalations []application.Escalation) []escalationDTO {
	dtos := make([]escalationDTO, 0, len(escalations))
	for _, escalation := range escalations {
		dtos = append(dtos, toEscalationDTO(escalation))
	}
	return dtos
}
