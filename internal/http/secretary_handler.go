package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/executive-scheduler/internal/application"
)

type broadcastService interface {
	Broadcast(ctx context.Context, params application.BroadcastParams) (int, error)
}

type SecretaryHandler struct {
	service   broadcastService
	responder responder
}

func NewSecretaryHandler(service broadcastService, logger *slog.Logger) *SecretaryHandler {
	return &SecretaryHandler{service: service, responder: newResponder(logger)}
}

func (h *SecretaryHandler) SendEmails(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req broadcastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	var date *time.Time
	if strings.TrimSpace(req.Date) != "" {
		parsed, err := parseDate(req.Date)
		if err != nil {
			h.responder.writeError(r.Context(), w, http.StatusBadRequest, errors.New("date must be provided as YYYY-MM-DD"))
			return
		}
		date = &parsed
	}

	principal, _ := PrincipalFromContext(r.Context())
	sent, err := h.service.Broadcast(r.Context(), application.BroadcastParams{
		Principal:    principal,
		ExecutiveIDs: req.ExecutiveIDs,
		Subject:      req.Subject,
		Body:         req.Body,
		Date:         date,
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, broadcastResponse{Sent: sent})
}

type broadcastRequest struct {
	ExecutiveIDs []string `json:"executive_ids,omitempty"`
	Subject      string   `json:"subject"`
	Body         string   `json:"body"`
	Date         string   `json:"date,omitempty"`
}

type broadcastResponse struct {
	Sent int `json:"sent"`
}
