package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/example/executive-scheduler/internal/application"
)

type userService interface {
	Register(ctx context.Context, params application.RegisterUserParams) (application.User, error)
	Profile(ctx context.Context, principal application.Principal) (application.User, error)
	ListByRole(ctx context.Context, role string) ([]application.User, error)
	DaySchedule(ctx context.Context, principal application.Principal, date time.Time) ([]application.DayScheduleEntry, error)
}

type UserHandler struct {
	service   userService
	responder responder
}

func NewUserHandler(service userService, logger *slog.Logger) *UserHandler {
	return &UserHandler{service: service, responder: newResponder(logger)}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	user, err := h.service.Register(r.Context(), application.RegisterUserParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, toUserDTO(user))
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	users, err := h.service.ListByRole(r.Context(), r.URL.Query().Get("role"))
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listUsersResponse{Users: toUserDTOs(users)})
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	user, err := h.service.Profile(r.Context(), principal)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toUserDTO(user))
}

func (h *UserHandler) DaySchedule(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	date := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidDateParameter)
			return
		}
		date = parsed
	}

	principal, _ := PrincipalFromContext(r.Context())
	entries, err := h.service.DaySchedule(r.Context(), principal, date)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, dayScheduleResponse{Entries: toScheduleEntryDTOs(entries)})
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type userDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type listUsersResponse struct {
	Users []userDTO `json:"users"`
}

type scheduleEntryDTO struct {
	Kind  string `json:"kind"`
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type dayScheduleResponse struct {
	Entries []scheduleEntryDTO `json:"entries"`
}

func toUserDTO(user application.User) userDTO {
	return userDTO{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role}
}

func toUserDTOs(users []application.User) []userDTO {
	dtos := make([]userDTO, 0, len(users))
	for _, user := range users {
		dtos = append(dtos, toUserDTO(user))
	}
	return dtos
}

func toScheduleEntryDTOs(entries []application.DayScheduleEntry) []scheduleEntryDTO {
	dtos := make([]scheduleEntryDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, scheduleEntryDTO{
			Kind:  entry.Kind,
			ID:    entry.ID,
			Title: entry.Title,
			Start: formatTimestamp(entry.Start),
			End:   formatTimestamp(entry.End),
		})
	}
	return dtos
}
