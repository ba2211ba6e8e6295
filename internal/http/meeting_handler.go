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

type meetingService interface {
	ScheduleMeeting(ctx context.Context, params application.ScheduleMeetingParams) (application.Meeting, error)
	RescheduleMeeting(ctx context.Context, params application.RescheduleMeetingParams) (application.Meeting, error)
	CancelMeeting(ctx context.Context, params application.CancelMeetingParams) error
	GetMeeting(ctx context.Context, principal application.Principal, id string) (application.Meeting, error)
	DayMeetings(ctx context.Context, userID string, date time.Time) ([]application.Meeting, error)
}

type MeetingHandler struct {
	service   meetingService
	responder responder
}

func NewMeetingHandler(service meetingService, logger *slog.Logger) *MeetingHandler {
	return &MeetingHandler{service: service, responder: newResponder(logger)}
}

func (h *MeetingHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req meetingRequest
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
	meeting, err := h.service.ScheduleMeeting(r.Context(), application.ScheduleMeetingParams{
		Principal: principal,
		Input:     input,
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, toMeetingDTO(meeting))
}

func (h *MeetingHandler) Get(w http.ResponseWriter, r *http.Request, id string) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidMeetingID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	meeting, err := h.service.GetMeeting(r.Context(), principal, id)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toMeetingDTO(meeting))
}

func (h *MeetingHandler) Update(w http.ResponseWriter, r *http.Request, id string) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidMeetingID)
		return
	}

	var req rescheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	start, end, err := req.period()
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	meeting, err := h.service.RescheduleMeeting(r.Context(), application.RescheduleMeetingParams{
		Principal: principal,
		MeetingID: id,
		Start:     start,
		End:       end,
	})
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toMeetingDTO(meeting))
}

func (h *MeetingHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if strings.TrimSpace(id) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidMeetingID)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())
	if err := h.service.CancelMeeting(r.Context(), application.CancelMeetingParams{
		Principal: principal,
		MeetingID: id,
	}); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

func (h *MeetingHandler) DaySchedule(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	query := r.URL.Query()
	date, err := parseDate(query.Get("date"))
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidDateParameter)
		return
	}

	userID := strings.TrimSpace(query.Get("user_id"))
	if userID == "" {
		if principal, ok := PrincipalFromContext(r.Context()); ok {
			userID = principal.UserID
		}
	}

	meetings, err := h.service.DayMeetings(r.Context(), userID, date)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, listMeetingsResponse{Meetings: toMeetingDTOs(meetings)})
}

type meetingRequest struct {
	Title       string   `json:"title"`
	Start       string   `json:"start"`
	End         string   `json:"end"`
	Venue       string   `json:"venue,omitempty"`
	ProjectName string   `json:"project_name,omitempty"`
	AttendeeIDs []string `json:"attendee_ids"`
}

func (req meetingRequest) toInput() (application.MeetingInput, error) {
	start, err := parseTimestamp(req.Start)
	if err != nil {
		return application.MeetingInput{}, errors.New("start must be a datetime")
	}
	end, err := parseTimestamp(req.End)
	if err != nil {
		return application.MeetingInput{}, errors.New("end must be a datetime")
	}
	return application.MeetingInput{
		Title:       req.Title,
		Start:       start,
		End:         end,
		Venue:       req.Venue,
		ProjectName: req.ProjectName,
		AttendeeIDs: req.AttendeeIDs,
	}, nil
}

type rescheduleRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func (req rescheduleRequest) period() (time.Time, time.Time, error) {
	start, err := parseTimestamp(req.Start)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("start must be a datetime")
	}
	end, err := parseTimestamp(req.End)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("end must be a datetime")
	}
	return start, end, nil
}

type meetingDTO struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Start       string   `json:"start"`
	End         string   `json:"end"`
	Venue       string   `json:"venue,omitempty"`
	ProjectName string   `json:"project_name,omitempty"`
	CreatorID   string   `json:"creator_id"`
	AttendeeIDs []string `json:"attendee_ids"`
}

type listMeetingsResponse struct {
	Meetings []meetingDTO `json:"meetings"`
}

func toMeetingDTO(meeting application.Meeting) meetingDTO {
	return meetingDTO{
		ID:          meeting.ID,
		Title:       meeting.Title,
		Start:       formatTimestamp(meeting.Start),
		End:         formatTimestamp(meeting.End),
		Venue:       meeting.Venue,
		ProjectName: meeting.ProjectName,
		CreatorID:   meeting.CreatorID,
		AttendeeIDs: meeting.AttendeeIDs,
	}
}

func toMeetingDTOs(meetings []application.Meeting) []meetingDTO {
	dtos := make([]meetingDTO, 0, len(meetings))
	for _, meeting := range meetings {
		dtos = append(dtos, toMeetingDTO(meeting))
	}
	return dtos
}
