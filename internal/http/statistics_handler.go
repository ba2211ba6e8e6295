package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/example/executive-scheduler/internal/application"
)

type statisticsService interface {
	ExecutiveTime(ctx context.Context, r application.StatisticsRange) ([]application.ExecutiveTimeStat, error)
	Projects(ctx context.Context, r application.StatisticsRange) ([]application.ProjectStat, error)
	ExecutiveFraction(ctx context.Context, r application.StatisticsRange) ([]application.ExecutiveFractionStat, error)
}

type StatisticsHandler struct {
	service   statisticsService
	responder responder
}

func NewStatisticsHandler(service statisticsService, logger *slog.Logger) *StatisticsHandler {
	return &StatisticsHandler{service: service, responder: newResponder(logger)}
}

func (h *StatisticsHandler) ExecutiveTime(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	statsRange, err := parseStatisticsRange(r.URL.Query())
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	stats, err := h.service.ExecutiveTime(r.Context(), statsRange)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	payload := make([]executiveTimeDTO, 0, len(stats))
	for _, stat := range stats {
		payload = append(payload, executiveTimeDTO{
			ExecutiveID:   stat.ExecutiveID,
			ExecutiveName: stat.ExecutiveName,
			MeetingCount:  stat.MeetingCount,
			TotalHours:    stat.TotalHours,
		})
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, executiveTimeResponse{Statistics: payload})
}

func (h *StatisticsHandler) Projects(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	statsRange, err := parseStatisticsRange(r.URL.Query())
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	stats, err := h.service.Projects(r.Context(), statsRange)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	payload := make([]projectDTO, 0, len(stats))
	for _, stat := range stats {
		payload = append(payload, projectDTO{
			ProjectName:  stat.ProjectName,
			MeetingCount: stat.MeetingCount,
			TotalHours:   stat.TotalHours,
			ManHours:     stat.ManHours,
		})
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, projectsResponse{Statistics: payload})
}

func (h *StatisticsHandler) ExecutiveFraction(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	statsRange, err := parseStatisticsRange(r.URL.Query())
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	stats, err := h.service.ExecutiveFraction(r.Context(), statsRange)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	payload := make([]executiveFractionDTO, 0, len(stats))
	for _, stat := range stats {
		payload = append(payload, executiveFractionDTO{
			ExecutiveID:   stat.ExecutiveID,
			ExecutiveName: stat.ExecutiveName,
			MeetingHours:  stat.MeetingHours,
			WorkingHours:  stat.WorkingHours,
			Fraction:      stat.Fraction,
		})
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, executiveFractionResponse{Statistics: payload})
}

func parseStatisticsRange(query url.Values) (application.StatisticsRange, error) {
	from, err := parseDate(query.Get("from"))
	if err != nil {
		return application.StatisticsRange{}, errors.New("from must be provided as YYYY-MM-DD")
	}
	to, err := parseDate(query.Get("to"))
	if err != nil {
		return application.StatisticsRange{}, errors.New("to must be provided as YYYY-MM-DD")
	}
	return application.StatisticsRange{From: from, To: to}, nil
}

type executiveTimeDTO struct {
	ExecutiveID   string  `json:"executive_id"`
	ExecutiveName string  `json:"executive_name"`
	MeetingCount  int     `json:"meeting_count"`
	TotalHours    float64 `json:"total_hours"`
}

type executiveTimeResponse struct {
	Statistics []executiveTimeDTO `json:"statistics"`
}

type projectDTO struct {
	ProjectName  string  `json:"project_name"`
	MeetingCount int     `json:"meeting_count"`
	TotalHours   float64 `json:"total_hours"`
	ManHours     float64 `json:"man_hours"`
}

type projectsResponse struct {
	Statistics []projectDTO `json:"statistics"`
}

type executiveFractionDTO struct {
	ExecutiveID   string  `json:"executive_id"`
	ExecutiveName string  `json:"executive_name"`
	MeetingHours  float64 `json:"meeting_hours"`
	WorkingHours  float64 `json:"working_hours"`
	Fraction      float64 `json:"fraction"`
}

type executiveFractionResponse struct {
	Statistics []executiveFractionDTO `json:"statistics"`
}
