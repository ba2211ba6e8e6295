package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/example/executive-scheduler/internal/application"
	"github.com/example/executive-scheduler/internal/config"
	httptransport "github.com/example/executive-scheduler/internal/http"
	"github.com/example/executive-scheduler/internal/logging"
	"github.com/example/executive-scheduler/internal/notify"
	"github.com/example/executive-scheduler/internal/persistence"
	"github.com/example/executive-scheduler/internal/persistence/sqlite"
	"github.com/example/executive-scheduler/internal/scheduler"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// .env files are optional; the environment always wins.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	pool, err := sqlite.NewConnectionPool(cfg.SQLiteDSN)
	if err != nil {
		logger.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := pool.Close(); cerr != nil {
			logger.Error("failed to close storage", "error", cerr)
		}
	}()

	if err := sqlite.Migrate(context.Background(), pool); err != nil {
		logger.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	idGenerator := uuid.NewString
	tokenGenerator := uuid.NewString
	now := time.Now

	var mailer notify.Mailer
	if cfg.SMTPEnabled() {
		mailer = notify.NewSMTPMailer(notify.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			From:     cfg.SMTPFrom,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
		})
	} else {
		logger.Info("SMTP is not configured, notifications will be logged only")
		mailer = notify.NewNoopMailer()
	}

	userRepo := sqlite.NewUserRepository(pool)
	accounts := newAccountRepositoryAdapter(userRepo)
	userDirectory := newUserDirectoryAdapter(userRepo)
	credentialStore := newCredentialStoreAdapter(userRepo)
	sessionRepo := newSessionRepositoryAdapter(sqlite.NewSessionRepository(pool))
	meetingRepo := newMeetingRepositoryAdapter(sqlite.NewMeetingRepository(pool))
	leaveRepo := newLeaveRepositoryAdapter(sqlite.NewLeaveRepository(pool))
	engagementRepo := newEngagementRepositoryAdapter(sqlite.NewEngagementRepository(pool))
	escalationRepo := newEscalationRepositoryAdapter(sqlite.NewEscalationRepository(pool))

	calendar := application.NewBusyCalendar(meetingRepo, leaveRepo, engagementRepo)
	locker := scheduler.NewParticipantLocker()

	authService := application.NewAuthService(credentialStore, sessionRepo, nil, tokenGenerator, now, cfg.SessionTTL, logger)
	userService := application.NewUserService(accounts, calendar, nil, idGenerator, now, logger)
	availabilityService := application.NewAvailabilityService(calendar, userDirectory, escalationRepo, mailer, cfg.SecretaryEmail, idGenerator, now, logger)
	meetingService := application.NewMeetingService(meetingRepo, calendar, userDirectory, locker, mailer, idGenerator, now, logger)
	leaveService := application.NewLeaveService(leaveRepo, calendar, userDirectory, locker, mailer, idGenerator, now, logger)
	engagementService := application.NewEngagementService(engagementRepo, calendar, userDirectory, locker, mailer, idGenerator, now, logger)
	escalationService := application.NewEscalationService(escalationRepo, logger)
	secretaryService := application.NewSecretaryService(userDirectory, mailer, logger)
	statisticsService := application.NewStatisticsService(meetingRepo, userDirectory, logger)
	reminderService := application.NewReminderService(meetingRepo, userDirectory, mailer, logger)

	router := httptransport.NewRouter(httptransport.RouterConfig{
		Auth:          httptransport.NewAuthHandler(authService, logger),
		Users:         httptransport.NewUserHandler(userService, logger),
		Availability:  httptransport.NewAvailabilityHandler(availabilityService, engagementService, logger),
		Meetings:      httptransport.NewMeetingHandler(meetingService, logger),
		Leaves:        httptransport.NewLeaveHandler(leaveService, logger),
		Engagements:   httptransport.NewEngagementHandler(engagementService, logger),
		Escalations:   httptransport.NewEscalationHandler(escalationService, logger),
		Secretary:     httptransport.NewSecretaryHandler(secretaryService, logger),
		Statistics:    httptransport.NewStatisticsHandler(statisticsService, logger),
		Session:       httptransport.RequireSession(authService, logger),
		SecretaryOnly: httptransport.RequireSecretary(logger),
		Middleware:    []func(http.Handler) http.Handler{httptransport.RequestLogger(logger)},
	})

	reminders := cron.New()
	if _, err := reminders.AddFunc(cfg.ReminderSchedule, func() {
		reminderCtx, cancel := context.WithTimeout(logging.WithLogger(context.Background(), logger), time.Minute)
		defer cancel()
		sent, err := reminderService.ProcessPendingReminders(reminderCtx, time.Now())
		if err != nil {
			logger.Error("reminder pass failed", "error", err)
			return
		}
		if sent > 0 {
			logger.Info("meeting reminders delivered", "count", sent)
		}
	}); err != nil {
		logger.Error("failed to schedule reminder pass", "error", err, "schedule", cfg.ReminderSchedule)
		os.Exit(1)
	}
	reminders.Start()
	defer reminders.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("executive scheduler API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}

// mapStorageError converts persistence sentinels into their application layer
// counterparts so services match on a single error vocabulary.
func mapStorageError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, persistence.ErrNotFound):
		return application.ErrNotFound
	case errors.Is(err, persistence.ErrDuplicate):
		return application.ErrAlreadyExists
	}
	return err
}

type accountRepositoryAdapter struct {
	repo persistence.UserRepository
}

func newAccountRepositoryAdapter(repo persistence.UserRepository) *accountRepositoryAdapter {
	return &accountRepositoryAdapter{repo: repo}
}

func (a *accountRepositoryAdapter) CreateUser(ctx context.Context, credentials application.UserCredentials) (application.User, error) {
	if err := a.repo.CreateUser(ctx, toPersistenceUser(credentials)); err != nil {
		return application.User{}, mapStorageError(err)
	}
	stored, err := a.repo.GetUser(ctx, credentials.User.ID)
	if err != nil {
		return application.User{}, mapStorageError(err)
	}
	return toApplicationUser(stored), nil
}

func (a *accountRepositoryAdapter) GetUser(ctx context.Context, id string) (application.User, error) {
	stored, err := a.repo.GetUser(ctx, id)
	if err != nil {
		return application.User{}, mapStorageError(err)
	}
	return toApplicationUser(stored), nil
}

func (a *accountRepositoryAdapter) ListUsers(ctx context.Context, filter application.UserDirectoryFilter) ([]application.User, error) {
	return listUsers(ctx, a.repo, filter)
}

type userDirectoryAdapter struct {
	repo persistence.UserRepository
}

func newUserDirectoryAdapter(repo persistence.UserRepository) *userDirectoryAdapter {
	return &userDirectoryAdapter{repo: repo}
}

func (a *userDirectoryAdapter) GetUser(ctx context.Context, id string) (application.User, error) {
	stored, err := a.repo.GetUser(ctx, id)
	if err != nil {
		return application.User{}, mapStorageError(err)
	}
	return toApplicationUser(stored), nil
}

func (a *userDirectoryAdapter) ListUsers(ctx context.Context, filter application.UserDirectoryFilter) ([]application.User, error) {
	return listUsers(ctx, a.repo, filter)
}

func listUsers(ctx context.Context, repo persistence.UserRepository, filter application.UserDirectoryFilter) ([]application.User, error) {
	models, err := repo.ListUsers(ctx, persistence.UserFilter{
		Role: filter.Role,
		IDs:  append([]string(nil), filter.IDs...),
	})
	if err != nil {
		return nil, mapStorageError(err)
	}
	if len(models) == 0 {
		return nil, nil
	}
	users := make([]application.User, 0, len(models))
	for _, model := range models {
		users = append(users, toApplicationUser(model))
	}
	return users, nil
}

type credentialStoreAdapter struct {
	repo persistence.UserRepository
}

func newCredentialStoreAdapter(repo persistence.UserRepository) *credentialStoreAdapter {
	return &credentialStoreAdapter{repo: repo}
}

func (a *credentialStoreAdapter) GetUserCredentialsByEmail(ctx context.Context, email string) (application.UserCredentials, error) {
	stored, err := a.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return application.UserCredentials{}, mapStorageError(err)
	}
	return application.UserCredentials{
		User:         toApplicationUser(stored),
		PasswordHash: stored.PasswordHash,
	}, nil
}

func (a *credentialStoreAdapter) GetUser(ctx context.Context, id string) (application.User, error) {
	stored, err := a.repo.GetUser(ctx, id)
	if err != nil {
		return application.User{}, mapStorageError(err)
	}
	return toApplicationUser(stored), nil
}

type sessionRepositoryAdapter struct {
	repo persistence.SessionRepository
}

func newSessionRepositoryAdapter(repo persistence.SessionRepository) *sessionRepositoryAdapter {
	return &sessionRepositoryAdapter{repo: repo}
}

func (a *sessionRepositoryAdapter) CreateSession(ctx context.Context, session application.Session) (application.Session, error) {
	stored, err := a.repo.CreateSession(ctx, toPersistenceSession(session))
	if err != nil {
		return application.Session{}, mapStorageError(err)
	}
	return toApplicationSession(stored), nil
}

func (a *sessionRepositoryAdapter) GetSession(ctx context.Context, token string) (application.Session, error) {
	stored, err := a.repo.GetSession(ctx, token)
	if err != nil {
		return application.Session{}, mapStorageError(err)
	}
	return toApplicationSession(stored), nil
}

func (a *sessionRepositoryAdapter) RevokeSession(ctx context.Context, token string, revokedAt time.Time) (application.Session, error) {
	stored, err := a.repo.RevokeSession(ctx, token, revokedAt)
	if err != nil {
		return application.Session{}, mapStorageError(err)
	}
	return toApplicationSession(stored), nil
}

func (a *sessionRepositoryAdapter) DeleteExpiredSessions(ctx context.Context, reference time.Time) error {
	return mapStorageError(a.repo.DeleteExpiredSessions(ctx, reference))
}

type meetingRepositoryAdapter struct {
	repo persistence.MeetingRepository
}

func newMeetingRepositoryAdapter(repo persistence.MeetingRepository) *meetingRepositoryAdapter {
	return &meetingRepositoryAdapter{repo: repo}
}

func (a *meetingRepositoryAdapter) CreateMeeting(ctx context.Context, meeting application.Meeting) (application.Meeting, error) {
	if err := a.repo.CreateMeeting(ctx, toPersistenceMeeting(meeting)); err != nil {
		return application.Meeting{}, mapStorageError(err)
	}
	stored, err := a.repo.GetMeeting(ctx, meeting.ID)
	if err != nil {
		return application.Meeting{}, mapStorageError(err)
	}
	return toApplicationMeeting(stored), nil
}

func (a *meetingRepositoryAdapter) UpdateMeeting(ctx context.Context, meeting application.Meeting) (application.Meeting, error) {
	if err := a.repo.UpdateMeeting(ctx, toPersistenceMeeting(meeting)); err != nil {
		return application.Meeting{}, mapStorageError(err)
	}
	stored, err := a.repo.GetMeeting(ctx, meeting.ID)
	if err != nil {
		return application.Meeting{}, mapStorageError(err)
	}
	return toApplicationMeeting(stored), nil
}

func (a *meetingRepositoryAdapter) GetMeeting(ctx context.Context, id string) (application.Meeting, error) {
	stored, err := a.repo.GetMeeting(ctx, id)
	if err != nil {
		return application.Meeting{}, mapStorageError(err)
	}
	return toApplicationMeeting(stored), nil
}

func (a *meetingRepositoryAdapter) ListMeetings(ctx context.Context, filter application.MeetingRepositoryFilter) ([]application.Meeting, error) {
	models, err := a.repo.ListMeetings(ctx, persistence.MeetingFilter{
		AttendeeIDs: append([]string(nil), filter.AttendeeIDs...),
		StartsAfter: filter.StartsAfter,
		EndsBefore:  filter.EndsBefore,
	})
	if err != nil {
		return nil, mapStorageError(err)
	}
	return toApplicationMeetings(models), nil
}

func (a *meetingRepositoryAdapter) DeleteMeeting(ctx context.Context, id string) error {
	return mapStorageError(a.repo.DeleteMeeting(ctx, id))
}

func (a *meetingRepositoryAdapter) ListPendingReminders(ctx context.Context, reference time.Time) ([]application.Meeting, error) {
	models, err := a.repo.ListPendingReminders(ctx, reference)
	if err != nil {
		return nil, mapStorageError(err)
	}
	return toApplicationMeetings(models), nil
}

func (a *meetingRepositoryAdapter) MarkReminderSent(ctx context.Context, id string) error {
	return mapStorageError(a.repo.MarkReminderSent(ctx, id))
}

type leaveRepositoryAdapter struct {
	repo persistence.LeaveRepository
}

func newLeaveRepositoryAdapter(repo persistence.LeaveRepository) *leaveRepositoryAdapter {
	return &leaveRepositoryAdapter{repo: repo}
}

func (a *leaveRepositoryAdapter) CreateLeave(ctx context.Context, leave application.Leave) (application.Leave, error) {
	if err := a.repo.CreateLeave(ctx, toPersistenceLeave(leave)); err != nil {
		return application.Leave{}, mapStorageError(err)
	}
	stored, err := a.repo.GetLeave(ctx, leave.ID)
	if err != nil {
		return application.Leave{}, mapStorageError(err)
	}
	return toApplicationLeave(stored), nil
}

func (a *leaveRepositoryAdapter) UpdateLeave(ctx context.Context, leave application.Leave) (application.Leave, error) {
	if err := a.repo.UpdateLeave(ctx, toPersistenceLeave(leave)); err != nil {
		return application.Leave{}, mapStorageError(err)
	}
	stored, err := a.repo.GetLeave(ctx, leave.ID)
	if err != nil {
		return application.Leave{}, mapStorageError(err)
	}
	return toApplicationLeave(stored), nil
}

func (a *leaveRepositoryAdapter) GetLeave(ctx context.Context, id string) (application.Leave, error) {
	stored, err := a.repo.GetLeave(ctx, id)
	if err != nil {
		return application.Leave{}, mapStorageError(err)
	}
	return toApplicationLeave(stored), nil
}

func (a *leaveRepositoryAdapter) ListLeaves(ctx context.Context, filter application.PeriodRepositoryFilter) ([]application.Leave, error) {
	models, err := a.repo.ListLeaves(ctx, toPersistencePeriodFilter(filter))
	if err != nil {
		return nil, mapStorageError(err)
	}
	if len(models) == 0 {
		return nil, nil
	}
	leaves := make([]application.Leave, 0, len(models))
	for _, model := range models {
		leaves = append(leaves, toApplicationLeave(model))
	}
	return leaves, nil
}

func (a *leaveRepositoryAdapter) DeleteLeave(ctx context.Context, id string) error {
	return mapStorageError(a.repo.DeleteLeave(ctx, id))
}

type engagementRepositoryAdapter struct {
	repo persistence.EngagementRepository
}

func newEngagementRepositoryAdapter(repo persistence.EngagementRepository) *engagementRepositoryAdapter {
	return &engagementRepositoryAdapter{repo: repo}
}

func (a *engagementRepositoryAdapter) CreateEngagement(ctx context.Context, engagement application.Engagement) (application.Engagement, error) {
	if err := a.repo.CreateEngagement(ctx, toPersistenceEngagement(engagement)); err != nil {
		return application.Engagement{}, mapStorageError(err)
	}
	stored, err := a.repo.GetEngagement(ctx, engagement.ID)
	if err != nil {
		return application.Engagement{}, mapStorageError(err)
	}
	return toApplicationEngagement(stored), nil
}

func (a *engagementRepositoryAdapter) UpdateEngagement(ctx context.Context, engagement application.Engagement) (application.Engagement, error) {
	if err := a.repo.UpdateEngagement(ctx, toPersistenceEngagement(engagement)); err != nil {
		return application.Engagement{}, mapStorageError(err)
	}
	stored, err := a.repo.GetEngagement(ctx, engagement.ID)
	if err != nil {
		return application.Engagement{}, mapStorageError(err)
	}
	return toApplicationEngagement(stored), nil
}

func (a *engagementRepositoryAdapter) GetEngagement(ctx context.Context, id string) (application.Engagement, error) {
	stored, err := a.repo.GetEngagement(ctx, id)
	if err != nil {
		return application.Engagement{}, mapStorageError(err)
	}
	return toApplicationEngagement(stored), nil
}

func (a *engagementRepositoryAdapter) ListEngagements(ctx context.Context, filter application.PeriodRepositoryFilter) ([]application.Engagement, error) {
	models, err := a.repo.ListEngagements(ctx, toPersistencePeriodFilter(filter))
	if err != nil {
		return nil, mapStorageError(err)
	}
	if len(models) == 0 {
		return nil, nil
	}
	engagements := make([]application.Engagement, 0, len(models))
	for _, model := range models {
		engagements = append(engagements, toApplicationEngagement(model))
	}
	return engagements, nil
}

func (a *engagementRepositoryAdapter) DeleteEngagement(ctx context.Context, id string) error {
	return mapStorageError(a.repo.DeleteEngagement(ctx, id))
}

type escalationRepositoryAdapter struct {
	repo persistence.EscalationRepository
}

func newEscalationRepositoryAdapter(repo persistence.EscalationRepository) *escalationRepositoryAdapter {
	return &escalationRepositoryAdapter{repo: repo}
}

func (a *escalationRepositoryAdapter) CreateEscalation(ctx context.Context, escalation application.Escalation) (application.Escalation, error) {
	if err := a.repo.CreateEscalation(ctx, toPersistenceEscalation(escalation)); err != nil {
		return application.Escalation{}, mapStorageError(err)
	}
	stored, err := a.repo.GetEscalation(ctx, escalation.ID)
	if err != nil {
		return application.Escalation{}, mapStorageError(err)
	}
	return toApplicationEscalation(stored), nil
}

func (a *escalationRepositoryAdapter) GetEscalation(ctx context.Context, id string) (application.Escalation, error) {
	stored, err := a.repo.GetEscalation(ctx, id)
	if err != nil {
		return application.Escalation{}, mapStorageError(err)
	}
	return toApplicationEscalation(stored), nil
}

func (a *escalationRepositoryAdapter) ListEscalations(ctx context.Context) ([]application.Escalation, error) {
	models, err := a.repo.ListEscalations(ctx)
	if err != nil {
		return nil, mapStorageError(err)
	}
	if len(models) == 0 {
		return nil, nil
	}
	escalations := make([]application.Escalation, 0, len(models))
	for _, model := range models {
		escalations = append(escalations, toApplicationEscalation(model))
	}
	return escalations, nil
}

func (a *escalationRepositoryAdapter) DeleteEscalation(ctx context.Context, id string) error {
	return mapStorageError(a.repo.DeleteEscalation(ctx, id))
}

func toPersistencePeriodFilter(filter application.PeriodRepositoryFilter) persistence.PeriodFilter {
	return persistence.PeriodFilter{
		ExecutiveID: filter.ExecutiveID,
		StartsAfter: filter.StartsAfter,
		EndsBefore:  filter.EndsBefore,
	}
}

func toApplicationUser(model persistence.User) application.User {
	return application.User{
		ID:        model.ID,
		Name:      model.Name,
		Email:     model.Email,
		Role:      model.Role,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

func toPersistenceUser(credentials application.UserCredentials) persistence.User {
	return persistence.User{
		ID:           credentials.User.ID,
		Name:         credentials.User.Name,
		Email:        credentials.User.Email,
		Role:         credentials.User.Role,
		PasswordHash: credentials.PasswordHash,
		CreatedAt:    credentials.User.CreatedAt,
		UpdatedAt:    credentials.User.UpdatedAt,
	}
}

func toApplicationSession(model persistence.Session) application.Session {
	return application.Session{
		ID:        model.ID,
		UserID:    model.UserID,
		Token:     model.Token,
		ExpiresAt: model.ExpiresAt,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
		RevokedAt: model.RevokedAt,
	}
}

func toPersistenceSession(session application.Session) persistence.Session {
	return persistence.Session{
		ID:        session.ID,
		UserID:    session.UserID,
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		CreatedAt: session.CreatedAt,
		UpdatedAt: session.UpdatedAt,
		RevokedAt: session.RevokedAt,
	}
}

func toApplicationMeeting(model persistence.Meeting) application.Meeting {
	meeting := application.Meeting{
		ID:           model.ID,
		Title:        model.Title,
		Start:        model.Start,
		End:          model.End,
		CreatorID:    model.CreatorID,
		AttendeeIDs:  append([]string(nil), model.Attendees...),
		ReminderSent: model.ReminderSent,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
	if model.Venue != nil {
		meeting.Venue = *model.Venue
	}
	if model.ProjectName != nil {
		meeting.ProjectName = *model.ProjectName
	}
	return meeting
}

func toApplicationMeetings(models []persistence.Meeting) []application.Meeting {
	if len(models) == 0 {
		return nil
	}
	meetings := make([]application.Meeting, 0, len(models))
	for _, model := range models {
		meetings = append(meetings, toApplicationMeeting(model))
	}
	return meetings
}

func toPersistenceMeeting(meeting application.Meeting) persistence.Meeting {
	model := persistence.Meeting{
		ID:           meeting.ID,
		Title:        meeting.Title,
		Start:        meeting.Start,
		End:          meeting.End,
		CreatorID:    meeting.CreatorID,
		Attendees:    append([]string(nil), meeting.AttendeeIDs...),
		ReminderSent: meeting.ReminderSent,
		CreatedAt:    meeting.CreatedAt,
		UpdatedAt:    meeting.UpdatedAt,
	}
	if meeting.Venue != "" {
		venue := meeting.Venue
		model.Venue = &venue
	}
	if meeting.ProjectName != "" {
		project := meeting.ProjectName
		model.ProjectName = &project
	}
	return model
}

func toApplicationLeave(model persistence.Leave) application.Leave {
	return application.Leave{
		ID:          model.ID,
		ExecutiveID: model.ExecutiveID,
		Start:       model.Start,
		End:         model.End,
		Reason:      model.Reason,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func toPersistenceLeave(leave application.Leave) persistence.Leave {
	return persistence.Leave{
		ID:          leave.ID,
		ExecutiveID: leave.ExecutiveID,
		Start:       leave.Start,
		End:         leave.End,
		Reason:      leave.Reason,
		CreatedAt:   leave.CreatedAt,
		UpdatedAt:   leave.UpdatedAt,
	}
}

func toApplicationEngagement(model persistence.Engagement) application.Engagement {
	return application.Engagement{
		ID:          model.ID,
		ExecutiveID: model.ExecutiveID,
		Start:       model.Start,
		End:         model.End,
		Description: model.Description,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

func toPersistenceEngagement(engagement application.Engagement) persistence.Engagement {
	return persistence.Engagement{
		ID:          engagement.ID,
		ExecutiveID: engagement.ExecutiveID,
		Start:       engagement.Start,
		End:         engagement.End,
		Description: engagement.Description,
		CreatedAt:   engagement.CreatedAt,
		UpdatedAt:   engagement.UpdatedAt,
	}
}

func toApplicationEscalation(model persistence.Escalation) application.Escalation {
	executives := make([]application.ExecutiveContact, 0, len(model.Executives))
	for _, ref := range model.Executives {
		executives = append(executives, application.ExecutiveContact{Name: ref.Name, Email: ref.Email})
	}
	return application.Escalation{
		ID:          model.ID,
		MeetingDate: model.MeetingDate,
		Executives:  executives,
		CreatedAt:   model.CreatedAt,
	}
}

func toPersistenceEscalation(escalation application.Escalation) persistence.Escalation {
	executives := make([]persistence.ExecutiveRef, 0, len(escalation.Executives))
	for _, contact := range escalation.Executives {
		executives = append(executives, persistence.ExecutiveRef{Name: contact.Name, Email: contact.Email})
	}
	return persistence.Escalation{
		ID:          escalation.ID,
		MeetingDate: escalation.MeetingDate,
		Executives:  executives,
		CreatedAt:   escalation.CreatedAt,
	}
}
