package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"tfl_backend/internal/auth"
	"tfl_backend/internal/calendar"
	"tfl_backend/internal/logger"
	"tfl_backend/internal/models"
	"tfl_backend/internal/repositories"
	"tfl_backend/internal/services/dto"
	"tfl_backend/pkg/apperrors"
)

// emojiPreviewSize is how many attendee emojis the listing shows per event
const emojiPreviewSize = 3

// EventSchedule says when sessions happen and what they look like by default
type EventSchedule struct {
	Weekday            time.Weekday
	UpcomingCount      int
	DefaultTitle       string
	DefaultDescription string
	DefaultLocation    string
}

type EventService interface {
	EnsureUpcoming(ctx context.Context, db *gorm.DB, count int) error
	ListUpcoming(ctx context.Context, db *gorm.DB, viewer *auth.Viewer) (*dto.EventListPage, error)
	GetEventDetail(ctx context.Context, db *gorm.DB, eventID uint, viewer *auth.Viewer) (*dto.EventDetail, error)
	EventChoices(ctx context.Context, db *gorm.DB) ([]dto.EventChoice, error)

	SignUp(ctx context.Context, db *gorm.DB, eventID, userID uint, guests int) error
	CancelSignup(ctx context.Context, db *gorm.DB, eventID, userID uint) error
	UpdateGuestCount(ctx context.Context, db *gorm.DB, eventID, userID uint, guests int) error

	BulkSignUp(ctx context.Context, db *gorm.DB, userID uint, eventIDs []uint) (int, error)
	BulkCancel(ctx context.Context, db *gorm.DB, userID uint, eventIDs []uint) (int, error)
	BulkApply(ctx context.Context, db *gorm.DB, userID uint, signupIDs, cancelIDs []uint) (*dto.BulkResult, error)

	UpdateEventDetails(ctx context.Context, db *gorm.DB, eventID uint, fields dto.EventFields) error
}

type EventServiceImpl struct {
	eventRepo  repositories.EventRepository
	signupRepo repositories.SignupRepository
	cal        *calendar.Calendar
	schedule   EventSchedule
}

func NewEventService(
	eventRepo repositories.EventRepository,
	signupRepo repositories.SignupRepository,
	cal *calendar.Calendar,
	schedule EventSchedule,
) EventService {
	if schedule.UpcomingCount < 1 {
		schedule.UpcomingCount = 12
	}
	return &EventServiceImpl{
		eventRepo:  eventRepo,
		signupRepo: signupRepo,
		cal:        cal,
		schedule:   schedule,
	}
}

// ParseGuestCount reads a form value; anything unreadable is 0
func ParseGuestCount(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return models.ClampGuests(n)
}

// ============================================
// Schedule
// ============================================

// EnsureUpcoming drops events that are not on the session weekday and makes
// sure the next count sessions exist. Safe to run concurrently.
func (s *EventServiceImpl) EnsureUpcoming(ctx context.Context, db *gorm.DB, count int) error {
	if count < 1 {
		count = s.schedule.UpcomingCount
	}

	return db.Transaction(func(tx *gorm.DB) error {
		events, err := s.eventRepo.FindAllEvents(tx)
		if err != nil {
			return apperrors.InternalError(err)
		}
		var stray []uint
		for _, e := range events {
			if !s.cal.IsWeekday(e.EventDate, s.schedule.Weekday) {
				stray = append(stray, e.ID)
			}
		}
		if len(stray) > 0 {
			n, err := s.eventRepo.DeleteEvents(tx, stray)
			if err != nil {
				return apperrors.InternalError(err)
			}
			logger.CtxInfo(ctx, "purged off-schedule events", "count", n)
		}

		created, err := s.eventRepo.InsertDates(tx, s.cal.NextWeekdays(s.schedule.Weekday, count))
		if err != nil {
			return apperrors.InternalError(err)
		}
		if created > 0 {
			logger.CtxDebug(ctx, "created upcoming events", "count", created)
		}
		return nil
	})
}

func (s *EventServiceImpl) stateOf(event *models.Event) (calendar.State, error) {
	state, err := s.cal.StateOf(event.EventDate, calendar.FromDatatype(event.StartTime))
	if err != nil {
		return calendar.State{}, apperrors.InternalError(err)
	}
	return state, nil
}

func (s *EventServiceImpl) findEvent(db *gorm.DB, eventID uint) (*models.Event, error) {
	event, err := s.eventRepo.FindEventByID(db, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return event, nil
}

// openEvent loads an event that has not started yet
func (s *EventServiceImpl) openEvent(db *gorm.DB, eventID uint) (*models.Event, error) {
	event, err := s.findEvent(db, eventID)
	if err != nil {
		return nil, err
	}
	state, err := s.stateOf(event)
	if err != nil {
		return nil, err
	}
	switch {
	case state.Ended:
		return nil, apperrors.ErrEventEnded
	case state.Started:
		return nil, apperrors.ErrEventStarted
	}
	return event, nil
}

// ============================================
// Sign-ups
// ============================================

// SignUp adds the user to the event. Two racing requests for the same user
// leave exactly one row; the loser gets ErrAlreadySignedUp.
func (s *EventServiceImpl) SignUp(ctx context.Context, db *gorm.DB, eventID, userID uint, guests int) error {
	event, err := s.openEvent(db, eventID)
	if err != nil {
		return err
	}

	signup := &models.Signup{
		EventID:    event.ID,
		UserID:     userID,
		GuestCount: models.ClampGuests(guests),
	}
	if err := s.signupRepo.CreateSignup(db, signup); err != nil {
		if errors.Is(err, repositories.ErrDuplicateSignup) {
			return apperrors.ErrAlreadySignedUp
		}
		return apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "signed up", "event_id", event.ID, "user_id", userID, "guests", signup.GuestCount)
	return nil
}

func (s *EventServiceImpl) CancelSignup(ctx context.Context, db *gorm.DB, eventID, userID uint) error {
	_, err := s.cancel(ctx, db, eventID, userID)
	return err
}

func (s *EventServiceImpl) cancel(ctx context.Context, db *gorm.DB, eventID, userID uint) (bool, error) {
	if _, err := s.openEvent(db, eventID); err != nil {
		return false, err
	}
	n, err := s.signupRepo.DeleteSignup(db, eventID, userID)
	if err != nil {
		return false, apperrors.InternalError(err)
	}
	if n > 0 {
		logger.CtxInfo(ctx, "signup cancelled", "event_id", eventID, "user_id", userID)
	}
	return n > 0, nil
}

// UpdateGuestCount changes the guests on an existing sign-up. Without a
// sign-up it does nothing.
func (s *EventServiceImpl) UpdateGuestCount(ctx context.Context, db *gorm.DB, eventID, userID uint, guests int) error {
	if _, err := s.openEvent(db, eventID); err != nil {
		return err
	}
	if _, err := s.signupRepo.UpdateGuestCount(db, eventID, userID, models.ClampGuests(guests)); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// ============================================
// Bulk actions
// ============================================

// BulkSignUp signs the user up to each event in turn. Events that are closed,
// unknown or already joined are skipped.
func (s *EventServiceImpl) BulkSignUp(ctx context.Context, db *gorm.DB, userID uint, eventIDs []uint) (int, error) {
	signed := 0
	for _, id := range uniqueIDs(eventIDs) {
		if err := s.SignUp(ctx, db, id, userID, 0); err != nil {
			if isInternal(err) {
				return signed, err
			}
			logger.CtxDebug(ctx, "bulk signup skipped", "event_id", id, "reason", err.Error())
			continue
		}
		signed++
	}
	return signed, nil
}

func (s *EventServiceImpl) BulkCancel(ctx context.Context, db *gorm.DB, userID uint, eventIDs []uint) (int, error) {
	removed := 0
	for _, id := range uniqueIDs(eventIDs) {
		ok, err := s.cancel(ctx, db, id, userID)
		if err != nil {
			if isInternal(err) {
				return removed, err
			}
			logger.CtxDebug(ctx, "bulk cancel skipped", "event_id", id, "reason", err.Error())
			continue
		}
		if ok {
			removed++
		}
	}
	return removed, nil
}

// BulkApply runs the sign-ups and then the cancellations
func (s *EventServiceImpl) BulkApply(ctx context.Context, db *gorm.DB, userID uint, signupIDs, cancelIDs []uint) (*dto.BulkResult, error) {
	signed, err := s.BulkSignUp(ctx, db, userID, signupIDs)
	if err != nil {
		return nil, err
	}
	removed, err := s.BulkCancel(ctx, db, userID, cancelIDs)
	if err != nil {
		return nil, err
	}
	return &dto.BulkResult{SignedUp: signed, Removed: removed}, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func isInternal(err error) bool {
	appErr, ok := apperrors.AsAppError(err)
	return !ok || appErr.Code == apperrors.CodeInternalError
}

// ============================================
// Admin edit
// ============================================

// UpdateEventDetails applies a partial edit. Blank text clears a column back
// to its default.
func (s *EventServiceImpl) UpdateEventDetails(ctx context.Context, db *gorm.DB, eventID uint, fields dto.EventFields) error {
	if fields.IsEmpty() {
		return nil
	}
	event, err := s.findEvent(db, eventID)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{}
	if fields.EventDate != nil {
		date := strings.TrimSpace(*fields.EventDate)
		if date != "" {
			if _, err := s.cal.ParseDate(date); err != nil {
				return apperrors.ErrInvalidEventDate
			}
			updates["event_date"] = date
		}
	}
	if fields.Title != nil {
		updates["title"] = nullableText(*fields.Title)
	}
	if fields.Description != nil {
		updates["description"] = nullableText(*fields.Description)
	}
	if fields.Location != nil {
		updates["location"] = nullableText(*fields.Location)
	}
	if fields.Time != nil {
		if raw := strings.TrimSpace(*fields.Time); raw == "" {
			updates["start_time"] = nil
		} else {
			updates["start_time"] = calendar.ParseTimeOfDay(raw).Datatype()
		}
	}

	if err := s.eventRepo.UpdateEventFields(db, event.ID, updates); err != nil {
		if errors.Is(err, repositories.ErrEventDateTaken) {
			return apperrors.ErrEventDateTaken
		}
		return apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "event updated", "event_id", event.ID, "fields", len(updates))
	return nil
}

func nullableText(raw string) *string {
	v := strings.TrimSpace(raw)
	if v == "" {
		return nil
	}
	return &v
}

// ============================================
// Views
// ============================================

// ListUpcoming returns the sessions still to come, grouped by month
func (s *EventServiceImpl) ListUpcoming(ctx context.Context, db *gorm.DB, viewer *auth.Viewer) (*dto.EventListPage, error) {
	if err := s.EnsureUpcoming(ctx, db, s.schedule.UpcomingCount); err != nil {
		return nil, err
	}

	today := s.cal.Now().Format(calendar.DateLayout)
	events, err := s.eventRepo.FindEventsFrom(db, today)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	type visible struct {
		event models.Event
		state calendar.State
	}
	shown := make([]visible, 0, len(events))
	ids := make([]uint, 0, len(events))
	for _, e := range events {
		if !s.cal.IsWeekday(e.EventDate, s.schedule.Weekday) {
			continue
		}
		state, err := s.stateOf(&e)
		if err != nil {
			return nil, err
		}
		if state.Ended {
			continue
		}
		shown = append(shown, visible{event: e, state: state})
		ids = append(ids, e.ID)
	}

	counts, err := s.signupRepo.CountAttendees(db, ids)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	signups, err := s.signupRepo.FindSignupsForEvents(db, ids)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	byEvent := make(map[uint][]models.Signup, len(ids))
	for _, su := range signups {
		byEvent[su.EventID] = append(byEvent[su.EventID], su)
	}

	page := &dto.EventListPage{Months: []dto.MonthGroup{}, IsAdmin: viewer.IsAdmin()}
	for _, v := range shown {
		summary := s.summarize(&v.event, byEvent[v.event.ID], counts[v.event.ID].Attendees, viewer.UserID)
		summary.Started = v.state.Started

		key, label := calendar.MonthKey(v.state.Start)
		if n := len(page.Months); n == 0 || page.Months[n-1].Key != key {
			page.Months = append(page.Months, dto.MonthGroup{Key: key, Label: label})
		}
		last := &page.Months[len(page.Months)-1]
		last.Events = append(last.Events, summary)
	}
	return page, nil
}

func (s *EventServiceImpl) summarize(e *models.Event, signups []models.Signup, attendees int64, viewerID uint) dto.EventSummary {
	summary := dto.EventSummary{
		ID:           e.ID,
		EventDate:    e.EventDate,
		Title:        orDefault(e.Title, s.schedule.DefaultTitle),
		Description:  orDefault(e.Description, s.schedule.DefaultDescription),
		Location:     orDefault(e.Location, s.schedule.DefaultLocation),
		Time:         calendar.FromDatatype(e.StartTime).Label(),
		Attendees:    attendees,
		EmojiPreview: []string{},
		UserCount:    len(signups),
	}
	for _, su := range signups {
		if su.UserID == viewerID {
			summary.UserSignedUp = true
		}
		if len(summary.EmojiPreview) < emojiPreviewSize {
			summary.EmojiPreview = append(summary.EmojiPreview, signupEmoji(&su))
		}
	}
	return summary
}

// GetEventDetail returns one event with its attendee list
func (s *EventServiceImpl) GetEventDetail(ctx context.Context, db *gorm.DB, eventID uint, viewer *auth.Viewer) (*dto.EventDetail, error) {
	event, err := s.findEvent(db, eventID)
	if err != nil {
		return nil, err
	}
	state, err := s.stateOf(event)
	if err != nil {
		return nil, err
	}
	signups, err := s.signupRepo.FindSignupsForEvent(db, event.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	detail := &dto.EventDetail{
		ID:             event.ID,
		EventDate:      event.EventDate,
		Title:          orDefault(event.Title, s.schedule.DefaultTitle),
		Description:    orDefault(event.Description, s.schedule.DefaultDescription),
		Location:       orDefault(event.Location, s.schedule.DefaultLocation),
		Time:           calendar.FromDatatype(event.StartTime).Label(),
		RawTitle:       event.Title,
		RawDescription: event.Description,
		RawLocation:    event.Location,
		Signups:        make([]dto.SignupEntry, 0, len(signups)),
		IsAdmin:        viewer.IsAdmin(),
		EventStarted:   state.Started,
		EventEnded:     state.Ended,
	}
	for i := range signups {
		su := &signups[i]
		entry := dto.SignupEntry{
			UserID:     su.UserID,
			Emoji:      signupEmoji(su),
			GuestCount: su.GuestCount,
			SignedUpAt: su.CreatedAt,
		}
		if su.User != nil {
			entry.DisplayName = su.User.DisplayName()
			entry.Username = su.User.Username
		}
		detail.Signups = append(detail.Signups, entry)
		detail.Attendees += int64(1 + su.GuestCount)

		if su.UserID == viewer.UserID {
			detail.UserSignedUp = true
			detail.CurrentUserGuestCount = su.GuestCount
		}
	}
	return detail, nil
}

// EventChoices lists every event for the notice form's picker
func (s *EventServiceImpl) EventChoices(ctx context.Context, db *gorm.DB) ([]dto.EventChoice, error) {
	if err := s.EnsureUpcoming(ctx, db, s.schedule.UpcomingCount); err != nil {
		return nil, err
	}
	events, err := s.eventRepo.FindAllEvents(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	choices := make([]dto.EventChoice, 0, len(events))
	for _, e := range events {
		choices = append(choices, dto.EventChoice{
			ID:        e.ID,
			EventDate: e.EventDate,
			Title:     orDefault(e.Title, s.schedule.DefaultTitle),
		})
	}
	return choices, nil
}

func signupEmoji(su *models.Signup) string {
	if su.User == nil {
		return models.DefaultProfileEmoji
	}
	return su.User.Emoji()
}

func orDefault(v *string, def string) string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return def
	}
	return *v
}
