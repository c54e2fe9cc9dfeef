package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tfl_backend/internal/auth"
	"tfl_backend/internal/models"
	"tfl_backend/internal/services/dto"
	"tfl_backend/pkg/apperrors"
)

// With the clock on Wednesday 12 March 2025 the next four Saturdays are:
var upcomingSaturdays = []string{"2025-03-15", "2025-03-22", "2025-03-29", "2025-04-05"}

const lastSaturday = "2025-03-08"

func countEvents(t *testing.T, env *testEnv) int64 {
	t.Helper()
	var n int64
	require.NoError(t, env.db.Model(&models.Event{}).Count(&n).Error)
	return n
}

func TestParseGuestCount(t *testing.T) {
	assert.Equal(t, 0, ParseGuestCount(""))
	assert.Equal(t, 0, ParseGuestCount("two"))
	assert.Equal(t, 2, ParseGuestCount(" 2 "))
	assert.Equal(t, 0, ParseGuestCount("-1"))
	assert.Equal(t, models.MaxGuests, ParseGuestCount("12"))
}

func TestEventService_EnsureUpcomingIsIdempotent(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.events.EnsureUpcoming(env.ctx, env.db, 0))
	require.NoError(t, env.events.EnsureUpcoming(env.ctx, env.db, 0))
	assert.EqualValues(t, len(upcomingSaturdays), countEvents(t, env))

	var events []models.Event
	require.NoError(t, env.db.Order("event_date").Find(&events).Error)
	for i, e := range events {
		assert.Equal(t, upcomingSaturdays[i], e.EventDate)
	}
}

func TestEventService_EnsureUpcomingConcurrent(t *testing.T) {
	env := newTestEnv(t)

	var wg sync.WaitGroup
	errs := make([]error, 6)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = env.events.EnsureUpcoming(env.ctx, env.db, 0)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.EqualValues(t, len(upcomingSaturdays), countEvents(t, env))
}

func TestEventService_EnsureUpcomingPurgesOtherWeekdays(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "kenny", "password123", true, false)

	tuesday := env.createEvent(t, "2025-03-18")
	require.NoError(t, env.db.Create(&models.Signup{EventID: tuesday.ID, UserID: user.ID}).Error)
	past := env.createEvent(t, lastSaturday)

	require.NoError(t, env.events.EnsureUpcoming(env.ctx, env.db, 0))

	var n int64
	require.NoError(t, env.db.Model(&models.Event{}).Where("id = ?", tuesday.ID).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, env.db.Model(&models.Signup{}).Where("event_id = ?", tuesday.ID).Count(&n).Error)
	assert.Zero(t, n, "sign-ups go with their event")

	require.NoError(t, env.db.Model(&models.Event{}).Where("id = ?", past.ID).Count(&n).Error)
	assert.EqualValues(t, 1, n, "past Saturdays are kept")
}

func TestEventService_SignUp(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "kenny", "password123", true, false)
	event := env.createEvent(t, upcomingSaturdays[0])

	require.NoError(t, env.events.SignUp(env.ctx, env.db, event.ID, user.ID, 9))

	var signup models.Signup
	require.NoError(t, env.db.Where("event_id = ? AND user_id = ?", event.ID, user.ID).First(&signup).Error)
	assert.Equal(t, models.MaxGuests, signup.GuestCount)

	err := env.events.SignUp(env.ctx, env.db, event.ID, user.ID, 0)
	assert.ErrorIs(t, err, apperrors.ErrAlreadySignedUp)

	err = env.events.SignUp(env.ctx, env.db, 4242, user.ID, 0)
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
}

func TestEventService_SignUpConcurrent(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "kenny", "password123", true, false)
	event := env.createEvent(t, upcomingSaturdays[0])

	const attempts = 8
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = env.events.SignUp(env.ctx, env.db, event.ID, user.ID, 1)
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, apperrors.ErrAlreadySignedUp)
	}
	assert.Equal(t, 1, ok)

	var n int64
	require.NoError(t, env.db.Model(&models.Signup{}).Where("event_id = ?", event.ID).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestEventService_ClosedEvents(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "kenny", "password123", true, false)
	past := env.createEvent(t, lastSaturday)
	next := env.createEvent(t, upcomingSaturdays[0])
	require.NoError(t, env.events.SignUp(env.ctx, env.db, next.ID, user.ID, 0))

	assert.ErrorIs(t, env.events.SignUp(env.ctx, env.db, past.ID, user.ID, 0), apperrors.ErrEventEnded)
	assert.ErrorIs(t, env.events.CancelSignup(env.ctx, env.db, past.ID, user.ID), apperrors.ErrEventEnded)

	// Saturday 11:00, half an hour into the session
	env.clock.t = time.Date(2025, time.March, 15, 11, 0, 0, 0, london(t))

	assert.ErrorIs(t, env.events.SignUp(env.ctx, env.db, next.ID, user.ID, 0), apperrors.ErrEventStarted)
	assert.ErrorIs(t, env.events.CancelSignup(env.ctx, env.db, next.ID, user.ID), apperrors.ErrEventStarted)
	assert.ErrorIs(t, env.events.UpdateGuestCount(env.ctx, env.db, next.ID, user.ID, 2), apperrors.ErrEventStarted)

	env.clock.Advance(2 * time.Hour)
	assert.ErrorIs(t, env.events.CancelSignup(env.ctx, env.db, next.ID, user.ID), apperrors.ErrEventEnded)
}

func TestEventService_CancelAndGuests(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "kenny", "password123", true, false)
	event := env.createEvent(t, upcomingSaturdays[1])

	// no sign-up yet: both are no-ops
	require.NoError(t, env.events.UpdateGuestCount(env.ctx, env.db, event.ID, user.ID, 3))
	require.NoError(t, env.events.CancelSignup(env.ctx, env.db, event.ID, user.ID))

	require.NoError(t, env.events.SignUp(env.ctx, env.db, event.ID, user.ID, 0))
	require.NoError(t, env.events.UpdateGuestCount(env.ctx, env.db, event.ID, user.ID, -4))

	detail, err := env.events.GetEventDetail(env.ctx, env.db, event.ID, auth.NewViewer(user))
	require.NoError(t, err)
	assert.Equal(t, 0, detail.CurrentUserGuestCount)

	require.NoError(t, env.events.UpdateGuestCount(env.ctx, env.db, event.ID, user.ID, 3))
	detail, err = env.events.GetEventDetail(env.ctx, env.db, event.ID, auth.NewViewer(user))
	require.NoError(t, err)
	assert.True(t, detail.UserSignedUp)
	assert.Equal(t, 3, detail.CurrentUserGuestCount)
	assert.EqualValues(t, 4, detail.Attendees)

	require.NoError(t, env.events.CancelSignup(env.ctx, env.db, event.ID, user.ID))
	detail, err = env.events.GetEventDetail(env.ctx, env.db, event.ID, auth.NewViewer(user))
	require.NoError(t, err)
	assert.False(t, detail.UserSignedUp)
	assert.Empty(t, detail.Signups)
}

func TestEventService_BulkActions(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "kenny", "password123", true, false)
	a := env.createEvent(t, upcomingSaturdays[0])
	b := env.createEvent(t, upcomingSaturdays[1])
	c := env.createEvent(t, upcomingSaturdays[2])
	past := env.createEvent(t, lastSaturday)

	n, err := env.events.BulkSignUp(env.ctx, env.db, user.ID, []uint{a.ID, a.ID, b.ID, past.ID, 4242})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// already joined a, so only c counts
	n, err = env.events.BulkSignUp(env.ctx, env.db, user.ID, []uint{a.ID, c.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = env.events.BulkCancel(env.ctx, env.db, user.ID, []uint{b.ID, past.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	result, err := env.events.BulkApply(env.ctx, env.db, user.ID, []uint{b.ID}, []uint{a.ID, c.ID})
	require.NoError(t, err)
	assert.Equal(t, &dto.BulkResult{SignedUp: 1, Removed: 2}, result)

	var ids []uint
	require.NoError(t, env.db.Model(&models.Signup{}).Where("user_id = ?", user.ID).Pluck("event_id", &ids).Error)
	assert.ElementsMatch(t, []uint{b.ID}, ids)
}

func TestEventService_ListUpcoming(t *testing.T) {
	env := newTestEnv(t)
	kenny := env.createUser(t, "kenny", "password123", true, false)
	ian := env.createUser(t, "ian", "password123", true, true)
	env.createEvent(t, lastSaturday)
	require.NoError(t, env.events.EnsureUpcoming(env.ctx, env.db, 0))

	page, err := env.events.ListUpcoming(env.ctx, env.db, auth.NewViewer(kenny))
	require.NoError(t, err)
	assert.False(t, page.IsAdmin)
	require.Len(t, page.Months, 2)
	assert.Equal(t, "2025-03", page.Months[0].Key)
	assert.Equal(t, "March 2025", page.Months[0].Label)
	require.Len(t, page.Months[0].Events, 3)
	assert.Equal(t, "April 2025", page.Months[1].Label)

	first := page.Months[0].Events[0]
	assert.Equal(t, upcomingSaturdays[0], first.EventDate)
	assert.Equal(t, "Terrible Football Liverpool", first.Title)
	assert.Equal(t, "10:30am", first.Time)
	assert.Zero(t, first.Attendees)

	require.NoError(t, env.events.SignUp(env.ctx, env.db, first.ID, kenny.ID, 2))
	require.NoError(t, env.events.SignUp(env.ctx, env.db, first.ID, ian.ID, 0))

	page, err = env.events.ListUpcoming(env.ctx, env.db, auth.NewViewer(ian))
	require.NoError(t, err)
	assert.True(t, page.IsAdmin)
	first = page.Months[0].Events[0]
	assert.EqualValues(t, 4, first.Attendees)
	assert.Equal(t, 2, first.UserCount)
	assert.True(t, first.UserSignedUp)
	assert.Len(t, first.EmojiPreview, 2)
	assert.False(t, page.Months[0].Events[1].UserSignedUp)
}

func TestEventService_UpdateEventDetails(t *testing.T) {
	env := newTestEnv(t)
	event := env.createEvent(t, upcomingSaturdays[0])
	env.createEvent(t, upcomingSaturdays[1])
	viewer := auth.NewViewer(env.createUser(t, "boss", "password123", true, true))

	require.NoError(t, env.events.UpdateEventDetails(env.ctx, env.db, event.ID, dto.EventFields{
		Title:    strPtr("  Cup final "),
		Location: strPtr("Sefton Park"),
		Time:     strPtr("2:15pm"),
	}))

	detail, err := env.events.GetEventDetail(env.ctx, env.db, event.ID, viewer)
	require.NoError(t, err)
	assert.Equal(t, "Cup final", detail.Title)
	assert.Equal(t, "Sefton Park", detail.Location)
	assert.Equal(t, "Saturday football session", detail.Description)
	assert.Equal(t, "2:15pm", detail.Time)
	assert.True(t, detail.IsAdmin)

	// blank clears back to the default; nil leaves the field alone
	require.NoError(t, env.events.UpdateEventDetails(env.ctx, env.db, event.ID, dto.EventFields{
		Title: strPtr(""),
		Time:  strPtr(""),
	}))
	detail, err = env.events.GetEventDetail(env.ctx, env.db, event.ID, viewer)
	require.NoError(t, err)
	assert.Equal(t, "Terrible Football Liverpool", detail.Title)
	assert.Nil(t, detail.RawTitle)
	assert.Equal(t, "Sefton Park", detail.Location)
	assert.Equal(t, "10:30am", detail.Time)

	err = env.events.UpdateEventDetails(env.ctx, env.db, event.ID, dto.EventFields{EventDate: strPtr("15/03/2025")})
	assert.ErrorIs(t, err, apperrors.ErrInvalidEventDate)

	err = env.events.UpdateEventDetails(env.ctx, env.db, event.ID, dto.EventFields{EventDate: strPtr(upcomingSaturdays[1])})
	assert.ErrorIs(t, err, apperrors.ErrEventDateTaken)

	err = env.events.UpdateEventDetails(env.ctx, env.db, 4242, dto.EventFields{Title: strPtr("x")})
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)

	assert.NoError(t, env.events.UpdateEventDetails(env.ctx, env.db, 4242, dto.EventFields{}))
}

func TestEventService_EventChoices(t *testing.T) {
	env := newTestEnv(t)
	env.createEvent(t, lastSaturday)

	choices, err := env.events.EventChoices(env.ctx, env.db)
	require.NoError(t, err)
	require.Len(t, choices, len(upcomingSaturdays)+1)
	assert.Equal(t, lastSaturday, choices[0].EventDate)
}
