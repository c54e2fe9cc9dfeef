package dto

import "time"

// EventFields is an admin edit; nil pointers are left untouched and
// pointers to "" clear the column.
type EventFields struct {
	EventDate   *string
	Title       *string
	Description *string
	Location    *string
	Time        *string
}

// IsEmpty reports whether nothing would change
func (f EventFields) IsEmpty() bool {
	return f.EventDate == nil && f.Title == nil && f.Description == nil && f.Location == nil && f.Time == nil
}

// EventActionForm - POST /events/:eventId
type EventActionForm struct {
	Intent      string  `form:"intent" json:"intent" validate:"omitempty,oneof=signup unsignup update_guests edit"`
	GuestCount  string  `form:"guest_count" json:"guest_count"`
	EventDate   *string `form:"event_date" json:"event_date" validate:"omitempty,iso_date"`
	Title       *string `form:"title" json:"title"`
	Description *string `form:"description" json:"description"`
	Location    *string `form:"location" json:"location"`
	Time        *string `form:"time" json:"time"`
}

// BulkEventsForm - POST /events
type BulkEventsForm struct {
	Intent           string   `form:"intent" json:"intent" validate:"required,oneof=bulk_signup bulk_unsignup bulk_save"`
	EventIDs         []string `form:"eventId" json:"eventId"`
	SignupEventIDs   string   `form:"signupEventIds" json:"signupEventIds" validate:"omitempty,id_list"`
	UnsignupEventIDs string   `form:"unsignupEventIds" json:"unsignupEventIds" validate:"omitempty,id_list"`
}

// BulkResult counts what a bulk action changed
type BulkResult struct {
	SignedUp int `json:"signedUp"`
	Removed  int `json:"removed"`
}

// EventSummary is one row of the listing
type EventSummary struct {
	ID           uint     `json:"id"`
	EventDate    string   `json:"eventDate"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Location     string   `json:"location"`
	Time         string   `json:"time"`
	Attendees    int64    `json:"attendees"`
	UserSignedUp bool     `json:"userSignedUp"`
	Started      bool     `json:"started"`
	EmojiPreview []string `json:"emojiPreview"`
	UserCount    int      `json:"userCount"`
}

// MonthGroup is the listing grouped by calendar month
type MonthGroup struct {
	Key    string         `json:"key"`
	Label  string         `json:"label"`
	Events []EventSummary `json:"events"`
}

// EventListPage - GET /events
type EventListPage struct {
	Months  []MonthGroup `json:"months"`
	IsAdmin bool         `json:"isAdmin"`
}

// SignupEntry is one attendee on the detail page
type SignupEntry struct {
	UserID      uint      `json:"userId"`
	DisplayName string    `json:"displayName"`
	Username    string    `json:"username"`
	Emoji       string    `json:"emoji"`
	GuestCount  int       `json:"guestCount"`
	SignedUpAt  time.Time `json:"signedUpAt"`
}

// EventDetail - GET /events/:eventId
type EventDetail struct {
	ID                    uint          `json:"id"`
	EventDate             string        `json:"eventDate"`
	Title                 string        `json:"title"`
	Description           string        `json:"description"`
	Location              string        `json:"location"`
	Time                  string        `json:"time"`
	RawTitle              *string       `json:"rawTitle"`
	RawDescription        *string       `json:"rawDescription"`
	RawLocation           *string       `json:"rawLocation"`
	Signups               []SignupEntry `json:"signups"`
	Attendees             int64         `json:"attendees"`
	UserSignedUp          bool          `json:"userSignedUp"`
	CurrentUserGuestCount int           `json:"currentUserGuestCount"`
	IsAdmin               bool          `json:"isAdmin"`
	EventStarted          bool          `json:"eventStarted"`
	EventEnded            bool          `json:"eventEnded"`
}

// EventActionResult - POST /events/:eventId success payload
type EventActionResult struct {
	Success       bool `json:"success,omitempty"`
	Unsignup      bool `json:"unsignup,omitempty"`
	GuestsUpdated bool `json:"guestsUpdated,omitempty"`
	EditSuccess   bool `json:"editSuccess,omitempty"`
}

// EventChoice is an entry in the notice form's event picker
type EventChoice struct {
	ID        uint   `json:"id"`
	EventDate string `json:"eventDate"`
	Title     string `json:"title"`
}
