package dto

import "time"

// CreateNoticeForm - POST /notices/create
type CreateNoticeForm struct {
	EventID string `form:"event_id" json:"event_id"`
	Message string `form:"message" json:"message"`
}

// DismissNoticeForm - POST /notices/dismiss
type DismissNoticeForm struct {
	NoticeID string `form:"notice_id" json:"notice_id"`
}

// NoticeResponse is a notice with its event
type NoticeResponse struct {
	ID         uint      `json:"id"`
	EventID    uint      `json:"eventId"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"createdAt"`
	EventDate  string    `json:"eventDate"`
	EventTitle string    `json:"eventTitle"`
}

// NoticeListPage - GET /notices
type NoticeListPage struct {
	Notices []NoticeResponse `json:"notices"`
	IsAdmin bool             `json:"isAdmin"`
	Created bool             `json:"created,omitempty"`
}

// NoticeCreatePage - GET /notices/create
type NoticeCreatePage struct {
	Events []EventChoice `json:"events"`
}
