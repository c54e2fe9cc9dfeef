package models

import (
	"gorm.io/datatypes"
)

// EventDateLayout is the storage format of Event.EventDate
const EventDateLayout = "2006-01-02"

// Event is one weekly session. Optional fields fall back to the configured
// defaults when rendered; a nil StartTime means 10:30.
type Event struct {
	BaseModel
	EventDate   string          `gorm:"size:10;not null;uniqueIndex:idx_events_event_date"`
	Title       *string         `gorm:"size:200"`
	Description *string         `gorm:"type:text"`
	Location    *string         `gorm:"size:300"`
	StartTime   *datatypes.Time `gorm:"type:time"`

	Signups []Signup `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
}
