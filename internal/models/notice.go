package models

import (
	"time"
)

// Notice is an admin message attached to an event, shown to its attendees
type Notice struct {
	BaseModel
	EventID   uint   `gorm:"not null;index"`
	Message   string `gorm:"type:text;not null"`
	CreatedBy *uint  `gorm:"index"`

	Event   *Event `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	Creator *User  `gorm:"foreignKey:CreatedBy;constraint:OnDelete:SET NULL"`
}

// NoticeDismissal hides a notice for one user
type NoticeDismissal struct {
	UserID    uint `gorm:"primaryKey;autoIncrement:false"`
	NoticeID  uint `gorm:"primaryKey;autoIncrement:false"`
	CreatedAt time.Time

	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Notice *Notice `gorm:"foreignKey:NoticeID;constraint:OnDelete:CASCADE"`
}
