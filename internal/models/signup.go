package models

// Signup records that a user will attend an event, with extra guests
type Signup struct {
	BaseModel
	EventID    uint `gorm:"not null;uniqueIndex:idx_signup_event_user"`
	UserID     uint `gorm:"not null;uniqueIndex:idx_signup_event_user;index"`
	GuestCount int  `gorm:"not null;default:0"`

	Event *Event `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`
	User  *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (Signup) TableName() string {
	return "event_signups"
}

// MaxGuests is the upper bound on guests per sign-up
const MaxGuests = 5

// ClampGuests bounds a guest count to 0..MaxGuests
func ClampGuests(n int) int {
	if n < 0 {
		return 0
	}
	if n > MaxGuests {
		return MaxGuests
	}
	return n
}
