package models

import (
	"time"
)

// BaseModel is embedded by every table with a surrogate key
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}
