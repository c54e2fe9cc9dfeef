package repositories

import (
	"errors"

	"gorm.io/gorm"

	"tfl_backend/internal/models"
)

// AttendeeCount is the head count for one event: sign-ups plus their guests
type AttendeeCount struct {
	EventID   uint
	Signups   int64
	Guests    int64
	Attendees int64
}

type SignupRepository interface {
	CreateSignup(db *gorm.DB, signup *models.Signup) error
	FindSignup(db *gorm.DB, eventID, userID uint) (*models.Signup, error)
	DeleteSignup(db *gorm.DB, eventID, userID uint) (int64, error)
	UpdateGuestCount(db *gorm.DB, eventID, userID uint, guests int) (int64, error)
	FindSignupsForEvent(db *gorm.DB, eventID uint) ([]models.Signup, error)
	FindSignupsForEvents(db *gorm.DB, eventIDs []uint) ([]models.Signup, error)
	CountAttendees(db *gorm.DB, eventIDs []uint) (map[uint]AttendeeCount, error)
}

type SignupRepositoryImpl struct{}

func NewSignupRepository() SignupRepository {
	return &SignupRepositoryImpl{}
}

// CreateSignup inserts and lets the (event_id, user_id) unique index decide
// races; a second insert for the same pair returns ErrDuplicateSignup.
func (r *SignupRepositoryImpl) CreateSignup(db *gorm.DB, signup *models.Signup) error {
	err := db.Create(signup).Error
	if isUniqueViolation(err) {
		return ErrDuplicateSignup
	}
	return err
}

func (r *SignupRepositoryImpl) FindSignup(db *gorm.DB, eventID, userID uint) (*models.Signup, error) {
	var signup models.Signup
	err := db.Where("event_id = ? AND user_id = ?", eventID, userID).First(&signup).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSignupNotFound
		}
		return nil, err
	}
	return &signup, nil
}

func (r *SignupRepositoryImpl) DeleteSignup(db *gorm.DB, eventID, userID uint) (int64, error) {
	result := db.Where("event_id = ? AND user_id = ?", eventID, userID).Delete(&models.Signup{})
	return result.RowsAffected, result.Error
}

func (r *SignupRepositoryImpl) UpdateGuestCount(db *gorm.DB, eventID, userID uint, guests int) (int64, error) {
	result := db.Model(&models.Signup{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Update("guest_count", guests)
	return result.RowsAffected, result.Error
}

// FindSignupsForEvent returns sign-ups in the order they were made
func (r *SignupRepositoryImpl) FindSignupsForEvent(db *gorm.DB, eventID uint) ([]models.Signup, error) {
	var signups []models.Signup
	err := db.Preload("User").
		Where("event_id = ?", eventID).
		Order("created_at ASC, id ASC").
		Find(&signups).Error
	return signups, err
}

func (r *SignupRepositoryImpl) FindSignupsForEvents(db *gorm.DB, eventIDs []uint) ([]models.Signup, error) {
	var signups []models.Signup
	if len(eventIDs) == 0 {
		return signups, nil
	}
	err := db.Preload("User").
		Where("event_id IN ?", eventIDs).
		Order("created_at ASC, id ASC").
		Find(&signups).Error
	return signups, err
}

func (r *SignupRepositoryImpl) CountAttendees(db *gorm.DB, eventIDs []uint) (map[uint]AttendeeCount, error) {
	counts := make(map[uint]AttendeeCount, len(eventIDs))
	if len(eventIDs) == 0 {
		return counts, nil
	}

	var rows []AttendeeCount
	err := db.Model(&models.Signup{}).
		Select("event_id, COUNT(*) AS signups, COALESCE(SUM(guest_count), 0) AS guests").
		Where("event_id IN ?", eventIDs).
		Group("event_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		row.Attendees = row.Signups + row.Guests
		counts[row.EventID] = row
	}
	return counts, nil
}
