package repositories

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tfl_backend/internal/models"
)

type EventRepository interface {
	FindEventByID(db *gorm.DB, id uint) (*models.Event, error)
	FindEventByDate(db *gorm.DB, date string) (*models.Event, error)
	FindEventsFrom(db *gorm.DB, fromDate string) ([]models.Event, error)
	FindAllEvents(db *gorm.DB) ([]models.Event, error)
	InsertDates(db *gorm.DB, dates []string) (int64, error)
	DeleteEvents(db *gorm.DB, ids []uint) (int64, error)
	UpdateEventFields(db *gorm.DB, id uint, fields map[string]interface{}) error
}

type EventRepositoryImpl struct{}

func NewEventRepository() EventRepository {
	return &EventRepositoryImpl{}
}

func (r *EventRepositoryImpl) FindEventByID(db *gorm.DB, id uint) (*models.Event, error) {
	var event models.Event
	if err := db.First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *EventRepositoryImpl) FindEventByDate(db *gorm.DB, date string) (*models.Event, error) {
	var event models.Event
	if err := db.Where("event_date = ?", date).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

// FindEventsFrom returns events on or after fromDate, soonest first.
// Dates are stored as YYYY-MM-DD so string order is date order.
func (r *EventRepositoryImpl) FindEventsFrom(db *gorm.DB, fromDate string) ([]models.Event, error) {
	var events []models.Event
	err := db.Where("event_date >= ?", fromDate).Order("event_date ASC").Find(&events).Error
	return events, err
}

func (r *EventRepositoryImpl) FindAllEvents(db *gorm.DB) ([]models.Event, error) {
	var events []models.Event
	err := db.Order("event_date ASC").Find(&events).Error
	return events, err
}

// InsertDates creates an event for every date that has none. Existing dates
// are left alone, so concurrent callers never collide.
func (r *EventRepositoryImpl) InsertDates(db *gorm.DB, dates []string) (int64, error) {
	if len(dates) == 0 {
		return 0, nil
	}
	events := make([]models.Event, 0, len(dates))
	for _, d := range dates {
		events = append(events, models.Event{EventDate: d})
	}
	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_date"}},
		DoNothing: true,
	}).Create(&events)
	return result.RowsAffected, result.Error
}

// DeleteEvents removes events; sign-ups and notices cascade
func (r *EventRepositoryImpl) DeleteEvents(db *gorm.DB, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := db.Where("id IN ?", ids).Delete(&models.Event{})
	return result.RowsAffected, result.Error
}

func (r *EventRepositoryImpl) UpdateEventFields(db *gorm.DB, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	err := db.Model(&models.Event{}).Where("id = ?", id).Updates(fields).Error
	if isUniqueViolation(err) {
		return ErrEventDateTaken
	}
	return err
}
