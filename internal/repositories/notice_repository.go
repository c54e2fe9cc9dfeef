package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tfl_backend/internal/models"
)

// NoticeRow is a notice joined with its event
type NoticeRow struct {
	ID         uint
	EventID    uint
	Message    string
	CreatedAt  time.Time
	EventDate  string
	EventTitle *string
}

type NoticeRepository interface {
	CreateNotice(db *gorm.DB, notice *models.Notice) error
	FindNoticeByID(db *gorm.DB, id uint) (*models.Notice, error)
	FindNoticesForUser(db *gorm.DB, userID uint) ([]NoticeRow, error)
	FindAllNotices(db *gorm.DB) ([]NoticeRow, error)
	Dismiss(db *gorm.DB, userID, noticeID uint) error
}

type NoticeRepositoryImpl struct{}

func NewNoticeRepository() NoticeRepository {
	return &NoticeRepositoryImpl{}
}

func (r *NoticeRepositoryImpl) CreateNotice(db *gorm.DB, notice *models.Notice) error {
	return db.Create(notice).Error
}

func (r *NoticeRepositoryImpl) FindNoticeByID(db *gorm.DB, id uint) (*models.Notice, error) {
	var notice models.Notice
	if err := db.Preload("Event").First(&notice, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoticeNotFound
		}
		return nil, err
	}
	return &notice, nil
}

func noticeRows(db *gorm.DB) *gorm.DB {
	return db.Table("notices AS n").
		Select("n.id, n.event_id, n.message, n.created_at, e.event_date, e.title AS event_title").
		Joins("JOIN events AS e ON e.id = n.event_id").
		Order("n.created_at DESC, n.id DESC")
}

// FindNoticesForUser returns notices for events the user signed up to that
// they have not dismissed, newest first.
func (r *NoticeRepositoryImpl) FindNoticesForUser(db *gorm.DB, userID uint) ([]NoticeRow, error) {
	var rows []NoticeRow
	err := noticeRows(db).
		Joins("JOIN event_signups AS s ON s.event_id = n.event_id AND s.user_id = ?", userID).
		Where("NOT EXISTS (SELECT 1 FROM notice_dismissals AS d WHERE d.notice_id = n.id AND d.user_id = ?)", userID).
		Scan(&rows).Error
	return rows, err
}

func (r *NoticeRepositoryImpl) FindAllNotices(db *gorm.DB) ([]NoticeRow, error) {
	var rows []NoticeRow
	err := noticeRows(db).Scan(&rows).Error
	return rows, err
}

// Dismiss records the dismissal; repeating it is a no-op
func (r *NoticeRepositoryImpl) Dismiss(db *gorm.DB, userID, noticeID uint) error {
	return db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.NoticeDismissal{UserID: userID, NoticeID: noticeID}).Error
}
