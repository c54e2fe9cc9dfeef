package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"tfl_backend/internal/logger"
	"tfl_backend/internal/models"
	"tfl_backend/internal/repositories"
	"tfl_backend/internal/services/dto"
	"tfl_backend/pkg/apperrors"
)

type NoticeService interface {
	Create(ctx context.Context, db *gorm.DB, eventID uint, message string, authorID uint) (*dto.NoticeResponse, error)
	Get(ctx context.Context, db *gorm.DB, noticeID uint) (*dto.NoticeResponse, error)
	ListForUser(ctx context.Context, db *gorm.DB, userID uint) ([]dto.NoticeResponse, error)
	ListAll(ctx context.Context, db *gorm.DB) ([]dto.NoticeResponse, error)
	Dismiss(ctx context.Context, db *gorm.DB, userID, noticeID uint) error
}

type NoticeServiceImpl struct {
	noticeRepo   repositories.NoticeRepository
	eventRepo    repositories.EventRepository
	defaultTitle string
}

func NewNoticeService(
	noticeRepo repositories.NoticeRepository,
	eventRepo repositories.EventRepository,
	defaultTitle string,
) NoticeService {
	return &NoticeServiceImpl{
		noticeRepo:   noticeRepo,
		eventRepo:    eventRepo,
		defaultTitle: defaultTitle,
	}
}

func (s *NoticeServiceImpl) Create(ctx context.Context, db *gorm.DB, eventID uint, message string, authorID uint) (*dto.NoticeResponse, error) {
	message = strings.TrimSpace(message)
	if eventID == 0 || message == "" {
		return nil, apperrors.ErrNoticeIncomplete
	}

	event, err := s.eventRepo.FindEventByID(db, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	notice := &models.Notice{EventID: event.ID, Message: message}
	if authorID != 0 {
		notice.CreatedBy = &authorID
	}
	if err := s.noticeRepo.CreateNotice(db, notice); err != nil {
		return nil, apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "notice created", "notice_id", notice.ID, "event_id", event.ID)

	return &dto.NoticeResponse{
		ID:         notice.ID,
		EventID:    event.ID,
		Message:    notice.Message,
		CreatedAt:  notice.CreatedAt,
		EventDate:  event.EventDate,
		EventTitle: orDefault(event.Title, s.defaultTitle),
	}, nil
}

func (s *NoticeServiceImpl) Get(ctx context.Context, db *gorm.DB, noticeID uint) (*dto.NoticeResponse, error) {
	notice, err := s.noticeRepo.FindNoticeByID(db, noticeID)
	if err != nil {
		if errors.Is(err, repositories.ErrNoticeNotFound) {
			return nil, apperrors.ErrNoticeNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	resp := &dto.NoticeResponse{
		ID:         notice.ID,
		EventID:    notice.EventID,
		Message:    notice.Message,
		CreatedAt:  notice.CreatedAt,
		EventTitle: s.defaultTitle,
	}
	if notice.Event != nil {
		resp.EventDate = notice.Event.EventDate
		resp.EventTitle = orDefault(notice.Event.Title, s.defaultTitle)
	}
	return resp, nil
}

// ListForUser returns notices for the user's events that they have not
// dismissed, newest first
func (s *NoticeServiceImpl) ListForUser(ctx context.Context, db *gorm.DB, userID uint) ([]dto.NoticeResponse, error) {
	rows, err := s.noticeRepo.FindNoticesForUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.toResponses(rows), nil
}

func (s *NoticeServiceImpl) ListAll(ctx context.Context, db *gorm.DB) ([]dto.NoticeResponse, error) {
	rows, err := s.noticeRepo.FindAllNotices(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.toResponses(rows), nil
}

// Dismiss hides a notice for the user. Dismissing twice is fine.
func (s *NoticeServiceImpl) Dismiss(ctx context.Context, db *gorm.DB, userID, noticeID uint) error {
	if _, err := s.noticeRepo.FindNoticeByID(db, noticeID); err != nil {
		if errors.Is(err, repositories.ErrNoticeNotFound) {
			return apperrors.ErrNoticeNotFound
		}
		return apperrors.InternalError(err)
	}
	if err := s.noticeRepo.Dismiss(db, userID, noticeID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *NoticeServiceImpl) toResponses(rows []repositories.NoticeRow) []dto.NoticeResponse {
	out := make([]dto.NoticeResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.NoticeResponse{
			ID:         r.ID,
			EventID:    r.EventID,
			Message:    r.Message,
			CreatedAt:  r.CreatedAt,
			EventDate:  r.EventDate,
			EventTitle: orDefault(r.EventTitle, s.defaultTitle),
		})
	}
	return out
}
