package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"tfl_backend/internal/models"
)

type UserRepository interface {
	CreateUser(db *gorm.DB, user *models.User) error
	FindUserByID(db *gorm.DB, id uint) (*models.User, error)
	FindByUsernameKey(db *gorm.DB, key string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	UsernameTakenByOther(db *gorm.DB, key string, excludeID uint) (bool, error)
	EmailTakenByOther(db *gorm.DB, email string, excludeID uint) (bool, error)
	UpdateUserFields(db *gorm.DB, id uint, fields map[string]interface{}) error

	// Tokens
	SetVerificationToken(db *gorm.DB, id uint, token string, expires int64) error
	VerifyByToken(db *gorm.DB, token string, now int64) (bool, error)
	SetResetToken(db *gorm.DB, id uint, token string, expires int64) error
	ResetPasswordByToken(db *gorm.DB, token, passwordHash string, now int64) (bool, error)

	// Admin operations
	SearchUsers(db *gorm.DB, q UserQuery) ([]models.User, int64, error)
	FindUsersByIDs(db *gorm.DB, ids []uint) ([]models.User, error)
	SetAdmin(db *gorm.DB, ids []uint, isAdmin bool) (int64, error)
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) CreateUser(db *gorm.DB, user *models.User) error {
	return mapUserConflict(db.Create(user).Error)
}

func (r *UserRepositoryImpl) FindUserByID(db *gorm.DB, id uint) (*models.User, error) {
	return r.findOne(db, "id = ?", id)
}

func (r *UserRepositoryImpl) FindByUsernameKey(db *gorm.DB, key string) (*models.User, error) {
	return r.findOne(db, "username_key = ?", key)
}

func (r *UserRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	return r.findOne(db, "email = ?", email)
}

func (r *UserRepositoryImpl) findOne(db *gorm.DB, query string, args ...interface{}) (*models.User, error) {
	var user models.User
	err := db.Where(query, args...).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) UsernameTakenByOther(db *gorm.DB, key string, excludeID uint) (bool, error) {
	var count int64
	err := db.Model(&models.User{}).Where("username_key = ? AND id <> ?", key, excludeID).Count(&count).Error
	return count > 0, err
}

func (r *UserRepositoryImpl) EmailTakenByOther(db *gorm.DB, email string, excludeID uint) (bool, error) {
	var count int64
	err := db.Model(&models.User{}).Where("email = ? AND id <> ?", email, excludeID).Count(&count).Error
	return count > 0, err
}

// UpdateUserFields writes all fields in one UPDATE
func (r *UserRepositoryImpl) UpdateUserFields(db *gorm.DB, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	err := db.Model(&models.User{}).Where("id = ?", id).Updates(fields).Error
	return mapUserConflict(err)
}

// ============================================
// Tokens
// ============================================

func (r *UserRepositoryImpl) SetVerificationToken(db *gorm.DB, id uint, token string, expires int64) error {
	return db.Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"verification_token":   token,
		"verification_expires": expires,
	}).Error
}

// VerifyByToken marks the owner of a live token verified and clears it.
// Returns false when no row matched.
func (r *UserRepositoryImpl) VerifyByToken(db *gorm.DB, token string, now int64) (bool, error) {
	result := db.Model(&models.User{}).
		Where("verification_token = ? AND verification_expires > ?", token, now).
		Updates(map[string]interface{}{
			"email_verified":       true,
			"verification_token":   nil,
			"verification_expires": nil,
		})
	return result.RowsAffected > 0, result.Error
}

func (r *UserRepositoryImpl) SetResetToken(db *gorm.DB, id uint, token string, expires int64) error {
	return db.Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"reset_token":         token,
		"reset_token_expires": expires,
	}).Error
}

// ResetPasswordByToken swaps the password and consumes the token in a single
// conditional UPDATE, so a token can succeed at most once.
func (r *UserRepositoryImpl) ResetPasswordByToken(db *gorm.DB, token, passwordHash string, now int64) (bool, error) {
	result := db.Model(&models.User{}).
		Where("reset_token = ? AND reset_token_expires > ?", token, now).
		Updates(map[string]interface{}{
			"password_hash":       passwordHash,
			"reset_token":         nil,
			"reset_token_expires": nil,
		})
	return result.RowsAffected > 0, result.Error
}

// ============================================
// Admin operations
// ============================================

// UserQuery filters the admin user table. Nil flags match everyone.
type UserQuery struct {
	Search   string
	Verified *bool
	Admin    *bool
	Offset   int
	Limit    int
}

// SearchUsers returns one page of matching users, newest first, and the
// total number of matches.
func (r *UserRepositoryImpl) SearchUsers(db *gorm.DB, q UserQuery) ([]models.User, int64, error) {
	filtered := func() *gorm.DB {
		query := db.Model(&models.User{})
		if term := strings.ToLower(strings.TrimSpace(q.Search)); term != "" {
			like := "%" + term + "%"
			query = query.Where(
				"username_key LIKE ? OR LOWER(email) LIKE ? OR LOWER(COALESCE(first_name, '')) LIKE ? OR LOWER(COALESCE(last_name, '')) LIKE ?",
				like, like, like, like,
			)
		}
		if q.Verified != nil {
			query = query.Where("email_verified = ?", *q.Verified)
		}
		if q.Admin != nil {
			query = query.Where("is_admin = ?", *q.Admin)
		}
		return query
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	page := filtered().Order("created_at DESC, id DESC")
	if q.Limit > 0 {
		page = page.Offset(q.Offset).Limit(q.Limit)
	}
	if err := page.Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserRepositoryImpl) FindUsersByIDs(db *gorm.DB, ids []uint) ([]models.User, error) {
	var users []models.User
	if len(ids) == 0 {
		return users, nil
	}
	err := db.Where("id IN ?", ids).Order("id").Find(&users).Error
	return users, err
}

func (r *UserRepositoryImpl) SetAdmin(db *gorm.DB, ids []uint, isAdmin bool) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := db.Model(&models.User{}).Where("id IN ?", ids).Update("is_admin", isAdmin)
	return result.RowsAffected, result.Error
}
