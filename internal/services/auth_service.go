package services

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"

	"tfl_backend/internal/auth"
	"tfl_backend/internal/email"
	"tfl_backend/internal/logger"
	"tfl_backend/internal/models"
	"tfl_backend/internal/repositories"
	"tfl_backend/internal/services/dto"
	"tfl_backend/pkg/apperrors"
)

// ResendInterval is the minimum gap between self-service verification emails
const ResendInterval = 60 * time.Second

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type AuthService interface {
	Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*models.User, error)
	VerifyEmail(ctx context.Context, db *gorm.DB, token string) (bool, error)
	ResendVerification(ctx context.Context, db *gorm.DB, userID uint) error
	DevVerify(ctx context.Context, db *gorm.DB, userID uint) error
	RequestPasswordReset(ctx context.Context, db *gorm.DB, email string) error
	ResetPassword(ctx context.Context, db *gorm.DB, req *dto.PasswordResetConfirm) error
}

type AuthServiceImpl struct {
	userRepo   repositories.UserRepository
	mailer     email.Provider
	links      Links
	production bool
	now        func() time.Time
}

func NewAuthService(
	userRepo repositories.UserRepository,
	mailer email.Provider,
	links Links,
	production bool,
	now func() time.Time,
) AuthService {
	if now == nil {
		now = time.Now
	}
	return &AuthServiceImpl{
		userRepo:   userRepo,
		mailer:     mailer,
		links:      links,
		production: production,
		now:        now,
	}
}

// Register creates an unverified account and mails the verification link.
// The account exists even when the email fails; the error says why.
func (s *AuthServiceImpl) Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	emailAddr := models.NormalizeEmail(req.Email)

	if username == "" || firstName == "" || lastName == "" || emailAddr == "" || req.Password == "" {
		return nil, apperrors.ErrAllFieldsRequired
	}
	if len([]rune(username)) < 2 {
		return nil, apperrors.ErrUsernameTooShort
	}
	if !emailPattern.MatchString(emailAddr) {
		return nil, apperrors.ErrInvalidEmail
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, err
	}
	if req.Password != req.ConfirmPassword {
		return nil, apperrors.ErrPasswordMismatch
	}

	emoji := strings.TrimSpace(req.ProfileEmoji)
	if !models.IsAllowedProfileEmoji(emoji) {
		emoji = models.DefaultProfileEmoji
	}

	key := models.NormalizeUsername(username)
	if _, err := s.userRepo.FindByUsernameKey(db, key); err == nil {
		return nil, apperrors.ErrUsernameTaken
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.InternalError(err)
	}
	if _, err := s.userRepo.FindByEmail(db, emailAddr); err == nil {
		return nil, apperrors.ErrEmailAlreadyExists
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.InternalError(err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	token, err := auth.NewToken(s.now(), auth.VerificationTTL)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Username:            username,
		UsernameKey:         key,
		Email:               emailAddr,
		PasswordHash:        hash,
		VerificationToken:   &token.Value,
		VerificationExpires: &token.ExpiresAt,
		FirstName:           &firstName,
		LastName:            &lastName,
		ProfileEmoji:        &emoji,
	}
	if err := s.userRepo.CreateUser(db, user); err != nil {
		// a concurrent registration won the race
		return nil, handleUserConflict(err)
	}
	logger.CtxInfo(ctx, "user registered", "user_id", user.ID)

	if err := s.mailer.SendVerification(ctx, user.Email, s.links.VerifyEmail(token.Value)); err != nil {
		logger.CtxWithError(ctx, "failed to send verification email", err, "user_id", user.ID)
		return user, mailError(err)
	}
	return user, nil
}

// Login checks credentials; the username match ignores case
func (s *AuthServiceImpl) Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, apperrors.ErrCredentialsRequired
	}

	user, err := s.userRepo.FindByUsernameKey(db, models.NormalizeUsername(username))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}
	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

// VerifyEmail consumes a verification token; false means unknown or expired
func (s *AuthServiceImpl) VerifyEmail(ctx context.Context, db *gorm.DB, token string) (bool, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return false, nil
	}
	ok, err := s.userRepo.VerifyByToken(db, token, s.now().Unix())
	if err != nil {
		return false, apperrors.InternalError(err)
	}
	if ok {
		logger.CtxInfo(ctx, "email verified")
	}
	return ok, nil
}

// ResendVerification issues a fresh token for the caller, at most once per
// ResendInterval. The previous send time is derived from the stored expiry.
func (s *AuthServiceImpl) ResendVerification(ctx context.Context, db *gorm.DB, userID uint) error {
	user, err := s.userRepo.FindUserByID(db, userID)
	if err != nil {
		return handleUserNotFound(err)
	}
	if user.EmailVerified {
		return nil
	}

	now := s.now()
	if user.VerificationExpires != nil {
		issued := time.Unix(*user.VerificationExpires, 0).Add(-auth.VerificationTTL)
		if now.Sub(issued) < ResendInterval {
			return apperrors.ErrResendTooSoon
		}
	}

	token, err := auth.NewToken(now, auth.VerificationTTL)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.SetVerificationToken(db, user.ID, token.Value, token.ExpiresAt); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.mailer.SendVerification(ctx, user.Email, s.links.VerifyEmail(token.Value)); err != nil {
		logger.CtxWithError(ctx, "failed to resend verification email", err, "user_id", user.ID)
		return mailError(err)
	}
	return nil
}

// DevVerify marks the caller verified without a token. Development only.
func (s *AuthServiceImpl) DevVerify(ctx context.Context, db *gorm.DB, userID uint) error {
	if s.production {
		return apperrors.ErrInsufficientPermissions
	}
	err := s.userRepo.UpdateUserFields(db, userID, map[string]interface{}{
		"email_verified":       true,
		"verification_token":   nil,
		"verification_expires": nil,
	})
	if err != nil {
		return apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "email verified via dev shortcut", "user_id", userID)
	return nil
}

// RequestPasswordReset always succeeds for a non-blank address so callers
// cannot probe which emails have accounts. Mail failures are only logged.
func (s *AuthServiceImpl) RequestPasswordReset(ctx context.Context, db *gorm.DB, emailAddr string) error {
	emailAddr = models.NormalizeEmail(emailAddr)
	if emailAddr == "" {
		return apperrors.ErrEmailRequired
	}

	user, err := s.userRepo.FindByEmail(db, emailAddr)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil
		}
		return apperrors.InternalError(err)
	}

	token, err := auth.NewToken(s.now(), auth.ResetTTL)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.SetResetToken(db, user.ID, token.Value, token.ExpiresAt); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.mailer.SendPasswordReset(ctx, user.Email, s.links.ResetPassword(token.Value)); err != nil {
		logger.CtxWithError(ctx, "failed to send password reset email", err, "user_id", user.ID)
	}
	return nil
}

// ResetPassword sets a new password if the token is live. The token is
// consumed by the same UPDATE, so it works at most once.
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, db *gorm.DB, req *dto.PasswordResetConfirm) error {
	token := strings.TrimSpace(req.Token)
	if token == "" {
		return apperrors.ErrInvalidResetLink
	}
	if req.Confirm != "" && req.Password != req.Confirm {
		return apperrors.ErrPasswordMismatch
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		return err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return apperrors.InternalError(err)
	}
	ok, err := s.userRepo.ResetPasswordByToken(db, token, hash, s.now().Unix())
	if err != nil {
		return apperrors.InternalError(err)
	}
	if !ok {
		return apperrors.ErrInvalidResetLink
	}
	logger.CtxInfo(ctx, "password reset")
	return nil
}

// ============================================
// Helpers shared by the account services
// ============================================

func handleUserConflict(err error) error {
	switch {
	case errors.Is(err, repositories.ErrUsernameTaken):
		return apperrors.ErrUsernameTaken
	case errors.Is(err, repositories.ErrEmailTaken):
		return apperrors.ErrEmailAlreadyExists
	default:
		return apperrors.InternalError(err)
	}
}

func handleUserNotFound(err error) error {
	if errors.Is(err, repositories.ErrUserNotFound) {
		return apperrors.ErrUserNotFound
	}
	return apperrors.InternalError(err)
}

// mailError maps a provider failure onto the message shown to the user
func mailError(err error) error {
	if errors.Is(err, email.ErrNotConfigured) {
		return apperrors.ErrEmailNotConfigured
	}
	if _, ok := apperrors.AsAppError(err); ok {
		return err
	}
	return email.ClassifySendError(err)
}
