package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"tfl_backend/internal/auth"
	"tfl_backend/internal/config"
	"tfl_backend/internal/email"
	"tfl_backend/internal/logger"
	"tfl_backend/internal/models"
	"tfl_backend/internal/repositories"
	"tfl_backend/internal/services/dto"
	"tfl_backend/pkg/apperrors"
)

const (
	maxNameLength  = 100
	maxEmojiLength = 8
)

type UserService interface {
	ResolveViewer(ctx context.Context, db *gorm.DB, userID uint) (*auth.Viewer, error)
	GetProfile(ctx context.Context, db *gorm.DB, userID uint) (*dto.UserProfile, error)
	UpdateProfile(ctx context.Context, db *gorm.DB, userID uint, req *dto.UpdateProfileRequest) error
	UpdateSettings(ctx context.Context, db *gorm.DB, user *models.User, form *dto.SettingsForm) (string, error)

	// Admin operations
	ListUsers(ctx context.Context, db *gorm.DB, filter dto.UserFilter) (*dto.AdminUsersPage, error)
	SetAdmin(ctx context.Context, db *gorm.DB, actorID uint, ids []uint, isAdmin bool) (int64, error)
	ResendVerificationBulk(ctx context.Context, db *gorm.DB, ids []uint) (*dto.ResendResult, error)
	SeedFirstAdmin(ctx context.Context, db *gorm.DB, username, emailAddr, password string) error
}

type UserServiceImpl struct {
	userRepo   repositories.UserRepository
	mailer     email.Provider
	links      Links
	production bool
	now        func() time.Time
}

func NewUserService(
	userRepo repositories.UserRepository,
	mailer email.Provider,
	links Links,
	production bool,
	now func() time.Time,
) UserService {
	if now == nil {
		now = time.Now
	}
	return &UserServiceImpl{
		userRepo:   userRepo,
		mailer:     mailer,
		links:      links,
		production: production,
		now:        now,
	}
}

// ResolveViewer loads the session's user. A user that no longer exists
// resolves to the anonymous viewer.
func (s *UserServiceImpl) ResolveViewer(ctx context.Context, db *gorm.DB, userID uint) (*auth.Viewer, error) {
	user, err := s.userRepo.FindUserByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			logger.CtxDebug(ctx, "session names a missing user", "user_id", userID)
			return auth.AnonymousViewer, nil
		}
		return nil, apperrors.InternalError(err)
	}
	return auth.NewViewer(user), nil
}

func (s *UserServiceImpl) GetProfile(ctx context.Context, db *gorm.DB, userID uint) (*dto.UserProfile, error) {
	user, err := s.userRepo.FindUserByID(db, userID)
	if err != nil {
		return nil, handleUserNotFound(err)
	}
	return &dto.UserProfile{
		ID:            user.ID,
		Username:      user.Username,
		Email:         user.Email,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		ProfileEmoji:  user.Emoji(),
		EmailVerified: user.EmailVerified,
		IsAdmin:       user.IsAdmin,
	}, nil
}

// UpdateProfile validates every requested change and then writes them in one
// UPDATE. Changing email or password needs the current password, checked
// before anything else.
func (s *UserServiceImpl) UpdateProfile(ctx context.Context, db *gorm.DB, userID uint, req *dto.UpdateProfileRequest) error {
	user, err := s.userRepo.FindUserByID(db, userID)
	if err != nil {
		return handleUserNotFound(err)
	}

	emailChanging := req.Email != nil && models.NormalizeEmail(*req.Email) != user.Email
	passwordChanging := req.NewPassword != ""
	if emailChanging || passwordChanging {
		if strings.TrimSpace(req.CurrentPassword) == "" {
			return apperrors.ErrCurrentPasswordRequired
		}
		if !auth.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
			return apperrors.ErrCurrentPasswordIncorrect
		}
	}

	fields := map[string]interface{}{}

	if req.FirstName != nil {
		fields["first_name"] = nullableName(*req.FirstName)
	}
	if req.LastName != nil {
		fields["last_name"] = nullableName(*req.LastName)
	}

	if req.ProfileEmoji != nil && strings.TrimSpace(*req.ProfileEmoji) != "" {
		emoji := truncateRunes(strings.TrimSpace(*req.ProfileEmoji), maxEmojiLength)
		if !models.IsAllowedProfileEmoji(emoji) {
			return apperrors.ErrInvalidProfileEmoji
		}
		fields["profile_emoji"] = emoji
	}

	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if len([]rune(username)) < 2 {
			return apperrors.ErrUsernameTooShort
		}
		key := models.NormalizeUsername(username)
		taken, err := s.userRepo.UsernameTakenByOther(db, key, user.ID)
		if err != nil {
			return apperrors.InternalError(err)
		}
		if taken {
			return apperrors.ErrUsernameTaken
		}
		fields["username"] = username
		fields["username_key"] = key
	}

	if req.Email != nil {
		addr := models.NormalizeEmail(*req.Email)
		if !emailPattern.MatchString(addr) {
			return apperrors.ErrInvalidEmail
		}
		if emailChanging {
			taken, err := s.userRepo.EmailTakenByOther(db, addr, user.ID)
			if err != nil {
				return apperrors.InternalError(err)
			}
			if taken {
				return apperrors.ErrEmailAlreadyExists
			}
			fields["email"] = addr
			fields["email_verified"] = false
			fields["verification_token"] = nil
			fields["verification_expires"] = nil
		}
	}

	if passwordChanging {
		if len(req.NewPassword) < auth.MinPasswordLength {
			return apperrors.ErrNewPasswordTooShort
		}
		hash, err := auth.HashPassword(req.NewPassword)
		if err != nil {
			return apperrors.InternalError(err)
		}
		fields["password_hash"] = hash
	}

	if len(fields) == 0 {
		return nil
	}
	if err := s.userRepo.UpdateUserFields(db, user.ID, fields); err != nil {
		return handleUserConflict(err)
	}
	logger.CtxInfo(ctx, "profile updated", "user_id", user.ID, "fields", len(fields))
	return nil
}

// UpdateSettings runs one of the settings sub-forms. It returns the intent
// that was applied, or "" when the form asked for no change.
func (s *UserServiceImpl) UpdateSettings(ctx context.Context, db *gorm.DB, user *models.User, form *dto.SettingsForm) (string, error) {
	switch form.Intent {
	case "profile":
		firstName := strings.TrimSpace(form.FirstName)
		lastName := strings.TrimSpace(form.LastName)
		if firstName == "" {
			return "", apperrors.ErrFirstNameRequired
		}
		if lastName == "" {
			return "", apperrors.ErrLastNameRequired
		}
		req := &dto.UpdateProfileRequest{FirstName: &firstName, LastName: &lastName}
		if emoji := strings.TrimSpace(form.ProfileEmoji); emoji != "" {
			req.ProfileEmoji = &emoji
		}
		return "profile", s.UpdateProfile(ctx, db, user.ID, req)

	case "email":
		addr := models.NormalizeEmail(form.Email)
		changing := addr != user.Email
		if changing && strings.TrimSpace(form.CurrentPassword) == "" {
			return "", apperrors.ErrCurrentPasswordForEmail
		}
		req := &dto.UpdateProfileRequest{}
		if addr != "" {
			req.Email = &addr
		}
		if changing {
			req.CurrentPassword = form.CurrentPassword
		}
		return "email", s.UpdateProfile(ctx, db, user.ID, req)

	case "password":
		current := strings.TrimSpace(form.CurrentPassword)
		if current == "" && strings.TrimSpace(form.NewPassword) == "" && strings.TrimSpace(form.ConfirmPassword) == "" {
			return "", apperrors.ErrPasswordFormEmpty
		}
		if form.NewPassword != "" && form.NewPassword != form.ConfirmPassword {
			return "", apperrors.ErrNewPasswordMismatch
		}
		if form.NewPassword != "" && current == "" {
			return "", apperrors.ErrCurrentPasswordForPassword
		}
		if form.NewPassword == "" {
			return "", nil
		}
		return "password", s.UpdateProfile(ctx, db, user.ID, &dto.UpdateProfileRequest{
			CurrentPassword: form.CurrentPassword,
			NewPassword:     form.NewPassword,
		})
	}
	return "", nil
}

// ============================================
// Admin operations
// ============================================

// ListUsers returns one page of the user table, newest first
func (s *UserServiceImpl) ListUsers(ctx context.Context, db *gorm.DB, filter dto.UserFilter) (*dto.AdminUsersPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	query := repositories.UserQuery{
		Search:   filter.Search,
		Verified: yesNo(filter.Verified),
		Admin:    yesNo(filter.Admin),
	}
	if filter.PageSize > 0 {
		query.Offset = (filter.Page - 1) * filter.PageSize
		query.Limit = filter.PageSize
	}

	users, total, err := s.userRepo.SearchUsers(db, query)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	page := &dto.AdminUsersPage{
		Users:    make([]dto.AdminUserRow, 0, len(users)),
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}
	for i := range users {
		u := &users[i]
		page.Users = append(page.Users, dto.AdminUserRow{
			ID:            u.ID,
			Username:      u.Username,
			DisplayName:   u.DisplayName(),
			Email:         u.Email,
			ProfileEmoji:  u.Emoji(),
			EmailVerified: u.EmailVerified,
			IsAdmin:       u.IsAdmin,
			CreatedAt:     u.CreatedAt,
		})
	}
	return page, nil
}

func yesNo(v string) *bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "yes", "1", "true":
		b := true
		return &b
	case "no", "0", "false":
		b := false
		return &b
	}
	return nil
}

// SetAdmin grants or revokes admin on ids. An admin never demotes themselves.
func (s *UserServiceImpl) SetAdmin(ctx context.Context, db *gorm.DB, actorID uint, ids []uint, isAdmin bool) (int64, error) {
	targets := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !isAdmin && id == actorID {
			continue
		}
		targets = append(targets, id)
	}
	n, err := s.userRepo.SetAdmin(db, targets, isAdmin)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "admin flag changed", "actor_id", actorID, "is_admin", isAdmin, "count", n)
	return n, nil
}

// ResendVerificationBulk issues fresh verification links for the given users.
// Admin resends are not rate limited. Outside production the last link is
// returned so it can be shown to the admin.
func (s *UserServiceImpl) ResendVerificationBulk(ctx context.Context, db *gorm.DB, ids []uint) (*dto.ResendResult, error) {
	users, err := s.userRepo.FindUsersByIDs(db, ids)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	result := &dto.ResendResult{}
	for i := range users {
		u := &users[i]
		token, err := auth.NewToken(s.now(), auth.VerificationTTL)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if err := s.userRepo.SetVerificationToken(db, u.ID, token.Value, token.ExpiresAt); err != nil {
			return nil, apperrors.InternalError(err)
		}
		link := s.links.VerifyEmail(token.Value)
		if err := s.mailer.SendVerification(ctx, u.Email, link); err != nil {
			logger.CtxWithError(ctx, "admin resend failed", err, "user_id", u.ID)
		}
		result.ResendCount++
		if !s.production {
			result.VerificationLink = link
		}
	}
	result.ResendOK = result.ResendCount > 0
	return result, nil
}

// SeedFirstAdmin creates a verified admin from configuration unless an
// account with that email already exists.
func (s *UserServiceImpl) SeedFirstAdmin(ctx context.Context, db *gorm.DB, username, emailAddr, password string) error {
	username = strings.TrimSpace(username)
	emailAddr = models.NormalizeEmail(emailAddr)
	if username == "" || emailAddr == "" || password == "" {
		return nil
	}
	if err := auth.ValidatePassword(password); err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.userRepo.FindByEmail(tx, emailAddr); err == nil {
			return nil
		} else if !errors.Is(err, repositories.ErrUserNotFound) {
			return err
		}

		hash, err := auth.HashPassword(password)
		if err != nil {
			return err
		}
		emoji := models.DefaultProfileEmoji
		user := &models.User{
			Username:      username,
			UsernameKey:   models.NormalizeUsername(username),
			Email:         emailAddr,
			PasswordHash:  hash,
			EmailVerified: true,
			IsAdmin:       true,
			ProfileEmoji:  &emoji,
		}
		if err := s.userRepo.CreateUser(tx, user); err != nil {
			return err
		}
		logger.CtxInfo(ctx, "first admin created", "user_id", user.ID, "username", username)
		return nil
	})
}

// SeedFromConfig runs SeedFirstAdmin with the FIRST_ADMIN_* settings
func SeedFromConfig(ctx context.Context, db *gorm.DB, users UserService, cfg *config.Config) error {
	return users.SeedFirstAdmin(ctx, db, cfg.Admin.Username, cfg.Admin.Email, cfg.Admin.Password)
}

func nullableName(raw string) *string {
	v := truncateRunes(strings.TrimSpace(raw), maxNameLength)
	if v == "" {
		return nil
	}
	return &v
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
