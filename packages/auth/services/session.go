package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"titans-lacrosse/packages/auth/models"
	"titans-lacrosse/packages/auth/utils"

	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserDisabled       = errors.New("user account is disabled")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
)

// AuthProvider signs admins in and out. Failures are returned, never panicked.
type AuthProvider interface {
	SignIn(ctx context.Context, email, password string) (*models.Session, error)
	SignOut(ctx context.Context, refreshToken string) error
	// Resolve turns an access token into a session; an invalid token yields a signed-out session.
	Resolve(accessToken string) *models.Session
	Refresh(ctx context.Context, refreshToken string) (*models.Session, error)
}

type SessionService struct {
	db     *gorm.DB
	tokens *utils.Tokens
}

func NewSessionService(db *gorm.DB, tokens *utils.Tokens) *SessionService {
	return &SessionService{
		db:     db,
		tokens: tokens,
	}
}

func (s *SessionService) Tokens() *utils.Tokens {
	return s.tokens
}

func (s *SessionService) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPassword(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	if !user.Enabled {
		return nil, ErrUserDisabled
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.db.WithContext(ctx).Model(&user).Update("last_login", now).Error; err != nil {
		return nil, fmt.Errorf("failed to update user login info: %w", err)
	}

	tokens, err := s.tokens.GenerateTokenPair(ctx, s.db, user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &models.Session{User: &user, Status: models.StatusSignedIn, Tokens: tokens}, nil
}

func (s *SessionService) SignOut(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return utils.RevokeRefreshToken(ctx, s.db, refreshToken)
}

func (s *SessionService) Resolve(accessToken string) *models.Session {
	if accessToken == "" {
		return models.SignedOut()
	}

	claims, err := s.tokens.ParseToken(accessToken)
	if err != nil {
		return models.SignedOut()
	}

	return &models.Session{
		User: &models.User{
			ID:      claims.UserID,
			Email:   claims.Email,
			Roles:   claims.Roles,
			Enabled: true,
		},
		Status: models.StatusSignedIn,
	}
}

func (s *SessionService) Refresh(ctx context.Context, refreshToken string) (*models.Session, error) {
	tokens, user, err := s.tokens.RefreshAccessToken(ctx, s.db, refreshToken)
	if err != nil {
		return nil, err
	}

	return &models.Session{User: user, Status: models.StatusSignedIn, Tokens: tokens}, nil
}

func (s *SessionService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// CreateUser creates an enabled account with the given roles.
func (s *SessionService) CreateUser(ctx context.Context, email, username, password string, roles ...string) (*models.User, error) {
	email = normalizeEmail(email)

	var existing int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ? OR username = ?", email, username).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrUserExists
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:    email,
		Username: username,
		Password: hashed,
		Enabled:  true,
		Roles:    models.GetDefaultRoles(),
	}
	for _, role := range roles {
		user.AddRole(role)
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return user, nil
}

// CleanExpiredTokens removes refresh tokens past their expiry.
func (s *SessionService) CleanExpiredTokens(ctx context.Context) (int64, error) {
	return s.tokens.CleanExpiredTokens(ctx, s.db)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
