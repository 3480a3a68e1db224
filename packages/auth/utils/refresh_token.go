package utils

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"titans-lacrosse/packages/auth/models"

	"gorm.io/gorm"
)

const (
	AccessTokenExpiry  = 15 * time.Minute   // Access token court
	RefreshTokenExpiry = 7 * 24 * time.Hour // Refresh token longue durée
)

var ErrInvalidRefreshToken = errors.New("invalid refresh token")

// GenerateTokenPair génère un access token et un refresh token
func (t *Tokens) GenerateTokenPair(ctx context.Context, db *gorm.DB, user models.User) (*models.TokenResponse, error) {
	accessToken, err := t.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	refreshTokenString, err := generateSecureToken()
	if err != nil {
		return nil, err
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Révoquer les anciens refresh tokens de l'utilisateur
		if err := tx.Where("user_id = ?", user.ID).Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}

		return tx.Create(&models.RefreshToken{
			UserID:    user.ID,
			Token:     refreshTokenString,
			ExpiresAt: t.now().Add(t.refreshTTL),
		}).Error
	})
	if err != nil {
		return nil, err
	}

	return t.tokenResponse(accessToken, refreshTokenString), nil
}

// RefreshAccessToken génère un nouvel access token à partir d'un refresh token,
// avec rotation du refresh token
func (t *Tokens) RefreshAccessToken(ctx context.Context, db *gorm.DB, refreshTokenString string) (*models.TokenResponse, *models.User, error) {
	var refreshToken models.RefreshToken

	err := db.WithContext(ctx).Preload("User").Where("token = ?", refreshTokenString).First(&refreshToken).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidRefreshToken
		}
		return nil, nil, err
	}

	if refreshToken.IsExpired(t.now()) {
		db.WithContext(ctx).Delete(&refreshToken)
		return nil, nil, ErrInvalidRefreshToken
	}
	if !refreshToken.User.Enabled {
		return nil, nil, ErrInvalidRefreshToken
	}

	accessToken, err := t.GenerateToken(refreshToken.User)
	if err != nil {
		return nil, nil, err
	}

	newRefreshTokenString, err := generateSecureToken()
	if err != nil {
		return nil, nil, err
	}

	refreshToken.Token = newRefreshTokenString
	refreshToken.ExpiresAt = t.now().Add(t.refreshTTL)
	if err := db.WithContext(ctx).Omit("User").Save(&refreshToken).Error; err != nil {
		return nil, nil, err
	}

	user := refreshToken.User
	return t.tokenResponse(accessToken, newRefreshTokenString), &user, nil
}

// RevokeRefreshToken révoque un refresh token
func RevokeRefreshToken(ctx context.Context, db *gorm.DB, refreshTokenString string) error {
	return db.WithContext(ctx).Where("token = ?", refreshTokenString).Delete(&models.RefreshToken{}).Error
}

// RevokeAllUserTokens révoque tous les refresh tokens d'un utilisateur
func RevokeAllUserTokens(ctx context.Context, db *gorm.DB, userID uint) error {
	return db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error
}

// CleanExpiredTokens supprime les tokens expirés (à appeler périodiquement)
func (t *Tokens) CleanExpiredTokens(ctx context.Context, db *gorm.DB) (int64, error) {
	result := db.WithContext(ctx).Where("expires_at < ?", t.now()).Delete(&models.RefreshToken{})
	return result.RowsAffected, result.Error
}

func (t *Tokens) tokenResponse(accessToken, refreshToken string) *models.TokenResponse {
	return &models.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(t.accessTTL.Seconds()),
		TokenType:    "Bearer",
	}
}

// generateSecureToken génère un token sécurisé pour le refresh token
func generateSecureToken() (string, error) {
	bytes := make([]byte, 32) // 256 bits
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
