package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"titans-lacrosse/packages/core/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingService struct {
	db *gorm.DB
}

func NewSettingService(db *gorm.DB) *SettingService {
	return &SettingService{
		db: db,
	}
}

func (s *SettingService) ListSettings(ctx context.Context) ([]models.Setting, error) {
	settings := make([]models.Setting, 0)

	if err := s.db.WithContext(ctx).Order("key ASC").Find(&settings).Error; err != nil {
		return nil, err
	}

	return settings, nil
}

func (s *SettingService) GetSetting(ctx context.Context, key string) (string, error) {
	var setting models.Setting

	result := s.db.WithContext(ctx).Where("key = ?", key).First(&setting)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", ErrSettingNotFound
		}
		return "", result.Error
	}

	return setting.Value, nil
}

// SetSetting inserts or overwrites one key.
func (s *SettingService) SetSetting(ctx context.Context, key, value string) (*models.Setting, error) {
	setting := &models.Setting{Key: key, Value: value}

	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(setting)
	if result.Error != nil {
		return nil, result.Error
	}

	return setting, nil
}

// HomeTeamID returns the club's own team id, or nil when it is not configured.
func (s *SettingService) HomeTeamID(ctx context.Context) (*uint, error) {
	value, err := s.GetSetting(ctx, models.SettingHomeTeamID)
	if err != nil {
		if errors.Is(err, ErrSettingNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if value == "" {
		return nil, nil
	}

	id, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("setting %s is not a team id: %w", models.SettingHomeTeamID, err)
	}
	teamID := uint(id)
	return &teamID, nil
}
