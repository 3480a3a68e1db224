package services

import (
	"context"
	"errors"

	"titans-lacrosse/packages/core/models"

	"gorm.io/gorm"
)

type PlayerService struct {
	db *gorm.DB
}

func NewPlayerService(db *gorm.DB) *PlayerService {
	return &PlayerService{
		db: db,
	}
}

func (s *PlayerService) ListPlayers(ctx context.Context) ([]models.Player, error) {
	players := make([]models.Player, 0)

	result := s.db.WithContext(ctx).
		Order("last_name ASC").
		Order("first_name ASC").
		Find(&players)
	if result.Error != nil {
		return nil, result.Error
	}

	return players, nil
}

func (s *PlayerService) ListRoster(ctx context.Context, position models.Position) ([]models.Player, error) {
	players := make([]models.Player, 0)

	query := s.db.WithContext(ctx).Where("is_active = ?", true)
	if position != models.PositionNone {
		query = query.Where("position = ?", position)
	}

	result := query.
		Order("jersey_number ASC").
		Order("last_name ASC").
		Find(&players)
	if result.Error != nil {
		return nil, result.Error
	}

	return players, nil
}

func (s *PlayerService) GetPlayer(ctx context.Context, id uint) (*models.Player, error) {
	var player models.Player

	result := s.db.WithContext(ctx).First(&player, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, result.Error
	}

	return &player, nil
}

func (s *PlayerService) CreatePlayer(ctx context.Context, req models.PlayerRequest) (*models.Player, error) {
	player := &models.Player{}
	req.Apply(player)

	if err := s.db.WithContext(ctx).Create(player).Error; err != nil {
		return nil, err
	}

	return player, nil
}

func (s *PlayerService) UpdatePlayer(ctx context.Context, id uint, req models.PlayerRequest) (*models.Player, error) {
	player, err := s.GetPlayer(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Apply(player)
	if err := s.db.WithContext(ctx).Save(player).Error; err != nil {
		return nil, err
	}

	return player, nil
}

func (s *PlayerService) SetPlayerPhoto(ctx context.Context, id uint, url string) error {
	result := s.db.WithContext(ctx).
		Model(&models.Player{}).
		Where("id = ?", id).
		Update("photo_url", url)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrPlayerNotFound
	}

	return nil
}

func (s *PlayerService) DeletePlayer(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Player{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrPlayerNotFound
	}

	return nil
}
