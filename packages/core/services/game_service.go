package services

import (
	"context"
	"errors"

	"titans-lacrosse/packages/core/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GameService struct {
	db *gorm.DB
}

func NewGameService(db *gorm.DB) *GameService {
	return &GameService{
		db: db,
	}
}

func (s *GameService) withTeams(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Preload("Opponent").Preload("Home")
}

func (s *GameService) ListGames(ctx context.Context) ([]models.Game, error) {
	games := make([]models.Game, 0)

	result := s.withTeams(ctx).
		Order("date ASC").
		Order("time ASC").
		Find(&games)
	if result.Error != nil {
		return nil, result.Error
	}

	return games, nil
}

// ListUpcomingGames returns games dated on or after from, soonest first.
func (s *GameService) ListUpcomingGames(ctx context.Context, from models.Date) ([]models.Game, error) {
	games := make([]models.Game, 0)

	result := s.withTeams(ctx).
		Where("date >= ?", from).
		Order("date ASC").
		Order("time ASC").
		Find(&games)
	if result.Error != nil {
		return nil, result.Error
	}

	return games, nil
}

func (s *GameService) GetGame(ctx context.Context, id uint) (*models.Game, error) {
	var game models.Game

	result := s.withTeams(ctx).First(&game, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, result.Error
	}

	return &game, nil
}

func (s *GameService) CreateGame(ctx context.Context, req models.GameRequest) (*models.Game, error) {
	game := &models.Game{}
	if err := req.Apply(game); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(game).Error; err != nil {
		return nil, err
	}

	return s.GetGame(ctx, game.ID)
}

func (s *GameService) UpdateGame(ctx context.Context, id uint, req models.GameRequest) (*models.Game, error) {
	game, err := s.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := req.Apply(game); err != nil {
		return nil, err
	}
	game.Opponent = nil
	game.Home = nil

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(game).Error; err != nil {
		return nil, err
	}

	return s.GetGame(ctx, id)
}

func (s *GameService) DeleteGame(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Game{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrGameNotFound
	}

	return nil
}
