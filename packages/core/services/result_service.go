package services

import (
	"context"
	"errors"

	"titans-lacrosse/packages/core/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ResultService struct {
	db *gorm.DB
}

func NewResultService(db *gorm.DB) *ResultService {
	return &ResultService{
		db: db,
	}
}

func (s *ResultService) ListResults(ctx context.Context, limit int) ([]models.Result, error) {
	results := make([]models.Result, 0)

	query := s.db.WithContext(ctx).
		Preload("OpponentTeam").
		Preload("HomeTeam").
		Order("game_date DESC").
		Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (s *ResultService) ListResultsAgainst(ctx context.Context, teamID uint) ([]models.Result, error) {
	results := make([]models.Result, 0)

	result := s.db.WithContext(ctx).
		Where("opponent_team_id = ?", teamID).
		Order("game_date DESC").
		Find(&results)
	if result.Error != nil {
		return nil, result.Error
	}

	return results, nil
}

func (s *ResultService) GetResult(ctx context.Context, id uint) (*models.Result, error) {
	var res models.Result

	result := s.db.WithContext(ctx).
		Preload("OpponentTeam").
		Preload("HomeTeam").
		First(&res, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrResultNotFound
		}
		return nil, result.Error
	}

	return &res, nil
}

func (s *ResultService) CreateResult(ctx context.Context, req models.ResultRequest) (*models.Result, error) {
	res := &models.Result{}
	if err := s.apply(ctx, req, res); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(res).Error; err != nil {
		return nil, err
	}

	return s.GetResult(ctx, res.ID)
}

func (s *ResultService) UpdateResult(ctx context.Context, id uint, req models.ResultRequest) (*models.Result, error) {
	res, err := s.GetResult(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.apply(ctx, req, res); err != nil {
		return nil, err
	}
	res.OpponentTeam = nil
	res.HomeTeam = nil

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(res).Error; err != nil {
		return nil, err
	}

	return s.GetResult(ctx, id)
}

func (s *ResultService) DeleteResult(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Result{}, id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrResultNotFound
	}

	return nil
}

// apply copies req onto res and refreshes the denormalised opponent name.
func (s *ResultService) apply(ctx context.Context, req models.ResultRequest, res *models.Result) error {
	if err := req.Apply(res); err != nil {
		return err
	}

	res.Opponent = ""
	if res.OpponentTeamID == nil {
		return nil
	}

	var team models.Team
	err := s.db.WithContext(ctx).Select("id", "name").First(&team, *res.OpponentTeamID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOpponentNotFound
		}
		return err
	}
	res.Opponent = team.Name

	return nil
}
