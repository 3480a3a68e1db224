package services

import (
	"context"
	"errors"
	"strconv"

	"titans-lacrosse/packages/core/models"

	"gorm.io/gorm"
)

type TeamService struct {
	db *gorm.DB
}

func NewTeamService(db *gorm.DB) *TeamService {
	return &TeamService{
		db: db,
	}
}

func (s *TeamService) ListTeams(ctx context.Context) ([]models.Team, error) {
	teams := make([]models.Team, 0)

	if err := s.db.WithContext(ctx).Order("name ASC").Find(&teams).Error; err != nil {
		return nil, err
	}

	return teams, nil
}

// ListTeamOptions feeds the team picker.
func (s *TeamService) ListTeamOptions(ctx context.Context) ([]models.TeamOption, error) {
	options := make([]models.TeamOption, 0)

	result := s.db.WithContext(ctx).
		Model(&models.Team{}).
		Select("id", "name").
		Order("name ASC").
		Find(&options)
	if result.Error != nil {
		return nil, result.Error
	}

	return options, nil
}

func (s *TeamService) GetTeam(ctx context.Context, id uint) (*models.Team, error) {
	var team models.Team

	result := s.db.WithContext(ctx).First(&team, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, result.Error
	}

	return &team, nil
}

func (s *TeamService) CreateTeam(ctx context.Context, req models.TeamRequest) (*models.Team, error) {
	team := &models.Team{}
	req.Apply(team)

	if err := s.db.WithContext(ctx).Create(team).Error; err != nil {
		return nil, err
	}

	return team, nil
}

func (s *TeamService) UpdateTeam(ctx context.Context, id uint, req models.TeamRequest) (*models.Team, error) {
	team, err := s.GetTeam(ctx, id)
	if err != nil {
		return nil, err
	}

	req.Apply(team)
	if err := s.db.WithContext(ctx).Save(team).Error; err != nil {
		return nil, err
	}

	return team, nil
}

func (s *TeamService) SetTeamLogo(ctx context.Context, id uint, url string) error {
	result := s.db.WithContext(ctx).
		Model(&models.Team{}).
		Where("id = ?", id).
		Update("logo_url", url)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrTeamNotFound
	}

	return nil
}

// DeleteTeam removes the team; games and results keep their rows with the
// team reference cleared, and a home team setting naming it is dropped.
func (s *TeamService) DeleteTeam(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, column := range []string{"opponent_team_id", "home_team_id"} {
			if err := tx.Model(&models.Game{}).Where(column+" = ?", id).Update(column, nil).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Result{}).Where(column+" = ?", id).Update(column, nil).Error; err != nil {
				return err
			}
		}

		result := tx.Delete(&models.Team{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTeamNotFound
		}

		return tx.Where("key = ? AND value = ?", models.SettingHomeTeamID, strconv.FormatUint(uint64(id), 10)).
			Delete(&models.Setting{}).Error
	})
}
