package services

import (
	"context"
	"errors"

	"titans-lacrosse/packages/core/models"
)

var (
	ErrGameNotFound     = errors.New("game not found")
	ErrResultNotFound   = errors.New("result not found")
	ErrTeamNotFound     = errors.New("team not found")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrSettingNotFound  = errors.New("setting not found")
	ErrOpponentNotFound = errors.New("opponent team not found")
)

// IsNotFound reports whether err is one of the not-found errors of this package.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrGameNotFound) ||
		errors.Is(err, ErrResultNotFound) ||
		errors.Is(err, ErrTeamNotFound) ||
		errors.Is(err, ErrPlayerNotFound) ||
		errors.Is(err, ErrSettingNotFound)
}

type GameRepository interface {
	ListGames(ctx context.Context) ([]models.Game, error)
	ListUpcomingGames(ctx context.Context, from models.Date) ([]models.Game, error)
	GetGame(ctx context.Context, id uint) (*models.Game, error)
	CreateGame(ctx context.Context, req models.GameRequest) (*models.Game, error)
	UpdateGame(ctx context.Context, id uint, req models.GameRequest) (*models.Game, error)
	DeleteGame(ctx context.Context, id uint) error
}

type ResultRepository interface {
	// ListResults returns results newest first; limit <= 0 means all.
	ListResults(ctx context.Context, limit int) ([]models.Result, error)
	ListResultsAgainst(ctx context.Context, teamID uint) ([]models.Result, error)
	GetResult(ctx context.Context, id uint) (*models.Result, error)
	CreateResult(ctx context.Context, req models.ResultRequest) (*models.Result, error)
	UpdateResult(ctx context.Context, id uint, req models.ResultRequest) (*models.Result, error)
	DeleteResult(ctx context.Context, id uint) error
}

type TeamRepository interface {
	ListTeams(ctx context.Context) ([]models.Team, error)
	ListTeamOptions(ctx context.Context) ([]models.TeamOption, error)
	GetTeam(ctx context.Context, id uint) (*models.Team, error)
	CreateTeam(ctx context.Context, req models.TeamRequest) (*models.Team, error)
	UpdateTeam(ctx context.Context, id uint, req models.TeamRequest) (*models.Team, error)
	SetTeamLogo(ctx context.Context, id uint, url string) error
	DeleteTeam(ctx context.Context, id uint) error
}

type PlayerRepository interface {
	ListPlayers(ctx context.Context) ([]models.Player, error)
	// ListRoster returns active players by jersey number; PositionNone means every position.
	ListRoster(ctx context.Context, position models.Position) ([]models.Player, error)
	GetPlayer(ctx context.Context, id uint) (*models.Player, error)
	CreatePlayer(ctx context.Context, req models.PlayerRequest) (*models.Player, error)
	UpdatePlayer(ctx context.Context, id uint, req models.PlayerRequest) (*models.Player, error)
	SetPlayerPhoto(ctx context.Context, id uint, url string) error
	DeletePlayer(ctx context.Context, id uint) error
}

type SettingRepository interface {
	ListSettings(ctx context.Context) ([]models.Setting, error)
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) (*models.Setting, error)
	HomeTeamID(ctx context.Context) (*uint, error)
}
