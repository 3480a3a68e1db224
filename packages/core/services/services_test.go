package services

import (
	"context"
	"strconv"
	"testing"
	"time"

	"titans-lacrosse/internal/testdb"
	"titans-lacrosse/packages/core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openDB(t *testing.T) *gorm.DB {
	return testdb.Open(t, &models.Team{}, &models.Game{}, &models.Result{}, &models.Player{}, &models.Setting{})
}

func intPtr(v int) *int {
	return &v
}

func createTeam(t *testing.T, svc *TeamService, name string) *models.Team {
	t.Helper()
	team, err := svc.CreateTeam(context.Background(), models.TeamRequest{Name: name})
	require.NoError(t, err)
	return team
}

func TestTeamServiceDefaultsAndOrdering(t *testing.T) {
	ctx := context.Background()
	svc := NewTeamService(openDB(t))

	createTeam(t, svc, "Upper St. Clair")
	titans := createTeam(t, svc, "Shaler Area Titans")

	assert.Equal(t, models.DefaultPrimaryColor, titans.PrimaryColor)
	assert.Equal(t, models.DefaultSecondaryColor, titans.SecondaryColor)

	teams, err := svc.ListTeams(ctx)
	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.Equal(t, "Shaler Area Titans", teams[0].Name)

	options, err := svc.ListTeamOptions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.TeamOption{
		{ID: titans.ID, Name: "Shaler Area Titans"},
		{ID: teams[1].ID, Name: "Upper St. Clair"},
	}, options)
}

func TestTeamServiceNotFound(t *testing.T) {
	ctx := context.Background()
	svc := NewTeamService(openDB(t))

	_, err := svc.GetTeam(ctx, 42)
	assert.ErrorIs(t, err, ErrTeamNotFound)
	assert.True(t, IsNotFound(err))

	assert.ErrorIs(t, svc.DeleteTeam(ctx, 42), ErrTeamNotFound)
	assert.ErrorIs(t, svc.SetTeamLogo(ctx, 42, "http://x/logo.png"), ErrTeamNotFound)
}

func TestDeleteTeamClearsReferences(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	teams := NewTeamService(db)
	games := NewGameService(db)

	opponent := createTeam(t, teams, "North Allegheny")
	game, err := games.CreateGame(ctx, models.GameRequest{
		Date:           "2025-03-15",
		Time:           "13:00",
		OpponentTeamID: &opponent.ID,
		Location:       "Titans Field",
		GameType:       models.GameTypeHome,
	})
	require.NoError(t, err)

	require.NoError(t, teams.DeleteTeam(ctx, opponent.ID))

	reloaded, err := games.GetGame(ctx, game.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.OpponentTeamID)
	assert.Nil(t, reloaded.Opponent)
}

func TestDeleteTeamClearsHomeTeamSetting(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	teams := NewTeamService(db)
	settings := NewSettingService(db)

	home := createTeam(t, teams, "Shaler Area Titans")
	other := createTeam(t, teams, "Hampton")

	_, err := settings.SetSetting(ctx, models.SettingHomeTeamID, strconv.FormatUint(uint64(home.ID), 10))
	require.NoError(t, err)

	require.NoError(t, teams.DeleteTeam(ctx, other.ID))
	id, err := settings.HomeTeamID(ctx)
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, home.ID, *id)

	require.NoError(t, teams.DeleteTeam(ctx, home.ID))
	id, err = settings.HomeTeamID(ctx)
	require.NoError(t, err)
	assert.Nil(t, id)
}

func TestGameServiceCreateRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	teams := NewTeamService(db)
	svc := NewGameService(db)

	opponent := createTeam(t, teams, "Pine-Richland")
	created, err := svc.CreateGame(ctx, models.GameRequest{
		Date:           "2025-03-15",
		Time:           "13:00",
		OpponentTeamID: &opponent.ID,
		Location:       "Titans Field",
		GameType:       models.GameTypeHome,
	})
	require.NoError(t, err)

	games, err := svc.ListGames(ctx)
	require.NoError(t, err)
	require.Len(t, games, 1)

	got := games[0]
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "2025-03-15", got.Date.String())
	assert.Equal(t, "13:00", got.Time)
	require.NotNil(t, got.OpponentTeamID)
	assert.Equal(t, opponent.ID, *got.OpponentTeamID)
	assert.Equal(t, "Titans Field", got.Location)
	assert.Equal(t, models.GameTypeHome, got.GameType)
	assert.Equal(t, models.DefaultSeason, got.Season)
	require.NotNil(t, got.Opponent)
	assert.Equal(t, "Pine-Richland", got.Opponent.Name)
}

func TestListUpcomingGames(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	teams := NewTeamService(db)
	svc := NewGameService(db)
	opponent := createTeam(t, teams, "Seneca Valley")

	today := models.NewDate(2025, time.April, 10)
	for _, d := range []models.Date{today.AddDays(3), today.AddDays(-1), today} {
		_, err := svc.CreateGame(ctx, models.GameRequest{
			Date:           d.String(),
			Time:           "18:00",
			OpponentTeamID: &opponent.ID,
			Location:       "Titans Field",
			GameType:       models.GameTypeAway,
		})
		require.NoError(t, err)
	}

	games, err := svc.ListUpcomingGames(ctx, today)
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, today.String(), games[0].Date.String())
	assert.Equal(t, today.AddDays(3).String(), games[1].Date.String())
}

func TestUpdateAndDeleteGame(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	teams := NewTeamService(db)
	svc := NewGameService(db)
	first := createTeam(t, teams, "Butler")
	second := createTeam(t, teams, "Mars")

	req := models.GameRequest{
		Date:           "2025-04-01",
		Time:           "17:30",
		OpponentTeamID: &first.ID,
		Location:       "Butler Stadium",
		GameType:       models.GameTypeAway,
	}
	game, err := svc.CreateGame(ctx, req)
	require.NoError(t, err)

	req.OpponentTeamID = &second.ID
	req.Notes = "moved"
	updated, err := svc.UpdateGame(ctx, game.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Mars", updated.Opponent.Name)
	assert.Equal(t, "moved", updated.Notes)

	_, err = svc.UpdateGame(ctx, game.ID+100, req)
	assert.ErrorIs(t, err, ErrGameNotFound)

	require.NoError(t, svc.DeleteGame(ctx, game.ID))
	assert.ErrorIs(t, svc.DeleteGame(ctx, game.ID), ErrGameNotFound)
}

func TestResultServiceOrderingAndLimit(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	teams := NewTeamService(db)
	svc := NewResultService(db)
	opponent := createTeam(t, teams, "Fox Chapel")

	for i, date := range []string{"2025-03-01", "2025-03-20", "2025-03-10"} {
		_, err := svc.CreateResult(ctx, models.ResultRequest{
			GameDate:       date,
			OpponentTeamID: &opponent.ID,
			TitansScore:    intPtr(10 + i),
			OpponentScore:  intPtr(5),
			Location:       "Titans Field",
		})
		require.NoError(t, err)
	}

	latest, err := svc.ListResults(ctx, 2)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, "2025-03-20", latest[0].GameDate.String())
	assert.Equal(t, "2025-03-10", latest[1].GameDate.String())
	assert.Equal(t, "Fox Chapel", latest[0].Opponent)

	all, err := svc.ListResults(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	against, err := svc.ListResultsAgainst(ctx, opponent.ID)
	require.NoError(t, err)
	assert.Len(t, against, 3)
}

func TestCreateResultUnknownOpponent(t *testing.T) {
	ctx := context.Background()
	svc := NewResultService(openDB(t))

	missing := uint(99)
	_, err := svc.CreateResult(ctx, models.ResultRequest{
		GameDate:       "2025-03-01",
		OpponentTeamID: &missing,
		TitansScore:    intPtr(1),
		OpponentScore:  intPtr(2),
		Location:       "Away",
	})
	assert.ErrorIs(t, err, ErrOpponentNotFound)
}

func TestPlayerRoster(t *testing.T) {
	ctx := context.Background()
	svc := NewPlayerService(openDB(t))

	inactive := false
	players := []models.PlayerRequest{
		{FirstName: "Sam", LastName: "Young", JerseyNumber: intPtr(22), Position: models.PositionAttack},
		{FirstName: "Alex", LastName: "Baker", JerseyNumber: intPtr(3), Position: models.PositionGoalie},
		{FirstName: "Chris", LastName: "Adams", JerseyNumber: intPtr(7), Position: models.PositionAttack, IsActive: &inactive},
	}
	for _, req := range players {
		_, err := svc.CreatePlayer(ctx, req)
		require.NoError(t, err)
	}

	all, err := svc.ListPlayers(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Adams", all[0].LastName)
	assert.Equal(t, models.DefaultSeason, all[0].Season)

	roster, err := svc.ListRoster(ctx, models.PositionNone)
	require.NoError(t, err)
	require.Len(t, roster, 2)
	assert.Equal(t, "Baker", roster[0].LastName)
	assert.True(t, roster[0].IsActive)

	attack, err := svc.ListRoster(ctx, models.PositionAttack)
	require.NoError(t, err)
	require.Len(t, attack, 1)
	assert.Equal(t, "Young", attack[0].LastName)
}

func TestPlayerPhoto(t *testing.T) {
	ctx := context.Background()
	svc := NewPlayerService(openDB(t))

	player, err := svc.CreatePlayer(ctx, models.PlayerRequest{FirstName: "Jo", LastName: "Doe"})
	require.NoError(t, err)

	require.NoError(t, svc.SetPlayerPhoto(ctx, player.ID, "http://cdn/player-photos/a.png"))
	reloaded, err := svc.GetPlayer(ctx, player.ID)
	require.NoError(t, err)
	assert.Equal(t, "http://cdn/player-photos/a.png", reloaded.PhotoURL)

	assert.ErrorIs(t, svc.SetPlayerPhoto(ctx, player.ID+1, "x"), ErrPlayerNotFound)
}

func TestSettingService(t *testing.T) {
	ctx := context.Background()
	svc := NewSettingService(openDB(t))

	id, err := svc.HomeTeamID(ctx)
	require.NoError(t, err)
	assert.Nil(t, id)

	_, err = svc.SetSetting(ctx, models.SettingHomeTeamID, "4")
	require.NoError(t, err)
	_, err = svc.SetSetting(ctx, models.SettingHomeTeamID, "7")
	require.NoError(t, err)

	id, err = svc.HomeTeamID(ctx)
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, uint(7), *id)

	settings, err := svc.ListSettings(ctx)
	require.NoError(t, err)
	assert.Len(t, settings, 1)

	_, err = svc.SetSetting(ctx, models.SettingHomeTeamID, "not-a-number")
	require.NoError(t, err)
	_, err = svc.HomeTeamID(ctx)
	assert.Error(t, err)

	_, err = svc.GetSetting(ctx, "missing")
	assert.ErrorIs(t, err, ErrSettingNotFound)
}
