package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		titans, opponent int
		want             Outcome
	}{
		{10, 4, OutcomeWin},
		{5, 5, OutcomeTie},
		{0, 0, OutcomeTie},
		{3, 9, OutcomeLoss},
	}

	for _, tt := range tests {
		r := Result{TitansScore: tt.titans, OpponentScore: tt.opponent}
		assert.Equal(t, tt.want, Classify(tt.titans, tt.opponent))
		assert.Equal(t, tt.titans > tt.opponent, r.IsWin())
		assert.Equal(t, tt.titans == tt.opponent, r.IsTie())
		assert.False(t, r.IsWin() && r.IsTie())

		view := NewResultView(r)
		assert.Equal(t, r.IsWin(), view.IsWin)
		assert.Equal(t, r.IsTie(), view.IsTie)
		assert.Equal(t, tt.want, view.Outcome)
	}
}

func TestComputeStats(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, Stats{}, ComputeStats(nil))
	})

	t.Run("mixed", func(t *testing.T) {
		results := []Result{
			{TitansScore: 12, OpponentScore: 3},
			{TitansScore: 6, OpponentScore: 6},
			{TitansScore: 4, OpponentScore: 11},
			{TitansScore: 9, OpponentScore: 8},
		}
		stats := ComputeStats(results)

		assert.Equal(t, 4, stats.TotalGames)
		assert.Equal(t, 2, stats.Wins)
		assert.Equal(t, 2, stats.Losses)
		assert.Equal(t, 1, stats.Ties)
		assert.Equal(t, 31, stats.TotalGoals)
		assert.Equal(t, 28, stats.GoalsAgainst)
		assert.Equal(t, stats.TotalGames, stats.Wins+stats.Losses)
	})
}

func TestComputeRecordMatchesStats(t *testing.T) {
	results := []Result{
		{TitansScore: 2, OpponentScore: 1},
		{TitansScore: 2, OpponentScore: 2},
		{TitansScore: 0, OpponentScore: 1},
	}
	stats := ComputeStats(results)
	record := ComputeRecord(5, results)

	assert.Equal(t, uint(5), record.TeamID)
	assert.Equal(t, stats.Wins, record.Wins)
	assert.Equal(t, stats.Ties, record.Ties)
	assert.Equal(t, stats.Losses, record.Losses)
}

func TestParsePosition(t *testing.T) {
	tests := []struct {
		in      string
		want    Position
		wantErr bool
	}{
		{"", PositionNone, false},
		{"attack", PositionAttack, false},
		{"Goalie", PositionGoalie, false},
		{"Long Stick Midfield", PositionMidfield, false},
		{"  Defense ", PositionDefense, false},
		{"Attack/Midfield", PositionNone, true},
		{"water boy", PositionNone, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePosition(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPositionScanIsLenient(t *testing.T) {
	var p Position
	require.NoError(t, p.Scan("Attack/Midfield"))
	assert.Equal(t, PositionNone, p)

	require.NoError(t, p.Scan([]byte("midfield")))
	assert.Equal(t, PositionMidfield, p)

	require.NoError(t, p.Scan(nil))
	assert.Equal(t, PositionNone, p)
}

func TestDate(t *testing.T) {
	d, err := ParseDate("2025-03-15")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-15", d.String())

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `"2025-03-15"`, string(raw))

	var back Date
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, d, back)

	var scanned Date
	require.NoError(t, scanned.Scan("2025-03-15 00:00:00+00:00"))
	assert.Equal(t, d, scanned)
	require.NoError(t, scanned.Scan(time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, d, scanned)

	_, err = ParseDate("15/03/2025")
	assert.Error(t, err)
}

func TestToday(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)
	now := time.Date(2025, 3, 16, 2, 0, 0, 0, time.UTC)

	assert.Equal(t, "2025-03-15", Today(now, loc).String())
	assert.Equal(t, "2025-03-16", Today(now, time.UTC).String())
}

func TestFormDefaults(t *testing.T) {
	home := uint(3)

	game := NewGameForm(&home)
	assert.Equal(t, &home, game.HomeTeamID)
	assert.Equal(t, GameTypeHome, game.GameType)
	assert.Equal(t, DefaultSeason, game.Season)

	result := NewResultForm(&home)
	require.NotNil(t, result.TitansScore)
	assert.Equal(t, 0, *result.TitansScore)
	assert.Equal(t, DefaultSeason, result.Season)

	player := NewPlayerForm()
	require.NotNil(t, player.IsActive)
	assert.True(t, *player.IsActive)

	team := NewTeamForm()
	assert.Equal(t, DefaultPrimaryColor, team.PrimaryColor)
}

func TestGameFormRoundTrip(t *testing.T) {
	opponent := uint(8)
	req := GameRequest{
		Date:           "2025-03-15",
		Time:           "13:00",
		OpponentTeamID: &opponent,
		Location:       "Titans Field",
		GameType:       GameTypeHome,
	}

	var g Game
	require.NoError(t, req.Apply(&g))
	prefilled := GameFormFrom(g)

	req.Season = DefaultSeason
	assert.Equal(t, req, prefilled)
}
