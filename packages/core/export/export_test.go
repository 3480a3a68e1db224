package export

import (
	"bytes"
	"testing"

	"titans-lacrosse/packages/core/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func open(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestResultsWorkbook(t *testing.T) {
	goals := 4
	results := []models.Result{
		{GameDate: models.NewDate(2025, 3, 8), Opponent: "Hampton", TitansScore: 9, OpponentScore: 9, LeadingScorerGoals: &goals},
		{GameDate: models.NewDate(2025, 3, 1), Opponent: "Mars", TitansScore: 12, OpponentScore: 3},
	}

	data, err := Results(results)
	require.NoError(t, err)
	f := open(t, data)

	assert.Equal(t, []string{ResultsSheet, SummarySheet}, f.GetSheetList())

	rows, err := f.GetRows(ResultsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Date", rows[0][0])
	assert.Equal(t, []string{"2025-03-08", "Hampton", "9", "9", "tie"}, rows[1][:5])
	assert.Equal(t, "4", rows[1][7])
	assert.Equal(t, "win", rows[2][4])

	summary, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	require.Len(t, summary, 2)
	assert.Equal(t, []string{"2", "1", "1", "1", "21", "12"}, summary[1])
}

func TestRosterWorkbook(t *testing.T) {
	number := 22
	players := []models.Player{
		{FirstName: "Sam", LastName: "Young", JerseyNumber: &number, Position: models.PositionAttack, IsActive: true},
		{FirstName: "Alex", LastName: "Baker"},
	}

	data, err := Roster(players)
	require.NoError(t, err)
	f := open(t, data)

	rows, err := f.GetRows(RosterSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"22", "Sam", "Young", "attack", "", "TRUE"}, rows[1][:6])
	assert.Equal(t, "Baker", rows[2][2])
}
