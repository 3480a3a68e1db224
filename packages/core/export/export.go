// Package export renders club data as xlsx workbooks for the admin panel.
package export

import (
	"fmt"

	"titans-lacrosse/packages/core/models"

	"github.com/xuri/excelize/v2"
)

const (
	ResultsSheet = "Results"
	SummarySheet = "Summary"
	RosterSheet  = "Roster"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Results renders every result plus a season summary sheet.
func Results(results []models.Result) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := newSheet(f, ResultsSheet, []string{
		"Date", "Opponent", "Titans", "Opponent Score", "Outcome", "Location", "Leading Scorer", "Goals", "Season",
	}); err != nil {
		return nil, err
	}

	for i, r := range results {
		goals := ""
		if r.LeadingScorerGoals != nil {
			goals = fmt.Sprint(*r.LeadingScorerGoals)
		}
		if err := setRow(f, ResultsSheet, i+2, []interface{}{
			r.GameDate.String(), r.Opponent, r.TitansScore, r.OpponentScore, string(r.Outcome()),
			r.Location, r.LeadingScorer, goals, r.Season,
		}); err != nil {
			return nil, err
		}
	}
	f.SetColWidth(ResultsSheet, "A", "A", 12)
	f.SetColWidth(ResultsSheet, "B", "B", 28)
	f.SetColWidth(ResultsSheet, "C", "I", 14)

	stats := models.ComputeStats(results)
	if err := newSheet(f, SummarySheet, []string{"Games", "Wins", "Losses", "Ties", "Goals For", "Goals Against"}); err != nil {
		return nil, err
	}
	if err := setRow(f, SummarySheet, 2, []interface{}{
		stats.TotalGames, stats.Wins, stats.Losses, stats.Ties, stats.TotalGoals, stats.GoalsAgainst,
	}); err != nil {
		return nil, err
	}

	return write(f)
}

// Roster renders the player list.
func Roster(players []models.Player) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := newSheet(f, RosterSheet, []string{
		"Number", "First Name", "Last Name", "Position", "Grade", "Active", "Season",
	}); err != nil {
		return nil, err
	}

	for i, p := range players {
		number, grade := "", ""
		if p.JerseyNumber != nil {
			number = fmt.Sprint(*p.JerseyNumber)
		}
		if p.Grade != nil {
			grade = fmt.Sprint(*p.Grade)
		}
		if err := setRow(f, RosterSheet, i+2, []interface{}{
			number, p.FirstName, p.LastName, string(p.Position), grade, p.IsActive, p.Season,
		}); err != nil {
			return nil, err
		}
	}
	f.SetColWidth(RosterSheet, "B", "C", 20)

	return write(f)
}

// newSheet adds a sheet with a header row and drops the default one.
func newSheet(f *excelize.File, name string, headers []string) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	if idx, _ := f.GetSheetIndex("Sheet1"); idx >= 0 {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return err
		}
	}

	row := make([]interface{}, len(headers))
	for i, h := range headers {
		row[i] = h
	}
	return setRow(f, name, 1, row)
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func write(f *excelize.File) ([]byte, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
