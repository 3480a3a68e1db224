package models

import (
	"time"
)

// Outcome of a game from the club's point of view.
type Outcome string

const (
	OutcomeWin  Outcome = "win"
	OutcomeTie  Outcome = "tie"
	OutcomeLoss Outcome = "loss"
)

// Classify is the single win/tie/loss rule. Every place that compares
// scores goes through it.
func Classify(titansScore, opponentScore int) Outcome {
	switch {
	case titansScore > opponentScore:
		return OutcomeWin
	case titansScore == opponentScore:
		return OutcomeTie
	default:
		return OutcomeLoss
	}
}

type Result struct {
	ID                 uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	GameDate           Date      `gorm:"type:date;not null;index" json:"game_date"`
	OpponentTeamID     *uint     `gorm:"index" json:"opponent_team_id"`
	HomeTeamID         *uint     `gorm:"index" json:"home_team_id"`
	Opponent           string    `gorm:"size:255" json:"opponent"`
	TitansScore        int       `gorm:"not null" json:"titans_score"`
	OpponentScore      int       `gorm:"not null" json:"opponent_score"`
	Location           string    `gorm:"size:255" json:"location"`
	LeadingScorer      string    `gorm:"size:255" json:"leading_scorer"`
	LeadingScorerGoals *int      `json:"leading_scorer_goals"`
	Notes              string    `gorm:"type:text" json:"notes"`
	Season             string    `gorm:"size:20" json:"season"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	// Relationships
	OpponentTeam *Team `gorm:"foreignKey:OpponentTeamID;references:ID;constraint:OnDelete:SET NULL" json:"opponent_team,omitempty"`
	HomeTeam     *Team `gorm:"foreignKey:HomeTeamID;references:ID;constraint:OnDelete:SET NULL" json:"home_team,omitempty"`
}

func (Result) TableName() string {
	return "results"
}

func (r Result) Outcome() Outcome {
	return Classify(r.TitansScore, r.OpponentScore)
}

func (r Result) IsWin() bool {
	return r.Outcome() == OutcomeWin
}

func (r Result) IsTie() bool {
	return r.Outcome() == OutcomeTie
}

// ResultView is a result with its derived outcome, as served to readers.
type ResultView struct {
	Result
	Outcome Outcome `json:"outcome"`
	IsWin   bool    `json:"is_win"`
	IsTie   bool    `json:"is_tie"`
}

func NewResultView(r Result) ResultView {
	return ResultView{
		Result:  r,
		Outcome: r.Outcome(),
		IsWin:   r.IsWin(),
		IsTie:   r.IsTie(),
	}
}

func NewResultViews(results []Result) []ResultView {
	views := make([]ResultView, 0, len(results))
	for _, r := range results {
		views = append(views, NewResultView(r))
	}
	return views
}

type ResultRequest struct {
	GameDate           string `json:"game_date" binding:"required,datetime=2006-01-02"`
	OpponentTeamID     *uint  `json:"opponent_team_id" binding:"required"`
	HomeTeamID         *uint  `json:"home_team_id"`
	TitansScore        *int   `json:"titans_score" binding:"required,min=0"`
	OpponentScore      *int   `json:"opponent_score" binding:"required,min=0"`
	Location           string `json:"location" binding:"required"`
	LeadingScorer      string `json:"leading_scorer"`
	LeadingScorerGoals *int   `json:"leading_scorer_goals" binding:"omitempty,min=0"`
	Notes              string `json:"notes"`
	Season             string `json:"season"`
}

// Apply copies the request onto r. The opponent name is resolved by the service.
func (req ResultRequest) Apply(r *Result) error {
	date, err := ParseDate(req.GameDate)
	if err != nil {
		return err
	}
	r.GameDate = date
	r.OpponentTeamID = req.OpponentTeamID
	r.HomeTeamID = req.HomeTeamID
	if req.TitansScore != nil {
		r.TitansScore = *req.TitansScore
	}
	if req.OpponentScore != nil {
		r.OpponentScore = *req.OpponentScore
	}
	r.Location = req.Location
	r.LeadingScorer = req.LeadingScorer
	r.LeadingScorerGoals = req.LeadingScorerGoals
	r.Notes = req.Notes
	r.Season = req.Season
	if r.Season == "" {
		r.Season = DefaultSeason
	}
	return nil
}

// NewResultForm returns the values a blank result form starts with.
func NewResultForm(homeTeamID *uint) ResultRequest {
	zero := 0
	return ResultRequest{
		HomeTeamID:    homeTeamID,
		TitansScore:   &zero,
		OpponentScore: &zero,
		Season:        DefaultSeason,
	}
}

// ResultFormFrom prefills an edit form from an existing row.
func ResultFormFrom(r Result) ResultRequest {
	titans, opponent := r.TitansScore, r.OpponentScore
	return ResultRequest{
		GameDate:           r.GameDate.String(),
		OpponentTeamID:     r.OpponentTeamID,
		HomeTeamID:         r.HomeTeamID,
		TitansScore:        &titans,
		OpponentScore:      &opponent,
		Location:           r.Location,
		LeadingScorer:      r.LeadingScorer,
		LeadingScorerGoals: r.LeadingScorerGoals,
		Notes:              r.Notes,
		Season:             r.Season,
	}
}
