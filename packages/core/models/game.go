package models

import (
	"time"
)

const (
	GameTypeHome = "home"
	GameTypeAway = "away"

	DefaultSeason = "2025-26"
)

type Game struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Date           Date      `gorm:"type:date;not null;index" json:"date"`
	Time           string    `gorm:"size:5" json:"time"`
	OpponentTeamID *uint     `gorm:"index" json:"opponent_team_id"`
	HomeTeamID     *uint     `gorm:"index" json:"home_team_id"`
	Location       string    `gorm:"size:255" json:"location"`
	GameType       string    `gorm:"size:10;not null" json:"game_type"` // home or away, informational only
	Notes          string    `gorm:"type:text" json:"notes"`
	Season         string    `gorm:"size:20" json:"season"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relationships
	Opponent *Team `gorm:"foreignKey:OpponentTeamID;references:ID;constraint:OnDelete:SET NULL" json:"opponent,omitempty"`
	Home     *Team `gorm:"foreignKey:HomeTeamID;references:ID;constraint:OnDelete:SET NULL" json:"home,omitempty"`
}

func (Game) TableName() string {
	return "games"
}

type GameRequest struct {
	Date           string `json:"date" binding:"required,datetime=2006-01-02"`
	Time           string `json:"time" binding:"required,datetime=15:04"`
	OpponentTeamID *uint  `json:"opponent_team_id" binding:"required"`
	HomeTeamID     *uint  `json:"home_team_id"`
	Location       string `json:"location" binding:"required"`
	GameType       string `json:"game_type" binding:"required,oneof=home away"`
	Notes          string `json:"notes"`
	Season         string `json:"season"`
}

// Apply copies the request onto g. The request must have passed binding.
func (r GameRequest) Apply(g *Game) error {
	date, err := ParseDate(r.Date)
	if err != nil {
		return err
	}
	g.Date = date
	g.Time = r.Time
	g.OpponentTeamID = r.OpponentTeamID
	g.HomeTeamID = r.HomeTeamID
	g.Location = r.Location
	g.GameType = r.GameType
	g.Notes = r.Notes
	g.Season = r.Season
	if g.Season == "" {
		g.Season = DefaultSeason
	}
	return nil
}

// NewGameForm returns the values a blank game form starts with.
func NewGameForm(homeTeamID *uint) GameRequest {
	return GameRequest{
		HomeTeamID: homeTeamID,
		GameType:   GameTypeHome,
		Season:     DefaultSeason,
	}
}

// GameFormFrom prefills an edit form from an existing row.
func GameFormFrom(g Game) GameRequest {
	return GameRequest{
		Date:           g.Date.String(),
		Time:           g.Time,
		OpponentTeamID: g.OpponentTeamID,
		HomeTeamID:     g.HomeTeamID,
		Location:       g.Location,
		GameType:       g.GameType,
		Notes:          g.Notes,
		Season:         g.Season,
	}
}
