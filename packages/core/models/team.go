package models

import (
	"time"
)

const (
	DefaultPrimaryColor   = "#000000"
	DefaultSecondaryColor = "#FFFFFF"
)

type Team struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string    `gorm:"size:255;not null" json:"name"`
	ShortName      string    `gorm:"size:50" json:"short_name"`
	LogoURL        string    `gorm:"size:1024" json:"logo_url"`
	PrimaryColor   string    `gorm:"size:20" json:"primary_color"`
	SecondaryColor string    `gorm:"size:20" json:"secondary_color"`
	Conference     string    `gorm:"size:255" json:"conference"`
	Notes          string    `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Team) TableName() string {
	return "teams"
}

// TeamOption is the row shape of the team picker.
type TeamOption struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// TeamRecord is the club's record against one opponent.
type TeamRecord struct {
	TeamID uint `json:"team_id"`
	Wins   int  `json:"wins"`
	Ties   int  `json:"ties"`
	Losses int  `json:"losses"`
}

type TeamRequest struct {
	Name           string `json:"name" binding:"required"`
	ShortName      string `json:"short_name" binding:"max=50"`
	LogoURL        string `json:"logo_url"`
	PrimaryColor   string `json:"primary_color" binding:"omitempty,hexcolor"`
	SecondaryColor string `json:"secondary_color" binding:"omitempty,hexcolor"`
	Conference     string `json:"conference"`
	Notes          string `json:"notes"`
}

// Apply copies the request onto t.
func (r TeamRequest) Apply(t *Team) {
	t.Name = r.Name
	t.ShortName = r.ShortName
	t.LogoURL = r.LogoURL
	t.PrimaryColor = r.PrimaryColor
	if t.PrimaryColor == "" {
		t.PrimaryColor = DefaultPrimaryColor
	}
	t.SecondaryColor = r.SecondaryColor
	if t.SecondaryColor == "" {
		t.SecondaryColor = DefaultSecondaryColor
	}
	t.Conference = r.Conference
	t.Notes = r.Notes
}

// NewTeamForm returns the values a blank team form starts with.
func NewTeamForm() TeamRequest {
	return TeamRequest{
		PrimaryColor:   DefaultPrimaryColor,
		SecondaryColor: DefaultSecondaryColor,
	}
}
