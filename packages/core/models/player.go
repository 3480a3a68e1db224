package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// Position is the fixed set of roster categories.
type Position string

const (
	PositionNone     Position = ""
	PositionAttack   Position = "attack"
	PositionMidfield Position = "midfield"
	PositionDefense  Position = "defense"
	PositionGoalie   Position = "goalie"
)

func AllPositions() []Position {
	return []Position{PositionAttack, PositionMidfield, PositionDefense, PositionGoalie}
}

func (p Position) Valid() bool {
	if p == PositionNone {
		return true
	}
	for _, known := range AllPositions() {
		if p == known {
			return true
		}
	}
	return false
}

// ParsePosition accepts an exact tag or a legacy free-text position.
// Free text is matched by case-insensitive substring; text matching more
// than one category (e.g. "Attack/Midfield") is rejected instead of being
// silently counted twice.
func ParsePosition(s string) (Position, error) {
	text := strings.ToLower(strings.TrimSpace(s))
	if text == "" {
		return PositionNone, nil
	}
	if p := Position(text); p.Valid() {
		return p, nil
	}

	var matches []Position
	for _, p := range AllPositions() {
		if strings.Contains(text, string(p)) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return PositionNone, fmt.Errorf("unknown position %q", s)
	default:
		return PositionNone, fmt.Errorf("ambiguous position %q matches %v", s, matches)
	}
}

func (p Position) Value() (driver.Value, error) {
	return string(p), nil
}

func (p *Position) Scan(value interface{}) error {
	var s string
	switch v := value.(type) {
	case nil:
		*p = PositionNone
		return nil
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("cannot scan %T into Position", value)
	}
	// Rows that predate the enum may hold free text; anything that does not
	// map to exactly one category is read as no position.
	parsed, err := ParsePosition(s)
	if err != nil {
		parsed = PositionNone
	}
	*p = parsed
	return nil
}

type Player struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName    string    `gorm:"size:255;not null" json:"first_name"`
	LastName     string    `gorm:"size:255;not null" json:"last_name"`
	JerseyNumber *int      `json:"jersey_number"`
	Position     Position  `gorm:"size:20" json:"position"`
	Grade        *int      `json:"grade"`
	PhotoURL     string    `gorm:"size:1024" json:"photo_url"`
	Bio          string    `gorm:"type:text" json:"bio"`
	IsActive     bool      `gorm:"not null;index" json:"is_active"` // public roster visibility only
	Season       string    `gorm:"size:20" json:"season"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Player) TableName() string {
	return "players"
}

func (p Player) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

type PlayerRequest struct {
	FirstName    string   `json:"first_name" binding:"required"`
	LastName     string   `json:"last_name" binding:"required"`
	JerseyNumber *int     `json:"jersey_number" binding:"omitempty,min=0,max=99"`
	Position     Position `json:"position" binding:"omitempty,oneof=attack midfield defense goalie"`
	Grade        *int     `json:"grade" binding:"omitempty,min=9,max=12"`
	PhotoURL     string   `json:"photo_url"`
	Bio          string   `json:"bio"`
	IsActive     *bool    `json:"is_active"`
	Season       string   `json:"season"`
}

func (r PlayerRequest) Apply(p *Player) {
	p.FirstName = r.FirstName
	p.LastName = r.LastName
	p.JerseyNumber = r.JerseyNumber
	p.Position = r.Position
	p.Grade = r.Grade
	p.PhotoURL = r.PhotoURL
	p.Bio = r.Bio
	p.IsActive = true
	if r.IsActive != nil {
		p.IsActive = *r.IsActive
	}
	p.Season = r.Season
	if p.Season == "" {
		p.Season = DefaultSeason
	}
}

// NewPlayerForm returns the values a blank player form starts with.
func NewPlayerForm() PlayerRequest {
	active := true
	return PlayerRequest{
		IsActive: &active,
		Season:   DefaultSeason,
	}
}

// PlayerFormFrom prefills an edit form from an existing row.
func PlayerFormFrom(p Player) PlayerRequest {
	active := p.IsActive
	return PlayerRequest{
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		JerseyNumber: p.JerseyNumber,
		Position:     p.Position,
		Grade:        p.Grade,
		PhotoURL:     p.PhotoURL,
		Bio:          p.Bio,
		IsActive:     &active,
		Season:       p.Season,
	}
}
