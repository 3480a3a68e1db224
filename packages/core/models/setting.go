package models

import "time"

// SettingHomeTeamID holds the club's own team id.
const SettingHomeTeamID = "home_team_id"

type Setting struct {
	Key       string    `gorm:"primaryKey;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}

type UpdateSettingRequest struct {
	Value string `json:"value"`
}
