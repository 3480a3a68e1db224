package migrations

import "gorm.io/gorm"

func GetCoreMigrations() []MigrationDefinition {
	return []MigrationDefinition{
		{
			Name: "2025_01_02_000000_create_teams_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS teams (
						id BIGSERIAL PRIMARY KEY,
						name VARCHAR(255) NOT NULL,
						short_name VARCHAR(50),
						logo_url VARCHAR(1024),
						primary_color VARCHAR(20) DEFAULT '#000000',
						secondary_color VARCHAR(20) DEFAULT '#FFFFFF',
						conference VARCHAR(255),
						notes TEXT,
						created_at TIMESTAMPTZ DEFAULT NOW(),
						updated_at TIMESTAMPTZ DEFAULT NOW()
					);
					CREATE INDEX IF NOT EXISTS idx_teams_name ON teams(name);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS teams CASCADE").Error
			},
		},
		{
			Name: "2025_01_02_000001_create_games_and_results_tables",
			Up: func(db *gorm.DB) error {
				if err := db.Exec(`
					CREATE TABLE IF NOT EXISTS games (
						id BIGSERIAL PRIMARY KEY,
						date DATE NOT NULL,
						time VARCHAR(5),
						opponent_team_id BIGINT NULL REFERENCES teams(id) ON DELETE SET NULL,
						home_team_id BIGINT NULL REFERENCES teams(id) ON DELETE SET NULL,
						location VARCHAR(255),
						game_type VARCHAR(10) NOT NULL DEFAULT 'home' CHECK (game_type IN ('home', 'away')),
						notes TEXT,
						season VARCHAR(20) DEFAULT '2025-26',
						created_at TIMESTAMPTZ DEFAULT NOW(),
						updated_at TIMESTAMPTZ DEFAULT NOW()
					);
					CREATE INDEX IF NOT EXISTS idx_games_date ON games(date);
					CREATE INDEX IF NOT EXISTS idx_games_opponent_team_id ON games(opponent_team_id);
					CREATE INDEX IF NOT EXISTS idx_games_home_team_id ON games(home_team_id);
				`).Error; err != nil {
					return err
				}

				return db.Exec(`
					CREATE TABLE IF NOT EXISTS results (
						id BIGSERIAL PRIMARY KEY,
						game_date DATE NOT NULL,
						opponent_team_id BIGINT NULL REFERENCES teams(id) ON DELETE SET NULL,
						home_team_id BIGINT NULL REFERENCES teams(id) ON DELETE SET NULL,
						opponent VARCHAR(255),
						titans_score INT NOT NULL CHECK (titans_score >= 0),
						opponent_score INT NOT NULL CHECK (opponent_score >= 0),
						location VARCHAR(255),
						leading_scorer VARCHAR(255),
						leading_scorer_goals INT NULL CHECK (leading_scorer_goals >= 0),
						notes TEXT,
						season VARCHAR(20) DEFAULT '2025-26',
						created_at TIMESTAMPTZ DEFAULT NOW(),
						updated_at TIMESTAMPTZ DEFAULT NOW()
					);
					CREATE INDEX IF NOT EXISTS idx_results_game_date ON results(game_date);
					CREATE INDEX IF NOT EXISTS idx_results_opponent_team_id ON results(opponent_team_id);
					CREATE INDEX IF NOT EXISTS idx_results_home_team_id ON results(home_team_id);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				if err := db.Exec("DROP TABLE IF EXISTS results CASCADE").Error; err != nil {
					return err
				}
				return db.Exec("DROP TABLE IF EXISTS games CASCADE").Error
			},
		},
		{
			Name: "2025_01_02_000002_create_players_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS players (
						id BIGSERIAL PRIMARY KEY,
						first_name VARCHAR(255) NOT NULL,
						last_name VARCHAR(255) NOT NULL,
						jersey_number INT NULL CHECK (jersey_number BETWEEN 0 AND 99),
						position VARCHAR(20) CHECK (position IN ('', 'attack', 'midfield', 'defense', 'goalie')),
						grade INT NULL CHECK (grade BETWEEN 9 AND 12),
						photo_url VARCHAR(1024),
						bio TEXT,
						is_active BOOLEAN NOT NULL DEFAULT true,
						season VARCHAR(20) DEFAULT '2025-26',
						created_at TIMESTAMPTZ DEFAULT NOW(),
						updated_at TIMESTAMPTZ DEFAULT NOW()
					);
					CREATE INDEX IF NOT EXISTS idx_players_is_active ON players(is_active);
					CREATE INDEX IF NOT EXISTS idx_players_last_name ON players(last_name);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS players CASCADE").Error
			},
		},
		{
			Name: "2025_01_02_000003_create_settings_table",
			Up: func(db *gorm.DB) error {
				return db.Exec(`
					CREATE TABLE IF NOT EXISTS settings (
						key VARCHAR(100) PRIMARY KEY,
						value TEXT,
						updated_at TIMESTAMPTZ DEFAULT NOW()
					);
				`).Error
			},
			Down: func(db *gorm.DB) error {
				return db.Exec("DROP TABLE IF EXISTS settings CASCADE").Error
			},
		},
	}
}
