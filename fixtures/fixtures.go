package fixtures

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	authModels "titans-lacrosse/packages/auth/models"
	authServices "titans-lacrosse/packages/auth/services"
	"titans-lacrosse/packages/core/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const HomeTeamName = "Shaler Area Titans"

var opponents = []struct {
	name, short, primary, secondary string
}{
	{"Upper St. Clair Panthers", "USC", "#0B3D91", "#FFFFFF"},
	{"Mt. Lebanon Blue Devils", "MTL", "#1F4E9E", "#FFD100"},
	{"North Allegheny Tigers", "NA", "#000000", "#F58025"},
	{"Pine-Richland Rams", "PR", "#00543C", "#FFFFFF"},
	{"Fox Chapel Foxes", "FC", "#7A0019", "#C0C0C0"},
	{"Seneca Valley Raiders", "SV", "#002F6C", "#B3A369"},
}

var (
	firstNames = []string{"Liam", "Noah", "Owen", "Mason", "Ethan", "Logan", "Lucas", "Jack", "Caleb", "Ryan", "Evan", "Dylan", "Aiden", "Gavin", "Cole", "Tyler", "Nolan", "Blake", "Chase", "Reid"}
	lastNames  = []string{"Miller", "Kowalski", "Schneider", "Brennan", "Novak", "Walsh", "Hughes", "Fischer", "Murphy", "Sullivan", "Bauer", "Kelly", "Reilly", "Yoder", "Hartman", "Dunn", "Keller", "Price", "Shaw", "Boyle"}
)

type Fixtures struct {
	db     *gorm.DB
	logger *zap.Logger
	rand   *rand.Rand
	now    func() time.Time
}

func NewFixtures(db *gorm.DB, logger *zap.Logger) *Fixtures {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fixtures{
		db:     db,
		logger: logger,
		rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
		now:    time.Now,
	}
}

// WithSeed makes the generated data reproducible.
func (f *Fixtures) WithSeed(seed int64) *Fixtures {
	f.rand = rand.New(rand.NewSource(seed))
	return f
}

// GenerateTestData creates the club, its opponents, a season of games and
// results around today, and a roster.
func (f *Fixtures) GenerateTestData(ctx context.Context) error {
	f.logger.Info("starting fixtures generation")

	return f.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		home, teams, err := f.generateTeams(tx)
		if err != nil {
			return fmt.Errorf("failed to generate teams: %w", err)
		}

		setting := models.Setting{Key: models.SettingHomeTeamID, Value: strconv.FormatUint(uint64(home.ID), 10)}
		if err := tx.Save(&setting).Error; err != nil {
			return fmt.Errorf("failed to save home team setting: %w", err)
		}

		games, err := f.generateGames(tx, home, teams)
		if err != nil {
			return fmt.Errorf("failed to generate games: %w", err)
		}

		results, err := f.generateResults(tx, home, teams)
		if err != nil {
			return fmt.Errorf("failed to generate results: %w", err)
		}

		players, err := f.generatePlayers(tx)
		if err != nil {
			return fmt.Errorf("failed to generate players: %w", err)
		}

		f.logger.Info("fixtures generated",
			zap.Int("teams", len(teams)+1),
			zap.Int("games", games),
			zap.Int("results", results),
			zap.Int("players", players),
		)
		return nil
	})
}

func (f *Fixtures) generateTeams(tx *gorm.DB) (models.Team, []models.Team, error) {
	home := models.Team{
		Name:           HomeTeamName,
		ShortName:      "SAT",
		PrimaryColor:   "#5B2C83",
		SecondaryColor: "#F2C300",
		Conference:     "WPIAL Section 3",
	}
	if err := tx.Create(&home).Error; err != nil {
		return home, nil, err
	}

	teams := make([]models.Team, 0, len(opponents))
	for _, o := range opponents {
		team := models.Team{
			Name:           o.name,
			ShortName:      o.short,
			PrimaryColor:   o.primary,
			SecondaryColor: o.secondary,
			Conference:     "WPIAL Section 3",
		}
		if err := tx.Create(&team).Error; err != nil {
			return home, nil, err
		}
		teams = append(teams, team)
	}
	return home, teams, nil
}

// generateGames schedules one game a week from today.
func (f *Fixtures) generateGames(tx *gorm.DB, home models.Team, teams []models.Team) (int, error) {
	today := models.Today(f.now(), time.Local)
	times := []string{"11:00", "13:00", "17:30", "19:00"}

	for i, team := range teams {
		opponent := team.ID
		homeID := home.ID
		gameType := models.GameTypeHome
		location := "Titans Stadium"
		if i%2 == 1 {
			gameType = models.GameTypeAway
			location = team.Name + " Field"
		}

		game := models.Game{
			Date:           today.AddDays(7 * i),
			Time:           times[f.rand.Intn(len(times))],
			OpponentTeamID: &opponent,
			HomeTeamID:     &homeID,
			Location:       location,
			GameType:       gameType,
			Season:         models.DefaultSeason,
		}
		if err := tx.Create(&game).Error; err != nil {
			return i, err
		}
	}
	return len(teams), nil
}

// generateResults records one past result a week against every opponent.
func (f *Fixtures) generateResults(tx *gorm.DB, home models.Team, teams []models.Team) (int, error) {
	today := models.Today(f.now(), time.Local)

	for i, team := range teams {
		opponent := team.ID
		homeID := home.ID
		goals := 1 + f.rand.Intn(5)

		result := models.Result{
			GameDate:           today.AddDays(-7 * (len(teams) - i)),
			OpponentTeamID:     &opponent,
			HomeTeamID:         &homeID,
			Opponent:           team.Name,
			TitansScore:        f.rand.Intn(15),
			OpponentScore:      f.rand.Intn(15),
			Location:           "Titans Stadium",
			LeadingScorer:      firstNames[f.rand.Intn(len(firstNames))] + " " + lastNames[f.rand.Intn(len(lastNames))],
			LeadingScorerGoals: &goals,
			Season:             models.DefaultSeason,
		}
		if err := tx.Create(&result).Error; err != nil {
			return i, err
		}
	}
	return len(teams), nil
}

func (f *Fixtures) generatePlayers(tx *gorm.DB) (int, error) {
	positions := models.AllPositions()
	numbers := f.rand.Perm(99)

	for i := range firstNames {
		number := numbers[i] + 1
		grade := 9 + f.rand.Intn(4)
		player := models.Player{
			FirstName:    firstNames[i],
			LastName:     lastNames[i],
			JerseyNumber: &number,
			Position:     positions[i%len(positions)],
			Grade:        &grade,
			IsActive:     i < len(firstNames)-2,
			Season:       models.DefaultSeason,
		}
		if err := tx.Create(&player).Error; err != nil {
			return i, err
		}
	}
	return len(firstNames), nil
}

// ClearAllData removes every club row. Admin accounts are kept.
func (f *Fixtures) ClearAllData(ctx context.Context) error {
	f.logger.Info("clearing fixture data")

	return f.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.Result{},
			&models.Game{},
			&models.Player{},
			&models.Setting{},
			&models.Team{},
		} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				return fmt.Errorf("failed to clear %T: %w", model, err)
			}
		}
		return nil
	})
}

// CreateAdmin creates an enabled admin account.
func (f *Fixtures) CreateAdmin(ctx context.Context, email, username, password string) (*authModels.User, error) {
	sessions := authServices.NewSessionService(f.db, nil)
	user, err := sessions.CreateUser(ctx, email, username, password, authModels.RoleAdmin)
	if err != nil {
		return nil, err
	}
	f.logger.Info("admin created", zap.String("email", user.Email))
	return user, nil
}
