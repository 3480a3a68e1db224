package fixtures

import (
	"context"
	"testing"
	"time"

	"titans-lacrosse/internal/testdb"
	authModels "titans-lacrosse/packages/auth/models"
	"titans-lacrosse/packages/core/models"
	"titans-lacrosse/packages/core/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newFixtures(t *testing.T) (*Fixtures, *gorm.DB) {
	t.Helper()
	db := testdb.Open(t,
		&models.Team{}, &models.Game{}, &models.Result{}, &models.Player{}, &models.Setting{},
		&authModels.User{}, &authModels.RefreshToken{},
	)
	f := NewFixtures(db, nil).WithSeed(42)
	f.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.Local) }
	return f, db
}

func count(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestGenerateTestData(t *testing.T) {
	f, db := newFixtures(t)
	ctx := context.Background()

	require.NoError(t, f.GenerateTestData(ctx))

	assert.Equal(t, int64(len(opponents)+1), count(t, db, &models.Team{}))
	assert.Equal(t, int64(len(opponents)), count(t, db, &models.Game{}))
	assert.Equal(t, int64(len(opponents)), count(t, db, &models.Result{}))
	assert.Equal(t, int64(len(firstNames)), count(t, db, &models.Player{}))

	homeID, err := services.NewSettingService(db).HomeTeamID(ctx)
	require.NoError(t, err)
	require.NotNil(t, homeID)

	var home models.Team
	require.NoError(t, db.First(&home, *homeID).Error)
	assert.Equal(t, HomeTeamName, home.Name)

	upcoming, err := services.NewGameService(db).ListUpcomingGames(ctx, models.NewDate(2025, 3, 1))
	require.NoError(t, err)
	assert.Len(t, upcoming, len(opponents))

	roster, err := services.NewPlayerService(db).ListRoster(ctx, models.PositionNone)
	require.NoError(t, err)
	assert.Len(t, roster, len(firstNames)-2)
}

func TestClearAllDataKeepsUsers(t *testing.T) {
	f, db := newFixtures(t)
	ctx := context.Background()

	require.NoError(t, f.GenerateTestData(ctx))
	_, err := f.CreateAdmin(ctx, "coach@titans.test", "coach", "s3cret")
	require.NoError(t, err)

	require.NoError(t, f.ClearAllData(ctx))

	for _, model := range []interface{}{&models.Team{}, &models.Game{}, &models.Result{}, &models.Player{}, &models.Setting{}} {
		assert.Zero(t, count(t, db, model), "%T", model)
	}
	assert.Equal(t, int64(1), count(t, db, &authModels.User{}))

	// regenerate works on a cleared database
	require.NoError(t, f.GenerateTestData(ctx))
}

func TestCreateAdmin(t *testing.T) {
	f, _ := newFixtures(t)
	ctx := context.Background()

	user, err := f.CreateAdmin(ctx, "Coach@Titans.test", "coach", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "coach@titans.test", user.Email)
	assert.True(t, user.HasRole(authModels.RoleAdmin))

	_, err = f.CreateAdmin(ctx, "coach@titans.test", "coach2", "other")
	assert.Error(t, err)
}
