package migrations

import (
	"errors"
	"strings"
	"testing"

	"titans-lacrosse/internal/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTable(name string) MigrationDefinition {
	return MigrationDefinition{
		Name: "create_" + name,
		Up: func(db *gorm.DB) error {
			return db.Exec("CREATE TABLE " + name + " (id INTEGER PRIMARY KEY)").Error
		},
		Down: func(db *gorm.DB) error {
			return db.Exec("DROP TABLE " + name).Error
		},
	}
}

func newMigrator(t *testing.T, defs ...MigrationDefinition) (*Migrator, *gorm.DB) {
	t.Helper()
	db := testdb.Open(t)
	m, err := NewMigrator(db, nil)
	require.NoError(t, err)
	for _, def := range defs {
		m.AddMigration(def)
	}
	return m, db
}

func TestMigrateRunsPendingOnce(t *testing.T) {
	m, db := newMigrator(t, createTable("alpha"), createTable("beta"))

	require.NoError(t, m.Migrate())
	assert.True(t, db.Migrator().HasTable("alpha"))
	assert.True(t, db.Migrator().HasTable("beta"))

	// a second run finds nothing to do
	require.NoError(t, m.Migrate())

	m.AddMigration(createTable("gamma"))
	pending, err := m.Pending()
	require.NoError(t, err)
	assert.Equal(t, []string{"create_gamma"}, pending)
	require.NoError(t, m.Migrate())

	status, err := m.Status()
	require.NoError(t, err)
	require.Len(t, status, 3)
	assert.Equal(t, 1, status[0].Batch)
	assert.Equal(t, 1, status[1].Batch)
	assert.Equal(t, 2, status[2].Batch)
}

func TestRollbackRevertsLatestBatch(t *testing.T) {
	m, db := newMigrator(t, createTable("alpha"))
	require.NoError(t, m.Migrate())
	m.AddMigration(createTable("beta"))
	require.NoError(t, m.Migrate())

	require.NoError(t, m.Rollback(1))
	assert.True(t, db.Migrator().HasTable("alpha"))
	assert.False(t, db.Migrator().HasTable("beta"))

	require.NoError(t, m.Rollback(5))
	assert.False(t, db.Migrator().HasTable("alpha"))

	status, err := m.Status()
	require.NoError(t, err)
	assert.Empty(t, status)
}

func TestFailedMigrationIsNotRecorded(t *testing.T) {
	m, db := newMigrator(t, createTable("alpha"), MigrationDefinition{
		Name: "broken",
		Up:   func(db *gorm.DB) error { return errors.New("boom") },
	})

	err := m.Migrate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration broken failed")
	assert.True(t, db.Migrator().HasTable("alpha"))

	pending, err := m.Pending()
	require.NoError(t, err)
	assert.Equal(t, []string{"broken"}, pending)
}

func TestRollbackWithoutDown(t *testing.T) {
	m, _ := newMigrator(t, MigrationDefinition{
		Name: "one_way",
		Up:   func(db *gorm.DB) error { return nil },
	})
	require.NoError(t, m.Migrate())

	err := m.Rollback(1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rollback not defined")
}

func TestAllMigrationsAreOrderedAndReversible(t *testing.T) {
	all := All()
	require.NotEmpty(t, all)

	seen := make(map[string]bool)
	for i, def := range all {
		assert.False(t, seen[def.Name], "duplicate migration %s", def.Name)
		seen[def.Name] = true
		assert.NotNil(t, def.Up, def.Name)
		assert.NotNil(t, def.Down, def.Name)
		if i > 0 {
			assert.True(t, strings.Compare(all[i-1].Name, def.Name) < 0, "%s runs before %s", all[i-1].Name, def.Name)
		}
	}
}
