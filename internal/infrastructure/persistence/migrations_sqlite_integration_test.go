//go:build integration
// +build integration

package persistence

import (
	"testing"

	"github.com/hpusset/ELRI-sub001/internal/infrastructure/persistence/models"
	"github.com/hpusset/ELRI-sub001/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openSqlite(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := NewDBConnection(config.DatabaseSettings{
		Type: config.SqliteDbType,
		DSN:  "file:" + uuid.NewString() + "?mode=memory&cache=shared",
		Name: "elri_test",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = CloseDB(db) })
	return db
}

func TestMigrate_CreatesCurrentSchema(t *testing.T) {
	db := openSqlite(t)
	require.NoError(t, Migrate(db))

	m := db.Migrator()
	for _, table := range []string{"resources", "contact_persons", "lr_stats", "query_stats", "usage_stats", "processing_jobs"} {
		assert.True(t, m.HasTable(table), table)
	}
	assert.True(t, m.HasColumn(&models.ResourceModel{}, "PublicationStatus"))
	assert.True(t, m.HasIndex(&models.LRStatModel{}, "idx_lr_stats_key"))

	// running twice is a no-op
	require.NoError(t, Migrate(db))
}

func TestMigrateTo_StopsBeforePublicationStatus(t *testing.T) {
	db := openSqlite(t)
	require.NoError(t, MigrateTo(db, MigrationPositionLength))

	assert.True(t, db.Migrator().HasTable("resources"))
	assert.False(t, db.Migrator().HasColumn(&models.ResourceModel{}, "PublicationStatus"))

	require.NoError(t, Migrate(db))
	assert.True(t, db.Migrator().HasColumn(&models.ResourceModel{}, "PublicationStatus"))
}

func TestRollbackLast_DropsPublicationStatus(t *testing.T) {
	db := openSqlite(t)
	require.NoError(t, Migrate(db))

	require.NoError(t, RollbackLast(db))
	assert.False(t, db.Migrator().HasColumn(&models.ResourceModel{}, "PublicationStatus"))
	assert.True(t, db.Migrator().HasColumn(&models.ContactPersonModel{}, "Homepage"))
}

func TestNewDBConnection_InvalidSettings(t *testing.T) {
	_, err := NewDBConnection(config.DatabaseSettings{Type: "mysql", DSN: "x", Name: "y"})
	assert.Error(t, err)
}
