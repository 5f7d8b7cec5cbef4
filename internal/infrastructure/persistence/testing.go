//go:build integration
// +build integration

package persistence

import (
	"strings"
	"testing"
	"time"

	"github.com/hpusset/ELRI-sub001/internal/domain/processing"
	"github.com/hpusset/ELRI-sub001/internal/domain/resources"
	"github.com/hpusset/ELRI-sub001/internal/domain/stats"
	"github.com/hpusset/ELRI-sub001/internal/pkg/config"
	"github.com/hpusset/ELRI-sub001/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Test constants
const (
	TestOwnerID  = "owner-1"
	TestUserID   = "user-1"
	TestMetadata = `<resourceInfo><identificationInfo><resourceName>corpus</resourceName></identificationInfo></resourceInfo>`
)

// TestContext holds test database and repositories
type TestContext struct {
	DB           *gorm.DB
	ResourceRepo resources.ResourceRepository
	StatsRepo    stats.StatsRepository
	JobRepo      processing.JobRepository
}

// SetupTestDB initializes a migrated test database with automatic cleanup
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	var cleanupFunc func()

	switch dbType {
	case config.SqliteDbType:
		// a named shared-cache memory database keeps every pooled connection on the same data
		settings = config.DatabaseSettings{
			Type: config.SqliteDbType,
			DSN:  "file:" + uuid.NewString() + "?mode=memory&cache=shared",
			Name: "elri_test",
		}
		cleanupFunc = func() {}

	case config.PostgresDbType:
		uniqueDBName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{
			Type: config.PostgresDbType,
			DSN:  "user=postgres password=postgres host=localhost port=5432 sslmode=disable",
			Name: uniqueDBName,
		}
		cleanupFunc = func() {
			adminDSN := "user=postgres password=postgres host=localhost port=5432 dbname=postgres sslmode=disable"
			_ = DropDatabase(adminDSN, uniqueDBName)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")

	t.Cleanup(func() {
		_ = CloseDB(db)
		cleanupFunc()
	})

	require.NoError(t, Migrate(db), "Failed to migrate schema")

	logger := testutil.SetupTestLogger(t)

	resourceRepo, err := NewGormResourceRepository(db, logger)
	require.NoError(t, err, "Failed to create resource repository")

	statsRepo, err := NewGormStatsRepository(db, logger)
	require.NoError(t, err, "Failed to create stats repository")

	jobRepo, err := NewGormJobRepository(db, logger)
	require.NoError(t, err, "Failed to create job repository")

	return &TestContext{
		DB:           db,
		ResourceRepo: resourceRepo,
		StatsRepo:    statsRepo,
		JobRepo:      jobRepo,
	}
}

// CreateTestResource creates a resource record with default values
func CreateTestResource(t *testing.T, name string) *resources.ResourceMeta {
	t.Helper()

	if name == "" {
		name = "test-resource"
	}

	return &resources.ResourceMeta{
		ID:                uuid.NewString(),
		ResourceName:      name,
		MetadataXML:       TestMetadata,
		PublicationStatus: resources.DefaultPublicationStatus,
		OwnerID:           TestOwnerID,
		Source:            resources.SourceUpload,
		DateTimeCreated:   time.Now().UTC(),
		Contacts: []resources.ContactPerson{
			{ID: uuid.NewString(), GivenName: "Ada", Surname: "Lovelace", Email: "ada@example.org"},
		},
	}
}

// CreateTestJob creates a pending job of a user
func CreateTestJob(t *testing.T, userID, serviceName string) *processing.Job {
	t.Helper()

	return &processing.Job{
		ID:              uuid.NewString(),
		ServiceName:     serviceName,
		UserID:          userID,
		InputName:       "input.xml",
		Status:          processing.JobPending,
		DateTimeCreated: time.Now().UTC(),
	}
}
