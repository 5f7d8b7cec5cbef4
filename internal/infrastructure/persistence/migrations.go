package persistence

import (
	"fmt"
	"time"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// Schema snapshots used by the migrations. They mirror the tables as they were
// at each version and must not follow later changes of the models package.

type resourceV1 struct {
	ID              string            `gorm:"primaryKey;type:uuid"`
	ResourceName    string            `gorm:"not null;type:varchar(500)"`
	Description     string            `gorm:"type:text"`
	MetadataXML     string            `gorm:"not null;type:text"`
	OwnerID         string            `gorm:"not null;index;type:varchar(255)"`
	Source          string            `gorm:"not null;type:varchar(20)"`
	DateTimeCreated time.Time         `gorm:"not null"`
	DateTimeUpdated time.Time
	Contacts        []contactPersonV1 `gorm:"foreignKey:ResourceID;constraint:OnDelete:CASCADE"`
}

func (resourceV1) TableName() string { return "resources" }

type contactPersonV1 struct {
	ID         string `gorm:"primaryKey;type:uuid"`
	ResourceID string `gorm:"not null;index;type:uuid"`
	GivenName  string `gorm:"type:varchar(100)"`
	Surname    string `gorm:"not null;type:varchar(100)"`
	Email      string `gorm:"type:varchar(254)"`
	Position   string `gorm:"type:varchar(100)"`
	Homepage   string `gorm:"type:varchar(200)"`
}

func (contactPersonV1) TableName() string { return "contact_persons" }

type lrStatV1 struct {
	ID         string    `gorm:"primaryKey;type:uuid"`
	UserID     string    `gorm:"not null;type:varchar(255);uniqueIndex:idx_lr_stats_key"`
	ResourceID string    `gorm:"not null;type:uuid;index;uniqueIndex:idx_lr_stats_key"`
	SessionID  string    `gorm:"not null;type:varchar(64);uniqueIndex:idx_lr_stats_key"`
	Action     string    `gorm:"not null;type:char(1);uniqueIndex:idx_lr_stats_key"`
	Count      int64     `gorm:"not null;default:1"`
	LastTime   time.Time `gorm:"not null;index"`
	Ignored    bool      `gorm:"not null;default:false"`
}

func (lrStatV1) TableName() string { return "lr_stats" }

type queryStatV1 struct {
	ID         string    `gorm:"primaryKey;type:uuid"`
	Query      string    `gorm:"type:varchar(1000)"`
	Facets     string    `gorm:"type:text"`
	Found      int64     `gorm:"not null;default:0"`
	ExecTimeMs int64     `gorm:"not null;default:0"`
	LastTime   time.Time `gorm:"not null;index"`
}

func (queryStatV1) TableName() string { return "query_stats" }

type usageStatV1 struct {
	ResourceID string `gorm:"primaryKey;type:uuid"`
	Element    string `gorm:"primaryKey;type:varchar(255)"`
	Parent     string `gorm:"primaryKey;type:varchar(255)"`
	Count      int64  `gorm:"not null;default:0"`
}

func (usageStatV1) TableName() string { return "usage_stats" }

type jobV1 struct {
	ID              string    `gorm:"primaryKey;type:uuid"`
	ServiceName     string    `gorm:"not null;type:varchar(100)"`
	UserID          string    `gorm:"not null;index;type:varchar(255)"`
	ResourceID      *string   `gorm:"type:uuid;index"`
	InputName       string    `gorm:"type:varchar(255)"`
	InputPath       string    `gorm:"type:varchar(1000)"`
	OutputPath      string    `gorm:"type:varchar(1000)"`
	Status          string    `gorm:"not null;type:varchar(20);index"`
	Message         string    `gorm:"type:text"`
	DateTimeCreated time.Time `gorm:"not null"`
	DateTimeUpdated time.Time
}

func (jobV1) TableName() string { return "processing_jobs" }

type contactPersonV2 struct {
	Homepage *string `gorm:"type:varchar(1000)"`
}

func (contactPersonV2) TableName() string { return "contact_persons" }

type contactPersonV3 struct {
	Position *string `gorm:"type:varchar(50)"`
}

func (contactPersonV3) TableName() string { return "contact_persons" }

type resourceV4 struct {
	PublicationStatus string `gorm:"not null;type:char(1);default:'i';index"`
}

func (resourceV4) TableName() string { return "resources" }

// Migration IDs in apply order
const (
	MigrationInitial           = "0001_initial"
	MigrationHomepageURL       = "0002_contact_homepage_url"
	MigrationPositionLength    = "0003_contact_position_length"
	MigrationPublicationStatus = "0004_resource_publication_status"
)

func migrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: MigrationInitial,
			Migrate: func(tx *gorm.DB) error {
				return tx.Migrator().CreateTable(
					&resourceV1{}, &contactPersonV1{},
					&lrStatV1{}, &queryStatV1{}, &usageStatV1{}, &jobV1{},
				)
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(
					"processing_jobs", "usage_stats", "query_stats", "lr_stats",
					"contact_persons", "resources",
				)
			},
		},
		{
			ID: MigrationHomepageURL,
			Migrate: func(tx *gorm.DB) error {
				return tx.Migrator().AlterColumn(&contactPersonV2{}, "Homepage")
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().AlterColumn(&contactPersonV1{}, "Homepage")
			},
		},
		{
			ID: MigrationPositionLength,
			Migrate: func(tx *gorm.DB) error {
				return tx.Migrator().AlterColumn(&contactPersonV3{}, "Position")
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().AlterColumn(&contactPersonV1{}, "Position")
			},
		},
		{
			ID: MigrationPublicationStatus,
			Migrate: func(tx *gorm.DB) error {
				if err := tx.Migrator().AddColumn(&resourceV4{}, "PublicationStatus"); err != nil {
					return err
				}
				return tx.Migrator().CreateIndex(&resourceV4{}, "PublicationStatus")
			},
			Rollback: func(tx *gorm.DB) error {
				if err := tx.Migrator().DropIndex(&resourceV4{}, "PublicationStatus"); err != nil {
					return err
				}
				return tx.Migrator().DropColumn(&resourceV4{}, "PublicationStatus")
			},
		},
	}
}

// Migrate applies every pending schema migration
func Migrate(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, migrations())
	if err := m.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// MigrateTo applies migrations up to and including id
func MigrateTo(db *gorm.DB, id string) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, migrations())
	if err := m.MigrateTo(id); err != nil {
		return fmt.Errorf("failed to migrate database to %s: %w", id, err)
	}
	return nil
}

// RollbackLast reverts the most recently applied migration
func RollbackLast(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, migrations())
	if err := m.RollbackLast(); err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}
	return nil
}
