// Package persistence provides database repository implementations.
// It uses GORM as the ORM layer and gormigrate for versioned schema
// migrations, storing resource records, usage statistics and
// processing jobs.
package persistence
