package config

// BaseXDefaultPort is the port of the BaseX client/server protocol
const BaseXDefaultPort = 1984

// BaseXDefaultDatabase is the database opened when none is configured
const BaseXDefaultDatabase = "elri_tm"

// EDeliveryDefaultTimeoutSeconds bounds a single SOAP round trip
const EDeliveryDefaultTimeoutSeconds = 30

// Database type constants
const (
	PostgresDbType = "postgres"
	SqliteDbType   = "sqlite"
)
