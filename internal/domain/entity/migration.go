package entity

import "time"

// Estados registrados en migration_tracker.
const (
	MigrationStatusSuccess    = "success"
	MigrationStatusFailed     = "failed"
	MigrationStatusRolledBack = "rolled_back"
)

// MigrationRecord una fila del log append-only de migraciones aplicadas.
type MigrationRecord struct {
	ID              int64
	MigrationName   string // único, ej. "001_create_organizations"
	Version         string // prefijo numérico ordenable, ej. "001"
	ExecutedAt      time.Time
	ExecutionTimeMS int64
	Status          string // ver constantes MigrationStatus*
	ErrorMessage    string
}
