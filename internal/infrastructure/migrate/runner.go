// Package migrate implementa el runner de migraciones SQL contra
// migration_tracker. Los archivos viven en un directorio plano con prefijo
// numérico ordenable (001_create_organizations.sql) y rollback opcional
// emparejado (001_create_organizations.rollback.sql). Cada migración se
// ejecuta en su propia transacción; no hay transacción que abarque el batch.
package migrate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/pkg/logger"
)

const trackerTable = `
	CREATE TABLE IF NOT EXISTS migration_tracker (
		id BIGSERIAL PRIMARY KEY,
		migration_name VARCHAR(255) NOT NULL UNIQUE,
		version VARCHAR(32) NOT NULL,
		executed_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		execution_time_ms BIGINT NOT NULL DEFAULT 0,
		status VARCHAR(32) NOT NULL,
		error_message TEXT NOT NULL DEFAULT ''
	)`

// Runner aplica y revierte migraciones registrándolas en migration_tracker.
type Runner struct {
	pool            *pgxpool.Pool
	dir             string
	continueOnError bool
	log             *logger.Logger
}

// NewRunner construye el runner.
func NewRunner(pool *pgxpool.Pool, dir string, continueOnError bool, log *logger.Logger) *Runner {
	return &Runner{pool: pool, dir: dir, continueOnError: continueOnError, log: log}
}

// migrationFile una migración descubierta en disco.
type migrationFile struct {
	Name    string // "001_create_organizations"
	Version string // "001"
	Path    string
}

// discover lista las migraciones del directorio en orden lexicográfico.
// Ignora los archivos *.rollback.sql (se resuelven por pareja al revertir).
func (r *Runner) discover() ([]migrationFile, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("leer directorio de migraciones: %w", err)
	}
	var files []migrationFile
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".sql") || strings.HasSuffix(name, ".rollback.sql") {
			continue
		}
		base := strings.TrimSuffix(name, ".sql")
		version, _, found := strings.Cut(base, "_")
		if !found {
			return nil, fmt.Errorf("migración sin prefijo de versión: %s", name)
		}
		files = append(files, migrationFile{
			Name:    base,
			Version: version,
			Path:    filepath.Join(r.dir, name),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

func (r *Runner) ensureTracker(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, trackerTable); err != nil {
		return fmt.Errorf("crear migration_tracker: %w", err)
	}
	return nil
}

// applied devuelve el estado registrado por nombre de migración.
func (r *Runner) applied(ctx context.Context) (map[string]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT migration_name, status FROM migration_tracker`)
	if err != nil {
		return nil, fmt.Errorf("leer migration_tracker: %w", err)
	}
	defer rows.Close()
	statuses := map[string]string{}
	for rows.Next() {
		var name, status string
		if err := rows.Scan(&name, &status); err != nil {
			return nil, fmt.Errorf("scan migration_tracker: %w", err)
		}
		statuses[name] = status
	}
	return statuses, rows.Err()
}

// Run aplica las migraciones pendientes en orden. Un fallo detiene el batch
// salvo que continueOnError esté activo; en ambos casos el fallo queda
// registrado en migration_tracker.
func (r *Runner) Run(ctx context.Context) error {
	if err := r.ensureTracker(ctx); err != nil {
		return err
	}
	files, err := r.discover()
	if err != nil {
		return err
	}
	statuses, err := r.applied(ctx)
	if err != nil {
		return err
	}

	for _, f := range files {
		if statuses[f.Name] == entity.MigrationStatusSuccess {
			continue
		}
		if err := r.apply(ctx, f); err != nil {
			if !r.continueOnError {
				return err
			}
			r.log.Warn().Str("migration", f.Name).Err(err).
				Msg("migración fallida, continuando por CONTINUE_ON_ERROR")
		}
	}
	return nil
}

// apply ejecuta una migración dentro de su propia transacción y la registra.
func (r *Runner) apply(ctx context.Context, f migrationFile) error {
	sqlBody, err := os.ReadFile(f.Path)
	if err != nil {
		return fmt.Errorf("leer %s: %w", f.Path, err)
	}

	r.log.Info().Str("migration", f.Name).Msg("aplicando migración")
	start := time.Now()
	execErr := r.execInTx(ctx, string(sqlBody))
	elapsed := time.Since(start).Milliseconds()

	status := entity.MigrationStatusSuccess
	errMsg := ""
	if execErr != nil {
		status = entity.MigrationStatusFailed
		errMsg = execErr.Error()
	}
	if err := r.record(ctx, f, elapsed, status, errMsg); err != nil {
		return err
	}
	if execErr != nil {
		return fmt.Errorf("migración %s: %w", f.Name, execErr)
	}
	r.log.Info().Str("migration", f.Name).Int64("ms", elapsed).Msg("migración aplicada")
	return nil
}

func (r *Runner) execInTx(ctx context.Context, sqlBody string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, sqlBody); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// record inserta o actualiza la fila del tracker para la migración.
func (r *Runner) record(ctx context.Context, f migrationFile, elapsedMS int64, status, errMsg string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO migration_tracker (migration_name, version, executed_at, execution_time_ms, status, error_message)
		VALUES ($1, $2, NOW(), $3, $4, $5)
		ON CONFLICT (migration_name)
		DO UPDATE SET executed_at = NOW(), execution_time_ms = $3, status = $4, error_message = $5`,
		f.Name, f.Version, elapsedMS, status, errMsg)
	if err != nil {
		return fmt.Errorf("registrar migración %s: %w", f.Name, err)
	}
	return nil
}

// Rollback revierte las últimas n migraciones aplicadas con éxito, de la más
// reciente a la más antigua. Requiere que exista el archivo .rollback.sql
// emparejado; si falta, el rollback se detiene.
func (r *Runner) Rollback(ctx context.Context, n int) error {
	if err := r.ensureTracker(ctx); err != nil {
		return err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT migration_name, version FROM migration_tracker
		WHERE status = $1 ORDER BY migration_name DESC LIMIT $2`,
		entity.MigrationStatusSuccess, n)
	if err != nil {
		return fmt.Errorf("leer migration_tracker: %w", err)
	}
	var targets []migrationFile
	for rows.Next() {
		var f migrationFile
		if err := rows.Scan(&f.Name, &f.Version); err != nil {
			rows.Close()
			return fmt.Errorf("scan migration_tracker: %w", err)
		}
		f.Path = filepath.Join(r.dir, f.Name+".rollback.sql")
		targets = append(targets, f)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	for _, f := range targets {
		sqlBody, err := os.ReadFile(f.Path)
		if err != nil {
			return fmt.Errorf("rollback de %s sin archivo emparejado: %w", f.Name, err)
		}
		r.log.Info().Str("migration", f.Name).Msg("revirtiendo migración")
		start := time.Now()
		if err := r.execInTx(ctx, string(sqlBody)); err != nil {
			return fmt.Errorf("rollback %s: %w", f.Name, err)
		}
		elapsed := time.Since(start).Milliseconds()
		if err := r.record(ctx, f, elapsed, entity.MigrationStatusRolledBack, ""); err != nil {
			return err
		}
		r.log.Info().Str("migration", f.Name).Int64("ms", elapsed).Msg("migración revertida")
	}
	return nil
}

// Status devuelve cada migración de disco con su estado registrado
// ("pending" si nunca se ejecutó), en orden de aplicación.
func (r *Runner) Status(ctx context.Context) ([]entity.MigrationRecord, error) {
	if err := r.ensureTracker(ctx); err != nil {
		return nil, err
	}
	files, err := r.discover()
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, migration_name, version, executed_at, execution_time_ms, status, error_message
		FROM migration_tracker`)
	if err != nil {
		return nil, fmt.Errorf("leer migration_tracker: %w", err)
	}
	defer rows.Close()
	recorded := map[string]entity.MigrationRecord{}
	for rows.Next() {
		var rec entity.MigrationRecord
		err := rows.Scan(&rec.ID, &rec.MigrationName, &rec.Version, &rec.ExecutedAt,
			&rec.ExecutionTimeMS, &rec.Status, &rec.ErrorMessage)
		if err != nil {
			return nil, fmt.Errorf("scan migration_tracker: %w", err)
		}
		recorded[rec.MigrationName] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	result := make([]entity.MigrationRecord, 0, len(files))
	for _, f := range files {
		if rec, ok := recorded[f.Name]; ok {
			result = append(result, rec)
			continue
		}
		result = append(result, entity.MigrationRecord{
			MigrationName: f.Name,
			Version:       f.Version,
			Status:        "pending",
		})
	}
	return result, nil
}
