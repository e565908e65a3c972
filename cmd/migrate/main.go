// Binario de migraciones: aplica, revierte y lista el estado de los archivos
// SQL de ./migrations contra migration_tracker.
//
//	migrate run            aplica las migraciones pendientes en orden
//	migrate rollback [N]   revierte las últimas N exitosas (default 1)
//	migrate status         estado de cada archivo en disco
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Gestion-api/internal/infrastructure/migrate"
	"github.com/jhoicas/Gestion-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Gestion-api/pkg/config"
	"github.com/jhoicas/Gestion-api/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Administra las migraciones de la base de datos",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newRunCmd(), newRollbackCmd(), newStatusCmd())
	return root
}

// withRunner carga config, abre el pool y entrega un Runner listo.
func withRunner(fn func(ctx context.Context, r *migrate.Runner) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info", Service: "migrate"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()

	runner := migrate.NewRunner(pool, cfg.Migrate.Dir, cfg.Migrate.ContinueOnError, log)
	return fn(ctx, runner)
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Aplica las migraciones pendientes en orden",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRunner(func(ctx context.Context, r *migrate.Runner) error {
				return r.Run(ctx)
			})
		},
	}
}

func newRollbackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rollback [N]",
		Short: "Revierte las últimas N migraciones exitosas (default 1)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := 1
			if len(args) == 1 {
				v, err := strconv.Atoi(args[0])
				if err != nil || v < 1 {
					return fmt.Errorf("N debe ser un entero positivo, recibido %q", args[0])
				}
				n = v
			}
			return withRunner(func(ctx context.Context, r *migrate.Runner) error {
				return r.Rollback(ctx, n)
			})
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Muestra el estado de cada migración",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRunner(func(ctx context.Context, r *migrate.Runner) error {
				records, err := r.Status(ctx)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				fmt.Fprintf(w, "%-45s %-12s %-20s %s\n", "MIGRACIÓN", "ESTADO", "EJECUTADA", "ERROR")
				for _, rec := range records {
					executed := "-"
					if !rec.ExecutedAt.IsZero() {
						executed = rec.ExecutedAt.Format("2006-01-02 15:04:05")
					}
					fmt.Fprintf(w, "%-45s %-12s %-20s %s\n", rec.MigrationName, rec.Status, executed, rec.ErrorMessage)
				}
				return nil
			})
		},
	}
}
