package main

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"

	scannerconfig "multibagger-scanner/internal/scanner/config"
	pkgconfig "multibagger-scanner/pkg/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"
)

var (
	configPath     string
	migrationsPath string
)

func getDSN(dbConfig pkgconfig.Database) string {
	sslMode := dbConfig.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(dbConfig.User),
		url.QueryEscape(dbConfig.Password),
		dbConfig.Host,
		dbConfig.Port,
		dbConfig.DBName,
		sslMode)
}

func runMigrations(direction string, steps int) error {
	cfg, err := scannerconfig.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	m, err := migrate.New("file://"+migrationsPath, getDSN(cfg.Database))
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			log.Printf("Migration source error on close: %v\n", srcErr)
		}
		if dbErr != nil {
			log.Printf("Migration database error on close: %v\n", dbErr)
		}
	}()

	var migrationErr error
	switch direction {
	case "up":
		migrationErr = m.Up()
	case "down":
		migrationErr = m.Steps(-steps)
	}
	if errors.Is(migrationErr, migrate.ErrNoChange) {
		fmt.Println("No migrations to apply.")
		return nil
	}
	if migrationErr != nil {
		return fmt.Errorf("migration %s failed: %w", direction, migrationErr)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return err
	}
	fmt.Printf("Migrated %s, schema version %d (dirty=%t).\n", direction, version, dirty)
	return nil
}

var downSteps int

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all available database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrations("up", 0)
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Revert the last database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if downSteps < 1 {
			return fmt.Errorf("--steps must be at least 1")
		}
		return runMigrations("down", downSteps)
	},
}

func main() {
	rootCmd := &cobra.Command{Use: "migrate"}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config-scanner.yaml", "Path to the configuration file")
	rootCmd.PersistentFlags().StringVar(&migrationsPath, "path", "migrations", "Directory holding the migration files")
	downCmd.Flags().IntVar(&downSteps, "steps", 1, "Number of migrations to revert")

	rootCmd.AddCommand(upCmd, downCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing migrate CLI: %s\n", err)
		os.Exit(1)
	}
}
