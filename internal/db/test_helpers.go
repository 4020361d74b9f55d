package db

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/jackc/pgx"
	"github.com/jackc/pgx/stdlib"
	"github.com/pressly/goose/v3"
)

const (
	// TestDBURLEnv names the env variable holding the test database URL.
	// Integration tests are skipped when it is not set.
	TestDBURLEnv = "TEST_DATABASE_URL"
	// MigrationsDir is the directory containing migrations, relative to
	// the package under test.
	MigrationsDir = "../../migrations"
)

// BaseTime is the base time used for test data
var BaseTime = time.Date(2024, 1, 14, 12, 0, 0, 0, time.UTC)

// ResetPublicSchema drops and recreates the public schema
func ResetPublicSchema(ctx context.Context, database *pg.DB) error {
	_, err := database.ExecContext(ctx, `DROP SCHEMA IF EXISTS public CASCADE; CREATE SCHEMA public;`)
	if err != nil {
		return fmt.Errorf("reset public schema: %w", err)
	}
	return nil
}

// RunMigrations runs database migrations from the migrations directory
func RunMigrations(ctx context.Context, dbURL, migrationsDir string) error {
	config, err := pgx.ParseConnectionString(dbURL)
	if err != nil {
		return fmt.Errorf("parse connection string: %w", err)
	}

	sqldb := stdlib.OpenDB(config)
	defer sqldb.Close()

	if err := sqldb.PingContext(ctx); err != nil {
		return fmt.Errorf("ping test db: %w", err)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	files, err := filepath.Glob(filepath.Join(migrationsDir, "*.sql"))
	if err != nil {
		return fmt.Errorf("glob migrations: %w", err)
	}
	sort.Strings(files)
	if len(files) == 0 {
		return fmt.Errorf("no migration files found in %s", migrationsDir)
	}

	if err := goose.UpContext(ctx, sqldb, migrationsDir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}

// EnsureTablesExist verifies that the specified tables exist in the database
func EnsureTablesExist(ctx context.Context, database *pg.DB, tables []string) error {
	for _, tbl := range tables {
		var exists bool
		_, err := database.QueryOneContext(ctx, pg.Scan(&exists), `
			SELECT EXISTS (
				SELECT 1
				FROM information_schema.tables
				WHERE table_schema = 'public' AND table_name = ?
			)`, tbl)
		if err != nil {
			return fmt.Errorf("check table %s exists: %w", tbl, err)
		}
		if !exists {
			return fmt.Errorf("table %q does not exist after migrations", tbl)
		}
	}
	return nil
}

// LoadTestData loads test data into the database
func LoadTestData(ctx context.Context, database *pg.DB) error {
	_, err := database.ExecContext(ctx, `
		TRUNCATE TABLE "news", "users" RESTART IDENTITY CASCADE;
	`)
	if err != nil {
		return fmt.Errorf("truncate tables: %w", err)
	}

	aliceProfile := "alice-profile.png"
	users := []User{
		{Name: "Alice", Email: "alice@example.com", PasswordHash: "x", Profile: &aliceProfile},
		{Name: "Bob", Email: "bob@example.com", PasswordHash: "x"},
	}
	for i := range users {
		users[i].CreatedAt = BaseTime
		users[i].UpdatedAt = BaseTime
		if _, err := database.ModelContext(ctx, &users[i]).Insert(); err != nil {
			return fmt.Errorf("insert user %q: %w", users[i].Email, err)
		}
	}

	titles := []string{
		"AI Breakthrough in Machine Learning",
		"Quantum Computers: Future of Computing",
		"World Cup Finals: Results",
		"Olympic Games: New World Records",
		"International Summit Concludes",
		"Markets Weekly: Trends and Signals",
		"Film Festival Winners Announced",
	}
	for i, title := range titles {
		image := fmt.Sprintf("news-%d.png", i+1)
		news := News{
			Title:     title,
			Content:   "Test content for " + title,
			Image:     &image,
			UserID:    i%2 + 1,
			CreatedAt: BaseTime.Add(time.Duration(i) * time.Hour),
			UpdatedAt: BaseTime.Add(time.Duration(i) * time.Hour),
		}
		if _, err := database.ModelContext(ctx, &news).Insert(); err != nil {
			return fmt.Errorf("insert news %q: %w", title, err)
		}
	}

	return nil
}
