package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"trivia-api/internal/config"
	"trivia-api/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations
var migrationsFS embed.FS

// Direction selects whether migrations are applied or rolled back
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// RunMigrations applies (or rolls back) the embedded schema for driverName.
// PostgreSQL and SQLite go through golang-migrate; Oracle, which it has no
// driver for, uses the plain statement runner below.
func RunMigrations(ctx context.Context, db *sql.DB, driverName string, direction Direction) error {
	if driverName == config.DriverOracle {
		return runPlainMigrations(ctx, db, direction)
	}

	src, err := iofs.New(migrationsFS, path.Join("migrations", migrationDir(driverName)))
	if err != nil {
		return fmt.Errorf("could not open embedded migrations: %w", err)
	}
	defer src.Close()

	var target migratedb.Driver
	switch driverName {
	case config.DriverPostgres:
		target, err = migratepgx.WithInstance(db, &migratepgx.Config{})
	case config.DriverSQLite:
		target, err = migratesqlite.WithInstance(db, &migratesqlite.Config{})
	default:
		return fmt.Errorf("no migrations for driver %q", driverName)
	}
	if err != nil {
		return fmt.Errorf("could not prepare migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, driverName, target)
	if err != nil {
		return fmt.Errorf("could not create migrator: %w", err)
	}

	switch direction {
	case Down:
		err = m.Down()
	default:
		err = m.Up()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations %s: %w", direction, err)
	}

	version, dirty, verr := m.Version()
	if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
		return fmt.Errorf("could not read migration version: %w", verr)
	}
	logger.Get().Info("Migrations completed",
		zap.String("driver", driverName),
		zap.String("direction", string(direction)),
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
	)
	return nil
}

func migrationDir(driverName string) string {
	if driverName == config.DriverPostgres {
		return "postgres"
	}
	return driverName
}

type plainMigration struct {
	version int
	name    string
}

// runPlainMigrations executes migrations/oracle/*.sql one statement at a
// time, recording applied versions in schema_versions.
func runPlainMigrations(ctx context.Context, db *sql.DB, direction Direction) error {
	const dir = "migrations/oracle"

	suffix := ".up.sql"
	if direction == Down {
		suffix = ".down.sql"
	}

	entries, err := fs.ReadDir(migrationsFS, dir)
	if err != nil {
		return fmt.Errorf("could not read migrations directory: %w", err)
	}

	var files []plainMigration
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), suffix) {
			continue
		}
		version, err := migrationVersion(entry.Name())
		if err != nil {
			return err
		}
		files = append(files, plainMigration{version: version, name: entry.Name()})
	}
	sort.Slice(files, func(i, j int) bool {
		if direction == Down {
			return files[i].version > files[j].version
		}
		return files[i].version < files[j].version
	})

	applied, err := appliedVersions(ctx, db)
	if err != nil {
		return err
	}

	for _, file := range files {
		_, done := applied[file.version]
		if (direction == Up && done) || (direction == Down && !done) {
			continue
		}

		content, err := migrationsFS.ReadFile(path.Join(dir, file.name))
		if err != nil {
			return fmt.Errorf("could not read migration file %s: %w", file.name, err)
		}
		for _, stmt := range SplitStatements(string(content)) {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("could not execute migration %s: %w", file.name, err)
			}
		}

		if direction == Down {
			_, err = db.ExecContext(ctx, "DELETE FROM schema_versions WHERE version = :1", file.version)
		} else {
			_, err = db.ExecContext(ctx, "INSERT INTO schema_versions (version) VALUES (:1)", file.version)
		}
		if err != nil {
			return fmt.Errorf("could not record migration %s: %w", file.name, err)
		}

		logger.Get().Info("Executed migration", zap.String("file", file.name))
	}

	logger.Get().Info("Migrations completed", zap.String("driver", config.DriverOracle), zap.String("direction", string(direction)))
	return nil
}

func appliedVersions(ctx context.Context, db *sql.DB) (map[int]struct{}, error) {
	var exists int
	err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM user_tables WHERE table_name = 'SCHEMA_VERSIONS'").Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("could not inspect schema_versions: %w", err)
	}
	if exists == 0 {
		if _, err := db.ExecContext(ctx, "CREATE TABLE schema_versions (version NUMBER PRIMARY KEY)"); err != nil {
			return nil, fmt.Errorf("could not create schema_versions: %w", err)
		}
	}

	rows, err := db.QueryContext(ctx, "SELECT version FROM schema_versions")
	if err != nil {
		return nil, fmt.Errorf("could not read schema_versions: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]struct{})
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		applied[v] = struct{}{}
	}
	return applied, rows.Err()
}

// migrationVersion parses the numeric prefix of "000001_name.up.sql"
func migrationVersion(name string) (int, error) {
	prefix, _, ok := strings.Cut(name, "_")
	if !ok {
		return 0, fmt.Errorf("migration %s has no version prefix", name)
	}
	v, err := strconv.Atoi(prefix)
	if err != nil {
		return 0, fmt.Errorf("migration %s has a bad version prefix: %w", name, err)
	}
	return v, nil
}

// SplitStatements breaks a script on semicolons that end a line. Oracle
// rejects multiple statements (and trailing semicolons) in one Exec.
func SplitStatements(script string) []string {
	var stmts []string
	var current strings.Builder
	for _, line := range strings.Split(script, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")
		if strings.HasSuffix(trimmed, ";") {
			stmt := strings.TrimSuffix(strings.TrimSpace(current.String()), ";")
			stmts = append(stmts, stmt)
			current.Reset()
		}
	}
	if rest := strings.TrimSpace(current.String()); rest != "" {
		stmts = append(stmts, rest)
	}
	return stmts
}
