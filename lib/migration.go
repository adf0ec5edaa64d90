package lib

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

type Migration struct {
	Name    string
	UpSQL   string
	DownSQL string
}

// HistoryMigrations returns the schema migrations of the history store.
func HistoryMigrations() ([]*Migration, error) {
	return ReadMigrationsDir(embeddedMigrations, "migrations")
}

// ReadMigrationsDir pairs NAME.up.sql / NAME.down.sql files and returns the
// migrations sorted by name.
func ReadMigrationsDir(fsys fs.FS, dir string) ([]*Migration, error) {
	files, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}

	migrations := map[string]*Migration{}

	withMigration := func(name string) *Migration {
		m, ok := migrations[name]
		if !ok {
			m = &Migration{
				Name: name,
			}
			migrations[name] = m
		}
		return m
	}

	// Load all migration files into migrations map
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}
		bytes, err := fs.ReadFile(fsys, path.Join(dir, file.Name()))
		if err != nil {
			return nil, err
		}

		name, isUp := parseMigrationFileName(file.Name())
		migration := withMigration(name)
		if isUp {
			migration.UpSQL = string(bytes)
		} else {
			migration.DownSQL = string(bytes)
		}
	}

	// Sort keys lexicographically
	keys := []string{}
	for k := range migrations {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	// Make result slice
	result := []*Migration{}
	for _, k := range keys {
		result = append(result, migrations[k])
	}
	return result, nil
}

func parseMigrationFileName(fileName string) (string, bool) {
	return getMigrationName(fileName), getUpness(fileName)
}

func getMigrationName(fileName string) string {
	dotParts := strings.Split(fileName, ".")
	return dotParts[0]
}

func getUpness(fileName string) bool {
	return !strings.HasSuffix(fileName, ".down.sql")
}

// RunMigrations applies every migration not yet recorded in
// schema_migrations, each in its own transaction. It returns the names of
// the migrations it applied.
func RunMigrations(ctx context.Context, db *sql.DB, driver string, migrations []*Migration) ([]string, error) {
	err := requireMigrationsTable(ctx, db)
	if err != nil {
		return nil, err
	}

	applied, err := appliedMigrations(ctx, db)
	if err != nil {
		return nil, err
	}

	ran := []string{}
	for _, migration := range migrations {
		if applied[migration.Name] {
			continue
		}
		err = execMigration(ctx, db, driver, migration)
		if err != nil {
			return ran, err
		}
		ran = append(ran, migration.Name)
	}

	return ran, nil
}

func requireMigrationsTable(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx,
		"CREATE TABLE IF NOT EXISTS schema_migrations (name TEXT PRIMARY KEY, applied_at TIMESTAMP NOT NULL)")
	return err
}

func appliedMigrations(ctx context.Context, db *sql.DB) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, "SELECT name FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := map[string]bool{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		applied[name] = true
	}
	return applied, rows.Err()
}

func execMigration(ctx context.Context, db *sql.DB, driver string, migration *Migration) error {
	if strings.TrimSpace(migration.UpSQL) == "" {
		return fmt.Errorf("Migration '%s' has no up script", migration.Name)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, migration.UpSQL); err != nil {
		return fmt.Errorf("migration %s: %w", migration.Name, err)
	}

	insert := fmt.Sprintf("INSERT INTO schema_migrations (name, applied_at) VALUES (%s)", placeholders(driver, 2))
	if _, err := tx.ExecContext(ctx, insert, migration.Name, time.Now().UTC()); err != nil {
		return fmt.Errorf("recording migration %s: %w", migration.Name, err)
	}

	return tx.Commit()
}
