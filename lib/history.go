package lib

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Run is one recorded check.
type Run struct {
	ID        string
	Source    string
	Program   string
	Outcome   string
	Message   string
	Location  Location
	CheckedAt time.Time
}

// HistoryStore records check verdicts in a SQL database. It implements
// Diagnostics so it can sit next to the console reporter.
type HistoryStore struct {
	db     *sql.DB
	driver string
	now    func() time.Time
}

// OpenHistory connects to the configured database and brings its schema up
// to date.
func OpenHistory(ctx context.Context, cfg HistoryConfig) (*HistoryStore, error) {
	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to %s history: %w", cfg.Driver, err)
	}

	migrations, err := HistoryMigrations()
	if err != nil {
		db.Close()
		return nil, err
	}
	if _, err := RunMigrations(ctx, db, cfg.Driver, migrations); err != nil {
		db.Close()
		return nil, err
	}

	return &HistoryStore{db: db, driver: cfg.Driver, now: time.Now}, nil
}

func (h *HistoryStore) Close() error {
	return h.db.Close()
}

func (h *HistoryStore) Accepted(ctx context.Context, source string, prog Program) error {
	return h.record(ctx, Run{
		Source:  source,
		Program: prog.Name,
		Outcome: OutcomeAccepted.String(),
	})
}

func (h *HistoryStore) Failed(ctx context.Context, source string, failure Failure) error {
	return h.record(ctx, Run{
		Source:   source,
		Outcome:  failure.Class.String(),
		Message:  failure.Message,
		Location: failure.Location,
	})
}

func (h *HistoryStore) record(ctx context.Context, run Run) error {
	run.ID = uuid.NewString()
	run.CheckedAt = h.now().UTC()

	query := fmt.Sprintf(
		"INSERT INTO check_runs (id, source, program, outcome, message, line, col, checked_at) VALUES (%s)",
		placeholders(h.driver, 8))
	_, err := h.db.ExecContext(ctx, query,
		run.ID,
		run.Source,
		run.Program,
		run.Outcome,
		run.Message,
		run.Location.Line,
		run.Location.Col,
		run.CheckedAt)
	if err != nil {
		return fmt.Errorf("recording check of %s: %w", run.Source, err)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (h *HistoryStore) Recent(ctx context.Context, limit int) ([]Run, error) {
	query := fmt.Sprintf(
		"SELECT id, source, program, outcome, message, line, col, checked_at FROM check_runs ORDER BY checked_at DESC, id LIMIT %s",
		placeholders(h.driver, 1))
	rows, err := h.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var run Run
		err := rows.Scan(
			&run.ID,
			&run.Source,
			&run.Program,
			&run.Outcome,
			&run.Message,
			&run.Location.Line,
			&run.Location.Col,
			&run.CheckedAt)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// placeholders renders n bind parameters in the driver's syntax.
func placeholders(driver string, n int) string {
	params := make([]string, n)
	for i := range params {
		if driver == DriverPostgres {
			params[i] = fmt.Sprintf("$%d", i+1)
		} else {
			params[i] = "?"
		}
	}
	return strings.Join(params, ", ")
}
