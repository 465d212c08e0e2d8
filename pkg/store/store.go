// Package store persists solved schedules and the staff roster snapshot
// used to produce them, in Postgres.
package store

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vetclinic/oncall-roster/pkg/core/model"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store wraps a Postgres connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// New opens a connection pool to connString and pings it.
func New(ctx context.Context, connString string) (*Store, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}

// Migrate runs every embedded migration file in lexical order.
func (s *Store) Migrate(ctx context.Context) error {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	for _, name := range files {
		content, err := fs.ReadFile(migrationsFS, "migrations/"+name)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		if _, err := s.pool.Exec(ctx, string(content)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", name, err)
		}
	}
	return nil
}

// SaveSchedule persists sched and a snapshot of the roster it was solved
// against, replacing any prior schedule for the same quarter.
func (s *Store) SaveSchedule(ctx context.Context, sched model.Schedule, staff []model.Staff, status string, provenOptimal bool) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM schedules WHERE quarter_start = $1`, sched.QuarterStart); err != nil {
		return fmt.Errorf("failed to clear prior schedule: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO schedules (id, quarter_start, solver_status, proven_optimal)
		VALUES ($1, $2, $3, $4)
	`, sched.ID, sched.QuarterStart, status, provenOptimal); err != nil {
		return fmt.Errorf("failed to insert schedule: %w", err)
	}

	for _, a := range sched.Assignments {
		if _, err := tx.Exec(ctx, `
			INSERT INTO assignments (schedule_id, shift_date, kind, staff_id, paired)
			VALUES ($1, $2, $3, $4, $5)
		`, sched.ID, a.Slot.Date, string(a.Slot.Kind), a.StaffID, a.Paired); err != nil {
			return fmt.Errorf("failed to insert assignment: %w", err)
		}
	}

	for _, st := range staff {
		if _, err := tx.Exec(ctx, `
			INSERT INTO staff_snapshots (schedule_id, staff_id, name, role, department, hours)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, sched.ID, st.ID, st.Name, string(st.Role), string(st.Department), st.Hours); err != nil {
			return fmt.Errorf("failed to insert staff snapshot: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// LoadSchedule retrieves the persisted schedule for a quarter, or
// (model.Schedule{}, false, nil) if none exists.
func (s *Store) LoadSchedule(ctx context.Context, quarterStart time.Time) (model.Schedule, bool, error) {
	var sched model.Schedule
	row := s.pool.QueryRow(ctx, `
		SELECT id, quarter_start FROM schedules WHERE quarter_start = $1
	`, quarterStart)
	if err := row.Scan(&sched.ID, &sched.QuarterStart); err != nil {
		if strings.Contains(err.Error(), "no rows") {
			return model.Schedule{}, false, nil
		}
		return model.Schedule{}, false, fmt.Errorf("failed to load schedule: %w", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT shift_date, kind, staff_id, paired FROM assignments WHERE schedule_id = $1
	`, sched.ID)
	if err != nil {
		return model.Schedule{}, false, fmt.Errorf("failed to load assignments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var date time.Time
		var kind, staffID string
		var paired bool
		if err := rows.Scan(&date, &kind, &staffID, &paired); err != nil {
			return model.Schedule{}, false, fmt.Errorf("failed to scan assignment: %w", err)
		}
		sched.Assignments = append(sched.Assignments, model.Assignment{
			StaffID: staffID,
			Slot:    model.Slot{Kind: model.Kind(kind), Date: model.DateOnly(date)},
			Paired:  paired,
		})
	}
	if err := rows.Err(); err != nil {
		return model.Schedule{}, false, fmt.Errorf("error iterating assignments: %w", err)
	}

	return sched, true, nil
}
