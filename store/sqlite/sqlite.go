/*
Package sqlite provides a SQLite-backed implementation of engine.RecordStore.

PURPOSE:
  Durable local storage for the two record collections: check-events and
  daily reports. In production the same patterns apply to PostgreSQL -
  only minor SQL dialect differences.

KEY TABLES:
  check_events:  one row per attestation submission
  daily_reports: one row per activity report, with the raw financial
                 payload kept as JSON so field-name drift survives a
                 round trip and the ordered-candidate resolver still
                 sees what the submitter actually sent

WRITE SURFACE:
  PutEvent/PutReport upsert whole records. The engine only ever calls
  PutEvent to refresh cached_distance; submission handlers use both to
  store new records.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

USAGE:
  store, err := sqlite.New("./data/attest.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()
  eng := engine.New(store)

SEE ALSO:
  - engine/store.go:        interface definition
  - engine/store/memory.go: in-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/fieldops/attest-engine/engine"
)

// Store implements engine.RecordStore using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Check events (departure/arrival attestations)
	CREATE TABLE IF NOT EXISTS check_events (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		base TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		event_type TEXT NOT NULL,
		timestamp TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL DEFAULT '',
		odometer_start INTEGER,
		odometer_end INTEGER,
		alcohol_reading TEXT NOT NULL DEFAULT '',
		abnormal_flag BOOLEAN NOT NULL DEFAULT FALSE,
		checklist_json TEXT,
		cached_distance INTEGER
	);

	-- Scans filter by the date prefix of the timestamp
	CREATE INDEX IF NOT EXISTS idx_check_events_timestamp
		ON check_events(timestamp);
	CREATE INDEX IF NOT EXISTS idx_check_events_name
		ON check_events(name);

	-- Daily reports (optional per-day activity/financial reports)
	CREATE TABLE IF NOT EXISTS daily_reports (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		base TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		work_date TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL DEFAULT '',
		fields_json TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_daily_reports_work_date
		ON daily_reports(work_date);
	CREATE INDEX IF NOT EXISTS idx_daily_reports_name
		ON daily_reports(name);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// CHECK EVENTS (engine.RecordStore)
// =============================================================================

// ListEvents returns every stored check event, ordered by timestamp.
func (s *Store) ListEvents(ctx context.Context) ([]engine.CheckEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, name, base, phone, event_type, timestamp, created_at,
		       odometer_start, odometer_end, alcohol_reading, abnormal_flag,
		       checklist_json, cached_distance
		FROM check_events
		ORDER BY timestamp ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query check events: %w", err)
	}
	defer rows.Close()

	var events []engine.CheckEvent
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// GetEvent returns one event by ID, or (nil, nil) when absent.
func (s *Store) GetEvent(ctx context.Context, id engine.EventID) (*engine.CheckEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, name, base, phone, event_type, timestamp, created_at,
		       odometer_start, odometer_end, alcohol_reading, abnormal_flag,
		       checklist_json, cached_distance
		FROM check_events
		WHERE id = ?
	`

	rows, err := s.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query check event: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	ev, err := scanEvent(rows)
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

// PutEvent upserts a check event. The engine's cached_distance write-back
// and the submission path both land here.
func (s *Store) PutEvent(ctx context.Context, ev engine.CheckEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	checklistJSON, _ := json.Marshal(ev.ChecklistResults)

	query := `
		INSERT INTO check_events
		(id, name, base, phone, event_type, timestamp, created_at,
		 odometer_start, odometer_end, alcohol_reading, abnormal_flag,
		 checklist_json, cached_distance)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			base = excluded.base,
			phone = excluded.phone,
			event_type = excluded.event_type,
			timestamp = excluded.timestamp,
			created_at = excluded.created_at,
			odometer_start = excluded.odometer_start,
			odometer_end = excluded.odometer_end,
			alcohol_reading = excluded.alcohol_reading,
			abnormal_flag = excluded.abnormal_flag,
			checklist_json = excluded.checklist_json,
			cached_distance = excluded.cached_distance
	`

	_, err := s.db.ExecContext(ctx, query,
		ev.ID,
		ev.Identity.Name,
		ev.Identity.Base,
		ev.Identity.Phone,
		ev.Type,
		ev.Timestamp,
		ev.CreatedAt,
		nullInt64(ev.OdometerStart),
		nullInt64(ev.OdometerEnd),
		ev.AlcoholReading,
		ev.AbnormalFlag,
		string(checklistJSON),
		nullInt64(ev.CachedDistance),
	)
	if err != nil {
		return fmt.Errorf("failed to put check event: %w", err)
	}
	return nil
}

func scanEvent(rows *sql.Rows) (engine.CheckEvent, error) {
	var (
		ev             engine.CheckEvent
		odometerStart  sql.NullInt64
		odometerEnd    sql.NullInt64
		checklistJSON  sql.NullString
		cachedDistance sql.NullInt64
	)

	err := rows.Scan(
		&ev.ID, &ev.Identity.Name, &ev.Identity.Base, &ev.Identity.Phone,
		&ev.Type, &ev.Timestamp, &ev.CreatedAt,
		&odometerStart, &odometerEnd, &ev.AlcoholReading, &ev.AbnormalFlag,
		&checklistJSON, &cachedDistance,
	)
	if err != nil {
		return ev, fmt.Errorf("failed to scan check event: %w", err)
	}

	ev.OdometerStart = int64Ptr(odometerStart)
	ev.OdometerEnd = int64Ptr(odometerEnd)
	ev.CachedDistance = int64Ptr(cachedDistance)

	if checklistJSON.Valid && checklistJSON.String != "" {
		json.Unmarshal([]byte(checklistJSON.String), &ev.ChecklistResults)
	}
	return ev, nil
}

// =============================================================================
// DAILY REPORTS (engine.RecordStore)
// =============================================================================

// ListReports returns every stored daily report, ordered by work date.
func (s *Store) ListReports(ctx context.Context) ([]engine.DailyReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, name, base, phone, work_date, created_at, fields_json
		FROM daily_reports
		ORDER BY work_date ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily reports: %w", err)
	}
	defer rows.Close()

	var reports []engine.DailyReport
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

// GetReport returns one report by ID, or (nil, nil) when absent.
func (s *Store) GetReport(ctx context.Context, id engine.ReportID) (*engine.DailyReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, name, base, phone, work_date, created_at, fields_json
		FROM daily_reports
		WHERE id = ?
	`

	rows, err := s.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily report: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	r, err := scanReport(rows)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// PutReport upserts a daily report. The raw financial payload goes in as
// JSON untouched so the resolver sees the submitted field names.
func (s *Store) PutReport(ctx context.Context, r engine.DailyReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fieldsJSON, _ := json.Marshal(r.Fields)

	query := `
		INSERT INTO daily_reports
		(id, name, base, phone, work_date, created_at, fields_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			base = excluded.base,
			phone = excluded.phone,
			work_date = excluded.work_date,
			created_at = excluded.created_at,
			fields_json = excluded.fields_json
	`

	_, err := s.db.ExecContext(ctx, query,
		r.ID,
		r.Identity.Name,
		r.Identity.Base,
		r.Identity.Phone,
		r.WorkDate,
		r.CreatedAt,
		string(fieldsJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to put daily report: %w", err)
	}
	return nil
}

func scanReport(rows *sql.Rows) (engine.DailyReport, error) {
	var (
		r          engine.DailyReport
		fieldsJSON sql.NullString
	)

	err := rows.Scan(
		&r.ID, &r.Identity.Name, &r.Identity.Base, &r.Identity.Phone,
		&r.WorkDate, &r.CreatedAt, &fieldsJSON,
	)
	if err != nil {
		return r, fmt.Errorf("failed to scan daily report: %w", err)
	}

	if fieldsJSON.Valid && fieldsJSON.String != "" {
		json.Unmarshal([]byte(fieldsJSON.String), &r.Fields)
	}
	return r, nil
}

// =============================================================================
// HELPERS
// =============================================================================

func nullInt64(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}

func int64Ptr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}
