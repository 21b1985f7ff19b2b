package report

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"vigil-hq/vigil/pkg/analysis"
)

// StoredReport is one archived audit report row.
type StoredReport struct {
	AuditID     string
	GeneratedAt time.Time
	Errors      int
	Warnings    int
	Infos       int
	Report      *analysis.Report
}

// Store archives audit reports in a SQLite database so CI runs can track
// findings over time. The full report is kept as JSON alongside indexed
// severity counts.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// OpenStore opens (and if needed initializes) a report archive at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open report store: %w", err)
	}

	s := &Store{
		db:     db,
		logger: slog.Default().With("component", "report.store"),
	}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS audit_reports (
		audit_id     TEXT PRIMARY KEY,
		generated_at TEXT NOT NULL,
		errors       INTEGER NOT NULL,
		warnings     INTEGER NOT NULL,
		infos        INTEGER NOT NULL,
		report       TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_reports_generated_at
		ON audit_reports(generated_at);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize report schema: %w", err)
	}
	return nil
}

// Save archives one report.
func (s *Store) Save(ctx context.Context, r *analysis.Report) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}

	counts := r.Counts()
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO audit_reports
			(audit_id, generated_at, errors, warnings, infos, report)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.AuditID,
		r.GeneratedAt.UTC().Format(time.RFC3339Nano),
		counts[analysis.SeverityError],
		counts[analysis.SeverityWarning],
		counts[analysis.SeverityInfo],
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}

	s.logger.Info("Audit report archived",
		"audit_id", r.AuditID,
		"errors", counts[analysis.SeverityError],
		"warnings", counts[analysis.SeverityWarning],
	)
	return nil
}

// Get loads one archived report by audit ID.
func (s *Store) Get(ctx context.Context, auditID string) (*StoredReport, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT audit_id, generated_at, errors, warnings, infos, report
		 FROM audit_reports WHERE audit_id = ?`, auditID)
	return scanStoredReport(row)
}

// List returns the most recent archived reports, newest first. The full
// report JSON is decoded for each row.
func (s *Store) List(ctx context.Context, limit int) ([]*StoredReport, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT audit_id, generated_at, errors, warnings, infos, report
		 FROM audit_reports ORDER BY generated_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var reports []*StoredReport
	for rows.Next() {
		sr, err := scanStoredReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, sr)
	}
	return reports, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStoredReport(row rowScanner) (*StoredReport, error) {
	var sr StoredReport
	var generatedAt, payload string
	if err := row.Scan(&sr.AuditID, &generatedAt, &sr.Errors, &sr.Warnings, &sr.Infos, &payload); err != nil {
		return nil, fmt.Errorf("failed to read report row: %w", err)
	}

	t, err := time.Parse(time.RFC3339Nano, generatedAt)
	if err != nil {
		return nil, fmt.Errorf("invalid generated_at in report row: %w", err)
	}
	sr.GeneratedAt = t

	var r analysis.Report
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		return nil, fmt.Errorf("invalid report payload: %w", err)
	}
	sr.Report = &r
	return &sr, nil
}
