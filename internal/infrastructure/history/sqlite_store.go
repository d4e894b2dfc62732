package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/git-repo-agent/internal/domain"
	"github.com/doeshing/git-repo-agent/internal/ports"
)

// SQLiteStore persists health runs in a SQLite database. When the database
// cannot be opened it degrades to a JSONL file next to it.
type SQLiteStore struct {
	db       *sql.DB
	path     string
	fallback *FileStore
	mu       sync.Mutex
}

// NewSQLiteStore creates (or opens) the database at path.
func NewSQLiteStore(path string) *SQLiteStore {
	store := &SQLiteStore{path: path}
	_ = os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
	db, err := sql.Open("sqlite", path)
	if err == nil {
		db.SetMaxOpenConns(1)
		store.db = db
		err = store.init()
	}
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		store.db = nil
		store.fallback = NewFileStore(strings.TrimSuffix(path, filepath.Ext(path)) + ".jsonl")
	}
	return store
}

func (s *SQLiteStore) init() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS health_runs (
		id TEXT PRIMARY KEY,
		repo_path TEXT NOT NULL,
		timestamp TEXT NOT NULL,
		overall_score INTEGER,
		grade TEXT,
		docs INTEGER,
		tests INTEGER,
		security INTEGER,
		quality INTEGER,
		ci INTEGER,
		finding_count INTEGER
	);`); err != nil {
		return err
	}
	_, err := s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_health_runs_repo ON health_runs (repo_path, timestamp);`)
	return err
}

// Save inserts a new record.
func (s *SQLiteStore) Save(record domain.HistoryRecord) error {
	if s.db == nil {
		return s.fallback.Save(record)
	}
	ensureID(&record)
	s.mu.Lock()
	defer s.mu.Unlock()
	scores := record.CategoryScores
	_, err := s.db.Exec(`INSERT INTO health_runs
		(id, repo_path, timestamp, overall_score, grade, docs, tests, security, quality, ci, finding_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.RepoPath,
		formatTime(record.Timestamp),
		record.OverallScore,
		record.Grade,
		scores.Docs, scores.Tests, scores.Security, scores.Quality, scores.CI,
		record.FindingCount,
	)
	if err != nil {
		return fmt.Errorf("save health run: %w", err)
	}
	return nil
}

// Records returns runs newest first. An empty repo matches every repository;
// limit <= 0 means no limit.
func (s *SQLiteStore) Records(repo string, limit int) ([]domain.HistoryRecord, error) {
	if s.db == nil {
		return s.fallback.Records(repo, limit)
	}
	builder := strings.Builder{}
	builder.WriteString("SELECT id, repo_path, timestamp, overall_score, grade, docs, tests, security, quality, ci, finding_count FROM health_runs")
	var args []interface{}
	if repo != "" {
		builder.WriteString(" WHERE repo_path = ?")
		args = append(args, repo)
	}
	builder.WriteString(" ORDER BY timestamp DESC, rowid DESC")
	if limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}
	rows, err := s.db.Query(builder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query health runs: %w", err)
	}
	defer rows.Close()
	var records []domain.HistoryRecord
	for rows.Next() {
		var rec domain.HistoryRecord
		var ts string
		sc := &rec.CategoryScores
		if err := rows.Scan(&rec.ID, &rec.RepoPath, &ts, &rec.OverallScore, &rec.Grade,
			&sc.Docs, &sc.Tests, &sc.Security, &sc.Quality, &sc.CI, &rec.FindingCount); err != nil {
			return nil, err
		}
		rec.Timestamp = parseTime(ts)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Latest returns the most recent run for repo, or nil when none exists.
func (s *SQLiteStore) Latest(repo string) (*domain.HistoryRecord, error) {
	records, err := s.Records(repo, 1)
	if err != nil || len(records) == 0 {
		return nil, err
	}
	return &records[0], nil
}

// Prune deletes runs recorded before cutoff and reports how many were removed.
func (s *SQLiteStore) Prune(before time.Time) (int, error) {
	if s.db == nil {
		return s.fallback.Prune(before)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.db.Exec("DELETE FROM health_runs WHERE timestamp < ?", formatTime(before))
	if err != nil {
		return 0, fmt.Errorf("prune health runs: %w", err)
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// Clear deletes all runs.
func (s *SQLiteStore) Clear() error {
	if s.db == nil {
		return s.fallback.Clear()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec("DELETE FROM health_runs")
	return err
}

// ExportJSON writes every run to dest as JSON lines, newest first.
func (s *SQLiteStore) ExportJSON(dest string) error {
	records, err := s.Records("", 0)
	if err != nil {
		return err
	}
	return writeJSONL(dest, records)
}

// Path returns the database path, or the fallback file when degraded.
func (s *SQLiteStore) Path() string {
	if s.db == nil {
		return s.fallback.Path()
	}
	return s.path
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func writeJSONL(dest string, records []domain.HistoryRecord) error {
	file, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, domain.FilePermissions)
	if err != nil {
		return err
	}
	defer file.Close()
	for _, rec := range records {
		b, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		if _, err := file.Write(append(b, '\n')); err != nil {
			return err
		}
	}
	return nil
}

var _ ports.HistoryRepository = (*SQLiteStore)(nil)
