package store

import (
	"context"
	"database/sql"
	"errors"
	_ "embed"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/amadrinan/quiz/internal/quiz"
)

//go:embed schema.sql
var schemaSQL string

// SQLite is a record store backed by a SQLite database.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode (balance durability/performance)
//   - 5-second busy timeout for lock contention
//
// SQLite only supports one writer at a time, so the connection pool is
// pinned to a single connection; that also serializes mutating calls from
// concurrent sessions without an extra lock.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite creates or opens a SQLite database at the given path.
// An empty questions table is seeded with the default record set.
// This function is idempotent - safe to call multiple times.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Single writer to avoid SQLITE_BUSY errors
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.seedIfEmpty(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

func (s *SQLite) seedIfEmpty() error {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM questions").Scan(&count); err != nil {
		return fmt.Errorf("count questions: %w", err)
	}
	if count > 0 {
		return nil
	}
	for _, r := range quiz.Seed() {
		if _, err := s.db.Exec(
			"INSERT INTO questions (question, answer) VALUES (?, ?)",
			r.Question, r.Answer,
		); err != nil {
			return fmt.Errorf("seed questions: %w", err)
		}
	}
	return nil
}

func (s *SQLite) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM questions").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return count, nil
}

func (s *SQLite) GetAll(ctx context.Context) ([]quiz.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, question, answer FROM questions ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	var records []quiz.Record
	for rows.Next() {
		var r quiz.Record
		if err := rows.Scan(&r.ID, &r.Question, &r.Answer); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *SQLite) GetByID(ctx context.Context, id int) (quiz.Record, error) {
	var r quiz.Record
	err := s.db.QueryRowContext(ctx,
		"SELECT id, question, answer FROM questions WHERE id = ?", id).
		Scan(&r.ID, &r.Question, &r.Answer)
	if errors.Is(err, sql.ErrNoRows) {
		return quiz.Record{}, quiz.NotFoundError(id)
	}
	if err != nil {
		return quiz.Record{}, fmt.Errorf("get question %d: %w", id, err)
	}
	return r, nil
}

func (s *SQLite) Create(ctx context.Context, question, answer string) (quiz.Record, error) {
	question = strings.TrimSpace(question)
	answer = strings.TrimSpace(answer)
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO questions (question, answer) VALUES (?, ?)", question, answer)
	if err != nil {
		return quiz.Record{}, fmt.Errorf("insert question: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return quiz.Record{}, fmt.Errorf("insert question: %w", err)
	}
	return quiz.Record{ID: int(id), Question: question, Answer: answer}, nil
}

func (s *SQLite) Update(ctx context.Context, id int, question, answer string) (quiz.Record, error) {
	question = strings.TrimSpace(question)
	answer = strings.TrimSpace(answer)
	res, err := s.db.ExecContext(ctx,
		"UPDATE questions SET question = ?, answer = ? WHERE id = ?",
		question, answer, id)
	if err != nil {
		return quiz.Record{}, fmt.Errorf("update question %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return quiz.Record{}, fmt.Errorf("update question %d: %w", id, err)
	}
	if n == 0 {
		return quiz.Record{}, quiz.NotFoundError(id)
	}
	return quiz.Record{ID: id, Question: question, Answer: answer}, nil
}

func (s *SQLite) Delete(ctx context.Context, id int) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM questions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete question %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete question %d: %w", id, err)
	}
	if n == 0 {
		return quiz.NotFoundError(id)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
