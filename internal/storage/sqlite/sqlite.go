// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// SQLite stores everything in a single file on disk. There is no
// network, no separate server process, and no installation beyond the
// driver, which matches a one-user console tool.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aanand-mishra/students-desk/internal/storage"
	"github.com/aanand-mishra/students-desk/internal/types"

	"github.com/mattn/go-sqlite3"
)

// SQLite is the concrete implementation of storage.Storage.
// It holds a *sql.DB, the one handle the process keeps open for its
// whole lifetime.
type SQLite struct {
	Db *sql.DB
}

// compile-time check that *SQLite satisfies the interface.
var _ storage.Storage = (*SQLite)(nil)

// New opens the SQLite database at path (creating the parent directory
// when needed) and returns a ready-to-use *SQLite. The table itself is
// created by CreateSchema.
func New(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite.New: create dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open: %w", err)
	}

	// SQLite allows a single writer. One connection keeps every statement
	// on the same handle, in program order.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: ping: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// CreateSchema creates the students table if it does not already exist.
//
// student_id is an INTEGER PRIMARY KEY but is always supplied by the
// caller — there is no AUTOINCREMENT.
func (s *SQLite) CreateSchema(ctx context.Context) error {
	_, err := s.Db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS students (
			student_id INTEGER PRIMARY KEY,
			name       TEXT,
			age        INTEGER,
			grades     TEXT
		)
	`)
	if err != nil {
		return fmt.Errorf("CreateSchema: exec: %w", err)
	}
	return nil
}

// AddStudent inserts one row. Placeholders (?) keep the values out of
// the SQL text, so names containing quotes are stored as-is.
func (s *SQLite) AddStudent(ctx context.Context, student types.Student) error {
	grades, err := types.EncodeGrades(student.Grades)
	if err != nil {
		return fmt.Errorf("AddStudent: encode grades: %w", err)
	}

	stmt, err := s.Db.PrepareContext(ctx,
		"INSERT INTO students (student_id, name, age, grades) VALUES (?, ?, ?, ?)",
	)
	if err != nil {
		return fmt.Errorf("AddStudent: prepare: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.ExecContext(ctx,
		student.ID,
		student.Name,
		student.Age,
		grades,
	)
	if err != nil {
		if isPrimaryKeyViolation(err) {
			return fmt.Errorf("AddStudent: id %d: %w", student.ID, storage.ErrDuplicateStudent)
		}
		return fmt.Errorf("AddStudent: exec: %w", err)
	}

	return nil
}

// RemoveStudent deletes a student row by primary key.
func (s *SQLite) RemoveStudent(ctx context.Context, id int64) (bool, error) {
	stmt, err := s.Db.PrepareContext(ctx, "DELETE FROM students WHERE student_id = ?")
	if err != nil {
		return false, fmt.Errorf("RemoveStudent: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, id)
	if err != nil {
		return false, fmt.Errorf("RemoveStudent: exec: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("RemoveStudent: rows affected: %w", err)
	}

	return n > 0, nil
}

// ListStudents returns all student rows as a slice.
//
// There is deliberately no ORDER BY: rows come back in whatever order
// SQLite walks the table.
func (s *SQLite) ListStudents(ctx context.Context) ([]types.Student, error) {
	// Explicitly list columns — never SELECT *; Scan order depends on it.
	rows, err := s.Db.QueryContext(ctx, "SELECT student_id, name, age, grades FROM students")
	if err != nil {
		return nil, fmt.Errorf("ListStudents: query: %w", err)
	}
	defer rows.Close()

	students := make([]types.Student, 0)

	for rows.Next() {
		var (
			student types.Student
			name    sql.NullString
			age     sql.NullInt64
			grades  sql.NullString
		)

		// The columns are nullable in the schema, so scan through Null*
		// types and fall back to zero values.
		if err := rows.Scan(&student.ID, &name, &age, &grades); err != nil {
			return nil, fmt.Errorf("ListStudents: scan row: %w", err)
		}

		student.Name = name.String
		student.Age = int(age.Int64)
		student.Grades, err = types.ParseGrades(grades.String)
		if err != nil {
			return nil, fmt.Errorf("ListStudents: student %d: %w", student.ID, err)
		}

		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListStudents: rows iteration: %w", err)
	}

	return students, nil
}

// Close closes the database handle.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// isPrimaryKeyViolation reports whether err is SQLite's
// "UNIQUE constraint failed" on the primary key.
func isPrimaryKeyViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}
