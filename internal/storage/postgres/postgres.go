// Package postgres implements storage.Storage on top of PostgreSQL,
// through the lib/pq driver.
//
// The table layout is the same as the SQLite one; only the placeholder
// syntax ($1 instead of ?) and the duplicate-key error differ.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aanand-mishra/students-desk/internal/storage"
	"github.com/aanand-mishra/students-desk/internal/types"

	"github.com/lib/pq"
)

// uniqueViolation is the SQLSTATE PostgreSQL reports when a primary key
// or unique constraint is hit.
const uniqueViolation = "23505"

// Postgres is the PostgreSQL implementation of storage.Storage.
type Postgres struct {
	db *sql.DB
}

var _ storage.Storage = (*Postgres)(nil)

// New connects to the server described by dsn and checks it answers.
func New(ctx context.Context, dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: open: %w", err)
	}

	// The console tool issues one statement at a time.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres.New: ping: %w", err)
	}

	return &Postgres{db: db}, nil
}

// CreateSchema creates the students table if it is absent.
func (p *Postgres) CreateSchema(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS students (
			student_id BIGINT PRIMARY KEY,
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

// AddStudent inserts one row, rejecting an existing student_id.
func (p *Postgres) AddStudent(ctx context.Context, student types.Student) error {
	grades, err := types.EncodeGrades(student.Grades)
	if err != nil {
		return fmt.Errorf("AddStudent: encode grades: %w", err)
	}

	_, err = p.db.ExecContext(ctx,
		"INSERT INTO students (student_id, name, age, grades) VALUES ($1, $2, $3, $4)",
		student.ID,
		student.Name,
		student.Age,
		grades,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("AddStudent: id %d: %w", student.ID, storage.ErrDuplicateStudent)
		}
		return fmt.Errorf("AddStudent: exec: %w", err)
	}
	return nil
}

// RemoveStudent deletes the row with the given student_id, if any.
func (p *Postgres) RemoveStudent(ctx context.Context, id int64) (bool, error) {
	result, err := p.db.ExecContext(ctx, "DELETE FROM students WHERE student_id = $1", id)
	if err != nil {
		return false, fmt.Errorf("RemoveStudent: exec: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("RemoveStudent: rows affected: %w", err)
	}
	return n > 0, nil
}

// ListStudents returns every row, in heap order.
func (p *Postgres) ListStudents(ctx context.Context) ([]types.Student, error) {
	rows, err := p.db.QueryContext(ctx, "SELECT student_id, name, age, grades FROM students")
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

// Close closes the connection pool.
func (p *Postgres) Close() error {
	return p.db.Close()
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	return false
}
