// Package storage defines the Storage interface — a contract that any
// database backend must satisfy to hold Student records.
//
// The menu, the CLI subcommands and the HTML renderer only ever talk to
// this interface. The concrete backends live in sub-packages:
//
//   - storage/sqlite   — a single local file (the default, students.db)
//   - storage/postgres — a PostgreSQL server
package storage

import (
	"context"
	"errors"

	"github.com/aanand-mishra/students-desk/internal/types"
)

// ErrDuplicateStudent is returned (wrapped) by AddStudent when a student
// with the same ID already exists. Check it with errors.Is.
//
// Inserting an existing ID is REJECTED, never merged or overwritten.
var ErrDuplicateStudent = errors.New("student id already exists")

// Storage is the database contract.
//
// A Storage is owned by one goroutine at a time; none of the backends
// add locking of their own.
type Storage interface {
	// CreateSchema creates the students table if it is absent.
	// Calling it more than once is harmless.
	CreateSchema(ctx context.Context) error

	// AddStudent inserts a new row. Grades are stored as comma-joined
	// text (see types.EncodeGrades).
	AddStudent(ctx context.Context, student types.Student) error

	// RemoveStudent deletes the student with the given ID. Removing an
	// unknown ID is not an error; the bool reports whether a row went away.
	RemoveStudent(ctx context.Context, id int64) (bool, error)

	// ListStudents returns every student. The order is whatever the
	// database yields; callers must not depend on it. Returns an empty
	// slice (not nil) if there are no students.
	ListStudents(ctx context.Context) ([]types.Student, error)

	// Close releases the underlying database handle.
	Close() error
}
