// Package app wires the student store to the HTML renderer. Both the
// interactive menu and the one-shot CLI subcommands go through a Service,
// so they share validation, logging and the "always read from the store
// before rendering" rule.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aanand-mishra/students-desk/internal/render"
	"github.com/aanand-mishra/students-desk/internal/storage"
	"github.com/aanand-mishra/students-desk/internal/types"
)

// ErrInvalidInput marks errors caused by what the user typed (a bad
// number, a missing name). Callers can report them and carry on.
var ErrInvalidInput = errors.New("invalid input")

// Service owns nothing: the store and renderer are created by main and
// handed in, and main closes the store.
type Service struct {
	store        storage.Storage
	renderer     *render.Renderer
	studentsPath string
	log          *slog.Logger
}

// NewService returns a Service that writes the students table to
// studentsPath.
func NewService(store storage.Storage, renderer *render.Renderer, studentsPath string, log *slog.Logger) *Service {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		store:        store,
		renderer:     renderer,
		studentsPath: studentsPath,
		log:          log,
	}
}

// StudentsPath is where WriteStudentsHTML writes.
func (s *Service) StudentsPath() string {
	return s.studentsPath
}

// AddStudent validates student and inserts it. A duplicate ID comes back
// wrapping storage.ErrDuplicateStudent.
func (s *Service) AddStudent(ctx context.Context, student types.Student) error {
	if err := types.Validate(student); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.store.AddStudent(ctx, student); err != nil {
		s.log.Error("error adding student",
			slog.Int64("id", student.ID),
			slog.String("error", err.Error()))
		return err
	}

	s.log.Info("student added", slog.Int64("id", student.ID))
	return nil
}

// RemoveStudent deletes a student; removing an unknown ID is not an error.
func (s *Service) RemoveStudent(ctx context.Context, id int64) (bool, error) {
	removed, err := s.store.RemoveStudent(ctx, id)
	if err != nil {
		s.log.Error("error removing student",
			slog.Int64("id", id),
			slog.String("error", err.Error()))
		return false, err
	}

	s.log.Info("student removed", slog.Int64("id", id), slog.Bool("found", removed))
	return removed, nil
}

// Students returns the current contents of the store.
func (s *Service) Students(ctx context.Context) ([]types.Student, error) {
	students, err := s.store.ListStudents(ctx)
	if err != nil {
		s.log.Error("error listing students", slog.String("error", err.Error()))
		return nil, err
	}
	return students, nil
}

// WriteStudentsHTML reads every student from the store and overwrites the
// students table file with them.
func (s *Service) WriteStudentsHTML(ctx context.Context) error {
	students, err := s.Students(ctx)
	if err != nil {
		return err
	}

	err = render.WriteFile(s.studentsPath, func(w io.Writer) error {
		return s.renderer.Students(w, students)
	})
	if err != nil {
		s.log.Error("error writing students table",
			slog.String("path", s.studentsPath),
			slog.String("error", err.Error()))
		return err
	}

	s.log.Info("students table written",
		slog.String("path", s.studentsPath),
		slog.Int("students", len(students)))
	return nil
}
