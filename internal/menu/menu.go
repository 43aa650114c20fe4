// Package menu is the interactive numbered console menu of the students
// tool.
//
// It is a plain synchronous dispatcher: print the menu, read one line,
// run the chosen command to completion, repeat. Nothing happens in the
// background between prompts.
//
// Error policy:
//
//   - Bad input (non-numeric id/age/grade, missing name) and duplicate
//     ids are printed and the loop continues with the store unchanged.
//   - Any other storage or filesystem error ends Run with that error.
//   - End of input behaves like choosing "Exit".
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aanand-mishra/students-desk/internal/app"
	"github.com/aanand-mishra/students-desk/internal/render"
	"github.com/aanand-mishra/students-desk/internal/storage"
	"github.com/aanand-mishra/students-desk/internal/types"
)

const banner = `
--- Student Management System (SQL) ---
1. Add Student
2. Remove Student
3. Generate HTML
4. Show Students in Console
5. Exit
`

// errExit ends the loop normally.
var errExit = errors.New("exit")

// Menu reads choices from in and writes prompts and results to out.
type Menu struct {
	svc *app.Service
	in  *bufio.Reader
	out io.Writer
}

// New returns a Menu driving svc.
func New(svc *app.Service, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		svc: svc,
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Run loops until the user exits, input ends, ctx is cancelled, or a
// command fails with an error that is not the user's fault.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(m.out, banner)
		choice, err := m.prompt("Enter your choice: ")
		if err != nil {
			return m.finish(err)
		}

		err = m.dispatch(ctx, strings.TrimSpace(choice))
		switch {
		case err == nil:
		case errors.Is(err, errExit), errors.Is(err, io.EOF):
			return m.finish(err)
		case errors.Is(err, app.ErrInvalidInput), errors.Is(err, storage.ErrDuplicateStudent):
			fmt.Fprintf(m.out, "Error: %v\n", err)
		default:
			return err
		}
	}
}

func (m *Menu) finish(err error) error {
	if errors.Is(err, errExit) || errors.Is(err, io.EOF) {
		fmt.Fprintln(m.out, "Exiting system...")
		return nil
	}
	return err
}

func (m *Menu) dispatch(ctx context.Context, choice string) error {
	switch choice {
	case "1":
		return m.add(ctx)
	case "2":
		return m.remove(ctx)
	case "3":
		return m.generate(ctx)
	case "4":
		return m.list(ctx)
	case "5":
		return errExit
	default:
		fmt.Fprintln(m.out, "Invalid choice! Please try again.")
		return nil
	}
}

func (m *Menu) add(ctx context.Context) error {
	id, err := m.promptInt("Enter Student ID: ", 64)
	if err != nil {
		return err
	}
	name, err := m.prompt("Enter Name: ")
	if err != nil {
		return err
	}
	age, err := m.promptInt("Enter Age: ", 32)
	if err != nil {
		return err
	}
	raw, err := m.prompt("Enter grades separated by commas: ")
	if err != nil {
		return err
	}
	grades, err := types.ParseGrades(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", app.ErrInvalidInput, err)
	}

	student := types.Student{
		ID:     id,
		Name:   strings.TrimSpace(name),
		Age:    int(age),
		Grades: grades,
	}
	if err := m.svc.AddStudent(ctx, student); err != nil {
		return err
	}

	fmt.Fprintf(m.out, "Student %s added successfully.\n", student.Name)
	return nil
}

func (m *Menu) remove(ctx context.Context) error {
	id, err := m.promptInt("Enter Student ID to remove: ", 64)
	if err != nil {
		return err
	}

	removed, err := m.svc.RemoveStudent(ctx, id)
	if err != nil {
		return err
	}

	if removed {
		fmt.Fprintf(m.out, "Student with ID %d removed successfully.\n", id)
	} else {
		fmt.Fprintf(m.out, "No student with ID %d.\n", id)
	}
	return nil
}

func (m *Menu) generate(ctx context.Context) error {
	if err := m.svc.WriteStudentsHTML(ctx); err != nil {
		return err
	}

	path := m.svc.StudentsPath()
	fmt.Fprintf(m.out, "HTML file updated: %s\n", path)
	fmt.Fprintf(m.out, "Open '%s' in your browser to view students.\n", path)
	return nil
}

func (m *Menu) list(ctx context.Context) error {
	students, err := m.svc.Students(ctx)
	if err != nil {
		return err
	}

	if len(students) == 0 {
		fmt.Fprintln(m.out, "No students yet.")
		return nil
	}
	for _, s := range students {
		fmt.Fprintln(m.out, FormatLine(s))
	}
	return nil
}

// FormatLine is the console form of one student:
//
//	1 - Alice - Age: 20 - Grades: [90, 85] - Avg: 87.50
func FormatLine(s types.Student) string {
	return fmt.Sprintf("%d - %s - Age: %d - Grades: [%s] - Avg: %s",
		s.ID, s.Name, s.Age, types.FormatGrades(s.Grades), render.FormatAverage(s.AverageGrade()))
}

// prompt prints label and returns the next input line without its line
// ending. Lines have no length limit. io.EOF means the input is exhausted.
func (m *Menu) prompt(label string) (string, error) {
	fmt.Fprint(m.out, label)
	line, err := m.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("menu: read input: %w", err)
		}
		if line == "" {
			return "", io.EOF
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// promptInt reads a whole number that fits in bitSize bits.
func (m *Menu) promptInt(label string, bitSize int) (int64, error) {
	line, err := m.prompt(label)
	if err != nil {
		return 0, err
	}

	text := strings.TrimSpace(line)
	n, err := strconv.ParseInt(text, 10, bitSize)
	if errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("%w: %q is out of range", app.ErrInvalidInput, text)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a whole number", app.ErrInvalidInput, text)
	}
	return n, nil
}
