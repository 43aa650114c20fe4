package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/aanand-mishra/students-desk/internal/app"
	"github.com/aanand-mishra/students-desk/internal/menu"
	"github.com/aanand-mishra/students-desk/internal/types"
	"github.com/google/subcommands"
)

// menuCmd runs the interactive numbered menu on stdin/stdout.
type menuCmd struct{}

func (*menuCmd) Name() string     { return "menu" }
func (*menuCmd) Synopsis() string { return "interactive student management menu (default)" }
func (*menuCmd) Usage() string {
	return `students [menu]

  Opens the numbered menu: add, remove, generate HTML, list, exit.
`
}
func (*menuCmd) SetFlags(*flag.FlagSet) {}

func (*menuCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, closeFn, err := openService(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closeFn()

	if err := menu.New(svc, os.Stdin, os.Stdout).Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// addCmd inserts one student without going through the menu.
type addCmd struct {
	id     int64
	name   string
	age    int
	grades string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add a student" }
func (*addCmd) Usage() string {
	return `students add -id <id> -name <name> -age <age> [-grades 90,85.5]

  Adds a student. Fails if the id is already taken.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.id, "id", 0, "Student ID (required, must be unused)")
	f.StringVar(&c.name, "name", "", "Student name (required)")
	f.IntVar(&c.age, "age", 0, "Student age")
	f.StringVar(&c.grades, "grades", "", "Comma-separated grades, e.g. 90,85.5")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !isFlagSet(f, "id") {
		fmt.Fprintln(os.Stderr, "Error: -id is required")
		return subcommands.ExitUsageError
	}

	grades, err := types.ParseGrades(c.grades)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	svc, closeFn, err := openService(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closeFn()

	student := types.Student{ID: c.id, Name: strings.TrimSpace(c.name), Age: c.age, Grades: grades}
	if err := svc.AddStudent(ctx, student); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, app.ErrInvalidInput) {
			return subcommands.ExitUsageError
		}
		return subcommands.ExitFailure
	}

	fmt.Printf("Student %s added successfully.\n", student.Name)
	return subcommands.ExitSuccess
}

// removeCmd deletes one student by id.
type removeCmd struct {
	id int64
}

func (*removeCmd) Name() string     { return "remove" }
func (*removeCmd) Synopsis() string { return "remove a student" }
func (*removeCmd) Usage() string {
	return `students remove -id <id>

  Removes the student with that id. Unknown ids are not an error.
`
}

func (c *removeCmd) SetFlags(f *flag.FlagSet) {
	f.Int64Var(&c.id, "id", 0, "Student ID (required)")
}

func (c *removeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !isFlagSet(f, "id") {
		fmt.Fprintln(os.Stderr, "Error: -id is required")
		return subcommands.ExitUsageError
	}

	svc, closeFn, err := openService(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closeFn()

	removed, err := svc.RemoveStudent(ctx, c.id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if removed {
		fmt.Printf("Student with ID %d removed successfully.\n", c.id)
	} else {
		fmt.Printf("No student with ID %d.\n", c.id)
	}
	return subcommands.ExitSuccess
}

// listCmd prints every student, as a terminal-styled table by default.
type listCmd struct {
	plain bool
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "show students in the console" }
func (*listCmd) Usage() string {
	return `students list [-plain]

  Prints all students with their average grade.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.plain, "plain", false, "One line per student instead of a table")
}

func (c *listCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, closeFn, err := openService(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closeFn()

	students, err := svc.Students(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.plain {
		for _, s := range students {
			fmt.Println(menu.FormatLine(s))
		}
		return subcommands.ExitSuccess
	}

	printMarkdown(studentsMarkdown(students))
	return subcommands.ExitSuccess
}

// renderCmd regenerates the students HTML table.
type renderCmd struct{}

func (*renderCmd) Name() string     { return "render" }
func (*renderCmd) Synopsis() string { return "regenerate the students HTML table" }
func (*renderCmd) Usage() string {
	return `students render

  Writes every stored student to the configured HTML file (students.html by default).
`
}
func (*renderCmd) SetFlags(*flag.FlagSet) {}

func (*renderCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, closeFn, err := openService(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closeFn()

	if err := svc.WriteStudentsHTML(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("HTML file updated: %s\n", svc.StudentsPath())
	return subcommands.ExitSuccess
}

// isFlagSet reports whether name was given explicitly on the command line.
func isFlagSet(f *flag.FlagSet, name string) bool {
	found := false
	f.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			found = true
		}
	})
	return found
}
