package main

import (
	"flag"
	"strings"
	"testing"

	"github.com/aanand-mishra/students-desk/internal/types"
	"github.com/google/subcommands"
)

func TestStudentsMarkdown(t *testing.T) {
	md := studentsMarkdown([]types.Student{
		{ID: 1, Name: "Alice", Age: 20, Grades: []float64{90, 85}},
		{ID: 2, Name: "Pipe|Name", Age: 21},
	})

	for _, want := range []string{
		"| ID | Name | Age | Grades | Average |",
		"| 1 | Alice | 20 | 90, 85 | 87.50 |",
		`| 2 | Pipe\|Name | 21 |  | 0.00 |`,
	} {
		if !strings.Contains(md, want) {
			t.Errorf("expected %q in:\n%s", want, md)
		}
	}

	if empty := studentsMarkdown(nil); !strings.Contains(empty, "_No students yet._") {
		t.Errorf("expected an empty-state line, got:\n%s", empty)
	}
}

func TestIsFlagSet(t *testing.T) {
	c := &addCmd{}
	f := flag.NewFlagSet("add", flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse([]string{"-id", "0", "-name", "Zero"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if !isFlagSet(f, "id") {
		t.Error("expected -id to be reported as set, even with a zero value")
	}
	if isFlagSet(f, "grades") {
		t.Error("expected -grades to be reported as unset")
	}
}

func TestAddCmd_RequiresID(t *testing.T) {
	c := &addCmd{}
	f := flag.NewFlagSet("add", flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse([]string{"-name", "NoID"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	// Returns before any config or storage is touched.
	if got := c.Execute(t.Context(), f); got != subcommands.ExitUsageError {
		t.Errorf("expected ExitUsageError, got %v", got)
	}
}
