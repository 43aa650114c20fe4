package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/aanand-mishra/students-desk/internal/render"
	"github.com/aanand-mishra/students-desk/internal/types"
	"github.com/charmbracelet/glamour"
)

// studentsMarkdown lays the students out as a Markdown table, the same
// columns as the HTML table.
func studentsMarkdown(students []types.Student) string {
	var b strings.Builder

	fmt.Fprintln(&b, "# Students")
	fmt.Fprintln(&b)

	if len(students) == 0 {
		fmt.Fprintln(&b, "_No students yet._")
		return b.String()
	}

	fmt.Fprintln(&b, "| ID | Name | Age | Grades | Average |")
	fmt.Fprintln(&b, "|---:|:---|---:|:---|---:|")
	for _, s := range students {
		fmt.Fprintf(&b, "| %d | %s | %d | %s | %s |\n",
			s.ID,
			escapeCell(s.Name),
			s.Age,
			types.FormatGrades(s.Grades),
			render.FormatAverage(s.AverageGrade()),
		)
	}
	return b.String()
}

// escapeCell keeps a value from breaking the table layout.
func escapeCell(s string) string {
	return strings.NewReplacer("|", `\|`, "\n", " ").Replace(s)
}

// printMarkdown renders md for the terminal, falling back to the raw
// Markdown when styling fails (e.g. no terminal).
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		fmt.Print(md)
		return
	}

	out, err := r.Render(md)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: cannot style output: %v\n", err)
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
