package render

import (
	"fmt"
	"io"

	"github.com/aanand-mishra/students-desk/internal/types"
)

// studentRow is one <tr> of the students table, pre-formatted.
type studentRow struct {
	ID      int64
	Name    string
	Age     int
	Grades  string
	Average string
}

// Students writes the students table to w, one row per student in the
// order given, with the average grade to two decimals.
//
// Callers pass the store's current contents; nothing is cached here.
func (r *Renderer) Students(w io.Writer, students []types.Student) error {
	rows := make([]studentRow, len(students))
	for i, s := range students {
		rows[i] = studentRow{
			ID:      s.ID,
			Name:    s.Name,
			Age:     s.Age,
			Grades:  types.FormatGrades(s.Grades),
			Average: FormatAverage(s.AverageGrade()),
		}
	}

	if err := r.students.Execute(w, rows); err != nil {
		return fmt.Errorf("render: students: %w", err)
	}
	return nil
}

// FormatAverage formats an average grade with two decimals ("87.50").
func FormatAverage(avg float64) string {
	return fmt.Sprintf("%.2f", avg)
}
