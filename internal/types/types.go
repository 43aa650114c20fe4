// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// the store, the renderer and the menu can all import types without
// depending on each other.
package types

// Student represents a student record in our system.
//
// Struct tags serve three purposes:
//
//  1. json:"..."  — controls how the field appears when encoded to JSON.
//  2. yaml:"..."  — same, for YAML fixtures.
//  3. validate:"..." — rules checked by the go-playground/validator
//     package before a record reaches the store.
//
// The ID is supplied by the caller, it is NOT generated by the database.
// Age is capped at the range of the INTEGER column (int32 on PostgreSQL).
type Student struct {
	ID     int64     `json:"student_id" yaml:"student_id"`
	Name   string    `json:"name"       yaml:"name"   validate:"required"`
	Age    int       `json:"age"        yaml:"age"    validate:"gte=0,lte=2147483647"`
	Grades []float64 `json:"grades"     yaml:"grades" validate:"dive,finite"`
}

// AverageGrade returns the arithmetic mean of the grades,
// or exactly 0 when the student has no grades.
func (s Student) AverageGrade() float64 {
	if len(s.Grades) == 0 {
		return 0
	}

	var sum float64
	for _, g := range s.Grades {
		sum += g
	}
	return sum / float64(len(s.Grades))
}

// Project is one entry of the "Projects" section of a portfolio.
type Project struct {
	Title       string `json:"title"       yaml:"title"       validate:"required"`
	Description string `json:"description" yaml:"description"`
}

// Contact holds the ways to reach the portfolio owner.
type Contact struct {
	Email   string `json:"email"   yaml:"email"   validate:"required,email"`
	Profile string `json:"profile" yaml:"profile" validate:"required,url"`
}

// Portfolio is the static personal profile rendered to portfolio.html.
// It is built once, rendered once and then discarded.
type Portfolio struct {
	Name     string    `json:"name"     yaml:"name"     validate:"required"`
	Role     string    `json:"role"     yaml:"role"     validate:"required"`
	About    string    `json:"about"    yaml:"about"` // Markdown
	Skills   []string  `json:"skills"   yaml:"skills"   validate:"dive,required"`
	Projects []Project `json:"projects" yaml:"projects" validate:"dive"`
	Contact  Contact   `json:"contact"  yaml:"contact"`
}
