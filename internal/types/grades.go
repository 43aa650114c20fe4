package types

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// gradeSeparator joins grades in the persisted "grades" column.
const gradeSeparator = ","

// ErrNonFiniteGrade is returned for NaN and infinite grades, which could
// not be read back from the grades column.
var ErrNonFiniteGrade = errors.New("grade is not a finite number")

func isFinite(g float64) bool {
	return !math.IsNaN(g) && !math.IsInf(g, 0)
}

// EncodeGrades serialises grades as a comma-joined string.
//
// strconv.FormatFloat with precision -1 produces the SHORTEST decimal
// string that parses back to exactly the same float64, and it never uses
// a locale-specific decimal separator. That makes the encoding lossless:
//
//	ParseGrades(EncodeGrades(g)) == g
//
// NaN and infinities are rejected with ErrNonFiniteGrade.
func EncodeGrades(grades []float64) (string, error) {
	parts := make([]string, len(grades))
	for i, g := range grades {
		if !isFinite(g) {
			return "", fmt.Errorf("grade %d (%v): %w", i+1, g, ErrNonFiniteGrade)
		}
		parts[i] = strconv.FormatFloat(g, 'f', -1, 64)
	}
	return strings.Join(parts, gradeSeparator), nil
}

// ParseGrades is the inverse of EncodeGrades. It is also used for user
// input, so blanks around each value are tolerated ("90, 85.5").
// An empty (or all-blank) string yields an empty, non-nil slice.
func ParseGrades(s string) ([]float64, error) {
	grades := make([]float64, 0)
	if strings.TrimSpace(s) == "" {
		return grades, nil
	}

	for _, part := range strings.Split(s, gradeSeparator) {
		g, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid grade %q: %w", part, err)
		}
		if !isFinite(g) {
			return nil, fmt.Errorf("invalid grade %q: %w", part, ErrNonFiniteGrade)
		}
		grades = append(grades, g)
	}

	return grades, nil
}

// FormatGrades renders grades for humans, e.g. "90, 85.5".
func FormatGrades(grades []float64) string {
	parts := make([]string, len(grades))
	for i, g := range grades {
		parts[i] = strconv.FormatFloat(g, 'f', -1, 64)
	}
	return strings.Join(parts, ", ")
}
