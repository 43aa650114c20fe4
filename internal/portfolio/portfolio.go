// Package portfolio supplies the Portfolio record to render: either the
// built-in sample or one described in a YAML file.
package portfolio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aanand-mishra/students-desk/internal/types"

	"gopkg.in/yaml.v3"
)

// Sample is the portfolio rendered when no source file is configured.
func Sample() types.Portfolio {
	return types.Portfolio{
		Name:   "Sowmiya",
		Role:   "Python & Web Developer",
		Skills: []string{"Python", "HTML", "CSS", "SQL", "OOP"},
		Projects: []types.Project{
			{Title: "Student Management System", Description: "Python + SQLite + HTML project."},
			{Title: "Landing Page Generator", Description: "Generates a dynamic portfolio landing page."},
		},
		Contact: types.Contact{
			Email:   "sowmiyaofficial1131@gmail.com",
			Profile: "https://www.linkedin.com/in/sowmiya-shivan/",
		},
	}
}

// Load returns the portfolio described by the YAML file at path, or the
// Sample when path is empty. The result is validated either way.
func Load(path string) (types.Portfolio, error) {
	if path == "" {
		p := Sample()
		return p, types.Validate(p)
	}

	f, err := os.Open(path)
	if err != nil {
		return types.Portfolio{}, fmt.Errorf("portfolio: open: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads one YAML portfolio document from r. Unknown keys are an
// error so that typos ("skils:") don't silently drop a section.
func Decode(r io.Reader) (types.Portfolio, error) {
	var p types.Portfolio

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return types.Portfolio{}, errors.New("portfolio: document is empty")
		}
		return types.Portfolio{}, fmt.Errorf("portfolio: decode: %w", err)
	}

	if err := types.Validate(p); err != nil {
		return types.Portfolio{}, fmt.Errorf("portfolio: %w", err)
	}

	return p, nil
}

// Encode writes p as YAML. It is the format Load expects, which makes it
// a convenient starting point for a custom portfolio file.
func Encode(w io.Writer, p types.Portfolio) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("portfolio: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("portfolio: encode: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}
