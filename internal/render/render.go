// Package render turns Portfolio and Student records into self-contained
// HTML documents.
//
// Both documents are produced from html/template sources. The defaults
// are embedded in the binary; either one can be replaced at construction
// time, which is how tests and custom deployments avoid the built-in
// styling. Rendering never consults the clock, so identical input always
// gives byte-identical output.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"github.com/yuin/goldmark"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	portfolioTemplate = "templates/portfolio.html"
	studentsTemplate  = "templates/students.html"
)

// Renderer holds the parsed templates. It is safe to reuse for any
// number of renders.
type Renderer struct {
	portfolio *template.Template
	students  *template.Template
	markdown  goldmark.Markdown
}

// Option customises a Renderer.
type Option func(*options)

type options struct {
	portfolioSrc string
	studentsSrc  string
}

// WithPortfolioTemplate replaces the embedded portfolio template.
func WithPortfolioTemplate(src string) Option {
	return func(o *options) { o.portfolioSrc = src }
}

// WithStudentsTemplate replaces the embedded students table template.
func WithStudentsTemplate(src string) Option {
	return func(o *options) { o.studentsSrc = src }
}

// New parses the templates and returns a Renderer.
func New(opts ...Option) (*Renderer, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	portfolio, err := parse("portfolio", o.portfolioSrc, portfolioTemplate)
	if err != nil {
		return nil, err
	}
	students, err := parse("students", o.studentsSrc, studentsTemplate)
	if err != nil {
		return nil, err
	}

	return &Renderer{
		portfolio: portfolio,
		students:  students,
		markdown:  goldmark.New(),
	}, nil
}

// FromFiles builds a Renderer whose templates are read from the given
// paths. An empty path keeps the embedded default.
func FromFiles(portfolioPath, studentsPath string) (*Renderer, error) {
	var opts []Option

	if portfolioPath != "" {
		src, err := os.ReadFile(portfolioPath)
		if err != nil {
			return nil, fmt.Errorf("render: read portfolio template: %w", err)
		}
		opts = append(opts, WithPortfolioTemplate(string(src)))
	}
	if studentsPath != "" {
		src, err := os.ReadFile(studentsPath)
		if err != nil {
			return nil, fmt.Errorf("render: read students template: %w", err)
		}
		opts = append(opts, WithStudentsTemplate(string(src)))
	}

	return New(opts...)
}

func parse(name, src, embedded string) (*template.Template, error) {
	if src == "" {
		b, err := templatesFS.ReadFile(embedded)
		if err != nil {
			return nil, fmt.Errorf("render: read %s: %w", embedded, err)
		}
		src = string(b)
	}

	tmpl, err := template.New(name).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("render: parse %s template: %w", name, err)
	}
	return tmpl, nil
}

// WriteFile renders into memory first and then replaces the file at path
// in one write, so a template error never leaves a half-written document.
// Parent directories are created as needed.
func WriteFile(path string, render func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("render: create dir: %w", err)
		}
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("render: write %s: %w", path, err)
	}
	return nil
}
