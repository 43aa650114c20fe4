package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/aanand-mishra/students-desk/internal/types"
)

// portfolioView is what the portfolio template sees. About is already
// HTML (converted from Markdown), everything else is escaped by the
// template engine.
type portfolioView struct {
	types.Portfolio
	About template.HTML
}

// Portfolio writes the portfolio page for p to w.
//
// The page carries one <span> per skill and one project block per
// project, both in the order given.
func (r *Renderer) Portfolio(w io.Writer, p types.Portfolio) error {
	view := portfolioView{Portfolio: p}

	if p.About != "" {
		// goldmark escapes raw HTML in the source unless the Unsafe
		// renderer option is set, so its output can be trusted as-is.
		var buf bytes.Buffer
		if err := r.markdown.Convert([]byte(p.About), &buf); err != nil {
			return fmt.Errorf("render: about markdown: %w", err)
		}
		view.About = template.HTML(buf.String())
	}

	if err := r.portfolio.Execute(w, view); err != nil {
		return fmt.Errorf("render: portfolio: %w", err)
	}
	return nil
}
