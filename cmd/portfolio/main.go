// main is the entry point of the portfolio page generator.
//
// It loads a Portfolio (the built-in sample, or the YAML file named by
// portfolio.source / -in), renders it to a single self-contained HTML page
// and exits. Nothing is persisted besides the page itself.
//
// RUNNING:
//
//	go run ./cmd/portfolio
//	go run ./cmd/portfolio -config=config/local.yaml
//	go run ./cmd/portfolio -in me.yaml -o public/index.html
//	go run ./cmd/portfolio -dump > me.yaml   # start a custom portfolio file
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aanand-mishra/students-desk/internal/config"
	"github.com/aanand-mishra/students-desk/internal/logger"
	"github.com/aanand-mishra/students-desk/internal/portfolio"
	"github.com/aanand-mishra/students-desk/internal/render"
	"github.com/aanand-mishra/students-desk/internal/types"
)

var (
	inFlag   = flag.String("in", "", "Portfolio YAML file (overrides portfolio.source)")
	outFlag  = flag.String("o", "", "Output HTML file (overrides output.portfolio)")
	dumpFlag = flag.Bool("dump", false, "Print the portfolio as YAML instead of rendering it")
)

func main() {
	flag.Parse()

	cfg := config.MustLoad()
	log := logger.Setup(cfg.Env, os.Stderr)

	if *inFlag != "" {
		cfg.Portfolio.Source = *inFlag
	}
	if *outFlag != "" {
		cfg.Output.Portfolio = *outFlag
	}

	if *dumpFlag {
		p, err := portfolio.Load(cfg.Portfolio.Source)
		if err == nil {
			err = portfolio.Encode(os.Stdout, p)
		}
		if err != nil {
			log.Error("failed to dump portfolio", slog.String("error", err.Error()))
			os.Exit(1)
		}
		return
	}

	if err := run(cfg, log); err != nil {
		log.Error("failed to generate portfolio", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Printf("Portfolio landing page generated: %s\n", cfg.Output.Portfolio)
}

// run loads, renders and writes the portfolio page described by cfg.
func run(cfg *config.Config, log *slog.Logger) error {
	p, err := portfolio.Load(cfg.Portfolio.Source)
	if err != nil {
		return err
	}
	log.Debug("portfolio loaded",
		slog.String("name", p.Name),
		slog.Int("skills", len(p.Skills)),
		slog.Int("projects", len(p.Projects)))

	renderer, err := render.FromFiles(cfg.Templates.Portfolio, "")
	if err != nil {
		return err
	}

	return writePortfolio(renderer, p, cfg.Output.Portfolio)
}

func writePortfolio(r *render.Renderer, p types.Portfolio, path string) error {
	return render.WriteFile(path, func(w io.Writer) error {
		return r.Portfolio(w, p)
	})
}
