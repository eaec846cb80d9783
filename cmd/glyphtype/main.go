// Command glyphtype is an interactive terminal front end for glyphwalk.
//
// Hold a letter or digit to grow a glyph; hold a second key to blend the
// two. Space inserts a blank, backspace deletes, arrows move the caret.
// Terminals report key presses but not releases, so a key counts as
// released once its auto-repeat has been quiet for -hold.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gogpu/glyphwalk"
	"github.com/gogpu/glyphwalk/generator/mock"
)

func main() {
	var (
		seed    = flag.Uint64("seed", 1, "seed for the table and generator")
		dim     = flag.Int("dim", glyphwalk.DefaultDim, "latent dimension of the seeded table")
		table   = flag.String("table", "", "JSON address table (default: seeded table)")
		hold    = flag.Duration("hold", 600*time.Millisecond, "release a key after this long without a repeat")
		latency = flag.Duration("latency", 20*time.Millisecond, "simulated inference latency")
		step    = flag.Float64("step", glyphwalk.DefaultStepSize, "per-axis step size")
		logFile = flag.String("log", "", "write engine logs to this file")
	)
	flag.Parse()

	if *logFile != "" {
		f, err := os.Create(*logFile) //nolint:gosec // path is a command line argument
		if err != nil {
			log.Fatalf("Failed to open log: %v", err)
		}
		defer f.Close()
		glyphwalk.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	tbl, err := loadTable(*table, *seed, *dim)
	if err != nil {
		log.Fatalf("Failed to load table: %v", err)
	}

	var p *tea.Program
	eng, err := glyphwalk.NewEngine(tbl,
		mock.Session(mock.NewProjection(tbl.Dim(), *seed, *latency)),
		glyphwalk.WithStepSize(*step),
		glyphwalk.WithObserver(func(d *glyphwalk.Document) { p.Send(docMsg{doc: d}) }),
	)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p = tea.NewProgram(newModel(ctx, eng, *hold), tea.WithAltScreen(), tea.WithContext(ctx))

	done := make(chan error, 1)
	go func() { done <- eng.Run(ctx) }()

	if _, err := p.Run(); err != nil {
		log.Printf("glyphtype: %v", err)
	}
	cancel()
	if err := <-done; err != nil {
		log.Printf("glyphtype: engine: %v", err)
	}
}

func loadTable(path string, seed uint64, dim int) (glyphwalk.AddressTable, error) {
	if path == "" {
		return mock.DefaultTable(seed, dim), nil
	}
	f, err := os.Open(path) //nolint:gosec // path is a command line argument
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return glyphwalk.LoadTable(f)
}
