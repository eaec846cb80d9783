// Command glyphdemo replays a key script through the glyphwalk controller
// and saves the resulting strip of glyphs as a PNG.
//
//	glyphdemo -script "a+ t*12 b+ t*20 a- b- _ c+ t*4 c-" -output walk.png
//
// Inference runs on a seeded stand-in generator, so the same flags always
// produce the same image.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"github.com/gogpu/glyphwalk"
	"github.com/gogpu/glyphwalk/generator/mock"
	"github.com/gogpu/glyphwalk/surface"
)

const drainTimeout = 10 * time.Second

func main() {
	var (
		script  = flag.String("script", "a+ t*12 b+ t*20 a- b- _ c+ t*4 c-", "key script")
		output  = flag.String("output", "glyphdemo.png", "output file")
		seed    = flag.Uint64("seed", 1, "seed for the table, generator and wander")
		dim     = flag.Int("dim", glyphwalk.DefaultDim, "latent dimension of the seeded table")
		table   = flag.String("table", "", "JSON address table (default: seeded table)")
		cell    = flag.Int("cell", surface.DefaultCellSize, "cell size in pixels")
		step    = flag.Float64("step", glyphwalk.DefaultStepSize, "per-axis step size")
		verbose = flag.Bool("v", false, "log engine activity to stderr")
	)
	flag.Parse()

	if *verbose {
		glyphwalk.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	steps, err := parseScript(*script)
	if err != nil {
		log.Fatalf("Failed to parse script: %v", err)
	}

	tbl, err := loadTable(*table, *seed, *dim)
	if err != nil {
		log.Fatalf("Failed to load table: %v", err)
	}

	doc, err := replay(steps, tbl, *seed, *step)
	if err != nil {
		log.Fatalf("Failed to replay: %v", err)
	}

	strip, err := surface.NewStrip(surface.WithCellSize(*cell), surface.WithWorkers(4))
	if err != nil {
		log.Fatalf("Failed to create strip: %v", err)
	}
	defer strip.Close()

	if err := strip.SavePNG(doc, *output); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	log.Printf("Strip %q saved to %s (%d slots)\n", doc.Text(), *output, doc.Len())
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

// replay drives a controller through steps on a simulated clock. After each
// step it waits for every outstanding request, so the result does not
// depend on inference timing.
func replay(steps []step, tbl glyphwalk.AddressTable, seed uint64, incr float64) (*glyphwalk.Document, error) {
	gw, err := glyphwalk.NewGateway(mock.Session(mock.NewProjection(tbl.Dim(), seed, 0)))
	if err != nil {
		return nil, err
	}
	defer gw.Close()

	ctrl, err := glyphwalk.NewController(tbl, gw,
		glyphwalk.WithStepSize(incr),
		glyphwalk.WithRand(rand.New(rand.NewPCG(seed, seed))),
	)
	if err != nil {
		return nil, err
	}

	now := time.Unix(0, 0)
	for _, st := range steps {
		if st.ticks == 0 {
			ctrl.Handle(st.event)
		}
		for range st.ticks {
			now = now.Add(glyphwalk.DefaultTickInterval)
			ctrl.Tick(now)
			if err := drain(ctrl, gw); err != nil {
				return nil, err
			}
		}
		if err := drain(ctrl, gw); err != nil {
			return nil, err
		}
	}
	return ctrl.Snapshot(), nil
}

func drain(ctrl *glyphwalk.Controller, gw *glyphwalk.Gateway) error {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	for ctrl.Outstanding() > 0 {
		select {
		case c := <-gw.Completions():
			if c.Err != nil {
				return fmt.Errorf("slot %s: %w", c.Slot, c.Err)
			}
			ctrl.Apply(c)
		case <-ctx.Done():
			return fmt.Errorf("waiting for inference: %w", ctx.Err())
		}
	}
	return nil
}
