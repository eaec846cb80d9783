// Package glyphwalk lets a keyboard steer a generative model through its
// latent space.
//
// # Overview
//
// Every symbol key owns a fixed point in a D-dimensional latent space (D is
// 100 for the bundled model). Pressing a key adds a character slot to the
// document whose glyph is the model's rendering of that point. Holding more
// keys walks the slot towards the mean of their points, so the glyph morphs
// between letters; once it arrives it keeps wandering nearby, which shows the
// keys are still registered.
//
// # Quick Start
//
//	table, _ := glyphwalk.LoadTable(f)
//	eng, err := glyphwalk.NewEngine(table, factory,
//	    glyphwalk.WithTickInterval(50*time.Millisecond),
//	    glyphwalk.WithObserver(func(doc *glyphwalk.Document) { redraw(doc) }),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	go eng.Run(ctx)
//	eng.Send(ctx, glyphwalk.KeyDown('a'))
//
// # Architecture
//
// The package is organized into:
//   - Controller: the key state machine, owner of the held-key set
//   - Stepper: per-tick latent trajectory (converge, then wander)
//   - Document: ordered slots and the cursor
//   - Gateway: lazy single inference session, worker pool, completions
//   - Render/Orient: model frames to RGBA pixmaps
//   - Engine: the single event goroutine tying the above together
//
// # Threading
//
// Controller, Document and Slot are not safe for concurrent use. The Engine
// confines them to the goroutine running [Engine.Run]; inference runs on the
// Gateway's workers and its results come back as [Completion] values that
// are applied on the event goroutine. Results may finish in any order; a
// slot only ever shows its newest one.
package glyphwalk

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0-alpha.1"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0

	// VersionPrerelease is the prerelease identifier
	VersionPrerelease = "alpha.1"
)
