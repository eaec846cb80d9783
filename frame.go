package glyphwalk

// Frame geometry of the bundled generator.
const (
	FrameWidth  = 28
	FrameHeight = 28
	FrameSize   = FrameWidth * FrameHeight

	// InputLabel names the generator's latent input tensor, shape [1, D].
	InputLabel = "z"
	// OutputLabel names the generator's image output tensor.
	OutputLabel = "img"
)

// Frame is one generator output: a fixed 28×28 grid of intensities in
// [-1, 1], row-major in the model's native orientation.
type Frame struct {
	// Label is the output tensor the values were read from.
	Label string
	Pix   [FrameSize]float32
}

// At returns the value at column x, row y.
func (f *Frame) At(x, y int) float32 {
	return f.Pix[y*FrameWidth+x]
}

// BlankFrame returns a uniform minimum-intensity frame, which renders as
// an empty white cell. Space slots show it without a model call.
func BlankFrame() Frame {
	f := Frame{Label: OutputLabel}
	for i := range f.Pix {
		f.Pix[i] = -1
	}
	return f
}
