package glyphwalk_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gogpu/glyphwalk"
)

func TestPixmapSetPixel(t *testing.T) {
	t.Parallel()

	pm := glyphwalk.NewPixmap(4, 3)
	c := color.RGBA{10, 20, 30, 40}
	pm.SetPixel(2, 1, c)

	assert.Equal(t, c, pm.RGBAAt(2, 1))
	assert.Equal(t, color.RGBA{}, pm.RGBAAt(1, 2))

	i := (1*4 + 2) * 4
	assert.Equal(t, []uint8{10, 20, 30, 40}, pm.Data()[i:i+4])
}

func TestPixmapOutOfBounds(t *testing.T) {
	t.Parallel()

	pm := glyphwalk.NewPixmap(2, 2)
	for _, p := range []image.Point{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		pm.SetPixel(p.X, p.Y, color.RGBA{255, 255, 255, 255}) // ignored
		assert.Equal(t, color.RGBA{}, pm.RGBAAt(p.X, p.Y))
	}
	for _, b := range pm.Data() {
		assert.Zero(t, b)
	}
}

func TestPixmapImage(t *testing.T) {
	t.Parallel()

	pm := glyphwalk.NewPixmap(5, 2)
	pm.SetPixel(4, 1, color.RGBA{1, 2, 3, 255})

	var img image.Image = pm
	assert.Equal(t, image.Rect(0, 0, 5, 2), img.Bounds())
	assert.Equal(t, color.RGBAModel, img.ColorModel())
	assert.Equal(t, color.RGBA{1, 2, 3, 255}, img.At(4, 1))

	rgba := pm.ToImage()
	assert.Equal(t, pm.Data(), rgba.Pix)
	rgba.Pix[0] = 99
	assert.Zero(t, pm.Data()[0], "ToImage copies")
}
