// Package img draws word clouds and Venn diagrams into fresh RGBA images.
package img

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

var goRegular = sync.OnceValue(func() *truetype.Font {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		panic("img: parse embedded Go font: " + err.Error())
	}
	return f
})

// faces hands out Go Regular faces by pixel size. Faces keep glyph caches
// and are not safe for concurrent use, so every drawing builds its own set.
type faces struct {
	bySize map[int]font.Face
}

func newFaces() *faces {
	return &faces{bySize: make(map[int]font.Face)}
}

func (fs *faces) face(size int) font.Face {
	if f, ok := fs.bySize[size]; ok {
		return f
	}
	f := truetype.NewFace(goRegular(), &truetype.Options{Size: float64(size), Hinting: font.HintingFull})
	fs.bySize[size] = f
	return f
}

// measure returns the advance width of s and the ascent and line height of
// the face, all in whole pixels.
func (fs *faces) measure(s string, size int) (w, ascent, height int) {
	f := fs.face(size)
	m := f.Metrics()
	return font.MeasureString(f, s).Ceil(), m.Ascent.Ceil(), (m.Ascent + m.Descent).Ceil()
}

// newCanvas returns a white image and a gg context drawing straight into it.
func newCanvas(w, h int) (*image.RGBA, *gg.Context) {
	m := image.NewRGBA(image.Rect(0, 0, w, h))
	dc := gg.NewContextForRGBA(m)
	dc.SetColor(color.White)
	dc.Clear()
	return m, dc
}

// WritePNG encodes m as PNG.
func WritePNG(w io.Writer, m image.Image) error {
	return png.Encode(w, m)
}
