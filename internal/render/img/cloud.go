package img

import (
	"image"
	"image/color"
	"math"

	"placeviz/internal/aggregate"
	"placeviz/internal/domain"
)

// CloudOptions size the word cloud. Font sizes are in pixels.
type CloudOptions struct {
	Width       int
	Height      int
	MaxWords    int
	MinFontSize int
	MaxFontSize int
}

func (o CloudOptions) withDefaults() CloudOptions {
	if o.Width <= 0 {
		o.Width = 800
	}
	if o.Height <= 0 {
		o.Height = 400
	}
	if o.MaxWords <= 0 {
		o.MaxWords = 200
	}
	if o.MinFontSize <= 0 {
		o.MinFontSize = 8
	}
	if o.MaxFontSize <= 0 {
		o.MaxFontSize = 64
	}
	o.MaxFontSize = max(o.MaxFontSize, o.MinFontSize)
	return o
}

const (
	// pad is the blank margin around every word box.
	pad = 1
	// spiralStep is the distance in pixels between two candidate positions,
	// both along the spiral and between its turns.
	spiralStep = 3.0
	// fillTarget is the share of the canvas the word boxes may cover before
	// the first layout attempt.
	fillTarget = 0.45
)

var palette = []color.RGBA{
	{0x44, 0x01, 0x54, 0xff},
	{0x3b, 0x52, 0x8b, 0xff},
	{0x21, 0x90, 0x8c, 0xff},
	{0x5d, 0xc8, 0x63, 0xff},
	{0x31, 0x68, 0x8e, 0xff},
	{0x7a, 0x1f, 0x5c, 0xff},
}

// Placement is where one word landed in the cloud.
type Placement struct {
	Word  string
	Count int
	Size  int
	Box   image.Rectangle
}

// Layout lists the drawn words in rank order and the words that did not fit
// even at the minimum font size.
type Layout struct {
	Placements []Placement
	Dropped    []string
}

// Cloud draws tokens as a word cloud on a white background. Word size grows
// with frequency. An empty token list yields a blank image.
func Cloud(tokens []string, opts CloudOptions) *image.RGBA {
	m, _ := CloudLayout(tokens, opts)
	return m
}

// CloudLayout is Cloud that also reports where every word went.
//
// Words are placed in rank order at the first free spot on a spiral out of
// the center. When a word finds no spot, the whole cloud is laid out again
// with a smaller maximum font size; words are dropped only once every word
// is already at the minimum size.
func CloudLayout(tokens []string, opts CloudOptions) (*image.RGBA, Layout) {
	opts = opts.withDefaults()
	m, dc := newCanvas(opts.Width, opts.Height)
	counts := aggregate.Rank(tokens)
	if len(counts) == 0 {
		return m, Layout{}
	}
	if len(counts) > opts.MaxWords {
		counts = counts[:opts.MaxWords]
	}

	fs := newFaces()
	canvas := float64(opts.Width * opts.Height)
	maxSize := opts.MaxFontSize
	for maxSize > opts.MinFontSize && boxArea(fs, counts, opts.MinFontSize, maxSize) > fillTarget*canvas {
		maxSize = shrink(maxSize, opts.MinFontSize)
	}
	var lay Layout
	for {
		final := maxSize == opts.MinFontSize
		lay = place(fs, counts, opts, maxSize, !final)
		if final || len(lay.Dropped) == 0 {
			break
		}
		maxSize = shrink(maxSize, opts.MinFontSize)
	}

	for i, p := range lay.Placements {
		_, ascent, _ := fs.measure(p.Word, p.Size)
		dc.SetFontFace(fs.face(p.Size))
		dc.SetColor(palette[i%len(palette)])
		dc.DrawString(p.Word, float64(p.Box.Min.X+pad), float64(p.Box.Min.Y+pad+ascent))
	}
	return m, lay
}

func shrink(size, floor int) int {
	return max(floor, min(size-1, size*4/5))
}

// fontSize scales count linearly between the minimum and maximum size.
func fontSize(count, top, minSize, maxSize int) int {
	return minSize + int(math.Round(float64(maxSize-minSize)*float64(count)/float64(top)))
}

func wordBox(fs *faces, word string, size int) (int, int) {
	w, _, h := fs.measure(word, size)
	return w + 2*pad, h + 2*pad
}

func boxArea(fs *faces, counts []domain.WordCount, minSize, maxSize int) float64 {
	var area float64
	for _, wc := range counts {
		w, h := wordBox(fs, wc.Word, fontSize(wc.Count, counts[0].Count, minSize, maxSize))
		area += float64(w * h)
	}
	return area
}

// place lays out counts once. With stopEarly it gives up at the first word
// that does not fit.
func place(fs *faces, counts []domain.WordCount, opts CloudOptions, maxSize int, stopEarly bool) Layout {
	g := newGrid(opts.Width, opts.Height)
	var lay Layout
	for _, wc := range counts {
		size := fontSize(wc.Count, counts[0].Count, opts.MinFontSize, maxSize)
		w, h := wordBox(fs, wc.Word, size)
		box, ok := g.fit(w, h)
		if !ok {
			lay.Dropped = append(lay.Dropped, wc.Word)
			if stopEarly {
				return lay
			}
			continue
		}
		g.fill(box)
		lay.Placements = append(lay.Placements, Placement{Word: wc.Word, Count: wc.Count, Size: size, Box: box})
	}
	return lay
}

// grid tracks occupied pixels with a summed-area table, so whether a box is
// free is a constant-time question.
type grid struct {
	w, h int
	used []bool
	sat  []int32
}

func newGrid(w, h int) *grid {
	return &grid{w: w, h: h, used: make([]bool, w*h), sat: make([]int32, (w+1)*(h+1))}
}

func (g *grid) occupied(r image.Rectangle) int32 {
	s := g.w + 1
	return g.sat[r.Max.Y*s+r.Max.X] - g.sat[r.Min.Y*s+r.Max.X] - g.sat[r.Max.Y*s+r.Min.X] + g.sat[r.Min.Y*s+r.Min.X]
}

func (g *grid) fill(r image.Rectangle) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			g.used[y*g.w+x] = true
		}
	}
	// rows above r are unchanged
	s := g.w + 1
	for y := r.Min.Y; y < g.h; y++ {
		var row int32
		for x := 0; x < g.w; x++ {
			if g.used[y*g.w+x] {
				row++
			}
			g.sat[(y+1)*s+x+1] = g.sat[y*s+x+1] + row
		}
	}
}

// fit walks an elliptical Archimedean spiral out of the center, one
// candidate every spiralStep pixels of arc, and returns the first free w×h
// box. Candidates past an edge are pushed back inside, so the spiral also
// probes the borders and corners.
func (g *grid) fit(w, h int) (image.Rectangle, bool) {
	if w > g.w || h > g.h {
		return image.Rectangle{}, false
	}
	cx, cy := float64(g.w)/2, float64(g.h)/2
	aspect := float64(g.w) / float64(g.h)
	stretch := math.Max(aspect, 1)
	// radius grows by spiralStep per turn along the stretched axis
	growth := spiralStep / (2 * math.Pi * stretch)
	rMax := math.Hypot(cx/aspect, cy) + spiralStep
	for t := 0.0; growth*t <= rMax; {
		r := growth * t
		x := min(max(int(math.Round(cx+aspect*r*math.Cos(t)))-w/2, 0), g.w-w)
		y := min(max(int(math.Round(cy+r*math.Sin(t)))-h/2, 0), g.h-h)
		box := image.Rect(x, y, x+w, y+h)
		if g.occupied(box) == 0 {
			return box, true
		}
		t += spiralStep / math.Max(r*stretch, spiralStep)
	}
	return image.Rectangle{}, false
}
