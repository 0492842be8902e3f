package img

import (
	"image"
	"image/color"
	"math"
	"strconv"
)

// VennOptions size the Venn diagram.
type VennOptions struct {
	Width  int
	Height int
}

var (
	leftFill  = color.RGBA{0xe4, 0x1a, 0x1c, 0xff}
	rightFill = color.RGBA{0x4d, 0xaf, 0x4a, 0xff}
	ink       = color.RGBA{0x33, 0x33, 0x33, 0xff}
)

const fillAlpha = 0.4

// Venn draws two area-proportional circles for sets a and b whose overlap
// area matches the size of their intersection. Region sizes are printed in
// each region and labels under each circle. Empty sets are allowed.
func Venn(a, b []string, labels [2]string, opts VennOptions) *image.RGBA {
	if opts.Width <= 0 {
		opts.Width = 800
	}
	if opts.Height <= 0 {
		opts.Height = 600
	}
	m, dc := newCanvas(opts.Width, opts.Height)
	fs := newFaces()
	dc.SetFontFace(fs.face(max(12, opts.Height/24)))
	dc.SetColor(ink)

	na, nb, nab := regionSizes(a, b)
	ra := math.Sqrt(float64(na) / math.Pi)
	rb := math.Sqrt(float64(nb) / math.Pi)
	if ra == 0 && rb == 0 {
		dc.DrawStringAnchored("no words", float64(opts.Width)/2, float64(opts.Height)/2, 0.5, 0.5)
		return m
	}
	d := CenterDistance(ra, rb, float64(nab))
	if ra == 0 || rb == 0 {
		d = 0
	}

	// fit [−ra, d+rb] × [−r, r] into the canvas with a margin for labels
	span := ra + d + rb
	unit := math.Min(0.85*float64(opts.Width)/span, 0.7*float64(opts.Height)/(2*math.Max(ra, rb)))
	originX := (float64(opts.Width) - span*unit) / 2
	cy := float64(opts.Height) * 0.45
	cxa := originX + ra*unit
	cxb := originX + (ra+d)*unit
	pra, prb := ra*unit, rb*unit

	circle := func(cx, r float64, c color.RGBA) {
		if r <= 0 {
			return
		}
		dc.DrawCircle(cx, cy, r)
		dc.SetRGBA255(int(c.R), int(c.G), int(c.B), int(fillAlpha*255))
		dc.FillPreserve()
		dc.SetColor(ink)
		dc.SetLineWidth(2)
		dc.Stroke()
	}
	circle(cxa, pra, leftFill)
	circle(cxb, prb, rightFill)

	dc.SetColor(ink)
	text := func(s string, x, y float64) {
		dc.DrawStringAnchored(s, x, y, 0.5, 0.5)
	}
	if na > nab && pra > 0 {
		text(strconv.Itoa(na-nab), cxa-pra/2, cy)
	}
	if nb > nab && prb > 0 {
		text(strconv.Itoa(nb-nab), cxb+prb/2, cy)
	}
	if nab > 0 {
		text(strconv.Itoa(nab), ((cxa+pra)+(cxb-prb))/2, cy)
	}
	labelY := cy + math.Max(pra, prb) + 24
	if pra > 0 {
		text(labels[0], cxa, labelY)
	}
	if prb > 0 {
		text(labels[1], cxb, labelY)
	}
	return m
}

// regionSizes returns |A|, |B| and |A∩B| over distinct members.
func regionSizes(a, b []string) (int, int, int) {
	sa := make(map[string]struct{}, len(a))
	for _, w := range a {
		sa[w] = struct{}{}
	}
	sb := make(map[string]struct{}, len(b))
	both := 0
	for _, w := range b {
		if _, seen := sb[w]; seen {
			continue
		}
		sb[w] = struct{}{}
		if _, ok := sa[w]; ok {
			both++
		}
	}
	return len(sa), len(sb), both
}

// LensArea is the overlap area of circles with radii r1, r2 whose centers
// are d apart.
func LensArea(r1, r2, d float64) float64 {
	if d >= r1+r2 {
		return 0
	}
	if d <= math.Abs(r1-r2) {
		r := math.Min(r1, r2)
		return math.Pi * r * r
	}
	a1 := r1 * r1 * math.Acos(clamp((d*d+r1*r1-r2*r2)/(2*d*r1)))
	a2 := r2 * r2 * math.Acos(clamp((d*d+r2*r2-r1*r1)/(2*d*r2)))
	k := 0.5 * math.Sqrt(math.Max(0, (-d+r1+r2)*(d+r1-r2)*(d-r1+r2)*(d+r1+r2)))
	return a1 + a2 - k
}

func clamp(x float64) float64 { return math.Max(-1, math.Min(1, x)) }

// CenterDistance finds the distance between centers at which the lens area
// equals overlap, by bisection. Disjoint sets touch; a contained set sits
// inside the other circle.
func CenterDistance(r1, r2, overlap float64) float64 {
	lo, hi := math.Abs(r1-r2), r1+r2
	if overlap <= 0 {
		return hi
	}
	if overlap >= LensArea(r1, r2, lo) {
		return lo
	}
	for i := 0; i < 60; i++ {
		mid := (lo + hi) / 2
		if LensArea(r1, r2, mid) > overlap {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}
