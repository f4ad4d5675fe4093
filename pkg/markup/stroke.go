// Package markup records freehand strokes and replays them onto a raster.
// Strokes are kept as explicit point sequences and rasterized only at
// bake/commit time, never re-rasterized retroactively.
package markup

import (
	"image"
	"image/draw"
	"math"

	"image/color"

	"golang.org/x/image/vector"
)

// Point is a stroke vertex in source-pixel coordinates.
type Point struct {
	X, Y float64
}

// Stroke is one freehand path: an ordered point sequence with a brush color
// and width. Points must stay in the order the pointer events arrived;
// reordering corrupts the path.
type Stroke struct {
	Points []Point
	Color  color.NRGBA
	Width  float64
}

// Rasterize replays the strokes onto dst in order, mutating dst in place.
// Each stroke is stamped as a run of anti-aliased discs along its polyline.
func Rasterize(dst *image.NRGBA, strokes []Stroke) {
	if dst == nil {
		return
	}
	for _, s := range strokes {
		rasterizeStroke(dst, s)
	}
}

func rasterizeStroke(dst *image.NRGBA, s Stroke) {
	if len(s.Points) == 0 {
		return
	}
	w := s.Width
	if w < 1 {
		w = 1
	}
	r := w / 2
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	addCircle(z, s.Points[0].X, s.Points[0].Y, r)
	for i := 1; i < len(s.Points); i++ {
		a, c := s.Points[i-1], s.Points[i]
		dx, dy := c.X-a.X, c.Y-a.Y
		dist := math.Hypot(dx, dy)
		// stamp spacing of r/2 keeps the run visually solid
		step := math.Max(r/2, 0.5)
		n := int(math.Ceil(dist / step))
		for k := 1; k <= n; k++ {
			t := float64(k) / float64(n)
			addCircle(z, a.X+dx*t, a.Y+dy*t, r)
		}
	}
	z.DrawOp = draw.Over
	z.Draw(dst, b, image.NewUniform(s.Color), image.Point{})
}

const kappa = 0.5522847498307936

// addCircle appends a circle subpath approximated by four cubic arcs.
func addCircle(z *vector.Rasterizer, cx, cy, r float64) {
	x, y := float32(cx), float32(cy)
	rf := float32(r)
	k := float32(r * kappa)
	z.MoveTo(x+rf, y)
	z.CubeTo(x+rf, y+k, x+k, y+rf, x, y+rf)
	z.CubeTo(x-k, y+rf, x-rf, y+k, x-rf, y)
	z.CubeTo(x-rf, y-k, x-k, y-rf, x, y-rf)
	z.CubeTo(x+k, y-rf, x+rf, y-k, x+rf, y)
	z.ClosePath()
}
