package markup

import (
	"image/color"
	"testing"

	"github.com/asitkhanda/Thebasicimageeditor/pkg/raster"
)

func TestRasterizeStampsDisc(t *testing.T) {
	dst := raster.NewSolid(21, 21, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	Rasterize(dst, []Stroke{{
		Points: []Point{{X: 10, Y: 10}},
		Color:  color.NRGBA{R: 255, A: 255},
		Width:  8,
	}})
	i := dst.PixOffset(10, 10)
	if dst.Pix[i+0] != 255 || dst.Pix[i+1] != 0 || dst.Pix[i+2] != 0 {
		t.Fatalf("center pixel not painted: %v", dst.Pix[i:i+4])
	}
	// a corner well outside the brush stays untouched
	j := dst.PixOffset(0, 0)
	if dst.Pix[j+1] != 255 {
		t.Fatalf("corner pixel painted unexpectedly: %v", dst.Pix[j:j+4])
	}
}

func TestRasterizeConnectsSegments(t *testing.T) {
	dst := raster.NewSolid(40, 11, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	Rasterize(dst, []Stroke{{
		Points: []Point{{X: 5, Y: 5}, {X: 35, Y: 5}},
		Color:  color.NRGBA{B: 255, A: 255},
		Width:  4,
	}})
	// every column along the segment midline gets ink
	for x := 5; x <= 35; x++ {
		i := dst.PixOffset(x, 5)
		if dst.Pix[i+2] != 255 {
			t.Fatalf("gap in stroke at x=%d: %v", x, dst.Pix[i:i+4])
		}
	}
}

func TestRasterizeEmptyStroke(t *testing.T) {
	dst := raster.NewSolid(5, 5, color.NRGBA{A: 255})
	before := raster.Clone(dst)
	Rasterize(dst, []Stroke{{Color: color.NRGBA{R: 255, A: 255}, Width: 3}})
	if !raster.Equal(dst, before) {
		t.Fatalf("stroke with no points modified the raster")
	}
}

func TestParseHexColor(t *testing.T) {
	cases := []struct {
		in   string
		want color.NRGBA
	}{
		{"#ff0000", color.NRGBA{R: 255, A: 255}},
		{"#0f0", color.NRGBA{G: 255, A: 255}},
		{"#00ff0080", color.NRGBA{G: 255, A: 128}},
		{"white", color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
	}
	for _, c := range cases {
		got, err := ParseHexColor(c.in)
		if err != nil {
			t.Fatalf("ParseHexColor(%q) error: %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("ParseHexColor(%q) = %v; want %v", c.in, got, c.want)
		}
	}
	if _, err := ParseHexColor("not-a-color"); err == nil {
		t.Fatalf("expected error for invalid color")
	}
	if _, err := ParseHexColor("#12345"); err == nil {
		t.Fatalf("expected error for bad hex length")
	}
}
