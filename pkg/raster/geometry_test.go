package raster

import (
	"math"
	"testing"
)

func TestRotatedBoundsIdentityAngles(t *testing.T) {
	for _, deg := range []float64{0, 180, 360} {
		bw, bh := RotatedBounds(200, 100, deg)
		if math.Abs(bw-200) > 1e-9 || math.Abs(bh-100) > 1e-9 {
			t.Fatalf("RotatedBounds(200,100,%v) = %v,%v; want 200,100", deg, bw, bh)
		}
	}
}

func TestRotatedBoundsSquare90(t *testing.T) {
	bw, bh := RotatedBounds(100, 100, 90)
	if math.Abs(bw-100) > 1e-9 || math.Abs(bh-100) > 1e-9 {
		t.Fatalf("square rotated 90 should keep its bounds, got %v,%v", bw, bh)
	}
}

func TestRotatedBounds45(t *testing.T) {
	bw, bh := RotatedBounds(100, 100, 45)
	want := 100 * math.Sqrt2
	if math.Abs(bw-want) > 0.5 || math.Abs(bh-want) > 0.5 {
		t.Fatalf("RotatedBounds(100,100,45) = %v,%v; want ~%v", bw, bh, want)
	}
}

func TestRotatedBounds90Swap(t *testing.T) {
	bw, bh := RotatedBounds(200, 100, 90)
	if math.Abs(bw-100) > 1e-9 || math.Abs(bh-200) > 1e-9 {
		t.Fatalf("RotatedBounds(200,100,90) = %v,%v; want 100,200", bw, bh)
	}
}

func TestNormalizeDegrees(t *testing.T) {
	cases := map[float64]float64{
		0:    0,
		-90:  270,
		450:  90,
		360:  0,
		-360: 0,
	}
	for in, want := range cases {
		if got := NormalizeDegrees(in); math.Abs(got-want) > 1e-9 {
			t.Fatalf("NormalizeDegrees(%v) = %v; want %v", in, got, want)
		}
	}
}

func TestMapToSourceIndependentAxes(t *testing.T) {
	p := MapToSource(Point{X: 50, Y: 25}, Size{W: 100, H: 50}, Size{W: 400, H: 300})
	if p.X != 200 || p.Y != 150 {
		t.Fatalf("MapToSource = %+v; want {200 150}", p)
	}
}

func TestMapToSourceZeroDisplay(t *testing.T) {
	p := MapToSource(Point{X: 10, Y: 10}, Size{}, Size{W: 100, H: 100})
	if p.X != 0 || p.Y != 0 {
		t.Fatalf("zero display size should map to origin, got %+v", p)
	}
}
