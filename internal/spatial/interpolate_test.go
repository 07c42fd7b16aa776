package spatial

import (
	"testing"

	"github.com/golang/geo/r3"
)

func TestAxisAt(t *testing.T) {
	axis := NewAxis(r3.Vector{X: 0, Y: 0, Z: 0}, r3.Vector{X: 0, Y: 0, Z: -10})

	if got := axis.Length(); got != 10 {
		t.Errorf("Length = %v, want 10", got)
	}

	mid := axis.At(5)
	if mid.Z != -5 || mid.X != 0 || mid.Y != 0 {
		t.Errorf("At(5) = %v, want (0,0,-5)", mid)
	}

	if got := axis.Fraction(2.5); got != 0.25 {
		t.Errorf("Fraction(2.5) = %v, want 0.25", got)
	}
}

func TestAxisAtOffsetCollar(t *testing.T) {
	axis := NewAxis(r3.Vector{X: 100, Y: 200, Z: 50}, r3.Vector{X: 100, Y: 200, Z: 40})

	p := axis.At(2)
	want := r3.Vector{X: 100, Y: 200, Z: 48}
	if p != want {
		t.Errorf("At(2) = %v, want %v", p, want)
	}
}

func TestAxisDegenerate(t *testing.T) {
	// Zero-length hole: every depth collapses to the collar point.
	collar := r3.Vector{X: 1, Y: 2, Z: 3}
	axis := NewAxis(collar, collar)

	for _, d := range []float64{0, 1, 100} {
		if got := axis.At(d); got != collar {
			t.Errorf("At(%v) = %v, want collar %v", d, got, collar)
		}
	}
	if got := axis.Fraction(5); got != 0 {
		t.Errorf("Fraction on degenerate axis = %v, want 0", got)
	}
}

func TestCentroid(t *testing.T) {
	points := []r3.Vector{
		{X: 0, Y: 0, Z: 0},
		{X: 2, Y: 4, Z: -6},
	}
	got := Centroid(points)
	want := r3.Vector{X: 1, Y: 2, Z: -3}
	if got != want {
		t.Errorf("Centroid = %v, want %v", got, want)
	}

	if got := Centroid(nil); (got != r3.Vector{}) {
		t.Errorf("Centroid of empty = %v, want zero vector", got)
	}
}
