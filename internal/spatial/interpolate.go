package spatial

import "github.com/golang/geo/r3"

// Axis is the straight-line axis of a drilled hole from collar (surface)
// to toe (deepest point). Interpolation along it is linear only; hole
// curvature is not modeled.
type Axis struct {
	Collar r3.Vector
	Toe    r3.Vector
}

// NewAxis builds the axis for a collar/toe pair.
func NewAxis(collar, toe r3.Vector) Axis {
	return Axis{Collar: collar, Toe: toe}
}

// Length returns the 3D length of the axis in meters.
func (a Axis) Length() float64 {
	return a.Toe.Sub(a.Collar).Norm()
}

// At returns the interpolated 3D position at downhole depth d:
// collar + (d/L)*(toe - collar). A zero-length hole (collar == toe) is a
// defined degenerate case and collapses every depth to the collar point.
func (a Axis) At(d float64) r3.Vector {
	l := a.Length()
	if l == 0 {
		return a.Collar
	}
	return a.Collar.Add(a.Toe.Sub(a.Collar).Mul(d / l))
}

// Fraction returns the fractional position of depth d along the axis,
// 0 at the collar. Zero-length holes yield 0.
func (a Axis) Fraction(d float64) float64 {
	l := a.Length()
	if l == 0 {
		return 0
	}
	return d / l
}

// Centroid calculates the componentwise mean of a set of positions.
func Centroid(points []r3.Vector) r3.Vector {
	if len(points) == 0 {
		return r3.Vector{}
	}

	var sum r3.Vector
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Mul(1 / float64(len(points)))
}
