// Package geometry converts an ordered list of weighted slices into the arc
// paths that draw a pie or donut chart.
//
// Angles are in degrees, in screen space: 0° points at 3 o'clock and angles
// grow clockwise because the y axis points down. The default start angle of
// -90° puts the first slice at 12 o'clock.
//
// Everything here is a pure function of its input. Nothing is cached and
// nothing is mutated, so repeated calls with the same Ring return identical
// ArcPaths.
package geometry

import (
	"math"
)

// DefaultStartAngle points the first slice straight up.
const DefaultStartAngle = -90.0

const (
	fullCircle = 360.0
	epsilon    = 1e-9
)

// Point is a coordinate in SVG user space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Slice is a named quantity contributing to a whole.
type Slice struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color,omitempty"` // opaque, never interpreted here
}

// Ring is the full input of a pie (Inner == 0) or donut (Inner > 0) chart.
type Ring struct {
	Slices     []Slice `json:"slices"`
	Inner      float64 `json:"inner"`
	Outer      float64 `json:"outer"`
	Center     Point   `json:"center"`
	StartAngle float64 `json:"start_angle"`
}

// NewRing returns a donut ring centered in a 2*outer square, starting at
// 12 o'clock.
func NewRing(slices []Slice, inner, outer float64) Ring {
	return Ring{
		Slices:     slices,
		Inner:      inner,
		Outer:      outer,
		Center:     Point{X: outer, Y: outer},
		StartAngle: DefaultStartAngle,
	}
}

// NewPie returns a full-disc ring of the given radius.
func NewPie(slices []Slice, radius float64) Ring {
	return NewRing(slices, 0, radius)
}

// WithCenter returns a copy of r centered at c.
func (r Ring) WithCenter(c Point) Ring {
	r.Center = c
	return r
}

// WithStartAngle returns a copy of r whose first slice begins at deg.
func (r Ring) WithStartAngle(deg float64) Ring {
	r.StartAngle = deg
	return r
}

// ArcPath is the geometry of one slice drawn as a filled annular sector.
type ArcPath struct {
	Index      int     `json:"index"`
	Label      string  `json:"label"`
	Color      string  `json:"color,omitempty"`
	Value      float64 `json:"value"`
	Fraction   float64 `json:"fraction"`
	StartAngle float64 `json:"start_angle"`
	EndAngle   float64 `json:"end_angle"`
	Span       float64 `json:"span"`

	Center      Point   `json:"center"`
	OuterRadius float64 `json:"outer_radius"`
	InnerRadius float64 `json:"inner_radius"`
	OuterStart  Point   `json:"outer_start"`
	OuterEnd    Point   `json:"outer_end"`
	InnerStart  Point   `json:"inner_start"`
	InnerEnd    Point   `json:"inner_end"`

	// LargeArc is the SVG large-arc flag: 1 when Span exceeds 180°.
	LargeArc   int `json:"large_arc"`
	OuterSweep int `json:"outer_sweep"`
	InnerSweep int `json:"inner_sweep"`
}

// IsPie reports whether the inner boundary collapses to the center.
func (a ArcPath) IsPie() bool {
	return a.InnerRadius == 0
}

// IsFullCircle reports whether the slice covers the whole ring.
func (a ArcPath) IsFullCircle() bool {
	return a.Span >= fullCircle-epsilon
}

// Compute converts ring into one ArcPath per slice, in input order.
//
// It fails with *InvalidRingError when the radii do not satisfy
// 0 <= Inner < Outer, with *InvalidSliceError when a value is negative or
// not finite, and with *DegenerateInputError when the values sum to zero.
// On error the result is nil; there is no partial output.
func Compute(ring Ring) ([]ArcPath, error) {
	total, scale, err := validate(ring)
	if err != nil {
		return nil, err
	}

	arcs := make([]ArcPath, len(ring.Slices))
	angle := ring.StartAngle
	for i, s := range ring.Slices {
		v := s.Value / scale
		span := fullCircle * v / total
		end := angle + span

		large := 0
		if span > 180 {
			large = 1
		}

		arcs[i] = ArcPath{
			Index:       i,
			Label:       s.Label,
			Color:       s.Color,
			Value:       s.Value,
			Fraction:    v / total,
			StartAngle:  angle,
			EndAngle:    end,
			Span:        span,
			Center:      ring.Center,
			OuterRadius: ring.Outer,
			InnerRadius: ring.Inner,
			OuterStart:  PointAt(ring.Center, ring.Outer, angle),
			OuterEnd:    PointAt(ring.Center, ring.Outer, end),
			InnerStart:  PointAt(ring.Center, ring.Inner, angle),
			InnerEnd:    PointAt(ring.Center, ring.Inner, end),
			LargeArc:    large,
			OuterSweep:  1,
			InnerSweep:  0,
		}
		angle = end
	}
	return arcs, nil
}

// PointAt returns the point at radius from center along deg.
func PointAt(center Point, radius, deg float64) Point {
	rad := deg * math.Pi / 180
	return Point{
		X: center.X + radius*math.Cos(rad),
		Y: center.Y + radius*math.Sin(rad),
	}
}

// Total returns the sum of slice values.
func Total(slices []Slice) float64 {
	var sum float64
	for _, s := range slices {
		sum += s.Value
	}
	return sum
}

// Validate checks ring without computing any geometry. Callers use it to
// pick a placeholder before rendering.
func Validate(ring Ring) error {
	_, _, err := validate(ring)
	return err
}

// validate returns the (possibly rescaled) total and the divisor applied to
// every value. The scale is 1 unless the raw sum overflows float64.
func validate(ring Ring) (total, scale float64, err error) {
	if !(ring.Inner >= 0) || !(ring.Outer > ring.Inner) || math.IsInf(ring.Outer, 0) {
		return 0, 0, &InvalidRingError{Inner: ring.Inner, Outer: ring.Outer}
	}

	var maxV float64
	for i, s := range ring.Slices {
		if s.Value < 0 || math.IsNaN(s.Value) || math.IsInf(s.Value, 0) {
			return 0, 0, &InvalidSliceError{Index: i, Label: s.Label, Value: s.Value}
		}
		if s.Value > maxV {
			maxV = s.Value
		}
		total += s.Value
	}

	if total <= 0 {
		return 0, 0, &DegenerateInputError{Slices: len(ring.Slices)}
	}

	scale = 1
	if math.IsInf(total, 1) {
		scale = maxV
		total = 0
		for _, s := range ring.Slices {
			total += s.Value / scale
		}
	}
	return total, scale, nil
}
