// Package sectlib computes cross-section properties for frame elements:
// area, second moments about both section axes and the torsion
// constant. Section axes follow the element convention: y and z span
// the cross-section, Iz resists bending in the x-y plane.
package sectlib

import (
	"fmt"
	"math"
)

// Properties holds the scalars an element row needs, plus the bounding
// box used when drawing extruded shapes.
type Properties struct {
	A  float64 // area
	Iy float64 // second moment about section y
	Iz float64 // second moment about section z
	J  float64 // torsion constant

	Width  float64 // extent along section y
	Height float64 // extent along section z
}

// Shape is a parametric cross-section.
type Shape interface {
	Name() string
	Properties() Properties
	// Outline returns the section boundary, counter-clockwise, centered
	// on the centroid.
	Outline() []Point
}

// Point is a 2D coordinate in the section plane.
type Point struct {
	Y float64
	Z float64
}

// Rectangle is a solid rectangular section, B along y and H along z.
type Rectangle struct {
	B float64
	H float64
}

func (r Rectangle) Name() string { return "rect" }

func (r Rectangle) Properties() Properties {
	// torsion constant per Roark, with b the short side
	b, h := r.B, r.H
	if b > h {
		b, h = h, b
	}
	j := b * b * b * h * (1.0/3.0 - 0.21*(b/h)*(1-math.Pow(b, 4)/(12*math.Pow(h, 4))))
	return Properties{
		A:      r.B * r.H,
		Iz:     r.B * math.Pow(r.H, 3) / 12,
		Iy:     r.H * math.Pow(r.B, 3) / 12,
		J:      j,
		Width:  r.B,
		Height: r.H,
	}
}

func (r Rectangle) Outline() []Point {
	return []Point{
		{-r.B / 2, -r.H / 2},
		{r.B / 2, -r.H / 2},
		{r.B / 2, r.H / 2},
		{-r.B / 2, r.H / 2},
	}
}

// Circle is a solid circular section of diameter D.
type Circle struct {
	D float64
}

func (c Circle) Name() string { return "circ" }

func (c Circle) Properties() Properties {
	i := math.Pi * math.Pow(c.D, 4) / 64
	return Properties{
		A:      math.Pi * c.D * c.D / 4,
		Iy:     i,
		Iz:     i,
		J:      2 * i,
		Width:  c.D,
		Height: c.D,
	}
}

func (c Circle) Outline() []Point {
	const segments = 32
	pts := make([]Point, segments)
	for k := 0; k < segments; k++ {
		a := 2 * math.Pi * float64(k) / segments
		pts[k] = Point{c.D / 2 * math.Cos(a), c.D / 2 * math.Sin(a)}
	}
	return pts
}

// IShape is a doubly symmetric wide-flange section: flange width B,
// total depth H, web thickness Tw, flange thickness Tf.
type IShape struct {
	B  float64
	H  float64
	Tw float64
	Tf float64
}

func (s IShape) Name() string { return "I" }

func (s IShape) Properties() Properties {
	hw := s.H - 2*s.Tf // clear web depth
	return Properties{
		A:      2*s.B*s.Tf + hw*s.Tw,
		Iz:     s.B*math.Pow(s.H, 3)/12 - (s.B-s.Tw)*math.Pow(hw, 3)/12,
		Iy:     2*s.Tf*math.Pow(s.B, 3)/12 + hw*math.Pow(s.Tw, 3)/12,
		J:      (2*s.B*math.Pow(s.Tf, 3) + hw*math.Pow(s.Tw, 3)) / 3,
		Width:  s.B,
		Height: s.H,
	}
}

func (s IShape) Outline() []Point {
	b2 := s.B / 2
	h2 := s.H / 2
	tw2 := s.Tw / 2
	hw2 := s.H/2 - s.Tf
	return []Point{
		{-b2, -h2}, {b2, -h2}, {b2, -hw2}, {tw2, -hw2},
		{tw2, hw2}, {b2, hw2}, {b2, h2}, {-b2, h2},
		{-b2, hw2}, {-tw2, hw2}, {-tw2, -hw2}, {-b2, -hw2},
	}
}

// FromSpec builds a shape from its name and dimension list, as written
// in a shapes row: "circ d", "rect b h", "I b h tw tf", or
// "poly y1 z1 y2 z2 ..." with at least three vertices.
func FromSpec(name string, dims []float64) (Shape, error) {
	if name != "poly" {
		// polygon vertices may be negative; solid dimensions may not
		for _, d := range dims {
			if d <= 0 {
				return nil, fmt.Errorf("shape %q: dimensions must be positive", name)
			}
		}
	}
	switch name {
	case "circ":
		if len(dims) != 1 {
			return nil, fmt.Errorf("shape \"circ\" needs 1 dimension (d), got %d", len(dims))
		}
		return Circle{D: dims[0]}, nil
	case "rect":
		if len(dims) != 2 {
			return nil, fmt.Errorf("shape \"rect\" needs 2 dimensions (b, h), got %d", len(dims))
		}
		return Rectangle{B: dims[0], H: dims[1]}, nil
	case "I":
		if len(dims) != 4 {
			return nil, fmt.Errorf("shape \"I\" needs 4 dimensions (b, h, tw, tf), got %d", len(dims))
		}
		s := IShape{B: dims[0], H: dims[1], Tw: dims[2], Tf: dims[3]}
		if 2*s.Tf >= s.H || s.Tw >= s.B {
			return nil, fmt.Errorf("shape \"I\": thicknesses exceed the section envelope")
		}
		return s, nil
	case "poly":
		if len(dims) < 6 || len(dims)%2 != 0 {
			return nil, fmt.Errorf("shape \"poly\" needs y,z pairs for at least 3 vertices, got %d values", len(dims))
		}
		p := Polygon{Vertices: make([]Point, len(dims)/2)}
		for i := range p.Vertices {
			p.Vertices[i] = Point{Y: dims[2*i], Z: dims[2*i+1]}
		}
		if p.Properties().A == 0 {
			return nil, fmt.Errorf("shape \"poly\": vertices enclose no area")
		}
		return p, nil
	}
	return nil, fmt.Errorf("unknown shape %q (want circ, rect, I or poly)", name)
}
