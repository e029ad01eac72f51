package model

import "math"

// Node is a point in space used as a connectivity and boundary anchor.
// Z is ignored for planar models.
type Node struct {
	Tag     int
	X, Y, Z float64
}

// Element is an elastic beam-column connecting two nodes.
// Planar models use A, E and Iz only; Transf is a transform tag for
// spatial models and is unused for planar ones.
type Element struct {
	Tag  int
	I, J int // end node tags

	A  float64 // cross-sectional area
	E  float64 // elastic modulus
	G  float64 // shear modulus
	Jx float64 // torsion constant
	Iy float64 // second moment about local y
	Iz float64 // second moment about local z

	Transf int
}

// Transform orients an element's local axes: the vector (X,Y,Z) lies in
// the local x-z plane of every element that references it.
type Transform struct {
	Tag     int
	X, Y, Z float64
}

// Fixity constrains degrees of freedom of a node to zero displacement.
// Planar models use the first three flags (ux, uy, rz).
type Fixity struct {
	Node  int
	Flags [6]bool
}

// Mass lumps translational and rotary mass at a node.
// Planar models use the first three values (mx, my, mrz).
type Mass struct {
	Node   int
	Values [6]float64
}

// PointLoad applies forces and moments at a node. Planar models use the
// first three components (Fx, Fy, Mz).
type PointLoad struct {
	Node       int
	Components [6]float64
}

// UniformLoad applies a constant distributed load along an element,
// expressed per unit length in the element's local axes. Wz is unused
// for planar models.
type UniformLoad struct {
	Element    int
	Wx, Wy, Wz float64
}

// Model is the complete frame definition for one analysis run. It is
// rebuilt from scratch every run; nothing survives between runs.
type Model struct {
	Ndm int // spatial dimension: 2 or 3

	Nodes        []Node
	Elements     []Element
	Transforms   []Transform
	Fixities     []Fixity
	Masses       []Mass
	PointLoads   []PointLoad
	UniformLoads []UniformLoad
}

// Ndf returns the number of degrees of freedom per node.
func (m *Model) Ndf() int {
	if m.Ndm == 2 {
		return 3
	}
	return 6
}

// NodeByTag returns the node with the given tag.
func (m *Model) NodeByTag(tag int) (Node, bool) {
	for _, n := range m.Nodes {
		if n.Tag == tag {
			return n, true
		}
	}
	return Node{}, false
}

// ElementLength returns the distance between an element's end nodes.
func (m *Model) ElementLength(e Element) float64 {
	ni, _ := m.NodeByTag(e.I)
	nj, _ := m.NodeByTag(e.J)
	dx := nj.X - ni.X
	dy := nj.Y - ni.Y
	dz := nj.Z - ni.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// MaxNodeTag returns the largest node tag, or zero for an empty model.
func (m *Model) MaxNodeTag() int {
	max := 0
	for _, n := range m.Nodes {
		if n.Tag > max {
			max = n.Tag
		}
	}
	return max
}

// MaxElementTag returns the largest element tag, or zero if there are none.
func (m *Model) MaxElementTag() int {
	max := 0
	for _, e := range m.Elements {
		if e.Tag > max {
			max = e.Tag
		}
	}
	return max
}
