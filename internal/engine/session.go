// Package engine is a linear analysis session for 3D and 2D frame
// models: elastic beam-column elements, nodal loads and masses, uniform
// member loads, a single-step static solve and lumped-mass eigenvalue
// extraction.
//
// All state lives on the Session; there are no package globals. A run
// is reset-then-build: Reset wipes everything, definition calls rebuild
// the model, Analyze solves it, queries read the results.
package engine

import (
	"fmt"
	"math"
	"sort"
)

// Session holds one frame model and, after a solve, its results.
type Session struct {
	ndm int
	ndf int

	nodes      map[int]*snode
	nodeOrder  []int
	transforms map[int][3]float64
	elements   map[int]*member
	eleOrder   []int

	nodalLoads map[int][]float64

	// results
	analyzed  bool
	lambda    float64
	disp      map[int][]float64
	reactions map[int][]float64
	modal     *modalResult
}

type snode struct {
	xyz   [3]float64
	fixed []bool
	mass  []float64
	eqs   []int // global equation per DOF, -1 when fixed
}

// member is one beam-column with its per-run assembly state.
type member struct {
	tag    int
	i, j   int
	a      float64
	e      float64
	g      float64
	jx     float64
	iy     float64
	iz     float64
	transf int

	w [3]float64 // accumulated uniform load, local axes, per unit length

	length float64
	rot    [3][3]float64 // local axes as rows (3D); 2D stores cos/sin in rot[0][0], rot[0][1]
	fend   []float64     // local end forces after the solve
}

// New creates an empty session. ndm is the spatial dimension: 3 gives
// six degrees of freedom per node, 2 gives three.
func New(ndm int) (*Session, error) {
	if ndm != 2 && ndm != 3 {
		return nil, fmt.Errorf("spatial dimension must be 2 or 3, got %d", ndm)
	}
	s := &Session{ndm: ndm}
	s.Reset()
	return s, nil
}

// Ndm returns the spatial dimension of the session.
func (s *Session) Ndm() int { return s.ndm }

// Ndf returns the degrees of freedom per node.
func (s *Session) Ndf() int { return s.ndf }

// Reset wipes the model and all results. The session keeps its spatial
// dimension.
func (s *Session) Reset() {
	if s.ndm == 2 {
		s.ndf = 3
	} else {
		s.ndf = 6
	}
	s.nodes = make(map[int]*snode)
	s.nodeOrder = nil
	s.transforms = make(map[int][3]float64)
	s.elements = make(map[int]*member)
	s.eleOrder = nil
	s.nodalLoads = make(map[int][]float64)
	s.analyzed = false
	s.lambda = 0
	s.disp = nil
	s.reactions = nil
	s.modal = nil
}

// AddNode defines a node. For planar sessions z must be zero.
func (s *Session) AddNode(tag int, x, y, z float64) error {
	if _, ok := s.nodes[tag]; ok {
		return fmt.Errorf("node %d already defined", tag)
	}
	if s.ndm == 2 && z != 0 {
		return fmt.Errorf("node %d: planar session cannot take z=%g", tag, z)
	}
	s.nodes[tag] = &snode{
		xyz:   [3]float64{x, y, z},
		fixed: make([]bool, s.ndf),
		mass:  make([]float64, s.ndf),
	}
	s.nodeOrder = append(s.nodeOrder, tag)
	return nil
}

// AddTransform defines a local-axis orientation: (x,y,z) lies in the
// local x-z plane of elements that reference the tag. Spatial sessions
// only.
func (s *Session) AddTransform(tag int, x, y, z float64) error {
	if s.ndm != 3 {
		return fmt.Errorf("transforms apply to spatial sessions only")
	}
	if _, ok := s.transforms[tag]; ok {
		return fmt.Errorf("transform %d already defined", tag)
	}
	if x == 0 && y == 0 && z == 0 {
		return fmt.Errorf("transform %d: orientation vector is zero", tag)
	}
	s.transforms[tag] = [3]float64{x, y, z}
	return nil
}

// AddElement defines an elastic beam-column between nodes i and j.
// Planar sessions use a, e and iz; g, jx, iy and transf are ignored.
func (s *Session) AddElement(tag, i, j int, a, e, g, jx, iy, iz float64, transf int) error {
	if _, ok := s.elements[tag]; ok {
		return fmt.Errorf("element %d already defined", tag)
	}
	ni, ok := s.nodes[i]
	if !ok {
		return fmt.Errorf("element %d: node %d not defined", tag, i)
	}
	nj, ok := s.nodes[j]
	if !ok {
		return fmt.Errorf("element %d: node %d not defined", tag, j)
	}
	if a <= 0 || e <= 0 {
		return fmt.Errorf("element %d: area and elastic modulus must be positive", tag)
	}
	if s.ndm == 3 {
		if _, ok := s.transforms[transf]; !ok {
			return fmt.Errorf("element %d: transform %d not defined", tag, transf)
		}
	}

	m := &member{tag: tag, i: i, j: j, a: a, e: e, g: g, jx: jx, iy: iy, iz: iz, transf: transf}
	if err := m.orient(s.ndm, ni.xyz, nj.xyz, s.transforms[transf]); err != nil {
		return err
	}
	s.elements[tag] = m
	s.eleOrder = append(s.eleOrder, tag)
	return nil
}

// Fix constrains node DOFs; flags must have one entry per DOF, true
// meaning the DOF is held at zero.
func (s *Session) Fix(tag int, flags []bool) error {
	n, ok := s.nodes[tag]
	if !ok {
		return fmt.Errorf("fix: node %d not defined", tag)
	}
	if len(flags) != s.ndf {
		return fmt.Errorf("fix: node %d needs %d flags, got %d", tag, s.ndf, len(flags))
	}
	for d, f := range flags {
		if f {
			n.fixed[d] = true
		}
	}
	return nil
}

// AddMass lumps mass values at a node, one per DOF. Masses accumulate.
func (s *Session) AddMass(tag int, values []float64) error {
	n, ok := s.nodes[tag]
	if !ok {
		return fmt.Errorf("mass: node %d not defined", tag)
	}
	if len(values) != s.ndf {
		return fmt.Errorf("mass: node %d needs %d values, got %d", tag, s.ndf, len(values))
	}
	for d, v := range values {
		if v < 0 {
			return fmt.Errorf("mass: node %d has negative mass %g", tag, v)
		}
		n.mass[d] += v
	}
	return nil
}

// AddNodalLoad applies force/moment components at a node, one per DOF.
// Loads accumulate.
func (s *Session) AddNodalLoad(tag int, components []float64) error {
	if _, ok := s.nodes[tag]; !ok {
		return fmt.Errorf("load: node %d not defined", tag)
	}
	if len(components) != s.ndf {
		return fmt.Errorf("load: node %d needs %d components, got %d", tag, s.ndf, len(components))
	}
	acc := s.nodalLoads[tag]
	if acc == nil {
		acc = make([]float64, s.ndf)
		s.nodalLoads[tag] = acc
	}
	for d, v := range components {
		acc[d] += v
	}
	return nil
}

// AddUniformLoad applies a constant distributed load along an element,
// per unit length in local axes. Loads accumulate.
func (s *Session) AddUniformLoad(ele int, wx, wy, wz float64) error {
	m, ok := s.elements[ele]
	if !ok {
		return fmt.Errorf("element load: element %d not defined", ele)
	}
	if s.ndm == 2 && wz != 0 {
		return fmt.Errorf("element load: planar session cannot take wz=%g", wz)
	}
	m.w[0] += wx
	m.w[1] += wy
	m.w[2] += wz
	return nil
}

// NodeTags returns all node tags sorted ascending.
func (s *Session) NodeTags() []int {
	tags := append([]int(nil), s.nodeOrder...)
	sort.Ints(tags)
	return tags
}

// ElementTags returns all element tags sorted ascending.
func (s *Session) ElementTags() []int {
	tags := append([]int(nil), s.eleOrder...)
	sort.Ints(tags)
	return tags
}

// NodeCoords returns a node's coordinates.
func (s *Session) NodeCoords(tag int) ([3]float64, error) {
	n, ok := s.nodes[tag]
	if !ok {
		return [3]float64{}, fmt.Errorf("node %d not defined", tag)
	}
	return n.xyz, nil
}

// ElementEnds returns an element's end node tags.
func (s *Session) ElementEnds(tag int) (i, j int, err error) {
	m, ok := s.elements[tag]
	if !ok {
		return 0, 0, fmt.Errorf("element %d not defined", tag)
	}
	return m.i, m.j, nil
}

// NodeDisp returns the solved displacement of a node, one value per DOF.
func (s *Session) NodeDisp(tag int) ([]float64, error) {
	if !s.analyzed {
		return nil, fmt.Errorf("no analysis results: run a static solve first")
	}
	d, ok := s.disp[tag]
	if !ok {
		return nil, fmt.Errorf("node %d not defined", tag)
	}
	return append([]float64(nil), d...), nil
}

// Reactions returns support reactions keyed by node tag, for nodes with
// at least one fixed DOF.
func (s *Session) Reactions() (map[int][]float64, error) {
	if !s.analyzed {
		return nil, fmt.Errorf("no analysis results: run a static solve first")
	}
	out := make(map[int][]float64, len(s.reactions))
	for tag, r := range s.reactions {
		out[tag] = append([]float64(nil), r...)
	}
	return out, nil
}

// orient computes the member length and local axes.
func (m *member) orient(ndm int, xi, xj, vxz [3]float64) error {
	dx := xj[0] - xi[0]
	dy := xj[1] - xi[1]
	dz := xj[2] - xi[2]
	l := math.Sqrt(dx*dx + dy*dy + dz*dz)
	if l == 0 {
		return fmt.Errorf("element %d: zero length", m.tag)
	}
	m.length = l

	if ndm == 2 {
		m.rot[0][0] = dx / l // cosine
		m.rot[0][1] = dy / l // sine
		return nil
	}

	// local x along the member axis
	ex := [3]float64{dx / l, dy / l, dz / l}
	// local y = vecxz × x
	ey := cross(vxz, ex)
	ny := norm(ey)
	if ny < 1e-12 {
		return fmt.Errorf("element %d: transform vector is parallel to the element axis", m.tag)
	}
	ey = scale(ey, 1/ny)
	// local z = x × y
	ez := cross(ex, ey)

	m.rot[0] = ex
	m.rot[1] = ey
	m.rot[2] = ez
	return nil
}

func cross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func norm(a [3]float64) float64 {
	return math.Sqrt(a[0]*a[0] + a[1]*a[1] + a[2]*a[2])
}

func scale(a [3]float64, f float64) [3]float64 {
	return [3]float64{a[0] * f, a[1] * f, a[2] * f}
}
