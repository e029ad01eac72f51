package engine

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ShapePoint is one sampled point of a deflected member: the undeformed
// position and the (unscaled) displacement vector at it.
type ShapePoint struct {
	Pos  [3]float64
	Disp [3]float64
}

// ElementDeflection samples the solved displacement field along a
// member at nsta stations: linear interpolation for the axial component
// and cubic Hermite interpolation for the transverse ones, so the curve
// honors the end rotations the way the underlying element does.
func (s *Session) ElementDeflection(tag, nsta int) ([]ShapePoint, error) {
	if !s.analyzed {
		return nil, fmt.Errorf("no analysis results: run a static solve first")
	}
	m, ok := s.elements[tag]
	if !ok {
		return nil, fmt.Errorf("element %d not defined", tag)
	}
	return s.sampleDeflection(m, s.disp[m.i], s.disp[m.j], nsta), nil
}

// ModeDeflection samples a mode shape along a member the same way
// ElementDeflection samples the static solution. Modes are 1-based.
func (s *Session) ModeDeflection(mode, tag, nsta int) ([]ShapePoint, error) {
	if s.modal == nil {
		return nil, fmt.Errorf("no eigen results: run an eigen extraction first")
	}
	if mode < 1 || mode > len(s.modal.shapes) {
		return nil, fmt.Errorf("mode %d out of range 1..%d", mode, len(s.modal.shapes))
	}
	m, ok := s.elements[tag]
	if !ok {
		return nil, fmt.Errorf("element %d not defined", tag)
	}
	shape := s.modal.shapes[mode-1]
	return s.sampleDeflection(m, shape[m.i], shape[m.j], nsta), nil
}

func (s *Session) sampleDeflection(m *member, di, dj []float64, nsta int) []ShapePoint {
	if nsta < 2 {
		nsta = 2
	}
	n := 2 * s.ndf
	dg := mat.NewVecDense(n, nil)
	copy(dg.RawVector().Data[:s.ndf], di)
	copy(dg.RawVector().Data[s.ndf:], dj)

	t := m.transformation(s.ndm)
	dl := mat.NewVecDense(n, nil)
	dl.MulVec(t, dg)
	d := dl.RawVector().Data

	xi := s.nodes[m.i].xyz
	xj := s.nodes[m.j].xyz
	l := m.length

	out := make([]ShapePoint, nsta)
	for k := 0; k < nsta; k++ {
		xs := float64(k) / float64(nsta-1)

		// Hermite shape functions on [0,1]
		h1 := 1 - 3*xs*xs + 2*xs*xs*xs
		h2 := l * (xs - 2*xs*xs + xs*xs*xs)
		h3 := 3*xs*xs - 2*xs*xs*xs
		h4 := l * (xs*xs*xs - xs*xs)

		var loc [3]float64
		if s.ndm == 2 {
			loc[0] = (1-xs)*d[0] + xs*d[3]
			loc[1] = h1*d[1] + h2*d[2] + h3*d[4] + h4*d[5]
		} else {
			loc[0] = (1-xs)*d[0] + xs*d[6]
			loc[1] = h1*d[1] + h2*d[5] + h3*d[7] + h4*d[11]
			// uz pairs with ry through uz' = -ry
			loc[2] = h1*d[2] - h2*d[4] + h3*d[8] - h4*d[10]
		}

		// back to global axes
		var disp [3]float64
		if s.ndm == 2 {
			c := m.rot[0][0]
			sn := m.rot[0][1]
			disp[0] = c*loc[0] - sn*loc[1]
			disp[1] = sn*loc[0] + c*loc[1]
		} else {
			for g := 0; g < 3; g++ {
				disp[g] = m.rot[0][g]*loc[0] + m.rot[1][g]*loc[1] + m.rot[2][g]*loc[2]
			}
		}

		out[k] = ShapePoint{
			Pos: [3]float64{
				xi[0] + xs*(xj[0]-xi[0]),
				xi[1] + xs*(xj[1]-xi[1]),
				xi[2] + xs*(xj[2]-xi[2]),
			},
			Disp: disp,
		}
	}
	return out
}
