package engine

import "fmt"

// ForceStation holds internal forces at one point along a member.
// Planar members fill N, Vy and Mz only. Moments take the left-segment
// convention: the value is the resultant of everything left of the cut.
type ForceStation struct {
	X float64 // distance from end i along the member

	N  float64 // axial, tension positive
	Vy float64 // shear in local y
	Vz float64 // shear in local z
	T  float64 // torsion about the axis
	My float64 // bending about local y
	Mz float64 // bending about local z
}

// ElementForces samples internal forces at nsta evenly spaced stations
// (nsta >= 2 gives both ends). With only end loads N, V and T are
// constant and M linear; under a uniform member load V is linear and M
// quadratic, and the stations carry the exact values.
func (s *Session) ElementForces(tag int, nsta int) ([]ForceStation, error) {
	if !s.analyzed {
		return nil, fmt.Errorf("no analysis results: run a static solve first")
	}
	m, ok := s.elements[tag]
	if !ok {
		return nil, fmt.Errorf("element %d not defined", tag)
	}
	if nsta < 2 {
		nsta = 2
	}

	f := m.fend
	wx := s.lambda * m.w[0]
	wy := s.lambda * m.w[1]
	wz := s.lambda * m.w[2]

	out := make([]ForceStation, nsta)
	for k := 0; k < nsta; k++ {
		x := m.length * float64(k) / float64(nsta-1)
		st := ForceStation{X: x}
		if s.ndm == 2 {
			st.N = -(f[0] + wx*x)
			st.Vy = f[1] + wy*x
			st.Mz = f[2] - f[1]*x - wy*x*x/2
		} else {
			st.N = -(f[0] + wx*x)
			st.Vy = f[1] + wy*x
			st.Vz = f[2] + wz*x
			st.T = -f[3]
			st.My = f[4] + f[2]*x + wz*x*x/2
			st.Mz = f[5] - f[1]*x - wy*x*x/2
		}
		out[k] = st
	}
	return out, nil
}

// Component selects one internal force from a station by name.
func (st ForceStation) Component(name string) (float64, error) {
	switch name {
	case "N":
		return st.N, nil
	case "Vy":
		return st.Vy, nil
	case "Vz":
		return st.Vz, nil
	case "T":
		return st.T, nil
	case "My":
		return st.My, nil
	case "Mz":
		return st.Mz, nil
	}
	return 0, fmt.Errorf("unknown force component %q (want N, Vy, Vz, T, My or Mz)", name)
}
