package engine

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

type modalResult struct {
	values []float64           // eigenvalues ω², ascending
	shapes []map[int][]float64 // per mode: node tag -> displacement per DOF
}

// Eigen extracts the lowest n natural vibration modes of the model with
// its lumped nodal masses. Free DOFs without mass are condensed out
// statically (Guyan), so leaving rotary masses at zero is legal. The
// returned eigenvalues are circular frequencies squared (rad²/s²) in
// ascending order; mass-normalized shapes are kept on the session for
// ModeShape and ModeDeflection.
func (s *Session) Eigen(n int) ([]float64, error) {
	if n < 1 {
		return nil, fmt.Errorf("eigen: mode count must be at least 1, got %d", n)
	}
	if len(s.elements) == 0 {
		return nil, fmt.Errorf("eigen: no elements defined")
	}

	neq := s.numberDOFs()
	if neq == 0 {
		return nil, fmt.Errorf("eigen: every degree of freedom is fixed")
	}
	kff := s.assembleK(neq)

	// lumped mass per equation
	mass := make([]float64, neq)
	for _, tag := range s.nodeOrder {
		nd := s.nodes[tag]
		for d := 0; d < s.ndf; d++ {
			if eq := nd.eqs[d]; eq >= 0 {
				mass[eq] += nd.mass[d]
			}
		}
	}

	var dyn, stat []int
	for eq, m := range mass {
		if m > 0 {
			dyn = append(dyn, eq)
		} else {
			stat = append(stat, eq)
		}
	}
	if len(dyn) == 0 {
		return nil, fmt.Errorf("eigen: model has no mass")
	}
	if n > len(dyn) {
		return nil, fmt.Errorf("eigen: %d modes requested but only %d massed DOFs", n, len(dyn))
	}

	nd := len(dyn)
	ns := len(stat)

	khat := mat.NewDense(nd, nd, nil)
	for a, p := range dyn {
		for b, q := range dyn {
			khat.Set(a, b, kff.At(p, q))
		}
	}

	// Guyan condensation of the massless DOFs:
	// Khat = Kdd - Kds Kss⁻¹ Ksd
	var x *mat.Dense // Kss⁻¹ Ksd, kept for shape recovery
	if ns > 0 {
		kss := mat.NewSymDense(ns, nil)
		for a, p := range stat {
			for b, q := range stat {
				if a <= b {
					kss.SetSym(a, b, kff.At(p, q))
				}
			}
		}
		ksd := mat.NewDense(ns, nd, nil)
		for a, p := range stat {
			for b, q := range dyn {
				ksd.Set(a, b, kff.At(p, q))
			}
		}

		var chol mat.Cholesky
		if ok := chol.Factorize(kss); !ok {
			return nil, &SingularError{}
		}
		x = mat.NewDense(ns, nd, nil)
		if err := chol.SolveTo(x, ksd); err != nil {
			return nil, &SingularError{}
		}

		red := mat.NewDense(nd, nd, nil)
		red.Mul(ksd.T(), x)
		khat.Sub(khat, red)
	}

	// symmetric standard form A = M^(-1/2) Khat M^(-1/2)
	a := mat.NewSymDense(nd, nil)
	for p := 0; p < nd; p++ {
		for q := p; q < nd; q++ {
			v := khat.At(p, q) / math.Sqrt(mass[dyn[p]]*mass[dyn[q]])
			a.SetSym(p, q, v)
		}
	}

	var es mat.EigenSym
	if ok := es.Factorize(a, true); !ok {
		return nil, fmt.Errorf("eigen: factorization failed")
	}
	values := es.Values(nil) // ascending
	var vecs mat.Dense
	es.VectorsTo(&vecs)

	res := &modalResult{values: values[:n]}
	for k := 0; k < n; k++ {
		phi := make([]float64, neq)
		for p, eq := range dyn {
			phi[eq] = vecs.At(p, k) / math.Sqrt(mass[eq])
		}
		if ns > 0 {
			// recover condensed DOFs: phi_s = -Kss⁻¹ Ksd phi_d
			for a2, eq := range stat {
				var v float64
				for b, deq := range dyn {
					v -= x.At(a2, b) * phi[deq]
				}
				phi[eq] = v
			}
		}

		shape := make(map[int][]float64, len(s.nodes))
		for tag, nd2 := range s.nodes {
			d := make([]float64, s.ndf)
			for dof := 0; dof < s.ndf; dof++ {
				if eq := nd2.eqs[dof]; eq >= 0 {
					d[dof] = phi[eq]
				}
			}
			shape[tag] = d
		}
		res.shapes = append(res.shapes, shape)
	}

	s.modal = res
	out := append([]float64(nil), res.values...)
	return out, nil
}

// ModeShape returns the displacement per node of one extracted mode,
// 1-based.
func (s *Session) ModeShape(mode int) (map[int][]float64, error) {
	if s.modal == nil {
		return nil, fmt.Errorf("no eigen results: run an eigen extraction first")
	}
	if mode < 1 || mode > len(s.modal.shapes) {
		return nil, fmt.Errorf("mode %d out of range 1..%d", mode, len(s.modal.shapes))
	}
	out := make(map[int][]float64, len(s.modal.shapes[mode-1]))
	for tag, d := range s.modal.shapes[mode-1] {
		out[tag] = append([]float64(nil), d...)
	}
	return out, nil
}
