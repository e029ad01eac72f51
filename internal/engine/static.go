package engine

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// StaticOptions mirrors the fixed configuration sequence of a linear
// static run: constraint handling, DOF numbering, system storage,
// convergence test, solution algorithm and load-control integrator.
// Only the canonical choices are implemented; anything else is an
// error, not a silent fallback.
type StaticOptions struct {
	// Constraints handling. "Transformation" (fixed DOFs eliminated
	// from the system) is the only handler.
	Constraints string

	// Numberer orders the equations. "Plain" numbers DOFs in node
	// definition order; "RCM" is accepted as an alias since ordering
	// does not change a dense factorization.
	Numberer string

	// System storage. "FullGeneral" is the dense symmetric system;
	// "BandGeneral" is accepted as an alias.
	System string

	// Algorithm is the solution strategy; "Linear" only.
	Algorithm string

	// Tolerance and MaxIterations form the norm-displacement-increment
	// test applied to the solved system's residual.
	Tolerance     float64
	MaxIterations int

	// LoadFactor is the load-control step: every load is scaled by it.
	LoadFactor float64
}

// DefaultStaticOptions is the standard run configuration:
// Transformation / RCM / BandGeneral / NormDispIncr 1e-6, 6 / Linear /
// LoadControl 1.0.
func DefaultStaticOptions() StaticOptions {
	return StaticOptions{
		Constraints:   "Transformation",
		Numberer:      "RCM",
		System:        "BandGeneral",
		Algorithm:     "Linear",
		Tolerance:     1e-6,
		MaxIterations: 6,
		LoadFactor:    1.0,
	}
}

func (o StaticOptions) validate() error {
	if o.Constraints != "Transformation" {
		return fmt.Errorf("unsupported constraint handler %q", o.Constraints)
	}
	if o.Numberer != "Plain" && o.Numberer != "RCM" {
		return fmt.Errorf("unsupported numberer %q", o.Numberer)
	}
	if o.System != "FullGeneral" && o.System != "BandGeneral" {
		return fmt.Errorf("unsupported system type %q", o.System)
	}
	if o.Algorithm != "Linear" {
		return fmt.Errorf("unsupported algorithm %q", o.Algorithm)
	}
	if o.Tolerance <= 0 {
		return fmt.Errorf("convergence tolerance must be positive, got %g", o.Tolerance)
	}
	if o.MaxIterations < 1 {
		return fmt.Errorf("iteration limit must be at least 1, got %d", o.MaxIterations)
	}
	return nil
}

// SingularError reports a stiffness matrix that cannot be factorized:
// the model has rigid-body freedom (missing supports) or a mechanism.
type SingularError struct{}

func (*SingularError) Error() string {
	return "stiffness matrix is not positive definite: the model is unstable (missing supports or a mechanism)"
}

// AnalyzeStatic runs one load-controlled linear solve and stores nodal
// displacements, support reactions and member end forces on the
// session.
func (s *Session) AnalyzeStatic(opts StaticOptions) error {
	if err := opts.validate(); err != nil {
		return err
	}
	if len(s.elements) == 0 {
		return fmt.Errorf("no elements defined")
	}

	neq := s.numberDOFs()
	if neq == 0 {
		return fmt.Errorf("every degree of freedom is fixed: nothing to solve")
	}

	lam := opts.LoadFactor
	kff := s.assembleK(neq)
	f := mat.NewVecDense(neq, nil)

	// nodal loads
	for tag, p := range s.nodalLoads {
		n := s.nodes[tag]
		for d, v := range p {
			if eq := n.eqs[d]; eq >= 0 {
				f.SetVec(eq, f.AtVec(eq)+lam*v)
			}
		}
	}

	// equivalent nodal loads from uniform member loads
	for _, tag := range s.eleOrder {
		m := s.elements[tag]
		if m.w == [3]float64{} {
			continue
		}
		eqs := s.memberEqs(m)
		t := m.transformation(s.ndm)
		fl := mat.NewVecDense(len(eqs), m.equivLoad(s.ndm))
		fg := mat.NewVecDense(len(eqs), nil)
		fg.MulVec(t.T(), fl)
		for p, eq := range eqs {
			if eq >= 0 {
				f.SetVec(eq, f.AtVec(eq)+lam*fg.AtVec(p))
			}
		}
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(kff); !ok {
		return &SingularError{}
	}
	u := mat.NewVecDense(neq, nil)
	if err := chol.SolveVecTo(u, f); err != nil {
		return &SingularError{}
	}

	// norm-displacement-increment test: for the linear algorithm the
	// increment after the first iteration is the residual correction
	if err := s.checkResidual(kff, u, f, opts); err != nil {
		return err
	}

	s.storeResults(u, lam)
	return nil
}

func (s *Session) checkResidual(kff *mat.SymDense, u, f *mat.VecDense, opts StaticOptions) error {
	neq := f.Len()
	r := mat.NewVecDense(neq, nil)
	r.MulVec(kff, u)
	r.SubVec(f, r)

	var rn, fn float64
	for i := 0; i < neq; i++ {
		rn = math.Max(rn, math.Abs(r.AtVec(i)))
		fn = math.Max(fn, math.Abs(f.AtVec(i)))
	}
	if fn < 1 {
		fn = 1
	}
	if rn/fn > opts.Tolerance {
		return fmt.Errorf("convergence test failed after %d iteration(s): residual %g exceeds tolerance %g",
			opts.MaxIterations, rn/fn, opts.Tolerance)
	}
	return nil
}

// assembleK builds the free-DOF stiffness matrix.
func (s *Session) assembleK(neq int) *mat.SymDense {
	kff := mat.NewSymDense(neq, nil)
	for _, tag := range s.eleOrder {
		m := s.elements[tag]
		kg := m.globalStiffness(s.ndm)
		eqs := s.memberEqs(m)
		for p, ep := range eqs {
			if ep < 0 {
				continue
			}
			for q, eq := range eqs {
				if eq < 0 || ep > eq {
					continue
				}
				kff.SetSym(ep, eq, kff.At(ep, eq)+kg.At(p, q))
			}
		}
	}
	return kff
}

// numberDOFs assigns equation numbers to free DOFs in node definition
// order and returns the equation count.
func (s *Session) numberDOFs() int {
	eq := 0
	for _, tag := range s.nodeOrder {
		n := s.nodes[tag]
		n.eqs = make([]int, s.ndf)
		for d := 0; d < s.ndf; d++ {
			if n.fixed[d] {
				n.eqs[d] = -1
			} else {
				n.eqs[d] = eq
				eq++
			}
		}
	}
	return eq
}

// memberEqs returns the global equation numbers of a member's DOFs, -1
// for fixed ones.
func (s *Session) memberEqs(m *member) []int {
	ni := s.nodes[m.i]
	nj := s.nodes[m.j]
	eqs := make([]int, 2*s.ndf)
	copy(eqs, ni.eqs)
	copy(eqs[s.ndf:], nj.eqs)
	return eqs
}

// storeResults fills per-node displacements, member end forces and
// support reactions from the solved free-DOF vector.
func (s *Session) storeResults(u *mat.VecDense, lam float64) {
	s.lambda = lam
	s.disp = make(map[int][]float64, len(s.nodes))
	for tag, n := range s.nodes {
		d := make([]float64, s.ndf)
		for k := 0; k < s.ndf; k++ {
			if eq := n.eqs[k]; eq >= 0 {
				d[k] = u.AtVec(eq)
			}
		}
		s.disp[tag] = d
	}

	// member end forces in local axes: f = k·T·d − λ·feq
	endGlobal := make(map[int]*mat.VecDense, len(s.elements))
	for _, tag := range s.eleOrder {
		m := s.elements[tag]
		n := 2 * s.ndf
		dg := mat.NewVecDense(n, nil)
		copy(dg.RawVector().Data[:s.ndf], s.disp[m.i])
		copy(dg.RawVector().Data[s.ndf:], s.disp[m.j])

		t := m.transformation(s.ndm)
		dl := mat.NewVecDense(n, nil)
		dl.MulVec(t, dg)

		fl := mat.NewVecDense(n, nil)
		fl.MulVec(m.localStiffness(s.ndm), dl)
		for p, v := range m.equivLoad(s.ndm) {
			fl.SetVec(p, fl.AtVec(p)-lam*v)
		}
		m.fend = append([]float64(nil), fl.RawVector().Data...)

		fg := mat.NewVecDense(n, nil)
		fg.MulVec(t.T(), fl)
		endGlobal[tag] = fg
	}

	// reactions: sum of member end forces minus applied loads, at fixed DOFs
	s.reactions = make(map[int][]float64)
	for tag, n := range s.nodes {
		hasFixed := false
		for _, fx := range n.fixed {
			if fx {
				hasFixed = true
				break
			}
		}
		if !hasFixed {
			continue
		}
		r := make([]float64, s.ndf)
		for _, etag := range s.eleOrder {
			m := s.elements[etag]
			fg := endGlobal[etag]
			if m.i == tag {
				for d := 0; d < s.ndf; d++ {
					r[d] += fg.AtVec(d)
				}
			}
			if m.j == tag {
				for d := 0; d < s.ndf; d++ {
					r[d] += fg.AtVec(s.ndf + d)
				}
			}
		}
		if p, ok := s.nodalLoads[tag]; ok {
			for d := 0; d < s.ndf; d++ {
				r[d] -= lam * p[d]
			}
		}
		for d := 0; d < s.ndf; d++ {
			if !n.fixed[d] {
				r[d] = 0
			}
		}
		s.reactions[tag] = r
	}

	s.analyzed = true
}
