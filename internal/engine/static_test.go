package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	cantA = 0.01
	cantE = 200e6
	cantI = 2e-4
	cantL = 4.0
)

// cantilever2D builds a single-element planar cantilever along +x, fixed
// at node 1.
func cantilever2D(t *testing.T) *Session {
	t.Helper()
	s, err := New(2)
	require.NoError(t, err)
	require.NoError(t, s.AddNode(1, 0, 0, 0))
	require.NoError(t, s.AddNode(2, cantL, 0, 0))
	require.NoError(t, s.AddElement(1, 1, 2, cantA, cantE, 0, 0, 0, cantI, 0))
	require.NoError(t, s.Fix(1, []bool{true, true, true}))
	return s
}

// cantilever3D builds a single-element spatial cantilever along +x with
// identity local axes (vecxz = global z).
func cantilever3D(t *testing.T, g, jx, iy float64) *Session {
	t.Helper()
	s, err := New(3)
	require.NoError(t, err)
	require.NoError(t, s.AddNode(1, 0, 0, 0))
	require.NoError(t, s.AddNode(2, cantL, 0, 0))
	require.NoError(t, s.AddTransform(1, 0, 0, 1))
	require.NoError(t, s.AddElement(1, 1, 2, cantA, cantE, g, jx, iy, cantI, 1))
	require.NoError(t, s.Fix(1, []bool{true, true, true, true, true, true}))
	return s
}

func TestCantileverTipLoad(t *testing.T) {
	s := cantilever2D(t)
	const P = 10.0
	require.NoError(t, s.AddNodalLoad(2, []float64{0, P, 0}))
	require.NoError(t, s.AnalyzeStatic(DefaultStaticOptions()))

	d, err := s.NodeDisp(2)
	require.NoError(t, err)
	assert.InEpsilon(t, P*cantL*cantL*cantL/(3*cantE*cantI), d[1], 1e-9)
	assert.InEpsilon(t, P*cantL*cantL/(2*cantE*cantI), d[2], 1e-9)
	assert.InDelta(t, 0, d[0], 1e-12)

	// the support displaces nothing at all
	d1, err := s.NodeDisp(1)
	require.NoError(t, err)
	for _, v := range d1 {
		assert.Zero(t, v)
	}

	r, err := s.Reactions()
	require.NoError(t, err)
	require.Contains(t, r, 1)
	assert.InDelta(t, -P, r[1][1], 1e-9)
	assert.InDelta(t, -P*cantL, r[1][2], 1e-9)
}

func TestCantileverAxialLoad(t *testing.T) {
	s := cantilever2D(t)
	const P = 50.0
	require.NoError(t, s.AddNodalLoad(2, []float64{P, 0, 0}))
	require.NoError(t, s.AnalyzeStatic(DefaultStaticOptions()))

	d, err := s.NodeDisp(2)
	require.NoError(t, err)
	assert.InEpsilon(t, P*cantL/(cantE*cantA), d[0], 1e-9)
	assert.InDelta(t, 0, d[1], 1e-12)
}

func TestCantileverUniformLoad(t *testing.T) {
	s := cantilever2D(t)
	const w = 12.0
	require.NoError(t, s.AddUniformLoad(1, 0, -w, 0))
	require.NoError(t, s.AnalyzeStatic(DefaultStaticOptions()))

	d, err := s.NodeDisp(2)
	require.NoError(t, err)
	assert.InEpsilon(t, -w*math.Pow(cantL, 4)/(8*cantE*cantI), d[1], 1e-9)

	r, err := s.Reactions()
	require.NoError(t, err)
	assert.InDelta(t, w*cantL, r[1][1], 1e-9)
	assert.InDelta(t, w*cantL*cantL/2, r[1][2], 1e-9)

	// shear linear to zero, moment quadratic to zero at the free end
	sta, err := s.ElementForces(1, 5)
	require.NoError(t, err)
	assert.InDelta(t, w*cantL, sta[0].Vy, 1e-9)
	assert.InDelta(t, w*cantL*cantL/2, sta[0].Mz, 1e-9)
	assert.InDelta(t, 0, sta[4].Vy, 1e-9)
	assert.InDelta(t, 0, sta[4].Mz, 1e-9)
	// quarter point: V = w(L-x), M = w(L-x)²/2
	x := sta[1].X
	assert.InDelta(t, w*(cantL-x), sta[1].Vy, 1e-9)
	assert.InDelta(t, w*(cantL-x)*(cantL-x)/2, sta[1].Mz, 1e-9)
}

func TestCantilever3DAxialTorsionBending(t *testing.T) {
	const (
		g  = 80e6
		jx = 4e-4
		iy = 1e-4
	)
	const P = 10.0

	t.Run("axial", func(t *testing.T) {
		s := cantilever3D(t, g, jx, iy)
		require.NoError(t, s.AddNodalLoad(2, []float64{P, 0, 0, 0, 0, 0}))
		require.NoError(t, s.AnalyzeStatic(DefaultStaticOptions()))
		d, err := s.NodeDisp(2)
		require.NoError(t, err)
		assert.InEpsilon(t, P*cantL/(cantE*cantA), d[0], 1e-9)
	})

	t.Run("torsion", func(t *testing.T) {
		s := cantilever3D(t, g, jx, iy)
		require.NoError(t, s.AddNodalLoad(2, []float64{0, 0, 0, P, 0, 0}))
		require.NoError(t, s.AnalyzeStatic(DefaultStaticOptions()))
		d, err := s.NodeDisp(2)
		require.NoError(t, err)
		assert.InEpsilon(t, P*cantL/(g*jx), d[3], 1e-9)

		sta, err := s.ElementForces(1, 3)
		require.NoError(t, err)
		for _, st := range sta {
			assert.InDelta(t, P, st.T, 1e-9)
		}
	})

	t.Run("bending about z", func(t *testing.T) {
		s := cantilever3D(t, g, jx, iy)
		require.NoError(t, s.AddNodalLoad(2, []float64{0, P, 0, 0, 0, 0}))
		require.NoError(t, s.AnalyzeStatic(DefaultStaticOptions()))
		d, err := s.NodeDisp(2)
		require.NoError(t, err)
		assert.InEpsilon(t, P*math.Pow(cantL, 3)/(3*cantE*cantI), d[1], 1e-9)
	})

	t.Run("bending about y", func(t *testing.T) {
		s := cantilever3D(t, g, jx, iy)
		require.NoError(t, s.AddNodalLoad(2, []float64{0, 0, P, 0, 0, 0}))
		require.NoError(t, s.AnalyzeStatic(DefaultStaticOptions()))
		d, err := s.NodeDisp(2)
		require.NoError(t, err)
		assert.InEpsilon(t, P*math.Pow(cantL, 3)/(3*cantE*iy), d[2], 1e-9)

		sta, err := s.ElementForces(1, 3)
		require.NoError(t, err)
		assert.InDelta(t, -P, sta[0].Vz, 1e-9)
		assert.InDelta(t, P*cantL, sta[0].My, 1e-9)
		assert.InDelta(t, 0, sta[2].My, 1e-9)
	})
}

// portal3D is the bent frame the interactive tools start with: a column,
// a beam in x and a beam in y, loaded at the free corner.
func portal3D(t *testing.T) *Session {
	t.Helper()
	s, err := New(3)
	require.NoError(t, err)
	require.NoError(t, s.AddNode(1, 0, 0, 0))
	require.NoError(t, s.AddNode(2, 0, 0, 4))
	require.NoError(t, s.AddNode(3, 4, 0, 4))
	require.NoError(t, s.AddNode(4, 4, 4, 4))
	require.NoError(t, s.AddTransform(1, 1, 0, 0))
	require.NoError(t, s.AddTransform(2, 0, 0, 1))

	const (
		a  = 0.09
		e  = 30e6
		g  = 11.5e6
		jx = 1.08e-3
		i  = 6.75e-4
	)
	require.NoError(t, s.AddElement(1, 1, 2, a, e, g, jx, i, i, 1))
	require.NoError(t, s.AddElement(2, 2, 3, a, e, g, jx, i, i, 2))
	require.NoError(t, s.AddElement(3, 3, 4, a, e, g, jx, i, i, 2))
	require.NoError(t, s.Fix(1, []bool{true, true, true, true, true, true}))
	return s
}

func TestPortalFrameStatics(t *testing.T) {
	s := portal3D(t)
	load := []float64{-40, -25, -30, 0, 0, 0}
	require.NoError(t, s.AddNodalLoad(4, load))
	require.NoError(t, s.AnalyzeStatic(DefaultStaticOptions()))

	d4, err := s.NodeDisp(4)
	require.NoError(t, err)
	assert.NotZero(t, d4[0])
	assert.NotZero(t, d4[1])
	assert.NotZero(t, d4[2])

	d1, err := s.NodeDisp(1)
	require.NoError(t, err)
	for _, v := range d1 {
		assert.Zero(t, v)
	}

	// global equilibrium: the single support balances the corner load,
	// forces directly and moments through the lever arm (4,4,4)
	r, err := s.Reactions()
	require.NoError(t, err)
	require.Contains(t, r, 1)
	assert.InDelta(t, 40, r[1][0], 1e-6)
	assert.InDelta(t, 25, r[1][1], 1e-6)
	assert.InDelta(t, 30, r[1][2], 1e-6)
	assert.InDelta(t, 20, r[1][3], 1e-6)
	assert.InDelta(t, 40, r[1][4], 1e-6)
	assert.InDelta(t, -60, r[1][5], 1e-6)
}

func TestLoadFactorScalesLinearly(t *testing.T) {
	s := cantilever2D(t)
	require.NoError(t, s.AddNodalLoad(2, []float64{0, 10, 0}))
	require.NoError(t, s.AnalyzeStatic(DefaultStaticOptions()))
	ref, err := s.NodeDisp(2)
	require.NoError(t, err)

	opts := DefaultStaticOptions()
	opts.LoadFactor = 2.5
	require.NoError(t, s.AnalyzeStatic(opts))
	d, err := s.NodeDisp(2)
	require.NoError(t, err)
	assert.InEpsilon(t, 2.5*ref[1], d[1], 1e-12)
}

func TestSubdivisionDoesNotChangeResults(t *testing.T) {
	const w = 8.0

	coarse := cantilever2D(t)
	require.NoError(t, coarse.AddUniformLoad(1, 0, -w, 0))
	require.NoError(t, coarse.AnalyzeStatic(DefaultStaticOptions()))

	// same cantilever as four collinear pieces
	fine, err := New(2)
	require.NoError(t, err)
	for k := 0; k <= 4; k++ {
		require.NoError(t, fine.AddNode(k+1, cantL*float64(k)/4, 0, 0))
	}
	for k := 1; k <= 4; k++ {
		require.NoError(t, fine.AddElement(k, k, k+1, cantA, cantE, 0, 0, 0, cantI, 0))
		require.NoError(t, fine.AddUniformLoad(k, 0, -w, 0))
	}
	require.NoError(t, fine.Fix(1, []bool{true, true, true}))
	require.NoError(t, fine.AnalyzeStatic(DefaultStaticOptions()))

	dc, err := coarse.NodeDisp(2)
	require.NoError(t, err)
	df, err := fine.NodeDisp(5)
	require.NoError(t, err)
	assert.InEpsilon(t, dc[1], df[1], 1e-9)

	rc, err := coarse.Reactions()
	require.NoError(t, err)
	rf, err := fine.Reactions()
	require.NoError(t, err)
	for d := 0; d < 3; d++ {
		assert.InDelta(t, rc[1][d], rf[1][d], 1e-8)
	}
}

func TestHermiteDeflectionSampling(t *testing.T) {
	s := cantilever2D(t)
	const P = 10.0
	require.NoError(t, s.AddNodalLoad(2, []float64{0, P, 0}))
	require.NoError(t, s.AnalyzeStatic(DefaultStaticOptions()))

	pts, err := s.ElementDeflection(1, 3)
	require.NoError(t, err)
	require.Len(t, pts, 3)

	// under an end load the cubic interpolant is the exact solution:
	// u(L/2) = 5PL³/48EI
	mid := pts[1]
	assert.InDelta(t, cantL/2, mid.Pos[0], 1e-12)
	assert.InEpsilon(t, 5*P*math.Pow(cantL, 3)/(48*cantE*cantI), mid.Disp[1], 1e-9)
	assert.Zero(t, pts[0].Disp[1])
}

func TestUnstableModelIsSingular(t *testing.T) {
	s, err := New(2)
	require.NoError(t, err)
	require.NoError(t, s.AddNode(1, 0, 0, 0))
	require.NoError(t, s.AddNode(2, 4, 0, 0))
	require.NoError(t, s.AddElement(1, 1, 2, cantA, cantE, 0, 0, 0, cantI, 0))
	// no supports at all
	require.NoError(t, s.AddNodalLoad(2, []float64{0, 1, 0}))

	err = s.AnalyzeStatic(DefaultStaticOptions())
	var sing *SingularError
	assert.ErrorAs(t, err, &sing)
}

func TestStaticOptionsValidation(t *testing.T) {
	s := cantilever2D(t)
	require.NoError(t, s.AddNodalLoad(2, []float64{0, 1, 0}))

	opts := DefaultStaticOptions()
	opts.Algorithm = "Newton"
	assert.ErrorContains(t, s.AnalyzeStatic(opts), "unsupported algorithm")

	opts = DefaultStaticOptions()
	opts.Constraints = "Penalty"
	assert.ErrorContains(t, s.AnalyzeStatic(opts), "unsupported constraint handler")

	opts = DefaultStaticOptions()
	opts.Tolerance = 0
	assert.ErrorContains(t, s.AnalyzeStatic(opts), "tolerance")

	// the Plain/FullGeneral spellings are equally canonical
	opts = DefaultStaticOptions()
	opts.Numberer = "Plain"
	opts.System = "FullGeneral"
	assert.NoError(t, s.AnalyzeStatic(opts))
}

func TestQueriesBeforeAnalysis(t *testing.T) {
	s := cantilever2D(t)
	_, err := s.NodeDisp(2)
	assert.ErrorContains(t, err, "no analysis results")
	_, err = s.Reactions()
	assert.ErrorContains(t, err, "no analysis results")
	_, err = s.ElementForces(1, 5)
	assert.ErrorContains(t, err, "no analysis results")
}

func TestResetWipesEverything(t *testing.T) {
	s := cantilever2D(t)
	require.NoError(t, s.AddNodalLoad(2, []float64{0, 1, 0}))
	require.NoError(t, s.AnalyzeStatic(DefaultStaticOptions()))

	s.Reset()
	assert.Empty(t, s.NodeTags())
	assert.Empty(t, s.ElementTags())
	_, err := s.NodeDisp(2)
	assert.Error(t, err)

	// the session is immediately reusable
	require.NoError(t, s.AddNode(1, 0, 0, 0))
}

func TestDefinitionGuards(t *testing.T) {
	s, err := New(2)
	require.NoError(t, err)
	require.NoError(t, s.AddNode(1, 0, 0, 0))

	assert.ErrorContains(t, s.AddNode(1, 1, 0, 0), "already defined")
	assert.ErrorContains(t, s.AddNode(3, 0, 0, 2), "planar")
	assert.ErrorContains(t, s.AddTransform(1, 0, 0, 1), "spatial sessions only")
	assert.ErrorContains(t, s.AddElement(1, 1, 9, cantA, cantE, 0, 0, 0, cantI, 0), "node 9 not defined")
	assert.ErrorContains(t, s.Fix(9, []bool{true, true, true}), "not defined")
	assert.ErrorContains(t, s.Fix(1, []bool{true}), "needs 3 flags")
	assert.ErrorContains(t, s.AddMass(1, []float64{-1, 0, 0}), "negative mass")
	assert.ErrorContains(t, s.AddNodalLoad(1, []float64{1}), "needs 3 components")
	assert.ErrorContains(t, s.AddUniformLoad(7, 0, -1, 0), "not defined")

	require.NoError(t, s.AddNode(2, 0, 2, 0))
	require.NoError(t, s.AddElement(1, 1, 2, cantA, cantE, 0, 0, 0, cantI, 0))
	assert.ErrorContains(t, s.AddUniformLoad(1, 0, 0, 3), "planar")

	_, err = New(4)
	assert.Error(t, err)
}

func TestTransformParallelToAxisRejected(t *testing.T) {
	s, err := New(3)
	require.NoError(t, err)
	require.NoError(t, s.AddNode(1, 0, 0, 0))
	require.NoError(t, s.AddNode(2, 0, 0, 4))
	require.NoError(t, s.AddTransform(1, 0, 0, 1))
	err = s.AddElement(1, 1, 2, cantA, cantE, 1, 1, 1, 1, 1)
	assert.ErrorContains(t, err, "parallel")
}

func TestForceComponentSelector(t *testing.T) {
	st := ForceStation{N: 1, Vy: 2, Vz: 3, T: 4, My: 5, Mz: 6}
	for name, want := range map[string]float64{
		"N": 1, "Vy": 2, "Vz": 3, "T": 4, "My": 5, "Mz": 6,
	} {
		v, err := st.Component(name)
		require.NoError(t, err)
		assert.Equal(t, want, v)
	}
	_, err := st.Component("Q")
	assert.ErrorContains(t, err, "unknown force component")
}
