package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEigenAxialMode(t *testing.T) {
	// a tip mass on an axial member is a textbook one-DOF oscillator:
	// ω² = EA/(Lm). The massless bending DOFs are condensed away.
	const m = 3.0
	s := cantilever2D(t)
	require.NoError(t, s.AddMass(2, []float64{m, 0, 0}))

	values, err := s.Eigen(1)
	require.NoError(t, err)
	require.Len(t, values, 1)
	assert.InEpsilon(t, cantE*cantA/(cantL*m), values[0], 1e-9)

	// shapes are mass normalized: φᵀMφ = 1
	shape, err := s.ModeShape(1)
	require.NoError(t, err)
	assert.InEpsilon(t, 1/math.Sqrt(m), math.Abs(shape[2][0]), 1e-9)
}

func TestEigenBendingModeWithCondensation(t *testing.T) {
	// tip mass in translation only; condensing the massless tip rotation
	// gives the exact cantilever stiffness 3EI/L³
	const m = 5.0
	s := cantilever2D(t)
	require.NoError(t, s.AddMass(2, []float64{0, m, 0}))

	values, err := s.Eigen(1)
	require.NoError(t, err)
	assert.InEpsilon(t, 3*cantE*cantI/(math.Pow(cantL, 3)*m), values[0], 1e-9)

	// the recovered rotation of the condensed DOF follows the static
	// deflection shape: θ = 3/(2L) · u_tip
	shape, err := s.ModeShape(1)
	require.NoError(t, err)
	uy := shape[2][1]
	rz := shape[2][2]
	assert.InEpsilon(t, 3/(2*cantL)*uy, rz, 1e-9)
}

func TestEigenOrderingAndCount(t *testing.T) {
	s, err := New(2)
	require.NoError(t, err)
	require.NoError(t, s.AddNode(1, 0, 0, 0))
	require.NoError(t, s.AddNode(2, 0, 3, 0))
	require.NoError(t, s.AddNode(3, 0, 6, 0))
	require.NoError(t, s.AddElement(1, 1, 2, cantA, cantE, 0, 0, 0, cantI, 0))
	require.NoError(t, s.AddElement(2, 2, 3, cantA, cantE, 0, 0, 0, cantI, 0))
	require.NoError(t, s.Fix(1, []bool{true, true, true}))
	require.NoError(t, s.AddMass(2, []float64{10, 10, 0}))
	require.NoError(t, s.AddMass(3, []float64{10, 10, 0}))

	values, err := s.Eigen(4)
	require.NoError(t, err)
	require.Len(t, values, 4)
	for i, v := range values {
		assert.Greater(t, v, 0.0)
		if i > 0 {
			assert.GreaterOrEqual(t, v, values[i-1])
		}
	}
}

func TestEigenMasses3D(t *testing.T) {
	s := portal3D(t)
	require.NoError(t, s.AddMass(4, []float64{200, 200, 200, 0, 0, 0}))

	values, err := s.Eigen(3)
	require.NoError(t, err)
	require.Len(t, values, 3)
	for _, v := range values {
		assert.Greater(t, v, 0.0)
	}

	for mode := 1; mode <= 3; mode++ {
		shape, err := s.ModeShape(mode)
		require.NoError(t, err)
		var peak float64
		for _, d := range shape[4][:3] {
			peak = math.Max(peak, math.Abs(d))
		}
		assert.Greater(t, peak, 0.0)
	}
}

func TestEigenErrors(t *testing.T) {
	s := cantilever2D(t)
	_, err := s.Eigen(1)
	assert.ErrorContains(t, err, "no mass")

	require.NoError(t, s.AddMass(2, []float64{1, 1, 0}))
	_, err = s.Eigen(3)
	assert.ErrorContains(t, err, "massed DOFs")
	_, err = s.Eigen(0)
	assert.ErrorContains(t, err, "at least 1")

	_, err = s.ModeShape(1)
	assert.ErrorContains(t, err, "no eigen results")
	_, err = s.Eigen(2)
	require.NoError(t, err)
	_, err = s.ModeShape(3)
	assert.ErrorContains(t, err, "out of range")
}
