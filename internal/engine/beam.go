package engine

import "gonum.org/v1/gonum/mat"

// localStiffness returns the member stiffness matrix in local axes:
// 6x6 for the planar Euler-Bernoulli beam, 12x12 for the spatial
// elastic beam-column (axial, torsion, bending about both local axes,
// no shear deformation).
func (m *member) localStiffness(ndm int) *mat.Dense {
	l := m.length
	ll := l * l

	if ndm == 2 {
		k := mat.NewDense(6, 6, nil)
		ax := m.e * m.a / l
		n := m.e * m.iz / (ll * l)
		k.Set(0, 0, ax)
		k.Set(0, 3, -ax)
		k.Set(1, 1, 12*n)
		k.Set(1, 2, 6*l*n)
		k.Set(1, 4, -12*n)
		k.Set(1, 5, 6*l*n)
		k.Set(2, 2, 4*ll*n)
		k.Set(2, 4, -6*l*n)
		k.Set(2, 5, 2*ll*n)
		k.Set(3, 3, ax)
		k.Set(4, 4, 12*n)
		k.Set(4, 5, -6*l*n)
		k.Set(5, 5, 4*ll*n)
		mirror(k)
		return k
	}

	k := mat.NewDense(12, 12, nil)
	ax := m.e * m.a / l
	tr := m.g * m.jx / l
	nz := m.e * m.iz / (ll * l) // bending about local z (y-displacements)
	ny := m.e * m.iy / (ll * l) // bending about local y (z-displacements)

	k.Set(0, 0, ax)
	k.Set(0, 6, -ax)
	k.Set(6, 6, ax)

	k.Set(3, 3, tr)
	k.Set(3, 9, -tr)
	k.Set(9, 9, tr)

	k.Set(1, 1, 12*nz)
	k.Set(1, 5, 6*l*nz)
	k.Set(1, 7, -12*nz)
	k.Set(1, 11, 6*l*nz)
	k.Set(5, 5, 4*ll*nz)
	k.Set(5, 7, -6*l*nz)
	k.Set(5, 11, 2*ll*nz)
	k.Set(7, 7, 12*nz)
	k.Set(7, 11, -6*l*nz)
	k.Set(11, 11, 4*ll*nz)

	k.Set(2, 2, 12*ny)
	k.Set(2, 4, -6*l*ny)
	k.Set(2, 8, -12*ny)
	k.Set(2, 10, -6*l*ny)
	k.Set(4, 4, 4*ll*ny)
	k.Set(4, 8, 6*l*ny)
	k.Set(4, 10, 2*ll*ny)
	k.Set(8, 8, 12*ny)
	k.Set(8, 10, 6*l*ny)
	k.Set(10, 10, 4*ll*ny)

	mirror(k)
	return k
}

// transformation returns T such that d_local = T * d_global.
func (m *member) transformation(ndm int) *mat.Dense {
	if ndm == 2 {
		c := m.rot[0][0]
		s := m.rot[0][1]
		t := mat.NewDense(6, 6, nil)
		for _, off := range []int{0, 3} {
			t.Set(off, off, c)
			t.Set(off, off+1, s)
			t.Set(off+1, off, -s)
			t.Set(off+1, off+1, c)
			t.Set(off+2, off+2, 1)
		}
		return t
	}

	t := mat.NewDense(12, 12, nil)
	for blk := 0; blk < 4; blk++ {
		off := 3 * blk
		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				t.Set(off+r, off+c, m.rot[r][c])
			}
		}
	}
	return t
}

// equivLoad returns the consistent nodal load vector, in local axes, for
// the member's accumulated uniform load at unit load factor.
func (m *member) equivLoad(ndm int) []float64 {
	l := m.length
	wx, wy, wz := m.w[0], m.w[1], m.w[2]

	if ndm == 2 {
		return []float64{
			wx * l / 2,
			wy * l / 2,
			wy * l * l / 12,
			wx * l / 2,
			wy * l / 2,
			-wy * l * l / 12,
		}
	}

	f := make([]float64, 12)
	f[0] = wx * l / 2
	f[6] = wx * l / 2
	f[1] = wy * l / 2
	f[7] = wy * l / 2
	f[5] = wy * l * l / 12
	f[11] = -wy * l * l / 12
	// rotation about y follows -d(uz)/dx, so the moment signs flip
	f[2] = wz * l / 2
	f[8] = wz * l / 2
	f[4] = -wz * l * l / 12
	f[10] = wz * l * l / 12
	return f
}

// globalStiffness returns Tᵀ k T for the member.
func (m *member) globalStiffness(ndm int) *mat.Dense {
	k := m.localStiffness(ndm)
	t := m.transformation(ndm)
	n, _ := k.Dims()
	tmp := mat.NewDense(n, n, nil)
	tmp.Mul(k, t)
	out := mat.NewDense(n, n, nil)
	out.Mul(t.T(), tmp)
	return out
}

// mirror copies the upper triangle into the lower one.
func mirror(a *mat.Dense) {
	n, _ := a.Dims()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			a.Set(j, i, a.At(i, j))
		}
	}
}
