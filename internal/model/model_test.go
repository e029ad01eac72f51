package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func planarBeam() *Model {
	return &Model{
		Ndm: 2,
		Nodes: []Node{
			{Tag: 1, X: 0, Y: 0},
			{Tag: 2, X: 6, Y: 0},
		},
		Elements: []Element{
			{Tag: 1, I: 1, J: 2, A: 0.01, E: 200e6, Iz: 2e-4},
		},
		Fixities:     []Fixity{{Node: 1, Flags: [6]bool{true, true, true}}},
		UniformLoads: []UniformLoad{{Element: 1, Wy: -10}},
	}
}

func TestValidateAcceptsSoundModel(t *testing.T) {
	assert.NoError(t, planarBeam().Validate())
}

func TestValidateCollectsAllProblems(t *testing.T) {
	m := &Model{
		Ndm: 2,
		Nodes: []Node{
			{Tag: 1},
			{Tag: 1, X: 1},
		},
		Elements: []Element{
			{Tag: 1, I: 1, J: 9, A: 1, E: 1},
			{Tag: 1, I: 2, J: 2, A: 1, E: 1},
		},
		Fixities:     []Fixity{{Node: 7}},
		PointLoads:   []PointLoad{{Node: 8}},
		UniformLoads: []UniformLoad{{Element: 5}},
	}
	err := m.Validate()
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, err.Error(), "duplicate node tag 1")
	assert.Contains(t, err.Error(), "unknown node 9")
	assert.Contains(t, err.Error(), "duplicate element tag 1")
	assert.Contains(t, err.Error(), "connects node 2 to itself")
	assert.Contains(t, err.Error(), "fixity references unknown node 7")
	assert.Contains(t, err.Error(), "load references unknown node 8")
	assert.Contains(t, err.Error(), "element load references unknown element 5")
	assert.GreaterOrEqual(t, len(ve.Problems), 7)
}

func TestValidateZeroLengthElement(t *testing.T) {
	m := planarBeam()
	m.Nodes[1].X = 0
	assert.ErrorContains(t, m.Validate(), "zero length")
}

func TestValidateSpatialTransformRefs(t *testing.T) {
	m := &Model{
		Ndm: 3,
		Nodes: []Node{
			{Tag: 1}, {Tag: 2, Z: 3},
		},
		Transforms: []Transform{{Tag: 1, X: 1}},
		Elements: []Element{
			{Tag: 1, I: 1, J: 2, A: 1, E: 1, Transf: 9},
		},
	}
	assert.ErrorContains(t, m.Validate(), "unknown transform 9")

	m.Transforms = append(m.Transforms, Transform{Tag: 2})
	m.Elements[0].Transf = 1
	assert.ErrorContains(t, m.Validate(), "zero orientation vector")
}

func TestSubdivideOneIsIdentity(t *testing.T) {
	m := planarBeam()
	m.Subdivide(1)
	assert.Len(t, m.Nodes, 2)
	assert.Len(t, m.Elements, 1)
	assert.Len(t, m.UniformLoads, 1)
}

func TestSubdivideSplitsElements(t *testing.T) {
	m := planarBeam()
	m.Subdivide(4)

	require.Len(t, m.Nodes, 5)
	require.Len(t, m.Elements, 4)
	assert.NoError(t, m.Validate())

	// interior nodes interpolate the ends exactly
	n3, ok := m.NodeByTag(3)
	require.True(t, ok)
	assert.Equal(t, 1.5, n3.X)
	n4, ok := m.NodeByTag(4)
	require.True(t, ok)
	assert.Equal(t, 3.0, n4.X)

	// the first piece keeps the original tag, the rest get fresh ones
	assert.Equal(t, 1, m.Elements[0].Tag)
	seen := map[int]bool{}
	for _, e := range m.Elements {
		assert.False(t, seen[e.Tag], "element tag %d reused", e.Tag)
		seen[e.Tag] = true
	}

	// chain connectivity from node 1 to node 2
	assert.Equal(t, 1, m.Elements[0].I)
	assert.Equal(t, 2, m.Elements[3].J)
	for k := 1; k < 4; k++ {
		assert.Equal(t, m.Elements[k-1].J, m.Elements[k].I)
	}

	// section properties carry over
	for _, e := range m.Elements {
		assert.Equal(t, 0.01, e.A)
		assert.Equal(t, 2e-4, e.Iz)
	}

	// the per-length load lands on every piece, preserving the total
	require.Len(t, m.UniformLoads, 4)
	var total float64
	for _, u := range m.UniformLoads {
		e, found := findElement(m, u.Element)
		require.True(t, found)
		total += u.Wy * m.ElementLength(e)
	}
	assert.InDelta(t, -10.0*6, total, 1e-12)
}

func TestSubdivideFreshTagsAboveExisting(t *testing.T) {
	m := planarBeam()
	m.Nodes = append(m.Nodes, Node{Tag: 40, X: 12})
	m.Elements = append(m.Elements, Element{Tag: 17, I: 2, J: 40, A: 0.01, E: 200e6, Iz: 2e-4})

	m.Subdivide(2)
	require.NoError(t, m.Validate())
	for _, n := range m.Nodes[3:] {
		assert.Greater(t, n.Tag, 40)
	}
	for _, e := range m.Elements {
		if e.Tag != 1 && e.Tag != 17 {
			assert.Greater(t, e.Tag, 17)
		}
	}
}

func findElement(m *Model, tag int) (Element, bool) {
	for _, e := range m.Elements {
		if e.Tag == tag {
			return e, true
		}
	}
	return Element{}, false
}

func TestMaxTags(t *testing.T) {
	m := planarBeam()
	assert.Equal(t, 2, m.MaxNodeTag())
	assert.Equal(t, 1, m.MaxElementTag())

	empty := &Model{Ndm: 2}
	assert.Equal(t, 0, empty.MaxNodeTag())
	assert.Equal(t, 0, empty.MaxElementTag())
}

func TestNdf(t *testing.T) {
	assert.Equal(t, 3, (&Model{Ndm: 2}).Ndf())
	assert.Equal(t, 6, (&Model{Ndm: 3}).Ndf())
}
