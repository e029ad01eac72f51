package model

// Subdivide replaces every element with n collinear sub-elements,
// inserting n-1 interior nodes per element by uniform linear
// interpolation between its ends. Section and material properties carry
// over to every sub-element, as do uniform element loads (per unit
// length, so the total load is preserved). n=1 leaves the model
// unchanged.
//
// Interior node tags are assigned strictly above the largest existing
// tag, tracked as a running maximum so repeated insertions never rescan
// the node list. Sub-element tags follow the same rule; the first
// sub-element keeps the original tag so element loads and diagram
// annotations stay attached.
func (m *Model) Subdivide(n int) {
	if n <= 1 {
		return
	}

	nextNode := m.MaxNodeTag()
	nextEle := m.MaxElementTag()

	loadsByEle := make(map[int][]int) // element tag -> indices into m.UniformLoads
	for i, u := range m.UniformLoads {
		loadsByEle[u.Element] = append(loadsByEle[u.Element], i)
	}

	elements := make([]Element, 0, len(m.Elements)*n)
	for _, e := range m.Elements {
		ni, _ := m.NodeByTag(e.I)
		nj, _ := m.NodeByTag(e.J)

		prev := e.I
		for k := 1; k <= n; k++ {
			var end int
			if k == n {
				end = e.J
			} else {
				t := float64(k) / float64(n)
				nextNode++
				end = nextNode
				m.Nodes = append(m.Nodes, Node{
					Tag: end,
					X:   ni.X + t*(nj.X-ni.X),
					Y:   ni.Y + t*(nj.Y-ni.Y),
					Z:   ni.Z + t*(nj.Z-ni.Z),
				})
			}

			sub := e
			sub.I = prev
			sub.J = end
			if k > 1 {
				nextEle++
				sub.Tag = nextEle
				for _, li := range loadsByEle[e.Tag] {
					dup := m.UniformLoads[li]
					dup.Element = sub.Tag
					m.UniformLoads = append(m.UniformLoads, dup)
				}
			}
			elements = append(elements, sub)
			prev = end
		}
	}
	m.Elements = elements
}
