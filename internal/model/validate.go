package model

import (
	"fmt"
	"strings"
)

// ValidationError collects every referential and structural problem found
// in a model, so a user sees all of them in one pass instead of fixing
// them one engine failure at a time.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 1 {
		return "invalid model: " + e.Problems[0]
	}
	return fmt.Sprintf("invalid model (%d problems):\n  - %s",
		len(e.Problems), strings.Join(e.Problems, "\n  - "))
}

// Validate checks tag uniqueness, referential integrity and element
// geometry before anything reaches the analysis session.
func (m *Model) Validate() error {
	var problems []string
	addf := func(format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if m.Ndm != 2 && m.Ndm != 3 {
		addf("spatial dimension must be 2 or 3, got %d", m.Ndm)
	}
	if len(m.Nodes) == 0 {
		addf("model has no nodes")
	}

	nodeTags := make(map[int]bool, len(m.Nodes))
	for _, n := range m.Nodes {
		if nodeTags[n.Tag] {
			addf("duplicate node tag %d", n.Tag)
		}
		nodeTags[n.Tag] = true
	}

	transfTags := make(map[int]bool, len(m.Transforms))
	for _, t := range m.Transforms {
		if transfTags[t.Tag] {
			addf("duplicate transform tag %d", t.Tag)
		}
		transfTags[t.Tag] = true
		if t.X == 0 && t.Y == 0 && t.Z == 0 {
			addf("transform %d has a zero orientation vector", t.Tag)
		}
	}

	eleTags := make(map[int]bool, len(m.Elements))
	for _, e := range m.Elements {
		if eleTags[e.Tag] {
			addf("duplicate element tag %d", e.Tag)
		}
		eleTags[e.Tag] = true

		for _, end := range []int{e.I, e.J} {
			if !nodeTags[end] {
				addf("element %d references unknown node %d", e.Tag, end)
			}
		}
		if e.I == e.J {
			addf("element %d connects node %d to itself", e.Tag, e.I)
		} else if nodeTags[e.I] && nodeTags[e.J] && m.ElementLength(e) == 0 {
			addf("element %d has zero length (nodes %d and %d coincide)", e.Tag, e.I, e.J)
		}
		if m.Ndm == 3 && !transfTags[e.Transf] {
			addf("element %d references unknown transform %d", e.Tag, e.Transf)
		}
	}

	for _, f := range m.Fixities {
		if !nodeTags[f.Node] {
			addf("fixity references unknown node %d", f.Node)
		}
	}
	for _, ms := range m.Masses {
		if !nodeTags[ms.Node] {
			addf("mass references unknown node %d", ms.Node)
		}
	}
	for _, p := range m.PointLoads {
		if !nodeTags[p.Node] {
			addf("load references unknown node %d", p.Node)
		}
	}
	for _, u := range m.UniformLoads {
		if !eleTags[u.Element] {
			addf("element load references unknown element %d", u.Element)
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
