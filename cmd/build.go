package cmd

import (
	"fmt"
	"os"

	"github.com/alexiusacademia/goframe/internal/diagram"
	"github.com/alexiusacademia/goframe/internal/engine"
	"github.com/alexiusacademia/goframe/internal/input"
	"github.com/alexiusacademia/goframe/internal/model"
	"github.com/alexiusacademia/goframe/internal/sectlib"
)

// loadSpatial reads and parses a 3D model file.
func loadSpatial(path string) (*model.Model, map[int]sectlib.Shape, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, "", fmt.Errorf("reading model file: %w", err)
	}
	var doc input.Document
	if err := doc.Parse(data); err != nil {
		return nil, nil, "", fmt.Errorf("parsing model file: %w", err)
	}
	m, shapes, err := doc.Build()
	if err != nil {
		return nil, nil, "", err
	}
	return m, shapes, doc.Title, nil
}

// loadPlane reads and parses a planar model file.
func loadPlane(path string) (*model.Model, int, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, "", fmt.Errorf("reading model file: %w", err)
	}
	var doc input.PlaneDocument
	if err := doc.Parse(data); err != nil {
		return nil, 0, "", fmt.Errorf("parsing model file: %w", err)
	}
	m, subdiv, err := doc.Build()
	if err != nil {
		return nil, 0, "", err
	}
	return m, subdiv, doc.Title, nil
}

// buildSession rebuilds an analysis session from a validated model, one
// definition call per record.
func buildSession(m *model.Model) (*engine.Session, error) {
	s, err := engine.New(m.Ndm)
	if err != nil {
		return nil, err
	}
	ndf := m.Ndf()

	for _, n := range m.Nodes {
		if err := s.AddNode(n.Tag, n.X, n.Y, n.Z); err != nil {
			return nil, err
		}
	}
	for _, t := range m.Transforms {
		if err := s.AddTransform(t.Tag, t.X, t.Y, t.Z); err != nil {
			return nil, err
		}
	}
	for _, e := range m.Elements {
		if err := s.AddElement(e.Tag, e.I, e.J, e.A, e.E, e.G, e.Jx, e.Iy, e.Iz, e.Transf); err != nil {
			return nil, err
		}
	}
	for _, f := range m.Fixities {
		if err := s.Fix(f.Node, f.Flags[:ndf]); err != nil {
			return nil, err
		}
	}
	for _, ms := range m.Masses {
		if err := s.AddMass(ms.Node, ms.Values[:ndf]); err != nil {
			return nil, err
		}
	}
	for _, p := range m.PointLoads {
		if err := s.AddNodalLoad(p.Node, p.Components[:ndf]); err != nil {
			return nil, err
		}
	}
	for _, u := range m.UniformLoads {
		if err := s.AddUniformLoad(u.Element, u.Wx, u.Wy, u.Wz); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// memberLines collects undeformed member geometry for figures.
func memberLines(s *engine.Session) ([]diagram.Line, error) {
	var lines []diagram.Line
	for _, tag := range s.ElementTags() {
		i, j, err := s.ElementEnds(tag)
		if err != nil {
			return nil, err
		}
		from, err := s.NodeCoords(i)
		if err != nil {
			return nil, err
		}
		to, err := s.NodeCoords(j)
		if err != nil {
			return nil, err
		}
		lines = append(lines, diagram.Line{Tag: tag, From: from, To: to})
	}
	return lines, nil
}

// nodeMarks collects node positions and tags for the model figure.
func nodeMarks(s *engine.Session) []diagram.NodeMark {
	var marks []diagram.NodeMark
	for _, tag := range s.NodeTags() {
		xyz, err := s.NodeCoords(tag)
		if err != nil {
			continue
		}
		marks = append(marks, diagram.NodeMark{Tag: tag, Pos: xyz})
	}
	return marks
}

// deformedCurves samples the solved displacement field along every
// member, amplified by scale.
func deformedCurves(s *engine.Session, nsta int, scale float64) ([]diagram.Curve, error) {
	var curves []diagram.Curve
	for _, tag := range s.ElementTags() {
		pts, err := s.ElementDeflection(tag, nsta)
		if err != nil {
			return nil, err
		}
		curves = append(curves, scaleShape(tag, pts, scale))
	}
	return curves, nil
}

// modeCurves samples one mode shape along every member, amplified by
// scale.
func modeCurves(s *engine.Session, mode, nsta int, scale float64) ([]diagram.Curve, error) {
	var curves []diagram.Curve
	for _, tag := range s.ElementTags() {
		pts, err := s.ModeDeflection(mode, tag, nsta)
		if err != nil {
			return nil, err
		}
		curves = append(curves, scaleShape(tag, pts, scale))
	}
	return curves, nil
}

func scaleShape(tag int, pts []engine.ShapePoint, scale float64) diagram.Curve {
	c := diagram.Curve{Tag: tag, Points: make([][3]float64, len(pts))}
	for k, p := range pts {
		for g := 0; g < 3; g++ {
			c.Points[k][g] = p.Pos[g] + scale*p.Disp[g]
		}
	}
	return c
}

// forceCurves samples one internal-force component along every member.
func forceCurves(s *engine.Session, component string, nsta int) ([]diagram.ForceCurve, error) {
	lines, err := memberLines(s)
	if err != nil {
		return nil, err
	}
	var curves []diagram.ForceCurve
	for _, ln := range lines {
		stations, err := s.ElementForces(ln.Tag, nsta)
		if err != nil {
			return nil, err
		}
		c := diagram.ForceCurve{Tag: ln.Tag, From: ln.From, To: ln.To}
		length := stations[len(stations)-1].X
		for _, st := range stations {
			v, err := st.Component(component)
			if err != nil {
				return nil, err
			}
			frac := 0.0
			if length > 0 {
				frac = st.X / length
			}
			c.Frac = append(c.Frac, frac)
			c.Values = append(c.Values, v)
		}
		curves = append(curves, c)
	}
	return curves, nil
}

// modelExtent returns the largest coordinate span of the model, used to
// auto-scale diagrams relative to the structure size.
func modelExtent(s *engine.Session) float64 {
	first := true
	var min, max [3]float64
	for _, tag := range s.NodeTags() {
		xyz, err := s.NodeCoords(tag)
		if err != nil {
			continue
		}
		if first {
			min, max = xyz, xyz
			first = false
			continue
		}
		for g := 0; g < 3; g++ {
			if xyz[g] < min[g] {
				min[g] = xyz[g]
			}
			if xyz[g] > max[g] {
				max[g] = xyz[g]
			}
		}
	}
	extent := 0.0
	for g := 0; g < 3; g++ {
		if d := max[g] - min[g]; d > extent {
			extent = d
		}
	}
	return extent
}
