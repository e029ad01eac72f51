package diagram

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Line is one undeformed member for drawing.
type Line struct {
	Tag      int
	From, To [3]float64
}

// NodeMark is one node to draw and label.
type NodeMark struct {
	Tag int
	Pos [3]float64
}

// Curve is a sampled polyline along one member (deformed shape or mode
// shape), already scaled for display.
type Curve struct {
	Tag    int
	Points [][3]float64
}

// ForceCurve carries sampled internal-force values along one member.
// Frac holds the station positions as fractions of the member length.
type ForceCurve struct {
	Tag      int
	From, To [3]float64
	Frac     []float64
	Values   []float64
}

// Projection maps model coordinates onto the drawing plane. Planar
// models map directly; spatial models use an oblique projection with
// global Y receding so typical column-and-beam frames stay readable.
type Projection struct {
	Ndm int
}

const (
	depthFactor = 0.45
	depthAngle  = math.Pi / 6
)

// Point projects one model point.
func (p Projection) Point(pt [3]float64) (x, y float64) {
	if p.Ndm == 2 {
		return pt[0], pt[1]
	}
	return pt[0] - depthFactor*math.Cos(depthAngle)*pt[1],
		pt[2] - depthFactor*math.Sin(depthAngle)*pt[1]
}

// AutoScale returns the factor that maps the peak magnitude of a value
// set onto the given visual extent. A zero peak yields scale 1 so flat
// diagrams still draw.
func AutoScale(extent float64, values []float64) float64 {
	var peak float64
	for _, v := range values {
		peak = math.Max(peak, math.Abs(v))
	}
	if peak == 0 {
		return 1
	}
	return extent / peak
}

// ExportModel draws the undeformed geometry: members with their tags
// at midspan, node markers with their tags alongside.
func ExportModel(proj Projection, members []Line, nodes []NodeMark, filename string) error {
	p := plot.New()
	p.Title.Text = "Model"
	labelAxes(p, proj)

	for _, m := range members {
		if err := addMemberLine(p, proj, m, color.Black, vg.Points(2), nil); err != nil {
			return err
		}
		mx, my := midpoint(proj, m)
		if err := addLabel(p, mx, my, fmt.Sprintf("%d", m.Tag)); err != nil {
			return err
		}
	}

	nodePts := make(plotter.XYs, len(nodes))
	for i, n := range nodes {
		x, y := proj.Point(n.Pos)
		nodePts[i] = plotter.XY{X: x, Y: y}
		if err := addLabel(p, x, y, fmt.Sprintf(" %d", n.Tag)); err != nil {
			return err
		}
	}
	marks, err := plotter.NewScatter(nodePts)
	if err != nil {
		return err
	}
	marks.GlyphStyle.Color = color.RGBA{R: 178, G: 34, B: 34, A: 255}
	marks.GlyphStyle.Radius = vg.Points(3)
	marks.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(marks)

	return save(p, filename)
}

// ExportShape draws sampled displacement curves over the ghosted
// undeformed geometry. Used for both deformed shapes and mode shapes;
// the caller bakes the display scale into the curves.
func ExportShape(proj Projection, title string, members []Line, curves []Curve, filename string) error {
	p := plot.New()
	p.Title.Text = title
	labelAxes(p, proj)

	ghost := color.Gray{Y: 170}
	for _, m := range members {
		if err := addMemberLine(p, proj, m, ghost, vg.Points(1), []vg.Length{vg.Points(4), vg.Points(3)}); err != nil {
			return err
		}
	}

	blue := color.RGBA{B: 205, A: 255}
	for _, c := range curves {
		pts := make(plotter.XYs, len(c.Points))
		for i, pt := range c.Points {
			x, y := proj.Point(pt)
			pts[i] = plotter.XY{X: x, Y: y}
		}
		ln, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		ln.LineStyle.Width = vg.Points(2)
		ln.LineStyle.Color = blue
		p.Add(ln)
	}

	return save(p, filename)
}

// ExportForceDiagram draws one internal-force component along every
// member, offset perpendicular to the member in the drawing plane, with
// hatching back to the member axis. Returns the observed minimum and
// maximum values across all members.
func ExportForceDiagram(proj Projection, title string, curves []ForceCurve, scale float64, filename string) (min, max float64, err error) {
	p := plot.New()
	p.Title.Text = title
	labelAxes(p, proj)

	min = math.Inf(1)
	max = math.Inf(-1)

	green := color.RGBA{G: 120, A: 255}
	for _, c := range curves {
		x1, y1 := proj.Point(c.From)
		x2, y2 := proj.Point(c.To)
		dx, dy := x2-x1, y2-y1
		l := math.Hypot(dx, dy)
		if l == 0 {
			continue
		}
		// unit normal in the drawing plane
		nx, ny := -dy/l, dx/l

		base, err2 := plotter.NewLine(plotter.XYs{{X: x1, Y: y1}, {X: x2, Y: y2}})
		if err2 != nil {
			return 0, 0, err2
		}
		base.LineStyle.Width = vg.Points(2)
		base.LineStyle.Color = color.Black
		p.Add(base)

		pts := make(plotter.XYs, 0, len(c.Frac)+2)
		pts = append(pts, plotter.XY{X: x1, Y: y1})
		for i, f := range c.Frac {
			v := c.Values[i]
			min = math.Min(min, v)
			max = math.Max(max, v)
			bx := x1 + f*dx
			by := y1 + f*dy
			ox := bx + scale*v*nx
			oy := by + scale*v*ny
			pts = append(pts, plotter.XY{X: ox, Y: oy})

			hatch, err2 := plotter.NewLine(plotter.XYs{{X: bx, Y: by}, {X: ox, Y: oy}})
			if err2 != nil {
				return 0, 0, err2
			}
			hatch.LineStyle.Width = vg.Points(0.5)
			hatch.LineStyle.Color = green
			p.Add(hatch)
		}
		pts = append(pts, plotter.XY{X: x2, Y: y2})

		outline, err2 := plotter.NewLine(pts)
		if err2 != nil {
			return 0, 0, err2
		}
		outline.LineStyle.Width = vg.Points(1.5)
		outline.LineStyle.Color = green
		p.Add(outline)

		peakF, peakV := 0.0, 0.0
		for i, v := range c.Values {
			if math.Abs(v) > math.Abs(peakV) {
				peakV = v
				peakF = c.Frac[i]
			}
		}
		if peakV != 0 {
			lx := x1 + peakF*dx + scale*peakV*nx
			ly := y1 + peakF*dy + scale*peakV*ny
			if err2 := addLabel(p, lx, ly, fmt.Sprintf("%.4g", peakV)); err2 != nil {
				return 0, 0, err2
			}
		}
	}

	if min > max {
		min, max = 0, 0
	}
	if err = save(p, filename); err != nil {
		return 0, 0, err
	}
	return min, max, nil
}

// ExportExtruded draws members as outlines of their section width in
// the drawing plane, for a quick visual check of relative member sizes.
func ExportExtruded(proj Projection, members []Line, widths map[int]float64, filename string) error {
	p := plot.New()
	p.Title.Text = "Extruded shapes"
	labelAxes(p, proj)

	fill := color.RGBA{R: 100, G: 149, B: 237, A: 150}
	edge := color.RGBA{B: 139, A: 255}
	for _, m := range members {
		w, ok := widths[m.Tag]
		if !ok || w <= 0 {
			if err := addMemberLine(p, proj, m, color.Black, vg.Points(1), nil); err != nil {
				return err
			}
			continue
		}
		x1, y1 := proj.Point(m.From)
		x2, y2 := proj.Point(m.To)
		dx, dy := x2-x1, y2-y1
		l := math.Hypot(dx, dy)
		if l == 0 {
			continue
		}
		nx, ny := -dy/l*w/2, dx/l*w/2

		poly, err := plotter.NewPolygon(plotter.XYs{
			{X: x1 + nx, Y: y1 + ny},
			{X: x2 + nx, Y: y2 + ny},
			{X: x2 - nx, Y: y2 - ny},
			{X: x1 - nx, Y: y1 - ny},
		})
		if err != nil {
			return err
		}
		poly.Color = fill
		poly.LineStyle.Color = edge
		p.Add(poly)
	}

	return save(p, filename)
}

func addMemberLine(p *plot.Plot, proj Projection, m Line, c color.Color, w vg.Length, dashes []vg.Length) error {
	x1, y1 := proj.Point(m.From)
	x2, y2 := proj.Point(m.To)
	ln, err := plotter.NewLine(plotter.XYs{{X: x1, Y: y1}, {X: x2, Y: y2}})
	if err != nil {
		return err
	}
	ln.LineStyle.Width = w
	ln.LineStyle.Color = c
	ln.LineStyle.Dashes = dashes
	p.Add(ln)
	return nil
}

func addLabel(p *plot.Plot, x, y float64, text string) error {
	l, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    []plotter.XY{{X: x, Y: y}},
		Labels: []string{text},
	})
	if err != nil {
		return err
	}
	p.Add(l)
	return nil
}

func labelAxes(p *plot.Plot, proj Projection) {
	if proj.Ndm == 2 {
		p.X.Label.Text = "X"
		p.Y.Label.Text = "Y"
		return
	}
	p.X.Label.Text = "X (Y receding)"
	p.Y.Label.Text = "Z"
}

func midpoint(proj Projection, m Line) (float64, float64) {
	x1, y1 := proj.Point(m.From)
	x2, y2 := proj.Point(m.To)
	return (x1 + x2) / 2, (y1 + y2) / 2
}

func save(p *plot.Plot, filename string) error {
	width := 8 * vg.Inch
	height := 6 * vg.Inch

	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating figure directory: %w", err)
		}
	}

	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}
