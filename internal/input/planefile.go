package input

import (
	"github.com/ghodss/yaml"

	"github.com/alexiusacademia/goframe/internal/model"
	"github.com/alexiusacademia/goframe/internal/parse"
)

// PlaneDocument is a planar (2D) frame model file. Rows carry three
// DOFs per node (ux, uy, rz) and elements need only A, E and I.
// Subdivide, when greater than 1, splits every element into that many
// collinear pieces before analysis.
type PlaneDocument struct {
	Title        string `json:"title"`
	Nodes        string `json:"nodes"`
	Elements     string `json:"elements"`
	Fixities     string `json:"fixities"`
	Masses       string `json:"masses"`
	Loads        string `json:"loads"`
	ElementLoads string `json:"elementLoads"`
	Subdivide    int    `json:"subdivide"`
}

// Parse fills the document from YAML bytes. Unknown top-level keys are
// rejected, same as the spatial document.
func (d *PlaneDocument) Parse(data []byte) error {
	if err := checkKeys(data, "title", "nodes", "elements", "fixities",
		"masses", "loads", "elementLoads", "subdivide"); err != nil {
		return err
	}
	return yaml.Unmarshal(data, d)
}

var (
	planeNodeSchema = parse.Schema{Record: "node", Fields: []parse.Field{
		parse.IntField("tag"),
		parse.FloatField("x"), parse.FloatField("y"),
	}}
	planeElementSchema = parse.Schema{Record: "element", Fields: []parse.Field{
		parse.IntField("tag"), parse.IntField("i"), parse.IntField("j"),
		parse.FloatField("A"), parse.FloatField("E"), parse.FloatField("I"),
	}}
	planeFixitySchema = parse.Schema{Record: "fixity", Fields: []parse.Field{
		parse.IntField("node"),
		parse.IntField("ux"), parse.IntField("uy"), parse.IntField("rz"),
	}}
	planeMassSchema = parse.Schema{Record: "mass", Fields: []parse.Field{
		parse.IntField("node"),
		parse.FloatField("mx"), parse.FloatField("my"), parse.FloatField("mrz"),
	}}
	planeLoadSchema = parse.Schema{Record: "load", Fields: []parse.Field{
		parse.IntField("node"),
		parse.FloatField("Px"), parse.FloatField("Py"), parse.FloatField("Mz"),
	}}
	planeEleLoadSchema = parse.Schema{Record: "element load", Fields: []parse.Field{
		parse.IntField("element"),
		parse.FloatField("wx"), parse.FloatField("wy"),
	}}
)

// Build parses every block and assembles a validated planar model. The
// subdivision count is returned for the caller to apply; zero means
// leave the mesh alone.
func (d *PlaneDocument) Build() (*model.Model, int, error) {
	m := &model.Model{Ndm: 2}

	rows, err := planeNodeSchema.Rows(d.Nodes)
	if err != nil {
		return nil, 0, err
	}
	for _, r := range rows {
		m.Nodes = append(m.Nodes, model.Node{Tag: r.Int(0), X: r.Float(1), Y: r.Float(2)})
	}

	rows, err = planeElementSchema.Rows(d.Elements)
	if err != nil {
		return nil, 0, err
	}
	for _, r := range rows {
		m.Elements = append(m.Elements, model.Element{
			Tag: r.Int(0), I: r.Int(1), J: r.Int(2),
			A: r.Float(3), E: r.Float(4), Iz: r.Float(5),
		})
	}

	rows, err = planeFixitySchema.Rows(d.Fixities)
	if err != nil {
		return nil, 0, err
	}
	for _, r := range rows {
		fx := model.Fixity{Node: r.Int(0)}
		for dof := 0; dof < 3; dof++ {
			flag, err := flagValue(planeFixitySchema, r, dof+1)
			if err != nil {
				return nil, 0, err
			}
			fx.Flags[dof] = flag
		}
		m.Fixities = append(m.Fixities, fx)
	}

	rows, err = planeMassSchema.Rows(d.Masses)
	if err != nil {
		return nil, 0, err
	}
	for _, r := range rows {
		ms := model.Mass{Node: r.Int(0)}
		for dof := 0; dof < 3; dof++ {
			ms.Values[dof] = r.Float(dof + 1)
		}
		m.Masses = append(m.Masses, ms)
	}

	rows, err = planeLoadSchema.Rows(d.Loads)
	if err != nil {
		return nil, 0, err
	}
	for _, r := range rows {
		p := model.PointLoad{Node: r.Int(0)}
		for dof := 0; dof < 3; dof++ {
			p.Components[dof] = r.Float(dof + 1)
		}
		m.PointLoads = append(m.PointLoads, p)
	}

	rows, err = planeEleLoadSchema.Rows(d.ElementLoads)
	if err != nil {
		return nil, 0, err
	}
	for _, r := range rows {
		m.UniformLoads = append(m.UniformLoads, model.UniformLoad{
			Element: r.Int(0), Wx: r.Float(1), Wy: r.Float(2),
		})
	}

	if err := m.Validate(); err != nil {
		return nil, 0, err
	}
	return m, d.Subdivide, nil
}
