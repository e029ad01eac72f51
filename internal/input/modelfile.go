// Package input reads model files: YAML documents whose values are
// blocks of delimited rows, one block per record table. The row format
// is the same as the interactive sketching tools this replaces: comma
// or whitespace separated fields, one record per line.
package input

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ghodss/yaml"

	"github.com/alexiusacademia/goframe/internal/model"
	"github.com/alexiusacademia/goframe/internal/parse"
	"github.com/alexiusacademia/goframe/internal/sectlib"
)

// Document is a spatial (3D) frame model file.
//
//	title: Portal frame
//	nodes: |
//	  1, 0, 0, 0
//	  2, 0, 0, 4
//	elements: |
//	  1, 1, 2, 0.04, 25e6, 9615384.6, 0.01172, 0.0002667, 0.0010667, 1
//	transforms: |
//	  1, 0, -1, 0
//	fixities: |
//	  1, 1, 1, 1, 1, 1, 1
//	loads: |
//	  2, -40, -25, -30, 0, 0, 0
type Document struct {
	Title        string `json:"title"`
	Nodes        string `json:"nodes"`
	Elements     string `json:"elements"`
	Transforms   string `json:"transforms"`
	Fixities     string `json:"fixities"`
	Masses       string `json:"masses"`
	Loads        string `json:"loads"`
	ElementLoads string `json:"elementLoads"`
	Shapes       string `json:"shapes"`
}

// Parse fills the document from YAML bytes. Unknown top-level keys are
// errors: a misspelled block name would otherwise vanish without a
// trace and the model would solve with that table missing.
func (d *Document) Parse(data []byte) error {
	if err := checkKeys(data, "title", "nodes", "elements", "transforms",
		"fixities", "masses", "loads", "elementLoads", "shapes"); err != nil {
		return err
	}
	return yaml.Unmarshal(data, d)
}

// checkKeys rejects top-level keys outside the known set.
func checkKeys(data []byte, known ...string) error {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}
	allowed := make(map[string]bool, len(known))
	for _, k := range known {
		allowed[k] = true
	}
	var unknown []string
	for k := range raw {
		if !allowed[k] {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return fmt.Errorf("unknown key %q in model file (known keys: %s)",
		unknown[0], strings.Join(known, ", "))
}

var (
	nodeSchema = parse.Schema{Record: "node", Fields: []parse.Field{
		parse.IntField("tag"),
		parse.FloatField("x"), parse.FloatField("y"), parse.FloatField("z"),
	}}
	elementSchema = parse.Schema{Record: "element", Fields: []parse.Field{
		parse.IntField("tag"), parse.IntField("i"), parse.IntField("j"),
		parse.FloatField("A"), parse.FloatField("E"), parse.FloatField("G"),
		parse.FloatField("J"), parse.FloatField("Iy"), parse.FloatField("Iz"),
		parse.IntField("transf"),
	}}
	transformSchema = parse.Schema{Record: "transform", Fields: []parse.Field{
		parse.IntField("tag"),
		parse.FloatField("x"), parse.FloatField("y"), parse.FloatField("z"),
	}}
	fixitySchema = parse.Schema{Record: "fixity", Fields: []parse.Field{
		parse.IntField("node"),
		parse.IntField("ux"), parse.IntField("uy"), parse.IntField("uz"),
		parse.IntField("rx"), parse.IntField("ry"), parse.IntField("rz"),
	}}
	massSchema = parse.Schema{Record: "mass", Fields: []parse.Field{
		parse.IntField("node"),
		parse.FloatField("mx"), parse.FloatField("my"), parse.FloatField("mz"),
		parse.FloatField("mrx"), parse.FloatField("mry"), parse.FloatField("mrz"),
	}}
	loadSchema = parse.Schema{Record: "load", Fields: []parse.Field{
		parse.IntField("node"),
		parse.FloatField("Px"), parse.FloatField("Py"), parse.FloatField("Pz"),
		parse.FloatField("Mx"), parse.FloatField("My"), parse.FloatField("Mz"),
	}}
	eleLoadSchema = parse.Schema{Record: "element load", Fields: []parse.Field{
		parse.IntField("element"),
		parse.FloatField("wx"), parse.FloatField("wy"), parse.FloatField("wz"),
	}}
	shapeSchema = parse.Schema{Record: "shape", Fields: []parse.Field{
		parse.IntField("element"), parse.StringField("shape"),
	}, Rest: &parse.Field{Name: "dim", Kind: parse.Float}}
)

// Build parses every block and assembles a validated spatial model plus
// the per-element display shapes, if any were declared.
func (d *Document) Build() (*model.Model, map[int]sectlib.Shape, error) {
	m := &model.Model{Ndm: 3}

	rows, err := nodeSchema.Rows(d.Nodes)
	if err != nil {
		return nil, nil, err
	}
	for _, r := range rows {
		m.Nodes = append(m.Nodes, model.Node{Tag: r.Int(0), X: r.Float(1), Y: r.Float(2), Z: r.Float(3)})
	}

	rows, err = elementSchema.Rows(d.Elements)
	if err != nil {
		return nil, nil, err
	}
	for _, r := range rows {
		m.Elements = append(m.Elements, model.Element{
			Tag: r.Int(0), I: r.Int(1), J: r.Int(2),
			A: r.Float(3), E: r.Float(4), G: r.Float(5),
			Jx: r.Float(6), Iy: r.Float(7), Iz: r.Float(8),
			Transf: r.Int(9),
		})
	}

	rows, err = transformSchema.Rows(d.Transforms)
	if err != nil {
		return nil, nil, err
	}
	for _, r := range rows {
		m.Transforms = append(m.Transforms, model.Transform{Tag: r.Int(0), X: r.Float(1), Y: r.Float(2), Z: r.Float(3)})
	}

	rows, err = fixitySchema.Rows(d.Fixities)
	if err != nil {
		return nil, nil, err
	}
	for _, r := range rows {
		fx := model.Fixity{Node: r.Int(0)}
		for dof := 0; dof < 6; dof++ {
			flag, err := flagValue(fixitySchema, r, dof+1)
			if err != nil {
				return nil, nil, err
			}
			fx.Flags[dof] = flag
		}
		m.Fixities = append(m.Fixities, fx)
	}

	rows, err = massSchema.Rows(d.Masses)
	if err != nil {
		return nil, nil, err
	}
	for _, r := range rows {
		ms := model.Mass{Node: r.Int(0)}
		for dof := 0; dof < 6; dof++ {
			ms.Values[dof] = r.Float(dof + 1)
		}
		m.Masses = append(m.Masses, ms)
	}

	rows, err = loadSchema.Rows(d.Loads)
	if err != nil {
		return nil, nil, err
	}
	for _, r := range rows {
		p := model.PointLoad{Node: r.Int(0)}
		for dof := 0; dof < 6; dof++ {
			p.Components[dof] = r.Float(dof + 1)
		}
		m.PointLoads = append(m.PointLoads, p)
	}

	rows, err = eleLoadSchema.Rows(d.ElementLoads)
	if err != nil {
		return nil, nil, err
	}
	for _, r := range rows {
		m.UniformLoads = append(m.UniformLoads, model.UniformLoad{
			Element: r.Int(0), Wx: r.Float(1), Wy: r.Float(2), Wz: r.Float(3),
		})
	}

	shapes, err := buildShapes(d.Shapes)
	if err != nil {
		return nil, nil, err
	}

	if err := m.Validate(); err != nil {
		return nil, nil, err
	}
	return m, shapes, nil
}

func buildShapes(block string) (map[int]sectlib.Shape, error) {
	rows, err := shapeSchema.Rows(block)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	shapes := make(map[int]sectlib.Shape, len(rows))
	for _, r := range rows {
		sh, err := sectlib.FromSpec(r.String(1), r.Rest())
		if err != nil {
			return nil, fmt.Errorf("shape row at line %d: %w", r.Line, err)
		}
		shapes[r.Int(0)] = sh
	}
	return shapes, nil
}

// flagValue reads a 0/1 fixity flag, rejecting anything else.
func flagValue(s parse.Schema, r parse.Row, i int) (bool, error) {
	switch r.Int(i) {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, &parse.Error{
		Record: s.Record, Line: r.Line, Column: i + 1,
		Token:  fmt.Sprintf("%d", r.Int(i)),
		Reason: fmt.Sprintf("field %q must be 0 or 1", s.Fields[i].Name),
	}
}
