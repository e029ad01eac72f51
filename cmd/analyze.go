package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/alexiusacademia/goframe/internal/diagram"
	"github.com/alexiusacademia/goframe/internal/engine"
	"github.com/alexiusacademia/goframe/internal/sectlib"
	"github.com/spf13/cobra"
)

var (
	analyzeModelFile  string
	analyzeScale      float64
	analyzePlots      bool
	analyzeOutDir     string
	analyzeLoadFactor float64
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run a linear static analysis of a 3D frame model",
	Long: `Solve a 3D frame model for nodal displacements and support
reactions under its nodal and uniform member loads.

The model file is a YAML document whose values are delimited rows,
one record per line. Fields may be separated by commas, spaces or
tabs; lines starting with # are comments.

  title: Portal frame
  nodes: |
    # tag  x  y  z
    1  0 0 0
    2  0 0 4
  transforms: |
    # tag  vecxz
    1  0 0 1
  elements: |
    # tag  i  j  A  E  G  J  Iy  Iz  transf
    1  1 2  0.09 30e6 11.5e6 1.08e-3 6.75e-4 6.75e-4  1
  fixities: |
    # tag  ux uy uz rx ry rz  (1 = fixed)
    1  1 1 1 1 1 1
  loads: |
    # tag  Fx Fy Fz Mx My Mz
    2  -40 -25 -30 0 0 0

Examples:
  # Analyze and print displacement and reaction tables
  goframe analyze -m portal.yaml

  # Also export model and deformed-shape figures
  goframe analyze -m portal.yaml --plots --scale 50 --out-dir out`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeModelFile, "model", "m", "", "Model file (YAML) [required]")
	analyzeCmd.Flags().Float64Var(&analyzeScale, "scale", 2.0, "Display amplification for the deformed shape")
	analyzeCmd.Flags().BoolVar(&analyzePlots, "plots", false, "Export model and deformed-shape figures")
	analyzeCmd.Flags().StringVar(&analyzeOutDir, "out-dir", "figures", "Directory for exported figures")
	analyzeCmd.Flags().Float64Var(&analyzeLoadFactor, "load-factor", 1.0, "Factor applied to all loads")

	analyzeCmd.MarkFlagRequired("model")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	m, shapes, title, err := loadSpatial(analyzeModelFile)
	if err != nil {
		return err
	}

	s, err := buildSession(m)
	if err != nil {
		return err
	}

	opts := engine.DefaultStaticOptions()
	opts.LoadFactor = analyzeLoadFactor
	if err := s.AnalyzeStatic(opts); err != nil {
		return err
	}

	printAnalysisReport(s, title, len(m.Nodes), len(m.Elements))

	if analyzePlots {
		if err := exportAnalysisFigures(s, shapes); err != nil {
			return err
		}
	}
	return nil
}

func printAnalysisReport(s *engine.Session, title string, nnodes, neles int) {
	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     LINEAR STATIC ANALYSIS")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	fmt.Println("MODEL:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if title != "" {
		fmt.Fprintf(w, "  Title:\t%s\n", title)
	}
	fmt.Fprintf(w, "  Dimensions:\t%dD (%d DOF per node)\n", s.Ndm(), s.Ndf())
	fmt.Fprintf(w, "  Nodes:\t%d\n", nnodes)
	fmt.Fprintf(w, "  Elements:\t%d\n", neles)
	w.Flush()
	fmt.Println()

	fmt.Println("NODAL DISPLACEMENTS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if s.Ndm() == 3 {
		fmt.Fprintln(w, "  Node\tux\tuy\tuz\trx\try\trz")
	} else {
		fmt.Fprintln(w, "  Node\tux\tuy\trz")
	}
	for _, tag := range s.NodeTags() {
		d, err := s.NodeDisp(tag)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "  %d", tag)
		for _, v := range d {
			fmt.Fprintf(w, "\t%.6e", v)
		}
		fmt.Fprintln(w)
	}
	w.Flush()
	fmt.Println()

	reactions, err := s.Reactions()
	if err == nil && len(reactions) > 0 {
		fmt.Println("SUPPORT REACTIONS:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		if s.Ndm() == 3 {
			fmt.Fprintln(w, "  Node\tFx\tFy\tFz\tMx\tMy\tMz")
		} else {
			fmt.Fprintln(w, "  Node\tFx\tFy\tMz")
		}
		for _, tag := range s.NodeTags() {
			r, ok := reactions[tag]
			if !ok {
				continue
			}
			fmt.Fprintf(w, "  %d", tag)
			for _, v := range r {
				fmt.Fprintf(w, "\t%.4f", v)
			}
			fmt.Fprintln(w)
		}
		w.Flush()
		fmt.Println()
	}
}

func exportAnalysisFigures(s *engine.Session, shapes map[int]sectlib.Shape) error {
	proj := diagram.Projection{Ndm: s.Ndm()}

	lines, err := memberLines(s)
	if err != nil {
		return err
	}
	modelFile := filepath.Join(analyzeOutDir, "model.png")
	if err := diagram.ExportModel(proj, lines, nodeMarks(s), modelFile); err != nil {
		return fmt.Errorf("exporting model figure: %w", err)
	}
	fmt.Printf("  Model figure saved to %s\n", modelFile)

	curves, err := deformedCurves(s, 21, analyzeScale)
	if err != nil {
		return err
	}
	shapeFile := filepath.Join(analyzeOutDir, "deformed.png")
	title := fmt.Sprintf("Deformed shape (x%g)", analyzeScale)
	if err := diagram.ExportShape(proj, title, lines, curves, shapeFile); err != nil {
		return fmt.Errorf("exporting deformed shape: %w", err)
	}
	fmt.Printf("  Deformed shape saved to %s\n", shapeFile)

	if len(shapes) > 0 {
		widths := make(map[int]float64, len(shapes))
		for tag, sh := range shapes {
			widths[tag] = sh.Properties().Width
		}
		extFile := filepath.Join(analyzeOutDir, "extruded.png")
		if err := diagram.ExportExtruded(proj, lines, widths, extFile); err != nil {
			return fmt.Errorf("exporting extruded shapes: %w", err)
		}
		fmt.Printf("  Extruded shapes saved to %s\n", extFile)
	}
	fmt.Println()
	return nil
}
