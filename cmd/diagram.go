package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/alexiusacademia/goframe/internal/diagram"
	"github.com/alexiusacademia/goframe/internal/engine"
	"github.com/spf13/cobra"
)

var (
	diagramModelFile  string
	diagramComponent  string
	diagramStations   int
	diagramScale      float64
	diagramASCII      bool
	diagramPlots      bool
	diagramOutDir     string
	diagramLoadFactor float64
)

// forceComponents lists the drawable components in report order with
// their default display scales.
var forceComponents = []struct {
	name  string
	label string
	scale float64
}{
	{"N", "Axial force", 1e-2},
	{"Vy", "Shear (local y)", 5e-2},
	{"Vz", "Shear (local z)", 5e-2},
	{"T", "Torsion", 1e-2},
	{"My", "Bending (local y)", 1e-2},
	{"Mz", "Bending (local z)", 1e-2},
}

var diagramCmd = &cobra.Command{
	Use:   "diagram",
	Short: "Draw internal force diagrams after a static analysis",
	Long: `Run a linear static analysis and report internal force diagrams
along every member: axial force N, shears Vy and Vz, torsion T and
bending moments My and Mz, all in member local axes.

Values are sampled at stations along each member, so uniform member
loads produce the expected parabolic moment diagrams.

Examples:
  # Terminal graphs of every component
  goframe diagram -m portal.yaml --ascii

  # Bending moment figure only
  goframe diagram -m portal.yaml -c Mz --plots

  # All component figures in a custom directory
  goframe diagram -m portal.yaml --plots --out-dir out`,
	RunE: runDiagram,
}

func init() {
	rootCmd.AddCommand(diagramCmd)

	diagramCmd.Flags().StringVarP(&diagramModelFile, "model", "m", "", "Model file (YAML) [required]")
	diagramCmd.Flags().StringVarP(&diagramComponent, "component", "c", "all", "Force component: N, Vy, Vz, T, My, Mz or all")
	diagramCmd.Flags().IntVar(&diagramStations, "stations", 21, "Sampling stations per member")
	diagramCmd.Flags().Float64Var(&diagramScale, "scale", 0, "Diagram ordinate scale (0 = component default, -1 = fit to model size)")
	diagramCmd.Flags().BoolVar(&diagramASCII, "ascii", false, "Print terminal graphs per member")
	diagramCmd.Flags().BoolVar(&diagramPlots, "plots", false, "Export diagram figures")
	diagramCmd.Flags().StringVar(&diagramOutDir, "out-dir", "figures", "Directory for exported figures")
	diagramCmd.Flags().Float64Var(&diagramLoadFactor, "load-factor", 1.0, "Factor applied to all loads")

	diagramCmd.MarkFlagRequired("model")
}

func runDiagram(cmd *cobra.Command, args []string) error {
	m, _, title, err := loadSpatial(diagramModelFile)
	if err != nil {
		return err
	}

	s, err := buildSession(m)
	if err != nil {
		return err
	}

	opts := engine.DefaultStaticOptions()
	opts.LoadFactor = diagramLoadFactor
	if err := s.AnalyzeStatic(opts); err != nil {
		return err
	}

	selected, err := selectComponents(s.Ndm(), diagramComponent)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     INTERNAL FORCE DIAGRAMS")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()
	if title != "" {
		fmt.Printf("  Model: %s\n\n", title)
	}

	proj := diagram.Projection{Ndm: s.Ndm()}

	fmt.Println("FORCE EXTREMES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  Component\tMin\tMax")

	type drawn struct {
		comp   string
		curves []diagram.ForceCurve
		scale  float64
	}
	var queue []drawn

	for _, fc := range selected {
		curves, err := forceCurves(s, fc.name, diagramStations)
		if err != nil {
			return err
		}
		min, max := curveExtremes(curves)
		fmt.Fprintf(w, "  %s (%s)\t%.4f\t%.4f\n", fc.name, fc.label, min, max)

		sc := diagramScale
		switch {
		case sc == 0:
			sc = fc.scale
		case sc < 0:
			// fit the peak ordinate to a fraction of the structure size
			var all []float64
			for _, c := range curves {
				all = append(all, c.Values...)
			}
			sc = 0.15 * diagram.AutoScale(modelExtent(s), all)
		}
		queue = append(queue, drawn{fc.name, curves, sc})
	}
	w.Flush()
	fmt.Println()

	if diagramASCII {
		for _, d := range queue {
			for _, c := range d.curves {
				fmt.Println(diagram.ForceASCII(c.Tag, d.comp, c.Values))
			}
		}
	}

	if diagramPlots {
		for _, d := range queue {
			file := filepath.Join(diagramOutDir, fmt.Sprintf("diagram_%s.png", d.comp))
			title := fmt.Sprintf("%s diagram", d.comp)
			if _, _, err := diagram.ExportForceDiagram(proj, title, d.curves, d.scale, file); err != nil {
				return fmt.Errorf("exporting %s diagram: %w", d.comp, err)
			}
			fmt.Printf("  %s diagram saved to %s\n", d.comp, file)
		}
		fmt.Println()
	}
	return nil
}

// selectComponents resolves the --component flag against the model
// dimension: planar models only carry N, Vy and Mz.
func selectComponents(ndm int, want string) ([]struct {
	name  string
	label string
	scale float64
}, error) {
	planar := map[string]bool{"N": true, "Vy": true, "Mz": true}

	var out []struct {
		name  string
		label string
		scale float64
	}
	for _, fc := range forceComponents {
		if ndm == 2 && !planar[fc.name] {
			continue
		}
		if strings.EqualFold(want, "all") || strings.EqualFold(want, fc.name) {
			out = append(out, fc)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("unknown force component %q: use N, Vy, Vz, T, My, Mz or all", want)
	}
	return out, nil
}

func curveExtremes(curves []diagram.ForceCurve) (min, max float64) {
	first := true
	for _, c := range curves {
		for _, v := range c.Values {
			if first {
				min, max = v, v
				first = false
				continue
			}
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}
	return min, max
}
