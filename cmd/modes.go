package cmd

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/alexiusacademia/goframe/internal/diagram"
	"github.com/spf13/cobra"
)

var (
	modesModelFile string
	modesCount     int
	modesPlotMode  int
	modesScale     float64
	modesPlots     bool
	modesOutDir    string
)

var modesCmd = &cobra.Command{
	Use:   "modes",
	Short: "Extract natural frequencies and mode shapes",
	Long: `Solve the eigenvalue problem of a 3D frame model using lumped
nodal masses and report natural frequencies and periods.

Masses come from the model file's masses block, one value per DOF:

  masses: |
    # tag  mx my mz  mrx mry mrz
    4  200 200 200  0 0 0

Degrees of freedom without mass are condensed out, so rotational
masses may be left at zero.

Examples:
  # First 6 frequencies
  goframe modes -m portal.yaml

  # First 3 frequencies plus a figure of mode 2
  goframe modes -m portal.yaml -n 3 --plots --mode 2 --scale 10`,
	RunE: runModes,
}

func init() {
	rootCmd.AddCommand(modesCmd)

	modesCmd.Flags().StringVarP(&modesModelFile, "model", "m", "", "Model file (YAML) [required]")
	modesCmd.Flags().IntVarP(&modesCount, "num-modes", "n", 6, "Number of modes to extract")
	modesCmd.Flags().IntVar(&modesPlotMode, "mode", 1, "Mode to draw when --plots is set")
	modesCmd.Flags().Float64Var(&modesScale, "scale", 2.0, "Display amplification for the mode shape")
	modesCmd.Flags().BoolVar(&modesPlots, "plots", false, "Export a mode-shape figure")
	modesCmd.Flags().StringVar(&modesOutDir, "out-dir", "figures", "Directory for exported figures")

	modesCmd.MarkFlagRequired("model")
}

func runModes(cmd *cobra.Command, args []string) error {
	m, _, title, err := loadSpatial(modesModelFile)
	if err != nil {
		return err
	}

	s, err := buildSession(m)
	if err != nil {
		return err
	}

	values, err := s.Eigen(modesCount)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     EIGENVALUE ANALYSIS")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()
	if title != "" {
		fmt.Printf("  Model: %s\n\n", title)
	}

	fmt.Println("NATURAL MODES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  Mode\tEigenvalue\tω (rad/s)\tf (Hz)\tT (s)")
	for i, lam := range values {
		omega := math.Sqrt(lam)
		freq := omega / (2 * math.Pi)
		fmt.Fprintf(w, "  %d\t%.6e\t%.4f\t%.4f\t%.4f\n", i+1, lam, omega, freq, 1/freq)
	}
	w.Flush()
	fmt.Println()

	if !modesPlots {
		return nil
	}

	if modesPlotMode < 1 || modesPlotMode > len(values) {
		return fmt.Errorf("mode %d out of range: %d modes extracted", modesPlotMode, len(values))
	}

	proj := diagram.Projection{Ndm: s.Ndm()}
	lines, err := memberLines(s)
	if err != nil {
		return err
	}
	curves, err := modeCurves(s, modesPlotMode, 21, modesScale)
	if err != nil {
		return err
	}

	freq := math.Sqrt(values[modesPlotMode-1]) / (2 * math.Pi)
	figTitle := fmt.Sprintf("Mode %d  (f = %.4f Hz)", modesPlotMode, freq)
	figFile := filepath.Join(modesOutDir, fmt.Sprintf("mode_%d.png", modesPlotMode))
	if err := diagram.ExportShape(proj, figTitle, lines, curves, figFile); err != nil {
		return fmt.Errorf("exporting mode shape: %w", err)
	}
	fmt.Printf("  Mode shape saved to %s\n\n", figFile)
	return nil
}
