package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/alexiusacademia/goframe/internal/sectlib"
	"github.com/spf13/cobra"
)

var (
	sectionShape string
	sectionDims  string
)

var sectionCmd = &cobra.Command{
	Use:   "section",
	Short: "Compute section properties for an element row",
	Long: `Compute the area, second moments of area and torsional constant of
a standard cross-section, ready to paste into an elements row.

Shapes and their dimensions:
  circ  d              solid circle, diameter d
  rect  b h            rectangle, width b by height h
  I     b h tw tf      I-shape: flange width b, depth h,
                       web thickness tw, flange thickness tf
  poly  y1 z1 y2 z2 …  arbitrary simple polygon, counter-clockwise
                       vertex pairs (three or more)

Examples:
  # 300 mm circular column (dimensions in metres)
  goframe section --shape circ --dims 0.3

  # 250x400 rectangular beam
  goframe section --shape rect --dims 0.25,0.4

  # W-type I section
  goframe section --shape I --dims 0.2,0.4,0.008,0.013

  # right triangle given as vertices
  goframe section --shape poly --dims 0,0,0.3,0,0,0.4`,
	RunE: runSection,
}

func init() {
	rootCmd.AddCommand(sectionCmd)

	sectionCmd.Flags().StringVar(&sectionShape, "shape", "", "Shape name: circ, rect, I or poly [required]")
	sectionCmd.Flags().StringVar(&sectionDims, "dims", "", "Comma-separated dimensions [required]")

	sectionCmd.MarkFlagRequired("shape")
	sectionCmd.MarkFlagRequired("dims")
}

func runSection(cmd *cobra.Command, args []string) error {
	var dims []float64
	for _, tok := range strings.Split(sectionDims, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return fmt.Errorf("invalid dimension %q: %w", tok, err)
		}
		dims = append(dims, v)
	}

	shape, err := sectlib.FromSpec(sectionShape, dims)
	if err != nil {
		return err
	}
	props := shape.Properties()

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println("     SECTION PROPERTIES")
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Shape:\t%s\n", shape.Name())
	fmt.Fprintf(w, "  Area (A):\t%.6e\n", props.A)
	fmt.Fprintf(w, "  Moment of inertia (Iy):\t%.6e\n", props.Iy)
	fmt.Fprintf(w, "  Moment of inertia (Iz):\t%.6e\n", props.Iz)
	fmt.Fprintf(w, "  Torsional constant (J):\t%.6e\n", props.J)
	fmt.Fprintf(w, "  Envelope (b x h):\t%.4g x %.4g\n", props.Width, props.Height)
	w.Flush()
	fmt.Println()

	fmt.Println("  Element row fields (A J Iy Iz):")
	fmt.Printf("    %.6e %.6e %.6e %.6e\n", props.A, props.J, props.Iy, props.Iz)
	fmt.Println()
	return nil
}
