package cmd

import (
	"fmt"
	"os"

	"github.com/alexiusacademia/goframe/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "goframe",
	Short: "3D/2D Frame Modeling and Linear Analysis Tool",
	Long: `goframe - Go Frame Analyzer

A CLI tool for defining and analyzing 3D and 2D structural frame
models: elastic beam-column elements, nodal loads and masses,
uniform member loads, support fixities.

This tool helps structural engineers perform:
  - Linear static analysis (displacements, support reactions)
  - Eigenvalue extraction (natural frequencies, mode shapes)
  - Internal force diagrams (axial, shear, bending, torsion)
  - Deformed-shape and mode-shape figures
  - Cross-section property calculation

Models are plain YAML files of delimited rows; see 'goframe analyze
--help' for the format.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println()
		fmt.Println("  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Println("  ║                                                           ║")
		fmt.Printf("  ║   goframe v%-47s║\n", version.Version)
		fmt.Println("  ║   Go Frame Modeling and Linear Analysis Tool              ║")
		fmt.Println("  ║   Alexius S. Academia ©  2026                             ║")
		fmt.Println("  ║                                                           ║")
		fmt.Println("  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Println()
		fmt.Println("  A CLI tool for defining and analyzing 3D and 2D structural")
		fmt.Println("  frame models with elastic beam-column elements.")
		fmt.Println()
		fmt.Println("  Features:")
		fmt.Println("    • Linear static analysis with support reactions")
		fmt.Println("    • Natural frequencies and mode shapes")
		fmt.Println("    • Internal force diagrams (N, Vy, Vz, My, Mz, T)")
		fmt.Println("    • Planar frames with automatic element subdivision")
		fmt.Println("    • Section property helper for element rows")
		fmt.Println()
		fmt.Println("  Use 'goframe --help' to see available commands.")
		fmt.Println()
		fmt.Println("  ─────────────────────────────────────────────────────────────")
		fmt.Printf("  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Println()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
