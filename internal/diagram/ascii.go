package diagram

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
)

// ForceASCII renders one member's internal-force curve as a terminal
// graph, annotated with the member tag, the component name and the
// observed extremes.
func ForceASCII(tag int, component string, values []float64) string {
	if len(values) == 0 {
		return ""
	}

	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Element %d  %s  (min %.4g, max %.4g)\n", tag, component, min, max)

	if min == max {
		// asciigraph needs a range; a constant diagram is better said in words
		fmt.Fprintf(&sb, "  constant %.4g along the member\n", min)
		return sb.String()
	}

	graph := asciigraph.Plot(values,
		asciigraph.Height(8),
		asciigraph.Width(48),
		asciigraph.Offset(3),
	)
	sb.WriteString(graph)
	sb.WriteString("\n  i-end")
	sb.WriteString(strings.Repeat(" ", 40))
	sb.WriteString("j-end\n")
	return sb.String()
}
