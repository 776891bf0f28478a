package analyzer

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

const ruleWidth = 70

// RenderRaw writes the full structured report as indented JSON.
func RenderRaw(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// Render writes the fixed-width human-readable report.
func Render(w io.Writer, r *Report) {
	heavy := strings.Repeat("=", ruleWidth)
	light := strings.Repeat("-", ruleWidth)

	fmt.Fprintln(w, heavy)
	fmt.Fprintln(w, "FLAMEGRAPH ANALYSIS REPORT")
	fmt.Fprintln(w, heavy)

	fmt.Fprintln(w, "\nSUMMARY:")
	fmt.Fprintf(w, "  - Total samples: %d\n", r.Summary.TotalSamples)
	fmt.Fprintf(w, "  - Main module: %s\n", r.Summary.MainModule)
	fmt.Fprintf(w, "  - Import/Initialization overhead: %d samples (%s)\n",
		r.Summary.OverheadSamples, r.Summary.OverheadPercentage)
	fmt.Fprintf(w, "  - Modules analyzed: %d\n", r.Summary.TotalModules)

	fmt.Fprintln(w, "\nMODULE DISTRIBUTION:")
	fmt.Fprintln(w, light)
	for _, m := range r.ModuleDistribution {
		fmt.Fprintf(w, "  %-30s %5d samples (%s)\n", m.Module, m.Samples, m.Percentage)
	}

	fmt.Fprintln(w, "\nTOP OPTIMIZATION TARGETS:")
	fmt.Fprintln(w, light)
	for i, t := range r.OptimizationPriority {
		fmt.Fprintf(w, "%2d. %-25s %5d samples (%s)\n", i+1, t.Location, t.Samples, t.Percentage)
	}

	fmt.Fprintln(w, "\nFUNCTION TOTALS:")
	fmt.Fprintln(w, light)
	for i, f := range r.FunctionTotals {
		fmt.Fprintf(w, "%2d. %-20s %5d samples (%s)\n", i+1, f.Function, f.Samples, f.Percentage)
	}

	fmt.Fprintln(w, "\nSTATISTICS:")
	fmt.Fprintf(w, "  - Code execution: %d samples (%s)\n",
		r.Statistics.CodeSamples, r.Statistics.CodePercentage)
	fmt.Fprintf(w, "  - Import/Initialization: %d samples (%s)\n",
		r.Statistics.ImportOverhead, r.Statistics.ImportPercentage)
	fmt.Fprintln(w, heavy)
}
