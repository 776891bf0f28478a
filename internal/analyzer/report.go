package analyzer

import (
	"fmt"
	"sort"

	"flameparse/internal/pyspy"
)

// topPriorityEntries caps the optimization ranking; function and module
// tables are never truncated.
const topPriorityEntries = 20

// Report is the analysis result built once from a finished aggregation pass.
type Report struct {
	Summary              Summary        `json:"summary"`
	OptimizationPriority []LocationStat `json:"optimization_priority"`
	FunctionTotals       []FunctionStat `json:"function_totals"`
	ModuleDistribution   []ModuleStat   `json:"module_distribution"`
	Statistics           Statistics     `json:"statistics"`
	SourceCode           string         `json:"source_code,omitempty"`
}

type Summary struct {
	TotalSamples       int    `json:"total_samples"`
	MainModule         string `json:"main_module"`
	OverheadSamples    int    `json:"overhead_samples"`
	OverheadPercentage string `json:"overhead_percentage"`
	TotalModules       int    `json:"total_modules"`
}

type LocationStat struct {
	Location   string `json:"location"`
	Samples    int    `json:"samples"`
	Percentage string `json:"percentage"`
}

type FunctionStat struct {
	Function   string `json:"function"`
	Samples    int    `json:"samples"`
	Percentage string `json:"percentage"`
}

type ModuleStat struct {
	Module     string `json:"module"`
	Samples    int    `json:"samples"`
	Percentage string `json:"percentage"`
}

type Statistics struct {
	CodeSamples      int    `json:"code_samples"`
	CodePercentage   string `json:"code_percentage"`
	ImportOverhead   int    `json:"import_overhead"`
	ImportPercentage string `json:"import_percentage"`
}

// BuildReport sorts the tallies descending by sample count and computes the
// percentage split. Ties keep insertion order, so output is deterministic for
// a given input.
func BuildReport(p *pyspy.Profile) *Report {
	pct := func(samples int) string {
		if p.TotalSamples == 0 {
			return "0.0%"
		}
		return fmt.Sprintf("%.1f%%", float64(samples)/float64(p.TotalSamples)*100)
	}

	priority := sortedDescending(p.Priority)
	if len(priority) > topPriorityEntries {
		priority = priority[:topPriorityEntries]
	}
	functions := sortedDescending(p.Functions)
	modules := sortedDescending(p.Modules)

	r := &Report{
		Summary: Summary{
			TotalSamples:       p.TotalSamples,
			MainModule:         p.EntryModule,
			OverheadSamples:    p.OverheadSamples,
			OverheadPercentage: pct(p.OverheadSamples),
			TotalModules:       len(p.Modules),
		},
		OptimizationPriority: make([]LocationStat, 0, len(priority)),
		FunctionTotals:       make([]FunctionStat, 0, len(functions)),
		ModuleDistribution:   make([]ModuleStat, 0, len(modules)),
		Statistics: Statistics{
			CodeSamples:      p.TotalSamples - p.OverheadSamples,
			CodePercentage:   pct(p.TotalSamples - p.OverheadSamples),
			ImportOverhead:   p.OverheadSamples,
			ImportPercentage: pct(p.OverheadSamples),
		},
	}

	for _, e := range priority {
		r.OptimizationPriority = append(r.OptimizationPriority, LocationStat{
			Location: e.Key, Samples: e.Samples, Percentage: pct(e.Samples),
		})
	}
	for _, e := range functions {
		r.FunctionTotals = append(r.FunctionTotals, FunctionStat{
			Function: e.Key, Samples: e.Samples, Percentage: pct(e.Samples),
		})
	}
	for _, e := range modules {
		r.ModuleDistribution = append(r.ModuleDistribution, ModuleStat{
			Module: e.Key, Samples: e.Samples, Percentage: pct(e.Samples),
		})
	}
	return r
}

func sortedDescending(entries []pyspy.Entry) []pyspy.Entry {
	out := make([]pyspy.Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Samples > out[j].Samples
	})
	return out
}
