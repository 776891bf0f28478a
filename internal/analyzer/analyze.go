package analyzer

import (
	"errors"
	"fmt"

	"flameparse/internal/pyspy"
	"flameparse/internal/pysrc"
)

// ErrNoTarget indicates the report could not be completed with the hottest
// function's source text: either nothing was attributed to any
// function/module, or the definition could not be recovered from its module.
// The returned report is still valid for rendering.
var ErrNoTarget = errors.New("no refactor target found")

// Analyze runs the full pass: parse the capture, build the report, then
// recover the source span of the highest-ranked function from the hottest
// module.
func Analyze(profilePath string) (*Report, error) {
	profile, err := pyspy.ParseFile(profilePath)
	if err != nil {
		return nil, err
	}
	report := BuildReport(profile)

	if len(report.ModuleDistribution) == 0 || len(report.FunctionTotals) == 0 {
		return report, ErrNoTarget
	}

	module := report.ModuleDistribution[0].Module
	function := report.FunctionTotals[0].Function
	source, err := pysrc.ExtractFunctionFromFile(module, function)
	if err != nil {
		return report, fmt.Errorf("%w: %q in %s: %v", ErrNoTarget, function, module, err)
	}
	report.SourceCode = source
	return report, nil
}
