package service

import (
	"fmt"
	"strconv"

	"github.com/spacecheck-ci/spacecheck/domain"
)

// formatNumber renders a metric value with the shortest exact decimal form,
// so integral values print without a trailing ".0" and output stays
// byte-stable across runs.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// metricLines renders the full metrics bundle as one bullet per group.
// Field order is fixed; rendering the same bundle twice yields identical
// text.
func metricLines(m domain.Metrics) []string {
	return []string{
		"- nargs: " + formatNumber(m.Nargs),
		"- nexits: " + formatNumber(m.Nexits),
		"- cognitive: " + formatNumber(m.Cognitive),
		fmt.Sprintf("- cyclomatic: sum %s, average %s",
			formatNumber(m.Cyclomatic.Sum), formatNumber(m.Cyclomatic.Average)),
		fmt.Sprintf("- halstead: length %s, estimated length %s, vocabulary %s, volume %s, "+
			"difficulty %s, level %s, effort %s, time %s, bugs %s, purity ratio %s, "+
			"operators %s (unique %s), operands %s (unique %s)",
			formatNumber(m.Halstead.Length), formatNumber(m.Halstead.EstimatedLength),
			formatNumber(m.Halstead.Vocabulary), formatNumber(m.Halstead.Volume),
			formatNumber(m.Halstead.Difficulty), formatNumber(m.Halstead.Level),
			formatNumber(m.Halstead.Effort), formatNumber(m.Halstead.Time),
			formatNumber(m.Halstead.Bugs), formatNumber(m.Halstead.PurityRatio),
			formatNumber(m.Halstead.Operators), formatNumber(m.Halstead.UniqueOperators),
			formatNumber(m.Halstead.Operands), formatNumber(m.Halstead.UniqueOperands)),
		fmt.Sprintf("- loc: sloc %s, ploc %s, lloc %s, cloc %s, blank %s",
			formatNumber(m.Loc.Sloc), formatNumber(m.Loc.Ploc), formatNumber(m.Loc.Lloc),
			formatNumber(m.Loc.Cloc), formatNumber(m.Loc.Blank)),
		fmt.Sprintf("- nom: functions %s, closures %s, total %s",
			formatNumber(m.Nom.Functions), formatNumber(m.Nom.Closures), formatNumber(m.Nom.Total)),
		fmt.Sprintf("- mi: original %s, sei %s, visual studio %s",
			formatNumber(m.Mi.Original), formatNumber(m.Mi.Sei), formatNumber(m.Mi.VisualStudio)),
	}
}

// summarizeMetrics renders the one-line metrics digest used in annotation
// messages.
func summarizeMetrics(m domain.Metrics) string {
	return fmt.Sprintf("cyclomatic %s (avg %s), cognitive %s, nargs %s, nexits %s, sloc %s, mi %s",
		formatNumber(m.Cyclomatic.Sum), formatNumber(m.Cyclomatic.Average),
		formatNumber(m.Cognitive), formatNumber(m.Nargs), formatNumber(m.Nexits),
		formatNumber(m.Loc.Sloc), formatNumber(m.Mi.Original))
}
