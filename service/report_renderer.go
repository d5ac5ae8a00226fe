package service

import (
	"fmt"
	"strings"

	"github.com/spacecheck-ci/spacecheck/domain"
)

// blockSeparator joins the top-level file blocks of a report.
const blockSeparator = "\n---\n\n"

// ReportRenderer converts parsed space trees into one nested, collapsible
// textual report. Rendering is a pure function of its input: it never
// touches the network, and identical input produces byte-identical output.
type ReportRenderer struct{}

// NewReportRenderer creates a new report renderer.
func NewReportRenderer() *ReportRenderer {
	return &ReportRenderer{}
}

// Render produces the report for the given top-level records: a header
// naming the analysis tool and its version, then one collapsible block per
// record, in arrival order, joined by a visible separator.
func (r *ReportRenderer) Render(records []domain.SpaceRecord, versionLabel string) string {
	var sb strings.Builder
	sb.WriteString("# ")
	sb.WriteString(versionLabel)
	sb.WriteString("\n\n")

	blocks := make([]string, 0, len(records))
	for i := range records {
		blocks = append(blocks, r.renderSpace(&records[i], true))
	}
	sb.WriteString(strings.Join(blocks, blockSeparator))

	return sb.String()
}

// renderSpace renders one space block: its own metrics, then a "spaces"
// section (only present when nested spaces exist) with one sub-block per
// child, recursively, in original order. The anonymous-name sentinel is replaced
// with a display label here and only here; the record keeps the raw name.
func (r *ReportRenderer) renderSpace(rec *domain.SpaceRecord, topLevel bool) string {
	var sb strings.Builder

	sb.WriteString("<details>\n")
	fmt.Fprintf(&sb, "<summary><b>%s</b> — %s (lines %d-%d)</summary>\n\n",
		rec.DisplayName(), rec.Kind, rec.StartLine, rec.EndLine)

	if topLevel {
		sb.WriteString("**global**\n")
	} else {
		sb.WriteString("**metrics**\n")
	}
	for _, line := range metricLines(rec.Metrics) {
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	if !rec.IsLeaf() {
		sb.WriteString("\n**spaces**\n\n")
		for i := range rec.Spaces {
			sb.WriteString(r.renderSpace(&rec.Spaces[i], false))
		}
	}

	sb.WriteString("</details>\n")
	return sb.String()
}
