package service

import (
	"encoding/json"
	"strings"

	"github.com/spacecheck-ci/spacecheck/domain"
)

// RecordParser turns one line of analysis tool output into a SpaceRecord.
// The tool interleaves diagnostic text with record lines, so decode failure
// is an expected, silent outcome rather than an error: either the full
// structured shape parses or nothing is emitted.
type RecordParser struct{}

// NewRecordParser creates a new record parser.
func NewRecordParser() *RecordParser {
	return &RecordParser{}
}

// Parse attempts to decode one line into a SpaceRecord. The boolean is
// false for anything that is not a complete record: non-JSON diagnostics,
// truncated objects, or JSON that lacks the record shape.
func (p *RecordParser) Parse(line string) (*domain.SpaceRecord, bool) {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}

	var rec domain.SpaceRecord
	if err := json.Unmarshal([]byte(trimmed), &rec); err != nil {
		return nil, false
	}

	// A record always carries a name and a kind; a bare JSON object that
	// happens to decode is still a diagnostic, not a record.
	if rec.Name == "" || rec.Kind == "" {
		return nil, false
	}

	return &rec, true
}
