package domain

// AnonymousName is the sentinel emitted by the analysis tool when a space
// has no usable identifier (closures, lambdas). It is kept verbatim on the
// record and substituted with AnonymousLabel only when text is produced for
// humans (report blocks, annotation titles).
const AnonymousName = "<anonymous>"

// AnonymousLabel is the display label substituted for AnonymousName.
const AnonymousLabel = "unnamed space"

// SpaceKind is the scope category tag assigned by the analysis tool
// (unit, function, closure, ...). It is carried through without
// interpretation.
type SpaceKind string

const (
	SpaceKindUnit     SpaceKind = "unit"
	SpaceKindFunction SpaceKind = "function"
	SpaceKindClosure  SpaceKind = "closure"
)

// SpaceRecord is one node of a metrics tree: a lexical scope (a whole file,
// or a function/closure nested within it) with its metrics bundle and its
// nested sub-spaces in source order. Nesting depth is unbounded.
type SpaceRecord struct {
	// Name is the scope identifier; AnonymousName when the tool had none
	Name string `json:"name"`

	// Kind is the scope category (unit, function, closure, ...)
	Kind SpaceKind `json:"kind"`

	// StartLine and EndLine are 1-based inclusive source bounds.
	// Malformed bounds are passed through, not validated.
	StartLine int `json:"start_line"`
	EndLine   int `json:"end_line"`

	// Metrics is the fixed-shape metrics bundle for this scope
	Metrics Metrics `json:"metrics"`

	// Spaces are the nested sub-spaces, in document order
	Spaces []SpaceRecord `json:"spaces"`
}

// DisplayName returns the name with the anonymous sentinel substituted.
func (r *SpaceRecord) DisplayName() string {
	if r.Name == "" || r.Name == AnonymousName {
		return AnonymousLabel
	}
	return r.Name
}

// IsLeaf reports whether the record has no nested spaces.
func (r *SpaceRecord) IsLeaf() bool {
	return len(r.Spaces) == 0
}

// CountSpaces returns the number of descendant spaces below this record,
// excluding the record itself.
func (r *SpaceRecord) CountSpaces() int {
	n := 0
	for i := range r.Spaces {
		n += 1 + r.Spaces[i].CountSpaces()
	}
	return n
}

// Metrics is the fixed metrics bundle attached to exactly one SpaceRecord.
// All values are read-only; no computation is performed on them beyond
// formatting.
type Metrics struct {
	// Nargs is the function argument count
	Nargs float64 `json:"nargs"`

	// Nexits is the exit point count
	Nexits float64 `json:"nexits"`

	// Cognitive is the cognitive complexity score
	Cognitive float64 `json:"cognitive"`

	Cyclomatic CyclomaticMetrics `json:"cyclomatic"`
	Halstead   HalsteadMetrics   `json:"halstead"`
	Loc        LocMetrics        `json:"loc"`
	Nom        NomMetrics        `json:"nom"`
	Mi         MiMetrics         `json:"mi"`
}

// CyclomaticMetrics groups McCabe cyclomatic complexity values.
type CyclomaticMetrics struct {
	Sum     float64 `json:"sum"`
	Average float64 `json:"average"`
}

// HalsteadMetrics groups the Halstead complexity measures: operator and
// operand counts plus the derived estimates.
type HalsteadMetrics struct {
	// UniqueOperators (n1) and Operators (N1)
	UniqueOperators float64 `json:"n1"`
	Operators       float64 `json:"N1"`

	// UniqueOperands (n2) and Operands (N2)
	UniqueOperands float64 `json:"n2"`
	Operands       float64 `json:"N2"`

	Length          float64 `json:"length"`
	EstimatedLength float64 `json:"estimated_program_length"`
	PurityRatio     float64 `json:"purity_ratio"`
	Vocabulary      float64 `json:"vocabulary"`
	Volume          float64 `json:"volume"`
	Difficulty      float64 `json:"difficulty"`
	Level           float64 `json:"level"`
	Effort          float64 `json:"effort"`
	Time            float64 `json:"time"`
	Bugs            float64 `json:"bugs"`
}

// LocMetrics groups the lines-of-code counts.
type LocMetrics struct {
	// Sloc is source lines, Ploc physical, Lloc logical,
	// Cloc comment lines, Blank blank lines.
	Sloc  float64 `json:"sloc"`
	Ploc  float64 `json:"ploc"`
	Lloc  float64 `json:"lloc"`
	Cloc  float64 `json:"cloc"`
	Blank float64 `json:"blank"`
}

// NomMetrics groups the number-of-members counts.
type NomMetrics struct {
	Functions float64 `json:"functions"`
	Closures  float64 `json:"closures"`
	Total     float64 `json:"total"`
}

// MiMetrics groups the three maintainability index variants.
type MiMetrics struct {
	Original     float64 `json:"mi_original"`
	Sei          float64 `json:"mi_sei"`
	VisualStudio float64 `json:"mi_visual_studio"`
}
