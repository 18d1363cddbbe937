package domain

type Status string

const (
	StatusOK               Status = "ok"
	StatusOKWithWarning    Status = "ok_with_warning"
	StatusInsufficientData Status = "insufficient_data"
	StatusError            Status = "error"
)

// NamedSeries is one renderable curve: paired X/Y values under a name the
// consumer can show as a legend entry.
type NamedSeries struct {
	Name string
	X    []float64
	Y    []float64
}

// LabeledPoint is one headline figure (a correlation, an R², a regime mean).
type LabeledPoint struct {
	Label string
	Value float64
}

// Payload is the normalized render shape every model adapter produces. The
// rendering consumer never branches on model identity beyond picking a
// renderer: series become charts, points become stat rows, lines become text.
type Payload struct {
	Series []NamedSeries
	Points []LabeledPoint
	Lines  []string
}

// Result is the immutable outcome of one analysis request. Warnings carry
// numeric diagnostics (non-convergence, degenerate ratios) that the consumer
// may surface or ignore; they never appear as raw library output.
type Result struct {
	Kind        ModelKind
	Status      Status
	Payload     *Payload
	Reason      string
	Confidence  Confidence
	Explanation string
	Warnings    []string
}

// Insufficient builds the failure result for a series below the kind's floor.
func Insufficient(kind ModelKind) Result {
	return Result{Kind: kind, Status: StatusInsufficientData, Reason: kind.InsufficientReason()}
}
