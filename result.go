package sudoku

// Result is the JSON-serializable shape of a solve outcome, for
// consumption by callers outside this package (a CLI, an HTTP handler, a
// worker bridge) that need a stable wire contract rather than the
// in-process Solution type.
type Result struct {
	Solved      bool       `json:"solved"`
	SolveTimeMs float64    `json:"solveTimeMs"`
	Variables   int        `json:"variables"`
	Clauses     int        `json:"clauses"`
	Uniqueness  string     `json:"uniqueness,omitempty"`
	Grid        *[9][9]int `json:"grid,omitempty"`
	Error       string     `json:"error,omitempty"`
}

// NewResult converts a Solution into its JSON-facing Result shape.
func NewResult(sol *Solution) Result {
	r := Result{
		Solved:      sol.Solved,
		SolveTimeMs: sol.SolveTimeMs,
		Variables:   sol.NumVariables,
		Clauses:     sol.NumClauses,
		Uniqueness:  sol.Uniqueness.String(),
		Error:       sol.Diagnostic,
	}
	if sol.Solved {
		grid := sol.Grid
		r.Grid = &grid
	}
	return r
}
