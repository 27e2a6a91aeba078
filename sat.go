package sudoku

import (
	"github.com/crillab/gophersat/solver"
)

// satResult is the outcome of invoking the CDCL solver on a CNF formula.
type satResult struct {
	sat   bool
	model []bool // model[i] is the value of variable i+1; empty if !sat.
}

// runSAT invokes the external CDCL solver (github.com/crillab/gophersat) on
// clauses, a list of clauses in gophersat's native signed-integer literal
// form. This is the only place in the package that talks to the solver
// library directly: ParseSlice+New build the problem, Solve runs CDCL
// search, and Model extracts the satisfying assignment.
func runSAT(clauses [][]int) (satResult, error) {
	pb := solver.ParseSlice(clauses)
	s := solver.New(pb)
	status := s.Solve()
	switch status {
	case solver.Sat:
		return satResult{sat: true, model: s.Model()}, nil
	case solver.Unsat:
		return satResult{sat: false}, nil
	default:
		return satResult{}, errIndeterminate
	}
}

var errIndeterminate = errSolver("SAT solver returned an indeterminate status")

// errSolver is a plain string error for solver-internal failures, kept
// distinguishable from puzzle-level "no solution" results.
type errSolver string

func (e errSolver) Error() string { return string(e) }
