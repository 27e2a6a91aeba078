package sudoku

import (
	"fmt"
	"time"
)

// buildClauses emits every clause for p's variant: basic Sudoku clauses
// always, cage clauses if p has cages, inequality clauses if p has
// inequalities.
func buildClauses(p *Puzzle) *clauseBuilder {
	b := newClauseBuilder()
	basicClauses(b, p.Givens)
	if len(p.Cages) > 0 {
		cageClauses(b, p.Cages)
	}
	if len(p.Inequalities) > 0 {
		inequalityClauses(b, p.Inequalities)
	}
	return b
}

// decodeGrid reads a satisfying model into a 9x9 grid, choosing for each
// cell the unique v with var(r,c,v) true. More than one true literal per
// cell means the encoding is buggy, which is treated as fatal rather than
// silently picking one.
func decodeGrid(model []bool) (Grid, error) {
	var g Grid
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			found := 0
			for v := 1; v <= 9; v++ {
				id := varID(r, c, v)
				if id-1 < len(model) && model[id-1] {
					g[r][c] = v
					found++
				}
			}
			if found != 1 {
				return g, fmt.Errorf("sudoku: internal error: cell %v has %d true literals, want 1", Cell{r, c}, found)
			}
		}
	}
	return g, nil
}

// blockingClause returns the clause that forbids the exact assignment in g
// from being found again: the disjunction of the negation of every literal
// g makes true.
func blockingClause(g Grid) []int {
	lits := make([]int, 0, 81)
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			lits = append(lits, -varID(r, c, g[r][c]))
		}
	}
	return lits
}

// Solve builds the CNF encoding for p and invokes the SAT solver. When
// checkUniqueness is true, a second solve is performed under a blocking
// clause to determine whether the first solution found is the only one.
//
// The blocking-clause re-solve is a fresh solver run over the original
// clauses plus the blocking clause, rather than in-place mutation of a
// live solver: gophersat's public API (ParseSlice/New/Solve) doesn't
// expose an incremental add-clause-and-resume entry point, so reusing the
// clause set is done by rebuilding the slice rather than by reusing a
// solver object.
func Solve(p *Puzzle, checkUniqueness bool) (*Solution, error) {
	start := time.Now()
	b := buildClauses(p)

	result, err := runSAT(b.clauses)
	firstElapsed := time.Since(start)
	if err != nil {
		return &Solution{
			Solved:       false,
			Uniqueness:   NotChecked,
			Diagnostic:   err.Error(),
			SolveTimeMs:  ms(firstElapsed),
			NumVariables: b.nextVar - 1,
			NumClauses:   len(b.clauses),
		}, nil
	}
	if !result.sat {
		return &Solution{
			Solved:       false,
			Uniqueness:   NotChecked,
			Diagnostic:   "no solution exists",
			SolveTimeMs:  ms(firstElapsed),
			NumVariables: b.nextVar - 1,
			NumClauses:   len(b.clauses),
		}, nil
	}

	grid, err := decodeGrid(result.model)
	if err != nil {
		panic(err)
	}
	if !Verify(p, grid) {
		panic(fmt.Errorf("sudoku: internal error: decoded solution fails verification for puzzle %v", grid))
	}

	sol := &Solution{
		Grid:         grid,
		Solved:       true,
		Uniqueness:   NotChecked,
		SolveTimeMs:  ms(firstElapsed),
		NumVariables: b.nextVar - 1,
		NumClauses:   len(b.clauses),
	}
	if !checkUniqueness {
		return sol, nil
	}

	secondStart := time.Now()
	blocked := append(append([][]int(nil), b.clauses...), blockingClause(grid))
	secondResult, err := runSAT(blocked)
	secondElapsed := time.Since(secondStart)
	sol.SolveTimeMs += ms(secondElapsed)
	if err != nil {
		sol.Uniqueness = NotChecked
		sol.Diagnostic = err.Error()
		return sol, nil
	}
	if secondResult.sat {
		sol.Uniqueness = NotUnique
	} else {
		sol.Uniqueness = Unique
	}
	return sol, nil
}

func ms(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e6
}
