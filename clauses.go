package sudoku

// clauseBuilder accumulates CNF clauses in gophersat's native literal
// encoding: a clause is a []int where a positive int n means variable n is
// true, and a negative int -n means variable n is false. Auxiliary
// variables (combination-chosen flags for multi-combination cages) are
// allocated starting at NumPrimaryVars+1, keeping them segregated from the
// primary (row,col,value) variables so a model decoder that only scans
// ids <= NumPrimaryVars never sees them.
type clauseBuilder struct {
	clauses [][]int
	nextVar int
}

func newClauseBuilder() *clauseBuilder {
	return &clauseBuilder{nextVar: NumPrimaryVars + 1}
}

// newAux allocates and returns a fresh auxiliary variable id.
func (b *clauseBuilder) newAux() int {
	v := b.nextVar
	b.nextVar++
	return v
}

// numAux reports how many auxiliary variables have been allocated so far.
func (b *clauseBuilder) numAux() int {
	return b.nextVar - NumPrimaryVars - 1
}

// add appends a clause made of lits.
func (b *clauseBuilder) add(lits ...int) {
	clause := make([]int, len(lits))
	copy(clause, lits)
	b.clauses = append(b.clauses, clause)
}

// empty appends the empty clause, forcing UNSAT — used for structural
// errors that should surface as "no solution" rather than a panic or a
// rejection before encoding.
func (b *clauseBuilder) empty() {
	b.clauses = append(b.clauses, []int{})
}

// atLeastOne emits a single clause asserting at least one of lits holds.
func (b *clauseBuilder) atLeastOne(lits []int) {
	b.add(lits...)
}

// atMostOne emits the pairwise encoding: for every pair of literals, forbid
// both being true. O(n^2) clauses; fine here since every set is small: at
// most 9 cell literals, or a cage's candidate combinations (at most 12).
func (b *clauseBuilder) atMostOne(lits []int) {
	for i := 0; i < len(lits); i++ {
		for j := i + 1; j < len(lits); j++ {
			b.add(-lits[i], -lits[j])
		}
	}
}

// exactlyOne emits atLeastOne and atMostOne over lits.
func (b *clauseBuilder) exactlyOne(lits []int) {
	b.atLeastOne(lits)
	b.atMostOne(lits)
}

// basicClauses emits the four Sudoku structural constraints plus unit
// clauses for the puzzle's givens.
func basicClauses(b *clauseBuilder, givens Grid) {
	// 1. Every cell holds exactly one value.
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			lits := make([]int, 9)
			for v := 1; v <= 9; v++ {
				lits[v-1] = varID(r, c, v)
			}
			b.exactlyOne(lits)
		}
	}

	// 2. Every row holds each value exactly once.
	for r := 0; r < 9; r++ {
		for v := 1; v <= 9; v++ {
			lits := make([]int, 9)
			for c := 0; c < 9; c++ {
				lits[c] = varID(r, c, v)
			}
			b.exactlyOne(lits)
		}
	}

	// 3. Every column holds each value exactly once.
	for c := 0; c < 9; c++ {
		for v := 1; v <= 9; v++ {
			lits := make([]int, 9)
			for r := 0; r < 9; r++ {
				lits[r] = varID(r, c, v)
			}
			b.exactlyOne(lits)
		}
	}

	// 4. Every 3x3 box holds each value exactly once.
	for br := 0; br < 3; br++ {
		for bc := 0; bc < 3; bc++ {
			for v := 1; v <= 9; v++ {
				lits := make([]int, 0, 9)
				for dr := 0; dr < 3; dr++ {
					for dc := 0; dc < 3; dc++ {
						lits = append(lits, varID(br*3+dr, bc*3+dc, v))
					}
				}
				b.exactlyOne(lits)
			}
		}
	}

	// 5. Givens.
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			if givens[r][c] != Empty {
				b.add(varID(r, c, givens[r][c]))
			}
		}
	}
}

// combination is a strictly increasing tuple of distinct digits in [1,9].
type combination []int

// enumerateCombinations returns every strictly increasing tuple of n
// distinct digits in [1,9] summing to target, found via backtracking with
// a min/max achievable-sum pruning test at each step.
func enumerateCombinations(n, target int) []combination {
	var out []combination
	var cur combination
	var rec func(start, remaining, remainingTarget int)
	rec = func(start, remaining, remainingTarget int) {
		if remaining == 0 {
			if remainingTarget == 0 {
				out = append(out, append(combination(nil), cur...))
			}
			return
		}
		for v := start; v <= 9; v++ {
			// Prune: can the rest of the tuple possibly reach remainingTarget-v?
			rest := remaining - 1
			loSum := sumOfSmallest(rest, v+1)
			hiSum := sumOfLargest(rest, v+1)
			left := remainingTarget - v
			if left < loSum || left > hiSum {
				continue
			}
			cur = append(cur, v)
			rec(v+1, remaining-1, remainingTarget-v)
			cur = cur[:len(cur)-1]
		}
	}
	rec(1, n, target)
	return out
}

// sumOfSmallest returns the sum of the k smallest distinct digits from
// [from,9], or a value guaranteed to exceed any real target if k digits
// don't fit in that range.
func sumOfSmallest(k, from int) int {
	if k == 0 {
		return 0
	}
	if from+k-1 > 9 {
		return 1 << 30
	}
	// sum of from..from+k-1
	return k*from + k*(k-1)/2
}

// sumOfLargest returns the sum of the k largest distinct digits from
// [from,9].
func sumOfLargest(k, from int) int {
	if k == 0 {
		return 0
	}
	if 9-k+1 < from {
		return -(1 << 30)
	}
	// sum of (9-k+1)..9
	lo := 9 - k + 1
	return k*lo + k*(k-1)/2
}

// contains reports whether v is a member of combo.
func (combo combination) contains(v int) bool {
	for _, x := range combo {
		if x == v {
			return true
		}
	}
	return false
}

// cageClauses emits the cage-uniqueness and cage-sum clauses for every
// cage. A structurally invalid cage (empty, or a sum outside the
// achievable range) forces UNSAT via the empty clause rather than being
// rejected before encoding.
func cageClauses(b *clauseBuilder, cages []Cage) {
	for _, cage := range cages {
		if len(cage.Cells) == 0 || !cage.valid() {
			b.empty()
			continue
		}

		// Cage uniqueness: no value repeats within the cage.
		for v := 1; v <= 9; v++ {
			lits := make([]int, len(cage.Cells))
			for i, cell := range cage.Cells {
				lits[i] = varID(cell.Row, cell.Col, v)
			}
			b.atMostOne(lits)
		}

		combos := enumerateCombinations(len(cage.Cells), cage.Sum)
		if len(combos) == 0 {
			b.empty()
			continue
		}

		if len(combos) == 1 {
			encodeSingleCombination(b, cage, combos[0])
		} else {
			encodeMultipleCombinations(b, cage, combos)
		}
	}
}

// encodeSingleCombination handles the case where exactly one combination of
// digits can fill the cage: the cage must hold that multiset.
func encodeSingleCombination(b *clauseBuilder, cage Cage, combo combination) {
	for v := 1; v <= 9; v++ {
		if combo.contains(v) {
			lits := make([]int, len(cage.Cells))
			for i, cell := range cage.Cells {
				lits[i] = varID(cell.Row, cell.Col, v)
			}
			b.atLeastOne(lits)
		} else {
			for _, cell := range cage.Cells {
				b.add(-varID(cell.Row, cell.Col, v))
			}
		}
	}
}

// encodeMultipleCombinations handles the case where several combinations of
// digits can fill the cage: a fresh "combination chosen" auxiliary variable
// per candidate combination, with channeling clauses tying the aux
// variables to the primary ones so no spurious models appear.
func encodeMultipleCombinations(b *clauseBuilder, cage Cage, combos []combination) {
	chosen := make([]int, len(combos))
	for i := range combos {
		chosen[i] = b.newAux()
	}
	b.exactlyOne(chosen)

	for i, combo := range combos {
		for v := 1; v <= 9; v++ {
			if combo.contains(v) {
				lits := make([]int, 0, len(cage.Cells)+1)
				lits = append(lits, -chosen[i])
				for _, cell := range cage.Cells {
					lits = append(lits, varID(cell.Row, cell.Col, v))
				}
				b.add(lits...)
			} else {
				for _, cell := range cage.Cells {
					b.add(-chosen[i], -varID(cell.Row, cell.Col, v))
				}
			}
		}
	}

	// Channeling: var(cell,v) implies the disjunction of every chosen[i]
	// whose combination contains v.
	for _, cell := range cage.Cells {
		for v := 1; v <= 9; v++ {
			var supporters []int
			for i, combo := range combos {
				if combo.contains(v) {
					supporters = append(supporters, chosen[i])
				}
			}
			if len(supporters) == 0 {
				b.add(-varID(cell.Row, cell.Col, v))
				continue
			}
			lits := make([]int, 0, len(supporters)+1)
			lits = append(lits, -varID(cell.Row, cell.Col, v))
			lits = append(lits, supporters...)
			b.add(lits...)
		}
	}
}

// inequalityClauses emits the pairwise forbidden-tuple encoding for every
// inequality. An inequality whose two cells coincide is a structural
// error, forced to UNSAT via the empty clause.
func inequalityClauses(b *clauseBuilder, ineqs []Inequality) {
	for _, ineq := range ineqs {
		if ineq.A == ineq.B {
			b.empty()
			continue
		}
		for v1 := 1; v1 <= 9; v1++ {
			for v2 := 1; v2 <= 9; v2++ {
				forbidden := false
				switch ineq.Kind {
				case GT:
					// A > B forbids A <= B.
					forbidden = v1 <= v2
				case LT:
					// A < B forbids A >= B.
					forbidden = v1 >= v2
				}
				if forbidden {
					b.add(-varID(ineq.A.Row, ineq.A.Col, v1), -varID(ineq.B.Row, ineq.B.Col, v2))
				}
			}
		}
	}
}
