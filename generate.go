package sudoku

import (
	"fmt"
	"math/rand"
	"time"

	"golang.org/x/exp/slices"
)

// GeneratorConfig controls puzzle generation. Every field has a sensible
// default in DefaultGeneratorConfig.
type GeneratorConfig struct {
	Type Type

	MinCages, MaxCages         int
	MinCageSize, MaxCageSize   int
	MinInequalities            int
	MaxInequalities            int
	MinGivens, MaxGivens       int
	Seed                       int64
	EnsureUniqueSolution       bool
	FillAllCells               bool
	Difficulty                 int // 0-100
	// PreSeedCount is the number of random (cell,value) assignments used to
	// bias the otherwise-deterministic CDCL search into diverse complete
	// grids. 11 is kept as the default but is a tunable, not a fixed
	// constant.
	PreSeedCount int
}

// DefaultGeneratorConfig returns a Mixed-puzzle configuration with
// moderate cage/inequality counts and a unique-solution guarantee.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Type:                 Mixed,
		MinCages:             15,
		MaxCages:             25,
		MinCageSize:          2,
		MaxCageSize:          5,
		MinInequalities:      20,
		MaxInequalities:      40,
		MinGivens:            0,
		MaxGivens:            0,
		Seed:                 0,
		EnsureUniqueSolution: true,
		FillAllCells:         false,
		Difficulty:           50,
		PreSeedCount:         11,
	}
}

// GenerateResult is the outcome of a successful Generate call: the puzzle,
// its (first-found) complete solution, and a difficulty proxy — the
// removal ratio actually achieved during minimization.
type GenerateResult struct {
	Puzzle            *Puzzle
	Solution          *Solution
	RemovalsAttempted int
	RemovalsAccepted  int
}

const (
	maxCageGrowthAttempts = 100
	maxCageCarveAttempts  = 2000
	uniquenessRetryCap    = 10
)

// Generate produces a puzzle of the configured variant that admits a
// solution and, if requested, a unique one: random complete grid, carve
// constraints, add givens, repair uniqueness, then minimize.
func Generate(cfg GeneratorConfig) (*GenerateResult, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = randomSeed()
	}
	rng := rand.New(rand.NewSource(seed))

	complete, err := randomCompleteGrid(rng, cfg.PreSeedCount)
	if err != nil {
		return nil, fmt.Errorf("sudoku: generating complete grid: %w", err)
	}

	puzzle := &Puzzle{}

	wantsCages := cfg.Type == Killer || cfg.Type == Mixed
	wantsIneq := cfg.Type == InequalityType || cfg.Type == Mixed

	if wantsCages {
		carveCages(rng, puzzle, complete, cfg)
	}
	if wantsIneq {
		carveInequalities(rng, puzzle, complete, cfg)
	}
	addGivens(rng, puzzle, complete, randBetween(rng, cfg.MinGivens, cfg.MaxGivens))

	if cfg.EnsureUniqueSolution {
		if err := repairUniqueness(rng, puzzle, complete, cfg); err != nil {
			return nil, err
		}
	}

	attempted, accepted := minimize(rng, puzzle, cfg)

	sol, err := Solve(puzzle, cfg.EnsureUniqueSolution)
	if err != nil {
		return nil, err
	}
	if !sol.Solved {
		panic(fmt.Errorf("sudoku: internal error: generated puzzle unexpectedly unsolvable"))
	}

	return &GenerateResult{
		Puzzle:            puzzle,
		Solution:          sol,
		RemovalsAttempted: attempted,
		RemovalsAccepted:  accepted,
	}, nil
}

// randBetween returns a uniform random int in [lo,hi], tolerating lo>hi by
// swapping, and lo==hi by returning lo.
func randBetween(rng *rand.Rand, lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	if hi == lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

// randomCompleteGrid builds a fully-solved 9x9 grid by pre-seeding
// preSeedCount random, locally-consistent (cell,value) givens and invoking
// the solver. The pre-seeds bias the CDCL search
// so different seeds yield different complete solutions; if the resulting
// partial grid happens to be globally unsatisfiable, the pre-seed count is
// backed off and retried (an empty grid is always satisfiable, so this
// terminates).
func randomCompleteGrid(rng *rand.Rand, preSeedCount int) (Grid, error) {
	for n := preSeedCount; n >= 0; n-- {
		givens, ok := randomConsistentGivens(rng, n)
		if !ok {
			continue
		}
		sol, err := Solve(&Puzzle{Givens: givens}, false)
		if err != nil {
			return Grid{}, err
		}
		if sol.Solved {
			return sol.Grid, nil
		}
	}
	return Grid{}, fmt.Errorf("sudoku: could not produce a complete grid")
}

// randomConsistentGivens picks up to n random (cell,value) pairs that are
// mutually consistent with row/column/box uniqueness. It returns ok=false
// only if it cannot place even zero givens, which cannot happen; the
// signature mirrors the other generator helpers for symmetry.
func randomConsistentGivens(rng *rand.Rand, n int) (Grid, bool) {
	var g Grid
	placed := 0
	attempts := 0
	for placed < n && attempts < n*20+20 {
		attempts++
		r := rng.Intn(9)
		c := rng.Intn(9)
		if g[r][c] != Empty {
			continue
		}
		v := rng.Intn(9) + 1
		if !consistentPlacement(g, r, c, v) {
			continue
		}
		g[r][c] = v
		placed++
	}
	return g, true
}

// consistentPlacement reports whether placing v at (r,c) keeps g's row,
// column and box free of duplicates.
func consistentPlacement(g Grid, r, c, v int) bool {
	for i := 0; i < 9; i++ {
		if g[r][i] == v || g[i][c] == v {
			return false
		}
	}
	br, bc := (r/3)*3, (c/3)*3
	for dr := 0; dr < 3; dr++ {
		for dc := 0; dc < 3; dc++ {
			if g[br+dr][bc+dc] == v {
				return false
			}
		}
	}
	return true
}

// carveCages grows a set of non-overlapping cages over complete via
// BFS-style expansion from a random seed cell, adding 4-connected
// neighbors whose solution value isn't already present in the growing
// cage.
func carveCages(rng *rand.Rand, puzzle *Puzzle, complete Grid, cfg GeneratorConfig) {
	used := make(map[Cell]bool, 81)
	desired := randBetween(rng, cfg.MinCages, cfg.MaxCages)

	for attempt := 0; attempt < maxCageCarveAttempts; attempt++ {
		if cfg.FillAllCells {
			if len(used) >= 81 {
				break
			}
		} else if len(puzzle.Cages) >= desired {
			break
		}

		seed, ok := randomUnusedCell(rng, used)
		if !ok {
			break
		}
		size := randBetween(rng, cfg.MinCageSize, cfg.MaxCageSize)
		cage := growCage(rng, seed, size, used, complete)

		minAccepted := 2
		if cfg.FillAllCells {
			minAccepted = 1
		}
		if len(cage) < minAccepted {
			continue
		}

		sum := 0
		for _, cell := range cage {
			sum += complete[cell.Row][cell.Col]
			used[cell] = true
		}
		puzzle.Cages = append(puzzle.Cages, Cage{Cells: cage, Sum: sum})
	}
}

// randomUnusedCell returns a uniformly random cell not in used.
func randomUnusedCell(rng *rand.Rand, used map[Cell]bool) (Cell, bool) {
	var free []Cell
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			cell := Cell{r, c}
			if !used[cell] {
				free = append(free, cell)
			}
		}
	}
	if len(free) == 0 {
		return Cell{}, false
	}
	return free[rng.Intn(len(free))], true
}

// growCage expands a single-cell cage to (at most) size cells via
// 4-connected BFS growth, accepting only candidates with a solution value
// not yet present in the cage so the cage is trivially uniqueness-consistent
// with complete. Growth stops early if no eligible neighbor exists, or
// after maxCageGrowthAttempts steps.
func growCage(rng *rand.Rand, seed Cell, size int, used map[Cell]bool, complete Grid) []Cell {
	cage := []Cell{seed}
	values := map[int]bool{complete[seed.Row][seed.Col]: true}
	inCage := map[Cell]bool{seed: true}

	for attempt := 0; len(cage) < size && attempt < maxCageGrowthAttempts; attempt++ {
		var candidates []Cell
		for _, cell := range cage {
			for _, n := range fourNeighbors(cell) {
				if used[n] || inCage[n] {
					continue
				}
				if values[complete[n.Row][n.Col]] {
					continue
				}
				candidates = append(candidates, n)
			}
		}
		if len(candidates) == 0 {
			break
		}
		pick := candidates[rng.Intn(len(candidates))]
		cage = append(cage, pick)
		inCage[pick] = true
		values[complete[pick.Row][pick.Col]] = true
	}
	return cage
}

// fourNeighbors returns the in-bounds 4-connected neighbors of cell.
func fourNeighbors(cell Cell) []Cell {
	candidates := []Cell{
		{cell.Row - 1, cell.Col},
		{cell.Row + 1, cell.Col},
		{cell.Row, cell.Col - 1},
		{cell.Row, cell.Col + 1},
	}
	out := candidates[:0]
	for _, c := range candidates {
		if c.inBounds() {
			out = append(out, c)
		}
	}
	return out
}

// adjacentPairs enumerates every horizontally or vertically adjacent cell
// pair on the board.
func adjacentPairs() [][2]Cell {
	var pairs [][2]Cell
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			if c+1 < 9 {
				pairs = append(pairs, [2]Cell{{r, c}, {r, c + 1}})
			}
			if r+1 < 9 {
				pairs = append(pairs, [2]Cell{{r, c}, {r + 1, c}})
			}
		}
	}
	return pairs
}

// carveInequalities records up to the configured count of adjacent-cell
// inequalities, derived from complete's values.
func carveInequalities(rng *rand.Rand, puzzle *Puzzle, complete Grid, cfg GeneratorConfig) {
	pairs := adjacentPairs()
	rng.Shuffle(len(pairs), func(i, j int) { pairs[i], pairs[j] = pairs[j], pairs[i] })

	target := randBetween(rng, cfg.MinInequalities, cfg.MaxInequalities)
	appendInequalitiesFrom(puzzle, complete, pairs, target)
}

// appendInequalitiesFrom appends inequalities drawn from pairs (in order)
// to puzzle, until it has target total inequalities or pairs is exhausted;
// pairs already recorded as an inequality are skipped.
func appendInequalitiesFrom(puzzle *Puzzle, complete Grid, pairs [][2]Cell, target int) {
	existing := make(map[[2]Cell]bool, len(puzzle.Inequalities))
	for _, ineq := range puzzle.Inequalities {
		existing[[2]Cell{ineq.A, ineq.B}] = true
		existing[[2]Cell{ineq.B, ineq.A}] = true
	}
	for _, pair := range pairs {
		if len(puzzle.Inequalities) >= target {
			return
		}
		if existing[pair] {
			continue
		}
		a, b := pair[0], pair[1]
		va, vb := complete[a.Row][a.Col], complete[b.Row][b.Col]
		if va == vb {
			continue
		}
		kind := LT
		if va > vb {
			kind = GT
		}
		puzzle.Inequalities = append(puzzle.Inequalities, Inequality{A: a, B: b, Kind: kind})
		existing[pair] = true
		existing[[2]Cell{b, a}] = true
	}
}

// addGivens copies n uniformly-random currently-empty cells from complete
// into puzzle's givens.
func addGivens(rng *rand.Rand, puzzle *Puzzle, complete Grid, n int) {
	var empty []Cell
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			if puzzle.Givens[r][c] == Empty {
				empty = append(empty, Cell{r, c})
			}
		}
	}
	rng.Shuffle(len(empty), func(i, j int) { empty[i], empty[j] = empty[j], empty[i] })
	if n > len(empty) {
		n = len(empty)
	}
	for _, cell := range empty[:n] {
		puzzle.Givens[cell.Row][cell.Col] = complete[cell.Row][cell.Col]
	}
}

// repairUniqueness adds constraints until puzzle's solution is unique. It
// first tries adding inequalities (if the variant permits them) or givens,
// up to uniquenessRetryCap rounds; if that's not enough it falls back to
// adding givens one at a time, which is guaranteed to terminate once all
// 81 cells are given.
func repairUniqueness(rng *rand.Rand, puzzle *Puzzle, complete Grid, cfg GeneratorConfig) error {
	allPairs := adjacentPairs()
	rng.Shuffle(len(allPairs), func(i, j int) { allPairs[i], allPairs[j] = allPairs[j], allPairs[i] })
	wantsIneq := cfg.Type == InequalityType || cfg.Type == Mixed

	for round := 0; round < uniquenessRetryCap; round++ {
		sol, err := Solve(puzzle, true)
		if err != nil {
			return err
		}
		if !sol.Solved {
			return fmt.Errorf("sudoku: internal error: generated puzzle became unsolvable during repair")
		}
		if sol.Uniqueness == Unique {
			return nil
		}
		if wantsIneq && len(puzzle.Inequalities) < len(allPairs) {
			before := len(puzzle.Inequalities)
			appendInequalitiesFrom(puzzle, complete, allPairs, before+5)
		} else {
			addGivens(rng, puzzle, complete, 3)
		}
	}

	// Fallback: add givens one at a time, guaranteed to terminate once the
	// grid is fully given.
	for countGivens(puzzle.Givens) < 81 {
		sol, err := Solve(puzzle, true)
		if err != nil {
			return err
		}
		if sol.Solved && sol.Uniqueness == Unique {
			return nil
		}
		addGivens(rng, puzzle, complete, 1)
	}
	return nil
}

func countGivens(g Grid) int {
	n := 0
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			if g[r][c] != Empty {
				n++
			}
		}
	}
	return n
}

// minimize attempts to remove constraints while the puzzle remains uniquely
// solvable: inequalities first, then cages, then givens, because
// inequalities tend to carry the least information. The difficulty knob
// bounds the fraction of candidates attempted per category, clamped to
// [0,1] — difficulty is treated as an attempt-count cap, not a pass/fail
// threshold, so higher difficulty means more aggressive minimization.
func minimize(rng *rand.Rand, puzzle *Puzzle, cfg GeneratorConfig) (attempted, accepted int) {
	fraction := float64(cfg.Difficulty) / 100.0
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}

	a1, b1 := minimizeInequalities(rng, puzzle, fraction)
	a2, b2 := minimizeCages(rng, puzzle, fraction)
	a3, b3 := minimizeGivens(rng, puzzle, fraction)
	return a1 + a2 + a3, b1 + b2 + b3
}

func stillUnique(puzzle *Puzzle) bool {
	sol, err := Solve(puzzle, true)
	return err == nil && sol.Solved && sol.Uniqueness == Unique
}

// minimizeInequalities tries dropping each inequality (in random order),
// keeping the drop whenever the puzzle remains uniquely solvable. Indices
// in order always address the original, untouched snapshot taken before
// any removal — not puzzle.Inequalities, which shrinks as removals are
// accepted — so an index is never reinterpreted against a different list.
func minimizeInequalities(rng *rand.Rand, puzzle *Puzzle, fraction float64) (attempted, accepted int) {
	original := slices.Clone(puzzle.Inequalities)
	order := rng.Perm(len(original))
	maxAttempts := int(fraction * float64(len(order)))
	removed := make(map[int]bool, len(order))

	for _, idx := range order {
		if attempted >= maxAttempts {
			break
		}
		attempted++
		removed[idx] = true
		puzzle.Inequalities = filterInequalities(original, removed)
		if stillUnique(puzzle) {
			accepted++
		} else {
			delete(removed, idx)
			puzzle.Inequalities = filterInequalities(original, removed)
		}
	}
	return attempted, accepted
}

// filterInequalities returns the entries of original whose index is not in
// removed, preserving relative order.
func filterInequalities(original []Inequality, removed map[int]bool) []Inequality {
	out := make([]Inequality, 0, len(original))
	for i, ineq := range original {
		if removed[i] {
			continue
		}
		out = append(out, ineq)
	}
	return out
}

// minimizeCages is minimizeInequalities's counterpart for cages; see its
// doc comment for why indices always address the original snapshot.
func minimizeCages(rng *rand.Rand, puzzle *Puzzle, fraction float64) (attempted, accepted int) {
	original := make([]Cage, len(puzzle.Cages))
	copy(original, puzzle.Cages)
	order := rng.Perm(len(original))
	maxAttempts := int(fraction * float64(len(order)))
	removed := make(map[int]bool, len(order))

	for _, idx := range order {
		if attempted >= maxAttempts {
			break
		}
		attempted++
		removed[idx] = true
		puzzle.Cages = filterCages(original, removed)
		if stillUnique(puzzle) {
			accepted++
		} else {
			delete(removed, idx)
			puzzle.Cages = filterCages(original, removed)
		}
	}
	return attempted, accepted
}

// filterCages returns the entries of original whose index is not in
// removed, preserving relative order.
func filterCages(original []Cage, removed map[int]bool) []Cage {
	out := make([]Cage, 0, len(original))
	for i, cage := range original {
		if removed[i] {
			continue
		}
		out = append(out, cage)
	}
	return out
}

func minimizeGivens(rng *rand.Rand, puzzle *Puzzle, fraction float64) (attempted, accepted int) {
	var givenCells []Cell
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			if puzzle.Givens[r][c] != Empty {
				givenCells = append(givenCells, Cell{r, c})
			}
		}
	}
	rng.Shuffle(len(givenCells), func(i, j int) { givenCells[i], givenCells[j] = givenCells[j], givenCells[i] })
	maxAttempts := int(fraction * float64(len(givenCells)))

	for _, cell := range givenCells {
		if attempted >= maxAttempts {
			break
		}
		attempted++
		saved := puzzle.Givens[cell.Row][cell.Col]
		puzzle.Givens[cell.Row][cell.Col] = Empty
		if stillUnique(puzzle) {
			accepted++
		} else {
			puzzle.Givens[cell.Row][cell.Col] = saved
		}
	}
	return attempted, accepted
}

// randomSeed returns a time-based seed, used when the caller passes 0.
func randomSeed() int64 {
	return time.Now().UnixNano()
}
