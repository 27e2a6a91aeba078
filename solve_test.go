package sudoku

import "testing"

// Norvig-style board fixtures.
const (
	easyBoard = "003020600900305001001806400008102900700000008006708200002609500800203009005010300"
)

func TestSolveEmptyStandardPuzzle(t *testing.T) {
	// Seed scenario 1: an all-zero grid, no cages, no
	// inequalities, solves, and is not unique.
	puzzle := &Puzzle{}

	sol, err := Solve(puzzle, false)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !sol.Solved {
		t.Fatalf("got Solved=false, want true")
	}

	sol, err = Solve(puzzle, true)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !sol.Solved {
		t.Fatalf("got Solved=false, want true")
	}
	if sol.Uniqueness != NotUnique {
		t.Errorf("got Uniqueness=%v, want NotUnique", sol.Uniqueness)
	}
}

func TestSolveTwoFivesInRow(t *testing.T) {
	// Seed scenario 2: "550000000..." has two givens of 5 in row 0.
	board := "550000000000000000000000000000000000000000000000000000000000000000000000000000000"
	puzzle, err := ParseString(board)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}

	sol, err := Solve(puzzle, false)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if sol.Solved {
		t.Errorf("got Solved=true, want false")
	}
}

func TestSolveRowLockingCages(t *testing.T) {
	// Seed scenario 3: cages partition row 0 into five groups summing to 45
	// (the only possible total for a full permutation of 1..9).
	puzzle := &Puzzle{
		Cages: []Cage{
			{Cells: []Cell{{0, 0}, {0, 1}}, Sum: 3},
			{Cells: []Cell{{0, 2}, {0, 3}}, Sum: 7},
			{Cells: []Cell{{0, 4}, {0, 5}}, Sum: 11},
			{Cells: []Cell{{0, 6}, {0, 7}}, Sum: 15},
			{Cells: []Cell{{0, 8}}, Sum: 9},
		},
	}

	sol, err := Solve(puzzle, false)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !sol.Solved {
		t.Fatalf("got Solved=false, want true")
	}

	sum := 0
	for c := 0; c < 9; c++ {
		sum += sol.Grid[0][c]
	}
	if sum != 45 {
		t.Errorf("got row-0 sum=%d, want 45", sum)
	}
	if !Verify(puzzle, sol.Grid) {
		t.Errorf("Verify rejected a solved grid")
	}
}

func TestSolveChainInequality(t *testing.T) {
	// Seed scenario 4: (0,c) < (0,c+1) for c=0..7 forces row 0 to 1..9 in
	// order.
	puzzle := &Puzzle{}
	for c := 0; c < 8; c++ {
		puzzle.Inequalities = append(puzzle.Inequalities, Inequality{
			A: Cell{0, c}, B: Cell{0, c + 1}, Kind: LT,
		})
	}

	sol, err := Solve(puzzle, false)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !sol.Solved {
		t.Fatalf("got Solved=false, want true")
	}
	for c := 0; c < 9; c++ {
		if sol.Grid[0][c] != c+1 {
			t.Errorf("got row0[%d]=%d, want %d", c, sol.Grid[0][c], c+1)
		}
	}
}

func TestSolveMaxForcing(t *testing.T) {
	// Seed scenario 5: eight inequalities (0,0) > (0,c) for c=1..8 force
	// (0,0) to be 9.
	puzzle := &Puzzle{}
	for c := 1; c <= 8; c++ {
		puzzle.Inequalities = append(puzzle.Inequalities, Inequality{
			A: Cell{0, 0}, B: Cell{0, c}, Kind: GT,
		})
	}

	sol, err := Solve(puzzle, false)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !sol.Solved {
		t.Fatalf("got Solved=false, want true")
	}
	if sol.Grid[0][0] != 9 {
		t.Errorf("got (0,0)=%d, want 9", sol.Grid[0][0])
	}
}

func TestSolveImpossibleOverlap(t *testing.T) {
	// Seed scenario 6: a given of 9 plus a cage summing to 3 on the same
	// cell is unsatisfiable (9 can't be part of any 2-cell sum-3
	// combination).
	puzzle := &Puzzle{
		Cages: []Cage{
			{Cells: []Cell{{0, 0}, {0, 1}}, Sum: 3},
		},
	}
	puzzle.Givens[0][0] = 9

	sol, err := Solve(puzzle, false)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if sol.Solved {
		t.Errorf("got Solved=true, want false")
	}
}

func TestSolveEasyBoardIsSoundAndRespectsGivens(t *testing.T) {
	puzzle, err := ParseString(easyBoard)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}

	sol, err := Solve(puzzle, true)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if !sol.Solved {
		t.Fatalf("got Solved=false, want true")
	}
	if sol.Uniqueness != Unique {
		t.Errorf("got Uniqueness=%v, want Unique", sol.Uniqueness)
	}
	if !Verify(puzzle, sol.Grid) {
		t.Errorf("Verify rejected a solved grid")
	}
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			if puzzle.Givens[r][c] != Empty && sol.Grid[r][c] != puzzle.Givens[r][c] {
				t.Errorf("given at (%d,%d)=%d not respected, got %d", r, c, puzzle.Givens[r][c], sol.Grid[r][c])
			}
		}
	}
}

func TestSolveStructuralErrors(t *testing.T) {
	t.Run("empty cage", func(t *testing.T) {
		puzzle := &Puzzle{Cages: []Cage{{Cells: nil, Sum: 5}}}
		sol, err := Solve(puzzle, false)
		if err != nil {
			t.Fatalf("Solve: %v", err)
		}
		if sol.Solved {
			t.Errorf("got Solved=true for an empty cage, want false")
		}
	})

	t.Run("sum out of range", func(t *testing.T) {
		puzzle := &Puzzle{Cages: []Cage{{Cells: []Cell{{0, 0}, {0, 1}}, Sum: 100}}}
		sol, err := Solve(puzzle, false)
		if err != nil {
			t.Fatalf("Solve: %v", err)
		}
		if sol.Solved {
			t.Errorf("got Solved=true for an out-of-range sum, want false")
		}
	})

	t.Run("coincident inequality cells", func(t *testing.T) {
		puzzle := &Puzzle{Inequalities: []Inequality{{A: Cell{0, 0}, B: Cell{0, 0}, Kind: GT}}}
		sol, err := Solve(puzzle, false)
		if err != nil {
			t.Fatalf("Solve: %v", err)
		}
		if sol.Solved {
			t.Errorf("got Solved=true for a coincident inequality, want false")
		}
	})
}
