package sudoku

import (
	"reflect"
	"testing"
)

func TestEnumerateCombinations(t *testing.T) {
	tests := []struct {
		n, target int
		want      []combination
	}{
		{2, 3, []combination{{1, 2}}},
		{2, 17, []combination{{8, 9}}},
		{2, 100, nil}, // unreachable: rejected before enumeration in practice
		{3, 6, []combination{{1, 2, 3}}},
		{1, 5, []combination{{5}}},
	}
	for _, tc := range tests {
		got := enumerateCombinations(tc.n, tc.target)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("enumerateCombinations(%d,%d) = %v, want %v", tc.n, tc.target, got, tc.want)
		}
	}
}

func TestEnumerateCombinationsMultiple(t *testing.T) {
	got := enumerateCombinations(2, 10)
	want := []combination{{1, 9}, {2, 8}, {3, 7}, {4, 6}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("enumerateCombinations(2,10) = %v, want %v", got, want)
	}
}

func TestCageSumBounds(t *testing.T) {
	tests := []struct {
		n, sum int
		valid  bool
	}{
		{2, 3, true},   // minimum for 2 cells
		{2, 17, true},  // maximum for 2 cells
		{2, 2, false},  // below minimum
		{2, 18, false}, // above maximum
		{9, 45, true},  // the only possible sum for a full row
	}
	for _, tc := range tests {
		cage := Cage{Cells: make([]Cell, tc.n), Sum: tc.sum}
		if got := cage.valid(); got != tc.valid {
			t.Errorf("Cage{n=%d,sum=%d}.valid() = %v, want %v", tc.n, tc.sum, got, tc.valid)
		}
	}
}

func TestAtMostOnePairwise(t *testing.T) {
	b := newClauseBuilder()
	b.atMostOne([]int{1, 2, 3})
	wantClauses := 3 // C(3,2)
	if len(b.clauses) != wantClauses {
		t.Fatalf("got %d clauses, want %d", len(b.clauses), wantClauses)
	}
	for _, c := range b.clauses {
		if len(c) != 2 {
			t.Errorf("got clause %v of length %d, want 2", c, len(c))
		}
	}
}

func TestExactlyOneEmitsBothParts(t *testing.T) {
	b := newClauseBuilder()
	b.exactlyOne([]int{10, 11, 12})
	// 1 at-least-one clause + C(3,2)=3 at-most-one clauses.
	if len(b.clauses) != 4 {
		t.Fatalf("got %d clauses, want 4", len(b.clauses))
	}
	if len(b.clauses[0]) != 3 {
		t.Errorf("first clause (at-least-one) has length %d, want 3", len(b.clauses[0]))
	}
}

func TestNewAuxSegregatedFromPrimaryVars(t *testing.T) {
	b := newClauseBuilder()
	aux := b.newAux()
	if aux <= NumPrimaryVars {
		t.Errorf("got first aux var id=%d, want > %d", aux, NumPrimaryVars)
	}
	if b.numAux() != 1 {
		t.Errorf("got numAux=%d, want 1", b.numAux())
	}
}

func TestVarIDBijection(t *testing.T) {
	seen := make(map[int]bool)
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			for v := 1; v <= 9; v++ {
				id := varID(r, c, v)
				if id < 1 || id > NumPrimaryVars {
					t.Fatalf("varID(%d,%d,%d)=%d out of [1,%d]", r, c, v, id, NumPrimaryVars)
				}
				if seen[id] {
					t.Fatalf("varID(%d,%d,%d)=%d collides with an earlier triple", r, c, v, id)
				}
				seen[id] = true
			}
		}
	}
	if len(seen) != NumPrimaryVars {
		t.Errorf("got %d distinct variable ids, want %d", len(seen), NumPrimaryVars)
	}
}
