package sudoku

// NumCells is the number of squares on a 9x9 board.
const NumCells = 81

// NumPrimaryVars is the fixed number of (row, col, value) Boolean variables
// every encoding allocates: 9*9*9.
const NumPrimaryVars = 9 * 9 * 9

// varID returns the 1-based gophersat variable id for "(r,c) == v", v in
// [1,9]. Primary variables occupy ids 1..NumPrimaryVars; auxiliary
// variables allocated by the cage encoder start at NumPrimaryVars+1, so a
// model decoder that only ever looks at ids <= NumPrimaryVars never touches
// them.
func varID(r, c, v int) int {
	return r*81 + c*9 + (v - 1) + 1
}

// cellIndex linearizes a cell to [0,80], row-major. Used by WriteText to
// sort a cage's cells into row-major order before writing them.
func cellIndex(cell Cell) int {
	return cell.Row*9 + cell.Col
}
