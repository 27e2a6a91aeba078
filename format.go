package sudoku

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

// section names, compared case-insensitively.
const (
	sectionGrid         = "GRID"
	sectionCages        = "CAGES"
	sectionInequalities = "INEQUALITIES"
	sectionSolution     = "SOLUTION"
)

// ParseText reads a puzzle from the custom text format: line-oriented,
// case-insensitive section headers (GRID, CAGES, INEQUALITIES, and an
// optional SOLUTION section that is ignored).
// An 81-character single-line grid is also accepted and auto-detected when
// no section header is present anywhere in the input.
func ParseText(r io.Reader) (*Puzzle, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := string(data)
	if !hasSectionHeader(text) {
		return parseSingleLineGrid(text)
	}
	return parseSections(text)
}

// ParseString parses s as either the custom text format or the 81-character
// single-line form, per ParseText.
func ParseString(s string) (*Puzzle, error) {
	return ParseText(strings.NewReader(s))
}

func hasSectionHeader(text string) bool {
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := strings.ToUpper(strings.TrimSpace(scanner.Text()))
		switch line {
		case sectionGrid, sectionCages, sectionInequalities, sectionSolution:
			return true
		}
	}
	return false
}

// parseSingleLineGrid reads digits 1-9 and '.'/'0' for blanks from text,
// skipping any other character, and requires exactly 81 values.
func parseSingleLineGrid(text string) (*Puzzle, error) {
	var g Grid
	n := 0
	for _, r := range text {
		var v int
		switch {
		case r >= '1' && r <= '9':
			v = int(r - '0')
		case r == '0' || r == '.':
			v = Empty
		default:
			continue
		}
		if n >= 81 {
			return nil, fmt.Errorf("sudoku: single-line grid has more than 81 values")
		}
		g[n/9][n%9] = v
		n++
	}
	if n != 81 {
		return nil, fmt.Errorf("sudoku: single-line grid has %d values, want 81", n)
	}
	return &Puzzle{Givens: g}, nil
}

func parseSections(text string) (*Puzzle, error) {
	puzzle := &Puzzle{}
	section := ""
	gridRow := 0

	scanner := bufio.NewScanner(strings.NewReader(text))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		switch strings.ToUpper(line) {
		case sectionGrid:
			section = sectionGrid
			gridRow = 0
			continue
		case sectionCages:
			section = sectionCages
			continue
		case sectionInequalities:
			section = sectionInequalities
			continue
		case sectionSolution:
			section = sectionSolution
			continue
		}

		switch section {
		case sectionGrid:
			if gridRow >= 9 {
				return nil, fmt.Errorf("sudoku: line %d: GRID section has more than 9 rows", lineNo)
			}
			row, err := parseGridLine(line)
			if err != nil {
				return nil, fmt.Errorf("sudoku: line %d: %w", lineNo, err)
			}
			puzzle.Givens[gridRow] = row
			gridRow++
		case sectionCages:
			cage, err := parseCageLine(line)
			if err != nil {
				return nil, fmt.Errorf("sudoku: line %d: %w", lineNo, err)
			}
			puzzle.Cages = append(puzzle.Cages, cage)
		case sectionInequalities:
			ineq, err := parseInequalityLine(line)
			if err != nil {
				return nil, fmt.Errorf("sudoku: line %d: %w", lineNo, err)
			}
			puzzle.Inequalities = append(puzzle.Inequalities, ineq)
		case sectionSolution:
			// Ignored on read; only meaningful when writing.
		default:
			return nil, fmt.Errorf("sudoku: line %d: token outside any section", lineNo)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return puzzle, nil
}

// parseGridLine parses one GRID row, either as 9 whitespace-separated
// tokens or, failing that, as a bare 9-character run of value characters.
func parseGridLine(line string) ([9]int, error) {
	var row [9]int
	tokens := strings.Fields(line)
	if len(tokens) == 9 {
		for i, tok := range tokens {
			v, err := parseValueToken(tok)
			if err != nil {
				return row, err
			}
			row[i] = v
		}
		return row, nil
	}
	if len(line) == 9 {
		for i, r := range line {
			v, err := parseValueToken(string(r))
			if err != nil {
				return row, err
			}
			row[i] = v
		}
		return row, nil
	}
	return row, fmt.Errorf("grid row %q: want 9 values", line)
}

func parseValueToken(tok string) (int, error) {
	switch tok {
	case "0", ".", "_", "*":
		return Empty, nil
	}
	if len(tok) == 1 && tok[0] >= '1' && tok[0] <= '9' {
		return int(tok[0] - '0'), nil
	}
	return 0, fmt.Errorf("invalid grid value %q", tok)
}

// parseCageLine parses "sum r c [r c]...".
func parseCageLine(line string) (Cage, error) {
	tokens := strings.Fields(line)
	if len(tokens) < 3 || (len(tokens)-1)%2 != 0 {
		return Cage{}, fmt.Errorf("cage line %q: want \"sum r c [r c]...\"", line)
	}
	sum, err := strconv.Atoi(tokens[0])
	if err != nil {
		return Cage{}, fmt.Errorf("cage sum %q: %w", tokens[0], err)
	}
	var cells []Cell
	for i := 1; i < len(tokens); i += 2 {
		r, err := strconv.Atoi(tokens[i])
		if err != nil {
			return Cage{}, fmt.Errorf("cage row %q: %w", tokens[i], err)
		}
		c, err := strconv.Atoi(tokens[i+1])
		if err != nil {
			return Cage{}, fmt.Errorf("cage col %q: %w", tokens[i+1], err)
		}
		cells = append(cells, Cell{Row: r, Col: c})
	}
	return Cage{Cells: cells, Sum: sum}, nil
}

// parseInequalityLine parses "r1 c1 OP r2 c2".
func parseInequalityLine(line string) (Inequality, error) {
	tokens := strings.Fields(line)
	if len(tokens) != 5 {
		return Inequality{}, fmt.Errorf("inequality line %q: want \"r1 c1 OP r2 c2\"", line)
	}
	r1, err := strconv.Atoi(tokens[0])
	if err != nil {
		return Inequality{}, err
	}
	c1, err := strconv.Atoi(tokens[1])
	if err != nil {
		return Inequality{}, err
	}
	r2, err := strconv.Atoi(tokens[3])
	if err != nil {
		return Inequality{}, err
	}
	c2, err := strconv.Atoi(tokens[4])
	if err != nil {
		return Inequality{}, err
	}
	var kind InequalityKind
	switch strings.ToLower(tokens[2]) {
	case ">", "gt":
		kind = GT
	case "<", "lt":
		kind = LT
	default:
		return Inequality{}, fmt.Errorf("inequality operator %q: want '>'/'<'/'gt'/'lt'", tokens[2])
	}
	return Inequality{A: Cell{r1, c1}, B: Cell{r2, c2}, Kind: kind}, nil
}

// WriteText writes p (and, if solution is non-nil, a SOLUTION section) in
// the custom text format.
func WriteText(w io.Writer, p *Puzzle, solution *Grid) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, sectionGrid)
	writeGrid(bw, p.Givens)

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, sectionCages)
	for _, cage := range p.Cages {
		cells := slices.Clone(cage.Cells)
		slices.SortFunc(cells, func(a, b Cell) int { return cellIndex(a) - cellIndex(b) })
		fmt.Fprintf(bw, "%d", cage.Sum)
		for _, cell := range cells {
			fmt.Fprintf(bw, " %d %d", cell.Row, cell.Col)
		}
		fmt.Fprintln(bw)
	}

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, sectionInequalities)
	for _, ineq := range p.Inequalities {
		fmt.Fprintf(bw, "%d %d %s %d %d\n", ineq.A.Row, ineq.A.Col, ineq.Kind, ineq.B.Row, ineq.B.Col)
	}

	if solution != nil {
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, sectionSolution)
		writeGrid(bw, *solution)
	}

	return bw.Flush()
}

func writeGrid(w io.Writer, g Grid) {
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			if c > 0 {
				fmt.Fprint(w, " ")
			}
			fmt.Fprintf(w, "%d", g[r][c])
		}
		fmt.Fprintln(w)
	}
}
