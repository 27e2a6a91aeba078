// Command sudosat solves and generates SAT-encoded Sudoku puzzles from a
// single executable, with the generate mode selected by --generate rather
// than a separate subcommand binary.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	sudoku "github.com/halprin/sudosat"
)

func main() {
	generateFlag := flag.Bool("generate", false, "generate a puzzle instead of solving one")
	stringFlag := flag.String("string", "", "solve an inline 81-character board instead of a file")
	uniqueFlag := flag.Bool("unique", false, "check whether the solution is unique")
	flag.BoolVar(uniqueFlag, "u", false, "shorthand for --unique")
	statsFlag := flag.Bool("stats", false, "print variable/clause counts and timing to stderr")
	jsonFlag := flag.Bool("json", false, "print the solve result as JSON (the web-bridge wire format) instead of a rendered grid")

	typeFlag := flag.String("type", "mixed", "puzzle type to generate: standard|killer|inequality|mixed")
	cagesMin := flag.Int("cages-min", 15, "minimum cage count")
	cagesMax := flag.Int("cages-max", 25, "maximum cage count")
	cageSizeMin := flag.Int("cage-size-min", 2, "minimum cage size")
	cageSizeMax := flag.Int("cage-size-max", 5, "maximum cage size")
	ineqMin := flag.Int("ineq-min", 20, "minimum inequality count")
	ineqMax := flag.Int("ineq-max", 40, "maximum inequality count")
	givensMin := flag.Int("givens-min", 0, "minimum given count")
	givensMax := flag.Int("givens-max", 0, "maximum given count")
	seedFlag := flag.Int64("seed", 0, "RNG seed; 0 means time-based")
	outputFlag := flag.String("output", "", "output file; default stdout")
	withSolutionFlag := flag.Bool("with-solution", false, "include a SOLUTION section in generated output")
	fillAllFlag := flag.Bool("fill-all", false, "cages must cover every cell")
	noUniqueFlag := flag.Bool("no-unique", false, "don't require a unique solution")
	difficultyFlag := flag.Int("difficulty", 50, "0-100, controls minimization aggressiveness")

	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintln(out, "usage: sudosat [flags] [file]")
		fmt.Fprintln(out, "       sudosat --string <81 chars> [flags]")
		fmt.Fprintln(out, "       sudosat --generate [flags]")
		fmt.Fprintln(out, "Flags:")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *generateFlag {
		cfg := sudoku.DefaultGeneratorConfig()
		cfg.Type = parseType(*typeFlag)
		cfg.MinCages, cfg.MaxCages = *cagesMin, *cagesMax
		cfg.MinCageSize, cfg.MaxCageSize = *cageSizeMin, *cageSizeMax
		cfg.MinInequalities, cfg.MaxInequalities = *ineqMin, *ineqMax
		cfg.MinGivens, cfg.MaxGivens = *givensMin, *givensMax
		cfg.Seed = *seedFlag
		cfg.FillAllCells = *fillAllFlag
		cfg.Difficulty = *difficultyFlag
		cfg.EnsureUniqueSolution = !*noUniqueFlag

		if err := runGenerate(cfg, *outputFlag, *withSolutionFlag); err != nil {
			log.Fatal(err)
		}
		return
	}

	if err := runSolve(*stringFlag, flag.Args(), *uniqueFlag, *statsFlag, *jsonFlag); err != nil {
		log.Fatal(err)
	}
}

func parseType(s string) sudoku.Type {
	switch strings.ToLower(s) {
	case "standard":
		return sudoku.Standard
	case "killer":
		return sudoku.Killer
	case "inequality":
		return sudoku.InequalityType
	case "mixed":
		return sudoku.Mixed
	default:
		log.Fatalf("unknown --type %q: want standard|killer|inequality|mixed", s)
		return sudoku.Mixed
	}
}

// runGenerate builds a puzzle per cfg and writes it to output (or stdout).
func runGenerate(cfg sudoku.GeneratorConfig, output string, withSolution bool) error {
	result, err := sudoku.Generate(cfg)
	if err != nil {
		return err
	}

	w := os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	var solGrid *sudoku.Grid
	if withSolution {
		g := result.Solution.Grid
		solGrid = &g
	}
	if err := sudoku.WriteText(w, result.Puzzle, solGrid); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "generated %s puzzle: %d cages, %d inequalities, %d givens\n",
		result.Puzzle.DeriveType(), len(result.Puzzle.Cages), len(result.Puzzle.Inequalities), countGivens(result.Puzzle.Givens))
	fmt.Fprintf(os.Stderr, "minimization: %d/%d removals accepted\n", result.RemovalsAccepted, result.RemovalsAttempted)
	return nil
}

func countGivens(g sudoku.Grid) int {
	n := 0
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			if g[r][c] != sudoku.Empty {
				n++
			}
		}
	}
	return n
}

// runSolve solves either an inline --string board, a file argument, or (if
// neither is given) one puzzle per line from stdin.
func runSolve(inlineString string, args []string, checkUnique, stats, asJSON bool) error {
	switch {
	case inlineString != "":
		return solveOne(inlineString, checkUnique, stats, asJSON)
	case len(args) > 0:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		puzzle, err := sudoku.ParseString(string(data))
		if err != nil {
			return err
		}
		return solvePuzzle(puzzle, checkUnique, stats, asJSON)
	default:
		return solveBatch(checkUnique, stats)
	}
}

func solveOne(board string, checkUnique, stats, asJSON bool) error {
	puzzle, err := sudoku.ParseString(board)
	if err != nil {
		return err
	}
	return solvePuzzle(puzzle, checkUnique, stats, asJSON)
}

func solvePuzzle(puzzle *sudoku.Puzzle, checkUnique, stats, asJSON bool) error {
	sol, err := sudoku.Solve(puzzle, checkUnique)
	if err != nil {
		return err
	}
	if stats {
		fmt.Fprintf(os.Stderr, "variables=%d clauses=%d solveTimeMs=%.2f uniqueness=%s\n",
			sol.NumVariables, sol.NumClauses, sol.SolveTimeMs, sol.Uniqueness)
	}
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		if err := enc.Encode(sudoku.NewResult(sol)); err != nil {
			return err
		}
		if !sol.Solved {
			os.Exit(1)
		}
		return nil
	}
	if !sol.Solved {
		fmt.Fprintln(os.Stderr, sol.Diagnostic)
		os.Exit(1)
	}
	fmt.Print(sol.Grid.String())
	return nil
}

// solveBatch reads one encoded puzzle per line from stdin, skipping blank
// lines and '#'-prefixed comments, and prints a solved/total tally.
func solveBatch(checkUnique, stats bool) error {
	scanner := bufio.NewScanner(os.Stdin)
	numBoards, numSolved := 0, 0

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		numBoards++

		puzzle, err := sudoku.ParseString(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "line %d: %v\n", numBoards, err)
			continue
		}
		sol, err := sudoku.Solve(puzzle, checkUnique)
		if err != nil {
			fmt.Fprintf(os.Stderr, "line %d: %v\n", numBoards, err)
			continue
		}
		if sol.Solved {
			numSolved++
		}
		if stats {
			fmt.Fprintf(os.Stderr, "line %d: solved=%v uniqueness=%s solveTimeMs=%.2f\n",
				numBoards, sol.Solved, sol.Uniqueness, sol.SolveTimeMs)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Solved %d/%d boards\n", numSolved, numBoards)
	if numBoards == 0 || numSolved != numBoards {
		os.Exit(1)
	}
	return nil
}
