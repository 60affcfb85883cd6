package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime/pprof"
	"time"

	"golang.org/x/exp/slices"

	"chess-rules/crosscheck"
	"chess-rules/fen"
	"chess-rules/rules"
)

func main() {
	fenText := flag.String("fen", fen.StartPos, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	verify := flag.Bool("verify", false, "Compare the root divide against reference move generators")
	oracle := flag.String("oracle", "", "Reference generator for -verify: dragontooth, goose or corentings (default all)")
	undo := flag.Bool("undo", false, "Test king safety by undoing moves in place instead of cloning")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	verbose := flag.Bool("v", false, "Debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	mode := rules.SafetyClone
	if *undo {
		mode = rules.SafetyUndo
	}
	board, err := fen.NewBoard(*fenText, rules.WithSafetyMode(mode))
	if err != nil {
		fmt.Fprintf(os.Stderr, "FEN error: %v\n", err)
		os.Exit(2)
	}

	if *verify {
		os.Exit(runVerify(*fenText, *depth, *oracle))
	}

	if *divide {
		div := board.PerftDivide(*depth)
		moves := make([]string, 0, len(div))
		var sum uint64
		for m, n := range div {
			moves = append(moves, m)
			sum += n
		}
		slices.Sort(moves)
		for _, m := range moves {
			fmt.Printf("%s: %d\n", m, div[m])
		}
		fmt.Printf("Total: %d\n", sum)
		return
	}

	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating cpuprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "start cpu profile: %v\n", err)
			os.Exit(2)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		totalNodes += board.Perft(*depth)
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	// Single line: Depth Nodes Time NPS
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)
}

func runVerify(text string, depth int, name string) int {
	var oracles []crosscheck.Oracle
	if name != "" {
		o, err := crosscheck.ByName(name)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		oracles = append(oracles, o)
	}
	reports, err := crosscheck.CompareAll(text, depth, oracles...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "verify: %v\n", err)
		return 2
	}
	status := 0
	for _, r := range reports {
		fmt.Println(r)
		if !r.OK() {
			status = 1
		}
	}
	return status
}
