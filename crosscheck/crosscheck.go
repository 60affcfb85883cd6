// Package crosscheck compares the rules package's perft divide counts with
// independent move generators.
package crosscheck

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"chess-rules/fen"
	"chess-rules/rules"
)

// logger reads the default at call time so commands can install theirs first.
func logger() *slog.Logger { return slog.Default().With("package", "crosscheck") }

// Mismatch is one root move whose count differs. A count of zero on
// either side means the move was not generated there.
type Mismatch struct {
	Move   string
	Oracle uint64
	Rules  uint64
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: oracle %d, rules %d", m.Move, m.Oracle, m.Rules)
}

// Report is the outcome of one comparison.
type Report struct {
	Oracle     string
	FEN        string
	Depth      int
	Nodes      uint64
	Mismatches []Mismatch
}

// OK reports whether both sides agree on every root move.
func (r Report) OK() bool { return len(r.Mismatches) == 0 }

func (r Report) String() string {
	if r.OK() {
		return fmt.Sprintf("%s depth %d: ok (%d nodes)", r.Oracle, r.Depth, r.Nodes)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s depth %d: %d mismatches", r.Oracle, r.Depth, len(r.Mismatches))
	for _, m := range r.Mismatches {
		sb.WriteString("\n  ")
		sb.WriteString(m.String())
	}
	return sb.String()
}

func rulesDivide(text string, depth int) (string, map[string]uint64, error) {
	setup, err := fen.Decode(text)
	if err != nil {
		return "", nil, err
	}
	b, err := rules.NewBoardFromSetup(setup)
	if err != nil {
		return "", nil, err
	}
	return fen.Encode(setup), b.PerftDivide(depth), nil
}

// Compare runs o and the rules package on the same position.
func Compare(o Oracle, text string, depth int) (Report, error) {
	canonical, ours, err := rulesDivide(text, depth)
	if err != nil {
		return Report{}, err
	}
	return compare(o, canonical, depth, ours)
}

// CompareAll runs every oracle concurrently against one rules divide.
// Reports come back in the order of oracles.
func CompareAll(text string, depth int, oracles ...Oracle) ([]Report, error) {
	if len(oracles) == 0 {
		oracles = Oracles()
	}
	canonical, ours, err := rulesDivide(text, depth)
	if err != nil {
		return nil, err
	}
	reports := make([]Report, len(oracles))
	errs := make([]error, len(oracles))
	var wg sync.WaitGroup
	for i, o := range oracles {
		wg.Add(1)
		go func(i int, o Oracle) {
			defer wg.Done()
			reports[i], errs[i] = compare(o, canonical, depth, ours)
		}(i, o)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return reports, err
		}
	}
	return reports, nil
}

func compare(o Oracle, canonical string, depth int, ours map[string]uint64) (Report, error) {
	theirs, err := o.Divide(canonical, depth)
	if err != nil {
		return Report{}, err
	}
	r := Report{Oracle: o.Name(), FEN: canonical, Depth: depth}
	for _, n := range ours {
		r.Nodes += n
	}
	if maps.Equal(ours, theirs) {
		logger().Debug("divide matches", "oracle", r.Oracle, "depth", depth, "nodes", r.Nodes)
		return r, nil
	}
	seen := make(map[string]bool, len(ours)+len(theirs))
	for _, side := range []map[string]uint64{ours, theirs} {
		for mv := range side {
			if seen[mv] {
				continue
			}
			seen[mv] = true
			if ours[mv] != theirs[mv] {
				r.Mismatches = append(r.Mismatches, Mismatch{Move: mv, Oracle: theirs[mv], Rules: ours[mv]})
			}
		}
	}
	slices.SortFunc(r.Mismatches, func(a, b Mismatch) int { return strings.Compare(a.Move, b.Move) })
	logger().Warn("divide mismatch", "oracle", r.Oracle, "fen", canonical, "depth", depth, "moves", len(r.Mismatches))
	return r, nil
}
