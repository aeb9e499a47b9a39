package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/pprof"
	"sort"
	"time"

	eng "github.com/Oliverans/GooseEngineMG/goosemg"
	"github.com/dylhunn/dragontoothmg"

	"chess-rules/rules"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run returns the exit code so deferred cleanup, such as stopping the CPU profile,
// happens before main exits.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("perft", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fen := fs.String("fen", rules.FENStartPos, "FEN string (defaults to initial position)")
	depth := fs.Int("depth", 0, "Perft depth (required)")
	divide := fs.Bool("divide", false, "Print per-move node counts at root")
	repeat := fs.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	strict := fs.Bool("strict-castling", false, "Forbid castling out of or through check")
	strictKing := fs.Bool("strict-king", false, "Reject king moves attacked once the king stands there")
	ref := fs.String("ref", "none", "Reference generator to compare against: none, goose or dragontooth")
	label := fs.String("label", "", "Optional label prefix for one-line output")
	cpuProf := fs.String("cpuprofile", "", "Write CPU profile to file during run")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *depth <= 0 {
		fmt.Fprintln(stderr, "-depth must be > 0")
		return 2
	}

	var opts []rules.Option
	if *strict {
		opts = append(opts, rules.WithStrictCastling())
	}
	if *strictKing {
		opts = append(opts, rules.WithStrictKingSafety())
	}
	game, err := rules.ParseFEN(*fen, opts...)
	if err != nil {
		fmt.Fprintf(stderr, "ParseFEN error: %v\n", err)
		return 2
	}

	var reference referee
	switch *ref {
	case "none":
	case "goose":
		reference, err = newGooseReferee(*fen)
	case "dragontooth":
		reference = newDragontoothReferee(*fen)
	default:
		err = fmt.Errorf("unknown -ref %q", *ref)
	}
	if err != nil {
		fmt.Fprintf(stderr, "reference: %v\n", err)
		return 2
	}

	if *divide {
		if !printDivide(stdout, rules.PerftDivide(game, *depth), reference, *depth) {
			return 1
		}
		return 0
	}

	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			fmt.Fprintf(stderr, "creating cpuprofile: %v\n", err)
			return 2
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			fmt.Fprintf(stderr, "start cpu profile: %v\n", err)
			return 2
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		totalNodes += rules.Perft(game, *depth)
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	// Single line: Depth Nodes Time NPS
	fmt.Fprintf(stdout, "%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)

	if reference != nil {
		want := reference.perft(*depth) * uint64(*repeat)
		fmt.Fprintf(stdout, "%s reference: %d\n", *ref, want)
		if want != totalNodes {
			fmt.Fprintf(stderr, "mismatch: got %d want %d\n", totalNodes, want)
			return 1
		}
	}
	return 0
}

// printDivide prints the root split in move order and flags every move whose count
// differs from the reference. It reports whether everything matched.
func printDivide(w io.Writer, div map[string]uint64, reference referee, depth int) bool {
	var want map[string]uint64
	if reference != nil {
		want = reference.divide(depth)
	}

	keys := make([]string, 0, len(div))
	for k := range div {
		keys = append(keys, k)
	}
	for k := range want {
		if _, ok := div[k]; !ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	ok := true
	var sum uint64
	for _, k := range keys {
		n := div[k]
		sum += n
		if want == nil {
			fmt.Fprintf(w, "%s: %d\n", k, n)
			continue
		}
		if ref, found := want[k]; !found || ref != n {
			ok = false
			fmt.Fprintf(w, "%s: %d (reference %d) MISMATCH\n", k, n, ref)
			continue
		}
		fmt.Fprintf(w, "%s: %d\n", k, n)
	}
	fmt.Fprintf(w, "Total: %d\n", sum)
	return ok
}

// referee is an independent move generator used to cross-check perft counts.
type referee interface {
	perft(depth int) uint64
	divide(depth int) map[string]uint64
}

// gooseReferee counts with GooseEngineMG. Its subtree counts include
// under-promotions, so positions with promotions below the root will not match.
type gooseReferee struct {
	board *eng.Board
}

func newGooseReferee(fen string) (*gooseReferee, error) {
	b, err := eng.ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	return &gooseReferee{board: b}, nil
}

func (r *gooseReferee) perft(depth int) uint64 { return eng.Perft(r.board, depth) }

func (r *gooseReferee) divide(depth int) map[string]uint64 {
	out := make(map[string]uint64)
	for m, n := range eng.PerftDivide(r.board, depth) {
		if key, ok := rootKey(m.String()); ok {
			out[key] = n
		}
	}
	return out
}

// rootKey drops the promotion suffix of a queen promotion and rejects
// under-promotions, which this engine never plays on its own.
func rootKey(uci string) (string, bool) {
	if len(uci) == 5 && uci[4] != 'q' {
		return "", false
	}
	return uci[:4], true
}

// dragontoothReferee walks dragontoothmg's legal moves, playing promotions as
// queens only so its counts line up with ours.
type dragontoothReferee struct {
	board dragontoothmg.Board
}

func newDragontoothReferee(fen string) *dragontoothReferee {
	return &dragontoothReferee{board: dragontoothmg.ParseFen(fen)}
}

func (r *dragontoothReferee) perft(depth int) uint64 { return dragontoothPerft(&r.board, depth) }

func (r *dragontoothReferee) divide(depth int) map[string]uint64 {
	out := make(map[string]uint64)
	for _, m := range queenMoves(&r.board) {
		unapply := r.board.Apply(m)
		out[squareName(m.From())+squareName(m.To())] = dragontoothPerft(&r.board, depth-1)
		unapply()
	}
	return out
}

func dragontoothPerft(b *dragontoothmg.Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := queenMoves(b)
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		unapply := b.Apply(m)
		nodes += dragontoothPerft(b, depth-1)
		unapply()
	}
	return nodes
}

func queenMoves(b *dragontoothmg.Board) []dragontoothmg.Move {
	all := b.GenerateLegalMoves()
	out := all[:0]
	for _, m := range all {
		if promo := m.Promote(); promo != 0 && promo != dragontoothmg.Queen {
			continue
		}
		out = append(out, m)
	}
	return out
}

// squareName converts a 0-based square index (a1 = 0, h8 = 63) to its name.
func squareName(sq uint8) string {
	return string([]byte{'a' + sq%8, '1' + sq/8})
}
