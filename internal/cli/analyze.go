package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubestate"
	"github.com/SeamusWaldron/cubestate/internal/analysis"
	"github.com/SeamusWaldron/cubestate/internal/storage"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [moves]",
	Short: "Measure a move sequence and find repeated patterns",
	Long: `Report the length of a move sequence in both metrics, the turns that
cancel or merge, and the sequences that repeat.

With --id every recorded solve of the cube is analyzed; with --all every
recorded solve is. Repeated sequences are then counted across solves.

Usage:
  cubestate analyze "R U R' U' R U R' U'"
  cubestate analyze --id <cube-id>
  cubestate analyze --all --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

var (
	analyzeCubeID string
	analyzeAll    bool
	analyzeJSON   bool
	analyzeMinN   int
	analyzeMaxN   int
	analyzeTop    int
)

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&analyzeCubeID, "id", "", "Analyze the solves of a saved cube")
	analyzeCmd.Flags().BoolVar(&analyzeAll, "all", false, "Analyze every recorded solve")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the report as JSON")
	analyzeCmd.Flags().IntVar(&analyzeMinN, "min", 3, "Shortest repeated sequence to report")
	analyzeCmd.Flags().IntVar(&analyzeMaxN, "max", 6, "Longest repeated sequence to report")
	analyzeCmd.Flags().IntVar(&analyzeTop, "top", 5, "Repeated sequences to report per length")
}

// analyzeReport is the JSON shape of the analyze command.
type analyzeReport struct {
	Sources  int                         `json:"sources"`
	Sequence *analysis.Report            `json:"sequence,omitempty"`
	Solves   map[string]*analysis.Report `json:"solves,omitempty"`
	NGrams   map[int][]analysis.NGram    `json:"ngrams"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if analyzeMinN < 1 || analyzeMaxN < analyzeMinN {
		return fmt.Errorf("invalid n-gram range %d..%d", analyzeMinN, analyzeMaxN)
	}

	sources, err := analyzeSources(args)
	if err != nil {
		return err
	}
	logger.Debug("analyzing", "sources", len(sources))

	report := analyzeReport{Sources: len(sources)}
	if len(args) == 1 {
		report.Sequence = analysis.Analyze(sources[""])
	} else {
		report.Solves = make(map[string]*analysis.Report, len(sources))
		for id, moves := range sources {
			report.Solves[id] = analysis.Analyze(moves)
		}
	}
	report.NGrams = analysis.MineNGramsAcross(sources, analyzeMinN, analyzeMaxN, analyzeTop).TopNGrams

	out := cmd.OutOrStdout()
	if analyzeJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	if report.Sequence != nil {
		printSequenceReport(cmd, report.Sequence)
	} else {
		ids := make([]string, 0, len(report.Solves))
		for id := range report.Solves {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		total, wasted := 0, 0
		for _, id := range ids {
			r := report.Solves[id]
			total += r.TotalMoves
			wasted += r.TotalWastedMoves
			fmt.Fprintf(out, "%s  %3d HTM  %3d QTM  %3d wasted\n", truncate(id, 8), r.TotalMoves, r.QuarterTurns, r.TotalWastedMoves)
		}
		fmt.Fprintf(out, "\n%s %d solves, %d moves, %d wasted\n", titleStyle.Render("Total:"), len(ids), total, wasted)
	}

	printNGrams(cmd, report.NGrams)
	return nil
}

// analyzeSources returns the sequences to analyze keyed by solve ID, or
// under "" for a sequence given on the command line.
func analyzeSources(args []string) (map[string][]cubestate.Move, error) {
	if len(args) == 1 {
		if analyzeCubeID != "" || analyzeAll {
			return nil, errors.New("give either a move sequence or --id/--all")
		}
		moves, err := cubestate.ParseMoves(args[0])
		if err != nil {
			return nil, err
		}
		return map[string][]cubestate.Move{"": moves}, nil
	}
	if analyzeCubeID == "" && !analyzeAll {
		return nil, errors.New("nothing to analyze: give a move sequence, --id or --all")
	}

	db, err := openDB()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	repo := storage.NewSolveRepository(db)
	var solves []storage.Solve
	if analyzeCubeID != "" {
		if _, err := loadCube(db, analyzeCubeID); err != nil {
			return nil, err
		}
		solves, err = repo.ListByCube(analyzeCubeID)
	} else {
		solves, err = repo.List(-1)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list solves: %w", err)
	}
	if len(solves) == 0 {
		return nil, errors.New("no recorded solves")
	}

	sources := make(map[string][]cubestate.Move, len(solves))
	for _, s := range solves {
		sources[s.SolveID] = s.Moves
	}
	return sources, nil
}

func printSequenceReport(cmd *cobra.Command, r *analysis.Report) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Length: %d HTM, %d QTM\n", r.TotalMoves, r.QuarterTurns)
	fmt.Fprintf(out, "Simplified: %d moves (%.0f%%)\n", r.OptimizedMoves, r.Efficiency*100)

	faces := make([]string, 0, len(r.FaceCounts))
	for _, f := range cubestate.Faces {
		if n := r.FaceCounts[f.String()]; n > 0 {
			faces = append(faces, fmt.Sprintf("%s:%d", f, n))
		}
	}
	if len(faces) > 0 {
		fmt.Fprintf(out, "Faces: %s\n", strings.Join(faces, " "))
	}

	for _, c := range r.ImmediateCancellations {
		fmt.Fprintf(out, "  cancel  %d-%d  %s %s\n", c.Index1+1, c.Index2+1, c.Move1, c.Move2)
	}
	for _, m := range r.MergeOpportunities {
		fmt.Fprintf(out, "  merge   %d-%d  %s %s -> %s\n", m.Index1+1, m.Index2+1, m.Move1, m.Move2, m.MergedMove)
	}
	for _, p := range r.BackAndForthPatterns {
		fmt.Fprintf(out, "  repeat  %d-%d  (%s) x%d\n", p.StartIndex+1, p.EndIndex+1, strings.Join(p.Pattern, " "), p.Count)
	}
	if r.TotalWastedMoves > 0 {
		fmt.Fprintf(out, "Wasted moves: %d\n", r.TotalWastedMoves)
	}
}

func printNGrams(cmd *cobra.Command, ngrams map[int][]analysis.NGram) {
	out := cmd.OutOrStdout()
	if len(ngrams) == 0 {
		fmt.Fprintln(out, "No repeated sequences.")
		return
	}

	ns := make([]int, 0, len(ngrams))
	for n := range ngrams {
		ns = append(ns, n)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ns)))

	fmt.Fprintln(out, titleStyle.Render("Repeated sequences"))
	for _, n := range ns {
		for _, ng := range ngrams[n] {
			fmt.Fprintf(out, "  %2d moves  x%-3d %s\n", n, ng.Count, strings.Join(ng.Sequence, " "))
		}
	}
}
