package cli

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubestate/internal/storage"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database and settings information",
	Long:  `Display the database location and schema version, saved cube and solve counts, and stored playback settings.`,
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "cubestate Status")
	fmt.Fprintln(out, "================")
	fmt.Fprintln(out)

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	version, err := db.CurrentVersion()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Database: %s (schema v%d)\n", db.Path(), version)

	count, err := storage.NewCubeRepository(db).Count()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Saved cubes: %d\n", count)

	stats, err := storage.NewSolveRepository(db).Stats()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Total solves: %d\n", stats.SolveCount)
	if stats.LastSolvedAt != nil {
		fmt.Fprintf(out, "Last solve: %s\n", stats.LastSolvedAt.Local().Format(time.RFC3339))
	}

	averages, err := storage.NewPhaseRepository(db).Averages()
	if err != nil {
		return err
	}
	for _, a := range averages {
		fmt.Fprintf(out, "  %-26s %3d solves, avg move %.1f\n", a.Phase.DisplayName(), a.SolveCount, a.AverageMove)
	}

	fmt.Fprintln(out)

	settings, err := storage.NewSettingsRepository(db).All()
	if err != nil {
		return err
	}
	if len(settings) == 0 {
		fmt.Fprintln(out, "No stored settings")
	} else {
		keys := make([]string, 0, len(settings))
		for k := range settings {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Fprintln(out, "Settings:")
		for _, k := range keys {
			fmt.Fprintf(out, "  %s = %s\n", k, settings[k])
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Playback: %s (auto-play %t)\n", cfg.Playback.Speed, cfg.Playback.AutoPlay)
	fmt.Fprintf(out, "Solver: depth %d, timeout %s\n", cfg.Solver.MaxDepth, cfg.Solver.Timeout())
	fmt.Fprintf(out, "Serve: %s\n", cfg.Serve.Addr)

	return nil
}
