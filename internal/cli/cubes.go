package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubestate"
	"github.com/SeamusWaldron/cubestate/internal/storage"
)

var cubesCmd = &cobra.Command{
	Use:   "cubes",
	Short: "Manage saved cubes",
	Long: `List, inspect and remove cube states saved in the database.

Usage:
  cubestate cubes list
  cubestate cubes save <state> --name scrambled
  cubestate cubes show <cube-id>
  cubestate cubes rename <cube-id> <name>
  cubestate cubes delete <cube-id>`,
}

var cubesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved cubes, newest first",
	Args:  cobra.NoArgs,
	RunE:  runCubesList,
}

var cubesSaveCmd = &cobra.Command{
	Use:   "save <state>",
	Short: "Save a cube state",
	Args:  cobra.ExactArgs(1),
	RunE:  runCubesSave,
}

var cubesShowCmd = &cobra.Command{
	Use:   "show <cube-id>",
	Short: "Show a saved cube and its solves",
	Args:  cobra.ExactArgs(1),
	RunE:  runCubesShow,
}

var cubesRenameCmd = &cobra.Command{
	Use:   "rename <cube-id> <name>",
	Short: "Rename a saved cube",
	Args:  cobra.ExactArgs(2),
	RunE:  runCubesRename,
}

var cubesDeleteCmd = &cobra.Command{
	Use:   "delete <cube-id>",
	Short: "Delete a saved cube",
	Long: `Delete a saved cube. Its solves are kept, detached from the cube.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCubesDelete,
}

var (
	cubesLimit int
	cubesName  string
)

func init() {
	rootCmd.AddCommand(cubesCmd)
	cubesCmd.AddCommand(cubesListCmd, cubesSaveCmd, cubesShowCmd, cubesRenameCmd, cubesDeleteCmd)
	cubesListCmd.Flags().IntVarP(&cubesLimit, "limit", "n", 20, "Maximum number of cubes to list (0 = all)")
	cubesSaveCmd.Flags().StringVar(&cubesName, "name", "", "Name for the cube")
}

func runCubesList(cmd *cobra.Command, _ []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	limit := cubesLimit
	if limit <= 0 {
		limit = -1 // sqlite: no limit
	}
	cubes, err := storage.NewCubeRepository(db).List(limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(cubes) == 0 {
		fmt.Fprintln(out, "No saved cubes. Enter one with: cubestate edit")
		return nil
	}

	fmt.Fprintf(out, "%-36s  %-16s  %-8s  %s\n", "ID", "NAME", "STATUS", "UPDATED")
	for _, c := range cubes {
		fmt.Fprintf(out, "%-36s  %-16s  %-8s  %s\n",
			c.CubeID, truncate(c.Name, 16), cubeStatus(c.State), c.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}

	stats, err := storage.NewSolveRepository(db).Stats()
	if err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Solves recorded: %d", stats.SolveCount)
	if stats.LastSolvedAt != nil {
		fmt.Fprintf(out, " (last %s, %.1f moves on average)", stats.LastSolvedAt.Local().Format(time.RFC3339), stats.AverageMoves)
	}
	fmt.Fprintln(out)

	return nil
}

func runCubesSave(cmd *cobra.Command, args []string) error {
	s, err := parseState(args[0])
	if err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := storage.NewCubeRepository(db).Save(cubesName, s)
	if err != nil {
		return err
	}
	logger.Info("cube saved", "id", id, "complete", s.IsComplete())
	fmt.Fprintln(cmd.OutOrStdout(), id)
	return nil
}

func runCubesShow(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	cube, err := loadCube(db, args[0])
	if err != nil {
		return err
	}

	title := cube.Name
	if title == "" {
		title = cube.CubeID
	}
	printState(cmd, title, cube.State)

	solves, err := storage.NewSolveRepository(db).ListByCube(cube.CubeID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	if len(solves) == 0 {
		fmt.Fprintf(out, "No solves. Run: cubestate solve --id %s --save\n", cube.CubeID)
		return nil
	}
	phases := storage.NewPhaseRepository(db)
	fmt.Fprintln(out, "Solves:")
	for _, s := range solves {
		fmt.Fprintf(out, "  %s  %-6s  %2d moves  %s\n",
			s.SolvedAt.Local().Format("2006-01-02 15:04"), s.Solver, len(s.Moves), cubestate.FormatMoves(s.Moves))

		milestones, err := phases.GetBySolve(s.SolveID)
		if err != nil {
			return err
		}
		for _, ms := range milestones {
			fmt.Fprintf(out, "      move %2d: %s\n", ms.Move, ms.Phase.DisplayName())
		}
	}
	return nil
}

func runCubesRename(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := storage.NewCubeRepository(db).Rename(args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Renamed %s to %q\n", args[0], args[1])
	return nil
}

func runCubesDelete(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := storage.NewCubeRepository(db).Delete(args[0]); err != nil {
		return err
	}
	logger.Info("cube deleted", "id", args[0])
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
	return nil
}

func cubeStatus(s *cubestate.State) string {
	switch {
	case !s.IsComplete():
		return fmt.Sprintf("%d/54", cubestate.StickerCount-s.EmptyCount())
	case !s.IsValid():
		return "invalid"
	case s.IsSolved():
		return "solved"
	default:
		return "valid"
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
