package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubestate"
	"github.com/SeamusWaldron/cubestate/internal/storage"
)

var showCmd = &cobra.Command{
	Use:   "show [state]",
	Short: "Show a cube state as a colored net",
	Long: `Show a cube state as an unfolded net with its solver string and entry progress.

Without an argument the most recently saved cube is shown.

Usage:
  cubestate show solved
  cubestate show UUUUUUUUURRRRRRRRRFFFFFFFFFDDDDDDDDDLLLLLLLLLBBBBBBBBB
  cubestate show --id <cube-id>`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

var applyCmd = &cobra.Command{
	Use:   "apply <moves>",
	Short: "Apply a move sequence to a state",
	Long: `Apply a whitespace-separated sequence of face turns (U D F B L R with
optional ' or 2) and print the resulting state.

The whole sequence is rejected if any token is invalid.

Usage:
  cubestate apply "R U R' U'"
  cubestate apply "F2 B2" --from <state>`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

var validateCmd = &cobra.Command{
	Use:   "validate <state>",
	Short: "Check that a state is fully entered and color balanced",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "cubestate %s\n", version)
	},
}

var (
	showID    string
	applyFrom string
)

func init() {
	rootCmd.AddCommand(showCmd, applyCmd, validateCmd, versionCmd)
	showCmd.Flags().StringVar(&showID, "id", "", "Show a saved cube")
	applyCmd.Flags().StringVar(&applyFrom, "from", "solved", "Starting state")
}

func runShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	var (
		s     *cubestate.State
		title = "Cube"
	)
	switch {
	case len(args) == 1:
		parsed, err := parseState(args[0])
		if err != nil {
			return err
		}
		s = parsed
	default:
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		if showID != "" {
			cube, err := loadCube(db, showID)
			if err != nil {
				return err
			}
			s, title = cube.State, cube.Name
		} else {
			cube, err := storage.NewCubeRepository(db).GetLast()
			if err != nil {
				return err
			}
			if cube == nil {
				fmt.Fprintln(out, "No saved cubes. Enter one with: cubestate edit")
				return nil
			}
			s, title = cube.State, cube.Name
		}
	}

	printState(cmd, title, s)
	return nil
}

func runApply(cmd *cobra.Command, args []string) error {
	s, err := parseState(applyFrom)
	if err != nil {
		return fmt.Errorf("invalid --from: %w", err)
	}
	if err := s.ApplySequence(args[0]); err != nil {
		return err
	}
	logger.Debug("sequence applied", "moves", args[0])

	printState(cmd, "After "+args[0], s)
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	s, err := parseState(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	counts := s.ColorCounts()
	names := make([]string, 0, len(counts))
	for _, c := range cubestate.Colors {
		names = append(names, fmt.Sprintf("%s=%d", c, counts[c]))
	}
	sort.Strings(names)
	fmt.Fprintf(out, "Colors: %s\n", strings.Join(names, " "))

	if err := s.Validate(); err != nil {
		return err
	}
	if s.IsSolved() {
		fmt.Fprintln(out, "valid (solved)")
	} else {
		fmt.Fprintln(out, "valid")
	}
	return nil
}

func printState(cmd *cobra.Command, title string, s *cubestate.State) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render(title))
	fmt.Fprintln(out)
	fmt.Fprintln(out, newNetRenderer(cfg.Palette).Render(s, nil))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "State: %s\n", s.SolverString())
	fmt.Fprint(out, summary(s))
}
