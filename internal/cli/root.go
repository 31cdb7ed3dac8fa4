// Package cli implements the command-line interface for cubestate.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubestate"
	"github.com/SeamusWaldron/cubestate/internal/config"
	"github.com/SeamusWaldron/cubestate/internal/logging"
	"github.com/SeamusWaldron/cubestate/internal/storage"
)

const version = "0.1.0"

var (
	// Global flags
	configPath string
	dbPath     string
	verbose    bool
)

// Loaded by setup before any command runs.
var (
	cfg    = config.Default()
	logger = logging.Discard()
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "cubestate",
	Short: "Rubik's cube state entry and solution playback",
	Long: `cubestate - A CLI tool for entering a 3x3 Rubik's cube by hand, checking it,
and stepping through a solution.

Enter stickers in the editor, validate and solve the result, then replay the
solution move by move in the terminal or stream it to an external renderer.

States are written as 54-symbol solver strings (faces U, R, F, D, L, B).
The words "solved" and "blank" stand for the solved and the empty cube.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: ~/.cubestate/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: ~/.cubestate/cubestate.db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// setup loads the configuration and builds the logger.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if dbPath != "" {
		loaded.Database.Path = dbPath
	}
	if verbose {
		loaded.Log.Level = "debug"
	}

	l, err := logging.New(loaded.Log, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	cfg = loaded
	logger = l
	logger.Debug("configuration loaded", "db", cfg.Database.Path, "speed", cfg.Playback.Speed)
	return nil
}

// openDB opens and migrates the configured database.
func openDB() (*storage.DB, error) {
	path, err := cfg.DatabasePath()
	if err != nil {
		return nil, err
	}

	db, err := storage.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	logger.Debug("database opened", "path", db.Path())
	return db, nil
}

// parseState reads a state argument: a solver string, "solved" or "blank".
func parseState(arg string) (*cubestate.State, error) {
	switch arg {
	case "solved":
		return cubestate.NewSolved(), nil
	case "blank":
		return cubestate.New(), nil
	}
	return cubestate.ParseSolverString(arg)
}

// loadCube returns a saved cube or an error naming the missing ID.
func loadCube(db *storage.DB, id string) (*storage.Cube, error) {
	cube, err := storage.NewCubeRepository(db).Get(id)
	if err != nil {
		return nil, err
	}
	if cube == nil {
		return nil, fmt.Errorf("cube %s: %w", id, storage.ErrNotFound)
	}
	return cube, nil
}
