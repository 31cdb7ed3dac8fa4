package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubestate"
	"github.com/SeamusWaldron/cubestate/internal/archive"
	"github.com/SeamusWaldron/cubestate/internal/storage"
)

var (
	exportCubeID string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export saved cubes to an archive",
	Long: `Export saved cubes, each with its latest solution, to a zstd-compressed
JSON Lines archive.

Examples:
  cubestate export -o cubes.jsonl.zst
  cubestate export --id <cube-id> -o one.jsonl.zst
  cubestate export > cubes.jsonl.zst`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <archive>",
	Short: "Import cubes from an archive",
	Long: `Import every cube in an archive written by export. The archive is
validated in full before anything is saved; one bad line rejects the file.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)
	exportCmd.Flags().StringVar(&exportCubeID, "id", "", "Export a single cube")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
}

func runExport(cmd *cobra.Command, _ []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	var cubes []storage.Cube
	if exportCubeID != "" {
		cube, err := loadCube(db, exportCubeID)
		if err != nil {
			return err
		}
		cubes = append(cubes, *cube)
	} else {
		cubes, err = storage.NewCubeRepository(db).List(-1)
		if err != nil {
			return err
		}
	}

	var (
		out  io.Writer = cmd.OutOrStdout()
		file *os.File
	)
	if exportOutput != "" {
		file, err = os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer file.Close() // covers early returns
		out = file
	}

	w, err := archive.NewWriter(out)
	if err != nil {
		return err
	}

	solves := storage.NewSolveRepository(db)
	// Oldest first so an import preserves the original order.
	for i := len(cubes) - 1; i >= 0; i-- {
		c := cubes[i]
		last, err := solves.GetLastByCube(c.CubeID)
		if err != nil {
			return err
		}
		// An edited cube no longer matches its last solve.
		var moves []cubestate.Move
		if last != nil && last.Start.Equal(c.State) {
			moves = last.Moves
		}
		if err := w.WriteCube(c.Name, c.State, moves, c.CreatedAt); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}
	if file != nil {
		if err := file.Close(); err != nil {
			return fmt.Errorf("failed to close %s: %w", exportOutput, err)
		}
	}

	logger.Info("export complete", "cubes", w.Count(), "output", exportOutput)
	if exportOutput != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d cubes to %s\n", w.Count(), exportOutput)
	}
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	entries, err := archive.Read(f)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	records := make([]storage.Record, 0, len(entries))
	for _, e := range entries {
		records = append(records, storage.Record{Name: e.Name, State: e.State, Moves: e.Moves})
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	ids, err := storage.ImportRecords(db, records, "import")
	if err != nil {
		return err
	}

	logger.Info("import complete", "cubes", len(ids), "file", args[0])
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d cubes\n", len(ids))
	return nil
}
