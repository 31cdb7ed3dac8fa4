package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/SeamusWaldron/cubestate"
)

// Record is a cube with an optional solution, as read from an archive.
type Record struct {
	Name  string
	State *cubestate.State
	Moves []cubestate.Move
}

// ImportRecords saves every record in one transaction and returns the new
// cube IDs in input order. Records with moves also get a solve row.
func ImportRecords(db *DB, records []Record, solver string) ([]string, error) {
	ids := make([]string, 0, len(records))

	err := db.Transaction(func(tx *sql.Tx) error {
		now := formatTime(time.Now())
		for i, rec := range records {
			id := uuid.New().String()
			state := rec.State.SolverString()

			if _, err := tx.Exec(`
				INSERT INTO cubes (cube_id, name, state, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?)
			`, id, rec.Name, state, now, now); err != nil {
				return fmt.Errorf("failed to import cube %d: %w", i+1, err)
			}

			if len(rec.Moves) > 0 {
				solveID := uuid.New().String()
				if _, err := tx.Exec(`
					INSERT INTO solves (solve_id, cube_id, start_state, moves, move_count, solver, solved_at)
					VALUES (?, ?, ?, ?, ?, ?, ?)
				`, solveID, id, state, cubestate.FormatMoves(rec.Moves), len(rec.Moves), solver, now); err != nil {
					return fmt.Errorf("failed to import solve %d: %w", i+1, err)
				}
				if err := recordMilestones(tx, solveID, rec.State, rec.Moves); err != nil {
					return fmt.Errorf("failed to import solve %d: %w", i+1, err)
				}
			}

			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ids, nil
}
