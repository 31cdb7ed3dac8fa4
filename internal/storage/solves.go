package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/SeamusWaldron/cubestate"
)

// Solve is a recorded solution of a cube state.
type Solve struct {
	SolveID    string
	CubeID     *string
	Start      *cubestate.State
	Moves      []cubestate.Move
	Solver     string
	DurationMs *int64
	SolvedAt   time.Time
}

// Stats summarizes solve history.
type Stats struct {
	SolveCount   int
	LastSolvedAt *time.Time
	AverageMoves float64
}

// SolveRepository provides CRUD operations for solves.
type SolveRepository struct {
	db *DB
}

// NewSolveRepository creates a new solve repository.
func NewSolveRepository(db *DB) *SolveRepository {
	return &SolveRepository{db: db}
}

// Create records a solution and returns its ID. cubeID may be empty for a
// state that was never saved; a zero duration is stored as unknown.
func (r *SolveRepository) Create(cubeID string, start *cubestate.State, moves []cubestate.Move, solver string, duration time.Duration) (string, error) {
	id := uuid.New().String()

	var cubeIDPtr *string
	if cubeID != "" {
		cubeIDPtr = &cubeID
	}
	var durationPtr *int64
	if duration > 0 {
		ms := duration.Milliseconds()
		durationPtr = &ms
	}

	err := r.db.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`
			INSERT INTO solves (solve_id, cube_id, start_state, moves, move_count, solver, duration_ms, solved_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, id, cubeIDPtr, start.SolverString(), cubestate.FormatMoves(moves), len(moves), solver, durationPtr, formatTime(time.Now())); err != nil {
			return fmt.Errorf("failed to create solve: %w", err)
		}
		return recordMilestones(tx, id, start, moves)
	})
	if err != nil {
		return "", err
	}

	return id, nil
}

// Get retrieves a solve by ID.
func (r *SolveRepository) Get(solveID string) (*Solve, error) {
	row := r.db.QueryRow(`
		SELECT solve_id, cube_id, start_state, moves, solver, duration_ms, solved_at
		FROM solves
		WHERE solve_id = ?
	`, solveID)

	s, err := scanSolve(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get solve: %w", err)
	}

	return s, nil
}

// GetLastByCube retrieves the most recent solve of a cube.
func (r *SolveRepository) GetLastByCube(cubeID string) (*Solve, error) {
	row := r.db.QueryRow(`
		SELECT solve_id, cube_id, start_state, moves, solver, duration_ms, solved_at
		FROM solves
		WHERE cube_id = ?
		ORDER BY solved_at DESC, rowid DESC
		LIMIT 1
	`, cubeID)

	s, err := scanSolve(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last solve: %w", err)
	}

	return s, nil
}

// ListByCube retrieves every solve of a cube, newest first.
func (r *SolveRepository) ListByCube(cubeID string) ([]Solve, error) {
	return r.query(`
		SELECT solve_id, cube_id, start_state, moves, solver, duration_ms, solved_at
		FROM solves
		WHERE cube_id = ?
		ORDER BY solved_at DESC, rowid DESC
	`, cubeID)
}

// List retrieves recent solves.
func (r *SolveRepository) List(limit int) ([]Solve, error) {
	return r.query(`
		SELECT solve_id, cube_id, start_state, moves, solver, duration_ms, solved_at
		FROM solves
		ORDER BY solved_at DESC, rowid DESC
		LIMIT ?
	`, limit)
}

// Delete deletes a solve.
func (r *SolveRepository) Delete(solveID string) error {
	result, err := r.db.Exec("DELETE FROM solves WHERE solve_id = ?", solveID)
	if err != nil {
		return fmt.Errorf("failed to delete solve: %w", err)
	}
	return requireRow(result, "solve", solveID)
}

// Stats returns the solve count, the time of the last solve and the
// average solution length.
func (r *SolveRepository) Stats() (Stats, error) {
	var st Stats
	var last sql.NullString
	var avg sql.NullFloat64

	err := r.db.QueryRow(`
		SELECT COUNT(*), MAX(solved_at), AVG(move_count)
		FROM solves
	`).Scan(&st.SolveCount, &last, &avg)
	if err != nil {
		return st, fmt.Errorf("failed to get solve stats: %w", err)
	}

	if last.Valid {
		t := parseTime(last.String)
		st.LastSolvedAt = &t
	}
	if avg.Valid {
		st.AverageMoves = avg.Float64
	}

	return st, nil
}

func (r *SolveRepository) query(q string, args ...any) ([]Solve, error) {
	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list solves: %w", err)
	}
	defer rows.Close()

	var solves []Solve
	for rows.Next() {
		s, err := scanSolve(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan solve: %w", err)
		}
		solves = append(solves, *s)
	}

	return solves, rows.Err()
}

func scanSolve(row scanner) (*Solve, error) {
	var s Solve
	var startStr, movesStr, solvedAtStr string

	err := row.Scan(&s.SolveID, &s.CubeID, &startStr, &movesStr, &s.Solver, &s.DurationMs, &solvedAtStr)
	if err != nil {
		return nil, err
	}

	s.Start, err = cubestate.ParseSolverString(startStr)
	if err != nil {
		return nil, fmt.Errorf("solve %s: %w", s.SolveID, err)
	}
	s.Moves, err = cubestate.ParseMoves(movesStr)
	if err != nil {
		return nil, fmt.Errorf("solve %s: %w", s.SolveID, err)
	}
	s.SolvedAt = parseTime(solvedAtStr)

	return &s, nil
}
