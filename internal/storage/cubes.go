package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/SeamusWaldron/cubestate"
)

// Cube is a saved cube state.
type Cube struct {
	CubeID    string
	Name      string
	State     *cubestate.State
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CubeRepository provides CRUD operations for saved cubes.
type CubeRepository struct {
	db *DB
}

// NewCubeRepository creates a new cube repository.
func NewCubeRepository(db *DB) *CubeRepository {
	return &CubeRepository{db: db}
}

// Save stores a new cube and returns its ID.
func (r *CubeRepository) Save(name string, s *cubestate.State) (string, error) {
	id := uuid.New().String()
	now := formatTime(time.Now())

	_, err := r.db.Exec(`
		INSERT INTO cubes (cube_id, name, state, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, id, name, s.SolverString(), now, now)

	if err != nil {
		return "", fmt.Errorf("failed to save cube: %w", err)
	}

	return id, nil
}

// Update replaces the state of a saved cube.
func (r *CubeRepository) Update(cubeID string, s *cubestate.State) error {
	result, err := r.db.Exec(`
		UPDATE cubes
		SET state = ?, updated_at = ?
		WHERE cube_id = ?
	`, s.SolverString(), formatTime(time.Now()), cubeID)

	if err != nil {
		return fmt.Errorf("failed to update cube: %w", err)
	}

	return requireRow(result, "cube", cubeID)
}

// Rename changes the name of a saved cube.
func (r *CubeRepository) Rename(cubeID, name string) error {
	result, err := r.db.Exec(`
		UPDATE cubes
		SET name = ?, updated_at = ?
		WHERE cube_id = ?
	`, name, formatTime(time.Now()), cubeID)

	if err != nil {
		return fmt.Errorf("failed to rename cube: %w", err)
	}

	return requireRow(result, "cube", cubeID)
}

// Get retrieves a cube by ID.
func (r *CubeRepository) Get(cubeID string) (*Cube, error) {
	row := r.db.QueryRow(`
		SELECT cube_id, name, state, created_at, updated_at
		FROM cubes
		WHERE cube_id = ?
	`, cubeID)

	c, err := scanCube(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cube: %w", err)
	}

	return c, nil
}

// GetLast retrieves the most recently updated cube.
func (r *CubeRepository) GetLast() (*Cube, error) {
	row := r.db.QueryRow(`
		SELECT cube_id, name, state, created_at, updated_at
		FROM cubes
		ORDER BY updated_at DESC, rowid DESC
		LIMIT 1
	`)

	c, err := scanCube(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last cube: %w", err)
	}

	return c, nil
}

// List retrieves recently updated cubes.
func (r *CubeRepository) List(limit int) ([]Cube, error) {
	rows, err := r.db.Query(`
		SELECT cube_id, name, state, created_at, updated_at
		FROM cubes
		ORDER BY updated_at DESC, rowid DESC
		LIMIT ?
	`, limit)

	if err != nil {
		return nil, fmt.Errorf("failed to list cubes: %w", err)
	}
	defer rows.Close()

	var cubes []Cube
	for rows.Next() {
		c, err := scanCube(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cube: %w", err)
		}
		cubes = append(cubes, *c)
	}

	return cubes, rows.Err()
}

// Count returns the number of saved cubes.
func (r *CubeRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM cubes").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count cubes: %w", err)
	}
	return count, nil
}

// Delete deletes a cube. Its solves are kept without a cube reference.
func (r *CubeRepository) Delete(cubeID string) error {
	result, err := r.db.Exec("DELETE FROM cubes WHERE cube_id = ?", cubeID)
	if err != nil {
		return fmt.Errorf("failed to delete cube: %w", err)
	}
	return requireRow(result, "cube", cubeID)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCube(row scanner) (*Cube, error) {
	var c Cube
	var stateStr, createdAtStr, updatedAtStr string

	if err := row.Scan(&c.CubeID, &c.Name, &stateStr, &createdAtStr, &updatedAtStr); err != nil {
		return nil, err
	}

	state, err := cubestate.ParseSolverString(stateStr)
	if err != nil {
		return nil, fmt.Errorf("cube %s: %w", c.CubeID, err)
	}
	c.State = state
	c.CreatedAt = parseTime(createdAtStr)
	c.UpdatedAt = parseTime(updatedAtStr)

	return &c, nil
}

func requireRow(result sql.Result, kind, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
	}
	return nil
}
