package storage

import (
	"database/sql"
	"fmt"

	"github.com/SeamusWaldron/cubestate"
)

// PhaseDef represents a phase definition.
type PhaseDef struct {
	PhaseKey    string
	DisplayName string
	OrderIndex  int
}

// PhaseAverage summarizes when solves reach a phase.
type PhaseAverage struct {
	Phase       cubestate.Phase
	SolveCount  int
	AverageMove float64
}

// PhaseRepository reads the phases reached by recorded solves.
type PhaseRepository struct {
	db *DB
}

// NewPhaseRepository creates a new phase repository.
func NewPhaseRepository(db *DB) *PhaseRepository {
	return &PhaseRepository{db: db}
}

// GetAllPhaseDefs retrieves all phase definitions in order.
func (r *PhaseRepository) GetAllPhaseDefs() ([]PhaseDef, error) {
	rows, err := r.db.Query(`
		SELECT phase_key, display_name, order_index
		FROM phase_defs
		ORDER BY order_index
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get phase defs: %w", err)
	}
	defer rows.Close()

	var defs []PhaseDef
	for rows.Next() {
		var d PhaseDef
		if err := rows.Scan(&d.PhaseKey, &d.DisplayName, &d.OrderIndex); err != nil {
			return nil, fmt.Errorf("failed to scan phase def: %w", err)
		}
		defs = append(defs, d)
	}

	return defs, rows.Err()
}

// GetBySolve retrieves the milestones of a solve in the order reached.
func (r *PhaseRepository) GetBySolve(solveID string) ([]cubestate.Milestone, error) {
	rows, err := r.db.Query(`
		SELECT p.order_index, sp.move_index
		FROM solve_phases sp
		JOIN phase_defs p ON p.phase_key = sp.phase_key
		WHERE sp.solve_id = ?
		ORDER BY sp.move_index, p.order_index
	`, solveID)
	if err != nil {
		return nil, fmt.Errorf("failed to get solve phases: %w", err)
	}
	defer rows.Close()

	var out []cubestate.Milestone
	for rows.Next() {
		var phase, move int
		if err := rows.Scan(&phase, &move); err != nil {
			return nil, fmt.Errorf("failed to scan solve phase: %w", err)
		}
		out = append(out, cubestate.Milestone{Phase: cubestate.Phase(phase), Move: move})
	}

	return out, rows.Err()
}

// Averages returns, per phase reached by at least one solve, the average
// move at which it was reached.
func (r *PhaseRepository) Averages() ([]PhaseAverage, error) {
	rows, err := r.db.Query(`
		SELECT p.order_index, COUNT(*), AVG(sp.move_index)
		FROM solve_phases sp
		JOIN phase_defs p ON p.phase_key = sp.phase_key
		GROUP BY p.order_index
		ORDER BY p.order_index
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get phase averages: %w", err)
	}
	defer rows.Close()

	var out []PhaseAverage
	for rows.Next() {
		var a PhaseAverage
		var phase int
		if err := rows.Scan(&phase, &a.SolveCount, &a.AverageMove); err != nil {
			return nil, fmt.Errorf("failed to scan phase average: %w", err)
		}
		a.Phase = cubestate.Phase(phase)
		out = append(out, a)
	}

	return out, rows.Err()
}

// recordMilestones stores the phases a solve reaches from start.
func recordMilestones(tx *sql.Tx, solveID string, start *cubestate.State, moves []cubestate.Move) error {
	for _, ms := range cubestate.Milestones(start, moves) {
		if _, err := tx.Exec(`
			INSERT INTO solve_phases (solve_id, phase_key, move_index)
			VALUES (?, ?, ?)
		`, solveID, ms.Phase.String(), ms.Move); err != nil {
			return fmt.Errorf("failed to record phase %s: %w", ms.Phase, err)
		}
	}
	return nil
}
