package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/piwi3910/trimcut/internal/engine"
)

// RunSummary is one row of the history list.
type RunSummary struct {
	ID          string    `json:"id"`
	JobID       string    `json:"job_id"`
	JobName     string    `json:"job_name"`
	Source      string    `json:"source"` // cli, server
	Boards      int       `json:"boards"`
	Cuts        int       `json:"cuts"`
	StockInches float64   `json:"stock_inches"`
	CreatedAt   time.Time `json:"created_at"`
}

// Run is a stored plan result with its summary.
type Run struct {
	RunSummary
	Result *engine.PlanResult `json:"result"`
}

// SaveRun records a plan result and returns its summary.
func (s *Store) SaveRun(result *engine.PlanResult, source string) (RunSummary, error) {
	if result == nil {
		return RunSummary{}, errors.New("nil plan result")
	}
	data, err := json.Marshal(result)
	if err != nil {
		return RunSummary{}, fmt.Errorf("failed to marshal plan result: %w", err)
	}

	stock := 0.0
	for _, cl := range result.Lists {
		stock += cl.StockLength()
	}

	sum := RunSummary{
		ID:          uuid.New().String()[:8],
		JobID:       result.JobID,
		JobName:     result.JobName,
		Source:      source,
		Boards:      result.BoardCount(),
		Cuts:        result.CutCount(),
		StockInches: stock,
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}

	_, err = s.db.Exec(`
		INSERT INTO runs (id, job_id, job_name, source, boards, cuts, stock_inches, result_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		sum.ID, sum.JobID, sum.JobName, sum.Source,
		sum.Boards, sum.Cuts, sum.StockInches,
		string(data), sum.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return RunSummary{}, fmt.Errorf("failed to insert run: %w", err)
	}
	return sum, nil
}

// ListRuns returns the most recent runs first. A limit of zero or less
// returns every run.
func (s *Store) ListRuns(limit int) ([]RunSummary, error) {
	query := `SELECT id, job_id, job_name, source, boards, cuts, stock_inches, created_at
		FROM runs ORDER BY created_at DESC, rowid DESC`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	runs := []RunSummary{}
	for rows.Next() {
		var sum RunSummary
		var created string
		if err := rows.Scan(&sum.ID, &sum.JobID, &sum.JobName, &sum.Source,
			&sum.Boards, &sum.Cuts, &sum.StockInches, &created); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if sum.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
			return nil, fmt.Errorf("run %s: bad timestamp %q: %w", sum.ID, created, err)
		}
		runs = append(runs, sum)
	}
	return runs, rows.Err()
}

// GetRun loads a run with its full plan result.
func (s *Store) GetRun(id string) (*Run, error) {
	var run Run
	var created, data string
	err := s.db.QueryRow(`
		SELECT id, job_id, job_name, source, boards, cuts, stock_inches, created_at, result_json
		FROM runs WHERE id = ?
	`, id).Scan(&run.ID, &run.JobID, &run.JobName, &run.Source,
		&run.Boards, &run.Cuts, &run.StockInches, &created, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query run %s: %w", id, err)
	}

	if run.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
		return nil, fmt.Errorf("run %s: bad timestamp %q: %w", id, created, err)
	}
	run.Result = &engine.PlanResult{}
	if err := json.Unmarshal([]byte(data), run.Result); err != nil {
		return nil, fmt.Errorf("failed to decode run %s: %w", id, err)
	}
	return &run, nil
}

// DeleteRun removes a run. Deleting an unknown ID returns ErrNotFound.
func (s *Store) DeleteRun(id string) error {
	res, err := s.db.Exec(`DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete run %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete run %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}
