package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"barrier_tea/pkg/core/tea"
)

// ScenarioRepo stores evaluated scenario runs.
//
// Expected schema:
//
//	CREATE TABLE tea_scenario_runs (
//	    id UUID PRIMARY KEY,
//	    name TEXT NOT NULL,
//	    config JSONB NOT NULL,
//	    total_cost DOUBLE PRECISION NOT NULL,
//	    total_eol_cost DOUBLE PRECISION NOT NULL,
//	    virgin_production DOUBLE PRECISION NOT NULL,
//	    final_landfill DOUBLE PRECISION NOT NULL,
//	    value_chain JSONB NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
type ScenarioRepo struct {
	pool *pgxpool.Pool
}

// NewScenarioRepo creates a repository over the given pool.
func NewScenarioRepo(pool *pgxpool.Pool) *ScenarioRepo {
	return &ScenarioRepo{pool: pool}
}

// Save inserts one scenario run and returns its generated run ID.
func (r *ScenarioRepo) Save(ctx context.Context, name string, cfg tea.ScenarioConfig, result *tea.Scenario) (string, error) {
	if r.pool == nil {
		return "", fmt.Errorf("database pool not configured")
	}

	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to marshal scenario config: %w", err)
	}
	chainJSON, err := json.Marshal(result.ValueChain)
	if err != nil {
		return "", fmt.Errorf("failed to marshal value chain: %w", err)
	}

	id := uuid.New().String()
	query := `
		INSERT INTO tea_scenario_runs (
			id, name, config, total_cost, total_eol_cost,
			virgin_production, final_landfill, value_chain, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = r.pool.Exec(ctx, query,
		id, name, cfgJSON,
		result.TotalCost, result.TotalEOLCost,
		result.VirginProduction, result.FinalLandfill,
		chainJSON, time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to save scenario run: %w", err)
	}
	return id, nil
}

// RunSummary is one stored run's headline numbers.
type RunSummary struct {
	ID               string
	Name             string
	TotalCost        float64
	TotalEOLCost     float64
	VirginProduction float64
	FinalLandfill    float64
	CreatedAt        time.Time
}

// ListRecent returns the most recent runs, newest first.
func (r *ScenarioRepo) ListRecent(ctx context.Context, limit int) ([]RunSummary, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("database pool not configured")
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, name, total_cost, total_eol_cost,
		       virgin_production, final_landfill, created_at
		FROM tea_scenario_runs
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenario runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var s RunSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.TotalCost, &s.TotalEOLCost,
			&s.VirginProduction, &s.FinalLandfill, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan scenario run: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
