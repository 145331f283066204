package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"business_valuation/pkg/core/valuation"
)

// ErrNotFound is returned when a valuation record does not exist.
var ErrNotFound = errors.New("valuation not found")

const schema = `
CREATE TABLE IF NOT EXISTS business_valuations (
	id           UUID PRIMARY KEY,
	industry_key TEXT NOT NULL,
	input_json   JSONB NOT NULL,
	output_json  JSONB NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS business_valuations_created_at_idx ON business_valuations (created_at DESC);
`

// ValuationRecord is one persisted valuation run.
type ValuationRecord struct {
	ID          string                    `json:"id"`
	IndustryKey string                    `json:"industry_key"`
	Input       valuation.ValuationInput  `json:"input"`
	Output      valuation.ValuationOutput `json:"output"`
	CreatedAt   time.Time                 `json:"created_at"`
}

// ValuationStore persists valuation runs.
// Hybrid: Postgres when a pool is provided, JSON files in a directory otherwise.
type ValuationStore struct {
	pool    *pgxpool.Pool
	fileDir string
	logger  *zap.Logger
	now     func() time.Time
}

// NewValuationStore creates a store. If pool is nil it falls back to a file
// store in dir (".cache/valuations" when dir is empty).
func NewValuationStore(pool *pgxpool.Pool, dir string, logger *zap.Logger) *ValuationStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	if pool == nil && dir == "" {
		dir = filepath.Join(".cache", "valuations")
	}
	if pool == nil {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Warn("cannot create valuation store dir", zap.String("dir", dir), zap.Error(err))
		}
	}
	return &ValuationStore{pool: pool, fileDir: dir, logger: logger.Named("store"), now: time.Now}
}

// Backend reports which backend is active: "postgres" or "file".
func (s *ValuationStore) Backend() string {
	if s.pool != nil {
		return "postgres"
	}
	return "file"
}

// EnsureSchema creates the valuations table. It is a no-op for the file backend.
func (s *ValuationStore) EnsureSchema(ctx context.Context) error {
	if s.pool == nil {
		return nil
	}
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Save persists rec, assigning an ID and timestamp when they are empty.
func (s *ValuationStore) Save(ctx context.Context, rec *ValuationRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	} else if _, err := uuid.Parse(rec.ID); err != nil {
		return fmt.Errorf("invalid record id %q: %w", rec.ID, err)
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.now().UTC()
	}
	if rec.IndustryKey == "" {
		rec.IndustryKey = rec.Output.IndustryData.IndustryKey
	}

	if s.pool != nil {
		inputJSON, err := json.Marshal(rec.Input)
		if err != nil {
			return fmt.Errorf("failed to marshal input: %w", err)
		}
		outputJSON, err := json.Marshal(rec.Output)
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		query := `
			INSERT INTO business_valuations (id, industry_key, input_json, output_json, created_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id)
			DO UPDATE SET
				industry_key = EXCLUDED.industry_key,
				input_json = EXCLUDED.input_json,
				output_json = EXCLUDED.output_json
		`
		if _, err := s.pool.Exec(ctx, query, rec.ID, rec.IndustryKey, inputJSON, outputJSON, rec.CreatedAt); err != nil {
			return fmt.Errorf("failed to save valuation: %w", err)
		}
		s.logger.Debug("saved valuation", zap.String("id", rec.ID), zap.String("backend", "postgres"))
		return nil
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	if err := os.WriteFile(s.recordPath(rec.ID), data, 0o644); err != nil {
		return fmt.Errorf("failed to write valuation file: %w", err)
	}
	s.logger.Debug("saved valuation", zap.String("id", rec.ID), zap.String("backend", "file"))
	return nil
}

// Get loads a record by ID. Unknown or malformed IDs return ErrNotFound.
func (s *ValuationStore) Get(ctx context.Context, id string) (*ValuationRecord, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	if s.pool != nil {
		query := `
			SELECT id::text, industry_key, input_json, output_json, created_at
			FROM business_valuations
			WHERE id = $1
		`
		rec, err := scanRecord(s.pool.QueryRow(ctx, query, id))
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load valuation %s: %w", id, err)
		}
		return rec, nil
	}

	rec, err := s.loadFile(s.recordPath(id))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	return rec, err
}

// Bounds for ListRecent.
const (
	DefaultListLimit = 20
	MaxListLimit     = 200
)

// ListRecent returns up to limit records, newest first. A non-positive limit
// means DefaultListLimit; limits above MaxListLimit are clamped.
func (s *ValuationStore) ListRecent(ctx context.Context, limit int) ([]ValuationRecord, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	if s.pool != nil {
		query := `
			SELECT id::text, industry_key, input_json, output_json, created_at
			FROM business_valuations
			ORDER BY created_at DESC
			LIMIT $1
		`
		rows, err := s.pool.Query(ctx, query, limit)
		if err != nil {
			return nil, fmt.Errorf("failed to list valuations: %w", err)
		}
		defer rows.Close()

		var out []ValuationRecord
		for rows.Next() {
			rec, err := scanRecord(rows)
			if err != nil {
				return nil, fmt.Errorf("failed to scan valuation: %w", err)
			}
			out = append(out, *rec)
		}
		return out, rows.Err()
	}

	entries, err := os.ReadDir(s.fileDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read store dir: %w", err)
	}
	var out []ValuationRecord
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		rec, err := s.loadFile(filepath.Join(s.fileDir, e.Name()))
		if err != nil {
			s.logger.Warn("skipping unreadable valuation file", zap.String("file", e.Name()), zap.Error(err))
			continue
		}
		out = append(out, *rec)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func scanRecord(row pgx.Row) (*ValuationRecord, error) {
	var (
		rec                   ValuationRecord
		inputJSON, outputJSON []byte
	)
	if err := row.Scan(&rec.ID, &rec.IndustryKey, &inputJSON, &outputJSON, &rec.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(inputJSON, &rec.Input); err != nil {
		return nil, fmt.Errorf("failed to unmarshal input: %w", err)
	}
	if err := json.Unmarshal(outputJSON, &rec.Output); err != nil {
		return nil, fmt.Errorf("failed to unmarshal output: %w", err)
	}
	return &rec, nil
}

func (s *ValuationStore) recordPath(id string) string {
	return filepath.Join(s.fileDir, id+".json")
}

func (s *ValuationStore) loadFile(path string) (*ValuationRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var rec ValuationRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return &rec, nil
}
