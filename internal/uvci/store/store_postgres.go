package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"uvci/internal/uvci"
	"uvci/internal/uvci/models"
	"uvci/pkg/platform/sentinel"
)

const uniqueViolation = "23505"

const schema = `
CREATE TABLE IF NOT EXISTS uvci_inspections (
	id           UUID PRIMARY KEY,
	raw          TEXT NOT NULL,
	normalized   TEXT NOT NULL,
	opaque_id    TEXT NOT NULL DEFAULT '',
	record       JSONB NOT NULL,
	cached       BOOLEAN NOT NULL DEFAULT FALSE,
	request_id   TEXT NOT NULL DEFAULT '',
	inspected_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS uvci_inspections_opaque_id_idx
	ON uvci_inspections (opaque_id) WHERE opaque_id <> '';
`

const selectColumns = `id, raw, normalized, record, cached, request_id, inspected_at`

// DB is the subset of pgxpool.Pool and pgx.Tx the store needs.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore persists inspections in PostgreSQL.
type PostgresStore struct {
	db DB
}

// NewPostgres constructs a PostgreSQL-backed inspection store.
func NewPostgres(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the inspections table and its index if missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure inspections schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Save(ctx context.Context, insp *models.Inspection) error {
	record, err := json.Marshal(insp.Record)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO uvci_inspections (id, raw, normalized, opaque_id, record, cached, request_id, inspected_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		insp.ID, insp.Raw, insp.Normalized, insp.Record.OpaqueID, record, insp.Cached, insp.RequestID, insp.InspectedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("inspection %s: %w", insp.ID, sentinel.ErrConflict)
		}
		return fmt.Errorf("save inspection: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Inspection, error) {
	row := s.db.QueryRow(ctx, `SELECT `+selectColumns+` FROM uvci_inspections WHERE id = $1`, id)
	insp, err := scanInspection(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("inspection %s: %w", id, sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find inspection by id: %w", err)
	}
	return insp, nil
}

// ListByOpaqueID returns every inspection of a national certificate with the
// given opaque id, oldest first.
func (s *PostgresStore) ListByOpaqueID(ctx context.Context, opaqueID string) ([]*models.Inspection, error) {
	if opaqueID == "" {
		return nil, nil
	}
	rows, err := s.db.Query(ctx, `
		SELECT `+selectColumns+` FROM uvci_inspections
		WHERE opaque_id = $1
		ORDER BY inspected_at, id`, opaqueID)
	if err != nil {
		return nil, fmt.Errorf("list inspections by opaque id: %w", err)
	}
	defer rows.Close()

	var found []*models.Inspection
	for rows.Next() {
		insp, err := scanInspection(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inspection: %w", err)
		}
		found = append(found, insp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list inspections by opaque id: %w", err)
	}
	return found, nil
}

func scanInspection(row pgx.Row) (*models.Inspection, error) {
	var (
		insp        models.Inspection
		record      []byte
		inspectedAt time.Time
	)
	if err := row.Scan(&insp.ID, &insp.Raw, &insp.Normalized, &record, &insp.Cached, &insp.RequestID, &inspectedAt); err != nil {
		return nil, err
	}
	var rec uvci.Record
	if err := json.Unmarshal(record, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}
	insp.Record = rec
	insp.InspectedAt = inspectedAt.UTC()
	return &insp, nil
}
