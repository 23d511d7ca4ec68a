package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	id "polydom/pkg/domain"
	audit "polydom/pkg/platform/audit"
)

// Store persists audit entries in the audit_entries table.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a PostgreSQL audit store over the given pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Append inserts the entry. Idempotent via ON CONFLICT DO NOTHING so retried
// emissions never duplicate.
func (s *Store) Append(ctx context.Context, entry audit.Entry) error {
	operationData, err := json.Marshal(entry.Decision.OperationData)
	if err != nil {
		return fmt.Errorf("marshal operation data: %w", err)
	}

	query := `
		INSERT INTO audit_entries (
			id, hash, timestamp, operation_type, tenant,
			approved, risk_level, reason, sandbox, operation_data
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO NOTHING
	`
	_, err = s.pool.Exec(ctx, query,
		uuid.UUID(entry.ID),
		entry.Hash,
		entry.Timestamp,
		entry.Decision.OperationType,
		entry.Decision.Tenant,
		entry.Decision.Approved,
		entry.Decision.RiskLevel,
		entry.Decision.Reason,
		entry.Decision.Sandbox,
		operationData,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// ListByTenant returns a tenant's entries, most recent first.
func (s *Store) ListByTenant(ctx context.Context, tenant string) ([]audit.Entry, error) {
	query := `
		SELECT id, hash, timestamp, operation_type, tenant,
		       approved, risk_level, reason, sandbox, operation_data
		FROM audit_entries
		WHERE tenant = $1
		ORDER BY timestamp DESC
	`
	rows, err := s.pool.Query(ctx, query, tenant)
	if err != nil {
		return nil, fmt.Errorf("query audit entries: %w", err)
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var (
			entry         audit.Entry
			entryID       uuid.UUID
			operationData []byte
		)
		err := rows.Scan(
			&entryID,
			&entry.Hash,
			&entry.Timestamp,
			&entry.Decision.OperationType,
			&entry.Decision.Tenant,
			&entry.Decision.Approved,
			&entry.Decision.RiskLevel,
			&entry.Decision.Reason,
			&entry.Decision.Sandbox,
			&operationData,
		)
		if err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entry.ID = id.AuditEntryID(entryID)
		entry.Decision.Timestamp = entry.Timestamp
		if len(operationData) > 0 {
			if err := json.Unmarshal(operationData, &entry.Decision.OperationData); err != nil {
				return nil, fmt.Errorf("unmarshal operation data: %w", err)
			}
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}
	return entries, nil
}
