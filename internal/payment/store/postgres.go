package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"polydom/internal/payment/models"
	id "polydom/pkg/domain"
	"polydom/pkg/platform/sentinel"
)

// QueryLogger records executed queries. The tenant store handle implements
// it; logging only happens when store debugging is enabled there.
type QueryLogger interface {
	LogQuery(ctx context.Context, query string)
}

// Postgres persists payment records in one tenant's database. Execute takes a
// row lock (SELECT ... FOR UPDATE) across validation and mutation so
// concurrent transitions on the same record serialize.
type Postgres struct {
	pool *pgxpool.Pool
	log  QueryLogger
}

// NewPostgres builds a store over the pool. log may be nil.
func NewPostgres(pool *pgxpool.Pool, log QueryLogger) *Postgres {
	return &Postgres{pool: pool, log: log}
}

func (s *Postgres) logQuery(ctx context.Context, query string) {
	if s.log != nil {
		s.log.LogQuery(ctx, query)
	}
}

const paymentColumns = `
	id, tenant, external_payment_id, amount::text, memo, state,
	external_tx_id, error_detail, metadata,
	created_at, updated_at, approved_at, completed_at, cancelled_at, failed_at`

func (s *Postgres) Create(ctx context.Context, record *models.PaymentRecord) error {
	metadata, err := json.Marshal(record.Metadata)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}

	query := `
		INSERT INTO payments (
			id, tenant, external_payment_id, amount, memo, state,
			external_tx_id, error_detail, metadata, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	s.logQuery(ctx, query)
	_, err = s.pool.Exec(ctx, query,
		uuid.UUID(record.ID),
		record.Tenant,
		record.ExternalPaymentID,
		record.Amount.String(),
		record.Memo,
		string(record.State),
		record.ExternalTxID,
		record.ErrorDetail,
		metadata,
		record.CreatedAt,
		record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, paymentID id.PaymentID) (*models.PaymentRecord, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	s.logQuery(ctx, query)
	record, err := scanPayment(s.pool.QueryRow(ctx, query, uuid.UUID(paymentID)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find payment: %w", err)
	}
	return record, nil
}

// Execute loads the record under FOR UPDATE, validates, applies, and persists
// in one transaction. A validate error rolls back and returns the record as
// it currently stands.
func (s *Postgres) Execute(ctx context.Context, paymentID id.PaymentID,
	validate func(*models.PaymentRecord) error,
	apply func(*models.PaymentRecord)) (*models.PaymentRecord, error) {

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transition: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1 FOR UPDATE`
	s.logQuery(ctx, query)
	record, err := scanPayment(tx.QueryRow(ctx, query, uuid.UUID(paymentID)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("lock payment: %w", err)
	}

	if err := validate(record); err != nil {
		return record, err
	}
	apply(record)

	metadata, err := json.Marshal(record.Metadata)
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}

	update := `
		UPDATE payments SET
			external_payment_id = $2, state = $3, external_tx_id = $4,
			error_detail = $5, metadata = $6, updated_at = $7,
			approved_at = $8, completed_at = $9, cancelled_at = $10, failed_at = $11
		WHERE id = $1
	`
	s.logQuery(ctx, update)
	_, err = tx.Exec(ctx, update,
		uuid.UUID(record.ID),
		record.ExternalPaymentID,
		string(record.State),
		record.ExternalTxID,
		record.ErrorDetail,
		metadata,
		record.UpdatedAt,
		record.ApprovedAt,
		record.CompletedAt,
		record.CancelledAt,
		record.FailedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("update payment: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transition: %w", err)
	}
	return record, nil
}

func scanPayment(row pgx.Row) (*models.PaymentRecord, error) {
	var (
		record   models.PaymentRecord
		recordID uuid.UUID
		amount   string
		state    string
		metadata []byte
	)
	err := row.Scan(
		&recordID,
		&record.Tenant,
		&record.ExternalPaymentID,
		&amount,
		&record.Memo,
		&state,
		&record.ExternalTxID,
		&record.ErrorDetail,
		&metadata,
		&record.CreatedAt,
		&record.UpdatedAt,
		&record.ApprovedAt,
		&record.CompletedAt,
		&record.CancelledAt,
		&record.FailedAt,
	)
	if err != nil {
		return nil, err
	}

	record.ID = id.PaymentID(recordID)
	record.State = models.State(state)
	record.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("parse amount: %w", err)
	}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &record.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshal metadata: %w", err)
		}
	}
	return &record, nil
}
