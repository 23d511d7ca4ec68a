// Package store provides the payment record stores: an in-memory
// implementation for tests and store-less deployments, and a postgres
// implementation bound to one tenant's pool.
package store

import (
	"context"
	"sync"

	"polydom/internal/payment/models"
	id "polydom/pkg/domain"
	"polydom/pkg/platform/sentinel"
)

// Memory keeps payment records in process memory. One mutex serializes all
// transitions, which gives Execute the same atomicity the postgres store gets
// from row locking.
type Memory struct {
	mu      sync.Mutex
	records map[id.PaymentID]*models.PaymentRecord
}

func NewMemory() *Memory {
	return &Memory{records: make(map[id.PaymentID]*models.PaymentRecord)}
}

func (s *Memory) Create(_ context.Context, record *models.PaymentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[record.ID]; exists {
		return sentinel.ErrConflict
	}
	s.records[record.ID] = record.Clone()
	return nil
}

func (s *Memory) FindByID(_ context.Context, paymentID id.PaymentID) (*models.PaymentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.records[paymentID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return record.Clone(), nil
}

// Execute runs validate and apply under the store lock. On a validate error
// the stored record stays untouched and a copy is returned with the error so
// callers can inspect the current state.
func (s *Memory) Execute(_ context.Context, paymentID id.PaymentID,
	validate func(*models.PaymentRecord) error,
	apply func(*models.PaymentRecord)) (*models.PaymentRecord, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[paymentID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}

	work := record.Clone()
	if err := validate(work); err != nil {
		return record.Clone(), err
	}
	apply(work)
	s.records[paymentID] = work
	return work.Clone(), nil
}
