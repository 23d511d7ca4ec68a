package store

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"polydom/internal/payment/models"
	id "polydom/pkg/domain"
	"polydom/pkg/platform/sentinel"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *Memory
	ctx   context.Context
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = NewMemory()
	s.ctx = context.Background()
}

func (s *MemoryStoreSuite) newRecord() *models.PaymentRecord {
	rec, err := models.NewPaymentRecord("fundx", decimal.NewFromInt(10), "test", time.Now().UTC())
	s.Require().NoError(err)
	return rec
}

func (s *MemoryStoreSuite) TestCreateAndFind() {
	rec := s.newRecord()
	s.Require().NoError(s.store.Create(s.ctx, rec))

	found, err := s.store.FindByID(s.ctx, rec.ID)
	s.Require().NoError(err)
	s.Equal(rec.ID, found.ID)
	s.Equal(models.StatePending, found.State)
}

func (s *MemoryStoreSuite) TestCreateDuplicate() {
	rec := s.newRecord()
	s.Require().NoError(s.store.Create(s.ctx, rec))
	s.ErrorIs(s.store.Create(s.ctx, rec), sentinel.ErrConflict)
}

func (s *MemoryStoreSuite) TestFindUnknown() {
	_, err := s.store.FindByID(s.ctx, id.NewPaymentID())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *MemoryStoreSuite) TestFindReturnsCopy() {
	rec := s.newRecord()
	s.Require().NoError(s.store.Create(s.ctx, rec))

	found, err := s.store.FindByID(s.ctx, rec.ID)
	s.Require().NoError(err)
	found.State = models.StateCompleted

	again, err := s.store.FindByID(s.ctx, rec.ID)
	s.Require().NoError(err)
	s.Equal(models.StatePending, again.State)
}

func (s *MemoryStoreSuite) TestExecuteAppliesTransition() {
	rec := s.newRecord()
	s.Require().NoError(s.store.Create(s.ctx, rec))

	now := time.Now().UTC()
	updated, err := s.store.Execute(s.ctx, rec.ID,
		func(p *models.PaymentRecord) error { return p.CanApprove(true) },
		func(p *models.PaymentRecord) { p.ApplyApproval(true, now) },
	)
	s.Require().NoError(err)
	s.Equal(models.StateApproved, updated.State)

	found, err := s.store.FindByID(s.ctx, rec.ID)
	s.Require().NoError(err)
	s.Equal(models.StateApproved, found.State)
}

func (s *MemoryStoreSuite) TestExecuteValidateErrorLeavesRecordUntouched() {
	rec := s.newRecord()
	s.Require().NoError(s.store.Create(s.ctx, rec))

	current, err := s.store.Execute(s.ctx, rec.ID,
		func(p *models.PaymentRecord) error { return p.CanComplete("abc123") },
		func(p *models.PaymentRecord) { p.ApplyCompletion("abc123", time.Now()) },
	)
	s.Require().Error(err)
	s.Require().NotNil(current, "current record must come back with the validate error")
	s.Equal(models.StatePending, current.State)

	found, err := s.store.FindByID(s.ctx, rec.ID)
	s.Require().NoError(err)
	s.Equal(models.StatePending, found.State)
}

func (s *MemoryStoreSuite) TestExecuteUnknownID() {
	_, err := s.store.Execute(s.ctx, id.NewPaymentID(),
		func(*models.PaymentRecord) error { return nil },
		func(*models.PaymentRecord) {},
	)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func TestMemoryProviderIsolation(t *testing.T) {
	ctx := context.Background()
	provider := NewMemoryProvider(nil)

	fundxStore, err := provider.StoreFor(ctx, "fundx")
	if err != nil {
		t.Fatalf("StoreFor(fundx): %v", err)
	}
	estatiaStore, err := provider.StoreFor(ctx, "estatia")
	if err != nil {
		t.Fatalf("StoreFor(estatia): %v", err)
	}
	if fundxStore == estatiaStore {
		t.Fatal("tenants must not share a store")
	}

	rec, err := models.NewPaymentRecord("fundx", decimal.NewFromInt(1), "", time.Now().UTC())
	if err != nil {
		t.Fatal(err)
	}
	if err := fundxStore.Create(ctx, rec); err != nil {
		t.Fatal(err)
	}
	if _, err := estatiaStore.FindByID(ctx, rec.ID); err == nil {
		t.Fatal("record leaked across tenants")
	}

	again, err := provider.StoreFor(ctx, "fundx")
	if err != nil {
		t.Fatal(err)
	}
	if again != fundxStore {
		t.Fatal("same tenant must get the same store")
	}
}

func TestMemoryProviderRejectsUnknownTenant(t *testing.T) {
	provider := NewMemoryProvider(func(slug string) bool { return slug == "fundx" })

	if _, err := provider.StoreFor(context.Background(), "nope"); err == nil {
		t.Fatal("expected error for unknown tenant")
	}
	if _, err := provider.StoreFor(context.Background(), "fundx"); err != nil {
		t.Fatalf("valid tenant rejected: %v", err)
	}
}
