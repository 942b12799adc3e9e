package service

import (
	"context"
	"fmt"
	"time"

	"youthorg-backend-trusted/internal/access"
	"youthorg-backend-trusted/internal/domain"
	"youthorg-backend-trusted/internal/logger"
	"youthorg-backend-trusted/internal/repository"
)

type ledgerService struct {
	ledgerRepo repository.LedgerRepository
	lock       *WriteLock
	now        func() time.Time
}

func NewLedgerService(ledgerRepo repository.LedgerRepository, lock *WriteLock) LedgerService {
	return &ledgerService{ledgerRepo: ledgerRepo, lock: orNewLock(lock), now: time.Now}
}

// ListVisible returns, in insertion order, every entry whose fund p may see and that
// matches filter.
func (s *ledgerService) ListVisible(ctx context.Context, p *domain.Principal, filter domain.LedgerFilter) ([]domain.Transaction, error) {
	all, err := s.ledgerRepo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	visible := make([]domain.Transaction, 0, len(all))
	for i := range all {
		t := &all[i]
		if access.CanAccessLedgerScope(p, t.Scope, t.TargetUnit) && filter.Match(t) {
			visible = append(visible, *t)
		}
	}
	return visible, nil
}

func (s *ledgerService) Get(ctx context.Context, p *domain.Principal, id string) (*domain.Transaction, error) {
	tx, err := s.ledgerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanAccessLedgerScope(p, tx.Scope, tx.TargetUnit) {
		return nil, fmt.Errorf("%w: transaction %s", domain.ErrPermissionDenied, id)
	}
	return tx, nil
}

// Record validates and authorizes draft, then appends it as an approved entry.
func (s *ledgerService) Record(ctx context.Context, p *domain.Principal, draft domain.TransactionDraft) (*domain.Transaction, error) {
	log := logger.WithPrincipal(p).With("method", "ledgerService.Record", "scope", draft.Scope, "unit", draft.TargetUnit)

	if err := draft.Validate(); err != nil {
		log.Warn("Rejected ledger entry", "error", err)
		return nil, err
	}
	if !access.CanAuthorLedgerEntry(p, draft.Scope, draft.TargetUnit) {
		log.Warn("Rejected ledger entry outside granted scope")
		return nil, fmt.Errorf("%w: cannot record %s entries for %q", domain.ErrPermissionDenied, draft.Scope, draft.TargetUnit)
	}

	tx := s.newEntry(p, draft)
	err := s.lock.run(func() error {
		return s.ledgerRepo.Append(ctx, tx)
	})
	if err != nil {
		log.Error("Failed to append ledger entry", "error", err)
		return nil, fmt.Errorf("failed to record transaction: %w", err)
	}

	log.Info("Recorded ledger entry", "transactionID", tx.ID, "amount", tx.Amount.String(), "direction", tx.Direction)
	return tx, nil
}

// SetStatus moves an entry to status. Setting the current status again is a no-op.
func (s *ledgerService) SetStatus(ctx context.Context, p *domain.Principal, id string, status domain.TransactionStatus) (*domain.Transaction, error) {
	log := logger.WithPrincipal(p).With("method", "ledgerService.SetStatus", "transactionID", id, "status", status)

	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, status)
	}

	var updated *domain.Transaction
	err := s.lock.run(func() error {
		tx, err := s.ledgerRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !access.CanAccessLedgerScope(p, tx.Scope, tx.TargetUnit) {
			return fmt.Errorf("%w: transaction %s", domain.ErrPermissionDenied, id)
		}
		if tx.Status == status {
			updated = tx
			return nil
		}
		if err := s.ledgerRepo.UpdateStatus(ctx, id, status); err != nil {
			return err
		}
		tx.Status = status
		updated = tx
		log.Info("Updated ledger entry status")
		return nil
	})
	if err != nil {
		log.Warn("Status change rejected", "error", err)
		return nil, err
	}
	return updated, nil
}

// Summary totals the approved entries of one fund.
func (s *ledgerService) Summary(ctx context.Context, p *domain.Principal, scope domain.LedgerScope, unit domain.OrgUnit) (*domain.FundSummary, error) {
	if err := domain.ValidateScope(scope, unit); err != nil {
		return nil, err
	}
	if !access.CanAccessLedgerScope(p, scope, unit) {
		return nil, fmt.Errorf("%w: %s fund %q", domain.ErrPermissionDenied, scope, unit)
	}

	all, err := s.ledgerRepo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	summary := domain.Summarize(all, scope, unit)
	return &summary, nil
}

func (s *ledgerService) newEntry(p *domain.Principal, d domain.TransactionDraft) *domain.Transaction {
	date := d.Date
	if date.IsZero() {
		date = s.now()
	}
	return &domain.Transaction{
		Amount:      d.Amount,
		Direction:   d.Direction,
		Scope:       d.Scope,
		TargetUnit:  d.TargetUnit,
		Status:      domain.TransactionStatusApproved,
		Category:    d.Category,
		Description: d.Description,
		Date:        date,
		CreatedBy:   p.ID,
	}
}
