package repository

import (
	"context"

	"youthorg-backend-trusted/internal/domain"
)

// MemberRepository stores the roster. Every member belongs to exactly one unit;
// Update replaces the whole record so a unit change is never half applied.
type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) error
	GetByID(ctx context.Context, id string) (*domain.Member, error)
	Update(ctx context.Context, member *domain.Member) error
	List(ctx context.Context) ([]domain.Member, error)
	ListByUnits(ctx context.Context, units []domain.OrgUnit) ([]domain.Member, error)
}

// LedgerRepository stores transactions in insertion order. The store only grows,
// except for status updates.
type LedgerRepository interface {
	Append(ctx context.Context, tx *domain.Transaction) error
	// AppendBatch stores all entries or none of them.
	AppendBatch(ctx context.Context, txs []domain.Transaction) error
	UpdateStatus(ctx context.Context, id string, status domain.TransactionStatus) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	// All returns a snapshot of every entry in insertion order.
	All(ctx context.Context) ([]domain.Transaction, error)
}
