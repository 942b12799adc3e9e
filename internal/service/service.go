package service

import (
	"context"
	"sync"
	"time"

	"youthorg-backend-trusted/internal/domain"

	"github.com/shopspring/decimal"
)

type MemberService interface {
	ListVisible(ctx context.Context, p *domain.Principal) ([]domain.Member, error)
	ListByUnit(ctx context.Context, p *domain.Principal, unit domain.OrgUnit) ([]domain.Member, error)
	Get(ctx context.Context, p *domain.Principal, id string) (*domain.Member, error)
	Create(ctx context.Context, p *domain.Principal, member *domain.Member) error
	Update(ctx context.Context, p *domain.Principal, member *domain.Member) error
	// CanAccess answers the member permission check against the stored unit.
	// Unknown members yield false.
	CanAccess(ctx context.Context, p *domain.Principal, id string) bool
}

type LedgerService interface {
	ListVisible(ctx context.Context, p *domain.Principal, filter domain.LedgerFilter) ([]domain.Transaction, error)
	Get(ctx context.Context, p *domain.Principal, id string) (*domain.Transaction, error)
	Record(ctx context.Context, p *domain.Principal, draft domain.TransactionDraft) (*domain.Transaction, error)
	SetStatus(ctx context.Context, p *domain.Principal, id string, status domain.TransactionStatus) (*domain.Transaction, error)
	Summary(ctx context.Context, p *domain.Principal, scope domain.LedgerScope, unit domain.OrgUnit) (*domain.FundSummary, error)
}

// CollectionRequest describes one bulk collection: the same amount taken from each
// selected member of a unit.
type CollectionRequest struct {
	Unit            domain.OrgUnit  `json:"unit"`
	AmountPerMember decimal.Decimal `json:"amount_per_member"`
	Date            time.Time       `json:"date"`
	Description     string          `json:"description"`
	Category        string          `json:"category,omitempty"`
	MemberIDs       []string        `json:"member_ids"`
}

type CollectionService interface {
	Collect(ctx context.Context, p *domain.Principal, req CollectionRequest) ([]domain.Transaction, error)
}

// WriteLock is the single mutual-exclusion boundary shared by every service that
// mutates the roster or the ledger. Reads do not take it.
type WriteLock struct {
	mu sync.Mutex
}

func NewWriteLock() *WriteLock {
	return &WriteLock{}
}

func (l *WriteLock) run(fn func() error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn()
}

func orNewLock(l *WriteLock) *WriteLock {
	if l == nil {
		return NewWriteLock()
	}
	return l
}
