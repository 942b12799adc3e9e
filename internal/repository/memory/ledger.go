package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"youthorg-backend-trusted/internal/domain"
	"youthorg-backend-trusted/internal/repository"

	"github.com/google/uuid"
)

type ledgerRepository struct {
	mu    sync.RWMutex
	txs   []domain.Transaction
	index map[string]int
}

func NewLedgerRepository() repository.LedgerRepository {
	return &ledgerRepository{index: make(map[string]int)}
}

func (r *ledgerRepository) Append(ctx context.Context, tx *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.prepare(tx, nil); err != nil {
		return err
	}
	r.push(*tx)
	return nil
}

func (r *ledgerRepository) AppendBatch(ctx context.Context, txs []domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// ids are checked against the store and the batch itself before anything is written
	seen := make(map[string]bool, len(txs))
	for i := range txs {
		if err := r.prepare(&txs[i], seen); err != nil {
			return err
		}
		seen[txs[i].ID] = true
	}
	for i := range txs {
		r.push(txs[i])
	}
	return nil
}

func (r *ledgerRepository) UpdateStatus(ctx context.Context, id string, status domain.TransactionStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.index[id]
	if !ok {
		return fmt.Errorf("%w: transaction %s", domain.ErrNotFound, id)
	}
	r.txs[i].Status = status
	return nil
}

func (r *ledgerRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: transaction %s", domain.ErrNotFound, id)
	}
	tx := r.txs[i]
	return &tx, nil
}

func (r *ledgerRepository) All(ctx context.Context) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Transaction, len(r.txs))
	copy(out, r.txs)
	return out, nil
}

func (r *ledgerRepository) prepare(tx *domain.Transaction, batch map[string]bool) error {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if _, exists := r.index[tx.ID]; exists || batch[tx.ID] {
		return fmt.Errorf("%w: duplicate transaction id %s", domain.ErrValidation, tx.ID)
	}
	if tx.CreatedOn.IsZero() {
		tx.CreatedOn = time.Now().UTC()
	}
	return nil
}

func (r *ledgerRepository) push(tx domain.Transaction) {
	r.index[tx.ID] = len(r.txs)
	r.txs = append(r.txs, tx)
}
