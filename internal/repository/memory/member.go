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

type memberRepository struct {
	mu      sync.RWMutex
	members map[string]domain.Member
	order   []string
}

func NewMemberRepository() repository.MemberRepository {
	return &memberRepository{members: make(map[string]domain.Member)}
}

func (r *memberRepository) Create(ctx context.Context, m *domain.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if _, exists := r.members[m.ID]; exists {
		return fmt.Errorf("%w: member %s already exists", domain.ErrValidation, m.ID)
	}
	now := time.Now().UTC()
	m.CreatedOn = now
	m.UpdatedOn = now
	r.members[m.ID] = *m
	r.order = append(r.order, m.ID)
	return nil
}

func (r *memberRepository) GetByID(ctx context.Context, id string) (*domain.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.members[id]
	if !ok {
		return nil, fmt.Errorf("%w: member %s", domain.ErrNotFound, id)
	}
	return &m, nil
}

func (r *memberRepository) Update(ctx context.Context, m *domain.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.members[m.ID]
	if !ok {
		return fmt.Errorf("%w: member %s", domain.ErrNotFound, m.ID)
	}
	m.CreatedOn = old.CreatedOn
	m.UpdatedOn = time.Now().UTC()
	r.members[m.ID] = *m
	return nil
}

func (r *memberRepository) List(ctx context.Context) ([]domain.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Member, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.members[id])
	}
	return out, nil
}

func (r *memberRepository) ListByUnits(ctx context.Context, units []domain.OrgUnit) ([]domain.Member, error) {
	wanted := make(map[domain.OrgUnit]bool, len(units))
	for _, u := range units {
		wanted[u] = true
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Member
	for _, id := range r.order {
		if m := r.members[id]; wanted[m.Unit] {
			out = append(out, m)
		}
	}
	return out, nil
}
