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

type collectionService struct {
	ledgerRepo repository.LedgerRepository
	memberRepo repository.MemberRepository
	lock       *WriteLock
	now        func() time.Time
}

func NewCollectionService(ledgerRepo repository.LedgerRepository, memberRepo repository.MemberRepository, lock *WriteLock) CollectionService {
	return &collectionService{
		ledgerRepo: ledgerRepo,
		memberRepo: memberRepo,
		lock:       orNewLock(lock),
		now:        time.Now,
	}
}

// Collect creates one approved income entry per selected member of req.Unit, in the
// order the members were given. Either every entry is stored or none is.
func (s *collectionService) Collect(ctx context.Context, p *domain.Principal, req CollectionRequest) ([]domain.Transaction, error) {
	log := logger.WithPrincipal(p).With("method", "collectionService.Collect", "unit", req.Unit, "members", len(req.MemberIDs))

	if err := validateCollection(req); err != nil {
		log.Warn("Rejected collection", "error", err)
		return nil, err
	}
	// one authorization decision covers the whole batch
	if !access.CanAuthorLedgerEntry(p, domain.ScopeUnit, req.Unit) {
		log.Warn("Rejected collection outside granted scope")
		return nil, fmt.Errorf("%w: cannot collect for unit %q", domain.ErrPermissionDenied, req.Unit)
	}

	date := req.Date
	if date.IsZero() {
		date = s.now()
	}

	var batch []domain.Transaction
	err := s.lock.run(func() error {
		// membership is read from the roster, never trusted from the request
		members := make([]*domain.Member, 0, len(req.MemberIDs))
		for _, id := range req.MemberIDs {
			m, err := s.memberRepo.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if m.Unit != req.Unit {
				return fmt.Errorf("%w: member %s does not belong to unit %s", domain.ErrValidation, id, req.Unit)
			}
			members = append(members, m)
		}

		batch = make([]domain.Transaction, 0, len(members))
		for _, m := range members {
			batch = append(batch, domain.Transaction{
				Amount:      req.AmountPerMember,
				Direction:   domain.DirectionIncome,
				Scope:       domain.ScopeUnit,
				TargetUnit:  req.Unit,
				Status:      domain.TransactionStatusApproved,
				Category:    req.Category,
				Description: collectionDescription(req.Description, m),
				MemberID:    m.ID,
				Date:        date,
				CreatedBy:   p.ID,
			})
		}
		return s.ledgerRepo.AppendBatch(ctx, batch)
	})
	if err != nil {
		log.Warn("Collection aborted, nothing recorded", "error", err)
		return nil, err
	}

	log.Info("Recorded collection", "entries", len(batch), "amountPerMember", req.AmountPerMember.String())
	return batch, nil
}

func validateCollection(req CollectionRequest) error {
	if err := domain.ValidateAmount(req.AmountPerMember); err != nil {
		return err
	}
	if err := domain.ValidateScope(domain.ScopeUnit, req.Unit); err != nil {
		return err
	}
	if len(req.MemberIDs) == 0 {
		return fmt.Errorf("%w: no members selected", domain.ErrValidation)
	}
	seen := make(map[string]bool, len(req.MemberIDs))
	for _, id := range req.MemberIDs {
		if id == "" {
			return fmt.Errorf("%w: empty member id", domain.ErrValidation)
		}
		if seen[id] {
			return fmt.Errorf("%w: member %s selected twice", domain.ErrValidation, id)
		}
		seen[id] = true
	}
	return nil
}

func collectionDescription(shared string, m *domain.Member) string {
	if shared == "" {
		return m.DisplayName()
	}
	return shared + " - " + m.DisplayName()
}
