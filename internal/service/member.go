package service

import (
	"context"
	"errors"
	"fmt"

	"youthorg-backend-trusted/internal/access"
	"youthorg-backend-trusted/internal/domain"
	"youthorg-backend-trusted/internal/logger"
	"youthorg-backend-trusted/internal/repository"
)

type memberService struct {
	memberRepo repository.MemberRepository
	lock       *WriteLock
}

func NewMemberService(memberRepo repository.MemberRepository, lock *WriteLock) MemberService {
	return &memberService{memberRepo: memberRepo, lock: orNewLock(lock)}
}

// ListVisible returns the members p may see: the whole roster, one unit, or only
// the principal's own record.
func (s *memberService) ListVisible(ctx context.Context, p *domain.Principal) ([]domain.Member, error) {
	if p == nil {
		return nil, nil
	}
	switch p.Role.Class() {
	case domain.RoleClassUnrestricted:
		return s.memberRepo.List(ctx)
	case domain.RoleClassSelfScoped:
		m, err := s.memberRepo.GetByID(ctx, p.ID)
		if errors.Is(err, domain.ErrNotFound) {
			// a member login without a roster record simply sees nothing
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load own record: %w", err)
		}
		return []domain.Member{*m}, nil
	default:
		units := access.VisibleUnits(p)
		if len(units) == 0 {
			return nil, nil
		}
		return s.memberRepo.ListByUnits(ctx, units)
	}
}

func (s *memberService) ListByUnit(ctx context.Context, p *domain.Principal, unit domain.OrgUnit) ([]domain.Member, error) {
	if !unit.IsValid() {
		return nil, fmt.Errorf("%w: unknown unit %q", domain.ErrValidation, unit)
	}
	if !access.CanAccessUnit(p, unit) {
		return nil, fmt.Errorf("%w: roster of %s", domain.ErrPermissionDenied, unit)
	}
	return s.memberRepo.ListByUnits(ctx, []domain.OrgUnit{unit})
}

func (s *memberService) Get(ctx context.Context, p *domain.Principal, id string) (*domain.Member, error) {
	m, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanAccessMember(p, m.ID, m.Unit) {
		return nil, fmt.Errorf("%w: member %s", domain.ErrPermissionDenied, id)
	}
	return m, nil
}

func (s *memberService) CanAccess(ctx context.Context, p *domain.Principal, id string) bool {
	m, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		return false
	}
	return access.CanAccessMember(p, m.ID, m.Unit)
}

func (s *memberService) Create(ctx context.Context, p *domain.Principal, m *domain.Member) error {
	if err := validateMember(m); err != nil {
		return err
	}
	if !access.CanAccessUnit(p, m.Unit) {
		logger.WithPrincipal(p).Warn("Rejected member creation", "unit", m.Unit)
		return fmt.Errorf("%w: roster of %s", domain.ErrPermissionDenied, m.Unit)
	}
	if m.Status == "" {
		m.Status = domain.MemberStatusActive
	}
	return s.lock.run(func() error {
		if err := s.memberRepo.Create(ctx, m); err != nil {
			return err
		}
		logger.WithPrincipal(p).Info("Created member", "memberID", m.ID, "unit", m.Unit)
		return nil
	})
}

// Update replaces the stored record with m. Moving a member to another unit needs
// roster access to both the current and the new unit.
func (s *memberService) Update(ctx context.Context, p *domain.Principal, m *domain.Member) error {
	if err := validateMember(m); err != nil {
		return err
	}
	return s.lock.run(func() error {
		current, err := s.memberRepo.GetByID(ctx, m.ID)
		if err != nil {
			return err
		}
		if !access.CanAccessMember(p, current.ID, current.Unit) {
			return fmt.Errorf("%w: member %s", domain.ErrPermissionDenied, m.ID)
		}
		if m.Unit != current.Unit && !(access.CanAccessUnit(p, current.Unit) && access.CanAccessUnit(p, m.Unit)) {
			logger.WithPrincipal(p).Warn("Rejected unit reassignment", "memberID", m.ID, "from", current.Unit, "to", m.Unit)
			return fmt.Errorf("%w: move member %s to %s", domain.ErrPermissionDenied, m.ID, m.Unit)
		}
		if m.Status == "" {
			m.Status = current.Status
		}
		if err := s.memberRepo.Update(ctx, m); err != nil {
			return err
		}
		logger.WithPrincipal(p).Info("Updated member", "memberID", m.ID, "unit", m.Unit)
		return nil
	})
}

func validateMember(m *domain.Member) error {
	if m == nil {
		return fmt.Errorf("%w: member is required", domain.ErrValidation)
	}
	if !m.Unit.IsValid() {
		return fmt.Errorf("%w: unknown unit %q", domain.ErrValidation, m.Unit)
	}
	if m.FullName == "" {
		return fmt.Errorf("%w: full name is required", domain.ErrValidation)
	}
	return nil
}
