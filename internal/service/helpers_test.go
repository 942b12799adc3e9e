package service_test

import (
	"context"
	"testing"

	"youthorg-backend-trusted/internal/domain"
	"youthorg-backend-trusted/internal/repository/memory"

	"github.com/stretchr/testify/require"
)

func mustPrincipal(t *testing.T, id string, role domain.Role, unit domain.OrgUnit) *domain.Principal {
	t.Helper()
	p, err := domain.NewPrincipal(id, role, unit)
	require.NoError(t, err)
	return p
}

func rootAdmin(t *testing.T) *domain.Principal {
	return mustPrincipal(t, "root", domain.RoleRootAdmin, "")
}

func leaderOf(t *testing.T, unit domain.OrgUnit) *domain.Principal {
	return mustPrincipal(t, "leader-"+string(unit), domain.RoleUnitLeader, unit)
}

func seedMembers(t *testing.T, store *memory.Store, members ...domain.Member) {
	t.Helper()
	for i := range members {
		require.NoError(t, store.MemberRepository.Create(context.Background(), &members[i]))
	}
}

func ledgerLen(t *testing.T, store *memory.Store) int {
	t.Helper()
	all, err := store.LedgerRepository.All(context.Background())
	require.NoError(t, err)
	return len(all)
}
