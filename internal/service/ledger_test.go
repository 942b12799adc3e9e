package service_test

import (
	"context"
	"testing"

	"youthorg-backend-trusted/internal/domain"
	"youthorg-backend-trusted/internal/repository/memory"
	"youthorg-backend-trusted/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func generalDraft(amount int64) domain.TransactionDraft {
	return domain.TransactionDraft{
		Amount:      decimal.NewFromInt(amount),
		Direction:   domain.DirectionIncome,
		Scope:       domain.ScopeGeneral,
		Description: "donation",
	}
}

func unitDraft(unit domain.OrgUnit, amount int64) domain.TransactionDraft {
	return domain.TransactionDraft{
		Amount:      decimal.NewFromInt(amount),
		Direction:   domain.DirectionExpense,
		Scope:       domain.ScopeUnit,
		TargetUnit:  unit,
		Description: "camp supplies",
	}
}

func TestLedgerService_Record(t *testing.T) {
	ctx := context.Background()

	t.Run("RootRecordsGeneralEntry", func(t *testing.T) {
		store := memory.NewStore()
		svc := service.NewLedgerService(store.LedgerRepository, nil)

		tx, err := svc.Record(ctx, rootAdmin(t), generalDraft(5000))
		require.NoError(t, err)
		assert.NotEmpty(t, tx.ID)
		assert.Equal(t, domain.TransactionStatusApproved, tx.Status)
		assert.Equal(t, "root", tx.CreatedBy)
		assert.False(t, tx.Date.IsZero())
		assert.Equal(t, 1, ledgerLen(t, store))
	})

	t.Run("LeaderDeniedGeneralEntry", func(t *testing.T) {
		store := memory.NewStore()
		svc := service.NewLedgerService(store.LedgerRepository, nil)

		tx, err := svc.Record(ctx, leaderOf(t, domain.UnitAuNhi), generalDraft(5000))
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
		assert.Nil(t, tx)
		assert.Zero(t, ledgerLen(t, store))
	})

	t.Run("LeaderRecordsOwnUnitOnly", func(t *testing.T) {
		store := memory.NewStore()
		svc := service.NewLedgerService(store.LedgerRepository, nil)
		leader := leaderOf(t, domain.UnitAuNhi)

		_, err := svc.Record(ctx, leader, unitDraft(domain.UnitAuNhi, 2000))
		require.NoError(t, err)

		_, err = svc.Record(ctx, leader, unitDraft(domain.UnitHiepSi, 2000))
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
		assert.Equal(t, 1, ledgerLen(t, store))
	})

	t.Run("MemberDenied", func(t *testing.T) {
		store := memory.NewStore()
		svc := service.NewLedgerService(store.LedgerRepository, nil)
		member := mustPrincipal(t, "7", domain.RoleMember, "")

		_, err := svc.Record(ctx, member, unitDraft(domain.UnitAuNhi, 2000))
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})

	t.Run("ValidationErrors", func(t *testing.T) {
		store := memory.NewStore()
		svc := service.NewLedgerService(store.LedgerRepository, nil)

		_, err := svc.Record(ctx, rootAdmin(t), generalDraft(0))
		assert.ErrorIs(t, err, domain.ErrValidation)

		missingUnit := unitDraft("", 100)
		_, err = svc.Record(ctx, rootAdmin(t), missingUnit)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Zero(t, ledgerLen(t, store))
	})

	t.Run("RepositoryFailure", func(t *testing.T) {
		repo := new(MockLedgerRepo)
		repo.On("Append", ctx, mock.AnythingOfType("*domain.Transaction")).Return(assert.AnError)
		svc := service.NewLedgerService(repo, nil)

		_, err := svc.Record(ctx, rootAdmin(t), generalDraft(100))
		assert.ErrorIs(t, err, assert.AnError)
		repo.AssertExpectations(t)
	})
}

func TestLedgerService_ListVisible(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := service.NewLedgerService(store.LedgerRepository, nil)
	root := rootAdmin(t)

	var ids []string
	for _, d := range []domain.TransactionDraft{
		generalDraft(100),
		unitDraft(domain.UnitAuNhi, 200),
		generalDraft(300),
		unitDraft(domain.UnitHiepSi, 400),
		unitDraft(domain.UnitAuNhi, 500),
	} {
		tx, err := svc.Record(ctx, root, d)
		require.NoError(t, err)
		ids = append(ids, tx.ID)
	}

	t.Run("UnrestrictedSeesAllInOrder", func(t *testing.T) {
		txs, err := svc.ListVisible(ctx, mustPrincipal(t, "f", domain.RoleFamilyHead, ""), domain.LedgerFilter{})
		require.NoError(t, err)
		require.Len(t, txs, 5)
		for i, tx := range txs {
			assert.Equal(t, ids[i], tx.ID)
		}
	})

	t.Run("LeaderSeesOwnUnitFund", func(t *testing.T) {
		txs, err := svc.ListVisible(ctx, leaderOf(t, domain.UnitAuNhi), domain.LedgerFilter{})
		require.NoError(t, err)
		require.Len(t, txs, 2)
		assert.Equal(t, ids[1], txs[0].ID)
		assert.Equal(t, ids[4], txs[1].ID)
	})

	t.Run("MemberSeesNothing", func(t *testing.T) {
		txs, err := svc.ListVisible(ctx, mustPrincipal(t, "7", domain.RoleMember, ""), domain.LedgerFilter{})
		require.NoError(t, err)
		assert.Empty(t, txs)
	})

	t.Run("Filter", func(t *testing.T) {
		txs, err := svc.ListVisible(ctx, root, domain.LedgerFilter{Scope: domain.ScopeGeneral})
		require.NoError(t, err)
		assert.Len(t, txs, 2)

		txs, err = svc.ListVisible(ctx, root, domain.LedgerFilter{Unit: domain.UnitHiepSi})
		require.NoError(t, err)
		require.Len(t, txs, 1)
		assert.Equal(t, ids[3], txs[0].ID)
	})

	t.Run("RepositoryFailure", func(t *testing.T) {
		repo := new(MockLedgerRepo)
		repo.On("All", ctx).Return(nil, assert.AnError)
		_, err := service.NewLedgerService(repo, nil).ListVisible(ctx, root, domain.LedgerFilter{})
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestLedgerService_SetStatus(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := service.NewLedgerService(store.LedgerRepository, nil)
	root := rootAdmin(t)

	general, err := svc.Record(ctx, root, generalDraft(100))
	require.NoError(t, err)
	unitTx, err := svc.Record(ctx, root, unitDraft(domain.UnitAuNhi, 100))
	require.NoError(t, err)

	t.Run("Idempotent", func(t *testing.T) {
		first, err := svc.SetStatus(ctx, root, general.ID, domain.TransactionStatusRejected)
		require.NoError(t, err)
		second, err := svc.SetStatus(ctx, root, general.ID, domain.TransactionStatusRejected)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 2, ledgerLen(t, store))
		got, _ := store.LedgerRepository.GetByID(ctx, general.ID)
		assert.Equal(t, domain.TransactionStatusRejected, got.Status)
	})

	t.Run("SameStatusSkipsWrite", func(t *testing.T) {
		repo := new(MockLedgerRepo)
		current := &domain.Transaction{ID: "t1", Scope: domain.ScopeGeneral, Status: domain.TransactionStatusApproved}
		repo.On("GetByID", ctx, "t1").Return(current, nil)

		tx, err := service.NewLedgerService(repo, nil).SetStatus(ctx, root, "t1", domain.TransactionStatusApproved)
		require.NoError(t, err)
		assert.Equal(t, domain.TransactionStatusApproved, tx.Status)
		repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := svc.SetStatus(ctx, root, "missing", domain.TransactionStatusApproved)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("LeaderOnOwnUnitEntry", func(t *testing.T) {
		tx, err := svc.SetStatus(ctx, leaderOf(t, domain.UnitAuNhi), unitTx.ID, domain.TransactionStatusPending)
		require.NoError(t, err)
		assert.Equal(t, domain.TransactionStatusPending, tx.Status)
	})

	t.Run("LeaderDeniedGeneralEntry", func(t *testing.T) {
		_, err := svc.SetStatus(ctx, leaderOf(t, domain.UnitAuNhi), general.ID, domain.TransactionStatusApproved)
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})

	t.Run("LeaderDeniedOtherUnit", func(t *testing.T) {
		_, err := svc.SetStatus(ctx, leaderOf(t, domain.UnitHiepSi), unitTx.ID, domain.TransactionStatusApproved)
		assert.ErrorIs(t, err, domain.ErrPermissionDenied)
	})

	t.Run("UnknownStatus", func(t *testing.T) {
		_, err := svc.SetStatus(ctx, root, general.ID, "ARCHIVED")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestLedgerService_Get(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := service.NewLedgerService(store.LedgerRepository, nil)

	tx, err := svc.Record(ctx, rootAdmin(t), generalDraft(100))
	require.NoError(t, err)

	got, err := svc.Get(ctx, rootAdmin(t), tx.ID)
	require.NoError(t, err)
	assert.Equal(t, tx.ID, got.ID)

	_, err = svc.Get(ctx, leaderOf(t, domain.UnitAuNhi), tx.ID)
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	_, err = svc.Get(ctx, rootAdmin(t), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLedgerService_Summary(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	svc := service.NewLedgerService(store.LedgerRepository, nil)
	root := rootAdmin(t)

	income := unitDraft(domain.UnitAuNhi, 1000)
	income.Direction = domain.DirectionIncome
	_, err := svc.Record(ctx, root, income)
	require.NoError(t, err)
	_, err = svc.Record(ctx, root, unitDraft(domain.UnitAuNhi, 300))
	require.NoError(t, err)
	_, err = svc.Record(ctx, root, generalDraft(999))
	require.NoError(t, err)

	summary, err := svc.Summary(ctx, leaderOf(t, domain.UnitAuNhi), domain.ScopeUnit, domain.UnitAuNhi)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(700).Equal(summary.Balance))
	assert.Equal(t, 2, summary.Count)

	_, err = svc.Summary(ctx, leaderOf(t, domain.UnitAuNhi), domain.ScopeGeneral, "")
	assert.ErrorIs(t, err, domain.ErrPermissionDenied)

	_, err = svc.Summary(ctx, root, domain.ScopeUnit, "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
