package postgres_test

import (
	"context"
	"testing"

	"youthorg-backend-trusted/internal/domain"
	"youthorg-backend-trusted/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore_SharesConnection(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store := postgres.NewStore(db)
	require.NotNil(t, store.MemberRepository)
	require.NotNil(t, store.LedgerRepository)

	ctx := context.Background()
	mock.ExpectExec("INSERT INTO members").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO ledger_transactions").WillReturnError(&pq.Error{Code: "23505"})

	require.NoError(t, store.MemberRepository.Create(ctx, &domain.Member{ID: "m1", Unit: domain.UnitAuNhi, FullName: "Hoa"}))
	tx := unitEntry("t1")
	assert.ErrorIs(t, store.LedgerRepository.Append(ctx, &tx), domain.ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}
