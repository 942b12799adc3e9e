package storage

import (
	"context"
	"testing"

	"youthorg-backend-trusted/internal/config"
	"youthorg-backend-trusted/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_Memory(t *testing.T) {
	for _, typ := range []string{"", config.StoreMemory} {
		b, err := Open(&config.Config{Store: config.StoreConfig{Type: typ}})
		require.NoError(t, err)

		m := &domain.Member{Unit: domain.UnitAuNhi, FullName: "Dung"}
		require.NoError(t, b.Members.Create(context.Background(), m))
		all, err := b.Members.List(context.Background())
		require.NoError(t, err)
		assert.Len(t, all, 1)
		assert.False(t, b.Shared())
		assert.NoError(t, b.Close())
	}
}

func TestOpen_UnknownType(t *testing.T) {
	_, err := Open(&config.Config{Store: config.StoreConfig{Type: "sqlite"}})
	assert.ErrorContains(t, err, "sqlite")
}

func TestBackend_CloseReleasesDB(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	b := fromDB(db)
	assert.NotNil(t, b.Members)
	assert.NotNil(t, b.Ledger)
	assert.True(t, b.Shared())
	require.NoError(t, b.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}
