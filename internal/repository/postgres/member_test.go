package postgres_test

import (
	"context"
	"testing"
	"time"

	"youthorg-backend-trusted/internal/domain"
	"youthorg-backend-trusted/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var memberRowColumns = []string{"id", "unit", "holy_name", "full_name", "birth_date", "phone", "parent_name", "status", "created_on", "updated_on"}

func TestMemberRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewMemberRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		m := &domain.Member{ID: "m1", Unit: domain.UnitAuNhi, FullName: "Nguyễn Văn An", Status: domain.MemberStatusActive}
		mock.ExpectExec("INSERT INTO members").
			WithArgs("m1", domain.UnitAuNhi, "", "Nguyễn Văn An", sqlmock.AnyArg(), "", "", domain.MemberStatusActive, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Create(ctx, m))
		assert.False(t, m.CreatedOn.IsZero())
	})

	t.Run("Duplicate", func(t *testing.T) {
		mock.ExpectExec("INSERT INTO members").
			WillReturnError(&pq.Error{Code: "23505"})

		err := repo.Create(ctx, &domain.Member{ID: "m1", Unit: domain.UnitAuNhi})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemberRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewMemberRepository(db)
	ctx := context.Background()
	now := time.Now()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows(memberRowColumns).
			AddRow("m1", "AU_NHI", "Phêrô", "Nguyễn Văn An", now, "0900", "", "ACTIVE", now, now)
		mock.ExpectQuery("SELECT (.+) FROM members WHERE id = \\$1").WithArgs("m1").WillReturnRows(rows)

		m, err := repo.GetByID(ctx, "m1")
		require.NoError(t, err)
		assert.Equal(t, domain.UnitAuNhi, m.Unit)
		assert.Equal(t, "Phêrô Nguyễn Văn An", m.DisplayName())
		require.NotNil(t, m.BirthDate)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM members WHERE id = \\$1").WithArgs("m2").
			WillReturnRows(sqlmock.NewRows(memberRowColumns))

		m, err := repo.GetByID(ctx, "m2")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Nil(t, m)
	})
}

func TestMemberRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewMemberRepository(db)
	ctx := context.Background()

	mock.ExpectExec("UPDATE members SET unit = \\$1").WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.Update(ctx, &domain.Member{ID: "m1", Unit: domain.UnitHiepSi}))

	mock.ExpectExec("UPDATE members SET unit = \\$1").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Update(ctx, &domain.Member{ID: "m9", Unit: domain.UnitHiepSi}), domain.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemberRepository_ListByUnits(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewMemberRepository(db)
	now := time.Now()

	rows := sqlmock.NewRows(memberRowColumns).
		AddRow("m1", "AU_NHI", "", "An", nil, "", "", "ACTIVE", now, now).
		AddRow("m2", "AU_NHI", "", "Bình", nil, "", "", "ACTIVE", now, now)
	mock.ExpectQuery("SELECT (.+) FROM members WHERE unit = ANY\\(\\$1\\)").
		WithArgs(pq.Array([]string{"AU_NHI"})).
		WillReturnRows(rows)

	members, err := repo.ListByUnits(context.Background(), []domain.OrgUnit{domain.UnitAuNhi})
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Nil(t, members[0].BirthDate)

	empty, err := repo.ListByUnits(context.Background(), nil)
	assert.NoError(t, err)
	assert.Empty(t, empty)
	assert.NoError(t, mock.ExpectationsWereMet())
}
