package postgres

import (
	"database/sql"
	"errors"

	"youthorg-backend-trusted/internal/repository"

	"github.com/lib/pq"
)

type Store struct {
	repository.MemberRepository
	repository.LedgerRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		MemberRepository: NewMemberRepository(db),
		LedgerRepository: NewLedgerRepository(db),
	}
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
