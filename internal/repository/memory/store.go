// Package memory keeps the roster and the ledger in process memory. It backs tests
// and single-instance deployments.
package memory

import "youthorg-backend-trusted/internal/repository"

type Store struct {
	repository.MemberRepository
	repository.LedgerRepository
}

func NewStore() *Store {
	return &Store{
		MemberRepository: NewMemberRepository(),
		LedgerRepository: NewLedgerRepository(),
	}
}
