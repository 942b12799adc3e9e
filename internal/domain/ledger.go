package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Direction string

const (
	DirectionIncome  Direction = "INCOME"
	DirectionExpense Direction = "EXPENSE"
)

func (d Direction) IsValid() bool {
	return d == DirectionIncome || d == DirectionExpense
}

// LedgerScope tells whether an entry belongs to the shared fund or to one unit's fund.
type LedgerScope string

const (
	ScopeGeneral LedgerScope = "GENERAL"
	ScopeUnit    LedgerScope = "UNIT"
)

func (s LedgerScope) IsValid() bool {
	return s == ScopeGeneral || s == ScopeUnit
}

type TransactionStatus string

const (
	TransactionStatusPending  TransactionStatus = "PENDING"
	TransactionStatusApproved TransactionStatus = "APPROVED"
	TransactionStatusRejected TransactionStatus = "REJECTED"
)

func (s TransactionStatus) IsValid() bool {
	switch s {
	case TransactionStatusPending, TransactionStatusApproved, TransactionStatusRejected:
		return true
	}
	return false
}

// Transaction is one ledger entry. TargetUnit is set if and only if Scope is ScopeUnit.
type Transaction struct {
	ID          string            `json:"id"`
	Amount      decimal.Decimal   `json:"amount"`
	Direction   Direction         `json:"direction"`
	Scope       LedgerScope       `json:"scope"`
	TargetUnit  OrgUnit           `json:"target_unit,omitempty"`
	Status      TransactionStatus `json:"status"`
	Category    string            `json:"category,omitempty"`
	Description string            `json:"description"`
	MemberID    string            `json:"member_id,omitempty"` // payer, set on collected entries
	Date        time.Time         `json:"date"`
	CreatedBy   string            `json:"created_by"`
	CreatedOn   time.Time         `json:"created_on"`
}

// TransactionDraft is the caller-supplied part of a new entry.
type TransactionDraft struct {
	Amount      decimal.Decimal `json:"amount"`
	Direction   Direction       `json:"direction"`
	Scope       LedgerScope     `json:"scope"`
	TargetUnit  OrgUnit         `json:"target_unit,omitempty"`
	Category    string          `json:"category,omitempty"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
}

// AmountScale is the number of fractional digits an amount may carry; the ledger
// column stores exactly this many.
const AmountScale = 2

// ValidateAmount requires a positive amount with at most AmountScale fractional digits.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be > 0", ErrValidation)
	}
	if !amount.Equal(amount.Truncate(AmountScale)) {
		return fmt.Errorf("%w: amount %s has more than %d decimal places", ErrValidation, amount.String(), AmountScale)
	}
	return nil
}

// Validate checks the structural preconditions of a draft. Authorization is not
// part of it.
func (d *TransactionDraft) Validate() error {
	if err := ValidateAmount(d.Amount); err != nil {
		return err
	}
	if !d.Direction.IsValid() {
		return fmt.Errorf("%w: unknown direction %q", ErrValidation, d.Direction)
	}
	return ValidateScope(d.Scope, d.TargetUnit)
}

// ValidateScope enforces the scope/target-unit pairing.
func ValidateScope(scope LedgerScope, unit OrgUnit) error {
	switch scope {
	case ScopeGeneral:
		if unit != "" {
			return fmt.Errorf("%w: general entries must not carry a target unit", ErrValidation)
		}
	case ScopeUnit:
		if unit == "" {
			return fmt.Errorf("%w: unit entries require a target unit", ErrValidation)
		}
		if !unit.IsValid() {
			return fmt.Errorf("%w: unknown unit %q", ErrValidation, unit)
		}
	default:
		return fmt.Errorf("%w: unknown scope %q", ErrValidation, scope)
	}
	return nil
}

// LedgerFilter narrows a visible listing. Zero fields match everything.
type LedgerFilter struct {
	Scope     LedgerScope
	Unit      OrgUnit
	Direction Direction
	Status    TransactionStatus
}

func (f LedgerFilter) Match(t *Transaction) bool {
	if f.Scope != "" && t.Scope != f.Scope {
		return false
	}
	if f.Unit != "" && t.TargetUnit != f.Unit {
		return false
	}
	if f.Direction != "" && t.Direction != f.Direction {
		return false
	}
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	return true
}

// FundSummary totals the approved entries of one fund.
type FundSummary struct {
	Scope   LedgerScope     `json:"scope"`
	Unit    OrgUnit         `json:"unit,omitempty"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
	Count   int             `json:"count"`
}

// Summarize totals the approved entries in txs that belong to the given fund.
func Summarize(txs []Transaction, scope LedgerScope, unit OrgUnit) FundSummary {
	s := FundSummary{Scope: scope, Unit: unit, Income: decimal.Zero, Expense: decimal.Zero}
	for i := range txs {
		t := &txs[i]
		if t.Scope != scope || t.TargetUnit != unit || t.Status != TransactionStatusApproved {
			continue
		}
		if t.Direction == DirectionIncome {
			s.Income = s.Income.Add(t.Amount)
		} else {
			s.Expense = s.Expense.Add(t.Amount)
		}
		s.Count++
	}
	s.Balance = s.Income.Sub(s.Expense)
	return s
}
