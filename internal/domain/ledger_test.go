package domain_test

import (
	"testing"

	"youthorg-backend-trusted/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTransactionDraft_Validate(t *testing.T) {
	valid := domain.TransactionDraft{
		Amount:     decimal.NewFromInt(5000),
		Direction:  domain.DirectionIncome,
		Scope:      domain.ScopeUnit,
		TargetUnit: domain.UnitAuNhi,
	}
	assert.NoError(t, valid.Validate())

	cases := map[string]func(d *domain.TransactionDraft){
		"ZeroAmount":        func(d *domain.TransactionDraft) { d.Amount = decimal.Zero },
		"NegativeAmount":    func(d *domain.TransactionDraft) { d.Amount = decimal.NewFromInt(-1) },
		"SubCentAmount":     func(d *domain.TransactionDraft) { d.Amount = decimal.RequireFromString("0.001") },
		"ThreeDecimals":     func(d *domain.TransactionDraft) { d.Amount = decimal.RequireFromString("10.005") },
		"UnknownDirection":  func(d *domain.TransactionDraft) { d.Direction = "TRANSFER" },
		"UnitWithoutTarget": func(d *domain.TransactionDraft) { d.TargetUnit = "" },
		"UnknownUnit":       func(d *domain.TransactionDraft) { d.TargetUnit = "NOWHERE" },
		"GeneralWithTarget": func(d *domain.TransactionDraft) { d.Scope = domain.ScopeGeneral },
		"UnknownScope":      func(d *domain.TransactionDraft) { d.Scope = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			d := valid
			mutate(&d)
			assert.ErrorIs(t, d.Validate(), domain.ErrValidation)
		})
	}
}

func TestValidateAmount_Scale(t *testing.T) {
	for _, ok := range []string{"1", "10.5", "10.05", "10.050", "0.01"} {
		assert.NoError(t, domain.ValidateAmount(decimal.RequireFromString(ok)), ok)
	}
	for _, bad := range []string{"0.001", "10.005", "0.009"} {
		assert.ErrorIs(t, domain.ValidateAmount(decimal.RequireFromString(bad)), domain.ErrValidation, bad)
	}
}

func TestSummarize(t *testing.T) {
	txs := []domain.Transaction{
		{Amount: decimal.NewFromInt(100), Direction: domain.DirectionIncome, Scope: domain.ScopeGeneral, Status: domain.TransactionStatusApproved},
		{Amount: decimal.NewFromInt(30), Direction: domain.DirectionExpense, Scope: domain.ScopeGeneral, Status: domain.TransactionStatusApproved},
		{Amount: decimal.NewFromInt(500), Direction: domain.DirectionIncome, Scope: domain.ScopeGeneral, Status: domain.TransactionStatusRejected},
		{Amount: decimal.NewFromInt(70), Direction: domain.DirectionIncome, Scope: domain.ScopeUnit, TargetUnit: domain.UnitAuNhi, Status: domain.TransactionStatusApproved},
	}

	general := domain.Summarize(txs, domain.ScopeGeneral, "")
	assert.True(t, decimal.NewFromInt(100).Equal(general.Income))
	assert.True(t, decimal.NewFromInt(30).Equal(general.Expense))
	assert.True(t, decimal.NewFromInt(70).Equal(general.Balance))
	assert.Equal(t, 2, general.Count)

	unit := domain.Summarize(txs, domain.ScopeUnit, domain.UnitAuNhi)
	assert.True(t, decimal.NewFromInt(70).Equal(unit.Balance))
	assert.Equal(t, 1, unit.Count)
}
