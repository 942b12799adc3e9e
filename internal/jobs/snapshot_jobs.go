package jobs

import (
	"context"
	"fmt"

	"youthorg-backend-trusted/internal/domain"
	"youthorg-backend-trusted/internal/logger"
)

// FundSnapshot logs the approved balance of the general fund and every unit fund
func (jr *JobRunner) FundSnapshot() {
	jr.runWithRecovery("FundSnapshot", func() {
		summaries, err := jr.Snapshot(context.Background())
		if err != nil {
			logger.Error("Failed to take fund snapshot", "error", err)
			return
		}

		for _, s := range summaries {
			logger.Info("Fund balance",
				"scope", s.Scope,
				"unit", s.Unit,
				"income", s.Income.StringFixed(2),
				"expense", s.Expense.StringFixed(2),
				"balance", s.Balance.StringFixed(2),
				"entries", s.Count)
		}
	})
}

// Snapshot summarizes the general fund first, then each unit in catalog order.
func (jr *JobRunner) Snapshot(ctx context.Context) ([]domain.FundSummary, error) {
	txs, err := jr.ledger.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	units := domain.AllUnits()
	summaries := make([]domain.FundSummary, 0, len(units)+1)
	summaries = append(summaries, domain.Summarize(txs, domain.ScopeGeneral, ""))
	for _, u := range units {
		summaries = append(summaries, domain.Summarize(txs, domain.ScopeUnit, u))
	}
	return summaries, nil
}
