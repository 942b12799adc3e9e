package jobs

import (
	"context"
	"fmt"

	"youthorg-backend-trusted/internal/domain"
	"youthorg-backend-trusted/internal/logger"
)

// Violation is one stored record that breaks a scoping rule.
type Violation struct {
	Kind     string
	RecordID string
	Detail   string
}

// AuditReport is the outcome of one pass over the roster and the ledger.
type AuditReport struct {
	MembersChecked      int
	TransactionsChecked int
	Violations          []Violation
}

// AuditLedger re-checks the stored records against the scoping rules and logs every violation
func (jr *JobRunner) AuditLedger() {
	jr.runWithRecovery("AuditLedger", func() {
		report, err := jr.Audit(context.Background())
		if err != nil {
			logger.Error("Failed to audit ledger", "error", err)
			return
		}

		for _, v := range report.Violations {
			logger.Warn("Invariant violation", "kind", v.Kind, "id", v.RecordID, "detail", v.Detail)
		}
		logger.Info("Completed ledger audit",
			"members_checked", report.MembersChecked,
			"transactions_checked", report.TransactionsChecked,
			"violations", len(report.Violations))
	})
}

// Audit walks both stores once and collects the violations.
func (jr *JobRunner) Audit(ctx context.Context) (*AuditReport, error) {
	members, err := jr.members.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	txs, err := jr.ledger.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	report := &AuditReport{MembersChecked: len(members), TransactionsChecked: len(txs)}
	for _, m := range members {
		if !m.Unit.IsValid() {
			report.add("member_unit", m.ID, fmt.Sprintf("unit %q is not in the catalog", m.Unit))
		}
	}

	known := make(map[string]domain.OrgUnit, len(members))
	for _, m := range members {
		known[m.ID] = m.Unit
	}

	for i := range txs {
		tx := &txs[i]
		if err := domain.ValidateScope(tx.Scope, tx.TargetUnit); err != nil {
			report.add("scope", tx.ID, err.Error())
		}
		if !tx.Amount.IsPositive() {
			report.add("amount", tx.ID, "amount "+tx.Amount.String()+" is not positive")
		}
		if !tx.Direction.IsValid() {
			report.add("direction", tx.ID, fmt.Sprintf("unknown direction %q", tx.Direction))
		}
		if !tx.Status.IsValid() {
			report.add("status", tx.ID, fmt.Sprintf("unknown status %q", tx.Status))
		}
		if tx.MemberID == "" {
			continue
		}
		unit, ok := known[tx.MemberID]
		switch {
		case !ok:
			report.add("member_ref", tx.ID, fmt.Sprintf("member %q is not on the roster", tx.MemberID))
		case tx.Scope == domain.ScopeUnit && unit != tx.TargetUnit:
			// the member may have moved since; reported, not repaired
			report.add("member_moved", tx.ID, fmt.Sprintf("member %q now belongs to %s, entry targets %s", tx.MemberID, unit, tx.TargetUnit))
		}
	}
	return report, nil
}

func (r *AuditReport) add(kind, id, detail string) {
	r.Violations = append(r.Violations, Violation{Kind: kind, RecordID: id, Detail: detail})
}
