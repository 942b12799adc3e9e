package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"youthorg-backend-trusted/internal/domain"
	"youthorg-backend-trusted/internal/logger"
	"youthorg-backend-trusted/internal/repository"

	"github.com/google/uuid"
)

const (
	insertTransaction = `INSERT INTO ledger_transactions (id, amount, direction, scope, target_unit, status, category, description, member_id, tx_date, created_by, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	transactionColumns = `id, amount, direction, scope, COALESCE(target_unit, ''), status, COALESCE(category, ''), COALESCE(description, ''), COALESCE(member_id, ''), tx_date, created_by, created_on`
)

type ledgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) repository.LedgerRepository {
	return &ledgerRepository{db: db}
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *ledgerRepository) Append(ctx context.Context, tx *domain.Transaction) error {
	logger.EnterMethod("ledgerRepository.Append", "scope", tx.Scope, "unit", tx.TargetUnit)
	if err := insert(ctx, r.db, tx); err != nil {
		logger.ExitMethodWithError("ledgerRepository.Append", err)
		return err
	}
	logger.ExitMethod("ledgerRepository.Append", "transactionID", tx.ID)
	return nil
}

// AppendBatch inserts every entry inside one database transaction.
func (r *ledgerRepository) AppendBatch(ctx context.Context, txs []domain.Transaction) error {
	logger.EnterMethod("ledgerRepository.AppendBatch", "size", len(txs))

	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer dbTx.Rollback()

	for i := range txs {
		if err := insert(ctx, dbTx, &txs[i]); err != nil {
			logger.ExitMethodWithError("ledgerRepository.AppendBatch", err, "failedAt", i)
			return err
		}
	}

	if err := dbTx.Commit(); err != nil {
		logger.ExitMethodWithError("ledgerRepository.AppendBatch", err)
		return err
	}
	logger.ExitMethod("ledgerRepository.AppendBatch", "size", len(txs))
	return nil
}

func (r *ledgerRepository) UpdateStatus(ctx context.Context, id string, status domain.TransactionStatus) error {
	logger.DatabaseCall("UPDATE", "ledger_transactions", "transactionID", id, "status", status)
	res, err := r.db.ExecContext(ctx, `UPDATE ledger_transactions SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		logger.DatabaseResult("UPDATE", 0, err, "transactionID", id)
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	logger.DatabaseResult("UPDATE", rows, nil, "transactionID", id)
	if rows == 0 {
		return fmt.Errorf("%w: transaction %s", domain.ErrNotFound, id)
	}
	return nil
}

func (r *ledgerRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM ledger_transactions WHERE id = $1`
	tx, err := scanTransaction(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: transaction %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return tx, nil
}

func (r *ledgerRepository) All(ctx context.Context) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM ledger_transactions ORDER BY seq ASC`
	logger.DatabaseCall("SELECT", "ledger_transactions")
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.DatabaseResult("SELECT", 0, err)
		return nil, err
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, *tx)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	logger.DatabaseResult("SELECT", int64(len(txs)), nil)
	return txs, nil
}

func insert(ctx context.Context, db execer, tx *domain.Transaction) error {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	if tx.CreatedOn.IsZero() {
		tx.CreatedOn = time.Now().UTC()
	}
	_, err := db.ExecContext(ctx, insertTransaction,
		tx.ID, tx.Amount, tx.Direction, tx.Scope, nullString(string(tx.TargetUnit)), tx.Status,
		tx.Category, tx.Description, nullString(tx.MemberID), tx.Date, tx.CreatedBy, tx.CreatedOn,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: duplicate transaction id %s", domain.ErrValidation, tx.ID)
	}
	return err
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var tx domain.Transaction
	err := row.Scan(&tx.ID, &tx.Amount, &tx.Direction, &tx.Scope, &tx.TargetUnit, &tx.Status,
		&tx.Category, &tx.Description, &tx.MemberID, &tx.Date, &tx.CreatedBy, &tx.CreatedOn)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
