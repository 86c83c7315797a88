package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/api-sage/finance-ledger/internal/domain"
	"github.com/api-sage/finance-ledger/internal/logger"
)

type TransferRepository struct {
	db *sql.DB
}

func NewTransferRepository(db *sql.DB) *TransferRepository {
	return &TransferRepository{db: db}
}

func (r *TransferRepository) Create(ctx context.Context, transfer domain.Transfer) (domain.Transfer, error) {
	const query = `
INSERT INTO transfers (customer_id, reference, from_account_id, to_account_id, amount, transfer_date, memo, journal_entry_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, created_at`

	if err := r.db.QueryRowContext(
		ctx,
		query,
		transfer.CustomerID,
		transfer.Reference,
		transfer.FromAccountID,
		transfer.ToAccountID,
		transfer.Amount,
		transfer.Date,
		transfer.Memo,
		transfer.JournalEntryID,
	).Scan(&transfer.ID, &transfer.CreatedAt); err != nil {
		logger.Error("transfer repository create failed", err, logger.Fields{
			"reference":  transfer.Reference,
			"customerId": transfer.CustomerID,
		})
		return domain.Transfer{}, fmt.Errorf("create transfer: %w", err)
	}

	return transfer, nil
}

func (r *TransferRepository) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Transfer, error) {
	const query = `
SELECT id, customer_id, reference, from_account_id, to_account_id, amount, transfer_date, memo, journal_entry_id, created_at
FROM transfers
WHERE customer_id = $1
ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()

	var transfers []domain.Transfer
	for rows.Next() {
		var transfer domain.Transfer
		if err := rows.Scan(
			&transfer.ID,
			&transfer.CustomerID,
			&transfer.Reference,
			&transfer.FromAccountID,
			&transfer.ToAccountID,
			&transfer.Amount,
			&transfer.Date,
			&transfer.Memo,
			&transfer.JournalEntryID,
			&transfer.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		transfers = append(transfers, transfer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transfers: %w", err)
	}

	return transfers, nil
}
