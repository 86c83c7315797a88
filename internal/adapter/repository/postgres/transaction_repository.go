package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/api-sage/finance-ledger/internal/domain"
	"github.com/shopspring/decimal"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, transaction domain.Transaction) (domain.Transaction, error) {
	const query = `
INSERT INTO transactions (account_id, category_id, amount, transaction_date, description)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at, updated_at`

	if err := r.db.QueryRowContext(
		ctx,
		query,
		transaction.AccountID,
		transaction.CategoryID,
		transaction.Amount,
		transaction.Date,
		transaction.Description,
	).Scan(&transaction.ID, &transaction.CreatedAt, &transaction.UpdatedAt); err != nil {
		return domain.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}

	return transaction, nil
}

func (r *TransactionRepository) ListByCustomer(ctx context.Context, customerID int64, limit int) ([]domain.Transaction, error) {
	const query = `
SELECT t.id, t.account_id, t.category_id, t.amount, t.transaction_date, t.description, t.created_at, t.updated_at
FROM transactions t
JOIN accounts a ON a.id = t.account_id
WHERE a.customer_id = $1
ORDER BY t.transaction_date DESC, t.created_at DESC
LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, customerID, limit)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []domain.Transaction
	for rows.Next() {
		var transaction domain.Transaction
		if err := rows.Scan(
			&transaction.ID,
			&transaction.AccountID,
			&transaction.CategoryID,
			&transaction.Amount,
			&transaction.Date,
			&transaction.Description,
			&transaction.CreatedAt,
			&transaction.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		transactions = append(transactions, transaction)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return transactions, nil
}

func (r *TransactionRepository) SummarizeByCustomer(ctx context.Context, customerID int64) (domain.TransactionSummary, error) {
	const query = `
SELECT c.name, c.type, COALESCE(SUM(t.amount), 0)
FROM transactions t
JOIN accounts a ON a.id = t.account_id
JOIN categories c ON c.id = t.category_id
WHERE a.customer_id = $1
GROUP BY c.name, c.type
ORDER BY SUM(t.amount) DESC`

	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		return domain.TransactionSummary{}, fmt.Errorf("summarize transactions: %w", err)
	}
	defer rows.Close()

	summary := domain.TransactionSummary{
		IncomeTotal:  decimal.Zero,
		ExpenseTotal: decimal.Zero,
	}

	for rows.Next() {
		var total domain.CategoryTotal
		if err := rows.Scan(&total.CategoryName, &total.Type, &total.Total); err != nil {
			return domain.TransactionSummary{}, fmt.Errorf("scan category total: %w", err)
		}
		switch total.Type {
		case domain.CategoryTypeIncome:
			summary.IncomeTotal = summary.IncomeTotal.Add(total.Total)
		case domain.CategoryTypeExpense:
			summary.ExpenseTotal = summary.ExpenseTotal.Add(total.Total)
		}
		summary.ByCategory = append(summary.ByCategory, total)
	}
	if err := rows.Err(); err != nil {
		return domain.TransactionSummary{}, fmt.Errorf("iterate category totals: %w", err)
	}

	summary.NetTotal = summary.IncomeTotal.Sub(summary.ExpenseTotal)
	return summary, nil
}
