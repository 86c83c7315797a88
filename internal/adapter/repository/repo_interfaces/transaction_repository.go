package repo_interfaces

import (
	"context"

	"github.com/api-sage/finance-ledger/internal/domain"
)

type TransactionRepository interface {
	Create(ctx context.Context, transaction domain.Transaction) (domain.Transaction, error)
	// ListByCustomer returns the customer's transactions newest first.
	ListByCustomer(ctx context.Context, customerID int64, limit int) ([]domain.Transaction, error)
	SummarizeByCustomer(ctx context.Context, customerID int64) (domain.TransactionSummary, error)
}
