package repo_interfaces

import (
	"context"

	"github.com/api-sage/finance-ledger/internal/domain"
)

type TransferRepository interface {
	Create(ctx context.Context, transfer domain.Transfer) (domain.Transfer, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Transfer, error)
}
