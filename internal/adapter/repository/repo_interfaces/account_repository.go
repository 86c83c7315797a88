package repo_interfaces

import (
	"context"

	"github.com/api-sage/finance-ledger/internal/domain"
)

type AccountRepository interface {
	// CreateWithLedgerAccount creates the account, its backing asset
	// ledger account, and the link between them as one atomic unit. The
	// returned account carries the new LedgerAccountID.
	CreateWithLedgerAccount(ctx context.Context, account domain.Account) (domain.Account, error)
	GetByID(ctx context.Context, id int64) (domain.Account, error)
	// ListActiveByCustomer returns the customer's active accounts in
	// creation order (ascending id).
	ListActiveByCustomer(ctx context.Context, customerID int64) ([]domain.Account, error)
}
