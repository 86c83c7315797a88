package repo_interfaces

import (
	"context"

	"github.com/api-sage/finance-ledger/internal/domain"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer domain.Customer) (domain.Customer, error)
	GetByID(ctx context.Context, id int64) (domain.Customer, error)
	GetByNationalID(ctx context.Context, nationalID string) (domain.Customer, error)
}
