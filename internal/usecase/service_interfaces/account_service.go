package service_interfaces

import (
	"context"

	"github.com/api-sage/finance-ledger/internal/adapter/http/models"
	"github.com/api-sage/finance-ledger/internal/commons"
)

type AccountService interface {
	CreateAccount(ctx context.Context, req models.CreateAccountRequest) (commons.Response[models.AccountResponse], error)
	ListAccounts(ctx context.Context, customerID int64) (commons.Response[[]models.AccountResponse], error)
}
