package service_interfaces

import (
	"context"

	"github.com/api-sage/finance-ledger/internal/adapter/http/models"
	"github.com/api-sage/finance-ledger/internal/commons"
)

type TransactionService interface {
	AddTransaction(ctx context.Context, req models.CreateTransactionRequest) (commons.Response[models.TransactionResponse], error)
	GetDashboard(ctx context.Context, customerID int64) (commons.Response[models.DashboardResponse], error)
	CreateCategory(ctx context.Context, req models.CreateCategoryRequest) (commons.Response[models.CategoryResponse], error)
	ListCategories(ctx context.Context) (commons.Response[[]models.CategoryResponse], error)
}
