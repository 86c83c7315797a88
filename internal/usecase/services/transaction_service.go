package services

import (
	"context"
	"strings"
	"time"

	"github.com/api-sage/finance-ledger/internal/adapter/http/models"
	"github.com/api-sage/finance-ledger/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/finance-ledger/internal/commons"
	"github.com/api-sage/finance-ledger/internal/domain"
	"github.com/api-sage/finance-ledger/internal/logger"
)

const recentTransactionsLimit = 20

type TransactionService struct {
	transactionRepo repo_interfaces.TransactionRepository
	accountRepo     repo_interfaces.AccountRepository
	categoryRepo    repo_interfaces.CategoryRepository
}

func NewTransactionService(
	transactionRepo repo_interfaces.TransactionRepository,
	accountRepo repo_interfaces.AccountRepository,
	categoryRepo repo_interfaces.CategoryRepository,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		accountRepo:     accountRepo,
		categoryRepo:    categoryRepo,
	}
}

func (s *TransactionService) AddTransaction(ctx context.Context, req models.CreateTransactionRequest) (commons.Response[models.TransactionResponse], error) {
	logger.Info("transaction service add transaction request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("transaction service add transaction validation failed", err, nil)
		return commons.ErrorResponse[models.TransactionResponse]("validation failed", err.Error()), err
	}

	account, err := s.accountRepo.GetByID(ctx, req.AccountID)
	if err != nil {
		return commons.ErrorResponse[models.TransactionResponse]("account not found"), err
	}
	if !account.OwnedBy(req.CustomerID) {
		err := domain.ErrAccountNotOwned
		return commons.ErrorResponse[models.TransactionResponse]("not authorized", err.Error()), err
	}

	if _, err := s.categoryRepo.GetByID(ctx, req.CategoryID); err != nil {
		return commons.ErrorResponse[models.TransactionResponse]("category not found"), err
	}

	date, err := time.Parse("2006-01-02", strings.TrimSpace(req.Date))
	if err != nil {
		return commons.ErrorResponse[models.TransactionResponse]("validation failed", "date must use the YYYY-MM-DD format"), err
	}

	created, err := s.transactionRepo.Create(ctx, domain.Transaction{
		AccountID:   req.AccountID,
		CategoryID:  req.CategoryID,
		Amount:      req.Amount,
		Date:        date,
		Description: strings.TrimSpace(req.Description),
	})
	if err != nil {
		logger.Error("transaction service add transaction repository failed", err, logger.Fields{
			"accountId": req.AccountID,
		})
		return commons.ErrorResponse[models.TransactionResponse]("failed to add transaction", "Unable to add transaction right now"), err
	}

	logger.Info("transaction service add transaction success", logger.Fields{
		"transactionId": created.ID,
		"accountId":     created.AccountID,
	})

	return commons.SuccessResponse("transaction added successfully", mapTransactionToResponse(created)), nil
}

// GetDashboard mirrors the account-holder landing view: income and
// expense totals, per-category breakdowns, and the most recent
// transactions.
func (s *TransactionService) GetDashboard(ctx context.Context, customerID int64) (commons.Response[models.DashboardResponse], error) {
	if customerID <= 0 {
		err := domain.ErrRecordNotFound
		return commons.ErrorResponse[models.DashboardResponse]("validation failed", "customerId is required"), err
	}

	summary, err := s.transactionRepo.SummarizeByCustomer(ctx, customerID)
	if err != nil {
		logger.Error("transaction service summarize failed", err, logger.Fields{
			"customerId": customerID,
		})
		return commons.ErrorResponse[models.DashboardResponse]("failed to load dashboard", "Unable to load dashboard right now"), err
	}

	recent, err := s.transactionRepo.ListByCustomer(ctx, customerID, recentTransactionsLimit)
	if err != nil {
		logger.Error("transaction service list recent failed", err, logger.Fields{
			"customerId": customerID,
		})
		return commons.ErrorResponse[models.DashboardResponse]("failed to load dashboard", "Unable to load dashboard right now"), err
	}

	response := models.DashboardResponse{
		IncomeTotal:  summary.IncomeTotal.StringFixed(2),
		ExpenseTotal: summary.ExpenseTotal.StringFixed(2),
		NetTotal:     summary.NetTotal.StringFixed(2),
	}
	for _, total := range summary.ByCategory {
		response.ByCategory = append(response.ByCategory, models.CategoryTotalResponse{
			Category: total.CategoryName,
			Type:     string(total.Type),
			Total:    total.Total.StringFixed(2),
		})
	}
	for _, transaction := range recent {
		response.Recent = append(response.Recent, mapTransactionToResponse(transaction))
	}

	return commons.SuccessResponse("dashboard fetched successfully", response), nil
}

func (s *TransactionService) CreateCategory(ctx context.Context, req models.CreateCategoryRequest) (commons.Response[models.CategoryResponse], error) {
	logger.Info("transaction service create category request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("transaction service create category validation failed", err, nil)
		return commons.ErrorResponse[models.CategoryResponse]("validation failed", err.Error()), err
	}

	created, err := s.categoryRepo.Create(ctx, domain.Category{
		Name:  strings.TrimSpace(req.Name),
		Type:  domain.CategoryType(req.Type),
		Color: strings.TrimSpace(req.Color),
	})
	if err != nil {
		logger.Error("transaction service create category repository failed", err, nil)
		return commons.ErrorResponse[models.CategoryResponse]("failed to create category", "Unable to create category right now"), err
	}

	return commons.SuccessResponse("category created successfully", mapCategoryToResponse(created)), nil
}

func (s *TransactionService) ListCategories(ctx context.Context) (commons.Response[[]models.CategoryResponse], error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		logger.Error("transaction service list categories failed", err, nil)
		return commons.ErrorResponse[[]models.CategoryResponse]("failed to list categories", "Unable to list categories right now"), err
	}

	responses := make([]models.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		responses = append(responses, mapCategoryToResponse(category))
	}
	return commons.SuccessResponse("categories fetched successfully", responses), nil
}

func mapCategoryToResponse(category domain.Category) models.CategoryResponse {
	return models.CategoryResponse{
		ID:    category.ID,
		Name:  category.Name,
		Type:  string(category.Type),
		Color: category.Color,
	}
}

func mapTransactionToResponse(transaction domain.Transaction) models.TransactionResponse {
	return models.TransactionResponse{
		ID:          transaction.ID,
		AccountID:   transaction.AccountID,
		CategoryID:  transaction.CategoryID,
		Amount:      transaction.Amount.StringFixed(2),
		Date:        transaction.Date.Format("2006-01-02"),
		Description: transaction.Description,
	}
}
