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

type AccountService struct {
	accountRepo  repo_interfaces.AccountRepository
	customerRepo repo_interfaces.CustomerRepository
	ledgerRepo   repo_interfaces.LedgerRepository
}

func NewAccountService(
	accountRepo repo_interfaces.AccountRepository,
	customerRepo repo_interfaces.CustomerRepository,
	ledgerRepo repo_interfaces.LedgerRepository,
) *AccountService {
	return &AccountService{
		accountRepo:  accountRepo,
		customerRepo: customerRepo,
		ledgerRepo:   ledgerRepo,
	}
}

// CreateAccount opens a customer-facing account together with its
// backing asset ledger account; every account that can take part in a
// transfer is ledger-linked from birth.
func (s *AccountService) CreateAccount(ctx context.Context, req models.CreateAccountRequest) (commons.Response[models.AccountResponse], error) {
	logger.Info("account service create account request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("account service create account validation failed", err, nil)
		return commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()), err
	}

	if _, err := s.customerRepo.GetByID(ctx, req.CustomerID); err != nil {
		logger.Error("account service create account customer lookup failed", err, logger.Fields{
			"customerId": req.CustomerID,
		})
		return commons.ErrorResponse[models.AccountResponse]("customer not found"), err
	}

	account := domain.Account{
		CustomerID:     req.CustomerID,
		Name:           strings.TrimSpace(req.Name),
		Currency:       strings.ToUpper(strings.TrimSpace(req.Currency)),
		InitialBalance: req.InitialBalance,
		IsActive:       true,
	}

	created, err := s.accountRepo.CreateWithLedgerAccount(ctx, account)
	if err != nil {
		logger.Error("account service create account repository failed", err, logger.Fields{
			"customerId": account.CustomerID,
		})
		return commons.ErrorResponse[models.AccountResponse]("failed to create account", "Unable to create account right now"), err
	}

	response := mapAccountToResponse(created, created.InitialBalance.StringFixed(2))

	logger.Info("account service create account success", logger.Fields{
		"accountId":       created.ID,
		"ledgerAccountId": *created.LedgerAccountID,
		"customerId":      created.CustomerID,
	})

	return commons.SuccessResponse("account created successfully", response), nil
}

// ListAccounts returns the customer's active accounts with balances
// derived from their ledger lines. Accounts without a ledger link show
// their informational initial balance.
func (s *AccountService) ListAccounts(ctx context.Context, customerID int64) (commons.Response[[]models.AccountResponse], error) {
	if customerID <= 0 {
		err := domain.ErrRecordNotFound
		return commons.ErrorResponse[[]models.AccountResponse]("validation failed", "customerId is required"), err
	}

	accounts, err := s.accountRepo.ListActiveByCustomer(ctx, customerID)
	if err != nil {
		logger.Error("account service list accounts failed", err, logger.Fields{
			"customerId": customerID,
		})
		return commons.ErrorResponse[[]models.AccountResponse]("failed to list accounts", "Unable to list accounts right now"), err
	}

	responses := make([]models.AccountResponse, 0, len(accounts))
	for _, account := range accounts {
		balance := account.InitialBalance
		if account.IsLedgerLinked() {
			derived, err := s.ledgerRepo.BalanceOf(ctx, *account.LedgerAccountID)
			if err != nil {
				logger.Error("account service balance lookup failed", err, logger.Fields{
					"accountId":       account.ID,
					"ledgerAccountId": *account.LedgerAccountID,
				})
				return commons.ErrorResponse[[]models.AccountResponse]("failed to list accounts", "Unable to list accounts right now"), err
			}
			balance = derived
		}
		responses = append(responses, mapAccountToResponse(account, balance.StringFixed(2)))
	}

	return commons.SuccessResponse("accounts fetched successfully", responses), nil
}

func mapAccountToResponse(account domain.Account, balance string) models.AccountResponse {
	return models.AccountResponse{
		ID:              account.ID,
		CustomerID:      account.CustomerID,
		Name:            account.Name,
		Currency:        account.Currency,
		Balance:         balance,
		IsActive:        account.IsActive,
		LedgerAccountID: account.LedgerAccountID,
		CreatedAt:       account.CreatedAt.Format(time.RFC3339),
	}
}
