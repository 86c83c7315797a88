package services

import (
	"context"
	"fmt"
	"time"

	"github.com/api-sage/finance-ledger/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/finance-ledger/internal/domain"
	"github.com/api-sage/finance-ledger/internal/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransferService moves funds between two accounts owned by the same
// customer through one balanced journal entry.
type TransferService struct {
	accountRepo  repo_interfaces.AccountRepository
	ledgerRepo   repo_interfaces.LedgerRepository
	transferRepo repo_interfaces.TransferRepository
}

func NewTransferService(
	accountRepo repo_interfaces.AccountRepository,
	ledgerRepo repo_interfaces.LedgerRepository,
	transferRepo repo_interfaces.TransferRepository,
) *TransferService {
	return &TransferService{
		accountRepo:  accountRepo,
		ledgerRepo:   ledgerRepo,
		transferRepo: transferRepo,
	}
}

// TransferFunds validates fail-fast and performs no writes before the
// atomic section: the insufficient-funds check runs under exclusive
// locks on both ledger accounts and the entry commits in the same
// transaction, so two opposing concurrent transfers cannot both spend
// the same balance.
func (s *TransferService) TransferFunds(ctx context.Context, customerID int64, fromAccountID int64, toAccountID int64, amount decimal.Decimal, date time.Time, memo string) (domain.JournalEntry, error) {
	logger.Info("transfer service transfer funds request", logger.Fields{
		"customerId":    customerID,
		"fromAccountId": fromAccountID,
		"toAccountId":   toAccountID,
		"amount":        amount.StringFixed(2),
	})

	if fromAccountID == toAccountID {
		return domain.JournalEntry{}, domain.ErrSameAccount
	}
	if !amount.IsPositive() {
		return domain.JournalEntry{}, domain.ErrInvalidAmount
	}

	fromAccount, err := s.accountRepo.GetByID(ctx, fromAccountID)
	if err != nil {
		return domain.JournalEntry{}, err
	}
	toAccount, err := s.accountRepo.GetByID(ctx, toAccountID)
	if err != nil {
		return domain.JournalEntry{}, err
	}

	if !fromAccount.OwnedBy(customerID) || !toAccount.OwnedBy(customerID) {
		return domain.JournalEntry{}, domain.ErrAccountNotOwned
	}
	if !fromAccount.IsLedgerLinked() || !toAccount.IsLedgerLinked() {
		return domain.JournalEntry{}, domain.ErrAccountNotLedgerLinked
	}

	if memo == "" {
		memo = fmt.Sprintf("Transfer %s", amount.StringFixed(2))
	}
	if date.IsZero() {
		date = time.Now()
	}

	entry := domain.JournalEntry{
		CustomerID: customerID,
		Date:       date,
		Memo:       memo,
		Lines: []domain.LedgerLine{
			domain.DebitLine(*toAccount.LedgerAccountID, amount),
			domain.CreditLine(*fromAccount.LedgerAccountID, amount),
		},
	}

	posted, err := s.ledgerRepo.PostEntriesWithBalanceCheck(ctx, *fromAccount.LedgerAccountID, amount, entry)
	if err != nil {
		logger.Error("transfer service posting failed", err, logger.Fields{
			"customerId":    customerID,
			"fromAccountId": fromAccountID,
			"toAccountId":   toAccountID,
		})
		return domain.JournalEntry{}, err
	}

	committed := posted[0]

	// The ledger entry is already durable; a failed audit record only
	// loses bookkeeping convenience, so it is logged rather than
	// surfaced.
	if _, err := s.transferRepo.Create(ctx, domain.Transfer{
		CustomerID:     customerID,
		Reference:      uuid.NewString(),
		FromAccountID:  fromAccountID,
		ToAccountID:    toAccountID,
		Amount:         amount,
		Date:           date,
		Memo:           memo,
		JournalEntryID: committed.ID,
	}); err != nil {
		logger.Error("transfer service audit record failed", err, logger.Fields{
			"customerId": customerID,
			"entryId":    committed.ID,
		})
	}

	logger.Info("transfer service transfer funds success", logger.Fields{
		"customerId": customerID,
		"entryId":    committed.ID,
		"amount":     amount.StringFixed(2),
	})

	return committed, nil
}
