package services

import (
	"context"
	"time"

	"github.com/api-sage/finance-ledger/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/finance-ledger/internal/domain"
	"github.com/api-sage/finance-ledger/internal/logger"
	"github.com/shopspring/decimal"
)

// LedgerService is the general-purpose journal poster. It validates
// that an entry is well formed and balanced, then persists the entry
// and all of its lines atomically. Authorization of the caller against
// the touched ledger accounts is the caller's responsibility.
type LedgerService struct {
	ledgerRepo repo_interfaces.LedgerRepository
}

func NewLedgerService(ledgerRepo repo_interfaces.LedgerRepository) *LedgerService {
	return &LedgerService{ledgerRepo: ledgerRepo}
}

func (s *LedgerService) PostJournalEntry(ctx context.Context, customerID int64, date time.Time, memo string, lines []domain.LedgerLine) (domain.JournalEntry, error) {
	entry := domain.JournalEntry{
		CustomerID: customerID,
		Date:       date,
		Memo:       memo,
		Lines:      lines,
	}

	if err := entry.Validate(); err != nil {
		logger.Error("ledger service journal entry rejected", err, logger.Fields{
			"customerId": customerID,
			"lines":      len(lines),
		})
		return domain.JournalEntry{}, err
	}

	posted, err := s.ledgerRepo.PostEntry(ctx, entry)
	if err != nil {
		logger.Error("ledger service post journal entry failed", err, logger.Fields{
			"customerId": customerID,
		})
		return domain.JournalEntry{}, err
	}

	return posted, nil
}

func (s *LedgerService) BalanceOf(ctx context.Context, ledgerAccountID int64) (decimal.Decimal, error) {
	return s.ledgerRepo.BalanceOf(ctx, ledgerAccountID)
}

func (s *LedgerService) GetOrCreateSystemAccount(ctx context.Context, customerID int64, name string, accountType domain.LedgerAccountType) (domain.LedgerAccount, error) {
	return s.ledgerRepo.GetOrCreateSystemAccount(ctx, customerID, name, accountType)
}
