package service_interfaces

import (
	"context"
	"time"

	"github.com/api-sage/finance-ledger/internal/domain"
	"github.com/shopspring/decimal"
)

type LedgerService interface {
	PostJournalEntry(ctx context.Context, customerID int64, date time.Time, memo string, lines []domain.LedgerLine) (domain.JournalEntry, error)
	BalanceOf(ctx context.Context, ledgerAccountID int64) (decimal.Decimal, error)
	GetOrCreateSystemAccount(ctx context.Context, customerID int64, name string, accountType domain.LedgerAccountType) (domain.LedgerAccount, error)
}
