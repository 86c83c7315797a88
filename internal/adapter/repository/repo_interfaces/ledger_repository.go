package repo_interfaces

import (
	"context"

	"github.com/api-sage/finance-ledger/internal/domain"
	"github.com/shopspring/decimal"
)

type LedgerRepository interface {
	CreateLedgerAccount(ctx context.Context, account domain.LedgerAccount) (domain.LedgerAccount, error)
	GetLedgerAccount(ctx context.Context, id int64) (domain.LedgerAccount, error)

	// GetOrCreateSystemAccount resolves the customer's system suspense
	// account by (customer, name), creating it on first use. Concurrent
	// first-time creators must converge on the same stored row.
	GetOrCreateSystemAccount(ctx context.Context, customerID int64, name string, accountType domain.LedgerAccountType) (domain.LedgerAccount, error)

	// BalanceOf aggregates all committed lines of the ledger account and
	// applies the sign rule for its type. Zero when there are no lines.
	BalanceOf(ctx context.Context, ledgerAccountID int64) (decimal.Decimal, error)

	// PostEntry persists a journal entry and all of its lines as one
	// atomic unit.
	PostEntry(ctx context.Context, entry domain.JournalEntry) (domain.JournalEntry, error)

	// PostEntriesWithBalanceCheck is the shared atomic section of the
	// transfer workflows: inside one transaction it exclusively locks
	// every ledger account touched by the entries (in deterministic id
	// order), recomputes the source account's balance under lock, fails
	// with InsufficientFundsError when amount exceeds it, and otherwise
	// persists every entry. All entries commit together or not at all.
	PostEntriesWithBalanceCheck(ctx context.Context, sourceLedgerAccountID int64, amount decimal.Decimal, entries ...domain.JournalEntry) ([]domain.JournalEntry, error)
}
