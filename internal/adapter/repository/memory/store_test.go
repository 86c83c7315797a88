package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/api-sage/finance-ledger/internal/domain"
	"github.com/shopspring/decimal"
)

func TestPostEntriesWithBalanceCheckWritesAllOrNothing(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	asset, err := store.CreateLedgerAccount(ctx, domain.LedgerAccount{
		CustomerID: 1, Name: "Checking", Type: domain.LedgerAccountTypeAsset,
	})
	if err != nil {
		t.Fatalf("create asset ledger account: %v", err)
	}
	equity, err := store.CreateLedgerAccount(ctx, domain.LedgerAccount{
		CustomerID: 1, Name: "Opening Balances", Type: domain.LedgerAccountTypeEquity,
	})
	if err != nil {
		t.Fatalf("create equity ledger account: %v", err)
	}

	opening := decimal.RequireFromString("500")
	if _, err := store.PostEntry(ctx, domain.JournalEntry{
		CustomerID: 1,
		Lines: []domain.LedgerLine{
			domain.DebitLine(asset.ID, opening),
			domain.CreditLine(equity.ID, opening),
		},
	}); err != nil {
		t.Fatalf("post opening entry: %v", err)
	}
	before := store.EntryCount()

	amount := decimal.RequireFromString("100")
	good := domain.JournalEntry{
		CustomerID: 1,
		Lines: []domain.LedgerLine{
			domain.DebitLine(equity.ID, amount),
			domain.CreditLine(asset.ID, amount),
		},
	}
	// The second entry references a ledger account that does not exist.
	bad := domain.JournalEntry{
		CustomerID: 2,
		Lines: []domain.LedgerLine{
			domain.DebitLine(9999, amount),
			domain.CreditLine(asset.ID, amount),
		},
	}

	_, err = store.PostEntriesWithBalanceCheck(ctx, asset.ID, amount, good, bad)
	if !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("got %v, want %v", err, domain.ErrRecordNotFound)
	}

	if got := store.EntryCount(); got != before {
		t.Fatalf("entry count = %d, want %d: a rejected batch must write no entry at all", got, before)
	}
	balance, err := store.BalanceOf(ctx, asset.ID)
	if err != nil {
		t.Fatalf("balance of asset account: %v", err)
	}
	if !balance.Equal(opening) {
		t.Fatalf("asset balance = %s, want %s", balance, opening)
	}
}
