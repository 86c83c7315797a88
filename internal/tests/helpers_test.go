package services_test

import (
	"context"
	"testing"

	"github.com/api-sage/finance-ledger/internal/adapter/repository/memory"
	"github.com/api-sage/finance-ledger/internal/domain"
	"github.com/shopspring/decimal"
)

// newFundedCustomer creates a customer with one active, ledger-linked
// account and posts an opening-balance entry against it. The opening
// amount is debited to the account's asset ledger and credited to a
// per-customer equity ledger, so the store starts balanced.
func newFundedCustomer(t *testing.T, store *memory.Store, nationalID string, opening decimal.Decimal) (domain.Customer, domain.Account) {
	t.Helper()
	ctx := context.Background()

	customer, err := store.Create(ctx, domain.Customer{
		NationalID: nationalID,
		FullName:   "Test Customer",
		Email:      nationalID + "@example.com",
	})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}

	account := newLinkedAccount(t, store, customer.ID, "Checking")

	if opening.IsPositive() {
		equity, err := store.GetOrCreateSystemAccount(ctx, customer.ID, "Opening Balances", domain.LedgerAccountTypeEquity)
		if err != nil {
			t.Fatalf("create equity ledger account: %v", err)
		}
		if _, err := store.PostEntry(ctx, domain.JournalEntry{
			CustomerID: customer.ID,
			Memo:       "Opening balance",
			Lines: []domain.LedgerLine{
				domain.DebitLine(*account.LedgerAccountID, opening),
				domain.CreditLine(equity.ID, opening),
			},
		}); err != nil {
			t.Fatalf("post opening entry: %v", err)
		}
	}

	return customer, account
}

// newLinkedAccount adds another active, ledger-linked account to an
// existing customer.
func newLinkedAccount(t *testing.T, store *memory.Store, customerID int64, name string) domain.Account {
	t.Helper()
	ctx := context.Background()

	account, err := store.CreateAccount(ctx, domain.Account{
		CustomerID: customerID,
		Name:       name,
		Currency:   "USD",
		IsActive:   true,
	})
	if err != nil {
		t.Fatalf("create account: %v", err)
	}

	ledgerAccount, err := store.CreateLedgerAccount(ctx, domain.LedgerAccount{
		CustomerID: customerID,
		Name:       name,
		Type:       domain.LedgerAccountTypeAsset,
		AccountID:  &account.ID,
	})
	if err != nil {
		t.Fatalf("create ledger account: %v", err)
	}
	if err := store.LinkLedgerAccount(ctx, account.ID, ledgerAccount.ID); err != nil {
		t.Fatalf("link ledger account: %v", err)
	}

	account.LedgerAccountID = &ledgerAccount.ID
	return account
}

func balanceOf(t *testing.T, store *memory.Store, ledgerAccountID int64) decimal.Decimal {
	t.Helper()

	balance, err := store.BalanceOf(context.Background(), ledgerAccountID)
	if err != nil {
		t.Fatalf("balance of ledger account %d: %v", ledgerAccountID, err)
	}
	return balance
}

func requireBalance(t *testing.T, store *memory.Store, ledgerAccountID int64, want string) {
	t.Helper()

	got := balanceOf(t, store, ledgerAccountID)
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Fatalf("ledger account %d balance = %s, want %s", ledgerAccountID, got, want)
	}
}
