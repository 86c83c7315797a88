package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/api-sage/finance-ledger/internal/adapter/repository/memory"
	"github.com/api-sage/finance-ledger/internal/domain"
	"github.com/api-sage/finance-ledger/internal/usecase/services"
	"github.com/shopspring/decimal"
)

func newTransferService(store *memory.Store) *services.TransferService {
	return services.NewTransferService(store.Accounts(), store, store.Transfers())
}

func TestTransferServiceMovesFundsBetweenOwnAccounts(t *testing.T) {
	store := memory.NewStore()
	customer, from := newFundedCustomer(t, store, "1111111111", decimal.RequireFromString("500"))
	to := newLinkedAccount(t, store, customer.ID, "Savings")

	svc := newTransferService(store)
	entry, err := svc.TransferFunds(context.Background(), customer.ID, from.ID, to.ID, decimal.RequireFromString("200"), time.Time{}, "rent share")
	if err != nil {
		t.Fatalf("transfer funds: %v", err)
	}
	if entry.ID == 0 {
		t.Fatal("expected committed entry to carry an id")
	}
	if entry.Memo != "rent share" {
		t.Fatalf("entry memo = %q, want %q", entry.Memo, "rent share")
	}

	requireBalance(t, store, *from.LedgerAccountID, "300")
	requireBalance(t, store, *to.LedgerAccountID, "200")

	transfers, err := store.Transfers().ListByCustomer(context.Background(), customer.ID)
	if err != nil {
		t.Fatalf("list transfers: %v", err)
	}
	if len(transfers) != 1 {
		t.Fatalf("expected one transfer audit record, got %d", len(transfers))
	}
	if transfers[0].JournalEntryID != entry.ID {
		t.Fatalf("audit record entry id = %d, want %d", transfers[0].JournalEntryID, entry.ID)
	}
	if transfers[0].Reference == "" {
		t.Fatal("expected audit record to carry a reference")
	}
}

func TestTransferServiceDefaultsMemoToAmount(t *testing.T) {
	store := memory.NewStore()
	customer, from := newFundedCustomer(t, store, "1111111112", decimal.RequireFromString("500"))
	to := newLinkedAccount(t, store, customer.ID, "Savings")

	svc := newTransferService(store)
	entry, err := svc.TransferFunds(context.Background(), customer.ID, from.ID, to.ID, decimal.RequireFromString("42.5"), time.Time{}, "")
	if err != nil {
		t.Fatalf("transfer funds: %v", err)
	}
	if entry.Memo != "Transfer 42.50" {
		t.Fatalf("default memo = %q, want %q", entry.Memo, "Transfer 42.50")
	}
}

func TestTransferServiceInsufficientFundsLeavesNoPartialState(t *testing.T) {
	store := memory.NewStore()
	customer, from := newFundedCustomer(t, store, "1111111113", decimal.RequireFromString("500"))
	to := newLinkedAccount(t, store, customer.ID, "Savings")
	before := store.EntryCount()

	svc := newTransferService(store)
	_, err := svc.TransferFunds(context.Background(), customer.ID, from.ID, to.ID, decimal.RequireFromString("600"), time.Time{}, "")

	var insufficient *domain.InsufficientFundsError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected insufficient funds error, got %v", err)
	}
	if !insufficient.Balance.Equal(decimal.RequireFromString("500")) {
		t.Fatalf("error balance = %s, want 500", insufficient.Balance)
	}
	if !insufficient.Amount.Equal(decimal.RequireFromString("600")) {
		t.Fatalf("error amount = %s, want 600", insufficient.Amount)
	}

	if got := store.EntryCount(); got != before {
		t.Fatalf("entry count = %d, want %d: rejected transfer must write nothing", got, before)
	}
	requireBalance(t, store, *from.LedgerAccountID, "500")
	requireBalance(t, store, *to.LedgerAccountID, "0")
}

func TestTransferServiceValidation(t *testing.T) {
	store := memory.NewStore()
	customer, from := newFundedCustomer(t, store, "1111111114", decimal.RequireFromString("500"))
	to := newLinkedAccount(t, store, customer.ID, "Savings")
	_, otherAccount := newFundedCustomer(t, store, "2222222224", decimal.Zero)

	svc := newTransferService(store)
	ctx := context.Background()
	amount := decimal.RequireFromString("10")

	if _, err := svc.TransferFunds(ctx, customer.ID, from.ID, from.ID, amount, time.Time{}, ""); !errors.Is(err, domain.ErrSameAccount) {
		t.Fatalf("same account: got %v, want %v", err, domain.ErrSameAccount)
	}
	if _, err := svc.TransferFunds(ctx, customer.ID, from.ID, to.ID, decimal.Zero, time.Time{}, ""); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("zero amount: got %v, want %v", err, domain.ErrInvalidAmount)
	}
	if _, err := svc.TransferFunds(ctx, customer.ID, from.ID, otherAccount.ID, amount, time.Time{}, ""); !errors.Is(err, domain.ErrAccountNotOwned) {
		t.Fatalf("unowned account: got %v, want %v", err, domain.ErrAccountNotOwned)
	}
	if _, err := svc.TransferFunds(ctx, customer.ID, from.ID, 9999, amount, time.Time{}, ""); !errors.Is(err, domain.ErrRecordNotFound) {
		t.Fatalf("missing account: got %v, want %v", err, domain.ErrRecordNotFound)
	}
}

func TestTransferServiceRejectsUnlinkedAccount(t *testing.T) {
	store := memory.NewStore()
	customer, from := newFundedCustomer(t, store, "1111111115", decimal.RequireFromString("500"))

	unlinked, err := store.CreateAccount(context.Background(), domain.Account{
		CustomerID: customer.ID,
		Name:       "Paper Account",
		Currency:   "USD",
		IsActive:   true,
	})
	if err != nil {
		t.Fatalf("create account: %v", err)
	}

	svc := newTransferService(store)
	_, err = svc.TransferFunds(context.Background(), customer.ID, from.ID, unlinked.ID, decimal.RequireFromString("10"), time.Time{}, "")
	if !errors.Is(err, domain.ErrAccountNotLedgerLinked) {
		t.Fatalf("got %v, want %v", err, domain.ErrAccountNotLedgerLinked)
	}
}

// Ten concurrent 100.00 transfers against a 500.00 balance: exactly
// five may commit, and the source account must never go negative.
func TestTransferServiceConcurrentTransfersCannotOverspend(t *testing.T) {
	store := memory.NewStore()
	customer, from := newFundedCustomer(t, store, "1111111116", decimal.RequireFromString("500"))
	to := newLinkedAccount(t, store, customer.ID, "Savings")

	svc := newTransferService(store)
	amount := decimal.RequireFromString("100")

	var wg sync.WaitGroup
	results := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.TransferFunds(context.Background(), customer.ID, from.ID, to.ID, amount, time.Time{}, "")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
			continue
		}
		if !domain.IsInsufficientFunds(err) {
			t.Fatalf("unexpected transfer error: %v", err)
		}
	}

	if succeeded != 5 {
		t.Fatalf("succeeded = %d, want exactly 5", succeeded)
	}
	requireBalance(t, store, *from.LedgerAccountID, "0")
	requireBalance(t, store, *to.LedgerAccountID, "500")
}
