package services_test

import (
	"context"
	"testing"

	"github.com/api-sage/finance-ledger/internal/adapter/http/models"
	"github.com/api-sage/finance-ledger/internal/adapter/repository/memory"
	"github.com/api-sage/finance-ledger/internal/domain"
	"github.com/api-sage/finance-ledger/internal/usecase/services"
	"github.com/shopspring/decimal"
)

func newAccountService(store *memory.Store) *services.AccountService {
	return services.NewAccountService(store.Accounts(), store, store)
}

func TestAccountServiceCreateAccountIsLedgerLinked(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	customer, err := store.Create(ctx, domain.Customer{
		NationalID: "5555555501",
		FullName:   "Test Customer",
		Email:      "5555555501@example.com",
	})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}

	svc := newAccountService(store)
	response, err := svc.CreateAccount(ctx, models.CreateAccountRequest{
		CustomerID:     customer.ID,
		Name:           "Savings",
		Currency:       "usd",
		InitialBalance: decimal.Zero,
	})
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	if !response.Success {
		t.Fatalf("create account response not successful: %s", response.Message)
	}
	if response.Data.Currency != "USD" {
		t.Fatalf("currency = %s, want USD", response.Data.Currency)
	}
	if response.Data.LedgerAccountID == nil {
		t.Fatal("created account has no ledger account link")
	}

	ledgerAccount, err := store.GetLedgerAccount(ctx, *response.Data.LedgerAccountID)
	if err != nil {
		t.Fatalf("get backing ledger account: %v", err)
	}
	if ledgerAccount.Type != domain.LedgerAccountTypeAsset {
		t.Fatalf("backing ledger account type = %s, want %s", ledgerAccount.Type, domain.LedgerAccountTypeAsset)
	}
	if ledgerAccount.CustomerID != customer.ID {
		t.Fatalf("backing ledger account customer = %d, want %d", ledgerAccount.CustomerID, customer.ID)
	}
}

func TestAccountServiceCreateAccountUnknownCustomer(t *testing.T) {
	store := memory.NewStore()
	svc := newAccountService(store)

	response, err := svc.CreateAccount(context.Background(), models.CreateAccountRequest{
		CustomerID:     999,
		Name:           "Savings",
		Currency:       "USD",
		InitialBalance: decimal.Zero,
	})
	if err == nil {
		t.Fatal("expected error for unknown customer")
	}
	if response.Message != "customer not found" {
		t.Fatalf("message = %q, want %q", response.Message, "customer not found")
	}
}

func TestAccountServiceListAccountsDerivesBalance(t *testing.T) {
	store := memory.NewStore()
	customer, _ := newFundedCustomer(t, store, "5555555502", decimal.RequireFromString("350"))
	svc := newAccountService(store)

	response, err := svc.ListAccounts(context.Background(), customer.ID)
	if err != nil {
		t.Fatalf("list accounts: %v", err)
	}
	accounts := *response.Data
	if len(accounts) != 1 {
		t.Fatalf("accounts = %d, want 1", len(accounts))
	}
	if accounts[0].Balance != "350.00" {
		t.Fatalf("balance = %s, want 350.00", accounts[0].Balance)
	}
}
