package memory

import (
	"context"

	"github.com/api-sage/finance-ledger/internal/domain"
)

// The store exposes narrow views so one shared Store can stand in for
// every repository interface despite their overlapping method names.

type AccountStore struct {
	store *Store
}

func (s *Store) Accounts() *AccountStore {
	return &AccountStore{store: s}
}

func (v *AccountStore) CreateWithLedgerAccount(ctx context.Context, account domain.Account) (domain.Account, error) {
	return v.store.CreateAccountWithLedger(ctx, account)
}

func (v *AccountStore) GetByID(ctx context.Context, id int64) (domain.Account, error) {
	return v.store.GetAccountByID(ctx, id)
}

func (v *AccountStore) ListActiveByCustomer(ctx context.Context, customerID int64) ([]domain.Account, error) {
	return v.store.ListActiveByCustomer(ctx, customerID)
}

type TransferStore struct {
	store *Store
}

func (s *Store) Transfers() *TransferStore {
	return &TransferStore{store: s}
}

func (v *TransferStore) Create(ctx context.Context, transfer domain.Transfer) (domain.Transfer, error) {
	return v.store.CreateTransfer(ctx, transfer)
}

func (v *TransferStore) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Transfer, error) {
	return v.store.ListByCustomer(ctx, customerID)
}

type CategoryStore struct {
	store *Store
}

func (s *Store) Categories() *CategoryStore {
	return &CategoryStore{store: s}
}

func (v *CategoryStore) Create(ctx context.Context, category domain.Category) (domain.Category, error) {
	return v.store.CreateCategory(ctx, category)
}

func (v *CategoryStore) GetByID(ctx context.Context, id int64) (domain.Category, error) {
	return v.store.GetCategoryByID(ctx, id)
}

func (v *CategoryStore) List(ctx context.Context) ([]domain.Category, error) {
	return v.store.ListCategories(ctx)
}

type TransactionStore struct {
	store *Store
}

func (s *Store) Transactions() *TransactionStore {
	return &TransactionStore{store: s}
}

func (v *TransactionStore) Create(ctx context.Context, transaction domain.Transaction) (domain.Transaction, error) {
	return v.store.CreateTransaction(ctx, transaction)
}

func (v *TransactionStore) ListByCustomer(ctx context.Context, customerID int64, limit int) ([]domain.Transaction, error) {
	return v.store.ListTransactionsByCustomer(ctx, customerID, limit)
}

func (v *TransactionStore) SummarizeByCustomer(ctx context.Context, customerID int64) (domain.TransactionSummary, error) {
	return v.store.SummarizeTransactionsByCustomer(ctx, customerID)
}
