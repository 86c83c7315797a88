// Package memory provides a mutex-guarded in-memory implementation of
// the repository contracts. It mirrors the transactional guarantees of
// the postgres adapter closely enough for the workflow and concurrency
// tests: balance checks and writes happen under one lock, so a
// rejected posting leaves no partial state behind.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/api-sage/finance-ledger/internal/domain"
	"github.com/shopspring/decimal"
)

type Store struct {
	mu sync.Mutex

	customers      map[int64]domain.Customer
	accounts       map[int64]domain.Account
	ledgerAccounts map[int64]domain.LedgerAccount
	entries        map[int64]domain.JournalEntry
	transfers      map[int64]domain.Transfer
	categories     map[int64]domain.Category
	transactions   map[int64]domain.Transaction

	nextID int64
}

func NewStore() *Store {
	return &Store{
		customers:      make(map[int64]domain.Customer),
		accounts:       make(map[int64]domain.Account),
		ledgerAccounts: make(map[int64]domain.LedgerAccount),
		entries:        make(map[int64]domain.JournalEntry),
		transfers:      make(map[int64]domain.Transfer),
		categories:     make(map[int64]domain.Category),
		transactions:   make(map[int64]domain.Transaction),
	}
}

func (s *Store) nextIDLocked() int64 {
	s.nextID++
	return s.nextID
}

func (s *Store) Create(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customer.ID = s.nextIDLocked()
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = customer.CreatedAt
	s.customers[customer.ID] = customer
	return customer, nil
}

func (s *Store) GetByID(ctx context.Context, id int64) (domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customer, ok := s.customers[id]
	if !ok {
		return domain.Customer{}, domain.ErrRecordNotFound
	}
	return customer, nil
}

func (s *Store) GetByNationalID(ctx context.Context, nationalID string) (domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, customer := range s.customers {
		if customer.NationalID != "" && customer.NationalID == nationalID {
			return customer, nil
		}
	}
	return domain.Customer{}, domain.ErrRecordNotFound
}

func (s *Store) CreateAccount(ctx context.Context, account domain.Account) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account.ID = s.nextIDLocked()
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	s.accounts[account.ID] = account
	return account, nil
}

// CreateAccountWithLedger creates the account, its backing asset
// ledger account, and the link under one critical section.
func (s *Store) CreateAccountWithLedger(ctx context.Context, account domain.Account) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account.ID = s.nextIDLocked()
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt

	accountID := account.ID
	ledgerAccount, err := s.createLedgerAccountLocked(domain.LedgerAccount{
		CustomerID: account.CustomerID,
		Name:       account.Name,
		Type:       domain.LedgerAccountTypeAsset,
		AccountID:  &accountID,
	})
	if err != nil {
		return domain.Account{}, err
	}

	account.LedgerAccountID = &ledgerAccount.ID
	s.accounts[account.ID] = account
	return account, nil
}

func (s *Store) GetAccountByID(ctx context.Context, id int64) (domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[id]
	if !ok {
		return domain.Account{}, domain.ErrRecordNotFound
	}
	return account, nil
}

func (s *Store) ListActiveByCustomer(ctx context.Context, customerID int64) ([]domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var accounts []domain.Account
	for _, account := range s.accounts {
		if account.CustomerID == customerID && account.IsActive {
			accounts = append(accounts, account)
		}
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts, nil
}

func (s *Store) LinkLedgerAccount(ctx context.Context, accountID int64, ledgerAccountID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[accountID]
	if !ok {
		return domain.ErrRecordNotFound
	}
	account.LedgerAccountID = &ledgerAccountID
	account.UpdatedAt = time.Now()
	s.accounts[accountID] = account
	return nil
}

func (s *Store) CreateLedgerAccount(ctx context.Context, account domain.LedgerAccount) (domain.LedgerAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createLedgerAccountLocked(account)
}

func (s *Store) createLedgerAccountLocked(account domain.LedgerAccount) (domain.LedgerAccount, error) {
	account.ID = s.nextIDLocked()
	account.CreatedAt = time.Now()
	account.UpdatedAt = account.CreatedAt
	s.ledgerAccounts[account.ID] = account
	return account, nil
}

func (s *Store) GetLedgerAccount(ctx context.Context, id int64) (domain.LedgerAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.ledgerAccounts[id]
	if !ok {
		return domain.LedgerAccount{}, domain.ErrRecordNotFound
	}
	return account, nil
}

func (s *Store) GetOrCreateSystemAccount(ctx context.Context, customerID int64, name string, accountType domain.LedgerAccountType) (domain.LedgerAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, account := range s.ledgerAccounts {
		if account.CustomerID == customerID && account.Name == name {
			return account, nil
		}
	}
	return s.createLedgerAccountLocked(domain.LedgerAccount{
		CustomerID: customerID,
		Name:       name,
		Type:       accountType,
	})
}

func (s *Store) BalanceOf(ctx context.Context, ledgerAccountID int64) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balanceLocked(ledgerAccountID)
}

func (s *Store) balanceLocked(ledgerAccountID int64) (decimal.Decimal, error) {
	account, ok := s.ledgerAccounts[ledgerAccountID]
	if !ok {
		return decimal.Zero, domain.ErrRecordNotFound
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, entry := range s.entries {
		for _, line := range entry.Lines {
			if line.LedgerAccountID != ledgerAccountID {
				continue
			}
			totalDebit = totalDebit.Add(line.Debit)
			totalCredit = totalCredit.Add(line.Credit)
		}
	}
	return account.Type.Balance(totalDebit, totalCredit), nil
}

func (s *Store) PostEntry(ctx context.Context, entry domain.JournalEntry) (domain.JournalEntry, error) {
	if err := entry.Validate(); err != nil {
		return domain.JournalEntry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertEntryLocked(entry)
}

func (s *Store) PostEntriesWithBalanceCheck(ctx context.Context, sourceLedgerAccountID int64, amount decimal.Decimal, entries ...domain.JournalEntry) ([]domain.JournalEntry, error) {
	for _, entry := range entries {
		if err := entry.Validate(); err != nil {
			return nil, err
		}
	}

	// One critical section for check and writes; concurrent transfers
	// against the same source account serialize here just as they do on
	// the database's row locks.
	s.mu.Lock()
	defer s.mu.Unlock()

	balance, err := s.balanceLocked(sourceLedgerAccountID)
	if err != nil {
		return nil, err
	}
	if amount.GreaterThan(balance) {
		return nil, &domain.InsufficientFundsError{Balance: balance, Amount: amount}
	}

	// Every entry's account references are resolved before anything is
	// inserted; a bad later entry must not leave earlier entries behind.
	for _, entry := range entries {
		for _, line := range entry.Lines {
			if _, ok := s.ledgerAccounts[line.LedgerAccountID]; !ok {
				return nil, domain.ErrRecordNotFound
			}
		}
	}

	posted := make([]domain.JournalEntry, 0, len(entries))
	for _, entry := range entries {
		persisted, err := s.insertEntryLocked(entry)
		if err != nil {
			return nil, err
		}
		posted = append(posted, persisted)
	}
	return posted, nil
}

func (s *Store) insertEntryLocked(entry domain.JournalEntry) (domain.JournalEntry, error) {
	for _, line := range entry.Lines {
		if _, ok := s.ledgerAccounts[line.LedgerAccountID]; !ok {
			return domain.JournalEntry{}, domain.ErrRecordNotFound
		}
	}

	entry.ID = s.nextIDLocked()
	entry.CreatedAt = time.Now()
	lines := make([]domain.LedgerLine, len(entry.Lines))
	copy(lines, entry.Lines)
	for i := range lines {
		lines[i].ID = s.nextIDLocked()
		lines[i].EntryID = entry.ID
	}
	entry.Lines = lines
	s.entries[entry.ID] = entry
	return entry, nil
}

func (s *Store) CreateTransfer(ctx context.Context, transfer domain.Transfer) (domain.Transfer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	transfer.ID = s.nextIDLocked()
	transfer.CreatedAt = time.Now()
	s.transfers[transfer.ID] = transfer
	return transfer, nil
}

func (s *Store) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Transfer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var transfers []domain.Transfer
	for _, transfer := range s.transfers {
		if transfer.CustomerID == customerID {
			transfers = append(transfers, transfer)
		}
	}
	sort.Slice(transfers, func(i, j int) bool { return transfers[i].ID > transfers[j].ID })
	return transfers, nil
}

func (s *Store) CreateCategory(ctx context.Context, category domain.Category) (domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	category.ID = s.nextIDLocked()
	category.CreatedAt = time.Now()
	category.UpdatedAt = category.CreatedAt
	s.categories[category.ID] = category
	return category, nil
}

func (s *Store) GetCategoryByID(ctx context.Context, id int64) (domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	category, ok := s.categories[id]
	if !ok {
		return domain.Category{}, domain.ErrRecordNotFound
	}
	return category, nil
}

func (s *Store) ListCategories(ctx context.Context) ([]domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	categories := make([]domain.Category, 0, len(s.categories))
	for _, category := range s.categories {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories, nil
}

func (s *Store) CreateTransaction(ctx context.Context, transaction domain.Transaction) (domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	transaction.ID = s.nextIDLocked()
	transaction.CreatedAt = time.Now()
	transaction.UpdatedAt = transaction.CreatedAt
	s.transactions[transaction.ID] = transaction
	return transaction, nil
}

func (s *Store) ListTransactionsByCustomer(ctx context.Context, customerID int64, limit int) ([]domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var transactions []domain.Transaction
	for _, transaction := range s.transactions {
		account, ok := s.accounts[transaction.AccountID]
		if !ok || account.CustomerID != customerID {
			continue
		}
		transactions = append(transactions, transaction)
	}
	sort.Slice(transactions, func(i, j int) bool { return transactions[i].ID > transactions[j].ID })
	if limit > 0 && len(transactions) > limit {
		transactions = transactions[:limit]
	}
	return transactions, nil
}

func (s *Store) SummarizeTransactionsByCustomer(ctx context.Context, customerID int64) (domain.TransactionSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := domain.TransactionSummary{
		IncomeTotal:  decimal.Zero,
		ExpenseTotal: decimal.Zero,
		NetTotal:     decimal.Zero,
	}
	totals := make(map[int64]decimal.Decimal)
	for _, transaction := range s.transactions {
		account, ok := s.accounts[transaction.AccountID]
		if !ok || account.CustomerID != customerID {
			continue
		}
		category, ok := s.categories[transaction.CategoryID]
		if !ok {
			continue
		}
		totals[category.ID] = totals[category.ID].Add(transaction.Amount)
		if category.Type == domain.CategoryTypeIncome {
			summary.IncomeTotal = summary.IncomeTotal.Add(transaction.Amount)
		} else {
			summary.ExpenseTotal = summary.ExpenseTotal.Add(transaction.Amount)
		}
	}
	summary.NetTotal = summary.IncomeTotal.Sub(summary.ExpenseTotal)

	categoryIDs := make([]int64, 0, len(totals))
	for id := range totals {
		categoryIDs = append(categoryIDs, id)
	}
	sort.Slice(categoryIDs, func(i, j int) bool { return categoryIDs[i] < categoryIDs[j] })
	for _, id := range categoryIDs {
		category := s.categories[id]
		summary.ByCategory = append(summary.ByCategory, domain.CategoryTotal{
			CategoryName: category.Name,
			Type:         category.Type,
			Total:        totals[id],
		})
	}
	return summary, nil
}

// EntryCount reports the number of committed journal entries; the
// atomicity tests use it to assert that rejected postings wrote
// nothing.
func (s *Store) EntryCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// LedgerAccountCount reports how many ledger accounts a customer owns
// with the given name.
func (s *Store) LedgerAccountCount(customerID int64, name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, account := range s.ledgerAccounts {
		if account.CustomerID == customerID && account.Name == name {
			count++
		}
	}
	return count
}

// Entries returns a snapshot of all committed journal entries.
func (s *Store) Entries() []domain.JournalEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make([]domain.JournalEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries
}
