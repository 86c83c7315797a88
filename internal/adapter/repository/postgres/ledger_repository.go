package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/api-sage/finance-ledger/internal/domain"
	"github.com/api-sage/finance-ledger/internal/logger"
	"github.com/shopspring/decimal"
)

type LedgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *LedgerRepository) CreateLedgerAccount(ctx context.Context, account domain.LedgerAccount) (domain.LedgerAccount, error) {
	const query = `
INSERT INTO ledger_accounts (customer_id, name, type, account_id)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at, updated_at`

	if err := r.db.QueryRowContext(
		ctx,
		query,
		account.CustomerID,
		account.Name,
		account.Type,
		account.AccountID,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt); err != nil {
		return domain.LedgerAccount{}, fmt.Errorf("create ledger account: %w", err)
	}

	return account, nil
}

func (r *LedgerRepository) GetLedgerAccount(ctx context.Context, id int64) (domain.LedgerAccount, error) {
	const query = `
SELECT id, customer_id, name, type, account_id, created_at, updated_at
FROM ledger_accounts
WHERE id = $1`

	account, err := scanLedgerAccount(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.LedgerAccount{}, domain.ErrRecordNotFound
		}
		return domain.LedgerAccount{}, fmt.Errorf("get ledger account: %w", err)
	}
	return account, nil
}

// GetOrCreateSystemAccount is idempotent on (customer, name). The
// unique constraint on ledger_accounts is the source of truth: a
// concurrent creator that loses the insert race re-reads the winner's
// row instead of erroring.
func (r *LedgerRepository) GetOrCreateSystemAccount(ctx context.Context, customerID int64, name string, accountType domain.LedgerAccountType) (domain.LedgerAccount, error) {
	account, err := r.getLedgerAccountByName(ctx, customerID, name)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, domain.ErrRecordNotFound) {
		return domain.LedgerAccount{}, err
	}

	created, err := r.CreateLedgerAccount(ctx, domain.LedgerAccount{
		CustomerID: customerID,
		Name:       name,
		Type:       accountType,
	})
	if err == nil {
		logger.Info("ledger repository system account created", logger.Fields{
			"customerId": customerID,
			"name":       name,
			"type":       accountType,
		})
		return created, nil
	}
	if !isUniqueViolation(err) {
		return domain.LedgerAccount{}, err
	}

	// Lost the race to a concurrent creator; the row now exists.
	return r.getLedgerAccountByName(ctx, customerID, name)
}

func (r *LedgerRepository) getLedgerAccountByName(ctx context.Context, customerID int64, name string) (domain.LedgerAccount, error) {
	const query = `
SELECT id, customer_id, name, type, account_id, created_at, updated_at
FROM ledger_accounts
WHERE customer_id = $1 AND name = $2`

	account, err := scanLedgerAccount(r.db.QueryRowContext(ctx, query, customerID, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.LedgerAccount{}, domain.ErrRecordNotFound
		}
		return domain.LedgerAccount{}, fmt.Errorf("get ledger account by name: %w", err)
	}
	return account, nil
}

func (r *LedgerRepository) BalanceOf(ctx context.Context, ledgerAccountID int64) (decimal.Decimal, error) {
	return balanceOf(ctx, r.db, ledgerAccountID)
}

// balanceOf derives the balance from the account's committed lines:
// debit minus credit for asset and expense accounts, credit minus debit
// for the rest. Zero when there are no lines.
func balanceOf(ctx context.Context, q queryRower, ledgerAccountID int64) (decimal.Decimal, error) {
	const query = `
SELECT COALESCE(SUM(
	CASE WHEN la.type IN ('asset', 'expense')
	     THEN ll.debit - ll.credit
	     ELSE ll.credit - ll.debit
	END
), 0)
FROM ledger_accounts la
LEFT JOIN ledger_lines ll ON ll.ledger_account_id = la.id
WHERE la.id = $1`

	var balance decimal.Decimal
	if err := q.QueryRowContext(ctx, query, ledgerAccountID).Scan(&balance); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, domain.ErrRecordNotFound
		}
		return decimal.Zero, fmt.Errorf("balance of ledger account: %w", err)
	}
	return balance, nil
}

func (r *LedgerRepository) PostEntry(ctx context.Context, entry domain.JournalEntry) (domain.JournalEntry, error) {
	if err := entry.Validate(); err != nil {
		return domain.JournalEntry{}, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.JournalEntry{}, fmt.Errorf("begin posting transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	posted, err := insertEntryTx(ctx, tx, entry)
	if err != nil {
		return domain.JournalEntry{}, err
	}

	if err = tx.Commit(); err != nil {
		return domain.JournalEntry{}, fmt.Errorf("commit posting transaction: %w", err)
	}

	logger.Info("ledger repository entry posted", logger.Fields{
		"entryId":    posted.ID,
		"customerId": posted.CustomerID,
		"lines":      len(posted.Lines),
	})

	return posted, nil
}

func (r *LedgerRepository) PostEntriesWithBalanceCheck(ctx context.Context, sourceLedgerAccountID int64, amount decimal.Decimal, entries ...domain.JournalEntry) ([]domain.JournalEntry, error) {
	for _, entry := range entries {
		if err := entry.Validate(); err != nil {
			return nil, err
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transfer transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = lockLedgerAccounts(ctx, tx, collectLedgerAccountIDs(sourceLedgerAccountID, entries)); err != nil {
		return nil, err
	}

	// Authoritative check: the balance observed here cannot move until
	// this transaction commits or aborts.
	balance, err := balanceOf(ctx, tx, sourceLedgerAccountID)
	if err != nil {
		return nil, err
	}
	if amount.GreaterThan(balance) {
		err = &domain.InsufficientFundsError{Balance: balance, Amount: amount}
		return nil, err
	}

	posted := make([]domain.JournalEntry, 0, len(entries))
	for _, entry := range entries {
		var persisted domain.JournalEntry
		persisted, err = insertEntryTx(ctx, tx, entry)
		if err != nil {
			return nil, err
		}
		posted = append(posted, persisted)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transfer transaction: %w", err)
	}

	logger.Info("ledger repository entries posted with balance check", logger.Fields{
		"sourceLedgerAccountId": sourceLedgerAccountID,
		"amount":                amount.StringFixed(2),
		"entries":               len(posted),
	})

	return posted, nil
}

// lockLedgerAccounts takes row-level exclusive locks on every account,
// always in ascending id order so overlapping transfers cannot
// deadlock each other.
func lockLedgerAccounts(ctx context.Context, tx *sql.Tx, ids []int64) error {
	const query = `SELECT id FROM ledger_accounts WHERE id = $1 FOR UPDATE`

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		var locked int64
		if err := tx.QueryRowContext(ctx, query, id).Scan(&locked); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrRecordNotFound
			}
			return fmt.Errorf("lock ledger account %d: %w", id, err)
		}
	}
	return nil
}

func collectLedgerAccountIDs(sourceID int64, entries []domain.JournalEntry) []int64 {
	seen := map[int64]struct{}{sourceID: {}}
	ids := []int64{sourceID}
	for _, entry := range entries {
		for _, id := range entry.LedgerAccountIDs() {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}

func insertEntryTx(ctx context.Context, tx *sql.Tx, entry domain.JournalEntry) (domain.JournalEntry, error) {
	const entryQuery = `
INSERT INTO journal_entries (customer_id, entry_date, memo)
VALUES ($1, $2, $3)
RETURNING id, created_at`

	var id int64
	var createdAt time.Time
	if err := tx.QueryRowContext(
		ctx,
		entryQuery,
		entry.CustomerID,
		entry.Date,
		entry.Memo,
	).Scan(&id, &createdAt); err != nil {
		return domain.JournalEntry{}, fmt.Errorf("insert journal entry: %w", err)
	}

	entry.ID = id
	entry.CreatedAt = createdAt

	const lineQuery = `
INSERT INTO ledger_lines (entry_id, ledger_account_id, debit, credit)
VALUES ($1, $2, $3, $4)
RETURNING id`

	for i := range entry.Lines {
		line := &entry.Lines[i]
		line.EntryID = entry.ID
		if err := tx.QueryRowContext(
			ctx,
			lineQuery,
			line.EntryID,
			line.LedgerAccountID,
			line.Debit,
			line.Credit,
		).Scan(&line.ID); err != nil {
			return domain.JournalEntry{}, fmt.Errorf("insert ledger line: %w", err)
		}
	}

	return entry, nil
}

func scanLedgerAccount(row *sql.Row) (domain.LedgerAccount, error) {
	var account domain.LedgerAccount
	var accountID sql.NullInt64
	if err := row.Scan(
		&account.ID,
		&account.CustomerID,
		&account.Name,
		&account.Type,
		&accountID,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return domain.LedgerAccount{}, err
	}
	if accountID.Valid {
		value := accountID.Int64
		account.AccountID = &value
	}
	return account, nil
}
