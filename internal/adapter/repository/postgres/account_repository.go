package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/finance-ledger/internal/domain"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// CreateWithLedgerAccount runs the account insert, the backing asset
// ledger account insert, and the link update in one transaction, so a
// failure at any step leaves no stranded unlinked account behind.
func (r *AccountRepository) CreateWithLedgerAccount(ctx context.Context, account domain.Account) (domain.Account, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Account{}, fmt.Errorf("begin account creation transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const accountQuery = `
INSERT INTO accounts (customer_id, name, currency, initial_balance, is_active)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at, updated_at`

	if err = tx.QueryRowContext(
		ctx,
		accountQuery,
		account.CustomerID,
		account.Name,
		account.Currency,
		account.InitialBalance,
		account.IsActive,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt); err != nil {
		return domain.Account{}, fmt.Errorf("insert account: %w", err)
	}

	const ledgerQuery = `
INSERT INTO ledger_accounts (customer_id, name, type, account_id)
VALUES ($1, $2, $3, $4)
RETURNING id`

	var ledgerAccountID int64
	if err = tx.QueryRowContext(
		ctx,
		ledgerQuery,
		account.CustomerID,
		account.Name,
		domain.LedgerAccountTypeAsset,
		account.ID,
	).Scan(&ledgerAccountID); err != nil {
		return domain.Account{}, fmt.Errorf("insert backing ledger account: %w", err)
	}

	const linkQuery = `
UPDATE accounts
SET ledger_account_id = $2
WHERE id = $1`

	if _, err = tx.ExecContext(ctx, linkQuery, account.ID, ledgerAccountID); err != nil {
		return domain.Account{}, fmt.Errorf("link ledger account: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return domain.Account{}, fmt.Errorf("commit account creation transaction: %w", err)
	}

	account.LedgerAccountID = &ledgerAccountID
	return account, nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (domain.Account, error) {
	const query = `
SELECT id, customer_id, name, currency, initial_balance, is_active, ledger_account_id, created_at, updated_at
FROM accounts
WHERE id = $1`

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Account{}, domain.ErrRecordNotFound
		}
		return domain.Account{}, fmt.Errorf("get account by id: %w", err)
	}
	return account, nil
}

func (r *AccountRepository) ListActiveByCustomer(ctx context.Context, customerID int64) ([]domain.Account, error) {
	const query = `
SELECT id, customer_id, name, currency, initial_balance, is_active, ledger_account_id, created_at, updated_at
FROM accounts
WHERE customer_id = $1 AND is_active = TRUE
ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list active accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var account domain.Account
		var ledgerAccountID sql.NullInt64
		if err := rows.Scan(
			&account.ID,
			&account.CustomerID,
			&account.Name,
			&account.Currency,
			&account.InitialBalance,
			&account.IsActive,
			&ledgerAccountID,
			&account.CreatedAt,
			&account.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		if ledgerAccountID.Valid {
			value := ledgerAccountID.Int64
			account.LedgerAccountID = &value
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}

	return accounts, nil
}

func scanAccount(row *sql.Row) (domain.Account, error) {
	var account domain.Account
	var ledgerAccountID sql.NullInt64
	if err := row.Scan(
		&account.ID,
		&account.CustomerID,
		&account.Name,
		&account.Currency,
		&account.InitialBalance,
		&account.IsActive,
		&ledgerAccountID,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return domain.Account{}, err
	}
	if ledgerAccountID.Valid {
		value := ledgerAccountID.Int64
		account.LedgerAccountID = &value
	}
	return account, nil
}
