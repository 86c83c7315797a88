package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/api-sage/finance-ledger/internal/domain"
)

const balanceQueryPattern = `SELECT COALESCE\(SUM\(`

func TestLedgerRepositoryBalanceOf(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(balanceQueryPattern).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("123.45"))

	repo := NewLedgerRepository(db)
	balance, err := repo.BalanceOf(context.Background(), 7)
	require.NoError(t, err)
	require.True(t, balance.Equal(decimal.RequireFromString("123.45")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepositoryPostEntriesWithBalanceCheckRollsBackOnInsufficientFunds(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	lockQuery := regexp.QuoteMeta(`SELECT id FROM ledger_accounts WHERE id = $1 FOR UPDATE`)

	mock.ExpectBegin()
	// Locks are taken in ascending id order regardless of line order.
	mock.ExpectQuery(lockQuery).WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(lockQuery).WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectQuery(balanceQueryPattern).WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("50.00"))
	mock.ExpectRollback()

	amount := decimal.RequireFromString("75")
	entry := domain.JournalEntry{
		CustomerID: 1,
		Date:       time.Now(),
		Lines: []domain.LedgerLine{
			domain.DebitLine(1, amount),
			domain.CreditLine(2, amount),
		},
	}

	repo := NewLedgerRepository(db)
	_, err = repo.PostEntriesWithBalanceCheck(context.Background(), 2, amount, entry)

	var insufficient *domain.InsufficientFundsError
	require.ErrorAs(t, err, &insufficient)
	require.True(t, insufficient.Balance.Equal(decimal.RequireFromString("50")))
	require.True(t, insufficient.Amount.Equal(amount))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepositoryPostEntriesWithBalanceCheckCommits(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	lockQuery := regexp.QuoteMeta(`SELECT id FROM ledger_accounts WHERE id = $1 FOR UPDATE`)
	entryInsert := `INSERT INTO journal_entries`
	lineInsert := `INSERT INTO ledger_lines`

	now := time.Now()
	amount := decimal.RequireFromString("75")
	entry := domain.JournalEntry{
		CustomerID: 1,
		Date:       now,
		Memo:       "Transfer 75.00",
		Lines: []domain.LedgerLine{
			domain.DebitLine(3, amount),
			domain.CreditLine(2, amount),
		},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(lockQuery).WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectQuery(lockQuery).WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectQuery(balanceQueryPattern).WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("500.00"))
	mock.ExpectQuery(entryInsert).
		WithArgs(int64(1), now, "Transfer 75.00").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(10, now))
	mock.ExpectQuery(lineInsert).
		WithArgs(int64(10), int64(3), amount, decimal.Zero).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectQuery(lineInsert).
		WithArgs(int64(10), int64(2), decimal.Zero, amount).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
	mock.ExpectCommit()

	repo := NewLedgerRepository(db)
	posted, err := repo.PostEntriesWithBalanceCheck(context.Background(), 2, amount, entry)
	require.NoError(t, err)
	require.Len(t, posted, 1)
	require.Equal(t, int64(10), posted[0].ID)
	require.Equal(t, int64(10), posted[0].Lines[0].EntryID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepositoryPostEntriesWithBalanceCheckRollsBackOnLineInsertFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	lockQuery := regexp.QuoteMeta(`SELECT id FROM ledger_accounts WHERE id = $1 FOR UPDATE`)

	now := time.Now()
	amount := decimal.RequireFromString("75")
	entry := domain.JournalEntry{
		CustomerID: 1,
		Date:       now,
		Memo:       "Transfer 75.00",
		Lines: []domain.LedgerLine{
			domain.DebitLine(3, amount),
			domain.CreditLine(2, amount),
		},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(lockQuery).WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectQuery(lockQuery).WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectQuery(balanceQueryPattern).WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("500.00"))
	// The entry row lands, then the first line insert fails; the whole
	// transaction must roll back so neither becomes visible.
	mock.ExpectQuery(`INSERT INTO journal_entries`).
		WithArgs(int64(1), now, "Transfer 75.00").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(10, now))
	mock.ExpectQuery(`INSERT INTO ledger_lines`).
		WithArgs(int64(10), int64(3), amount, decimal.Zero).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	repo := NewLedgerRepository(db)
	_, err = repo.PostEntriesWithBalanceCheck(context.Background(), 2, amount, entry)
	require.Error(t, err)
	require.ErrorContains(t, err, "insert ledger line")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepositoryPostEntryRollsBackOnLineInsertFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	amount := decimal.RequireFromString("35.75")
	entry := domain.JournalEntry{
		CustomerID: 1,
		Date:       now,
		Memo:       "weekly shop",
		Lines: []domain.LedgerLine{
			domain.DebitLine(5, amount),
			domain.CreditLine(6, amount),
		},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO journal_entries`).
		WithArgs(int64(1), now, "weekly shop").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(20, now))
	mock.ExpectQuery(`INSERT INTO ledger_lines`).
		WithArgs(int64(20), int64(5), amount, decimal.Zero).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(21))
	mock.ExpectQuery(`INSERT INTO ledger_lines`).
		WithArgs(int64(20), int64(6), decimal.Zero, amount).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	repo := NewLedgerRepository(db)
	_, err = repo.PostEntry(context.Background(), entry)
	require.Error(t, err)
	require.ErrorContains(t, err, "insert ledger line")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepositoryPostEntriesWithBalanceCheckRejectsUnbalancedEntry(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	entry := domain.JournalEntry{
		CustomerID: 1,
		Date:       time.Now(),
		Lines: []domain.LedgerLine{
			domain.DebitLine(1, decimal.RequireFromString("10")),
			domain.CreditLine(2, decimal.RequireFromString("9")),
		},
	}

	repo := NewLedgerRepository(db)
	_, err = repo.PostEntriesWithBalanceCheck(context.Background(), 2, decimal.RequireFromString("10"), entry)
	require.ErrorIs(t, err, domain.ErrEntryNotBalanced)
	// Validation fails before any database work starts.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepositoryGetOrCreateSystemAccountRetriesOnUniqueViolation(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	selectByName := `SELECT id, customer_id, name, type, account_id, created_at, updated_at`
	insert := `INSERT INTO ledger_accounts`
	now := time.Now()

	mock.ExpectQuery(selectByName).
		WithArgs(int64(4), domain.TransfersOutAccountName).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(insert).
		WithArgs(int64(4), domain.TransfersOutAccountName, domain.LedgerAccountTypeExpense, nil).
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectQuery(selectByName).
		WithArgs(int64(4), domain.TransfersOutAccountName).
		WillReturnRows(sqlmock.NewRows([]string{"id", "customer_id", "name", "type", "account_id", "created_at", "updated_at"}).
			AddRow(42, 4, domain.TransfersOutAccountName, "expense", nil, now, now))

	repo := NewLedgerRepository(db)
	account, err := repo.GetOrCreateSystemAccount(context.Background(), 4, domain.TransfersOutAccountName, domain.LedgerAccountTypeExpense)
	require.NoError(t, err)
	require.Equal(t, int64(42), account.ID)
	require.Equal(t, domain.LedgerAccountTypeExpense, account.Type)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepositoryGetLedgerAccountNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, customer_id, name, type, account_id, created_at, updated_at`).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := NewLedgerRepository(db)
	_, err = repo.GetLedgerAccount(context.Background(), 99)
	require.ErrorIs(t, err, domain.ErrRecordNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUniqueViolation(t *testing.T) {
	require.True(t, isUniqueViolation(&pq.Error{Code: "23505"}))
	require.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	require.False(t, isUniqueViolation(errors.New("plain error")))
}
