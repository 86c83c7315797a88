package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type LedgerAccountType string

const (
	LedgerAccountTypeAsset     LedgerAccountType = "asset"
	LedgerAccountTypeLiability LedgerAccountType = "liability"
	LedgerAccountTypeEquity    LedgerAccountType = "equity"
	LedgerAccountTypeIncome    LedgerAccountType = "income"
	LedgerAccountTypeExpense   LedgerAccountType = "expense"
)

func (t LedgerAccountType) IsValid() bool {
	switch t {
	case LedgerAccountTypeAsset, LedgerAccountTypeLiability, LedgerAccountTypeEquity,
		LedgerAccountTypeIncome, LedgerAccountTypeExpense:
		return true
	}
	return false
}

// DebitNormal reports whether accounts of this type grow on the debit
// side. Asset and expense balances are debit minus credit; liability,
// equity and income balances are credit minus debit.
func (t LedgerAccountType) DebitNormal() bool {
	return t == LedgerAccountTypeAsset || t == LedgerAccountTypeExpense
}

// Balance applies the sign rule for this account type to raw debit and
// credit totals.
func (t LedgerAccountType) Balance(totalDebit, totalCredit decimal.Decimal) decimal.Decimal {
	if t.DebitNormal() {
		return totalDebit.Sub(totalCredit)
	}
	return totalCredit.Sub(totalDebit)
}

// System suspense ledger account names used to keep each customer's
// journal self-balanced when funds cross customer boundaries.
const (
	TransfersOutAccountName = "Transfers Out"
	TransfersInAccountName  = "Transfers In"
)

// LedgerAccount is an internal bookkeeping bucket owned by one
// customer. (CustomerID, Name) is unique. Its balance is always derived
// from its lines, never stored.
type LedgerAccount struct {
	ID         int64
	CustomerID int64
	Name       string
	Type       LedgerAccountType
	AccountID  *int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// JournalEntry is a dated, memo-bearing group of ledger lines
// representing one financial event. Total debits must equal total
// credits exactly.
type JournalEntry struct {
	ID         int64
	CustomerID int64
	Date       time.Time
	Memo       string
	Lines      []LedgerLine
	CreatedAt  time.Time
}

// LedgerLine is one debit-or-credit movement against a single ledger
// account. Exactly one of Debit and Credit must be positive, the other
// zero.
type LedgerLine struct {
	ID              int64
	EntryID         int64
	LedgerAccountID int64
	Debit           decimal.Decimal
	Credit          decimal.Decimal
}

func DebitLine(ledgerAccountID int64, amount decimal.Decimal) LedgerLine {
	return LedgerLine{LedgerAccountID: ledgerAccountID, Debit: amount, Credit: decimal.Zero}
}

func CreditLine(ledgerAccountID int64, amount decimal.Decimal) LedgerLine {
	return LedgerLine{LedgerAccountID: ledgerAccountID, Debit: decimal.Zero, Credit: amount}
}

func (l LedgerLine) Validate() error {
	if l.LedgerAccountID == 0 {
		return ErrLineAccountRequired
	}
	if l.Debit.IsNegative() || l.Credit.IsNegative() {
		return ErrLineAmountInvalid
	}
	debitSet := l.Debit.IsPositive()
	creditSet := l.Credit.IsPositive()
	if debitSet == creditSet {
		return ErrLineAmountInvalid
	}
	return nil
}

// Validate enforces the entry-level invariants: at least one line,
// every line well-formed, and exact decimal equality of debit and
// credit totals.
func (e JournalEntry) Validate() error {
	if len(e.Lines) == 0 {
		return ErrEmptyEntry
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, line := range e.Lines {
		if err := line.Validate(); err != nil {
			return err
		}
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}

	if !totalDebit.Equal(totalCredit) {
		return ErrEntryNotBalanced
	}
	return nil
}

// LedgerAccountIDs returns the distinct ledger accounts touched by the
// entry's lines.
func (e JournalEntry) LedgerAccountIDs() []int64 {
	seen := make(map[int64]struct{}, len(e.Lines))
	ids := make([]int64, 0, len(e.Lines))
	for _, line := range e.Lines {
		if _, ok := seen[line.LedgerAccountID]; ok {
			continue
		}
		seen[line.LedgerAccountID] = struct{}{}
		ids = append(ids, line.LedgerAccountID)
	}
	return ids
}
