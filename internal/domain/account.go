package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is the customer-facing bank account. InitialBalance is
// informational only; the authoritative balance is derived from the
// linked ledger account's lines.
type Account struct {
	ID              int64
	CustomerID      int64
	Name            string
	Currency        string
	InitialBalance  decimal.Decimal
	IsActive        bool
	LedgerAccountID *int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (a Account) IsLedgerLinked() bool {
	return a.LedgerAccountID != nil
}

func (a Account) OwnedBy(customerID int64) bool {
	return a.CustomerID == customerID
}
