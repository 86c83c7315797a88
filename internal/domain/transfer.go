package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer is the bookkeeping record of a completed same-customer
// transfer. It is written once after the journal entry commits and is
// never mutated.
type Transfer struct {
	ID             int64
	CustomerID     int64
	Reference      string
	FromAccountID  int64
	ToAccountID    int64
	Amount         decimal.Decimal
	Date           time.Time
	Memo           string
	JournalEntryID int64
	CreatedAt      time.Time
}
