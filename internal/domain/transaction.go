package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single income or expense movement recorded against a
// customer-facing account, classified by category.
type Transaction struct {
	ID          int64
	AccountID   int64
	CategoryID  int64
	Amount      decimal.Decimal
	Date        time.Time
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CategoryTotal struct {
	CategoryName string
	Type         CategoryType
	Total        decimal.Decimal
}

// TransactionSummary backs the dashboard: overall income and expense
// totals plus per-category breakdowns.
type TransactionSummary struct {
	IncomeTotal  decimal.Decimal
	ExpenseTotal decimal.Decimal
	NetTotal     decimal.Decimal
	ByCategory   []CategoryTotal
}
