package service_interfaces

import (
	"context"
	"time"

	"github.com/api-sage/finance-ledger/internal/domain"
	"github.com/shopspring/decimal"
)

type TransferService interface {
	TransferFunds(ctx context.Context, customerID int64, fromAccountID int64, toAccountID int64, amount decimal.Decimal, date time.Time, memo string) (domain.JournalEntry, error)
}

type NationalTransferService interface {
	TransferToNationalID(ctx context.Context, senderID int64, fromAccountID int64, recipientNationalID string, amount decimal.Decimal, date time.Time, memo string) error
}
