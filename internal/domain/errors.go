package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var ErrRecordNotFound = errors.New("record not found")

var (
	ErrEmptyEntry          = errors.New("ledger entry has no lines")
	ErrEntryNotBalanced    = errors.New("ledger entry is not balanced")
	ErrLineAccountRequired = errors.New("ledger line requires a ledger account")
	ErrLineAmountInvalid   = errors.New("ledger line must carry exactly one positive amount")
)

var (
	ErrInvalidAmount            = errors.New("amount must be positive")
	ErrSameAccount              = errors.New("source and destination accounts must be different")
	ErrAccountNotOwned          = errors.New("account does not belong to this customer")
	ErrAccountNotLedgerLinked   = errors.New("account has no linked ledger account")
	ErrRecipientRequired        = errors.New("recipient national id is required")
	ErrRecipientNotFound        = errors.New("recipient not found")
	ErrSelfTransfer             = errors.New("cannot transfer to self")
	ErrNoActiveRecipientAccount = errors.New("recipient has no active account")
)

// InsufficientFundsError carries the balance observed under lock and
// the requested amount so callers can present both.
type InsufficientFundsError struct {
	Balance decimal.Decimal
	Amount  decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: balance=%s, amount=%s",
		e.Balance.StringFixed(2), e.Amount.StringFixed(2))
}

func IsInsufficientFunds(err error) bool {
	var target *InsufficientFundsError
	return errors.As(err, &target)
}
