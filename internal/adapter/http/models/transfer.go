package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const transferDateLayout = "2006-01-02"

type TransferRequest struct {
	CustomerID    int64           `json:"customerId"`
	FromAccountID int64           `json:"fromAccountId"`
	ToAccountID   int64           `json:"toAccountId"`
	Amount        decimal.Decimal `json:"amount"`
	Date          string          `json:"date"`
	Memo          string          `json:"memo"`
}

func (r TransferRequest) Validate() error {
	var errs []string

	if r.CustomerID <= 0 {
		errs = append(errs, "customerId is required")
	}
	if r.FromAccountID <= 0 {
		errs = append(errs, "fromAccountId is required")
	}
	if r.ToAccountID <= 0 {
		errs = append(errs, "toAccountId is required")
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, "amount must be greater than zero")
	}
	if _, err := r.ParsedDate(); err != nil {
		errs = append(errs, "date must use the YYYY-MM-DD format")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// ParsedDate returns the zero time when no date was supplied; the
// workflow substitutes the current date.
func (r TransferRequest) ParsedDate() (time.Time, error) {
	return parseOptionalDate(r.Date)
}

type NationalTransferRequest struct {
	CustomerID          int64           `json:"customerId"`
	FromAccountID       int64           `json:"fromAccountId"`
	RecipientNationalID string          `json:"recipientNationalId"`
	Amount              decimal.Decimal `json:"amount"`
	Date                string          `json:"date"`
	Memo                string          `json:"memo"`
}

func (r NationalTransferRequest) Validate() error {
	var errs []string

	if r.CustomerID <= 0 {
		errs = append(errs, "customerId is required")
	}
	if r.FromAccountID <= 0 {
		errs = append(errs, "fromAccountId is required")
	}
	if strings.TrimSpace(r.RecipientNationalID) == "" {
		errs = append(errs, "recipientNationalId is required")
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, "amount must be greater than zero")
	}
	if _, err := r.ParsedDate(); err != nil {
		errs = append(errs, "date must use the YYYY-MM-DD format")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func (r NationalTransferRequest) ParsedDate() (time.Time, error) {
	return parseOptionalDate(r.Date)
}

type TransferResponse struct {
	JournalEntryID int64  `json:"journalEntryId"`
	Amount         string `json:"amount"`
	Date           string `json:"date"`
	Memo           string `json:"memo"`
}

func parseOptionalDate(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, nil
	}
	return time.Parse(transferDateLayout, trimmed)
}
