package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type CreateAccountRequest struct {
	CustomerID     int64           `json:"customerId"`
	Name           string          `json:"name"`
	Currency       string          `json:"currency"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
}

func (r CreateAccountRequest) Validate() error {
	var errs []string

	if r.CustomerID <= 0 {
		errs = append(errs, "customerId is required")
	}
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "name is required")
	}
	if currency := strings.TrimSpace(r.Currency); len(currency) != 3 {
		errs = append(errs, "currency must be 3 characters")
	}
	if r.InitialBalance.IsNegative() {
		errs = append(errs, "initialBalance cannot be negative")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type AccountResponse struct {
	ID              int64  `json:"id"`
	CustomerID      int64  `json:"customerId"`
	Name            string `json:"name"`
	Currency        string `json:"currency"`
	Balance         string `json:"balance"`
	IsActive        bool   `json:"isActive"`
	LedgerAccountID *int64 `json:"ledgerAccountId,omitempty"`
	CreatedAt       string `json:"createdAt"`
}
