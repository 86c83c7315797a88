package models

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

type CreateTransactionRequest struct {
	CustomerID  int64           `json:"customerId"`
	AccountID   int64           `json:"accountId"`
	CategoryID  int64           `json:"categoryId"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
}

func (r CreateTransactionRequest) Validate() error {
	var errs []string

	if r.CustomerID <= 0 {
		errs = append(errs, "customerId is required")
	}
	if r.AccountID <= 0 {
		errs = append(errs, "accountId is required")
	}
	if r.CategoryID <= 0 {
		errs = append(errs, "categoryId is required")
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, "amount must be greater than zero")
	}
	if strings.TrimSpace(r.Date) == "" {
		errs = append(errs, "date is required")
	} else if _, err := parseOptionalDate(r.Date); err != nil {
		errs = append(errs, "date must use the YYYY-MM-DD format")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type TransactionResponse struct {
	ID          int64  `json:"id"`
	AccountID   int64  `json:"accountId"`
	CategoryID  int64  `json:"categoryId"`
	Amount      string `json:"amount"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

type CreateCategoryRequest struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Color string `json:"color"`
}

func (r CreateCategoryRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, "name is required")
	}
	if r.Type != "income" && r.Type != "expense" {
		errs = append(errs, "type must be income or expense")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type CategoryResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Color string `json:"color"`
}

type CategoryTotalResponse struct {
	Category string `json:"category"`
	Type     string `json:"type"`
	Total    string `json:"total"`
}

type DashboardResponse struct {
	IncomeTotal  string                  `json:"incomeTotal"`
	ExpenseTotal string                  `json:"expenseTotal"`
	NetTotal     string                  `json:"netTotal"`
	ByCategory   []CategoryTotalResponse `json:"byCategory"`
	Recent       []TransactionResponse   `json:"recent"`
}
