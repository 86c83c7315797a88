package domain

import "time"

type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

func (t CategoryType) IsValid() bool {
	return t == CategoryTypeIncome || t == CategoryTypeExpense
}

type Category struct {
	ID        int64
	Name      string
	Type      CategoryType
	Color     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
