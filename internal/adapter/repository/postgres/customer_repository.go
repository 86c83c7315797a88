package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/finance-ledger/internal/domain"
)

type CustomerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	const query = `
INSERT INTO customers (national_id, full_name, email, transaction_pin_hash)
VALUES (NULLIF($1, ''), $2, $3, $4)
RETURNING id, created_at, updated_at`

	if err := r.db.QueryRowContext(
		ctx,
		query,
		customer.NationalID,
		customer.FullName,
		customer.Email,
		customer.TransactionPinHash,
	).Scan(&customer.ID, &customer.CreatedAt, &customer.UpdatedAt); err != nil {
		return domain.Customer{}, fmt.Errorf("create customer: %w", err)
	}

	return customer, nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id int64) (domain.Customer, error) {
	const query = `
SELECT id, COALESCE(national_id, ''), full_name, email, transaction_pin_hash, created_at, updated_at
FROM customers
WHERE id = $1`

	customer, err := scanCustomer(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Customer{}, domain.ErrRecordNotFound
		}
		return domain.Customer{}, fmt.Errorf("get customer by id: %w", err)
	}
	return customer, nil
}

func (r *CustomerRepository) GetByNationalID(ctx context.Context, nationalID string) (domain.Customer, error) {
	const query = `
SELECT id, COALESCE(national_id, ''), full_name, email, transaction_pin_hash, created_at, updated_at
FROM customers
WHERE national_id = $1`

	customer, err := scanCustomer(r.db.QueryRowContext(ctx, query, nationalID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Customer{}, domain.ErrRecordNotFound
		}
		return domain.Customer{}, fmt.Errorf("get customer by national id: %w", err)
	}
	return customer, nil
}

func scanCustomer(row *sql.Row) (domain.Customer, error) {
	var customer domain.Customer
	if err := row.Scan(
		&customer.ID,
		&customer.NationalID,
		&customer.FullName,
		&customer.Email,
		&customer.TransactionPinHash,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	); err != nil {
		return domain.Customer{}, err
	}
	return customer, nil
}
