package domain

import "time"

type Customer struct {
	ID                 int64
	NationalID         string
	FullName           string
	Email              string
	TransactionPinHash string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
