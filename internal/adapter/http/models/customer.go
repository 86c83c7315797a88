package models

import (
	"errors"
	"strings"
)

type CreateCustomerRequest struct {
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
	NationalID     string `json:"nationalId"`
	TransactionPin string `json:"transactionPin"`
}

func (r CreateCustomerRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.FullName) == "" {
		errs = append(errs, "fullName is required")
	}
	if strings.TrimSpace(r.Email) == "" || !strings.Contains(r.Email, "@") {
		errs = append(errs, "email must be a valid address")
	}
	if pin := strings.TrimSpace(r.TransactionPin); len(pin) < 4 {
		errs = append(errs, "transactionPin must be at least 4 digits")
	}
	if nid := strings.TrimSpace(r.NationalID); nid != "" && !digitsOnly(nid) {
		errs = append(errs, "nationalId must contain digits only")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

type CustomerResponse struct {
	ID               int64  `json:"id"`
	FullName         string `json:"fullName"`
	Email            string `json:"email"`
	MaskedNationalID string `json:"maskedNationalId"`
	CreatedAt        string `json:"createdAt"`
}

func digitsOnly(value string) bool {
	for _, ch := range value {
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}
