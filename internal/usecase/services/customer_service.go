package services

import (
	"context"
	"strings"
	"time"

	"github.com/api-sage/finance-ledger/internal/adapter/http/models"
	"github.com/api-sage/finance-ledger/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/finance-ledger/internal/commons"
	"github.com/api-sage/finance-ledger/internal/domain"
	"github.com/api-sage/finance-ledger/internal/logger"
	"golang.org/x/crypto/bcrypt"
)

type CustomerService struct {
	customerRepo repo_interfaces.CustomerRepository
}

func NewCustomerService(customerRepo repo_interfaces.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

func (s *CustomerService) CreateCustomer(ctx context.Context, req models.CreateCustomerRequest) (commons.Response[models.CustomerResponse], error) {
	logger.Info("customer service create customer request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("customer service create customer validation failed", err, nil)
		return commons.ErrorResponse[models.CustomerResponse]("validation failed", err.Error()), err
	}

	pinHash, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(req.TransactionPin)), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("customer service hash transaction pin failed", err, nil)
		return commons.ErrorResponse[models.CustomerResponse]("failed to create customer", "Unable to create customer right now"), err
	}

	customer := domain.Customer{
		NationalID:         strings.TrimSpace(req.NationalID),
		FullName:           strings.TrimSpace(req.FullName),
		Email:              strings.ToLower(strings.TrimSpace(req.Email)),
		TransactionPinHash: string(pinHash),
	}

	created, err := s.customerRepo.Create(ctx, customer)
	if err != nil {
		logger.Error("customer service create customer repository failed", err, nil)
		return commons.ErrorResponse[models.CustomerResponse]("failed to create customer", "Unable to create customer right now"), err
	}

	response := models.CustomerResponse{
		ID:               created.ID,
		FullName:         created.FullName,
		Email:            created.Email,
		MaskedNationalID: commons.MaskNationalID(created.NationalID),
		CreatedAt:        created.CreatedAt.Format(time.RFC3339),
	}

	logger.Info("customer service create customer success", logger.Fields{
		"customerId": response.ID,
	})

	return commons.SuccessResponse("customer created successfully", response), nil
}
