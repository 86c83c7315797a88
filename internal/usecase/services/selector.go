package services

import (
	"context"

	"github.com/api-sage/finance-ledger/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/finance-ledger/internal/domain"
)

// RecipientAccountSelector chooses the destination account for an
// inbound transfer. The rule is a policy, not a structural requirement,
// so it stays pluggable.
type RecipientAccountSelector interface {
	SelectAccount(ctx context.Context, recipient domain.Customer) (domain.Account, error)
}

// FirstActiveAccountSelector picks the recipient's oldest active
// account by creation order.
type FirstActiveAccountSelector struct {
	accountRepo repo_interfaces.AccountRepository
}

func NewFirstActiveAccountSelector(accountRepo repo_interfaces.AccountRepository) *FirstActiveAccountSelector {
	return &FirstActiveAccountSelector{accountRepo: accountRepo}
}

func (s *FirstActiveAccountSelector) SelectAccount(ctx context.Context, recipient domain.Customer) (domain.Account, error) {
	accounts, err := s.accountRepo.ListActiveByCustomer(ctx, recipient.ID)
	if err != nil {
		return domain.Account{}, err
	}
	if len(accounts) == 0 {
		return domain.Account{}, domain.ErrNoActiveRecipientAccount
	}
	return accounts[0], nil
}
