package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/api-sage/finance-ledger/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/finance-ledger/internal/commons"
	"github.com/api-sage/finance-ledger/internal/domain"
	"github.com/api-sage/finance-ledger/internal/events"
	"github.com/api-sage/finance-ledger/internal/logger"
	"github.com/shopspring/decimal"
)

// NationalTransferService moves funds between accounts of different
// customers, addressed by the recipient's national identifier. Each
// side's journal stays self-balanced through per-customer suspense
// accounts: the sender debits "Transfers Out", the recipient credits
// "Transfers In". Both entries commit in one atomic section or not at
// all.
type NationalTransferService struct {
	customerRepo repo_interfaces.CustomerRepository
	accountRepo  repo_interfaces.AccountRepository
	ledgerRepo   repo_interfaces.LedgerRepository
	selector     RecipientAccountSelector
	publisher    events.Publisher
	topic        string
}

func NewNationalTransferService(
	customerRepo repo_interfaces.CustomerRepository,
	accountRepo repo_interfaces.AccountRepository,
	ledgerRepo repo_interfaces.LedgerRepository,
	selector RecipientAccountSelector,
	publisher events.Publisher,
	topic string,
) *NationalTransferService {
	return &NationalTransferService{
		customerRepo: customerRepo,
		accountRepo:  accountRepo,
		ledgerRepo:   ledgerRepo,
		selector:     selector,
		publisher:    publisher,
		topic:        strings.TrimSpace(topic),
	}
}

func (s *NationalTransferService) TransferToNationalID(ctx context.Context, senderID int64, fromAccountID int64, recipientNationalID string, amount decimal.Decimal, date time.Time, memo string) error {
	logger.Info("national transfer service request", logger.Fields{
		"senderId":            senderID,
		"fromAccountId":       fromAccountID,
		"recipientNationalId": recipientNationalID,
		"amount":              amount.StringFixed(2),
	})

	if !amount.IsPositive() {
		return domain.ErrInvalidAmount
	}

	fromAccount, err := s.accountRepo.GetByID(ctx, fromAccountID)
	if err != nil {
		return err
	}
	if !fromAccount.OwnedBy(senderID) {
		return domain.ErrAccountNotOwned
	}

	nationalID := strings.TrimSpace(recipientNationalID)
	if nationalID == "" {
		return domain.ErrRecipientRequired
	}

	recipient, err := s.customerRepo.GetByNationalID(ctx, nationalID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return domain.ErrRecipientNotFound
		}
		return err
	}
	if recipient.ID == senderID {
		return domain.ErrSelfTransfer
	}

	toAccount, err := s.selector.SelectAccount(ctx, recipient)
	if err != nil {
		return err
	}

	if !fromAccount.IsLedgerLinked() || !toAccount.IsLedgerLinked() {
		return domain.ErrAccountNotLedgerLinked
	}

	senderOutLedger, err := s.ledgerRepo.GetOrCreateSystemAccount(ctx, senderID, domain.TransfersOutAccountName, domain.LedgerAccountTypeExpense)
	if err != nil {
		return err
	}
	recipientInLedger, err := s.ledgerRepo.GetOrCreateSystemAccount(ctx, recipient.ID, domain.TransfersInAccountName, domain.LedgerAccountTypeIncome)
	if err != nil {
		return err
	}

	if date.IsZero() {
		date = time.Now()
	}

	// The raw identifier must never land in a memo; the sender's memo
	// uses the masked form, the recipient's a contextual reference.
	masked := commons.MaskNationalID(nationalID)
	senderMemo := memo
	if senderMemo == "" {
		senderMemo = fmt.Sprintf("Transfer to %s", masked)
	}
	recipientMemo := memo
	if recipientMemo == "" {
		recipientMemo = fmt.Sprintf("Transfer from customer %d", senderID)
	}

	senderEntry := domain.JournalEntry{
		CustomerID: senderID,
		Date:       date,
		Memo:       senderMemo,
		Lines: []domain.LedgerLine{
			domain.DebitLine(senderOutLedger.ID, amount),
			domain.CreditLine(*fromAccount.LedgerAccountID, amount),
		},
	}
	recipientEntry := domain.JournalEntry{
		CustomerID: recipient.ID,
		Date:       date,
		Memo:       recipientMemo,
		Lines: []domain.LedgerLine{
			domain.DebitLine(*toAccount.LedgerAccountID, amount),
			domain.CreditLine(recipientInLedger.ID, amount),
		},
	}

	posted, err := s.ledgerRepo.PostEntriesWithBalanceCheck(ctx, *fromAccount.LedgerAccountID, amount, senderEntry, recipientEntry)
	if err != nil {
		logger.Error("national transfer service posting failed", err, logger.Fields{
			"senderId":            senderID,
			"recipientId":         recipient.ID,
			"recipientNationalId": nationalID,
		})
		return err
	}

	s.publishCompleted(posted[0].ID, posted[1].ID, senderID, recipient.ID, amount, masked)

	logger.Info("national transfer service success", logger.Fields{
		"senderId":    senderID,
		"recipientId": recipient.ID,
		"amount":      amount.StringFixed(2),
	})

	return nil
}

// publishCompleted emits the transfer event after commit. Delivery is
// best effort: the ledger is already durable, so a broker failure is
// only logged.
func (s *NationalTransferService) publishCompleted(senderEntryID, recipientEntryID, senderID, recipientID int64, amount decimal.Decimal, maskedRecipient string) {
	if s.publisher == nil {
		return
	}

	event := events.TransferCompleted{
		SenderEntryID:    senderEntryID,
		RecipientEntryID: recipientEntryID,
		SenderID:         senderID,
		RecipientID:      recipientID,
		Amount:           amount,
		MaskedRecipient:  maskedRecipient,
		OccurredAt:       time.Now().UTC(),
	}
	if err := s.publisher.Publish(s.topic, event); err != nil {
		logger.Error("national transfer service event publish failed", err, logger.Fields{
			"senderEntryId":    senderEntryID,
			"recipientEntryId": recipientEntryID,
		})
	}
}
