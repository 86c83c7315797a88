package events

import (
	"time"

	"github.com/shopspring/decimal"
)

type Publisher interface {
	Publish(topic string, event any) error
}

// TransferCompleted is emitted after both journal entries of a
// cross-customer transfer have committed. It carries only the masked
// recipient identifier.
type TransferCompleted struct {
	SenderEntryID    int64           `json:"sender_entry_id"`
	RecipientEntryID int64           `json:"recipient_entry_id"`
	SenderID         int64           `json:"sender_id"`
	RecipientID      int64           `json:"recipient_id"`
	Amount           decimal.Decimal `json:"amount"`
	MaskedRecipient  string          `json:"masked_recipient"`
	OccurredAt       time.Time       `json:"occurred_at"`
}
