package db_models

import "gorm.io/datatypes"

type TransactionType string

const (
	TxnTypeMessageSend TransactionType = "message_send"
	TxnTypeChatReply   TransactionType = "chat_reply"
	TxnTypeTrialGrant  TransactionType = "trial_grant"
	TxnTypePurchase    TransactionType = "purchase"
)

// CreditTransaction is the append-only ledger behind a profile's credit
// balance. Rows are never updated or deleted.
type CreditTransaction struct {
	BaseModel
	PhoneNumber string          `gorm:"index;not null"`
	Amount      int             `gorm:"not null"` // signed; -1 per metered send
	Type        TransactionType `gorm:"index"`

	Metadata datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
}
