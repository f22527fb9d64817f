package models

import "time"

type WalletAccount struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex;not null"`
	Balance   float64   `json:"balance" gorm:"not null;default:0"`
	Currency  string    `json:"currency" gorm:"not null;default:'USD'"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TransactionType is the direction of a balance-affecting event
type TransactionType string

const (
	TransactionDebit  TransactionType = "debit"
	TransactionCredit TransactionType = "credit"
)

// WalletTransaction is an append-only ledger entry. Rows are immutable
// once written; nothing in the codebase updates or deletes them.
type WalletTransaction struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	UserID    uint            `json:"user_id" gorm:"not null;index"`
	OrderID   *uint           `json:"order_id,omitempty" gorm:"index"`
	Type      TransactionType `json:"type" gorm:"not null"`
	Amount    float64         `json:"amount" gorm:"not null"`
	Reason    string          `json:"reason"`
	Provider  string          `json:"provider"`
	Status    string          `json:"status"`
	Reference string          `json:"reference" gorm:"uniqueIndex"`
	CreatedAt time.Time       `json:"created_at"`
}
