package domain

import (
	"time" // Transaction timestamps

	"github.com/shopspring/decimal" // Fixed-point money
)

// TxType identifies a transfer variant
type TxType string

// Transfer variants
const (
	TxSend    TxType = "send"    // Peer to peer, admin takes the fee
	TxCashIn  TxType = "cashIn"  // Agent to customer, no fee
	TxCashOut TxType = "cashOut" // Customer to agent, fee split between agent and admin
)

// Valid reports whether t is a known transfer variant
func (t TxType) Valid() bool {
	return t == TxSend || t == TxCashIn || t == TxCashOut
}

// Transaction Model. Rows are inserted once and never updated.
type Transaction struct {
	ID            uint            `gorm:"primaryKey" json:"_id"`                                 // Primary key
	TransactionID string          `gorm:"uniqueIndex;size:64;not null" json:"transactionId"`     // Caller correlation id
	Type          TxType          `gorm:"size:16;not null;index" json:"type"`                    // send, cashIn or cashOut
	AmountSend    decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"amountSend"`         // Amount moved
	Fee           decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"fee"`      // Total fee paid by sender
	AdminFee      decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"adminFee"` // Fee share credited to admin
	AgentFee      decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"agentFee"` // Fee share credited to agent
	SenderID      string          `gorm:"size:20;not null;index" json:"senderId"`                // Sender wallet number
	ReceiverID    string          `gorm:"size:20;not null;index" json:"receiverId"`              // Receiver wallet number
	Status        string          `gorm:"size:32;not null" json:"status"`                        // Caller supplied status
	Timestamp     time.Time       `gorm:"not null" json:"timestamp"`                             // Caller supplied time
	CreatedAt     time.Time       `json:"createdAt"`                                             // Insert time
}
