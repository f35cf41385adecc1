package store

import (
	"context" // Request scoped store calls
	"errors"  // Error inspection
	"fmt"     // Error wrapping

	"easy_pay/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// Direction selects which side of a transaction a number must be on
type Direction int

const (
	EitherSide Direction = iota // Sender or receiver
	SentBy                      // Sender only
)

// TxFilter narrows ledger listings
type TxFilter struct {
	Number    string        // Wallet number, empty for all
	Direction Direction     // Side the number must be on
	Type      domain.TxType // Transaction type, empty for all
	Page      int
	PageSize  int
}

// Transactions is the append-only ledger store. It has no update or delete operations.
type Transactions struct {
	db *gorm.DB
}

// NewTransactions returns a ledger store over db
func NewTransactions(db *gorm.DB) *Transactions {
	return &Transactions{db: db}
}

// WithTx returns a copy bound to an open transaction
func (s *Transactions) WithTx(tx *gorm.DB) *Transactions {
	return &Transactions{db: tx}
}

// Exists reports whether a correlation id has already been recorded
func (s *Transactions) Exists(ctx context.Context, transactionID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&domain.Transaction{}).Where("transaction_id = ?", transactionID).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check transaction id: %w", err)
	}
	return count > 0, nil
}

// Insert records a completed transfer
func (s *Transactions) Insert(ctx context.Context, t *domain.Transaction) error {
	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s", domain.ErrDuplicateTransaction, t.TransactionID)
		}
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// List returns one page of ledger entries, newest first, and the total matching count
func (s *Transactions) List(ctx context.Context, f TxFilter) ([]domain.Transaction, int64, error) {
	q := s.db.WithContext(ctx).Model(&domain.Transaction{})
	if f.Number != "" {
		if f.Direction == SentBy {
			q = q.Where("sender_id = ?", f.Number)
		} else {
			q = q.Where("sender_id = ? OR receiver_id = ?", f.Number, f.Number)
		}
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type) // Filter by transaction type
	}
	q = q.Session(&gorm.Session{}) // Shared by count and page queries
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}
	txs := []domain.Transaction{}
	if err := q.Order("id desc").Offset((f.Page - 1) * f.PageSize).Limit(f.PageSize).Find(&txs).Error; err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}
	return txs, total, nil
}
