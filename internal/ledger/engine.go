// Package ledger moves money between wallets. Every transfer validates its actors and funds, then commits
// balances, notifications and the ledger record in one database transaction.
package ledger

import (
	"context" // Request scoped store calls
	"errors"  // Error inspection
	"fmt"     // Error wrapping
	"sort"    // Deterministic write order
	"time"    // Default timestamps

	"easy_pay/internal/domain" // Importing domain models
	"easy_pay/internal/store"  // Identity and ledger stores
	"easy_pay/internal/utils"  // PIN verification

	"github.com/google/uuid"        // Correlation ids
	"github.com/shopspring/decimal" // Fixed-point money
	"github.com/sirupsen/logrus"    // Structured logging
	"gorm.io/gorm"                  // GORM ORM library
)

// DefaultStatus is recorded when the caller does not send a status
const DefaultStatus = "completed"

// TransferRequest is a validated money movement request
type TransferRequest struct {
	Pin            string          // Sender PIN, plaintext
	SenderNumber   string          // Sender wallet number
	ReceiverNumber string          // Receiver wallet number
	Amount         decimal.Decimal // Amount credited to the receiver
	Fee            decimal.Decimal // Paid by the sender on top of Amount; ignored for cash-in
	TransactionID  string          // Caller correlation id, generated when empty
	Timestamp      time.Time       // Caller time, now when zero
	Status         string          // Caller status, DefaultStatus when empty
}

// Result is what every transfer returns to the caller. Business rule failures are results, not errors.
type Result struct {
	Message     string              `json:"message"`
	Success     bool                `json:"success"`
	Transaction *domain.Transaction `json:"transaction,omitempty"`
	Err         error               `json:"-"` // Business rule that failed, nil on success
	Affected    []string            `json:"-"` // Emails of every account the transfer touched
}

// rejection aborts the store transaction with a business failure
type rejection struct {
	result Result
}

func (r *rejection) Error() string { return r.result.Err.Error() }

func reject(err error, message string) Result {
	return Result{Message: message, Success: false, Err: err}
}

// Engine executes send, cash-out and cash-in transfers
type Engine struct {
	db        *gorm.DB
	users     *store.Users
	txs       *store.Transactions
	verifyPin func(pin, digest string) bool
}

// NewEngine returns an engine over db using the given stores
func NewEngine(db *gorm.DB, users *store.Users, txs *store.Transactions) *Engine {
	return &Engine{db: db, users: users, txs: txs, verifyPin: utils.CheckPin}
}

// Transfer runs one transfer of the given kind. The returned error is set only for store failures.
func (e *Engine) Transfer(ctx context.Context, kind domain.TxType, req TransferRequest) (Result, error) {
	if !kind.Valid() {
		return Result{}, fmt.Errorf("unknown transfer type %q", kind)
	}
	log := logrus.WithFields(logrus.Fields{
		"type":     kind,
		"sender":   req.SenderNumber,
		"receiver": req.ReceiverNumber,
		"amount":   req.Amount.String(),
		"fee":      req.Fee.String(),
	})

	res, err := e.transfer(ctx, kind, &req)
	switch {
	case err != nil:
		log.WithError(err).Error("Transfer failed")
	case !res.Success:
		log.WithField("reason", res.Err.Error()).Warn("Transfer rejected")
	default:
		log.WithFields(logrus.Fields{
			"transaction_id": res.Transaction.TransactionID,
			"admin_fee":      res.Transaction.AdminFee.String(),
			"agent_fee":      res.Transaction.AgentFee.String(),
		}).Info("Transfer completed")
	}
	return res, err
}

func (e *Engine) transfer(ctx context.Context, kind domain.TxType, req *TransferRequest) (Result, error) {
	if kind == domain.TxCashIn {
		req.Fee = decimal.Zero // Cash-in carries no fee
	}
	if err := domain.ValidateAmount(req.Amount, false); err != nil {
		return reject(err, "Invalid amount"), nil
	}
	if err := domain.ValidateAmount(req.Fee, true); err != nil {
		return reject(err, "Invalid fee"), nil
	}
	if req.SenderNumber == req.ReceiverNumber {
		return reject(domain.ErrSelfTransfer, "You cannot send money to your own number"), nil
	}

	// PIN first: it only needs the sender
	sender, err := e.users.FindByNumber(ctx, req.SenderNumber)
	if errors.Is(err, domain.ErrUserNotFound) {
		return reject(domain.ErrActorNotFound, "Sender account not found"), nil
	}
	if err != nil {
		return Result{}, err
	}
	if !e.verifyPin(req.Pin, sender.PinDigest) {
		return reject(domain.ErrPinMismatch, "Incorrect PIN"), nil
	}

	if req.TransactionID == "" {
		req.TransactionID = uuid.NewString()
	}
	if req.Timestamp.IsZero() {
		req.Timestamp = time.Now()
	}
	if req.Status == "" {
		req.Status = DefaultStatus
	}

	var (
		record   *domain.Transaction
		affected []string
	)
	err = e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		record, affected, err = e.commit(ctx, tx, kind, req)
		return err
	})
	var rej *rejection
	if errors.As(err, &rej) {
		return rej.result, nil
	}
	if errors.Is(err, domain.ErrDuplicateTransaction) {
		return reject(domain.ErrDuplicateTransaction, "Transaction already processed"), nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("%s transfer: %w", kind, err)
	}
	return Result{Message: successMessage(kind), Success: true, Transaction: record, Affected: affected}, nil
}

// commit runs inside the store transaction: lock, check, post, notify, record
func (e *Engine) commit(ctx context.Context, tx *gorm.DB, kind domain.TxType, req *TransferRequest) (*domain.Transaction, []string, error) {
	users := e.users.WithTx(tx)
	needAdmin := kind == domain.TxCashOut || (kind == domain.TxSend && req.Fee.IsPositive())

	locked, err := users.LockForTransfer(ctx, []string{req.SenderNumber, req.ReceiverNumber}, needAdmin)
	if err != nil {
		return nil, nil, err
	}
	var sender, receiver, admin *domain.User
	for i := range locked {
		u := &locked[i]
		switch u.Number {
		case req.SenderNumber:
			sender = u
		case req.ReceiverNumber:
			receiver = u
		}
		if u.Role == domain.RoleAdmin {
			admin = u
		}
	}
	switch {
	case sender == nil:
		return nil, nil, &rejection{reject(domain.ErrActorNotFound, "Sender account not found")}
	case receiver == nil:
		return nil, nil, &rejection{reject(domain.ErrActorNotFound, "Receiver account not found")}
	case needAdmin && admin == nil:
		return nil, nil, &rejection{reject(domain.ErrActorNotFound, "Admin account not found")}
	}
	if kind == domain.TxCashOut && !receiver.IsAgent() {
		return nil, nil, &rejection{reject(domain.ErrInvalidRole, "Receiver is not an agent")}
	}
	debit := req.Amount.Add(req.Fee)
	if sender.Balance.Sub(debit).IsNegative() {
		return nil, nil, &rejection{reject(domain.ErrInsufficientFunds, "Insufficient balance")}
	}
	txs := e.txs.WithTx(tx)
	if exists, err := txs.Exists(ctx, req.TransactionID); err != nil {
		return nil, nil, err
	} else if exists {
		return nil, nil, &rejection{reject(domain.ErrDuplicateTransaction, "Transaction already processed")}
	}

	p := newPosting(kind, req, sender, receiver, admin)

	// Apply net deltas once per account in id order; zero deltas are skipped
	ids := make([]uint, 0, len(p.deltas))
	for id, delta := range p.deltas {
		if !delta.IsZero() {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		current := p.accounts[id].Balance
		if err := users.SetBalance(ctx, id, current.Add(p.deltas[id])); err != nil {
			return nil, nil, err
		}
	}
	if err := store.AppendNotifications(tx.WithContext(ctx), p.notes...); err != nil {
		return nil, nil, err
	}
	record := &domain.Transaction{
		TransactionID: req.TransactionID,
		Type:          kind,
		AmountSend:    req.Amount,
		Fee:           req.Fee,
		AdminFee:      p.adminFee,
		AgentFee:      p.agentFee,
		SenderID:      sender.Number,
		ReceiverID:    receiver.Number,
		Status:        req.Status,
		Timestamp:     req.Timestamp,
	}
	if err := txs.Insert(ctx, record); err != nil {
		return nil, nil, err
	}
	return record, p.emails(), nil
}
