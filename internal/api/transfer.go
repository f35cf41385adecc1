package api

import (
	"bytes"    // Raw JSON inspection
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"strconv"  // Epoch parsing
	"time"     // Transfer timestamps

	"easy_pay/internal/domain" // Importing domain models
	"easy_pay/internal/ledger" // Transfer engine

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/redis/go-redis/v9"  // Redis client
	"github.com/shopspring/decimal" // Fixed-point money
)

// TransferBody is the request body shared by send, cash-out and cash-in
type TransferBody struct {
	Pin           string          `json:"pin" binding:"required"`        // Sender PIN
	SenderID      string          `json:"senderId" binding:"required"`   // Sender wallet number
	ReceiverID    string          `json:"receiverId" binding:"required"` // Receiver wallet number
	AmountSend    decimal.Decimal `json:"amountSend"`                    // JSON string or number
	Fee           decimal.Decimal `json:"fee"`                           // Optional, zero when absent
	TransactionID string          `json:"transactionId"`                 // Optional correlation id
	Timestamp     Timestamp       `json:"timestamp"`                     // Optional caller time
	Status        string          `json:"status"`                        // Optional caller status
	Type          string          `json:"type"`                          // Informational; the route decides the type
}

// Timestamp accepts an RFC 3339 string or Unix epoch milliseconds, as a number or a string
type Timestamp struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) || bytes.Equal(b, []byte(`""`)) {
		return nil
	}
	raw := string(b)
	if b[0] == '"' {
		s, err := strconv.Unquote(raw)
		if err != nil {
			return err
		}
		if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
			t.Time = parsed
			return nil
		}
		raw = s // Quoted epoch
	}
	ms, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return errors.New("timestamp must be RFC 3339 or epoch milliseconds")
	}
	t.Time = time.UnixMilli(int64(ms))
	return nil
}

// TransferHandler runs one transfer of the given kind through the engine
func TransferHandler(engine *ledger.Engine, kind domain.TxType, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body TransferBody // Bind JSON request to struct
		if err := c.ShouldBindJSON(&body); err != nil {
			reply(c, http.StatusBadRequest, false, "Invalid request")
			return
		}
		res, err := engine.Transfer(c.Request.Context(), kind, ledger.TransferRequest{
			Pin:            body.Pin,
			SenderNumber:   body.SenderID,
			ReceiverNumber: body.ReceiverID,
			Amount:         body.AmountSend,
			Fee:            body.Fee,
			TransactionID:  body.TransactionID,
			Timestamp:      body.Timestamp.Time,
			Status:         body.Status,
		})
		if err != nil {
			storeFailure(c, err, "Transfer failed")
			return
		}
		if !res.Success {
			status := http.StatusOK // Business failures are not protocol errors
			if errors.Is(res.Err, domain.ErrInvalidAmount) {
				status = http.StatusBadRequest
			}
			c.JSON(status, res)
			return
		}

		keys := make([]string, 0, len(res.Affected))
		for _, email := range res.Affected {
			keys = append(keys, userKey(email))
		}
		invalidate(c.Request.Context(), rdb, keys,
			numberTxsPrefix(body.SenderID),
			numberTxsPrefix(body.ReceiverID),
			adminTxsPrefix,
			adminUsersPrefix,
			adminAgentsPrefix,
		)
		c.JSON(http.StatusOK, res)
	}
}
