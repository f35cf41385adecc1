package domain

import (
	"time" // Record timestamps

	"github.com/shopspring/decimal" // Fixed-point money
)

// Role values stored on a user record
const (
	RoleCustomer = "customer" // Regular wallet holder
	RoleAgent    = "agent"    // Cash-in/cash-out point
	RoleAdmin    = "admin"    // Single fee sink
)

// Agent approval states
const (
	AgentPending  = "pending"  // Registered, waiting for admin review
	AgentApproved = "approved" // Accepted, onboarding bonus credited
	AgentRejected = "rejected" // Rejected by admin
)

// User Model
type User struct {
	ID            uint            `gorm:"primaryKey" json:"_id"`                                // Primary key
	Name          string          `json:"name"`                                                 // Display name
	NID           string          `gorm:"column:nid;uniqueIndex;size:32;not null" json:"nid"`   // National ID
	Number        string          `gorm:"uniqueIndex;size:20;not null" json:"number"`           // Wallet number
	Email         string          `gorm:"uniqueIndex;size:191;not null" json:"email"`           // Email address
	PinDigest     string          `gorm:"not null" json:"-"`                                    // Hashed PIN
	Role          string          `gorm:"size:16;default:customer;index" json:"role"`           // Role: customer, agent or admin
	Balance       decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"balance"` // Wallet balance
	IsBlocked     bool            `gorm:"not null;default:false" json:"isBlocked"`              // Blocked by admin
	AgentStatus   string          `gorm:"size:16" json:"agentStatus,omitempty"`                 // Agent approval flag
	Notifications []Notification  `gorm:"constraint:OnDelete:CASCADE;" json:"notifications"`    // Newest first when loaded
	CreatedAt     time.Time       `json:"createdAt"`                                            // Registration time
}

// IsAgent reports whether the user is an agent
func (u *User) IsAgent() bool {
	return u.Role == RoleAgent
}
