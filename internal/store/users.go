package store

import (
	"context" // Request scoped store calls
	"errors"  // Error inspection
	"fmt"     // Error wrapping

	"easy_pay/internal/domain" // Importing domain models

	"github.com/shopspring/decimal" // Fixed-point money
	"gorm.io/gorm"                  // GORM ORM library
	"gorm.io/gorm/clause"           // Row locking
)

// DuplicateError names the identity field that collided on registration
type DuplicateError struct {
	Field string // nid, number or email
}

func (e *DuplicateError) Error() string {
	switch e.Field {
	case "nid":
		return "NID already exists"
	case "number":
		return "Number already exists"
	default:
		return "Email already exists"
	}
}

func (e *DuplicateError) Unwrap() error { return domain.ErrDuplicateIdentity }

// UserFilter narrows user listings
type UserFilter struct {
	Number   string // Substring of the wallet number
	Role     string // Exact role
	Page     int
	PageSize int
}

// Users is the identity store
type Users struct {
	db                *gorm.DB
	notificationLimit int
}

// NewUsers returns an identity store over db. notificationLimit caps the feed returned with a user; 0 means no cap.
func NewUsers(db *gorm.DB, notificationLimit int) *Users {
	return &Users{db: db, notificationLimit: notificationLimit}
}

// WithTx returns a copy bound to an open transaction
func (s *Users) WithTx(tx *gorm.DB) *Users {
	return &Users{db: tx, notificationLimit: s.notificationLimit}
}

// Register inserts a new user after checking nid, number and email in that order
func (s *Users) Register(ctx context.Context, u *domain.User) error {
	db := s.db.WithContext(ctx)
	if err := s.checkUnique(db, u); err != nil {
		return err
	}
	if err := db.Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a race against a concurrent registration; name the field that now collides
			if err := s.checkUnique(db, u); err != nil {
				return err
			}
			return &DuplicateError{Field: "email"}
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// checkUnique returns a DuplicateError for the first of nid, number and email already taken
func (s *Users) checkUnique(db *gorm.DB, u *domain.User) error {
	for _, field := range []struct{ column, value string }{
		{"nid", u.NID},
		{"number", u.Number},
		{"email", u.Email},
	} {
		var count int64
		if err := db.Model(&domain.User{}).Where(field.column+" = ?", field.value).Count(&count).Error; err != nil {
			return fmt.Errorf("check %s: %w", field.column, err)
		}
		if count > 0 {
			return &DuplicateError{Field: field.column}
		}
	}
	return nil
}

// FindByIdentifier loads a user by email or wallet number, with the newest notifications first
func (s *Users) FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	var u domain.User
	err := s.db.WithContext(ctx).Scopes(s.withNotifications).
		Where("email = ? OR number = ?", identifier, identifier).First(&u).Error
	return s.found(&u, err)
}

// FindByEmail loads a user with the newest notifications first
func (s *Users) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := s.db.WithContext(ctx).Scopes(s.withNotifications).Where("email = ?", email).First(&u).Error
	return s.found(&u, err)
}

// FindByNumber loads a user by wallet number
func (s *Users) FindByNumber(ctx context.Context, number string) (*domain.User, error) {
	var u domain.User
	err := s.db.WithContext(ctx).Where("number = ?", number).First(&u).Error
	return s.found(&u, err)
}

// FindByID loads a user by store id
func (s *Users) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var u domain.User
	err := s.db.WithContext(ctx).Scopes(s.withNotifications).First(&u, id).Error
	return s.found(&u, err)
}

// LockForTransfer reads the given wallet numbers, plus the admin when withAdmin is set, holding row locks
// until the surrounding transaction ends. Rows are locked in id order.
func (s *Users) LockForTransfer(ctx context.Context, numbers []string, withAdmin bool) ([]domain.User, error) {
	q := s.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).Where("number IN ?", numbers)
	if withAdmin {
		q = q.Or("role = ?", domain.RoleAdmin)
	}
	var users []domain.User
	if err := q.Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("lock accounts: %w", err)
	}
	return users, nil
}

// SetBalance writes an absolute balance
func (s *Users) SetBalance(ctx context.Context, id uint, balance decimal.Decimal) error {
	res := s.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Update("balance", balance)
	if res.Error != nil {
		return fmt.Errorf("update balance of %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("update balance of %d: %w", id, domain.ErrActorNotFound)
	}
	return nil
}

// SetBlocked sets the blocked flag. Setting the current value again is a no-op.
func (s *Users) SetBlocked(ctx context.Context, id uint, blocked bool) (*domain.User, error) {
	res := s.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Update("is_blocked", blocked)
	if res.Error != nil {
		return nil, fmt.Errorf("set blocked: %w", res.Error)
	}
	return s.FindByID(ctx, id)
}

// AgentAccept credits the onboarding bonus, marks the agent approved and appends msg to the feed.
// Repeated calls credit the bonus again.
func (s *Users) AgentAccept(ctx context.Context, id uint, msg string) (*domain.User, error) {
	return s.agentDecision(ctx, id, domain.AgentApproved, domain.AgentOnboardingBonus, msg)
}

// AgentReject marks the agent rejected and appends msg to the feed
func (s *Users) AgentReject(ctx context.Context, id uint, msg string) (*domain.User, error) {
	return s.agentDecision(ctx, id, domain.AgentRejected, decimal.Zero, msg)
}

func (s *Users) agentDecision(ctx context.Context, id uint, status string, credit decimal.Decimal, msg string) (*domain.User, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u domain.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&u, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrUserNotFound
			}
			return err
		}
		updates := map[string]any{
			"agent_status": status,
			"balance":      u.Balance.Add(credit),
		}
		if err := tx.Model(&domain.User{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		if msg == "" {
			return nil
		}
		return AppendNotifications(tx, domain.Notification{UserID: id, Msg: msg})
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("agent %s: %w", status, err)
	}
	return s.FindByID(ctx, id)
}

// TotalBalance sums every balance exactly
func (s *Users) TotalBalance(ctx context.Context) (decimal.Decimal, error) {
	var balances []decimal.Decimal
	if err := s.db.WithContext(ctx).Model(&domain.User{}).Pluck("balance", &balances).Error; err != nil {
		return decimal.Zero, fmt.Errorf("sum balances: %w", err)
	}
	total := decimal.Zero
	for _, b := range balances {
		total = total.Add(b)
	}
	return total, nil
}

// List returns one page of users and the total matching count
func (s *Users) List(ctx context.Context, f UserFilter) ([]domain.User, int64, error) {
	q := s.db.WithContext(ctx).Model(&domain.User{})
	if f.Number != "" {
		q = q.Where("number LIKE ?", "%"+f.Number+"%") // Filter by number
	}
	if f.Role != "" {
		q = q.Where("role = ?", f.Role) // Filter by role
	}
	q = q.Session(&gorm.Session{}) // Shared by count and page queries
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}
	users := []domain.User{}
	if err := q.Order("id").Offset((f.Page - 1) * f.PageSize).Limit(f.PageSize).Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return users, total, nil
}

func (s *Users) withNotifications(db *gorm.DB) *gorm.DB {
	return db.Preload("Notifications", func(db *gorm.DB) *gorm.DB {
		db = db.Order("id desc")
		if s.notificationLimit > 0 {
			db = db.Limit(s.notificationLimit)
		}
		return db
	})
}

func (s *Users) found(u *domain.User, err error) (*domain.User, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}
