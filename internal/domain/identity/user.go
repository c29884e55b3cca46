package identity

import (
	"context"
	"strings"

	"github.com/baogia/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// User is an account that owns quotes, catalog data and costing sheets
type User struct {
	shared.BaseAggregateRoot
	Email        string `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Name         string `gorm:"size:255;not null" json:"name"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Active       bool   `gorm:"not null;default:true" json:"active"`
}

// TableName returns the database table name
func (User) TableName() string {
	return "users"
}

// NewUser creates a user with a bcrypt-hashed password
func NewUser(email, name, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_INPUT", "A valid email is required")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Name is required")
	}
	if len(password) < 8 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to hash password")
	}
	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		Name:              name,
		PasswordHash:      string(hash),
		Active:            true,
	}, nil
}

// CheckPassword verifies a plaintext password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangePassword replaces the stored hash with one for the new password
func (u *User) ChangePassword(newPassword string) error {
	if len(newPassword) < 8 {
		return shared.NewDomainError("INVALID_INPUT", "Password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to hash password")
	}
	u.PasswordHash = string(hash)
	u.Touch()
	u.IncrementVersion()
	return nil
}

// Repository defines persistence operations for users
type Repository interface {
	shared.Repository[User]
	FindByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
