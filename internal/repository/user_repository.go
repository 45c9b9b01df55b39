package repository

import (
	"context"
	"errors"

	"github.com/ridwanfathin/invoice-dashboard-service/internal/domain"
)

// ErrUserNotFound is returned when no user row matches the lookup
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// GetUserByEmail retrieves a user and password hash by email
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}
