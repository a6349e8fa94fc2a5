package repository

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"vidtube-backend/internal/auth/domain"
)

// ErrDuplicate is returned by Create when the username or email is taken.
var ErrDuplicate = errors.New("user with username or email already exists")

// UserRepository is the credential store contract. Lookups return (nil, nil)
// when no user matches; SetRefreshToken is an unconditional overwrite
// (last write wins, see DESIGN.md).
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	SetRefreshToken(ctx context.Context, id string, token *string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateAccount(ctx context.Context, user *domain.User) error
	SetAvatar(ctx context.Context, id, url string) error
	SetCoverImage(ctx context.Context, id, url string) error
}

// HashPassword hashes a password using bcrypt.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares a candidate password with a stored hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
