package usecase

import (
	"context"
	"io"

	"vidtube-backend/internal/auth/domain"
	"vidtube-backend/internal/auth/dto"
)

// AuthUsecase is the session manager: it owns the invariant that a user's
// stored refresh token matches the most recently issued one. All failures
// are *response.ApiError values carrying the HTTP status.
type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*domain.PublicUser, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Refresh(ctx context.Context, presentedToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, userID string) error
	ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error
	CurrentUser(ctx context.Context, accessToken string) (*domain.PublicUser, error)
	UpdateAccount(ctx context.Context, userID string, req *dto.UpdateAccountRequest) (*domain.PublicUser, error)
	UpdateAvatar(ctx context.Context, userID string, file io.Reader, contentType string) (*domain.PublicUser, error)
	UpdateCoverImage(ctx context.Context, userID string, file io.Reader, contentType string) (*domain.PublicUser, error)
}
