package usecase

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"vidtube-backend/internal/auth/domain"
	"vidtube-backend/internal/auth/dto"
	"vidtube-backend/internal/auth/repository"
	"vidtube-backend/internal/auth/token"
	"vidtube-backend/pkg/response"
	"vidtube-backend/pkg/uploader"
)

// authUsecase implements AuthUsecase.
type authUsecase struct {
	userRepo repository.UserRepository
	codec    *token.Codec
	uploads  uploader.Uploader
	logger   *zap.Logger
}

func NewAuthUsecase(userRepo repository.UserRepository, codec *token.Codec, uploads uploader.Uploader, logger *zap.Logger) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		codec:    codec,
		uploads:  uploads,
		logger:   logger,
	}
}

func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*domain.PublicUser, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.TrimSpace(req.Email)
	fullName := strings.TrimSpace(req.FullName)

	if username == "" || email == "" || req.Password == "" || fullName == "" {
		return nil, response.NewApiError(http.StatusBadRequest, "All fields are required")
	}

	existing, err := u.userRepo.FindByUsernameOrEmail(ctx, username, email)
	if err != nil {
		u.logger.Error("register: lookup failed", zap.Error(err))
		return nil, response.NewApiError(http.StatusInternalServerError, "Something went wrong while registering the user")
	}
	if existing != nil {
		return nil, response.NewApiError(http.StatusConflict, "user with username or email already exists")
	}

	hash, err := repository.HashPassword(req.Password)
	if err != nil {
		u.logger.Error("register: hashing password failed", zap.Error(err))
		return nil, response.NewApiError(http.StatusInternalServerError, "Something went wrong while registering the user")
	}

	user := &domain.User{
		Username: username,
		Email:    email,
		FullName: fullName,
		Password: hash,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, response.NewApiError(http.StatusConflict, "user with username or email already exists")
		}
		u.logger.Error("register: create failed", zap.Error(err))
		return nil, response.NewApiError(http.StatusInternalServerError, "Something went wrong while registering the user")
	}

	u.logger.Info("user registered", zap.String("userID", user.ID), zap.String("username", user.Username))
	return user.Public(), nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.TrimSpace(req.Email)

	if username == "" && email == "" {
		return nil, response.NewApiError(http.StatusBadRequest, "username or email is required")
	}

	user, err := u.userRepo.FindByUsernameOrEmail(ctx, username, email)
	if err != nil {
		u.logger.Error("login: lookup failed", zap.Error(err))
		return nil, response.NewApiError(http.StatusInternalServerError, "Something went wrong while logging in")
	}
	if user == nil {
		return nil, response.NewApiError(http.StatusNotFound, "user does not exist")
	}

	if !repository.CheckPasswordHash(req.Password, user.Password) {
		u.logger.Warn("login: invalid credentials", zap.String("userID", user.ID))
		return nil, response.NewApiError(http.StatusUnauthorized, "Invalid user credentials")
	}

	return u.issuePair(ctx, user)
}

// issuePair mints a fresh access/refresh pair and persists the refresh token,
// overwriting any prior one. Overwriting invalidates every other session for
// the user: only one refresh token is tracked. Issuance and persistence are a
// single logical step; if the write fails no tokens reach the caller.
func (u *authUsecase) issuePair(ctx context.Context, user *domain.User) (*dto.TokenResponse, error) {
	accessToken, err := u.codec.IssueAccess(user.ID)
	if err != nil {
		return nil, u.pairFailure(user.ID, err)
	}
	refreshToken, err := u.codec.IssueRefresh(user.ID)
	if err != nil {
		return nil, u.pairFailure(user.ID, err)
	}
	if err := u.userRepo.SetRefreshToken(ctx, user.ID, &refreshToken); err != nil {
		return nil, u.pairFailure(user.ID, err)
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user.Public(),
	}, nil
}

func (u *authUsecase) pairFailure(userID string, err error) *response.ApiError {
	u.logger.Error("issuing token pair failed", zap.String("userID", userID), zap.Error(err))
	return response.NewApiError(http.StatusInternalServerError, "something went wrong while generating access and refresh tokens")
}

func (u *authUsecase) Refresh(ctx context.Context, presentedToken string) (*dto.TokenResponse, error) {
	if presentedToken == "" {
		return nil, response.NewApiError(http.StatusUnauthorized, "unauthorized request")
	}

	claims, err := u.codec.Verify(presentedToken, token.KindRefresh)
	if err != nil {
		u.logger.Warn("refresh: token failed verification", zap.Error(err))
		return nil, response.NewApiError(http.StatusUnauthorized, "invalid refresh token")
	}

	user, err := u.userRepo.FindByID(ctx, claims.Subject)
	if err != nil {
		u.logger.Error("refresh: lookup failed", zap.Error(err))
		return nil, response.NewApiError(http.StatusInternalServerError, "Something went wrong while refreshing tokens")
	}

	// A structurally valid token whose subject is gone, or that differs from
	// the stored one, was superseded by rotation or logout. Internally the
	// two are told apart in logs; the client only sees the reuse-class code.
	if user == nil || user.RefreshToken == nil || *user.RefreshToken != presentedToken {
		if user == nil {
			u.logger.Warn("refresh: subject no longer exists", zap.String("userID", claims.Subject))
		} else {
			u.logger.Warn("refresh: stale or reused token", zap.String("userID", user.ID))
		}
		return nil, response.NewApiError(http.StatusForbidden, "refresh token is expired or used")
	}

	// Rotation: the new pair replaces the stored token, so the presented one
	// permanently fails the equality check from here on.
	return u.issuePair(ctx, user)
}

func (u *authUsecase) Logout(ctx context.Context, userID string) error {
	if err := u.userRepo.SetRefreshToken(ctx, userID, nil); err != nil {
		u.logger.Error("logout: clearing refresh token failed", zap.String("userID", userID), zap.Error(err))
		return response.NewApiError(http.StatusInternalServerError, "Something went wrong while logging out")
	}
	return nil
}

func (u *authUsecase) ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error {
	if req.OldPassword == "" || req.NewPassword == "" {
		return response.NewApiError(http.StatusBadRequest, "All fields are required")
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.logger.Error("change password: lookup failed", zap.Error(err))
		return response.NewApiError(http.StatusInternalServerError, "Something went wrong while changing password")
	}
	if user == nil {
		return response.NewApiError(http.StatusNotFound, "user does not exist")
	}

	if !repository.CheckPasswordHash(req.OldPassword, user.Password) {
		return response.NewApiError(http.StatusUnauthorized, "Invalid old password")
	}

	hash, err := repository.HashPassword(req.NewPassword)
	if err != nil {
		u.logger.Error("change password: hashing failed", zap.Error(err))
		return response.NewApiError(http.StatusInternalServerError, "Something went wrong while changing password")
	}

	// The stored refresh token is left untouched: an active session survives
	// a password change. See DESIGN.md.
	if err := u.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		u.logger.Error("change password: update failed", zap.Error(err))
		return response.NewApiError(http.StatusInternalServerError, "Something went wrong while changing password")
	}
	return nil
}

func (u *authUsecase) CurrentUser(ctx context.Context, accessToken string) (*domain.PublicUser, error) {
	claims, err := u.codec.Verify(accessToken, token.KindAccess)
	if err != nil {
		return nil, response.NewApiError(http.StatusUnauthorized, "Invalid access token")
	}

	user, err := u.userRepo.FindByID(ctx, claims.Subject)
	if err != nil {
		u.logger.Error("current user: lookup failed", zap.Error(err))
		return nil, response.NewApiError(http.StatusInternalServerError, "Something went wrong")
	}
	if user == nil {
		return nil, response.NewApiError(http.StatusUnauthorized, "Invalid access token")
	}

	return user.Public(), nil
}

func (u *authUsecase) UpdateAccount(ctx context.Context, userID string, req *dto.UpdateAccountRequest) (*domain.PublicUser, error) {
	fullName := strings.TrimSpace(req.FullName)
	email := strings.TrimSpace(req.Email)
	if fullName == "" || email == "" {
		return nil, response.NewApiError(http.StatusBadRequest, "All fields are required")
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		u.logger.Error("update account: lookup failed", zap.Error(err))
		return nil, response.NewApiError(http.StatusInternalServerError, "Something went wrong while updating account")
	}
	if user == nil {
		return nil, response.NewApiError(http.StatusNotFound, "user does not exist")
	}

	user.FullName = fullName
	user.Email = email
	if err := u.userRepo.UpdateAccount(ctx, user); err != nil {
		u.logger.Error("update account: update failed", zap.Error(err))
		return nil, response.NewApiError(http.StatusInternalServerError, "Something went wrong while updating account")
	}
	return user.Public(), nil
}

func (u *authUsecase) UpdateAvatar(ctx context.Context, userID string, file io.Reader, contentType string) (*domain.PublicUser, error) {
	return u.updateImage(ctx, userID, file, contentType, u.userRepo.SetAvatar, "avatar")
}

func (u *authUsecase) UpdateCoverImage(ctx context.Context, userID string, file io.Reader, contentType string) (*domain.PublicUser, error) {
	return u.updateImage(ctx, userID, file, contentType, u.userRepo.SetCoverImage, "cover image")
}

func (u *authUsecase) updateImage(ctx context.Context, userID string, file io.Reader, contentType string, set func(context.Context, string, string) error, label string) (*domain.PublicUser, error) {
	if file == nil {
		return nil, response.NewApiError(http.StatusBadRequest, label+" file is required")
	}

	url, err := u.uploads.Upload(ctx, file, contentType)
	if err != nil {
		u.logger.Error("image upload failed", zap.String("userID", userID), zap.Error(err))
		return nil, response.NewApiError(http.StatusInternalServerError, "Something went wrong while uploading "+label)
	}

	if err := set(ctx, userID, url); err != nil {
		u.logger.Error("saving image url failed", zap.String("userID", userID), zap.Error(err))
		return nil, response.NewApiError(http.StatusInternalServerError, "Something went wrong while updating "+label)
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil || user == nil {
		return nil, response.NewApiError(http.StatusInternalServerError, "Something went wrong while updating "+label)
	}
	return user.Public(), nil
}
