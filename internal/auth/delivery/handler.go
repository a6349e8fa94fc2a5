package delivery

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"vidtube-backend/internal/auth/domain"
	"vidtube-backend/internal/auth/dto"
	"vidtube-backend/internal/auth/usecase"
	"vidtube-backend/pkg/config"
	"vidtube-backend/pkg/response"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	cfg         *config.Config
	logger      *zap.Logger
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, cfg *config.Config, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase, cfg: cfg, logger: logger}
}

// setAuthCookies writes both tokens as httpOnly secure cookies. SameSite is
// set explicitly; browsers pick inconsistent defaults otherwise.
func (h *AuthHandler) setAuthCookies(c *gin.Context, accessToken, refreshToken string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(accessCookieName, accessToken, int(h.cfg.AccessTokenExpiry.Seconds()), "/", "", true, true)
	c.SetCookie(refreshCookieName, refreshToken, int(h.cfg.RefreshTokenExpiry.Seconds()), "/", "", true, true)
}

func (h *AuthHandler) clearAuthCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(accessCookieName, "", -1, "/", "", true, true)
	c.SetCookie(refreshCookieName, "", -1, "/", "", true, true)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, response.NewApiError(http.StatusBadRequest, "invalid request body"))
		return
	}

	user, err := h.authUsecase.Register(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, user, "User registered Successfully")
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, response.NewApiError(http.StatusBadRequest, "invalid request body"))
		return
	}

	tokens, err := h.authUsecase.Login(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setAuthCookies(c, tokens.AccessToken, tokens.RefreshToken)
	response.JSON(c, http.StatusOK, tokens, "User logged In Successfully")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	user, ok := UserFrom(c)
	if !ok {
		response.Error(c, response.NewApiError(http.StatusUnauthorized, "unauthorized request"))
		return
	}

	if err := h.authUsecase.Logout(c.Request.Context(), user.ID); err != nil {
		response.Error(c, err)
		return
	}

	h.clearAuthCookies(c)
	response.JSON(c, http.StatusOK, gin.H{}, fmt.Sprintf("User %s logged Out", user.Username))
}

// RefreshToken accepts the refresh token from the refreshToken cookie or,
// as a fallback, from the request body.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	presented, _ := c.Cookie(refreshCookieName)
	if presented == "" {
		var req dto.RefreshRequest
		if err := c.ShouldBindJSON(&req); err == nil {
			presented = req.RefreshToken
		}
	}

	tokens, err := h.authUsecase.Refresh(c.Request.Context(), presented)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setAuthCookies(c, tokens.AccessToken, tokens.RefreshToken)
	response.JSON(c, http.StatusOK, tokens, "Access token refreshed")
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	user, ok := UserFrom(c)
	if !ok {
		response.Error(c, response.NewApiError(http.StatusUnauthorized, "unauthorized request"))
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, response.NewApiError(http.StatusBadRequest, "invalid request body"))
		return
	}

	if err := h.authUsecase.ChangePassword(c.Request.Context(), user.ID, &req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{}, "Password changed successfully")
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := UserFrom(c)
	if !ok {
		response.Error(c, response.NewApiError(http.StatusUnauthorized, "unauthorized request"))
		return
	}
	response.JSON(c, http.StatusOK, user, "Current user fetched successfully")
}

func (h *AuthHandler) UpdateAccount(c *gin.Context) {
	user, ok := UserFrom(c)
	if !ok {
		response.Error(c, response.NewApiError(http.StatusUnauthorized, "unauthorized request"))
		return
	}

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, response.NewApiError(http.StatusBadRequest, "invalid request body"))
		return
	}

	updated, err := h.authUsecase.UpdateAccount(c.Request.Context(), user.ID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, updated, "Account details updated successfully")
}

func (h *AuthHandler) UpdateAvatar(c *gin.Context) {
	h.updateImage(c, "avatar", h.authUsecase.UpdateAvatar, "Avatar updated successfully")
}

func (h *AuthHandler) UpdateCoverImage(c *gin.Context) {
	h.updateImage(c, "coverImage", h.authUsecase.UpdateCoverImage, "Cover image updated successfully")
}

func (h *AuthHandler) updateImage(c *gin.Context, field string, update func(ctx context.Context, userID string, file io.Reader, contentType string) (*domain.PublicUser, error), message string) {
	user, ok := UserFrom(c)
	if !ok {
		response.Error(c, response.NewApiError(http.StatusUnauthorized, "unauthorized request"))
		return
	}

	fileHeader, err := c.FormFile(field)
	if err != nil {
		response.Error(c, response.NewApiError(http.StatusBadRequest, field+" file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("opening uploaded file failed", zap.Error(err))
		response.Error(c, response.NewApiError(http.StatusInternalServerError, "Something went wrong while reading the upload"))
		return
	}
	defer file.Close()

	updated, err := update(c.Request.Context(), user.ID, file, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, updated, message)
}
