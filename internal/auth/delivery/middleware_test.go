package delivery

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"vidtube-backend/internal/auth/dto"
	"vidtube-backend/internal/auth/repository"
	"vidtube-backend/internal/auth/token"
	"vidtube-backend/internal/auth/usecase"
)

type nopUploader struct{}

func (nopUploader) Upload(context.Context, io.Reader, string) (string, error) {
	return "https://img.example/u.png", nil
}

type testEnv struct {
	uc    usecase.AuthUsecase
	codec *token.Codec
	repo  repository.UserRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	codec, err := token.NewCodec("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	require.NoError(t, err)
	repo := repository.NewMemoryUserRepository()
	uc := usecase.NewAuthUsecase(repo, codec, nopUploader{}, zap.NewNop())
	return &testEnv{uc: uc, codec: codec, repo: repo}
}

func (e *testEnv) login(t *testing.T) *dto.TokenResponse {
	t.Helper()
	ctx := context.Background()

	_, err := e.uc.Register(ctx, &dto.RegisterRequest{
		Username: "ana", Email: "a@x.com", Password: "p1", FullName: "Ana",
	})
	require.NoError(t, err)

	resp, err := e.uc.Login(ctx, &dto.LoginRequest{Username: "ana", Password: "p1"})
	require.NoError(t, err)
	return resp
}

func protectedRouter(e *testEnv) *gin.Engine {
	r := gin.New()
	r.GET("/protected", AuthMiddleware(e.uc, zap.NewNop()), func(c *gin.Context) {
		user, _ := UserFrom(c)
		c.JSON(http.StatusOK, gin.H{"username": user.Username})
	})
	return r
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	e := newTestEnv(t)
	r := protectedRouter(e)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_BearerHeader(t *testing.T) {
	e := newTestEnv(t)
	login := e.login(t)
	r := protectedRouter(e)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+login.AccessToken)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"ana"`)
}

func TestAuthMiddleware_Cookie(t *testing.T) {
	e := newTestEnv(t)
	login := e.login(t)
	r := protectedRouter(e)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: login.AccessToken})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_CookieTakesPrecedenceOverHeader(t *testing.T) {
	e := newTestEnv(t)
	login := e.login(t)
	r := protectedRouter(e)

	// A garbage cookie with a valid header must fail: the cookie is read
	// first and is not falling back to the header once present.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "accessToken", Value: "garbage"})
	req.Header.Set("Authorization", "Bearer "+login.AccessToken)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	e := newTestEnv(t)
	login := e.login(t)
	r := protectedRouter(e)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token "+login.AccessToken)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_RefreshTokenRejected(t *testing.T) {
	e := newTestEnv(t)
	login := e.login(t)
	r := protectedRouter(e)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+login.RefreshToken)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	e := newTestEnv(t)
	e.login(t)

	expiredCodec, err := token.NewCodec("access-secret", "refresh-secret", -time.Minute, -time.Minute)
	require.NoError(t, err)
	expired, err := expiredCodec.IssueAccess("whoever")
	require.NoError(t, err)

	r := protectedRouter(e)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_UnknownSubject(t *testing.T) {
	e := newTestEnv(t)

	// Structurally valid access token whose user does not exist.
	tok, err := e.codec.IssueAccess(uuid.NewString())
	require.NoError(t, err)

	r := protectedRouter(e)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
