package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", handler)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func TestJSON_SuccessEnvelope(t *testing.T) {
	w := record(func(c *gin.Context) {
		JSON(c, http.StatusOK, gin.H{"k": "v"}, "")
	})

	var env ApiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, http.StatusOK, env.StatusCode)
	assert.Equal(t, "Success", env.Message)
	assert.True(t, env.Success)
}

func TestError_ApiErrorEnvelope(t *testing.T) {
	w := record(func(c *gin.Context) {
		Error(c, NewApiError(http.StatusConflict, "taken", "username exists"))
	})

	assert.Equal(t, http.StatusConflict, w.Code)

	var body struct {
		StatusCode int      `json:"statusCode"`
		Data       *string  `json:"data"`
		Message    string   `json:"message"`
		Success    bool     `json:"success"`
		Errors     []string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, http.StatusConflict, body.StatusCode)
	assert.Nil(t, body.Data)
	assert.Equal(t, "taken", body.Message)
	assert.False(t, body.Success)
	assert.Equal(t, []string{"username exists"}, body.Errors)
}

func TestError_UnknownErrorBecomes500(t *testing.T) {
	w := record(func(c *gin.Context) {
		Error(c, errors.New("pg: connection reset"))
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	// Internals must not leak.
	assert.NotContains(t, w.Body.String(), "connection reset")
}
