package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestFailWithFields_Envelope(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.POST("/x", func(c *gin.Context) {
		FailWithFields(c, http.StatusBadRequest, ErrValidation, map[string]string{"email": "email is required"})
	})

	req := httptest.NewRequest(http.MethodPost, "/x", nil)
	req.Header.Set("X-Request-ID", "req-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "req-1", w.Header().Get("X-Request-ID"))

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	assert.Equal(t, ErrValidation, body.Error.Code)
	assert.Equal(t, GetMessage(ErrValidation), body.Error.Message)
	assert.Equal(t, "email is required", body.Error.Fields["email"])
	assert.Equal(t, "req-1", body.Metadata.RequestID)
}

func TestSuccess_GeneratesRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/x", func(c *gin.Context) { Success(c, http.StatusOK, gin.H{"ok": true}) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Nil(t, body.Error)
	assert.NotEmpty(t, body.Metadata.RequestID)
	assert.Equal(t, w.Header().Get("X-Request-ID"), body.Metadata.RequestID)
}

func TestNewPagination(t *testing.T) {
	assert.Equal(t, 3, NewPagination(1, 10, 21).TotalPages)
	assert.Equal(t, 0, NewPagination(1, 0, 21).TotalPages)
}

func TestGetMessage_Unknown(t *testing.T) {
	assert.Equal(t, "An unexpected error occurred.", GetMessage("NOPE"))
}
