package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo"
	"github.com/stretchr/testify/assert"
)

const (
	basicUsername  = "user"
	basicPass      = "da1c25d8-37c8-41b1-afe2-42dd4825bfea"
	validBasicAuth = "dXNlcjpkYTFjMjVkOC0zN2M4LTQxYjEtYWZlMi00MmRkNDgyNWJmZWE="
)

func TestBasicAuth(t *testing.T) {

	midd := NewMiddleware(basicUsername, basicPass)

	t.Run("Test With Valid Auth", func(t *testing.T) {

		err := midd.Basic(context.Background(), validBasicAuth)
		assert.NoError(t, err)
	})

	t.Run("Test With Invalid Auth #1", func(t *testing.T) {

		err := midd.Basic(context.Background(), "MjIyMjphc2RzZA==")
		assert.Error(t, err)
	})

	t.Run("Test With Invalid Auth #2", func(t *testing.T) {

		err := midd.Basic(context.Background(), "zzzzzzz")
		assert.Error(t, err)
	})
}

func TestHTTPBasicAuth(t *testing.T) {

	midd := NewMiddleware(basicUsername, basicPass)

	e := echo.New()
	handler := midd.HTTPBasicAuth(false)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	t.Run("Testcase #1: valid credentials", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/stats", nil)
		req.Header.Set(echo.HeaderAuthorization, "Basic "+validBasicAuth)
		rec := httptest.NewRecorder()

		err := handler(e.NewContext(req, rec))
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Testcase #2: missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/stats", nil)
		rec := httptest.NewRecorder()

		handler(e.NewContext(req, rec))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Testcase #3: wrong auth type", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/stats", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer xxx")
		rec := httptest.NewRecorder()

		handler(e.NewContext(req, rec))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
