package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/maryrl/loja-fullstack/internal/apperrors"
	"github.com/maryrl/loja-fullstack/internal/controllers"
	"github.com/maryrl/loja-fullstack/internal/models"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubAuthenticator map[string]*models.User

func (s stubAuthenticator) Authenticate(_ context.Context, token string) (*models.User, error) {
	if u, ok := s[token]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUnauthorized
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	router := gin.New()
	RegisterRoutes(router, Controllers{
		Auth:    controllers.NewAuthController(nil, logger),
		Product: controllers.NewProductController(nil, logger),
		Cart:    controllers.NewCartController(nil, logger),
		Payment: controllers.NewPaymentController(nil, nil, logger),
		Webhook: controllers.NewWebhookController(nil, nil, logger),
		Admin:   controllers.NewAdminController(nil, logger),
		Health:  controllers.NewHealthController(nil, logger),
	}, stubAuthenticator{
		"user-token": {ID: "u-1", Email: "ana@example.com"},
	}, logger)
	return router
}

func TestProtectedRoutes(t *testing.T) {
	router := newTestRouter()

	cases := []struct {
		method, path string
	}{
		{http.MethodGet, "/api/admin/dashboard"},
		{http.MethodGet, "/api/admin/orders"},
		{http.MethodPut, "/api/admin/orders/o-1/status?status=shipped"},
		{http.MethodPost, "/api/products"},
		{http.MethodPut, "/api/products/p1"},
		{http.MethodDelete, "/api/products/p1"},
		{http.MethodPost, "/api/products/images/presign"},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
			assert.Equal(t, http.StatusUnauthorized, w.Code)

			req := httptest.NewRequest(tc.method, tc.path, nil)
			req.Header.Set("Authorization", "Bearer user-token")
			w = httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, http.StatusForbidden, w.Code)
		})
	}
}

func TestCartRequiresAuth(t *testing.T) {
	router := newTestRouter()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/cart", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRootRoute(t *testing.T) {
	router := newTestRouter()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Urban Threads API is running!"}`, w.Body.String())
}
