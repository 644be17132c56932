package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentora/backend/internal/infrastructure/logger"
)

func TestTenantMiddleware_HeaderExtraction(t *testing.T) {
	tests := []struct {
		name           string
		tenantID       string
		expectedStatus int
	}{
		{"valid numeric ID", "42", http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"non-numeric ID", "acme", http.StatusUnauthorized},
		{"zero ID", "0", http.StatusUnauthorized},
		{"negative ID", "-3", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(TenantMiddleware())
			router.GET("/test", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"tenant_id": GetTenantID(c)})
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.tenantID != "" {
				req.Header.Set(TenantHeaderKey, tt.tenantID)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestTenantMiddleware_JWTOverridesHeader(t *testing.T) {
	var captured string

	router := gin.New()
	router.Use(func(c *gin.Context) {
		// Simulate JWT middleware having run first.
		c.Set(JWTTenantIDKey, "7")
		c.Next()
	})
	router.Use(TenantMiddleware())
	router.GET("/test", func(c *gin.Context) {
		captured = GetTenantID(c)
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(TenantHeaderKey, "99")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "7", captured)
}

func TestTenantMiddleware_SkipPaths(t *testing.T) {
	router := gin.New()
	router.Use(TenantMiddleware())
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTenantMiddleware_OptionalTenant(t *testing.T) {
	router := gin.New()
	router.Use(OptionalTenantMiddleware())
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"tenant_id": GetTenantID(c)})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

type stubTenantValidator struct {
	valid map[string]*TenantInfo
}

func (v *stubTenantValidator) ValidateTenant(tenantID string) (*TenantInfo, error) {
	if info, ok := v.valid[tenantID]; ok {
		return info, nil
	}
	return nil, errors.New("tenant not found")
}

func TestTenantMiddleware_WithValidator(t *testing.T) {
	cfg := DefaultTenantConfig()
	cfg.Validator = &stubTenantValidator{
		valid: map[string]*TenantInfo{
			"7": {ID: 7, Name: "Seventh Properties"},
		},
	}

	router := gin.New()
	router.Use(TenantMiddlewareWithConfig(cfg))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"tenant_name": GetTenantName(c)})
	})

	t.Run("known tenant passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(TenantHeaderKey, "7")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Seventh Properties")
	})

	t.Run("unknown tenant rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(TenantHeaderKey, "8")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestTenantMiddleware_ContextPropagation(t *testing.T) {
	var fromRequestCtx string

	router := gin.New()
	router.Use(TenantMiddleware())
	router.GET("/test", func(c *gin.Context) {
		fromRequestCtx = logger.GetTenantID(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(TenantHeaderKey, "42")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "42", fromRequestCtx)
}

func TestGetTenantNumericID(t *testing.T) {
	t.Run("parses bound tenant", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set(TenantIDKey, "42")

		id, err := GetTenantNumericID(c)
		require.NoError(t, err)
		assert.Equal(t, int64(42), id)
	})

	t.Run("returns zero when unbound", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())

		id, err := GetTenantNumericID(c)
		require.NoError(t, err)
		assert.Zero(t, id)
	})
}

func TestMustGetTenantID_Panics(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Panics(t, func() {
		MustGetTenantID(c)
	})
}

func TestDefaultTenantConfig(t *testing.T) {
	cfg := DefaultTenantConfig()
	assert.True(t, cfg.HeaderEnabled)
	assert.True(t, cfg.JWTEnabled)
	assert.True(t, cfg.Required)
	assert.Contains(t, cfg.SkipPaths, "/health")
}
