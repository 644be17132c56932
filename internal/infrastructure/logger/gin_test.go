package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func findRequestEntry(t *testing.T, recorded *observer.ObservedLogs) *observer.LoggedEntry {
	t.Helper()
	logs := recorded.All()
	require.NotEmpty(t, logs)
	for i := range logs {
		if logs[i].Message == "HTTP Request" {
			return &logs[i]
		}
	}
	t.Fatal("no request entry logged")
	return nil
}

func TestGinMiddlewareLogsByStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		level  zapcore.Level
	}{
		{"success logs info", http.StatusOK, zapcore.InfoLevel},
		{"client error logs warn", http.StatusUnprocessableEntity, zapcore.WarnLevel},
		{"server error logs error", http.StatusInternalServerError, zapcore.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, recorded := observer.New(zapcore.InfoLevel)

			router := gin.New()
			router.Use(GinMiddleware(zap.New(core)))
			router.GET("/contracts", func(c *gin.Context) {
				c.JSON(tt.status, gin.H{})
			})

			w := httptest.NewRecorder()
			req, _ := http.NewRequest("GET", "/contracts", nil)
			router.ServeHTTP(w, req)

			entry := findRequestEntry(t, recorded)
			assert.Equal(t, tt.level, entry.Level)
		})
	}
}

func TestGinMiddlewareCarriesRequestID(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("request_id", "req-123")
		c.Next()
	})
	router.Use(GinMiddleware(zap.New(core)))
	router.GET("/invoices", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/invoices", nil)
	router.ServeHTTP(w, req)

	entry := findRequestEntry(t, recorded)
	found := false
	for _, field := range entry.Context {
		if field.Key == "request_id" {
			found = true
			assert.Equal(t, "req-123", field.String)
		}
	}
	assert.True(t, found, "request_id should be in log fields")
}

func TestGinMiddlewareFields(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)

	router := gin.New()
	router.Use(GinMiddleware(zap.New(core)))
	router.GET("/invoices", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/invoices?status=pending&page=1", nil)
	req.Header.Set("User-Agent", "billing-cli/1.0")
	router.ServeHTTP(w, req)

	entry := findRequestEntry(t, recorded)
	fields := make(map[string]zap.Field)
	for _, field := range entry.Context {
		fields[field.Key] = field
	}

	for _, key := range []string{"status", "latency", "client_ip", "user_agent", "method", "path"} {
		assert.Contains(t, fields, key)
	}
	require.Contains(t, fields, "query")
	assert.Contains(t, fields["query"].String, "status=pending")
}

func TestRecovery(t *testing.T) {
	core, recorded := observer.New(zapcore.ErrorLevel)

	router := gin.New()
	router.Use(Recovery(zap.New(core)))
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/panic", nil)

	assert.NotPanics(t, func() {
		router.ServeHTTP(w, req)
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	logs := recorded.All()
	require.NotEmpty(t, logs)
	assert.Contains(t, logs[0].Message, "Panic recovered")
}

func TestGetGinLogger(t *testing.T) {
	core, _ := observer.New(zapcore.InfoLevel)

	var inHandler *zap.Logger

	router := gin.New()
	router.Use(GinMiddleware(zap.New(core)))
	router.GET("/contracts", func(c *gin.Context) {
		inHandler = GetGinLogger(c)
		c.JSON(http.StatusOK, gin.H{})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/contracts", nil)
	router.ServeHTTP(w, req)

	assert.NotNil(t, inHandler)
}

func TestGetGinLoggerWithoutMiddleware(t *testing.T) {
	var inHandler *zap.Logger

	router := gin.New()
	router.GET("/contracts", func(c *gin.Context) {
		inHandler = GetGinLogger(c)
		c.JSON(http.StatusOK, gin.H{})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/contracts", nil)
	router.ServeHTTP(w, req)

	// nop logger, never nil
	require.NotNil(t, inHandler)
	assert.NotPanics(t, func() {
		inHandler.Info("noop")
	})
}
