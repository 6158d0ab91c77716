package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestAccessLog(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer

	r := gin.New()
	r.Use(AccessLog(&buf, "/ws/trip"))
	r.GET("/api/trip-data", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/ws/trip", func(c *gin.Context) { c.Status(http.StatusOK) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/trip-data", nil))
	assert.Contains(t, buf.String(), "/api/trip-data")

	buf.Reset()
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ws/trip", nil))
	assert.Empty(t, buf.String())
}
