package handlers

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/InfringeScope/pkg/errors"
)

type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Name() string                { return s.name }
func (s stubChecker) Check(context.Context) error { return s.err }

func serveHealth(h gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	h(c)
	return w
}

func TestLiveness(t *testing.T) {
	h := NewHealthHandler("1.2.3", stubChecker{name: "postgres", err: stderrors.New("down")})
	w := serveHealth(h.Liveness)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp LivenessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "alive", resp.Status)
	assert.Equal(t, "1.2.3", resp.Version)
}

func TestReadiness_NoCheckers(t *testing.T) {
	w := serveHealth(NewHealthHandler("v", nil).Readiness)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ready"}`, w.Body.String())
}

func TestReadiness_AllHealthy(t *testing.T) {
	h := NewHealthHandler("v", stubChecker{name: "postgres"}, stubChecker{name: "redis"})
	w := serveHealth(h.Readiness)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp ReadinessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ready", resp.Status)
	assert.Len(t, resp.Components, 2)
}

func TestReadiness_OneUnhealthy(t *testing.T) {
	h := NewHealthHandler("v",
		stubChecker{name: "postgres"},
		stubChecker{name: "redis", err: errors.New(errors.ErrCodeCacheError, "redis connection failed")},
	)
	w := serveHealth(h.Readiness)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	var resp ReadinessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "not_ready", resp.Status)
	assert.Equal(t, "healthy", resp.Components["postgres"].Status)
	assert.Equal(t, "unhealthy", resp.Components["redis"].Status)
	assert.Contains(t, resp.Components["redis"].Error, "redis connection failed")
}

//Personal.AI order the ending
