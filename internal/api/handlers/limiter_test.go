package handlers

import (
	"cvrp-annealing-service/internal/services"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnknownRunsDoNotAllocateLimiters(t *testing.T) {
	limiter := NewStepLimiter(1, 1)
	h := &RunHandler{Runs: services.NewRunManager(nil, 0), Limiter: limiter}

	for _, id := range []string{"a", "b", "c"} {
		req := httptest.NewRequest(http.MethodPost, "/runs/"+id+"/steps", strings.NewReader(`{"iterations": 1}`))
		req.SetPathValue("id", id)
		rec := httptest.NewRecorder()
		h.Step(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		req = httptest.NewRequest(http.MethodGet, "/runs/"+id+"/stream", nil)
		req.SetPathValue("id", id)
		rec = httptest.NewRecorder()
		h.Stream(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}

	assert.Empty(t, limiter.limiters)
}

func TestStepLimiterForget(t *testing.T) {
	limiter := NewStepLimiter(0.001, 1)

	assert.True(t, limiter.Allow("run"))
	assert.False(t, limiter.Allow("run"))

	limiter.Forget("run")
	assert.True(t, limiter.Allow("run"))
}
