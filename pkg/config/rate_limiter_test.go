package config

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	. "petstore/pkg/tracing"
)

func newTestRateLimiter() *RateLimiter {
	logger := zap.NewNop()
	metrics := NewAppMetrics(prometheus.NewRegistry())
	return NewRateLimiter(logger, metrics)
}

func TestNewRateLimiter(t *testing.T) {
	RegisterTestingT(t)
	rl := newTestRateLimiter()

	Expect(rl).ToNot(BeNil())
	Expect(rl.cache).ToNot(BeNil())
	Expect(rl.config).ToNot(BeNil())
	Expect(rl.logger).ToNot(BeNil())
	Expect(rl.metrics).ToNot(BeNil())
}

func TestRateLimitMiddleware_AllowedRequests(t *testing.T) {
	RegisterTestingT(t)
	rl := newTestRateLimiter()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(rl.RateLimitMiddleware())

	router.GET("/test", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/test", nil)
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(200))
		Expect(w.Header().Get("X-RateLimit-Limit")).ToNot(BeEmpty())
		Expect(w.Header().Get("X-RateLimit-Remaining")).ToNot(BeEmpty())
	}
}

func TestRateLimitMiddleware_ExceedLimit(t *testing.T) {
	RegisterTestingT(t)
	rl := newTestRateLimiter()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(rl.RateLimitMiddleware())

	router.GET("/test", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Default limit is 60 requests per minute
	for i := 0; i < 65; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/test", nil)
		router.ServeHTTP(w, req)

		if i < 60 {
			Expect(w.Code).To(Equal(200))
		} else {
			Expect(w.Code).To(Equal(429))
		}
	}
}

func TestRateLimitMiddleware_DeleteRequests(t *testing.T) {
	RegisterTestingT(t)
	rl := newTestRateLimiter()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(rl.RateLimitMiddleware())

	callCount := 0
	router.DELETE("/pets/:id", func(c *gin.Context) {
		callCount++
		c.JSON(200, gin.H{"method": "DELETE", "count": callCount})
	})

	// DELETE /pets/:id is limited to 10 per minute
	expectedRemaining := []int{9, 8, 7, 6, 5}

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/pets/123", nil)
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(200))
		Expect(callCount).To(Equal(i + 1))

		remaining := w.Header().Get("X-RateLimit-Remaining")
		expectedRemainingStr := strconv.Itoa(expectedRemaining[i])
		Expect(remaining).To(Equal(expectedRemainingStr),
			"DELETE Request %d: Expected remaining %s, got %s",
			i+1, expectedRemainingStr, remaining)
	}
}

func TestRateLimiterGetStats(t *testing.T) {
	RegisterTestingT(t)
	rl := newTestRateLimiter()

	stats := rl.GetStats()
	Expect(stats).ToNot(BeNil())
	Expect(stats["active_entries"]).ToNot(BeNil())
	Expect(stats["configs"]).ToNot(BeNil())
}

func TestRateLimiterSetConfig(t *testing.T) {
	RegisterTestingT(t)
	rl := newTestRateLimiter()

	config := RateLimitEndpointConfig{
		Requests: 5,
		Window:   time.Minute,
		KeyFunc:  func(c *gin.Context) string { return "fixed" },
	}

	rl.SetConfig("/custom", config)

	Expect(rl.config["/custom"].Requests).To(Equal(config.Requests))
	Expect(rl.config["/custom"].Window).To(Equal(config.Window))
	Expect(rl.config["/custom"].KeyFunc).ToNot(BeNil())
}

func TestRateLimitMiddleware_NoDoubleCounting(t *testing.T) {
	RegisterTestingT(t)
	rl := newTestRateLimiter()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(rl.RateLimitMiddleware())

	callCount := 0
	var callCountMutex sync.Mutex
	router.POST("/pets", func(c *gin.Context) {
		callCountMutex.Lock()
		callCount++
		callCountMutex.Unlock()
		c.JSON(201, gin.H{"method": "POST"})
	})

	numRequests := 10
	results := make([]int, numRequests)
	var wg sync.WaitGroup

	for i := 0; i < numRequests; i++ {
		index := i
		wg.Go(func() {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest("POST", "/pets", nil)
			router.ServeHTTP(w, req)

			remaining, _ := strconv.Atoi(w.Header().Get("X-RateLimit-Remaining"))
			results[index] = remaining
		})
	}

	wg.Wait()

	Expect(callCount).To(Equal(numRequests))

	// POST /pets is limited to 20 per minute
	expectedRemaining := []int{19, 18, 17, 16, 15, 14, 13, 12, 11, 10}
	sort.Ints(results)
	sort.Ints(expectedRemaining)

	Expect(results).To(Equal(expectedRemaining),
		"Concurrent requests should decrement the counter exactly once each: %v", results)
}
