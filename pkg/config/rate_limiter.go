package config

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	. "petstore/pkg"
	. "petstore/pkg/tracing"
)

type RateLimitEndpointConfig struct {
	Requests int
	Window   time.Duration
	KeyFunc  func(*gin.Context) string
}

type RateLimiter struct {
	cache   *cache.Cache
	config  map[string]RateLimitEndpointConfig
	logger  *zap.Logger
	metrics *AppMetrics
	mutex   sync.RWMutex
}

type RateLimitEntry struct {
	Count     int
	ResetTime time.Time
}

func NewRateLimiter(logger *zap.Logger, metrics *AppMetrics) *RateLimiter {
	c := cache.New(5*time.Minute, 10*time.Minute)

	configs := map[string]RateLimitEndpointConfig{
		"GET /pets": {
			Requests: 100,
			Window:   time.Minute,
			KeyFunc:  GetClientIP,
		},
		"POST /pets": {
			Requests: 20,
			Window:   time.Minute,
			KeyFunc:  GetClientIP,
		},
		"PUT /pets/:id": {
			Requests: 20,
			Window:   time.Minute,
			KeyFunc:  GetClientIP,
		},
		"DELETE /pets/:id": {
			Requests: 10,
			Window:   time.Minute,
			KeyFunc:  GetClientIP,
		},
		"GET /pets-statistics": {
			Requests: 30,
			Window:   time.Minute,
			KeyFunc:  GetClientIP,
		},
		"default": {
			Requests: 60,
			Window:   time.Minute,
			KeyFunc:  GetClientIP,
		},
	}

	return &RateLimiter{
		cache:   c,
		config:  configs,
		logger:  logger,
		metrics: metrics,
		mutex:   sync.RWMutex{},
	}
}

func (rl *RateLimiter) RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		normalizedPath := rl.normalizePath(path)
		methodPath := c.Request.Method + " " + normalizedPath

		config, exists := rl.config[methodPath]
		if !exists {
			config, exists = rl.config[normalizedPath]
			if !exists {
				config = rl.config["default"]
			}
		}

		key := rl.generateKey(c, methodPath, config.KeyFunc)

		allowed, remaining, resetTime, err := rl.checkRateLimit(key, config)
		if err != nil {
			rl.logger.Error("Rate limit check failed",
				zap.String("key", key),
				zap.String("path", path),
				zap.Error(err))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(config.Requests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			if rl.metrics != nil {
				rl.metrics.RecordRateLimitHit(c.Request.Context(), path, "ip")
			}

			rl.logger.Warn("Rate limit exceeded",
				zap.String("key", key),
				zap.String("path", path),
				zap.Int("limit", config.Requests),
				zap.Duration("window", config.Window))

			c.JSON(http.StatusTooManyRequests, gin.H{
				"success":     false,
				"message":     fmt.Sprintf("Too many requests. Limit: %d per %v", config.Requests, config.Window),
				"retry_after": int(time.Until(resetTime).Seconds()),
			})
			c.Abort()
			return
		}

		if rl.metrics != nil {
			rl.metrics.RecordRateLimitAllowed(c.Request.Context(), path, "ip")
		}

		c.Next()
	}
}

func (rl *RateLimiter) checkRateLimit(key string, config RateLimitEndpointConfig) (bool, int, time.Time, error) {
	now := time.Now()

	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	if entry, found := rl.cache.Get(key); found {
		rateLimitEntry := entry.(RateLimitEntry)

		if now.After(rateLimitEntry.ResetTime) {
			resetTime := now.Add(config.Window)
			newEntry := RateLimitEntry{
				Count:     1,
				ResetTime: resetTime,
			}
			rl.cache.Set(key, newEntry, config.Window)
			return true, config.Requests - 1, resetTime, nil
		}

		if rateLimitEntry.Count >= config.Requests {
			return false, 0, rateLimitEntry.ResetTime, nil
		}

		rateLimitEntry.Count++
		rl.cache.Set(key, rateLimitEntry, cache.DefaultExpiration)

		return true, config.Requests - rateLimitEntry.Count, rateLimitEntry.ResetTime, nil
	}

	resetTime := now.Add(config.Window)
	newEntry := RateLimitEntry{
		Count:     1,
		ResetTime: resetTime,
	}
	rl.cache.Set(key, newEntry, config.Window)

	return true, config.Requests - 1, resetTime, nil
}

func (rl *RateLimiter) normalizePath(path string) string {
	if strings.HasPrefix(path, "/pets/") {
		// /pets/123 -> /pets/:id
		parts := strings.Split(path, "/")
		if len(parts) >= 3 {
			parts[2] = ":id"
			return strings.Join(parts, "/")
		}
	}
	return path
}

func (rl *RateLimiter) generateKey(c *gin.Context, path string, keyFunc func(*gin.Context) string) string {
	identifier := keyFunc(c)
	return fmt.Sprintf("rate_limit:%s:%s", path, identifier)
}

func (rl *RateLimiter) SetConfig(path string, config RateLimitEndpointConfig) {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()
	rl.config[path] = config
}

func (rl *RateLimiter) GetStats() map[string]interface{} {
	stats := make(map[string]interface{})

	stats["active_entries"] = rl.cache.ItemCount()
	stats["configs"] = len(rl.config)

	return stats
}
