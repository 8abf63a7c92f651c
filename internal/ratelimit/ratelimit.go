package ratelimit

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// AIRateLimiter tracks daily request budgets per AI service plus a shared total.
type AIRateLimiter struct {
	mu        sync.Mutex
	counts    map[string]int
	limits    map[string]int
	totalUsed int
	maxTotal  int
	resetTime time.Time
}

// NewAIRateLimiter creates a limiter with per-service limits (0 = unlimited).
func NewAIRateLimiter(limits map[string]int, maxTotal int) *AIRateLimiter {
	copied := make(map[string]int, len(limits))
	for svc, max := range limits {
		copied[svc] = max
	}
	return &AIRateLimiter{
		counts:    make(map[string]int),
		limits:    copied,
		maxTotal:  maxTotal,
		resetTime: time.Now().Add(24 * time.Hour), // Reset daily
	}
}

// Allow reports whether a request to the given service would fit the budget.
func (rl *AIRateLimiter) Allow(service string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.checkReset()

	if max := rl.limits[service]; max > 0 && rl.counts[service] >= max {
		log.Printf("⚠️ %s rate limit reached (%d/%d)", service, rl.counts[service], max)
		return false
	}

	if rl.maxTotal > 0 && rl.totalUsed >= rl.maxTotal {
		log.Printf("⚠️ Total AI rate limit reached (%d/%d)", rl.totalUsed, rl.maxTotal)
		return false
	}

	return true
}

// Use consumes one request from the service budget.
func (rl *AIRateLimiter) Use(service string) error {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.checkReset()

	if max := rl.limits[service]; max > 0 && rl.counts[service] >= max {
		return fmt.Errorf("%s rate limit exceeded", service)
	}

	if rl.maxTotal > 0 && rl.totalUsed >= rl.maxTotal {
		return fmt.Errorf("total AI rate limit exceeded")
	}

	rl.counts[service]++
	rl.totalUsed++

	return nil
}

// GetStats returns current rate limiter statistics.
func (rl *AIRateLimiter) GetStats() map[string]interface{} {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	stats := map[string]interface{}{
		"total_used":  rl.totalUsed,
		"total_limit": rl.maxTotal,
		"reset_time":  rl.resetTime,
	}
	for svc, used := range rl.counts {
		stats[svc+"_used"] = used
	}
	for svc, max := range rl.limits {
		stats[svc+"_limit"] = max
	}
	return stats
}

// checkReset resets counters if reset time has passed
func (rl *AIRateLimiter) checkReset() {
	if time.Now().After(rl.resetTime) {
		log.Printf("🔄 Resetting AI rate limiter counters")
		rl.counts = make(map[string]int)
		rl.totalUsed = 0
		rl.resetTime = time.Now().Add(24 * time.Hour)
	}
}
