package services

import (
	"context"
	"fmt"
	"log"

	"github.com/bankofray/atm/internal/config"
	"github.com/go-redis/redis/v8"
)

// LoginThrottle counts failed password attempts per username in Redis and
// locks the username once the configured maximum is reached. A nil Redis
// client disables throttling. Redis errors fail open.
type LoginThrottle struct {
	redis  *redis.Client
	config *config.SessionConfig
}

func NewLoginThrottle(redis *redis.Client, cfg *config.SessionConfig) *LoginThrottle {
	return &LoginThrottle{
		redis:  redis,
		config: cfg,
	}
}

func (t *LoginThrottle) enabled() bool {
	return t != nil && t.redis != nil && t.config != nil && t.config.LoginMaxAttempts > 0
}

func (t *LoginThrottle) key(username string) string {
	return fmt.Sprintf("%s:%s", t.config.LoginKeyPrefix, username)
}

// Locked reports whether username has used up its attempts.
func (t *LoginThrottle) Locked(ctx context.Context, username string) (bool, error) {
	if !t.enabled() {
		return false, nil
	}

	count, err := t.redis.Get(ctx, t.key(username)).Int()
	if err != nil && err != redis.Nil {
		log.Printf("[THROTTLE] lookup failed for %s: %v", username, err)
		return false, err
	}

	return count >= t.config.LoginMaxAttempts, nil
}

// RecordFailure bumps the failure count and returns the new value. The
// lockout window starts with the first failure.
func (t *LoginThrottle) RecordFailure(ctx context.Context, username string) (int, error) {
	if !t.enabled() {
		return 0, nil
	}

	key := t.key(username)
	count, err := t.redis.Incr(ctx, key).Result()
	if err != nil {
		log.Printf("[THROTTLE] increment failed for %s: %v", username, err)
		return 0, err
	}

	if count == 1 {
		if err := t.redis.Expire(ctx, key, t.config.LoginLockoutWindow).Err(); err != nil {
			log.Printf("[THROTTLE] expire failed for %s: %v", username, err)
			return int(count), err
		}
	}

	if int(count) >= t.config.LoginMaxAttempts {
		log.Printf("[THROTTLE] %s locked for %s after %d failures", username, t.config.LoginLockoutWindow, count)
	}
	return int(count), nil
}

// Reset clears the failure count after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, username string) error {
	if !t.enabled() {
		return nil
	}

	if err := t.redis.Del(ctx, t.key(username)).Err(); err != nil {
		log.Printf("[THROTTLE] reset failed for %s: %v", username, err)
		return err
	}
	return nil
}

// MaxAttempts is the configured limit, 0 when throttling is off.
func (t *LoginThrottle) MaxAttempts() int {
	if !t.enabled() {
		return 0
	}
	return t.config.LoginMaxAttempts
}
