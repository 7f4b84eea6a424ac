package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bankofray/atm/internal/config"
	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func throttleConfig() *config.SessionConfig {
	return &config.SessionConfig{
		LoginMaxAttempts:   3,
		LoginLockoutWindow: 15 * time.Minute,
		LoginKeyPrefix:     "atm:login_failures",
	}
}

func TestLoginThrottle_Disabled(t *testing.T) {
	ctx := context.Background()
	throttle := NewLoginThrottle(nil, throttleConfig())

	locked, err := throttle.Locked(ctx, "john")
	assert.NoError(t, err)
	assert.False(t, locked)

	count, err := throttle.RecordFailure(ctx, "john")
	assert.NoError(t, err)
	assert.Zero(t, count)
	assert.NoError(t, throttle.Reset(ctx, "john"))
	assert.Zero(t, throttle.MaxAttempts())

	var nilThrottle *LoginThrottle
	locked, err = nilThrottle.Locked(ctx, "john")
	assert.NoError(t, err)
	assert.False(t, locked)
}

func TestLoginThrottle_Locked(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	throttle := NewLoginThrottle(db, throttleConfig())

	t.Run("no failures yet", func(t *testing.T) {
		mock.ExpectGet("atm:login_failures:john").RedisNil()
		locked, err := throttle.Locked(ctx, "john")
		assert.NoError(t, err)
		assert.False(t, locked)
	})

	t.Run("under the limit", func(t *testing.T) {
		mock.ExpectGet("atm:login_failures:john").SetVal("2")
		locked, err := throttle.Locked(ctx, "john")
		assert.NoError(t, err)
		assert.False(t, locked)
	})

	t.Run("limit reached", func(t *testing.T) {
		mock.ExpectGet("atm:login_failures:john").SetVal("3")
		locked, err := throttle.Locked(ctx, "john")
		assert.NoError(t, err)
		assert.True(t, locked)
	})

	t.Run("redis down", func(t *testing.T) {
		mock.ExpectGet("atm:login_failures:john").SetErr(errors.New("connection refused"))
		locked, err := throttle.Locked(ctx, "john")
		assert.Error(t, err)
		assert.False(t, locked)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginThrottle_RecordFailure(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	throttle := NewLoginThrottle(db, throttleConfig())

	mock.ExpectIncr("atm:login_failures:john").SetVal(1)
	mock.ExpectExpire("atm:login_failures:john", 15*time.Minute).SetVal(true)
	mock.ExpectIncr("atm:login_failures:john").SetVal(2)

	count, err := throttle.RecordFailure(ctx, "john")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = throttle.RecordFailure(ctx, "john")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginThrottle_Reset(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	throttle := NewLoginThrottle(db, throttleConfig())

	mock.ExpectDel("atm:login_failures:john").SetVal(1)
	assert.NoError(t, throttle.Reset(ctx, "john"))
	assert.Equal(t, 3, throttle.MaxAttempts())

	assert.NoError(t, mock.ExpectationsWereMet())
}
