package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecover(t *testing.T) {
	step := Recover("[TEST]")(func(ctx context.Context) error {
		panic("boom")
	})

	err := step(context.Background())
	assert.ErrorIs(t, err, ErrPanic)
	assert.Contains(t, err.Error(), "boom")
}

func TestRecover_PassesErrorsThrough(t *testing.T) {
	want := errors.New("plain failure")
	step := Recover("[TEST]")(func(ctx context.Context) error { return want })

	assert.Equal(t, want, step(context.Background()))
}

func TestRequireUser(t *testing.T) {
	called := false
	step := RequireUser(func(ctx context.Context) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, step(context.Background()), ErrUnauthenticated)
	assert.False(t, called)

	assert.ErrorIs(t, step(WithUser(context.Background(), "")), ErrUnauthenticated)

	assert.NoError(t, step(WithUser(context.Background(), "john")))
	assert.True(t, called)
}

func TestChain_Order(t *testing.T) {
	var order []string
	mw := func(name string) func(Step) Step {
		return func(next Step) Step {
			return func(ctx context.Context) error {
				order = append(order, name)
				return next(ctx)
			}
		}
	}

	step := Chain(func(ctx context.Context) error {
		order = append(order, "step")
		return nil
	}, mw("outer"), mw("inner"))

	assert.NoError(t, step(context.Background()))
	assert.Equal(t, []string{"outer", "inner", "step"}, order)
}

func TestChain_RecoverAroundRequireUser(t *testing.T) {
	step := Chain(func(ctx context.Context) error {
		username, _ := UserFromContext(ctx)
		panic(username)
	}, Recover("[TEST]"), RequireUser)

	err := step(WithUser(context.Background(), "john"))
	assert.ErrorIs(t, err, ErrPanic)
	assert.Contains(t, err.Error(), "john")
}
