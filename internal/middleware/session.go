// Package middleware wraps session steps the way HTTP middleware wraps
// handlers.
package middleware

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime/debug"
)

// Step is one unit of an interactive session, e.g. a menu pass.
type Step func(ctx context.Context) error

type contextKey string

const userKey contextKey = "username"

var (
	ErrPanic           = errors.New("session step panicked")
	ErrUnauthenticated = errors.New("no authenticated user")
)

// Chain applies mws so that the first one is the outermost.
func Chain(step Step, mws ...func(Step) Step) Step {
	for i := len(mws) - 1; i >= 0; i-- {
		step = mws[i](step)
	}
	return step
}

// Recover turns a panic in next into an error wrapping ErrPanic and logs the
// stack under tag.
func Recover(tag string) func(Step) Step {
	return func(next Step) Step {
		return func(ctx context.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("%s panic: %v\n%s", tag, r, debug.Stack())
					err = fmt.Errorf("%w: %v", ErrPanic, r)
				}
			}()
			return next(ctx)
		}
	}
}

// RequireUser rejects steps run without an authenticated username in ctx.
func RequireUser(next Step) Step {
	return func(ctx context.Context) error {
		if _, ok := UserFromContext(ctx); !ok {
			return ErrUnauthenticated
		}
		return next(ctx)
	}
}

func WithUser(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, userKey, username)
}

func UserFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(userKey).(string)
	return username, ok && username != ""
}
