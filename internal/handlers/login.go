package handlers

import (
	"context"
	"log"

	"github.com/bankofray/atm/internal/messages"
)

func (h *SessionHandler) login(ctx context.Context, s *Session) error {
	username, aborted, err := s.promptUntil(messages.LoginUsernamePrompt, func(line string) (bool, error) {
		exists, err := h.ledger.UserExists(ctx, line)
		if err != nil {
			return false, err
		}
		if !exists {
			s.out.Show(messages.UsernameNotFound)
		}
		return exists, nil
	})
	if err != nil {
		return h.abandon(s, "login", err)
	}
	if aborted {
		return nil
	}

	// Lookup errors are logged by the throttle and treated as unlocked.
	if locked, _ := h.throttle.Locked(ctx, username); locked {
		log.Printf("%s login refused for locked user %s", s.tag(), username)
		s.out.Show(messages.LoginLocked)
		return nil
	}

	locked := false
	_, aborted, err = s.promptUntil(messages.LoginPasswordPrompt, func(line string) (bool, error) {
		ok, err := h.ledger.Authenticate(ctx, username, line)
		if err != nil || ok {
			return ok, err
		}

		s.out.Show(messages.InvalidPassword)
		failures, _ := h.throttle.RecordFailure(ctx, username)
		if limit := h.throttle.MaxAttempts(); limit > 0 && failures >= limit {
			locked = true
			return true, nil
		}
		return false, nil
	})
	if err != nil {
		return h.abandon(s, "login", err)
	}
	if aborted {
		return nil
	}
	if locked {
		s.out.Show(messages.LoginLocked)
		return nil
	}

	h.throttle.Reset(ctx, username)
	s.out.Show(messages.LoginSuccess)
	s.username = username
	log.Printf("%s %s logged in", s.tag(), username)

	return h.actionMenu(ctx, s)
}
