package handlers

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/bankofray/atm/internal/messages"
	"github.com/bankofray/atm/internal/services"
)

func (h *SessionHandler) signup(ctx context.Context, s *Session) error {
	s.out.Show(messages.SignupNotice)

	firstName, aborted, err := s.promptUntil(messages.FirstNamePrompt, nameAcceptor(s, messages.InvalidFirstName))
	if err != nil || aborted {
		return err
	}

	lastName, aborted, err := s.promptUntil(messages.LastNamePrompt, nameAcceptor(s, messages.InvalidLastName))
	if err != nil || aborted {
		return err
	}

	username, aborted, err := s.promptUntil(messages.SignupUsernamePrompt, func(line string) (bool, error) {
		exists, err := h.ledger.UserExists(ctx, line)
		if err != nil {
			return false, err
		}
		if exists {
			s.out.Show(messages.UsernameTaken)
			return false, nil
		}
		if !services.IsValidUsername(line) {
			s.out.Show(messages.InvalidUsername)
			return false, nil
		}
		return true, nil
	})
	if err != nil {
		return h.abandon(s, "signup", err)
	}
	if aborted {
		return nil
	}

	password, aborted, err := choosePassword(s)
	if err != nil || aborted {
		return err
	}

	req := services.SignupRequest{
		FirstName: strings.ToUpper(firstName),
		LastName:  strings.ToUpper(lastName),
		Username:  username,
		Password:  password,
	}
	if err := h.validator.ValidateStruct(&req); err != nil {
		log.Printf("%s signup rejected: %v", s.tag(), services.FieldErrors(err))
		s.out.Show(messages.SignupFailure)
		return nil
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		log.Printf("%s password hashing failed: %v", s.tag(), err)
		s.out.Show(messages.SignupFailure)
		return nil
	}

	err = h.ledger.CreateUserWithAccount(ctx, req.FirstName, req.LastName, req.Username, hash)
	switch {
	case errors.Is(err, services.ErrUsernameTaken):
		s.out.Show(messages.UsernameTaken)
		s.out.Show(messages.SignupFailure)
	case err != nil:
		log.Printf("%s signup for %s failed: %v", s.tag(), req.Username, err)
		s.out.Show(messages.SignupFailure)
	default:
		log.Printf("%s signed up %s", s.tag(), req.Username)
		s.out.Show(messages.SignupSuccess)
	}
	return nil
}

func nameAcceptor(s *Session, invalid messages.Message) func(string) (bool, error) {
	return func(line string) (bool, error) {
		if !services.IsAlphabetic(line) {
			s.out.Show(invalid)
			return false, nil
		}
		return true, nil
	}
}

// choosePassword asks for a password and its confirmation. "back" at the
// confirmation returns to the password prompt.
func choosePassword(s *Session) (string, bool, error) {
	for {
		password, aborted, err := s.promptUntil(messages.SignupPasswordPrompt, func(line string) (bool, error) {
			if !services.IsValidPassword(line) {
				s.out.Show(messages.InvalidPassword)
				return false, nil
			}
			return true, nil
		})
		if err != nil || aborted {
			return "", aborted, err
		}

		retry := false
		_, aborted, err = s.promptUntil(messages.ConfirmPassword, func(line string) (bool, error) {
			switch {
			case strings.EqualFold(line, backToken):
				retry = true
				return true, nil
			case line != password:
				s.out.Show(messages.PasswordsDontMatch)
				return false, nil
			default:
				return true, nil
			}
		})
		if err != nil || aborted {
			return "", aborted, err
		}
		if !retry {
			return password, false, nil
		}
	}
}
