package handlers

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/bankofray/atm/internal/messages"
	"github.com/bankofray/atm/internal/middleware"
	"github.com/bankofray/atm/internal/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	abortToken = "0"
	backToken  = "back"
)

var (
	// errInputClosed ends the session. A bare errInputClosed is a clean EOF;
	// read failures wrap it.
	errInputClosed = errors.New("input closed")
	errExit        = errors.New("exit requested")
	errLogout      = errors.New("logout requested")
)

// SessionHandler drives the ATM menus for one terminal session at a time.
type SessionHandler struct {
	ledger    services.Ledger
	hasher    services.PasswordHasher
	throttle  *services.LoginThrottle
	validator *services.ValidationHelper
}

func NewSessionHandler(ledger services.Ledger, hasher services.PasswordHasher, throttle *services.LoginThrottle) *SessionHandler {
	return &SessionHandler{
		ledger:    ledger,
		hasher:    hasher,
		throttle:  throttle,
		validator: services.NewValidationHelper(),
	}
}

// Session is the state of one interactive session. The balance is a
// snapshot of the last value read from the ledger.
type Session struct {
	ID          string
	in          *bufio.Scanner
	out         *messages.Presenter
	username    string
	displayName string
	balance     decimal.Decimal
}

func newSession(in io.Reader, out *messages.Presenter) *Session {
	return &Session{
		ID:  uuid.NewString(),
		in:  bufio.NewScanner(in),
		out: out,
	}
}

func (s *Session) tag() string {
	return fmt.Sprintf("[SESSION %s]", s.ID)
}

func (s *Session) readLine() (string, error) {
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", fmt.Errorf("%w: %v", errInputClosed, err)
		}
		return "", errInputClosed
	}
	return strings.TrimSpace(s.in.Text()), nil
}

// promptUntil shows prompt and reads lines until accept takes one. It
// reports aborted when the user types 0.
func (s *Session) promptUntil(prompt messages.Message, accept func(line string) (bool, error)) (value string, aborted bool, err error) {
	for {
		s.out.Show(prompt)
		s.out.Prompt()
		line, err := s.readLine()
		if err != nil {
			return "", false, err
		}
		if line == abortToken {
			return "", true, nil
		}
		ok, err := accept(line)
		if err != nil {
			return "", false, err
		}
		if ok {
			return line, false, nil
		}
	}
}

func (s *Session) logout() {
	log.Printf("%s %s logged out", s.tag(), s.username)
	s.username = ""
	s.displayName = ""
	s.balance = decimal.Zero
}

// Run serves one session until the user exits or in is exhausted. A clean
// end of input is not an error.
func (h *SessionHandler) Run(ctx context.Context, in io.Reader, out *messages.Presenter) error {
	s := newSession(in, out)
	log.Printf("%s started", s.tag())

	step := middleware.Chain(func(ctx context.Context) error {
		return h.mainMenu(ctx, s)
	}, middleware.Recover(s.tag()))

	s.out.Show(messages.Welcome)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := step(ctx)
		switch {
		case err == nil:
		case errors.Is(err, errExit):
			s.out.Show(messages.Goodbye)
			log.Printf("%s ended by user", s.tag())
			return nil
		case err == errInputClosed:
			log.Printf("%s input closed", s.tag())
			return nil
		case errors.Is(err, middleware.ErrPanic):
			s.out.Show(messages.ServiceUnavailable)
			if s.username != "" {
				s.logout()
			}
		default:
			log.Printf("%s ended: %v", s.tag(), err)
			return err
		}
	}
}

func (h *SessionHandler) mainMenu(ctx context.Context, s *Session) error {
	s.out.Show(messages.Menu)
	s.out.Prompt()
	line, err := s.readLine()
	if err != nil {
		return err
	}

	choice, ok := parseChoice(line, 1, 3)
	if !ok {
		s.out.Show(messages.MenuInvalidChoice)
		return nil
	}

	switch choice {
	case 1:
		return h.login(ctx, s)
	case 2:
		return h.signup(ctx, s)
	default:
		return errExit
	}
}

// abandon reports a failed ledger operation to the user and lets the session
// carry on. Input errors are passed back to end the session.
func (h *SessionHandler) abandon(s *Session, op string, err error) error {
	if errors.Is(err, errInputClosed) {
		return err
	}
	if errors.Is(err, services.ErrStore) {
		log.Printf("%s %s failed, datastore unavailable: %v", s.tag(), op, err)
	} else {
		log.Printf("%s %s failed: %v", s.tag(), op, err)
	}
	s.out.Show(messages.ServiceUnavailable)
	return nil
}

func parseChoice(line string, min, max int) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || n < min || n > max {
		return 0, false
	}
	return n, true
}
