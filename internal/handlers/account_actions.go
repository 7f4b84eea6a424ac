package handlers

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/bankofray/atm/internal/messages"
	"github.com/bankofray/atm/internal/middleware"
	"github.com/bankofray/atm/internal/services"
	"github.com/shopspring/decimal"
)

type TxKind int

const (
	TxCompleted TxKind = iota
	TxAborted
	TxNoFunds
)

// TxOutcome is the result of a deposit or withdrawal. Balance is the
// committed balance for TxCompleted and the unchanged snapshot otherwise.
type TxOutcome struct {
	Kind    TxKind
	Amount  decimal.Decimal
	Balance decimal.Decimal
}

func (h *SessionHandler) actionMenu(ctx context.Context, s *Session) error {
	ctx = middleware.WithUser(ctx, s.username)

	balance, err := h.ledger.GetBalance(ctx, s.username)
	if err != nil {
		err = h.abandon(s, "load balance", err)
		s.logout()
		return err
	}
	s.balance = balance
	s.displayName = h.displayName(ctx, s)

	step := middleware.Chain(func(ctx context.Context) error {
		return h.actionPass(ctx, s)
	}, middleware.Recover(s.tag()), middleware.RequireUser)

	for {
		err := step(ctx)
		switch {
		case err == nil:
		case errors.Is(err, errLogout):
			s.logout()
			return nil
		case errors.Is(err, middleware.ErrPanic):
			s.out.Show(messages.ServiceUnavailable)
			h.refreshBalance(ctx, s)
		default:
			return err
		}
	}
}

func (h *SessionHandler) displayName(ctx context.Context, s *Session) string {
	firstName, err := h.ledger.FirstName(ctx, s.username)
	if err != nil || firstName == "" {
		log.Printf("%s first name lookup for %s failed: %v", s.tag(), s.username, err)
		return s.username
	}
	return firstName
}

func (h *SessionHandler) actionPass(ctx context.Context, s *Session) error {
	s.out.Greeting(s.displayName)
	s.out.Show(messages.ActionMenu)
	s.out.Prompt()
	line, err := s.readLine()
	if err != nil {
		return err
	}

	choice, ok := parseChoice(line, 1, 4)
	if !ok {
		s.out.Show(messages.ActionInvalidChoice)
		return nil
	}

	switch choice {
	case 1:
		s.out.Balance(s.balance)
	case 2:
		outcome, err := h.deposit(ctx, s)
		if err != nil {
			return h.abandonTx(ctx, s, "deposit", err)
		}
		if outcome.Kind == TxCompleted {
			s.out.DepositSuccess(outcome.Amount, outcome.Balance)
		}
	case 3:
		outcome, err := h.withdraw(ctx, s)
		if err != nil {
			return h.abandonTx(ctx, s, "withdraw", err)
		}
		switch outcome.Kind {
		case TxCompleted:
			s.out.WithdrawSuccess(outcome.Amount, outcome.Balance)
		case TxNoFunds:
			s.out.Show(messages.NoFunds)
		}
	default:
		return errLogout
	}
	return nil
}

func (h *SessionHandler) deposit(ctx context.Context, s *Session) (TxOutcome, error) {
	s.out.Show(messages.DepositPrompt)
	amount, aborted, err := promptAmount(s, nil)
	if err != nil {
		return TxOutcome{}, err
	}
	if aborted {
		return TxOutcome{Kind: TxAborted, Balance: s.balance}, nil
	}

	balance, err := h.commit(ctx, s, s.balance.Add(amount))
	if err != nil {
		return TxOutcome{}, err
	}
	log.Printf("%s %s deposited %s", s.tag(), s.username, amount.StringFixed(2))
	return TxOutcome{Kind: TxCompleted, Amount: amount, Balance: balance}, nil
}

func (h *SessionHandler) withdraw(ctx context.Context, s *Session) (TxOutcome, error) {
	if !s.balance.IsPositive() {
		return TxOutcome{Kind: TxNoFunds, Balance: s.balance}, nil
	}

	s.out.Show(messages.WithdrawPrompt)
	amount, aborted, err := promptAmount(s, func(amount decimal.Decimal) error {
		return services.CheckWithdrawal(amount, s.balance)
	})
	if err != nil {
		return TxOutcome{}, err
	}
	if aborted {
		return TxOutcome{Kind: TxAborted, Balance: s.balance}, nil
	}

	balance, err := h.commit(ctx, s, s.balance.Sub(amount))
	if err != nil {
		return TxOutcome{}, err
	}
	log.Printf("%s %s withdrew %s", s.tag(), s.username, amount.StringFixed(2))
	return TxOutcome{Kind: TxCompleted, Amount: amount, Balance: balance}, nil
}

// promptAmount reads amounts until one parses and passes check. "back"
// aborts.
func promptAmount(s *Session, check func(decimal.Decimal) error) (decimal.Decimal, bool, error) {
	for {
		s.out.MoneyPrompt()
		line, err := s.readLine()
		if err != nil {
			return decimal.Zero, false, err
		}
		if strings.EqualFold(line, backToken) {
			return decimal.Zero, true, nil
		}

		amount, err := services.ParseAmount(line)
		if err == nil && check != nil {
			err = check(amount)
		}
		switch {
		case err == nil:
			return amount, false, nil
		case errors.Is(err, services.ErrNotANumber):
			s.out.Show(messages.NotANumber)
		case errors.Is(err, services.ErrNotPositive):
			s.out.Show(messages.NotPositive)
		case errors.Is(err, services.ErrSubCent):
			s.out.Show(messages.SubCent)
		case errors.Is(err, services.ErrExceedsBalance):
			s.out.Show(messages.ExceedsBalance)
		default:
			return decimal.Zero, false, err
		}
	}
}

// commit writes the new balance and reads it back. Once the write has
// succeeded the snapshot holds the written value, even if the read-back
// fails.
func (h *SessionHandler) commit(ctx context.Context, s *Session, balance decimal.Decimal) (decimal.Decimal, error) {
	if err := h.ledger.SetBalance(ctx, s.username, balance); err != nil {
		return decimal.Zero, err
	}
	s.balance = balance

	committed, err := h.ledger.GetBalance(ctx, s.username)
	if err != nil {
		log.Printf("%s read-back for %s failed after write, keeping written balance: %v", s.tag(), s.username, err)
		return balance, nil
	}
	s.balance = committed
	return committed, nil
}

func (h *SessionHandler) abandonTx(ctx context.Context, s *Session, op string, err error) error {
	if err := h.abandon(s, op, err); err != nil {
		return err
	}
	h.refreshBalance(ctx, s)
	return nil
}

// refreshBalance re-reads the snapshot after a failed operation. On failure
// the old snapshot is kept.
func (h *SessionHandler) refreshBalance(ctx context.Context, s *Session) {
	balance, err := h.ledger.GetBalance(ctx, s.username)
	if err != nil {
		log.Printf("%s balance refresh for %s failed: %v", s.tag(), s.username, err)
		return
	}
	s.balance = balance
}
