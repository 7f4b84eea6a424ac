// Package messages renders the ATM's terminal output.
package messages

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	ansiHeading = "\x1b[1;4m"
	ansiError   = "\x1b[31m"
	ansiSuccess = "\x1b[32m"
	ansiReset   = "\x1b[0m"
)

// Presenter writes messages to a terminal, with or without ANSI styling.
type Presenter struct {
	w     io.Writer
	color bool
}

func NewPresenter(w io.Writer, color bool) *Presenter {
	return &Presenter{w: w, color: color}
}

func (p *Presenter) style(s Style, text string) string {
	if !p.color {
		return text
	}
	switch s {
	case Heading:
		return ansiHeading + text + ansiReset
	case Error:
		return ansiError + text + ansiReset
	case Success:
		return ansiSuccess + text + ansiReset
	default:
		return text
	}
}

func (p *Presenter) money(d decimal.Decimal) string {
	return p.style(Success, "$"+d.StringFixed(2))
}

// Show writes m preceded by a blank line.
func (p *Presenter) Show(m Message) {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(p.style(m.Style, m.Text))
	if m.Hint != "" {
		b.WriteString("\n")
		b.WriteString(m.Hint)
	}
	b.WriteString("\n")
	io.WriteString(p.w, b.String())
}

// Prompt writes the input marker without a trailing newline.
func (p *Presenter) Prompt() {
	io.WriteString(p.w, "> ")
}

// MoneyPrompt is Prompt for currency amounts.
func (p *Presenter) MoneyPrompt() {
	io.WriteString(p.w, "> $")
}

func (p *Presenter) Greeting(firstName string) {
	p.Show(Message{Style: Heading, Text: fmt.Sprintf("Welcome %s!", firstName)})
}

func (p *Presenter) Balance(balance decimal.Decimal) {
	p.Show(Message{Style: Heading, Text: "Your Current Balance Is:", Hint: p.money(balance)})
}

func (p *Presenter) DepositSuccess(amount, balance decimal.Decimal) {
	p.transactionSuccess("You have successfully deposited:", amount, balance)
}

func (p *Presenter) WithdrawSuccess(amount, balance decimal.Decimal) {
	p.transactionSuccess("You have successfully withdrawn:", amount, balance)
}

func (p *Presenter) transactionSuccess(heading string, amount, balance decimal.Decimal) {
	fmt.Fprintf(p.w, "\n%s %s\nYour new balance is: %s\n", p.style(Heading, heading), p.money(amount), p.money(balance))
}
