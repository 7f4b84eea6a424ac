package messages

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPresenter_ShowPlain(t *testing.T) {
	var buf bytes.Buffer
	p := NewPresenter(&buf, false)

	p.Show(Menu)
	assert.Equal(t, "\nPlease choose an option:\n1) Login\n2) Sign Up\n3) Exit\n", buf.String())
}

func TestPresenter_ShowColor(t *testing.T) {
	var buf bytes.Buffer
	p := NewPresenter(&buf, true)

	p.Show(InvalidPassword)
	assert.Equal(t, "\n\x1b[31mERROR: Invalid password!\x1b[0m\n", buf.String())

	buf.Reset()
	p.Show(Welcome)
	assert.Equal(t, "\n\x1b[1;4mWelcome to the ATM!\x1b[0m\n", buf.String())
}

func TestPresenter_Prompts(t *testing.T) {
	var buf bytes.Buffer
	p := NewPresenter(&buf, true)

	p.Prompt()
	p.MoneyPrompt()
	assert.Equal(t, "> > $", buf.String())
}

func TestPresenter_Balance(t *testing.T) {
	var buf bytes.Buffer
	p := NewPresenter(&buf, false)

	p.Balance(decimal.Zero)
	assert.Equal(t, "\nYour Current Balance Is:\n$0.00\n", buf.String())
}

func TestPresenter_TransactionSuccess(t *testing.T) {
	var buf bytes.Buffer
	p := NewPresenter(&buf, false)

	p.DepositSuccess(decimal.RequireFromString("0.2"), decimal.RequireFromString("100.3"))
	assert.Equal(t, "\nYou have successfully deposited: $0.20\nYour new balance is: $100.30\n", buf.String())

	buf.Reset()
	p.WithdrawSuccess(decimal.NewFromInt(50), decimal.Zero)
	assert.Equal(t, "\nYou have successfully withdrawn: $50.00\nYour new balance is: $0.00\n", buf.String())
}

func TestPresenter_Greeting(t *testing.T) {
	var buf bytes.Buffer
	p := NewPresenter(&buf, false)

	p.Greeting("JOHN")
	assert.Equal(t, "\nWelcome JOHN!\n", buf.String())
}
