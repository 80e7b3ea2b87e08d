package errorhandling

import (
	"errors"
	"fmt"
)

// Sentinel errors used by the demos.
var (
	ErrDivisionByZero = errors.New("division by zero")
	ErrInvalidAmount  = errors.New("amount must be positive")
)

// ValidationError reports a rejected field value.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on %q: %s", e.Field, e.Message)
}

// InsufficientFundsError is returned by Account.Withdraw when the balance
// does not cover the requested amount.
type InsufficientFundsError struct {
	Balance float64
	Amount  float64
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: balance %.2f, requested %.2f", e.Balance, e.Amount)
}

// Shortfall is how much is missing to cover the withdrawal.
func (e *InsufficientFundsError) Shortfall() float64 {
	return e.Amount - e.Balance
}

// Account is a minimal bank account that reports failures as typed errors.
type Account struct {
	Owner   string
	balance float64
}

// NewAccount opens an account with an initial balance.
func NewAccount(owner string, balance float64) *Account {
	return &Account{Owner: owner, balance: balance}
}

func (a *Account) Balance() float64 { return a.balance }

// Deposit adds amount to the balance.
func (a *Account) Deposit(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("deposit %.2f: %w", amount, ErrInvalidAmount)
	}
	a.balance += amount
	return nil
}

// Withdraw takes amount out of the balance.
func (a *Account) Withdraw(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("withdraw %.2f: %w", amount, ErrInvalidAmount)
	}
	if amount > a.balance {
		return &InsufficientFundsError{Balance: a.balance, Amount: amount}
	}
	a.balance -= amount
	return nil
}
