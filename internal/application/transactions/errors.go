package transactions

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound  = errors.New("User not found")
	ErrInvalidSymbol = errors.New("Symbol not found")
	ErrFutureDate    = errors.New("Transaction date cannot be in the future")
)

// InsufficientHoldingsError carries the position shortfall for a rejected SELL.
type InsufficientHoldingsError struct {
	Symbol    string
	Available int
	Requested int
}

func (e *InsufficientHoldingsError) Error() string {
	return fmt.Sprintf("Insufficient holdings for %s. Available: %d, Requested: %d",
		e.Symbol, e.Available, e.Requested)
}
