package validation

import (
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Symbols: 1-10 uppercase letters after normalization (AAPL, GOOGL, BRK).
var symbolRe = regexp.MustCompile(`^[A-Z]{1,10}$`)

func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// NormalizeSymbol uppercases and trims a ticker symbol. All stores key prices
// and transactions by the normalized form.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

func IsValidSymbol(symbol string) bool {
	return symbolRe.MatchString(symbol)
}

// IsValidName enforces the same rule as the user schema: 2-100 characters.
func IsValidName(name string) bool {
	n := len(strings.TrimSpace(name))
	return n >= 2 && n <= 100
}

func IsValidTransactionType(t string) bool {
	return t == "BUY" || t == "SELL"
}
