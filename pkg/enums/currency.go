package enums

import (
	"fmt"
	"strings"
)

// Currency is the ISO 4217 lowercase code used at the payment boundary.
type Currency string

const (
	CurrencyMYR Currency = "myr"
	CurrencySGD Currency = "sgd"
	CurrencyUSD Currency = "usd"
)

var validCurrencies = []Currency{
	CurrencyMYR,
	CurrencySGD,
	CurrencyUSD,
}

// String implements fmt.Stringer.
func (c Currency) String() string {
	return string(c)
}

// IsValid reports whether the value is a known Currency.
func (c Currency) IsValid() bool {
	for _, candidate := range validCurrencies {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCurrency converts raw input into a Currency.
func ParseCurrency(value string) (Currency, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for _, candidate := range validCurrencies {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid currency %q", value)
}
