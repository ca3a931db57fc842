package scenario

import (
	"fmt"
	"strings"
)

// Currency an ISO-4217 style three letter currency code
type Currency string

// Common currency codes
const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	JPY Currency = "JPY"
	CHF Currency = "CHF"

	// XXX is the ISO-4217 code for "no currency". It tags arrays built from an empty list of amounts.
	XXX Currency = "XXX"
)

// ParseCurrency validates and normalises a currency code, e.g. " gbp" becomes "GBP".
func ParseCurrency(code string) (Currency, error) {
	c := strings.ToUpper(strings.TrimSpace(code))
	if len(c) != 3 {
		return "", fmt.Errorf("parse currency [%v]: %w", code, ErrInvalidCurrency)
	}
	for i := 0; i < len(c); i++ {
		if c[i] < 'A' || c[i] > 'Z' {
			return "", fmt.Errorf("parse currency [%v]: %w", code, ErrInvalidCurrency)
		}
	}
	return Currency(c), nil
}

// CurrencyPair an ordered pair of currencies, quoted as Base/Counter
type CurrencyPair struct {
	Base    Currency
	Counter Currency
}

// PairOf returns the pair converting from base into counter.
func PairOf(base, counter Currency) CurrencyPair {
	return CurrencyPair{Base: base, Counter: counter}
}

// Inverse returns the pair with base and counter swapped.
func (p CurrencyPair) Inverse() CurrencyPair {
	return CurrencyPair{Base: p.Counter, Counter: p.Base}
}

// IsIdentity is true when both sides of the pair are the same currency.
func (p CurrencyPair) IsIdentity() bool {
	return p.Base == p.Counter
}

func (p CurrencyPair) String() string {
	return string(p.Base) + "/" + string(p.Counter)
}

// CurrencyAmount a single amount tagged with its currency
type CurrencyAmount struct {
	Currency Currency
	Amount   float64
}

// AmountOf returns a CurrencyAmount.
func AmountOf(currency Currency, amount float64) CurrencyAmount {
	return CurrencyAmount{Currency: currency, Amount: amount}
}

func (a CurrencyAmount) String() string {
	return fmt.Sprintf("%v %v", a.Currency, a.Amount)
}
