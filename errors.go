package scenario

import (
	"errors"
	"fmt"
)

// Errors returned by this package. Typed errors below match these with errors.Is.
var (
	// ErrMissingCurrency is returned when a value array is built without a currency
	ErrMissingCurrency = errors.New("missing currency")

	// ErrInvalidCurrency is returned when a currency code is not three letters
	ErrInvalidCurrency = errors.New("invalid currency code")

	// ErrInconsistentCurrency is returned when amounts of different currencies are combined into one array
	ErrInconsistentCurrency = errors.New("inconsistent currency")

	// ErrRateCountMismatch is returned when a rate source returns neither one rate nor one per scenario
	ErrRateCountMismatch = errors.New("rate count mismatch")

	// ErrIndexOutOfRange is returned when a scenario index is outside the array
	ErrIndexOutOfRange = errors.New("scenario index out of range")

	// ErrRateMismatch is returned when a rate is applied to a pair it does not quote
	ErrRateMismatch = errors.New("rate does not quote currency pair")
)

// InconsistentCurrencyError reports the first amount whose currency differs from the first amount's.
type InconsistentCurrencyError struct {
	Expected Currency
	Found    Currency
	// Index of the offending amount
	Index int
}

func (e *InconsistentCurrencyError) Error() string {
	return fmt.Sprintf("all currency amounts must have the same currency, found %v and %v at index %d",
		e.Expected, e.Found, e.Index)
}

func (e *InconsistentCurrencyError) Is(target error) bool {
	return target == ErrInconsistentCurrency
}

// RateCountMismatchError reports a rate lookup that returned an unusable number of rates.
type RateCountMismatchError struct {
	// Expected scenario count. One rate is always acceptable as well.
	Expected int
	Actual   int
}

func (e *RateCountMismatchError) Error() string {
	return fmt.Sprintf("number of rates (%d) must be 1 or the same as the number of values (%d)",
		e.Actual, e.Expected)
}

func (e *RateCountMismatchError) Is(target error) bool {
	return target == ErrRateCountMismatch
}

// IndexOutOfRangeError reports an index outside [0, Len).
type IndexOutOfRangeError struct {
	Index int
	Len   int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("scenario index %d out of range [0, %d)", e.Index, e.Len)
}

func (e *IndexOutOfRangeError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}
