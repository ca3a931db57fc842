package scenario

import (
	"context"
	"fmt"
	"hash/fnv"
	"iter"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencyValuesArray values in a single currency, one per scenario, holding the result of the
// same calculation performed for multiple scenarios.
//
// A CurrencyValuesArray is immutable and safe for concurrent use. The calculation engine converts
// instances into the reporting currency with ConvertedTo.
type CurrencyValuesArray struct {
	currency Currency
	// values is never shared with callers
	values []float64
}

var (
	_ Result[float64]                   = (*CurrencyValuesArray)(nil)
	_ Convertible[*CurrencyValuesArray] = (*CurrencyValuesArray)(nil)
)

// Number any Go numeric type that converts to float64
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// NewCurrencyValuesArray returns an array of the given values. The values are copied.
func NewCurrencyValuesArray(currency Currency, values []float64) (*CurrencyValuesArray, error) {
	return newArray(currency, append([]float64(nil), values...))
}

// ValuesOf returns an array of the given values converted to float64.
func ValuesOf[T Number](currency Currency, values []T) (*CurrencyValuesArray, error) {
	array := make([]float64, len(values))
	for i, v := range values {
		array[i] = float64(v)
	}
	return newArray(currency, array)
}

// DecimalValuesOf returns an array of the given decimal values, each rounded to the nearest float64.
func DecimalValuesOf(currency Currency, values []decimal.Decimal) (*CurrencyValuesArray, error) {
	array := make([]float64, len(values))
	for i, v := range values {
		array[i] = v.InexactFloat64()
	}
	return newArray(currency, array)
}

// CurrencyValuesArrayOf returns an array of the amounts, which must all have the same currency.
// An empty list gives an empty array in XXX.
func CurrencyValuesArrayOf(amounts []CurrencyAmount) (*CurrencyValuesArray, error) {
	if len(amounts) == 0 {
		return newArray(XXX, []float64{})
	}
	currency := amounts[0].Currency
	array := make([]float64, len(amounts))
	for i, a := range amounts {
		if a.Currency != currency {
			return nil, &InconsistentCurrencyError{Expected: currency, Found: a.Currency, Index: i}
		}
		array[i] = a.Amount
	}
	return newArray(currency, array)
}

// newArray takes ownership of values
func newArray(currency Currency, values []float64) (*CurrencyValuesArray, error) {
	if currency == "" {
		return nil, ErrMissingCurrency
	}
	if values == nil {
		values = []float64{}
	}
	return &CurrencyValuesArray{currency: currency, values: values}, nil
}

// Currency the currency of the values
func (a *CurrencyValuesArray) Currency() Currency {
	return a.currency
}

// Values returns a copy of the values.
func (a *CurrencyValuesArray) Values() []float64 {
	return append([]float64(nil), a.values...)
}

// Len the number of scenarios
func (a *CurrencyValuesArray) Len() int {
	return len(a.values)
}

// Get returns the value for scenario i.
func (a *CurrencyValuesArray) Get(i int) (float64, error) {
	if i < 0 || i >= len(a.values) {
		return 0, &IndexOutOfRangeError{Index: i, Len: len(a.values)}
	}
	return a.values[i], nil
}

// Amount returns the value for scenario i tagged with the array's currency.
func (a *CurrencyValuesArray) Amount(i int) (CurrencyAmount, error) {
	v, err := a.Get(i)
	if err != nil {
		return CurrencyAmount{}, err
	}
	return CurrencyAmount{Currency: a.currency, Amount: v}, nil
}

// All iterates over the values in scenario order.
func (a *CurrencyValuesArray) All() iter.Seq[float64] {
	return func(yield func(float64) bool) {
		for _, v := range a.values {
			if !yield(v) {
				return
			}
		}
	}
}

// Amounts iterates over scenario indexes and their currency amounts.
func (a *CurrencyValuesArray) Amounts() iter.Seq2[int, CurrencyAmount] {
	return func(yield func(int, CurrencyAmount) bool) {
		for i, v := range a.values {
			if !yield(i, CurrencyAmount{Currency: a.currency, Amount: v}) {
				return
			}
		}
	}
}

// ConvertedTo converts the values into the reporting currency using rates from the source.
//
// The array itself is returned when it is already in the reporting currency, and an empty array
// is converted without a lookup. Otherwise the source is queried once and must supply either one
// rate, applied to every scenario, or one rate per scenario. Errors from the source are returned as is.
func (a *CurrencyValuesArray) ConvertedTo(ctx context.Context, reporting Currency, rates RateSource) (*CurrencyValuesArray, error) {
	if a.currency == reporting {
		return a, nil
	}
	if reporting == "" {
		return nil, ErrMissingCurrency
	}
	if len(a.values) == 0 {
		return &CurrencyValuesArray{currency: reporting, values: []float64{}}, nil
	}

	pair := PairOf(a.currency, reporting)
	scenarioRates, err := rates.FxRates(ctx, pair, len(a.values))
	if err != nil {
		return nil, err
	}
	if err := a.checkRateCount(scenarioRates.ScenarioCount()); err != nil {
		return nil, err
	}

	converted := make([]float64, len(a.values))
	for i, v := range a.values {
		converted[i], err = scenarioRates.At(i).Convert(v, a.currency, reporting)
		if err != nil {
			return nil, fmt.Errorf("scenario %d: %w", i, err)
		}
	}
	return &CurrencyValuesArray{currency: reporting, values: converted}, nil
}

func (a *CurrencyValuesArray) checkRateCount(rateCount int) error {
	if rateCount != 1 && rateCount != len(a.values) {
		return &RateCountMismatchError{Expected: len(a.values), Actual: rateCount}
	}
	return nil
}

// Equal is true when both arrays have the same currency and exactly the same values.
// Values are compared by bit pattern: NaN equals NaN, and 0 differs from -0.
func (a *CurrencyValuesArray) Equal(other *CurrencyValuesArray) bool {
	if a == other {
		return true
	}
	if a == nil || other == nil {
		return false
	}
	if a.currency != other.currency || len(a.values) != len(other.values) {
		return false
	}
	for i, v := range a.values {
		if math.Float64bits(v) != math.Float64bits(other.values[i]) {
			return false
		}
	}
	return true
}

// Hash is consistent with Equal.
func (a *CurrencyValuesArray) Hash() uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(a.currency))
	var buf [8]byte
	for _, v := range a.values {
		bits := math.Float64bits(v)
		for i := range buf {
			buf[i] = byte(bits >> (8 * i))
		}
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}

func (a *CurrencyValuesArray) String() string {
	var sb strings.Builder
	sb.WriteString("CurrencyValuesArray{currency=")
	sb.WriteString(string(a.currency))
	sb.WriteString(", values=[")
	for i, v := range a.values {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprint(&sb, v)
	}
	sb.WriteString("]}")
	return sb.String()
}
