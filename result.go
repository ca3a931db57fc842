// Package scenario holds values calculated independently across many scenarios and converts them
// between currencies with broadcast or per-scenario exchange rates.
package scenario

import (
	"context"
	"iter"
)

// Result a read-only view over one calculated value per scenario.
// Aggregation code consumes results through this interface whatever the element type.
type Result[T any] interface {
	// Len is the number of scenarios
	Len() int
	// Get returns the value for a zero-based scenario index
	Get(i int) (T, error)
	// All iterates over the values in scenario order. Each call starts a fresh traversal.
	All() iter.Seq[T]
}

// Convertible a result that can be converted into a reporting currency
type Convertible[T any] interface {
	ConvertedTo(ctx context.Context, reporting Currency, rates RateSource) (T, error)
}
