package scenario

// Builder stages the construction of a CurrencyValuesArray. Nothing is validated until Build.
// A Builder is not safe for concurrent use.
type Builder struct {
	currency Currency
	values   []float64
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// ToBuilder returns a builder seeded with the array's currency and a copy of its values.
func (a *CurrencyValuesArray) ToBuilder() *Builder {
	return &Builder{currency: a.currency, values: a.Values()}
}

// Currency sets the currency of the values.
func (b *Builder) Currency(currency Currency) *Builder {
	b.currency = currency
	return b
}

// Add appends the value of the next scenario.
func (b *Builder) Add(value float64) *Builder {
	b.values = append(b.values, value)
	return b
}

// AddAll appends the values of the next scenarios.
func (b *Builder) AddAll(values ...float64) *Builder {
	b.values = append(b.values, values...)
	return b
}

// Build returns the array. The builder may keep being used afterwards without affecting it.
func (b *Builder) Build() (*CurrencyValuesArray, error) {
	return NewCurrencyValuesArray(b.currency, b.values)
}
