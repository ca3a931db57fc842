package scenario

import (
	"encoding/json"
	"fmt"
	"math"
)

// jsonArray the wire form of a CurrencyValuesArray
type jsonArray struct {
	Currency Currency    `json:"currency"`
	Values   []jsonFloat `json:"values"`
}

// jsonFloat a float64 that also encodes NaN and infinities, as the strings "NaN", "+Inf" and "-Inf"
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return []byte(`"NaN"`), nil
	case math.IsInf(v, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Inf"`), nil
	}
	return json.Marshal(v)
}

func (f *jsonFloat) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		switch s {
		case "NaN":
			*f = jsonFloat(math.NaN())
		case "+Inf":
			*f = jsonFloat(math.Inf(1))
		case "-Inf":
			*f = jsonFloat(math.Inf(-1))
		default:
			return fmt.Errorf("bad value %q", s)
		}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = jsonFloat(v)
	return nil
}

// MarshalJSON encodes the array as {"currency": "GBP", "values": [1, 2, "NaN"]}.
func (a *CurrencyValuesArray) MarshalJSON() ([]byte, error) {
	values := make([]jsonFloat, len(a.values))
	for i, v := range a.values {
		values[i] = jsonFloat(v)
	}
	return json.Marshal(jsonArray{Currency: a.currency, Values: values})
}

// UnmarshalJSON decodes the form written by MarshalJSON. The currency must be present.
func (a *CurrencyValuesArray) UnmarshalJSON(data []byte) error {
	var decoded jsonArray
	if err := json.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("decoding json: %w", err)
	}
	values := make([]float64, len(decoded.Values))
	for i, v := range decoded.Values {
		values[i] = float64(v)
	}
	array, err := newArray(decoded.Currency, values)
	if err != nil {
		return fmt.Errorf("decoding json: %w", err)
	}
	*a = *array
	return nil
}
