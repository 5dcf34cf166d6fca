package dto

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/jamshidbazarbaev5/kushmag-test-sub001/internal/pkg/numeric"
)

// Input is a numeric field. JSON numbers are read exactly; strings are free text
// such as "1 234,5" and never fail to parse.
type Input struct {
	raw    string
	number bool
}

// UnmarshalJSON keeps the raw text of numbers and strings; null becomes empty.
func (in *Input) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*in = Input{}
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*in = Input{raw: s}
	case len(data) > 0 && (data[0] == '-' || (data[0] >= '0' && data[0] <= '9')):
		*in = Input{raw: string(data), number: true}
	default:
		*in = Input{raw: string(data)}
	}
	return nil
}

// Float parses the input, defaulting to 0.
func (in *Input) Float() *float64 {
	if in == nil {
		return nil
	}
	var v float64
	if in.number {
		if f, err := strconv.ParseFloat(in.raw, 64); err == nil {
			v = f
		}
		return &v
	}
	v = numeric.Parse(in.raw, 0)
	return &v
}

// Decimal parses the input as money, defaulting to 0.
func (in *Input) Decimal() *decimal.Decimal {
	if in == nil {
		return nil
	}
	if in.number {
		v, err := decimal.NewFromString(in.raw)
		if err != nil {
			v = decimal.Zero
		}
		return &v
	}
	v := numeric.ParseDecimal(in.raw, decimal.Zero)
	return &v
}
