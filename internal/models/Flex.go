package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// FlexFloat accepts a JSON number or a numeric string. Anything else decodes
// to 0 with Valid unset; it never fails the surrounding decode.
type FlexFloat struct {
	Value float64
	Valid bool
}

// Float wraps v as a valid FlexFloat.
func Float(v float64) FlexFloat {
	return FlexFloat{Value: v, Valid: true}
}

func (f FlexFloat) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	*f = FlexFloat{}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	switch x := v.(type) {
	case float64:
		*f = Float(x)
	case string:
		if n, err := strconv.ParseFloat(strings.TrimSpace(x), 64); err == nil && !math.IsNaN(n) && !math.IsInf(n, 0) {
			*f = Float(n)
		}
	}
	return nil
}

// FlexInt is a nullable integer that also accepts numeric strings; fractional
// values are truncated.
type FlexInt struct {
	Value *int
}

// Int wraps v as a set FlexInt.
func Int(v int) FlexInt {
	return FlexInt{Value: &v}
}

func (f FlexInt) MarshalJSON() ([]byte, error) {
	if f.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*f.Value)
}

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	*f = FlexInt{}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	var n float64
	switch x := v.(type) {
	case float64:
		n = x
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return nil
		}
		n = parsed
	default:
		return nil
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return nil
	}
	*f = Int(int(n))
	return nil
}
