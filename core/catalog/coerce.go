package catalog

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Upstream records are loosely typed: numbers arrive as 2, "2", "2 vCPU"
// or "2GB", booleans as true or 0/1, object fields as objects or as JSON
// text. The Flex* types and Attrs parse-or-default instead of failing, so
// a malformed field degrades to its zero value and never aborts a sync.

// FlexID is an identifier that may arrive as a JSON number or string.
type FlexID string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexID) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == "" {
		*f = ""
		return nil
	}
	if s[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err == nil {
			*f = FlexID(v)
		}
		return nil
	}
	*f = FlexID(s)
	return nil
}

// String returns the id as a plain string.
func (f FlexID) String() string { return string(f) }

// FlexInt is an integer that tolerates string encodings with trailing
// units ("2 vCPU", "100GB"). Unparseable values become zero.
type FlexInt int64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		*f = 0
		return nil
	}
	*f = FlexInt(coerceInt(v))
	return nil
}

// FlexBool is a boolean that tolerates 0/1 and string encodings.
type FlexBool bool

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexBool) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		*f = false
		return nil
	}
	switch t := v.(type) {
	case bool:
		*f = FlexBool(t)
	case float64:
		*f = t != 0
	case string:
		s := strings.ToLower(strings.TrimSpace(t))
		*f = s == "1" || s == "true"
	default:
		*f = false
	}
	return nil
}

// FlexDecimal is a price that may arrive as a JSON number or numeric
// string. Unparseable values become zero.
type FlexDecimal decimal.Decimal

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexDecimal) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := json.Unmarshal(b, &d); err != nil {
		*f = FlexDecimal(decimal.Zero)
		return nil
	}
	*f = FlexDecimal(d)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (f FlexDecimal) MarshalJSON() ([]byte, error) {
	return decimal.Decimal(f).MarshalJSON()
}

// Decimal returns the underlying decimal value.
func (f FlexDecimal) Decimal() decimal.Decimal { return decimal.Decimal(f) }

// Attrs is a parse-or-default JSON object. It accepts an object, a string
// containing JSON (how the warm cache stores structured columns), or
// anything else, in which case it decodes to the empty object.
type Attrs map[string]interface{}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Attrs) UnmarshalJSON(b []byte) error {
	*a = Attrs{}

	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err == nil {
		*a = m
		return nil
	}

	// Warm-cache columns carry structured data as JSON text.
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if err := json.Unmarshal([]byte(s), &m); err == nil {
			*a = m
		}
	}
	return nil
}

// Int returns the first non-zero integer among the named keys.
func (a Attrs) Int(keys ...string) int64 {
	for _, k := range keys {
		if n := coerceInt(a[k]); n != 0 {
			return n
		}
	}
	return 0
}

// coerceInt extracts an integer from a loosely typed value. Strings are
// parsed up to the first non-digit, so "2 vCPU" yields 2.
func coerceInt(v interface{}) int64 {
	switch t := v.(type) {
	case float64:
		return int64(t)
	case int64:
		return t
	case string:
		return leadingInt(t)
	case json.Number:
		n, err := t.Int64()
		if err != nil {
			return leadingInt(t.String())
		}
		return n
	default:
		return 0
	}
}

// leadingInt parses the leading integer of a string ("100GB" -> 100).
func leadingInt(s string) int64 {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0
	}
	return n
}
