package stats

import (
	"strconv"
	"strings"
)

// maxFloatInt is the largest float64 that still converts to int64 safely.
const maxFloatInt = float64(1 << 62)

// FlexInt is a non-negative integer field that never fails to decode.
// Numbers (fractions truncated), numeric strings and null are accepted;
// anything else, including negative values, decodes as 0.
type FlexInt int64

// UnmarshalJSON implements json.Unmarshaler.
func (n *FlexInt) UnmarshalJSON(data []byte) error {
	*n = 0

	s := strings.TrimSpace(string(data))
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if s == "" || s == "null" {
		return nil
	}

	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		if v > 0 {
			*n = FlexInt(v)
		}
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 && f < maxFloatInt {
		*n = FlexInt(f)
	}
	return nil
}

// Int64 returns the value, treating negatives as 0.
func (n FlexInt) Int64() int64 {
	if n < 0 {
		return 0
	}
	return int64(n)
}
