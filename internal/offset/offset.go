// Package offset turns the loosely typed offset values found in SDK dumps
// into integers and renders them the way the viewer displays them.
package offset

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Parse converts a raw offset value into a non-negative integer.
//
// Numbers are returned unchanged (negative or fractional numbers are
// truncated toward zero and clamped at zero). Strings are trimmed and then
// read as hexadecimal when they carry a 0x/0X prefix or contain any of the
// letters a-f, and as decimal otherwise. Like JavaScript's parseInt, the
// longest run of valid leading digits is used; no digits means 0. Values of
// any other type, and values that overflow 64 bits, yield 0.
func Parse(raw any) uint64 {
	switch v := raw.(type) {
	case uint64:
		return v
	case uint:
		return uint64(v)
	case uint32:
		return uint64(v)
	case int:
		return clampInt(int64(v))
	case int64:
		return clampInt(v)
	case int32:
		return clampInt(int64(v))
	case float64:
		return clampFloat(v)
	case float32:
		return clampFloat(float64(v))
	case json.Number:
		if u, err := strconv.ParseUint(string(v), 10, 64); err == nil {
			return u
		}
		if f, err := v.Float64(); err == nil {
			return clampFloat(f)
		}
		return 0
	case string:
		return ParseString(v)
	default:
		return 0
	}
}

// ParseString applies the string rules of Parse.
func ParseString(s string) uint64 {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return digits(s[2:], 16)
	}
	if strings.ContainsAny(s, "abcdefABCDEF") {
		return digits(s, 16)
	}
	return digits(s, 10)
}

// Hex renders v as 0x followed by uppercase hexadecimal digits.
func Hex(v uint64) string {
	return "0x" + strings.ToUpper(strconv.FormatUint(v, 16))
}

// LowerHex renders v as 0x followed by lowercase hexadecimal digits.
func LowerHex(v uint64) string {
	return "0x" + strconv.FormatUint(v, 16)
}

func digits(s string, base int) uint64 {
	end := 0
	for end < len(s) && isDigit(s[end], base) {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.ParseUint(s[:end], base, 64)
	if err != nil {
		return 0
	}
	return n
}

func isDigit(c byte, base int) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case base == 16 && c >= 'a' && c <= 'f':
		return true
	case base == 16 && c >= 'A' && c <= 'F':
		return true
	}
	return false
}

func clampInt(v int64) uint64 {
	if v < 0 {
		return 0
	}
	return uint64(v)
}

func clampFloat(v float64) uint64 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= math.MaxUint64 {
		return 0
	}
	return uint64(v)
}
