package runtime

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ToNumber implements ToNumber for primitives. Objects yield NaN.
func (v *Value) ToNumber() float64 {
	switch v.Type {
	case TypeNull:
		return 0
	case TypeBoolean:
		if v.Bool {
			return 1
		}
		return 0
	case TypeNumber:
		return v.Number
	case TypeString:
		s := strings.TrimSpace(v.Str)
		if s == "" {
			return 0
		}
		return stringToNumber(s)
	default:
		return math.NaN()
	}
}

// stringToNumber parses trimmed, non-empty numeric text. Only the decimal
// grammar and the 0x, 0o and 0b integer prefixes are accepted, so Go-only
// spellings such as 1_000, 0x1p3 or Inf come out as NaN.
func stringToNumber(s string) float64 {
	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}
	if len(s) > 2 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X':
			return radixToNumber(s[2:], 16)
		case 'o', 'O':
			return radixToNumber(s[2:], 8)
		case 'b', 'B':
			return radixToNumber(s[2:], 2)
		}
	}
	if !isDecimalLiteral(s) {
		return math.NaN()
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return n
}

func radixToNumber(digits string, base int) float64 {
	n := 0.0
	for i := 0; i < len(digits); i++ {
		d := digitValue(digits[i])
		if d >= base {
			return math.NaN()
		}
		n = n*float64(base) + float64(d)
	}
	return n
}

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return 99
}

// isDecimalLiteral matches [+-] digits [. digits] [(e|E) [+-] digits], where
// either the integer or the fraction digits may be empty but not both.
func isDecimalLiteral(s string) bool {
	i := 0
	if s[i] == '+' || s[i] == '-' {
		i++
	}
	digits := func() int {
		start := i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		return i - start
	}
	mantissa := digits()
	if i < len(s) && s[i] == '.' {
		i++
		mantissa += digits()
	}
	if mantissa == 0 {
		return false
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		if digits() == 0 {
			return false
		}
	}
	return i == len(s)
}

// StrictEquals implements === comparison.
func StrictEquals(a, b *Value) bool {
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case TypeUndefined, TypeNull, TypeHole:
		return true
	case TypeBoolean:
		return a.Bool == b.Bool
	case TypeNumber:
		if math.IsNaN(a.Number) || math.IsNaN(b.Number) {
			return false
		}
		return a.Number == b.Number
	case TypeString:
		return a.Str == b.Str
	case TypeObject:
		return a.Object == b.Object
	case TypeSymbol:
		return a.Symbol == b.Symbol
	default:
		return false
	}
}

// SameValue is StrictEquals except that NaN equals NaN and +0 differs
// from -0.
func SameValue(a, b *Value) bool {
	if a.Type == TypeNumber && b.Type == TypeNumber {
		if math.IsNaN(a.Number) && math.IsNaN(b.Number) {
			return true
		}
		if a.Number == 0 && b.Number == 0 {
			return math.Signbit(a.Number) == math.Signbit(b.Number)
		}
	}
	return StrictEquals(a, b)
}

// ToPrimitive converts an object by calling toString and then valueOf,
// taking the first result that is not an object. Primitives are returned
// unchanged.
func (r *Realm) ToPrimitive(v *Value) (*Value, error) {
	if !v.IsObject() {
		return v, nil
	}
	for _, name := range []string{"toString", "valueOf"} {
		fn, err := r.GetProperty(v.Object, StringKey(name), v)
		if err != nil {
			return nil, err
		}
		if !fn.IsCallable() {
			continue
		}
		res, err := r.Call(fn, v, nil)
		if err != nil {
			return nil, err
		}
		if !res.IsObject() {
			return res, nil
		}
	}
	return nil, NewTypeError("cannot_convert_to_primitive")
}

// ToPropertyKey converts v to a property key. Symbols stay symbols and
// objects go through ToPrimitive, which may run user code.
func (r *Realm) ToPropertyKey(v *Value) (PropertyKey, error) {
	if v == nil {
		return StringKey("undefined"), nil
	}
	prim, err := r.ToPrimitive(v)
	if err != nil {
		return PropertyKey{}, err
	}
	if prim.Type == TypeSymbol {
		return SymbolKey(prim.Symbol), nil
	}
	return StringKey(prim.ToString()), nil
}
