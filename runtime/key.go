package runtime

import "strconv"

// PropertyKey names a property: either a string or a symbol.
type PropertyKey struct {
	Name   string
	Symbol *Symbol
}

func StringKey(name string) PropertyKey {
	return PropertyKey{Name: name}
}

func SymbolKey(sym *Symbol) PropertyKey {
	return PropertyKey{Symbol: sym}
}

func (k PropertyKey) IsSymbol() bool {
	return k.Symbol != nil
}

func (k PropertyKey) String() string {
	if k.Symbol != nil {
		return k.Symbol.String()
	}
	return k.Name
}

// Value returns the key as a script value.
func (k PropertyKey) Value() *Value {
	if k.Symbol != nil {
		return NewSymbolValue(k.Symbol)
	}
	return NewString(k.Name)
}

// ArrayIndex reports whether the key is a canonical array index, i.e. the
// decimal form of an integer in [0, 2^32-2] with no leading zeros.
func (k PropertyKey) ArrayIndex() (uint32, bool) {
	if k.Symbol != nil || k.Name == "" || len(k.Name) > 10 {
		return 0, false
	}
	if len(k.Name) > 1 && k.Name[0] == '0' {
		return 0, false
	}
	for i := 0; i < len(k.Name); i++ {
		if k.Name[i] < '0' || k.Name[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseUint(k.Name, 10, 64)
	if err != nil || n >= 1<<32-1 {
		return 0, false
	}
	return uint32(n), true
}
