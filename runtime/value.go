package runtime

import (
	"math"
	"strconv"
	"strings"
)

// ValueType represents the type of a script value.
type ValueType int

const (
	TypeUndefined ValueType = iota
	TypeNull
	TypeBoolean
	TypeNumber
	TypeString
	TypeObject
	TypeSymbol
	// TypeHole marks "no value supplied", e.g. a class literal without an
	// extends clause. It never escapes to script code.
	TypeHole
)

func (t ValueType) String() string {
	switch t {
	case TypeUndefined:
		return "undefined"
	case TypeNull:
		return "object" // typeof null === "object"
	case TypeBoolean:
		return "boolean"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeObject:
		return "object"
	case TypeSymbol:
		return "symbol"
	case TypeHole:
		return "hole"
	default:
		return "unknown"
	}
}

// Value represents a script value.
type Value struct {
	Type   ValueType
	Bool   bool
	Number float64
	Str    string
	Object *Object
	Symbol *Symbol
}

var (
	Undefined = &Value{Type: TypeUndefined}
	Null      = &Value{Type: TypeNull}
	True      = &Value{Type: TypeBoolean, Bool: true}
	False     = &Value{Type: TypeBoolean, Bool: false}
	NaN       = &Value{Type: TypeNumber, Number: math.NaN()}
	Zero      = &Value{Type: TypeNumber, Number: 0}

	// NoSuperclass is the sentinel passed to DefineClass when the class
	// literal has no extends clause. It is distinct from Null.
	NoSuperclass = &Value{Type: TypeHole}
)

func NewNumber(n float64) *Value {
	return &Value{Type: TypeNumber, Number: n}
}

func NewString(s string) *Value {
	return &Value{Type: TypeString, Str: s}
}

func NewBool(b bool) *Value {
	if b {
		return True
	}
	return False
}

func NewObject(obj *Object) *Value {
	return &Value{Type: TypeObject, Object: obj}
}

func NewSymbolValue(sym *Symbol) *Value {
	return &Value{Type: TypeSymbol, Symbol: sym}
}

// IsObject reports whether v holds a non-nil object.
func (v *Value) IsObject() bool {
	return v != nil && v.Type == TypeObject && v.Object != nil
}

// IsCallable reports whether v is a function object.
func (v *Value) IsCallable() bool {
	return v.IsObject() && v.Object.IsCallable()
}

// ToString implements ToString for primitives. Objects render as their
// default tag; callers that need ToPrimitive use Realm.ToPropertyKey.
func (v *Value) ToString() string {
	switch v.Type {
	case TypeUndefined, TypeHole:
		return "undefined"
	case TypeNull:
		return "null"
	case TypeBoolean:
		if v.Bool {
			return "true"
		}
		return "false"
	case TypeNumber:
		return formatNumber(v.Number)
	case TypeString:
		return v.Str
	case TypeSymbol:
		return v.Symbol.String()
	case TypeObject:
		if v.Object != nil && v.Object.OType == ObjTypeError {
			return errorObjectString(v.Object)
		}
		if v.Object != nil && v.Object.OType == ObjTypeFunction {
			return "function " + v.Object.Name() + "() { [native code] }"
		}
		return "[object Object]"
	default:
		return "undefined"
	}
}

func formatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	case n == 0:
		return "0"
	case math.Abs(n) >= 1e-6 && math.Abs(n) < 1e21:
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	// Exponent form drops the leading zeros Go pads the exponent with.
	s := strconv.FormatFloat(n, 'e', -1, 64)
	i := strings.IndexByte(s, 'e')
	exp := strings.TrimLeft(s[i+2:], "0")
	return s[:i+2] + exp
}

func errorObjectString(obj *Object) string {
	nameStr := "Error"
	if p := obj.Properties["name"]; p != nil && p.Value != nil && p.Value.Type == TypeString && p.Value.Str != "" {
		nameStr = p.Value.Str
	} else if name := lookupData(obj.Prototype, "name"); name != nil && name.Type == TypeString && name.Str != "" {
		nameStr = name.Str
	}
	msgStr := ""
	if p := obj.Properties["message"]; p != nil && p.Value != nil && p.Value.Type == TypeString {
		msgStr = p.Value.Str
	}
	if msgStr == "" {
		return nameStr
	}
	return nameStr + ": " + msgStr
}

// lookupData finds a data property along a chain without running accessors.
// The walk is capped so a cyclic chain cannot hang diagnostics.
func lookupData(obj *Object, name string) *Value {
	for i := 0; obj != nil && i < DefaultMaxChainLength; i++ {
		if p, ok := obj.Properties[name]; ok {
			if p.IsAccessor {
				return nil
			}
			return p.Value
		}
		obj = obj.Prototype
	}
	return nil
}

// Symbol represents a unique symbol. Symbols are compared by pointer.
type Symbol struct {
	Description string
}

func NewSymbol(description string) *Symbol {
	return &Symbol{Description: description}
}

func (s *Symbol) String() string {
	return "Symbol(" + s.Description + ")"
}
