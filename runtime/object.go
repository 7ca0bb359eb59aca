package runtime

import "sort"

// ObjectType describes the kind of object.
type ObjectType int

const (
	ObjTypeOrdinary ObjectType = iota
	ObjTypeFunction
	ObjTypeError
)

// CallableFunc is the Go signature of a callable object's code. callee is
// the function object being invoked, so clones sharing one body can tell
// themselves apart (e.g. by their bound home object).
type CallableFunc func(callee *Object, this *Value, args []*Value) (*Value, error)

// Object represents a script object.
type Object struct {
	OType       ObjectType
	Properties  map[string]*Property
	Symbols     map[*Symbol]*Property
	Prototype   *Object
	Callable    CallableFunc
	Constructor CallableFunc

	// NonExtensible forbids adding new own properties.
	NonExtensible bool
	// NeedsAccessCheck routes named access through the access gate.
	NeedsAccessCheck bool
}

// Property represents a property descriptor.
type Property struct {
	Value        *Value
	Getter       *Value // for accessor properties
	Setter       *Value // for accessor properties
	Writable     bool
	Enumerable   bool
	Configurable bool
	IsAccessor   bool
}

// NewOrdinaryObject creates a plain object.
func NewOrdinaryObject(proto *Object) *Object {
	return &Object{
		OType:      ObjTypeOrdinary,
		Properties: make(map[string]*Property),
		Prototype:  proto,
	}
}

// IsCallable reports whether the object can be invoked.
func (o *Object) IsCallable() bool {
	return o.Callable != nil || o.Constructor != nil
}

// Name returns the own "name" data property when it is a string.
func (o *Object) Name() string {
	if p := o.Properties["name"]; p != nil && !p.IsAccessor && p.Value != nil && p.Value.Type == TypeString {
		return p.Value.Str
	}
	return ""
}

// GetOwnProperty returns the own property for key, or nil.
func (o *Object) GetOwnProperty(key PropertyKey) *Property {
	if key.Symbol != nil {
		return o.Symbols[key.Symbol]
	}
	return o.Properties[key.Name]
}

// HasOwnProperty checks only own string-keyed properties.
func (o *Object) HasOwnProperty(name string) bool {
	_, ok := o.Properties[name]
	return ok
}

func (o *Object) putOwn(key PropertyKey, prop *Property) {
	if key.Symbol != nil {
		if o.Symbols == nil {
			o.Symbols = make(map[*Symbol]*Property)
		}
		o.Symbols[key.Symbol] = prop
		return
	}
	if o.Properties == nil {
		o.Properties = make(map[string]*Property)
	}
	o.Properties[key.Name] = prop
}

// ForceDefine installs prop as an own property, replacing any existing
// property regardless of its attributes and ignoring extensibility.
func (o *Object) ForceDefine(key PropertyKey, prop *Property) {
	o.putOwn(key, prop)
}

// DefineProperty defines a string-keyed property with full descriptor control.
func (o *Object) DefineProperty(name string, prop *Property) {
	o.putOwn(StringKey(name), prop)
}

// DefineOwnProperty validates prop against the current own property and
// applies it. It returns false when the definition is not allowed: a new
// property on a non-extensible object, or an incompatible change to a
// non-configurable one.
func (o *Object) DefineOwnProperty(key PropertyKey, prop *Property) bool {
	current := o.GetOwnProperty(key)
	if current == nil {
		if o.NonExtensible {
			return false
		}
		o.putOwn(key, prop)
		return true
	}
	if !current.Configurable {
		if prop.Configurable || prop.Enumerable != current.Enumerable || prop.IsAccessor != current.IsAccessor {
			return false
		}
		if current.IsAccessor {
			if !sameCallable(prop.Getter, current.Getter) || !sameCallable(prop.Setter, current.Setter) {
				return false
			}
		} else if !current.Writable {
			if prop.Writable || !SameValue(valueOrUndefined(prop.Value), valueOrUndefined(current.Value)) {
				return false
			}
		}
	}
	o.putOwn(key, prop)
	return true
}

// DeleteOwnProperty removes a configurable own property.
func (o *Object) DeleteOwnProperty(key PropertyKey) bool {
	current := o.GetOwnProperty(key)
	if current == nil {
		return true
	}
	if !current.Configurable {
		return false
	}
	if key.Symbol != nil {
		delete(o.Symbols, key.Symbol)
	} else {
		delete(o.Properties, key.Name)
	}
	return true
}

// OwnKeys lists own keys: string keys in sorted order, then symbol keys
// ordered by description.
func (o *Object) OwnKeys() []PropertyKey {
	names := make([]string, 0, len(o.Properties))
	for name := range o.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	keys := make([]PropertyKey, 0, len(names)+len(o.Symbols))
	for _, name := range names {
		keys = append(keys, StringKey(name))
	}
	syms := make([]*Symbol, 0, len(o.Symbols))
	for sym := range o.Symbols {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i].Description < syms[j].Description })
	for _, sym := range syms {
		keys = append(keys, SymbolKey(sym))
	}
	return keys
}

// PreventExtensions makes the object non-extensible.
func (o *Object) PreventExtensions() {
	o.NonExtensible = true
}

// SetPrototypeOf changes the prototype link. It refuses to create a cycle
// and to change the link of a non-extensible object. The check walks at
// most limit links; a longer existing chain is reported as too long.
func (o *Object) SetPrototypeOf(proto *Object, limit int) error {
	if err := o.CheckPrototypeOf(proto, limit); err != nil {
		return err
	}
	o.Prototype = proto
	return nil
}

// CheckPrototypeOf reports the error SetPrototypeOf would return without
// changing anything.
func (o *Object) CheckPrototypeOf(proto *Object, limit int) error {
	if o.Prototype == proto {
		return nil
	}
	if o.NonExtensible {
		return NewTypeError("proto_object_not_extensible")
	}
	for p, i := proto, 0; p != nil; p, i = p.Prototype, i+1 {
		if p == o {
			return NewTypeError("cyclic_proto")
		}
		if i >= limit {
			return NewRangeError("prototype_chain_too_long", NewObject(proto))
		}
	}
	return nil
}

func sameCallable(a, b *Value) bool {
	if a == nil || b == nil {
		return a == b
	}
	return StrictEquals(a, b)
}

func valueOrUndefined(v *Value) *Value {
	if v == nil {
		return Undefined
	}
	return v
}
