package runtime

import "errors"

const (
	DefaultMaxCallDepth   = 512
	DefaultMaxChainLength = 4096
)

// RealmConfig bounds recursion. Zero fields take the defaults.
type RealmConfig struct {
	MaxCallDepth   int
	MaxChainLength int
}

// Realm owns the intrinsic prototypes and the home-object marker. A realm
// is driven by one logical thread; it is not safe for concurrent use.
type Realm struct {
	ObjectPrototype   *Object
	FunctionPrototype *Object
	ErrorPrototype    *Object

	errorPrototypes  map[ErrorKind]*Object
	homeObjectSymbol *Symbol

	maxCallDepth   int
	maxChainLength int
	depth          int
}

func NewRealm() *Realm {
	return NewRealmWithConfig(RealmConfig{})
}

func NewRealmWithConfig(cfg RealmConfig) *Realm {
	if cfg.MaxCallDepth <= 0 {
		cfg.MaxCallDepth = DefaultMaxCallDepth
	}
	if cfg.MaxChainLength <= 0 {
		cfg.MaxChainLength = DefaultMaxChainLength
	}
	r := &Realm{
		errorPrototypes:  make(map[ErrorKind]*Object),
		homeObjectSymbol: NewSymbol("home_object"),
		maxCallDepth:     cfg.MaxCallDepth,
		maxChainLength:   cfg.MaxChainLength,
	}

	// Object.prototype first: every other intrinsic derives from it.
	r.ObjectPrototype = NewOrdinaryObject(nil)
	r.FunctionPrototype = NewOrdinaryObject(r.ObjectPrototype)
	r.FunctionPrototype.OType = ObjTypeFunction
	r.FunctionPrototype.Callable = func(*Object, *Value, []*Value) (*Value, error) {
		return Undefined, nil
	}

	r.setMethod(r.ObjectPrototype, "toString", 0, objectProtoToString)
	r.setMethod(r.ObjectPrototype, "valueOf", 0, objectProtoValueOf)
	r.setMethod(r.ObjectPrototype, "hasOwnProperty", 1, objectProtoHasOwnProperty)
	r.setMethod(r.FunctionPrototype, "call", 1, r.functionCall)

	r.ErrorPrototype = r.newErrorPrototype("Error", r.ObjectPrototype)
	r.errorPrototypes[GenericError] = r.ErrorPrototype
	for _, kind := range []ErrorKind{TypeError, ReferenceError, RangeError, SyntaxError, AccessError} {
		r.errorPrototypes[kind] = r.newErrorPrototype(kind.String(), r.ErrorPrototype)
	}
	return r
}

// HomeObjectSymbol is the realm's private key for home-object bindings.
// It is fixed for the realm's lifetime.
func (r *Realm) HomeObjectSymbol() *Symbol {
	return r.homeObjectSymbol
}

func (r *Realm) MaxChainLength() int {
	return r.maxChainLength
}

// NewPlainObject creates an object inheriting from Object.prototype.
func (r *Realm) NewPlainObject() *Object {
	return NewOrdinaryObject(r.ObjectPrototype)
}

// ErrorValue converts err into a script-level error object. Values thrown
// by user code are returned unchanged.
func (r *Realm) ErrorValue(err error) *Value {
	if err == nil {
		return Undefined
	}
	kind, msg := GenericError, err.Error()
	var rtErr *Error
	if errors.As(err, &rtErr) {
		if rtErr.Kind == ThrownValue {
			return rtErr.Thrown
		}
		kind, msg = rtErr.Kind, rtErr.Message()
	}
	proto := r.errorPrototypes[kind]
	if proto == nil {
		proto = r.ErrorPrototype
	}
	obj := &Object{
		OType:      ObjTypeError,
		Properties: make(map[string]*Property),
		Prototype:  proto,
	}
	setDataProp(obj, "message", NewString(msg), true, false, true)
	setDataProp(obj, "stack", NewString(kind.String()+": "+msg), true, false, true)
	return NewObject(obj)
}

func (r *Realm) newErrorPrototype(name string, parent *Object) *Object {
	proto := NewOrdinaryObject(parent)
	proto.OType = ObjTypeError
	setDataProp(proto, "name", NewString(name), true, false, true)
	setDataProp(proto, "message", NewString(""), true, false, true)
	return proto
}

func (r *Realm) setMethod(obj *Object, name string, length int, fn CallableFunc) {
	setDataProp(obj, name, NewObject(r.NewFunction(name, length, fn)), true, false, true)
}

func setDataProp(obj *Object, name string, val *Value, writable, enumerable, configurable bool) {
	obj.DefineProperty(name, &Property{
		Value:        val,
		Writable:     writable,
		Enumerable:   enumerable,
		Configurable: configurable,
	})
}

func objectProtoToString(_ *Object, this *Value, _ []*Value) (*Value, error) {
	switch {
	case this == nil || this.Type == TypeUndefined:
		return NewString("[object Undefined]"), nil
	case this.Type == TypeNull:
		return NewString("[object Null]"), nil
	case this.IsObject() && this.Object.IsCallable():
		return NewString("[object Function]"), nil
	case this.IsObject() && this.Object.OType == ObjTypeError:
		return NewString("[object Error]"), nil
	}
	return NewString("[object Object]"), nil
}

func objectProtoValueOf(_ *Object, this *Value, _ []*Value) (*Value, error) {
	return this, nil
}

func objectProtoHasOwnProperty(_ *Object, this *Value, args []*Value) (*Value, error) {
	if !this.IsObject() {
		return False, nil
	}
	key := argAt(args, 0)
	if key.Type == TypeSymbol {
		return NewBool(this.Object.GetOwnProperty(SymbolKey(key.Symbol)) != nil), nil
	}
	return NewBool(this.Object.HasOwnProperty(key.ToString())), nil
}

func (r *Realm) functionCall(_ *Object, this *Value, args []*Value) (*Value, error) {
	var rest []*Value
	if len(args) > 1 {
		rest = args[1:]
	}
	return r.Call(this, argAt(args, 0), rest)
}

func argAt(args []*Value, i int) *Value {
	if i < len(args) && args[i] != nil {
		return args[i]
	}
	return Undefined
}
