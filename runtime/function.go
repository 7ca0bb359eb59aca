package runtime

// NewFunction creates a function object with the standard name and length
// properties.
func (r *Realm) NewFunction(name string, length int, fn CallableFunc) *Object {
	obj := &Object{
		OType:      ObjTypeFunction,
		Properties: make(map[string]*Property),
		Callable:   fn,
		Prototype:  r.FunctionPrototype,
	}
	setDataProp(obj, "name", NewString(name), false, false, true)
	setDataProp(obj, "length", NewNumber(float64(length)), false, false, true)
	return obj
}

// Call invokes fn with the given this and arguments.
func (r *Realm) Call(fn, this *Value, args []*Value) (*Value, error) {
	if !fn.IsObject() || fn.Object.Callable == nil {
		return nil, NewTypeError("not_a_function", fn)
	}
	return r.invoke(fn.Object, fn.Object.Callable, this, args)
}

// CallConstructor runs ctor's construct behavior against an existing this,
// as a derived constructor does when forwarding to its parent.
func (r *Realm) CallConstructor(ctor *Object, this *Value, args []*Value) (*Value, error) {
	code := ctor.Constructor
	if code == nil {
		code = ctor.Callable
	}
	if code == nil {
		return nil, NewTypeError("not_a_constructor", NewObject(ctor))
	}
	return r.invoke(ctor, code, this, args)
}

// Construct implements new: the instance inherits from ctor.prototype and
// an object returned by the constructor replaces it.
func (r *Realm) Construct(ctor *Value, args []*Value) (*Value, error) {
	if !ctor.IsObject() || !ctor.Object.IsCallable() {
		return nil, NewTypeError("not_a_constructor", ctor)
	}
	protoVal, err := r.Get(ctor.Object, StringKey("prototype"))
	if err != nil {
		return nil, err
	}
	proto := r.ObjectPrototype
	if protoVal.IsObject() {
		proto = protoVal.Object
	}
	this := NewObject(NewOrdinaryObject(proto))
	result, err := r.CallConstructor(ctor.Object, this, args)
	if err != nil {
		return nil, err
	}
	if result.IsObject() {
		return result, nil
	}
	return this, nil
}

func (r *Realm) invoke(callee *Object, code CallableFunc, this *Value, args []*Value) (*Value, error) {
	if r.depth >= r.maxCallDepth {
		return nil, NewRangeError("stack_overflow")
	}
	r.depth++
	defer func() { r.depth-- }()
	if this == nil {
		this = Undefined
	}
	result, err := code(callee, this, args)
	if err != nil {
		return nil, err
	}
	if result == nil {
		result = Undefined
	}
	return result, nil
}

// CloneFunction returns a new function object sharing fn's code, prototype
// and own properties. The realm's home-object binding is not copied.
func (r *Realm) CloneFunction(fn *Object) *Object {
	clone := &Object{
		OType:         fn.OType,
		Properties:    make(map[string]*Property, len(fn.Properties)),
		Prototype:     fn.Prototype,
		Callable:      fn.Callable,
		Constructor:   fn.Constructor,
		NonExtensible: fn.NonExtensible,
	}
	for name, prop := range fn.Properties {
		p := *prop
		clone.Properties[name] = &p
	}
	for sym, prop := range fn.Symbols {
		if sym == r.homeObjectSymbol {
			continue
		}
		p := *prop
		clone.putOwn(SymbolKey(sym), &p)
	}
	return clone
}
