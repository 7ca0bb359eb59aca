package runtime

// Strictness selects how a refused store is reported: Strict raises a
// TypeError, Sloppy ignores it.
type Strictness int

const (
	Sloppy Strictness = iota
	Strict
)

func (s Strictness) String() string {
	if s == Strict {
		return "strict"
	}
	return "sloppy"
}

// StoreOutcome says whether an ordinary store took effect and, if not, why.
type StoreOutcome int

const (
	StoreDone StoreOutcome = iota
	StoreReadOnly
	StoreGetterOnly
	StoreNotExtensible
	StorePrimitiveReceiver
	StoreReceiverAccessor
)

// Error builds the TypeError a strict store raises for this outcome.
func (o StoreOutcome) Error(key PropertyKey, receiver *Value) *Error {
	switch o {
	case StoreReadOnly:
		return NewTypeError("strict_read_only_property", key.Value(), receiver)
	case StoreGetterOnly:
		return NewTypeError("strict_getter_only", key.Value(), receiver)
	case StoreNotExtensible:
		return NewTypeError("object_not_extensible", key.Value())
	case StorePrimitiveReceiver:
		return NewTypeError("strict_primitive_receiver", key.Value(), receiver)
	case StoreReceiverAccessor:
		return NewTypeError("strict_receiver_accessor", key.Value(), receiver)
	}
	return nil
}

// Lookup finds key on start or its prototype chain and returns the
// property with its holder. Walking more than MaxChainLength links is a
// RangeError, so a corrupted cyclic chain cannot hang the caller.
func (r *Realm) Lookup(start *Object, key PropertyKey) (*Property, *Object, error) {
	for obj, i := start, 0; obj != nil; obj, i = obj.Prototype, i+1 {
		if i >= r.maxChainLength {
			return nil, nil, NewRangeError("prototype_chain_too_long", NewObject(start))
		}
		if prop := obj.GetOwnProperty(key); prop != nil {
			return prop, obj, nil
		}
	}
	return nil, nil, nil
}

// GetProperty reads key starting the lookup at start. Getters run with
// receiver as this, which need not be start.
func (r *Realm) GetProperty(start *Object, key PropertyKey, receiver *Value) (*Value, error) {
	prop, _, err := r.Lookup(start, key)
	if err != nil {
		return nil, err
	}
	if prop == nil {
		return Undefined, nil
	}
	if prop.IsAccessor {
		if !prop.Getter.IsCallable() {
			return Undefined, nil
		}
		return r.Call(prop.Getter, receiver, nil)
	}
	return valueOrUndefined(prop.Value), nil
}

// SetProperty stores value under key, starting the lookup at start and
// writing to receiver. A setter found on the chain is called with receiver
// as this; otherwise the value lands as an own data property of receiver.
// A refused store is reported through the outcome, not an error; errors
// come only from user code or an over-long chain.
func (r *Realm) SetProperty(start *Object, key PropertyKey, value, receiver *Value) (StoreOutcome, error) {
	prop, _, err := r.Lookup(start, key)
	if err != nil {
		return StoreDone, err
	}
	if prop != nil && prop.IsAccessor {
		if !prop.Setter.IsCallable() {
			return StoreGetterOnly, nil
		}
		if _, err := r.Call(prop.Setter, receiver, []*Value{value}); err != nil {
			return StoreDone, err
		}
		return StoreDone, nil
	}
	if prop != nil && !prop.Writable {
		return StoreReadOnly, nil
	}
	if !receiver.IsObject() {
		return StorePrimitiveReceiver, nil
	}
	target := receiver.Object
	if own := target.GetOwnProperty(key); own != nil {
		if own.IsAccessor {
			return StoreReceiverAccessor, nil
		}
		if !own.Writable {
			return StoreReadOnly, nil
		}
		own.Value = value
		return StoreDone, nil
	}
	if target.NonExtensible {
		return StoreNotExtensible, nil
	}
	target.putOwn(key, &Property{
		Value:        value,
		Writable:     true,
		Enumerable:   true,
		Configurable: true,
	})
	return StoreDone, nil
}

// Get reads key from obj with obj as the receiver.
func (r *Realm) Get(obj *Object, key PropertyKey) (*Value, error) {
	return r.GetProperty(obj, key, NewObject(obj))
}

// Put assigns key on obj with obj as the receiver.
func (r *Realm) Put(obj *Object, key PropertyKey, value *Value, mode Strictness) error {
	receiver := NewObject(obj)
	outcome, err := r.SetProperty(obj, key, value, receiver)
	if err != nil {
		return err
	}
	if outcome != StoreDone && mode == Strict {
		return outcome.Error(key, receiver)
	}
	return nil
}
