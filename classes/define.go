package classes

import (
	"log/slog"

	"github.com/example/jsclass/runtime"
)

// DefineClass builds the constructor and prototype object for a class
// literal and wires both inheritance links.
//
// superclass is runtime.NoSuperclass when the literal has no extends clause,
// Null for "extends null", and otherwise must be callable. constructor is
// reused when callable; anything else gets a synthesized default
// constructor. Every failure is detected before the first mutation.
func (c *Core) DefineClass(name, superclass, constructor *runtime.Value) (*runtime.Value, error) {
	protoParent, ctorParent, err := c.resolveParents(superclass)
	if err != nil {
		return nil, err
	}

	var reused *runtime.Object
	if constructor.IsCallable() {
		reused = constructor.Object
		if reused.NonExtensible {
			return nil, runtime.NewTypeError("class_ctor_not_extensible", constructor)
		}
		if ctorParent != nil {
			if err := reused.CheckPrototypeOf(ctorParent, c.realm.MaxChainLength()); err != nil {
				return nil, err
			}
		}
	}

	proto := runtime.NewOrdinaryObject(protoParent)
	displayName := ""
	if name != nil && name.Type == runtime.TypeString {
		displayName = name.Str
	}

	ctor := reused
	if ctor == nil {
		ctor = c.realm.NewFunction(displayName, 0, nil)
		ctor.Constructor = c.defaultConstructor(ctorParent != nil)
	}
	ctor.ForceDefine(runtime.StringKey("prototype"), &runtime.Property{
		Value: runtime.NewObject(proto),
	})
	c.setHome(ctor, proto)
	if ctorParent != nil {
		ctor.Prototype = ctorParent
	}
	proto.DefineProperty("constructor", &runtime.Property{
		Value:        runtime.NewObject(ctor),
		Writable:     true,
		Configurable: true,
	})

	c.log.Debug("class defined",
		slog.String("name", displayName),
		slog.String("extends", extendsKind(superclass)),
		slog.Bool("default-constructor", reused == nil))
	return runtime.NewObject(ctor), nil
}

// resolveParents returns the instance-chain parent and, for a callable
// superclass, the static-chain parent.
func (c *Core) resolveParents(superclass *runtime.Value) (protoParent, ctorParent *runtime.Object, err error) {
	switch {
	case superclass == nil || superclass.Type == runtime.TypeHole:
		return c.realm.ObjectPrototype, nil, nil
	case superclass.Type == runtime.TypeNull:
		return nil, nil, nil
	case superclass.IsCallable():
		protoVal, err := c.realm.Get(superclass.Object, runtime.StringKey("prototype"))
		if err != nil {
			return nil, nil, err
		}
		switch {
		case protoVal.Type == runtime.TypeNull:
			return nil, superclass.Object, nil
		case protoVal.IsObject():
			return protoVal.Object, superclass.Object, nil
		}
		return nil, nil, runtime.NewTypeError("prototype_parent_not_an_object", protoVal)
	}
	return nil, nil, runtime.NewTypeError("extends_value_not_a_function", superclass)
}

// defaultConstructor is the body of a class without a constructor literal.
// A derived class forwards its arguments to whatever its static link points
// at when invoked.
func (c *Core) defaultConstructor(derived bool) runtime.CallableFunc {
	return func(callee *runtime.Object, this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		if !derived {
			return this, nil
		}
		parent := callee.Prototype
		if parent == nil || !parent.IsCallable() {
			return nil, runtime.NewTypeError("not_a_constructor", objectOrUndefined(parent))
		}
		result, err := c.realm.CallConstructor(parent, this, args)
		if err != nil {
			return nil, err
		}
		if result.IsObject() {
			return result, nil
		}
		return this, nil
	}
}

func extendsKind(superclass *runtime.Value) string {
	switch {
	case superclass == nil || superclass.Type == runtime.TypeHole:
		return "none"
	case superclass.Type == runtime.TypeNull:
		return "null"
	}
	if name := superclass.Object.Name(); name != "" {
		return name
	}
	return "anonymous"
}
