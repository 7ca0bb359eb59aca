package classes

import (
	"log/slog"

	"github.com/example/jsclass/runtime"
)

// BindHomeObject returns a clone of fn whose home object is home. fn itself
// is left untouched, so clones of one body bound to different homes resolve
// super independently.
func (c *Core) BindHomeObject(fn, home *runtime.Object) (*runtime.Object, error) {
	if fn == nil || !fn.IsCallable() {
		return nil, runtime.NewTypeError("not_a_function", objectOrUndefined(fn))
	}
	if home == nil {
		return nil, ThrowNonMethodSuper()
	}
	clone := c.realm.CloneFunction(fn)
	c.setHome(clone, home)
	c.log.Debug("home object bound",
		slog.String("function", clone.Name()))
	return clone, nil
}

// HomeObjectSymbol is the key under which home objects are stored.
func (c *Core) HomeObjectSymbol() *runtime.Symbol {
	return c.realm.HomeObjectSymbol()
}

// HomeObjectOf returns fn's bound home object, or nil.
func (c *Core) HomeObjectOf(fn *runtime.Object) *runtime.Object {
	if fn == nil {
		return nil
	}
	prop := fn.GetOwnProperty(runtime.SymbolKey(c.realm.HomeObjectSymbol()))
	if prop == nil || prop.IsAccessor || !prop.Value.IsObject() {
		return nil
	}
	return prop.Value.Object
}

func (c *Core) setHome(fn, home *runtime.Object) {
	fn.ForceDefine(runtime.SymbolKey(c.realm.HomeObjectSymbol()), &runtime.Property{
		Value: runtime.NewObject(home),
	})
}

func objectOrUndefined(obj *runtime.Object) *runtime.Value {
	if obj == nil {
		return runtime.Undefined
	}
	return runtime.NewObject(obj)
}
