package classes

import (
	"log/slog"

	"github.com/example/jsclass/access"
	"github.com/example/jsclass/runtime"
)

// LoadSuperNamed reads super[key] for a method whose home object is home.
// The lookup starts at home's prototype; getters run with receiver as this.
// A home object without a prototype yields undefined.
func (c *Core) LoadSuperNamed(receiver *runtime.Value, home *runtime.Object, key runtime.PropertyKey) (*runtime.Value, error) {
	if home == nil {
		return nil, ThrowNonMethodSuper()
	}
	ok, err := c.checkAccess(home, key, access.Get)
	if err != nil {
		return nil, err
	}
	if !ok {
		return runtime.Undefined, nil
	}
	base := c.resolveSuperBase(home, key)
	if base == nil {
		return runtime.Undefined, nil
	}
	return c.realm.GetProperty(base, key, receiverOrUndefined(receiver))
}

// LoadSuperKeyed is LoadSuperNamed for a computed key. Index-shaped keys are
// rejected with ReferenceError(unsupported_super).
func (c *Core) LoadSuperKeyed(receiver *runtime.Value, home *runtime.Object, key *runtime.Value) (*runtime.Value, error) {
	if home == nil {
		return nil, ThrowNonMethodSuper()
	}
	k, err := c.superKey(key)
	if err != nil {
		return nil, err
	}
	return c.LoadSuperNamed(receiver, home, k)
}

// StoreSuperNamed performs super[key] = value. The store starts its lookup
// at home's prototype and targets receiver: setters found on the chain run
// with receiver as this, otherwise receiver gets an own data property. A
// refused store raises a TypeError in Strict mode and is ignored in Sloppy
// mode. It returns value, or undefined when there is nothing to store into.
func (c *Core) StoreSuperNamed(receiver *runtime.Value, home *runtime.Object, key runtime.PropertyKey, value *runtime.Value, mode runtime.Strictness) (*runtime.Value, error) {
	if home == nil {
		return nil, ThrowNonMethodSuper()
	}
	ok, err := c.checkAccess(home, key, access.Set)
	if err != nil {
		return nil, err
	}
	if !ok {
		return runtime.Undefined, nil
	}
	base := c.resolveSuperBase(home, key)
	if base == nil {
		return runtime.Undefined, nil
	}
	receiver = receiverOrUndefined(receiver)
	outcome, err := c.realm.SetProperty(base, key, value, receiver)
	if err != nil {
		return nil, err
	}
	if outcome != runtime.StoreDone {
		c.log.Debug("super store rejected",
			slog.String("key", key.String()),
			slog.String("strictness", mode.String()))
		if mode == runtime.Strict {
			return nil, outcome.Error(key, receiver)
		}
	}
	return value, nil
}

// StoreSuperKeyed is StoreSuperNamed for a computed key, with the same
// index rejection as LoadSuperKeyed.
func (c *Core) StoreSuperKeyed(receiver *runtime.Value, home *runtime.Object, key, value *runtime.Value, mode runtime.Strictness) (*runtime.Value, error) {
	if home == nil {
		return nil, ThrowNonMethodSuper()
	}
	k, err := c.superKey(key)
	if err != nil {
		return nil, err
	}
	return c.StoreSuperNamed(receiver, home, k, value, mode)
}

func (c *Core) resolveSuperBase(home *runtime.Object, key runtime.PropertyKey) *runtime.Object {
	base := home.Prototype
	if base == nil {
		c.log.Debug("super base missing",
			slog.String("key", key.String()))
	}
	return base
}

// checkAccess reports whether the operation may proceed. A denial is
// handed to the reporter; its error, if any, is returned.
func (c *Core) checkAccess(home *runtime.Object, key runtime.PropertyKey, mode access.Mode) (bool, error) {
	if !home.NeedsAccessCheck {
		return true, nil
	}
	d := c.gate.Check(home, key, mode)
	if d.Allowed {
		return true, nil
	}
	c.log.Debug("super access denied",
		slog.String("key", key.String()),
		slog.String("mode", mode.String()),
		slog.String("reason", d.Reason))
	return false, c.report(home, key, mode, d)
}

func (c *Core) superKey(v *runtime.Value) (runtime.PropertyKey, error) {
	k, err := c.realm.ToPropertyKey(v)
	if err != nil {
		return runtime.PropertyKey{}, err
	}
	if _, isIndex := k.ArrayIndex(); isIndex {
		return runtime.PropertyKey{}, ThrowUnsupportedSuper()
	}
	return k, nil
}

func receiverOrUndefined(v *runtime.Value) *runtime.Value {
	if v == nil {
		return runtime.Undefined
	}
	return v
}
