package classes

import (
	"testing"

	"github.com/example/jsclass/access"
	"github.com/example/jsclass/runtime"
)

func returning(v *runtime.Value) runtime.CallableFunc {
	return func(*runtime.Object, *runtime.Value, []*runtime.Value) (*runtime.Value, error) {
		return v, nil
	}
}

// superCaller builds a method body that calls super[name]() using the home
// object bound to the invoked function.
func superCaller(c *Core, name string) runtime.CallableFunc {
	return func(callee *runtime.Object, this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		fn, err := c.LoadSuperNamed(this, c.HomeObjectOf(callee), runtime.StringKey(name))
		if err != nil {
			return nil, err
		}
		return c.realm.Call(fn, this, args)
	}
}

func callMethod(t *testing.T, c *Core, this *runtime.Value, name string) *runtime.Value {
	t.Helper()
	fn, err := c.realm.Get(this.Object, runtime.StringKey(name))
	if err != nil {
		t.Fatalf("get %q: %v", name, err)
	}
	v, err := c.realm.Call(fn, this, nil)
	if err != nil {
		t.Fatalf("call %q: %v", name, err)
	}
	return v
}

func TestDerivedGreetReachesBase(t *testing.T) {
	c := newCore(t)
	base := defineExpect(t, c, "Base", runtime.NoSuperclass, runtime.Undefined)
	install(protoOf(t, c, base), "greet", method(c, "greet", returning(runtime.NewString("base"))))

	derived := defineExpect(t, c, "Derived", runtime.NewObject(base), runtime.Undefined)
	derivedProto := protoOf(t, c, derived)
	greet, err := c.BindHomeObject(method(c, "greet", superCaller(c, "greet")), derivedProto)
	if err != nil {
		t.Fatal(err)
	}
	install(derivedProto, "greet", greet)

	inst, err := c.realm.Construct(runtime.NewObject(derived), nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := callMethod(t, c, inst, "greet"); got.Type != runtime.TypeString || got.Str != "base" {
		t.Fatalf("expected \"base\", got %s", runtime.Inspect(got))
	}
}

func TestStaticSuperWalksConstructorChain(t *testing.T) {
	c := newCore(t)
	base := defineExpect(t, c, "Base", runtime.NoSuperclass, runtime.Undefined)
	install(base, "create", method(c, "create", returning(runtime.NewString("base.create"))))
	derived := defineExpect(t, c, "Derived", runtime.NewObject(base), runtime.Undefined)

	got, err := c.LoadSuperNamed(runtime.NewObject(derived), derived, runtime.StringKey("create"))
	if err != nil {
		t.Fatal(err)
	}
	if !got.IsCallable() || got.Object.Name() != "create" {
		t.Fatalf("static super did not reach Base.create: %s", runtime.Inspect(got))
	}
}

func TestBindHomeObjectClonesPerHome(t *testing.T) {
	c := newCore(t)
	body := method(c, "m", superCaller(c, "who"))
	homeA := c.realm.NewPlainObject()
	homeA.Prototype = c.realm.NewPlainObject()
	install(homeA.Prototype, "who", method(c, "who", returning(runtime.NewString("A"))))
	homeB := c.realm.NewPlainObject()
	homeB.Prototype = c.realm.NewPlainObject()
	install(homeB.Prototype, "who", method(c, "who", returning(runtime.NewString("B"))))

	a, err := c.BindHomeObject(body, homeA)
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.BindHomeObject(body, homeB)
	if err != nil {
		t.Fatal(err)
	}
	if a == b || a == body {
		t.Fatal("BindHomeObject did not clone")
	}
	if c.HomeObjectOf(body) != nil {
		t.Fatal("the original function was modified")
	}
	if c.HomeObjectOf(a) != homeA || c.HomeObjectOf(b) != homeB {
		t.Fatal("clones carry the wrong home objects")
	}
	for fn, want := range map[*runtime.Object]string{a: "A", b: "B"} {
		got, err := c.realm.Call(runtime.NewObject(fn), runtime.Undefined, nil)
		if err != nil {
			t.Fatal(err)
		}
		if got.Str != want {
			t.Fatalf("expected %s, got %s", want, runtime.Inspect(got))
		}
	}

	// rebinding a bound clone replaces the home
	rebound, err := c.BindHomeObject(a, homeB)
	if err != nil || c.HomeObjectOf(rebound) != homeB || c.HomeObjectOf(a) != homeA {
		t.Fatal("rebinding a clone misbehaved")
	}
}

func TestBindHomeObjectRejectsNonFunction(t *testing.T) {
	c := newCore(t)
	_, err := c.BindHomeObject(c.realm.NewPlainObject(), c.realm.NewPlainObject())
	expectError(t, err, runtime.TypeError, "not_a_function")
}

func TestLoadSuperWithoutBase(t *testing.T) {
	c := newCore(t)
	home := runtime.NewOrdinaryObject(nil)
	for _, recv := range []*runtime.Value{runtime.Undefined, runtime.NewNumber(1), runtime.NewObject(home)} {
		got, err := c.LoadSuperNamed(recv, home, runtime.StringKey("anything"))
		if err != nil || got != runtime.Undefined {
			t.Fatalf("expected undefined, got %v %v", got, err)
		}
	}
	got, err := c.StoreSuperNamed(runtime.NewObject(home), home, runtime.StringKey("x"), runtime.True, runtime.Strict)
	if err != nil || got != runtime.Undefined || home.HasOwnProperty("x") {
		t.Fatalf("store without base: %v %v", got, err)
	}
}

func TestLoadSuperGetterSeesReceiver(t *testing.T) {
	c := newCore(t)
	base := c.realm.NewPlainObject()
	getter := method(c, "get", func(_ *runtime.Object, this *runtime.Value, _ []*runtime.Value) (*runtime.Value, error) {
		return this, nil
	})
	base.DefineProperty("self", &runtime.Property{Getter: runtime.NewObject(getter), IsAccessor: true, Configurable: true})
	home := runtime.NewOrdinaryObject(base)
	receiver := runtime.NewObject(c.realm.NewPlainObject())

	got, err := c.LoadSuperNamed(receiver, home, runtime.StringKey("self"))
	if err != nil {
		t.Fatal(err)
	}
	if got.Object != receiver.Object {
		t.Fatal("getter did not run with the receiver as this")
	}
}

func TestLoadSuperPropagatesGetterError(t *testing.T) {
	c := newCore(t)
	boom := runtime.Throw(runtime.NewString("boom"))
	base := c.realm.NewPlainObject()
	getter := method(c, "get", func(*runtime.Object, *runtime.Value, []*runtime.Value) (*runtime.Value, error) {
		return nil, boom
	})
	base.DefineProperty("x", &runtime.Property{Getter: runtime.NewObject(getter), IsAccessor: true})
	_, err := c.LoadSuperNamed(runtime.Undefined, runtime.NewOrdinaryObject(base), runtime.StringKey("x"))
	if err != boom {
		t.Fatalf("expected getter error, got %v", err)
	}
}

func TestLoadSuperBoundsCyclicChain(t *testing.T) {
	c := New(runtime.NewRealmWithConfig(runtime.RealmConfig{MaxChainLength: 32}), Config{})
	a := runtime.NewOrdinaryObject(nil)
	b := runtime.NewOrdinaryObject(a)
	a.Prototype = b
	_, err := c.LoadSuperNamed(runtime.Undefined, a, runtime.StringKey("x"))
	expectError(t, err, runtime.RangeError, "prototype_chain_too_long")
}

func TestStoreSuperReadOnlyInherited(t *testing.T) {
	c := newCore(t)
	base := c.realm.NewPlainObject()
	base.DefineProperty("x", &runtime.Property{Value: runtime.NewNumber(1)})
	home := runtime.NewOrdinaryObject(base)
	recvObj := runtime.NewOrdinaryObject(home)
	receiver := runtime.NewObject(recvObj)
	key := runtime.StringKey("x")

	_, err := c.StoreSuperNamed(receiver, home, key, runtime.NewNumber(2), runtime.Strict)
	expectError(t, err, runtime.TypeError, "strict_read_only_property")

	got, err := c.StoreSuperNamed(receiver, home, key, runtime.NewNumber(2), runtime.Sloppy)
	if err != nil {
		t.Fatalf("sloppy store raised %v", err)
	}
	if got.Number != 2 {
		t.Fatalf("sloppy store should return the value, got %s", runtime.Inspect(got))
	}
	if recvObj.HasOwnProperty("x") || base.Properties["x"].Value.Number != 1 {
		t.Fatal("sloppy store mutated something")
	}
}

func TestStoreSuperTargetsReceiver(t *testing.T) {
	c := newCore(t)
	base := c.realm.NewPlainObject()
	base.DefineProperty("x", &runtime.Property{Value: runtime.NewNumber(1), Writable: true})
	var setterThis *runtime.Value
	setter := method(c, "set", func(_ *runtime.Object, this *runtime.Value, _ []*runtime.Value) (*runtime.Value, error) {
		setterThis = this
		return runtime.Undefined, nil
	})
	base.DefineProperty("acc", &runtime.Property{Setter: runtime.NewObject(setter), IsAccessor: true})
	home := runtime.NewOrdinaryObject(base)
	recvObj := c.realm.NewPlainObject()
	receiver := runtime.NewObject(recvObj)

	if _, err := c.StoreSuperNamed(receiver, home, runtime.StringKey("x"), runtime.NewNumber(5), runtime.Strict); err != nil {
		t.Fatal(err)
	}
	if recvObj.Properties["x"] == nil || recvObj.Properties["x"].Value.Number != 5 {
		t.Fatal("data store did not land on the receiver")
	}
	if base.Properties["x"].Value.Number != 1 {
		t.Fatal("data store modified the base")
	}

	if _, err := c.StoreSuperNamed(receiver, home, runtime.StringKey("acc"), runtime.True, runtime.Strict); err != nil {
		t.Fatal(err)
	}
	if setterThis == nil || setterThis.Object != recvObj {
		t.Fatal("setter did not run with the receiver as this")
	}
}

func TestStoreSuperRefusals(t *testing.T) {
	c := newCore(t)
	base := c.realm.NewPlainObject()
	base.DefineProperty("g", &runtime.Property{Getter: runtime.NewObject(method(c, "get", noop)), IsAccessor: true})
	home := runtime.NewOrdinaryObject(base)

	_, err := c.StoreSuperNamed(runtime.NewObject(c.realm.NewPlainObject()), home, runtime.StringKey("g"), runtime.True, runtime.Strict)
	expectError(t, err, runtime.TypeError, "strict_getter_only")

	_, err = c.StoreSuperNamed(runtime.NewNumber(1), home, runtime.StringKey("fresh"), runtime.True, runtime.Strict)
	expectError(t, err, runtime.TypeError, "strict_primitive_receiver")

	recv := c.realm.NewPlainObject()
	recv.DefineProperty("fresh", &runtime.Property{Getter: runtime.NewObject(method(c, "get", noop)), IsAccessor: true})
	_, err = c.StoreSuperNamed(runtime.NewObject(recv), home, runtime.StringKey("fresh"), runtime.True, runtime.Strict)
	expectError(t, err, runtime.TypeError, "strict_receiver_accessor")
}

func TestSuperKeyedRejectsIndex(t *testing.T) {
	c := newCore(t)
	base := c.realm.NewPlainObject()
	base.DefineProperty("0", &runtime.Property{Value: runtime.True, Writable: true})
	home := runtime.NewOrdinaryObject(base)
	for _, key := range []*runtime.Value{runtime.NewString("0"), runtime.NewNumber(0), runtime.NewNumber(12)} {
		_, err := c.LoadSuperKeyed(runtime.Undefined, home, key)
		expectError(t, err, runtime.ReferenceError, "unsupported_super")
		_, err = c.StoreSuperKeyed(runtime.NewObject(home), home, key, runtime.False, runtime.Sloppy)
		expectError(t, err, runtime.ReferenceError, "unsupported_super")
	}

	base.DefineProperty("01", &runtime.Property{Value: runtime.NewString("not an index")})
	got, err := c.LoadSuperKeyed(runtime.Undefined, home, runtime.NewString("01"))
	if err != nil || got.Str != "not an index" {
		t.Fatalf("keyed load of a non-index key: %v %v", got, err)
	}

	for name, n := range map[string]float64{"1234567.5": 1234567.5, "1e-7": 1e-7, "1e+21": 1e21, "0.5": 0.5} {
		base.DefineProperty(name, &runtime.Property{Value: runtime.NewString(name), Writable: true})
		got, err := c.LoadSuperKeyed(runtime.Undefined, home, runtime.NewNumber(n))
		if err != nil || got.Str != name {
			t.Fatalf("keyed load of %s: %v %v", name, got, err)
		}
		recv := c.realm.NewPlainObject()
		if _, err := c.StoreSuperKeyed(runtime.NewObject(recv), home, runtime.NewNumber(n), runtime.True, runtime.Strict); err != nil {
			t.Fatalf("keyed store of %s: %v", name, err)
		}
		if recv.Properties[name] == nil {
			t.Fatalf("keyed store of %s did not land under that name", name)
		}
	}
}

func TestSuperWithoutHome(t *testing.T) {
	c := newCore(t)
	_, err := c.LoadSuperNamed(runtime.Undefined, nil, runtime.StringKey("x"))
	expectError(t, err, runtime.ReferenceError, "non_method")
	_, err = c.LoadSuperKeyed(runtime.Undefined, nil, runtime.NewNumber(0))
	expectError(t, err, runtime.ReferenceError, "non_method")
	_, err = c.StoreSuperNamed(runtime.Undefined, nil, runtime.StringKey("x"), runtime.True, runtime.Strict)
	expectError(t, err, runtime.ReferenceError, "non_method")

	expectError(t, ThrowUnsupportedSuper(), runtime.ReferenceError, "unsupported_super")
	expectError(t, ThrowNonMethodSuper(), runtime.ReferenceError, "non_method")
}

func TestSuperAccessDenied(t *testing.T) {
	policy := access.NewPolicy()
	base := runtime.NewOrdinaryObject(nil)
	base.DefineProperty("x", &runtime.Property{Value: runtime.NewNumber(1), Writable: true})
	home := runtime.NewOrdinaryObject(base)
	policy.Lock(home, access.Get, access.Set)
	receiver := runtime.NewObject(runtime.NewOrdinaryObject(nil))

	silent := New(runtime.NewRealm(), Config{Gate: policy})
	got, err := silent.LoadSuperNamed(receiver, home, runtime.StringKey("x"))
	if err != nil || got != runtime.Undefined {
		t.Fatalf("fail-closed load: %v %v", got, err)
	}
	got, err = silent.StoreSuperNamed(receiver, home, runtime.StringKey("x"), runtime.True, runtime.Strict)
	if err != nil || got != runtime.Undefined || receiver.Object.HasOwnProperty("x") {
		t.Fatalf("fail-closed store: %v %v", got, err)
	}

	var reported []access.Mode
	loud := New(runtime.NewRealm(), Config{
		Gate: policy,
		Reporter: func(obj *runtime.Object, key runtime.PropertyKey, mode access.Mode, d access.Decision) error {
			reported = append(reported, mode)
			return access.ReportAsError(obj, key, mode, d)
		},
	})
	_, err = loud.LoadSuperNamed(receiver, home, runtime.StringKey("x"))
	expectError(t, err, runtime.AccessError, "access_denied")
	_, err = loud.StoreSuperNamed(receiver, home, runtime.StringKey("x"), runtime.True, runtime.Sloppy)
	expectError(t, err, runtime.AccessError, "access_denied")
	if len(reported) != 2 || reported[0] != access.Get || reported[1] != access.Set {
		t.Fatalf("reporter saw %v", reported)
	}

	policy.Unlock(home)
	got, err = loud.LoadSuperNamed(receiver, home, runtime.StringKey("x"))
	if err != nil || got.Number != 1 {
		t.Fatalf("unlocked load: %v %v", got, err)
	}
}

func TestSuperGetterRecursionIsBounded(t *testing.T) {
	c := New(runtime.NewRealmWithConfig(runtime.RealmConfig{MaxCallDepth: 16}), Config{})
	base := c.realm.NewPlainObject()
	home := runtime.NewOrdinaryObject(base)
	getter := method(c, "get", func(_ *runtime.Object, this *runtime.Value, _ []*runtime.Value) (*runtime.Value, error) {
		return c.LoadSuperNamed(this, home, runtime.StringKey("loop"))
	})
	base.DefineProperty("loop", &runtime.Property{Getter: runtime.NewObject(getter), IsAccessor: true})
	_, err := c.LoadSuperNamed(runtime.Undefined, home, runtime.StringKey("loop"))
	expectError(t, err, runtime.RangeError, "stack_overflow")
}
