package runtime

import (
	"math"
	"testing"
)

func TestCallDepthGuard(t *testing.T) {
	r := NewRealmWithConfig(RealmConfig{MaxCallDepth: 8})
	var fn *Object
	fn = r.NewFunction("loop", 0, func(_ *Object, this *Value, _ []*Value) (*Value, error) {
		return r.Call(NewObject(fn), this, nil)
	})
	_, err := r.Call(NewObject(fn), Undefined, nil)
	expectKind(t, err, RangeError, "stack_overflow")

	// the guard unwinds, so later calls still work
	ok := r.NewFunction("ok", 0, func(*Object, *Value, []*Value) (*Value, error) { return True, nil })
	if v, err := r.Call(NewObject(ok), Undefined, nil); err != nil || v != True {
		t.Fatalf("call after overflow: %v %v", v, err)
	}
}

func TestCallNonFunction(t *testing.T) {
	r := NewRealm()
	_, err := r.Call(NewNumber(1), Undefined, nil)
	expectKind(t, err, TypeError, "not_a_function")
}

func TestConstruct(t *testing.T) {
	r := NewRealm()
	proto := r.NewPlainObject()
	ctor := r.NewFunction("Point", 1, nil)
	ctor.Constructor = func(_ *Object, this *Value, args []*Value) (*Value, error) {
		setDataProp(this.Object, "x", argAt(args, 0), true, true, true)
		return Undefined, nil
	}
	setDataProp(ctor, "prototype", NewObject(proto), false, false, false)

	inst, err := r.Construct(NewObject(ctor), []*Value{NewNumber(4)})
	if err != nil {
		t.Fatal(err)
	}
	if inst.Object.Prototype != proto {
		t.Fatal("instance does not inherit from ctor.prototype")
	}
	if got := Inspect(inst); got != "{ x: 4 }" {
		t.Fatalf("expected { x: 4 }, got %s", got)
	}

	_, err = r.Construct(NewString("nope"), nil)
	expectKind(t, err, TypeError, "not_a_constructor")
}

func TestConstructObjectResultWins(t *testing.T) {
	r := NewRealm()
	replacement := r.NewPlainObject()
	ctor := r.NewFunction("F", 0, func(*Object, *Value, []*Value) (*Value, error) {
		return NewObject(replacement), nil
	})
	got, err := r.Construct(NewObject(ctor), nil)
	if err != nil {
		t.Fatal(err)
	}
	if got.Object != replacement {
		t.Fatal("object returned by the constructor was discarded")
	}
}

func TestCloneFunctionDropsHomeBinding(t *testing.T) {
	r := NewRealm()
	fn := r.NewFunction("m", 2, func(callee *Object, _ *Value, _ []*Value) (*Value, error) {
		return NewObject(callee), nil
	})
	other := NewSymbol("other")
	fn.ForceDefine(SymbolKey(r.HomeObjectSymbol()), &Property{Value: NewObject(r.NewPlainObject())})
	fn.ForceDefine(SymbolKey(other), &Property{Value: True})

	clone := r.CloneFunction(fn)
	if clone == fn {
		t.Fatal("clone is the original")
	}
	if clone.GetOwnProperty(SymbolKey(r.HomeObjectSymbol())) != nil {
		t.Fatal("clone kept the home binding")
	}
	if clone.GetOwnProperty(SymbolKey(other)) == nil {
		t.Fatal("clone lost an unrelated symbol property")
	}
	if clone.Name() != "m" || clone.Prototype != r.FunctionPrototype {
		t.Fatal("clone lost name or prototype")
	}
	clone.Properties["name"].Value = NewString("changed")
	if fn.Name() != "m" {
		t.Fatal("clone shares property records with the original")
	}
	got, err := r.Call(NewObject(clone), Undefined, nil)
	if err != nil || got.Object != clone {
		t.Fatal("cloned code does not see the clone as callee")
	}
}

func TestToPropertyKey(t *testing.T) {
	r := NewRealm()
	sym := NewSymbol("s")
	withToString := r.NewPlainObject()
	r.setMethod(withToString, "toString", 0, func(*Object, *Value, []*Value) (*Value, error) {
		return NewString("7"), nil
	})
	tests := []struct {
		in   *Value
		want PropertyKey
	}{
		{NewString("a"), StringKey("a")},
		{NewNumber(1), StringKey("1")},
		{NewNumber(1.5), StringKey("1.5")},
		{NewNumber(1234567.5), StringKey("1234567.5")},
		{NewNumber(0.5), StringKey("0.5")},
		{NewNumber(0.000001), StringKey("0.000001")},
		{NewNumber(1e-7), StringKey("1e-7")},
		{NewNumber(-1.5e-9), StringKey("-1.5e-9")},
		{NewNumber(1e21), StringKey("1e+21")},
		{NewNumber(123e25), StringKey("1.23e+27")},
		{Null, StringKey("null")},
		{NewSymbolValue(sym), SymbolKey(sym)},
		{NewObject(withToString), StringKey("7")},
		{NewObject(r.NewPlainObject()), StringKey("[object Object]")},
	}
	for _, tt := range tests {
		got, err := r.ToPropertyKey(tt.in)
		if err != nil {
			t.Fatalf("ToPropertyKey(%s): %v", Inspect(tt.in), err)
		}
		if got != tt.want {
			t.Fatalf("ToPropertyKey(%s): expected %v, got %v", Inspect(tt.in), tt.want, got)
		}
	}

	noPrim := NewOrdinaryObject(nil)
	_, err := r.ToPropertyKey(NewObject(noPrim))
	expectKind(t, err, TypeError, "cannot_convert_to_primitive")
}

func TestArrayIndex(t *testing.T) {
	tests := map[string]bool{
		"0": true, "7": true, "4294967294": true,
		"4294967295": false, "01": false, "-1": false, "1.0": false, "": false, "a": false,
	}
	for name, want := range tests {
		if _, got := StringKey(name).ArrayIndex(); got != want {
			t.Fatalf("ArrayIndex(%q): expected %v", name, want)
		}
	}
	if _, ok := SymbolKey(NewSymbol("0")).ArrayIndex(); ok {
		t.Fatal("symbol treated as index")
	}
}

func TestSameValue(t *testing.T) {
	if !SameValue(NaN, NewNumber(math.NaN())) {
		t.Fatal("NaN should be SameValue to NaN")
	}
	if SameValue(Zero, NewNumber(math.Copysign(0, -1))) {
		t.Fatal("+0 and -0 should differ")
	}
	if StrictEquals(NaN, NaN) {
		t.Fatal("NaN === NaN")
	}
}
