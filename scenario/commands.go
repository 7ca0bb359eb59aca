package scenario

import (
	"sort"

	"github.com/example/jsclass/access"
	"github.com/example/jsclass/classes"
	"github.com/example/jsclass/runtime"
)

type command struct {
	usage   string
	minArgs int
	run     func(s *Session, args []token) (*runtime.Value, error)
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"class":         {"class NAME [extends REF] [ctor]", 1, (*Session).cmdClass},
		"method":        {"method CLASS.KEY returns REF|super KEY|this KEY|throws REF", 3, (*Session).cmdMethod},
		"static":        {"static CLASS.KEY returns REF|super KEY|this KEY|throws REF", 3, (*Session).cmdStatic},
		"getter":        {"getter CLASS.KEY returns REF|super KEY|this KEY|throws REF", 3, (*Session).cmdGetter},
		"setter":        {"setter CLASS.KEY super KEY|this KEY|throws REF", 3, (*Session).cmdSetter},
		"let":           {"let NAME = REF | new CLASS [ARGS] | object [PROTO] | COMMAND ARGS", 3, (*Session).cmdLet},
		"set":           {"set REF.KEY = REF [strict]", 3, (*Session).cmdSet},
		"define":        {"define REF.KEY = REF [readonly] [hidden] [fixed]", 3, (*Session).cmdDefine},
		"delete":        {"delete REF.KEY", 1, (*Session).cmdDelete},
		"proto":         {"proto REF = PROTO", 3, (*Session).cmdProto},
		"freeze":        {"freeze REF", 1, (*Session).cmdFreeze},
		"call":          {"call REF.KEY [ARGS]", 1, (*Session).cmdCall},
		"bind":          {"bind NAME = REF.KEY to HOME", 5, (*Session).cmdBind},
		"super.get":     {"super.get RECV HOME KEY", 3, (*Session).cmdSuperGet},
		"super.key":     {"super.key RECV HOME REF", 3, (*Session).cmdSuperKey},
		"super.set":     {"super.set RECV HOME KEY = REF [strict|sloppy]", 5, (*Session).cmdSuperSet},
		"super.setkey":  {"super.setkey RECV HOME REF = REF [strict|sloppy]", 5, (*Session).cmdSuperSetKey},
		"super.outside": {"super.outside", 0, (*Session).cmdSuperOutside},
		"super.indexed": {"super.indexed", 0, (*Session).cmdSuperIndexed},
		"lock":          {"lock REF get|set|all [quiet]", 2, (*Session).cmdLock},
		"unlock":        {"unlock REF", 1, (*Session).cmdUnlock},
		"homeof":        {"homeof REF", 1, (*Session).cmdHomeOf},
		"protoof":       {"protoof REF", 1, (*Session).cmdProtoOf},
		"same":          {"same REF REF", 2, (*Session).cmdSame},
		"print":         {"print REF", 1, (*Session).cmdPrint},
	}
}

// Usage lists the usage line of every command, sorted.
func Usage() []string {
	lines := make([]string, 0, len(commands))
	for _, cmd := range commands {
		lines = append(lines, cmd.usage)
	}
	sort.Strings(lines)
	return lines
}

// CommandNames lists the command keywords, sorted.
func CommandNames() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func badCommand(name string) error {
	return runtime.NewSyntaxError("bad_command", runtime.NewString(commands[name].usage))
}

func (s *Session) cmdClass(args []token) (*runtime.Value, error) {
	name := args[0].text
	if !isIdentifier(name) {
		return nil, runtime.NewSyntaxError("bad_literal", runtime.NewString(name))
	}
	if s.env.Has(name) {
		return nil, runtime.NewSyntaxError("already_declared", runtime.NewString(name))
	}
	superclass := runtime.NoSuperclass
	i := 1
	if i < len(args) && args[i].text == "extends" {
		if i+1 >= len(args) {
			return nil, badCommand("class")
		}
		v, err := s.ref(args[i+1])
		if err != nil {
			return nil, err
		}
		superclass = v
		i += 2
	}
	ctor := runtime.Undefined
	if i < len(args) && args[i].text == "ctor" {
		derived := superclass.Type != runtime.TypeHole && superclass.Type != runtime.TypeNull
		ctor = runtime.NewObject(s.explicitConstructor(name, derived))
		i++
	}
	if i != len(args) {
		return nil, badCommand("class")
	}
	cls, err := s.core.DefineClass(runtime.NewString(name), superclass, ctor)
	if err != nil {
		return nil, err
	}
	if err := s.declare(name, "const", cls); err != nil {
		return nil, err
	}
	return cls, nil
}

// explicitConstructor plays the part of a constructor literal: it calls
// super(...args) when the class is derived and then records which class
// constructed the instance.
func (s *Session) explicitConstructor(name string, derived bool) *runtime.Object {
	fn := s.realm.NewFunction(name, 0, nil)
	fn.Constructor = func(callee *runtime.Object, this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
		if derived {
			parent := callee.Prototype
			if parent == nil || !parent.IsCallable() {
				return nil, runtime.NewTypeError("not_a_constructor", runtime.Null)
			}
			res, err := s.realm.CallConstructor(parent, this, args)
			if err != nil {
				return nil, err
			}
			if res.IsObject() {
				this = res
			}
		}
		if this.IsObject() {
			if err := s.realm.Put(this.Object, runtime.StringKey("constructedBy"), runtime.NewString(name), runtime.Strict); err != nil {
				return nil, err
			}
		}
		return this, nil
	}
	return fn
}

func (s *Session) cmdMethod(args []token) (*runtime.Value, error) {
	return s.installMethod("method", args, false)
}

func (s *Session) cmdStatic(args []token) (*runtime.Value, error) {
	return s.installMethod("static", args, true)
}

func (s *Session) installMethod(cmd string, args []token, static bool) (*runtime.Value, error) {
	target, key, err := s.classMember(args[0], static)
	if err != nil {
		return nil, err
	}
	body, err := s.methodBody(cmd, "method", args[1:])
	if err != nil {
		return nil, err
	}
	fn, err := s.core.BindHomeObject(s.realm.NewFunction(key.Name, 0, body), target)
	if err != nil {
		return nil, err
	}
	if !target.DefineOwnProperty(key, &runtime.Property{
		Value:        runtime.NewObject(fn),
		Writable:     true,
		Configurable: true,
	}) {
		return nil, runtime.NewTypeError("redefine_disallowed", key.Value())
	}
	return runtime.NewObject(fn), nil
}

func (s *Session) cmdGetter(args []token) (*runtime.Value, error) {
	return s.installAccessor("getter", args)
}

func (s *Session) cmdSetter(args []token) (*runtime.Value, error) {
	return s.installAccessor("setter", args)
}

func (s *Session) installAccessor(kind string, args []token) (*runtime.Value, error) {
	target, key, err := s.classMember(args[0], false)
	if err != nil {
		return nil, err
	}
	body, err := s.methodBody(kind, kind, args[1:])
	if err != nil {
		return nil, err
	}
	fn, err := s.core.BindHomeObject(s.realm.NewFunction(key.Name, 0, body), target)
	if err != nil {
		return nil, err
	}
	prop := &runtime.Property{IsAccessor: true, Configurable: true}
	if existing := target.GetOwnProperty(key); existing != nil && existing.IsAccessor {
		merged := *existing
		prop = &merged
	}
	if kind == "getter" {
		prop.Getter = runtime.NewObject(fn)
	} else {
		prop.Setter = runtime.NewObject(fn)
	}
	if !target.DefineOwnProperty(key, prop) {
		return nil, runtime.NewTypeError("redefine_disallowed", key.Value())
	}
	return runtime.NewObject(fn), nil
}

// classMember resolves CLASS.KEY to the object a member is installed on:
// the class itself for static members, its prototype otherwise.
func (s *Session) classMember(tok token, static bool) (*runtime.Object, runtime.PropertyKey, error) {
	cls, key, err := s.member(tok)
	if err != nil {
		return nil, key, err
	}
	if static {
		return cls, key, nil
	}
	proto, err := s.realm.Get(cls, runtime.StringKey("prototype"))
	if err != nil {
		return nil, key, err
	}
	if !proto.IsObject() {
		return nil, key, runtime.NewTypeError("not_an_object", proto)
	}
	return proto.Object, key, nil
}

// methodBody compiles one of the body forms into callable code. Bodies that
// use super read their home object from the function being invoked, so
// every bound clone resolves against its own home.
func (s *Session) methodBody(cmd, kind string, args []token) (runtime.CallableFunc, error) {
	if len(args) != 2 {
		return nil, badCommand(cmd)
	}
	form, operand := args[0].text, args[1]
	key := keyOf(operand)
	switch {
	case form == "returns" && kind != "setter":
		return func(*runtime.Object, *runtime.Value, []*runtime.Value) (*runtime.Value, error) {
			return s.ref(operand)
		}, nil
	case form == "throws":
		return func(*runtime.Object, *runtime.Value, []*runtime.Value) (*runtime.Value, error) {
			v, err := s.ref(operand)
			if err != nil {
				return nil, err
			}
			return nil, runtime.Throw(v)
		}, nil
	case form == "super" && kind == "method":
		return func(callee *runtime.Object, this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
			fn, err := s.core.LoadSuperNamed(this, s.core.HomeObjectOf(callee), key)
			if err != nil {
				return nil, err
			}
			return s.realm.Call(fn, this, args)
		}, nil
	case form == "super" && kind == "getter":
		return func(callee *runtime.Object, this *runtime.Value, _ []*runtime.Value) (*runtime.Value, error) {
			return s.core.LoadSuperNamed(this, s.core.HomeObjectOf(callee), key)
		}, nil
	case form == "super" && kind == "setter":
		return func(callee *runtime.Object, this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
			return s.core.StoreSuperNamed(this, s.core.HomeObjectOf(callee), key, argAt(args, 0), runtime.Strict)
		}, nil
	case form == "this" && kind == "setter":
		return func(_ *runtime.Object, this *runtime.Value, args []*runtime.Value) (*runtime.Value, error) {
			if !this.IsObject() {
				return nil, runtime.NewTypeError("not_an_object", this)
			}
			return runtime.Undefined, s.realm.Put(this.Object, key, argAt(args, 0), runtime.Strict)
		}, nil
	case form == "this":
		return func(_ *runtime.Object, this *runtime.Value, _ []*runtime.Value) (*runtime.Value, error) {
			if !this.IsObject() {
				return nil, runtime.NewTypeError("cannot_read_property", this, key.Value())
			}
			return s.realm.GetProperty(this.Object, key, this)
		}, nil
	}
	return nil, badCommand(cmd)
}

func (s *Session) cmdLet(args []token) (*runtime.Value, error) {
	if args[1].text != "=" {
		return nil, badCommand("let")
	}
	v, err := s.rhs(args[2:])
	if err != nil {
		return nil, err
	}
	if err := s.declare(args[0].text, "let", v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Session) rhs(args []token) (*runtime.Value, error) {
	switch args[0].text {
	case "new":
		if len(args) < 2 {
			return nil, badCommand("let")
		}
		ctor, err := s.ref(args[1])
		if err != nil {
			return nil, err
		}
		ctorArgs, err := s.refs(args[2:])
		if err != nil {
			return nil, err
		}
		return s.realm.Construct(ctor, ctorArgs)
	case "object":
		switch len(args) {
		case 1:
			return runtime.NewObject(s.realm.NewPlainObject()), nil
		case 2:
			proto, err := s.protoRef(args[1])
			if err != nil {
				return nil, err
			}
			return runtime.NewObject(runtime.NewOrdinaryObject(proto)), nil
		}
		return nil, badCommand("let")
	}
	if cmd, ok := commands[args[0].text]; ok && len(args) > 1 {
		if len(args)-1 < cmd.minArgs {
			return nil, badCommand(args[0].text)
		}
		return cmd.run(s, args[1:])
	}
	if len(args) != 1 {
		return nil, badCommand("let")
	}
	return s.ref(args[0])
}

func (s *Session) cmdSet(args []token) (*runtime.Value, error) {
	if args[1].text != "=" || len(args) > 4 {
		return nil, badCommand("set")
	}
	mode := runtime.Sloppy
	if len(args) == 4 {
		if args[3].text != "strict" {
			return nil, badCommand("set")
		}
		mode = runtime.Strict
	}
	obj, key, err := s.member(args[0])
	if err != nil {
		return nil, err
	}
	v, err := s.ref(args[2])
	if err != nil {
		return nil, err
	}
	if err := s.realm.Put(obj, key, v, mode); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Session) cmdDefine(args []token) (*runtime.Value, error) {
	if args[1].text != "=" {
		return nil, badCommand("define")
	}
	obj, key, err := s.member(args[0])
	if err != nil {
		return nil, err
	}
	v, err := s.ref(args[2])
	if err != nil {
		return nil, err
	}
	prop := &runtime.Property{Value: v, Writable: true, Enumerable: true, Configurable: true}
	for _, flag := range args[3:] {
		switch flag.text {
		case "readonly":
			prop.Writable = false
		case "hidden":
			prop.Enumerable = false
		case "fixed":
			prop.Configurable = false
		default:
			return nil, badCommand("define")
		}
	}
	if !obj.DefineOwnProperty(key, prop) {
		return nil, runtime.NewTypeError("redefine_disallowed", key.Value())
	}
	return v, nil
}

// cmdDelete removes an own property and reports whether it is gone; a
// non-configurable property stays and yields false.
func (s *Session) cmdDelete(args []token) (*runtime.Value, error) {
	if len(args) != 1 {
		return nil, badCommand("delete")
	}
	obj, key, err := s.member(args[0])
	if err != nil {
		return nil, err
	}
	return runtime.NewBool(obj.DeleteOwnProperty(key)), nil
}

// cmdProto rewires a prototype link directly, cycles included, the way a
// corrupted heap would look to the resolver.
func (s *Session) cmdProto(args []token) (*runtime.Value, error) {
	if len(args) != 3 || args[1].text != "=" {
		return nil, badCommand("proto")
	}
	obj, err := s.objectRef(args[0])
	if err != nil {
		return nil, err
	}
	proto, err := s.protoRef(args[2])
	if err != nil {
		return nil, err
	}
	obj.Prototype = proto
	return runtime.NewObject(obj), nil
}

func (s *Session) cmdFreeze(args []token) (*runtime.Value, error) {
	obj, err := s.objectRef(args[0])
	if err != nil {
		return nil, err
	}
	obj.PreventExtensions()
	return runtime.NewObject(obj), nil
}

func (s *Session) cmdCall(args []token) (*runtime.Value, error) {
	obj, key, err := s.member(args[0])
	if err != nil {
		return nil, err
	}
	this := runtime.NewObject(obj)
	fn, err := s.realm.GetProperty(obj, key, this)
	if err != nil {
		return nil, err
	}
	callArgs, err := s.refs(args[1:])
	if err != nil {
		return nil, err
	}
	return s.realm.Call(fn, this, callArgs)
}

func (s *Session) cmdBind(args []token) (*runtime.Value, error) {
	if len(args) != 5 || args[1].text != "=" || args[3].text != "to" {
		return nil, badCommand("bind")
	}
	fn, err := s.ref(args[2])
	if err != nil {
		return nil, err
	}
	if !fn.IsCallable() {
		return nil, runtime.NewTypeError("not_a_function", fn)
	}
	home, err := s.homeRef(args[4])
	if err != nil {
		return nil, err
	}
	bound, err := s.core.BindHomeObject(fn.Object, home)
	if err != nil {
		return nil, err
	}
	v := runtime.NewObject(bound)
	if err := s.declare(args[0].text, "let", v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Session) superOperands(args []token) (*runtime.Value, *runtime.Object, error) {
	recv, err := s.ref(args[0])
	if err != nil {
		return nil, nil, err
	}
	home, err := s.homeRef(args[1])
	if err != nil {
		return nil, nil, err
	}
	return recv, home, nil
}

func (s *Session) cmdSuperGet(args []token) (*runtime.Value, error) {
	if len(args) != 3 {
		return nil, badCommand("super.get")
	}
	recv, home, err := s.superOperands(args)
	if err != nil {
		return nil, err
	}
	return s.core.LoadSuperNamed(recv, home, keyOf(args[2]))
}

func (s *Session) cmdSuperKey(args []token) (*runtime.Value, error) {
	if len(args) != 3 {
		return nil, badCommand("super.key")
	}
	recv, home, err := s.superOperands(args)
	if err != nil {
		return nil, err
	}
	key, err := s.ref(args[2])
	if err != nil {
		return nil, err
	}
	return s.core.LoadSuperKeyed(recv, home, key)
}

func (s *Session) cmdSuperSet(args []token) (*runtime.Value, error) {
	mode, err := storeMode("super.set", args)
	if err != nil {
		return nil, err
	}
	recv, home, err := s.superOperands(args)
	if err != nil {
		return nil, err
	}
	v, err := s.ref(args[4])
	if err != nil {
		return nil, err
	}
	return s.core.StoreSuperNamed(recv, home, keyOf(args[2]), v, mode)
}

func (s *Session) cmdSuperSetKey(args []token) (*runtime.Value, error) {
	mode, err := storeMode("super.setkey", args)
	if err != nil {
		return nil, err
	}
	recv, home, err := s.superOperands(args)
	if err != nil {
		return nil, err
	}
	key, err := s.ref(args[2])
	if err != nil {
		return nil, err
	}
	v, err := s.ref(args[4])
	if err != nil {
		return nil, err
	}
	return s.core.StoreSuperKeyed(recv, home, key, v, mode)
}

// storeMode validates "RECV HOME KEY = REF [strict|sloppy]"; stores are
// strict unless marked sloppy.
func storeMode(cmd string, args []token) (runtime.Strictness, error) {
	if len(args) < 5 || len(args) > 6 || args[3].text != "=" {
		return 0, badCommand(cmd)
	}
	if len(args) == 5 {
		return runtime.Strict, nil
	}
	switch args[5].text {
	case "strict":
		return runtime.Strict, nil
	case "sloppy":
		return runtime.Sloppy, nil
	}
	return 0, badCommand(cmd)
}

func (s *Session) cmdSuperOutside([]token) (*runtime.Value, error) {
	return nil, classes.ThrowNonMethodSuper()
}

func (s *Session) cmdSuperIndexed([]token) (*runtime.Value, error) {
	return nil, classes.ThrowUnsupportedSuper()
}

func (s *Session) cmdLock(args []token) (*runtime.Value, error) {
	if len(args) > 3 || (len(args) == 3 && args[2].text != "quiet") {
		return nil, badCommand("lock")
	}
	obj, err := s.objectRef(args[0])
	if err != nil {
		return nil, err
	}
	var modes []access.Mode
	switch args[1].text {
	case "get":
		modes = []access.Mode{access.Get}
	case "set":
		modes = []access.Mode{access.Set}
	case "all":
		modes = []access.Mode{access.Get, access.Set}
	default:
		return nil, badCommand("lock")
	}
	s.policy.Lock(obj, modes...)
	s.quiet[obj] = len(args) == 3
	return runtime.NewObject(obj), nil
}

func (s *Session) cmdUnlock(args []token) (*runtime.Value, error) {
	obj, err := s.objectRef(args[0])
	if err != nil {
		return nil, err
	}
	s.policy.Unlock(obj)
	delete(s.quiet, obj)
	return runtime.NewObject(obj), nil
}

func (s *Session) cmdHomeOf(args []token) (*runtime.Value, error) {
	obj, err := s.objectRef(args[0])
	if err != nil {
		return nil, err
	}
	if home := s.core.HomeObjectOf(obj); home != nil {
		return runtime.NewObject(home), nil
	}
	return runtime.Undefined, nil
}

func (s *Session) cmdProtoOf(args []token) (*runtime.Value, error) {
	obj, err := s.objectRef(args[0])
	if err != nil {
		return nil, err
	}
	if obj.Prototype == nil {
		return runtime.Null, nil
	}
	return runtime.NewObject(obj.Prototype), nil
}

func (s *Session) cmdSame(args []token) (*runtime.Value, error) {
	if len(args) != 2 {
		return nil, badCommand("same")
	}
	vals, err := s.refs(args)
	if err != nil {
		return nil, err
	}
	return runtime.NewBool(runtime.StrictEquals(vals[0], vals[1])), nil
}

func (s *Session) cmdPrint(args []token) (*runtime.Value, error) {
	if len(args) != 1 {
		return nil, badCommand("print")
	}
	return s.ref(args[0])
}

func argAt(args []*runtime.Value, i int) *runtime.Value {
	if i < len(args) && args[i] != nil {
		return args[i]
	}
	return runtime.Undefined
}
