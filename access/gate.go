// Package access defines the access-check hook consulted before super
// property access on objects marked as needing checks.
package access

import "github.com/example/jsclass/runtime"

// Mode is the kind of access being checked.
type Mode int

const (
	Get Mode = iota
	Set
)

func (m Mode) String() string {
	if m == Set {
		return "set"
	}
	return "get"
}

// Decision is the outcome of an access check. A denial carries a reason
// for the reporter; it is not an error by itself.
type Decision struct {
	Allowed bool
	Reason  string
}

func Allow() Decision { return Decision{Allowed: true} }

func Deny(reason string) Decision { return Decision{Reason: reason} }

// Gate decides whether key may be accessed on obj.
type Gate interface {
	Check(obj *runtime.Object, key runtime.PropertyKey, mode Mode) Decision
}

// GateFunc adapts a function to Gate.
type GateFunc func(obj *runtime.Object, key runtime.PropertyKey, mode Mode) Decision

func (f GateFunc) Check(obj *runtime.Object, key runtime.PropertyKey, mode Mode) Decision {
	return f(obj, key, mode)
}

// AllowAll is the gate used when none is configured.
var AllowAll Gate = GateFunc(func(*runtime.Object, runtime.PropertyKey, Mode) Decision {
	return Allow()
})

// Reporter is invoked after a denial. A non-nil return is propagated to
// the caller; nil means the operation fails closed without an error.
type Reporter func(obj *runtime.Object, key runtime.PropertyKey, mode Mode, d Decision) error

// ReportAsError turns every denial into an AccessError.
func ReportAsError(_ *runtime.Object, key runtime.PropertyKey, _ Mode, d Decision) error {
	return runtime.NewAccessError("access_denied", key.Value(), runtime.NewString(d.Reason))
}

// Silent swallows denials, leaving the caller to fail closed.
func Silent(*runtime.Object, runtime.PropertyKey, Mode, Decision) error {
	return nil
}
