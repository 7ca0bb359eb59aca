package access

import "github.com/example/jsclass/runtime"

// Policy is a Gate that denies per object and mode. Locking an object also
// sets its NeedsAccessCheck flag so callers route through the gate.
type Policy struct {
	denied map[*runtime.Object]map[Mode]bool
}

func NewPolicy() *Policy {
	return &Policy{denied: make(map[*runtime.Object]map[Mode]bool)}
}

// Lock denies the given modes on obj.
func (p *Policy) Lock(obj *runtime.Object, modes ...Mode) {
	obj.NeedsAccessCheck = true
	m := p.denied[obj]
	if m == nil {
		m = make(map[Mode]bool)
		p.denied[obj] = m
	}
	for _, mode := range modes {
		m[mode] = true
	}
}

// Unlock lifts every denial on obj.
func (p *Policy) Unlock(obj *runtime.Object) {
	delete(p.denied, obj)
	obj.NeedsAccessCheck = false
}

func (p *Policy) Check(obj *runtime.Object, key runtime.PropertyKey, mode Mode) Decision {
	if p.denied[obj][mode] {
		return Deny(mode.String() + " locked")
	}
	return Allow()
}
