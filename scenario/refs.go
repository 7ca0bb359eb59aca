package scenario

import (
	"math"
	"strings"

	"github.com/example/jsclass/runtime"
)

// ref evaluates a reference token: a literal, a binding, or a dotted path
// of ordinary property reads starting at a binding.
func (s *Session) ref(tok token) (*runtime.Value, error) {
	if tok.quoted {
		return runtime.NewString(tok.text), nil
	}
	switch tok.text {
	case "null":
		return runtime.Null, nil
	case "undefined":
		return runtime.Undefined, nil
	case "nosuper":
		return runtime.NoSuperclass, nil
	case "true":
		return runtime.True, nil
	case "false":
		return runtime.False, nil
	}
	if looksNumeric(tok.text) {
		return parseNumber(tok.text)
	}
	parts := strings.Split(tok.text, ".")
	v, err := s.env.Get(parts[0])
	if err != nil {
		return nil, err
	}
	for _, key := range parts[1:] {
		if key == "" {
			return nil, runtime.NewSyntaxError("bad_literal", runtime.NewString(tok.text))
		}
		if !v.IsObject() {
			return nil, runtime.NewTypeError("cannot_read_property", v, runtime.NewString(key))
		}
		if v, err = s.realm.Get(v.Object, runtime.StringKey(key)); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func (s *Session) refs(toks []token) ([]*runtime.Value, error) {
	vals := make([]*runtime.Value, 0, len(toks))
	for _, tok := range toks {
		v, err := s.ref(tok)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}

func (s *Session) objectRef(tok token) (*runtime.Object, error) {
	v, err := s.ref(tok)
	if err != nil {
		return nil, err
	}
	if !v.IsObject() {
		return nil, runtime.NewTypeError("not_an_object", v)
	}
	return v.Object, nil
}

// protoRef is objectRef that also accepts null.
func (s *Session) protoRef(tok token) (*runtime.Object, error) {
	if !tok.quoted && tok.text == "null" {
		return nil, nil
	}
	return s.objectRef(tok)
}

// homeRef resolves a home-object argument; "none" stands for a method
// with no home object at all.
func (s *Session) homeRef(tok token) (*runtime.Object, error) {
	if !tok.quoted && tok.text == "none" {
		return nil, nil
	}
	return s.objectRef(tok)
}

// member splits REF.KEY into the object it names and the key.
func (s *Session) member(tok token) (*runtime.Object, runtime.PropertyKey, error) {
	i := strings.LastIndexByte(tok.text, '.')
	if tok.quoted || i <= 0 || i == len(tok.text)-1 {
		return nil, runtime.PropertyKey{}, runtime.NewSyntaxError("bad_literal", runtime.NewString(tok.text))
	}
	obj, err := s.objectRef(token{text: tok.text[:i]})
	if err != nil {
		return nil, runtime.PropertyKey{}, err
	}
	return obj, runtime.StringKey(tok.text[i+1:]), nil
}

func keyOf(tok token) runtime.PropertyKey {
	return runtime.StringKey(tok.text)
}

func parseNumber(text string) (*runtime.Value, error) {
	n := runtime.NewString(text).ToNumber()
	if math.IsNaN(n) && text != "NaN" {
		return nil, runtime.NewSyntaxError("bad_literal", runtime.NewString(text))
	}
	return runtime.NewNumber(n), nil
}
