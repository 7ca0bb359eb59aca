package runtime

import (
	"errors"
	"strings"
)

// ErrorKind classifies runtime failures.
type ErrorKind int

const (
	GenericError ErrorKind = iota
	TypeError
	ReferenceError
	RangeError
	SyntaxError
	// AccessError is raised by access-check reporters.
	AccessError
	// ThrownValue carries an arbitrary script value thrown by user code.
	ThrownValue
)

func (k ErrorKind) String() string {
	switch k {
	case TypeError:
		return "TypeError"
	case ReferenceError:
		return "ReferenceError"
	case RangeError:
		return "RangeError"
	case SyntaxError:
		return "SyntaxError"
	case AccessError:
		return "AccessError"
	case ThrownValue:
		return "Thrown"
	default:
		return "Error"
	}
}

// Error is a runtime failure. Template is a key into the message table and
// Args are the offending values substituted for %0, %1, ...
type Error struct {
	Kind     ErrorKind
	Template string
	Args     []*Value
	Thrown   *Value
}

func (e *Error) Error() string {
	if e.Kind == ThrownValue {
		if e.Thrown == nil {
			return "undefined"
		}
		return e.Thrown.ToString()
	}
	return e.Kind.String() + ": " + e.Message()
}

// Message renders the template with its arguments.
func (e *Error) Message() string {
	tmpl, ok := messageTemplates[e.Template]
	if !ok {
		tmpl = e.Template
	}
	if len(e.Args) == 0 {
		return tmpl
	}
	var sb strings.Builder
	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		if c == '%' && i+1 < len(tmpl) && tmpl[i+1] >= '0' && tmpl[i+1] <= '9' {
			idx := int(tmpl[i+1] - '0')
			if idx < len(e.Args) {
				sb.WriteString(describe(e.Args[idx]))
			}
			i++
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

func NewTypeError(template string, args ...*Value) *Error {
	return &Error{Kind: TypeError, Template: template, Args: args}
}

func NewReferenceError(template string, args ...*Value) *Error {
	return &Error{Kind: ReferenceError, Template: template, Args: args}
}

func NewRangeError(template string, args ...*Value) *Error {
	return &Error{Kind: RangeError, Template: template, Args: args}
}

func NewSyntaxError(template string, args ...*Value) *Error {
	return &Error{Kind: SyntaxError, Template: template, Args: args}
}

func NewAccessError(template string, args ...*Value) *Error {
	return &Error{Kind: AccessError, Template: template, Args: args}
}

// Throw wraps a script value thrown by user code.
func Throw(v *Value) *Error {
	return &Error{Kind: ThrownValue, Thrown: v}
}

// KindOf returns the kind of err, or GenericError when err is not an *Error.
func KindOf(err error) ErrorKind {
	var rtErr *Error
	if errors.As(err, &rtErr) {
		return rtErr.Kind
	}
	return GenericError
}

// describe formats an error argument the way diagnostics print it.
func describe(v *Value) string {
	if v == nil {
		return "undefined"
	}
	switch v.Type {
	case TypeObject:
		if v.Object == nil {
			return "null"
		}
		if v.Object.IsCallable() {
			if name := v.Object.Name(); name != "" {
				return name
			}
			return "anonymous function"
		}
		if v.Object.OType == ObjTypeError {
			return errorObjectString(v.Object)
		}
		return "#<Object>"
	case TypeSymbol:
		return v.Symbol.String()
	}
	return v.ToString()
}
