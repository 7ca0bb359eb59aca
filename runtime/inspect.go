package runtime

import (
	"strconv"
	"strings"
)

// Inspect renders v for diagnostics without running user code. Objects
// show their enumerable own string-keyed properties one level deep.
func Inspect(v *Value) string {
	return inspect(v, 0)
}

func inspect(v *Value, depth int) string {
	if v == nil {
		return "undefined"
	}
	switch v.Type {
	case TypeString:
		return strconv.Quote(v.Str)
	case TypeHole:
		return "<no superclass>"
	case TypeObject:
		if v.Object == nil {
			return "null"
		}
		return inspectObject(v.Object, depth)
	}
	return v.ToString()
}

func inspectObject(obj *Object, depth int) string {
	if obj.IsCallable() {
		if name := obj.Name(); name != "" {
			return "[Function: " + name + "]"
		}
		return "[Function (anonymous)]"
	}
	if obj.OType == ObjTypeError {
		return "[" + errorObjectString(obj) + "]"
	}
	if depth > 0 {
		return "[Object]"
	}
	var parts []string
	for _, key := range obj.OwnKeys() {
		if key.IsSymbol() {
			continue
		}
		prop := obj.Properties[key.Name]
		if !prop.Enumerable {
			continue
		}
		parts = append(parts, key.Name+": "+inspectProperty(prop, depth))
	}
	if len(parts) == 0 {
		return "{}"
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

func inspectProperty(prop *Property, depth int) string {
	if !prop.IsAccessor {
		return inspect(prop.Value, depth+1)
	}
	hasGet, hasSet := prop.Getter.IsCallable(), prop.Setter.IsCallable()
	switch {
	case hasGet && hasSet:
		return "[Getter/Setter]"
	case hasGet:
		return "[Getter]"
	case hasSet:
		return "[Setter]"
	}
	return "undefined"
}
