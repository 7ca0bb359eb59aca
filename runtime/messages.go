package runtime

var messageTemplates = map[string]string{
	// class definition
	"extends_value_not_a_function":   "Class extends value %0 is not a constructor or null",
	"prototype_parent_not_an_object": "Class extends value does not have valid prototype property %0",
	"class_ctor_not_extensible":      "Class constructor %0 is not extensible",

	// super
	"non_method":        "'super' keyword unexpected here: referenced from non-method",
	"unsupported_super": "Unsupported reference to 'super'",

	// prototype chain
	"prototype_chain_too_long":    "Prototype chain starting at %0 is too long or cyclic",
	"cyclic_proto":                "Cyclic __proto__ value",
	"proto_object_not_extensible": "Cannot change the prototype of a non-extensible object",

	// calls
	"stack_overflow":    "Maximum call stack size exceeded",
	"not_a_function":    "%0 is not a function",
	"not_a_constructor": "%0 is not a constructor",

	// stores
	"strict_read_only_property": "Cannot assign to read only property '%0' of %1",
	"strict_getter_only":        "Cannot set property %0 of %1 which has only a getter",
	"object_not_extensible":     "Cannot add property %0, object is not extensible",
	"strict_primitive_receiver": "Cannot create property '%0' on %1",
	"strict_receiver_accessor":  "Cannot assign to accessor property '%0' of %1 through super",
	"redefine_disallowed":       "Cannot redefine property: %0",

	// conversions and reads
	"cannot_convert_to_primitive": "Cannot convert object to primitive value",
	"cannot_read_property":        "Cannot read properties of %0 (reading '%1')",
	"not_an_object":               "%0 is not an object",

	// access checks
	"access_denied": "Access to property '%0' denied: %1",

	// bindings
	"not_defined":      "%0 is not defined",
	"const_assign":     "Assignment to constant variable '%0'",
	"already_declared": "Identifier '%0' has already been declared",
	"uninitialized":    "Cannot access '%0' before initialization",

	// session commands
	"unknown_command": "Unknown command %0",
	"bad_command":     "Malformed command: %0",
	"bad_literal":     "Invalid literal %0",
}
