package classes

import "github.com/example/jsclass/runtime"

// ThrowUnsupportedSuper is raised for super forms the resolver rejects,
// such as super[0].
func ThrowUnsupportedSuper() error {
	return runtime.NewReferenceError("unsupported_super")
}

// ThrowNonMethodSuper is raised when super is used with no home object.
func ThrowNonMethodSuper() error {
	return runtime.NewReferenceError("non_method")
}
