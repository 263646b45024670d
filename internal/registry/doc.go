// Package registry resolves loaded declarations into schemas and sweeps.
//
// Parameter sets may refer to each other by name in any declaration order
// and across files. Every reference is resolved when the registry is
// populated: an unknown name or a reference cycle fails immediately with a
// *paramtype.SchemaError, so schemas handed out by the registry are always
// complete. Schemas built in Go can be registered alongside declared ones.
package registry
