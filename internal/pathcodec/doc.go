// Package pathcodec maps schemas and instances to storage paths.
//
// A template addresses every path segment of a schema, in flattening order,
// with {name,regex} wildcard markers that a workflow engine can match
// against:
//
//	{seed,\d+}/{name,\w+}/file.npz
//
// Single-variant enums collapse to their literal, and fields forced through
// bindings become literals; multi-valued bindings expand to the cross
// product of paths. Resolve substitutes an instance's values for every
// segment and appends the schema's file name and file ending.
//
// A union of nested schemas cannot be laid out as one field sequence. Its
// template keeps the leading leaves all members share by name and replaces
// the rest with a single opaque {<field>_unknown_union_params,.*} wildcard.
// The tail is therefore not format-checked.
package pathcodec
