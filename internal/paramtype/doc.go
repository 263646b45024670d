// Package paramtype is the type codec. It defines the closed set of semantic
// parameter types (int, float, string, enum, union, nested) and compiles each
// into a regex fragment for workflow-engine wildcards and a validator for
// concrete path segment strings.
//
// Leaf values are carried as cty.Value: numbers for int and float, strings for
// string and enum.
package paramtype
