// Package instance is the instance model: immutable concrete parameter values
// for a schema, built either field by field (New) or from a flat name to
// value mapping with defaults filling the gaps (FromFlatParams). Instances
// compare by their flattened values.
package instance
