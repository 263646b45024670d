// Package binding holds ordered name to value(s) bindings, used both to force
// template segments and as the axes of combinatorial sweeps, plus the generic
// cartesian product they expand with.
package binding
