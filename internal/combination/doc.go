// Package combination sweeps parameter axes over a set of target schemas.
//
// Every combination of axis values yields one row holding one instance per
// target schema, each built from the same flat parameters. Axes are expanded
// in binding order with the last axis varying fastest, so a sweep over axes
// of sizes k1 and k2 yields exactly k1*k2 rows.
//
// ResultsTable fetches the stored result of every instance and lays them out
// next to the row's parameters. Target schemas must share their parameter
// names for their results to line up; otherwise it fails with
// *schema.CompatibilityError. Any failing row fails the whole table.
package combination
