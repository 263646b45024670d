// Package resultstore persists one result value per instance at the path the
// path codec resolves for it.
//
// A result is a single plain-text blob. Numbers are written in their decimal
// form and strings verbatim; on read, a blob that parses as a number comes
// back as a number and anything else comes back as the exact stored text.
// There is no locking: concurrent writers to the same path race and the last
// one wins.
package resultstore
