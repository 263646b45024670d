// Package schema is the schema reflector. A Schema is an explicit, statically
// constructed tree of typed fields; nested fields reference other schemas.
//
// Flattening walks the tree depth-first in declaration order. That order is
// the order of path segments, of template wildcards and of flattened instance
// values, so reordering a declaration moves every stored result.
//
//	config := schema.MustNew("Config", []schema.Field{
//		{Name: "read_length", Type: paramtype.Integer()},
//		{Name: "method_name", Type: paramtype.String()},
//	})
//	recall := schema.MustNew("Recall", []schema.Field{
//		{Name: "config", Type: schema.Nested(config)},
//		{Name: "file", Type: paramtype.Enum("recall")},
//	}, schema.WithFileEnding(".txt"))
//
//	recall.Parameters()        // [read_length method_name file]
//	recall.MinimalParameters() // [read_length method_name]
package schema
