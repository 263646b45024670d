package schema

import (
	"testing"

	"github.com/ivargr/snakehelp/internal/paramtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func ptr(v cty.Value) *cty.Value { return &v }

func fixtures(t *testing.T) (myParams, myParams2, mapping *Schema) {
	t.Helper()
	myParams = MustNew("MyParams", []Field{
		{Name: "seed", Type: paramtype.Integer()},
		{Name: "name", Type: paramtype.String()},
		{Name: "ratio", Type: paramtype.Float()},
	})
	myParams2 = MustNew("MyParams2", []Field{
		{Name: "param1", Type: Nested(myParams)},
		{Name: "some_other_param", Type: paramtype.String()},
	})
	mapping = MustNew("MappingRecall", []Field{
		{Name: "params", Type: Nested(myParams2)},
		{Name: "accuracy_type", Type: paramtype.Enum("recall")},
	})
	return myParams, myParams2, mapping
}

func TestParameters(t *testing.T) {
	myParams, myParams2, mapping := fixtures(t)

	assert.Equal(t, []string{"seed", "name", "ratio"}, myParams.Parameters())
	assert.Equal(t, []string{"seed", "name", "ratio", "some_other_param"}, myParams2.Parameters())
	assert.Equal(t, []string{"seed", "name", "ratio", "some_other_param", "accuracy_type"}, mapping.Parameters())

	withLiteral := MustNew("MyParams3", []Field{
		{Name: "param1", Type: paramtype.Enum("test", "test2")},
		{Name: "param2", Type: paramtype.String()},
	})
	assert.Equal(t, []string{"param1", "param2"}, withLiteral.Parameters())
	assert.Equal(t, []string{"param1", "param2"}, withLiteral.MinimalParameters())
}

func TestParametersMatchFlatten(t *testing.T) {
	_, _, mapping := fixtures(t)

	fields := mapping.Flatten(false)
	params := mapping.Parameters()
	require.Len(t, params, len(fields))
	for i, f := range fields {
		assert.Equal(t, f.Name, params[i])
		assert.NotEqual(t, paramtype.KindNested, f.Type.Kind(), "flattened fields must be leaves")
	}
}

func TestMinimalParameters(t *testing.T) {
	inner := MustNew("Inner", []Field{
		{Name: "kind", Type: paramtype.Enum("fixed")},
		{Name: "size", Type: paramtype.Integer()},
	})
	outer := MustNew("Outer", []Field{
		{Name: "inner", Type: Nested(inner)},
		{Name: "file", Type: paramtype.Enum("file.npz")},
		{Name: "mode", Type: paramtype.Enum("a", "b")},
	})

	assert.Equal(t, []string{"kind", "size", "file", "mode"}, outer.Parameters())
	assert.Equal(t, []string{"size", "mode"}, outer.MinimalParameters())

	t.Run("children minimality is independent", func(t *testing.T) {
		fields := outer.FlattenWith(FlattenOptions{Minimal: false, MinimalChildren: true})
		assert.Equal(t, []string{"size", "file", "mode"}, names(fields))

		fields = outer.FlattenWith(FlattenOptions{Minimal: true, MinimalChildren: false})
		assert.Equal(t, []string{"kind", "size", "mode"}, names(fields))
	})
}

func TestFlattenIsRepeatable(t *testing.T) {
	_, _, mapping := fixtures(t)
	assert.Equal(t, mapping.Parameters(), mapping.Parameters())
	assert.Equal(t, mapping.Flatten(true), mapping.Flatten(true))
}

func TestUnionFieldStaysLeaf(t *testing.T) {
	a := MustNew("A", []Field{{Name: "x", Type: paramtype.Integer()}})
	b := MustNew("B", []Field{{Name: "y", Type: paramtype.Integer()}})
	s := MustNew("S", []Field{
		{Name: "name", Type: paramtype.String()},
		{Name: "data", Type: paramtype.Union(Nested(a), Nested(b))},
	})

	assert.Equal(t, []string{"name", "data"}, s.Parameters())
	assert.Equal(t, []string{"name", "x", "y"}, s.ReachableParameters())

	members, err := UnionMembers(s.Flatten(false)[1].Type)
	require.NoError(t, err)
	assert.Equal(t, []*Schema{a, b}, members)
}

type foreignRef struct{}

func (foreignRef) SchemaName() string { return "Foreign" }

func TestNew_Errors(t *testing.T) {
	inner := MustNew("Inner", []Field{{Name: "size", Type: paramtype.Integer()}})

	testCases := []struct {
		name   string
		fields []Field
	}{
		{name: "zero type", fields: []Field{{Name: "a"}}},
		{name: "duplicate names", fields: []Field{{Name: "a", Type: paramtype.String()}, {Name: "a", Type: paramtype.Integer()}}},
		{name: "empty field name", fields: []Field{{Type: paramtype.String()}}},
		{name: "nested without flatten capability", fields: []Field{{Name: "a", Type: paramtype.Nested(foreignRef{})}}},
		{name: "mixed union", fields: []Field{{Name: "a", Type: paramtype.Union(paramtype.Integer(), Nested(inner))}}},
		{name: "invalid default", fields: []Field{{Name: "a", Type: paramtype.Integer(), Default: ptr(cty.StringVal("abc"))}}},
		{name: "nested default with unknown key", fields: []Field{{Name: "a", Type: Nested(inner), Default: ptr(cty.ObjectVal(map[string]cty.Value{"nope": cty.NumberIntVal(1)}))}}},
		{name: "nested default not an object", fields: []Field{{Name: "a", Type: Nested(inner), Default: ptr(cty.StringVal("x"))}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New("Broken", tc.fields)
			var schemaErr *paramtype.SchemaError
			require.ErrorAs(t, err, &schemaErr)
		})
	}

	_, err := New("", nil)
	require.Error(t, err)
	require.Panics(t, func() { MustNew("Broken", []Field{{Name: "a"}}) })
}

func TestNew_NormalizesDefaults(t *testing.T) {
	s := MustNew("Config", []Field{
		{Name: "read_length", Type: paramtype.Integer(), Default: ptr(cty.StringVal("150"))},
		{Name: "method_name", Type: paramtype.String(), Default: ptr(cty.StringVal("bwa"))},
	}, WithFileName("result"), WithFileEnding(".txt"))

	f, ok := s.Field("read_length")
	require.True(t, ok)
	require.True(t, f.HasDefault())
	assert.True(t, f.Default.RawEquals(cty.NumberIntVal(150)))
	assert.Equal(t, "result", s.FileName())
	assert.Equal(t, ".txt", s.FileEnding())

	_, ok = s.Field("missing")
	assert.False(t, ok)
}

func TestCompatible(t *testing.T) {
	config := MustNew("Config", []Field{
		{Name: "read_length", Type: paramtype.Integer()},
		{Name: "method_name", Type: paramtype.String()},
	})
	precision := MustNew("Precision", []Field{
		{Name: "config", Type: Nested(config)},
		{Name: "file", Type: paramtype.Enum("precision")},
	})
	recall := MustNew("Recall", []Field{
		{Name: "config", Type: Nested(config)},
		{Name: "file", Type: paramtype.Enum("recall")},
	})
	require.NoError(t, Compatible(precision, recall))
	require.NoError(t, CheckCompatible(precision, recall, precision))

	ab := MustNew("AB", []Field{{Name: "a", Type: paramtype.String()}, {Name: "b", Type: paramtype.String()}})
	xyz := MustNew("XYZ", []Field{
		{Name: "x", Type: paramtype.String()},
		{Name: "y", Type: paramtype.String()},
		{Name: "z", Type: paramtype.String()},
	})
	err := CheckCompatible(ab, xyz)
	var compatErr *CompatibilityError
	require.ErrorAs(t, err, &compatErr)
	assert.Equal(t, []string{"a", "b"}, compatErr.LeftParams)
	assert.Equal(t, []string{"x", "y", "z"}, compatErr.RightParams)
}
