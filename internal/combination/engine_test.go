package combination

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ivargr/snakehelp/internal/binding"
	"github.com/ivargr/snakehelp/internal/ctxlog"
	"github.com/ivargr/snakehelp/internal/instance"
	"github.com/ivargr/snakehelp/internal/paramtype"
	"github.com/ivargr/snakehelp/internal/pathcodec"
	"github.com/ivargr/snakehelp/internal/resultstore"
	"github.com/ivargr/snakehelp/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func ptr(v cty.Value) *cty.Value { return &v }

var (
	configSchema = schema.MustNew("Config", []schema.Field{
		{Name: "param1", Type: paramtype.String(), Default: ptr(cty.StringVal("hg38"))},
		{Name: "read_length", Type: paramtype.Integer(), Default: ptr(cty.NumberIntVal(150))},
		{Name: "method_name", Type: paramtype.String(), Default: ptr(cty.StringVal("bwa"))},
	})
	precisionSchema = schema.MustNew("Precision", []schema.Field{
		{Name: "config", Type: schema.Nested(configSchema), Default: ptr(cty.EmptyObjectVal)},
		{Name: "file", Type: paramtype.Enum("precision"), Default: ptr(cty.StringVal("precision"))},
	}, schema.WithFileEnding(".txt"))
	recallSchema = schema.MustNew("Recall", []schema.Field{
		{Name: "config", Type: schema.Nested(configSchema)},
		{Name: "file", Type: paramtype.Enum("recall"), Default: ptr(cty.StringVal("recall"))},
	}, schema.WithFileEnding(".txt"))
)

func sweep(t *testing.T) *binding.Bindings {
	t.Helper()
	b := binding.New()
	require.NoError(t, b.SetAny("read_length", 50, 100, 150))
	require.NoError(t, b.SetAny("method_name", "bwa", "minimap2"))
	return b
}

func testContext() context.Context {
	return ctxlog.WithLogger(context.Background(), ctxlog.Discard())
}

func TestNew_RejectsInvalidTargets(t *testing.T) {
	_, err := New()
	var schemaErr *paramtype.SchemaError
	require.ErrorAs(t, err, &schemaErr)

	_, err = New(precisionSchema, nil)
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "target 1", schemaErr.Subject)
}

func TestCombinations_CrossProduct(t *testing.T) {
	e, err := New(precisionSchema, recallSchema)
	require.NoError(t, err)

	rows, err := e.Combinations(sweep(t))
	require.NoError(t, err)
	require.Len(t, rows, 6)

	seen := make(map[string]bool)
	for _, row := range rows {
		require.Len(t, row, 2)
		assert.Same(t, precisionSchema, row[0].Schema())
		assert.Same(t, recallSchema, row[1].Schema())

		p, _ := row[0].Get("read_length")
		r, _ := row[1].Get("read_length")
		assert.True(t, p.Equals(r).True(), "both instances of a row share axis values")

		key := row[0].String()
		assert.False(t, seen[key], "duplicate row %s", key)
		seen[key] = true
	}

	first, _ := rows[0][0].Get("read_length")
	last, _ := rows[5][0].Get("method_name")
	assert.True(t, first.RawEquals(cty.NumberIntVal(50)))
	assert.Equal(t, cty.StringVal("minimap2"), last)
}

func TestInstances_ContainsExpectedObject(t *testing.T) {
	e, err := New(precisionSchema, recallSchema)
	require.NoError(t, err)

	objects, err := e.Instances(sweep(t))
	require.NoError(t, err)
	require.Len(t, objects, 12)

	cfg := instance.MustFromFlatParams(configSchema, map[string]cty.Value{
		"read_length": cty.NumberIntVal(100),
		"method_name": cty.StringVal("bwa"),
	})
	want := instance.MustNew(precisionSchema, map[string]instance.Value{"config": instance.Sub(cfg)})

	found := false
	for _, o := range objects {
		if o.Equal(want) {
			found = true
			break
		}
	}
	assert.True(t, found, "expected %s among the sweep", want)
}

func TestCombinations_Errors(t *testing.T) {
	e, err := New(precisionSchema)
	require.NoError(t, err)

	t.Run("unknown axis", func(t *testing.T) {
		b := binding.New().Set("coverage", cty.NumberIntVal(10))
		_, err := e.Combinations(b)
		var valueErr *paramtype.ValueError
		require.ErrorAs(t, err, &valueErr)
		assert.Equal(t, "coverage", valueErr.Field)
	})

	t.Run("invalid axis value fails the batch", func(t *testing.T) {
		b := binding.New().Set("read_length", cty.NumberIntVal(100), cty.StringVal("long"))
		_, err := e.Combinations(b)
		var valueErr *paramtype.ValueError
		require.ErrorAs(t, err, &valueErr)
	})

	t.Run("empty axis yields no rows", func(t *testing.T) {
		rows, err := e.Combinations(binding.New().Set("read_length"))
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("no axes yields the default row", func(t *testing.T) {
		rows, err := e.Combinations(nil)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "Precision(param1=hg38, read_length=150, method_name=bwa, file=precision)", rows[0][0].String())
	})
}

func TestCombinations_AxesRestrictedPerTarget(t *testing.T) {
	seeded := schema.MustNew("Seeded", []schema.Field{
		{Name: "seed", Type: paramtype.Integer()},
		{Name: "read_length", Type: paramtype.Integer()},
	})
	e, err := New(seeded, precisionSchema)
	require.NoError(t, err)

	b := binding.New()
	require.NoError(t, b.SetAny("seed", 1, 2))
	require.NoError(t, b.SetAny("read_length", 75))

	rows, err := e.Combinations(b)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	v, ok := rows[1][1].Get("read_length")
	require.True(t, ok)
	assert.True(t, v.RawEquals(cty.NumberIntVal(75)))
}

func TestResultsTable(t *testing.T) {
	ctx := testContext()
	store := resultstore.New(pathcodec.New("results"), resultstore.WithBackend(resultstore.NewMemory()))
	e, err := New(precisionSchema, recallSchema)
	require.NoError(t, err)

	b := binding.New()
	require.NoError(t, b.SetAny("read_length", 50, 100))

	rows, err := e.Combinations(b)
	require.NoError(t, err)
	scores := []float64{0.9, 0.91}
	for i, row := range rows {
		require.NoError(t, store.StoreValue(ctx, row[0], scores[i]))
		require.NoError(t, store.StoreValue(ctx, row[1], "n/a"))
	}

	table, err := e.ResultsTable(ctx, b, store)
	require.NoError(t, err)
	assert.Equal(t, []string{"param1", "read_length", "method_name", "file", "Precision", "Recall"}, table.Columns)
	require.Equal(t, 2, table.Len())

	precision, ok := table.Column("Precision")
	require.True(t, ok)
	assert.True(t, precision[1].Equals(cty.MustParseNumberVal("0.91")).True())

	var buf bytes.Buffer
	require.NoError(t, table.Write(&buf, "csv"))
	want := "param1,read_length,method_name,file,Precision,Recall\n" +
		"hg38,50,bwa,precision,0.9,n/a\n" +
		"hg38,100,bwa,precision,0.91,n/a\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("csv mismatch (-want +got):\n%s", diff)
	}
}

func TestResultsTable_MissingResultFailsWholeTable(t *testing.T) {
	ctx := testContext()
	store := resultstore.New(pathcodec.New(""), resultstore.WithBackend(resultstore.NewMemory()))
	e, err := New(precisionSchema)
	require.NoError(t, err)

	b := binding.New()
	require.NoError(t, b.SetAny("read_length", 50, 100))
	rows, err := e.Combinations(b)
	require.NoError(t, err)
	require.NoError(t, store.StoreValue(ctx, rows[0][0], 1))

	table, err := e.ResultsTable(ctx, b, store)
	require.Error(t, err)
	assert.Nil(t, table)
	var notFound *resultstore.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestResultsTable_IncompatibleSchemas(t *testing.T) {
	ab := schema.MustNew("AB", []schema.Field{
		{Name: "a", Type: paramtype.Integer()},
		{Name: "b", Type: paramtype.Integer()},
	})
	xyz := schema.MustNew("XYZ", []schema.Field{
		{Name: "x", Type: paramtype.Integer()},
		{Name: "y", Type: paramtype.Integer()},
		{Name: "z", Type: paramtype.Integer()},
	})
	e, err := New(ab, xyz)
	require.NoError(t, err)

	b := binding.New()
	require.NoError(t, b.SetAny("a", 1))
	_, err = e.ResultsTable(testContext(), b, resultstore.New(pathcodec.New(""), resultstore.WithBackend(resultstore.NewMemory())))
	var compat *schema.CompatibilityError
	require.ErrorAs(t, err, &compat)
	assert.Equal(t, []string{"a", "b"}, compat.LeftParams)
	assert.Equal(t, []string{"x", "y", "z"}, compat.RightParams)
}
