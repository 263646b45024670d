package resultstore

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/ivargr/snakehelp/internal/ctxlog"
	"github.com/ivargr/snakehelp/internal/instance"
	"github.com/ivargr/snakehelp/internal/paramtype"
	"github.com/ivargr/snakehelp/internal/pathcodec"
	"github.com/ivargr/snakehelp/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

var scoreSchema = schema.MustNew("Score", []schema.Field{
	{Name: "seed", Type: paramtype.Integer()},
	{Name: "method", Type: paramtype.String()},
}, schema.WithFileName("score"), schema.WithFileEnding(".txt"))

func scoreInstance(t *testing.T, seed int, method string) *instance.Instance {
	t.Helper()
	inst, err := instance.FromFlatParams(scoreSchema, map[string]cty.Value{
		"seed":   cty.NumberIntVal(int64(seed)),
		"method": cty.StringVal(method),
	})
	require.NoError(t, err)
	return inst
}

func testContext() context.Context {
	return ctxlog.WithLogger(context.Background(), ctxlog.Discard())
}

func TestStoreFetch_Disk(t *testing.T) {
	dir := t.TempDir()
	store := New(pathcodec.New(filepath.ToSlash(dir)))
	ctx := testContext()
	inst := scoreInstance(t, 1, "bwa")

	require.NoError(t, store.Store(ctx, inst, cty.NumberFloatVal(0.95)))

	onDisk, err := os.ReadFile(filepath.Join(dir, "1", "bwa", "score.txt"))
	require.NoError(t, err)
	assert.Equal(t, "0.95", string(onDisk))

	got, err := store.Fetch(ctx, inst)
	require.NoError(t, err)
	assert.True(t, got.Type().Equals(cty.Number))
	assert.True(t, got.RawEquals(cty.MustParseNumberVal("0.95")), "got %#v", got)

	require.NoError(t, store.Store(ctx, inst, cty.StringVal("overwritten")), "writes replace earlier results")
	got, err = store.Fetch(ctx, inst)
	require.NoError(t, err)
	assert.Equal(t, cty.StringVal("overwritten"), got)
}

func TestFetch_NotFound(t *testing.T) {
	for name, store := range map[string]*Store{
		"disk":   New(pathcodec.New(filepath.ToSlash(t.TempDir()))),
		"memory": New(pathcodec.New("data"), WithBackend(NewMemory())),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := store.Fetch(testContext(), scoreInstance(t, 2, "minimap2"))
			var notFound *NotFoundError
			require.ErrorAs(t, err, &notFound)
			assert.Contains(t, notFound.Path, "2/minimap2/score.txt")
			assert.True(t, errors.Is(err, fs.ErrNotExist))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  cty.Value
	}{
		{name: "integer", value: 42, want: cty.NumberIntVal(42)},
		{name: "negative float", value: -1.5, want: cty.NumberFloatVal(-1.5)},
		{name: "text", value: "bwa mem", want: cty.StringVal("bwa mem")},
		{name: "numeric text becomes a number", value: "3.25", want: cty.NumberFloatVal(3.25)},
		{name: "surrounding whitespace is kept for text", value: " x\n", want: cty.StringVal(" x\n")},
		{name: "empty", value: "", want: cty.StringVal("")},
		{name: "infinity stays text", value: "Inf", want: cty.StringVal("Inf")},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			store := New(pathcodec.New(""), WithBackend(NewMemory()))
			ctx := testContext()
			inst := scoreInstance(t, 7, "bwa")

			require.NoError(t, store.StoreValue(ctx, inst, tt.value))
			got, err := store.Fetch(ctx, inst)
			require.NoError(t, err)
			assert.True(t, tt.want.Equals(got).True(), "want %#v, got %#v", tt.want, got)
		})
	}
}

func TestStore_DistinctInstancesDistinctPaths(t *testing.T) {
	mem := NewMemory()
	store := New(pathcodec.New("results"), WithBackend(mem))
	ctx := testContext()

	require.NoError(t, store.StoreValue(ctx, scoreInstance(t, 1, "bwa"), 1))
	require.NoError(t, store.StoreValue(ctx, scoreInstance(t, 1, "minimap2"), 2))
	require.NoError(t, store.StoreValue(ctx, scoreInstance(t, 2, "bwa"), 3))
	assert.Equal(t, 3, mem.Len())

	path, err := store.Path(scoreInstance(t, 2, "bwa"))
	require.NoError(t, err)
	assert.Equal(t, "results/2/bwa/score.txt", path)
}

func TestStore_RejectsNull(t *testing.T) {
	store := New(pathcodec.New(""), WithBackend(NewMemory()))
	err := store.Store(testContext(), scoreInstance(t, 1, "bwa"), cty.NullVal(cty.Number))
	require.Error(t, err)
}

func TestEncodeDecode(t *testing.T) {
	blob, err := Encode(cty.ListVal([]cty.Value{cty.NumberIntVal(1), cty.NumberIntVal(2)}))
	require.NoError(t, err)
	assert.Equal(t, "[1,2]", string(blob))
	assert.Equal(t, cty.StringVal("[1,2]"), Decode(blob))

	blob, err = Encode(cty.True)
	require.NoError(t, err)
	assert.Equal(t, "true", string(blob))

	blob, err = Encode(cty.NumberIntVal(1000000))
	require.NoError(t, err)
	assert.Equal(t, "1000000", string(blob))

	assert.True(t, Decode([]byte("12\n")).RawEquals(cty.NumberIntVal(12)))
}
