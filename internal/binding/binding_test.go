package binding

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestProduct(t *testing.T) {
	got := Product([][]string{{"1", "2", "3"}, {"4", "5"}})
	want := [][]string{
		{"1", "4"}, {"1", "5"},
		{"2", "4"}, {"2", "5"},
		{"3", "4"}, {"3", "5"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Product() mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, [][]int{{}}, Product[int](nil))
	assert.Empty(t, Product([][]int{{1, 2}, {}}))
}

func TestBindings_Order(t *testing.T) {
	b := New().
		Set("read_length", cty.NumberIntVal(50), cty.NumberIntVal(100), cty.NumberIntVal(150)).
		Set("method_name", cty.StringVal("bwa"), cty.StringVal("minimap2"))

	assert.Equal(t, []string{"read_length", "method_name"}, b.Names())
	assert.Equal(t, 6, b.Cardinality())

	b.Set("read_length", cty.NumberIntVal(1))
	assert.Equal(t, []string{"read_length", "method_name"}, b.Names(), "rebinding keeps position")
	assert.Equal(t, 2, b.Cardinality())
}

func TestBindings_Combinations(t *testing.T) {
	b := New()
	require.NoError(t, b.SetAny("a", 1, 2))
	require.NoError(t, b.SetAny("b", "x", "y", "z"))

	combos := b.Combinations()
	require.Len(t, combos, 6)

	seen := make(map[string]struct{})
	for _, c := range combos {
		key := c["a"].AsBigFloat().String() + "/" + c["b"].AsString()
		_, dup := seen[key]
		require.False(t, dup, "duplicate combination %s", key)
		seen[key] = struct{}{}
	}
	assert.Equal(t, "1", combos[0]["a"].AsBigFloat().String())
	assert.Equal(t, "x", combos[0]["b"].AsString())
	assert.Equal(t, "y", combos[1]["b"].AsString())

	assert.Len(t, New().Combinations(), 1, "no axes is one empty combination")
}

func TestParse(t *testing.T) {
	b, err := Parse([]string{"param1=1,2,3", "param2 = 4"})
	require.NoError(t, err)
	assert.Equal(t, []string{"param1", "param2"}, b.Names())

	vals, ok := b.Values("param1")
	require.True(t, ok)
	require.Len(t, vals, 3)
	assert.Equal(t, "3", vals[2].AsString())
	assert.Equal(t, "param1=1,2,3 param2=4", b.String())

	for _, bad := range [][]string{{"novalue"}, {"=1"}, {"a=1,,2"}, {"a=1", "a=2"}} {
		_, err := Parse(bad)
		require.Error(t, err, "%v should fail", bad)
	}
}

func TestFromStrings(t *testing.T) {
	b := FromStrings([]string{"seed", "name", "absent"}, map[string]string{"name": "test", "seed": "1", "other": "x"})
	assert.Equal(t, []string{"seed", "name"}, b.Names())
}
