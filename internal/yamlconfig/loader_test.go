package yamlconfig

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ivargr/snakehelp/internal/config"
	"github.com/ivargr/snakehelp/internal/ctxlog"
	"github.com/ivargr/snakehelp/internal/paramtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

const accuracyYAML = `
parameters:
  - name: Config
    params:
      - name: read_length
        type: int
        default: 150
      - name: method_name
        type: enum("bwa", "minimap2")
        default: bwa
        description: Mapper to run.
  - name: Precision
    file_ending: .txt
    params:
      - name: config
        type: Config
        default:
          read_length: 100
      - name: ratio
        type: float
      - name: file
        type: enum("precision")
        default: precision
sweeps:
  - name: accuracy
    targets: [Precision]
    axes:
      - name: read_length
        values: [50, 100, 150]
      - name: method_name
        values: minimap2
`

func testContext() context.Context {
	return ctxlog.WithLogger(context.Background(), ctxlog.Discard())
}

func TestLoadSource(t *testing.T) {
	model, err := NewLoader().LoadSource(testContext(), "accuracy.yaml", []byte(accuracyYAML))
	require.NoError(t, err)

	require.Len(t, model.Parameters, 2)
	cfg := model.Parameters[0]
	assert.Equal(t, "Config", cfg.Name)
	require.Len(t, cfg.Params, 2)
	assert.Equal(t, paramtype.KindInteger, cfg.Params[0].Type.Kind)
	require.NotNil(t, cfg.Params[0].Default)
	assert.True(t, cfg.Params[0].Default.RawEquals(cty.NumberIntVal(150)))
	assert.Equal(t, config.TypeExpr{Kind: paramtype.KindEnum, Variants: []string{"bwa", "minimap2"}}, cfg.Params[1].Type)
	assert.Equal(t, cty.StringVal("bwa"), *cfg.Params[1].Default)
	assert.Equal(t, "Mapper to run.", cfg.Params[1].Description)

	precision := model.Parameters[1]
	assert.Equal(t, ".txt", precision.FileEnding)
	assert.Equal(t, "Config", precision.Params[0].Type.Ref)
	require.NotNil(t, precision.Params[0].Default)
	rl := precision.Params[0].Default.GetAttr("read_length")
	assert.True(t, rl.RawEquals(cty.NumberIntVal(100)))
	assert.Nil(t, precision.Params[1].Default)

	require.Len(t, model.Sweeps, 1)
	sweep := model.Sweeps[0]
	assert.Equal(t, []string{"Precision"}, sweep.Targets)
	require.Len(t, sweep.Axes, 2)
	assert.Len(t, sweep.Axes[0].Values, 3)
	assert.Equal(t, []cty.Value{cty.StringVal("minimap2")}, sweep.Axes[1].Values)
}

func TestLoadSource_Empty(t *testing.T) {
	model, err := NewLoader().LoadSource(testContext(), "empty.yaml", nil)
	require.NoError(t, err)
	assert.Empty(t, model.Parameters)
	assert.Empty(t, model.Sweeps)
}

func TestLoadSource_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{name: "unknown key", src: "parameter: []", wantErr: "failed to decode YAML file"},
		{name: "missing name", src: "parameters:\n  - params: []", wantErr: "without a name"},
		{name: "missing type", src: "parameters:\n  - name: A\n    params:\n      - name: x", wantErr: "type is required"},
		{name: "bad type", src: "parameters:\n  - name: A\n    params:\n      - name: x\n        type: list(int)", wantErr: "unknown type constructor"},
		{name: "missing values", src: "sweeps:\n  - name: s\n    targets: [A]\n    axes:\n      - name: x", wantErr: "values are required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader().LoadSource(testContext(), "bad.yaml", []byte(tt.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_Directory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("parameters:\n  - name: A\n    params:\n      - name: x\n        type: int\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yml"), []byte("parameters:\n  - name: B\n    params:\n      - name: a\n        type: A\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.hcl"), []byte("ignored"), 0o644))

	model, err := NewLoader().Load(testContext(), dir)
	require.NoError(t, err)
	require.Len(t, model.Parameters, 2)
	assert.Equal(t, "A", model.Parameters[0].Name)
	assert.Equal(t, "B", model.Parameters[1].Name)
}
