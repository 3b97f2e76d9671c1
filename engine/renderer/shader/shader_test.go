package shader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreProcessor_Include(t *testing.T) {
	pp := NewPreProcessor()
	out, err := pp.Process("//@nova:include camera\n  //@nova:include camera\nfn f() {}")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "struct CameraUniform"))
	assert.Contains(t, out, "fn f() {}")
	assert.NotContains(t, out, "@nova:")
}

func TestPreProcessor_Group(t *testing.T) {
	pp := NewPreProcessor()
	out, err := pp.Process("//@nova:include scene\n//@nova:group 0 2 uniform env scene")
	require.NoError(t, err)
	assert.Contains(t, out, "@group(0) @binding(2) var<uniform> env: SceneUniform;")
	assert.Equal(t, []Binding{{Group: 0, Binding: 2, Name: "env", Type: "SceneUniform"}}, pp.Bindings())

	_, err = pp.Process("fn f() {}")
	require.NoError(t, err)
	assert.Empty(t, pp.Bindings())
}

func TestPreProcessor_Errors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"unknown struct", "\n//@nova:include teapot", "line 2: unknown struct"},
		{"unknown directive", "//@nova:define X", "unknown directive"},
		{"empty", "//@nova:", "empty directive"},
		{"include arity", "//@nova:include", "include takes one"},
		{"group arity", "//@nova:group 0 0 uniform cam", "group takes 5"},
		{"group index", "//@nova:group x 0 uniform cam camera", "bad group index"},
		{"address space", "//@nova:group 0 0 private cam camera", "unknown address space"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPreProcessor().Process(tt.source)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNewShader_EntryPoints(t *testing.T) {
	src := `//@nova:include vertex
// @vertex fn decoy() {}
@vertex
fn vs_main(in: VertexInput) -> @builtin(position) vec4<f32> {
    return vec4<f32>(in.position, 1.0);
}

@fragment fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0);
}`
	s, err := NewShader("test", src)
	require.NoError(t, err)
	assert.Equal(t, "vs_main", s.VertexEntryPoint())
	assert.Equal(t, "fs_main", s.FragmentEntryPoint())
	assert.Equal(t, "test", s.Module().Label)
	assert.Contains(t, s.Module().WGSLDescriptor.Code, "struct VertexInput")
}

func TestNewShader_RequiresVertex(t *testing.T) {
	_, err := NewShader("frag-only", "@fragment fn fs() {}")
	assert.Error(t, err)
	assert.Panics(t, func() { MustShader("frag-only", "@fragment fn fs() {}") })
}
