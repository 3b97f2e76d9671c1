package material

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMaterial_Defaults(t *testing.T) {
	m := NewMaterial()
	assert.Equal(t, KindStandard, m.Kind())
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, m.Color())
	assert.False(t, m.Transparent())
	assert.True(t, m.ToneMapped())
	assert.Equal(t, float32(1), m.Roughness())
	assert.Empty(t, m.Texture())
}

func TestMaterial_Uniform(t *testing.T) {
	cases := []struct {
		name      string
		opts      []MaterialBuilderOption
		wantAlpha float32
		wantFlags uint32
	}{
		{
			name:      "standard body",
			opts:      []MaterialBuilderOption{WithColor("#1a1a1a"), WithRoughness(0.2), WithMetalness(0.8)},
			wantAlpha: 1,
			wantFlags: FlagLit | FlagToneMapped,
		},
		{
			name:      "basic blob",
			opts:      []MaterialBuilderOption{WithBasic(), WithColor("#7c3aed"), WithOpacity(0.15), WithToneMapped(false)},
			wantAlpha: 0.15,
			wantFlags: 0,
		},
		{
			name:      "textured screen",
			opts:      []MaterialBuilderOption{WithBasic(), WithTexture("screen"), WithToneMapped(false)},
			wantAlpha: 1,
			wantFlags: FlagTextured,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u := NewMaterial(tc.opts...).Uniform()
			assert.Equal(t, tc.wantAlpha, u.Color[3])
			assert.Equal(t, tc.wantFlags, u.Flags)
		})
	}
}

func TestMaterial_OpacityIgnoredWhenOpaque(t *testing.T) {
	m := NewMaterial()
	m.SetOpacity(0.3)
	assert.Equal(t, float32(1), m.Uniform().Color[3])
}

func TestGPUMaterial_Marshal(t *testing.T) {
	m := NewMaterial(WithName("chip"), WithColor("#3BAFFF"), WithEmissive("#3BAFFF", 0.8), WithRoughness(0.4), WithMetalness(0.9))
	assert.Equal(t, "chip", m.Name())
	u := m.Uniform()
	require.Equal(t, 48, u.Size())

	buf := u.Marshal()
	require.Len(t, buf, 48)
	assert.Equal(t, float32(1), math.Float32frombits(binary.LittleEndian.Uint32(buf[8:])))
	assert.Equal(t, float32(0.8), math.Float32frombits(binary.LittleEndian.Uint32(buf[28:])))
	assert.Equal(t, float32(0.9), math.Float32frombits(binary.LittleEndian.Uint32(buf[36:])))
	assert.Equal(t, FlagLit|FlagToneMapped, binary.LittleEndian.Uint32(buf[40:]))
}
