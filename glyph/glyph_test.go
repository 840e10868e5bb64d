package glyph

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/lixenwraith/gthrower/config"
	"github.com/lixenwraith/gthrower/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVariant(t *testing.T) {
	tests := []struct {
		in      string
		want    Variant
		wantErr bool
	}{
		{"G", VariantG, false},
		{"g", VariantG, false},
		{"E", VariantE, false},
		{"Q", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVariant(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownVariant)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustParse(t, got.String()))
		})
	}
}

func mustParse(t *testing.T, s string) Variant {
	t.Helper()
	v, err := ParseVariant(s)
	require.NoError(t, err)
	return v
}

func TestSpec_OutOfRange(t *testing.T) {
	_, err := Variant(42).Spec(cp.Vector{}, 1)
	assert.ErrorIs(t, err, ErrUnknownVariant)
	assert.Equal(t, "Variant(42)", Variant(42).String())
}

func TestSpec_GRadius(t *testing.T) {
	spec, err := VariantG.Spec(cp.Vector{X: 100, Y: 620}, 0.8)
	require.NoError(t, err)
	assert.InDelta(t, 30.4, spec.ApproxRadius, 1e-9)
	assert.Len(t, spec.Parts, 5)
	assert.Equal(t, cp.Vector{X: 100, Y: 620}, spec.Position)
}

func TestSpec_EParts(t *testing.T) {
	spec, err := VariantE.Spec(cp.Vector{}, 1)
	require.NoError(t, err)
	require.Len(t, spec.Parts, 4)

	// Stem spans the full letter height
	stem := spec.Parts[0]
	assert.InDelta(t, 50, stem.T-stem.B, 1e-9)
	assert.InDelta(t, 32, spec.ApproxRadius, 1e-9)
}

func TestBuild_AddsToWorld(t *testing.T) {
	cfg := config.Default()
	world, err := physics.NewWorld(cfg.Physics, cfg.Canvas)
	require.NoError(t, err)

	for _, v := range Variants() {
		spec, err := v.Spec(cp.Vector{X: 100, Y: 620}, 0.8)
		require.NoError(t, err)

		obj := Build(spec)
		require.NoError(t, world.Add(obj))

		assert.Equal(t, physics.KindMovable, obj.Tag().Kind)
		assert.Equal(t, v.String(), obj.Tag().Label)
		assert.Equal(t, spec.ApproxRadius, obj.Radius())
		assert.Greater(t, obj.Body.Mass(), 0.0)
		assert.InDelta(t, 100, obj.Position().X, 1e-9)
		assert.InDelta(t, 620, obj.Position().Y, 1e-9)
	}
}
