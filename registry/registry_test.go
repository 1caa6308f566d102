package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaselineKeysExcludedFromEverythingElse(t *testing.T) {
	for key := range BaselineKeys {
		assert.False(t, IsRawByteBool(key), "baseline key %d must not also be a raw-byte-bool key", key)
	}
}

func TestRawByteBoolSetMatchesReferenceMinimum(t *testing.T) {
	for _, k := range []PropertyKey{41, 62, 141, 164, 376} {
		assert.True(t, IsRawByteBool(k), "key %d must be in the raw-byte-bool set", k)
	}
}

func TestEveryBaselineKeyIsClassified(t *testing.T) {
	for key := range BaselineKeys {
		_, ok := BackingTypeOf(key)
		require.True(t, ok, "baseline key %d must have a backing type", key)
	}
}

func TestArtboardEmissionOrderFixed(t *testing.T) {
	order := EmissionOrder[Artboard]
	require.Equal(t, []PropertyKey{PropWidth, PropHeight, PropName}, order)
	assert.True(t, AlwaysEmit[Artboard][PropWidth])
	assert.True(t, AlwaysEmit[Artboard][PropHeight])
	assert.True(t, AlwaysEmit[Artboard][PropName])
}

func TestLinearAnimationNeverEmitsQuantize(t *testing.T) {
	assert.True(t, NeverEmit[LinearAnimation][PropQuantize])
	_, classified := BackingTypeOf(PropQuantize)
	assert.True(t, classified, "quantize must still be classified even though it is never emitted")
}

func TestClassNameRoundTrip(t *testing.T) {
	for typeKey, name := range classNames {
		got, ok := TypeKeyOf(name)
		require.True(t, ok, "class name %q must resolve back to a type key", name)
		assert.Equal(t, typeKey, got)
	}
}

func TestUnknownClassName(t *testing.T) {
	_, ok := TypeKeyOf("not_a_real_class")
	assert.False(t, ok)
}
