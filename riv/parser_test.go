package riv

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rive-app/rivecore/registry"
	"github.com/rive-app/rivecore/scene"
)

func TestParseRejectsBadMagic(t *testing.T) {
	_, err := Parse([]byte("NOPE0000"))
	require.Error(t, err)
}

func TestParseRejectsTruncatedHeader(t *testing.T) {
	_, err := Parse([]byte("RI"))
	require.Error(t, err)
}

func TestParseRejectsUnsupportedMajorVersion(t *testing.T) {
	w := NewWriter()
	w.WriteRaw(Magic[:])
	w.WriteVaruint(99)
	w.WriteVaruint(0)
	w.WriteVaruint(0)
	_, err := Parse(w.Bytes())
	require.Error(t, err)
}

func TestParseRejectsUnknownPropertyKey(t *testing.T) {
	obj := scene.Object{Type: registry.Node}
	obj.Set(registry.PropertyKey(60000), scene.Uint(1))
	data, err := Encode(scene.ObjectList{obj}, Options{Deterministic: true})
	require.Error(t, err) // Encode itself already rejects this
	require.Nil(t, data)

	// Hand-build a file whose object carries a key that neither the
	// (empty) ToC nor the registry classifies.
	w := NewWriter()
	w.WriteRaw(Magic[:])
	w.WriteVaruint(MajorVersion)
	w.WriteVaruint(MinorVersion)
	w.WriteVaruint(0)                               // file_id
	w.WriteVaruint(uint64(registry.PropTerminator)) // empty ToC
	w.WriteVaruint(uint64(registry.Node))
	w.WriteVaruint(60000)
	w.WriteVaruint(1)
	w.WriteVaruint(uint64(registry.PropTerminator))

	_, err = Parse(w.Bytes())
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, ErrUnknownPropertyKey, pe.Kind)
}

func TestParseTrustsTocBackingTypeOverRegistry(t *testing.T) {
	// PropWidth is BackingFloat in the registry. Declare it as
	// BackingUintOrBool in the ToC instead and encode its value as a
	// varuint: a decoder that consults the registry first would try to
	// read a float and misdecode or fail.
	w := NewWriter()
	w.WriteRaw(Magic[:])
	w.WriteVaruint(MajorVersion)
	w.WriteVaruint(MinorVersion)
	w.WriteVaruint(1) // file_id

	w.WriteVaruint(uint64(registry.PropWidth))
	w.WriteVaruint(uint64(registry.PropTerminator))
	var word [4]byte // backing bit 0 == BackingUintOrBool for the one key
	w.WriteRaw(word[:])

	w.WriteVaruint(uint64(registry.Node))
	w.WriteVaruint(uint64(registry.PropWidth))
	w.WriteVaruint(7)
	w.WriteVaruint(uint64(registry.PropTerminator))

	doc, err := Parse(w.Bytes())
	require.NoError(t, err)
	require.Len(t, doc.Objects, 1)
	p := doc.Objects[0].Props[0]
	require.Equal(t, registry.BackingUintOrBool, p.Value.Backing)
	require.Equal(t, uint64(7), p.Value.Uint)
}

func TestValidateNeverReturnsErrorOnGarbage(t *testing.T) {
	diags, err := Validate([]byte{1, 2, 3, 4, 5})
	require.NoError(t, err)
	require.NotEmpty(t, diags.Findings)
	require.Nil(t, diags.Document)
}

func TestValidateFlagsMinorVersionMismatch(t *testing.T) {
	w := NewWriter()
	w.WriteRaw(Magic[:])
	w.WriteVaruint(MajorVersion)
	w.WriteVaruint(MinorVersion + 1)
	w.WriteVaruint(0)
	w.WriteVaruint(uint64(registry.PropTerminator)) // empty ToC

	diags, err := Validate(w.Bytes())
	require.NoError(t, err)
	require.NotNil(t, diags.Document)

	var found bool
	for _, f := range diags.Findings {
		if f.Code == "minor_version_mismatch" {
			found = true
		}
	}
	require.True(t, found)
}

func TestValidateCleanFileHasNoFindings(t *testing.T) {
	artboard := scene.Object{Type: registry.Artboard, Name: "Main"}
	artboard.Set(registry.PropWidth, scene.Float(100))
	artboard.Set(registry.PropHeight, scene.Float(100))
	artboard.Set(registry.PropName, scene.String("Main"))
	objects := scene.ObjectList{{Type: registry.Backboard}, artboard}

	data, err := Encode(objects, Options{Deterministic: true})
	require.NoError(t, err)

	diags, err := Validate(data)
	require.NoError(t, err)
	require.Empty(t, diags.Findings)
}
