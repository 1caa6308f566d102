package inspector

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rive-app/rivecore/registry"
	"github.com/rive-app/rivecore/riv"
	"github.com/rive-app/rivecore/scene"
)

func sampleDocument(t *testing.T) *riv.Document {
	t.Helper()
	artboard := scene.Object{Type: registry.Artboard, Name: "Main"}
	artboard.Set(registry.PropWidth, scene.Float(100))
	artboard.Set(registry.PropHeight, scene.Float(100))
	artboard.Set(registry.PropName, scene.String("Main"))

	node := scene.Object{Type: registry.Node, Name: "n"}
	node.Set(registry.PropParentID, scene.Uint(0))
	node.Set(registry.PropVisible, scene.Bool(true))

	data, err := riv.Encode(scene.ObjectList{{Type: registry.Backboard}, artboard, node}, riv.Options{Deterministic: true})
	require.NoError(t, err)
	doc, err := riv.Parse(data)
	require.NoError(t, err)
	return doc
}

func TestDumpJSONIncludesObjects(t *testing.T) {
	doc := sampleDocument(t)
	out, err := Dump(doc, FormatJSON, Filter{})
	require.NoError(t, err)
	require.Contains(t, out, `"class": "node"`)
	require.Contains(t, out, `"class": "artboard"`)
}

func TestDumpYAMLIncludesObjects(t *testing.T) {
	doc := sampleDocument(t)
	out, err := Dump(doc, FormatYAML, Filter{})
	require.NoError(t, err)
	require.True(t, strings.Contains(out, "class: node") || strings.Contains(out, "class: artboard"))
}

func TestDumpFilterByTypeKey(t *testing.T) {
	doc := sampleDocument(t)
	tk := registry.Node
	out, err := Dump(doc, FormatJSON, Filter{TypeKey: &tk})
	require.NoError(t, err)
	require.Contains(t, out, `"class": "node"`)
	require.NotContains(t, out, `"class": "artboard"`)
}

func TestDumpFilterByObjectIndex(t *testing.T) {
	doc := sampleDocument(t)
	idx := 0
	out, err := Dump(doc, FormatJSON, Filter{ObjectIndex: &idx})
	require.NoError(t, err)
	require.Contains(t, out, `"class": "backboard"`)
	require.NotContains(t, out, `"class": "node"`)
}

func TestDumpFilterByPropertyKey(t *testing.T) {
	doc := sampleDocument(t)
	pk := registry.PropVisible
	out, err := Dump(doc, FormatJSON, Filter{PropertyKey: &pk})
	require.NoError(t, err)
	require.Contains(t, out, `"class": "node"`)
	require.NotContains(t, out, fmt.Sprintf(`"%d"`, registry.PropParentID))
}

func TestDumpRawByteBoolRendersAsBool(t *testing.T) {
	doc := sampleDocument(t)
	out, err := Dump(doc, FormatJSON, Filter{})
	require.NoError(t, err)
	require.Contains(t, out, "true")
}
