package scene

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rive-app/rivecore/registry"
)

func mustParse(t *testing.T, js string) *Description {
	t.Helper()
	var d Description
	require.NoError(t, json.Unmarshal([]byte(js), &d))
	return &d
}

func TestBuildMinimalScene(t *testing.T) {
	desc := mustParse(t, `{
		"scene_format_version": 1,
		"artboard": {"name": "Main", "width": 400, "height": 400}
	}`)
	objects, err := Build(desc)
	require.NoError(t, err)
	require.Len(t, objects, 2)
	require.Equal(t, registry.Backboard, objects[0].Type)
	require.Equal(t, registry.Artboard, objects[1].Type)

	w, ok := objects[1].Get(registry.PropWidth)
	require.True(t, ok)
	require.Equal(t, float32(400), w.Float)
}

func TestBuildRedCircle(t *testing.T) {
	desc := mustParse(t, `{
		"scene_format_version": 1,
		"artboard": {
			"name": "Main", "width": 200, "height": 200,
			"children": [
				{"type": "shape", "name": "circle", "x": 100, "y": 100, "children": [
					{"type": "ellipse", "width": 80, "height": 80},
					{"type": "fill", "children": [
						{"type": "solid_color", "color": "#FF0000"}
					]}
				]}
			]
		}
	}`)
	objects, err := Build(desc)
	require.NoError(t, err)

	var foundSolid bool
	for _, o := range objects {
		if o.Type == registry.SolidColor {
			foundSolid = true
			c, ok := o.Get(registry.PropColor)
			require.True(t, ok)
			require.Equal(t, uint32(0xFFFF0000), c.Color)
		}
	}
	require.True(t, foundSolid)

	// Parent precedes child everywhere in the emitted order. objects[0]
	// is the Backboard, so objects[i+1] has artboard-local index i.
	var foundCircle bool
	for i, o := range objects[1:] {
		if o.Name == "circle" {
			foundCircle = true
		}
		if pid, ok := o.Get(registry.PropParentID); ok {
			require.Less(t, int(pid.AsUint()), i)
		}
	}
	require.True(t, foundCircle)
}

func TestBuildTrimPathMisplacedFails(t *testing.T) {
	desc := mustParse(t, `{
		"scene_format_version": 1,
		"artboard": {
			"name": "Main", "width": 100, "height": 100,
			"children": [
				{"type": "shape", "name": "s", "children": [
					{"type": "trim_path", "mode": "sequential"}
				]}
			]
		}
	}`)
	_, err := Build(desc)
	require.Error(t, err)
	be, ok := err.(*BuildError)
	require.True(t, ok)
	require.Equal(t, ErrParentTypeMismatch, be.Kind)
}

func TestBuildStateMachineSentinelOrder(t *testing.T) {
	desc := mustParse(t, `{
		"scene_format_version": 1,
		"artboard": {
			"name": "Main", "width": 100, "height": 100,
			"animations": [
				{"name": "idle", "fps": 60, "duration": 60}
			],
			"state_machines": [
				{
					"name": "SM",
					"layers": [
						{
							"name": "Base",
							"states": [
								{"name": "Idle", "animation": "idle"}
							]
						}
					]
				}
			]
		}
	}`)
	objects, err := Build(desc)
	require.NoError(t, err)

	var layerIdx = -1
	for i, o := range objects {
		if o.Type == registry.StateMachineLayer {
			layerIdx = i
		}
	}
	require.NotEqual(t, -1, layerIdx)
	// parent_id is artboard-local and objects[0] is the Backboard, so the
	// layer's local index is one less than its position in objects.
	layerLocalIdx := layerIdx - 1

	var childTypes []registry.TypeKey
	for _, o := range objects {
		pid, ok := o.Get(registry.PropParentID)
		if ok && int(pid.AsUint()) == layerLocalIdx {
			childTypes = append(childTypes, o.Type)
		}
	}
	require.GreaterOrEqual(t, len(childTypes), 4)
	require.Equal(t, registry.EntryState, childTypes[0])
	require.Equal(t, registry.AnyState, childTypes[1])
	require.Equal(t, registry.ExitState, childTypes[2])
	require.Equal(t, registry.AnimationState, childTypes[3])
}

func TestBuildAnimationAndStateMachineHaveArtboardParent(t *testing.T) {
	desc := mustParse(t, `{
		"scene_format_version": 1,
		"artboard": {
			"name": "Main", "width": 100, "height": 100,
			"animations": [
				{"name": "idle", "fps": 60, "duration": 60}
			],
			"state_machines": [
				{
					"name": "SM",
					"layers": [
						{
							"name": "Base",
							"states": [
								{"name": "Idle", "animation": "idle"}
							]
						}
					]
				}
			]
		}
	}`)
	objects, err := Build(desc)
	require.NoError(t, err)

	for _, o := range objects {
		if o.Type == registry.LinearAnimation || o.Type == registry.StateMachine {
			pid, ok := o.Get(registry.PropParentID)
			require.True(t, ok, "%v missing parent_id", o.Type)
			require.Equal(t, uint64(0), pid.AsUint())
		}
	}
}

func TestBuildAnyStateTransitionEmittedBeforeStates(t *testing.T) {
	desc := mustParse(t, `{
		"scene_format_version": 1,
		"artboard": {
			"name": "Main", "width": 100, "height": 100,
			"animations": [
				{"name": "idle", "fps": 60, "duration": 60}
			],
			"state_machines": [
				{
					"name": "SM",
					"layers": [
						{
							"name": "Base",
							"states": [
								{"name": "Idle", "animation": "idle"}
							],
							"transitions": [
								{"from": "any", "to": "exit"}
							]
						}
					]
				}
			]
		}
	}`)
	objects, err := Build(desc)
	require.NoError(t, err)

	var anyTransitionIdx, firstStateIdx = -1, -1
	for i, o := range objects {
		if o.Type == registry.StateTransition && anyTransitionIdx == -1 {
			anyTransitionIdx = i
		}
		if o.Type == registry.AnimationState && firstStateIdx == -1 {
			firstStateIdx = i
		}
	}
	require.NotEqual(t, -1, anyTransitionIdx)
	require.NotEqual(t, -1, firstStateIdx)
	require.Less(t, anyTransitionIdx, firstStateIdx)
}

func TestBuildDeterministicAcrossRuns(t *testing.T) {
	js := `{
		"scene_format_version": 1,
		"artboard": {"name": "Main", "width": 100, "height": 100, "children": [
			{"type": "node", "name": "a"},
			{"type": "node", "name": "b"}
		]}
	}`
	d1 := mustParse(t, js)
	d2 := mustParse(t, js)
	o1, err := Build(d1)
	require.NoError(t, err)
	o2, err := Build(d2)
	require.NoError(t, err)
	require.Equal(t, len(o1), len(o2))
	for i := range o1 {
		require.Equal(t, o1[i].Type, o2[i].Type)
		require.Equal(t, o1[i].Name, o2[i].Name)
	}
}

func TestBuildDuplicateNameFails(t *testing.T) {
	desc := mustParse(t, `{
		"scene_format_version": 1,
		"artboard": {"name": "Main", "width": 100, "height": 100, "children": [
			{"type": "node", "name": "dup"},
			{"type": "node", "name": "dup"}
		]}
	}`)
	_, err := Build(desc)
	require.Error(t, err)
	be, ok := err.(*BuildError)
	require.True(t, ok)
	require.Equal(t, ErrDuplicateName, be.Kind)
}

func TestBuildMissingNestedArtboardReferenceFails(t *testing.T) {
	desc := mustParse(t, `{
		"scene_format_version": 1,
		"artboard": {"name": "Main", "width": 100, "height": 100, "children": [
			{"type": "nested_artboard", "name": "n", "artboard": "DoesNotExist"}
		]}
	}`)
	_, err := Build(desc)
	require.Error(t, err)
	be, ok := err.(*BuildError)
	require.True(t, ok)
	require.Equal(t, ErrMissingReference, be.Kind)
}

func TestBuildCircularNestedArtboardFails(t *testing.T) {
	desc := mustParse(t, `{
		"scene_format_version": 1,
		"artboards": [
			{"name": "A", "width": 100, "height": 100, "children": [
				{"type": "nested_artboard", "name": "toB", "artboard": "B"}
			]},
			{"name": "B", "width": 100, "height": 100, "children": [
				{"type": "nested_artboard", "name": "toA", "artboard": "A"}
			]}
		]
	}`)
	_, err := Build(desc)
	require.Error(t, err)
	be, ok := err.(*BuildError)
	require.True(t, ok)
	require.Equal(t, ErrCircularNestedArtboard, be.Kind)
}

func TestBuildNestedArtboardResolvesToGlobalIndex(t *testing.T) {
	desc := mustParse(t, `{
		"scene_format_version": 1,
		"artboards": [
			{"name": "Host", "width": 100, "height": 100, "children": [
				{"type": "nested_artboard", "name": "child_ref", "artboard": "Inner"}
			]},
			{"name": "Inner", "width": 50, "height": 50}
		]
	}`)
	objects, err := Build(desc)
	require.NoError(t, err)

	var innerGlobalIdx = -1
	for i, o := range objects {
		if o.Name == "Inner" {
			innerGlobalIdx = i
		}
	}
	require.NotEqual(t, -1, innerGlobalIdx)

	var nested *Object
	for i := range objects {
		if objects[i].Name == "child_ref" {
			nested = &objects[i]
		}
	}
	require.NotNil(t, nested)
	ref, ok := nested.Get(registry.PropArtboardID)
	require.True(t, ok)
	require.Equal(t, uint64(innerGlobalIdx), ref.AsUint())
}
