package rivecore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const minimalScene = `{
	"scene_format_version": 1,
	"artboard": {
		"name": "Main",
		"width": 400,
		"height": 400,
		"children": [
			{"type": "shape", "name": "circle", "x": 200, "y": 200, "children": [
				{"type": "ellipse", "width": 100, "height": 100},
				{"type": "fill", "children": [
					{"type": "solid_color", "color": "#FF3366CC"}
				]}
			]}
		],
		"animations": [
			{
				"name": "spin",
				"fps": 60,
				"duration": 120,
				"loop": "loop",
				"keyed": [
					{
						"object": "circle",
						"properties": [
							{
								"property": "rotation",
								"keyframes": [
									{"frame": 0, "value": 0},
									{"frame": 60, "value": 180},
									{"frame": 120, "value": 360}
								]
							}
						]
					}
				]
			}
		]
	}
}`

func TestCompileParseRoundTrip(t *testing.T) {
	data, err := Compile([]byte(minimalScene), CompileOptions{Deterministic: true})
	require.NoError(t, err)
	require.NotEmpty(t, data)

	doc, err := Parse(data)
	require.NoError(t, err)
	require.NotEmpty(t, doc.Objects)
}

func TestCompileIsDeterministic(t *testing.T) {
	a, err := Compile([]byte(minimalScene), CompileOptions{Deterministic: true})
	require.NoError(t, err)
	b, err := Compile([]byte(minimalScene), CompileOptions{Deterministic: true})
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestValidateCleanCompileHasNoFindings(t *testing.T) {
	data, err := Compile([]byte(minimalScene), CompileOptions{Deterministic: true})
	require.NoError(t, err)

	diags, err := Validate(data)
	require.NoError(t, err)
	require.Empty(t, diags.Findings)
}

func TestCompileRejectsMalformedJSON(t *testing.T) {
	_, err := Compile([]byte("not json"), CompileOptions{Deterministic: true})
	require.Error(t, err)
}

func TestCompileRejectsUnknownChildType(t *testing.T) {
	js := `{
		"scene_format_version": 1,
		"artboard": {"name": "Main", "width": 10, "height": 10, "children": [
			{"type": "not_a_real_type"}
		]}
	}`
	_, err := Compile([]byte(js), CompileOptions{Deterministic: true})
	require.Error(t, err)
}
