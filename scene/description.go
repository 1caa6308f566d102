package scene

import "encoding/json"

// Description is the root of the declarative scene description (§6).
// scene_format_version must be exactly 1. Exactly one of Artboard /
// Artboards must be set.
type Description struct {
	FormatVersion int                    `json:"scene_format_version"`
	Artboard      *ArtboardDescription   `json:"artboard,omitempty"`
	Artboards     []*ArtboardDescription `json:"artboards,omitempty"`
}

// Preset is a named artboard size.
type Preset struct {
	Width, Height float64
}

var Presets = map[string]Preset{
	"mobile":  {390, 844},
	"tablet":  {768, 1024},
	"desktop": {1440, 900},
	"square":  {500, 500},
	"banner":  {728, 90},
	"story":   {1080, 1920},
}

// ArtboardDescription is one artboard root. Either Preset or both
// Width/Height must resolve to positive dimensions.
type ArtboardDescription struct {
	Name          string                      `json:"name"`
	Preset        string                      `json:"preset,omitempty"`
	Width         float64                     `json:"width,omitempty"`
	Height        float64                     `json:"height,omitempty"`
	Children      []*ChildDescription         `json:"children,omitempty"`
	Animations    []*AnimationDescription     `json:"animations,omitempty"`
	StateMachines []*StateMachineDescription  `json:"state_machines,omitempty"`
}

// ChildDescription is one node in the artboard tree. Type discriminates
// the concrete object class (snake_case, matches registry.ClassOf);
// Fields carries every field the discriminator didn't consume so
// per-type resolution can stay in the builder rather than in dozens of
// near-identical Go structs — the same generic-bag-then-resolve
// approach the teacher's KRY compiler uses for source properties
// (see ComponentPropertyDef / SourceProperty in the retrieved
// waozixyz/kryc compiler).
type ChildDescription struct {
	Type     string
	Name     string
	Children []*ChildDescription
	Fields   map[string]json.RawMessage
}

func (c *ChildDescription) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if v, ok := raw["type"]; ok {
		if err := json.Unmarshal(v, &c.Type); err != nil {
			return err
		}
		delete(raw, "type")
	}
	if v, ok := raw["name"]; ok {
		if err := json.Unmarshal(v, &c.Name); err != nil {
			return err
		}
		delete(raw, "name")
	}
	if v, ok := raw["children"]; ok {
		if err := json.Unmarshal(v, &c.Children); err != nil {
			return err
		}
		delete(raw, "children")
	}
	c.Fields = raw
	return nil
}

// Field-access helpers used by the builder when resolving a
// ChildDescription's Fields bag into typed, validated values.

func (c *ChildDescription) floatField(key string) (float64, bool, error) {
	raw, ok := c.Fields[key]
	if !ok {
		return 0, false, nil
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false, err
	}
	return v, true, nil
}

func (c *ChildDescription) stringField(key string) (string, bool, error) {
	raw, ok := c.Fields[key]
	if !ok {
		return "", false, nil
	}
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (c *ChildDescription) boolField(key string) (bool, bool, error) {
	raw, ok := c.Fields[key]
	if !ok {
		return false, false, nil
	}
	var v bool
	if err := json.Unmarshal(raw, &v); err != nil {
		return false, false, err
	}
	return v, true, nil
}

// AnimationDescription is one LinearAnimation plus its keyed content.
type AnimationDescription struct {
	Name      string                    `json:"name"`
	FPS       *float64                  `json:"fps,omitempty"`
	Duration  *float64                  `json:"duration,omitempty"`
	Speed     *float64                  `json:"speed,omitempty"`
	Loop      *string                   `json:"loop,omitempty"` // oneshot|loop|pingpong
	WorkStart *float64                  `json:"work_start,omitempty"`
	WorkEnd   *float64                  `json:"work_end,omitempty"`
	Keyed     []*KeyedObjectDescription `json:"keyed,omitempty"`
}

type KeyedObjectDescription struct {
	Object     string                      `json:"object"`
	Properties []*KeyedPropertyDescription `json:"properties"`
}

type KeyedPropertyDescription struct {
	Property      string                     `json:"property"`
	Interpolators []InterpolatorDescription  `json:"interpolators,omitempty"`
	Keyframes     []*KeyframeDescription     `json:"keyframes"`
}

type InterpolatorDescription struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

type KeyframeDescription struct {
	Frame        int             `json:"frame"`
	Value        json.RawMessage `json:"value"`
	Interpolator *int            `json:"interpolator,omitempty"`
}

// StateMachineDescription is one state machine: named typed inputs
// plus one or more layers of states and transitions.
type StateMachineDescription struct {
	Name   string                          `json:"name"`
	Inputs []*StateMachineInputDescription `json:"inputs,omitempty"`
	Layers []*StateMachineLayerDescription `json:"layers"`
}

type StateMachineInputDescription struct {
	Name    string          `json:"name"`
	Type    string          `json:"type"` // bool|number|trigger
	Default json.RawMessage `json:"default,omitempty"`
}

type StateMachineLayerDescription struct {
	Name        string                           `json:"name"`
	States      []*AnimationStateDescription     `json:"states"`
	Transitions []*StateTransitionDescription    `json:"transitions,omitempty"`
}

type AnimationStateDescription struct {
	Name      string `json:"name"`
	Animation string `json:"animation"`
}

// StateTransitionDescription is emitted immediately after its source
// state (builder responsibility, not source-order dependent). From ""
// or "any" targets the layer's AnyState sentinel.
type StateTransitionDescription struct {
	From           string          `json:"from,omitempty"`
	To             string          `json:"to"`
	Duration       *float64        `json:"duration,omitempty"`
	ExitTime       *float64        `json:"exit_time,omitempty"`
	ConditionInput *string         `json:"condition_input,omitempty"`
	ConditionOp    *string         `json:"condition_op,omitempty"`
	ConditionValue json.RawMessage `json:"condition_value,omitempty"`
}
