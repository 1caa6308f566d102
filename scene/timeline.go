package scene

import (
	"encoding/json"

	"github.com/rive-app/rivecore/registry"
)

// buildAnimation emits one LinearAnimation and its keyed timeline:
// LinearAnimation -> KeyedObject* -> KeyedProperty* -> Interpolator* and
// typed KeyFrame* (§4.C).
func buildAnimation(b *builtArtboard, anim *AnimationDescription) error {
	if err := b.registerName(anim.Name); err != nil {
		return err
	}
	if anim.FPS == nil {
		return missingReference(b.name, anim.Name+".fps")
	}
	if anim.Duration == nil {
		return missingReference(b.name, anim.Name+".duration")
	}

	obj := Object{Type: registry.LinearAnimation, Name: anim.Name}
	obj.Set(registry.PropParentID, Uint(0))
	obj.Set(registry.PropName, String(anim.Name))
	obj.Set(registry.PropFPS, Uint(uint64(*anim.FPS)))
	obj.Set(registry.PropDuration, Uint(uint64(*anim.Duration)))

	speed := registry.Defaults[registry.LinearAnimation][registry.PropSpeed].(float32)
	if anim.Speed != nil {
		speed = float32(*anim.Speed)
	}
	obj.Set(registry.PropSpeed, Float(speed))

	loop := uint64(0)
	if anim.Loop != nil {
		v, ok := loopEnum[*anim.Loop]
		if !ok {
			return invalidEnum(b.name, anim.Name, "loop", *anim.Loop)
		}
		loop = v
	}
	obj.Set(registry.PropLoop, Uint(loop))

	workStart, workEnd := uint64(0), uint64(0)
	if anim.WorkStart != nil {
		workStart = uint64(*anim.WorkStart)
	}
	if anim.WorkEnd != nil {
		workEnd = uint64(*anim.WorkEnd)
	}
	obj.Set(registry.PropWorkStart, Uint(workStart))
	obj.Set(registry.PropWorkEnd, Uint(workEnd))

	applyDefaultElision(&obj, registry.LinearAnimation)
	animIdx := b.append(obj)

	for _, keyed := range anim.Keyed {
		if err := buildKeyedObject(b, animIdx, keyed); err != nil {
			return err
		}
	}
	return nil
}

func buildKeyedObject(b *builtArtboard, animIdx int, keyed *KeyedObjectDescription) error {
	targetIdx, ok := b.nameIndex[keyed.Object]
	if !ok {
		return missingReference(b.name, keyed.Object)
	}
	ko := Object{Type: registry.KeyedObject}
	ko.Set(registry.PropParentID, Uint(uint64(animIdx)))
	ko.Set(registry.PropKeyedObjectTargetID, Uint(uint64(targetIdx)))
	koIdx := b.append(ko)

	for _, prop := range keyed.Properties {
		if err := buildKeyedProperty(b, koIdx, prop); err != nil {
			return err
		}
	}
	return nil
}

func buildKeyedProperty(b *builtArtboard, koIdx int, prop *KeyedPropertyDescription) error {
	propKey, ok := propertyKeyByName[prop.Property]
	if !ok {
		return invalidEnum(b.name, prop.Property, "property", prop.Property)
	}
	kp := Object{Type: registry.KeyedProperty}
	kp.Set(registry.PropParentID, Uint(uint64(koIdx)))
	kp.Set(registry.PropAnimatedPropertyKey, Uint(uint64(propKey)))
	kpIdx := b.append(kp)

	interpLocalIndex := make([]int, 0, len(prop.Interpolators))
	for _, interp := range prop.Interpolators {
		io := Object{Type: registry.Interpolator}
		io.Set(registry.PropParentID, Uint(uint64(kpIdx)))
		io.Set(registry.PropInterpX1, Float(float32(interp.X1)))
		io.Set(registry.PropInterpY1, Float(float32(interp.Y1)))
		io.Set(registry.PropInterpX2, Float(float32(interp.X2)))
		io.Set(registry.PropInterpY2, Float(float32(interp.Y2)))
		idx := b.append(io)
		interpLocalIndex = append(interpLocalIndex, idx)
	}

	var backing registry.BackingType
	for i, kf := range prop.Keyframes {
		if i == 0 {
			bt, ok := propertyBackingKind(propKey)
			if !ok {
				return invalidEnum(b.name, prop.Property, "property", prop.Property)
			}
			backing = bt
		}
		if err := buildKeyframe(b, kpIdx, kf, backing, interpLocalIndex); err != nil {
			return err
		}
	}
	return nil
}

func propertyBackingKind(key registry.PropertyKey) (registry.BackingType, bool) {
	return registry.BackingTypeOf(key)
}

func buildKeyframe(b *builtArtboard, kpIdx int, kf *KeyframeDescription, backing registry.BackingType, interpolators []int) error {
	var typeKey registry.TypeKey
	var valueKey registry.PropertyKey
	var value Value

	switch backing {
	case registry.BackingFloat:
		var v float64
		if err := json.Unmarshal(kf.Value, &v); err != nil {
			return &BuildError{Kind: ErrParse, Artboard: b.name, Value: err.Error()}
		}
		typeKey, valueKey, value = registry.KeyFrameDouble, registry.PropValueFloat, Float(float32(v))
	case registry.BackingColor:
		var s string
		if err := json.Unmarshal(kf.Value, &s); err != nil {
			return &BuildError{Kind: ErrParse, Artboard: b.name, Value: err.Error()}
		}
		col, err := parseHexColor(s)
		if err != nil {
			return outOfRange(b.name, "", "value", s)
		}
		typeKey, valueKey, value = registry.KeyFrameColor, registry.PropValueColor, Color(col)
	case registry.BackingUintOrBool:
		var v bool
		if err := json.Unmarshal(kf.Value, &v); err != nil {
			return &BuildError{Kind: ErrParse, Artboard: b.name, Value: err.Error()}
		}
		typeKey, valueKey, value = registry.KeyFrameBool, registry.PropValueBool, Bool(v)
	default:
		return unsupportedType(b.name, "", "keyframe value")
	}

	obj := Object{Type: typeKey}
	obj.Set(registry.PropParentID, Uint(uint64(kpIdx)))
	if kf.Frame < 0 {
		return outOfRange(b.name, "", "frame", kf.Frame)
	}
	obj.Set(registry.PropFrame, Uint(uint64(kf.Frame)))
	obj.Set(valueKey, value)
	if kf.Interpolator != nil {
		if *kf.Interpolator < 0 || *kf.Interpolator >= len(interpolators) {
			return outOfRange(b.name, "", "interpolator", *kf.Interpolator)
		}
		obj.Set(registry.PropInterpolatorID, Uint(uint64(interpolators[*kf.Interpolator])))
	}
	b.append(obj)
	return nil
}

// buildStateMachine emits a StateMachine, its typed inputs, and its
// layers. Each layer always opens with the EntryState, AnyState, and
// ExitState sentinels before any declared state, and every
// StateTransition is emitted immediately after its source state (§3,
// §4.C).
func buildStateMachine(b *builtArtboard, sm *StateMachineDescription) error {
	if err := b.registerName(sm.Name); err != nil {
		return err
	}
	smObj := Object{Type: registry.StateMachine, Name: sm.Name}
	smObj.Set(registry.PropParentID, Uint(0))
	smObj.Set(registry.PropName, String(sm.Name))
	smIdx := b.append(smObj)

	inputIndex := make(map[string]int, len(sm.Inputs))
	for _, input := range sm.Inputs {
		idx, err := buildStateMachineInput(b, smIdx, input)
		if err != nil {
			return err
		}
		inputIndex[input.Name] = idx
	}

	for _, layer := range sm.Layers {
		if err := buildStateMachineLayer(b, smIdx, layer, inputIndex); err != nil {
			return err
		}
	}
	return nil
}

func buildStateMachineInput(b *builtArtboard, smIdx int, in *StateMachineInputDescription) (int, error) {
	var typeKey registry.TypeKey
	switch in.Type {
	case "bool":
		typeKey = registry.StateMachineBool
	case "number":
		typeKey = registry.StateMachineNumber
	case "trigger":
		typeKey = registry.StateMachineTrigger
	default:
		return 0, invalidEnum(b.name, in.Name, "type", in.Type)
	}
	obj := Object{Type: typeKey, Name: in.Name}
	obj.Set(registry.PropParentID, Uint(uint64(smIdx)))
	obj.Set(registry.PropName, String(in.Name))
	if len(in.Default) > 0 {
		switch in.Type {
		case "bool":
			var v bool
			if err := json.Unmarshal(in.Default, &v); err != nil {
				return 0, &BuildError{Kind: ErrParse, Artboard: b.name, Object: in.Name, Value: err.Error()}
			}
			obj.Set(registry.PropInputDefaultBool, Bool(v))
		case "number":
			var v float64
			if err := json.Unmarshal(in.Default, &v); err != nil {
				return 0, &BuildError{Kind: ErrParse, Artboard: b.name, Object: in.Name, Value: err.Error()}
			}
			obj.Set(registry.PropInputDefaultNumber, Float(float32(v)))
		}
	}
	return b.append(obj), nil
}

func buildStateMachineLayer(b *builtArtboard, smIdx int, layer *StateMachineLayerDescription, inputIndex map[string]int) error {
	layerObj := Object{Type: registry.StateMachineLayer, Name: layer.Name}
	if layer.Name != "" {
		if err := b.registerName(layer.Name); err != nil {
			return err
		}
		layerObj.Set(registry.PropName, String(layer.Name))
	}
	layerObj.Set(registry.PropParentID, Uint(uint64(smIdx)))
	layerIdx := b.append(layerObj)

	entryIdx := b.append(sentinelState(registry.EntryState, layerIdx))
	anyIdx := b.append(sentinelState(registry.AnyState, layerIdx))
	exitIdx := b.append(sentinelState(registry.ExitState, layerIdx))

	stateIndex := map[string]int{
		"":     anyIdx,
		"any":  anyIdx,
		"entry": entryIdx,
		"exit": exitIdx,
	}

	for _, tr := range layer.Transitions {
		if tr.From == "" || tr.From == "any" {
			if err := buildStateTransition(b, anyIdx, tr, stateIndex, inputIndex); err != nil {
				return err
			}
		}
	}

	for _, st := range layer.States {
		animIdx, ok := b.nameIndex[st.Animation]
		if !ok {
			return missingReference(b.name, st.Animation)
		}
		obj := Object{Type: registry.AnimationState, Name: st.Name}
		obj.Set(registry.PropParentID, Uint(uint64(layerIdx)))
		if st.Name != "" {
			obj.Set(registry.PropName, String(st.Name))
		}
		obj.Set(registry.PropAnimationStateAnimID, Uint(uint64(animIdx)))
		idx := b.append(obj)
		if st.Name != "" {
			stateIndex[st.Name] = idx
		}

		for _, tr := range layer.Transitions {
			if resolvesFrom(tr, st.Name) {
				if err := buildStateTransition(b, idx, tr, stateIndex, inputIndex); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func resolvesFrom(tr *StateTransitionDescription, stateName string) bool {
	return tr.From == stateName && stateName != ""
}

func sentinelState(typeKey registry.TypeKey, layerIdx int) Object {
	obj := Object{Type: typeKey}
	obj.Set(registry.PropParentID, Uint(uint64(layerIdx)))
	return obj
}

func buildStateTransition(b *builtArtboard, sourceIdx int, tr *StateTransitionDescription, stateIndex, inputIndex map[string]int) error {
	targetName := tr.To
	if targetName == "" || targetName == "any" {
		targetName = "any"
	}
	targetIdx, ok := stateIndex[targetName]
	if !ok {
		return missingReference(b.name, targetName)
	}
	obj := Object{Type: registry.StateTransition}
	obj.Set(registry.PropParentID, Uint(uint64(sourceIdx)))
	obj.Set(registry.PropTransitionTargetState, Uint(uint64(targetIdx)))
	if tr.Duration != nil {
		obj.Set(registry.PropTransitionDuration, Float(float32(*tr.Duration)))
	}
	if tr.ExitTime != nil {
		obj.Set(registry.PropTransitionExitTime, Float(float32(*tr.ExitTime)))
	}
	if tr.ConditionInput != nil {
		inputIdx, ok := inputIndex[*tr.ConditionInput]
		if !ok {
			return missingReference(b.name, *tr.ConditionInput)
		}
		obj.Set(registry.PropTransitionInputID, Uint(uint64(inputIdx)))
	}
	if tr.ConditionOp != nil {
		v, ok := conditionOpEnum[*tr.ConditionOp]
		if !ok {
			return invalidEnum(b.name, "", "condition_op", *tr.ConditionOp)
		}
		obj.Set(registry.PropTransitionConditionOp, Uint(v))
	}
	if len(tr.ConditionValue) > 0 {
		var v float64
		if err := json.Unmarshal(tr.ConditionValue, &v); err == nil {
			obj.Set(registry.PropTransitionValue, Float(float32(v)))
		} else {
			var bv bool
			if err := json.Unmarshal(tr.ConditionValue, &bv); err == nil {
				f := float32(0)
				if bv {
					f = 1
				}
				obj.Set(registry.PropTransitionValue, Float(f))
			}
		}
	}
	b.append(obj)
	return nil
}
