package registry

import "fmt"

// BackingType is the wire encoding family of a property value.
type BackingType uint8

const (
	BackingUintOrBool BackingType = 0
	BackingString     BackingType = 1
	BackingFloat      BackingType = 2
	BackingColor      BackingType = 3
)

func (b BackingType) String() string {
	switch b {
	case BackingUintOrBool:
		return "uint_or_bool"
	case BackingString:
		return "string"
	case BackingFloat:
		return "float"
	case BackingColor:
		return "color"
	default:
		return fmt.Sprintf("backing_type(%d)", uint8(b))
	}
}

// backingTypes maps every known property key to its wire family. An
// unclassified property key is a construction error (invariant 4).
var backingTypes = map[PropertyKey]BackingType{
	PropName:     BackingString,
	PropParentID: BackingUintOrBool,
	PropWidth:    BackingFloat,
	PropHeight:   BackingFloat,

	PropX:        BackingFloat,
	PropY:        BackingFloat,
	PropRotation: BackingFloat,
	PropScaleX:   BackingFloat,
	PropScaleY:   BackingFloat,
	PropOpacity:  BackingFloat,

	PropFPS:       BackingUintOrBool,
	PropDuration:  BackingUintOrBool,
	PropSpeed:     BackingFloat,
	PropLoop:      BackingUintOrBool,
	PropWorkStart: BackingUintOrBool,
	PropWorkEnd:   BackingUintOrBool,
	PropQuantize:  BackingUintOrBool,

	PropColor:        BackingColor,
	PropStopPosition: BackingFloat,

	PropCornerRadius: BackingFloat,
	PropPoints:       BackingString,

	PropTrimStart:  BackingFloat,
	PropTrimEnd:    BackingFloat,
	PropTrimOffset: BackingFloat,
	PropTrimMode:   BackingUintOrBool,

	PropArtboardID: BackingUintOrBool,

	PropBoneID:      BackingUintOrBool,
	PropBoneLength:  BackingFloat,
	PropWeightValue: BackingFloat,

	PropVisible: BackingUintOrBool,

	PropConstraintTargetID: BackingUintOrBool,
	PropConstraintStrength: BackingFloat,
	PropConstraintCopyX:    BackingUintOrBool,
	PropConstraintCopyY:    BackingUintOrBool,
	PropConstraintMinDist:  BackingFloat,
	PropConstraintMaxDist:  BackingFloat,
	PropConstraintMinX:     BackingFloat,
	PropConstraintMaxX:     BackingFloat,
	PropConstraintMinY:     BackingFloat,
	PropConstraintMaxY:     BackingFloat,
	PropConstraintMinScale: BackingFloat,
	PropConstraintMaxScale: BackingFloat,
	PropConstraintMinRot:   BackingFloat,
	PropConstraintMaxRot:   BackingFloat,
	PropEnabled:            BackingUintOrBool,

	PropTextContent:   BackingString,
	PropFontSize:      BackingFloat,
	PropFontAssetID:   BackingUintOrBool,
	PropTextAlign:     BackingUintOrBool,
	PropLineHeight:    BackingFloat,
	PropLetterSpacing: BackingFloat,
	PropTextStyleID:   BackingUintOrBool,
	PropTextAutosize:  BackingUintOrBool,

	PropImageAssetID: BackingUintOrBool,
	PropAssetPath:    BackingString,

	PropBlendMode:       BackingUintOrBool,
	PropStrokeThickness: BackingFloat,
	PropStrokeCap:       BackingUintOrBool,
	PropStrokeJoin:      BackingUintOrBool,
	PropFillRule:        BackingUintOrBool,
	PropClosed:          BackingUintOrBool,

	PropViewModelPropertyType:  BackingUintOrBool,
	PropViewModelDefaultNumber: BackingFloat,
	PropViewModelDefaultString: BackingString,
	PropDataBindTargetID:       BackingUintOrBool,
	PropDataBindPropertyKey:    BackingUintOrBool,

	PropKeepOrigin: BackingUintOrBool,

	PropLayoutWidthUnit:  BackingUintOrBool,
	PropLayoutHeightUnit: BackingUintOrBool,
	PropLayoutGap:        BackingFloat,
	PropLayoutPadding:    BackingFloat,
	PropLayoutDirection:  BackingUintOrBool,

	PropTransitionDuration:    BackingFloat,
	PropTransitionInputID:     BackingUintOrBool,
	PropTransitionConditionOp: BackingUintOrBool,
	PropTransitionValue:       BackingFloat,
	PropTransitionTargetState: BackingUintOrBool,
	PropTransitionExitTime:    BackingFloat,
	PropInputDefaultBool:      BackingUintOrBool,
	PropInputDefaultNumber:    BackingFloat,
	PropAnimationStateAnimID:  BackingUintOrBool,

	PropFrame:               BackingUintOrBool,
	PropInterpolatorID:      BackingUintOrBool,
	PropValueFloat:          BackingFloat,
	PropValueColor:          BackingColor,
	PropValueBool:           BackingUintOrBool,
	PropAnimatedPropertyKey: BackingUintOrBool,
	PropInterpX1:            BackingFloat,
	PropInterpY1:            BackingFloat,
	PropInterpX2:            BackingFloat,
	PropInterpY2:            BackingFloat,

	PropKeyedObjectTargetID: BackingUintOrBool,
}

// BackingTypeOf returns the wire family for key and false if key is
// unclassified (a construction error per invariant 4).
func BackingTypeOf(key PropertyKey) (BackingType, bool) {
	bt, ok := backingTypes[key]
	return bt, ok
}

// classNames is used only for diagnostics and the inspector dump.
var classNames = map[TypeKey]string{
	Backboard:             "backboard",
	Artboard:              "artboard",
	LinearAnimation:       "linear_animation",
	KeyedObject:           "keyed_object",
	KeyedProperty:         "keyed_property",
	KeyFrameDouble:        "keyframe_double",
	KeyFrameColor:         "keyframe_color",
	KeyFrameBool:          "keyframe_bool",
	Interpolator:          "interpolator",
	Node:                  "node",
	Shape:                 "shape",
	Ellipse:               "ellipse",
	Rectangle:             "rectangle",
	PointsPath:            "path",
	Fill:                  "fill",
	Stroke:                "stroke",
	SolidColor:            "solid_color",
	LinearGradient:        "linear_gradient",
	RadialGradient:        "radial_gradient",
	GradientStop:          "gradient_stop",
	Image:                 "image",
	TrimPath:              "trim_path",
	NestedArtboard:        "nested_artboard",
	Bone:                  "bone",
	RootBone:              "root_bone",
	Skin:                  "skin",
	Tendon:                "tendon",
	Weight:                "weight",
	CubicWeight:           "cubic_weight",
	IKConstraint:          "ik_constraint",
	DistanceConstraint:    "distance_constraint",
	TransformConstraint:   "transform_constraint",
	TranslationConstraint: "translation_constraint",
	ScaleConstraint:       "scale_constraint",
	RotationConstraint:    "rotation_constraint",
	Text:                  "text",
	TextStyle:             "text_style",
	TextValueRun:          "text_value_run",
	ImageAsset:            "image_asset",
	FontAsset:             "font_asset",
	AudioAsset:            "audio_asset",
	LayoutComponent:       "layout_component",
	LayoutComponentStyle:  "layout_component_style",
	ViewModel:             "view_model",
	ViewModelProperty:     "view_model_property",
	DataBind:              "data_bind",
	StateMachine:          "state_machine",
	StateMachineLayer:     "state_machine_layer",
	EntryState:            "entry_state",
	AnyState:              "any_state",
	ExitState:             "exit_state",
	AnimationState:        "animation_state",
	StateTransition:       "state_transition",
	StateMachineBool:      "state_machine_bool",
	StateMachineNumber:    "state_machine_number",
	StateMachineTrigger:   "state_machine_trigger",
}

var classNameToType map[string]TypeKey

func init() {
	classNameToType = make(map[string]TypeKey, len(classNames))
	for k, v := range classNames {
		classNameToType[v] = k
	}
}

// ClassOf returns the human-readable class name for a type key, or
// "" if type_key is not a registered class.
func ClassOf(t TypeKey) string { return classNames[t] }

// TypeKeyOf resolves a snake_case class name to its type key.
func TypeKeyOf(class string) (TypeKey, bool) {
	t, ok := classNameToType[class]
	return t, ok
}

// EmissionOrder lists, for classes where property order is mandated,
// the ordered property keys that must be emitted (only if present).
// Classes absent from this map have no order requirement — emission
// order is then insignificant per §3.
var EmissionOrder = map[TypeKey][]PropertyKey{
	Artboard: {PropWidth, PropHeight, PropName},
	LinearAnimation: {
		PropName, PropFPS, PropDuration,
		PropSpeed, PropLoop, PropWorkStart, PropWorkEnd,
	},
}

// AlwaysEmit lists, per class with a mandated order, the subset of
// EmissionOrder properties that must be emitted even at their default
// value — emitting the default is forbidden for the rest.
var AlwaysEmit = map[TypeKey]map[PropertyKey]bool{
	Artboard: {PropWidth: true, PropHeight: true, PropName: true},
	LinearAnimation: {
		PropName: true, PropFPS: true, PropDuration: true,
	},
}

// NeverEmit lists properties that must never be written for a class,
// regardless of value (e.g. LinearAnimation.quantize).
var NeverEmit = map[TypeKey]map[PropertyKey]bool{
	LinearAnimation: {PropQuantize: true},
}

// Defaults holds the registry-declared default value for properties
// subject to default elision. Values are stored pre-typed so the
// builder can compare without re-parsing.
var Defaults = map[TypeKey]map[PropertyKey]any{
	LinearAnimation: {
		PropSpeed:     float32(1.0),
		PropLoop:      uint64(0), // oneshot
		PropWorkStart: uint64(0),
		PropWorkEnd:   uint64(0),
	},
	Node: {
		PropOpacity: float32(1.0),
		PropVisible: true,
	},
	Shape: {
		PropOpacity: float32(1.0),
		PropVisible: true,
	},
}

// DefaultOf reports the registry default for (class, key), if any.
func DefaultOf(class TypeKey, key PropertyKey) (any, bool) {
	m, ok := Defaults[class]
	if !ok {
		return nil, false
	}
	v, ok := m[key]
	return v, ok
}
