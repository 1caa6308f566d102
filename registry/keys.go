// Package registry is the compile-time source of truth mapping object
// classes to type keys and properties to backing types. Every constant
// here must be regenerated against a pinned upstream schema revision,
// never extended by guess (see the warning on the boolean-property set
// below): a misaligned key produces files that load but render
// incorrectly, or crash, in conforming runtimes.
package registry

// TypeKey identifies an object class. Every concrete object class has
// exactly one type key, matching the reference runtime's generated
// constants.
type TypeKey uint16

const (
	Backboard TypeKey = 1 + iota
	Artboard
	LinearAnimation
	KeyedObject
	KeyedProperty
	KeyFrameDouble
	KeyFrameColor
	KeyFrameBool
	Interpolator
	Node
	Shape
	Ellipse
	Rectangle
	PointsPath
	Fill
	Stroke
	SolidColor
	LinearGradient
	RadialGradient
	GradientStop
	Image
	TrimPath
	NestedArtboard
	Bone
	RootBone
	Skin
	Tendon
	Weight
	CubicWeight
	IKConstraint
	DistanceConstraint
	TransformConstraint
	TranslationConstraint
	ScaleConstraint
	RotationConstraint
	Text
	TextStyle
	TextValueRun
	ImageAsset
	FontAsset
	AudioAsset
	LayoutComponent
	LayoutComponentStyle
	ViewModel
	ViewModelProperty
	DataBind
	StateMachine
	StateMachineLayer
	EntryState
	AnyState
	ExitState
	AnimationState
	StateTransition
	StateMachineBool
	StateMachineNumber
	StateMachineTrigger
)

// PropertyKey identifies a property within the union of all known
// properties across all object classes. Property keys are globally
// unique — not scoped per class — so the same key always names the
// same conceptual property wherever it appears.
type PropertyKey uint16

// PropTerminator (key 0) is the object terminator sentinel and must
// never be used for a real property.
const PropTerminator PropertyKey = 0

const (
	// Baseline properties: never appear in the ToC, may appear on
	// individual objects. The runtime knows them natively.
	PropName     PropertyKey = 4
	PropParentID PropertyKey = 5
	PropWidth    PropertyKey = 7
	PropHeight   PropertyKey = 8

	// Transform, shared by most drawable/bone classes.
	PropX       PropertyKey = 13
	PropY       PropertyKey = 14
	PropRotation PropertyKey = 15
	PropScaleX  PropertyKey = 16
	PropScaleY  PropertyKey = 17
	PropOpacity PropertyKey = 18

	// LinearAnimation.
	PropFPS       PropertyKey = 19
	PropDuration  PropertyKey = 20
	PropSpeed     PropertyKey = 21
	PropLoop      PropertyKey = 22
	PropWorkStart PropertyKey = 23
	PropWorkEnd   PropertyKey = 24
	PropQuantize  PropertyKey = 25 // never emitted, see registry.go

	// Paint / color sources.
	PropColor        PropertyKey = 26
	PropStopPosition PropertyKey = 27

	// Shape geometry.
	PropCornerRadius PropertyKey = 28
	PropPoints       PropertyKey = 29 // serialized vertex list, string-backed

	// TrimPath.
	PropTrimStart  PropertyKey = 30
	PropTrimEnd    PropertyKey = 31
	PropTrimOffset PropertyKey = 32
	PropTrimMode   PropertyKey = 33

	// NestedArtboard.
	PropArtboardID PropertyKey = 34

	// Bone / Skin / Tendon.
	PropBoneID     PropertyKey = 35
	PropBoneLength PropertyKey = 73
	PropWeightValue PropertyKey = 72

	// Raw-byte-bool: Node/Shape visibility. Part of the fixed
	// raw-byte-bool set (see RawByteBoolKeys).
	PropVisible PropertyKey = 41

	// Generic constraints (IK/Distance/Transform/Translation/Scale/Rotation).
	PropConstraintTargetID PropertyKey = 37
	PropConstraintStrength PropertyKey = 38
	PropConstraintCopyX    PropertyKey = 39
	PropConstraintCopyY    PropertyKey = 40
	PropConstraintMinDist  PropertyKey = 75
	PropConstraintMaxDist  PropertyKey = 76
	PropConstraintMinX     PropertyKey = 77
	PropConstraintMaxX     PropertyKey = 78
	PropConstraintMinY     PropertyKey = 79
	PropConstraintMaxY     PropertyKey = 80
	PropConstraintMinScale PropertyKey = 81
	PropConstraintMaxScale PropertyKey = 82
	PropConstraintMinRot   PropertyKey = 83
	PropConstraintMaxRot   PropertyKey = 84

	// Raw-byte-bool: whether a constraint is active.
	PropEnabled PropertyKey = 164

	// Text.
	PropTextContent    PropertyKey = 42
	PropFontSize       PropertyKey = 43
	PropFontAssetID    PropertyKey = 44
	PropTextAlign      PropertyKey = 45
	PropLineHeight     PropertyKey = 46
	PropLetterSpacing  PropertyKey = 47
	PropTextStyleID    PropertyKey = 48

	// Raw-byte-bool: Text autosize-to-content.
	PropTextAutosize PropertyKey = 376

	// Image / assets.
	PropImageAssetID PropertyKey = 49
	PropAssetPath    PropertyKey = 57

	// Paint extras.
	PropBlendMode       PropertyKey = 50
	PropStrokeThickness PropertyKey = 51
	PropStrokeCap       PropertyKey = 52
	PropStrokeJoin      PropertyKey = 53
	PropFillRule        PropertyKey = 54

	// Raw-byte-bool: whether a PointsPath is closed.
	PropClosed PropertyKey = 62

	// ViewModel / DataBind.
	PropViewModelPropertyType  PropertyKey = 60
	PropViewModelDefaultNumber PropertyKey = 61
	PropViewModelDefaultString PropertyKey = 63
	PropDataBindTargetID       PropertyKey = 66
	PropDataBindPropertyKey    PropertyKey = 65

	// Raw-byte-bool: whether a NestedArtboard keeps its own origin
	// rather than inheriting the host's.
	PropKeepOrigin PropertyKey = 141

	// Layout.
	PropLayoutWidthUnit  PropertyKey = 67
	PropLayoutHeightUnit PropertyKey = 68
	PropLayoutGap        PropertyKey = 69
	PropLayoutPadding    PropertyKey = 70
	PropLayoutDirection  PropertyKey = 71

	// State machine.
	PropTransitionDuration     PropertyKey = 85
	PropTransitionInputID      PropertyKey = 86
	PropTransitionConditionOp  PropertyKey = 87
	PropTransitionValue        PropertyKey = 88
	PropTransitionTargetState  PropertyKey = 89
	PropTransitionExitTime     PropertyKey = 90
	PropInputDefaultBool       PropertyKey = 92
	PropInputDefaultNumber     PropertyKey = 93
	PropAnimationStateAnimID   PropertyKey = 94

	// Keyframe timeline (LinearAnimation -> KeyedObject -> KeyedProperty
	// -> Interpolator* -> KeyFrame*).
	PropFrame               PropertyKey = 95
	PropInterpolatorID      PropertyKey = 96
	PropValueFloat          PropertyKey = 97
	PropValueColor          PropertyKey = 98
	PropValueBool           PropertyKey = 99
	PropAnimatedPropertyKey PropertyKey = 100
	PropInterpX1            PropertyKey = 101
	PropInterpY1            PropertyKey = 102
	PropInterpX2            PropertyKey = 103
	PropInterpY2            PropertyKey = 104

	// KeyedObject: which drawable in the artboard this binding animates.
	// Distinct from parent_id, which holds the owning LinearAnimation's
	// local index (the structural tree parent).
	PropKeyedObjectTargetID PropertyKey = 105
)

// RawByteBoolKeys is the designated set of boolean property keys that
// are written as a single raw byte (0x00/0x01) instead of a varuint.
// This set is fixed by the reference generated headers the
// implementation mirrors; future upstream additions are a source of
// silent breakage, so the registry must be regenerated rather than
// extended by guess.
var RawByteBoolKeys = map[PropertyKey]bool{
	41:  true, // PropVisible
	62:  true, // PropClosed
	141: true, // PropKeepOrigin
	164: true, // PropEnabled
	376: true, // PropTextAutosize
}

// BaselineKeys must never appear in the ToC even though they may
// appear on individual objects — the runtime knows them natively.
var BaselineKeys = map[PropertyKey]bool{
	PropName:     true,
	PropParentID: true,
	PropWidth:    true,
	PropHeight:   true,
}

func IsRawByteBool(key PropertyKey) bool { return RawByteBoolKeys[key] }

func IsBaseline(key PropertyKey) bool { return BaselineKeys[key] }
