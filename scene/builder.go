// Package scene turns a declarative scene description into the ordered,
// parent-referenced object graph the encoder consumes (§4.C).
package scene

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/rive-app/rivecore/registry"
)

// Build converts a scene description into the ordered object list ready
// for encoding: Backboard, then for each artboard the Artboard object
// followed by all its descendants in deterministic order.
func Build(desc *Description) (ObjectList, error) {
	if desc.FormatVersion != 1 {
		return nil, &BuildError{Kind: ErrParse, Value: fmt.Sprintf("scene_format_version must be 1, got %d", desc.FormatVersion)}
	}
	if desc.Artboard != nil && len(desc.Artboards) > 0 {
		return nil, &BuildError{Kind: ErrParse, Value: "artboard and artboards are mutually exclusive"}
	}
	artboards, err := gatherArtboards(desc)
	if err != nil {
		return nil, err
	}
	if len(artboards) == 0 {
		return nil, &BuildError{Kind: ErrParse, Value: "scene has no artboards"}
	}

	seenNames := make(map[string]bool, len(artboards))
	for _, ab := range artboards {
		if seenNames[ab.Name] {
			return nil, duplicateName("", ab.Name)
		}
		seenNames[ab.Name] = true
	}

	if err := detectNestedArtboardCycles(artboards); err != nil {
		return nil, err
	}

	built := make([]*builtArtboard, len(artboards))
	for i, ab := range artboards {
		b, err := buildArtboardLocal(ab)
		if err != nil {
			return nil, err
		}
		built[i] = b
	}

	// Resolve each artboard's global starting index (Backboard occupies
	// global index 0; artboard-local index 0 is always the Artboard
	// object itself).
	globalStart := make(map[string]int, len(built))
	cursor := 1
	for _, b := range built {
		globalStart[b.name] = cursor
		cursor += len(b.objects)
	}

	out := make(ObjectList, 0, cursor)
	out = append(out, Object{Type: registry.Backboard})
	for _, b := range built {
		for _, ref := range b.pendingNestedRefs {
			target, ok := globalStart[ref.targetArtboard]
			if !ok {
				return nil, missingReference(b.name, ref.targetArtboard)
			}
			b.objects[ref.localIndex].Set(ref.field, Uint(uint64(target)))
		}
		out = append(out, b.objects...)
	}
	return out, nil
}

func gatherArtboards(desc *Description) ([]*ArtboardDescription, error) {
	if desc.Artboard != nil {
		return []*ArtboardDescription{desc.Artboard}, nil
	}
	return desc.Artboards, nil
}

func resolveDimensions(ab *ArtboardDescription) (width, height float64, err error) {
	if ab.Preset != "" {
		p, ok := Presets[ab.Preset]
		if !ok {
			return 0, 0, unsupportedType(ab.Name, ab.Name, "preset:"+ab.Preset)
		}
		return p.Width, p.Height, nil
	}
	if ab.Width <= 0 {
		return 0, 0, outOfRange(ab.Name, ab.Name, "width", ab.Width)
	}
	if ab.Height <= 0 {
		return 0, 0, outOfRange(ab.Name, ab.Name, "height", ab.Height)
	}
	return ab.Width, ab.Height, nil
}

// builtArtboard is the intermediate, artboard-local result of building
// one artboard's object list before nested-artboard references are
// patched to global indices.
type builtArtboard struct {
	name             string
	objects          []Object
	nameIndex        map[string]int
	pendingNestedRefs []pendingNestedRef
	gradientStopSeq  map[int]int // parent local index -> next auto-name sequence
}

type pendingNestedRef struct {
	localIndex     int
	field          registry.PropertyKey
	targetArtboard string
}

func (b *builtArtboard) append(obj Object) int {
	idx := len(b.objects)
	b.objects = append(b.objects, obj)
	if obj.Name != "" {
		b.nameIndex[obj.Name] = idx
	}
	return idx
}

func (b *builtArtboard) registerName(name string) error {
	if name == "" {
		return nil
	}
	if _, exists := b.nameIndex[name]; exists {
		return duplicateName(b.name, name)
	}
	return nil
}

func buildArtboardLocal(ab *ArtboardDescription) (*builtArtboard, error) {
	width, height, err := resolveDimensions(ab)
	if err != nil {
		return nil, err
	}
	b := &builtArtboard{
		name:            ab.Name,
		nameIndex:       make(map[string]int),
		gradientStopSeq: make(map[int]int),
	}
	artboardObj := Object{Type: registry.Artboard, Name: ab.Name}
	artboardObj.Set(registry.PropWidth, Float(float32(width)))
	artboardObj.Set(registry.PropHeight, Float(float32(height)))
	artboardObj.Set(registry.PropName, String(ab.Name))
	b.append(artboardObj) // local index 0, no parent_id

	children := reorderShapeChildren("", ab.Children)
	for _, child := range children {
		if _, err := buildChild(b, child, 0, ""); err != nil {
			return nil, err
		}
	}

	for _, anim := range ab.Animations {
		if err := buildAnimation(b, anim); err != nil {
			return nil, err
		}
	}
	for _, sm := range ab.StateMachines {
		if err := buildStateMachine(b, sm); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// reorderShapeChildren normalizes sibling order for a shape's direct
// children: geometry objects must precede paint objects, per the
// runtime's expectations (§4.C). Order is otherwise preserved; this is
// a no-op for any parent type other than "shape".
func reorderShapeChildren(parentType string, children []*ChildDescription) []*ChildDescription {
	if parentType != "shape" || len(children) < 2 {
		return children
	}
	rank := func(c *ChildDescription) int {
		switch c.Type {
		case "fill", "stroke":
			return 1
		default:
			return 0
		}
	}
	out := make([]*ChildDescription, len(children))
	copy(out, children)
	sort.SliceStable(out, func(i, j int) bool { return rank(out[i]) < rank(out[j]) })
	return out
}

// buildChild constructs one object (and its subtree) and returns its
// artboard-local index.
func buildChild(b *builtArtboard, c *ChildDescription, parentIdx int, parentType string) (int, error) {
	typeKey, ok := registry.TypeKeyOf(c.Type)
	if !ok {
		return 0, unsupportedType(b.name, c.Name, c.Type)
	}

	name := c.Name
	if c.Type == "gradient_stop" && name == "" {
		name = fmt.Sprintf("%s__stop%d", parentNameOf(b, parentIdx), b.gradientStopSeq[parentIdx])
		b.gradientStopSeq[parentIdx]++
	}
	if c.Type != "gradient_stop" {
		if err := b.registerName(name); err != nil {
			return 0, err
		}
	} else if _, dup := b.nameIndex[name]; dup {
		// Auto-generated names never collide in practice, but an
		// explicit gradient_stop name can still collide like any
		// other object name.
		if c.Name != "" {
			return 0, duplicateName(b.name, name)
		}
	}

	if err := checkParentType(b, c.Type, parentType); err != nil {
		return 0, err
	}

	obj := Object{Type: typeKey, Name: name}
	if typeKey != registry.Artboard {
		obj.Set(registry.PropParentID, Uint(uint64(parentIdx)))
	}
	if name != "" {
		obj.Set(registry.PropName, String(name))
	}

	if err := applyCommonFields(b, &obj, c); err != nil {
		return 0, err
	}
	if err := applyTypeSpecificFields(b, &obj, c, parentIdx); err != nil {
		return 0, err
	}

	applyDefaultElision(&obj, typeKey)

	idx := b.append(obj)

	kids := reorderShapeChildren(c.Type, c.Children)
	for _, kid := range kids {
		if _, err := buildChild(b, kid, idx, c.Type); err != nil {
			return 0, err
		}
	}
	return idx, nil
}

func parentNameOf(b *builtArtboard, idx int) string {
	if idx < 0 || idx >= len(b.objects) {
		return ""
	}
	if b.objects[idx].Name != "" {
		return b.objects[idx].Name
	}
	return fmt.Sprintf("obj%d", idx)
}

// checkParentType enforces the parent-type rules §4.C names explicitly.
// Types without a named rule accept any parent (the generic container
// model).
func checkParentType(b *builtArtboard, childType, parentType string) error {
	switch childType {
	case "trim_path":
		if parentType != "fill" && parentType != "stroke" {
			return parentTypeMismatch(b.name, childType, parentType)
		}
	case "gradient_stop":
		if parentType != "linear_gradient" && parentType != "radial_gradient" {
			return parentTypeMismatch(b.name, childType, parentType)
		}
	}
	return nil
}

// applyDefaultElision drops properties whose value equals the
// registry-declared default for the object's class. The Artboard object
// is built without it; buildAnimation calls it for LinearAnimation, whose
// AlwaysEmit keys have no registry default and so are never dropped.
func applyDefaultElision(obj *Object, typeKey registry.TypeKey) {
	kept := obj.Props[:0]
	for _, p := range obj.Props {
		if def, ok := registry.DefaultOf(typeKey, p.Key); ok {
			defVal := toValue(def)
			if p.Value.Equal(defVal) {
				continue
			}
		}
		kept = append(kept, p)
	}
	obj.Props = kept
}

func toValue(v any) Value {
	switch t := v.(type) {
	case float32:
		return Float(t)
	case bool:
		return Bool(t)
	case uint64:
		return Uint(t)
	case string:
		return String(t)
	case uint32:
		return Color(t)
	default:
		return Value{}
	}
}

var commonTransformFields = []fieldSpec{
	{"x", registry.PropX, kindFloat, nil},
	{"y", registry.PropY, kindFloat, nil},
	{"rotation", registry.PropRotation, kindFloat, nil},
	{"scale_x", registry.PropScaleX, kindFloat, nil},
	{"scale_y", registry.PropScaleY, kindFloat, nil},
	{"opacity", registry.PropOpacity, kindFloat, nil},
	{"visible", registry.PropVisible, kindBool, nil},
}

func applyCommonFields(b *builtArtboard, obj *Object, c *ChildDescription) error {
	return applyFieldSpecs(b, obj, c, commonTransformFields)
}

type fieldKind int

const (
	kindFloat fieldKind = iota
	kindString
	kindBool
	kindColor
)

type fieldSpec struct {
	JSONKey string
	Key     registry.PropertyKey
	Kind    fieldKind
	Enum    map[string]uint64 // non-nil selects enum (string) parsing instead of Kind
}

func applyFieldSpecs(b *builtArtboard, obj *Object, c *ChildDescription, specs []fieldSpec) error {
	for _, spec := range specs {
		if spec.Enum != nil {
			s, ok, err := c.stringField(spec.JSONKey)
			if err != nil {
				return &BuildError{Kind: ErrParse, Artboard: b.name, Object: c.Name, Value: err.Error()}
			}
			if !ok {
				continue
			}
			v, ok := spec.Enum[s]
			if !ok {
				return invalidEnum(b.name, c.Name, spec.JSONKey, s)
			}
			obj.Set(spec.Key, Uint(v))
			continue
		}
		switch spec.Kind {
		case kindFloat:
			v, ok, err := c.floatField(spec.JSONKey)
			if err != nil {
				return &BuildError{Kind: ErrParse, Artboard: b.name, Object: c.Name, Value: err.Error()}
			}
			if ok {
				obj.Set(spec.Key, Float(float32(v)))
			}
		case kindString:
			v, ok, err := c.stringField(spec.JSONKey)
			if err != nil {
				return &BuildError{Kind: ErrParse, Artboard: b.name, Object: c.Name, Value: err.Error()}
			}
			if ok {
				obj.Set(spec.Key, String(v))
			}
		case kindBool:
			v, ok, err := c.boolField(spec.JSONKey)
			if err != nil {
				return &BuildError{Kind: ErrParse, Artboard: b.name, Object: c.Name, Value: err.Error()}
			}
			if ok {
				obj.Set(spec.Key, Bool(v))
			}
		case kindColor:
			s, ok, err := c.stringField(spec.JSONKey)
			if err != nil {
				return &BuildError{Kind: ErrParse, Artboard: b.name, Object: c.Name, Value: err.Error()}
			}
			if ok {
				col, err := parseHexColor(s)
				if err != nil {
					return outOfRange(b.name, c.Name, spec.JSONKey, s)
				}
				obj.Set(spec.Key, Color(col))
			}
		}
	}
	return nil
}

// parseHexColor accepts #RRGGBB or #AARRGGBB and packs it to 32-bit
// ARGB (§6). #RRGGBB implies full opacity.
func parseHexColor(s string) (uint32, error) {
	if len(s) == 7 && s[0] == '#' {
		var rgb uint32
		if _, err := fmt.Sscanf(s[1:], "%06x", &rgb); err != nil {
			return 0, err
		}
		return 0xFF000000 | rgb, nil
	}
	if len(s) == 9 && s[0] == '#' {
		var argb uint32
		if _, err := fmt.Sscanf(s[1:], "%08x", &argb); err != nil {
			return 0, err
		}
		return argb, nil
	}
	return 0, fmt.Errorf("invalid color %q", s)
}

var layoutUnitEnum = map[string]uint64{"auto": 0, "fixed": 1, "percent": 2, "fill": 3}
var layoutDirectionEnum = map[string]uint64{"horizontal": 0, "vertical": 1}

var loopEnum = map[string]uint64{"oneshot": 0, "loop": 1, "pingpong": 2}
var trimModeEnum = map[string]uint64{"sequential": 1, "synchronized": 2}
var fillRuleEnum = map[string]uint64{"nonzero": 0, "evenodd": 1}
var strokeCapEnum = map[string]uint64{"butt": 0, "round": 1, "square": 2}
var strokeJoinEnum = map[string]uint64{"miter": 0, "round": 1, "bevel": 2}
var textAlignEnum = map[string]uint64{"left": 0, "center": 1, "right": 2, "justify": 3}
var viewModelPropertyTypeEnum = map[string]uint64{
	"number": 0, "string": 1, "bool": 2, "color": 3, "enum": 4, "trigger": 5, "list": 6, "instance": 7,
}
var conditionOpEnum = map[string]uint64{
	"equal": 0, "notequal": 1, "less": 2, "lessequal": 3, "greater": 4, "greaterequal": 5,
}

// propertyKeyByName is the fixed table mapping animatable/bindable
// property names to their registry key (§4.C).
var propertyKeyByName = map[string]registry.PropertyKey{
	"x":        registry.PropX,
	"y":        registry.PropY,
	"rotation": registry.PropRotation,
	"scale_x":  registry.PropScaleX,
	"scale_y":  registry.PropScaleY,
	"opacity":  registry.PropOpacity,
	"width":    registry.PropWidth,
	"height":   registry.PropHeight,
	"color":    registry.PropColor,
}

// typeFields carries the per-type simple-field table for types that
// don't need bespoke structural handling beyond this generic
// resolution pass.
var typeFields = map[string][]fieldSpec{
	"ellipse": {
		{"width", registry.PropWidth, kindFloat, nil},
		{"height", registry.PropHeight, kindFloat, nil},
	},
	"rectangle": {
		{"width", registry.PropWidth, kindFloat, nil},
		{"height", registry.PropHeight, kindFloat, nil},
		{"corner_radius", registry.PropCornerRadius, kindFloat, nil},
	},
	"path": {
		{"closed", registry.PropClosed, kindBool, nil},
		{"points", registry.PropPoints, kindString, nil},
	},
	"image": {
		{"width", registry.PropWidth, kindFloat, nil},
		{"height", registry.PropHeight, kindFloat, nil},
	},
	"fill": {
		{"fill_rule", registry.PropFillRule, 0, fillRuleEnum},
	},
	"stroke": {
		{"thickness", registry.PropStrokeThickness, kindFloat, nil},
		{"cap", registry.PropStrokeCap, 0, strokeCapEnum},
		{"join", registry.PropStrokeJoin, 0, strokeJoinEnum},
	},
	"solid_color": {
		{"color", registry.PropColor, kindColor, nil},
	},
	"node": {},
	"canvas": {
		{"width", registry.PropWidth, kindFloat, nil},
		{"height", registry.PropHeight, kindFloat, nil},
	},
	"text": {
		{"content", registry.PropTextContent, kindString, nil},
		{"font_size", registry.PropFontSize, kindFloat, nil},
		{"line_height", registry.PropLineHeight, kindFloat, nil},
		{"letter_spacing", registry.PropLetterSpacing, kindFloat, nil},
		{"autosize", registry.PropTextAutosize, kindBool, nil},
		{"align", registry.PropTextAlign, 0, textAlignEnum},
	},
	"text_style": {
		{"font_size", registry.PropFontSize, kindFloat, nil},
	},
	"text_value_run": {
		{"text", registry.PropTextContent, kindString, nil},
	},
	"image_asset": {
		{"path", registry.PropAssetPath, kindString, nil},
	},
	"font_asset": {
		{"path", registry.PropAssetPath, kindString, nil},
	},
	"audio_asset": {
		{"path", registry.PropAssetPath, kindString, nil},
	},
	"bone": {
		{"length", registry.PropBoneLength, kindFloat, nil},
	},
	"root_bone": {
		{"length", registry.PropBoneLength, kindFloat, nil},
	},
	"weight": {
		{"value", registry.PropWeightValue, kindFloat, nil},
	},
	"cubic_weight": {
		{"value", registry.PropWeightValue, kindFloat, nil},
	},
	"view_model": {},
	"view_model_property": {
		{"type", registry.PropViewModelPropertyType, 0, viewModelPropertyTypeEnum},
		{"default_number", registry.PropViewModelDefaultNumber, kindFloat, nil},
		{"default_string", registry.PropViewModelDefaultString, kindString, nil},
	},
	"layout_component": {
		{"width", registry.PropWidth, kindFloat, nil},
		{"height", registry.PropHeight, kindFloat, nil},
		{"width_unit", registry.PropLayoutWidthUnit, 0, layoutUnitEnum},
		{"height_unit", registry.PropLayoutHeightUnit, 0, layoutUnitEnum},
		{"gap", registry.PropLayoutGap, kindFloat, nil},
		{"padding", registry.PropLayoutPadding, kindFloat, nil},
		{"direction", registry.PropLayoutDirection, 0, layoutDirectionEnum},
	},
	"layout_component_style": {
		{"width_unit", registry.PropLayoutWidthUnit, 0, layoutUnitEnum},
		{"height_unit", registry.PropLayoutHeightUnit, 0, layoutUnitEnum},
		{"gap", registry.PropLayoutGap, kindFloat, nil},
		{"padding", registry.PropLayoutPadding, kindFloat, nil},
		{"direction", registry.PropLayoutDirection, 0, layoutDirectionEnum},
	},
}

func applyTypeSpecificFields(b *builtArtboard, obj *Object, c *ChildDescription, parentIdx int) error {
	switch c.Type {
	case "gradient_stop":
		return applyGradientStop(b, obj, c)
	case "trim_path":
		return applyTrimPath(b, obj, c)
	case "nested_artboard":
		return applyNestedArtboard(b, obj, c)
	case "tendon":
		return applyTendon(b, obj, c)
	case "ik_constraint", "distance_constraint", "transform_constraint",
		"translation_constraint", "scale_constraint", "rotation_constraint":
		return applyConstraint(b, obj, c)
	case "data_bind":
		return applyDataBind(b, obj, c)
	}
	if specs, ok := typeFields[c.Type]; ok {
		return applyFieldSpecs(b, obj, c, specs)
	}
	return nil
}

func applyGradientStop(b *builtArtboard, obj *Object, c *ChildDescription) error {
	pos, ok, err := c.floatField("position")
	if err != nil {
		return &BuildError{Kind: ErrParse, Artboard: b.name, Object: c.Name, Value: err.Error()}
	}
	if ok {
		if pos < 0 || pos > 1 {
			return outOfRange(b.name, c.Name, "position", pos)
		}
		obj.Set(registry.PropStopPosition, Float(float32(pos)))
	}
	return applyFieldSpecs(b, obj, c, []fieldSpec{{"color", registry.PropColor, kindColor, nil}})
}

func applyTrimPath(b *builtArtboard, obj *Object, c *ChildDescription) error {
	mode, ok, err := c.stringField("mode")
	if err != nil {
		return &BuildError{Kind: ErrParse, Artboard: b.name, Object: c.Name, Value: err.Error()}
	}
	if !ok {
		return invalidEnum(b.name, c.Name, "mode", "<missing>")
	}
	v, ok := trimModeEnum[mode]
	if !ok {
		return invalidEnum(b.name, c.Name, "mode", mode)
	}
	obj.Set(registry.PropTrimMode, Uint(v))
	return applyFieldSpecs(b, obj, c, []fieldSpec{
		{"start", registry.PropTrimStart, kindFloat, nil},
		{"end", registry.PropTrimEnd, kindFloat, nil},
		{"offset", registry.PropTrimOffset, kindFloat, nil},
	})
}

func applyNestedArtboard(b *builtArtboard, obj *Object, c *ChildDescription) error {
	target, ok, err := c.stringField("artboard")
	if err != nil {
		return &BuildError{Kind: ErrParse, Artboard: b.name, Object: c.Name, Value: err.Error()}
	}
	if !ok || target == "" {
		return missingReference(b.name, c.Name)
	}
	b.pendingNestedRefs = append(b.pendingNestedRefs, pendingNestedRef{
		localIndex:     len(b.objects), // the object we're about to append
		field:          registry.PropArtboardID,
		targetArtboard: target,
	})
	return applyFieldSpecs(b, obj, c, []fieldSpec{
		{"keep_origin", registry.PropKeepOrigin, kindBool, nil},
	})
}

func applyTendon(b *builtArtboard, obj *Object, c *ChildDescription) error {
	bone, ok, err := c.stringField("bone")
	if err != nil {
		return &BuildError{Kind: ErrParse, Artboard: b.name, Object: c.Name, Value: err.Error()}
	}
	if !ok || bone == "" {
		return missingReference(b.name, c.Name)
	}
	idx, ok := b.nameIndex[bone]
	if !ok {
		return missingReference(b.name, bone)
	}
	obj.Set(registry.PropBoneID, Uint(uint64(idx)))
	return nil
}

func applyConstraint(b *builtArtboard, obj *Object, c *ChildDescription) error {
	target, ok, err := c.stringField("target")
	if err != nil {
		return &BuildError{Kind: ErrParse, Artboard: b.name, Object: c.Name, Value: err.Error()}
	}
	if !ok || target == "" {
		return missingReference(b.name, c.Name)
	}
	idx, ok := b.nameIndex[target]
	if !ok {
		return missingReference(b.name, target)
	}
	obj.Set(registry.PropConstraintTargetID, Uint(uint64(idx)))

	common := []fieldSpec{
		{"strength", registry.PropConstraintStrength, kindFloat, nil},
		{"enabled", registry.PropEnabled, kindBool, nil},
	}
	switch c.Type {
	case "distance_constraint":
		common = append(common,
			fieldSpec{"min_distance", registry.PropConstraintMinDist, kindFloat, nil},
			fieldSpec{"max_distance", registry.PropConstraintMaxDist, kindFloat, nil},
		)
	case "translation_constraint":
		common = append(common,
			fieldSpec{"min_x", registry.PropConstraintMinX, kindFloat, nil},
			fieldSpec{"max_x", registry.PropConstraintMaxX, kindFloat, nil},
			fieldSpec{"min_y", registry.PropConstraintMinY, kindFloat, nil},
			fieldSpec{"max_y", registry.PropConstraintMaxY, kindFloat, nil},
		)
	case "scale_constraint":
		common = append(common,
			fieldSpec{"min_scale", registry.PropConstraintMinScale, kindFloat, nil},
			fieldSpec{"max_scale", registry.PropConstraintMaxScale, kindFloat, nil},
		)
	case "rotation_constraint":
		common = append(common,
			fieldSpec{"min_rotation", registry.PropConstraintMinRot, kindFloat, nil},
			fieldSpec{"max_rotation", registry.PropConstraintMaxRot, kindFloat, nil},
		)
	case "transform_constraint":
		common = append(common,
			fieldSpec{"copy_x", registry.PropConstraintCopyX, kindBool, nil},
			fieldSpec{"copy_y", registry.PropConstraintCopyY, kindBool, nil},
		)
	}
	return applyFieldSpecs(b, obj, c, common)
}

func applyDataBind(b *builtArtboard, obj *Object, c *ChildDescription) error {
	target, ok, err := c.stringField("target")
	if err != nil {
		return &BuildError{Kind: ErrParse, Artboard: b.name, Object: c.Name, Value: err.Error()}
	}
	if !ok || target == "" {
		return missingReference(b.name, c.Name)
	}
	idx, ok := b.nameIndex[target]
	if !ok {
		return missingReference(b.name, target)
	}
	obj.Set(registry.PropDataBindTargetID, Uint(uint64(idx)))

	propName, ok, err := c.stringField("property")
	if err != nil {
		return &BuildError{Kind: ErrParse, Artboard: b.name, Object: c.Name, Value: err.Error()}
	}
	if ok {
		key, known := propertyKeyByName[propName]
		if !known {
			return invalidEnum(b.name, c.Name, "property", propName)
		}
		obj.Set(registry.PropDataBindPropertyKey, Uint(uint64(key)))
	}
	return nil
}

// detectNestedArtboardCycles walks each artboard's children looking for
// nested_artboard references and rejects any cycle (including direct
// self-reference) in the resulting name graph.
func detectNestedArtboardCycles(artboards []*ArtboardDescription) error {
	edges := make(map[string][]string, len(artboards))
	for _, ab := range artboards {
		edges[ab.Name] = collectNestedArtboardTargets(ab.Children)
	}

	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[string]int, len(artboards))
	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case visiting:
			return circularNestedArtboard(name)
		case done:
			return nil
		}
		state[name] = visiting
		for _, next := range edges[name] {
			if _, known := edges[next]; !known {
				continue // unresolvable reference is reported later as missing_reference
			}
			if err := visit(next); err != nil {
				return err
			}
		}
		state[name] = done
		return nil
	}
	for _, ab := range artboards {
		if err := visit(ab.Name); err != nil {
			return err
		}
	}
	return nil
}

func collectNestedArtboardTargets(children []*ChildDescription) []string {
	var out []string
	var walk func([]*ChildDescription)
	walk = func(cs []*ChildDescription) {
		for _, c := range cs {
			if c.Type == "nested_artboard" {
				if raw, ok := c.Fields["artboard"]; ok {
					var name string
					if json.Unmarshal(raw, &name) == nil {
						out = append(out, name)
					}
				}
			}
			walk(c.Children)
		}
	}
	walk(children)
	return out
}
