package scene

import "fmt"

// BuildError is the discriminated result the builder returns on
// failure (§4.C, §7). Errors carry enough identity — object name and
// the enclosing artboard — to reconstruct the parent chain a human
// needs to fix the scene description.
type BuildError struct {
	Kind     BuildErrorKind
	Artboard string
	Object   string
	Parent   string
	Field    string
	Value    string
}

type BuildErrorKind int

const (
	ErrParse BuildErrorKind = iota
	ErrMissingReference
	ErrDuplicateName
	ErrParentTypeMismatch
	ErrOutOfRange
	ErrUnsupportedType
	ErrInvalidEnum
	ErrCircularNestedArtboard
)

func (k BuildErrorKind) String() string {
	switch k {
	case ErrParse:
		return "parse_error"
	case ErrMissingReference:
		return "missing_reference"
	case ErrDuplicateName:
		return "duplicate_name"
	case ErrParentTypeMismatch:
		return "parent_type_mismatch"
	case ErrOutOfRange:
		return "out_of_range"
	case ErrUnsupportedType:
		return "unsupported_type"
	case ErrInvalidEnum:
		return "invalid_enum"
	case ErrCircularNestedArtboard:
		return "circular_nested_artboard"
	default:
		return "build_error"
	}
}

func (e *BuildError) Error() string {
	switch e.Kind {
	case ErrMissingReference:
		return fmt.Sprintf("%s: missing_reference(%s) in artboard %q", e.Kind, e.Object, e.Artboard)
	case ErrDuplicateName:
		return fmt.Sprintf("%s: duplicate_name(%s) in artboard %q", e.Kind, e.Object, e.Artboard)
	case ErrParentTypeMismatch:
		return fmt.Sprintf("%s: parent_type_mismatch(%s, %s) in artboard %q", e.Kind, e.Object, e.Parent, e.Artboard)
	case ErrOutOfRange:
		return fmt.Sprintf("%s: %s=%s out of range on %q (artboard %q)", e.Kind, e.Field, e.Value, e.Object, e.Artboard)
	case ErrUnsupportedType:
		return fmt.Sprintf("%s: %q (artboard %q, near %q)", e.Kind, e.Field, e.Artboard, e.Object)
	case ErrInvalidEnum:
		return fmt.Sprintf("%s: %s=%s on %q (artboard %q)", e.Kind, e.Field, e.Value, e.Object, e.Artboard)
	case ErrCircularNestedArtboard:
		return fmt.Sprintf("%s: %q", e.Kind, e.Artboard)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Value)
	}
}

func missingReference(artboard, object string) error {
	return &BuildError{Kind: ErrMissingReference, Artboard: artboard, Object: object}
}

func duplicateName(artboard, object string) error {
	return &BuildError{Kind: ErrDuplicateName, Artboard: artboard, Object: object}
}

func parentTypeMismatch(artboard, object, parent string) error {
	return &BuildError{Kind: ErrParentTypeMismatch, Artboard: artboard, Object: object, Parent: parent}
}

func outOfRange(artboard, object, field string, value any) error {
	return &BuildError{Kind: ErrOutOfRange, Artboard: artboard, Object: object, Field: field, Value: fmt.Sprint(value)}
}

func unsupportedType(artboard, object, typ string) error {
	return &BuildError{Kind: ErrUnsupportedType, Artboard: artboard, Object: object, Field: typ}
}

func invalidEnum(artboard, object, field string, value any) error {
	return &BuildError{Kind: ErrInvalidEnum, Artboard: artboard, Object: object, Field: field, Value: fmt.Sprint(value)}
}

func circularNestedArtboard(artboard string) error {
	return &BuildError{Kind: ErrCircularNestedArtboard, Artboard: artboard}
}
