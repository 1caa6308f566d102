// Package inspector renders a parsed .riv document as human-readable
// text for debugging and test fixtures — JSON by default, YAML on
// request (§4.D, §6).
package inspector

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/rive-app/rivecore/registry"
	"github.com/rive-app/rivecore/riv"
)

// Format selects Dump's output encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// Filter restricts which objects and properties Dump renders. A zero
// value (all pointers nil) renders everything. Set fields are ANDed
// together: an object must match every non-nil field to be included,
// and PropertyKey, when set, further restricts which of its properties
// are rendered.
type Filter struct {
	TypeKey     *registry.TypeKey
	ObjectIndex *int
	PropertyKey *registry.PropertyKey
}

func (f Filter) matches(index int, obj riv.ParsedObject) bool {
	if f.TypeKey != nil && *f.TypeKey != obj.Type {
		return false
	}
	if f.ObjectIndex != nil && *f.ObjectIndex != index {
		return false
	}
	return true
}

// dumpObject is the JSON/YAML-friendly shape Dump renders objects
// into — plain maps so the library doesn't leak riv's wire-oriented
// ParsedValue union into the dump's shape.
type dumpObject struct {
	Index      int            `json:"index" yaml:"index"`
	TypeKey    registry.TypeKey `json:"type_key" yaml:"type_key"`
	ClassName  string         `json:"class,omitempty" yaml:"class,omitempty"`
	Properties map[string]any `json:"properties" yaml:"properties"`
}

type dumpDocument struct {
	Major   uint64       `json:"major" yaml:"major"`
	Minor   uint64       `json:"minor" yaml:"minor"`
	FileID  uint64       `json:"file_id" yaml:"file_id"`
	TocKeys []int        `json:"toc_keys" yaml:"toc_keys"`
	Objects []dumpObject `json:"objects" yaml:"objects"`
}

// Dump renders doc as text in the requested format, including only
// objects — and, via filter.PropertyKey, only properties — that pass
// filter.
func Dump(doc *riv.Document, format Format, filter Filter) (string, error) {
	if doc == nil {
		return "", fmt.Errorf("dump: nil document")
	}

	out := dumpDocument{
		Major:  doc.Header.Major,
		Minor:  doc.Header.Minor,
		FileID: doc.Header.FileID,
	}
	for _, k := range doc.ToC.Keys {
		out.TocKeys = append(out.TocKeys, int(k))
	}

	for i, obj := range doc.Objects {
		if !filter.matches(i, obj) {
			continue
		}
		do := dumpObject{
			Index:      i,
			TypeKey:    obj.Type,
			ClassName:  registry.ClassOf(obj.Type),
			Properties: make(map[string]any, len(obj.Props)),
		}
		for _, p := range obj.Props {
			if filter.PropertyKey != nil && *filter.PropertyKey != p.Key {
				continue
			}
			do.Properties[fmt.Sprintf("%d", p.Key)] = renderValue(p.Key, p.Value)
		}
		out.Objects = append(out.Objects, do)
	}

	switch format {
	case FormatYAML:
		b, err := yaml.Marshal(out)
		if err != nil {
			return "", fmt.Errorf("marshal yaml: %w", err)
		}
		return string(b), nil
	default:
		b, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshal json: %w", err)
		}
		return string(b), nil
	}
}

func renderValue(key registry.PropertyKey, v riv.ParsedValue) any {
	switch v.Backing {
	case registry.BackingFloat:
		return v.Float
	case registry.BackingString:
		return v.String
	case registry.BackingColor:
		return fmt.Sprintf("#%08X", v.Color)
	default:
		if registry.IsRawByteBool(key) {
			return v.Bool
		}
		return v.Uint
	}
}
