// riv/parser.go
//
// Parse mirrors the structural decode style of the teacher's
// krb.ReadDocument: read the header, read the table of contents, then
// walk the flat object stream to the end of input. Parse is strict —
// any wire-level anomaly is a hard error. Validate (validate.go) wraps
// Parse in a lenient mode that downgrades recoverable anomalies to
// Diagnostics findings instead of aborting.

package riv

import (
	"bytes"
	"fmt"
	"log"

	"github.com/rive-app/rivecore/registry"
)

// Parse decodes a .riv byte stream into a Document. Any malformed
// input — bad magic, truncated data, a property key that neither the
// ToC nor the registry classifies, a value that fails to decode under
// its backing type — is a hard error (§7). A key the ToC declares is
// decoded with the ToC's backing type even if the registry lacks it.
func Parse(data []byte) (*Document, error) {
	return parseStrict(data, nil)
}

// parseStrict performs the shared decode walk. When diags is non-nil,
// anomalies that don't prevent continuing (a minor version mismatch, a
// baseline, out-of-order or registry-disagreeing key in the ToC) are
// recorded as findings, and an object that fails to decode ends the
// walk with a finding instead of an error. diags == nil is Parse's
// strict mode: an object that fails to decode is returned as an error,
// a minor version mismatch is only logged, and the ToC is not checked.
func parseStrict(data []byte, diags *Diagnostics) (*Document, error) {
	r := NewReader(data)

	magic, err := r.ReadRaw(4)
	if err != nil {
		return nil, truncated(r.Pos(), fmt.Sprintf("header magic: %s", err))
	}
	if !bytes.Equal(magic, Magic[:]) {
		return nil, badMagic(r.Pos(), fmt.Sprintf("got %q, want %q", magic, Magic[:]))
	}

	major, err := r.ReadVaruint()
	if err != nil {
		return nil, truncated(r.Pos(), fmt.Sprintf("header major version: %s", err))
	}
	minor, err := r.ReadVaruint()
	if err != nil {
		return nil, truncated(r.Pos(), fmt.Sprintf("header minor version: %s", err))
	}
	if major != MajorVersion {
		return nil, unsupportedMajorVersion(r.Pos(), fmt.Sprintf("file is major %d, reader supports %d", major, MajorVersion))
	}
	if minor != MinorVersion {
		msg := fmt.Sprintf("file is %d.%d, reader is %d.%d", major, minor, MajorVersion, MinorVersion)
		log.Printf("Warning: minor_version_mismatch: %s", msg)
		if diags != nil {
			diags.note(r.Pos(), "minor_version_mismatch", msg)
		}
	}

	fileID, err := r.ReadVaruint()
	if err != nil {
		return nil, fmt.Errorf("header file_id: %w", err)
	}

	toc, err := readToc(r, diags)
	if err != nil {
		return nil, fmt.Errorf("table of contents: %w", err)
	}

	tocBacking := make(map[registry.PropertyKey]registry.BackingType, len(toc.Keys))
	for i, k := range toc.Keys {
		tocBacking[k] = toc.Backing[i]
	}

	var objects []ParsedObject
	for r.Remaining() > 0 {
		startPos := r.Pos()
		obj, err := readObject(r, tocBacking, diags)
		if err != nil {
			if diags != nil {
				msg := err.Error()
				log.Printf("Warning: excess_input_after_last_object: offset %d: %s", startPos, msg)
				diags.note(startPos, "excess_input_after_last_object", msg)
				break
			}
			return nil, fmt.Errorf("object at offset %d: %w", r.Pos(), err)
		}
		objects = append(objects, obj)
	}

	return &Document{
		Header:  Header{Major: major, Minor: minor, FileID: fileID},
		ToC:     toc,
		Objects: objects,
	}, nil
}

// readToc decodes the sorted non-baseline key list followed by its
// packed backing-type bitfield. Ascending order and ToC/registry
// backing-type agreement are invariants (§3, §8) but are only checked
// here when diags is non-nil — Parse itself trusts the bytes.
func readToc(r *Reader, diags *Diagnostics) (TableOfContents, error) {
	var keys []registry.PropertyKey
	for {
		v, err := r.ReadVaruint()
		if err != nil {
			return TableOfContents{}, malformedTableOfContents(r.Pos(), fmt.Sprintf("key list: %s", err))
		}
		if v == uint64(registry.PropTerminator) {
			break
		}
		key := registry.PropertyKey(v)
		if diags != nil {
			if registry.IsBaseline(key) {
				diags.note(r.Pos(), "baseline_key_in_toc", fmt.Sprintf("key %d", key))
			}
			if len(keys) > 0 && key <= keys[len(keys)-1] {
				diags.note(r.Pos(), "toc_not_ascending", fmt.Sprintf("key %d follows %d", key, keys[len(keys)-1]))
			}
		}
		keys = append(keys, key)
	}

	backing := make([]registry.BackingType, len(keys))
	wordCount := (len(keys) + 15) / 16
	for w := 0; w < wordCount; w++ {
		raw, err := r.ReadRaw(4)
		if err != nil {
			return TableOfContents{}, malformedTableOfContents(r.Pos(), fmt.Sprintf("backing-type word %d: %s", w, err))
		}
		word := uint32(raw[0]) | uint32(raw[1])<<8 | uint32(raw[2])<<16 | uint32(raw[3])<<24
		base := w * 16
		for i := 0; i < 16 && base+i < len(keys); i++ {
			bt := registry.BackingType((word >> uint(2*i)) & 0x3)
			backing[base+i] = bt
			if diags != nil {
				if canonical, ok := registry.BackingTypeOf(keys[base+i]); ok && canonical != bt {
					diags.note(r.Pos(), "backing_type_mismatch",
						fmt.Sprintf("key %d declared %s, registry expects %s", keys[base+i], bt, canonical))
				}
			}
		}
	}

	return TableOfContents{Keys: keys, Backing: backing}, nil
}

// readObject decodes one (type_key, properties..., terminator) record.
func readObject(r *Reader, tocBacking map[registry.PropertyKey]registry.BackingType, diags *Diagnostics) (ParsedObject, error) {
	typeVal, err := r.ReadVaruint()
	if err != nil {
		return ParsedObject{}, fmt.Errorf("type_key: %w", err)
	}
	obj := ParsedObject{Type: registry.TypeKey(typeVal)}

	for {
		keyVal, err := r.ReadVaruint()
		if err != nil {
			return ParsedObject{}, fmt.Errorf("property_key: %w", err)
		}
		key := registry.PropertyKey(keyVal)
		if key == registry.PropTerminator {
			return obj, nil
		}

		offset := r.Pos()
		var val ParsedValue
		if registry.IsRawByteBool(key) {
			b, err := r.ReadRawBool()
			if err != nil {
				return ParsedObject{}, fmt.Errorf("property %d: %w", key, err)
			}
			val = ParsedValue{Backing: registry.BackingUintOrBool, Bool: b}
		} else {
			bt, ok := tocBacking[key]
			if !ok {
				bt, ok = registry.BackingTypeOf(key)
			}
			if !ok {
				if diags != nil {
					diags.note(offset, "unknown_property_key", fmt.Sprintf("key %d", key))
					return ParsedObject{}, unknownPropertyKey(offset, fmt.Sprintf("key %d, cannot continue decoding", key))
				}
				return ParsedObject{}, unknownPropertyKey(offset, fmt.Sprintf("key %d", key))
			}
			val, err = readValue(r, bt)
			if err != nil {
				return ParsedObject{}, fmt.Errorf("property %d: %w", key, err)
			}
		}

		obj.Props = append(obj.Props, ParsedProp{Key: key, Offset: offset, Value: val})
	}
}

func readValue(r *Reader, bt registry.BackingType) (ParsedValue, error) {
	switch bt {
	case registry.BackingUintOrBool:
		v, err := r.ReadVaruint()
		if err != nil {
			return ParsedValue{}, err
		}
		return ParsedValue{Backing: bt, Uint: v}, nil
	case registry.BackingFloat:
		v, err := r.ReadFloat()
		if err != nil {
			return ParsedValue{}, err
		}
		return ParsedValue{Backing: bt, Float: v}, nil
	case registry.BackingString:
		v, err := r.ReadString()
		if err != nil {
			return ParsedValue{}, err
		}
		return ParsedValue{Backing: bt, String: v}, nil
	case registry.BackingColor:
		v, err := r.ReadColor()
		if err != nil {
			return ParsedValue{}, err
		}
		return ParsedValue{Backing: bt, Color: v}, nil
	default:
		return ParsedValue{}, fmt.Errorf("unhandled backing type %s", bt)
	}
}
