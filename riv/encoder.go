package riv

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"sort"

	"github.com/rive-app/rivecore/registry"
	"github.com/rive-app/rivecore/scene"
)

// Options configures Encode. The zero value encodes a non-deterministic
// file_id, which is almost never what a test wants — set Deterministic
// or FileID explicitly there.
type Options struct {
	// FileID pins the header's file_id. Takes precedence over
	// Deterministic when both are set.
	FileID *uint64

	// Deterministic encodes file_id as 0 instead of drawing one from
	// crypto/rand. Two Encode calls on the same ObjectList with
	// Deterministic set always produce byte-identical output (§8).
	Deterministic bool
}

func (o Options) resolveFileID() (uint64, error) {
	if o.FileID != nil {
		return *o.FileID, nil
	}
	if o.Deterministic {
		return 0, nil
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("generate file_id: %w", err)
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// Encode serializes an ordered object graph into a .riv byte stream:
// header, table of contents, then the object stream (§4.D).
func Encode(objects scene.ObjectList, opts Options) ([]byte, error) {
	fileID, err := opts.resolveFileID()
	if err != nil {
		return nil, err
	}

	keys, err := collectTocKeys(objects)
	if err != nil {
		return nil, err
	}

	w := NewWriter()
	w.WriteRaw(Magic[:])
	w.WriteVaruint(MajorVersion)
	w.WriteVaruint(MinorVersion)
	w.WriteVaruint(fileID)

	writeToc(w, keys)

	for _, obj := range objects {
		w.WriteVaruint(uint64(obj.Type))
		for _, p := range obj.Props {
			if err := writeProp(w, p.Key, p.Value); err != nil {
				return nil, fmt.Errorf("object type_key %d: %w", obj.Type, err)
			}
		}
		w.WriteVaruint(uint64(registry.PropTerminator))
	}

	return w.Bytes(), nil
}

// collectTocKeys gathers every distinct non-baseline property key used
// anywhere in the object stream, sorted ascending (§4.D, invariant 2).
func collectTocKeys(objects scene.ObjectList) ([]registry.PropertyKey, error) {
	seen := make(map[registry.PropertyKey]bool)
	for _, obj := range objects {
		for _, p := range obj.Props {
			if registry.IsBaseline(p.Key) {
				continue
			}
			if _, ok := registry.BackingTypeOf(p.Key); !ok {
				return nil, fmt.Errorf("unregistered property key %d on type_key %d", p.Key, obj.Type)
			}
			seen[p.Key] = true
		}
	}
	keys := make([]registry.PropertyKey, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys, nil
}

// writeToc writes the sorted key list (varuint-terminated by the
// reserved 0 key) followed by the 2-bit-packed backing-type bitfield,
// 16 keys per 32-bit little-endian word.
func writeToc(w *Writer, keys []registry.PropertyKey) {
	for _, k := range keys {
		w.WriteVaruint(uint64(k))
	}
	w.WriteVaruint(uint64(registry.PropTerminator))

	for wordStart := 0; wordStart < len(keys); wordStart += 16 {
		var word uint32
		end := wordStart + 16
		if end > len(keys) {
			end = len(keys)
		}
		for i := wordStart; i < end; i++ {
			bt, _ := registry.BackingTypeOf(keys[i])
			word |= uint32(bt&0x3) << uint(2*(i-wordStart))
		}
		var tmp [4]byte
		binary.LittleEndian.PutUint32(tmp[:], word)
		w.WriteRaw(tmp[:])
	}
}

// writeProp encodes one (key, value) pair. Raw-byte-bool keys bypass
// their nominal uint_or_bool varuint encoding for a single literal
// byte, regardless of the general backing-type dispatch (§4.A).
func writeProp(w *Writer, key registry.PropertyKey, v scene.Value) error {
	if registry.IsRawByteBool(key) {
		w.WriteVaruint(uint64(key))
		w.WriteRawBool(v.AsUint() != 0)
		return nil
	}
	bt, ok := registry.BackingTypeOf(key)
	if !ok {
		return fmt.Errorf("unregistered property key %d", key)
	}
	w.WriteVaruint(uint64(key))
	switch bt {
	case registry.BackingUintOrBool:
		w.WriteVaruint(v.AsUint())
	case registry.BackingFloat:
		w.WriteFloat(v.Float)
	case registry.BackingString:
		w.WriteString(v.String)
	case registry.BackingColor:
		w.WriteColor(v.Color)
	default:
		return fmt.Errorf("property key %d: unhandled backing type %s", key, bt)
	}
	return nil
}
