// Package rivecore is the root entry point: three pure functions from
// a declarative JSON scene description to a .riv byte stream and back
// (§1, §5). Every operation is a pure function of its input — there is
// no shared mutable state, no goroutines, and nothing here blocks on
// I/O beyond what the caller already did to produce the bytes.
package rivecore

import (
	"encoding/json"
	"fmt"

	"github.com/rive-app/rivecore/riv"
	"github.com/rive-app/rivecore/scene"
)

// CompileOptions configures Compile. The zero value is safe: it
// encodes a non-deterministic file_id. Tests and other
// reproducibility-sensitive callers should set Deterministic.
type CompileOptions struct {
	FileID        *uint64
	Deterministic bool
}

func (o CompileOptions) toEncoderOptions() riv.Options {
	return riv.Options{FileID: o.FileID, Deterministic: o.Deterministic}
}

// Compile turns a JSON scene description into an encoded .riv byte
// stream: parse the description, build the object graph (§4.C), then
// encode it (§4.D).
func Compile(sceneJSON []byte, opts CompileOptions) ([]byte, error) {
	var desc scene.Description
	if err := json.Unmarshal(sceneJSON, &desc); err != nil {
		return nil, fmt.Errorf("decode scene description: %w", err)
	}
	objects, err := scene.Build(&desc)
	if err != nil {
		return nil, fmt.Errorf("build scene graph: %w", err)
	}
	data, err := riv.Encode(objects, opts.toEncoderOptions())
	if err != nil {
		return nil, fmt.Errorf("encode riv document: %w", err)
	}
	return data, nil
}

// Parse decodes a .riv byte stream into its object graph. Any
// structural violation is a hard error (§4.D, §7).
func Parse(data []byte) (*riv.Document, error) {
	return riv.Parse(data)
}

// Validate decodes data leniently, reporting every anomaly it notices
// instead of aborting on the first (§7, §8).
func Validate(data []byte) (*riv.Diagnostics, error) {
	return riv.Validate(data)
}
