package riv

import (
	"errors"
	"fmt"

	"github.com/rive-app/rivecore/registry"
)

// Validate decodes data leniently and reports every anomaly it notices
// as a Finding instead of aborting on the first one — useful for
// tooling that wants to show a human everything wrong with a file in
// one pass rather than fixing-and-rerunning (§7). It never returns a
// non-nil error: a problem that stops decoding (including data too short
// to hold a header) also becomes a Finding, and Document is then nil.
func Validate(data []byte) (*Diagnostics, error) {
	diags := &Diagnostics{}
	doc, err := parseStrict(data, diags)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			diags.note(pe.Offset, pe.Kind.String(), pe.Detail)
		} else {
			diags.note(0, "unparseable", err.Error())
		}
		return diags, nil
	}
	diags.Document = doc
	if doc == nil {
		return diags, nil
	}

	checkEmissionOrder(doc, diags)
	checkStateMachineSentinels(doc, diags)
	return diags, nil
}

// checkEmissionOrder verifies that, for classes with a mandated
// property order (Artboard, LinearAnimation), the properties actually
// present in the file appear in the order the registry mandates (§3,
// invariant 6; §8).
func checkEmissionOrder(doc *Document, diags *Diagnostics) {
	for _, obj := range doc.Objects {
		order, ok := registry.EmissionOrder[obj.Type]
		if !ok {
			continue
		}
		rank := make(map[registry.PropertyKey]int, len(order))
		for i, k := range order {
			rank[k] = i
		}
		last := -1
		for _, p := range obj.Props {
			r, tracked := rank[p.Key]
			if !tracked {
				continue
			}
			if r < last {
				diags.note(p.Offset, "emission_order_violation",
					fmt.Sprintf("type_key %d: property %d out of mandated order", obj.Type, p.Key))
			}
			last = r
		}
		if always, ok := registry.AlwaysEmit[obj.Type]; ok {
			present := make(map[registry.PropertyKey]bool, len(obj.Props))
			for _, p := range obj.Props {
				present[p.Key] = true
			}
			for k, must := range always {
				if must && !present[k] {
					diags.note(0, "missing_mandatory_property",
						fmt.Sprintf("type_key %d missing always-emit property %d", obj.Type, k))
				}
			}
		}
		if never, ok := registry.NeverEmit[obj.Type]; ok {
			for _, p := range obj.Props {
				if never[p.Key] {
					diags.note(p.Offset, "forbidden_property_emitted",
						fmt.Sprintf("type_key %d emits forbidden property %d", obj.Type, p.Key))
				}
			}
		}
	}
}

// checkStateMachineSentinels verifies that whenever a StateMachineLayer
// has children, the first ones encountered in file order are exactly
// EntryState, AnyState, ExitState, in that order (§3, §8).
func checkStateMachineSentinels(doc *Document, diags *Diagnostics) {
	type layerChildren struct {
		seenTypes []registry.TypeKey
	}
	layers := make(map[int]*layerChildren)

	layerIndexByObjectIndex := make(map[int]bool, len(doc.Objects))
	for i, obj := range doc.Objects {
		if obj.Type == registry.StateMachineLayer {
			layerIndexByObjectIndex[i] = true
		}
	}

	artboardStart := -1
	for i, obj := range doc.Objects {
		if obj.Type == registry.Artboard {
			artboardStart = i
			continue
		}
		if obj.Type != registry.EntryState && obj.Type != registry.AnyState &&
			obj.Type != registry.ExitState && obj.Type != registry.AnimationState &&
			obj.Type != registry.StateTransition {
			continue
		}
		localParent, ok := findParentID(obj)
		if !ok || artboardStart < 0 {
			continue
		}
		// parent_id is artboard-local: index 0 is the enclosing Artboard.
		parentIdx := artboardStart + localParent
		if !layerIndexByObjectIndex[parentIdx] {
			continue
		}
		lc, ok := layers[parentIdx]
		if !ok {
			lc = &layerChildren{}
			layers[parentIdx] = lc
		}
		lc.seenTypes = append(lc.seenTypes, obj.Type)
	}

	wantPrefix := []registry.TypeKey{registry.EntryState, registry.AnyState, registry.ExitState}
	for parentIdx, lc := range layers {
		for i, want := range wantPrefix {
			if i >= len(lc.seenTypes) || lc.seenTypes[i] != want {
				diags.note(0, "state_machine_sentinel_order",
					fmt.Sprintf("layer object %d: expected sentinel %d at position %d", parentIdx, want, i))
				break
			}
		}
	}
}

func findParentID(obj ParsedObject) (int, bool) {
	for _, p := range obj.Props {
		if p.Key == registry.PropParentID {
			return int(p.Value.Uint), true
		}
	}
	return 0, false
}
