package riv

import "github.com/rive-app/rivecore/registry"

// Magic is the fixed 4-byte file signature.
var Magic = [4]byte{'R', 'I', 'V', 'E'}

const (
	MajorVersion = 7
	MinorVersion = 0
)

// Header is the fixed leading section of a .riv file.
type Header struct {
	Major  uint64
	Minor  uint64
	FileID uint64
}

// TableOfContents lists, in ascending order, every non-baseline
// property key the object stream uses, each tagged with its backing
// type — so a conforming reader can dispatch decoding without first
// knowing every object's class (§4.D).
type TableOfContents struct {
	Keys    []registry.PropertyKey
	Backing []registry.BackingType
}

// Document is a fully parsed .riv file: header, ToC, and the flat
// object stream in file order.
type Document struct {
	Header  Header
	ToC     TableOfContents
	Objects []ParsedObject
}

// ParsedObject mirrors scene.Object but as decoded from the wire,
// retaining each property's raw position for diagnostics.
type ParsedObject struct {
	Type  registry.TypeKey
	Props []ParsedProp
}

type ParsedProp struct {
	Key    registry.PropertyKey
	Offset int
	Value  ParsedValue
}

// ParsedValue carries the decoded value plus the backing type it was
// decoded as, so Validate can cross-check it against the ToC.
type ParsedValue struct {
	Backing registry.BackingType
	Uint    uint64
	Bool    bool
	Float   float32
	String  string
	Color   uint32
}

// Finding is one diagnostic produced by Validate: a byte-offset-tagged
// anomaly that did not necessarily abort parsing (§7).
type Finding struct {
	Offset  int
	Code    string
	Message string
}

// Diagnostics is Validate's result: the document it managed to parse
// (nil if parsing failed outright) plus every anomaly noticed along
// the way. A document with zero Findings is wire-valid; Validate never
// fails solely because Findings is non-empty — callers decide whether
// any of them are fatal for their use case.
type Diagnostics struct {
	Document *Document
	Findings []Finding
}

func (d *Diagnostics) note(offset int, code, message string) {
	d.Findings = append(d.Findings, Finding{Offset: offset, Code: code, Message: message})
}
