package sdk

import "strings"

// Category identifies one of the five record collections in an SDK dump.
type Category string

const (
	CategoryClasses   Category = "classes"
	CategoryStructs   Category = "structs"
	CategoryEnums     Category = "enums"
	CategoryFunctions Category = "functions"
	CategoryOffsets   Category = "offsets"
)

// Categories lists every category in sidebar order.
var Categories = []Category{
	CategoryClasses,
	CategoryStructs,
	CategoryEnums,
	CategoryFunctions,
	CategoryOffsets,
}

// categoryFiles maps each category to the dump file that carries it.
var categoryFiles = map[Category]string{
	CategoryClasses:   "ClassesInfo.json",
	CategoryStructs:   "StructsInfo.json",
	CategoryEnums:     "EnumsInfo.json",
	CategoryFunctions: "FunctionsInfo.json",
	CategoryOffsets:   "OffsetsInfo.json",
}

// ParseCategory validates a category name (case-insensitive).
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	_, ok := categoryFiles[c]
	return c, ok
}

// FileName returns the dump file name for the category.
func (c Category) FileName() string { return categoryFiles[c] }

// CategoryForFile returns the category stored in the named dump file.
func CategoryForFile(name string) (Category, bool) {
	for c, f := range categoryFiles {
		if strings.EqualFold(f, name) {
			return c, true
		}
	}
	return "", false
}

// Sentinel property keys emitted by the dumper for structural metadata.
const (
	KeyInheritInfo = "__InheritInfo"
	KeyClassSize   = "__MDKClassSize"
)

// EntryKind tags the variant held by an Entry.
type EntryKind uint8

const (
	KindProperty EntryKind = iota
	KindInherit
	KindSize
	KindEnum
	KindFunction
	KindOffset
)

func (k EntryKind) String() string {
	switch k {
	case KindProperty:
		return "property"
	case KindInherit:
		return "inherit"
	case KindSize:
		return "size"
	case KindEnum:
		return "enum"
	case KindFunction:
		return "function"
	case KindOffset:
		return "offset"
	default:
		return "unknown"
	}
}

// Entry is one element of a record. The concrete type is one of
// PropertyEntry, InheritMarker, SizeMarker, EnumEntry, FunctionEntry or
// OffsetEntry.
type Entry interface {
	Kind() EntryKind
}

// PropertyEntry is a class or struct member: name plus [type, offset, size].
type PropertyEntry struct {
	Name string
	// Type is the first element of the type descriptor, empty when absent.
	Type      string
	Offset    uint64
	HasOffset bool
	// OffsetRaw is details[1] as dumped (number or string), nil when absent.
	// Offset and HasOffset are only set for numeric values.
	OffsetRaw any
	Size      uint64
	HasSize   bool
	// Detailed is false when the dumper emitted something other than an
	// array for the property details.
	Detailed bool
}

// InheritMarker carries the ancestor chain of a class or struct.
type InheritMarker struct {
	Chain []string
}

// SizeMarker carries the byte size of a class or struct.
type SizeMarker struct {
	Bytes uint64
}

// EnumValue is one enumerator.
type EnumValue struct {
	Name  string
	Value int64
	// Raw keeps the literal text when the value was not an integer.
	Raw string
}

// EnumEntry is the single nested entry of an enum record.
type EnumEntry struct {
	Values         []EnumValue
	UnderlyingType string
}

// Param is one function parameter.
type Param struct {
	Type string
	Name string
}

// FunctionEntry describes one function of a function group.
type FunctionEntry struct {
	Name       string
	ReturnType string
	Params     []Param
	Address    uint64
	HasAddress bool
	// AddressText is set when the dumper emitted the address as a string.
	AddressText string
}

// OffsetEntry is a named global offset. Value holds either a uint64, a
// float64 or a string exactly as the dump encoded it.
type OffsetEntry struct {
	Name  string
	Value any
}

func (PropertyEntry) Kind() EntryKind { return KindProperty }
func (InheritMarker) Kind() EntryKind { return KindInherit }
func (SizeMarker) Kind() EntryKind    { return KindSize }
func (EnumEntry) Kind() EntryKind     { return KindEnum }
func (FunctionEntry) Kind() EntryKind { return KindFunction }
func (OffsetEntry) Kind() EntryKind   { return KindOffset }

// Record is one named entity within a category.
type Record struct {
	Name    string
	Entries []Entry
}

// Properties returns the record's property entries in dump order.
func (r *Record) Properties() []PropertyEntry {
	var out []PropertyEntry
	for _, e := range r.Entries {
		if p, ok := e.(PropertyEntry); ok {
			out = append(out, p)
		}
	}
	return out
}

// Inheritance returns the ancestor chain, if the record carries one.
func (r *Record) Inheritance() ([]string, bool) {
	for _, e := range r.Entries {
		if m, ok := e.(InheritMarker); ok {
			return m.Chain, true
		}
	}
	return nil, false
}

// ClassSize returns the size marker value, if present.
func (r *Record) ClassSize() (uint64, bool) {
	for _, e := range r.Entries {
		if m, ok := e.(SizeMarker); ok {
			return m.Bytes, true
		}
	}
	return 0, false
}

// Enum returns the enum entry, if the record is an enum.
func (r *Record) Enum() (EnumEntry, bool) {
	for _, e := range r.Entries {
		if m, ok := e.(EnumEntry); ok {
			return m, true
		}
	}
	return EnumEntry{}, false
}

// Functions returns the function entries in dump order.
func (r *Record) Functions() []FunctionEntry {
	var out []FunctionEntry
	for _, e := range r.Entries {
		if f, ok := e.(FunctionEntry); ok {
			out = append(out, f)
		}
	}
	return out
}

// Offsets returns the offset entries in dump order.
func (r *Record) Offsets() []OffsetEntry {
	var out []OffsetEntry
	for _, e := range r.Entries {
		if o, ok := e.(OffsetEntry); ok {
			out = append(out, o)
		}
	}
	return out
}

// FileInfo describes one file that contributed to a dataset.
type FileInfo struct {
	Name string
	Size int64
}

// Dataset is the fully loaded metadata of one game. It is not modified after
// loading; opening another game replaces it wholesale.
type Dataset struct {
	Game    string
	Files   []FileInfo
	records map[Category][]Record
}

// NewDataset returns an empty dataset for the named game.
func NewDataset(game string) *Dataset {
	return &Dataset{Game: game, records: make(map[Category][]Record)}
}

// Records returns the category's records. A category absent from the dump
// yields nil.
func (d *Dataset) Records(c Category) []Record {
	if d == nil {
		return nil
	}
	return d.records[c]
}

// Has reports whether the dump carried the category at all.
func (d *Dataset) Has(c Category) bool {
	if d == nil {
		return false
	}
	_, ok := d.records[c]
	return ok
}

// Lookup finds a record by exact name.
func (d *Dataset) Lookup(c Category, name string) (int, *Record, bool) {
	recs := d.Records(c)
	for i := range recs {
		if recs[i].Name == name {
			return i, &recs[i], true
		}
	}
	return -1, nil, false
}

// TotalBytes sums the sizes of the contributing files.
func (d *Dataset) TotalBytes() int64 {
	var n int64
	for _, f := range d.Files {
		n += f.Size
	}
	return n
}
