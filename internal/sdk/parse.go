package sdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/buger/jsonparser"

	"github.com/ziadkadry99/sdkview/internal/offset"
)

var errStop = errors.New("stop")

// AddFile decodes one dump file into the dataset. Files that do not map to a
// category are recorded in Files and otherwise ignored, as are files without
// a top-level "data" array.
func (d *Dataset) AddFile(name string, data []byte) error {
	c, known := CategoryForFile(name)
	if known {
		recs, err := DecodeRecords(c, data)
		if err != nil {
			return fmt.Errorf("decoding %s: %w", name, err)
		}
		if recs != nil {
			d.records[c] = recs
		}
	}
	d.Files = append(d.Files, FileInfo{Name: name, Size: int64(len(data))})
	return nil
}

// DecodeRecords converts the raw JSON of one dump file into typed records.
// Items whose shape does not match the category are skipped; a missing
// "data" array yields nil records and no error.
func DecodeRecords(c Category, data []byte) ([]Record, error) {
	if !json.Valid(data) {
		return nil, errors.New("malformed JSON")
	}
	body, vt, _, err := jsonparser.Get(data, "data")
	if err != nil || vt != jsonparser.Array {
		return nil, nil
	}

	recs := make([]Record, 0)
	_, err = jsonparser.ArrayEach(body, func(value []byte, vt jsonparser.ValueType, _ int, _ error) {
		if rec, ok := decodeRecord(c, value, vt); ok {
			recs = append(recs, rec)
		}
	})
	if err != nil {
		return nil, err
	}
	return recs, nil
}

func decodeRecord(c Category, value []byte, vt jsonparser.ValueType) (Record, bool) {
	if c == CategoryOffsets {
		return decodeOffsetRecord(value, vt)
	}
	if vt != jsonparser.Object {
		return Record{}, false
	}
	name, body, bt, ok := firstMember(value)
	if !ok {
		return Record{}, false
	}
	rec := Record{Name: name}
	if bt != jsonparser.Array {
		// Named but shapeless: keep it listed with no entries.
		return rec, true
	}
	switch c {
	case CategoryClasses, CategoryStructs:
		rec.Entries = decodeMembers(body)
	case CategoryEnums:
		if e, ok := decodeEnum(body); ok {
			rec.Entries = []Entry{e}
		}
	case CategoryFunctions:
		rec.Entries = decodeFunctions(body)
	}
	return rec, true
}

// decodeOffsetRecord accepts both a bare [name, value] pair and a named group
// {"Group": [[name, value], ...]}.
func decodeOffsetRecord(value []byte, vt jsonparser.ValueType) (Record, bool) {
	switch vt {
	case jsonparser.Array:
		o, ok := decodeOffsetPair(value)
		if !ok {
			return Record{}, false
		}
		return Record{Name: o.Name, Entries: []Entry{o}}, true
	case jsonparser.Object:
		name, body, bt, ok := firstMember(value)
		if !ok {
			return Record{}, false
		}
		rec := Record{Name: name}
		if bt == jsonparser.Array {
			jsonparser.ArrayEach(body, func(v []byte, t jsonparser.ValueType, _ int, _ error) {
				if t != jsonparser.Array {
					return
				}
				if o, ok := decodeOffsetPair(v); ok {
					rec.Entries = append(rec.Entries, o)
				}
			})
		}
		return rec, true
	}
	return Record{}, false
}

func decodeOffsetPair(pair []byte) (OffsetEntry, bool) {
	n, nt, _, err := jsonparser.Get(pair, "[0]")
	if err != nil {
		return OffsetEntry{}, false
	}
	o := OffsetEntry{Name: scalarText(n, nt)}
	v, t, _, err := jsonparser.Get(pair, "[1]")
	if err == nil {
		o.Value = scalarValue(v, t)
	}
	return o, true
}

// decodeMembers splits a class/struct body into markers and properties. Only
// the first inherit and size markers are kept.
func decodeMembers(body []byte) []Entry {
	var (
		entries  []Entry
		seenInh  bool
		seenSize bool
	)
	jsonparser.ArrayEach(body, func(v []byte, t jsonparser.ValueType, _ int, _ error) {
		if t != jsonparser.Object {
			return
		}
		if raw, rt, _, err := jsonparser.Get(v, KeyInheritInfo); err == nil {
			if !seenInh {
				seenInh = true
				entries = append(entries, InheritMarker{Chain: stringList(raw, rt)})
			}
			return
		}
		if raw, rt, _, err := jsonparser.Get(v, KeyClassSize); err == nil {
			if !seenSize {
				seenSize = true
				n, _ := toUint(raw, rt)
				entries = append(entries, SizeMarker{Bytes: n})
			}
			return
		}
		name, details, dt, ok := firstMember(v)
		if !ok {
			return
		}
		entries = append(entries, decodeProperty(name, details, dt))
	})
	return entries
}

func decodeProperty(name string, details []byte, dt jsonparser.ValueType) PropertyEntry {
	p := PropertyEntry{Name: name}
	if dt != jsonparser.Array {
		return p
	}
	p.Detailed = true
	if raw, rt, _, err := jsonparser.Get(details, "[0]"); err == nil {
		p.Type = leadingText(raw, rt)
	}
	if raw, rt, _, err := jsonparser.Get(details, "[1]"); err == nil {
		p.OffsetRaw = scalarValue(raw, rt)
		if rt == jsonparser.Number {
			p.Offset, p.HasOffset = toUint(raw, rt)
		}
	}
	if raw, rt, _, err := jsonparser.Get(details, "[2]"); err == nil && rt == jsonparser.Number {
		p.Size, p.HasSize = toUint(raw, rt)
	}
	return p
}

// decodeEnum reads [[values, underlyingType]]. Values may be a list of
// single-member objects or one object mapping names to values.
func decodeEnum(body []byte) (EnumEntry, bool) {
	inner, it, _, err := jsonparser.Get(body, "[0]")
	if err != nil {
		return EnumEntry{}, false
	}
	e := EnumEntry{}
	if it != jsonparser.Array {
		return e, true
	}
	if raw, rt, _, err := jsonparser.Get(inner, "[1]"); err == nil {
		e.UnderlyingType = scalarText(raw, rt)
	}
	vals, vt, _, err := jsonparser.Get(inner, "[0]")
	if err != nil {
		return e, true
	}
	switch vt {
	case jsonparser.Array:
		jsonparser.ArrayEach(vals, func(v []byte, t jsonparser.ValueType, _ int, _ error) {
			if t != jsonparser.Object {
				return
			}
			if k, raw, rt, ok := firstMember(v); ok {
				e.Values = append(e.Values, enumValue(k, raw, rt))
			}
		})
	case jsonparser.Object:
		jsonparser.ObjectEach(vals, func(k, raw []byte, rt jsonparser.ValueType, _ int) error {
			e.Values = append(e.Values, enumValue(string(k), raw, rt))
			return nil
		})
	}
	return e, true
}

func enumValue(name string, raw []byte, rt jsonparser.ValueType) EnumValue {
	ev := EnumValue{Name: name}
	if rt == jsonparser.Number {
		if n, err := strconv.ParseInt(string(raw), 10, 64); err == nil {
			ev.Value = n
			return ev
		}
	}
	ev.Raw = scalarText(raw, rt)
	return ev
}

// decodeFunctions reads a list of objects, each mapping function names to
// [[returnType], [[[type], _, name], ...], address].
func decodeFunctions(body []byte) []Entry {
	var entries []Entry
	jsonparser.ArrayEach(body, func(v []byte, t jsonparser.ValueType, _ int, _ error) {
		if t != jsonparser.Object {
			return
		}
		jsonparser.ObjectEach(v, func(k, fn []byte, ft jsonparser.ValueType, _ int) error {
			entries = append(entries, decodeFunction(string(k), fn, ft))
			return nil
		})
	})
	return entries
}

func decodeFunction(name string, fn []byte, ft jsonparser.ValueType) FunctionEntry {
	f := FunctionEntry{Name: name}
	if ft != jsonparser.Array {
		return f
	}
	if raw, rt, _, err := jsonparser.Get(fn, "[0]"); err == nil {
		f.ReturnType = leadingText(raw, rt)
	}
	if raw, rt, _, err := jsonparser.Get(fn, "[1]"); err == nil && rt == jsonparser.Array {
		jsonparser.ArrayEach(raw, func(pv []byte, pt jsonparser.ValueType, _ int, _ error) {
			if pt != jsonparser.Array {
				return
			}
			var p Param
			if tr, tt, _, err := jsonparser.Get(pv, "[0]"); err == nil {
				p.Type = leadingText(tr, tt)
			}
			if nr, nt, _, err := jsonparser.Get(pv, "[2]"); err == nil {
				p.Name = scalarText(nr, nt)
			}
			f.Params = append(f.Params, p)
		})
	}
	if raw, rt, _, err := jsonparser.Get(fn, "[2]"); err == nil {
		switch v := scalarValue(raw, rt).(type) {
		case uint64:
			f.Address, f.HasAddress = v, v != 0
		case float64:
			f.Address, f.HasAddress = uint64(max(v, 0)), v > 0
		case string:
			if v != "" {
				f.Address, f.HasAddress = offset.Parse(v), true
				f.AddressText = v
			}
		}
	}
	return f
}

func firstMember(obj []byte) (key string, val []byte, vt jsonparser.ValueType, ok bool) {
	jsonparser.ObjectEach(obj, func(k, v []byte, t jsonparser.ValueType, _ int) error {
		key, val, vt, ok = string(k), v, t, true
		return errStop
	})
	return key, val, vt, ok
}

// leadingText returns the first element of a type descriptor array, or the
// value itself when the dumper emitted a bare string.
func leadingText(raw []byte, rt jsonparser.ValueType) string {
	if rt == jsonparser.Array {
		v, t, _, err := jsonparser.Get(raw, "[0]")
		if err != nil {
			return ""
		}
		return scalarText(v, t)
	}
	return scalarText(raw, rt)
}

func stringList(raw []byte, rt jsonparser.ValueType) []string {
	if rt != jsonparser.Array {
		return nil
	}
	var out []string
	jsonparser.ArrayEach(raw, func(v []byte, t jsonparser.ValueType, _ int, _ error) {
		out = append(out, scalarText(v, t))
	})
	return out
}

func scalarText(raw []byte, rt jsonparser.ValueType) string {
	switch rt {
	case jsonparser.String:
		s, err := jsonparser.ParseString(raw)
		if err != nil {
			return string(raw)
		}
		return s
	case jsonparser.Number, jsonparser.Boolean:
		return string(raw)
	default:
		return ""
	}
}

// scalarValue keeps numbers numeric (uint64 when integral and non-negative,
// float64 otherwise) and strings as text. Anything else is nil.
func scalarValue(raw []byte, rt jsonparser.ValueType) any {
	switch rt {
	case jsonparser.Number:
		if u, err := strconv.ParseUint(string(raw), 10, 64); err == nil {
			return u
		}
		if f, err := strconv.ParseFloat(string(raw), 64); err == nil {
			return f
		}
		return string(raw)
	case jsonparser.String:
		return scalarText(raw, rt)
	default:
		return nil
	}
}

func toUint(raw []byte, rt jsonparser.ValueType) (uint64, bool) {
	switch v := scalarValue(raw, rt).(type) {
	case uint64:
		return v, true
	case float64:
		if v < 0 {
			return 0, true
		}
		return uint64(v), true
	}
	return 0, false
}
