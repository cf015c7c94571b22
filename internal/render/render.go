// Package render produces the HTML detail panels shown by the viewer.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"

	"github.com/ziadkadry99/sdkview/internal/offset"
	"github.com/ziadkadry99/sdkview/internal/sdk"
)

// Fallback labels used when the dump omits a value.
const (
	UnknownType      = "Unknown"
	UnknownEnumType  = "unknown"
	UnknownParamType = "unknown"
	DefaultReturn    = "void"
	SignatureParam   = "param"
	ListParam        = "unnamed"
)

// Renderer turns records into detail HTML. It is safe for concurrent use.
type Renderer struct {
	md   goldmark.Markdown
	tmpl *template.Template
}

// New parses the detail templates and prepares the signature highlighter.
func New() (*Renderer, error) {
	tmpl, err := template.New("detail").Parse(detailTemplates)
	if err != nil {
		return nil, fmt.Errorf("parsing detail templates: %w", err)
	}
	md := goldmark.New(
		goldmark.WithExtensions(
			highlighting.NewHighlighting(
				highlighting.WithStyle("monokai"),
			),
		),
	)
	return &Renderer{md: md, tmpl: tmpl}, nil
}

// Detail renders the detail panel of rec within category c.
func (r *Renderer) Detail(c sdk.Category, rec *sdk.Record) (string, error) {
	var (
		name string
		data any
		err  error
	)
	switch c {
	case sdk.CategoryClasses, sdk.CategoryStructs:
		name, data = "members", membersView(c, rec)
	case sdk.CategoryEnums:
		name, data = "enum", enumView(rec)
	case sdk.CategoryFunctions:
		name = "functions"
		data, err = r.functionsView(rec)
	case sdk.CategoryOffsets:
		name, data = "offsets", offsetsView(rec)
	default:
		return "", fmt.Errorf("unknown category %q", c)
	}
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("rendering %s detail for %s: %w", c, rec.Name, err)
	}
	return buf.String(), nil
}

type propertyRow struct {
	Name      string
	Type      string
	HexOffset string
	Size      string
	Copy      string
}

type membersData struct {
	Name       string
	Category   sdk.Category
	Size       uint64
	Chain      []string
	Properties []propertyRow
}

func membersView(c sdk.Category, rec *sdk.Record) membersData {
	d := membersData{Name: rec.Name, Category: c}
	d.Size, _ = rec.ClassSize()
	d.Chain, _ = rec.Inheritance()
	for _, p := range rec.Properties() {
		row := propertyRow{Name: p.Name, Type: p.Type}
		if row.Type == "" {
			row.Type = UnknownType
		}
		if p.HasOffset {
			row.HexOffset = offset.Hex(p.Offset)
			row.Copy = row.HexOffset
		}
		if p.HasSize {
			row.Size = fmt.Sprint(p.Size)
		}
		d.Properties = append(d.Properties, row)
	}
	return d
}

type enumData struct {
	Name   string
	Type   string
	Values []valueRow
}

type valueRow struct {
	Name  string
	Value string
}

func enumView(rec *sdk.Record) enumData {
	d := enumData{Name: rec.Name, Type: UnknownEnumType}
	e, ok := rec.Enum()
	if !ok {
		return d
	}
	if e.UnderlyingType != "" {
		d.Type = e.UnderlyingType
	}
	for _, v := range e.Values {
		d.Values = append(d.Values, valueRow{Name: v.Name, Value: EnumValueText(v)})
	}
	return d
}

// EnumValueText is the displayed and copied text of an enumerator.
func EnumValueText(v sdk.EnumValue) string {
	if v.Raw != "" {
		return v.Raw
	}
	return fmt.Sprint(v.Value)
}

type functionRow struct {
	Name      string
	Signature string
	Highlight template.HTML
	Params    []string
	Address   string
}

type functionsData struct {
	Name      string
	Functions []functionRow
}

func (r *Renderer) functionsView(rec *sdk.Record) (functionsData, error) {
	d := functionsData{Name: rec.Name}
	for _, f := range rec.Functions() {
		row := functionRow{Name: f.Name, Signature: Signature(f), Address: AddressText(f)}
		for _, p := range f.Params {
			row.Params = append(row.Params, paramText(p, ListParam))
		}
		hl, err := r.highlight(row.Signature)
		if err != nil {
			return d, fmt.Errorf("highlighting %s: %w", f.Name, err)
		}
		row.Highlight = hl
		d.Functions = append(d.Functions, row)
	}
	return d, nil
}

// highlight renders a C++ signature as a syntax-highlighted code block.
func (r *Renderer) highlight(sig string) (template.HTML, error) {
	src := "```cpp\n" + sig + "\n```\n"
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// Signature renders "ret name(type name, ...)".
func Signature(f sdk.FunctionEntry) string {
	ret := f.ReturnType
	if ret == "" {
		ret = DefaultReturn
	}
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = paramText(p, SignatureParam)
	}
	return fmt.Sprintf("%s %s(%s)", ret, f.Name, strings.Join(params, ", "))
}

func paramText(p sdk.Param, fallback string) string {
	typ, name := p.Type, p.Name
	if typ == "" {
		typ = UnknownParamType
	}
	if name == "" {
		name = fallback
	}
	return typ + " " + name
}

// AddressText is the displayed address of a function, empty when absent.
func AddressText(f sdk.FunctionEntry) string {
	if !f.HasAddress {
		return ""
	}
	return offset.Hex(f.Address)
}

type offsetsData struct {
	Name    string
	Entries []valueRow
}

func offsetsView(rec *sdk.Record) offsetsData {
	d := offsetsData{Name: rec.Name}
	for _, o := range rec.Offsets() {
		d.Entries = append(d.Entries, valueRow{Name: o.Name, Value: OffsetDisplay(o.Value)})
	}
	return d
}

// OffsetDisplay renders a raw offset value for listing: numbers as uppercase
// hex, strings verbatim.
func OffsetDisplay(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		return offset.Hex(offset.Parse(x))
	}
}
