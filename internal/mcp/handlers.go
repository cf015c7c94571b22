package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ziadkadry99/sdkview/internal/offset"
	"github.com/ziadkadry99/sdkview/internal/query"
	"github.com/ziadkadry99/sdkview/internal/render"
	"github.com/ziadkadry99/sdkview/internal/sdk"
)

// category reads and validates the category argument.
func category(request mcp.CallToolRequest) (sdk.Category, *mcp.CallToolResult) {
	raw, err := request.RequireString("category")
	if err != nil {
		return "", mcp.NewToolResultError("missing required parameter: category")
	}
	c, ok := sdk.ParseCategory(raw)
	if !ok {
		return "", mcp.NewToolResultError(fmt.Sprintf("unknown category %q", raw))
	}
	return c, nil
}

// handleListItems lists the records of a category.
func (s *Server) handleListItems(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, errResult := category(request)
	if errResult != nil {
		return errResult, nil
	}

	recs := s.data.Records(c)
	if len(recs) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No %s data available", c)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d %s in %s:\n", len(recs), c, s.data.Game)
	for i := range recs {
		sb.WriteString(recs[i].Name)
		if c == sdk.CategoryOffsets {
			if offs := recs[i].Offsets(); len(offs) == 1 {
				sb.WriteString(" = " + render.OffsetDisplay(offs[0].Value))
			}
		}
		sb.WriteString("\n")
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleFilterItems filters a category and explains each match.
func (s *Server) handleFilterItems(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, errResult := category(request)
	if errResult != nil {
		return errResult, nil
	}
	term, err := request.RequireString("term")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: term"), nil
	}
	if len([]rune(query.NormalizeTerm(term))) < query.MinTermLength {
		return mcp.NewToolResultError(fmt.Sprintf("term must be at least %d characters", query.MinTermLength)), nil
	}

	flags := query.Flags{
		Names:      request.GetBool("names", true),
		Properties: request.GetBool("properties", true),
		Offsets:    request.GetBool("offsets", true),
	}
	recs := s.data.Records(c)
	res := query.FilterCategory(c, recs, term, flags)

	var sb strings.Builder
	sb.WriteString(res.Info())
	sb.WriteString("\n")
	for _, i := range res.Visible {
		fmt.Fprintf(&sb, "%s: %s\n", recs[i].Name, res.Summary(i))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleSearchProperties runs the global property search.
func (s *Server) handleSearchProperties(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	res := query.SearchGlobalProperties(s.data.Records(sdk.CategoryClasses), s.data.Records(sdk.CategoryStructs), q)
	if res.Empty {
		return mcp.NewToolResultText("0 results"), nil
	}
	if msg := res.Message(); msg != "" {
		return mcp.NewToolResultText(msg), nil
	}
	return mcp.NewToolResultText(formatPropertyResults(res)), nil
}

// handleGetItem describes one record.
func (s *Server) handleGetItem(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c, errResult := category(request)
	if errResult != nil {
		return errResult, nil
	}
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: name"), nil
	}

	_, rec, ok := s.data.Lookup(c, name)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("no %s record named %q", c, name)), nil
	}
	return mcp.NewToolResultText(formatRecord(c, rec)), nil
}

// handleParseOffset parses an offset literal.
func (s *Server) handleParseOffset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := request.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: value"), nil
	}
	v := offset.ParseString(raw)
	return mcp.NewToolResultText(fmt.Sprintf("%d (%s)", v, offset.Hex(v))), nil
}

// formatPropertyResults renders search hits one per line.
func formatPropertyResults(res query.PropertyResults) string {
	var sb strings.Builder
	sb.WriteString(res.Info())
	sb.WriteString(":\n")
	for _, m := range res.Results {
		fmt.Fprintf(&sb, "%s.%s (%s) %s", m.ClassName, m.PropName, m.Category, m.Type)
		if m.HexOffset != "" {
			sb.WriteString(" @ " + m.HexOffset)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// formatRecord renders a record as plain text for agents.
func formatRecord(c sdk.Category, rec *sdk.Record) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%s)\n", rec.Name, c)

	switch c {
	case sdk.CategoryClasses, sdk.CategoryStructs:
		if chain, ok := rec.Inheritance(); ok {
			fmt.Fprintf(&sb, "Inherits: %s\n", strings.Join(chain, " -> "))
		}
		if size, ok := rec.ClassSize(); ok {
			fmt.Fprintf(&sb, "Size: %d bytes\n", size)
		}
		props := rec.Properties()
		fmt.Fprintf(&sb, "Properties (%d):\n", len(props))
		for _, p := range props {
			typ := p.Type
			if typ == "" {
				typ = render.UnknownType
			}
			fmt.Fprintf(&sb, "  %s %s", typ, p.Name)
			if p.HasOffset {
				sb.WriteString(" @ " + offset.Hex(p.Offset))
			}
			if p.HasSize {
				fmt.Fprintf(&sb, " [%d bytes]", p.Size)
			}
			sb.WriteString("\n")
		}
	case sdk.CategoryEnums:
		e, _ := rec.Enum()
		typ := e.UnderlyingType
		if typ == "" {
			typ = render.UnknownEnumType
		}
		fmt.Fprintf(&sb, "Type: %s\nValues (%d):\n", typ, len(e.Values))
		for _, v := range e.Values {
			fmt.Fprintf(&sb, "  %s = %s\n", v.Name, render.EnumValueText(v))
		}
	case sdk.CategoryFunctions:
		fns := rec.Functions()
		fmt.Fprintf(&sb, "Functions (%d):\n", len(fns))
		for _, f := range fns {
			fmt.Fprintf(&sb, "  %s", render.Signature(f))
			if addr := render.AddressText(f); addr != "" {
				sb.WriteString(" @ " + addr)
			}
			sb.WriteString("\n")
		}
	case sdk.CategoryOffsets:
		for _, o := range rec.Offsets() {
			fmt.Fprintf(&sb, "  %s = %s\n", o.Name, render.OffsetDisplay(o.Value))
		}
	}
	return sb.String()
}
