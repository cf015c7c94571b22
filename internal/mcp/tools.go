package mcp

import "github.com/mark3labs/mcp-go/mcp"

var categoryEnum = mcp.Enum("classes", "structs", "enums", "functions", "offsets")

// listItemsTool defines the list_items MCP tool.
var listItemsTool = mcp.NewTool("list_items",
	mcp.WithDescription("List every record of a category in the loaded SDK dump, in dump order."),
	mcp.WithString("category",
		mcp.Required(),
		mcp.Description("Record category"),
		categoryEnum,
	),
)

// filterItemsTool defines the filter_items MCP tool.
var filterItemsTool = mcp.NewTool("filter_items",
	mcp.WithDescription("Filter a category by a case-insensitive term. Reports why each record matched (name, property, offset)."),
	mcp.WithString("category",
		mcp.Required(),
		mcp.Description("Record category"),
		categoryEnum,
	),
	mcp.WithString("term",
		mcp.Required(),
		mcp.Description("Search term, at least 2 characters"),
	),
	mcp.WithBoolean("names",
		mcp.Description("Match record names (default true)"),
	),
	mcp.WithBoolean("properties",
		mcp.Description("Match property, enumerator and function names (default true)"),
	),
	mcp.WithBoolean("offsets",
		mcp.Description("Match hexadecimal offsets (default true)"),
	),
)

// searchPropertiesTool defines the search_properties MCP tool.
var searchPropertiesTool = mcp.NewTool("search_properties",
	mcp.WithDescription("Find class and struct properties whose name contains the query, with type and offset."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Property name fragment"),
	),
)

// getItemTool defines the get_item MCP tool.
var getItemTool = mcp.NewTool("get_item",
	mcp.WithDescription("Get the full layout of one record: inheritance, size and properties for classes and structs, values for enums, signatures for functions."),
	mcp.WithString("category",
		mcp.Required(),
		mcp.Description("Record category"),
		categoryEnum,
	),
	mcp.WithString("name",
		mcp.Required(),
		mcp.Description("Exact record name"),
	),
)

// parseOffsetTool defines the parse_offset MCP tool.
var parseOffsetTool = mcp.NewTool("parse_offset",
	mcp.WithDescription("Parse an offset literal (0x-prefixed hex, bare hex, or decimal) and show it in decimal and hex."),
	mcp.WithString("value",
		mcp.Required(),
		mcp.Description("Offset literal"),
	),
)
