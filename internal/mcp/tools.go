package mcp

import "github.com/mark3labs/mcp-go/mcp"

// Tool definitions. Descriptions are what MCP clients show to the model,
// so they spell out defaults and constraints.

var suggestToolDef = mcp.NewTool("suggest_for",
	mcp.WithDescription("Get do/don't suggestions for supporting an overwhelmed person. Builds a context from trust, mood, and extra tags; returns matching items ranked by priority. All arguments are optional; with none, only universally applicable items are returned."),
	mcp.WithString("trust",
		mcp.Description("Whether the person trusts you: absent or present."),
	),
	mcp.WithString("mood",
		mcp.Description("The person's mood: a name (anguished, closed, cautious, unsettled, calm, hopeful) or a rank 1-6."),
	),
	mcp.WithArray("tags",
		mcp.Description("Extra situational tags to match against item tags."),
		mcp.Items(map[string]any{"type": "string"}),
	),
)

var moodsToolDef = mcp.NewTool("mood_levels",
	mcp.WithDescription("List the 1-6 mood scale (symptoms, summary, description) and the trust levels. Static reference; takes no arguments."),
)

var addToolDef = mcp.NewTool("item_add",
	mcp.WithDescription("Add a custom suggestion item to the catalog. Polarity and text are required; a ULID is generated when no id is given. Priority defaults to 100 (lower ranks first)."),
	mcp.WithString("polarity",
		mcp.Required(),
		mcp.Description("Item polarity: do or dont."),
	),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("Short action line, e.g. 'Sit with them'."),
	),
	mcp.WithString("id",
		mcp.Description("Stable identifier; normalized to lowercase. Generated when omitted."),
	),
	mcp.WithString("detail",
		mcp.Description("Optional longer rationale (markdown)."),
	),
	mcp.WithArray("tags",
		mcp.Description("Situational tags; an item with no tags applies universally."),
		mcp.Items(map[string]any{"type": "string"}),
	),
	mcp.WithNumber("priority",
		mcp.Description("Rank within the polarity; lower is shown first. Default 100."),
	),
)

var getToolDef = mcp.NewTool("item_get",
	mcp.WithDescription("Get a single catalog item by id, including its detail text."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Item id."),
	),
)

var listToolDef = mcp.NewTool("item_list",
	mcp.WithDescription("List catalog item summaries in engine order (priority asc, id asc), optionally filtered by polarity or tag. Paginated: limit default 20, max 100."),
	mcp.WithString("polarity",
		mcp.Description("Filter by polarity: do or dont."),
	),
	mcp.WithString("tag",
		mcp.Description("Filter to items carrying this tag."),
	),
	mcp.WithNumber("limit",
		mcp.Description("Page size (default 20, max 100)."),
	),
	mcp.WithNumber("offset",
		mcp.Description("Pagination offset (default 0)."),
	),
)

var searchToolDef = mcp.NewTool("item_search",
	mcp.WithDescription("Case-insensitive substring search over item text and detail. Paginated like item_list."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Search query (max 200 characters; wildcards are literal)."),
	),
	mcp.WithString("polarity",
		mcp.Description("Filter by polarity: do or dont."),
	),
	mcp.WithNumber("limit",
		mcp.Description("Page size (default 20, max 100)."),
	),
	mcp.WithNumber("offset",
		mcp.Description("Pagination offset (default 0)."),
	),
)

var updateToolDef = mcp.NewTool("item_update",
	mcp.WithDescription("Update an existing item's text, detail, tags, or priority. Id and polarity are immutable. At least one editable field is required."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Item id."),
	),
	mcp.WithString("text",
		mcp.Description("New action line."),
	),
	mcp.WithString("detail",
		mcp.Description("New detail text; empty string clears it."),
	),
	mcp.WithArray("tags",
		mcp.Description("New tag set; empty array makes the item universal."),
		mcp.Items(map[string]any{"type": "string"}),
	),
	mcp.WithNumber("priority",
		mcp.Description("New priority; lower is shown first."),
	),
)

var deleteToolDef = mcp.NewTool("item_delete",
	mcp.WithDescription("Permanently delete a custom item. Builtin items cannot be deleted; use item_reset to restore the default catalog."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Item id."),
	),
)

var exportToolDef = mcp.NewTool("item_export",
	mcp.WithDescription("Export catalog items to a JSONL file (header line + one record per line). Default path is ~/.tears/exports/<name>-<timestamp>.jsonl; custom paths must be .jsonl files directly in an allowed directory."),
	mcp.WithString("path",
		mcp.Description("Destination .jsonl path. Defaults to the exports directory."),
	),
	mcp.WithString("polarity",
		mcp.Description("Export only do or dont items."),
	),
)

var importToolDef = mcp.NewTool("item_import",
	mcp.WithDescription("Import items from a JSONL export file. Modes: error (atomic, fail on collision; default), replace (overwrite on collision), skip (keep existing)."),
	mcp.WithString("path",
		mcp.Required(),
		mcp.Description("Source .jsonl path."),
	),
	mcp.WithString("mode",
		mcp.Description("Collision mode: error, replace, or skip. Default error."),
	),
)

var resetToolDef = mcp.NewTool("item_reset",
	mcp.WithDescription("Delete all items (builtin and custom) and reseed the default catalog. Destructive; requires confirm=true."),
	mcp.WithBoolean("confirm",
		mcp.Required(),
		mcp.Description("Must be true to proceed."),
	),
)
