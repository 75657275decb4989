package mcp

import "github.com/mark3labs/mcp-go/mcp"

// Tool definitions. Parameter shapes mirror the ops input structs; times are
// HH:MM text on a 24-hour clock.

var generateToolDef = mcp.NewTool("schedule_generate",
	mcp.WithDescription("Generate a narrowing schedule: a daily time window that shrinks symmetrically toward its midpoint over a number of days. Optionally save the run."),
	mcp.WithString("start", mcp.Required(),
		mcp.Description("Window start time, HH:MM (24-hour clock)")),
	mcp.WithString("end", mcp.Required(),
		mcp.Description("Window end time, HH:MM. May be earlier than start for windows that cross midnight.")),
	mcp.WithNumber("days", mcp.Required(),
		mcp.Description("Number of days in the schedule (1-1000)")),
	mcp.WithString("finish_mode",
		mcp.Description("How the day count is interpreted (default inclusive)"),
		mcp.Enum("inclusive", "after-steps")),
	mcp.WithString("rounding",
		mcp.Description("Rounding policy for minute offsets (default nearest)"),
		mcp.Enum("nearest", "floor", "ceil")),
	mcp.WithString("curve",
		mcp.Description("Narrowing curve shape (default linear)"),
		mcp.Enum("linear", "percentage", "logistic", "sinusoidal")),
	mcp.WithBoolean("save",
		mcp.Description("Save the run in the catalog and return its ID")),
	mcp.WithString("name",
		mcp.Description("Optional display name for a saved run")),
	mcp.WithString("note",
		mcp.Description("Optional markdown note attached to a saved run")),
)

var fetchToolDef = mcp.NewTool("schedule_fetch",
	mcp.WithDescription("Fetch a saved run by ID with its full recomputed schedule."),
	mcp.WithString("id", mcp.Required(),
		mcp.Description("Run ID (ULID)")),
)

var listToolDef = mcp.NewTool("schedule_list",
	mcp.WithDescription("List saved runs, newest first."),
	mcp.WithNumber("limit",
		mcp.Description("Maximum runs to return (default 20, max 100)")),
	mcp.WithNumber("offset",
		mcp.Description("Number of runs to skip")),
)

var deleteToolDef = mcp.NewTool("schedule_delete",
	mcp.WithDescription("Delete a saved run by ID."),
	mcp.WithString("id", mcp.Required(),
		mcp.Description("Run ID (ULID)")),
)

var exportToolDef = mcp.NewTool("schedule_export",
	mcp.WithDescription("Export a saved run's schedule to a CSV file."),
	mcp.WithString("id", mcp.Required(),
		mcp.Description("Run ID (ULID)")),
	mcp.WithString("path",
		mcp.Description("Destination path (.csv). Defaults to ~/.hourzero/exports/<name>-<timestamp>.csv")),
)
