package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/azriel91/tears/internal/config"
	"github.com/azriel91/tears/internal/errors"
	"github.com/azriel91/tears/internal/ops"
	"github.com/azriel91/tears/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(db *sql.DB, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "tears",
		Usage:   "Do/don't suggestions for supporting someone overwhelmed",
		Version: Version,
		Commands: []*cli.Command{
			suggestCmd(db),
			moodsCmd(),
			addCmd(db, cfg),
			getCmd(db),
			listCmd(db),
			searchCmd(db),
			updateCmd(db, cfg),
			deleteCmd(db),
			exportCmd(db, cfg),
			importCmd(db, cfg),
			resetCmd(db),
			serveCmd(db, cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// suggestCmd creates the suggest command.
func suggestCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "suggest",
		Usage: "Get do/don't suggestions for the person's current state",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "trust", Usage: "Trust level: absent|present"},
			&cli.StringFlag{Name: "mood", Aliases: []string{"m"}, Usage: "Mood name or rank 1-6"},
			&cli.StringFlag{Name: "tags", Usage: "Comma-separated extra tags"},
		},
		Action: func(c *cli.Context) error {
			input := ops.SuggestInput{
				Trust: c.String("trust"),
				Mood:  c.String("mood"),
			}
			if tags := c.String("tags"); tags != "" {
				input.Tags = parseTags(tags)
			}

			output, err := ops.Suggest(c.Context, db, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// moodsCmd creates the moods command.
func moodsCmd() *cli.Command {
	return &cli.Command{
		Name:  "moods",
		Usage: "Show the mood scale and trust levels",
		Action: func(c *cli.Context) error {
			return outputJSON(ops.Moods())
		},
	}
}

// addCmd creates the add command.
func addCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Add a custom suggestion item",
		ArgsUsage: "<text>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "polarity", Aliases: []string{"p"}, Required: true, Usage: "Item polarity: do|dont"},
			&cli.StringFlag{Name: "id", Usage: "Stable identifier (generated if omitted)"},
			&cli.StringFlag{Name: "detail", Aliases: []string{"d"}, Usage: "Longer rationale (markdown)"},
			&cli.StringFlag{Name: "tags", Usage: "Comma-separated tags"},
			&cli.IntFlag{Name: "priority", Usage: "Rank within the polarity, lower first (default 100)"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("text argument is required"))
			}

			input := ops.AddInput{
				ID:       c.String("id"),
				Polarity: c.String("polarity"),
				Text:     strings.Join(c.Args().Slice(), " "),
				Detail:   c.String("detail"),
			}
			if tags := c.String("tags"); tags != "" {
				input.Tags = parseTags(tags)
			}
			if c.IsSet("priority") {
				priority := c.Int("priority")
				input.Priority = &priority
			}

			output, err := ops.Add(c.Context, db, cfg, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// getCmd creates the get command.
func getCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Get a single item by id",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			output, err := ops.Get(c.Context, db, ops.GetInput{ID: c.Args().First()})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// listCmd creates the list command.
func listCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List catalog items in engine order",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "polarity", Aliases: []string{"p"}, Usage: "Filter by polarity: do|dont"},
			&cli.StringFlag{Name: "tag", Usage: "Filter by tag"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: ops.DefaultListLimit, Usage: "Maximum items to return"},
			&cli.IntFlag{Name: "offset", Aliases: []string{"o"}, Value: 0, Usage: "Items to skip"},
		},
		Action: func(c *cli.Context) error {
			input := ops.ListInput{
				Limit:  c.Int("limit"),
				Offset: c.Int("offset"),
			}

			if polarity := c.String("polarity"); polarity != "" {
				input.Polarity = &polarity
			}
			if tag := c.String("tag"); tag != "" {
				input.Tag = &tag
			}

			output, err := ops.List(c.Context, db, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// searchCmd creates the search command.
func searchCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search item text and detail",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "polarity", Aliases: []string{"p"}, Usage: "Filter by polarity: do|dont"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: ops.DefaultSearchLimit, Usage: "Maximum items to return"},
			&cli.IntFlag{Name: "offset", Aliases: []string{"o"}, Value: 0, Usage: "Items to skip"},
		},
		Action: func(c *cli.Context) error {
			input := ops.SearchInput{
				Query:  strings.Join(c.Args().Slice(), " "),
				Limit:  c.Int("limit"),
				Offset: c.Int("offset"),
			}

			if polarity := c.String("polarity"); polarity != "" {
				input.Polarity = &polarity
			}

			output, err := ops.Search(c.Context, db, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// updateCmd creates the update command.
func updateCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "update",
		Usage:     "Update an item's text, detail, tags, or priority",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "text", Aliases: []string{"t"}, Usage: "New action line"},
			&cli.StringFlag{Name: "detail", Aliases: []string{"d"}, Usage: "New detail text (empty clears)"},
			&cli.StringFlag{Name: "tags", Usage: "New comma-separated tags (empty makes the item universal)"},
			&cli.IntFlag{Name: "priority", Usage: "New priority, lower first"},
		},
		Action: func(c *cli.Context) error {
			input := ops.UpdateInput{
				ID: c.Args().First(),
			}

			if c.IsSet("text") {
				text := c.String("text")
				input.Text = &text
			}
			if c.IsSet("detail") {
				detail := c.String("detail")
				input.Detail = &detail
			}
			if c.IsSet("tags") {
				tags := parseTags(c.String("tags"))
				input.Tags = &tags
			}
			if c.IsSet("priority") {
				priority := c.Int("priority")
				input.Priority = &priority
			}

			output, err := ops.Update(c.Context, db, cfg, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// deleteCmd creates the delete command.
func deleteCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Permanently delete a custom item",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			output, err := ops.Delete(c.Context, db, ops.DeleteInput{ID: c.Args().First()})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// exportCmd creates the export command.
func exportCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export catalog items to a JSONL file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "Export file path (default: ~/.tears/exports/<polarity>-<timestamp>.jsonl)"},
			&cli.StringFlag{Name: "polarity", Usage: "Export only do or dont items"},
		},
		Action: func(c *cli.Context) error {
			input := ops.ExportInput{
				Path: c.String("path"),
			}

			if polarity := c.String("polarity"); polarity != "" {
				input.Polarity = &polarity
			}

			output, err := ops.Export(c.Context, db, cfg, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// importCmd creates the import command.
func importCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Import items from a JSONL file",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Required: true, Usage: "Import file path"},
			&cli.StringFlag{Name: "mode", Aliases: []string{"m"}, Value: "error", Usage: "Collision mode: error|replace|skip"},
		},
		Action: func(c *cli.Context) error {
			input := ops.ImportInput{
				Path: c.String("path"),
				Mode: ops.ImportMode(c.String("mode")),
			}

			output, err := ops.Import(c.Context, db, cfg, input)
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// resetCmd creates the reset command.
func resetCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "reset",
		Usage: "Delete all items and restore the default catalog",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "confirm", Usage: "Required; reset is destructive"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Reset(c.Context, db, ops.ResetInput{Confirm: c.Bool("confirm")})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// serveCmd creates the serve command for the web UI.
func serveCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the local web UI",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Aliases: []string{"b"}, Value: "127.0.0.1", Usage: "Address to bind"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Value: 8220, Usage: "Port to listen on"},
		},
		Action: func(c *cli.Context) error {
			srv := web.NewServer(db, cfg, Version, c.String("bind"), c.Int("port"))
			return web.Run(srv)
		},
	}
}

// Helper functions

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if tErr, ok := err.(*errors.TearsError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", tErr.Code, tErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// parseTags splits a comma-separated string into a slice of tags.
func parseTags(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
