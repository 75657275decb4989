package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"hourzero/internal/clock"
	"hourzero/internal/config"
	"hourzero/internal/errors"
	"hourzero/internal/ops"
	"hourzero/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(db *sql.DB, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "hourzero",
		Usage:   "Narrowing time-window scheduler",
		Version: Version,
		Commands: []*cli.Command{
			generateCmd(db, cfg),
			listCmd(db),
			showCmd(db),
			deleteCmd(db),
			exportCmd(db, cfg),
			serveCmd(db, cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// generateCmd creates the generate command.
func generateCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Generate a narrowing schedule",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "start", Aliases: []string{"s"}, Required: true, Usage: "Window start time (HH:MM)"},
			&cli.StringFlag{Name: "end", Aliases: []string{"e"}, Required: true, Usage: "Window end time (HH:MM)"},
			&cli.IntFlag{Name: "days", Aliases: []string{"d"}, Usage: "Number of days in the schedule"},
			&cli.StringFlag{Name: "from", Usage: "Schedule start date (YYYY-MM-DD), alternative to --days"},
			&cli.StringFlag{Name: "to", Usage: "Schedule end date (YYYY-MM-DD), inclusive"},
			&cli.StringFlag{Name: "finish-mode", Aliases: []string{"f"}, Usage: "Day-count interpretation: inclusive|after-steps"},
			&cli.StringFlag{Name: "rounding", Aliases: []string{"r"}, Usage: "Rounding policy: nearest|floor|ceil"},
			&cli.StringFlag{Name: "curve", Aliases: []string{"c"}, Usage: "Narrowing curve: linear|percentage|logistic|sinusoidal"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: "json", Usage: "Output format: json|csv"},
			&cli.BoolFlag{Name: "save", Usage: "Save the run in the catalog"},
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Display name for the saved run"},
			&cli.StringFlag{Name: "note", Usage: "Markdown note for the saved run (or pipe via stdin)"},
		},
		Action: func(c *cli.Context) error {
			days, err := resolveDays(c)
			if err != nil {
				return outputError(err)
			}

			input := ops.GenerateInput{
				Start:      c.String("start"),
				End:        c.String("end"),
				Days:       days,
				FinishMode: c.String("finish-mode"),
				Rounding:   c.String("rounding"),
				Curve:      c.String("curve"),
				Save:       c.Bool("save"),
			}

			if name := c.String("name"); name != "" {
				input.Name = &name
			}
			if note := c.String("note"); note != "" {
				input.Note = &note
			} else if input.Save && stdinHasData() {
				text, err := readStdin()
				if err != nil {
					return outputError(errors.NewInternal(err))
				}
				if text != "" {
					input.Note = &text
				}
			}

			output, err := ops.Generate(db, cfg, input)
			if err != nil {
				return outputError(err)
			}

			if c.String("output") == "csv" {
				return outputCSV(output)
			}
			return outputJSON(output)
		},
	}
}

// listCmd creates the list command.
func listCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List saved runs, newest first",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Maximum runs to return"},
			&cli.IntFlag{Name: "offset", Usage: "Number of runs to skip"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.List(db, ops.ListInput{
				Limit:  c.Int("limit"),
				Offset: c.Int("offset"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// showCmd creates the show command.
func showCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show a saved run with its full schedule",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: "json", Usage: "Output format: json|csv"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("run ID is required"))
			}

			output, err := ops.Fetch(db, c.Args().First())
			if err != nil {
				return outputError(err)
			}

			if c.String("output") == "csv" {
				return outputCSV(&ops.GenerateOutput{
					Input:   output.Run.Input,
					Rows:    output.Rows,
					Summary: output.Run.Summary,
				})
			}
			return outputJSON(output)
		},
	}
}

// deleteCmd creates the delete command.
func deleteCmd(db *sql.DB) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Delete a saved run",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("run ID is required"))
			}

			output, err := ops.Delete(db, c.Args().First())
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
		Name:      "export",
		Usage:     "Export a saved run's schedule to a CSV file",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "Destination path (.csv), default ~/.hourzero/exports/"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("run ID is required"))
			}

			output, err := ops.Export(db, cfg, ops.ExportInput{
				ID:   c.Args().First(),
				Path: c.String("path"),
			})
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
		Usage: "Start the web UI",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Value: "127.0.0.1", Usage: "Address to bind to"},
			&cli.IntFlag{Name: "port", Value: 1440, Usage: "Port to listen on"},
		},
		Action: func(c *cli.Context) error {
			srv := web.NewServer(db, cfg, Version, c.String("bind"), c.Int("port"))
			return web.Run(srv)
		},
	}
}

// resolveDays derives the day count from --days or the --from/--to date pair.
func resolveDays(c *cli.Context) (int, error) {
	hasDays := c.IsSet("days")
	hasRange := c.IsSet("from") || c.IsSet("to")

	if hasDays && hasRange {
		return 0, errors.NewInvalidRequest("use either --days or --from/--to, not both")
	}
	if hasDays {
		return c.Int("days"), nil
	}
	if !hasRange {
		return 0, errors.NewInvalidRequest("either --days or --from/--to is required")
	}
	if !c.IsSet("from") || !c.IsSet("to") {
		return 0, errors.NewInvalidRequest("--from and --to must be given together")
	}

	from, err := time.Parse("2006-01-02", c.String("from"))
	if err != nil {
		return 0, errors.NewInvalidRequest(fmt.Sprintf("invalid --from date %q, expected YYYY-MM-DD", c.String("from")))
	}
	to, err := time.Parse("2006-01-02", c.String("to"))
	if err != nil {
		return 0, errors.NewInvalidRequest(fmt.Sprintf("invalid --to date %q, expected YYYY-MM-DD", c.String("to")))
	}

	return clock.DaysBetween(from, to)
}

// outputJSON writes indented JSON to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputCSV writes the schedule as CSV to stdout.
func outputCSV(out *ops.GenerateOutput) error {
	if err := ops.WriteCSV(os.Stdout, out); err != nil {
		return outputError(err)
	}
	return nil
}

// outputError formats error for CLI.
func outputError(err error) error {
	if sErr, ok := err.(*errors.ScheduleError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", sErr.Code, sErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin.
func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
