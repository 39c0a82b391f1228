// submodule cmd contains command definitions
package main

import (
	"strings"

	"github.com/desertthunder/pictx/internal/formatter"
	"github.com/desertthunder/pictx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// setupCommand handles setup operations for the config file, database and site session.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create config.toml and initialize the preference database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   defaultConfigPath,
			},
		},
		Action: r.Setup,
		Commands: []*cli.Command{
			{
				Name:  "session",
				Usage: "Import the session cookie and CSRF token from a browser request",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   defaultConfigPath,
					},
					&cli.StringFlag{
						Name:  "curl",
						Usage: "cURL command from browser DevTools (Copy as cURL)",
					},
					&cli.StringFlag{
						Name:  "curl-file",
						Usage: "Path to .sh file containing cURL command",
					},
				},
				Action: r.SetupSession,
			},
		},
	}
}

// browseCommand returns the top-level TUI command.
func browseCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "browse",
		Aliases: []string{"tui", "ui"},
		Usage:   "Browse the gallery in an interactive terminal UI",
		Action:  r.Browse,
	}
}

// photosCommand handles listing operations
func photosCommand(r *Runner) *cli.Command {
	formats := make([]string, len(formatter.Formats))
	for i, f := range formatter.Formats {
		formats[i] = string(f)
	}

	return &cli.Command{
		Name:  "photos",
		Usage: "Photo listing operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "Load the photo index and print it",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format (" + strings.Join(formats, ", ") + ")",
						Value:   string(formatter.FormatText),
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Write the listing to a file instead of stdout",
					},
				},
				Action: r.PhotosList,
			},
			{
				Name:  "page",
				Usage: "Fetch one page of the paginated listing",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "number",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.PhotosPage,
			},
		},
	}
}

// uploadCommand handles upload operations
func uploadCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "upload",
		Usage:     "Validate, preview and upload image files",
		ArgsUsage: "FILE|DIR...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Validate and preview without submitting",
			},
		},
		Action: r.Upload,
		Commands: []*cli.Command{
			{
				Name:  "history",
				Usage: "Show recent uploads",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of records to show",
						Value: 20,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.UploadHistory,
			},
			{
				Name:  "watch",
				Usage: "Upload new photos as they appear in a directory",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "dir",
					},
				},
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:  "settle",
						Usage: "Quiet period before a batch of new files is uploaded",
						Value: tasks.DefaultSettleDelay,
					},
				},
				Action: r.UploadWatch,
			},
		},
	}
}

// themeCommand reads or changes the stored theme.
func themeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "theme",
		Usage:     "Show or set the colour theme (dark, light, toggle)",
		ArgsUsage: "[dark|light|toggle]",
		Action:    r.Theme,
	}
}
