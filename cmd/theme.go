package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/pictx/internal/shared"
	"github.com/urfave/cli/v3"
)

// Theme prints the stored theme, or changes it when given dark, light or toggle.
func (r *Runner) Theme(ctx context.Context, cmd *cli.Command) error {
	prefs, err := r.preferences()
	if err != nil {
		return err
	}

	var dark bool
	switch arg := strings.ToLower(cmd.Args().First()); arg {
	case "":
		dark, err = prefs.Get(shared.ThemeDarkKey)
	case "dark", "light":
		dark = arg == "dark"
		err = prefs.Set(shared.ThemeDarkKey, dark)
	case "toggle":
		dark, err = prefs.Toggle(shared.ThemeDarkKey)
	default:
		return fmt.Errorf("%w: theme must be dark, light or toggle, got %q", shared.ErrInvalidArgument, arg)
	}
	if err != nil {
		return fmt.Errorf("failed to access theme preference: %w", err)
	}

	r.writePlain("%s\n", themeName(dark))
	return nil
}

func themeName(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}
