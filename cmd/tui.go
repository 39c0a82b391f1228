package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/pictx/internal/gallery"
	"github.com/desertthunder/pictx/internal/shared"
	"github.com/desertthunder/pictx/internal/ui"
	"github.com/urfave/cli/v3"
)

const tuiLogPath = "./tmp/pictx-tui.log"

// Browse launches the interactive terminal gallery.
func (r *Runner) Browse(ctx context.Context, cmd *cli.Command) error {
	svc, err := r.gallery()
	if err != nil {
		return err
	}

	prefs, err := r.preferences()
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(tuiLogPath)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(shared.WithLogger(fileLogger, "session", r.sessionID))

	model := r.newBrowser(ctx, svc, prefs)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// newBrowser wires a gallery session and the TUI model around it.
func (r *Runner) newBrowser(ctx context.Context, svc gallery.Service, prefs gallery.FlagStore) *ui.Model {
	session := gallery.NewSession(svc, gallery.OptionsFromConfig(r.config, r.logger))
	return ui.NewModel(ctx, session, ui.Options{
		BaseURL:     r.config.Gallery.BaseURL,
		Preferences: prefs,
		Logger:      shared.WithLogger(r.logger, "component", "ui"),
	})
}
