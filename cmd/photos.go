package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/desertthunder/pictx/internal/formatter"
	"github.com/desertthunder/pictx/internal/gallery"
	"github.com/desertthunder/pictx/internal/shared"
	"github.com/urfave/cli/v3"
)

// PhotosList renders the first page, loads the photo index and prints it.
//
// The bulk listing is preferred; when it fails the index comes from the rendered cards.
func (r *Runner) PhotosList(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	svc, err := r.gallery()
	if err != nil {
		return err
	}

	session := gallery.NewSession(svc, gallery.OptionsFromConfig(r.config, r.logger))
	source, err := session.Bootstrap(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrServiceUnavailable, err)
	}
	r.logger.Debug("photo index loaded", "source", source, "count", session.Index.Len())

	export := &formatter.IndexExport{
		BaseURL: r.config.Gallery.BaseURL,
		Source:  source.String(),
		Photos:  session.Index.Photos(),
	}

	if path := cmd.String("output"); path != "" {
		written, err := formatter.WriteExport(export, format, path)
		if err != nil {
			return err
		}
		r.writePlain("✓ Exported %d photos to %s\n", len(export.Photos), written)
		return nil
	}

	data, err := formatter.Export(export, format)
	if err != nil {
		return err
	}
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// PhotosPage fetches a single page of the paginated listing.
func (r *Runner) PhotosPage(ctx context.Context, cmd *cli.Command) error {
	arg := cmd.StringArg("number")
	if arg == "" {
		return fmt.Errorf("%w: page number", shared.ErrMissingArgument)
	}

	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return fmt.Errorf("%w: page number must be a positive integer, got %q", shared.ErrInvalidArgument, arg)
	}

	svc, err := r.gallery()
	if err != nil {
		return err
	}

	page, err := svc.Page(ctx, n)
	if err != nil {
		return fmt.Errorf("failed to fetch page %d: %w", n, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Page %d", n))
	export := &formatter.IndexExport{BaseURL: r.config.Gallery.BaseURL, Photos: page.Photos}
	data, err := formatter.ExportToText(export)
	if err != nil {
		return err
	}
	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if page.HasNext {
		r.writePlain("\nMore photos on page %d\n", n+1)
	} else {
		r.writePlain("\nNo further pages\n")
	}
	return nil
}
