package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/desertthunder/pictx/internal/repositories"
	"github.com/desertthunder/pictx/internal/shared"
	"github.com/desertthunder/pictx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Upload validates, previews and submits the files named on the command line.
func (r *Runner) Upload(ctx context.Context, cmd *cli.Command) error {
	paths := cmd.Args().Slice()
	if len(paths) == 0 {
		return fmt.Errorf("%w: at least one file", shared.ErrMissingArgument)
	}

	files, err := tasks.Collect(paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no image files found", shared.ErrNoFiles)
	}

	engine, err := r.uploadEngine()
	if err != nil {
		return err
	}

	if cmd.Bool("dry-run") {
		progressCh, done := r.printProgress()
		v := engine.Validate(files)
		thumbs := engine.Preview(ctx, progressCh, v.Valid)
		close(progressCh)
		<-done

		r.printAlert(v.Alert)
		r.writePlain("\n%d files ready, %d previews, %d too large\n", len(v.Valid), len(thumbs), len(v.Oversized))
		return nil
	}

	return r.runUpload(ctx, engine, files)
}

// runUpload runs the pipeline over files and prints a summary.
func (r *Runner) runUpload(ctx context.Context, engine *tasks.UploadEngine, files []tasks.File) error {
	r.logger.Info("starting upload", "files", len(files), "action", r.config.Upload.Action)

	progressCh, done := r.printProgress()
	result, err := engine.Run(ctx, progressCh, files)
	close(progressCh)
	<-done

	r.printAlert(result.Validation.Alert)

	if errors.Is(err, shared.ErrNoFiles) {
		return fmt.Errorf("%w: nothing left to upload", err)
	}

	if err != nil {
		r.printAlert(result.Alert)
		return err
	}

	r.writePlain("\n═══════════════════════════════════════\n")
	r.writePlain("Upload Complete!\n")
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("Uploaded: %d files\n", len(result.Validation.Valid))
	if n := len(result.Validation.Oversized); n > 0 {
		r.writePlain("Skipped: %d files\n", n)
	}
	if resp := result.Response; resp != nil {
		for _, e := range resp.Errors {
			r.writePlain("  - %s\n", e)
		}
		if resp.RedirectURL != "" {
			r.writePlain("Continue at: %s\n", resp.RedirectURL)
		}
	}

	return nil
}

// UploadHistory prints recent uploads recorded in the local database.
func (r *Runner) UploadHistory(ctx context.Context, cmd *cli.Command) error {
	db, err := r.database()
	if err != nil {
		return err
	}

	records, err := repositories.NewUploadHistoryRepository(db).List(cmd.Int("limit"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(records, true)
	}

	if len(records) == 0 {
		r.writePlain("No uploads recorded\n")
		return nil
	}

	r.writePlainHeader("Upload History")
	for _, rec := range records {
		status := "✓"
		if !rec.Success {
			status = "✗"
		}
		r.writePlain("%s %s  %d files", status, rec.CreatedAt.Local().Format(time.DateTime), rec.FileCount)
		if rec.SkippedCount > 0 {
			r.writePlain(", %d skipped", rec.SkippedCount)
		}
		if rec.Message != "" {
			r.writePlain("  %s", rec.Message)
		}
		r.writePlain("\n")
	}
	return nil
}

// uploadEngine builds the pipeline from config. History is recorded when the database opens.
func (r *Runner) uploadEngine() (*tasks.UploadEngine, error) {
	svc, err := r.gallery()
	if err != nil {
		return nil, err
	}

	var history tasks.HistoryRecorder
	if db, err := r.database(); err != nil {
		r.logger.Warn("upload history unavailable", "error", err)
	} else {
		history = repositories.NewUploadHistoryRepository(db)
	}

	return tasks.NewUploadEngine(svc, history, tasks.UploadOpts{
		Action:        r.config.Upload.Action,
		MaxFileSize:   shared.MegabytesToBytes(r.config.Upload.MaxFileMB),
		ThumbnailSize: r.config.Upload.ThumbnailSize,
		CSRFToken:     r.config.Gallery.CSRFToken,
		SessionID:     r.sessionID,
		Logger:        shared.WithLogger(r.logger, "component", "upload"),
	}), nil
}

// UploadWatch uploads image files as they appear in a directory until interrupted.
func (r *Runner) UploadWatch(ctx context.Context, cmd *cli.Command) error {
	dir := cmd.StringArg("dir")
	if dir == "" {
		return fmt.Errorf("%w: directory to watch", shared.ErrMissingArgument)
	}

	engine, err := r.uploadEngine()
	if err != nil {
		return err
	}

	w, err := tasks.NewWatcher(dir, cmd.Duration("settle"), shared.WithLogger(r.logger, "component", "watcher"))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	r.writePlain("👀 Watching %s for new photos (Ctrl+C to stop)\n", dir)
	return w.Run(ctx, func(paths []string) {
		files, err := tasks.Collect(paths)
		if err != nil {
			r.logger.Warn("skipping batch", "error", err)
			return
		}
		if err := r.runUpload(ctx, engine, files); err != nil {
			r.logger.Error("upload failed", "files", len(files), "error", err)
		}
	})
}

// printProgress drains a progress channel onto the output until it is closed, then closes done.
func (r *Runner) printProgress() (chan tasks.ProgressUpdate, <-chan struct{}) {
	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.ValidateFiles:
				r.writePlain("📋 %s\n", update.Message)
			case tasks.PreviewFiles:
				r.writePlain("   %s\n", update.Message)
			case tasks.SubmitFiles:
				if update.Step == 0 {
					r.writePlain("\n📤 %s\n", update.Message)
				} else {
					r.writePlain("   %s\n", update.Message)
				}
			}
		}
	}()
	return progressCh, done
}

func (r *Runner) printAlert(msg string) {
	if msg == "" {
		return
	}
	r.writePlain("\n⚠ %s\n", msg)
}
