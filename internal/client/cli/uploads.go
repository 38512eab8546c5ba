package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/birkaops/birka/internal/client/uploads"
)

const historyLimit = 20

// UploadDocument queues a knowledge-base document and returns immediately.
func (a *App) UploadDocument(_ context.Context, args []string) error {
	if len(args) != 1 {
		return usage("upload-doc <path>")
	}
	part, err := readFilePart(args[0])
	if err != nil {
		return err
	}
	id := a.queue.StartDocumentUpload(part)
	fmt.Fprintf(a.out, "Upload started: %s\n", id)
	return nil
}

// UploadTemplate queues a contract template. The name defaults to the file
// name without extension.
func (a *App) UploadTemplate(_ context.Context, args []string) error {
	if len(args) != 1 {
		return usage("upload-template <path>")
	}
	part, err := readFilePart(args[0])
	if err != nil {
		return err
	}

	def := strings.TrimSuffix(part.Name, filepath.Ext(part.Name))
	name, err := GetSimpleText(a.in, fmt.Sprintf("Template name (empty for %q)", def), a.out)
	if err != nil {
		return err
	}
	if name == "" {
		name = def
	}
	isDefault, err := GetConfirm(a.in, "Make default?", false, a.out)
	if err != nil {
		return err
	}

	id := a.queue.StartTemplateUpload(part, name, isDefault)
	fmt.Fprintf(a.out, "Upload started: %s\n", id)
	return nil
}

// Jobs lists upload jobs, optionally filtered by kind.
func (a *App) Jobs(_ context.Context, args []string) error {
	var kinds []uploads.Kind
	for _, arg := range args {
		switch uploads.Kind(arg) {
		case uploads.KindDocument, uploads.KindTemplate:
			kinds = append(kinds, uploads.Kind(arg))
		default:
			return usage("jobs [document|template]")
		}
	}

	jobs := a.queue.Jobs(kinds...)
	if len(jobs) == 0 {
		fmt.Fprintln(a.out, "No uploads")
		return nil
	}
	for _, j := range jobs {
		fmt.Fprintln(a.out, j.String())
	}
	return nil
}

func (a *App) Dismiss(_ context.Context, args []string) error {
	if len(args) != 1 {
		return usage("dismiss <job-id>")
	}
	a.queue.Dismiss(args[0])
	return nil
}

// ClearJobs drops finished and failed jobs.
func (a *App) ClearJobs(_ context.Context, _ []string) error {
	n := a.queue.ClearDone()
	fmt.Fprintf(a.out, "Cleared %d\n", n)
	return nil
}

// History prints finished uploads from local storage, newest first.
func (a *App) History(ctx context.Context, args []string) error {
	if len(args) == 1 && args[0] == "clear" {
		return a.history.Clear(ctx)
	}
	if len(args) > 0 {
		return usage("history [clear]")
	}

	records, err := a.history.Recent(ctx, historyLimit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(a.out, "No finished uploads")
		return nil
	}
	for _, r := range records {
		line := fmt.Sprintf("%s  %-8s %-6s %s", r.FinishedAt.Local().Format(time.DateTime), r.Kind, r.Status, r.FileName)
		if r.Error != "" {
			line += ": " + r.Error
		}
		fmt.Fprintln(a.out, line)
	}
	return nil
}
