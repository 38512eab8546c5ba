package cli

import (
	"context"
	"fmt"

	"github.com/birkaops/birka/internal/client/uploads"
)

// Root prints the banner, bootstraps the session and runs the REPL.
func (a *App) Root(ctx context.Context) {
	a.log.Info(ctx, "birka client started", "api", a.config.APIBaseURL)
	fmt.Fprintln(a.out, "Birka CLI (type 'help' for commands)")

	if err := a.Login(ctx, nil); err != nil {
		a.log.Warn(ctx, "session bootstrap failed", "error", err)
		fmt.Fprintln(a.out, "Error:", err)
	}

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.watchUploads(watchCtx)

	runREPL(ctx, a, a.getStatus, a.in, a.interactive)
}

// watchUploads logs each upload once it reaches a terminal state. Output
// goes to the logger so it never interleaves with the REPL prompt.
func (a *App) watchUploads(ctx context.Context) {
	updates, cancel := a.queue.Subscribe()
	defer cancel()

	reported := make(map[string]struct{})
	for {
		select {
		case <-ctx.Done():
			return
		case jobs, ok := <-updates:
			if !ok {
				return
			}
			for _, j := range jobs {
				if _, seen := reported[j.ID]; seen || !j.Terminal() {
					continue
				}
				reported[j.ID] = struct{}{}
				if j.Status == uploads.StatusError {
					a.log.Warn(ctx, "upload failed", "id", j.ID, "file", j.FileName, "error", j.Error)
				} else {
					a.log.Info(ctx, "upload finished", "id", j.ID, "file", j.FileName, "kind", string(j.Kind))
				}
			}
		}
	}
}
