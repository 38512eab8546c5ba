package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/birkaops/birka/internal/client/client"
	"github.com/birkaops/birka/internal/client/config"
	"github.com/birkaops/birka/internal/client/download"
	"github.com/birkaops/birka/internal/client/models"
	history "github.com/birkaops/birka/internal/client/repositories/uploads"
	"github.com/birkaops/birka/internal/client/scanner"
	"github.com/birkaops/birka/internal/client/services"
	"github.com/birkaops/birka/internal/client/session"
	"github.com/birkaops/birka/internal/client/uploads"
	"github.com/birkaops/birka/internal/filex"
	"github.com/birkaops/birka/internal/logging"
)

type App struct {
	config *config.Config
	log    logging.Logger

	auth      services.AuthService
	orders    services.OrderService
	warehouse services.WarehouseService
	admin     services.AdminService
	exports   services.ExportService
	prefs     services.PrefsService

	queue   *uploads.Queue
	history history.Repository

	player *scanner.Player
	sink   scanner.TerminalSink

	in          *bufio.Scanner
	out         io.Writer
	interactive bool
	now         func() time.Time

	user    *models.CurrentUser
	closers []func()
}

// NewApp opens local storage and builds every service the REPL drives.
// The caller owns ctx for the lifetime of the App; background uploads are
// bound to it.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	if err := filex.EnsureParentDir(cfg.DBPath); err != nil {
		return nil, err
	}
	repos, err := client.InitDatabase(ctx, cfg.DBPath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", cfg.DBPath, "error", err)
		return nil, err
	}

	a := &App{
		config:      cfg,
		log:         log,
		in:          bufio.NewScanner(os.Stdin),
		out:         os.Stdout,
		interactive: isTerminal(int(os.Stdin.Fd())),
		now:         time.Now,
	}
	a.sink = scanner.TerminalSink{Out: a.out}
	a.player = &scanner.Player{Audio: scanner.SystemAudio(a.sink), Log: log}

	host := session.EnvHost{Data: cfg.InitData, Alert: a.alert}
	store := session.NewStore(repos.Metadata, host)
	api := client.NewHTTPClient(cfg.APIBaseURL, store,
		client.WithLogger(log),
		client.WithUnauthorizedHandler(session.NewUnauthorizedHandler(store, host, log)),
	)

	admin := services.NewAdminService(api)
	queue := uploads.NewQueue(api,
		uploads.WithLogger(log),
		uploads.WithHistory(repos.Uploads),
		uploads.WithContext(ctx),
	)
	deliverer := download.NewDeliverer(
		download.DefaultChain(host, cfg.DataURIMaxBytes, cfg.DownloadDir),
		download.WithLogger(log),
	)

	a.auth = services.NewAuthService(api, repos.DB, store)
	a.orders = services.NewOrderService(api)
	a.warehouse = services.NewWarehouseService(api)
	a.admin = admin
	a.exports = services.NewExportService(api, deliverer)
	a.prefs = services.NewPrefsService(repos.Metadata)
	a.queue = queue
	a.history = repos.Uploads

	releaseDocs := queue.Register(uploads.KindDocument, admin.InvalidateDocuments)
	releaseTemplates := queue.Register(uploads.KindTemplate, admin.InvalidateTemplates)
	a.closers = append(a.closers,
		queue.Wait,
		deliverer.Wait,
		releaseDocs,
		releaseTemplates,
		func() {
			if err := repos.Close(); err != nil {
				log.Warn(ctx, "close database", "error", err)
			}
		},
	)
	return a, nil
}

// alert shows a host alert as a warning line.
func (a *App) alert(msg string) {
	a.sink.Status(scanner.Warning, msg)
}

// Run bootstraps the session and blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

// Close waits for running uploads and pending temp-file cleanup, then
// releases storage.
func (a *App) Close() {
	for _, fn := range a.closers {
		fn()
	}
	a.closers = nil
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

func (a *App) getStatus() string {
	var parts []string
	if a.user != nil {
		parts = append(parts, a.user.DisplayName())
	}
	if id, ok, err := a.prefs.ActiveCompany(context.Background()); err == nil && ok {
		parts = append(parts, fmt.Sprintf("company %d", id))
	}
	if a.queue != nil {
		if n := countUploading(a.queue.Jobs()); n > 0 {
			parts = append(parts, fmt.Sprintf("uploading %d", n))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func countUploading(jobs []uploads.Job) int {
	n := 0
	for _, j := range jobs {
		if j.Status == uploads.StatusUploading {
			n++
		}
	}
	return n
}

// errUsage is returned by commands called with bad arguments; the REPL
// prints the usage line it wraps.
var errUsage = errors.New("usage")

func usage(line string) error {
	return fmt.Errorf("%w: %s", errUsage, line)
}
