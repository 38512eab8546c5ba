package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/birkaops/birka/internal/client/client"
	"github.com/birkaops/birka/internal/client/config"
	"github.com/birkaops/birka/internal/client/download"
	"github.com/birkaops/birka/internal/client/models"
	history "github.com/birkaops/birka/internal/client/repositories/uploads"
	"github.com/birkaops/birka/internal/client/scanner"
	"github.com/birkaops/birka/internal/client/services"
	"github.com/birkaops/birka/internal/client/uploads"
	"github.com/birkaops/birka/internal/logging"
)

// ---- fakes ----

type fakeAuth struct {
	bootstrap    *models.TelegramAuthResponse
	bootstrapErr error
	me           *models.CurrentUser
	meErr        error
	session      services.SessionInfo
	logoutErr    error
	loggedOut    bool
}

func (f *fakeAuth) Bootstrap(context.Context) (*models.TelegramAuthResponse, error) {
	return f.bootstrap, f.bootstrapErr
}
func (f *fakeAuth) Me(context.Context) (*models.CurrentUser, error) { return f.me, f.meErr }
func (f *fakeAuth) Logout(context.Context) error {
	f.loggedOut = true
	f.session = services.SessionInfo{}
	return f.logoutErr
}
func (f *fakeAuth) Session(context.Context) (services.SessionInfo, error) { return f.session, nil }

type fakeOrders struct {
	list      *models.OrderList
	items     []models.OrderItem
	listCalls [][3]int64
}

func (f *fakeOrders) List(_ context.Context, companyID int64, page, limit int) (*models.OrderList, error) {
	f.listCalls = append(f.listCalls, [3]int64{companyID, int64(page), int64(limit)})
	if f.list == nil {
		return &models.OrderList{}, nil
	}
	return f.list, nil
}
func (f *fakeOrders) Items(context.Context, int64) ([]models.OrderItem, error) { return f.items, nil }

type fakeWarehouse struct {
	valid     map[string]*models.BarcodeValidation
	inOrder   map[string]bool
	completed []models.CompleteReceivingRequest
}

func (f *fakeWarehouse) ValidateBarcode(_ context.Context, barcode string) (*models.BarcodeValidation, error) {
	if v, ok := f.valid[barcode]; ok {
		return v, nil
	}
	return &models.BarcodeValidation{Valid: false, Message: "ШК не найден"}, nil
}
func (f *fakeWarehouse) ValidateBarcodeInOrder(_ context.Context, barcode string, _ int64) (*models.InOrderValidation, error) {
	if f.inOrder[barcode] {
		return &models.InOrderValidation{Found: true, Message: "ШК найден в заявке"}, nil
	}
	return &models.InOrderValidation{Found: false, Message: "ШК не относится к выбранной заявке"}, nil
}
func (f *fakeWarehouse) CompleteReceiving(_ context.Context, req models.CompleteReceivingRequest) error {
	f.completed = append(f.completed, req)
	return nil
}
func (f *fakeWarehouse) RecordPacking(context.Context, models.PackingRecord) error { return nil }

type fakeAdmin struct {
	docs            []models.KnowledgeDocument
	templates       []models.ContractTemplate
	deletedDocs     []string
	deletedTemplate []int64
	sent            []int64
}

func (f *fakeAdmin) Documents(context.Context) ([]models.KnowledgeDocument, error) { return f.docs, nil }
func (f *fakeAdmin) DeleteDocument(_ context.Context, name string) error {
	f.deletedDocs = append(f.deletedDocs, name)
	return nil
}
func (f *fakeAdmin) ContractTemplates(context.Context) ([]models.ContractTemplate, error) {
	return f.templates, nil
}
func (f *fakeAdmin) DeleteContractTemplate(_ context.Context, id int64) error {
	f.deletedTemplate = append(f.deletedTemplate, id)
	return nil
}
func (f *fakeAdmin) SendContractTemplate(_ context.Context, id int64) error {
	f.sent = append(f.sent, id)
	return nil
}
func (f *fakeAdmin) InvalidateDocuments() {}
func (f *fakeAdmin) InvalidateTemplates() {}

type fakeExports struct {
	calls []string
}

func (f *fakeExports) rec(name string) (download.Result, error) {
	f.calls = append(f.calls, name)
	return download.Result{Strategy: "save", Location: "downloads/" + name}, nil
}
func (f *fakeExports) Download(_ context.Context, path, _ string) (download.Result, error) {
	return f.rec(path)
}
func (f *fakeExports) ServicesExcel(context.Context) (download.Result, error) {
	return f.rec("services.xlsx")
}
func (f *fakeExports) PriceListPDF(context.Context) (download.Result, error) {
	return f.rec("prajs-birka.pdf")
}
func (f *fakeExports) ProductsExcel(_ context.Context, id int64) (download.Result, error) {
	return f.rec(fmt.Sprintf("products-%d.xlsx", id))
}
func (f *fakeExports) ReceivingExcel(context.Context, int64) (download.Result, error) {
	return f.rec("receiving.xlsx")
}

type fakePrefs struct {
	company int64
}

func (f *fakePrefs) ActiveCompany(context.Context) (int64, bool, error) {
	return f.company, f.company != 0, nil
}
func (f *fakePrefs) SetActiveCompany(_ context.Context, id int64) error {
	f.company = id
	return nil
}

// uploadAPI is a client.Client whose uploads block until released.
type uploadAPI struct {
	mu      sync.Mutex
	paths   []string
	release chan struct{}
	err     error
}

func (u *uploadAPI) Do(context.Context, string, string, any, any, ...client.RequestOption) error {
	return nil
}
func (u *uploadAPI) File(context.Context, string, string, any, ...client.RequestOption) (*client.Blob, error) {
	return nil, errors.New("not implemented")
}
func (u *uploadAPI) UploadForm(_ context.Context, path string, _ *client.Form, onProgress func(int), _ any) error {
	u.mu.Lock()
	u.paths = append(u.paths, path)
	u.mu.Unlock()
	onProgress(50)
	if u.release != nil {
		<-u.release
	}
	return u.err
}

type fakeHistory struct {
	mu      sync.Mutex
	records []history.Record
	cleared bool
}

func (f *fakeHistory) Save(_ context.Context, r history.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append([]history.Record{r}, f.records...)
	return nil
}
func (f *fakeHistory) Recent(context.Context, int) ([]history.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]history.Record(nil), f.records...), nil
}

func (f *fakeHistory) Clear(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleared = true
	f.records = nil
	return nil
}

// ---- app ----

type testApp struct {
	*App
	out       *bytes.Buffer
	auth      *fakeAuth
	orders    *fakeOrders
	warehouse *fakeWarehouse
	admin     *fakeAdmin
	exports   *fakeExports
	prefs     *fakePrefs
	api       *uploadAPI
	history   *fakeHistory
}

// newTestApp builds an App over fakes reading the given input lines. The
// clock advances one second per read so debounce windows never trigger
// unless a test sets its own clock.
func newTestApp(t *testing.T, lines ...string) *testApp {
	t.Helper()
	ta := &testApp{
		out:       &bytes.Buffer{},
		auth:      &fakeAuth{},
		orders:    &fakeOrders{},
		warehouse: &fakeWarehouse{valid: map[string]*models.BarcodeValidation{}, inOrder: map[string]bool{}},
		admin:     &fakeAdmin{},
		exports:   &fakeExports{},
		prefs:     &fakePrefs{},
		api:       &uploadAPI{},
		history:   &fakeHistory{},
	}

	clock := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	ta.App = &App{
		config: &config.Config{
			ReceivingDebounce: scanner.ReceivingDebounce,
			ScannerDebounce:   scanner.FreeScanDebounce,
		},
		log:       logging.Discard(),
		auth:      ta.auth,
		orders:    ta.orders,
		warehouse: ta.warehouse,
		admin:     ta.admin,
		exports:   ta.exports,
		prefs:     ta.prefs,
		queue:     uploads.NewQueue(ta.api, uploads.WithHistory(ta.history)),
		history:   ta.history,
		player:    &scanner.Player{},
		sink:      scanner.TerminalSink{Out: ta.out},
		in:        bufio.NewScanner(strings.NewReader(strings.Join(lines, "\n"))),
		out:       ta.out,
		now: func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		},
	}
	t.Cleanup(ta.queue.Wait)
	return ta
}

func strp(s string) *string { return &s }
