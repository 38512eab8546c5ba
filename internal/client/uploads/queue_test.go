package uploads

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/birkaops/birka/internal/client/client"
	history "github.com/birkaops/birka/internal/client/repositories/uploads"
)

type uploadCall struct {
	path   string
	fields map[string]string
	files  map[string]string
}

// fakeAPI implements client.Client. Uploads block on hold (when set) after
// reporting progress.
type fakeAPI struct {
	mu       sync.Mutex
	calls    []uploadCall
	progress []int
	hold     chan struct{}
	err      error
	resp     string
}

func (f *fakeAPI) Do(context.Context, string, string, any, any, ...client.RequestOption) error {
	return errors.New("not used")
}

func (f *fakeAPI) File(context.Context, string, string, any, ...client.RequestOption) (*client.Blob, error) {
	return nil, errors.New("not used")
}

func (f *fakeAPI) UploadForm(_ context.Context, path string, form *client.Form, onProgress func(int), out any) error {
	call, err := decodeForm(path, form)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()

	for _, p := range f.progress {
		onProgress(p)
	}
	if f.hold != nil {
		<-f.hold
	}
	if f.err != nil {
		return f.err
	}
	if out != nil && f.resp != "" {
		return json.Unmarshal([]byte(f.resp), out)
	}
	return nil
}

func (f *fakeAPI) recorded() []uploadCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]uploadCall(nil), f.calls...)
}

func decodeForm(path string, form *client.Form) (uploadCall, error) {
	body, ct, err := form.Encode()
	if err != nil {
		return uploadCall{}, err
	}
	_, params, err := mime.ParseMediaType(ct)
	if err != nil {
		return uploadCall{}, err
	}
	call := uploadCall{path: path, fields: map[string]string{}, files: map[string]string{}}
	r := multipart.NewReader(bytes.NewReader(body), params["boundary"])
	for {
		p, err := r.NextPart()
		if err == io.EOF {
			return call, nil
		}
		if err != nil {
			return uploadCall{}, err
		}
		data, _ := io.ReadAll(p)
		if p.FileName() != "" {
			call.files[p.FormName()] = p.FileName() + ":" + string(data)
		} else {
			call.fields[p.FormName()] = string(data)
		}
	}
}

type memHistory struct {
	mu   sync.Mutex
	recs []history.Record
}

func (m *memHistory) Save(_ context.Context, r history.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs = append(m.recs, r)
	return nil
}

func (m *memHistory) Recent(context.Context, int) ([]history.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]history.Record(nil), m.recs...), nil
}

func (m *memHistory) Clear(context.Context) error { return nil }

func pdf(name string) client.FilePart {
	return client.FilePart{Name: name, Data: []byte("%PDF")}
}

func TestStartDocumentUpload_Lifecycle(t *testing.T) {
	api := &fakeAPI{hold: make(chan struct{}), progress: []int{10, 55}, resp: `{"source_file":"a.pdf","chunks_added":12}`}
	q := NewQueue(api)

	hooked := 0
	q.SetInvalidate(KindDocument, func() { hooked++ })

	id := q.StartDocumentUpload(pdf("a.pdf"))
	assert.True(t, strings.HasPrefix(id, "upload-"))

	job, ok := q.Job(id)
	require.True(t, ok, "job is visible before the transfer finishes")
	assert.Equal(t, StatusUploading, job.Status)
	assert.Equal(t, KindDocument, job.Kind)
	assert.Equal(t, "a.pdf", job.FileName)

	close(api.hold)
	q.Wait()

	job, ok = q.Job(id)
	require.True(t, ok)
	assert.Equal(t, StatusDone, job.Status)
	assert.Equal(t, 100, job.Progress)
	assert.Equal(t, 12, job.ChunksAdded)
	assert.Equal(t, 1, hooked)

	calls := api.recorded()
	require.Len(t, calls, 1)
	assert.Equal(t, "/admin/documents", calls[0].path)
	assert.Equal(t, "a.pdf:%PDF", calls[0].files["file"])
	assert.Empty(t, calls[0].fields)
}

func TestStartTemplateUpload_FormFields(t *testing.T) {
	api := &fakeAPI{}
	q := NewQueue(api)

	var hooked []Kind
	q.SetInvalidate(KindTemplate, func() { hooked = append(hooked, KindTemplate) })
	q.SetInvalidate(KindDocument, func() { hooked = append(hooked, KindDocument) })

	id := q.StartTemplateUpload(pdf("dogovor.docx"), "Основной", false)
	q.Wait()

	job, _ := q.Job(id)
	assert.Equal(t, StatusDone, job.Status)
	assert.Equal(t, "Основной", job.Name)
	assert.False(t, job.IsDefault)
	assert.Equal(t, []Kind{KindTemplate}, hooked)

	calls := api.recorded()
	require.Len(t, calls, 1)
	assert.Equal(t, "/admin/contract-templates/upload", calls[0].path)
	assert.Equal(t, map[string]string{"name": "Основной", "is_default": "false"}, calls[0].fields)
	assert.Contains(t, calls[0].files, "file")
}

func TestUpload_FailureKeepsMessage(t *testing.T) {
	api := &fakeAPI{err: &client.APIError{Status: 400, Message: "Файл слишком большой"}}
	q := NewQueue(api)
	hooked := false
	q.SetInvalidate(KindDocument, func() { hooked = true })

	id := q.StartDocumentUpload(pdf("big.pdf"))
	q.Wait()

	job, _ := q.Job(id)
	assert.Equal(t, StatusError, job.Status)
	assert.Equal(t, "Файл слишком большой", job.Error)
	assert.False(t, hooked)
}

func TestTerminalJobsAreImmutable(t *testing.T) {
	q := NewQueue(&fakeAPI{})
	id := q.StartDocumentUpload(pdf("a.pdf"))
	q.Wait()

	q.UpdateProgress(id, 40)
	q.finish(id, KindDocument, func(j *Job) { j.Status = StatusError; j.Error = "late" })

	job, _ := q.Job(id)
	assert.Equal(t, StatusDone, job.Status)
	assert.Equal(t, 100, job.Progress)
	assert.Empty(t, job.Error)
}

func TestDismissWhileUploading(t *testing.T) {
	api := &fakeAPI{hold: make(chan struct{})}
	q := NewQueue(api)
	hooked := 0
	q.SetInvalidate(KindDocument, func() { hooked++ })

	id := q.StartDocumentUpload(pdf("a.pdf"))
	q.Dismiss(id)
	_, ok := q.Job(id)
	require.False(t, ok)

	require.NotPanics(t, func() {
		q.UpdateProgress(id, 50)
		close(api.hold)
		q.Wait()
	})

	_, ok = q.Job(id)
	assert.False(t, ok, "late completion does not resurrect a dismissed job")
	assert.Equal(t, 1, hooked, "server state changed, lists still refresh")
	assert.Empty(t, q.Jobs())
}

func TestClearDoneKeepsUploading(t *testing.T) {
	fast := &fakeAPI{}
	q := NewQueue(fast)
	doneID := q.StartDocumentUpload(pdf("a.pdf"))
	q.Wait()

	slow := &fakeAPI{hold: make(chan struct{})}
	q.api = slow
	runningID := q.StartTemplateUpload(pdf("t.docx"), "T", true)

	assert.Equal(t, 1, q.ClearDone())
	jobs := q.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, runningID, jobs[0].ID)
	_, ok := q.Job(doneID)
	assert.False(t, ok)

	close(slow.hold)
	q.Wait()
	assert.Equal(t, 1, q.ClearDone())
	assert.Empty(t, q.Jobs())
}

func TestJobsOrderAndFilter(t *testing.T) {
	q := NewQueue(&fakeAPI{})
	a := q.StartDocumentUpload(pdf("1.pdf"))
	b := q.StartTemplateUpload(pdf("2.docx"), "two", false)
	c := q.StartDocumentUpload(pdf("3.pdf"))
	q.Wait()

	var ids []string
	for _, j := range q.Jobs() {
		ids = append(ids, j.ID)
	}
	assert.Equal(t, []string{a, b, c}, ids)

	docs := q.Jobs(KindDocument)
	require.Len(t, docs, 2)
	assert.Equal(t, a, docs[0].ID)
	assert.Equal(t, c, docs[1].ID)
}

func TestProgressIsClamped(t *testing.T) {
	api := &fakeAPI{hold: make(chan struct{})}
	q := NewQueue(api)
	id := q.StartDocumentUpload(pdf("a.pdf"))

	q.UpdateProgress(id, 150)
	job, _ := q.Job(id)
	assert.Equal(t, 100, job.Progress)
	assert.Equal(t, StatusUploading, job.Status)

	q.UpdateProgress(id, -3)
	job, _ = q.Job(id)
	assert.Equal(t, 0, job.Progress)

	close(api.hold)
	q.Wait()
}

func TestRegisterRelease(t *testing.T) {
	q := NewQueue(&fakeAPI{})
	var calls []string

	releaseA := q.Register(KindDocument, func() { calls = append(calls, "a") })
	releaseB := q.Register(KindDocument, func() { calls = append(calls, "b") })

	releaseA()
	q.StartDocumentUpload(pdf("1.pdf"))
	q.Wait()
	assert.Equal(t, []string{"b"}, calls, "stale release leaves the newer hook in place")

	releaseB()
	releaseB()
	q.StartDocumentUpload(pdf("2.pdf"))
	q.Wait()
	assert.Equal(t, []string{"b"}, calls)

	q.SetInvalidate(KindDocument, func() { calls = append(calls, "c") })
	q.SetInvalidate(KindDocument, nil)
	q.StartDocumentUpload(pdf("3.pdf"))
	q.Wait()
	assert.Equal(t, []string{"b"}, calls)
}

func TestSubscribe(t *testing.T) {
	api := &fakeAPI{hold: make(chan struct{})}
	q := NewQueue(api)
	ch, cancel := q.Subscribe()

	id := q.StartDocumentUpload(pdf("a.pdf"))

	waitFor := func(pred func([]Job) bool) {
		t.Helper()
		deadline := time.After(2 * time.Second)
		for {
			select {
			case snap := <-ch:
				if pred(snap) {
					return
				}
			case <-deadline:
				t.Fatal("no matching snapshot")
			}
		}
	}

	waitFor(func(s []Job) bool { return len(s) == 1 && s[0].ID == id && s[0].Status == StatusUploading })
	close(api.hold)
	waitFor(func(s []Job) bool { return len(s) == 1 && s[0].Status == StatusDone })
	q.Wait()

	cancel()
	cancel()
	_, open := <-ch
	for open {
		_, open = <-ch
	}
	q.Dismiss(id)
}

func TestHistoryRecordsFinishedJobs(t *testing.T) {
	h := &memHistory{}
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	q := NewQueue(&fakeAPI{err: errors.New("Network error")}, WithHistory(h), WithClock(func() time.Time { return fixed }))

	id := q.StartDocumentUpload(pdf("a.pdf"))
	q.Wait()

	recs, err := h.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, history.Record{
		ID: id, Kind: "document", FileName: "a.pdf", Status: "error", Error: "Network error", FinishedAt: fixed,
	}, recs[0])
}
