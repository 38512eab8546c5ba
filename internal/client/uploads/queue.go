package uploads

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/birkaops/birka/internal/client/client"
	history "github.com/birkaops/birka/internal/client/repositories/uploads"
	"github.com/birkaops/birka/internal/logging"
)

const (
	documentPath = "/admin/documents"
	templatePath = "/admin/contract-templates/upload"
)

// Queue owns all upload jobs of the process.
type Queue struct {
	api     client.Client
	log     logging.Logger
	history history.Repository
	ctx     context.Context
	now     func() time.Time

	// mu guards every job transition; jobs itself is only a keyed store.
	mu    sync.Mutex
	jobs  *cache.Cache
	seq   uint64
	hooks map[Kind]*registration

	subMu  sync.Mutex
	subs   map[int]chan []Job
	nextID int

	wg sync.WaitGroup
}

type registration struct {
	fn func()
}

type Option func(*Queue)

func WithLogger(l logging.Logger) Option {
	return func(q *Queue) { q.log = l }
}

// WithHistory records every finished job in repo.
func WithHistory(repo history.Repository) Option {
	return func(q *Queue) { q.history = repo }
}

// WithContext sets the context transfers run under. It defaults to
// context.Background so uploads outlive the screen that started them.
func WithContext(ctx context.Context) Option {
	return func(q *Queue) { q.ctx = ctx }
}

func WithClock(now func() time.Time) Option {
	return func(q *Queue) { q.now = now }
}

func NewQueue(api client.Client, opts ...Option) *Queue {
	q := &Queue{
		api:   api,
		log:   logging.Discard(),
		ctx:   context.Background(),
		now:   time.Now,
		jobs:  cache.New(cache.NoExpiration, 0),
		hooks: map[Kind]*registration{},
		subs:  map[int]chan []Job{},
	}
	for _, o := range opts {
		o(q)
	}
	return q
}

// StartDocumentUpload posts file to the knowledge-base documents endpoint and
// returns the new job id immediately.
func (q *Queue) StartDocumentUpload(file client.FilePart) string {
	form := client.NewForm().AddFile("file", file)
	return q.start(Job{Kind: KindDocument, FileName: file.Name}, documentPath, form)
}

// StartTemplateUpload posts a contract template and returns the new job id
// immediately.
func (q *Queue) StartTemplateUpload(file client.FilePart, name string, isDefault bool) string {
	form := client.NewForm().
		AddFile("file", file).
		AddField("name", name).
		AddField("is_default", strconv.FormatBool(isDefault))
	return q.start(Job{Kind: KindTemplate, FileName: file.Name, Name: name, IsDefault: isDefault}, templatePath, form)
}

func (q *Queue) start(job Job, path string, form *client.Form) string {
	job.ID = "upload-" + uuid.NewString()
	job.Status = StatusUploading
	job.Progress = 0
	job.CreatedAt = q.now()

	q.mu.Lock()
	q.seq++
	job.seq = q.seq
	q.jobs.Set(job.ID, job, cache.NoExpiration)
	q.mu.Unlock()
	q.notify()

	q.log.Info(q.ctx, "upload started", "job", job.ID, "kind", job.Kind, "file", job.FileName)

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		q.run(job.ID, job.Kind, path, form)
	}()
	return job.ID
}

type documentResponse struct {
	SourceFile  string `json:"source_file"`
	ChunksAdded int    `json:"chunks_added"`
}

func (q *Queue) run(id string, kind Kind, path string, form *client.Form) {
	ctx := logging.ContextWith(q.ctx, "job", id)

	var out documentResponse
	err := q.api.UploadForm(ctx, path, form, func(p int) { q.UpdateProgress(id, p) }, &out)
	if err != nil {
		q.finish(id, kind, func(j *Job) {
			j.Status = StatusError
			j.Error = err.Error()
		})
		q.log.Warn(ctx, "upload failed", "error", err)
		return
	}

	q.finish(id, kind, func(j *Job) {
		j.Status = StatusDone
		j.Progress = 100
		j.SourceFile = out.SourceFile
		j.ChunksAdded = out.ChunksAdded
	})
	q.log.Info(ctx, "upload finished")

	q.mu.Lock()
	reg := q.hooks[kind]
	q.mu.Unlock()
	if reg != nil {
		reg.fn()
	}
}

// UpdateProgress sets the progress of an uploading job. Updates for terminal
// or unknown jobs are ignored.
func (q *Queue) UpdateProgress(id string, percent int) {
	percent = max(0, min(100, percent))

	q.mu.Lock()
	job, ok := q.get(id)
	if !ok || job.Terminal() || job.Progress == percent {
		q.mu.Unlock()
		return
	}
	job.Progress = percent
	q.jobs.Set(id, job, cache.NoExpiration)
	q.mu.Unlock()
	q.notify()
}

func (q *Queue) finish(id string, kind Kind, apply func(*Job)) {
	q.mu.Lock()
	job, ok := q.get(id)
	if !ok || job.Terminal() {
		q.mu.Unlock()
		return
	}
	apply(&job)
	q.jobs.Set(id, job, cache.NoExpiration)
	q.mu.Unlock()
	q.notify()

	if q.history == nil {
		return
	}
	rec := history.Record{
		ID:         job.ID,
		Kind:       string(kind),
		FileName:   job.FileName,
		Status:     string(job.Status),
		Error:      job.Error,
		FinishedAt: q.now(),
	}
	if err := q.history.Save(q.ctx, rec); err != nil {
		q.log.Warn(q.ctx, "record upload history", "job", id, "error", err)
	}
}

func (q *Queue) get(id string) (Job, bool) {
	v, ok := q.jobs.Get(id)
	if !ok {
		return Job{}, false
	}
	return v.(Job), true
}

// Job returns a snapshot of one job.
func (q *Queue) Job(id string) (Job, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.get(id)
}

// Jobs returns all jobs in creation order, optionally filtered by kind.
func (q *Queue) Jobs(kinds ...Kind) []Job {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.snapshot(kinds...)
}

func (q *Queue) snapshot(kinds ...Kind) []Job {
	items := q.jobs.Items()
	out := make([]Job, 0, len(items))
	for _, it := range items {
		j := it.Object.(Job)
		if len(kinds) > 0 && !containsKind(kinds, j.Kind) {
			continue
		}
		out = append(out, j)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].seq < out[b].seq })
	return out
}

func containsKind(kinds []Kind, k Kind) bool {
	for _, x := range kinds {
		if x == k {
			return true
		}
	}
	return false
}

// Dismiss removes a job in any state. A running transfer keeps going but its
// later updates are dropped.
func (q *Queue) Dismiss(id string) {
	q.mu.Lock()
	_, ok := q.get(id)
	q.jobs.Delete(id)
	q.mu.Unlock()
	if ok {
		q.notify()
	}
}

// ClearDone drops every terminal job and keeps the uploading ones.
func (q *Queue) ClearDone() int {
	q.mu.Lock()
	n := 0
	for id, it := range q.jobs.Items() {
		if it.Object.(Job).Terminal() {
			q.jobs.Delete(id)
			n++
		}
	}
	q.mu.Unlock()
	if n > 0 {
		q.notify()
	}
	return n
}

// SetInvalidate installs fn as the single success hook for kind, replacing
// any previous one. A nil fn clears the slot.
func (q *Queue) SetInvalidate(kind Kind, fn func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if fn == nil {
		delete(q.hooks, kind)
		return
	}
	q.hooks[kind] = &registration{fn: fn}
}

// Register installs fn like SetInvalidate and returns a release func that
// clears the slot only while it still holds this registration.
func (q *Queue) Register(kind Kind, fn func()) (release func()) {
	reg := &registration{fn: fn}
	q.mu.Lock()
	q.hooks[kind] = reg
	q.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			q.mu.Lock()
			defer q.mu.Unlock()
			if q.hooks[kind] == reg {
				delete(q.hooks, kind)
			}
		})
	}
}

// Subscribe returns a channel that receives a snapshot of all jobs after
// every change. Only the latest snapshot is kept for slow readers. cancel
// closes the channel.
func (q *Queue) Subscribe() (<-chan []Job, func()) {
	ch := make(chan []Job, 1)

	q.subMu.Lock()
	id := q.nextID
	q.nextID++
	q.subs[id] = ch
	q.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			q.subMu.Lock()
			delete(q.subs, id)
			q.subMu.Unlock()
			close(ch)
		})
	}
}

// notify holds subMu while snapshotting so subscribers never see an older
// snapshot after a newer one.
func (q *Queue) notify() {
	q.subMu.Lock()
	defer q.subMu.Unlock()
	if len(q.subs) == 0 {
		return
	}

	q.mu.Lock()
	snap := q.snapshot()
	q.mu.Unlock()

	for _, ch := range q.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}

// Wait blocks until every started transfer has finished.
func (q *Queue) Wait() {
	q.wg.Wait()
}

func (j Job) String() string {
	switch j.Status {
	case StatusError:
		return fmt.Sprintf("%s %s [%s] error: %s", j.ID, j.FileName, j.Kind, j.Error)
	default:
		return fmt.Sprintf("%s %s [%s] %s %d%%", j.ID, j.FileName, j.Kind, j.Status, j.Progress)
	}
}
