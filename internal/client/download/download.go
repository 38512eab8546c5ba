// Package download hands a downloaded file to the user through an ordered
// chain of strategies: the host link opener, the OS file opener and finally
// a copy in the download directory.
//
// Every delivery first materializes the blob as a temporary file. That file
// plays the role of a short-lived object URL and is removed shortly after
// delivery: quickly when the host link opener took a data URI, later when
// something may still be reading the file.
package download

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/birkaops/birka/internal/client/client"
	"github.com/birkaops/birka/internal/logging"
)

// ErrSkipped is returned by a strategy that does not apply to an item.
var ErrSkipped = errors.New("strategy not applicable")

// Item is a file being delivered.
type Item struct {
	Data        []byte
	ContentType string
	// Filename from the server; may be empty.
	Filename string
	// Fallback is used when the server did not name the file.
	Fallback string
	// TempPath is the temporary copy backing this delivery.
	TempPath string
}

// Name returns the server file name or the fallback.
func (it *Item) Name() string {
	if it.Filename != "" {
		return it.Filename
	}
	return it.Fallback
}

// Strategy is one way of handing a file to the user.
type Strategy interface {
	Name() string
	// Deliver returns where the file went, ErrSkipped when the strategy does
	// not apply, or any other error when it failed.
	Deliver(ctx context.Context, it *Item) (string, error)
	// RevokeAfter is how long the temporary copy must outlive a successful
	// delivery.
	RevokeAfter() time.Duration
}

// Result describes a successful delivery.
type Result struct {
	Strategy string
	Location string
}

// Deliverer runs strategies in order until one succeeds.
type Deliverer struct {
	strategies []Strategy
	tempDir    string
	log        logging.Logger
	afterFunc  func(d time.Duration, f func())

	pending sync.WaitGroup
}

type Option func(*Deliverer)

// WithTempDir sets where temporary copies are created (os.TempDir by default).
func WithTempDir(dir string) Option {
	return func(d *Deliverer) { d.tempDir = dir }
}

func WithLogger(l logging.Logger) Option {
	return func(d *Deliverer) { d.log = l }
}

// WithScheduler replaces time.AfterFunc for temp-file removal.
func WithScheduler(fn func(d time.Duration, f func())) Option {
	return func(d *Deliverer) { d.afterFunc = fn }
}

func NewDeliverer(strategies []Strategy, opts ...Option) *Deliverer {
	d := &Deliverer{
		strategies: strategies,
		log:        logging.Discard(),
		afterFunc: func(delay time.Duration, f func()) {
			time.AfterFunc(delay, f)
		},
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Deliver hands blob to the first strategy that accepts it. fallback names
// the file when the server did not.
func (d *Deliverer) Deliver(ctx context.Context, blob *client.Blob, fallback string) (Result, error) {
	if blob == nil {
		return Result{}, fmt.Errorf("deliver: nil blob")
	}
	it := &Item{
		Data:        blob.Data,
		ContentType: blob.ContentType,
		Filename:    blob.Filename,
		Fallback:    fallback,
	}

	tmp, err := d.materialize(it)
	if err != nil {
		return Result{}, err
	}
	it.TempPath = tmp

	var errs []error
	for _, s := range d.strategies {
		loc, err := s.Deliver(ctx, it)
		if err == nil {
			d.revoke(ctx, tmp, s.RevokeAfter())
			d.log.Info(ctx, "file delivered", "strategy", s.Name(), "file", it.Name(), "location", loc)
			return Result{Strategy: s.Name(), Location: loc}, nil
		}
		if !errors.Is(err, ErrSkipped) {
			d.log.Debug(ctx, "delivery strategy failed", "strategy", s.Name(), "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
		}
		if ctx.Err() != nil {
			break
		}
	}

	_ = os.Remove(tmp)
	if len(errs) == 0 {
		return Result{}, fmt.Errorf("deliver %s: no applicable strategy", it.Name())
	}
	return Result{}, fmt.Errorf("deliver %s: %w", it.Name(), errors.Join(errs...))
}

// Wait blocks until every scheduled temp-file removal has run.
func (d *Deliverer) Wait() {
	d.pending.Wait()
}

func (d *Deliverer) materialize(it *Item) (string, error) {
	ext := filepath.Ext(it.Name())
	f, err := os.CreateTemp(d.tempDir, "birka-*"+ext)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	if _, err := f.Write(it.Data); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return f.Name(), nil
}

func (d *Deliverer) revoke(ctx context.Context, path string, after time.Duration) {
	d.pending.Add(1)
	d.afterFunc(after, func() {
		defer d.pending.Done()
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			d.log.Warn(ctx, "remove temp file", "path", path, "error", err)
		}
	})
}
