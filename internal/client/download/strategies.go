package download

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/birkaops/birka/internal/client/session"
	"github.com/birkaops/birka/internal/filex"
)

const (
	// DefaultDataURIMaxBytes is the size limit for handing a file to the host
	// link opener as a data URI.
	DefaultDataURIMaxBytes = 5 * 1024 * 1024

	linkRevokeAfter  = 100 * time.Millisecond
	localRevokeAfter = 5 * time.Second
)

// LinkStrategy opens the file as a base64 data URI through the host link
// opener. It applies only to files smaller than MaxBytes.
type LinkStrategy struct {
	Host     session.Host
	MaxBytes int64
}

func (LinkStrategy) Name() string { return "link" }

func (LinkStrategy) RevokeAfter() time.Duration { return linkRevokeAfter }

func (s LinkStrategy) Deliver(_ context.Context, it *Item) (string, error) {
	if s.Host == nil {
		return "", ErrSkipped
	}
	limit := s.MaxBytes
	if limit <= 0 {
		limit = DefaultDataURIMaxBytes
	}
	if int64(len(it.Data)) >= limit {
		return "", ErrSkipped
	}

	uri := DataURI(it.ContentType, it.Data)
	if err := s.Host.OpenLink(uri); err != nil {
		if errors.Is(err, session.ErrNoHost) {
			return "", ErrSkipped
		}
		return "", err
	}
	return "data URI", nil
}

// DataURI encodes data as a base64 data URI.
func DataURI(contentType string, data []byte) string {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// OpenStrategy opens the temporary copy with the OS file opener.
type OpenStrategy struct {
	// Open defaults to SystemOpener.
	Open func(ctx context.Context, path string) error
}

func (OpenStrategy) Name() string { return "open" }

func (OpenStrategy) RevokeAfter() time.Duration { return localRevokeAfter }

func (s OpenStrategy) Deliver(ctx context.Context, it *Item) (string, error) {
	open := s.Open
	if open == nil {
		open = SystemOpener
	}
	if err := open(ctx, it.TempPath); err != nil {
		return "", err
	}
	return it.TempPath, nil
}

// SystemOpener starts the platform's default application for path.
func SystemOpener(ctx context.Context, path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.CommandContext(ctx, "open", path)
	case "windows":
		cmd = exec.CommandContext(ctx, "rundll32", "url.dll,FileProtocolHandler", path)
	default:
		if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
			return fmt.Errorf("no graphical session")
		}
		cmd = exec.CommandContext(ctx, "xdg-open", path)
	}
	return cmd.Run()
}

// SaveStrategy writes the file into Dir. An existing file is never
// overwritten; a numeric suffix is added instead.
type SaveStrategy struct {
	Dir string
}

func (SaveStrategy) Name() string { return "save" }

func (SaveStrategy) RevokeAfter() time.Duration { return localRevokeAfter }

func (s SaveStrategy) Deliver(_ context.Context, it *Item) (string, error) {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	dir, err := filex.EnsureDir(dir)
	if err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}

	name := safeName(it.Name())
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 0; ; i++ {
		candidate := name
		if i > 0 {
			candidate = fmt.Sprintf("%s (%d)%s", stem, i, ext)
		}
		path := filepath.Join(dir, candidate)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("save %s: %w", candidate, err)
		}
		if _, err := f.Write(it.Data); err != nil {
			_ = f.Close()
			return "", fmt.Errorf("save %s: %w", candidate, err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("save %s: %w", candidate, err)
		}
		return path, nil
	}
}

func safeName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "download"
	}
	return name
}

// DefaultChain is link opener, then OS opener, then save to dir.
func DefaultChain(host session.Host, maxBytes int64, dir string) []Strategy {
	return []Strategy{
		LinkStrategy{Host: host, MaxBytes: maxBytes},
		OpenStrategy{},
		SaveStrategy{Dir: dir},
	}
}
