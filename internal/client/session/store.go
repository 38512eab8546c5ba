package session

import (
	"context"
	"fmt"

	"github.com/birkaops/birka/internal/client/repositories/metadata"
	"github.com/birkaops/birka/internal/common"
)

// Provider gives executors synchronous access to the current credentials.
type Provider interface {
	// Token returns the stored session token or "" when none is stored.
	Token(ctx context.Context) (string, error)
	// InitData returns the platform init data or "".
	InitData() string
	SetToken(ctx context.Context, token string) error
	// Clear removes the stored session token.
	Clear(ctx context.Context) error
}

// Store is a Provider backed by the local metadata repository. The token is
// read from storage on every call and never cached.
type Store struct {
	repo metadata.Repository
	host Host
}

func NewStore(repo metadata.Repository, host Host) *Store {
	if host == nil {
		host = NoHost{}
	}
	return &Store{repo: repo, host: host}
}

func (s *Store) Token(ctx context.Context) (string, error) {
	tok, err := metadata.GetString(ctx, s.repo, common.SessionTokenKey)
	if err != nil {
		return "", fmt.Errorf("read session token: %w", err)
	}
	return tok, nil
}

func (s *Store) InitData() string {
	return s.host.InitData()
}

func (s *Store) SetToken(ctx context.Context, token string) error {
	if token == "" {
		return s.Clear(ctx)
	}
	if err := s.repo.Set(ctx, common.SessionTokenKey, []byte(token)); err != nil {
		return fmt.Errorf("store session token: %w", err)
	}
	return nil
}

func (s *Store) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx, common.SessionTokenKey); err != nil {
		return fmt.Errorf("clear session token: %w", err)
	}
	return nil
}

// Host returns the host the store reads init data from.
func (s *Store) Host() Host { return s.host }
