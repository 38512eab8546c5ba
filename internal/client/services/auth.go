package services

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"strconv"

	"github.com/birkaops/birka/internal/client/client"
	"github.com/birkaops/birka/internal/client/models"
	"github.com/birkaops/birka/internal/client/repositories/metadata"
	"github.com/birkaops/birka/internal/client/session"
	"github.com/birkaops/birka/internal/common"
	"github.com/birkaops/birka/internal/dbx"
)

// SessionInfo is what the client remembers about the current session.
type SessionInfo struct {
	UserID    int64
	Role      string
	ExpiresAt string
	HasToken  bool
}

// AuthService handles the session lifecycle.
//
// Contract:
//   - Bootstrap: exchange platform init data for a session token and
//     persist it. Without init data it does nothing and returns nil, nil.
//   - Me: fetch the current user.
//   - Logout: end the session on the server and forget it locally.
//   - Session: read what is stored locally about the session.
type AuthService interface {
	Bootstrap(ctx context.Context) (*models.TelegramAuthResponse, error)
	Me(ctx context.Context) (*models.CurrentUser, error)
	Logout(ctx context.Context) error
	Session(ctx context.Context) (SessionInfo, error)
}

type authService struct {
	client   client.Client
	db       *sql.DB
	provider session.Provider
}

// NewAuthService constructs an AuthService. provider supplies init data and
// the stored token; db holds the session metadata.
func NewAuthService(c client.Client, db *sql.DB, provider session.Provider) AuthService {
	return &authService{client: c, db: db, provider: provider}
}

var sessionKeys = []string{
	common.SessionTokenKey,
	common.SessionUserIDKey,
	common.SessionRoleKey,
	common.SessionExpiresAtKey,
}

func (a *authService) Bootstrap(ctx context.Context) (*models.TelegramAuthResponse, error) {
	initData := a.provider.InitData()
	if initData == "" {
		return nil, nil
	}

	var resp models.TelegramAuthResponse
	if err := a.client.Do(ctx, http.MethodPost, "/auth/telegram", models.TelegramAuthRequest{InitData: initData}, &resp); err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	if resp.SessionToken == "" {
		return &resp, nil
	}

	if err := a.saveSession(ctx, resp); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return &resp, nil
}

// saveSession persists the token together with its metadata in a single
// transaction.
func (a *authService) saveSession(ctx context.Context, resp models.TelegramAuthResponse) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		values := map[string]string{
			common.SessionTokenKey:     resp.SessionToken,
			common.SessionUserIDKey:    strconv.FormatInt(resp.UserID, 10),
			common.SessionRoleKey:      resp.Role,
			common.SessionExpiresAtKey: resp.ExpiresAt,
		}
		for _, k := range sessionKeys {
			if err := repo.Set(ctx, k, []byte(values[k])); err != nil {
				return err
			}
		}
		return nil
	})
}

func (a *authService) Me(ctx context.Context) (*models.CurrentUser, error) {
	var u models.CurrentUser
	if err := a.client.Do(ctx, http.MethodGet, "/auth/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Logout always clears the local session, even when the server call fails;
// the server error is still returned.
func (a *authService) Logout(ctx context.Context) error {
	remoteErr := a.client.Do(ctx, http.MethodPost, "/auth/logout", nil, nil)

	err := dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		for _, k := range sessionKeys {
			if err := repo.Delete(ctx, k); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	if remoteErr != nil {
		return fmt.Errorf("logout: %w", remoteErr)
	}
	return nil
}

func (a *authService) Session(ctx context.Context) (SessionInfo, error) {
	repo := metadata.NewSQLiteRepository(a.db)
	vals := make(map[string]string, len(sessionKeys))
	for _, k := range sessionKeys {
		v, err := metadata.GetString(ctx, repo, k)
		if err != nil {
			return SessionInfo{}, err
		}
		vals[k] = v
	}

	info := SessionInfo{
		Role:      vals[common.SessionRoleKey],
		ExpiresAt: vals[common.SessionExpiresAtKey],
		HasToken:  vals[common.SessionTokenKey] != "",
	}
	if s := vals[common.SessionUserIDKey]; s != "" {
		id, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return SessionInfo{}, fmt.Errorf("parse stored user id: %w", err)
		}
		info.UserID = id
	}
	return info, nil
}
