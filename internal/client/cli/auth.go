package cli

import (
	"context"
	"fmt"
)

// Login exchanges the host init data for a session and loads the current
// user. Without init data it only reports whether a stored session works.
func (a *App) Login(ctx context.Context, _ []string) error {
	resp, err := a.auth.Bootstrap(ctx)
	if err != nil {
		return err
	}
	if resp == nil {
		info, err := a.auth.Session(ctx)
		if err != nil {
			return err
		}
		if !info.HasToken {
			fmt.Fprintln(a.out, "No init data and no stored session; set BIRKA_INIT_DATA")
			return nil
		}
	}

	u, err := a.auth.Me(ctx)
	if err != nil {
		a.user = nil
		return err
	}
	a.user = u
	a.log.Info(ctx, "logged in", "user_id", u.ID, "role", u.Role)
	fmt.Fprintf(a.out, "Logged in as %s (%s)\n", u.DisplayName(), u.Role)
	return nil
}

func (a *App) Me(ctx context.Context, _ []string) error {
	u, err := a.auth.Me(ctx)
	if err != nil {
		return err
	}
	a.user = u
	fmt.Fprintf(a.out, "%s  id=%d  telegram_id=%d  role=%s\n", u.DisplayName(), u.ID, u.TelegramID, u.Role)
	return nil
}

// Session prints what is stored locally about the session.
func (a *App) Session(ctx context.Context, _ []string) error {
	info, err := a.auth.Session(ctx)
	if err != nil {
		return err
	}
	if !info.HasToken {
		fmt.Fprintln(a.out, "No stored session")
		return nil
	}
	fmt.Fprintf(a.out, "user_id=%d role=%s expires_at=%s\n", info.UserID, info.Role, info.ExpiresAt)
	return nil
}

// Logout forgets the session locally even when the server call fails.
func (a *App) Logout(ctx context.Context, _ []string) error {
	err := a.auth.Logout(ctx)
	a.user = nil
	fmt.Fprintln(a.out, "Session cleared")
	return err
}
