package session

import (
	"context"

	"github.com/birkaops/birka/internal/logging"
)

// ExpiredMessage is shown to the user when the server rejects the session.
const ExpiredMessage = "Сессия истекла. Откройте приложение заново."

// UnauthorizedHandler reacts to a 401 response: the stored token is removed
// and the user is alerted. It never fails.
type UnauthorizedHandler struct {
	provider Provider
	host     Host
	log      logging.Logger
}

func NewUnauthorizedHandler(p Provider, host Host, log logging.Logger) *UnauthorizedHandler {
	if host == nil {
		host = NoHost{}
	}
	if log == nil {
		log = logging.Discard()
	}
	return &UnauthorizedHandler{provider: p, host: host, log: log}
}

// Handle is called once per 401 response.
func (h *UnauthorizedHandler) Handle(ctx context.Context) {
	if h == nil {
		return
	}
	if h.provider != nil {
		if err := h.provider.Clear(ctx); err != nil {
			h.log.Warn(ctx, "clear session token", "error", err)
		}
	}
	if err := h.host.ShowAlert(ExpiredMessage); err != nil {
		h.log.Debug(ctx, "session expiry alert not shown", "error", err)
	}
	h.log.Info(ctx, "session expired")
}
