package session

import (
	"context"
	"net/http"

	"github.com/birkaops/birka/internal/common"
	"github.com/birkaops/birka/internal/logging"
)

// AuthHeaders returns the auth header for the next request: the session
// token if one is stored, else the init data if present, else nothing.
// A failing token read is logged and treated as "no token".
func AuthHeaders(ctx context.Context, p Provider, log logging.Logger) http.Header {
	h := http.Header{}
	if p == nil {
		return h
	}

	tok, err := p.Token(ctx)
	if err != nil {
		if log != nil {
			log.Warn(ctx, "session token unavailable", "error", err)
		}
		tok = ""
	}
	if tok != "" {
		h.Set(common.SessionTokenHeaderName, tok)
		return h
	}
	if data := p.InitData(); data != "" {
		h.Set(common.InitDataHeaderName, data)
	}
	return h
}
