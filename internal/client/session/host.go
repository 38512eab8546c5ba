// Package session resolves the credentials attached to outbound requests and
// reacts to server-side session expiry.
//
// Two credentials exist: a session token issued by POST /auth/telegram and
// persisted locally, and the init data supplied by the hosting platform. The
// token always wins.
package session

// Host is the embedding platform: it supplies init data and can open links and
// show alerts. Every method is best effort.
type Host interface {
	InitData() string
	OpenLink(url string) error
	ShowAlert(msg string) error
}

// NoHost is used when the client runs outside any platform container.
type NoHost struct{}

func (NoHost) InitData() string       { return "" }
func (NoHost) OpenLink(string) error  { return ErrNoHost }
func (NoHost) ShowAlert(string) error { return ErrNoHost }

// EnvHost is a terminal stand-in for the platform: init data comes from
// configuration and alerts are forwarded to Alert (nil drops them). It cannot
// open links.
type EnvHost struct {
	Data  string
	Alert func(msg string)
}

func (h EnvHost) InitData() string { return h.Data }

func (h EnvHost) OpenLink(string) error { return ErrNoHost }

func (h EnvHost) ShowAlert(msg string) error {
	if h.Alert == nil {
		return ErrNoHost
	}
	h.Alert(msg)
	return nil
}
