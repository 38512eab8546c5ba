package scanner

import "time"

const (
	// ReceivingDebounce is the window of the receiving screen.
	ReceivingDebounce = 500 * time.Millisecond
	// FreeScanDebounce is the window of the free-standing scanner.
	FreeScanDebounce = 2000 * time.Millisecond
)

// Debouncer suppresses a decoded text that repeats the previous one within
// Window. A different text is always accepted.
type Debouncer struct {
	Window time.Duration

	lastText string
	lastAt   time.Time
	seen     bool
}

func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{Window: window}
}

// Accept reports whether text at now is a new scan event and, if so,
// remembers it. Suppressed repeats do not extend the window.
func (d *Debouncer) Accept(text string, now time.Time) bool {
	if d.seen && text == d.lastText && now.Sub(d.lastAt) < d.Window {
		return false
	}
	d.lastText = text
	d.lastAt = now
	d.seen = true
	return true
}

// Reset forgets the last scan.
func (d *Debouncer) Reset() {
	*d = Debouncer{Window: d.Window}
}
