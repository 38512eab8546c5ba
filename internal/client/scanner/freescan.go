package scanner

import (
	"context"
	"time"

	"github.com/birkaops/birka/internal/client/models"
)

const (
	// MaxHistory bounds the free scanner history.
	MaxHistory = 50

	validateFailedMessage = "Ошибка проверки штрихкода"
	inOrderFailedMessage  = "Ошибка проверки в заявке"
)

// Validator checks barcodes on the server.
type Validator interface {
	ValidateBarcode(ctx context.Context, barcode string) (*models.BarcodeValidation, error)
	ValidateBarcodeInOrder(ctx context.Context, barcode string, orderID int64) (*models.InOrderValidation, error)
}

// ScanResult is what the free scanner shows for one decoded text.
type ScanResult struct {
	Text string
	// Accepted is false for a debounced repeat; the other fields are then
	// zero.
	Accepted bool

	Valid   bool
	Message string
	Product *models.ScannedProduct
	Box     *models.ScannedBox

	// InOrder is nil when no order is chosen.
	InOrder        *bool
	InOrderMessage string

	Feedback Feedback
}

// FreeScan is the free-standing scanner: every accepted scan is validated on
// the server, optionally also against a chosen order.
type FreeScan struct {
	validator Validator
	debounce  *Debouncer
	orderID   int64
	history   []string
}

func NewFreeScan(v Validator, window time.Duration) *FreeScan {
	return &FreeScan{validator: v, debounce: NewDebouncer(window)}
}

// SetOrder chooses the order context; 0 clears it.
func (f *FreeScan) SetOrder(orderID int64) { f.orderID = orderID }

func (f *FreeScan) Order() int64 { return f.orderID }

// Handle processes text decoded at now. Validation failures are reported in
// the result, never returned.
func (f *FreeScan) Handle(ctx context.Context, text string, now time.Time) ScanResult {
	if !f.debounce.Accept(text, now) {
		return ScanResult{Text: text}
	}
	res := ScanResult{Text: text, Accepted: true}

	f.history = append(f.history, text)
	if len(f.history) > MaxHistory {
		f.history = append([]string(nil), f.history[len(f.history)-MaxHistory:]...)
	}

	if f.orderID != 0 {
		found := false
		r, err := f.validator.ValidateBarcodeInOrder(ctx, text, f.orderID)
		if err != nil {
			res.InOrderMessage = inOrderFailedMessage
		} else {
			found = r.Found
			res.InOrderMessage = r.Message
		}
		res.InOrder = &found
	}

	v, err := f.validator.ValidateBarcode(ctx, text)
	if err != nil {
		res.Message = validateFailedMessage
		res.Feedback = Error
		return res
	}
	res.Valid = v.Valid
	res.Message = v.Message
	res.Product = v.Product
	res.Box = v.Box

	switch {
	case !v.Valid:
		res.Feedback = Error
	case res.InOrder != nil && !*res.InOrder:
		res.Feedback = Warning
	default:
		res.Feedback = Success
	}
	return res
}

// History returns accepted scans, oldest first.
func (f *FreeScan) History() []string {
	return append([]string(nil), f.history...)
}

// Stats returns the number of scans in the history and of distinct texts.
func (f *FreeScan) Stats() (total, unique int) {
	seen := make(map[string]struct{}, len(f.history))
	for _, h := range f.history {
		seen[h] = struct{}{}
	}
	return len(f.history), len(seen)
}

func (f *FreeScan) ClearHistory() {
	f.history = nil
}
