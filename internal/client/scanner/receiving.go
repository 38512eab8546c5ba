package scanner

import (
	"fmt"
	"strings"
	"time"

	"github.com/birkaops/birka/internal/client/models"
)

// NotInOrderMessage is shown when a scanned barcode matches no order line.
const NotInOrderMessage = "ШК не найден в позициях заявки"

// Outcome classifies a decoded text on the receiving screen.
type Outcome int

const (
	// Suppress is a debounced repeat; nothing changes.
	Suppress Outcome = iota
	// Increment counted one more piece of the selected line.
	Increment
	// Select switched to the line with the scanned barcode.
	Select
	// NotFound means no line has the scanned barcode.
	NotFound
)

func (o Outcome) String() string {
	switch o {
	case Suppress:
		return "suppress"
	case Increment:
		return "increment"
	case Select:
		return "select"
	case NotFound:
		return "not-found"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Decision is the result of Receiving.Handle.
type Decision struct {
	Outcome  Outcome
	Item     *models.OrderItem
	Count    int
	Warning  string
	Feedback Feedback
}

// Receiving tracks the selected order line and, in piece-by-piece mode, the
// working received-quantity counter. It never talks to the server.
type Receiving struct {
	items        []models.OrderItem
	pieceByPiece bool
	selected     int
	count        int
	debounce     *Debouncer
}

func NewReceiving(items []models.OrderItem, window time.Duration) *Receiving {
	return &Receiving{
		items:    items,
		selected: -1,
		debounce: NewDebouncer(window),
	}
}

// SetPieceByPiece toggles piece-by-piece counting.
func (r *Receiving) SetPieceByPiece(on bool) { r.pieceByPiece = on }

func (r *Receiving) PieceByPiece() bool { return r.pieceByPiece }

// Select picks a line by id; false when no such line exists.
func (r *Receiving) Select(itemID int64) bool {
	for i := range r.items {
		if r.items[i].ID == itemID {
			r.selected = i
			return true
		}
	}
	return false
}

func (r *Receiving) Selected() (models.OrderItem, bool) {
	if r.selected < 0 {
		return models.OrderItem{}, false
	}
	return r.items[r.selected], true
}

// Count is the working received quantity of the selected line.
func (r *Receiving) Count() int { return r.count }

// SetCount overrides the counter, e.g. after manual entry.
func (r *Receiving) SetCount(n int) { r.count = max(0, n) }

// Handle classifies text decoded at now and applies it.
func (r *Receiving) Handle(text string, now time.Time) Decision {
	if !r.debounce.Accept(text, now) {
		return Decision{Outcome: Suppress}
	}

	if r.pieceByPiece && r.selected >= 0 && r.items[r.selected].BarcodeValue() == text {
		r.count++
		item := r.items[r.selected]
		return Decision{Outcome: Increment, Item: &item, Count: r.count, Feedback: Success}
	}

	want := strings.TrimSpace(text)
	for i := range r.items {
		bc := strings.TrimSpace(r.items[i].BarcodeValue())
		if bc == "" || bc != want {
			continue
		}
		r.selected = i
		if r.pieceByPiece {
			r.count = 1
		}
		item := r.items[i]
		return Decision{Outcome: Select, Item: &item, Count: r.count, Feedback: Success}
	}

	return Decision{Outcome: NotFound, Count: r.count, Warning: NotInOrderMessage, Feedback: Warning}
}
