package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/birkaops/birka/internal/client/models"
	"github.com/birkaops/birka/internal/client/scanner"
	"github.com/birkaops/birka/internal/logging"
)

const (
	emptyOrderMessage   = "В этой заявке нет позиций для приёмки."
	selectItemMessage   = "Выберите позицию"
	badQuantityMessage  = "Введите корректное количество"
	badDefectMessage    = "Введите корректный брак"
	nothingToSubmit     = "Нет позиций для отправки"
	receivingSavedPrint = "Приёмка сохранена"

	receiveHelp = `Scan barcodes, one per line. Commands:
  :piece on|off   piece-by-piece counting
  :select <id>    select a line by id
  :qty <n>        set the received quantity of the selected line
  :defect <n>     set the defect quantity of the selected line
  :add            record the selected line
  :lines          show recorded lines
  :done           submit recorded lines and leave
  :quit           leave without submitting`
)

// receiving is one interactive receiving session over an order.
type receiving struct {
	app     *App
	orderID int64
	state   *scanner.Receiving
	defect  int
	lines   []models.ReceivingLine
}

// Receive opens a receiving session for an order. Scanned lines select
// order lines; in piece-by-piece mode repeated scans of the selected line
// count pieces locally.
func (a *App) Receive(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("receive <order-id>")
	}
	orderID, err := parseID(args[0])
	if err != nil {
		return usage("receive <order-id>")
	}

	items, err := a.orders.Items(ctx, orderID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, emptyOrderMessage)
		return nil
	}

	ctx = logging.ContextWith(ctx, "order_id", orderID)
	r := &receiving{
		app:     a,
		orderID: orderID,
		state:   scanner.NewReceiving(items, a.config.ReceivingDebounce),
	}
	fmt.Fprintln(a.out, receiveHelp)
	return r.run(ctx)
}

func (r *receiving) run(ctx context.Context) error {
	a := r.app
	for {
		if a.interactive {
			fmt.Fprintf(a.out, "receive #%d%s> ", r.orderID, r.prompt())
		}
		if !a.in.Scan() {
			return a.in.Err()
		}
		line := a.in.Text()

		if !strings.HasPrefix(strings.TrimSpace(line), ":") {
			r.scan(ctx, line)
			continue
		}

		done, err := r.command(ctx, strings.Fields(strings.TrimSpace(line)))
		if err != nil {
			a.sink.Status(scanner.Error, err.Error())
		}
		if done {
			return nil
		}
	}
}

func (r *receiving) prompt() string {
	var parts []string
	if r.state.PieceByPiece() {
		parts = append(parts, "piece")
	}
	if it, ok := r.state.Selected(); ok {
		parts = append(parts, fmt.Sprintf("%s x%d", it.ProductName, r.state.Count()))
	}
	if len(parts) == 0 {
		return ""
	}
	return " (" + strings.Join(parts, ", ") + ")"
}

func (r *receiving) scan(ctx context.Context, text string) {
	a := r.app
	d := r.state.Handle(text, a.now())
	a.player.Play(ctx, d.Feedback)

	switch d.Outcome {
	case scanner.Increment:
		a.sink.Status(d.Feedback, fmt.Sprintf("%s: отсканировано %d шт.", d.Item.ProductName, d.Count))
	case scanner.Select:
		r.defect = 0
		msg := fmt.Sprintf("%s · ШК: %s · План: %d · Принято: %d",
			d.Item.ProductName, d.Item.BarcodeValue(), d.Item.PlannedQty, d.Item.ReceivedQty)
		if r.state.PieceByPiece() {
			msg += fmt.Sprintf(" · отсканировано %d шт.", d.Count)
		}
		a.sink.Status(d.Feedback, msg)
	case scanner.NotFound:
		a.sink.Status(d.Feedback, d.Warning)
	}
}

// command runs a ":" command; done reports that the session is over.
func (r *receiving) command(ctx context.Context, fields []string) (done bool, err error) {
	a := r.app
	switch fields[0] {
	case ":piece":
		if len(fields) != 2 || (fields[1] != "on" && fields[1] != "off") {
			return false, usage(":piece on|off")
		}
		r.state.SetPieceByPiece(fields[1] == "on")

	case ":select":
		if len(fields) != 2 {
			return false, usage(":select <id>")
		}
		id, err := parseID(fields[1])
		if err != nil || !r.state.Select(id) {
			return false, errors.New(selectItemMessage)
		}
		r.defect = 0
		if r.state.PieceByPiece() {
			r.state.SetCount(0)
		}

	case ":qty":
		n, err := quantityArg(fields)
		if err != nil {
			return false, errors.New(badQuantityMessage)
		}
		r.state.SetCount(n)

	case ":defect":
		n, err := quantityArg(fields)
		if err != nil {
			return false, errors.New(badDefectMessage)
		}
		r.defect = n

	case ":add":
		it, ok := r.state.Selected()
		if !ok {
			return false, errors.New(selectItemMessage)
		}
		r.record(models.ReceivingLine{OrderItemID: it.ID, ReceivedQty: r.state.Count(), DefectQty: r.defect})
		fmt.Fprintf(a.out, "%s: принято %d, брак %d\n", it.ProductName, r.state.Count(), r.defect)

	case ":lines":
		for _, l := range r.lines {
			fmt.Fprintf(a.out, "item %d: received %d, defect %d\n", l.OrderItemID, l.ReceivedQty, l.DefectQty)
		}

	case ":done":
		if len(r.lines) == 0 {
			return false, errors.New(nothingToSubmit)
		}
		req := models.CompleteReceivingRequest{OrderID: r.orderID, Items: r.lines}
		if err := a.warehouse.CompleteReceiving(ctx, req); err != nil {
			return false, err
		}
		a.log.Info(ctx, "receiving completed", "lines", len(r.lines))
		a.sink.Status(scanner.Success, receivingSavedPrint)
		return true, nil

	case ":quit":
		return true, nil

	default:
		fmt.Fprintln(a.out, receiveHelp)
	}
	return false, nil
}

// record replaces an earlier line for the same order item.
func (r *receiving) record(line models.ReceivingLine) {
	for i := range r.lines {
		if r.lines[i].OrderItemID == line.OrderItemID {
			r.lines[i] = line
			return
		}
	}
	r.lines = append(r.lines, line)
}

func quantityArg(fields []string) (int, error) {
	if len(fields) != 2 {
		return 0, errUsage
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil || n < 0 {
		return 0, errUsage
	}
	return n, nil
}
