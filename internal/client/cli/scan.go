package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/birkaops/birka/internal/client/scanner"
)

const scanHelp = `Scan barcodes, one per line. Commands:
  :order <id>|off   check scans against an order
  :history          show scanned barcodes
  :clear            clear the history
  :quit             leave the scanner`

// Scan runs the free-standing scanner. Every accepted scan is validated on
// the server and, with an order chosen, checked against it.
func (a *App) Scan(ctx context.Context, args []string) error {
	fs := scanner.NewFreeScan(a.warehouse, a.config.ScannerDebounce)
	if len(args) > 0 {
		id, err := parseID(args[0])
		if err != nil {
			return usage("scan [order-id]")
		}
		fs.SetOrder(id)
	}
	fmt.Fprintln(a.out, scanHelp)

	for {
		if a.interactive {
			fmt.Fprintf(a.out, "scan%s> ", scanPrompt(fs))
		}
		if !a.in.Scan() {
			return a.in.Err()
		}
		line := strings.TrimSpace(a.in.Text())
		if line == "" {
			continue
		}

		if !strings.HasPrefix(line, ":") {
			a.showScan(ctx, fs.Handle(ctx, line, a.now()))
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case ":order":
			switch {
			case len(fields) == 2 && fields[1] == "off":
				fs.SetOrder(0)
			case len(fields) == 2:
				id, err := parseID(fields[1])
				if err != nil {
					fmt.Fprintln(a.out, usage(":order <id>|off"))
					continue
				}
				fs.SetOrder(id)
			default:
				fmt.Fprintln(a.out, usage(":order <id>|off"))
			}
		case ":history":
			for i, text := range fs.History() {
				fmt.Fprintf(a.out, "%3d  %s\n", i+1, text)
			}
		case ":clear":
			fs.ClearHistory()
		case ":quit":
			return nil
		default:
			fmt.Fprintln(a.out, scanHelp)
		}
	}
}

func scanPrompt(fs *scanner.FreeScan) string {
	total, unique := fs.Stats()
	s := fmt.Sprintf(" (%d/%d", total, unique)
	if id := fs.Order(); id != 0 {
		s += fmt.Sprintf(", order #%d", id)
	}
	return s + ")"
}

func (a *App) showScan(ctx context.Context, res scanner.ScanResult) {
	if !res.Accepted {
		return
	}
	a.player.Play(ctx, res.Feedback)
	a.sink.Status(res.Feedback, res.Text+": "+res.Message)

	switch {
	case res.Product != nil:
		p := res.Product
		fmt.Fprintf(a.out, "  товар #%d %s%s\n", p.ID, p.Name, optional(" · ", p.Brand, p.Size, p.Color, p.WBArticle))
	case res.Box != nil:
		b := res.Box
		fmt.Fprintf(a.out, "  короб №%d, поставка #%d%s\n", b.BoxNumber, b.SupplyID, optional(" · ", b.ExternalBarcode))
	}
	if res.InOrder != nil {
		fmt.Fprintln(a.out, "  "+res.InOrderMessage)
	}
}

// optional joins the non-empty values, each preceded by sep.
func optional(sep string, values ...*string) string {
	var b strings.Builder
	for _, v := range values {
		if v != nil && *v != "" {
			b.WriteString(sep)
			b.WriteString(*v)
		}
	}
	return b.String()
}
