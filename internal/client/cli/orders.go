package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"
)

const ordersPageSize = 20

var errNoCompany = errors.New("no active company; run 'company <id>'")

// Company shows the active company or, with an argument, switches it.
func (a *App) Company(ctx context.Context, args []string) error {
	if len(args) == 0 {
		id, ok, err := a.prefs.ActiveCompany(ctx)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(a.out, "No active company")
			return nil
		}
		fmt.Fprintf(a.out, "Active company: %d\n", id)
		return nil
	}

	id, err := parseID(args[0])
	if err != nil {
		return usage("company [id]")
	}
	if err := a.prefs.SetActiveCompany(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Active company: %d\n", id)
	return nil
}

// Orders lists one page of the active company's orders.
func (a *App) Orders(ctx context.Context, args []string) error {
	page := 1
	if len(args) > 0 {
		p, err := strconv.Atoi(args[0])
		if err != nil || p < 1 {
			return usage("orders [page]")
		}
		page = p
	}

	companyID, ok, err := a.prefs.ActiveCompany(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return errNoCompany
	}

	list, err := a.orders.List(ctx, companyID, page, ordersPageSize)
	if err != nil {
		return err
	}
	if len(list.Items) == 0 {
		fmt.Fprintln(a.out, "No orders")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNUMBER\tSTATUS\tPLANNED\tRECEIVED\tPACKED")
	for _, o := range list.Items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%d\n", o.ID, o.OrderNumber, o.Status, o.PlannedQty, o.ReceivedQty, o.PackedQty)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "page %d, %d of %d\n", list.Page, len(list.Items), list.Total)
	return nil
}

// Items lists the lines of an order.
func (a *App) Items(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("items <order-id>")
	}
	orderID, err := parseID(args[0])
	if err != nil {
		return usage("items <order-id>")
	}

	items, err := a.orders.Items(ctx, orderID)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, emptyOrderMessage)
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPRODUCT\tBARCODE\tPLANNED\tRECEIVED\tDEFECT")
	for _, it := range items {
		bc := it.BarcodeValue()
		if bc == "" {
			bc = "—"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%d\n", it.ID, it.ProductName, bc, it.PlannedQty, it.ReceivedQty, it.DefectQty)
	}
	return tw.Flush()
}
