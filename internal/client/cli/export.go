package cli

import (
	"context"
	"fmt"

	"github.com/birkaops/birka/internal/client/download"
)

const exportUsage = "export services|pricelist|products|receiving <order-id>"

// Export downloads a server-generated file and hands it to the delivery
// chain.
func (a *App) Export(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usage(exportUsage)
	}

	var (
		res download.Result
		err error
	)
	switch args[0] {
	case "services":
		res, err = a.exports.ServicesExcel(ctx)
	case "pricelist":
		res, err = a.exports.PriceListPDF(ctx)
	case "products":
		companyID, ok, perr := a.prefs.ActiveCompany(ctx)
		if perr != nil {
			return perr
		}
		if !ok {
			return errNoCompany
		}
		res, err = a.exports.ProductsExcel(ctx, companyID)
	case "receiving":
		id, uerr := singleID(args[1:], exportUsage)
		if uerr != nil {
			return uerr
		}
		res, err = a.exports.ReceivingExcel(ctx, id)
	default:
		return usage(exportUsage)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Delivered via %s: %s\n", res.Strategy, res.Location)
	return nil
}
