package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/birkaops/birka/internal/client/client"
	"github.com/birkaops/birka/internal/client/download"
)

// Deliverer hands a downloaded file to the user.
type Deliverer interface {
	Deliver(ctx context.Context, blob *client.Blob, fallback string) (download.Result, error)
}

// ExportService downloads server-generated files and delivers them.
type ExportService interface {
	// Download fetches path and delivers it, naming the file fallback when
	// the server does not.
	Download(ctx context.Context, path, fallback string) (download.Result, error)

	ServicesExcel(ctx context.Context) (download.Result, error)
	PriceListPDF(ctx context.Context) (download.Result, error)
	ProductsExcel(ctx context.Context, companyID int64) (download.Result, error)
	ReceivingExcel(ctx context.Context, orderID int64) (download.Result, error)
}

type exportService struct {
	client    client.Client
	deliverer Deliverer
}

func NewExportService(c client.Client, d Deliverer) ExportService {
	return &exportService{client: c, deliverer: d}
}

func (e *exportService) Download(ctx context.Context, path, fallback string) (download.Result, error) {
	blob, err := e.client.File(ctx, http.MethodGet, path, nil)
	if err != nil {
		return download.Result{}, err
	}
	return e.deliverer.Deliver(ctx, blob, fallback)
}

func (e *exportService) ServicesExcel(ctx context.Context) (download.Result, error) {
	return e.Download(ctx, "/services/export", "services.xlsx")
}

func (e *exportService) PriceListPDF(ctx context.Context) (download.Result, error) {
	return e.Download(ctx, "/services/pdf", "prajs-birka.pdf")
}

func (e *exportService) ProductsExcel(ctx context.Context, companyID int64) (download.Result, error) {
	return e.Download(ctx, fmt.Sprintf("/products/export?company_id=%d", companyID), "products.xlsx")
}

func (e *exportService) ReceivingExcel(ctx context.Context, orderID int64) (download.Result, error) {
	return e.Download(ctx, fmt.Sprintf("/orders/%d/export-receiving", orderID), fmt.Sprintf("receiving-%d.xlsx", orderID))
}
