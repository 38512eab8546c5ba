package services

import (
	"context"
	"net/http"

	"github.com/birkaops/birka/internal/client/client"
	"github.com/birkaops/birka/internal/client/models"
)

// WarehouseService covers the warehouse endpoints. It satisfies
// scanner.Validator.
type WarehouseService interface {
	ValidateBarcode(ctx context.Context, barcode string) (*models.BarcodeValidation, error)
	ValidateBarcodeInOrder(ctx context.Context, barcode string, orderID int64) (*models.InOrderValidation, error)
	CompleteReceiving(ctx context.Context, req models.CompleteReceivingRequest) error
	RecordPacking(ctx context.Context, rec models.PackingRecord) error
}

type warehouseService struct {
	client client.Client
}

func NewWarehouseService(c client.Client) WarehouseService {
	return &warehouseService{client: c}
}

func (w *warehouseService) ValidateBarcode(ctx context.Context, barcode string) (*models.BarcodeValidation, error) {
	var out models.BarcodeValidation
	err := w.client.Do(ctx, http.MethodPost, "/warehouse/barcode/validate", models.BarcodeValidateRequest{Barcode: barcode}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (w *warehouseService) ValidateBarcodeInOrder(ctx context.Context, barcode string, orderID int64) (*models.InOrderValidation, error) {
	var out models.InOrderValidation
	req := models.BarcodeValidateInOrderRequest{Barcode: barcode, OrderID: orderID}
	if err := w.client.Do(ctx, http.MethodPost, "/warehouse/barcode/validate-in-order", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (w *warehouseService) CompleteReceiving(ctx context.Context, req models.CompleteReceivingRequest) error {
	return w.client.Do(ctx, http.MethodPost, "/warehouse/receiving/complete", req, nil)
}

func (w *warehouseService) RecordPacking(ctx context.Context, rec models.PackingRecord) error {
	return w.client.Do(ctx, http.MethodPost, "/warehouse/packing/record", rec, nil)
}
