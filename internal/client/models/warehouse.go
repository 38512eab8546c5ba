package models

type BarcodeValidateRequest struct {
	Barcode string `json:"barcode"`
}

type BarcodeValidateInOrderRequest struct {
	Barcode string `json:"barcode"`
	OrderID int64  `json:"order_id"`
}

// ScannedProduct is the product a barcode resolved to.
type ScannedProduct struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Brand     *string `json:"brand"`
	Size      *string `json:"size"`
	Color     *string `json:"color"`
	WBArticle *string `json:"wb_article"`
	Barcode   *string `json:"barcode"`
}

// ScannedBox is the supply box a barcode resolved to.
type ScannedBox struct {
	ID              int64   `json:"id"`
	BoxNumber       int     `json:"box_number"`
	SupplyID        int64   `json:"supply_id"`
	ExternalBoxID   *string `json:"external_box_id"`
	ExternalBarcode *string `json:"external_barcode"`
}

type BarcodeValidation struct {
	Valid   bool            `json:"valid"`
	Message string          `json:"message"`
	Type    string          `json:"type,omitempty"`
	Product *ScannedProduct `json:"product,omitempty"`
	Box     *ScannedBox     `json:"box,omitempty"`
}

type InOrderValidation struct {
	Found   bool   `json:"found"`
	Message string `json:"message"`
}

type ReceivingLine struct {
	OrderItemID int64 `json:"order_item_id"`
	ReceivedQty int   `json:"received_qty"`
	DefectQty   int   `json:"defect_qty"`
}

type CompleteReceivingRequest struct {
	OrderID int64           `json:"order_id"`
	Items   []ReceivingLine `json:"items"`
}

type PackingRecord struct {
	OrderID          int64  `json:"order_id"`
	ProductID        int64  `json:"product_id"`
	EmployeeCode     string `json:"employee_code"`
	Quantity         int    `json:"quantity"`
	PalletNumber     string `json:"pallet_number,omitempty"`
	BoxNumber        string `json:"box_number,omitempty"`
	Warehouse        string `json:"warehouse,omitempty"`
	MaterialsUsed    string `json:"materials_used,omitempty"`
	TimeSpentMinutes int    `json:"time_spent_minutes,omitempty"`
	BoxBarcode       string `json:"box_barcode,omitempty"`
}
