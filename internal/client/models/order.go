package models

type Order struct {
	ID          int64   `json:"id"`
	CompanyID   int64   `json:"company_id"`
	OrderNumber string  `json:"order_number"`
	Status      string  `json:"status"`
	Destination *string `json:"destination"`
	PlannedQty  int     `json:"planned_qty"`
	ReceivedQty int     `json:"received_qty"`
	PackedQty   int     `json:"packed_qty"`
	PhotoCount  int     `json:"photo_count,omitempty"`
}

// OrderItem is one line of an order. Barcode may be null on the server.
type OrderItem struct {
	ID             int64   `json:"id"`
	ProductID      int64   `json:"product_id"`
	ProductName    string  `json:"product_name"`
	Barcode        *string `json:"barcode"`
	Brand          *string `json:"brand"`
	Size           *string `json:"size"`
	Color          *string `json:"color"`
	WBArticle      *string `json:"wb_article"`
	PlannedQty     int     `json:"planned_qty"`
	ReceivedQty    int     `json:"received_qty"`
	DefectQty      int     `json:"defect_qty"`
	PackedQty      int     `json:"packed_qty"`
	AdjustmentQty  int     `json:"adjustment_qty"`
	AdjustmentNote *string `json:"adjustment_note"`
}

// BarcodeValue returns the barcode or "".
func (i OrderItem) BarcodeValue() string {
	if i.Barcode == nil {
		return ""
	}
	return *i.Barcode
}

// OrderList is one page of orders.
type OrderList struct {
	Items []Order `json:"items"`
	Total int     `json:"total"`
	Page  int     `json:"page"`
	Limit int     `json:"limit"`
}
