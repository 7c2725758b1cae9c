package shipstation

import "encoding/json"

// Order mirrors the ShipStation order resource. Fields the splitter never
// touches ride through as raw JSON so create/update calls do not drop them.
type Order struct {
	OrderID        int64   `json:"orderId,omitempty"`
	OrderKey       string  `json:"orderKey,omitempty"`
	OrderNumber    string  `json:"orderNumber"`
	OrderDate      string  `json:"orderDate,omitempty"`
	OrderStatus    string  `json:"orderStatus,omitempty"`
	CustomerEmail  string  `json:"customerEmail,omitempty"`
	Items          []Item  `json:"items"`
	AmountPaid     float64 `json:"amountPaid"`
	TaxAmount      float64 `json:"taxAmount"`
	ShippingAmount float64 `json:"shippingAmount"`
	TagIDs         []int64 `json:"tagIds,omitempty"`

	BillTo          json.RawMessage `json:"billTo,omitempty"`
	ShipTo          json.RawMessage `json:"shipTo,omitempty"`
	AdvancedOptions AdvancedOptions `json:"advancedOptions"`
}

// Item is one order line on the wire.
type Item struct {
	OrderItemID       int64   `json:"orderItemId,omitempty"`
	LineItemKey       string  `json:"lineItemKey,omitempty"`
	SKU               string  `json:"sku"`
	Name              string  `json:"name,omitempty"`
	Quantity          int     `json:"quantity"`
	UnitPrice         float64 `json:"unitPrice,omitempty"`
	WarehouseLocation string  `json:"warehouseLocation,omitempty"`
}

// AdvancedOptions carries the nested options block; only warehouseId is ever
// rewritten locally.
type AdvancedOptions struct {
	WarehouseID int64 `json:"warehouseId,omitempty"`
	StoreID     int64 `json:"storeId,omitempty"`
}

// OrderListResponse is the envelope returned by order list endpoints.
type OrderListResponse struct {
	Orders []Order `json:"orders"`
	Total  int     `json:"total,omitempty"`
	Page   int     `json:"page,omitempty"`
	Pages  int     `json:"pages,omitempty"`
}
