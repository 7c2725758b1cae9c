package shipstation

import (
	shipstationclient "github.com/orderops/shipsplit/internal/clients/http/shipstation"
	"github.com/orderops/shipsplit/internal/domains/orders/domain"
)

// ToDomainOrder converts a wire order into the domain aggregate. The resolved
// warehouse label never arrives on the wire, so items come back unlabeled.
func ToDomainOrder(order shipstationclient.Order) domain.Order {
	items := make([]domain.Item, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, domain.Item{
			OrderItemID:       item.OrderItemID,
			SKU:               item.SKU,
			Name:              item.Name,
			Quantity:          item.Quantity,
			UnitPrice:         item.UnitPrice,
			WarehouseLocation: item.WarehouseLocation,
		})
	}
	return domain.Order{
		OrderID:     order.OrderID,
		OrderKey:    order.OrderKey,
		OrderNumber: order.OrderNumber,
		OrderDate:   order.OrderDate,
		OrderStatus: order.OrderStatus,
		Items:       items,
		TagIDs:      append([]int64(nil), order.TagIDs...),
		AdvancedOptions: domain.AdvancedOptions{
			WarehouseID: order.AdvancedOptions.WarehouseID,
			StoreID:     order.AdvancedOptions.StoreID,
		},
		AmountPaid:     order.AmountPaid,
		TaxAmount:      order.TaxAmount,
		ShippingAmount: order.ShippingAmount,
		BillTo:         append([]byte(nil), order.BillTo...),
		ShipTo:         append([]byte(nil), order.ShipTo...),
	}
}

// FromDomainOrder converts a routed payload back to the wire shape.
func FromDomainOrder(order *domain.Order) shipstationclient.Order {
	if order == nil {
		return shipstationclient.Order{}
	}
	items := make([]shipstationclient.Item, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, shipstationclient.Item{
			OrderItemID:       item.OrderItemID,
			SKU:               item.SKU,
			Name:              item.Name,
			Quantity:          item.Quantity,
			UnitPrice:         item.UnitPrice,
			WarehouseLocation: item.WarehouseLocation,
		})
	}
	return shipstationclient.Order{
		OrderID:     order.OrderID,
		OrderKey:    order.OrderKey,
		OrderNumber: order.OrderNumber,
		OrderDate:   order.OrderDate,
		OrderStatus: order.OrderStatus,
		Items:       items,
		TagIDs:      append([]int64(nil), order.TagIDs...),
		AdvancedOptions: shipstationclient.AdvancedOptions{
			WarehouseID: order.AdvancedOptions.WarehouseID,
			StoreID:     order.AdvancedOptions.StoreID,
		},
		AmountPaid:     order.AmountPaid,
		TaxAmount:      order.TaxAmount,
		ShippingAmount: order.ShippingAmount,
		BillTo:         order.BillTo,
		ShipTo:         order.ShipTo,
	}
}
