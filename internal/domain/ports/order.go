package ports

import (
	"fmt"

	"github.com/kevin07696/pagseguro-gateway/internal/domain/models"
	"github.com/shopspring/decimal"
)

// OrderV2 is the current host order API.
type OrderV2 interface {
	GetID() string
	GetNumber() string
	GetTotal() decimal.Decimal
	GetShippingTotal() decimal.Decimal
	GetItems() []models.OrderItem
	GetFees() []models.OrderFee
	GetTaxes() []models.OrderTax
	GetCustomer() models.Customer
	GetShippingAddress() models.Address
	GetBillingAddress() models.Address
	GetReturnURL() string
}

// OrderV1 is the legacy host order API. It predates split billing/shipping
// addresses and exposes an order-level discount the current API folds into
// line totals.
type OrderV1 interface {
	OrderID() string
	OrderNumber() string
	Total() decimal.Decimal
	ShippingTotal() decimal.Decimal
	Discount() decimal.Decimal
	Lines() []models.OrderItem
	Fees() []models.OrderFee
	Taxes() []models.OrderTax
	Buyer() models.Customer
	DeliveryAddress() models.Address
	ReturnURL() string
}

// AdaptOrder normalizes either host order variant into an OrderView.
// The check is a capability check, not a version check: an order satisfying
// the current API is taken as current even if it also satisfies the legacy
// one.
func AdaptOrder(order interface{}) (models.OrderView, error) {
	switch o := order.(type) {
	case OrderV2:
		return models.OrderView{
			ID:            o.GetID(),
			Number:        o.GetNumber(),
			Total:         o.GetTotal(),
			ShippingTotal: o.GetShippingTotal(),
			Items:         o.GetItems(),
			Fees:          o.GetFees(),
			Taxes:         o.GetTaxes(),
			Customer:      o.GetCustomer(),
			Shipping:      o.GetShippingAddress(),
			Billing:       o.GetBillingAddress(),
			ReturnURL:     o.GetReturnURL(),
		}, nil
	case OrderV1:
		// Legacy orders carry one address for both billing and delivery
		addr := o.DeliveryAddress()
		return models.OrderView{
			ID:            o.OrderID(),
			Number:        o.OrderNumber(),
			Total:         o.Total(),
			ShippingTotal: o.ShippingTotal(),
			Discount:      o.Discount(),
			Items:         o.Lines(),
			Fees:          o.Fees(),
			Taxes:         o.Taxes(),
			Customer:      o.Buyer(),
			Shipping:      addr,
			Billing:       addr,
			ReturnURL:     o.ReturnURL(),
		}, nil
	case models.OrderView:
		return o, nil
	case *models.OrderView:
		return *o, nil
	default:
		return models.OrderView{}, fmt.Errorf("unsupported order type %T", order)
	}
}
