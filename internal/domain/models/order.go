package models

import (
	"github.com/shopspring/decimal"
)

// DocumentType identifies the taxpayer document kind the gateway requires
type DocumentType string

const (
	DocumentCPF  DocumentType = "CPF"
	DocumentCNPJ DocumentType = "CNPJ"
)

// Address is a postal address in the shape the gateway wire format expects
type Address struct {
	Street     string
	Number     string
	Complement string
	District   string
	City       string
	State      string
	Country    string
	PostalCode string
}

// Customer holds the buyer identity attached to an order
type Customer struct {
	Name          string
	Email         string
	PhoneAreaCode string
	PhoneNumber   string
	DocumentType  DocumentType
	DocumentValue string
}

// OrderItem is a product line as the host order system exposes it
type OrderItem struct {
	Name      string
	Quantity  int
	UnitTotal decimal.Decimal // per-unit total, taxes excluded
}

// OrderFee is an order-level surcharge line
type OrderFee struct {
	Name  string
	Total decimal.Decimal
}

// OrderTax is a tax line; the gateway receives tax plus shipping tax as one item
type OrderTax struct {
	Label          string
	Amount         decimal.Decimal
	ShippingAmount decimal.Decimal
}

// OrderView is the canonical read-only order shape consumed by the pipeline.
// Both historical host order APIs are adapted into this once at the call
// boundary; nothing downstream looks at the host order again.
type OrderView struct {
	ID            string
	Number        string // public order reference shown to the buyer
	Total         decimal.Decimal
	ShippingTotal decimal.Decimal
	Discount      decimal.Decimal // legacy hosts only; zero elsewhere
	Items         []OrderItem
	Fees          []OrderFee
	Taxes         []OrderTax
	Customer      Customer
	Shipping      Address
	Billing       Address
	ReturnURL     string
}

// LineItem is one normalized entry of the amount model sent to the gateway.
// Invariant: Amount is strictly positive and Quantity is at least 1.
type LineItem struct {
	Description string
	Amount      decimal.Decimal
	Quantity    int
}

// OrderSummary is the flat amount model built once per request.
// ExtraAmount and ShippingCost are already wire-formatted (2dp, dot
// separator) or empty when absent.
type OrderSummary struct {
	Items        []LineItem
	ExtraAmount  string
	ShippingCost string
}
