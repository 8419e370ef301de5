package pagseguro

import (
	"strconv"

	"github.com/kevin07696/pagseguro-gateway/internal/domain/models"
)

// Phone is a Brazilian phone number split the way the gateway wants it
type Phone struct {
	AreaCode string
	Number   string
}

// Sender identifies the buyer on a request
type Sender struct {
	Name         string
	Email        string
	Hash         string // gateway fingerprint collected by the checkout script
	IP           string
	Phone        Phone
	DocumentType models.DocumentType
	Document     string
}

// ShippingInfo carries the delivery address and cost
type ShippingInfo struct {
	Type    string
	Cost    string
	Address models.Address
}

// Installment is the buyer's chosen installment plan
type Installment struct {
	Quantity int
	Value    string
}

// Holder identifies the credit-card holder; the gateway requires it to be a
// natural person, so the document is always a CPF.
type Holder struct {
	Name      string
	CPF       string
	BirthDate string
	Phone     Phone
}

// CreditCard is the method-specific payload for card payments
type CreditCard struct {
	Token          string
	Installment    Installment
	Holder         Holder
	BillingAddress models.Address

	// Largest installment count the merchant absorbs interest for.
	// Zero or one means the field is left off the wire entirely.
	NoInterestQuantity int
}

// Bank is the method-specific payload for online bank transfers
type Bank struct {
	Name string
}

// CheckoutRequest is the payload for a hosted checkout-token request
type CheckoutRequest struct {
	Currency        string
	Reference       string
	PublicKey       string
	Sender          Sender
	Shipping        ShippingInfo
	Items           []models.LineItem
	ExtraAmount     string
	RedirectURL     string
	NotificationURL string
	MaxUses         int
	MaxAge          int
}

// PaymentRequest is the payload for a transparent direct-payment request.
// Exactly one of CreditCard or Bank is set for those methods; the billet
// method carries neither.
type PaymentRequest struct {
	Mode            string
	Method          string
	Currency        string
	Reference       string
	PublicKey       string
	Sender          Sender
	Shipping        ShippingInfo
	Items           []models.LineItem
	ExtraAmount     string
	NotificationURL string
	CreditCard      *CreditCard
	Bank            *Bank
}

// Flatten renders the checkout tree into the gateway's transport fields
func (r *CheckoutRequest) Flatten() map[string]string {
	fields := map[string]string{
		"currency":        r.Currency,
		"maxUses":         strconv.Itoa(r.MaxUses),
		"maxAge":          strconv.Itoa(r.MaxAge),
		"notificationURL": r.NotificationURL,
		"reference":       r.Reference,
		"public_key":      r.PublicKey,
	}

	flattenSender(fields, r.Sender, false)
	flattenShipping(fields, r.Shipping)
	flattenItems(fields, r.Items)

	if r.ExtraAmount != "" {
		fields["extraAmount"] = r.ExtraAmount
	}
	if r.RedirectURL != "" {
		fields["redirectURL"] = r.RedirectURL
	}

	return fields
}

// Flatten renders the payment tree into the gateway's transport fields
func (r *PaymentRequest) Flatten() map[string]string {
	fields := map[string]string{
		"currency":        r.Currency,
		"paymentMethod":   r.Method,
		"paymentMode":     r.Mode,
		"reference":       r.Reference,
		"notificationURL": r.NotificationURL,
		"public_key":      r.PublicKey,
	}

	flattenSender(fields, r.Sender, true)
	flattenShipping(fields, r.Shipping)
	flattenItems(fields, r.Items)

	if r.ExtraAmount != "" {
		fields["extraAmount"] = r.ExtraAmount
	}

	if r.Bank != nil {
		fields["bankName"] = r.Bank.Name
	}

	if cc := r.CreditCard; cc != nil {
		fields["creditCardToken"] = cc.Token
		fields["installmentQuantity"] = strconv.Itoa(cc.Installment.Quantity)
		fields["installmentValue"] = cc.Installment.Value
		fields["creditCardHolderName"] = cc.Holder.Name
		fields["creditCardHolderCPF"] = cc.Holder.CPF
		fields["creditCardHolderBirthDate"] = cc.Holder.BirthDate
		fields["creditCardHolderAreaCode"] = cc.Holder.Phone.AreaCode
		fields["creditCardHolderPhone"] = cc.Holder.Phone.Number

		if cc.NoInterestQuantity > 1 {
			fields["noInterestInstallmentQuantity"] = strconv.Itoa(cc.NoInterestQuantity)
		}

		flattenAddress(fields, "billingAddress", cc.BillingAddress)
	}

	return fields
}

func flattenSender(fields map[string]string, sender Sender, withIdentity bool) {
	fields["senderName"] = sender.Name
	fields["senderAreaCode"] = sender.Phone.AreaCode
	fields["senderPhone"] = sender.Phone.Number

	if withIdentity {
		fields["senderEmail"] = sender.Email
		fields["senderHash"] = sender.Hash
	}

	switch sender.DocumentType {
	case models.DocumentCNPJ:
		fields["senderCNPJ"] = sender.Document
	default:
		fields["senderCPF"] = sender.Document
	}

	if sender.IP != "" {
		fields["senderIp"] = sender.IP
	}
}

func flattenShipping(fields map[string]string, shipping ShippingInfo) {
	fields["shippingType"] = shipping.Type
	fields["shippingCost"] = shipping.Cost
	flattenAddress(fields, "shippingAddress", shipping.Address)
}

func flattenAddress(fields map[string]string, prefix string, address models.Address) {
	fields[prefix+"Country"] = address.Country
	fields[prefix+"Street"] = address.Street
	fields[prefix+"Number"] = address.Number
	fields[prefix+"Complement"] = address.Complement
	fields[prefix+"District"] = address.District
	fields[prefix+"City"] = address.City
	fields[prefix+"PostalCode"] = address.PostalCode
	fields[prefix+"State"] = address.State
}

// flattenItems emits one flattened key set per line item, indexed from 1
func flattenItems(fields map[string]string, items []models.LineItem) {
	for i, item := range items {
		id := strconv.Itoa(i + 1)
		fields["itemId"+id] = id
		fields["itemDescription"+id] = item.Description
		fields["itemAmount"+id] = moneyFormat(item.Amount)
		fields["itemQuantity"+id] = strconv.Itoa(item.Quantity)
	}
}
