package models

import (
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
)

// Posted payment-method slugs as they arrive from the checkout form
const (
	MethodCreditCard    = "credit-card"
	MethodBankTransfer  = "bank-transfer"
	MethodBankingTicket = "banking-ticket"
)

// PostedFields carries the buyer-submitted checkout form values.
// Everything here is untrusted input; amounts that fail to parse degrade to
// zero rather than failing the request.
type PostedFields struct {
	PaymentMethod          string
	SenderHash             string
	ShipToDifferentAddress bool

	// Credit-card method
	CreditCardToken  string
	Installments     int
	InstallmentValue decimal.Decimal
	HolderName       string
	HolderCPF        string
	HolderBirthDate  string
	HolderPhone      string

	// Bank-transfer method
	BankName string

	// Merchant-configured no-interest installment hint
	NoInterestMinValue decimal.Decimal
}

// PostedFieldsFromForm extracts the checkout form fields from a form post
func PostedFieldsFromForm(form url.Values) PostedFields {
	_, shipTo := form["ship_to_different_address"]

	return PostedFields{
		PaymentMethod:          form.Get("pagseguro_payment_method"),
		SenderHash:             form.Get("pagseguro_sender_hash"),
		ShipToDifferentAddress: shipTo,

		CreditCardToken:  form.Get("pagseguro_credit_card_hash"),
		Installments:     formInt(form, "pagseguro_card_installments"),
		InstallmentValue: formDecimal(form, "pagseguro_installment_value"),
		HolderName:       form.Get("pagseguro_card_holder_name"),
		HolderCPF:        form.Get("pagseguro_card_holder_cpf"),
		HolderBirthDate:  form.Get("pagseguro_card_holder_birth_date"),
		HolderPhone:      form.Get("pagseguro_card_holder_phone"),

		BankName: form.Get("pagseguro_bank_transfer"),

		NoInterestMinValue: formDecimal(form, "no_interest_installments_min_value"),
	}
}

func formInt(form url.Values, key string) int {
	n, err := strconv.Atoi(form.Get(key))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func formDecimal(form url.Values, key string) decimal.Decimal {
	d, err := decimal.NewFromString(form.Get(key))
	if err != nil {
		return decimal.Zero
	}
	return d
}
