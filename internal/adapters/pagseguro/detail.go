package pagseguro

import (
	"encoding/json"
	"strconv"

	"github.com/kevin07696/pagseguro-gateway/internal/domain/models"
)

// TransactionDetail is a read-only view over a gateway transaction document,
// as returned by a direct payment or a notification lookup.
type TransactionDetail struct {
	root *Node
}

// NewTransactionDetail wraps a parsed transaction document
func NewTransactionDetail(root *Node) *TransactionDetail {
	return &TransactionDetail{root: root}
}

// Code is the gateway's transaction identifier
func (d *TransactionDetail) Code() string {
	return d.root.ChildText("code")
}

// Reference is the merchant reference the transaction was created with
func (d *TransactionDetail) Reference() string {
	return d.root.ChildText("reference")
}

// Status is the gateway's numeric transaction status
func (d *TransactionDetail) Status() int {
	status, _ := strconv.Atoi(d.root.ChildText("status"))
	return status
}

// GrossAmount is the transaction total as the gateway reports it
func (d *TransactionDetail) GrossAmount() string {
	return d.root.ChildText("grossAmount")
}

func (d *TransactionDetail) paymentMethod() *Node {
	return d.root.Child("paymentMethod")
}

// PaymentTypeCode is the gateway's payment type identifier
func (d *TransactionDetail) PaymentTypeCode() int {
	method := d.paymentMethod()
	if method == nil {
		return 0
	}
	code, _ := strconv.Atoi(method.ChildText("type"))
	return code
}

// PaymentMethodCode is the gateway's concrete payment method identifier
func (d *TransactionDetail) PaymentMethodCode() int {
	method := d.paymentMethod()
	if method == nil {
		return 0
	}
	code, _ := strconv.Atoi(method.ChildText("code"))
	return code
}

// PaymentTypeName is the buyer-facing name for the payment type
func (d *TransactionDetail) PaymentTypeName() string {
	return models.PaymentTypeName(d.PaymentTypeCode())
}

// PaymentMethodName is the buyer-facing name for the payment method
func (d *TransactionDetail) PaymentMethodName() string {
	return models.PaymentMethodName(d.PaymentMethodCode())
}

// PaymentLink is the billet or bank transfer URL the buyer must visit to
// finish paying; empty for card payments.
func (d *TransactionDetail) PaymentLink() string {
	return d.root.ChildText("paymentLink")
}

// InstallmentCount reports how many installments the buyer chose
func (d *TransactionDetail) InstallmentCount() int {
	count, _ := strconv.Atoi(d.root.ChildText("installmentCount"))
	return count
}

// MarshalJSON renders the fields host callers consume
func (d *TransactionDetail) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Code              string `json:"code"`
		Reference         string `json:"reference"`
		Status            int    `json:"status"`
		GrossAmount       string `json:"gross_amount"`
		PaymentTypeName   string `json:"payment_type"`
		PaymentMethodName string `json:"payment_method"`
		PaymentLink       string `json:"payment_link,omitempty"`
		InstallmentCount  int    `json:"installment_count,omitempty"`
	}{
		Code:              d.Code(),
		Reference:         d.Reference(),
		Status:            d.Status(),
		GrossAmount:       d.GrossAmount(),
		PaymentTypeName:   d.PaymentTypeName(),
		PaymentMethodName: d.PaymentMethodName(),
		PaymentLink:       d.PaymentLink(),
		InstallmentCount:  d.InstallmentCount(),
	})
}
