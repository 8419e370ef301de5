package pagseguro

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kevin07696/pagseguro-gateway/internal/adapters/ports"
	"github.com/kevin07696/pagseguro-gateway/internal/domain/models"
	domainports "github.com/kevin07696/pagseguro-gateway/internal/domain/ports"
	pkgerrors "github.com/kevin07696/pagseguro-gateway/pkg/errors"
	"github.com/kevin07696/pagseguro-gateway/pkg/observability"
)

// Buyer-facing failure messages. These are fixed wording the host surfaces
// verbatim, so they never interpolate gateway content.
const (
	msgCheckoutUnauthorized = "Invalid e-mail or public key. Please check your PagSeguro configuration."
	msgPaymentUnauthorized  = "You are not allowed to use the PagSeguro Transparent Checkout. Please check the installation instructions."
	msgPaymentFailed        = "An error has occurred while processing your payment, please try again. Or contact us for assistance."
	msgSelectMethod         = "Please, select a payment method."

	errorPrefix = "PagSeguro: "
)

// Checkout tokens are single use and expire quickly so an abandoned
// redirect cannot be replayed later.
const (
	checkoutMaxUses = 1
	checkoutMaxAge  = 120
)

const maxNoInterestInstallments = 18

// Config holds the merchant account and behavior settings for one adapter
type Config struct {
	Email     string
	PublicKey string
	Sandbox   bool
	Debug     bool

	InvoicePrefix string
	SendOnlyTotal bool
	Currency      string

	AcceptCreditCard   bool
	AcceptBankTransfer bool
	AcceptTicket       bool

	PublicURL    string
	BaseURL      string
	StaticMirror bool

	Platform        string
	PlatformVersion string
	ExtraVersion    string
}

// CheckoutHook can adjust a checkout payload before it is flattened
type CheckoutHook func(*CheckoutRequest)

// PaymentHook can adjust a direct-payment payload before it is flattened
type PaymentHook func(*PaymentRequest)

// Adapter talks the gateway's transparent-checkout wire protocol
type Adapter struct {
	config     Config
	httpClient ports.HTTPClient
	logger     ports.Logger

	checkoutHooks []CheckoutHook
	paymentHooks  []PaymentHook
}

// New creates a gateway adapter
func New(config Config, httpClient ports.HTTPClient, logger ports.Logger) *Adapter {
	return &Adapter{
		config:     config,
		httpClient: httpClient,
		logger:     logger,
	}
}

// RegisterCheckoutHook adds a hook run on every checkout payload after it is
// built and before it is flattened.
func (a *Adapter) RegisterCheckoutHook(hook CheckoutHook) {
	a.checkoutHooks = append(a.checkoutHooks, hook)
}

// RegisterPaymentHook adds a hook run on every direct-payment payload after
// it is built and before it is flattened.
func (a *Adapter) RegisterPaymentHook(hook PaymentHook) {
	a.paymentHooks = append(a.paymentHooks, hook)
}

// Outcome is the host-facing result of a checkout or payment dispatch.
// Exactly one of URL/Token or Errors is meaningful.
type Outcome struct {
	URL    string             `json:"url,omitempty"`
	Token  string             `json:"token,omitempty"`
	Data   *TransactionDetail `json:"data,omitempty"`
	Errors []string           `json:"errors,omitempty"`
}

func failure(messages ...string) Outcome {
	return Outcome{Errors: messages}
}

// DoCheckoutRequest creates a hosted-checkout token for an order and returns
// the payment page URL the buyer should be redirected to.
func (a *Adapter) DoCheckoutRequest(ctx context.Context, order interface{}, posted models.PostedFields, senderIP string) Outcome {
	view, err := domainports.AdaptOrder(order)
	if err != nil {
		a.logger.Error("unsupported order shape", ports.Err(err))
		return failure(errorPrefix + msgPaymentFailed)
	}

	request := a.buildCheckoutRequest(view, posted, senderIP)
	for _, hook := range a.checkoutHooks {
		hook(request)
	}

	endpoint := appendQuery(a.checkoutURL(), a.credentialsQuery())
	body, status, err := a.send(ctx, "checkout", http.MethodPost, endpoint, ConvertEncoding(request.Flatten()))
	if err != nil {
		return failure(errorPrefix + msgPaymentFailed)
	}
	if status == http.StatusUnauthorized {
		a.logger.Error("gateway rejected merchant credentials on checkout")
		return failure(errorPrefix + msgCheckoutUnauthorized)
	}

	result := parseSafeXML(body, a.logger)
	switch result.Kind {
	case KindToken:
		a.logger.Info("checkout token created",
			ports.String("order_id", view.ID))
		return Outcome{URL: a.paymentURL(result.Token), Token: result.Token}
	case KindErrors:
		return failure(a.faultMessages(result.Faults)...)
	default:
		return failure(errorPrefix + msgPaymentFailed)
	}
}

// DoPaymentRequest runs a transparent direct payment for an order and, on
// success, returns the host's return URL together with the transaction
// detail.
func (a *Adapter) DoPaymentRequest(ctx context.Context, order interface{}, posted models.PostedFields, senderIP string) Outcome {
	if !a.methodEnabled(posted.PaymentMethod) {
		return failure(errorPrefix + msgSelectMethod)
	}

	view, err := domainports.AdaptOrder(order)
	if err != nil {
		a.logger.Error("unsupported order shape", ports.Err(err))
		return failure(errorPrefix + msgPaymentFailed)
	}

	request := a.buildPaymentRequest(view, posted, senderIP)
	for _, hook := range a.paymentHooks {
		hook(request)
	}

	endpoint := appendQuery(a.transactionsURL(), a.credentialsQuery())
	body, status, err := a.send(ctx, "payment", http.MethodPost, endpoint, ConvertEncoding(request.Flatten()))
	if err != nil {
		return failure(errorPrefix + msgPaymentFailed)
	}
	if status == http.StatusUnauthorized {
		a.logger.Error("gateway rejected merchant credentials on direct payment")
		return failure(errorPrefix + msgPaymentUnauthorized)
	}

	result := parseSafeXML(body, a.logger)
	switch result.Kind {
	case KindToken:
		a.logger.Info("direct payment accepted",
			ports.String("order_id", view.ID),
			ports.String("transaction", result.Token))
		return Outcome{URL: view.ReturnURL, Data: NewTransactionDetail(result.Root)}
	case KindErrors:
		return failure(a.faultMessages(result.Faults)...)
	default:
		return failure(errorPrefix + msgPaymentFailed)
	}
}

// ProcessNotification fetches the transaction a gateway notification refers
// to. Only transaction notifications are supported.
func (a *Adapter) ProcessNotification(ctx context.Context, notificationCode, notificationType string) (*TransactionDetail, error) {
	if notificationType != "transaction" {
		return nil, pkgerrors.NewValidationError("notificationType", "only transaction notifications are supported")
	}

	lookupURL := appendQuery(a.notificationURL(notificationCode), url.Values{
		"public_key": {a.config.PublicKey},
	})
	body, status, err := a.send(ctx, "notification", http.MethodGet, lookupURL, nil)
	if err != nil {
		return nil, &pkgerrors.GatewayError{
			Code:           "notification_transport",
			Message:        "notification lookup failed",
			GatewayMessage: err.Error(),
			Category:       pkgerrors.CategoryTransportFailure,
		}
	}
	if status == http.StatusUnauthorized {
		return nil, pkgerrors.NewGatewayError("notification_unauthorized", "gateway rejected merchant credentials", pkgerrors.CategoryAuthFailure)
	}
	if status != http.StatusOK {
		return nil, pkgerrors.NewGatewayError("notification_status", fmt.Sprintf("notification lookup returned status %d", status), pkgerrors.CategoryGatewayRejection)
	}

	result := parseSafeXML(body, a.logger)
	if result.Root == nil || result.Root.Name != "transaction" {
		return nil, pkgerrors.NewGatewayError("notification_malformed", "notification lookup returned an unrecognized document", pkgerrors.CategoryMalformedResponse)
	}
	return NewTransactionDetail(result.Root), nil
}

// SessionID creates a gateway session for the transparent-checkout scripts
func (a *Adapter) SessionID(ctx context.Context) (string, error) {
	endpoint := appendQuery(a.sessionsURL(), url.Values{"public_key": {a.config.PublicKey}})
	body, status, err := a.send(ctx, "session", http.MethodPost, endpoint, nil)
	if err != nil {
		return "", &pkgerrors.GatewayError{
			Code:           "session_transport",
			Message:        "session request failed",
			GatewayMessage: err.Error(),
			Category:       pkgerrors.CategoryTransportFailure,
		}
	}
	if status == http.StatusUnauthorized {
		return "", pkgerrors.NewGatewayError("session_unauthorized", "gateway rejected merchant credentials", pkgerrors.CategoryAuthFailure)
	}
	if status != http.StatusOK {
		return "", pkgerrors.NewGatewayError("session_status", fmt.Sprintf("session request returned status %d", status), pkgerrors.CategoryGatewayRejection)
	}

	result := parseSafeXML(body, a.logger)
	if result.Kind != KindSessionID {
		return "", pkgerrors.NewGatewayError("session_malformed", "session request returned an unrecognized document", pkgerrors.CategoryMalformedResponse)
	}
	return result.SessionID, nil
}

// faultMessages maps gateway faults to buyer-facing messages, dropping the
// suppressed ones.
func (a *Adapter) faultMessages(faults []GatewayFault) []string {
	var messages []string
	for _, fault := range faults {
		a.logger.Info("gateway validation fault",
			ports.String("code", fault.Code),
			ports.String("message", fault.Message))
		resolved := ResolveErrorMessage(fault.Code, fault.Message)
		if resolved == "" {
			continue
		}
		messages = append(messages, errorPrefix+resolved)
	}
	if len(messages) == 0 {
		messages = append(messages, errorPrefix+msgPaymentFailed)
	}
	return messages
}

// credentialsQuery is the merchant authentication the application proxy
// expects on checkout and transaction endpoints.
func (a *Adapter) credentialsQuery() url.Values {
	return url.Values{
		"email":      {a.config.Email},
		"public_key": {a.config.PublicKey},
	}
}

func (a *Adapter) methodEnabled(method string) bool {
	switch method {
	case models.MethodCreditCard:
		return a.config.AcceptCreditCard
	case models.MethodBankTransfer:
		return a.config.AcceptBankTransfer
	case models.MethodBankingTicket:
		return a.config.AcceptTicket
	default:
		return false
	}
}

// send posts flattened fields to the gateway and returns the raw response.
// The body is form encoded in ISO-8859-1 to match what the flattening step
// produced.
func (a *Adapter) send(ctx context.Context, operation, method, endpoint string, fields map[string]string) ([]byte, int, error) {
	start := time.Now()
	requestID := uuid.New().String()

	var reqBody io.Reader
	if len(fields) > 0 {
		form := url.Values{}
		for key, value := range fields {
			form.Set(key, value)
		}
		reqBody = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		observability.RecordGatewayRequest(operation, "error", time.Since(start))
		return nil, 0, err
	}

	if reqBody != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=ISO-8859-1")
	}
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Platform", a.config.Platform)
	req.Header.Set("Platform-Version", a.config.PlatformVersion)
	req.Header.Set("Module-Version", Version)
	if a.config.ExtraVersion != "" {
		req.Header.Set("Extra-Version", a.config.ExtraVersion)
	}

	if a.config.Debug {
		a.logger.Debug("gateway request",
			ports.String("request_id", requestID),
			ports.String("operation", operation),
			ports.String("url", endpoint),
			ports.Int("fields", len(fields)))
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		observability.RecordGatewayRequest(operation, "error", time.Since(start))
		a.logger.Error("gateway request failed",
			ports.String("request_id", requestID),
			ports.String("operation", operation),
			ports.Err(err))
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		observability.RecordGatewayRequest(operation, "error", time.Since(start))
		return nil, 0, err
	}

	observability.RecordGatewayRequest(operation, fmt.Sprintf("%d", resp.StatusCode), time.Since(start))

	if a.config.Debug {
		a.logger.Debug("gateway response",
			ports.String("request_id", requestID),
			ports.String("operation", operation),
			ports.Int("status", resp.StatusCode),
			ports.Int("bytes", len(body)))
	}

	return body, resp.StatusCode, nil
}

func (a *Adapter) buildCheckoutRequest(view models.OrderView, posted models.PostedFields, senderIP string) *CheckoutRequest {
	summary := normalizeOrder(view, a.config.SendOnlyTotal)

	request := &CheckoutRequest{
		Currency:    a.config.Currency,
		Reference:   a.config.InvoicePrefix + view.ID,
		PublicKey:   a.config.PublicKey,
		Sender:      a.senderFrom(view.Customer, posted, senderIP),
		Shipping:    shippingFrom(view, posted.ShipToDifferentAddress, summary.ShippingCost),
		Items:       summary.Items,
		ExtraAmount: summary.ExtraAmount,
		MaxUses:     checkoutMaxUses,
		MaxAge:      checkoutMaxAge,
	}

	// Callback URLs pointing at an unroutable host would make the gateway
	// reject the whole request, so they are dropped instead.
	if !a.localhostStore() {
		request.RedirectURL = view.ReturnURL
		request.NotificationURL = a.notificationCallbackURL()
	}

	return request
}

func (a *Adapter) buildPaymentRequest(view models.OrderView, posted models.PostedFields, senderIP string) *PaymentRequest {
	summary := normalizeOrder(view, a.config.SendOnlyTotal)

	request := &PaymentRequest{
		Mode:        "default",
		Method:      models.WireMethod(posted.PaymentMethod),
		Currency:    a.config.Currency,
		Reference:   a.config.InvoicePrefix + view.ID,
		PublicKey:   a.config.PublicKey,
		Sender:      a.senderFrom(view.Customer, posted, senderIP),
		Shipping:    shippingFrom(view, posted.ShipToDifferentAddress, summary.ShippingCost),
		Items:       summary.Items,
		ExtraAmount: summary.ExtraAmount,
	}

	if !a.localhostStore() {
		request.NotificationURL = a.notificationCallbackURL()
	}

	switch posted.PaymentMethod {
	case models.MethodCreditCard:
		request.CreditCard = a.creditCardFrom(view, posted)
	case models.MethodBankTransfer:
		request.Bank = &Bank{Name: posted.BankName}
	}
	// The billet method carries no method-specific sub-tree

	return request
}

func (a *Adapter) creditCardFrom(view models.OrderView, posted models.PostedFields) *CreditCard {
	holderName := posted.HolderName
	if holderName == "" {
		holderName = view.Customer.Name
	}
	holderCPF := posted.HolderCPF
	if holderCPF == "" && view.Customer.DocumentType == models.DocumentCPF {
		holderCPF = view.Customer.DocumentValue
	}

	holderPhone := splitPhone(posted.HolderPhone)
	if holderPhone.Number == "" {
		holderPhone = Phone{AreaCode: view.Customer.PhoneAreaCode, Number: view.Customer.PhoneNumber}
	}

	installments := posted.Installments
	if installments < 1 {
		installments = 1
	}

	return &CreditCard{
		Token: posted.CreditCardToken,
		Installment: Installment{
			Quantity: installments,
			Value:    moneyFormat(posted.InstallmentValue),
		},
		Holder: Holder{
			Name:      holderName,
			CPF:       holderCPF,
			BirthDate: posted.HolderBirthDate,
			Phone:     holderPhone,
		},
		BillingAddress:     view.Billing,
		NoInterestQuantity: noInterestQuantity(view.Total, posted.NoInterestMinValue),
	}
}

// noInterestQuantity derives how many interest-free installments the order
// total supports given the merchant's minimum installment value. The gateway
// caps plans at 18 installments.
func noInterestQuantity(total, minValue decimal.Decimal) int {
	if !minValue.IsPositive() {
		return 0
	}
	quantity := int(total.Div(minValue).Floor().IntPart())
	if quantity > maxNoInterestInstallments {
		quantity = maxNoInterestInstallments
	}
	return quantity
}

func (a *Adapter) senderFrom(customer models.Customer, posted models.PostedFields, senderIP string) Sender {
	return Sender{
		Name:         customer.Name,
		Email:        customer.Email,
		Hash:         posted.SenderHash,
		IP:           senderIP,
		Phone:        Phone{AreaCode: customer.PhoneAreaCode, Number: customer.PhoneNumber},
		DocumentType: customer.DocumentType,
		Document:     customer.DocumentValue,
	}
}

// shippingFrom picks the address the order ships to. Shipping type 3 means
// "not specified"; the gateway computes no freight either way because the
// cost is always sent explicitly.
func shippingFrom(view models.OrderView, shipToDifferentAddress bool, cost string) ShippingInfo {
	address := view.Billing
	if shipToDifferentAddress {
		address = view.Shipping
	}
	return ShippingInfo{
		Type:    "3",
		Cost:    cost,
		Address: address,
	}
}

// splitPhone splits a free-form Brazilian phone number into area code and
// number.
func splitPhone(raw string) Phone {
	var digits strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	s := digits.String()
	if len(s) <= 2 {
		return Phone{Number: s}
	}
	return Phone{AreaCode: s[:2], Number: s[2:]}
}

// localhostStore reports whether the store's public URL cannot be reached by
// the gateway.
func (a *Adapter) localhostStore() bool {
	u, err := url.Parse(a.config.PublicURL)
	if err != nil {
		return false
	}
	host := u.Hostname()
	return host == "localhost" || host == "127.0.0.1"
}

func (a *Adapter) notificationCallbackURL() string {
	return strings.TrimRight(a.config.PublicURL, "/") + "/ipn"
}
