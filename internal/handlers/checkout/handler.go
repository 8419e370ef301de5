package checkout

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/kevin07696/pagseguro-gateway/internal/adapters/pagseguro"
	"github.com/kevin07696/pagseguro-gateway/internal/adapters/ports"
	"github.com/kevin07696/pagseguro-gateway/internal/domain/models"
	"github.com/kevin07696/pagseguro-gateway/pkg/encoding"
)

// Gateway is the adapter surface the checkout endpoints need
type Gateway interface {
	DoCheckoutRequest(ctx context.Context, order interface{}, posted models.PostedFields, senderIP string) pagseguro.Outcome
	DoPaymentRequest(ctx context.Context, order interface{}, posted models.PostedFields, senderIP string) pagseguro.Outcome
	ProcessNotification(ctx context.Context, notificationCode, notificationType string) (*pagseguro.TransactionDetail, error)
	SessionID(ctx context.Context) (string, error)
	LightboxURL() string
	DirectPaymentScriptURL() string
}

// Handler exposes the gateway over HTTP to the host store
type Handler struct {
	gateway Gateway
	logger  ports.Logger
}

// NewHandler creates a checkout handler
func NewHandler(gateway Gateway, logger ports.Logger) *Handler {
	return &Handler{gateway: gateway, logger: logger}
}

// Routes mounts the checkout endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/checkout", h.DirectPayment)
	r.Post("/checkout/token", h.CheckoutToken)
	r.Get("/checkout/session", h.Session)
	r.Get("/checkout/scripts", h.Scripts)
	r.Get("/ipn", h.Notification)
	r.Post("/ipn", h.Notification)
	return r
}

// addressDTO mirrors models.Address for request decoding
type addressDTO struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement"`
	District   string `json:"district"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
}

func (a addressDTO) toModel() models.Address {
	return models.Address{
		Street:     a.Street,
		Number:     a.Number,
		Complement: a.Complement,
		District:   a.District,
		City:       a.City,
		State:      a.State,
		Country:    a.Country,
		PostalCode: a.PostalCode,
	}
}

type customerDTO struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	PhoneAreaCode string `json:"phone_area_code"`
	PhoneNumber   string `json:"phone_number"`
	DocumentType  string `json:"document_type"`
	DocumentValue string `json:"document_value"`
}

type itemDTO struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitTotal decimal.Decimal `json:"unit_total"`
}

type feeDTO struct {
	Name  string          `json:"name"`
	Total decimal.Decimal `json:"total"`
}

type taxDTO struct {
	Label          string          `json:"label"`
	Amount         decimal.Decimal `json:"amount"`
	ShippingAmount decimal.Decimal `json:"shipping_amount"`
}

type orderDTO struct {
	ID            string          `json:"id"`
	Number        string          `json:"number"`
	Total         decimal.Decimal `json:"total"`
	ShippingTotal decimal.Decimal `json:"shipping_total"`
	Discount      decimal.Decimal `json:"discount"`
	Items         []itemDTO       `json:"items"`
	Fees          []feeDTO        `json:"fees"`
	Taxes         []taxDTO        `json:"taxes"`
	Customer      customerDTO     `json:"customer"`
	Shipping      addressDTO      `json:"shipping_address"`
	Billing       addressDTO      `json:"billing_address"`
	ReturnURL     string          `json:"return_url"`
}

func (o orderDTO) toModel() models.OrderView {
	view := models.OrderView{
		ID:            o.ID,
		Number:        o.Number,
		Total:         o.Total,
		ShippingTotal: o.ShippingTotal,
		Discount:      o.Discount,
		Customer: models.Customer{
			Name:          o.Customer.Name,
			Email:         o.Customer.Email,
			PhoneAreaCode: o.Customer.PhoneAreaCode,
			PhoneNumber:   o.Customer.PhoneNumber,
			DocumentType:  models.DocumentType(o.Customer.DocumentType),
			DocumentValue: o.Customer.DocumentValue,
		},
		Shipping:  o.Shipping.toModel(),
		Billing:   o.Billing.toModel(),
		ReturnURL: o.ReturnURL,
	}
	for _, item := range o.Items {
		view.Items = append(view.Items, models.OrderItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitTotal: item.UnitTotal,
		})
	}
	for _, fee := range o.Fees {
		view.Fees = append(view.Fees, models.OrderFee{Name: fee.Name, Total: fee.Total})
	}
	for _, tax := range o.Taxes {
		view.Taxes = append(view.Taxes, models.OrderTax{
			Label:          tax.Label,
			Amount:         tax.Amount,
			ShippingAmount: tax.ShippingAmount,
		})
	}
	return view
}

// dispatchRequest is what the host posts to run a checkout or payment.
// Form carries the raw buyer-submitted checkout form values.
type dispatchRequest struct {
	Order orderDTO            `json:"order"`
	Form  map[string][]string `json:"form"`
}

func (h *Handler) decodeDispatch(w http.ResponseWriter, r *http.Request) (models.OrderView, models.PostedFields, bool) {
	var req dispatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("rejected malformed dispatch request", ports.Err(err))
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return models.OrderView{}, models.PostedFields{}, false
	}
	return req.Order.toModel(), models.PostedFieldsFromForm(req.Form), true
}

// DirectPayment runs a transparent direct payment for an order
func (h *Handler) DirectPayment(w http.ResponseWriter, r *http.Request) {
	view, posted, ok := h.decodeDispatch(w, r)
	if !ok {
		return
	}

	senderIP := pagseguro.ResolveSenderIP(r.Header, r.RemoteAddr)
	outcome := h.gateway.DoPaymentRequest(r.Context(), view, posted, senderIP)
	h.renderOutcome(w, outcome)
}

// CheckoutToken creates a hosted-checkout token for an order
func (h *Handler) CheckoutToken(w http.ResponseWriter, r *http.Request) {
	view, posted, ok := h.decodeDispatch(w, r)
	if !ok {
		return
	}

	senderIP := pagseguro.ResolveSenderIP(r.Header, r.RemoteAddr)
	outcome := h.gateway.DoCheckoutRequest(r.Context(), view, posted, senderIP)
	h.renderOutcome(w, outcome)
}

// Session creates a gateway session for the checkout scripts
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	sessionID, err := h.gateway.SessionID(r.Context())
	if err != nil {
		h.logger.Error("session creation failed", ports.Err(err))
		http.Error(w, "session unavailable", http.StatusBadGateway)
		return
	}
	h.renderJSON(w, http.StatusOK, map[string]string{"session_id": sessionID})
}

// Scripts returns the checkout script locations the store front-end loads
func (h *Handler) Scripts(w http.ResponseWriter, r *http.Request) {
	h.renderJSON(w, http.StatusOK, map[string]string{
		"lightbox":       h.gateway.LightboxURL(),
		"direct_payment": h.gateway.DirectPaymentScriptURL(),
	})
}

// Notification receives the gateway's payment notification callback.
// The gateway retries on anything but 200, so unsupported notification
// types are acknowledged and dropped.
func (h *Handler) Notification(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	code := strings.TrimSpace(r.Form.Get("notificationCode"))
	notificationType := strings.TrimSpace(r.Form.Get("notificationType"))
	if code == "" {
		http.Error(w, "notificationCode is required", http.StatusBadRequest)
		return
	}

	detail, err := h.gateway.ProcessNotification(r.Context(), code, notificationType)
	if err != nil {
		h.logger.Warn("dropped notification",
			ports.String("type", notificationType),
			ports.Err(err))
		w.WriteHeader(http.StatusOK)
		return
	}

	h.logger.Info("processed transaction notification",
		ports.String("reference", detail.Reference()),
		ports.Int("status", detail.Status()))
	h.renderJSON(w, http.StatusOK, detail)
}

func (h *Handler) renderOutcome(w http.ResponseWriter, outcome pagseguro.Outcome) {
	status := http.StatusOK
	if len(outcome.Errors) > 0 {
		status = http.StatusUnprocessableEntity
	}
	h.renderJSON(w, status, outcome)
}

func (h *Handler) renderJSON(w http.ResponseWriter, status int, v interface{}) {
	payload, err := encoding.EncodeJSON(v)
	if err != nil {
		h.logger.Error("response encoding failed", ports.Err(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}
