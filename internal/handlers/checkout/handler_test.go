package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevin07696/pagseguro-gateway/internal/adapters/pagseguro"
	"github.com/kevin07696/pagseguro-gateway/internal/domain/models"
	"github.com/kevin07696/pagseguro-gateway/test/mocks"
)

type gatewayFake struct {
	checkoutOutcome pagseguro.Outcome
	paymentOutcome  pagseguro.Outcome
	sessionID       string
	sessionErr      error
	notifErr        error

	lastOrder     models.OrderView
	lastPosted    models.PostedFields
	lastSenderIP  string
	lastNotifCode string
	lastNotifType string
}

func (g *gatewayFake) DoCheckoutRequest(ctx context.Context, order interface{}, posted models.PostedFields, senderIP string) pagseguro.Outcome {
	g.lastOrder = order.(models.OrderView)
	g.lastPosted = posted
	g.lastSenderIP = senderIP
	return g.checkoutOutcome
}

func (g *gatewayFake) DoPaymentRequest(ctx context.Context, order interface{}, posted models.PostedFields, senderIP string) pagseguro.Outcome {
	g.lastOrder = order.(models.OrderView)
	g.lastPosted = posted
	g.lastSenderIP = senderIP
	return g.paymentOutcome
}

func (g *gatewayFake) ProcessNotification(ctx context.Context, code, notificationType string) (*pagseguro.TransactionDetail, error) {
	g.lastNotifCode = code
	g.lastNotifType = notificationType
	if g.notifErr != nil {
		return nil, g.notifErr
	}
	return pagseguro.NewTransactionDetail(&pagseguro.Node{
		Name: "transaction",
		Children: []*pagseguro.Node{
			{Name: "code", Text: "TX-1"},
			{Name: "reference", Text: "WC-1042"},
			{Name: "status", Text: "4"},
		},
	}), nil
}

func (g *gatewayFake) SessionID(ctx context.Context) (string, error) {
	return g.sessionID, g.sessionErr
}

func (g *gatewayFake) LightboxURL() string {
	return "https://stc.pagseguro.uol.com.br/pagseguro/api/v2/checkout/pagseguro.lightbox.js"
}

func (g *gatewayFake) DirectPaymentScriptURL() string {
	return "https://stc.pagseguro.uol.com.br/pagseguro/api/v2/checkout/pagseguro.directpayment.js"
}

func dispatchBody(t *testing.T) string {
	t.Helper()
	body := map[string]interface{}{
		"order": map[string]interface{}{
			"id":     "1042",
			"number": "1042",
			"total":  "100.00",
			"items": []map[string]interface{}{
				{"name": "Widget", "quantity": 2, "unit_total": "45.00"},
			},
			"customer": map[string]interface{}{
				"name":           "Maria Silva",
				"email":          "maria@example.com",
				"document_type":  "CPF",
				"document_value": "12345678909",
			},
			"return_url": "https://store.example.com/return",
		},
		"form": url.Values{
			"pagseguro_payment_method": {models.MethodCreditCard},
			"pagseguro_sender_hash":    {"hash123"},
		},
	}
	encoded, err := json.Marshal(body)
	require.NoError(t, err)
	return string(encoded)
}

func newTestHandler() (*Handler, *gatewayFake) {
	gateway := &gatewayFake{}
	return NewHandler(gateway, mocks.NewMockLogger()), gateway
}

func TestDirectPayment(t *testing.T) {
	handler, gateway := newTestHandler()
	gateway.paymentOutcome = pagseguro.Outcome{URL: "https://store.example.com/return"}

	req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(dispatchBody(t)))
	req.Header.Set("X-Forwarded-For", "203.0.113.10")
	rec := httptest.NewRecorder()

	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var outcome pagseguro.Outcome
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &outcome))
	assert.Equal(t, "https://store.example.com/return", outcome.URL)

	assert.Equal(t, "1042", gateway.lastOrder.ID)
	assert.Equal(t, "100", gateway.lastOrder.Total.String())
	assert.Equal(t, models.MethodCreditCard, gateway.lastPosted.PaymentMethod)
	assert.Equal(t, "hash123", gateway.lastPosted.SenderHash)
	assert.Equal(t, "203.0.113.10", gateway.lastSenderIP)
}

func TestDirectPaymentFailureStatus(t *testing.T) {
	handler, gateway := newTestHandler()
	gateway.paymentOutcome = pagseguro.Outcome{Errors: []string{"PagSeguro: Please, select a payment method."}}

	req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(dispatchBody(t)))
	rec := httptest.NewRecorder()

	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var outcome pagseguro.Outcome
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &outcome))
	require.Len(t, outcome.Errors, 1)
}

func TestDirectPaymentRejectsMalformedBody(t *testing.T) {
	handler, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCheckoutToken(t *testing.T) {
	handler, gateway := newTestHandler()
	gateway.checkoutOutcome = pagseguro.Outcome{
		URL:   "https://pagseguro.uol.com.br/v2/checkout/payment.html?code=TOKEN1",
		Token: "TOKEN1",
	}

	req := httptest.NewRequest(http.MethodPost, "/checkout/token", strings.NewReader(dispatchBody(t)))
	rec := httptest.NewRecorder()

	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var outcome pagseguro.Outcome
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &outcome))
	assert.Equal(t, "TOKEN1", outcome.Token)
}

func TestSession(t *testing.T) {
	handler, gateway := newTestHandler()
	gateway.sessionID = "SESSION123"

	req := httptest.NewRequest(http.MethodGet, "/checkout/session", nil)
	rec := httptest.NewRecorder()

	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"session_id":"SESSION123"}`, rec.Body.String())
}

func TestSessionFailure(t *testing.T) {
	handler, gateway := newTestHandler()
	gateway.sessionErr = fmt.Errorf("gateway unreachable")

	req := httptest.NewRequest(http.MethodGet, "/checkout/session", nil)
	rec := httptest.NewRecorder()

	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestScripts(t *testing.T) {
	handler, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/checkout/scripts", nil)
	rec := httptest.NewRecorder()

	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var scripts map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &scripts))
	assert.Contains(t, scripts["lightbox"], "pagseguro.lightbox.js")
	assert.Contains(t, scripts["direct_payment"], "pagseguro.directpayment.js")
}

func TestNotification(t *testing.T) {
	handler, gateway := newTestHandler()

	form := url.Values{
		"notificationCode": {"NOTIF123"},
		"notificationType": {"transaction"},
	}
	req := httptest.NewRequest(http.MethodPost, "/ipn", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "NOTIF123", gateway.lastNotifCode)
	assert.Equal(t, "transaction", gateway.lastNotifType)
}

func TestNotificationMissingCode(t *testing.T) {
	handler, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/ipn", strings.NewReader("notificationType=transaction"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNotificationUnsupportedTypeAcknowledged(t *testing.T) {
	handler, gateway := newTestHandler()
	gateway.notifErr = fmt.Errorf("unsupported notification type")

	form := url.Values{
		"notificationCode": {"NOTIF123"},
		"notificationType": {"applicationAuthorization"},
	}
	req := httptest.NewRequest(http.MethodPost, "/ipn", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	handler.Routes().ServeHTTP(rec, req)

	// Anything but 200 makes the gateway retry
	assert.Equal(t, http.StatusOK, rec.Code)
}
