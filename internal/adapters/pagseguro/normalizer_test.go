package pagseguro

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevin07696/pagseguro-gateway/internal/domain/models"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestNormalizeOrderSendOnlyTotal(t *testing.T) {
	order := models.OrderView{
		Number: "1042",
		Total:  dec("150.90"),
		Items: []models.OrderItem{
			{Name: "Widget", Quantity: 3, UnitTotal: dec("50.30")},
		},
	}

	summary := normalizeOrder(order, true)

	require.Len(t, summary.Items, 1)
	assert.Equal(t, "Order 1042", summary.Items[0].Description)
	assert.Equal(t, "150.90", moneyFormat(summary.Items[0].Amount))
	assert.Equal(t, 1, summary.Items[0].Quantity)
}

func TestNormalizeOrderDropsNonPositiveEntries(t *testing.T) {
	order := models.OrderView{
		Items: []models.OrderItem{
			{Name: "Free sample", Quantity: 1, UnitTotal: dec("0")},
			{Name: "Refund line", Quantity: -1, UnitTotal: dec("10.00")},
			{Name: "Widget", Quantity: 2, UnitTotal: dec("25.00")},
		},
		Fees: []models.OrderFee{
			{Name: "Handling", Total: dec("5.00")},
			{Name: "Waived fee", Total: dec("0")},
		},
		Taxes: []models.OrderTax{
			{Label: "ICMS", Amount: dec("1.50"), ShippingAmount: dec("0.50")},
			{Label: "Exempt", Amount: dec("0"), ShippingAmount: dec("0")},
		},
	}

	summary := normalizeOrder(order, false)

	require.Len(t, summary.Items, 3)
	assert.Equal(t, "Widget", summary.Items[0].Description)
	assert.Equal(t, "Handling", summary.Items[1].Description)
	assert.Equal(t, "ICMS", summary.Items[2].Description)
	assert.Equal(t, "2.00", moneyFormat(summary.Items[2].Amount))
}

func TestNormalizeOrderShippingAndDiscount(t *testing.T) {
	order := models.OrderView{
		ShippingTotal: dec("12.50"),
		Discount:      dec("3.00"),
	}

	summary := normalizeOrder(order, false)

	assert.Equal(t, "12.50", summary.ShippingCost)
	assert.Equal(t, "-3.00", summary.ExtraAmount)
}

func TestNormalizeOrderZeroShippingOmitted(t *testing.T) {
	summary := normalizeOrder(models.OrderView{}, false)

	assert.Empty(t, summary.ShippingCost)
	assert.Empty(t, summary.ExtraAmount)
}

func TestNormalizeOrderReplacesNdashEntity(t *testing.T) {
	order := models.OrderView{
		Items: []models.OrderItem{
			{Name: "Size P &ndash; Blue", Quantity: 1, UnitTotal: dec("10.00")},
		},
	}

	summary := normalizeOrder(order, false)

	require.Len(t, summary.Items, 1)
	assert.Equal(t, "Size P - Blue", summary.Items[0].Description)
}

func TestSanitizeDescription(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "strips markup",
			input:    "Widget <b>deluxe</b>",
			expected: "Widget deluxe",
		},
		{
			name:     "collapses whitespace",
			input:    "Widget \t  deluxe\n edition",
			expected: "Widget deluxe edition",
		},
		{
			name:     "drops control characters",
			input:    "Widget\x00\x1fdeluxe",
			expected: "Widgetdeluxe",
		},
		{
			name:     "truncates long descriptions",
			input:    strings.Repeat("a", 120),
			expected: strings.Repeat("a", 95),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizeDescription(tt.input))
		})
	}
}

func TestMoneyFormat(t *testing.T) {
	assert.Equal(t, "10.00", moneyFormat(dec("10")))
	assert.Equal(t, "10.10", moneyFormat(dec("10.1")))
	assert.Equal(t, "10.13", moneyFormat(dec("10.125")))
	assert.Equal(t, "1234567.89", moneyFormat(dec("1234567.89")))
}
