package pagseguro

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kevin07696/pagseguro-gateway/internal/domain/models"
	"github.com/shopspring/decimal"
)

// The gateway truncates item descriptions past this length
const maxDescriptionLen = 95

var markupPattern = regexp.MustCompile(`<[^>]*>`)

// normalizeOrder converts a host order into the flat amount model the
// gateway accepts. Entries whose computed amount is not strictly positive
// are dropped; malformed input degrades to fewer items, never to an error.
func normalizeOrder(order models.OrderView, sendOnlyTotal bool) models.OrderSummary {
	var summary models.OrderSummary

	// Total-only disclosure: one synthetic line for the whole order
	if sendOnlyTotal {
		summary.Items = []models.LineItem{{
			Description: sanitizeDescription(fmt.Sprintf("Order %s", order.Number)),
			Amount:      order.Total,
			Quantity:    1,
		}}
		return summary
	}

	for _, item := range order.Items {
		if item.Quantity <= 0 {
			continue
		}
		if !item.UnitTotal.IsPositive() {
			continue
		}
		name := strings.ReplaceAll(item.Name, "&ndash;", "-")
		summary.Items = append(summary.Items, models.LineItem{
			Description: sanitizeDescription(name),
			Amount:      item.UnitTotal,
			Quantity:    item.Quantity,
		})
	}

	for _, fee := range order.Fees {
		if !fee.Total.IsPositive() {
			continue
		}
		summary.Items = append(summary.Items, models.LineItem{
			Description: sanitizeDescription(fee.Name),
			Amount:      fee.Total,
			Quantity:    1,
		})
	}

	for _, tax := range order.Taxes {
		total := tax.Amount.Add(tax.ShippingAmount)
		if !total.IsPositive() {
			continue
		}
		summary.Items = append(summary.Items, models.LineItem{
			Description: sanitizeDescription(tax.Label),
			Amount:      total,
			Quantity:    1,
		})
	}

	if order.ShippingTotal.IsPositive() {
		summary.ShippingCost = moneyFormat(order.ShippingTotal)
	}

	// Order-level discounts only exist on legacy host orders
	if order.Discount.IsPositive() {
		summary.ExtraAmount = "-" + moneyFormat(order.Discount)
	}

	return summary
}

// moneyFormat renders an amount the way the gateway wire format requires:
// two decimal digits, dot separator, no thousands separator, half-up.
func moneyFormat(value decimal.Decimal) string {
	return value.StringFixed(2)
}

// sanitizeDescription trims a description to the gateway's limit and strips
// markup and control characters.
func sanitizeDescription(description string) string {
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		description = string([]rune(description)[:maxDescriptionLen])
	}
	description = markupPattern.ReplaceAllString(description, "")
	description = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, description)
	return strings.Join(strings.Fields(description), " ")
}
