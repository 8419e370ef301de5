package models

// paymentTypeNames maps the numeric payment type reported in transaction
// details to a display name.
var paymentTypeNames = map[int]string{
	1:  "Credit Card",
	2:  "Billet",
	3:  "Bank Transfer",
	4:  "PagSeguro credit",
	5:  "Oi Paggo",
	7:  "Account deposit",
	8:  "Emergential Card Caixa (Debit)",
	11: "PIX",
}

// PaymentTypeName returns the display name for a numeric payment type
func PaymentTypeName(value int) string {
	if name, ok := paymentTypeNames[value]; ok {
		return name
	}
	return "Unknown"
}

// paymentMethodNames maps the numeric payment method code reported in
// transaction details to a display name.
var paymentMethodNames = map[int]string{
	101: "Credit Card Visa",
	102: "Credit Card MasterCard",
	103: "Credit Card American Express",
	104: "Credit Card Diners",
	105: "Credit Card Hipercard",
	106: "Credit Card Aura",
	107: "Credit Card Elo",
	108: "Credit Card PLENOCard",
	109: "Credit Card PersonalCard",
	110: "Credit Card JCB",
	111: "Credit Card Discover",
	112: "Credit Card BrasilCard",
	113: "Credit Card FORTBRASIL",
	114: "Credit Card CARDBAN",
	115: "Credit Card VALECARD",
	116: "Credit Card Cabal",
	117: "Credit Card Mais!",
	118: "Credit Card Avista",
	119: "Credit Card GRANDCARD",
	201: "Billet Bradesco",
	202: "Billet Santander",
	301: "Bank Transfer Bradesco",
	302: "Bank Transfer Itaú",
	303: "Bank Transfer Unibanco",
	304: "Bank Transfer Banco do Brasil",
	305: "Bank Transfer Real",
	306: "Bank Transfer Banrisul",
	307: "Bank Transfer HSBC",
	401: "PagSeguro credit",
	501: "Oi Paggo",
	701: "Account deposit",
}

// PaymentMethodName returns the display name for a numeric payment method code
func PaymentMethodName(value int) string {
	if name, ok := paymentMethodNames[value]; ok {
		return name
	}
	return "Unknown"
}

// wireMethods maps posted form slugs to the gateway's method identifiers
var wireMethods = map[string]string{
	MethodCreditCard:    "creditCard",
	MethodBankingTicket: "boleto",
	MethodBankTransfer:  "eft",
}

// WireMethod maps a posted payment-method slug to the gateway wire value.
// Unknown slugs map to the empty string, which the payment flow rejects
// before dispatch.
func WireMethod(slug string) string {
	return wireMethods[slug]
}
