package pagseguro

// genericErrorMessage is shown when the gateway returns a code we have no
// buyer-facing wording for.
const genericErrorMessage = "An error has occurred while processing your payment, please review your data and try again. Or contact us for assistance."

// gatewayErrorMessages maps gateway validation codes to buyer-facing
// wording. An empty string means the code is deliberately suppressed and
// must not surface to the buyer at all.
var gatewayErrorMessages = map[string]string{
	// Phone
	"11013": "Please enter with a valid phone number with DDD. Example: (11) 5555-5555.",
	"11014": "Please enter with a valid phone number with DDD. Example: (11) 5555-5555.",
	"53018": "Please enter with a valid phone number with DDD. Example: (11) 5555-5555.",
	"53019": "Please enter with a valid phone number with DDD. Example: (11) 5555-5555.",
	"53020": "Please enter with a valid phone number with DDD. Example: (11) 5555-5555.",
	"53021": "Please enter with a valid phone number with DDD. Example: (11) 5555-5555.",

	// Zip code
	"11017": "Please enter with a valid zip code number.",
	"53022": "Please enter with a valid zip code number.",
	"53023": "Please enter with a valid zip code number.",
	"53053": "Please enter with a valid zip code number.",
	"53054": "Please enter with a valid zip code number.",

	// Documents
	"11164": "Please enter with a valid CPF number.",

	// Duplicate of a senderIp complaint the gateway also reports elsewhere
	"53110": "",

	"53111": "Please select a bank to make payment by bank transfer.",

	// Credit card holder
	"53045": "Credit card holder CPF is required.",
	"53047": "Credit card holder birthdate is required.",
	"53042": "Credit card holder name is required.",
	"53049": "Credit card holder phone is required.",
	"53051": "Credit card holder phone is required.",
	"53046": "Credit card holder CPF invalid.",

	// Address
	"11020": "The address complement is too long, it cannot be more than 40 characters.",
	"53028": "The address complement is too long, it cannot be more than 40 characters.",
	"53029": "Neighborhood is a required field.",

	// Sandbox
	"53122": "Invalid email domain. You must use an email @sandbox.pagseguro.com.br while you are using the PagSeguro Sandbox.",
	"53081": "The customer email can not be the same as the PagSeguro account owner.",
}

// ResolveErrorMessage turns a gateway fault into buyer-facing wording.
// Mapped codes return their fixed message verbatim, which may be empty to
// suppress the fault. Unmapped codes fall back to the generic message with
// the raw gateway text appended for the merchant's benefit.
func ResolveErrorMessage(code, gatewayMessage string) string {
	if message, ok := gatewayErrorMessages[code]; ok {
		return message
	}
	if gatewayMessage != "" {
		return genericErrorMessage + " (" + gatewayMessage + ")"
	}
	return genericErrorMessage
}
