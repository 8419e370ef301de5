package pagseguro

import "net/url"

// Version is this module's release, sent in the Module-Version header so the
// gateway can attribute traffic.
const Version = "0.1.0"

// The wire endpoints live behind an application proxy that holds the
// merchant's API token; merchants authenticate with e-mail plus public key.
const defaultBaseURL = "https://ws.ricardomartins.net.br/pspro/v7/wspagseguro"

func (a *Adapter) environment() string {
	if a.config.Sandbox {
		return "sandbox."
	}
	return ""
}

func (a *Adapter) baseURL() string {
	if a.config.BaseURL != "" {
		return a.config.BaseURL
	}
	return defaultBaseURL
}

// wireURL builds an API endpoint, appending the sandbox flag the proxy uses
// to route to the gateway's test environment.
func (a *Adapter) wireURL(path string) string {
	raw := a.baseURL() + path
	if !a.config.Sandbox {
		return raw
	}
	return appendQuery(raw, url.Values{"isSandbox": {"true"}})
}

func (a *Adapter) checkoutURL() string {
	return a.wireURL("/v2/checkout")
}

func (a *Adapter) sessionsURL() string {
	return a.wireURL("/v2/sessions")
}

func (a *Adapter) transactionsURL() string {
	return a.wireURL("/v2/transactions")
}

func (a *Adapter) notificationURL(notificationCode string) string {
	return a.wireURL("/v3/transactions/notifications/" + url.PathEscape(notificationCode))
}

// paymentURL is the hosted payment page a buyer is redirected to after a
// checkout token is created.
func (a *Adapter) paymentURL(token string) string {
	return "https://" + a.environment() + "pagseguro.uol.com.br/v2/checkout/payment.html?code=" + url.QueryEscape(token)
}

// LightboxURL returns the checkout lightbox script location. The static
// mirror avoids the gateway's less stable static host.
func (a *Adapter) LightboxURL() string {
	if a.config.StaticMirror {
		if a.config.Sandbox {
			return "https://stcpagsegurosandbox.ricardomartins.net.br/pagseguro/api/v2/checkout/pagseguro.lightbox.js"
		}
		return "https://stcpagseguro.ricardomartins.net.br/pagseguro/api/v2/checkout/pagseguro.lightbox.js"
	}
	return "https://stc." + a.environment() + "pagseguro.uol.com.br/pagseguro/api/v2/checkout/pagseguro.lightbox.js"
}

// DirectPaymentScriptURL returns the transparent-checkout tokenization script location
func (a *Adapter) DirectPaymentScriptURL() string {
	if a.config.StaticMirror {
		if a.config.Sandbox {
			return "https://stcpagsegurosandbox.ricardomartins.net.br/pagseguro/api/v2/checkout/pagseguro.directpayment.js"
		}
		return "https://stcpagseguro.ricardomartins.net.br/pagseguro/api/v2/checkout/pagseguro.directpayment.js"
	}
	return "https://stc." + a.environment() + "pagseguro.uol.com.br/pagseguro/api/v2/checkout/pagseguro.directpayment.js"
}

// appendQuery merges extra query parameters into a URL, keeping whatever is
// already there.
func appendQuery(rawURL string, extra url.Values) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	for key, values := range extra {
		for _, v := range values {
			q.Set(key, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}
