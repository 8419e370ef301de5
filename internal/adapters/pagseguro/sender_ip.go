package pagseguro

import (
	"net"
	"net/http"
	"strings"
)

// Proxy headers that may carry the original client address, in trust order.
// Only the first header present is consulted; later ones are ignored even if
// the first turns out to be unusable.
var clientIPHeaders = []string{
	"CF-Connecting-IP",
	"Client-IP",
	"X-Forwarded-For",
	"X-Forwarded",
	"X-Cluster-Client-IP",
	"Forwarded-For",
	"Forwarded",
}

// ResolveSenderIP extracts the buyer's IPv4 address from a request. The
// gateway rejects IPv6 and malformed values, so anything that is not a plain
// IPv4 literal resolves to the empty string and the field is left off the
// wire.
func ResolveSenderIP(headers http.Header, remoteAddr string) string {
	candidate := ""
	for _, name := range clientIPHeaders {
		if value := headers.Get(name); value != "" {
			// Forwarding chains list the original client first
			candidate, _, _ = strings.Cut(value, ",")
			candidate = strings.TrimSpace(candidate)
			break
		}
	}

	if candidate == "" {
		host, _, err := net.SplitHostPort(remoteAddr)
		if err != nil {
			host = remoteAddr
		}
		candidate = host
	}

	if strings.Contains(candidate, ":") {
		return ""
	}
	ip := net.ParseIP(candidate)
	if ip == nil || ip.To4() == nil {
		return ""
	}
	return candidate
}
