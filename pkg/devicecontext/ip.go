package devicecontext

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP resolves the client's IP address from the request.
// Resolution order:
//  1. X-Forwarded-For (first valid comma-separated entry)
//  2. X-Real-IP (nginx-style reverse proxy)
//  3. RemoteAddr (direct connection fallback)
//
// Every candidate is validated with net.ParseIP; an empty string is returned
// only when nothing resolves to a valid address.
func ClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		for entry := range strings.SplitSeq(forwarded, ",") {
			if ip := parseIP(entry); ip != "" {
				return ip
			}
		}
	}

	if ip := parseIP(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RemoteAddr without a port, assume it's a bare IP already.
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

// parseIP validates and normalizes an IP address string.
// Returns empty string if the input is not a valid address.
func parseIP(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	ip := net.ParseIP(s)
	if ip == nil {
		return ""
	}

	return ip.String()
}
