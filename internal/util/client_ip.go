package util

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP resolves the caller identity used for rate limiting. It takes the
// first X-Forwarded-For entry, then X-Real-IP, then the connection address.
// Unidentifiable clients share the "unknown" bucket and therefore one limit.
func ClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first := strings.TrimSpace(strings.SplitN(fwd, ",", 2)[0])
		if first != "" {
			return first
		}
	}
	if real := strings.TrimSpace(r.Header.Get("X-Real-IP")); real != "" {
		return real
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	if addr := strings.TrimSpace(r.RemoteAddr); addr != "" {
		return addr
	}
	return "unknown"
}
