package pkg

import (
	"net"
	"net/http"
	"strings"
)

// ClientAddr returns the client ip of the request, preferring the proxy headers.
// The port, if any, is stripped.
func ClientAddr(r *http.Request) string {
	addr := r.Header.Get("X-Real-Ip")
	if addr == "" {
		// first hop is the original client
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			addr = strings.TrimSpace(strings.Split(fwd, ",")[0])
		}
	}
	if addr == "" {
		addr = r.RemoteAddr
	}

	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
