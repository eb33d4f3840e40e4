package router

import (
	"net/http"
	"net/netip"
	"strings"
)

// forwardedHeaders are read in order; the first one present wins.
var forwardedHeaders = []string{"True-Client-IP", "X-Real-IP", "X-Forwarded-For"}

func middlewareIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ip, ok := clientIP(r); ok {
			r.RemoteAddr = ip.String()
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP returns the address set by a proxy in front of the service, or the
// peer address when no proxy header holds a valid IP.
func clientIP(r *http.Request) (netip.Addr, bool) {
	for _, key := range forwardedHeaders {
		v := r.Header.Get(key)
		if v == "" {
			continue
		}

		first, _, _ := strings.Cut(v, ",")
		if ip, err := netip.ParseAddr(strings.TrimSpace(first)); err == nil {
			return ip, true
		}
		break
	}

	peer, err := netip.ParseAddrPort(r.RemoteAddr)
	if err != nil {
		return netip.Addr{}, false
	}
	return peer.Addr(), true
}
