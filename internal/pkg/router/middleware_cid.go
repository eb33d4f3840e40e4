package router

import (
	"net/http"
	"strings"

	"github.com/shandysiswandi/orgdesk/internal/pkg/instrument"
	"github.com/shandysiswandi/orgdesk/internal/pkg/uid"
)

const (
	// HeaderCorrelationID carries the id that ties logs, spans and change
	// events of one request together. It is echoed on every response.
	HeaderCorrelationID = "X-Correlation-ID"
	// HeaderRequestID is accepted from proxies that do not send HeaderCorrelationID.
	HeaderRequestID = "X-Request-ID"

	maxCIDLength = 128
)

func middlewareCorrelationID(gen uid.StringID) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cid := incomingCID(r.Header)
			if cid == "" && gen != nil {
				cid = gen.Generate()
			}

			if cid != "" {
				w.Header().Set(HeaderCorrelationID, cid)
				r = r.WithContext(instrument.SetCorrelationID(r.Context(), cid))
			}

			next.ServeHTTP(w, r)
		})
	}
}

// incomingCID returns the first usable id sent by the caller. Values with
// line breaks are ignored and long values are cut.
func incomingCID(h http.Header) string {
	for _, key := range []string{HeaderCorrelationID, HeaderRequestID} {
		v := h.Get(key)
		if strings.ContainsAny(v, "\r\n") {
			continue
		}
		if v = strings.TrimSpace(v); v == "" {
			continue
		}
		if len(v) > maxCIDLength {
			v = v[:maxCIDLength]
		}
		return v
	}
	return ""
}
