package api

import (
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/arlenmoss/emberwatch/internal/weather"
)

// handleWeather resolves the requester's location and proxies the condensed
// forecast.
//
// Upstream responses missing their load-bearing fields come back as a 400
// with the raw upstream body attached; everything else unexpected is a 500.
func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	ip := clientIP(r)
	s.logger.Info("weather lookup requested",
		"client_ip", ip,
		"request_id", r.Context().Value(ctxKeyRequestID),
	)

	report, err := s.weather.Lookup(r.Context(), ip)
	if err != nil {
		var diag *weather.DiagnosticError
		if errors.As(err, &diag) {
			s.logger.Error("upstream response unusable", "error", diag.Message)
			writeDiagnostic(w, diag)
			return
		}
		s.logger.Error("weather lookup failed", "error", err)
		writeInternalError(w, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// clientIP extracts the requester's address, honouring the first entry of
// X-Forwarded-For when a proxy added one.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return strings.TrimSpace(r.RemoteAddr)
	}
	return host
}
