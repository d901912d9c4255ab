package middleware

import (
	"log/slog"
	"net/http"
)

const (
	HeaderAuthorization = "Authorization"
	HeaderPartnerID     = "X-Partner-ID"
)

// RequirePartnerCredentials rejects requests whose Authorization and
// X-Partner-ID headers do not match the configured partner. Rejections use
// the service's failure envelope.
func RequirePartnerCredentials(apiKey, partnerID string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get(HeaderAuthorization) == apiKey && r.Header.Get(HeaderPartnerID) == partnerID {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			logger.WarnContext(ctx, "unauthorized partner request",
				"path", r.URL.Path,
				"partner_id", r.Header.Get(HeaderPartnerID),
				"request_id", GetRequestID(ctx),
			)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			if _, err := w.Write([]byte(`{"message":"invalid credentials","success":false}`)); err != nil {
				logger.ErrorContext(ctx, "failed to write unauthorized response",
					"error", err,
					"request_id", GetRequestID(ctx),
				)
			}
		})
	}
}
