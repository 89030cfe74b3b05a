package middlewarex

import (
	"net/http"

	"resell_margin/pkg/contextx"
)

const headerNameUserID = "X-User-Id"

// AnonymousUserID is the identity used when the session provider supplied
// nothing. Settings and bids stored under it are shared by all unauthenticated
// callers.
const AnonymousUserID = contextx.UserID("anonymous")

// UserID extracts the opaque user identity forwarded by the auth collaborator.
func UserID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := contextx.UserID(r.Header.Get(headerNameUserID))

		if userID == "" {
			userID = AnonymousUserID
		}

		ctx := contextx.WithUserID(r.Context(), userID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
