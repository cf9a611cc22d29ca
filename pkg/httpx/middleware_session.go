package httpx

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/aussiebroadwan/taxi/pkg/slogx"
)

// SessionCookieName is the cookie that carries the browser session token.
const SessionCookieName = "taxi_session"

// Authenticator resolves a session token into the account it belongs to.
type Authenticator interface {
	AuthenticateToken(ctx context.Context, token string) (Principal, error)
}

// SessionToken returns the raw token from the Authorization header or, failing
// that, the session cookie.
func SessionToken(r *http.Request) string {
	if authz := r.Header.Get("Authorization"); strings.HasPrefix(authz, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
	}
	if c, err := r.Cookie(SessionCookieName); err == nil {
		return c.Value
	}
	return ""
}

// SessionMiddleware attaches the caller to the request context when a valid
// token is presented. Anonymous requests pass through untouched; use
// RequireLogin to reject them.
func SessionMiddleware(a Authenticator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := SessionToken(r)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			p, err := a.AuthenticateToken(ctx, raw)
			if err != nil {
				slogx.FromContext(ctx).Debug("session rejected", "err", err)
				next.ServeHTTP(w, r)
				return
			}

			ctx = WithPrincipal(ctx, p)
			ctx = slogx.With(ctx, "user_id", p.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireLogin rejects requests without a principal. Browsers are redirected
// to loginPath with the original path in "next"; JSON clients get a 401.
func RequireLogin(loginPath string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := PrincipalFromContext(r.Context()); ok {
				next.ServeHTTP(w, r)
				return
			}

			if WantsJSON(r) {
				w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
				WriteJSON(w, http.StatusUnauthorized, map[string]string{
					"error":             "authentication_required",
					"error_description": "Sign in to continue.",
				})
				return
			}

			target := loginPath + "?next=" + url.QueryEscape(r.URL.RequestURI())
			http.Redirect(w, r, target, http.StatusFound)
		})
	}
}
