package http

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/aussiebroadwan/taxi/internal/taxi/service"
	"github.com/aussiebroadwan/taxi/pkg/httpx"
	"github.com/aussiebroadwan/taxi/pkg/taxisdk"
)

const (
	LoginPath     = "/accounts/login/"
	logoutPath    = "/accounts/logout/"
	loginRedirect = "/"
)

// SessionAuthenticator adapts the session service to the httpx middleware.
type SessionAuthenticator struct {
	Sessions *service.SessionService
}

func (a SessionAuthenticator) AuthenticateToken(ctx context.Context, token string) (httpx.Principal, error) {
	caller, err := a.Sessions.Authenticate(ctx, token)
	if err != nil {
		return httpx.Principal{}, err
	}
	return httpx.Principal{ID: caller.DriverID, Username: caller.Username}, nil
}

type AccountHandler struct {
	Sessions     *service.SessionService
	Renderer     Renderer
	CookieSecure bool
}

// Login godoc
//
//	@Summary		Sign in
//	@Description	GET renders the login form. POST checks the credentials, sets the session cookie and redirects to "next".
//	@Tags			Accounts
//	@Accept			x-www-form-urlencoded
//	@Produce		html
//	@Param			username	formData	string	true	"Username"
//	@Param			password	formData	string	true	"Password"
//	@Param			next		query		string	false	"Local path to continue to"
//	@Success		302
//	@Failure		401	{object}	taxisdk.ErrorResponse
//	@Router			/accounts/login/ [post]
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	const tmpl = "registration/login.html"
	next := safeNext(r.URL.Query().Get("next"), loginRedirect)

	if r.Method == http.MethodGet {
		h.Renderer.Render(w, r, page(tmpl, Context{"next": next, "username": ""}))
		return
	}

	var creds taxisdk.TokenRequest
	err := bind(r, &creds, func(f url.Values) {
		creds.Username = f.Get("username")
		creds.Password = f.Get("password")
		if n := f.Get("next"); n != "" {
			next = safeNext(n, loginRedirect)
		}
	})
	if err != nil {
		h.Renderer.Render(w, r, failed(err))
		return
	}

	sess, err := h.Sessions.Login(r.Context(), creds.Username, creds.Password)
	if err != nil {
		if httpx.WantsJSON(r) || !errors.Is(err, service.ErrInvalidCredentials) {
			h.Renderer.Render(w, r, failed(err))
			return
		}
		h.Renderer.Render(w, r, page(tmpl, Context{
			"next":       next,
			"username":   creds.Username,
			"form_error": "Please enter a correct username and password. Note that both fields may be case-sensitive.",
		}))
		return
	}

	http.SetCookie(w, h.sessionCookie(sess.Token, sess.ExpiresAt))
	res := redirect(next)
	res.Context = Context{"caller": sess.Caller}
	h.Renderer.Render(w, r, res)
}

// Logout godoc
//
//	@Summary	Sign out
//	@Tags		Accounts
//	@Success	302
//	@Router		/accounts/logout/ [post]
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.sessionCookie("", time.Unix(0, 0)))
	h.Renderer.Render(w, r, redirect(LoginPath))
}

// Token godoc
//
//	@Summary		Issue an API token
//	@Description	Exchanges a username and password for a bearer token usable on every JSON endpoint.
//	@Tags			Accounts
//	@Accept			json,x-www-form-urlencoded
//	@Produce		json
//	@Param			body	body		taxisdk.TokenRequest	true	"Credentials"
//	@Success		200		{object}	taxisdk.TokenResponse
//	@Failure		401		{object}	taxisdk.ErrorResponse
//	@Router			/api/v1/token [post]
func (h *AccountHandler) Token(w http.ResponseWriter, r *http.Request) {
	var creds taxisdk.TokenRequest
	err := bind(r, &creds, func(f url.Values) {
		creds.Username = f.Get("username")
		creds.Password = f.Get("password")
	})
	if err != nil {
		JSONRenderer{}.Render(w, r, failed(err))
		return
	}

	sess, err := h.Sessions.Login(r.Context(), creds.Username, creds.Password)
	if err != nil {
		JSONRenderer{}.Render(w, r, failed(err))
		return
	}

	httpx.WriteJSON(w, http.StatusOK, taxisdk.TokenResponse{
		AccessToken: sess.Token,
		TokenType:   "Bearer",
		ExpiresIn:   int(time.Until(sess.ExpiresAt).Seconds()),
	})
}

func (h *AccountHandler) sessionCookie(value string, expires time.Time) *http.Cookie {
	c := &http.Cookie{
		Name:     httpx.SessionCookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	if value == "" {
		c.MaxAge = -1
	}
	return c
}
