package http

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/aussiebroadwan/taxi/internal/taxi/domain"
	"github.com/aussiebroadwan/taxi/internal/taxi/service"
	"github.com/aussiebroadwan/taxi/pkg/httpx"
	"github.com/aussiebroadwan/taxi/pkg/slogx"
	"github.com/aussiebroadwan/taxi/pkg/taxisdk"
)

//go:embed templates
var templateFS embed.FS

const (
	baseTemplate     = "base.html"
	notFoundTemplate = "404.html"
)

// htmlOnly keys are dropped from JSON responses.
var htmlOnly = map[string]bool{"form": true, "user": true, "errors": true}

var errMalformedBody = errors.New("malformed request body")

// NegotiatingRenderer sends JSON to clients that ask for it and HTML to
// everyone else.
type NegotiatingRenderer struct {
	HTML *HTMLRenderer
	JSON JSONRenderer
}

func (n *NegotiatingRenderer) Render(w http.ResponseWriter, r *http.Request, res Result) {
	if httpx.WantsJSON(r) {
		n.JSON.Render(w, r, res)
		return
	}
	n.HTML.Render(w, r, res)
}

// HTMLRenderer executes the embedded page templates. Every page is parsed
// together with base.html and named by its path under templates/, e.g.
// "taxi/car_list.html".
type HTMLRenderer struct {
	LoginPath string
	pages     map[string]*template.Template
}

func NewHTMLRenderer(loginPath string) (*HTMLRenderer, error) {
	root, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, err
	}

	h := &HTMLRenderer{LoginPath: loginPath, pages: make(map[string]*template.Template)}
	err = fs.WalkDir(root, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || path == baseTemplate || !strings.HasSuffix(path, ".html") {
			return err
		}
		t, err := template.New(baseTemplate).Funcs(templateFuncs).ParseFS(root, baseTemplate, path)
		if err != nil {
			return err
		}
		h.pages[path] = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return h, nil
}

var templateFuncs = template.FuncMap{
	"join": strings.Join,
	"query": func(key, value string, page int) string {
		v := url.Values{}
		if value != "" {
			v.Set(key, value)
		}
		v.Set("page", strconv.Itoa(page))
		return "?" + v.Encode()
	},
}

// Has reports whether name was parsed.
func (h *HTMLRenderer) Has(name string) bool {
	_, ok := h.pages[name]
	return ok
}

func (h *HTMLRenderer) Render(w http.ResponseWriter, r *http.Request, res Result) {
	l := slogx.FromContext(r.Context())

	var v *domain.ValidationError
	switch {
	case res.Err == nil:
	case errors.As(res.Err, &v):
		if res.Template == "" {
			http.Error(w, v.Error(), http.StatusBadRequest)
			return
		}
		res.Context = withErrors(res.Context, v.Fields)
		res.Status = http.StatusUnprocessableEntity
	case errors.Is(res.Err, service.ErrAuthenticationRequired):
		http.Redirect(w, r, h.LoginPath+"?next="+url.QueryEscape(r.URL.RequestURI()), http.StatusFound)
		return
	case errors.Is(res.Err, service.ErrNotFound):
		res = Result{Status: http.StatusNotFound, Template: notFoundTemplate}
	case errors.Is(res.Err, errMalformedBody):
		http.Error(w, res.Err.Error(), http.StatusBadRequest)
		return
	default:
		l.Error("operation failed", "op", res.Kind.String(), "error", res.Err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if res.Redirect != "" {
		http.Redirect(w, r, res.Redirect, http.StatusFound)
		return
	}

	t, ok := h.pages[res.Template]
	if !ok {
		l.Error("unknown template", "template", res.Template)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	data := map[string]any{"errors": map[string][]string{}}
	for k, v := range res.Context {
		data[k] = v
	}
	if caller := callerFromRequest(r); caller != nil {
		data["user"] = caller
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, baseTemplate, data); err != nil {
		l.Error("failed to render template", "template", res.Template, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	status := res.Status
	if status == 0 {
		status = http.StatusOK
	}
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func withErrors(ctx Context, fields map[string][]string) Context {
	out := make(Context, len(ctx)+1)
	for k, v := range ctx {
		out[k] = v
	}
	out["errors"] = fields
	return out
}

// JSONRenderer writes the result context as a JSON object. Redirects keep
// their 302 and Location so API clients see the same status as browsers.
type JSONRenderer struct{}

func (JSONRenderer) Render(w http.ResponseWriter, r *http.Request, res Result) {
	if res.Err != nil {
		writeJSONError(w, r, res)
		return
	}

	body := make(map[string]any, len(res.Context))
	for k, v := range res.Context {
		if !htmlOnly[k] {
			body[k] = v
		}
	}

	status := res.Status
	if status == 0 {
		status = http.StatusOK
	}
	if res.Redirect != "" {
		w.Header().Set("Location", res.Redirect)
		status = http.StatusFound
	}
	httpx.WriteJSON(w, status, body)
}

func writeJSONError(w http.ResponseWriter, r *http.Request, res Result) {
	var v *domain.ValidationError
	switch {
	case errors.As(res.Err, &v):
		httpx.WriteJSON(w, http.StatusUnprocessableEntity, taxisdk.ErrorResponse{
			Error:            taxisdk.ErrorCodeValidation,
			ErrorDescription: v.Error(),
			Fields:           v.Fields,
		})
	case errors.Is(res.Err, service.ErrAuthenticationRequired):
		w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
		httpx.WriteJSON(w, http.StatusUnauthorized, taxisdk.ErrorResponse{
			Error:            taxisdk.ErrorCodeAuthenticationRequired,
			ErrorDescription: "Sign in to continue.",
		})
	case errors.Is(res.Err, service.ErrInvalidCredentials):
		httpx.WriteJSON(w, http.StatusUnauthorized, taxisdk.ErrorResponse{
			Error:            taxisdk.ErrorCodeInvalidCredentials,
			ErrorDescription: "Please enter a correct username and password.",
		})
	case errors.Is(res.Err, service.ErrNotFound):
		httpx.WriteJSON(w, http.StatusNotFound, taxisdk.ErrorResponse{
			Error:            taxisdk.ErrorCodeNotFound,
			ErrorDescription: "No record matches the given id.",
		})
	case errors.Is(res.Err, errMalformedBody):
		httpx.WriteJSON(w, http.StatusBadRequest, taxisdk.ErrorResponse{
			Error:            taxisdk.ErrorCodeInvalidRequest,
			ErrorDescription: res.Err.Error(),
		})
	default:
		slogx.FromContext(r.Context()).Error("operation failed", "op", res.Kind.String(), "error", res.Err)
		httpx.WriteJSON(w, http.StatusInternalServerError, taxisdk.ErrorResponse{
			Error:            taxisdk.ErrorCodeServerError,
			ErrorDescription: "internal server error",
		})
	}
}
