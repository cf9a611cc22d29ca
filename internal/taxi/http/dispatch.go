package http

import (
	"net/http"

	"github.com/aussiebroadwan/taxi/internal/taxi/domain"
	"github.com/aussiebroadwan/taxi/internal/taxi/service"
	"github.com/aussiebroadwan/taxi/pkg/httpx"
)

// OpKind tags what an operation does so the renderer can pick defaults.
type OpKind int

const (
	OpList OpKind = iota
	OpDetail
	OpCreate
	OpUpdate
	OpDelete
)

func (k OpKind) String() string {
	switch k {
	case OpList:
		return "list"
	case OpDetail:
		return "detail"
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Context is the named data an operation hands to its template.
type Context map[string]any

// Result is the outcome of one operation. Err wins over Redirect, and
// Redirect wins over Template.
type Result struct {
	Kind     OpKind
	Status   int
	Template string
	Context  Context
	Redirect string
	Err      error
}

// Operation runs one request on behalf of caller.
type Operation func(r *http.Request, caller *domain.CallerIdentity) Result

// Renderer writes a Result to the client.
type Renderer interface {
	Render(w http.ResponseWriter, r *http.Request, res Result)
}

// Dispatcher resolves the caller, runs the operation and renders the result.
type Dispatcher struct {
	Renderer Renderer
}

// Handle binds op to kind. Operations never run without a caller.
func (d *Dispatcher) Handle(kind OpKind, op Operation) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller := callerFromRequest(r)

		var res Result
		if caller.Authenticated() {
			res = op(r, caller)
		} else {
			res = failed(service.ErrAuthenticationRequired)
		}
		res.Kind = kind
		d.Renderer.Render(w, r, res)
	})
}

func callerFromRequest(r *http.Request) *domain.CallerIdentity {
	p, ok := httpx.PrincipalFromContext(r.Context())
	if !ok {
		return nil
	}
	return &domain.CallerIdentity{DriverID: p.ID, Username: p.Username}
}

func redirect(to string) Result {
	return Result{Status: http.StatusFound, Redirect: to}
}

func failed(err error) Result {
	return Result{Err: err}
}

func page(template string, ctx Context) Result {
	return Result{Status: http.StatusOK, Template: template, Context: ctx}
}

// invalid re-renders template with the submitted form and its field errors.
func invalid(template string, ctx Context, err error) Result {
	return Result{Status: http.StatusUnprocessableEntity, Template: template, Context: ctx, Err: err}
}
