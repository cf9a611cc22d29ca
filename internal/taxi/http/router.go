package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/taxi/internal/taxi/service"
	"github.com/aussiebroadwan/taxi/internal/taxi/store"
	"github.com/aussiebroadwan/taxi/pkg/httpx"
	"github.com/aussiebroadwan/taxi/pkg/jwtx"
	"github.com/aussiebroadwan/taxi/pkg/slogx"

	_ "github.com/aussiebroadwan/taxi/api/taxi" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware
	dispatcher  *Dispatcher

	keys         *jwtx.KeySet
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	// PageSize is the list page length; 0 disables paging.
	PageSize     int
	CookieSecure bool
	// Limits are the rate limit profiles; unset profiles use the defaults.
	Limits httpx.RateLimits

	SessionService      *service.SessionService
	ManufacturerService *service.ManufacturerService
	CarService          *service.CarService
	DriverService       *service.DriverService
	IndexService        *service.IndexService
}

func NewRouter(
	keys *jwtx.KeySet,
	buildVersion string,
	st store.Store,
	renderer Renderer,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		dispatcher:   &Dispatcher{Renderer: renderer},
		keys:         keys,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		http.NewCrossOriginProtection().Handler,
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.Limits = r.Limits.OrDefault()
	r.middlewares = append(r.middlewares,
		httpx.SessionMiddleware(SessionAuthenticator{Sessions: r.SessionService}),
	)

	r.registerAccounts()
	r.registerIndex()
	r.registerManufacturers()
	r.registerCars()
	r.registerDrivers()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Taxi Service API
//	@version		0.1.0
//	@description	Fleet administration for manufacturers, cars and drivers.
//	@description
//	@description	Every endpoint except login, token and health requires a session. Browsers use the
//	@description	session cookie; API clients send the token from /api/v1/token as a Bearer header
//	@description	together with "Accept: application/json". Successful writes answer 302 with a Location.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/taxi
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// protected registers op behind the login gate for each method. Mutations
// get the tighter per-driver limit.
func (r *Router) protected(kind OpKind, path string, op Operation, methods ...string) {
	h := r.dispatcher.Handle(kind, op)
	for _, m := range methods {
		limit := r.Limits.Lenient
		if m != http.MethodGet {
			limit = r.Limits.Moderate
		}
		r.Mux.Handle(m+" "+path, httpx.Chain(h,
			httpx.RequireLogin(LoginPath),
			httpx.RateLimitByUser(limit),
		))
	}
}

func (r *Router) registerAccounts() {
	h := &AccountHandler{
		Sessions:     r.SessionService,
		Renderer:     r.dispatcher.Renderer,
		CookieSecure: r.CookieSecure,
	}

	r.Mux.Handle("GET "+LoginPath+"{$}", http.HandlerFunc(h.Login))

	// Login and token exchange are password attempts.
	r.Mux.Handle("POST "+LoginPath+"{$}",
		httpx.Chain(http.HandlerFunc(h.Login),
			httpx.RateLimitByIPAndFormField(r.Limits.Strict, "username"),
		),
	)
	r.Mux.Handle("POST /api/v1/token",
		httpx.Chain(http.HandlerFunc(h.Token),
			httpx.RateLimitByIP(r.Limits.Strict),
		),
	)

	r.Mux.Handle("POST "+logoutPath+"{$}", http.HandlerFunc(h.Logout))
}

func (r *Router) registerIndex() {
	h := &IndexHandler{Index: r.IndexService}
	r.protected(OpDetail, "/{$}", h.Home, http.MethodGet)
}

func (r *Router) registerManufacturers() {
	h := &ManufacturerHandler{Manufacturers: r.ManufacturerService, PageSize: r.PageSize}

	r.protected(OpList, "/manufacturers/{$}", h.List, http.MethodGet)
	r.protected(OpCreate, "/manufacturers/create/{$}", h.Create, http.MethodGet, http.MethodPost)
	r.protected(OpDetail, "/manufacturers/{id}/{$}", h.Detail, http.MethodGet)
	r.protected(OpUpdate, "/manufacturers/{id}/update/{$}", h.Update, http.MethodGet, http.MethodPost)
	r.protected(OpDelete, "/manufacturers/{id}/delete/{$}", h.Delete, http.MethodGet, http.MethodPost)
}

func (r *Router) registerCars() {
	h := &CarHandler{
		Cars:          r.CarService,
		Manufacturers: r.ManufacturerService,
		Drivers:       r.DriverService,
		PageSize:      r.PageSize,
	}

	r.protected(OpList, "/cars/{$}", h.List, http.MethodGet)
	r.protected(OpCreate, "/cars/create/{$}", h.Create, http.MethodGet, http.MethodPost)
	r.protected(OpDetail, "/cars/{id}/{$}", h.Detail, http.MethodGet)
	r.protected(OpUpdate, "/cars/{id}/update/{$}", h.Update, http.MethodGet, http.MethodPost)
	r.protected(OpDelete, "/cars/{id}/delete/{$}", h.Delete, http.MethodGet, http.MethodPost)
	r.protected(OpUpdate, "/cars/{id}/toggle-assign/{$}", h.ToggleAssign, http.MethodPost)
}

func (r *Router) registerDrivers() {
	h := &DriverHandler{Drivers: r.DriverService, PageSize: r.PageSize}

	r.protected(OpList, "/drivers/{$}", h.List, http.MethodGet)
	r.protected(OpCreate, "/drivers/create/{$}", h.Create, http.MethodGet, http.MethodPost)
	r.protected(OpDetail, "/drivers/{id}/{$}", h.Detail, http.MethodGet)
	r.protected(OpUpdate, "/drivers/{id}/update/{$}", h.Update, http.MethodGet, http.MethodPost)
	r.protected(OpUpdate, "/drivers/{id}/profile/{$}", h.Profile, http.MethodGet, http.MethodPost)
	r.protected(OpDelete, "/drivers/{id}/delete/{$}", h.Delete, http.MethodGet, http.MethodPost)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(r.Limits.Public),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys),
			httpx.RateLimitByIP(r.Limits.Public),
		),
	)
}
