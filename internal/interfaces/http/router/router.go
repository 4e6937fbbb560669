package router

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration. Scoped registrars sit behind the
// store scope middleware; unscoped ones (store administration, probes) do not.
type Router struct {
	engine           *gin.Engine
	apiVersion       string
	registrars       []RouteRegistrar
	scopedRegistrars []RouteRegistrar
	scopeMiddleware  []gin.HandlerFunc
}

// Option is a functional option for Router configuration
type Option func(*Router)

// WithAPIVersion sets the API version prefix (e.g. "v1")
func WithAPIVersion(version string) Option {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// WithScopeMiddleware sets the middleware guarding store-scoped routes
func WithScopeMiddleware(middleware ...gin.HandlerFunc) Option {
	return func(r *Router) {
		r.scopeMiddleware = middleware
	}
}

// New creates a new Router
func New(engine *gin.Engine, opts ...Option) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a registrar outside the store scope
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// RegisterScoped adds a registrar behind the store scope middleware
func (r *Router) RegisterScoped(registrar RouteRegistrar) *Router {
	r.scopedRegistrars = append(r.scopedRegistrars, registrar)
	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)

	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}

	scoped := api.Group("")
	scoped.Use(r.scopeMiddleware...)
	for _, registrar := range r.scopedRegistrars {
		registrar.RegisterRoutes(scoped)
	}
}
