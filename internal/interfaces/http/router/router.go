package router

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar registers a set of routes on a gin group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// RegistrarFunc adapts a plain function to the RouteRegistrar interface
type RegistrarFunc func(rg *gin.RouterGroup)

// RegisterRoutes implements RouteRegistrar
func (f RegistrarFunc) RegisterRoutes(rg *gin.RouterGroup) {
	f(rg)
}

// Router collects route registrars and mounts them under a versioned
// API prefix. Registration is deferred until Setup so middleware can be
// attached to the whole API surface first.
type Router struct {
	engine     *gin.Engine
	apiVersion string
	middleware []gin.HandlerFunc
	groups     []mountedGroup
}

type mountedGroup struct {
	prefix    string
	registrar RouteRegistrar
}

// Option configures a Router
type Option func(*Router)

// WithAPIVersion sets the API version segment, "v1" by default
func WithAPIVersion(version string) Option {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// New creates a Router bound to the given engine
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

// Use attaches middleware to the whole versioned API group
func (r *Router) Use(middleware ...gin.HandlerFunc) *Router {
	r.middleware = append(r.middleware, middleware...)
	return r
}

// Mount queues a registrar under a path prefix within the API group
func (r *Router) Mount(prefix string, registrar RouteRegistrar) *Router {
	r.groups = append(r.groups, mountedGroup{prefix: prefix, registrar: registrar})
	return r
}

// MountFunc queues a registration function under a path prefix
func (r *Router) MountFunc(prefix string, register func(rg *gin.RouterGroup)) *Router {
	return r.Mount(prefix, RegistrarFunc(register))
}

// Setup creates the /api/<version> group, applies the queued middleware,
// and registers every mounted group
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)
	api.Use(r.middleware...)

	for _, g := range r.groups {
		g.registrar.RegisterRoutes(api.Group(g.prefix))
	}
}
