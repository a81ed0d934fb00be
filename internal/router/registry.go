package router

import "github.com/gin-gonic/gin"

// Module is a feature that mounts its routes on a group.
type Module interface {
	Register(rg *gin.RouterGroup)
}

// Registry defers route registration until every module and every /api
// middleware is known. gin binds group middleware to a route when the route
// is added, so order matters.
type Registry struct {
	engine *gin.Engine
	apiMW  []gin.HandlerFunc
	root   []Module
	api    []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	return &Registry{engine: engine}
}

// Use adds middleware that applies to /api routes only.
func (r *Registry) Use(mw ...gin.HandlerFunc) { r.apiMW = append(r.apiMW, mw...) }

// Mount adds a module served from the engine root (health, debug).
func (r *Registry) Mount(m Module) { r.root = append(r.root, m) }

// MountAPI adds a module served under /api.
func (r *Registry) MountAPI(m Module) { r.api = append(r.api, m) }

// RegisterAll binds every collected module to the engine.
func (r *Registry) RegisterAll() {
	for _, m := range r.root {
		m.Register(&r.engine.RouterGroup)
	}
	api := r.engine.Group("/api", r.apiMW...)
	for _, m := range r.api {
		m.Register(api)
	}
}
