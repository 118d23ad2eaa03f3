// Package router mounts the HTTP handlers on a gin engine.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RouteRegistrar mounts its routes on an API group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router mounts registrars under /api/<version>
type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
}

type RouterOption func(*Router)

// WithAPIVersion overrides the default "v1" prefix
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Router) Register(registrars ...RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrars...)
	return r
}

// Setup mounts every registrar and returns the API group
func (r *Router) Setup() *gin.RouterGroup {
	api := r.engine.Group("/api/" + r.apiVersion)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
	return api
}

// Resource collects the routes of one REST resource, e.g. /thanks
type Resource struct {
	prefix string
	routes []route
}

type route struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

func NewResource(prefix string) *Resource {
	return &Resource{prefix: prefix}
}

func (res *Resource) Handle(method, path string, handlers ...gin.HandlerFunc) *Resource {
	res.routes = append(res.routes, route{method: method, path: path, handlers: handlers})
	return res
}

func (res *Resource) GET(path string, handlers ...gin.HandlerFunc) *Resource {
	return res.Handle(http.MethodGet, path, handlers...)
}

func (res *Resource) POST(path string, handlers ...gin.HandlerFunc) *Resource {
	return res.Handle(http.MethodPost, path, handlers...)
}

func (res *Resource) PUT(path string, handlers ...gin.HandlerFunc) *Resource {
	return res.Handle(http.MethodPut, path, handlers...)
}

func (res *Resource) DELETE(path string, handlers ...gin.HandlerFunc) *Resource {
	return res.Handle(http.MethodDelete, path, handlers...)
}

// Modify registers a partial update on PATCH, with PUT as an alias
func (res *Resource) Modify(path string, handlers ...gin.HandlerFunc) *Resource {
	return res.Handle(http.MethodPatch, path, handlers...).PUT(path, handlers...)
}

// RegisterRoutes implements RouteRegistrar
func (res *Resource) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(res.prefix)
	for _, rt := range res.routes {
		group.Handle(rt.method, rt.path, rt.handlers...)
	}
}
