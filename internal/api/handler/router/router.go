package router

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

// Route descreve uma rota HTTP com seus middlewares próprios, aplicados
// depois da cadeia global do servidor.
type Route struct {
	Path        string
	Method      string
	Handler     http.Handler
	Middlewares []func(http.Handler) http.Handler
}

type Router struct {
	router *httprouter.Router
}

type ConfigRouter func(router *Router)

// WithRoutes registra um grupo de rotas na construção do router.
func WithRoutes(routes ...Route) ConfigRouter {
	return func(router *Router) {
		router.AddRoutes(routes...)
	}
}

func New(configs ...ConfigRouter) Router {
	r := &Router{
		router: httprouter.New(),
	}

	for _, config := range configs {
		config(r)
	}

	return *r
}

func (r Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}

// AddRoutes registra cada rota com seus middlewares, aplicados do último
// para o primeiro para preservar a ordem de declaração na execução.
func (r Router) AddRoutes(routes ...Route) {
	for _, route := range routes {
		handler := route.Handler

		for i := len(route.Middlewares) - 1; i >= 0; i-- {
			handler = route.Middlewares[i](handler)
		}

		r.router.Handler(route.Method, route.Path, handler)
	}
}
