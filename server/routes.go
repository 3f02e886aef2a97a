package server

import (
	"fmt"
	"log"
	"net/http"
)

func (s *Server) initRoutes() {
	basePath := s.bridge.BasePath()

	// OAuth bridge: any method, routed by path suffix inside the bridge
	s.RegisterRouteHandler(basePath, ChainMiddleware(s.bridge.ServeHTTP, s.APIMiddleware()...))
	s.RegisterRouteHandler(basePath+"/", ChainMiddleware(s.bridge.ServeHTTP, s.APIMiddleware()...))

	// Content bundles and the site itself
	s.RegisterRouteHandler("GET "+RouteContentBundle, ChainMiddleware(s.site.BundleHandler(), s.ContentMiddleware()...))
	s.RegisterRouteHandler(RouteSite, ChainMiddleware(s.siteHandler(), s.HTMLMiddleWare()...))
}

func (s *Server) siteHandler() http.HandlerFunc {
	pages := s.site.PageHandler()
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, "405 - Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		pages(w, r)
	}
}

var methodColors = map[string]string{
	"GET":    green,
	"POST":   blue,
	"PUT":    cyan,
	"DELETE": yellow,
	"PATCH":  magenta,
}

const (
	red        = "\033[31m"
	green      = "\033[32m"
	yellow     = "\033[33m"
	blue       = "\033[34m"
	magenta    = "\033[35m"
	cyan       = "\033[36m"
	gray       = "\033[90m"
	resetColor = "\033[0m"
)

func colourMethod(method string) string {
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		return color + paddedMethod + resetColor
	}
	return gray + paddedMethod + resetColor
}

func logRoute(method, path string) {
	log.Printf("[%-19s] %s\n", colourMethod(method), path)
}

func logError(method, path, error string) {
	log.Printf("[%-19s] %s %s\n", colourMethod(method), path, red+error+resetColor)
}
