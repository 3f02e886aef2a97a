package server

import (
	"net/http"
	"strings"

	"github.com/jrsteele09/decap-oauth-bridge/bridge"
	"github.com/jrsteele09/decap-oauth-bridge/content"
	"github.com/jrsteele09/decap-oauth-bridge/internal/config"
)

type Server struct {
	env    string // Environment (e.g., "DEV", "PROD")
	mux    *http.ServeMux
	routes []string
	config config.Config
	bridge *bridge.Bridge
	site   *content.Handler
}

func New(config config.Config, bridge *bridge.Bridge, site *content.Handler) *Server {
	s := &Server{
		env:    config.GetEnv(),
		mux:    http.NewServeMux(),
		config: config,
		bridge: bridge,
		site:   site,
	}

	s.initRoutes()
	s.logRoutes()

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// Routes lists the registered patterns in registration order.
func (s *Server) Routes() []string {
	return append([]string(nil), s.routes...)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("ANY", parts[0])
		}
	}
}
