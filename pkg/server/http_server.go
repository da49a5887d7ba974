package server

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/kraftedge/oms/pkg/application"
	"github.com/kraftedge/oms/pkg/httpapi"
)

type HTTPServer struct {
	app application.Application
}

func NewHTTPServer(app application.Application) *HTTPServer {
	return &HTTPServer{app: app}
}

func (s *HTTPServer) Start(socketAddress string) error {
	r := mux.NewRouter()
	r.Use(s.app.Middleware()...)
	for _, c := range s.app.Controllers() {
		c.Register(r)
	}
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "no such route", nil)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = httpapi.WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", nil)
	})

	srv := &http.Server{
		Addr:              socketAddress,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}
