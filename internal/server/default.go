package server

import (
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/kraftedge/oms/pkg/application"
	"github.com/kraftedge/oms/pkg/configuration"
	"github.com/kraftedge/oms/pkg/middleware"
	"github.com/kraftedge/oms/pkg/server"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Application   application.Application
	Pool          *pgxpool.Pool
}

func Default(options *DefaultOptions) (*server.HTTPServer, error) {
	middlewares := []mux.MiddlewareFunc{
		middleware.WithLogger(options.Logger),
		middleware.WithPool(options.Pool),
	}
	options.Application.RegisterMiddleware(middlewares...)
	return server.NewHTTPServer(options.Application), nil
}
