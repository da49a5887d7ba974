package application

import (
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/kraftedge/oms/pkg/eventbus"
)

// Controller is the unit of HTTP surface registration. Key must be unique
// per controller; re-registering a key replaces the previous controller.
type Controller interface {
	Key() string
	Register(r *mux.Router)
}

// Module bundles one bounded context: its repositories, services and
// controllers, wired onto the application at startup.
type Module interface {
	Name() string
	Register(app Application) error
}

type Application interface {
	Pool() *pgxpool.Pool
	EventPublisher() eventbus.EventBus
	Logger() *logrus.Logger

	RegisterControllers(controllers ...Controller)
	RegisterMiddleware(middleware ...mux.MiddlewareFunc)
	Controllers() []Controller
	Middleware() []mux.MiddlewareFunc
}

type ApplicationOptions struct {
	Pool     *pgxpool.Pool
	EventBus eventbus.EventBus
	Logger   *logrus.Logger
}

func New(options *ApplicationOptions) Application {
	return &application{
		pool:        options.Pool,
		eventBus:    options.EventBus,
		logger:      options.Logger,
		controllers: map[string]Controller{},
		keys:        []string{},
	}
}

type application struct {
	pool        *pgxpool.Pool
	eventBus    eventbus.EventBus
	logger      *logrus.Logger
	controllers map[string]Controller
	keys        []string
	middleware  []mux.MiddlewareFunc
}

func (a *application) Pool() *pgxpool.Pool               { return a.pool }
func (a *application) EventPublisher() eventbus.EventBus { return a.eventBus }
func (a *application) Logger() *logrus.Logger            { return a.logger }

func (a *application) RegisterControllers(controllers ...Controller) {
	for _, c := range controllers {
		if _, ok := a.controllers[c.Key()]; !ok {
			a.keys = append(a.keys, c.Key())
		}
		a.controllers[c.Key()] = c
	}
}

func (a *application) RegisterMiddleware(middleware ...mux.MiddlewareFunc) {
	a.middleware = append(a.middleware, middleware...)
}

func (a *application) Controllers() []Controller {
	out := make([]Controller, 0, len(a.keys))
	for _, key := range a.keys {
		out = append(out, a.controllers[key])
	}
	return out
}

func (a *application) Middleware() []mux.MiddlewareFunc {
	return a.middleware
}
