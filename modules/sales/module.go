package sales

import (
	"github.com/kraftedge/oms/modules/sales/handlers"
	"github.com/kraftedge/oms/modules/sales/infrastructure/cp"
	"github.com/kraftedge/oms/modules/sales/infrastructure/persistence"
	"github.com/kraftedge/oms/modules/sales/infrastructure/sap"
	"github.com/kraftedge/oms/modules/sales/presentation/controllers"
	"github.com/kraftedge/oms/modules/sales/services"
	"github.com/kraftedge/oms/pkg/application"
	"github.com/kraftedge/oms/pkg/configuration"
)

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	conf := configuration.Use()

	orders := persistence.NewOrderRepository()
	lines := persistence.NewLineRepository()
	confirmations := persistence.NewConfirmationRepository()
	tx := persistence.NewTransactor()

	planner := cp.NewClient(conf.CP.BaseURL, conf.CP.Timeout)
	gateway := sap.NewClient(sap.Options{
		BaseURL:   conf.SAP.BaseURL,
		OrderType: conf.SAP.OrderType,
		SalesOrg:  conf.SAP.SalesOrg,
		Timeout:   conf.SAP.Timeout,
	})

	planning := services.NewPlanningService(planner, lines, confirmations, conf.CP.Sender)
	syncService := services.NewSyncService(tx, orders, lines, app.EventPublisher())
	splitService := services.NewSplitService(tx, orders, lines, planning, app.EventPublisher())
	orderService := services.NewOrderService(orders, lines, confirmations, gateway, syncService)

	app.RegisterControllers(
		controllers.NewOrderController(orderService, splitService),
	)
	handlers.RegisterMetricsHandlers(app.EventPublisher())
	return nil
}

func (m *Module) Name() string {
	return "sales"
}
