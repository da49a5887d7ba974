package modules

import (
	"github.com/kraftedge/oms/modules/sales"
	"github.com/kraftedge/oms/pkg/application"
)

var BuiltInModules = []application.Module{
	sales.NewModule(),
}

func Load(app application.Application, mods ...application.Module) error {
	for _, m := range mods {
		if err := m.Register(app); err != nil {
			return err
		}
		app.Logger().Infof("registered module %s", m.Name())
	}
	return nil
}
