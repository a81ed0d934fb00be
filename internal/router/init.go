package router

import (
	handlers "github.com/oksasatya/go-hexagonal-users/internal/interface/http"
	"github.com/oksasatya/go-hexagonal-users/internal/router/modules"
)

// Deps carries everything the HTTP modules need. main assembles it once.
type Deps struct {
	Users        *handlers.UserHandler
	Health       *handlers.HealthHandler
	DebugMetrics bool
}

// InitModules collects every feature module. Health and debug live at the
// engine root, the user API under /api.
func InitModules(r *Registry, d Deps) {
	if d.Health != nil {
		r.Mount(modules.NewHealthModule(d.Health))
	}
	if d.DebugMetrics {
		r.Mount(modules.NewDebugModule())
	}
	if d.Users != nil {
		r.MountAPI(modules.NewUserModule(d.Users))
	}
}
