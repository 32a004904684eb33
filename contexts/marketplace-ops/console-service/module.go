package consoleservice

import (
	"log/slog"
	"time"

	httpadapter "opsdesk/contexts/marketplace-ops/console-service/adapters/http"
	"opsdesk/contexts/marketplace-ops/console-service/adapters/memory"
	"opsdesk/contexts/marketplace-ops/console-service/application"
	"opsdesk/contexts/marketplace-ops/console-service/ports"
)

type Module struct {
	Handler    httpadapter.Handler
	Controller *application.Controller
}

type Dependencies struct {
	Source       ports.CampaignSource
	Cache        ports.FallbackCache
	Clock        ports.Clock
	ReadTimeout  time.Duration
	PageSize     int
	PollInterval time.Duration
	Logger       *slog.Logger
}

func NewModule(deps Dependencies) Module {
	cache := deps.Cache
	if cache == nil {
		cache = memory.NewFallbackCache()
	}
	resilience := application.Resilience{
		Source:      deps.Source,
		Cache:       cache,
		ReadTimeout: deps.ReadTimeout,
		Clock:       deps.Clock,
		Logger:      deps.Logger,
	}
	controller := application.NewController(resilience, deps.PageSize, deps.PollInterval, deps.Logger)
	return Module{
		Handler: httpadapter.Handler{
			Controller: controller,
			Logger:     deps.Logger,
		},
		Controller: controller,
	}
}
