package providers

import (
	"github.com/samber/do/v2"

	"github.com/habitloop/habitloop-server/internal/auth"
	"github.com/habitloop/habitloop-server/internal/logger"
	"github.com/habitloop/habitloop-server/internal/service"
)

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, tokenService, log.Logger), nil
}

// ProvideDocumentService provides the document service.
func ProvideDocumentService(i do.Injector) (*service.DocumentService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	syncerHandle := do.MustInvoke[*SyncerHandle](i)
	schedulerHandle := do.MustInvoke[*SchedulerHandle](i)
	sseHandle := do.MustInvoke[*SSEManagerHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewDocumentService(
		storeHandle.Store,
		syncerHandle.Syncer,
		schedulerHandle.Scheduler,
		sseHandle.Manager,
		log.Logger,
	), nil
}

// ProvideStatsService provides the derived stats service.
func ProvideStatsService(i do.Injector) (*service.StatsService, error) {
	docs := do.MustInvoke[*service.DocumentService](i)
	return service.NewStatsService(docs, nil), nil
}
