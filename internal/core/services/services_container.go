package services

import (
	"github.com/lanewise/freight_tms_app/internal/cache"
	portsrepo "github.com/lanewise/freight_tms_app/internal/core/ports/repositories"
	portssvc "github.com/lanewise/freight_tms_app/internal/core/ports/services"
	"github.com/lanewise/freight_tms_app/internal/platform/config"
	"github.com/lanewise/freight_tms_app/internal/platform/storage"
	"github.com/lanewise/freight_tms_app/internal/platform/tasks"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	settingsCache *cache.SettingsCache,
	store storage.DocumentStore,
	runner *tasks.Runner,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Settings first: shipment numbering reads the quote form settings.
	container.Settings = NewSettingsService(repos.SettingsRepo, settingsCache)

	// Lane rate service next: the shipment service dispatches its recorder
	// after every successful save.
	container.LaneRate = NewLaneRateService(repos.LaneRateRepo)

	container.Shipment = NewShipmentService(
		repos.ShipmentRepo,
		container.Settings,
		container.LaneRate,
		runner,
	)

	container.Shipper = NewShipperService(repos.ShipperRepo)
	container.Carrier = NewCarrierService(repos.CarrierRepo)
	container.User = NewUserService(repos.UserRepo)
	container.Document = NewDocumentService(repos.DocumentRepo, repos.ShipmentRepo, repos.CarrierRepo, store)
	container.Token = NewTokenService(cfg)

	return container
}
