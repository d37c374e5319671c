package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	ShipmentRepo ShipmentRepositoryFacade
	LaneRateRepo LaneRateRepositoryFacade
	ShipperRepo  ShipperRepository
	CarrierRepo  CarrierRepository
	SettingsRepo SettingsRepository
	UserRepo     UserRepository
	DocumentRepo DocumentRepository
}
