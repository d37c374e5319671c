package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/lanewise/freight_tms_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	shipmentRepo := newPgxShipmentRepository(dbPool)
	laneRateRepo := newPgxLaneRateRepository(dbPool)
	shipperRepo := newPgxShipperRepository(dbPool)
	carrierRepo := newPgxCarrierRepository(dbPool)
	settingsRepo := newPgxSettingsRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	documentRepo := newPgxDocumentRepository(dbPool)

	return portsrepo.RepositoryProvider{
		ShipmentRepo: shipmentRepo,
		LaneRateRepo: laneRateRepo,
		ShipperRepo:  shipperRepo,
		CarrierRepo:  carrierRepo,
		SettingsRepo: settingsRepo,
		UserRepo:     userRepo,
		DocumentRepo: documentRepo,
	}
}
