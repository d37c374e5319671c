package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lanewise/freight_tms_app/internal/apperrors"
	"github.com/lanewise/freight_tms_app/internal/core/domain"
	portsrepo "github.com/lanewise/freight_tms_app/internal/core/ports/repositories"
	"github.com/lanewise/freight_tms_app/internal/models"
	"github.com/lanewise/freight_tms_app/internal/utils/mapping"
	"github.com/lanewise/freight_tms_app/internal/utils/pagination"
)

type PgxLaneRateRepository struct {
	BaseRepository
}

// newPgxLaneRateRepository creates a new repository for lane rate data.
func newPgxLaneRateRepository(pool *pgxpool.Pool) portsrepo.LaneRateRepositoryFacade {
	return &PgxLaneRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxLaneRateRepository implements portsrepo.LaneRateRepositoryFacade
var _ portsrepo.LaneRateRepositoryFacade = (*PgxLaneRateRepository)(nil)

const laneRateColumns = `
	lane_rate_id, origin_city, origin_state, origin_zip,
	destination_city, destination_state, destination_zip,
	carrier_id, mode_of_transport, equipment_type,
	line_haul_rate, line_haul_cost, fsc_percentage, carrier_fsc_percentage,
	chassis_customer_cost, chassis_carrier_cost,
	total_accessorial_customer, total_accessorial_carrier,
	source_type, source_shipment_id, source_quote_shipment_number,
	rate_date, notes, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func laneRateArgs(m models.LaneRate) []interface{} {
	return []interface{}{
		m.LaneRateID,
		m.OriginCity,
		m.OriginState,
		m.OriginZip,
		m.DestinationCity,
		m.DestinationState,
		m.DestinationZip,
		m.CarrierID,
		m.ModeOfTransport,
		m.EquipmentType,
		m.LineHaulRate,
		m.LineHaulCost,
		m.FSCPercentage,
		m.CarrierFSCPercentage,
		m.ChassisCustomerCost,
		m.ChassisCarrierCost,
		m.TotalAccessorialCustomer,
		m.TotalAccessorialCarrier,
		m.SourceType,
		m.SourceShipmentID,
		m.SourceQuoteShipmentNumber,
		m.RateDate,
		m.Notes,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	}
}

func scanLaneRate(row pgx.Row) (models.LaneRate, error) {
	var m models.LaneRate
	err := row.Scan(
		&m.LaneRateID,
		&m.OriginCity,
		&m.OriginState,
		&m.OriginZip,
		&m.DestinationCity,
		&m.DestinationState,
		&m.DestinationZip,
		&m.CarrierID,
		&m.ModeOfTransport,
		&m.EquipmentType,
		&m.LineHaulRate,
		&m.LineHaulCost,
		&m.FSCPercentage,
		&m.CarrierFSCPercentage,
		&m.ChassisCustomerCost,
		&m.ChassisCarrierCost,
		&m.TotalAccessorialCustomer,
		&m.TotalAccessorialCarrier,
		&m.SourceType,
		&m.SourceShipmentID,
		&m.SourceQuoteShipmentNumber,
		&m.RateDate,
		&m.Notes,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// laneRateUpsertQuery overwrites the rate fields of an existing TMS-sourced
// row in place. is_active is deliberately absent from the update list: a user
// who deactivated a recorded rate keeps it deactivated across shipment edits.
const laneRateUpsertQuery = `
	INSERT INTO lane_rates (` + laneRateColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
	        $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28)
	ON CONFLICT (source_shipment_id) WHERE source_type = 'TMS_SHIPMENT'
	DO UPDATE SET
		origin_city = EXCLUDED.origin_city,
		origin_state = EXCLUDED.origin_state,
		origin_zip = EXCLUDED.origin_zip,
		destination_city = EXCLUDED.destination_city,
		destination_state = EXCLUDED.destination_state,
		destination_zip = EXCLUDED.destination_zip,
		carrier_id = EXCLUDED.carrier_id,
		mode_of_transport = EXCLUDED.mode_of_transport,
		equipment_type = EXCLUDED.equipment_type,
		line_haul_rate = EXCLUDED.line_haul_rate,
		line_haul_cost = EXCLUDED.line_haul_cost,
		fsc_percentage = EXCLUDED.fsc_percentage,
		carrier_fsc_percentage = EXCLUDED.carrier_fsc_percentage,
		chassis_customer_cost = EXCLUDED.chassis_customer_cost,
		chassis_carrier_cost = EXCLUDED.chassis_carrier_cost,
		total_accessorial_customer = EXCLUDED.total_accessorial_customer,
		total_accessorial_carrier = EXCLUDED.total_accessorial_carrier,
		source_quote_shipment_number = EXCLUDED.source_quote_shipment_number,
		rate_date = EXCLUDED.rate_date,
		notes = EXCLUDED.notes,
		last_updated_at = EXCLUDED.last_updated_at,
		last_updated_by = EXCLUDED.last_updated_by
	RETURNING ` + laneRateColumns + `;
`

// UpsertBySourceShipment inserts or updates the TMS-sourced lane rate for one
// shipment in a single statement. The partial unique index on
// source_shipment_id makes concurrent recorder runs converge on one row.
func (r *PgxLaneRateRepository) UpsertBySourceShipment(ctx context.Context, laneRate domain.LaneRate) (*domain.LaneRate, error) {
	m := mapping.ToModelLaneRate(laneRate)
	saved, err := scanLaneRate(r.Pool.QueryRow(ctx, laneRateUpsertQuery, laneRateArgs(m)...))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to upsert lane rate for shipment "+*laneRate.SourceShipmentID, err)
	}
	domainRate := mapping.ToDomainLaneRate(saved)
	return &domainRate, nil
}

// SaveLaneRate inserts a manually entered or imported lane rate with its
// manual accessorials.
func (r *PgxLaneRateRepository) SaveLaneRate(ctx context.Context, laneRate domain.LaneRate) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelLaneRate(laneRate)
	query := `
		INSERT INTO lane_rates (` + laneRateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28);
	`
	if _, err := tx.Exec(ctx, query, laneRateArgs(m)...); err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert lane rate "+m.LaneRateID, err)
	}

	if err := insertLaneRateAccessorials(ctx, tx, laneRate); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateLaneRate replaces a lane rate and its manual accessorials.
func (r *PgxLaneRateRepository) UpdateLaneRate(ctx context.Context, laneRate domain.LaneRate) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelLaneRate(laneRate)
	query := `
		UPDATE lane_rates
		SET origin_city = $2, origin_state = $3, origin_zip = $4,
		    destination_city = $5, destination_state = $6, destination_zip = $7,
		    carrier_id = $8, mode_of_transport = $9, equipment_type = $10,
		    line_haul_rate = $11, line_haul_cost = $12,
		    fsc_percentage = $13, carrier_fsc_percentage = $14,
		    chassis_customer_cost = $15, chassis_carrier_cost = $16,
		    total_accessorial_customer = $17, total_accessorial_carrier = $18,
		    rate_date = $19, notes = $20, is_active = $21,
		    last_updated_at = $22, last_updated_by = $23
		WHERE lane_rate_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.LaneRateID,
		m.OriginCity,
		m.OriginState,
		m.OriginZip,
		m.DestinationCity,
		m.DestinationState,
		m.DestinationZip,
		m.CarrierID,
		m.ModeOfTransport,
		m.EquipmentType,
		m.LineHaulRate,
		m.LineHaulCost,
		m.FSCPercentage,
		m.CarrierFSCPercentage,
		m.ChassisCustomerCost,
		m.ChassisCarrierCost,
		m.TotalAccessorialCustomer,
		m.TotalAccessorialCarrier,
		m.RateDate,
		m.Notes,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update lane rate "+m.LaneRateID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `DELETE FROM lane_rate_accessorials WHERE lane_rate_id = $1;`, m.LaneRateID); err != nil {
		return apperrors.NewAppError(500, "failed to clear accessorials for lane rate "+m.LaneRateID, err)
	}
	if err := insertLaneRateAccessorials(ctx, tx, laneRate); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func insertLaneRateAccessorials(ctx context.Context, tx pgx.Tx, laneRate domain.LaneRate) error {
	if len(laneRate.ManualAccessorials) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	query := `
		INSERT INTO lane_rate_accessorials (manual_accessorial_id, lane_rate_id, name, cost, notes)
		VALUES ($1, $2, $3, $4, $5);
	`
	for _, acc := range laneRate.ManualAccessorials {
		m := mapping.ToModelLaneRateAccessorial(laneRate.LaneRateID, acc)
		batch.Queue(query, m.ManualAccessorialID, m.LaneRateID, m.Name, m.Cost, m.Notes)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert accessorials for lane rate "+laneRate.LaneRateID, err)
	}
	return nil
}

// DeleteLaneRate removes a lane rate; its accessorials cascade.
func (r *PgxLaneRateRepository) DeleteLaneRate(ctx context.Context, laneRateID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM lane_rates WHERE lane_rate_id = $1;`, laneRateID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete lane rate "+laneRateID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteBySourceShipmentID removes the lane rate derived from a shipment.
// Deleting nothing is not an error; most shipments never produced one.
func (r *PgxLaneRateRepository) DeleteBySourceShipmentID(ctx context.Context, shipmentID string) error {
	_, err := r.Pool.Exec(ctx,
		`DELETE FROM lane_rates WHERE source_shipment_id = $1 AND source_type = 'TMS_SHIPMENT';`,
		shipmentID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete lane rate for shipment "+shipmentID, err)
	}
	return nil
}

// FindLaneRateByID retrieves a lane rate with its manual accessorials.
func (r *PgxLaneRateRepository) FindLaneRateByID(ctx context.Context, laneRateID string) (*domain.LaneRate, error) {
	query := `SELECT ` + laneRateColumns + ` FROM lane_rates WHERE lane_rate_id = $1;`
	m, err := scanLaneRate(r.Pool.QueryRow(ctx, query, laneRateID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find lane rate by ID "+laneRateID, err)
	}

	accessorials, err := r.findAccessorialsByLaneRateID(ctx, laneRateID)
	if err != nil {
		return nil, err
	}

	domainRate := mapping.ToDomainLaneRate(m)
	domainRate.ManualAccessorials = mapping.ToDomainManualAccessorialSlice(accessorials)
	return &domainRate, nil
}

// FindLaneRateBySourceShipmentID retrieves the TMS-sourced lane rate derived
// from a shipment.
func (r *PgxLaneRateRepository) FindLaneRateBySourceShipmentID(ctx context.Context, shipmentID string) (*domain.LaneRate, error) {
	query := `
		SELECT ` + laneRateColumns + `
		FROM lane_rates
		WHERE source_shipment_id = $1 AND source_type = 'TMS_SHIPMENT';
	`
	m, err := scanLaneRate(r.Pool.QueryRow(ctx, query, shipmentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find lane rate for shipment "+shipmentID, err)
	}
	domainRate := mapping.ToDomainLaneRate(m)
	return &domainRate, nil
}

func (r *PgxLaneRateRepository) findAccessorialsByLaneRateID(ctx context.Context, laneRateID string) ([]models.LaneRateAccessorial, error) {
	query := `
		SELECT manual_accessorial_id, lane_rate_id, name, cost, notes
		FROM lane_rate_accessorials
		WHERE lane_rate_id = $1
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, laneRateID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accessorials for lane rate "+laneRateID, err)
	}
	defer rows.Close()

	accessorials := []models.LaneRateAccessorial{}
	for rows.Next() {
		var a models.LaneRateAccessorial
		if err := rows.Scan(&a.ManualAccessorialID, &a.LaneRateID, &a.Name, &a.Cost, &a.Notes); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan accessorial row for lane rate "+laneRateID, err)
		}
		accessorials = append(accessorials, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating accessorial rows for lane rate "+laneRateID, err)
	}
	return accessorials, nil
}

// ListLaneRates retrieves a paginated, filtered list of lane rates using
// token-based pagination ordered by rate date, newest first.
func (r *PgxLaneRateRepository) ListLaneRates(ctx context.Context, filter portsrepo.ListLaneRatesFilter, limit int, nextToken *string) ([]domain.LaneRate, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + laneRateColumns + ` FROM lane_rates`

	filterClause := `WHERE 1=1`
	args := []interface{}{}
	appendEq := func(column string, value string) {
		args = append(args, value)
		filterClause += ` AND ` + column + ` = $` + strconv.Itoa(len(args))
	}
	// Lane matching is case-insensitive; city names arrive with mixed casing.
	appendILike := func(column string, value string) {
		args = append(args, value)
		filterClause += ` AND ` + column + ` ILIKE $` + strconv.Itoa(len(args))
	}

	if filter.OriginCity != nil {
		appendILike("origin_city", *filter.OriginCity)
	}
	if filter.OriginState != nil {
		appendILike("origin_state", *filter.OriginState)
	}
	if filter.DestinationCity != nil {
		appendILike("destination_city", *filter.DestinationCity)
	}
	if filter.DestinationState != nil {
		appendILike("destination_state", *filter.DestinationState)
	}
	if filter.CarrierID != nil {
		appendEq("carrier_id", *filter.CarrierID)
	}
	if filter.ModeOfTransport != nil {
		appendEq("mode_of_transport", *filter.ModeOfTransport)
	}
	if filter.EquipmentType != nil {
		appendEq("equipment_type", *filter.EquipmentType)
	}
	if filter.SourceType != nil {
		appendEq("source_type", string(*filter.SourceType))
	}
	if filter.ActiveOnly {
		filterClause += ` AND is_active = TRUE`
	}

	orderByClause := `ORDER BY rate_date DESC, created_at DESC`

	if nextToken != nil && *nextToken != "" {
		lastRateDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastRateDate, lastCreatedAt)
		filterClause += ` AND (rate_date, created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query lane rates", err)
	}
	defer rows.Close()

	laneRates := make([]models.LaneRate, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanLaneRate(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan lane rate row", scanErr)
		}
		laneRates = append(laneRates, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating lane rate rows", err)
	}

	var nextTokenVal *string
	if len(laneRates) > limit {
		last := laneRates[limit-1]
		token := pagination.EncodeToken(last.RateDate, last.CreatedAt)
		nextTokenVal = &token
		laneRates = laneRates[:limit]
	}

	result := make([]domain.LaneRate, len(laneRates))
	for i := range laneRates {
		result[i] = mapping.ToDomainLaneRate(laneRates[i])
	}
	return result, nextTokenVal, nil
}
