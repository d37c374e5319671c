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

type PgxShipmentRepository struct {
	BaseRepository
}

// newPgxShipmentRepository creates a new repository for shipment data.
func newPgxShipmentRepository(pool *pgxpool.Pool) portsrepo.ShipmentRepositoryWithTx {
	return &PgxShipmentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxShipmentRepository implements portsrepo.ShipmentRepositoryWithTx
var _ portsrepo.ShipmentRepositoryWithTx = (*PgxShipmentRepository)(nil)

const shipmentColumns = `
	shipment_id, shipment_number, status, shipper_id, carrier_id,
	mode_of_transport, equipment_type,
	customer_rate, carrier_cost_total, fsc_type, fsc_customer_amount, fsc_carrier_amount,
	chassis_customer_cost, chassis_carrier_cost,
	total_customer_rate, total_carrier_cost, gross_profit, margin,
	quote_notes, internal_notes,
	created_at, created_by, last_updated_at, last_updated_by`

// SaveShipment inserts the shipment header, its stops and its accessorials
// within a single database transaction.
func (r *PgxShipmentRepository) SaveShipment(ctx context.Context, shipment domain.Shipment) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // No-op once committed

	modelShipment := mapping.ToModelShipment(shipment)
	headerQuery := `
		INSERT INTO shipments (` + shipmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24);
	`
	_, err = tx.Exec(ctx, headerQuery,
		modelShipment.ShipmentID,
		modelShipment.ShipmentNumber,
		modelShipment.Status,
		modelShipment.ShipperID,
		modelShipment.CarrierID,
		modelShipment.ModeOfTransport,
		modelShipment.EquipmentType,
		modelShipment.CustomerRate,
		modelShipment.CarrierCostTotal,
		modelShipment.FSCType,
		modelShipment.FSCCustomerAmount,
		modelShipment.FSCCarrierAmount,
		modelShipment.ChassisCustomerCost,
		modelShipment.ChassisCarrierCost,
		modelShipment.TotalCustomerRate,
		modelShipment.TotalCarrierCost,
		modelShipment.GrossProfit,
		modelShipment.Margin,
		modelShipment.QuoteNotes,
		modelShipment.InternalNotes,
		modelShipment.CreatedAt,
		modelShipment.CreatedBy,
		modelShipment.LastUpdatedAt,
		modelShipment.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert shipment "+modelShipment.ShipmentID, err)
	}

	if err := insertShipmentChildren(ctx, tx, shipment); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateShipment replaces the shipment header and its child rows within a
// single database transaction. The shipment number column is deliberately
// absent from the SET list.
func (r *PgxShipmentRepository) UpdateShipment(ctx context.Context, shipment domain.Shipment) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelShipment := mapping.ToModelShipment(shipment)
	headerQuery := `
		UPDATE shipments
		SET status = $2, shipper_id = $3, carrier_id = $4,
		    mode_of_transport = $5, equipment_type = $6,
		    customer_rate = $7, carrier_cost_total = $8, fsc_type = $9,
		    fsc_customer_amount = $10, fsc_carrier_amount = $11,
		    chassis_customer_cost = $12, chassis_carrier_cost = $13,
		    total_customer_rate = $14, total_carrier_cost = $15,
		    gross_profit = $16, margin = $17,
		    quote_notes = $18, internal_notes = $19,
		    last_updated_at = $20, last_updated_by = $21
		WHERE shipment_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, headerQuery,
		modelShipment.ShipmentID,
		modelShipment.Status,
		modelShipment.ShipperID,
		modelShipment.CarrierID,
		modelShipment.ModeOfTransport,
		modelShipment.EquipmentType,
		modelShipment.CustomerRate,
		modelShipment.CarrierCostTotal,
		modelShipment.FSCType,
		modelShipment.FSCCustomerAmount,
		modelShipment.FSCCarrierAmount,
		modelShipment.ChassisCustomerCost,
		modelShipment.ChassisCarrierCost,
		modelShipment.TotalCustomerRate,
		modelShipment.TotalCarrierCost,
		modelShipment.GrossProfit,
		modelShipment.Margin,
		modelShipment.QuoteNotes,
		modelShipment.InternalNotes,
		modelShipment.LastUpdatedAt,
		modelShipment.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update shipment "+modelShipment.ShipmentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	// Child rows are replaced wholesale; the caller always carries the full
	// stop and accessorial lists.
	if _, err := tx.Exec(ctx, `DELETE FROM shipment_stops WHERE shipment_id = $1;`, modelShipment.ShipmentID); err != nil {
		return apperrors.NewAppError(500, "failed to clear stops for shipment "+modelShipment.ShipmentID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM shipment_accessorials WHERE shipment_id = $1;`, modelShipment.ShipmentID); err != nil {
		return apperrors.NewAppError(500, "failed to clear accessorials for shipment "+modelShipment.ShipmentID, err)
	}

	if err := insertShipmentChildren(ctx, tx, shipment); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func insertShipmentChildren(ctx context.Context, tx pgx.Tx, shipment domain.Shipment) error {
	batch := &pgx.Batch{}

	stopQuery := `
		INSERT INTO shipment_stops (
			stop_id, shipment_id, sequence, stop_type, location_name, address,
			city, state, zip, appointment_at, appointment_notes,
			is_lane_origin, is_lane_destination
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	for i, stop := range shipment.Stops {
		modelStop := mapping.ToModelStop(shipment.ShipmentID, i, stop)
		batch.Queue(stopQuery,
			modelStop.StopID,
			modelStop.ShipmentID,
			modelStop.Sequence,
			modelStop.Type,
			modelStop.LocationName,
			modelStop.Address,
			modelStop.City,
			modelStop.State,
			modelStop.Zip,
			modelStop.AppointmentAt,
			modelStop.AppointmentNotes,
			modelStop.IsLaneOrigin,
			modelStop.IsLaneDestination,
		)
	}

	accQuery := `
		INSERT INTO shipment_accessorials (
			accessorial_id, shipment_id, name, customer_rate, carrier_cost, quantity
		)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	for _, acc := range shipment.Accessorials {
		modelAcc := mapping.ToModelAccessorial(shipment.ShipmentID, acc)
		batch.Queue(accQuery,
			modelAcc.AccessorialID,
			modelAcc.ShipmentID,
			modelAcc.Name,
			modelAcc.CustomerRate,
			modelAcc.CarrierCost,
			modelAcc.Quantity,
		)
	}

	if batch.Len() == 0 {
		return nil
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert child rows for shipment "+shipment.ShipmentID, err)
	}
	return nil
}

// DeleteShipment removes a shipment; stops and accessorials go with it via
// ON DELETE CASCADE.
func (r *PgxShipmentRepository) DeleteShipment(ctx context.Context, shipmentID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM shipments WHERE shipment_id = $1;`, shipmentID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete shipment "+shipmentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindShipmentByID retrieves a shipment with its stops and accessorials.
func (r *PgxShipmentRepository) FindShipmentByID(ctx context.Context, shipmentID string) (*domain.Shipment, error) {
	query := `SELECT ` + shipmentColumns + ` FROM shipments WHERE shipment_id = $1;`

	var m models.Shipment
	err := r.Pool.QueryRow(ctx, query, shipmentID).Scan(
		&m.ShipmentID,
		&m.ShipmentNumber,
		&m.Status,
		&m.ShipperID,
		&m.CarrierID,
		&m.ModeOfTransport,
		&m.EquipmentType,
		&m.CustomerRate,
		&m.CarrierCostTotal,
		&m.FSCType,
		&m.FSCCustomerAmount,
		&m.FSCCarrierAmount,
		&m.ChassisCustomerCost,
		&m.ChassisCarrierCost,
		&m.TotalCustomerRate,
		&m.TotalCarrierCost,
		&m.GrossProfit,
		&m.Margin,
		&m.QuoteNotes,
		&m.InternalNotes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find shipment by ID "+shipmentID, err)
	}

	stops, err := r.findStopsByShipmentID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	accessorials, err := r.findAccessorialsByShipmentID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}

	domainShipment := mapping.ToDomainShipment(m)
	domainShipment.Stops = mapping.ToDomainStopSlice(stops)
	domainShipment.Accessorials = mapping.ToDomainAccessorialSlice(accessorials)
	return &domainShipment, nil
}

func (r *PgxShipmentRepository) findStopsByShipmentID(ctx context.Context, shipmentID string) ([]models.ShipmentStop, error) {
	query := `
		SELECT stop_id, shipment_id, sequence, stop_type, location_name, address,
		       city, state, zip, appointment_at, appointment_notes,
		       is_lane_origin, is_lane_destination
		FROM shipment_stops
		WHERE shipment_id = $1
		ORDER BY sequence;
	`
	rows, err := r.Pool.Query(ctx, query, shipmentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query stops for shipment "+shipmentID, err)
	}
	defer rows.Close()

	stops := []models.ShipmentStop{}
	for rows.Next() {
		var s models.ShipmentStop
		err := rows.Scan(
			&s.StopID,
			&s.ShipmentID,
			&s.Sequence,
			&s.Type,
			&s.LocationName,
			&s.Address,
			&s.City,
			&s.State,
			&s.Zip,
			&s.AppointmentAt,
			&s.AppointmentNotes,
			&s.IsLaneOrigin,
			&s.IsLaneDestination,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan stop row for shipment "+shipmentID, err)
		}
		stops = append(stops, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating stop rows for shipment "+shipmentID, err)
	}
	return stops, nil
}

func (r *PgxShipmentRepository) findAccessorialsByShipmentID(ctx context.Context, shipmentID string) ([]models.ShipmentAccessorial, error) {
	query := `
		SELECT accessorial_id, shipment_id, name, customer_rate, carrier_cost, quantity
		FROM shipment_accessorials
		WHERE shipment_id = $1
		ORDER BY name;
	`
	rows, err := r.Pool.Query(ctx, query, shipmentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accessorials for shipment "+shipmentID, err)
	}
	defer rows.Close()

	accessorials := []models.ShipmentAccessorial{}
	for rows.Next() {
		var a models.ShipmentAccessorial
		err := rows.Scan(
			&a.AccessorialID,
			&a.ShipmentID,
			&a.Name,
			&a.CustomerRate,
			&a.CarrierCost,
			&a.Quantity,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan accessorial row for shipment "+shipmentID, err)
		}
		accessorials = append(accessorials, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating accessorial rows for shipment "+shipmentID, err)
	}
	return accessorials, nil
}

// ShipmentNumberExists reports whether a shipment number is already taken.
func (r *PgxShipmentRepository) ShipmentNumberExists(ctx context.Context, shipmentNumber string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM shipments WHERE shipment_number = $1);`,
		shipmentNumber,
	).Scan(&exists)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to check shipment number "+shipmentNumber, err)
	}
	return exists, nil
}

// ListShipments retrieves a paginated list of shipment headers using
// token-based pagination. Stops and accessorials are not loaded for listings.
func (r *PgxShipmentRepository) ListShipments(ctx context.Context, filter portsrepo.ListShipmentsFilter, limit int, nextToken *string) ([]domain.Shipment, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to determine whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + shipmentColumns + ` FROM shipments`

	filterClause := `WHERE 1=1`
	args := []interface{}{}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		filterClause += ` AND status = $` + strconv.Itoa(len(args))
	}
	if filter.ShipperID != nil {
		args = append(args, *filter.ShipperID)
		filterClause += ` AND shipper_id = $` + strconv.Itoa(len(args))
	}
	if filter.CarrierID != nil {
		args = append(args, *filter.CarrierID)
		filterClause += ` AND carrier_id = $` + strconv.Itoa(len(args))
	}
	if filter.QuotesOnly {
		filterClause += ` AND status IN ('quote', 'quote_sent', 'quote_accepted', 'quote_rejected')`
	}

	orderByClause := `ORDER BY created_at DESC`

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, decodeErr := pagination.DecodeDateBasedToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastCreatedAt)
		filterClause += ` AND created_at < $` + strconv.Itoa(len(args))
	}

	args = append(args, fetchLimit)
	query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query shipments", err)
	}
	defer rows.Close()

	shipments := make([]models.Shipment, 0, fetchLimit)
	for rows.Next() {
		var m models.Shipment
		err := rows.Scan(
			&m.ShipmentID,
			&m.ShipmentNumber,
			&m.Status,
			&m.ShipperID,
			&m.CarrierID,
			&m.ModeOfTransport,
			&m.EquipmentType,
			&m.CustomerRate,
			&m.CarrierCostTotal,
			&m.FSCType,
			&m.FSCCustomerAmount,
			&m.FSCCarrierAmount,
			&m.ChassisCustomerCost,
			&m.ChassisCarrierCost,
			&m.TotalCustomerRate,
			&m.TotalCarrierCost,
			&m.GrossProfit,
			&m.Margin,
			&m.QuoteNotes,
			&m.InternalNotes,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan shipment row", err)
		}
		shipments = append(shipments, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating shipment rows", err)
	}

	var nextTokenVal *string
	if len(shipments) > limit {
		last := shipments[limit-1]
		token := pagination.EncodeDateBasedToken(last.CreatedAt)
		nextTokenVal = &token
		shipments = shipments[:limit]
	}

	result := make([]domain.Shipment, len(shipments))
	for i := range shipments {
		result[i] = mapping.ToDomainShipment(shipments[i])
	}
	return result, nextTokenVal, nil
}
