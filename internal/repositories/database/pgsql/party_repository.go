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

type PgxShipperRepository struct {
	BaseRepository
}

// newPgxShipperRepository creates a new repository for shipper data.
func newPgxShipperRepository(pool *pgxpool.Pool) portsrepo.ShipperRepository {
	return &PgxShipperRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ShipperRepository = (*PgxShipperRepository)(nil)

const shipperColumns = `
	shipper_id, name, address, city, state, zip,
	contact_name, contact_email, contact_phone, notes, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

// SaveShipper inserts a new shipper.
func (r *PgxShipperRepository) SaveShipper(ctx context.Context, shipper domain.Shipper) error {
	m := mapping.ToModelShipper(shipper)
	query := `
		INSERT INTO shippers (` + shipperColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ShipperID, m.Name, m.Address, m.City, m.State, m.Zip,
		m.ContactName, m.ContactEmail, m.ContactPhone, m.Notes, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert shipper "+m.ShipperID, err)
	}
	return nil
}

// UpdateShipper updates an existing shipper.
func (r *PgxShipperRepository) UpdateShipper(ctx context.Context, shipper domain.Shipper) error {
	m := mapping.ToModelShipper(shipper)
	query := `
		UPDATE shippers
		SET name = $2, address = $3, city = $4, state = $5, zip = $6,
		    contact_name = $7, contact_email = $8, contact_phone = $9,
		    notes = $10, is_active = $11, last_updated_at = $12, last_updated_by = $13
		WHERE shipper_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.ShipperID, m.Name, m.Address, m.City, m.State, m.Zip,
		m.ContactName, m.ContactEmail, m.ContactPhone,
		m.Notes, m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update shipper "+m.ShipperID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteShipper removes a shipper.
func (r *PgxShipperRepository) DeleteShipper(ctx context.Context, shipperID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM shippers WHERE shipper_id = $1;`, shipperID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete shipper "+shipperID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindShipperByID retrieves a shipper by ID.
func (r *PgxShipperRepository) FindShipperByID(ctx context.Context, shipperID string) (*domain.Shipper, error) {
	query := `SELECT ` + shipperColumns + ` FROM shippers WHERE shipper_id = $1;`
	var m models.Shipper
	err := r.Pool.QueryRow(ctx, query, shipperID).Scan(
		&m.ShipperID, &m.Name, &m.Address, &m.City, &m.State, &m.Zip,
		&m.ContactName, &m.ContactEmail, &m.ContactPhone, &m.Notes, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find shipper by ID "+shipperID, err)
	}
	d := mapping.ToDomainShipper(m)
	return &d, nil
}

// ListShippers retrieves a paginated list of shippers ordered by creation time.
func (r *PgxShipperRepository) ListShippers(ctx context.Context, limit int, nextToken *string) ([]domain.Shipper, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `SELECT ` + shipperColumns + ` FROM shippers`
	args := []interface{}{}
	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, decodeErr := pagination.DecodeDateBasedToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastCreatedAt)
		query += ` WHERE created_at < $1`
	}
	args = append(args, fetchLimit)
	query += ` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query shippers", err)
	}
	defer rows.Close()

	shippers := make([]models.Shipper, 0, fetchLimit)
	for rows.Next() {
		var m models.Shipper
		err := rows.Scan(
			&m.ShipperID, &m.Name, &m.Address, &m.City, &m.State, &m.Zip,
			&m.ContactName, &m.ContactEmail, &m.ContactPhone, &m.Notes, &m.IsActive,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan shipper row", err)
		}
		shippers = append(shippers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating shipper rows", err)
	}

	var nextTokenVal *string
	if len(shippers) > limit {
		token := pagination.EncodeDateBasedToken(shippers[limit-1].CreatedAt)
		nextTokenVal = &token
		shippers = shippers[:limit]
	}

	result := make([]domain.Shipper, len(shippers))
	for i := range shippers {
		result[i] = mapping.ToDomainShipper(shippers[i])
	}
	return result, nextTokenVal, nil
}

type PgxCarrierRepository struct {
	BaseRepository
}

// newPgxCarrierRepository creates a new repository for carrier data.
func newPgxCarrierRepository(pool *pgxpool.Pool) portsrepo.CarrierRepository {
	return &PgxCarrierRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CarrierRepository = (*PgxCarrierRepository)(nil)

const carrierColumns = `
	carrier_id, name, mc_number, dot_number, city, state, equipment_types,
	contact_name, contact_email, contact_phone, notes, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

// SaveCarrier inserts a new carrier.
func (r *PgxCarrierRepository) SaveCarrier(ctx context.Context, carrier domain.Carrier) error {
	m := mapping.ToModelCarrier(carrier)
	query := `
		INSERT INTO carriers (` + carrierColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CarrierID, m.Name, m.MCNumber, m.DOTNumber, m.City, m.State, m.EquipmentTypes,
		m.ContactName, m.ContactEmail, m.ContactPhone, m.Notes, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.NewAppError(500, "failed to insert carrier "+m.CarrierID, err)
	}
	return nil
}

// UpdateCarrier updates an existing carrier.
func (r *PgxCarrierRepository) UpdateCarrier(ctx context.Context, carrier domain.Carrier) error {
	m := mapping.ToModelCarrier(carrier)
	query := `
		UPDATE carriers
		SET name = $2, mc_number = $3, dot_number = $4, city = $5, state = $6,
		    equipment_types = $7, contact_name = $8, contact_email = $9,
		    contact_phone = $10, notes = $11, is_active = $12,
		    last_updated_at = $13, last_updated_by = $14
		WHERE carrier_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.CarrierID, m.Name, m.MCNumber, m.DOTNumber, m.City, m.State,
		m.EquipmentTypes, m.ContactName, m.ContactEmail,
		m.ContactPhone, m.Notes, m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update carrier "+m.CarrierID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteCarrier removes a carrier.
func (r *PgxCarrierRepository) DeleteCarrier(ctx context.Context, carrierID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM carriers WHERE carrier_id = $1;`, carrierID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete carrier "+carrierID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindCarrierByID retrieves a carrier by ID.
func (r *PgxCarrierRepository) FindCarrierByID(ctx context.Context, carrierID string) (*domain.Carrier, error) {
	query := `SELECT ` + carrierColumns + ` FROM carriers WHERE carrier_id = $1;`
	var m models.Carrier
	err := r.Pool.QueryRow(ctx, query, carrierID).Scan(
		&m.CarrierID, &m.Name, &m.MCNumber, &m.DOTNumber, &m.City, &m.State, &m.EquipmentTypes,
		&m.ContactName, &m.ContactEmail, &m.ContactPhone, &m.Notes, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find carrier by ID "+carrierID, err)
	}
	d := mapping.ToDomainCarrier(m)
	return &d, nil
}

// ListCarriers retrieves a paginated list of carriers ordered by creation time.
func (r *PgxCarrierRepository) ListCarriers(ctx context.Context, limit int, nextToken *string) ([]domain.Carrier, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `SELECT ` + carrierColumns + ` FROM carriers`
	args := []interface{}{}
	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, decodeErr := pagination.DecodeDateBasedToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastCreatedAt)
		query += ` WHERE created_at < $1`
	}
	args = append(args, fetchLimit)
	query += ` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query carriers", err)
	}
	defer rows.Close()

	carriers := make([]models.Carrier, 0, fetchLimit)
	for rows.Next() {
		var m models.Carrier
		err := rows.Scan(
			&m.CarrierID, &m.Name, &m.MCNumber, &m.DOTNumber, &m.City, &m.State, &m.EquipmentTypes,
			&m.ContactName, &m.ContactEmail, &m.ContactPhone, &m.Notes, &m.IsActive,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan carrier row", err)
		}
		carriers = append(carriers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating carrier rows", err)
	}

	var nextTokenVal *string
	if len(carriers) > limit {
		token := pagination.EncodeDateBasedToken(carriers[limit-1].CreatedAt)
		nextTokenVal = &token
		carriers = carriers[:limit]
	}

	result := make([]domain.Carrier, len(carriers))
	for i := range carriers {
		result[i] = mapping.ToDomainCarrier(carriers[i])
	}
	return result, nextTokenVal, nil
}
