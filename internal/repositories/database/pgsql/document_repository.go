package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lanewise/freight_tms_app/internal/apperrors"
	"github.com/lanewise/freight_tms_app/internal/core/domain"
	portsrepo "github.com/lanewise/freight_tms_app/internal/core/ports/repositories"
	"github.com/lanewise/freight_tms_app/internal/models"
	"github.com/lanewise/freight_tms_app/internal/utils/mapping"
)

type PgxDocumentRepository struct {
	BaseRepository
}

// newPgxDocumentRepository creates a new repository for document metadata.
func newPgxDocumentRepository(pool *pgxpool.Pool) portsrepo.DocumentRepository {
	return &PgxDocumentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DocumentRepository = (*PgxDocumentRepository)(nil)

const documentColumns = `
	document_id, shipment_id, doc_type, file_name, content_type, storage_key, size_bytes,
	created_at, created_by, last_updated_at, last_updated_by`

// SaveDocument inserts document metadata.
func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, document domain.Document) error {
	m := mapping.ToModelDocument(document)
	query := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.DocumentID, m.ShipmentID, m.Type, m.FileName, m.ContentType, m.StorageKey, m.SizeBytes,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert document "+m.DocumentID, err)
	}
	return nil
}

// DeleteDocument removes document metadata.
func (r *PgxDocumentRepository) DeleteDocument(ctx context.Context, documentID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM documents WHERE document_id = $1;`, documentID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete document "+documentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindDocumentByID retrieves document metadata by ID.
func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE document_id = $1;`
	var m models.Document
	err := r.Pool.QueryRow(ctx, query, documentID).Scan(
		&m.DocumentID, &m.ShipmentID, &m.Type, &m.FileName, &m.ContentType, &m.StorageKey, &m.SizeBytes,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find document by ID "+documentID, err)
	}
	d := mapping.ToDomainDocument(m)
	return &d, nil
}

// ListDocumentsByShipment retrieves all document metadata for a shipment.
func (r *PgxDocumentRepository) ListDocumentsByShipment(ctx context.Context, shipmentID string) ([]domain.Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE shipment_id = $1
		ORDER BY created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, shipmentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query documents for shipment "+shipmentID, err)
	}
	defer rows.Close()

	docs := []domain.Document{}
	for rows.Next() {
		var m models.Document
		err := rows.Scan(
			&m.DocumentID, &m.ShipmentID, &m.Type, &m.FileName, &m.ContentType, &m.StorageKey, &m.SizeBytes,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan document row for shipment "+shipmentID, err)
		}
		docs = append(docs, mapping.ToDomainDocument(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating document rows for shipment "+shipmentID, err)
	}
	return docs, nil
}
