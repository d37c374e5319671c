package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf/v2"
	"github.com/shopspring/decimal"

	"github.com/lanewise/freight_tms_app/internal/apperrors"
	"github.com/lanewise/freight_tms_app/internal/core/domain"
	portsrepo "github.com/lanewise/freight_tms_app/internal/core/ports/repositories"
	portssvc "github.com/lanewise/freight_tms_app/internal/core/ports/services"
	"github.com/lanewise/freight_tms_app/internal/middleware"
	"github.com/lanewise/freight_tms_app/internal/platform/storage"
)

type documentService struct {
	documentRepo portsrepo.DocumentRepository
	shipmentRepo portsrepo.ShipmentReader
	carrierRepo  portsrepo.CarrierRepository
	store        storage.DocumentStore
}

// NewDocumentService creates a new DocumentSvc.
func NewDocumentService(
	documentRepo portsrepo.DocumentRepository,
	shipmentRepo portsrepo.ShipmentReader,
	carrierRepo portsrepo.CarrierRepository,
	store storage.DocumentStore,
) portssvc.DocumentSvc {
	return &documentService{
		documentRepo: documentRepo,
		shipmentRepo: shipmentRepo,
		carrierRepo:  carrierRepo,
		store:        store,
	}
}

var _ portssvc.DocumentSvc = (*documentService)(nil)

func storageKey(shipmentID, documentID, ext string) string {
	return fmt.Sprintf("shipments/%s/%s%s", shipmentID, documentID, ext)
}

func (s *documentService) GenerateRateConfirmation(ctx context.Context, shipmentID string, requestingUserID string) (*domain.Document, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	shipment, err := s.shipmentRepo.FindShipmentByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	if shipment.CarrierID == nil {
		return nil, apperrors.NewAppError(422, "Shipment has no carrier assigned", apperrors.ErrValidation)
	}

	carrier, err := s.carrierRepo.FindCarrierByID(ctx, *shipment.CarrierID)
	if err != nil {
		return nil, err
	}

	pdfBytes, err := renderRateConfirmation(shipment, carrier)
	if err != nil {
		return nil, apperrors.NewAppError(500, "Failed to render rate confirmation", err)
	}

	now := time.Now().UTC()
	doc := domain.Document{
		DocumentID:  uuid.NewString(),
		ShipmentID:  shipment.ShipmentID,
		Type:        domain.DocRateConfirmation,
		FileName:    fmt.Sprintf("rate_confirmation_%s.pdf", shipment.ShipmentNumber),
		ContentType: "application/pdf",
		SizeBytes:   int64(len(pdfBytes)),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}
	doc.StorageKey = storageKey(shipment.ShipmentID, doc.DocumentID, ".pdf")

	if err := s.store.Put(ctx, doc.StorageKey, doc.ContentType, bytes.NewReader(pdfBytes), doc.SizeBytes); err != nil {
		return nil, apperrors.NewAppError(500, "Failed to store rate confirmation", err)
	}
	if err := s.documentRepo.SaveDocument(ctx, doc); err != nil {
		// Best effort cleanup of the orphaned object.
		if delErr := s.store.Delete(ctx, doc.StorageKey); delErr != nil {
			logger.Warn("Failed to clean up stored document after metadata save failure",
				slog.String("storage_key", doc.StorageKey),
				slog.String("error", delErr.Error()),
			)
		}
		return nil, err
	}

	logger.Info("Rate confirmation generated",
		slog.String("shipment_id", shipment.ShipmentID),
		slog.String("shipment_number", shipment.ShipmentNumber),
		slog.String("document_id", doc.DocumentID),
	)
	return &doc, nil
}

func (s *documentService) UploadDocument(ctx context.Context, shipmentID string, docType domain.DocumentType, fileName string, contentType string, body io.Reader, size int64, requestingUserID string) (*domain.Document, error) {
	// Reject uploads against unknown shipments before touching storage.
	if _, err := s.shipmentRepo.FindShipmentByID(ctx, shipmentID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := domain.Document{
		DocumentID:  uuid.NewString(),
		ShipmentID:  shipmentID,
		Type:        docType,
		FileName:    fileName,
		ContentType: contentType,
		SizeBytes:   size,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}
	doc.StorageKey = storageKey(shipmentID, doc.DocumentID, "")

	if err := s.store.Put(ctx, doc.StorageKey, contentType, body, size); err != nil {
		return nil, apperrors.NewAppError(500, "Failed to store document", err)
	}
	if err := s.documentRepo.SaveDocument(ctx, doc); err != nil {
		if delErr := s.store.Delete(ctx, doc.StorageKey); delErr != nil {
			middleware.GetLoggerFromCtx(ctx).Warn("Failed to clean up stored document after metadata save failure",
				slog.String("storage_key", doc.StorageKey),
				slog.String("error", delErr.Error()),
			)
		}
		return nil, err
	}
	return &doc, nil
}

func (s *documentService) GetDocument(ctx context.Context, documentID string) (*domain.Document, io.ReadCloser, error) {
	doc, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, nil, err
	}
	body, err := s.store.Get(ctx, doc.StorageKey)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "Failed to read document contents", err)
	}
	return doc, body, nil
}

func (s *documentService) ListDocumentsByShipment(ctx context.Context, shipmentID string) ([]domain.Document, error) {
	return s.documentRepo.ListDocumentsByShipment(ctx, shipmentID)
}

func (s *documentService) DeleteDocument(ctx context.Context, documentID string, requestingUserID string) error {
	doc, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return err
	}
	if err := s.documentRepo.DeleteDocument(ctx, documentID); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, doc.StorageKey); err != nil {
		// Metadata is already gone; log the orphaned object rather than failing.
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to delete stored document contents",
			slog.String("document_id", documentID),
			slog.String("storage_key", doc.StorageKey),
			slog.String("error", err.Error()),
		)
	}
	middleware.GetLoggerFromCtx(ctx).Info("Document deleted",
		slog.String("document_id", documentID),
		slog.String("user_id", requestingUserID),
	)
	return nil
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// renderRateConfirmation builds the carrier-facing rate confirmation PDF.
func renderRateConfirmation(shipment *domain.Shipment, carrier *domain.Carrier) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Rate Confirmation", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Shipment %s - Generated %s", shipment.ShipmentNumber, time.Now().UTC().Format("02-Jan-2006 15:04 MST")), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Carrier", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Name: %s", carrier.Name), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("MC# %s  DOT# %s", carrier.MCNumber, carrier.DOTNumber), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Contact: %s", carrier.ContactName), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Phone: %s  Email: %s", carrier.ContactPhone, carrier.ContactEmail), "RB", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Load", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Mode: %s", shipment.ModeOfTransport), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Equipment: %s", shipment.EquipmentType), "RB", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Stops", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(12, 7, "#", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Type", "1", 0, "C", true, 0, "")
	pdf.CellFormat(55, 7, "Location", "1", 0, "C", true, 0, "")
	pdf.CellFormat(50, 7, "City / State", "1", 0, "C", true, 0, "")
	pdf.CellFormat(48, 7, "Appointment", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for i, stop := range shipment.Stops {
		appt := ""
		if stop.AppointmentAt != nil {
			appt = stop.AppointmentAt.Format("02-Jan-2006 15:04")
		}
		location := stop.LocationName
		if len(location) > 28 {
			location = location[:25] + "..."
		}
		pdf.CellFormat(12, 6, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, string(stop.Type), "1", 0, "C", false, 0, "")
		pdf.CellFormat(55, 6, location, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, fmt.Sprintf("%s, %s %s", stop.City, stop.State, stop.Zip), "1", 0, "L", false, 0, "")
		pdf.CellFormat(48, 6, appt, "1", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Carrier Pay", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(140, 7, "Line Haul", "LB", 0, "L", false, 0, "")
	pdf.CellFormat(50, 7, money(shipment.CarrierCostTotal), "RB", 1, "R", false, 0, "")
	if shipment.FSCType != domain.FSCNone && !shipment.FSCCarrierAmount.IsZero() {
		label := "Fuel Surcharge"
		value := money(shipment.FSCCarrierAmount)
		if shipment.FSCType == domain.FSCPercentage {
			value = shipment.FSCCarrierAmount.StringFixed(2) + "%"
		}
		pdf.CellFormat(140, 7, label, "LB", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, value, "RB", 1, "R", false, 0, "")
	}
	if !shipment.ChassisCarrierCost.IsZero() {
		pdf.CellFormat(140, 7, "Chassis", "LB", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, money(shipment.ChassisCarrierCost), "RB", 1, "R", false, 0, "")
	}
	for _, acc := range shipment.Accessorials {
		pdf.CellFormat(140, 7, fmt.Sprintf("%s (x%s)", acc.Name, acc.EffectiveQuantity().String()), "LB", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, money(acc.CarrierCost.Mul(acc.EffectiveQuantity())), "RB", 1, "R", false, 0, "")
	}
	pdf.SetFont("Arial", "B", 13)
	pdf.SetFillColor(220, 235, 220)
	pdf.CellFormat(140, 9, "Total Carrier Pay", "1", 0, "L", true, 0, "")
	pdf.CellFormat(50, 9, money(shipment.TotalCarrierCost), "1", 1, "R", true, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
