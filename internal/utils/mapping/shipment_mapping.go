package mapping

import (
	"github.com/lanewise/freight_tms_app/internal/core/domain"
	"github.com/lanewise/freight_tms_app/internal/models"
)

// ToModelShipment converts a domain Shipment header to a model Shipment.
// Stops and accessorials are mapped separately since they live in their own tables.
func ToModelShipment(d domain.Shipment) models.Shipment {
	return models.Shipment{
		ShipmentID:          d.ShipmentID,
		ShipmentNumber:      d.ShipmentNumber,
		Status:              models.ShipmentStatus(d.Status),
		ShipperID:           d.ShipperID,
		CarrierID:           d.CarrierID,
		ModeOfTransport:     d.ModeOfTransport,
		EquipmentType:       d.EquipmentType,
		CustomerRate:        d.CustomerRate,
		CarrierCostTotal:    d.CarrierCostTotal,
		FSCType:             string(d.FSCType),
		FSCCustomerAmount:   d.FSCCustomerAmount,
		FSCCarrierAmount:    d.FSCCarrierAmount,
		ChassisCustomerCost: d.ChassisCustomerCost,
		ChassisCarrierCost:  d.ChassisCarrierCost,
		TotalCustomerRate:   d.TotalCustomerRate,
		TotalCarrierCost:    d.TotalCarrierCost,
		GrossProfit:         d.GrossProfit,
		Margin:              d.Margin,
		QuoteNotes:          d.QuoteNotes,
		InternalNotes:       d.InternalNotes,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainShipment converts a model Shipment header to a domain Shipment.
func ToDomainShipment(m models.Shipment) domain.Shipment {
	return domain.Shipment{
		ShipmentID:          m.ShipmentID,
		ShipmentNumber:      m.ShipmentNumber,
		Status:              domain.ShipmentStatus(m.Status),
		ShipperID:           m.ShipperID,
		CarrierID:           m.CarrierID,
		ModeOfTransport:     m.ModeOfTransport,
		EquipmentType:       m.EquipmentType,
		CustomerRate:        m.CustomerRate,
		CarrierCostTotal:    m.CarrierCostTotal,
		FSCType:             domain.FSCType(m.FSCType),
		FSCCustomerAmount:   m.FSCCustomerAmount,
		FSCCarrierAmount:    m.FSCCarrierAmount,
		ChassisCustomerCost: m.ChassisCustomerCost,
		ChassisCarrierCost:  m.ChassisCarrierCost,
		TotalCustomerRate:   m.TotalCustomerRate,
		TotalCarrierCost:    m.TotalCarrierCost,
		GrossProfit:         m.GrossProfit,
		Margin:              m.Margin,
		QuoteNotes:          m.QuoteNotes,
		InternalNotes:       m.InternalNotes,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelStop converts a domain Stop for persistence under the given shipment.
func ToModelStop(shipmentID string, sequence int, d domain.Stop) models.ShipmentStop {
	return models.ShipmentStop{
		StopID:            d.StopID,
		ShipmentID:        shipmentID,
		Sequence:          sequence,
		Type:              models.StopType(d.Type),
		LocationName:      d.LocationName,
		Address:           d.Address,
		City:              d.City,
		State:             d.State,
		Zip:               d.Zip,
		AppointmentAt:     d.AppointmentAt,
		AppointmentNotes:  d.AppointmentNotes,
		IsLaneOrigin:      d.IsLaneOrigin,
		IsLaneDestination: d.IsLaneDestination,
	}
}

// ToDomainStop converts a model ShipmentStop to a domain Stop.
func ToDomainStop(m models.ShipmentStop) domain.Stop {
	return domain.Stop{
		StopID:            m.StopID,
		Sequence:          m.Sequence,
		Type:              domain.StopType(m.Type),
		LocationName:      m.LocationName,
		Address:           m.Address,
		City:              m.City,
		State:             m.State,
		Zip:               m.Zip,
		AppointmentAt:     m.AppointmentAt,
		AppointmentNotes:  m.AppointmentNotes,
		IsLaneOrigin:      m.IsLaneOrigin,
		IsLaneDestination: m.IsLaneDestination,
	}
}

// ToDomainStopSlice converts model stops, assumed ordered by sequence.
func ToDomainStopSlice(ms []models.ShipmentStop) []domain.Stop {
	ds := make([]domain.Stop, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainStop(m)
	}
	return ds
}

// ToModelAccessorial converts a domain Accessorial for persistence.
func ToModelAccessorial(shipmentID string, d domain.Accessorial) models.ShipmentAccessorial {
	return models.ShipmentAccessorial{
		AccessorialID: d.AccessorialID,
		ShipmentID:    shipmentID,
		Name:          d.Name,
		CustomerRate:  d.CustomerRate,
		CarrierCost:   d.CarrierCost,
		Quantity:      d.Quantity,
	}
}

// ToDomainAccessorial converts a model ShipmentAccessorial to the domain type.
func ToDomainAccessorial(m models.ShipmentAccessorial) domain.Accessorial {
	return domain.Accessorial{
		AccessorialID: m.AccessorialID,
		Name:          m.Name,
		CustomerRate:  m.CustomerRate,
		CarrierCost:   m.CarrierCost,
		Quantity:      m.Quantity,
	}
}

// ToDomainAccessorialSlice converts a slice of model accessorials.
func ToDomainAccessorialSlice(ms []models.ShipmentAccessorial) []domain.Accessorial {
	ds := make([]domain.Accessorial, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccessorial(m)
	}
	return ds
}
