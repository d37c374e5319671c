package mapping

import (
	"github.com/lanewise/freight_tms_app/internal/core/domain"
	"github.com/lanewise/freight_tms_app/internal/models"
)

// ToModelShipper converts a domain Shipper to a model Shipper.
func ToModelShipper(d domain.Shipper) models.Shipper {
	return models.Shipper{
		ShipperID:    d.ShipperID,
		Name:         d.Name,
		Address:      d.Address,
		City:         d.City,
		State:        d.State,
		Zip:          d.Zip,
		ContactName:  d.ContactName,
		ContactEmail: d.ContactEmail,
		ContactPhone: d.ContactPhone,
		Notes:        d.Notes,
		IsActive:     d.IsActive,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainShipper converts a model Shipper to a domain Shipper.
func ToDomainShipper(m models.Shipper) domain.Shipper {
	return domain.Shipper{
		ShipperID:    m.ShipperID,
		Name:         m.Name,
		Address:      m.Address,
		City:         m.City,
		State:        m.State,
		Zip:          m.Zip,
		ContactName:  m.ContactName,
		ContactEmail: m.ContactEmail,
		ContactPhone: m.ContactPhone,
		Notes:        m.Notes,
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelCarrier converts a domain Carrier to a model Carrier.
func ToModelCarrier(d domain.Carrier) models.Carrier {
	return models.Carrier{
		CarrierID:      d.CarrierID,
		Name:           d.Name,
		MCNumber:       d.MCNumber,
		DOTNumber:      d.DOTNumber,
		City:           d.City,
		State:          d.State,
		EquipmentTypes: d.EquipmentTypes,
		ContactName:    d.ContactName,
		ContactEmail:   d.ContactEmail,
		ContactPhone:   d.ContactPhone,
		Notes:          d.Notes,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCarrier converts a model Carrier to a domain Carrier.
func ToDomainCarrier(m models.Carrier) domain.Carrier {
	return domain.Carrier{
		CarrierID:      m.CarrierID,
		Name:           m.Name,
		MCNumber:       m.MCNumber,
		DOTNumber:      m.DOTNumber,
		City:           m.City,
		State:          m.State,
		EquipmentTypes: m.EquipmentTypes,
		ContactName:    m.ContactName,
		ContactEmail:   m.ContactEmail,
		ContactPhone:   m.ContactPhone,
		Notes:          m.Notes,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
