package mapping

import (
	"github.com/lanewise/freight_tms_app/internal/core/domain"
	"github.com/lanewise/freight_tms_app/internal/models"
)

// ToModelLaneRate converts a domain LaneRate to a model LaneRate.
// Manual accessorials are mapped separately.
func ToModelLaneRate(d domain.LaneRate) models.LaneRate {
	return models.LaneRate{
		LaneRateID:                d.LaneRateID,
		OriginCity:                d.OriginCity,
		OriginState:               d.OriginState,
		OriginZip:                 d.OriginZip,
		DestinationCity:           d.DestinationCity,
		DestinationState:          d.DestinationState,
		DestinationZip:            d.DestinationZip,
		CarrierID:                 d.CarrierID,
		ModeOfTransport:           d.ModeOfTransport,
		EquipmentType:             d.EquipmentType,
		LineHaulRate:              d.LineHaulRate,
		LineHaulCost:              d.LineHaulCost,
		FSCPercentage:             d.FSCPercentage,
		CarrierFSCPercentage:      d.CarrierFSCPercentage,
		ChassisCustomerCost:       d.ChassisCustomerCost,
		ChassisCarrierCost:        d.ChassisCarrierCost,
		TotalAccessorialCustomer:  d.TotalAccessorialCustomer,
		TotalAccessorialCarrier:   d.TotalAccessorialCarrier,
		SourceType:                models.RateSourceType(d.SourceType),
		SourceShipmentID:          d.SourceShipmentID,
		SourceQuoteShipmentNumber: d.SourceQuoteShipmentNumber,
		RateDate:                  d.RateDate,
		Notes:                     d.Notes,
		IsActive:                  d.IsActive,
		AuditFields:               ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLaneRate converts a model LaneRate to a domain LaneRate.
func ToDomainLaneRate(m models.LaneRate) domain.LaneRate {
	return domain.LaneRate{
		LaneRateID:                m.LaneRateID,
		OriginCity:                m.OriginCity,
		OriginState:               m.OriginState,
		OriginZip:                 m.OriginZip,
		DestinationCity:           m.DestinationCity,
		DestinationState:          m.DestinationState,
		DestinationZip:            m.DestinationZip,
		CarrierID:                 m.CarrierID,
		ModeOfTransport:           m.ModeOfTransport,
		EquipmentType:             m.EquipmentType,
		LineHaulRate:              m.LineHaulRate,
		LineHaulCost:              m.LineHaulCost,
		FSCPercentage:             m.FSCPercentage,
		CarrierFSCPercentage:      m.CarrierFSCPercentage,
		ChassisCustomerCost:       m.ChassisCustomerCost,
		ChassisCarrierCost:        m.ChassisCarrierCost,
		TotalAccessorialCustomer:  m.TotalAccessorialCustomer,
		TotalAccessorialCarrier:   m.TotalAccessorialCarrier,
		SourceType:                domain.RateSourceType(m.SourceType),
		SourceShipmentID:          m.SourceShipmentID,
		SourceQuoteShipmentNumber: m.SourceQuoteShipmentNumber,
		RateDate:                  m.RateDate,
		Notes:                     m.Notes,
		IsActive:                  m.IsActive,
		AuditFields:               ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLaneRateAccessorial converts a manual accessorial for persistence.
func ToModelLaneRateAccessorial(laneRateID string, d domain.ManualAccessorial) models.LaneRateAccessorial {
	return models.LaneRateAccessorial{
		ManualAccessorialID: d.ManualAccessorialID,
		LaneRateID:          laneRateID,
		Name:                d.Name,
		Cost:                d.Cost,
		Notes:               d.Notes,
	}
}

// ToDomainManualAccessorial converts a model LaneRateAccessorial to the domain type.
func ToDomainManualAccessorial(m models.LaneRateAccessorial) domain.ManualAccessorial {
	return domain.ManualAccessorial{
		ManualAccessorialID: m.ManualAccessorialID,
		Name:                m.Name,
		Cost:                m.Cost,
		Notes:               m.Notes,
	}
}

// ToDomainManualAccessorialSlice converts a slice of model lane rate accessorials.
func ToDomainManualAccessorialSlice(ms []models.LaneRateAccessorial) []domain.ManualAccessorial {
	ds := make([]domain.ManualAccessorial, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainManualAccessorial(m)
	}
	return ds
}
