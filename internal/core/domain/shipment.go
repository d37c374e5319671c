package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShipmentStatus is the lifecycle state of a shipment or quote.
// Quotes and shipments share one entity; the status separates them.
type ShipmentStatus string

const (
	StatusQuote         ShipmentStatus = "quote"
	StatusQuoteSent     ShipmentStatus = "quote_sent"
	StatusQuoteAccepted ShipmentStatus = "quote_accepted"
	StatusQuoteRejected ShipmentStatus = "quote_rejected"
	StatusBooked        ShipmentStatus = "booked"
	StatusDispatched    ShipmentStatus = "dispatched"
	StatusInTransit     ShipmentStatus = "in_transit"
	StatusDelivered     ShipmentStatus = "delivered"
	StatusInvoiced      ShipmentStatus = "invoiced"
	StatusPaid          ShipmentStatus = "paid"
	StatusCancelled     ShipmentStatus = "cancelled"
	StatusOnHold        ShipmentStatus = "on_hold"
	StatusProblem       ShipmentStatus = "problem"
)

// IsQuote reports whether the status is any of the quote sub-states.
func (s ShipmentStatus) IsQuote() bool {
	switch s {
	case StatusQuote, StatusQuoteSent, StatusQuoteAccepted, StatusQuoteRejected:
		return true
	}
	return false
}

// FSCType selects how the fuel surcharge amounts are interpreted.
// It applies symmetrically to the customer and carrier sides.
type FSCType string

const (
	FSCFixed      FSCType = "fixed"
	FSCPercentage FSCType = "percentage"
	FSCNone       FSCType = ""
)

// StopType classifies a stop on a shipment's route.
type StopType string

const (
	StopPickup   StopType = "pickup"
	StopDropoff  StopType = "dropoff"
	StopPort     StopType = "port"
	StopRailRamp StopType = "rail_ramp"
	StopOther    StopType = "other"
)

// Stop is one leg endpoint on a shipment's ordered route.
type Stop struct {
	StopID            string     `json:"stopID"`
	Sequence          int        `json:"sequence"`
	Type              StopType   `json:"type"`
	LocationName      string     `json:"locationName"`
	Address           string     `json:"address"`
	City              string     `json:"city"`
	State             string     `json:"state"`
	Zip               string     `json:"zip"`
	AppointmentAt     *time.Time `json:"appointmentAt,omitempty"`
	AppointmentNotes  string     `json:"appointmentNotes,omitempty"`
	IsLaneOrigin      bool       `json:"isLaneOrigin"`
	IsLaneDestination bool       `json:"isLaneDestination"`
}

// Accessorial is a billable line item on top of the line haul.
type Accessorial struct {
	AccessorialID string          `json:"accessorialID"`
	Name          string          `json:"name"`
	CustomerRate  decimal.Decimal `json:"customerRate"`
	CarrierCost   decimal.Decimal `json:"carrierCost"`
	Quantity      decimal.Decimal `json:"quantity"` // zero means 1
}

// EffectiveQuantity returns the accessorial quantity, defaulting to 1 when unset.
func (a Accessorial) EffectiveQuantity() decimal.Decimal {
	if a.Quantity.IsZero() {
		return decimal.NewFromInt(1)
	}
	return a.Quantity
}

// Shipment is the aggregate root for both quotes and shipments.
//
// The rate input fields are raw user-entered figures; the Total*, GrossProfit
// and Margin fields are derived by the rating calculator and are never set
// directly by callers.
type Shipment struct {
	ShipmentID      string         `json:"shipmentID"`
	ShipmentNumber  string         `json:"shipmentNumber"` // immutable once assigned
	Status          ShipmentStatus `json:"status"`
	ShipperID       *string        `json:"shipperID,omitempty"`
	CarrierID       *string        `json:"carrierID,omitempty"`
	ModeOfTransport string         `json:"modeOfTransport"`
	EquipmentType   string         `json:"equipmentType"`

	Stops []Stop `json:"stops"`

	// Raw rate inputs.
	CustomerRate        decimal.Decimal `json:"customerRate"`     // line-haul revenue
	CarrierCostTotal    decimal.Decimal `json:"carrierCostTotal"` // line-haul carrier cost
	FSCType             FSCType         `json:"fscType"`
	FSCCustomerAmount   decimal.Decimal `json:"fscCustomerAmount"`
	FSCCarrierAmount    decimal.Decimal `json:"fscCarrierAmount"`
	ChassisCustomerCost decimal.Decimal `json:"chassisCustomerCost"`
	ChassisCarrierCost  decimal.Decimal `json:"chassisCarrierCost"`
	Accessorials        []Accessorial   `json:"accessorials"`

	// Derived outputs, system-computed.
	TotalCustomerRate decimal.Decimal `json:"totalCustomerRate"`
	TotalCarrierCost  decimal.Decimal `json:"totalCarrierCost"`
	GrossProfit       decimal.Decimal `json:"grossProfit"`
	Margin            decimal.Decimal `json:"margin"` // percentage

	QuoteNotes    string `json:"quoteNotes,omitempty"`
	InternalNotes string `json:"internalNotes,omitempty"`

	AuditFields
}

// LaneOrigin resolves the lane origin from an ordered stop list: the stop
// flagged as lane origin, else the first pickup or port stop. Returns nil when
// no stop qualifies; callers must treat the origin as optional.
func LaneOrigin(stops []Stop) *Stop {
	for i := range stops {
		if stops[i].IsLaneOrigin {
			return &stops[i]
		}
	}
	for i := range stops {
		if stops[i].Type == StopPickup || stops[i].Type == StopPort {
			return &stops[i]
		}
	}
	return nil
}

// LaneDestination resolves the lane destination: the stop flagged as lane
// destination, else the last dropoff stop scanning from the end. Returns nil
// when no stop qualifies.
func LaneDestination(stops []Stop) *Stop {
	for i := range stops {
		if stops[i].IsLaneDestination {
			return &stops[i]
		}
	}
	for i := len(stops) - 1; i >= 0; i-- {
		if stops[i].Type == StopDropoff {
			return &stops[i]
		}
	}
	return nil
}

// Origin is a convenience wrapper over LaneOrigin for the shipment's own stops.
func (s *Shipment) Origin() *Stop {
	return LaneOrigin(s.Stops)
}

// Destination is a convenience wrapper over LaneDestination.
func (s *Shipment) Destination() *Stop {
	return LaneDestination(s.Stops)
}
