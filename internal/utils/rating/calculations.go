package rating

import (
	"github.com/lanewise/freight_tms_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Inputs are the raw rate fields a shipment carries. Missing numeric values
// are represented by decimal zero and are never an error.
type Inputs struct {
	CustomerRate        decimal.Decimal
	CarrierCostTotal    decimal.Decimal
	FSCType             domain.FSCType
	FSCCustomerAmount   decimal.Decimal
	FSCCarrierAmount    decimal.Decimal
	ChassisCustomerCost decimal.Decimal
	ChassisCarrierCost  decimal.Decimal
	Accessorials        []domain.Accessorial
}

// Totals are the four derived financial outputs.
type Totals struct {
	TotalCustomerRate decimal.Decimal
	TotalCarrierCost  decimal.Decimal
	GrossProfit       decimal.Decimal
	Margin            decimal.Decimal // percentage of revenue
}

// InputsFromShipment extracts the rate-affecting fields of a shipment.
func InputsFromShipment(s *domain.Shipment) Inputs {
	return Inputs{
		CustomerRate:        s.CustomerRate,
		CarrierCostTotal:    s.CarrierCostTotal,
		FSCType:             s.FSCType,
		FSCCustomerAmount:   s.FSCCustomerAmount,
		FSCCarrierAmount:    s.FSCCarrierAmount,
		ChassisCustomerCost: s.ChassisCustomerCost,
		ChassisCarrierCost:  s.ChassisCarrierCost,
		Accessorials:        s.Accessorials,
	}
}

// FSCValue computes the fuel surcharge amount for one side.
// The same FSCType governs both sides; each side supplies its own amount and
// line haul. An unset type yields zero.
func FSCValue(fscType domain.FSCType, amount, lineHaul decimal.Decimal) decimal.Decimal {
	switch fscType {
	case domain.FSCPercentage:
		return lineHaul.Mul(amount.Div(hundred))
	case domain.FSCFixed:
		return amount
	default:
		return decimal.Zero
	}
}

// AccessorialTotals sums the customer and carrier contributions across all
// accessorial line items, defaulting each quantity to 1.
func AccessorialTotals(items []domain.Accessorial) (customer, carrier decimal.Decimal) {
	customer = decimal.Zero
	carrier = decimal.Zero
	for _, item := range items {
		qty := item.EffectiveQuantity()
		customer = customer.Add(item.CustomerRate.Mul(qty))
		carrier = carrier.Add(item.CarrierCost.Mul(qty))
	}
	return customer, carrier
}

// CalculateTotals derives the grand totals, gross profit and margin from raw
// rate inputs. It is pure and idempotent: identical inputs always produce
// identical outputs.
//
// Margin is defined as exactly zero when there is no revenue, guarding the
// division.
func CalculateTotals(in Inputs) Totals {
	fscCustomer := FSCValue(in.FSCType, in.FSCCustomerAmount, in.CustomerRate)
	fscCarrier := FSCValue(in.FSCType, in.FSCCarrierAmount, in.CarrierCostTotal)

	accCustomer, accCarrier := AccessorialTotals(in.Accessorials)

	totalCustomer := in.CustomerRate.Add(fscCustomer).Add(in.ChassisCustomerCost).Add(accCustomer)
	totalCarrier := in.CarrierCostTotal.Add(fscCarrier).Add(in.ChassisCarrierCost).Add(accCarrier)

	grossProfit := totalCustomer.Sub(totalCarrier)

	margin := decimal.Zero
	if totalCustomer.IsPositive() {
		margin = grossProfit.Div(totalCustomer).Mul(hundred)
	}

	return Totals{
		TotalCustomerRate: totalCustomer,
		TotalCarrierCost:  totalCarrier,
		GrossProfit:       grossProfit,
		Margin:            margin,
	}
}

// NormalizeFSCPercentage converts a fuel surcharge to a percentage of the
// line haul for lane rate storage, rounded to two decimal places.
// A percentage-typed surcharge is already a percentage; a fixed surcharge is
// derived only when the line haul is positive. Returns nil when no percentage
// can be derived.
func NormalizeFSCPercentage(fscType domain.FSCType, amount, lineHaul decimal.Decimal) *decimal.Decimal {
	switch fscType {
	case domain.FSCPercentage:
		pct := amount.Round(2)
		return &pct
	case domain.FSCFixed:
		if lineHaul.IsPositive() {
			pct := amount.Div(lineHaul).Mul(hundred).Round(2)
			return &pct
		}
		return nil
	default:
		return nil
	}
}
