package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lanewise/freight_tms_app/internal/core/domain"
)

func TestLaneOrigin_ExplicitFlagWins(t *testing.T) {
	stops := []domain.Stop{
		{StopID: "a", Type: domain.StopPickup, City: "Chicago", State: "IL"},
		{StopID: "b", Type: domain.StopPort, City: "Savannah", State: "GA", IsLaneOrigin: true},
		{StopID: "c", Type: domain.StopDropoff, City: "Atlanta", State: "GA"},
	}

	origin := domain.LaneOrigin(stops)
	require.NotNil(t, origin)
	assert.Equal(t, "b", origin.StopID)
}

func TestLaneOrigin_FallsBackToFirstPickupOrPort(t *testing.T) {
	stops := []domain.Stop{
		{StopID: "a", Type: domain.StopOther, City: "Yard", State: "IL"},
		{StopID: "b", Type: domain.StopPort, City: "Long Beach", State: "CA"},
		{StopID: "c", Type: domain.StopPickup, City: "Ontario", State: "CA"},
	}

	origin := domain.LaneOrigin(stops)
	require.NotNil(t, origin)
	assert.Equal(t, "b", origin.StopID, "first pickup-or-port in route order wins")
}

func TestLaneOrigin_NoQualifyingStop(t *testing.T) {
	assert.Nil(t, domain.LaneOrigin(nil))
	assert.Nil(t, domain.LaneOrigin([]domain.Stop{
		{StopID: "a", Type: domain.StopDropoff, City: "Dallas", State: "TX"},
		{StopID: "b", Type: domain.StopOther, City: "Austin", State: "TX"},
	}))
}

func TestLaneDestination_ExplicitFlagWins(t *testing.T) {
	stops := []domain.Stop{
		{StopID: "a", Type: domain.StopPickup, City: "Chicago", State: "IL"},
		{StopID: "b", Type: domain.StopDropoff, City: "Memphis", State: "TN", IsLaneDestination: true},
		{StopID: "c", Type: domain.StopDropoff, City: "Atlanta", State: "GA"},
	}

	destination := domain.LaneDestination(stops)
	require.NotNil(t, destination)
	assert.Equal(t, "b", destination.StopID)
}

func TestLaneDestination_FallsBackToLastDropoff(t *testing.T) {
	stops := []domain.Stop{
		{StopID: "a", Type: domain.StopPickup, City: "Chicago", State: "IL"},
		{StopID: "b", Type: domain.StopDropoff, City: "Memphis", State: "TN"},
		{StopID: "c", Type: domain.StopDropoff, City: "Atlanta", State: "GA"},
	}

	destination := domain.LaneDestination(stops)
	require.NotNil(t, destination)
	assert.Equal(t, "c", destination.StopID, "last dropoff in route order wins")
}

func TestLaneDestination_NoQualifyingStop(t *testing.T) {
	assert.Nil(t, domain.LaneDestination([]domain.Stop{
		{StopID: "a", Type: domain.StopPickup, City: "Chicago", State: "IL"},
		{StopID: "b", Type: domain.StopRailRamp, City: "Memphis", State: "TN"},
	}))
}

func TestShipmentStatus_IsQuote(t *testing.T) {
	assert.True(t, domain.StatusQuote.IsQuote())
	assert.True(t, domain.StatusQuoteSent.IsQuote())
	assert.True(t, domain.StatusQuoteAccepted.IsQuote())
	assert.True(t, domain.StatusQuoteRejected.IsQuote())

	assert.False(t, domain.StatusBooked.IsQuote())
	assert.False(t, domain.StatusDelivered.IsQuote())
	assert.False(t, domain.StatusCancelled.IsQuote())
}

func TestAccessorialEffectiveQuantity(t *testing.T) {
	unset := domain.Accessorial{Name: "Liftgate"}
	assert.True(t, decimal.NewFromInt(1).Equal(unset.EffectiveQuantity()))

	set := domain.Accessorial{Name: "Detention", Quantity: decimal.NewFromInt(4)}
	assert.True(t, decimal.NewFromInt(4).Equal(set.EffectiveQuantity()))
}
